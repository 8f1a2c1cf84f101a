// Command fognav plans paths on grid worlds and runs agents that navigate
// them without knowing where the obstacles are.
//
// Usage:
//
//	fognav search --grid world.txt
//	fognav run --width 30 --height 30 --density 0.25 --sensor four-neighbor
//	fognav batch --config fognav.yaml
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/pdrpinto/fognav/config"
	"github.com/pdrpinto/fognav/internal/logging"
)

// CLI defines the command-line interface.
type CLI struct {
	Version VersionCmd `cmd:"" help:"Show version information."`
	Search  SearchCmd  `cmd:"" help:"Find a shortest path with full knowledge of the world."`
	Run     RunCmd     `cmd:"" help:"Navigate one agent through an unknown world."`
	Batch   BatchCmd   `cmd:"" help:"Run the density sweep experiment and write a report."`

	Config    string   `short:"c" help:"Path to config file." type:"path"`
	EnvFile   []string `name:"env-file" help:"Dotenv files to load (default .env.local, .env)." type:"path"`
	LogLevel  string   `help:"Log level (debug, info, warn, error). Overrides config."`
	LogFormat string   `help:"Log format (text, json). Overrides config."`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("fognav"),
		kong.Description("Grid path planning under unknown obstacles."),
		kong.UsageOnError(),
	)

	if err := config.LoadEnvFiles(cli.EnvFile...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Log.Format = cli.LogFormat
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	kctx.BindTo(os.Stdout, (*io.Writer)(nil))
	kctx.FatalIfErrorf(kctx.Run(cfg, logger))
}
