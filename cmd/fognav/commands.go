package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdrpinto/fognav"
	"github.com/pdrpinto/fognav/agent"
	"github.com/pdrpinto/fognav/config"
	"github.com/pdrpinto/fognav/experiment"
)

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Fprintf(out, "fognav version %s\n", version)
	return nil
}

// WorldFlags select the world a command runs on: a grid file, or a random
// grid whose unset parameters come from the config.
type WorldFlags struct {
	Grid    string  `short:"g" help:"Grid file, one row per line ('.' free, '#' blocked)." type:"existingfile"`
	Width   int     `help:"Random grid width."`
	Height  int     `help:"Random grid height."`
	Density float64 `help:"Obstacle probability in [0, 1]; negative uses the config." default:"-1"`
	Seed    int64   `help:"Random grid seed; 0 uses the config."`
}

// world returns the grid and its corner endpoints.
func (f WorldFlags) world(cfg config.Config, solvable bool, search *fognav.PathSearch) (*fognav.Grid, fognav.Coordinate, fognav.Coordinate, error) {
	if f.Grid != "" {
		file, err := os.Open(f.Grid)
		if err != nil {
			return nil, fognav.Coordinate{}, fognav.Coordinate{}, err
		}
		defer file.Close()
		g, err := fognav.ParseGrid(file)
		if err != nil {
			return nil, fognav.Coordinate{}, fognav.Coordinate{}, fmt.Errorf("%s: %w", f.Grid, err)
		}
		start, goal := experiment.Endpoints(g.Width(), g.Height())
		return g, start, goal, nil
	}

	width, height, density, seed := cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.Density, cfg.Grid.Seed
	if f.Width > 0 {
		width = f.Width
	}
	if f.Height > 0 {
		height = f.Height
	}
	if f.Density >= 0 {
		density = f.Density
	}
	if f.Seed != 0 {
		seed = f.Seed
	}
	rng := rand.New(rand.NewSource(seed))
	start, goal := experiment.Endpoints(width, height)

	var g *fognav.Grid
	var err error
	if solvable {
		g, err = experiment.SolvableGrid(search, width, height, density, rng, experiment.DefaultMaxAttempts)
	} else {
		g, err = experiment.RandomGrid(width, height, density, rng)
	}
	return g, start, goal, err
}

func formatPath(path []fognav.Coordinate) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// SearchCmd runs a single full-knowledge search.
type SearchCmd struct {
	WorldFlags `embed:""`
	NoMap      bool `help:"Do not print the map."`
}

func (c *SearchCmd) Run(cfg config.Config, logger *slog.Logger, out io.Writer) error {
	search := fognav.New(fognav.Manhattan)
	g, start, goal, err := c.world(cfg, false, search)
	if err != nil {
		return err
	}
	result, err := search.Search(start, goal, g, fognav.GroundTruth)
	if err != nil {
		return err
	}
	logger.Debug("Search finished", "found", result.Found(), "expanded", result.Expanded)

	fmt.Fprintf(out, "cost: %v\n", result.Cost)
	fmt.Fprintf(out, "expanded: %d\n", result.Expanded)
	if result.Found() {
		fmt.Fprintf(out, "path: %s\n", formatPath(result.Path))
	} else {
		fmt.Fprintln(out, "path: none")
	}
	if !c.NoMap {
		fmt.Fprint(out, "\n", searchMap(g, start, result.Path))
	}
	return nil
}

// RunCmd navigates one agent.
type RunCmd struct {
	WorldFlags `embed:""`
	Sensor     string `help:"Sensing capability (${enum})." enum:"blindfolded,four-neighbor" default:"blindfolded"`
	Backtrack  int    `help:"Successful steps between restart point updates; 0 uses the config."`
	Trace      bool   `help:"Print every planning episode."`
	NoMap      bool   `help:"Do not print the map."`
}

func (c *RunCmd) Run(cfg config.Config, logger *slog.Logger, out io.Writer) error {
	backtrack := cfg.Experiment.Backtrack
	if c.Backtrack > 0 {
		backtrack = c.Backtrack
	}
	sensor, err := agent.SensorByName(c.Sensor)
	if err != nil {
		return err
	}

	search := fognav.New(fognav.Manhattan)
	g, start, goal, err := c.world(cfg, true, search)
	if err != nil {
		return err
	}
	stats := &agent.Stats{}
	navigator, err := agent.New(start, goal, fognav.NewFog(g), search,
		agent.WithSensor(sensor),
		agent.WithRecorder(stats),
		agent.WithLogger(logger.With("sensor", c.Sensor)),
	)
	if err != nil {
		return err
	}

	for state := navigator.State(); state != agent.Done && state != agent.Failed; state = navigator.State() {
		episode, err := navigator.Step(backtrack)
		if err != nil {
			return err
		}
		if c.Trace {
			line := fmt.Sprintf("plan %d from %s: expanded %d, walked %d", stats.Plans, episode.From, episode.Plan.Expanded, len(episode.Walked))
			if episode.Bumped {
				line += ", bumped " + episode.Bump.String()
			}
			fmt.Fprintln(out, line)
		}
	}

	trajectory := navigator.Trajectory()
	fmt.Fprintf(out, "reached: %t\n", trajectory.Reached())
	fmt.Fprintf(out, "trajectory length: %v\n", trajectory.Length)
	fmt.Fprintf(out, "cells processed: %d\n", trajectory.CellsProcessed)
	fmt.Fprintf(out, "bumps: %d\n", stats.Bumps)
	fmt.Fprintf(out, "planning steps: %d\n", stats.Plans)
	fmt.Fprintf(out, "cells determined: %d\n", navigator.Memory().Determined())
	if !c.NoMap {
		fmt.Fprint(out, "\n", beliefMap(g, navigator.Memory(), start, trajectory.Path))
	}
	return nil
}

// BatchCmd runs the experiment sweep.
type BatchCmd struct {
	Output      string `short:"o" help:"Report path. Overrides config."`
	Format      string `help:"Report format (csv, xlsx). Overrides config; inferred from the output extension when unset."`
	Workers     int    `help:"Concurrent trials; 0 uses the config."`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file when done." type:"path"`
}

func (c *BatchCmd) format(cfg config.Config, output string) (experiment.Format, error) {
	switch {
	case c.Format != "":
		return experiment.ParseFormat(c.Format)
	case c.Output != "" && strings.HasSuffix(strings.ToLower(output), ".xlsx"):
		return experiment.FormatXLSX, nil
	case c.Output != "" && strings.HasSuffix(strings.ToLower(output), ".csv"):
		return experiment.FormatCSV, nil
	default:
		return experiment.ParseFormat(cfg.Experiment.Format)
	}
}

func (c *BatchCmd) Run(cfg config.Config, logger *slog.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	output := cfg.Experiment.Output
	if c.Output != "" {
		output = c.Output
	}
	format, err := c.format(cfg, output)
	if err != nil {
		return err
	}
	workers := cfg.Experiment.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}

	registry := prometheus.NewRegistry()
	metrics, err := experiment.NewMetrics(registry)
	if err != nil {
		return err
	}
	runner := experiment.NewRunner(fognav.New(fognav.Manhattan),
		experiment.WithWorkers(workers),
		experiment.WithSeed(cfg.Experiment.Seed),
		experiment.WithLogger(logger),
		experiment.WithMetrics(metrics),
	)

	records, err := runner.Run(ctx, cfg.Plan())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Experiment interrupted")
		}
		return err
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := experiment.WriteReport(file, format, records); err != nil {
		return err
	}
	logger.Info("Report written", "path", output, "format", string(format), "records", len(records))

	if c.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(c.MetricsFile, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
