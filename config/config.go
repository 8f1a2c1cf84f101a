// Package config loads fognav settings from defaults, an optional YAML file,
// .env files and FOGNAV_* environment variables, in that order of precedence
// from lowest to highest.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/fognav/agent"
	"github.com/pdrpinto/fognav/experiment"
	"github.com/pdrpinto/fognav/internal/logging"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// DefaultEnvFiles are read by LoadEnvFiles when no files are named.
var DefaultEnvFiles = []string{".env.local", ".env"}

// Config is the full fognav configuration.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Experiment ExperimentConfig `yaml:"experiment"`
	Log        LogConfig        `yaml:"log"`
}

// GridConfig describes the random world used by single runs.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Density is the obstacle probability in [0, 1].
	Density float64 `yaml:"density"`
	Seed    int64   `yaml:"seed"`
}

// ExperimentConfig describes a batch sweep.
type ExperimentConfig struct {
	Iterations int `yaml:"iterations"`
	// MaxDensity is in percent.
	MaxDensity int `yaml:"max_density"`
	// Workers of 0 means one per CPU.
	Workers   int      `yaml:"workers"`
	Backtrack int      `yaml:"backtrack"`
	Seed      int64    `yaml:"seed"`
	Sensors   []string `yaml:"sensors"`
	Output    string   `yaml:"output"`
	Format    string   `yaml:"format"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Width:   101,
			Height:  101,
			Density: 0.3,
			Seed:    1,
		},
		Experiment: ExperimentConfig{
			Iterations: 100,
			MaxDensity: 33,
			Backtrack:  1,
			Seed:       1,
			Sensors:    agent.SensorNames(),
			Output:     "results.csv",
			Format:     string(experiment.FormatCSV),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadEnvFiles loads the named .env files, or DefaultEnvFiles when none are
// given. Missing files are skipped and existing variables are never
// overwritten.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Load builds a Config from the defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode expands ${VAR} references and rejects unknown keys.
func decode(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Grid.Width = envInt("FOGNAV_GRID_WIDTH", c.Grid.Width)
	c.Grid.Height = envInt("FOGNAV_GRID_HEIGHT", c.Grid.Height)
	c.Grid.Density = envFloat("FOGNAV_GRID_DENSITY", c.Grid.Density)
	c.Grid.Seed = envInt64("FOGNAV_SEED", c.Grid.Seed)

	c.Experiment.Iterations = envInt("FOGNAV_ITERATIONS", c.Experiment.Iterations)
	c.Experiment.MaxDensity = envInt("FOGNAV_MAX_DENSITY", c.Experiment.MaxDensity)
	c.Experiment.Workers = envInt("FOGNAV_WORKERS", c.Experiment.Workers)
	c.Experiment.Backtrack = envInt("FOGNAV_BACKTRACK", c.Experiment.Backtrack)
	c.Experiment.Seed = envInt64("FOGNAV_SEED", c.Experiment.Seed)
	c.Experiment.Sensors = envList("FOGNAV_SENSORS", c.Experiment.Sensors)
	c.Experiment.Output = envStr("FOGNAV_OUTPUT", c.Experiment.Output)
	c.Experiment.Format = envStr("FOGNAV_FORMAT", c.Experiment.Format)

	c.Log.Level = envStr("FOGNAV_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envStr("FOGNAV_LOG_FORMAT", c.Log.Format)
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Grid.Width <= 0 || c.Grid.Height <= 0 || c.Grid.Width*c.Grid.Height < 2:
		return fmt.Errorf("%w: grid must be at least 2 cells, got %dx%d", ErrInvalid, c.Grid.Width, c.Grid.Height)
	case c.Grid.Density < 0 || c.Grid.Density > 1:
		return fmt.Errorf("%w: grid density %v outside [0, 1]", ErrInvalid, c.Grid.Density)
	case c.Experiment.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative", ErrInvalid)
	}
	if err := c.Plan().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := experiment.ParseFormat(c.Experiment.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// Plan is the experiment sweep described by c.
func (c Config) Plan() experiment.Plan {
	return experiment.Plan{
		Width:      c.Grid.Width,
		Height:     c.Grid.Height,
		Iterations: c.Experiment.Iterations,
		MaxDensity: c.Experiment.MaxDensity,
		Backtrack:  c.Experiment.Backtrack,
		Sensors:    c.Experiment.Sensors,
	}
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}

func envFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func envList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
