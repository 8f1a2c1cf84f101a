package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/fognav"
	"github.com/pdrpinto/fognav/agent"
)

// ErrInvalidPlan is returned by Plan.Validate.
var ErrInvalidPlan = errors.New("invalid experiment plan")

// Plan describes the sweep: Iterations worlds at every density from 0 to
// MaxDensity percent, each navigated once per sensor.
type Plan struct {
	Width      int
	Height     int
	Iterations int
	MaxDensity int
	Backtrack  int
	Sensors    []string
}

// Validate checks that the plan can be run.
func (p Plan) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0 || p.Width*p.Height < 2:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidPlan, p.Width, p.Height)
	case p.Iterations < 1:
		return fmt.Errorf("%w: iterations must be positive", ErrInvalidPlan)
	case p.MaxDensity < 0 || p.MaxDensity > 100:
		return fmt.Errorf("%w: max density %d outside 0..100", ErrInvalidPlan, p.MaxDensity)
	case p.Backtrack < 1:
		return fmt.Errorf("%w: backtrack must be at least 1", ErrInvalidPlan)
	case len(p.Sensors) == 0:
		return fmt.Errorf("%w: no sensors", ErrInvalidPlan)
	}
	for _, name := range p.Sensors {
		if _, err := agent.SensorByName(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPlan, err)
		}
	}
	return nil
}

// Trials is the number of worlds the plan generates.
func (p Plan) Trials() int { return (p.MaxDensity + 1) * p.Iterations }

// Options defines parameters for the runner.
type Options struct {
	NumberOfWorkers int
	Seed            int64
	MaxAttempts     int
	Logger          *slog.Logger
	Metrics         *Metrics
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many trials may run at once.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithSeed sets the base seed every trial seed is derived from.
func WithSeed(seed int64) Option {
	return func(options *Options) { options.Seed = seed }
}

// WithMaxAttempts bounds world regeneration per trial.
func WithMaxAttempts(maxAttempts int) Option {
	return func(options *Options) { options.MaxAttempts = maxAttempts }
}

// WithLogger sets the logger for the runner and the agents it drives.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithMetrics records every finished trial.
func WithMetrics(metrics *Metrics) Option {
	return func(options *Options) { options.Metrics = metrics }
}

// Runner executes experiment plans. A single PathSearch is shared by all
// workers since it holds no per-search state.
type Runner struct {
	search  *fognav.PathSearch
	options Options
}

// NewRunner creates a Runner around search.
func NewRunner(search *fognav.PathSearch, options ...Option) *Runner {
	runnerOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
		Seed:            1,
		MaxAttempts:     DefaultMaxAttempts,
		Logger:          slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(&runnerOptions)
	}
	if runnerOptions.NumberOfWorkers < 1 {
		runnerOptions.NumberOfWorkers = runtime.NumCPU()
	}
	if runnerOptions.Logger == nil {
		runnerOptions.Logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{search: search, options: runnerOptions}
}

// Run executes every trial of plan and returns the records ordered by
// density, iteration and sensor. Trials whose world cannot be made solvable
// within MaxAttempts are logged and skipped; any other failure cancels the
// rest.
func (r *Runner) Run(ctx context.Context, plan Plan) ([]Record, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	logger := r.options.Logger
	logger.Info("Starting experiment",
		"width", plan.Width,
		"height", plan.Height,
		"trials", plan.Trials(),
		"sensors", plan.Sensors,
		"workers", r.options.NumberOfWorkers)
	began := time.Now()

	results := make([][]Record, plan.Trials())
	var skipped atomic.Int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.options.NumberOfWorkers)

	for density := 0; density <= plan.MaxDensity; density++ {
		for iteration := 0; iteration < plan.Iterations; iteration++ {
			task := trialTask{
				index:     density*plan.Iterations + iteration,
				density:   density,
				iteration: iteration,
			}
			task.seed = r.options.Seed*1_000_003 + int64(task.index)

			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				records, err := r.runTrial(task, plan)
				if errors.Is(err, ErrUnsolvable) {
					skipped.Add(1)
					logger.Warn("Skipping unsolvable trial",
						"density", task.density,
						"iteration", task.iteration,
						"attempts", r.options.MaxAttempts)
					return nil
				}
				if err != nil {
					return err
				}
				for _, record := range records {
					r.options.Metrics.Observe(record)
				}
				results[task.index] = records
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	records := slices.Concat(results...)
	logger.Info("Experiment finished",
		"records", len(records),
		"skipped", skipped.Load(),
		"duration", time.Since(began))
	return records, nil
}
