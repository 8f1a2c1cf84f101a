package agent

import "log/slog"

// Options defines the capabilities injected into an Agent.
type Options struct {
	Sensor   Sensor
	Recorder Recorder
	Logger   *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithSensor sets the sideways sensing capability. The default is Blindfolded.
func WithSensor(sensor Sensor) Option {
	return func(options *Options) { options.Sensor = sensor }
}

// WithRecorder attaches a recorder to the navigation loop.
func WithRecorder(recorder Recorder) Option {
	return func(options *Options) { options.Recorder = recorder }
}

// WithLogger sets the logger; by default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}
