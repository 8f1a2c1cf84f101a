// Package experiment runs navigation agents over many generated worlds at
// increasing obstacle densities and collects one Record per agent per world.
//
// Trials are spread over a bounded worker pool. Every trial derives its own
// random source from the runner seed and its position in the plan, so the
// records are reproducible regardless of the number of workers.
package experiment
