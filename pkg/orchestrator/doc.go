// Package orchestrator wires the loader → resolver → synthesizer → writer
// pipeline, providing dependency injection friendly helpers for consumers
// that prefer a single entry point.
package orchestrator
