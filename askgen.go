// Package askgen generates interactive prompt methods for Go structs.
//
// Most users run the askgen command from go:generate. The functions here
// expose the same pipeline to Go programs and tests.
package askgen

import (
	"context"

	"github.com/goliatone/go-askgen/internal/loader"
	"github.com/goliatone/go-askgen/pkg/logger"
	"github.com/goliatone/go-askgen/pkg/orchestrator"
)

// Request mirrors orchestrator.Request.
type Request = orchestrator.Request

// Result is the outcome of a generation run.
type Result = orchestrator.Result

// Output is one generated file.
type Output = orchestrator.Output

// Failure describes a record that could not be generated.
type Failure = orchestrator.Failure

// Option adjusts the request built by Generate.
type Option func(*Request)

// WithTypes restricts generation to the named structs.
func WithTypes(names ...string) Option {
	return func(r *Request) { r.Types = append(r.Types, names...) }
}

// WithTheme sets the theme used by records without a theme directive.
func WithTheme(theme string) Option {
	return func(r *Request) { r.Theme = theme }
}

// WithBackend selects "survey" or "huh".
func WithBackend(backend string) Option {
	return func(r *Request) { r.Backend = backend }
}

// WithPrefix changes the generated method prefix.
func WithPrefix(prefix string) Option {
	return func(r *Request) { r.Prefix = prefix }
}

// WithMust also emits panicking Must variants.
func WithMust() Option {
	return func(r *Request) { r.Must = true }
}

// WithOutputDir writes all generated files into dir.
func WithOutputDir(dir string) Option {
	return func(r *Request) { r.OutputDir = dir }
}

// WithExclude skips source files matching the doublestar patterns.
func WithExclude(patterns ...string) Option {
	return func(r *Request) { r.Exclude = append(r.Exclude, patterns...) }
}

// WithDryRun renders without writing.
func WithDryRun() Option {
	return func(r *Request) { r.DryRun = true }
}

// NewOrchestrator exposes the orchestrator constructor from the module root.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader returns the go/packages backed loader used by default.
func NewLoader(l logger.Logger) orchestrator.PackageLoader {
	return loader.New(loader.WithLogger(l))
}

// Generate loads patterns relative to dir and writes the generated files.
// Per-record failures are reported on the result; see Result.Err.
func Generate(ctx context.Context, dir string, patterns []string, options ...Option) (*Result, error) {
	req := Request{Dir: dir, Patterns: patterns}
	for _, opt := range options {
		if opt != nil {
			opt(&req)
		}
	}
	return orchestrator.New().Generate(ctx, req)
}
