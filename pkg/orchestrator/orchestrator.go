package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/goliatone/go-askgen/internal/loader"
	"github.com/goliatone/go-askgen/internal/prompt"
	"github.com/goliatone/go-askgen/internal/render"
	"github.com/goliatone/go-askgen/internal/resolver"
	"github.com/goliatone/go-askgen/internal/synth"
	"github.com/goliatone/go-askgen/pkg/logger"
)

// PackageLoader loads packages and their records.
type PackageLoader interface {
	Load(ctx context.Context, req loader.Request) ([]loader.Package, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom package loader.
func WithLoader(l PackageLoader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithFS sets the filesystem generated files are written to.
func WithFS(fsys afero.Fs) Option {
	return func(o *Orchestrator) {
		o.fs = fsys
	}
}

// WithLogger sets the logger. Defaults to the logger carried by the context
// passed to Generate.
func WithLogger(l logger.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithTemplateDir overrides the bundled file templates with the ones found
// in dir.
func WithTemplateDir(dir string) Option {
	return func(o *Orchestrator) {
		o.templateDir = dir
	}
}

// WithTemplateFS replaces the bundled file templates, for callers shipping
// their own with embed. A template directory still takes precedence.
func WithTemplateFS(files fs.FS) Option {
	return func(o *Orchestrator) {
		o.templateFS = files
	}
}

// Orchestrator coordinates the full pipeline from Go packages to generated
// files. It applies defaults (go/packages loader, OS filesystem, bundled
// templates) while remaining open to dependency injection.
type Orchestrator struct {
	loader          PackageLoader
	fs              afero.Fs
	logger          logger.Logger
	templateDir     string
	templateFS      fs.FS
	synth           *synth.Synthesizer
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one generation run.
type Request struct {
	// Dir is the working directory patterns are resolved against.
	Dir string
	// Patterns are go/packages patterns. Defaults to ".".
	Patterns []string
	// Types restricts generation to the named struct types. When empty,
	// structs carrying an `//ask:generate` or `//ask:theme` directive are used.
	Types []string
	// Exclude holds doublestar patterns for source files to skip.
	Exclude   []string
	BuildTags []string

	// Theme is used by records without a theme directive.
	Theme string
	// Backend is "survey" (default) or "huh".
	Backend string
	Prefix  string
	Must    bool

	// Suffix names generated files: profile.go becomes profile<Suffix>.
	Suffix string
	// OutputDir writes every generated file into one directory instead of
	// next to its source. Generated methods only compile inside their own
	// package, so writing runs accept a single package with records; dry
	// runs accept any number.
	OutputDir string
	// DryRun renders without writing.
	DryRun bool
}

// Output is one generated file.
type Output struct {
	Path    string
	Package string
	Records []string
	Source  []byte
	// Written is false for dry runs and for files whose content did not
	// change.
	Written bool
}

// Failure records a record that produced no output.
type Failure struct {
	Package string
	Record  string
	Err     error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s.%s: %v", f.Package, f.Record, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result summarises a run.
type Result struct {
	Files    []Output
	Failures []Failure
	// Dirs lists the directory of every loaded package, for watching.
	Dirs []string
}

// Err joins every failure, or returns nil.
func (r *Result) Err() error {
	if r == nil || len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

type settings struct {
	theme   prompt.Theme
	backend prompt.Backend
	suffix  string
}

// Generate executes the load → resolve → synthesize → write sequence. Records
// are independent: a record that fails to resolve is reported in
// Result.Failures and the others are still generated. The returned error is
// reserved for problems that stop the whole run.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	cfg, err := o.settings(req)
	if err != nil {
		return nil, err
	}
	log := o.log(ctx)

	pkgs, err := o.loader.Load(ctx, loader.Request{
		Dir:       req.Dir,
		Patterns:  req.Patterns,
		Selector:  loader.Selector{Names: req.Types, Marked: resolver.IsRecordTag},
		Exclude:   req.Exclude,
		BuildTags: req.BuildTags,
		Suffix:    cfg.suffix,
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load packages: %w", err)
	}

	if err := checkOutputDir(req, pkgs); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if pkg.Dir != "" && !slices.Contains(result.Dirs, pkg.Dir) {
			result.Dirs = append(result.Dirs, pkg.Dir)
		}
		if len(pkg.Records) == 0 {
			log.Debug("no records", "package", pkg.Path)
			continue
		}
		if err := o.generatePackage(pkg, req, cfg, result, log); err != nil {
			return result, err
		}
	}
	return result, nil
}

// ErrOutputDirPackages is returned when OutputDir is set for a writing run
// spanning several packages.
var ErrOutputDirPackages = errors.New("orchestrator: output directory requires a single package")

func checkOutputDir(req Request, pkgs []loader.Package) error {
	if req.OutputDir == "" || req.DryRun {
		return nil
	}
	var names []string
	for _, pkg := range pkgs {
		if len(pkg.Records) > 0 {
			names = append(names, pkg.Path)
		}
	}
	if len(names) > 1 {
		return fmt.Errorf("%w, got %s", ErrOutputDirPackages, strings.Join(names, ", "))
	}
	return nil
}

func (o *Orchestrator) settings(req Request) (settings, error) {
	var cfg settings
	var err error
	if req.Theme != "" {
		if cfg.theme, err = prompt.ParseTheme(req.Theme); err != nil {
			return cfg, fmt.Errorf("orchestrator: %w", err)
		}
	}
	if cfg.backend, err = prompt.ParseBackend(req.Backend); err != nil {
		return cfg, fmt.Errorf("orchestrator: %w", err)
	}
	cfg.suffix = req.Suffix
	if cfg.suffix == "" {
		cfg.suffix = loader.DefaultSuffix
	}
	return cfg, nil
}

func (o *Orchestrator) generatePackage(pkg loader.Package, req Request, cfg settings, result *Result, log logger.Logger) error {
	opts := synth.Options{Backend: cfg.backend, Prefix: req.Prefix, Must: req.Must, Theme: cfg.theme}

	files := make(map[string][]synth.Unit)
	var order []string
	for _, rec := range pkg.Records {
		unit, err := o.prepare(rec, cfg, opts)
		if err != nil {
			result.Failures = append(result.Failures, Failure{Package: pkg.Path, Record: rec.Name, Err: err})
			log.Warn("record skipped", "package", pkg.Path, "record", rec.Name, "error", err)
			continue
		}
		if _, ok := files[rec.Filename]; !ok {
			order = append(order, rec.Filename)
		}
		files[rec.Filename] = append(files[rec.Filename], unit)
	}

	for _, filename := range order {
		units := files[filename]
		src, err := o.synth.File(units[0].Record.Package, filepath.Base(filename), units, opts)
		if err != nil {
			for _, unit := range units {
				result.Failures = append(result.Failures, Failure{Package: pkg.Path, Record: unit.Record.Name, Err: err})
			}
			log.Error("synthesis failed", "file", filename, "error", err)
			continue
		}

		out := Output{
			Path:    o.outputPath(filename, req.OutputDir, cfg.suffix),
			Package: pkg.Path,
			Source:  src,
		}
		for _, unit := range units {
			out.Records = append(out.Records, unit.Record.Name)
		}
		if !req.DryRun {
			written, err := o.write(out.Path, src)
			if err != nil {
				return err
			}
			out.Written = written
		}
		log.Info("generated", "file", out.Path, "records", out.Records, "written", out.Written)
		result.Files = append(result.Files, out)
	}
	return nil
}

// prepare resolves one record and checks it can be synthesized.
func (o *Orchestrator) prepare(rec loader.Record, cfg settings, opts synth.Options) (synth.Unit, error) {
	theme, err := resolver.Theme(rec, cfg.theme)
	if err != nil {
		return synth.Unit{}, err
	}
	fields, err := resolver.Record(rec)
	if err != nil {
		return synth.Unit{}, err
	}
	if err := o.synth.Check(rec, fields, opts); err != nil {
		return synth.Unit{}, err
	}
	return synth.Unit{Record: rec, Fields: fields, Theme: theme}, nil
}

func (o *Orchestrator) outputPath(source, dir, suffix string) string {
	path := synth.OutputName(source, suffix)
	if dir == "" {
		return path
	}
	return filepath.Join(dir, filepath.Base(path))
}

// write stores src at path unless the file already holds the same bytes.
func (o *Orchestrator) write(path string, src []byte) (bool, error) {
	existing, err := afero.ReadFile(o.fs, path)
	switch {
	case err == nil && bytes.Equal(existing, src):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("orchestrator: read %s: %w", path, err)
	}
	if err := o.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("orchestrator: create %s: %w", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(o.fs, path, src, 0o644); err != nil {
		return false, fmt.Errorf("orchestrator: write %s: %w", path, err)
	}
	return true, nil
}

func (o *Orchestrator) log(ctx context.Context) logger.Logger {
	if o.logger != nil {
		return o.logger
	}
	return logger.FromContext(ctx)
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	if o.loader == nil {
		o.loader = loader.New(loader.WithLogger(o.logger))
	}
	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}
	var options []render.Option
	if o.templateFS != nil {
		options = append(options, render.WithFS(o.templateFS))
	}
	if o.templateDir != "" {
		options = append(options, render.WithBaseDir(o.templateDir))
	}
	s, err := synth.New(options...)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: synthesizer: %w", err)
	} else {
		o.synth = s
	}
	o.defaultsApplied = true
}

// Records lists the record names of every output, sorted.
func (r *Result) Records() []string {
	var out []string
	for _, f := range r.Files {
		out = append(out, f.Records...)
	}
	slices.Sort(out)
	return out
}
