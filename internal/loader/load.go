package loader

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/tools/go/packages"

	"github.com/goliatone/go-askgen/pkg/logger"
)

// DefaultSuffix is appended to source file names to name generated files.
const DefaultSuffix = "_ask.go"

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// ErrNoPackages is returned when the patterns match nothing.
var ErrNoPackages = errors.New("loader: no packages matched")

// Request describes what to load.
type Request struct {
	Dir      string
	Patterns []string
	Selector Selector
	// Exclude holds doublestar patterns matched against file paths relative
	// to Dir and against base names.
	Exclude   []string
	BuildTags []string
	// Suffix identifies generated files, which are never scanned.
	Suffix string
}

// Package is a loaded package with its records.
type Package struct {
	Path    string
	Name    string
	Dir     string
	Records []Record
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithCacheSize sets how many load results are cached. Zero disables caching.
func WithCacheSize(size int) Option {
	return func(ld *Loader) {
		ld.cacheSize = size
	}
}

// Loader loads packages with golang.org/x/tools/go/packages. Results are
// cached per request until Invalidate is called.
type Loader struct {
	logger    logger.Logger
	cacheSize int
	cache     *lru.Cache[string, []Package]
}

// New constructs a Loader.
func New(options ...Option) *Loader {
	ld := &Loader{logger: logger.Nop(), cacheSize: 16}
	for _, opt := range options {
		if opt != nil {
			opt(ld)
		}
	}
	if ld.cacheSize > 0 {
		cache, err := lru.New[string, []Package](ld.cacheSize)
		if err == nil {
			ld.cache = cache
		}
	}
	return ld
}

// Invalidate drops cached results.
func (ld *Loader) Invalidate() {
	if ld.cache != nil {
		ld.cache.Purge()
	}
}

// Load type-checks the requested packages and collects their records.
func (ld *Loader) Load(ctx context.Context, req Request) ([]Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Patterns) == 0 {
		req.Patterns = []string{"."}
	}
	if req.Suffix == "" {
		req.Suffix = DefaultSuffix
	}
	key := cacheKey(req)
	if ld.cache != nil {
		if cached, ok := ld.cache.Get(key); ok {
			ld.logger.Debug("loader cache hit", "patterns", req.Patterns)
			return cached, nil
		}
	}

	cfg := &packages.Config{
		Context:   ctx,
		Mode:      loadMode,
		Dir:       req.Dir,
		ParseFile: parseFile(req.Suffix),
	}
	if len(req.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(req.BuildTags, ",")}
	}
	pkgs, err := packages.Load(cfg, req.Patterns...)
	if err != nil {
		return nil, fmt.Errorf("loader: load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, ErrNoPackages
	}

	var out []Package
	for _, pkg := range pkgs {
		if err := ld.checkErrors(pkg, req.Suffix); err != nil {
			return nil, err
		}
		files := ld.sourceFiles(pkg, req)
		records, err := Collect(pkg.Fset, files, pkg.Types, req.Selector)
		if err != nil {
			return nil, err
		}
		ld.logger.Debug("loaded package", "package", pkg.PkgPath, "files", len(files), "records", len(records))
		out = append(out, Package{
			Path:    pkg.PkgPath,
			Name:    pkg.Name,
			Dir:     packageDir(pkg),
			Records: records,
		})
	}

	if ld.cache != nil {
		ld.cache.Add(key, out)
	}
	return out, nil
}

// parseFile keeps previously generated files out of type-checking: only
// their package clause is parsed, so their methods neither clash with the
// ones about to be generated nor fail on fields that no longer exist.
func parseFile(suffix string) func(*token.FileSet, string, []byte) (*ast.File, error) {
	return func(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
		mode := parser.AllErrors | parser.ParseComments
		if strings.HasSuffix(filename, suffix) {
			mode = parser.PackageClauseOnly | parser.ParseComments
		}
		return parser.ParseFile(fset, filename, src, mode)
	}
}

// checkErrors fails on package errors, except type errors inside previously
// generated files: those are stale by definition and get rewritten.
func (ld *Loader) checkErrors(pkg *packages.Package, suffix string) error {
	var errs []error
	for _, perr := range pkg.Errors {
		if isGeneratedPos(perr.Pos, suffix) {
			ld.logger.Warn("ignoring error in generated file", "error", perr.Error())
			continue
		}
		errs = append(errs, perr)
	}
	if len(errs) > 0 {
		return fmt.Errorf("loader: package %s: %w", pkg.PkgPath, errors.Join(errs...))
	}
	if pkg.Types == nil {
		return fmt.Errorf("loader: package %s has no type information", pkg.PkgPath)
	}
	return nil
}

func (ld *Loader) sourceFiles(pkg *packages.Package, req Request) []*ast.File {
	var files []*ast.File
	for _, file := range pkg.Syntax {
		name := pkg.Fset.Position(file.Package).Filename
		if strings.HasSuffix(name, req.Suffix) || ast.IsGenerated(file) {
			continue
		}
		if excluded(req.Dir, name, req.Exclude) {
			ld.logger.Debug("excluded file", "file", name)
			continue
		}
		files = append(files, file)
	}
	return files
}

func excluded(dir, name string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel := name
	if dir != "" {
		if r, err := filepath.Rel(dir, name); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(name)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

func isGeneratedPos(pos, suffix string) bool {
	// Positions look like file.go:12:3.
	file := pos
	if i := strings.Index(pos, ".go:"); i >= 0 {
		file = pos[:i+len(".go")]
	}
	return strings.HasSuffix(file, suffix)
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}
	return ""
}

func cacheKey(req Request) string {
	parts := []string{
		req.Dir,
		strings.Join(req.Patterns, ","),
		strings.Join(req.Selector.Names, ","),
		strings.Join(req.Exclude, ","),
		strings.Join(req.BuildTags, ","),
		req.Suffix,
	}
	return strings.Join(parts, "|")
}
