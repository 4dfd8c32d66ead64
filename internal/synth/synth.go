// Package synth turns resolved records into Go source. Each resolved field
// becomes one method on the record that runs a terminal prompt and stores
// the answer in the field. Values fixed by the directive are embedded in the
// method body; the rest become method parameters, in the order prompt then
// options.
package synth

import (
	"bytes"
	"fmt"
	"go/types"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/tools/imports"

	"github.com/goliatone/go-askgen/internal/diag"
	"github.com/goliatone/go-askgen/internal/loader"
	"github.com/goliatone/go-askgen/internal/prompt"
	"github.com/goliatone/go-askgen/internal/render"
	"github.com/goliatone/go-askgen/internal/resolver"
)

// DefaultPrefix is prepended to field names to name generated methods.
const DefaultPrefix = "Ask"

// Options controls the output for one record.
type Options struct {
	Backend prompt.Backend
	Theme   prompt.Theme
	Prefix  string
	// Must also emits Must<Prefix><Field> methods that panic on failure.
	Must bool
}

// Synthesizer renders generated files.
type Synthesizer struct {
	engine *render.Engine
}

// New builds a Synthesizer. Options are passed to the template engine, so
// render.WithBaseDir overrides the bundled file layout.
func New(options ...render.Option) (*Synthesizer, error) {
	engine, err := render.New(options...)
	if err != nil {
		return nil, err
	}
	return &Synthesizer{engine: engine}, nil
}

// Unit groups a record with its resolved fields and theme.
type Unit struct {
	Record loader.Record
	Fields []resolver.Resolved
	Theme  prompt.Theme
}

// Synthesize emits the methods of one record as a complete file.
func (s *Synthesizer) Synthesize(rec loader.Record, resolved []resolver.Resolved, opts Options) ([]byte, error) {
	if opts.Theme == "" {
		opts.Theme = prompt.DefaultTheme
	}
	return s.File(rec.Package, filepath.Base(rec.Filename), []Unit{{Record: rec, Fields: resolved, Theme: opts.Theme}}, opts)
}

// File emits several records of one package into a single file. The theme of
// each unit overrides opts.Theme.
func (s *Synthesizer) File(pkg *types.Package, source string, units []Unit, opts Options) ([]byte, error) {
	if pkg == nil {
		return nil, fmt.Errorf("synth: missing package")
	}
	set := newImportSet(pkg)
	for _, spec := range newEmitter(opts.Backend, opts.Theme).imports() {
		set.add(spec.Path, spec.Name)
	}
	set.add(askerPath, "asker")

	var (
		methods []string
		diags   diag.List
	)
	for _, unit := range units {
		theme := unit.Theme
		if theme == "" {
			theme = opts.Theme
		}
		out, err := s.record(unit.Record, unit.Fields, newEmitter(opts.Backend, theme), opts, set.qualifier)
		if err != nil {
			diags.Add(err)
			continue
		}
		methods = append(methods, out...)
	}
	if err := diags.Err(); err != nil {
		return nil, err
	}

	src, err := s.engine.Render(render.FileTemplate, pongo2.Context{
		"package": pkg.Name(),
		"source":  source,
		"imports": set.list(),
		"methods": methods,
	})
	if err != nil {
		return nil, err
	}
	formatted, err := imports.Process(OutputName(source, ""), src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("synth: format generated code: %w\n%s", err, src)
	}
	return formatted, nil
}

func (s *Synthesizer) record(rec loader.Record, resolved []resolver.Resolved, em emitter, opts Options, qf types.Qualifier) ([]string, error) {
	plans := make([]*plan, len(resolved))
	for i, res := range resolved {
		plans[i] = newPlan(res, opts.Prefix, qf)
	}
	if err := checkNames(rec, plans, opts.Must); err != nil {
		return nil, err
	}

	var out []string
	for _, p := range plans {
		var buf bytes.Buffer
		writeMethod(&buf, rec.Name, p, em, qf)
		out = append(out, buf.String())
		if opts.Must {
			buf.Reset()
			writeMust(&buf, rec.Name, p)
			out = append(out, buf.String())
		}
	}
	return out, nil
}

// Check reports the problems Synthesize would report for rec without
// rendering anything.
func (s *Synthesizer) Check(rec loader.Record, resolved []resolver.Resolved, opts Options) error {
	plans := make([]*plan, len(resolved))
	for i, res := range resolved {
		plans[i] = newPlan(res, opts.Prefix, rec.Qualifier())
	}
	return checkNames(rec, plans, opts.Must)
}

// checkNames rejects generated methods that clash with each other or with
// the fields and methods the record already has.
func checkNames(rec loader.Record, plans []*plan, must bool) error {
	var (
		diags diag.List
		seen  = make(map[string]string)
	)
	for _, p := range plans {
		names := []string{p.method}
		if must {
			names = append(names, p.must)
		}
		for _, name := range names {
			if other, dup := seen[name]; dup {
				diags.Add(diag.Errorf(p.Field.Pos, "method %s for field %s collides with the method for field %s", name, p.Field.Name, other))
				continue
			}
			seen[name] = p.Field.Name
			if existing := lookup(rec, name); existing != "" {
				diags.Add(diag.Errorf(p.Field.Pos, "method %s for field %s collides with %s %s.%s", name, p.Field.Name, existing, rec.Name, name))
			}
		}
	}
	return diags.Err()
}

// lookup reports whether rec already has a field or hand written method
// called name, returning "field" or "method".
func lookup(rec loader.Record, name string) string {
	if rec.Package == nil {
		return ""
	}
	obj, ok := rec.Package.Scope().Lookup(rec.Name).(*types.TypeName)
	if !ok {
		return ""
	}
	found, _, _ := types.LookupFieldOrMethod(types.NewPointer(obj.Type()), false, rec.Package, name)
	switch found.(type) {
	case *types.Var:
		return "field"
	case *types.Func:
		return "method"
	}
	return ""
}

// OutputName maps `profile.go` to `profile_ask.go`, keeping the directory.
func OutputName(source, suffix string) string {
	if suffix == "" {
		suffix = loader.DefaultSuffix
	}
	return strings.TrimSuffix(source, ".go") + suffix
}
