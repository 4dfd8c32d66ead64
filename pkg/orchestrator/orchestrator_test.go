package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/goliatone/go-askgen/internal/loader"
	"github.com/goliatone/go-askgen/internal/resolver"
	"github.com/goliatone/go-askgen/pkg/testsupport"
)

type stubLoader struct {
	pkgs []loader.Package
	err  error
	reqs []loader.Request
}

func (s *stubLoader) Load(_ context.Context, req loader.Request) ([]loader.Package, error) {
	s.reqs = append(s.reqs, req)
	return s.pkgs, s.err
}

func packageFrom(t *testing.T, src string) loader.Package {
	t.Helper()
	checked := testsupport.CheckSource(t, src)
	records, err := loader.Collect(checked.Fset, checked.Files, checked.Package, loader.Selector{Marked: resolver.IsRecordTag})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	return loader.Package{Path: checked.Package.Path(), Name: checked.Package.Name(), Dir: ".", Records: records}
}

const twoRecords = `package profile

//ask:generate
type Good struct {
	//ask:select(prompt = "Pick", options = ["a", "b"])
	Choice string
}

//ask:theme(none)
type Bad struct {
	//ask:password
	Secret int32
}
`

func TestOrchestrator_GenerateWritesFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	stub := &stubLoader{pkgs: []loader.Package{packageFrom(t, `package profile

//ask:generate
type Profile struct {
	Name string
	Tags []string
}
`)}}
	gen := New(WithLoader(stub), WithFS(fsys))

	result, err := gen.Generate(testsupport.Context(), Request{Dir: "/work", Patterns: []string{"./..."}, Types: []string{"Profile"}})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := result.Err(); err != nil {
		t.Fatalf("unexpected failures: %v", err)
	}
	if len(result.Files) != 1 {
		t.Fatalf("expected one file, got %d", len(result.Files))
	}
	out := result.Files[0]
	if out.Path != "record_ask.go" || !out.Written {
		t.Fatalf("unexpected output %+v", out)
	}
	if diff := cmp.Diff([]string{"Profile"}, out.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	written, err := afero.ReadFile(fsys, "record_ask.go")
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	if string(written) != string(out.Source) {
		t.Fatalf("written file differs from result source")
	}
	for _, want := range []string{"func (r *Profile) AskName(prompt string) error", "func (r *Profile) AskTags(prompt string, options []string) error"} {
		if !strings.Contains(string(written), want) {
			t.Fatalf("generated file missing %q:\n%s", want, written)
		}
	}

	req := stub.reqs[0]
	if req.Dir != "/work" || req.Suffix != loader.DefaultSuffix || req.Selector.Marked == nil {
		t.Fatalf("unexpected loader request %+v", req)
	}
	if diff := cmp.Diff([]string{"Profile"}, req.Selector.Names); diff != "" {
		t.Fatalf("selector names mismatch (-want +got):\n%s", diff)
	}

	again, err := gen.Generate(testsupport.Context(), Request{})
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if again.Files[0].Written {
		t.Fatalf("unchanged output should not be rewritten")
	}
}

func TestOrchestrator_FailingRecordIsIsolated(t *testing.T) {
	fsys := afero.NewMemMapFs()
	gen := New(WithLoader(&stubLoader{pkgs: []loader.Package{packageFrom(t, twoRecords)}}), WithFS(fsys))

	result, err := gen.Generate(testsupport.Context(), Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Failures) != 1 || result.Failures[0].Record != "Bad" {
		t.Fatalf("expected Bad to fail, got %+v", result.Failures)
	}
	failure := result.Err()
	if failure == nil || !strings.Contains(failure.Error(), "profile.Bad: record.go:") ||
		!strings.Contains(failure.Error(), "password only supports string or *string type, got int32") {
		t.Fatalf("unexpected failure %v", failure)
	}

	if diff := cmp.Diff([]string{"Good"}, result.Records()); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	src := string(result.Files[0].Source)
	if strings.Contains(src, "Bad") {
		t.Fatalf("failed record leaked into output:\n%s", src)
	}
	if !strings.Contains(src, "func (r *Good) AskChoice() error") {
		t.Fatalf("good record missing:\n%s", src)
	}
}

func TestOrchestrator_DryRunAndOutputDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	gen := New(WithLoader(&stubLoader{pkgs: []loader.Package{packageFrom(t, twoRecords)}}), WithFS(fsys))

	result, err := gen.Generate(testsupport.Context(), Request{DryRun: true, OutputDir: "gen", Suffix: "_prompts.go"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := result.Files[0].Path; got != "gen/record_prompts.go" {
		t.Fatalf("unexpected path %s", got)
	}
	if result.Files[0].Written {
		t.Fatalf("dry run must not write")
	}
	if exists, _ := afero.Exists(fsys, "gen/record_prompts.go"); exists {
		t.Fatalf("dry run wrote a file")
	}
}

func TestOrchestrator_ThemeAndBackendFromRequest(t *testing.T) {
	gen := New(WithLoader(&stubLoader{pkgs: []loader.Package{packageFrom(t, twoRecords)}}), WithFS(afero.NewMemMapFs()))

	result, err := gen.Generate(testsupport.Context(), Request{Theme: "external", Backend: "huh", Must: true, DryRun: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	src := string(result.Files[0].Source)
	for _, want := range []string{"WithTheme(asker.External().Huh())", "func (r *Good) MustAskChoice() *Good"} {
		if !strings.Contains(src, want) {
			t.Fatalf("output missing %q:\n%s", want, src)
		}
	}

	if _, err := gen.Generate(testsupport.Context(), Request{Theme: "neon"}); err == nil || !strings.Contains(err.Error(), `unknown theme "neon"`) {
		t.Fatalf("expected theme error, got %v", err)
	}
	if _, err := gen.Generate(testsupport.Context(), Request{Backend: "tview"}); err == nil || !strings.Contains(err.Error(), `unknown backend "tview"`) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestOrchestrator_NameCollisionIsRecordFailure(t *testing.T) {
	gen := New(WithLoader(&stubLoader{pkgs: []loader.Package{packageFrom(t, `package p

//ask:generate
type R struct {
	Name    string
	AskName string
}
`)}}), WithFS(afero.NewMemMapFs()))

	result, err := gen.Generate(testsupport.Context(), Request{DryRun: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Files) != 0 || len(result.Failures) != 1 {
		t.Fatalf("expected a single failure and no files, got %+v", result)
	}
}

func TestOrchestrator_Errors(t *testing.T) {
	boom := errors.New("boom")
	gen := New(WithLoader(&stubLoader{err: boom}), WithFS(afero.NewMemMapFs()))

	if _, err := gen.Generate(testsupport.Context(), Request{}); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}

	//nolint:staticcheck // nil context is rejected explicitly.
	if _, err := gen.Generate(nil, Request{}); err == nil {
		t.Fatalf("expected error for nil context")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gen.Generate(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOrchestrator_RegeneratesOverPreviousOutput(t *testing.T) {
	dir := testsupport.WriteModule(t, "example.com/app", map[string]string{
		"profile.go": `package app

//ask:generate
type Profile struct {
	Name string
	//ask:select(prompt = "Role", options = ["admin", "viewer"])
	Role string
}
`,
	})
	gen := New()
	req := Request{Dir: dir}

	first, err := gen.Generate(testsupport.Context(), req)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if err := first.Err(); err != nil {
		t.Fatalf("first run failures: %v", err)
	}
	if len(first.Files) != 1 || !first.Files[0].Written {
		t.Fatalf("expected one written file, got %+v", first.Files)
	}
	path := filepath.Join(dir, "profile_ask.go")
	if first.Files[0].Path != path {
		t.Fatalf("unexpected path %s", first.Files[0].Path)
	}

	// A fresh orchestrator loads the package again, now with profile_ask.go
	// present next to the source.
	second, err := New().Generate(testsupport.Context(), req)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if err := second.Err(); err != nil {
		t.Fatalf("second run failures: %v", err)
	}
	if len(second.Files) != 1 || second.Files[0].Written {
		t.Fatalf("expected the unchanged file to be kept, got %+v", second.Files)
	}
	if diff := cmp.Diff(string(first.Files[0].Source), string(second.Files[0].Source)); diff != "" {
		t.Fatalf("regenerated source differs (-first +second):\n%s", diff)
	}

	// Editing the source regenerates over the stale methods.
	src := strings.Replace(readFile(t, filepath.Join(dir, "profile.go")), "Name string", "Email string", 1)
	if err := os.WriteFile(filepath.Join(dir, "profile.go"), []byte(src), 0o644); err != nil {
		t.Fatalf("edit source: %v", err)
	}
	third, err := New().Generate(testsupport.Context(), req)
	if err != nil {
		t.Fatalf("third generate: %v", err)
	}
	if err := third.Err(); err != nil {
		t.Fatalf("third run failures: %v", err)
	}
	out := readFile(t, path)
	if !strings.Contains(out, "AskEmail(prompt string) error") || strings.Contains(out, "AskName") {
		t.Fatalf("stale methods kept:\n%s", out)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestOrchestrator_OutputDirNeedsSinglePackage(t *testing.T) {
	first := packageFrom(t, "package alpha\n\n//ask:generate\ntype A struct{ Name string }\n")
	second := packageFrom(t, "package beta\n\n//ask:generate\ntype B struct{ Name string }\n")
	empty := loader.Package{Path: "gamma", Name: "gamma"}
	fsys := afero.NewMemMapFs()
	gen := New(WithLoader(&stubLoader{pkgs: []loader.Package{first, second, empty}}), WithFS(fsys))

	_, err := gen.Generate(testsupport.Context(), Request{OutputDir: "gen"})
	if !errors.Is(err, ErrOutputDirPackages) || !strings.Contains(err.Error(), "alpha, beta") {
		t.Fatalf("expected output dir error naming both packages, got %v", err)
	}
	if exists, _ := afero.DirExists(fsys, "gen"); exists {
		t.Fatalf("nothing should be written")
	}

	result, err := gen.Generate(testsupport.Context(), Request{OutputDir: "gen", DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if len(result.Files) != 2 {
		t.Fatalf("expected two files, got %d", len(result.Files))
	}

	single := New(WithLoader(&stubLoader{pkgs: []loader.Package{first, empty}}), WithFS(fsys))
	if _, err := single.Generate(testsupport.Context(), Request{OutputDir: "gen"}); err != nil {
		t.Fatalf("single package: %v", err)
	}
	if exists, _ := afero.Exists(fsys, "gen/record_ask.go"); !exists {
		t.Fatalf("expected gen/record_ask.go")
	}
}

func TestOrchestrator_TemplateFS(t *testing.T) {
	files := fstest.MapFS{
		"file.tpl": {Data: []byte("{% autoescape off %}// Layout for {{ source }}.\n\npackage {{ package }}\n{% for imp in imports %}import {{ imp.Name }} \"{{ imp.Path }}\"\n{% endfor %}{% for method in methods %}\n{{ method }}{% endfor %}{% endautoescape %}")},
	}
	gen := New(
		WithLoader(&stubLoader{pkgs: []loader.Package{packageFrom(t, twoRecords)}}),
		WithFS(afero.NewMemMapFs()),
		WithTemplateFS(files),
	)

	result, err := gen.Generate(testsupport.Context(), Request{DryRun: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	src := string(result.Files[0].Source)
	if !strings.HasPrefix(src, "// Layout for record.go.") || !strings.Contains(src, "func (r *Good) AskChoice() error") {
		t.Fatalf("custom layout not used:\n%s", src)
	}
}
