// Package testsupport holds helpers shared by askgen tests: type-checking Go
// source fixtures and managing golden files.
package testsupport

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Checked is a type-checked source fixture.
type Checked struct {
	Fset    *token.FileSet
	Files   []*ast.File
	Package *types.Package
	Info    *types.Info
}

// CheckSource parses and type-checks src as a single file package. The file
// is named record.go so diagnostics read naturally in assertions.
func CheckSource(t *testing.T, src string) Checked {
	t.Helper()

	checked, err := CheckFiles(map[string]string{"record.go": src})
	if err != nil {
		t.Fatalf("check source: %v", err)
	}
	return checked
}

// CheckFiles type-checks several files forming one package. Imports are
// resolved from source, so fixtures may import the standard library.
func CheckFiles(files map[string]string) (Checked, error) {
	if len(files) == 0 {
		return Checked{}, errors.New("testsupport: no files")
	}
	fset := token.NewFileSet()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	var parsed []*ast.File
	for _, name := range names {
		file, err := parser.ParseFile(fset, name, files[name], parser.ParseComments)
		if err != nil {
			return Checked{}, fmt.Errorf("testsupport: parse %s: %w", name, err)
		}
		parsed = append(parsed, file)
	}

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check(parsed[0].Name.Name, fset, parsed, info)
	if err != nil {
		return Checked{}, fmt.Errorf("testsupport: type-check: %w", err)
	}
	return Checked{Fset: fset, Files: parsed, Package: pkg, Info: info}, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// WriteModule lays out a throwaway module under t.TempDir and returns its
// directory. files maps slash separated paths to contents; go.mod is added
// when missing.
func WriteModule(t *testing.T, module string, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	all := map[string]string{"go.mod": "module " + module + "\n\ngo 1.22\n"}
	for name, content := range files {
		all[name] = content
	}
	for name, content := range all {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
