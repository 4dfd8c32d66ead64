// Package loader type-checks Go packages and extracts the struct types that
// askgen generates prompt methods for.
package loader

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"slices"
	"strings"

	"github.com/goliatone/go-askgen/internal/directive"
)

// Selector decides whether a struct type is a record. names is the explicit
// list of wanted types (empty means "use directives"); marked reports whether
// the type carries a record-level directive.
type Selector struct {
	Names  []string
	Marked func(tag string) bool
}

func (s Selector) selects(name string, comments []directive.Comment) bool {
	if len(s.Names) > 0 {
		return slices.Contains(s.Names, name)
	}
	if s.Marked == nil {
		return false
	}
	for _, c := range comments {
		if !strings.HasPrefix(c.Text, directive.Prefix) {
			continue
		}
		d, ok, err := directive.Parse(c.Text, c.Pos)
		// Malformed record directives still select the type so the
		// resolver can report them.
		if ok && (err != nil || s.Marked(d.Tag)) {
			return true
		}
	}
	return false
}

// Collect extracts the records declared in files. pkg and info must come from
// type-checking the same files with fset.
func Collect(fset *token.FileSet, files []*ast.File, pkg *types.Package, sel Selector) ([]Record, error) {
	var out []Record
	for _, file := range files {
		filename := fset.Position(file.Package).Filename
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}
				comments := commentsOf(fset, doc)
				if !sel.selects(ts.Name.Name, comments) {
					continue
				}
				if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
					return nil, fmt.Errorf("%s: generic struct %s is not supported", fset.Position(ts.Pos()), ts.Name.Name)
				}
				rec, err := buildRecord(fset, pkg, ts.Name.Name, st, comments)
				if err != nil {
					return nil, err
				}
				rec.Filename = filename
				rec.Pos = fset.Position(ts.Pos())
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

func buildRecord(fset *token.FileSet, pkg *types.Package, name string, st *ast.StructType, comments []directive.Comment) (Record, error) {
	obj, ok := pkg.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		return Record{}, fmt.Errorf("loader: type %s not found in package %s", name, pkg.Path())
	}
	strct, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return Record{}, fmt.Errorf("loader: type %s is not a struct", name)
	}

	rec := Record{Name: name, Package: pkg, Comments: comments}
	index := 0
	for _, af := range st.Fields.List {
		fieldComments := append(commentsOf(fset, af.Doc), commentsOf(fset, af.Comment)...)
		count := len(af.Names)
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			if index >= strct.NumFields() {
				return Record{}, fmt.Errorf("loader: %s: field list out of sync with type information", name)
			}
			v := strct.Field(index)
			index++
			if v.Name() == "_" {
				continue
			}
			pos := fset.Position(af.Type.Pos())
			if len(af.Names) > 0 {
				pos = fset.Position(af.Names[i].Pos())
			}
			rec.Fields = append(rec.Fields, Field{
				Name:     v.Name(),
				Type:     v.Type(),
				Embedded: v.Embedded(),
				Pos:      pos,
				TypePos:  fset.Position(af.Type.Pos()),
				Comments: fieldComments,
			})
		}
	}
	return rec, nil
}

func commentsOf(fset *token.FileSet, cg *ast.CommentGroup) []directive.Comment {
	if cg == nil {
		return nil
	}
	out := make([]directive.Comment, 0, len(cg.List))
	for _, c := range cg.List {
		out = append(out, directive.Comment{Text: c.Text, Pos: fset.Position(c.Slash)})
	}
	return out
}
