package loader

import (
	"go/token"
	"go/types"

	"github.com/goliatone/go-askgen/internal/directive"
)

// Field describes one struct field. Embedded fields are named after their
// type, as in Go selector expressions.
type Field struct {
	Name     string
	Type     types.Type
	Embedded bool
	Pos      token.Position
	TypePos  token.Position
	Comments []directive.Comment
}

// Exported reports whether the field is exported.
func (f Field) Exported() bool {
	return token.IsExported(f.Name)
}

// Record is a struct type selected for generation.
type Record struct {
	Name     string
	Package  *types.Package
	Filename string
	Pos      token.Position
	Comments []directive.Comment
	Fields   []Field
}

// Qualifier prints types relative to the record package.
func (r Record) Qualifier() types.Qualifier {
	return types.RelativeTo(r.Package)
}
