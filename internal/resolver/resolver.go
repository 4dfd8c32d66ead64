// Package resolver decides which prompt each struct field gets. It combines
// the field's directives with the shape of its type, enforces the type
// requirements of each prompt kind and infers a kind when no directive is
// attached.
package resolver

import (
	"go/types"
	"strings"

	"github.com/goliatone/go-askgen/internal/diag"
	"github.com/goliatone/go-askgen/internal/directive"
	"github.com/goliatone/go-askgen/internal/loader"
	"github.com/goliatone/go-askgen/internal/parsers"
	"github.com/goliatone/go-askgen/internal/prompt"
	"github.com/goliatone/go-askgen/internal/shape"
)

// TagIgnore excludes a field from generation.
const TagIgnore = "ignore"

// Resolved pairs a field with its prompt specification. Ignored fields carry
// a nil Spec.
type Resolved struct {
	Field   loader.Field
	Shape   shape.Shape
	Spec    prompt.Spec
	Ignored bool
}

func isKind(tag string) bool {
	_, ok := prompt.ParseKind(tag)
	return ok
}

// Resolve produces the prompt specification for one field. qf controls how
// types are printed in diagnostics.
func Resolve(field loader.Field, qf types.Qualifier) (Resolved, error) {
	res := Resolved{Field: field, Shape: shape.Classify(field.Type)}

	ds, err := directive.Scan(field.Comments)
	if err != nil {
		return res, err
	}
	if _, ok := directive.First(ds, func(tag string) bool { return tag == TagIgnore }); ok {
		res.Ignored = true
		return res, nil
	}

	kinds := directive.Filter(ds, isKind)
	switch len(kinds) {
	case 0:
		res.Spec = infer(res.Shape)
		if _, ok := res.Spec.(prompt.Input); ok {
			return res, checkInput(field, res.Shape, qf)
		}
		return res, nil
	case 1:
	default:
		tags := make([]string, len(kinds))
		for i, d := range kinds {
			tags[i] = d.Tag
		}
		return res, diag.Errorf(kinds[1].Pos, "field %s has more than one prompt directive: %s", field.Name, strings.Join(tags, ", "))
	}

	res.Spec, err = dispatch(kinds[0], field, res.Shape, qf)
	return res, err
}

// infer picks a prompt for fields without a directive.
func infer(s shape.Shape) prompt.Spec {
	switch {
	case s.Variant == shape.List:
		return prompt.MultiSelect{ItemType: s.Inner}
	case s.IsBasic(types.Bool):
		return prompt.Confirm{}
	default:
		return prompt.Input{}
	}
}

// checkInput rejects fields the text answer of an input prompt cannot be
// converted into. Optional fields are checked against their element type.
func checkInput(field loader.Field, s shape.Shape, qf types.Qualifier) error {
	target := field.Type
	if s.Variant == shape.Optional {
		target = s.Inner
	}
	if shape.Parsable(target) {
		return nil
	}
	return diag.Errorf(field.TypePos, "input only supports string, bool, numeric, time.Duration or encoding.TextUnmarshaler types, got %s", types.TypeString(field.Type, qf))
}

func dispatch(d directive.Directive, field loader.Field, s shape.Shape, qf types.Qualifier) (prompt.Spec, error) {
	kind, _ := prompt.ParseKind(d.Tag)
	typeName := types.TypeString(field.Type, qf)

	switch kind {
	case prompt.KindInput:
		if err := checkInput(field, s, qf); err != nil {
			return nil, err
		}
		return parsers.ParseInput(d)
	case prompt.KindPassword:
		if !s.IsBasic(types.String) {
			return nil, diag.Errorf(field.TypePos, "password only supports string or *string type, got %s", typeName)
		}
		return parsers.ParsePassword(d)
	case prompt.KindConfirm:
		if !s.IsBasic(types.Bool) {
			return nil, diag.Errorf(field.TypePos, "confirm only supports bool or *bool type, got %s", typeName)
		}
		return parsers.ParseConfirm(d)
	case prompt.KindSelect:
		item := field.Type
		if s.Variant == shape.Optional {
			item = s.Inner
		}
		return parsers.ParseSelect(d, item)
	case prompt.KindMultiSelect:
		if s.Variant != shape.List {
			return nil, diag.Errorf(field.TypePos, "multiselect only supports slice type, got %s", typeName)
		}
		return parsers.ParseMultiSelect(d, s.Inner)
	}
	return nil, diag.Errorf(d.Pos, "unsupported directive %q", d.Tag)
}
