// Package shape classifies field types as bare, optional (`*T`) or list
// (`[]T`). Only one level is unwrapped: `*[]T` is an optional whose inner type
// is `[]T`.
package shape

import "go/types"

// Variant tags a Shape.
type Variant int

const (
	Bare Variant = iota
	Optional
	List
)

func (v Variant) String() string {
	switch v {
	case Optional:
		return "optional"
	case List:
		return "list"
	}
	return "bare"
}

// Shape is the classified form of a field type. Inner is the wrapped type for
// Optional and List and the type itself for Bare.
type Shape struct {
	Variant Variant
	Type    types.Type
	Inner   types.Type
}

// Classify never fails; unrecognised types are Bare.
func Classify(t types.Type) Shape {
	if p, ok := types.Unalias(t).(*types.Pointer); ok {
		return Shape{Variant: Optional, Type: t, Inner: p.Elem()}
	}
	// Named slice types (`type Tags []string`) count as lists, byte slices do not.
	if s, ok := t.Underlying().(*types.Slice); ok && !isByte(s.Elem()) {
		return Shape{Variant: List, Type: t, Inner: s.Elem()}
	}
	return Shape{Variant: Bare, Type: t, Inner: t}
}

// Is reports whether the shape is Bare(want) or Optional(want).
func (s Shape) Is(want types.Type) bool {
	if s.Variant == List {
		return false
	}
	return types.Identical(s.Inner, want)
}

// IsBasic is Is for predeclared basic types such as types.String.
func (s Shape) IsBasic(kind types.BasicKind) bool {
	return s.Is(types.Typ[kind])
}

func isByte(t types.Type) bool {
	b, ok := types.Unalias(t).(*types.Basic)
	return ok && b.Kind() == types.Byte
}

// Parsable reports whether text input can be converted into t: string, bool
// and numeric kinds (time.Duration among them), byte slices, and types whose
// pointer implements encoding.TextUnmarshaler.
func Parsable(t types.Type) bool {
	if unmarshalsText(t) {
		return true
	}
	switch u := t.Underlying().(type) {
	case *types.Basic:
		if u.Info()&types.IsUntyped != 0 {
			return false
		}
		return u.Info()&(types.IsString|types.IsBoolean|types.IsInteger|types.IsFloat) != 0
	case *types.Slice:
		return isByte(u.Elem())
	}
	return false
}

func unmarshalsText(t types.Type) bool {
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(t), false, nil, "UnmarshalText")
	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 1 || sig.Results().Len() != 1 {
		return false
	}
	param, ok := sig.Params().At(0).Type().Underlying().(*types.Slice)
	return ok && isByte(param.Elem()) && sig.Results().At(0).Type().String() == "error"
}
