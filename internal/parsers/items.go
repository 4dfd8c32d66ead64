package parsers

import (
	"go/constant"
	"go/token"
	"go/types"
	"math"
	"strings"

	"github.com/goliatone/go-askgen/internal/diag"
	"github.com/goliatone/go-askgen/internal/directive"
)

// checkItems verifies that a literal options array can be written as a
// []item composite literal: elements share one literal kind and each is
// assignable to the item type.
func checkItems(options *directive.Literal, item types.Type) error {
	if options == nil {
		return nil
	}
	var first directive.LitKind
	for i, elem := range options.Elems {
		if elem.Kind == directive.LitArray {
			return diag.Errorf(elem.Pos, "%s: nested arrays are not supported", describeOption(i, elem))
		}
		if i == 0 {
			first = elem.Kind
		} else if elem.Kind != first {
			return diag.Errorf(elem.Pos, "%s: mixes %s and %s literals", describeOption(i, elem), first, elem.Kind)
		}
		if !assignable(elem, item) {
			return diag.Errorf(elem.Pos, "%s is not assignable to %s", describeOption(i, elem), item)
		}
	}
	return nil
}

func assignable(lit directive.Literal, item types.Type) bool {
	switch u := item.Underlying().(type) {
	case *types.Interface:
		return u.Empty()
	case *types.Basic:
		info := u.Info()
		switch lit.Kind {
		case directive.LitString:
			return info&types.IsString != 0
		case directive.LitBool:
			return info&types.IsBoolean != 0
		case directive.LitInt, directive.LitFloat, directive.LitChar:
			if info&types.IsNumeric == 0 || info&types.IsComplex != 0 {
				return false
			}
			return representable(numeric(lit), u)
		}
	}
	return false
}

func numeric(lit directive.Literal) constant.Value {
	tok := token.INT
	switch lit.Kind {
	case directive.LitFloat:
		tok = token.FLOAT
	case directive.LitChar:
		tok = token.CHAR
	}
	text, neg := strings.CutPrefix(lit.Text, "-")
	v := constant.MakeFromLiteral(text, tok, 0)
	if neg && v.Kind() != constant.Unknown {
		v = constant.UnaryOp(token.SUB, v, 0)
	}
	return v
}

// representable reports whether v converts to b without truncation or
// overflow. int, uint and uintptr are taken as 64 bits wide.
func representable(v constant.Value, b *types.Basic) bool {
	info := b.Info()
	switch {
	case info&types.IsInteger != 0:
		x := constant.ToInt(v)
		if x.Kind() != constant.Int {
			return false
		}
		bits := intBits(b.Kind())
		if info&types.IsUnsigned != 0 {
			u, exact := constant.Uint64Val(x)
			return exact && constant.Sign(x) >= 0 && (bits == 64 || u < 1<<bits)
		}
		n, exact := constant.Int64Val(x)
		return exact && (bits == 64 || (n >= -1<<(bits-1) && n < 1<<(bits-1)))
	case info&types.IsFloat != 0:
		x := constant.ToFloat(v)
		if x.Kind() != constant.Float {
			return false
		}
		if b.Kind() == types.Float32 {
			f, _ := constant.Float32Val(x)
			return !math.IsInf(float64(f), 0)
		}
		f, _ := constant.Float64Val(x)
		return !math.IsInf(f, 0)
	}
	return false
}

func intBits(kind types.BasicKind) uint {
	switch kind {
	case types.Int8, types.Uint8:
		return 8
	case types.Int16, types.Uint16:
		return 16
	case types.Int32, types.Uint32:
		return 32
	}
	return 64
}
