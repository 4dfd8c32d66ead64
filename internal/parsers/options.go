package parsers

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/goliatone/go-askgen/internal/diag"
	"github.com/goliatone/go-askgen/internal/directive"
)

const (
	keyPrompt   = "prompt"
	keyDefault  = "default"
	keyDefaults = "defaults"
	keyOptions  = "options"
)

// walk visits the options of d in declaration order, rejecting keys outside
// keys and repeated keys before handing each option to fn.
func walk(d directive.Directive, keys []string, fn func(directive.Option) error) error {
	seen := make(map[string]bool, len(d.Options))
	for _, opt := range d.Options {
		if !contains(keys, opt.Key) {
			return diag.Errorf(opt.Pos, "%s", expected(keys))
		}
		if seen[opt.Key] {
			return diag.Errorf(opt.Pos, "duplicate `%s`", opt.Key)
		}
		seen[opt.Key] = true
		if err := fn(opt); err != nil {
			return err
		}
	}
	return nil
}

func expected(keys []string) string {
	quoted := make([]string, len(keys))
	for i, key := range keys {
		quoted[i] = "`" + key + "`"
	}
	if len(quoted) == 1 {
		return "expected " + quoted[0]
	}
	return "expected " + strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func value(opt directive.Option, kind directive.LitKind) (*directive.Literal, error) {
	if opt.Value == nil {
		return nil, diag.Errorf(opt.Pos, "missing value for `%s`", opt.Key)
	}
	if opt.Value.Kind != kind {
		return nil, diag.Errorf(opt.Value.Pos, "`%s` expects a %s literal, got %s", opt.Key, kind, opt.Value.Kind)
	}
	return opt.Value, nil
}

func stringOption(opt directive.Option) (*string, error) {
	lit, err := value(opt, directive.LitString)
	if err != nil {
		return nil, err
	}
	s, err := lit.StringValue()
	if err != nil {
		return nil, diag.Errorf(lit.Pos, "invalid string %s", lit.Text)
	}
	return &s, nil
}

func boolOption(opt directive.Option) (*bool, error) {
	lit, err := value(opt, directive.LitBool)
	if err != nil {
		return nil, err
	}
	b, err := lit.BoolValue()
	if err != nil {
		return nil, diag.At(lit.Pos, err)
	}
	return &b, nil
}

func uintOption(opt directive.Option) (*int, error) {
	lit, err := value(opt, directive.LitInt)
	if err != nil {
		return nil, err
	}
	n, err := lit.UintValue()
	if err != nil {
		return nil, diag.Errorf(lit.Pos, "`%s` %v", opt.Key, err)
	}
	return &n, nil
}

func uintsOption(opt directive.Option) ([]int, error) {
	lit, err := value(opt, directive.LitArray)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(lit.Elems))
	seen := make(map[int]bool, len(lit.Elems))
	for _, elem := range lit.Elems {
		n, err := elem.UintValue()
		if err != nil {
			return nil, diag.Errorf(elem.Pos, "`%s` %v", opt.Key, err)
		}
		if seen[n] {
			return nil, diag.Errorf(elem.Pos, "duplicate index %d in `%s`", n, opt.Key)
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}

func arrayOption(opt directive.Option) (*directive.Literal, error) {
	return value(opt, directive.LitArray)
}

func checkIndex(pos token.Position, key string, index int, options *directive.Literal) error {
	if options == nil {
		return nil
	}
	if index >= len(options.Elems) {
		return diag.Errorf(pos, "`%s` index %d out of range for %d options", key, index, len(options.Elems))
	}
	return nil
}

func describeOption(i int, lit directive.Literal) string {
	return fmt.Sprintf("option %d (%s)", i, lit.Text)
}
