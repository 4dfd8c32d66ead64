package parsers

import (
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-askgen/internal/directive"
	"github.com/goliatone/go-askgen/internal/prompt"
)

func mustDirective(t *testing.T, text string) directive.Directive {
	t.Helper()
	d, ok, err := directive.Parse(text, token.Position{Filename: "record.go", Line: 3, Column: 2})
	if err != nil || !ok {
		t.Fatalf("parse %q: ok=%v err=%v", text, ok, err)
	}
	return d
}

func expectError(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("want error containing %q, got %q", want, err.Error())
	}
}

var str = types.Typ[types.String]

func TestParseInput(t *testing.T) {
	spec, err := ParseInput(mustDirective(t, `//ask:input(prompt = "Your name")`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if spec.Prompt == nil || *spec.Prompt != "Your name" {
		t.Fatalf("prompt not captured: %+v", spec)
	}

	empty, err := ParseInput(mustDirective(t, `//ask:input`))
	if err != nil {
		t.Fatalf("parse bare: %v", err)
	}
	if diff := cmp.Diff(prompt.Input{}, empty); diff != "" {
		t.Fatalf("bare input should be empty (-want +got):\n%s", diff)
	}
}

func TestParsers_RejectUnknownKeys(t *testing.T) {
	_, err := ParseInput(mustDirective(t, `//ask:input(default = "x")`))
	expectError(t, err, "expected `prompt`")

	_, err = ParseConfirm(mustDirective(t, `//ask:confirm(options = [true])`))
	expectError(t, err, "expected `prompt` or `default`")

	_, err = ParseSelect(mustDirective(t, `//ask:select(defaults = [1])`), str)
	expectError(t, err, "expected `prompt`, `default` or `options`")

	_, err = ParseMultiSelect(mustDirective(t, `//ask:multiselect(default = 1)`), str)
	expectError(t, err, "expected `prompt`, `defaults` or `options`")
}

func TestParsers_MissingValue(t *testing.T) {
	_, err := ParsePassword(mustDirective(t, `//ask:password(prompt)`))
	expectError(t, err, "missing value for `prompt`")
}

func TestParsers_WrongLiteralKind(t *testing.T) {
	_, err := ParseConfirm(mustDirective(t, `//ask:confirm(default = "yes")`))
	expectError(t, err, "`default` expects a bool literal, got string")

	_, err = ParseSelect(mustDirective(t, `//ask:select(default = -1)`), str)
	expectError(t, err, "negative integer -1")

	_, err = ParseSelect(mustDirective(t, `//ask:select(options = "a")`), str)
	expectError(t, err, "`options` expects a array literal, got string")
}

func TestParsers_DuplicateKey(t *testing.T) {
	_, err := ParseInput(mustDirective(t, `//ask:input(prompt = "a", prompt = "b")`))
	expectError(t, err, "duplicate `prompt`")
}

func TestParseConfirm(t *testing.T) {
	spec, err := ParseConfirm(mustDirective(t, `//ask:confirm(default = true)`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(prompt.Confirm{Default: prompt.Bool(true)}, spec); diff != "" {
		t.Fatalf("confirm mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSelect(t *testing.T) {
	spec, err := ParseSelect(mustDirective(t, `//ask:select(prompt = "Pick", options = ["a", "b", "c"], default = 2)`), str)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if *spec.Prompt != "Pick" || *spec.Default != 2 {
		t.Fatalf("unexpected spec: %+v", spec)
	}
	if spec.Options == nil || spec.Options.Text != `["a", "b", "c"]` {
		t.Fatalf("options not captured: %+v", spec.Options)
	}
	if spec.ItemType != str {
		t.Fatalf("item type not kept")
	}
}

func TestParseSelect_ValidatesOptions(t *testing.T) {
	_, err := ParseSelect(mustDirective(t, `//ask:select(options = ["a", 2])`), str)
	expectError(t, err, "mixes string and integer literals")

	_, err = ParseSelect(mustDirective(t, `//ask:select(options = [1, 2])`), str)
	expectError(t, err, "option 0 (1) is not assignable to string")

	_, err = ParseSelect(mustDirective(t, `//ask:select(options = [1.5])`), types.Typ[types.Int])
	expectError(t, err, "is not assignable to int")

	if _, err := ParseSelect(mustDirective(t, `//ask:select(options = [1, 2])`), types.Typ[types.Float64]); err != nil {
		t.Fatalf("integer literals should fit float64: %v", err)
	}

	_, err = ParseSelect(mustDirective(t, `//ask:select(options = ["a"], default = 1)`), str)
	expectError(t, err, "`default` index 1 out of range for 1 options")

	if _, err := ParseSelect(mustDirective(t, `//ask:select(default = 7)`), str); err != nil {
		t.Fatalf("default without literal options cannot be range checked: %v", err)
	}
}

func TestParseSelect_NumericOptionsMustFit(t *testing.T) {
	tests := []struct {
		name    string
		options string
		item    types.BasicKind
		ok      bool
	}{
		{name: "integral float for int", options: "[1e3, 2.0]", item: types.Int, ok: true},
		{name: "fraction for int", options: "[2.5]", item: types.Int},
		{name: "negative for uint", options: "[-1]", item: types.Uint},
		{name: "negative for int", options: "[-1, 0]", item: types.Int, ok: true},
		{name: "uint8 upper bound", options: "[0, 255]", item: types.Uint8, ok: true},
		{name: "uint8 overflow", options: "[256]", item: types.Uint8},
		{name: "int8 lower bound", options: "[-128]", item: types.Int8, ok: true},
		{name: "int8 underflow", options: "[-129]", item: types.Int8},
		{name: "int64 overflow", options: "[9223372036854775808]", item: types.Int64},
		{name: "uint64 max", options: "[18446744073709551615]", item: types.Uint64, ok: true},
		{name: "rune for int32", options: "['a', 'b']", item: types.Int32, ok: true},
		{name: "float32 overflow", options: "[1e39]", item: types.Float32},
		{name: "negative float", options: "[-0.5]", item: types.Float64, ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := types.Typ[tt.item]
			_, err := ParseSelect(mustDirective(t, "//ask:select(options = "+tt.options+")"), item)
			if tt.ok {
				if err != nil {
					t.Fatalf("options %s should fit %s: %v", tt.options, item, err)
				}
				return
			}
			expectError(t, err, "is not assignable to "+item.String())
		})
	}
}

func TestParseMultiSelect(t *testing.T) {
	spec, err := ParseMultiSelect(mustDirective(t, `//ask:multiselect(defaults = [0, 2], options = ["x", "y", "z"])`), str)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]int{0, 2}, spec.Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	_, err = ParseMultiSelect(mustDirective(t, `//ask:multiselect(defaults = [0, 0])`), str)
	expectError(t, err, "duplicate index 0")

	_, err = ParseMultiSelect(mustDirective(t, `//ask:multiselect(defaults = [3], options = ["x"])`), str)
	expectError(t, err, "`defaults` index 3 out of range")

	_, err = ParseMultiSelect(mustDirective(t, `//ask:multiselect(defaults = ["a"])`), str)
	expectError(t, err, "expected an unsigned integer literal")
}

func TestParseTheme(t *testing.T) {
	cases := map[string]prompt.Theme{
		`//ask:theme(none)`:               prompt.ThemeNone,
		`//ask:theme(colorful)`:           prompt.ThemeColorful,
		`//ask:theme(external)`:           prompt.ThemeExternal,
		`//ask:theme(style = "external")`: prompt.ThemeExternal,
	}
	for text, want := range cases {
		got, err := ParseTheme(mustDirective(t, text))
		if err != nil {
			t.Fatalf("%s: %v", text, err)
		}
		if got != want {
			t.Fatalf("%s: want %s, got %s", text, want, got)
		}
	}

	_, err := ParseTheme(mustDirective(t, `//ask:theme`))
	expectError(t, err, "theme takes exactly one choice")

	_, err = ParseTheme(mustDirective(t, `//ask:theme(neon)`))
	expectError(t, err, "expected `none`, `colorful`, `external` or `style`")

	_, err = ParseTheme(mustDirective(t, `//ask:theme(style = "neon")`))
	expectError(t, err, "unknown theme")
}
