// Package directive reads `//ask:` directive comments attached to struct
// fields and types. A directive is a tag optionally followed by a parenthesised
// list of `key = value` options whose values are Go literals:
//
//	//ask:select(prompt = "Pick one", default = 1, options = ["a", "b", "c"])
//
// The package only understands the syntax. Which tags and keys are meaningful
// is decided by the parsers in internal/parsers.
package directive

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
)

// Prefix marks askgen directive comments.
const Prefix = "//ask:"

// LitKind classifies option values.
type LitKind int

const (
	LitString LitKind = iota + 1
	LitChar
	LitInt
	LitFloat
	LitBool
	LitArray
)

func (k LitKind) String() string {
	switch k {
	case LitString:
		return "string"
	case LitChar:
		return "char"
	case LitInt:
		return "integer"
	case LitFloat:
		return "float"
	case LitBool:
		return "bool"
	case LitArray:
		return "array"
	}
	return "unknown"
}

// Literal is an option value. Text holds Go source for the value and can be
// embedded in generated code as is; arrays render as `[a, b]` and carry their
// elements in Elems.
type Literal struct {
	Kind  LitKind
	Text  string
	Elems []Literal
	Pos   token.Position
}

// StringValue unquotes a string literal.
func (l Literal) StringValue() (string, error) {
	if l.Kind != LitString {
		return "", fmt.Errorf("expected a string literal, got %s", l.Kind)
	}
	return strconv.Unquote(l.Text)
}

// BoolValue returns the value of a bool literal.
func (l Literal) BoolValue() (bool, error) {
	if l.Kind != LitBool {
		return false, fmt.Errorf("expected a bool literal, got %s", l.Kind)
	}
	return l.Text == "true", nil
}

// UintValue returns the value of a non-negative integer literal.
func (l Literal) UintValue() (int, error) {
	if l.Kind != LitInt || strings.HasPrefix(l.Text, "-") {
		return 0, fmt.Errorf("expected an unsigned integer literal, got %s", l.describe())
	}
	v, err := strconv.ParseUint(strings.ReplaceAll(l.Text, "_", ""), 0, strconv.IntSize-1)
	if err != nil {
		return 0, fmt.Errorf("invalid unsigned integer %s", l.Text)
	}
	return int(v), nil
}

func (l Literal) describe() string {
	if l.Kind == LitInt {
		return "negative integer " + l.Text
	}
	return l.Kind.String()
}

// Option is one `key` or `key = value` entry. Value is nil for bare keys.
type Option struct {
	Key   string
	Value *Literal
	Pos   token.Position
}

// Directive is a parsed `//ask:` comment.
type Directive struct {
	Tag     string
	Options []Option
	Pos     token.Position
	Text    string
}

// Comment is a raw comment line with its position, as found in the syntax tree.
type Comment struct {
	Text string
	Pos  token.Position
}

// Scan parses every askgen directive in comments, preserving declaration
// order. Comments without the prefix are skipped.
func Scan(comments []Comment) ([]Directive, error) {
	var out []Directive
	for _, c := range comments {
		d, ok, err := Parse(c.Text, c.Pos)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// First returns the first directive whose tag is accepted by match.
func First(ds []Directive, match func(tag string) bool) (Directive, bool) {
	for _, d := range ds {
		if match(d.Tag) {
			return d, true
		}
	}
	return Directive{}, false
}

// Filter returns the directives whose tag is accepted by match.
func Filter(ds []Directive, match func(tag string) bool) []Directive {
	var out []Directive
	for _, d := range ds {
		if match(d.Tag) {
			out = append(out, d)
		}
	}
	return out
}
