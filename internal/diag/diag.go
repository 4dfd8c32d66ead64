// Package diag carries positional diagnostics produced while resolving
// directives. A Diagnostic points at the offending field type or directive so
// the message reads like a compiler error: `profile.go:12:2: message`.
package diag

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// ErrInvalidRecord is matched by every List so callers can test for
// resolution failures with errors.Is.
var ErrInvalidRecord = errors.New("askgen: invalid record")

// Diagnostic is a single positioned message.
type Diagnostic struct {
	Pos token.Position
	Msg string
}

// Errorf builds a Diagnostic at pos.
func Errorf(pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (d *Diagnostic) Error() string {
	if d == nil {
		return ""
	}
	if !d.Pos.IsValid() {
		return d.Msg
	}
	return d.Pos.String() + ": " + d.Msg
}

// At returns err as a Diagnostic positioned at pos, keeping the position of
// err when it already carries one.
func At(pos token.Position, err error) *Diagnostic {
	if err == nil {
		return nil
	}
	var d *Diagnostic
	if errors.As(err, &d) {
		if d.Pos.IsValid() {
			return d
		}
		return &Diagnostic{Pos: pos, Msg: d.Msg}
	}
	return &Diagnostic{Pos: pos, Msg: err.Error()}
}

// List aggregates the diagnostics of one record.
type List []*Diagnostic

// Add appends err, flattening nested lists.
func (l *List) Add(err error) {
	if err == nil {
		return
	}
	var nested List
	if errors.As(err, &nested) {
		*l = append(*l, nested...)
		return
	}
	*l = append(*l, At(token.Position{}, err))
}

// Err returns nil for an empty list.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	msgs := make([]string, 0, len(l))
	for _, d := range l {
		msgs = append(msgs, d.Error())
	}
	return strings.Join(msgs, "\n")
}

// Is reports ErrInvalidRecord.
func (l List) Is(target error) bool {
	return target == ErrInvalidRecord
}
