package asker

import (
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

var (
	// ErrAborted reports that the operator canceled a prompt (Ctrl+C).
	ErrAborted = errors.New("asker: prompt aborted")
	// ErrNoTerminal is returned by Ready when stdin is not a terminal.
	ErrNoTerminal = errors.New("asker: stdin is not a terminal")
)

// FieldError ties a prompt failure to the field being collected.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return "ask " + e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Wrap attributes err to field. Cancellation errors of either backend become
// ErrAborted. A nil err stays nil.
func Wrap(field string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, huh.ErrUserAborted) {
		err = ErrAborted
	}
	return &FieldError{Field: field, Err: err}
}

// Must panics when err is not nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Ready reports whether prompts can run, that is whether stdin is attached
// to a terminal.
func Ready() error {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return nil
	}
	return ErrNoTerminal
}
