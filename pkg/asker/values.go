package asker

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
)

// Labels renders options as the strings shown to the operator.
func Labels[T any](options []T) []string {
	out := make([]string, len(options))
	for i, option := range options {
		out[i] = fmt.Sprint(option)
	}
	return out
}

// IndexOptions builds huh options whose values are the option indexes, so
// the answer maps back to options without comparing values.
func IndexOptions[T any](options []T) []huh.Option[int] {
	out := make([]huh.Option[int], len(options))
	for i, label := range Labels(options) {
		out[i] = huh.NewOption(label, i)
	}
	return out
}

// Pick returns the options at the selected indexes, in selection order.
// Indexes outside options are skipped.
func Pick[T any](options []T, selected []int) []T {
	out := make([]T, 0, len(selected))
	for _, i := range selected {
		if i < 0 || i >= len(options) {
			continue
		}
		out = append(out, options[i])
	}
	return out
}

// DefaultLabel returns the label of options[i] for a survey Select default,
// or nil when i is out of range so no default is applied.
func DefaultLabel[T any](options []T, i int) any {
	if i < 0 || i >= len(options) {
		return nil
	}
	return fmt.Sprint(options[i])
}

// DefaultLabels is DefaultLabel for MultiSelect.
func DefaultLabels[T any](options []T, indexes []int) []string {
	return Labels(Pick(options, indexes))
}

var durationType = reflect.TypeOf(time.Duration(0))

// ParseValue converts operator input into T. Supported are string, bool,
// integer and float kinds, time.Duration and types implementing
// encoding.TextUnmarshaler through a pointer.
func ParseValue[T any](raw string) (T, error) {
	var out T
	if u, ok := any(&out).(encoding.TextUnmarshaler); ok {
		if err := u.UnmarshalText([]byte(raw)); err != nil {
			return out, fmt.Errorf("asker: parse %q: %w", raw, err)
		}
		return out, nil
	}

	rv := reflect.ValueOf(&out).Elem()
	typ := rv.Type()
	trimmed := strings.TrimSpace(raw)
	var err error
	switch {
	case typ == durationType:
		var d time.Duration
		d, err = time.ParseDuration(trimmed)
		rv.SetInt(int64(d))
	case typ.Kind() == reflect.String:
		rv.SetString(raw)
	case typ.Kind() == reflect.Bool:
		var b bool
		b, err = strconv.ParseBool(trimmed)
		rv.SetBool(b)
	case rv.CanInt():
		var n int64
		n, err = strconv.ParseInt(trimmed, 0, typ.Bits())
		rv.SetInt(n)
	case rv.CanUint():
		var n uint64
		n, err = strconv.ParseUint(trimmed, 0, typ.Bits())
		rv.SetUint(n)
	case rv.CanFloat():
		var f float64
		f, err = strconv.ParseFloat(trimmed, typ.Bits())
		rv.SetFloat(f)
	default:
		return out, fmt.Errorf("asker: cannot parse into %s", typ)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("asker: parse %q as %s: %w", raw, typ, err)
	}
	return out, nil
}
