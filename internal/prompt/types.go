package prompt

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/goliatone/go-askgen/internal/directive"
)

// Kind enumerates the supported prompt kinds. The values double as directive
// tags (`//ask:select`).
type Kind string

const (
	KindInput       Kind = "input"
	KindPassword    Kind = "password"
	KindConfirm     Kind = "confirm"
	KindSelect      Kind = "select"
	KindMultiSelect Kind = "multiselect"
)

// Kinds lists every recognized prompt kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindInput, KindPassword, KindConfirm, KindSelect, KindMultiSelect}
}

// ParseKind maps a directive tag to a Kind.
func ParseKind(tag string) (Kind, bool) {
	for _, kind := range Kinds() {
		if string(kind) == tag {
			return kind, true
		}
	}
	return "", false
}

// Spec is the resolved description of one field prompt.
type Spec interface {
	Kind() Kind
}

// Input asks for free text.
type Input struct {
	Prompt *string
}

// Password asks for a masked secret.
type Password struct {
	Prompt *string
}

// Confirm asks a yes/no question.
type Confirm struct {
	Prompt  *string
	Default *bool
}

// Select asks to pick one item. Options is nil when the caller supplies the
// items at call time.
type Select struct {
	Prompt   *string
	Default  *int
	Options  *directive.Literal
	ItemType types.Type
}

// MultiSelect asks to pick several items. A nil Defaults means no default
// selection step is emitted.
type MultiSelect struct {
	Prompt   *string
	Defaults []int
	Options  *directive.Literal
	ItemType types.Type
}

func (Input) Kind() Kind       { return KindInput }
func (Password) Kind() Kind    { return KindPassword }
func (Confirm) Kind() Kind     { return KindConfirm }
func (Select) Kind() Kind      { return KindSelect }
func (MultiSelect) Kind() Kind { return KindMultiSelect }

// Theme selects how emitted prompts are styled.
type Theme string

const (
	// ThemeNone leaves the prompt library defaults untouched.
	ThemeNone Theme = "none"
	// ThemeColorful applies the colorful theme bundled with the runtime package.
	ThemeColorful Theme = "colorful"
	// ThemeExternal applies the theme installed by the caller at runtime.
	ThemeExternal Theme = "external"
)

// DefaultTheme is used when neither the record nor the configuration picks one.
const DefaultTheme = ThemeColorful

// ParseTheme validates a theme name.
func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeNone:
		return ThemeNone, nil
	case ThemeColorful, "default":
		return ThemeColorful, nil
	case ThemeExternal:
		return ThemeExternal, nil
	}
	return "", fmt.Errorf("prompt: unknown theme %q (expected none, colorful or external)", raw)
}

// Backend names the prompt library generated code is written against.
type Backend string

const (
	BackendSurvey Backend = "survey"
	BackendHuh    Backend = "huh"
)

// ParseBackend validates a backend name.
func ParseBackend(raw string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(raw))) {
	case BackendSurvey, "":
		return BackendSurvey, nil
	case BackendHuh:
		return BackendHuh, nil
	}
	return "", fmt.Errorf("prompt: unknown backend %q (expected survey or huh)", raw)
}

// String returns a pointer to s, handy when building specs by hand.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i.
func Int(i int) *int { return &i }
