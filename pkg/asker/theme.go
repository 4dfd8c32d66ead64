package asker

import (
	"errors"
	"fmt"
	"maps"
	"sync/atomic"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	theme "github.com/goliatone/go-theme"
)

// Icon is a survey icon: the glyph and its ansi format ("cyan+b").
type Icon struct {
	Text   string
	Format string
}

// Icons configures the survey backend.
type Icons struct {
	Question       Icon
	Help           Icon
	Error          Icon
	SelectFocus    Icon
	MarkedOption   Icon
	UnmarkedOption Icon
}

// Colors configures the huh backend. Values are lipgloss colors: ANSI
// numbers ("12") or hex ("#7D56F4").
type Colors struct {
	Title       string
	Description string
	Selector    string
	Selected    string
	Error       string
}

// Theme is an immutable prompt theme usable by both backends. The zero value
// leaves the library defaults untouched.
type Theme struct {
	Name   string
	Icons  Icons
	Colors Colors
}

// Plain returns the theme that applies no styling.
func Plain() Theme {
	return Theme{Name: "none"}
}

// Colorful returns the bundled colorful theme.
func Colorful() Theme {
	return Theme{
		Name: "colorful",
		Icons: Icons{
			Question:       Icon{Text: "?", Format: "cyan+b"},
			Help:           Icon{Text: "i", Format: "cyan"},
			Error:          Icon{Text: "x", Format: "red+b"},
			SelectFocus:    Icon{Text: "❯", Format: "cyan+b"},
			MarkedOption:   Icon{Text: "◉", Format: "green+b"},
			UnmarkedOption: Icon{Text: "◯", Format: "default+hb"},
		},
		Colors: Colors{
			Title:       "12",
			Description: "8",
			Selector:    "14",
			Selected:    "10",
			Error:       "9",
		},
	}
}

var external atomic.Pointer[Theme]

// UseTheme installs the theme returned by External. It is meant to be called
// once during program start, before any prompt runs.
func UseTheme(t Theme) {
	external.Store(&t)
}

// External returns the theme installed with UseTheme, or Colorful when none
// was installed.
func External() Theme {
	if t := external.Load(); t != nil {
		return *t
	}
	return Colorful()
}

// Survey returns the ask options applying t to a survey prompt.
func (t Theme) Survey() []survey.AskOpt {
	if t.Icons == (Icons{}) {
		return nil
	}
	icons := t.Icons
	return []survey.AskOpt{survey.WithIcons(func(set *survey.IconSet) {
		apply(&set.Question, icons.Question)
		apply(&set.Help, icons.Help)
		apply(&set.Error, icons.Error)
		apply(&set.SelectFocus, icons.SelectFocus)
		apply(&set.MarkedOption, icons.MarkedOption)
		apply(&set.UnmarkedOption, icons.UnmarkedOption)
	})}
}

func apply(dst *survey.Icon, src Icon) {
	if src.Text != "" {
		dst.Text = src.Text
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
}

// Huh returns a huh theme built on huh.ThemeBase with t's colors.
func (t Theme) Huh() *huh.Theme {
	base := huh.ThemeBase()
	c := t.Colors
	for _, styles := range []*huh.FieldStyles{&base.Focused, &base.Blurred} {
		if c.Title != "" {
			styles.Title = styles.Title.Foreground(lipgloss.Color(c.Title)).Bold(true)
		}
		if c.Description != "" {
			styles.Description = styles.Description.Foreground(lipgloss.Color(c.Description))
		}
		if c.Error != "" {
			styles.ErrorMessage = styles.ErrorMessage.Foreground(lipgloss.Color(c.Error))
		}
	}
	if c.Selector != "" {
		base.Focused.SelectSelector = base.Focused.SelectSelector.Foreground(lipgloss.Color(c.Selector))
		base.Focused.MultiSelectSelector = base.Focused.MultiSelectSelector.Foreground(lipgloss.Color(c.Selector))
	}
	if c.Selected != "" {
		base.Focused.SelectedOption = base.Focused.SelectedOption.Foreground(lipgloss.Color(c.Selected))
	}
	return base
}

// ErrNoManifest is returned by FromManifest for a nil manifest.
var ErrNoManifest = errors.New("asker: theme manifest is nil")

// Token keys read from a go-theme manifest. Icon glyphs use the `.icon`
// suffix, so "survey.question" is the format and "survey.question.icon" the
// glyph.
const (
	TokenSurveyQuestion = "survey.question"
	TokenSurveyHelp     = "survey.help"
	TokenSurveyError    = "survey.error"
	TokenSurveySelect   = "survey.select"
	TokenSurveyMarked   = "survey.marked"
	TokenSurveyUnmarked = "survey.unmarked"

	TokenHuhTitle       = "huh.title"
	TokenHuhDescription = "huh.description"
	TokenHuhSelector    = "huh.selector"
	TokenHuhSelected    = "huh.selected"
	TokenHuhError       = "huh.error"
)

// FromManifest derives a theme from a go-theme manifest, starting from
// Colorful and overriding it with the manifest tokens. A non-empty variant
// layers the variant tokens on top.
func FromManifest(m *theme.Manifest, variant string) (Theme, error) {
	if m == nil {
		return Theme{}, ErrNoManifest
	}
	tokens := maps.Clone(m.Tokens)
	if tokens == nil {
		tokens = map[string]string{}
	}
	name := m.Name
	if variant != "" {
		v, ok := m.Variants[variant]
		if !ok {
			return Theme{}, fmt.Errorf("asker: theme %q has no variant %q", m.Name, variant)
		}
		maps.Copy(tokens, v.Tokens)
		name += "/" + variant
	}

	t := Colorful()
	t.Name = name
	icon := func(dst *Icon, key string) {
		if format := tokens[key]; format != "" {
			dst.Format = format
		}
		if text := tokens[key+".icon"]; text != "" {
			dst.Text = text
		}
	}
	icon(&t.Icons.Question, TokenSurveyQuestion)
	icon(&t.Icons.Help, TokenSurveyHelp)
	icon(&t.Icons.Error, TokenSurveyError)
	icon(&t.Icons.SelectFocus, TokenSurveySelect)
	icon(&t.Icons.MarkedOption, TokenSurveyMarked)
	icon(&t.Icons.UnmarkedOption, TokenSurveyUnmarked)

	color := func(dst *string, key string) {
		if value := tokens[key]; value != "" {
			*dst = value
		}
	}
	color(&t.Colors.Title, TokenHuhTitle)
	color(&t.Colors.Description, TokenHuhDescription)
	color(&t.Colors.Selector, TokenHuhSelector)
	color(&t.Colors.Selected, TokenHuhSelected)
	color(&t.Colors.Error, TokenHuhError)
	return t, nil
}

// FromSelection is FromManifest for a go-theme selection. Variants the
// manifest does not declare are ignored.
func FromSelection(sel *theme.Selection) (Theme, error) {
	if sel == nil || sel.Manifest == nil {
		return Theme{}, ErrNoManifest
	}
	variant := sel.Variant
	if _, ok := sel.Manifest.Variants[variant]; !ok {
		variant = ""
	}
	return FromManifest(sel.Manifest, variant)
}
