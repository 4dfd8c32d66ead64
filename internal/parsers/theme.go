package parsers

import (
	"github.com/goliatone/go-askgen/internal/diag"
	"github.com/goliatone/go-askgen/internal/directive"
	"github.com/goliatone/go-askgen/internal/prompt"
)

// TagTheme is the record-level directive selecting the presentation theme.
const TagTheme = "theme"

var themeKeys = []string{string(prompt.ThemeNone), string(prompt.ThemeColorful), string(prompt.ThemeExternal), "style"}

// ParseTheme reads `//ask:theme(colorful)` or `//ask:theme(style = "none")`.
// Exactly one choice must be given.
func ParseTheme(d directive.Directive) (prompt.Theme, error) {
	if len(d.Options) != 1 {
		return "", diag.Errorf(d.Pos, "theme takes exactly one choice: %s", expected(themeKeys))
	}
	var choice prompt.Theme
	err := walk(d, themeKeys, func(opt directive.Option) error {
		if opt.Key != "style" {
			if opt.Value != nil {
				return diag.Errorf(opt.Pos, "`%s` takes no value", opt.Key)
			}
			choice = prompt.Theme(opt.Key)
			return nil
		}
		raw, err := stringOption(opt)
		if err != nil {
			return err
		}
		choice, err = prompt.ParseTheme(*raw)
		if err != nil {
			return diag.At(opt.Value.Pos, err)
		}
		return nil
	})
	return choice, err
}
