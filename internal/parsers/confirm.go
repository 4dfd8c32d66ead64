package parsers

import (
	"github.com/goliatone/go-askgen/internal/directive"
	"github.com/goliatone/go-askgen/internal/prompt"
)

var confirmKeys = []string{keyPrompt, keyDefault}

// ParseConfirm reads an `//ask:confirm` directive.
func ParseConfirm(d directive.Directive) (prompt.Confirm, error) {
	var spec prompt.Confirm
	err := walk(d, confirmKeys, func(opt directive.Option) (err error) {
		switch opt.Key {
		case keyPrompt:
			spec.Prompt, err = stringOption(opt)
		case keyDefault:
			spec.Default, err = boolOption(opt)
		}
		return err
	})
	return spec, err
}
