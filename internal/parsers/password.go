package parsers

import (
	"github.com/goliatone/go-askgen/internal/directive"
	"github.com/goliatone/go-askgen/internal/prompt"
)

var passwordKeys = []string{keyPrompt}

// ParsePassword reads an `//ask:password` directive.
func ParsePassword(d directive.Directive) (prompt.Password, error) {
	var spec prompt.Password
	err := walk(d, passwordKeys, func(opt directive.Option) (err error) {
		spec.Prompt, err = stringOption(opt)
		return err
	})
	return spec, err
}
