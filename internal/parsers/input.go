package parsers

import (
	"github.com/goliatone/go-askgen/internal/directive"
	"github.com/goliatone/go-askgen/internal/prompt"
)

var inputKeys = []string{keyPrompt}

// ParseInput reads an `//ask:input` directive.
func ParseInput(d directive.Directive) (prompt.Input, error) {
	var spec prompt.Input
	err := walk(d, inputKeys, func(opt directive.Option) (err error) {
		spec.Prompt, err = stringOption(opt)
		return err
	})
	return spec, err
}
