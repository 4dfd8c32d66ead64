package parsers

import (
	"go/token"
	"go/types"

	"github.com/goliatone/go-askgen/internal/directive"
	"github.com/goliatone/go-askgen/internal/prompt"
)

var selectKeys = []string{keyPrompt, keyDefault, keyOptions}

// ParseSelect reads an `//ask:select` directive. item is the resolved item
// type; literal options are checked against it.
func ParseSelect(d directive.Directive, item types.Type) (prompt.Select, error) {
	spec := prompt.Select{ItemType: item}
	var defaultPos token.Position
	err := walk(d, selectKeys, func(opt directive.Option) (err error) {
		switch opt.Key {
		case keyPrompt:
			spec.Prompt, err = stringOption(opt)
		case keyDefault:
			defaultPos = opt.Pos
			spec.Default, err = uintOption(opt)
		case keyOptions:
			spec.Options, err = arrayOption(opt)
		}
		return err
	})
	if err != nil {
		return prompt.Select{}, err
	}
	if err := checkItems(spec.Options, item); err != nil {
		return prompt.Select{}, err
	}
	if spec.Default != nil {
		if err := checkIndex(defaultPos, keyDefault, *spec.Default, spec.Options); err != nil {
			return prompt.Select{}, err
		}
	}
	return spec, nil
}
