package parsers

import (
	"go/token"
	"go/types"

	"github.com/goliatone/go-askgen/internal/directive"
	"github.com/goliatone/go-askgen/internal/prompt"
)

var multiSelectKeys = []string{keyPrompt, keyDefaults, keyOptions}

// ParseMultiSelect reads an `//ask:multiselect` directive. item is the slice
// element type of the field.
func ParseMultiSelect(d directive.Directive, item types.Type) (prompt.MultiSelect, error) {
	spec := prompt.MultiSelect{ItemType: item}
	var defaultsPos token.Position
	err := walk(d, multiSelectKeys, func(opt directive.Option) (err error) {
		switch opt.Key {
		case keyPrompt:
			spec.Prompt, err = stringOption(opt)
		case keyDefaults:
			defaultsPos = opt.Pos
			spec.Defaults, err = uintsOption(opt)
		case keyOptions:
			spec.Options, err = arrayOption(opt)
		}
		return err
	})
	if err != nil {
		return prompt.MultiSelect{}, err
	}
	if err := checkItems(spec.Options, item); err != nil {
		return prompt.MultiSelect{}, err
	}
	for _, index := range spec.Defaults {
		if err := checkIndex(defaultsPos, keyDefaults, index, spec.Options); err != nil {
			return prompt.MultiSelect{}, err
		}
	}
	return spec, nil
}
