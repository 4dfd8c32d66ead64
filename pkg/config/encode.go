package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Encode renders cfg as a YAML config file that Load reads back. Empty
// values are left out so defaults keep applying.
func Encode(cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = Default()
	}
	values := map[string]any{
		"patterns": cfg.Patterns,
		"theme":    cfg.Theme,
		"backend":  cfg.Backend,
		"prefix":   cfg.Prefix,
		"suffix":   cfg.Suffix,
	}
	optional := map[string]any{
		"types":      cfg.Types,
		"output":     cfg.Output,
		"exclude":    cfg.Exclude,
		"build_tags": cfg.BuildTags,
		"templates":  cfg.Templates,
	}
	for key, value := range optional {
		switch v := value.(type) {
		case string:
			if v != "" {
				values[key] = v
			}
		case []string:
			if len(v) > 0 {
				values[key] = v
			}
		}
	}
	if cfg.Must {
		values["must"] = true
	}
	values["watch"] = map[string]any{
		"enabled":  cfg.Watch.Enabled,
		"debounce": cfg.Watch.Debounce.String(),
	}
	values["log"] = map[string]any{
		"level": cfg.Log.Level,
		"json":  cfg.Log.JSON,
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}
