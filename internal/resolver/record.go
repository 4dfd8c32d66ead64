package resolver

import (
	"github.com/goliatone/go-askgen/internal/diag"
	"github.com/goliatone/go-askgen/internal/directive"
	"github.com/goliatone/go-askgen/internal/loader"
	"github.com/goliatone/go-askgen/internal/parsers"
	"github.com/goliatone/go-askgen/internal/prompt"
)

// TagGenerate marks a struct for generation without changing its theme.
const TagGenerate = "generate"

// IsRecordTag reports whether tag selects a struct for generation.
func IsRecordTag(tag string) bool {
	return tag == TagGenerate || tag == parsers.TagTheme
}

// Theme returns the theme requested by the record's `//ask:theme` directive,
// or fallback when there is none.
func Theme(rec loader.Record, fallback prompt.Theme) (prompt.Theme, error) {
	ds, err := directive.Scan(rec.Comments)
	if err != nil {
		return "", err
	}
	themes := directive.Filter(ds, func(tag string) bool { return tag == parsers.TagTheme })
	switch len(themes) {
	case 0:
		if fallback == "" {
			return prompt.DefaultTheme, nil
		}
		return fallback, nil
	case 1:
		return parsers.ParseTheme(themes[0])
	}
	return "", diag.Errorf(themes[1].Pos, "record %s has more than one theme directive", rec.Name)
}

// Record resolves every field of rec. All field diagnostics are collected;
// when any field fails the record as a whole fails and no result is returned.
func Record(rec loader.Record) ([]Resolved, error) {
	qf := rec.Qualifier()
	var (
		out   []Resolved
		diags diag.List
	)
	for _, field := range rec.Fields {
		res, err := Resolve(field, qf)
		if err != nil {
			diags = append(diags, diag.At(field.Pos, err))
			continue
		}
		if res.Ignored {
			continue
		}
		out = append(out, res)
	}
	if err := diags.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
