package synth

import (
	"go/token"
	"go/types"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"

	"github.com/goliatone/go-askgen/internal/directive"
	"github.com/goliatone/go-askgen/internal/prompt"
	"github.com/goliatone/go-askgen/internal/resolver"
	"github.com/goliatone/go-askgen/internal/shape"
)

// plan is everything the backends need to emit one method. Static values
// are embedded as Go expressions; deferred ones become parameters.
type plan struct {
	resolver.Resolved

	method string
	must   string
	params []string
	args   []string

	prompt  string
	options string
	item    string

	selectDefault  *int
	multiDefaults  []int
	confirmDefault *bool
}

// methodNames derives the generated method names for a field. Unexported
// fields get unexported methods.
func methodNames(prefix, field string) (ask, must string) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	prefix = strcase.ToCamel(prefix)
	if token.IsExported(field) {
		return prefix + field, "Must" + prefix + field
	}
	return strcase.ToLowerCamel(prefix) + upperFirst(field), "must" + prefix + upperFirst(field)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func newPlan(res resolver.Resolved, prefix string, qf types.Qualifier) *plan {
	p := &plan{Resolved: res}
	p.method, p.must = methodNames(prefix, res.Field.Name)

	var promptText *string
	switch spec := res.Spec.(type) {
	case prompt.Input:
		promptText = spec.Prompt
	case prompt.Password:
		promptText = spec.Prompt
	case prompt.Confirm:
		promptText = spec.Prompt
		p.confirmDefault = spec.Default
	case prompt.Select:
		promptText = spec.Prompt
		p.selectDefault = spec.Default
		p.setItems(spec.Options, spec.ItemType, qf)
	case prompt.MultiSelect:
		promptText = spec.Prompt
		p.multiDefaults = spec.Defaults
		p.setItems(spec.Options, spec.ItemType, qf)
	}

	if promptText != nil {
		p.prompt = strconv.Quote(*promptText)
	} else {
		p.prompt = "prompt"
		p.params = append([]string{"prompt string"}, p.params...)
		p.args = append([]string{"prompt"}, p.args...)
	}
	return p
}

func (p *plan) setItems(options *directive.Literal, item types.Type, qf types.Qualifier) {
	p.item = types.TypeString(item, qf)
	if options == nil {
		p.params = append(p.params, "options []"+p.item)
		p.args = append(p.args, "options")
		return
	}
	elems := make([]string, len(options.Elems))
	for i, elem := range options.Elems {
		elems[i] = elem.Text
	}
	p.options = "options := []" + p.item + "{" + strings.Join(elems, ", ") + "}"
}

// target is the type a string or bool answer is converted to.
func (p *plan) target() types.Type {
	if p.Shape.Variant == shape.Optional {
		return p.Shape.Inner
	}
	return p.Field.Type
}

// convert returns the expression turning the string answer into the field
// type and whether the conversion can fail.
func (p *plan) convert(qf types.Qualifier) (string, bool) {
	t := p.target()
	if types.Identical(t, types.Typ[types.String]) {
		return "res", false
	}
	switch u := t.Underlying().(type) {
	case *types.Basic:
		if u.Info()&types.IsString != 0 {
			return types.TypeString(t, qf) + "(res)", false
		}
	case *types.Slice:
		if b, ok := types.Unalias(u.Elem()).(*types.Basic); ok && b.Kind() == types.Byte {
			return types.TypeString(t, qf) + "(res)", false
		}
	}
	return "asker.ParseValue[" + types.TypeString(t, qf) + "](res)", true
}

func intSlice(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "[]int{" + strings.Join(parts, ", ") + "}"
}
