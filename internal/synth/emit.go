package synth

import (
	"bytes"
	"fmt"
	"go/types"
	"strconv"
	"strings"

	"github.com/goliatone/go-askgen/internal/prompt"
	"github.com/goliatone/go-askgen/internal/shape"
)

// emitter writes the backend specific part of a method: the answer variable
// and the blocking interaction. It returns on failure with the wrapped error.
type emitter interface {
	imports() []importSpec
	ask(w *bytes.Buffer, p *plan, label string)
}

func newEmitter(backend prompt.Backend, theme prompt.Theme) emitter {
	if backend == prompt.BackendHuh {
		return huhEmitter{theme: theme}
	}
	return surveyEmitter{theme: theme}
}

// writeMethod emits `func (r *Record) Ask<Field>(...) error`.
func writeMethod(w *bytes.Buffer, recv string, p *plan, em emitter, qf types.Qualifier) {
	label := strconv.Quote(p.Field.Name)

	fmt.Fprintf(w, "// %s asks the operator for %s.\n", p.method, p.Field.Name)
	fmt.Fprintf(w, "func (r *%s) %s(%s) error {\n", recv, p.method, strings.Join(p.params, ", "))
	if p.options != "" {
		fmt.Fprintf(w, "\t%s\n", p.options)
	}
	em.ask(w, p, label)
	writeAssign(w, p, label, qf)
	w.WriteString("\treturn nil\n}\n")
}

// writeMust emits the panicking variant returning the receiver.
func writeMust(w *bytes.Buffer, recv string, p *plan) {
	fmt.Fprintf(w, "// %s is like %s but panics on failure.\n", p.must, p.method)
	fmt.Fprintf(w, "func (r *%s) %s(%s) *%s {\n", recv, p.must, strings.Join(p.params, ", "), recv)
	fmt.Fprintf(w, "\tasker.Must(r.%s(%s))\n", p.method, strings.Join(p.args, ", "))
	w.WriteString("\treturn r\n}\n")
}

func writeAssign(w *bytes.Buffer, p *plan, label string, qf types.Qualifier) {
	var expr string
	switch p.Spec.(type) {
	case prompt.Select:
		expr = "options[res]"
	case prompt.MultiSelect:
		expr = "asker.Pick(options, res)"
	case prompt.Confirm:
		expr = "res"
	default:
		conv, fallible := p.convert(qf)
		if fallible {
			fmt.Fprintf(w, "\tv, err := %s\n", conv)
			fmt.Fprintf(w, "\tif err != nil {\n\t\treturn asker.Wrap(%s, err)\n\t}\n", label)
			writeStore(w, p, "v", true)
			return
		}
		expr = conv
	}
	writeStore(w, p, expr, false)
}

func writeStore(w *bytes.Buffer, p *plan, expr string, named bool) {
	if p.Shape.Variant != shape.Optional {
		fmt.Fprintf(w, "\tr.%s = %s\n", p.Field.Name, expr)
		return
	}
	if !named {
		fmt.Fprintf(w, "\tv := %s\n", expr)
	}
	fmt.Fprintf(w, "\tr.%s = &v\n", p.Field.Name)
}
