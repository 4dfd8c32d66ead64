package synth

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goliatone/go-askgen/internal/prompt"
)

type huhEmitter struct {
	theme prompt.Theme
}

func (huhEmitter) imports() []importSpec {
	return []importSpec{{Name: "huh", Path: huhPath}}
}

func (e huhEmitter) themeExpr() string {
	switch e.theme {
	case prompt.ThemeNone:
		return "huh.ThemeBase()"
	case prompt.ThemeExternal:
		return "asker.External().Huh()"
	}
	return "asker.Colorful().Huh()"
}

// ask pre-seeds res with the default, which is how huh fields pick up an
// initial value.
func (e huhEmitter) ask(w *bytes.Buffer, p *plan, label string) {
	var decl, field string
	switch p.Spec.(type) {
	case prompt.Input:
		decl = "var res string"
		field = fmt.Sprintf("huh.NewInput().Title(%s).Value(&res)", p.prompt)
	case prompt.Password:
		decl = "var res string"
		field = fmt.Sprintf("huh.NewInput().Title(%s).EchoMode(huh.EchoModePassword).Value(&res)", p.prompt)
	case prompt.Confirm:
		decl = "var res bool"
		if p.confirmDefault != nil {
			decl = "res := " + strconv.FormatBool(*p.confirmDefault)
		}
		field = fmt.Sprintf("huh.NewConfirm().Title(%s).Value(&res)", p.prompt)
	case prompt.Select:
		decl = "var res int"
		if p.selectDefault != nil {
			decl = "res := " + strconv.Itoa(*p.selectDefault)
		}
		field = fmt.Sprintf("huh.NewSelect[int]().Title(%s).Options(asker.IndexOptions(options)...).Value(&res)", p.prompt)
	case prompt.MultiSelect:
		decl = "var res []int"
		if p.multiDefaults != nil {
			decl = "res := " + intSlice(p.multiDefaults)
		}
		field = fmt.Sprintf("huh.NewMultiSelect[int]().Title(%s).Options(asker.IndexOptions(options)...).Value(&res)", p.prompt)
	}
	fmt.Fprintf(w, "\t%s\n", decl)
	fmt.Fprintf(w, "\tif err := huh.NewForm(huh.NewGroup(%s)).WithTheme(%s).Run(); err != nil {\n", field, e.themeExpr())
	fmt.Fprintf(w, "\t\treturn asker.Wrap(%s, err)\n\t}\n", label)
}
