package synth

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goliatone/go-askgen/internal/prompt"
)

type surveyEmitter struct {
	theme prompt.Theme
}

func (surveyEmitter) imports() []importSpec {
	return []importSpec{{Name: "survey", Path: surveyPath}}
}

func (e surveyEmitter) themeArgs() string {
	switch e.theme {
	case prompt.ThemeNone:
		return ""
	case prompt.ThemeExternal:
		return ", asker.External().Survey()..."
	}
	return ", asker.Colorful().Survey()..."
}

func (e surveyEmitter) ask(w *bytes.Buffer, p *plan, label string) {
	var answer, question string
	switch p.Spec.(type) {
	case prompt.Input:
		answer = "string"
		question = fmt.Sprintf("&survey.Input{Message: %s}", p.prompt)
	case prompt.Password:
		answer = "string"
		question = fmt.Sprintf("&survey.Password{Message: %s}", p.prompt)
	case prompt.Confirm:
		answer = "bool"
		question = fmt.Sprintf("&survey.Confirm{Message: %s", p.prompt)
		if p.confirmDefault != nil {
			question += ", Default: " + strconv.FormatBool(*p.confirmDefault)
		}
		question += "}"
	case prompt.Select:
		answer = "int"
		question = fmt.Sprintf("&survey.Select{Message: %s, Options: asker.Labels(options)", p.prompt)
		if p.selectDefault != nil {
			question += fmt.Sprintf(", Default: asker.DefaultLabel(options, %d)", *p.selectDefault)
		}
		question += "}"
	case prompt.MultiSelect:
		answer = "[]int"
		question = fmt.Sprintf("&survey.MultiSelect{Message: %s, Options: asker.Labels(options)", p.prompt)
		if p.multiDefaults != nil {
			question += ", Default: asker.DefaultLabels(options, " + intSlice(p.multiDefaults) + ")"
		}
		question += "}"
	}
	fmt.Fprintf(w, "\tvar res %s\n", answer)
	fmt.Fprintf(w, "\tif err := survey.AskOne(%s, &res%s); err != nil {\n", question, e.themeArgs())
	fmt.Fprintf(w, "\t\treturn asker.Wrap(%s, err)\n\t}\n", label)
}
