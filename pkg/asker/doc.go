// Package asker is the runtime support imported by code that askgen
// generates. It holds the prompt themes, error translation for aborted
// prompts and the small generic helpers generated methods use to map option
// indexes back to values.
//
// Generated methods look roughly like:
//
//	func (r *Profile) AskChoice() error {
//		options := []string{"a", "b", "c"}
//		var res int
//		if err := survey.AskOne(&survey.Select{Message: "Pick", Options: asker.Labels(options)}, &res, asker.Colorful().Survey()...); err != nil {
//			return asker.Wrap("Choice", err)
//		}
//		r.Choice = options[res]
//		return nil
//	}
//
// Records generated with the external theme pick up whatever theme the
// program installed with UseTheme.
package asker
