// Package prompt defines the canonical prompt specifications askgen resolves
// for each struct field. A Spec is independent of how the field was declared:
// resolvers build one from a directive comment (or from the field's type when
// no directive is attached) and synthesizers turn it into a method. Theme and
// Backend describe process-wide choices that are fixed before a generation pass
// starts and passed by value to every synthesis step.
package prompt
