package synth

import (
	"go/types"
	"slices"
	"strconv"
	"strings"
)

const (
	askerPath  = "github.com/goliatone/go-askgen/pkg/asker"
	surveyPath = "github.com/AlecAivazis/survey/v2"
	huhPath    = "github.com/charmbracelet/huh"
)

type importSpec struct {
	Name string
	Path string
}

// importSet assigns local names to the packages a generated file uses.
type importSet struct {
	self   string
	names  map[string]string // path -> local name
	pkg    map[string]string // path -> package name
	taken  map[string]string // local name -> path
	locals map[string]bool   // identifiers generated code declares
}

func newImportSet(self *types.Package) *importSet {
	s := &importSet{
		names:  make(map[string]string),
		pkg:    make(map[string]string),
		taken:  make(map[string]string),
		locals: map[string]bool{"r": true, "res": true, "v": true, "err": true, "options": true, "prompt": true},
	}
	if self != nil {
		s.self = self.Path()
	}
	return s
}

// add returns the local name used for path.
func (s *importSet) add(path, name string) string {
	if local, ok := s.names[path]; ok {
		return local
	}
	local := name
	for i := 2; s.taken[local] != "" || s.locals[local]; i++ {
		local = name + strconv.Itoa(i)
	}
	s.names[path] = local
	s.pkg[path] = name
	s.taken[local] = path
	return local
}

// qualifier prints types, registering every foreign package it meets.
func (s *importSet) qualifier(p *types.Package) string {
	if p == nil || p.Path() == s.self {
		return ""
	}
	return s.add(p.Path(), p.Name())
}

func (s *importSet) list() []importSpec {
	out := make([]importSpec, 0, len(s.names))
	for path, local := range s.names {
		spec := importSpec{Path: path}
		if local != s.pkg[path] {
			spec.Name = local
		}
		out = append(out, spec)
	}
	slices.SortFunc(out, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out
}
