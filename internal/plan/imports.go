package plan

import (
	"cmp"
	"go/types"
	"slices"
	"strconv"
	"strings"

	"context-generator/internal/common"
)

// importSet assigns each referenced package a unique local name.
type importSet struct {
	local  *types.Package
	byPath map[string]string // path -> name used in code
	used   map[string]string // name -> path
	specs  []Import
}

func newImportSet(local *types.Package) *importSet {
	return &importSet{
		local:  local,
		byPath: make(map[string]string),
		used:   make(map[string]string),
	}
}

// add returns the name path is referred to by, importing it if needed.
func (s *importSet) add(path, name string) string {
	if n, ok := s.byPath[path]; ok {
		return n
	}

	alias := name
	for i := 2; ; i++ {
		if _, taken := s.used[alias]; !taken {
			break
		}
		alias = name + strconv.Itoa(i)
	}

	s.byPath[path] = alias
	s.used[alias] = path

	spec := Import{Path: path}
	if alias != common.PkgAlias(path) {
		spec.Alias = alias
	}
	s.specs = append(s.specs, spec)

	return alias
}

// qualifier is a types.Qualifier that records imports as types are spelled.
func (s *importSet) qualifier(pkg *types.Package) string {
	if s.local != nil && pkg.Path() == s.local.Path() {
		return ""
	}

	return s.add(pkg.Path(), pkg.Name())
}

// list returns the imports sorted by path.
func (s *importSet) list() []Import {
	out := slices.Clone(s.specs)
	for i := range out {
		out[i].Std = s.isStd(out[i].Path)
	}
	slices.SortFunc(out, func(a, b Import) int {
		return cmp.Compare(a.Path, b.Path)
	})

	return out
}

// isStd guesses whether path is in the standard library: its first element
// has no dot and is not the first element of the local package's path, which
// covers modules named without a domain.
func (s *importSet) isStd(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	if strings.Contains(first, ".") {
		return false
	}
	if s.local != nil {
		localFirst, _, _ := strings.Cut(s.local.Path(), "/")
		return first != localFirst
	}

	return true
}
