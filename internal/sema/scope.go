package sema

import (
	"maps"
	"slices"

	"github.com/you-not-fish/nexus/internal/syntax"
)

// Var is a variable or constant binding.
type Var struct {
	Name  string
	Type  Type
	Const bool
}

// Scope holds the names declared in one lexical block.
// Variables, functions and structs live in separate namespaces.
type Scope struct {
	parent  int // index of the enclosing scope, -1 for the outermost
	vars    map[string]*Var
	funcs   map[string]Type // function name -> return type
	structs map[string][]syntax.Param
}

// Scopes is an index-addressed arena of scopes. Scopes are pushed and
// popped in strict LIFO order; lookups walk parent links from the
// innermost scope outward.
type Scopes struct {
	arena []Scope
	cur   int
}

// NewScopes returns an arena holding a single, empty outermost scope.
func NewScopes() *Scopes {
	s := &Scopes{cur: -1}
	s.Push()
	return s
}

// Push opens a new innermost scope.
func (s *Scopes) Push() {
	s.arena = append(s.arena, Scope{
		parent:  s.cur,
		vars:    make(map[string]*Var),
		funcs:   make(map[string]Type),
		structs: make(map[string][]syntax.Param),
	})
	s.cur = len(s.arena) - 1
}

// Pop closes the innermost scope. The outermost scope is never popped.
func (s *Scopes) Pop() {
	if s.cur <= 0 {
		return
	}
	s.cur = s.arena[s.cur].parent
	s.arena = s.arena[:s.cur+1]
}

// Depth returns the number of open scopes.
func (s *Scopes) Depth() int {
	return len(s.arena)
}

// LookupVar returns the innermost variable named name, or nil.
func (s *Scopes) LookupVar(name string) *Var {
	for i := s.cur; i >= 0; i = s.arena[i].parent {
		if v := s.arena[i].vars[name]; v != nil {
			return v
		}
	}
	return nil
}

// LookupFunc returns the return type of the innermost function named name.
func (s *Scopes) LookupFunc(name string) (Type, bool) {
	for i := s.cur; i >= 0; i = s.arena[i].parent {
		if t, ok := s.arena[i].funcs[name]; ok {
			return t, true
		}
	}
	return Type{}, false
}

// LookupStruct returns the fields of the innermost struct or class named name.
func (s *Scopes) LookupStruct(name string) ([]syntax.Param, bool) {
	for i := s.cur; i >= 0; i = s.arena[i].parent {
		if f, ok := s.arena[i].structs[name]; ok {
			return f, true
		}
	}
	return nil, false
}

// DefineVar binds v in the innermost scope, replacing any binding there.
func (s *Scopes) DefineVar(v *Var) {
	s.arena[s.cur].vars[v.Name] = v
}

// DefineFunc binds a function in the innermost scope.
func (s *Scopes) DefineFunc(name string, result Type) {
	s.arena[s.cur].funcs[name] = result
}

// DefineStruct binds a struct or class in the innermost scope.
func (s *Scopes) DefineStruct(name string, fields []syntax.Param) {
	s.arena[s.cur].structs[name] = fields
}

// visibleVars returns the sorted names of all visible variables.
func (s *Scopes) visibleVars() []string {
	seen := make(map[string]bool)
	for i := s.cur; i >= 0; i = s.arena[i].parent {
		for name := range s.arena[i].vars {
			seen[name] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// visibleFuncs returns the sorted names of all visible functions.
func (s *Scopes) visibleFuncs() []string {
	seen := make(map[string]bool)
	for i := s.cur; i >= 0; i = s.arena[i].parent {
		for name := range s.arena[i].funcs {
			seen[name] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
