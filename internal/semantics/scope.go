// Package semantics implements the SPACE semantic analyzer: a single
// top-down walk over the parsed AST that builds a tree of scope tables,
// resolves names and types, enforces visibility and access-operator
// rules, and records an ordered list of unresolved included references.
package semantics

import "github.com/lnelampl/spacec/internal/source"

// ScopeKind tags what kind of construct introduced a scope.
type ScopeKind int

const (
	MAIN ScopeKind = iota
	CLASS
	FUNCTION
	CONSTRUCTOR
	IF
	ELSE_IF
	ELSE
	WHILE
	DO
	FOR
	TRY
	CATCH
	CHECK
	IS
	SCOPE_ENUM
)

// EntryKind tags what a ScopeTable entry denotes.
type EntryKind int

const (
	VARIABLE EntryKind = iota
	CONSTANT
	ENTRY_FUNCTION
	ENTRY_CLASS
	ENTRY_CONSTRUCTOR
	ENTRY_ENUM
	ENTRY_ENUMERATOR
	EXTERNAL
	PARAMETER
)

// Visibility is the declared accessibility of an Entry.
type Visibility int

const (
	P_GLOBAL Visibility = iota
	GLOBAL_VIS
	PRIVATE_VIS
	SECURE_VIS
)

func VisibilityFromModifier(name string) Visibility {
	switch name {
	case "global":
		return GLOBAL_VIS
	case "private":
		return PRIVATE_VIS
	case "secure":
		return SECURE_VIS
	default:
		return P_GLOBAL
	}
}

// Entry is one symbol-table slot: name, declared type, visibility, kind,
// and — when the declaration introduces a nested scope — a reference to
// that child scope.
type Entry struct {
	Name       string
	Type       VarDec
	Visibility Visibility
	Kind       EntryKind
	Scope      *ScopeTable // non-nil iff Kind introduces a nested scope
	Pos        source.Position
}

// ScopeTable is a named container of declarations plus an ordered
// parameter list, linked to a parent scope through a non-owning back
// reference used purely for name-resolution walks.
type ScopeTable struct {
	Kind    ScopeKind
	Name    string
	Parent  *ScopeTable
	Symbols map[string]*Entry
	Params  []*Entry
	Pos     source.Position
}

// NewScope creates a child scope of parent (nil for the root MAIN scope).
func NewScope(kind ScopeKind, name string, parent *ScopeTable, pos source.Position) *ScopeTable {
	return &ScopeTable{
		Kind:    kind,
		Name:    name,
		Parent:  parent,
		Symbols: make(map[string]*Entry),
		Pos:     pos,
	}
}

// Declare adds an entry to the scope's symbol map, or reports the
// previously declared entry on a name collision within the same scope.
func (s *ScopeTable) Declare(e *Entry) (prev *Entry, redeclared bool) {
	if existing, ok := s.Symbols[e.Name]; ok {
		return existing, true
	}
	s.Symbols[e.Name] = e
	return nil, false
}

// Lookup searches this scope's symbol map and parameter list, then walks
// parent pointers up to MAIN.
func (s *ScopeTable) Lookup(name string) (*Entry, *ScopeTable) {
	for scope := s; scope != nil; scope = scope.Parent {
		if e, ok := scope.Symbols[name]; ok {
			return e, scope
		}
		for _, p := range scope.Params {
			if p.Name == name {
				return p, scope
			}
		}
	}
	return nil, nil
}

// LookupLocal searches only this scope's own symbols and parameters,
// without walking to the parent — used for member/class access segments.
func (s *ScopeTable) LookupLocal(name string) (*Entry, bool) {
	if e, ok := s.Symbols[name]; ok {
		return e, true
	}
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// EnclosingClass walks the parent chain to find the nearest CLASS scope.
func (s *ScopeTable) EnclosingClass() *ScopeTable {
	for scope := s; scope != nil; scope = scope.Parent {
		if scope.Kind == CLASS {
			return scope
		}
	}
	return nil
}

// EnclosingLoopOrIs walks the parent chain, bridging through
// IF/ELSE_IF/ELSE/TRY/CATCH, to find the nearest FOR/WHILE/DO/IS scope —
// the valid targets for break/continue.
func (s *ScopeTable) EnclosingLoopOrIs() *ScopeTable {
	for scope := s; scope != nil; scope = scope.Parent {
		switch scope.Kind {
		case FOR, WHILE, DO, IS:
			return scope
		case IF, ELSE_IF, ELSE, TRY, CATCH:
			continue
		default:
			return nil
		}
	}
	return nil
}
