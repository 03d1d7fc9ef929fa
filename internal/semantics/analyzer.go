package semantics

import (
	"fmt"

	"github.com/lnelampl/spacec/internal/ast"
	"github.com/lnelampl/spacec/internal/diagnostics"
	"github.com/lnelampl/spacec/internal/source"
)

// ExternalRef is one `include` path encountered during the walk, queued
// for a downstream include resolver; neither the analyzer nor the compiler
// driver opens the included file.
type ExternalRef struct {
	Path string
	Pos  source.Position
}

// Analyzer performs the single top-down walk over a parsed module: it
// builds the scope tree, resolves names and types, enforces visibility
// and access-operator rules, validates break/continue and if/try
// adjacency, and records unresolved includes.
type Analyzer struct {
	file      string
	diags     *diagnostics.Bag
	debug     bool
	root      *ScopeTable
	externals []ExternalRef
}

// New creates an Analyzer for one compilation unit.
func New(file string, diags *diagnostics.Bag, debug bool) *Analyzer {
	return &Analyzer{file: file, diags: diags, debug: debug}
}

// Externals returns the ordered list of include paths queued for
// cross-unit resolution.
func (a *Analyzer) Externals() []ExternalRef { return a.externals }

// Root returns the completed MAIN scope table.
func (a *Analyzer) Root() *ScopeTable { return a.root }

// Analyze walks module (an ast.RUNNABLE of top-level declarations),
// returning false if any error-severity diagnostic was raised.
func (a *Analyzer) Analyze(module *ast.Node) bool {
	a.root = NewScope(MAIN, "main", nil, module.Loc())

	// First sweep: forward-declare every top-level class/function/enum so
	// mutually referencing declarations resolve regardless of order.
	for _, decl := range module.Details {
		a.forwardDeclare(decl, a.root)
	}

	for _, decl := range module.Details {
		a.walkTopLevel(decl, a.root)
	}

	return !a.diags.HasErrors()
}

func (a *Analyzer) logf(format string, args ...interface{}) {
	if a.debug {
		fmt.Printf("[semantics] "+format+"\n", args...)
	}
}

// forwardDeclare registers a name-and-kind placeholder without descending
// into bodies, so later declarations can reference earlier or later
// siblings interchangeably.
func (a *Analyzer) forwardDeclare(n *ast.Node, scope *ScopeTable) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.FUNCTION:
		fnScope := NewScope(FUNCTION, n.Value, scope, n.Pos)
		a.declareEntry(scope, n.Value, Entry{Name: n.Value, Kind: ENTRY_FUNCTION, Type: a.funcReturnType(n), Visibility: a.modifierVisibility(n.Left), Scope: fnScope, Pos: n.Pos})
	case ast.CLASS:
		classScope := NewScope(CLASS, n.Value, scope, n.Pos)
		a.declareEntry(scope, n.Value, Entry{Name: n.Value, Kind: ENTRY_CLASS, Type: VarDec{Type: CLASS_REF, ClassName: n.Value}, Visibility: a.modifierVisibility(n.Left), Scope: classScope, Pos: n.Pos})
	case ast.ENUM:
		enumScope := NewScope(SCOPE_ENUM, n.Value, scope, n.Pos)
		a.declareEntry(scope, n.Value, Entry{Name: n.Value, Kind: ENTRY_ENUM, Type: VarDec{Type: CLASS_REF, ClassName: n.Value}, Visibility: a.modifierVisibility(n.Left), Scope: enumScope, Pos: n.Pos})
	}
}

func (a *Analyzer) declareEntry(scope *ScopeTable, name string, e Entry) *Entry {
	entry := e
	if _, redeclared := scope.Declare(&entry); redeclared {
		a.diags.Add(diagnostics.AlreadyDefined(a.file, e.Pos, name))
		return nil
	}
	return &entry
}

func (a *Analyzer) modifierVisibility(modifier *ast.Node) Visibility {
	if modifier == nil {
		return P_GLOBAL
	}
	return VisibilityFromModifier(modifier.Value)
}

func (a *Analyzer) funcReturnType(n *ast.Node) VarDec {
	if len(n.Details) == 0 || n.Details[0] == nil {
		return VoidDec
	}
	return a.resolveVarType(n.Details[0])
}

// resolveVarType converts a VAR_TYPE node into a VarDec, resolving a
// base-type keyword or a CLASS_REF by name.
func (a *Analyzer) resolveVarType(n *ast.Node) VarDec {
	if n == nil {
		return VoidDec
	}
	dim := 0
	if n.Left != nil && n.Left.Kind == ast.VAR_DIM {
		dim = atoiSafe(n.Left.Value)
	}
	if bt, ok := baseTypeNames[n.Value]; ok {
		return VarDec{Type: bt, Dimension: dim}
	}
	return VarDec{Type: CLASS_REF, ClassName: n.Value, Dimension: dim}
}

func atoiSafe(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return n
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// walkTopLevel dispatches one top-level declaration under MAIN, enforcing
// the rule that MAIN accepts only P_GLOBAL-visibility declarations.
func (a *Analyzer) walkTopLevel(n *ast.Node, scope *ScopeTable) {
	if n == nil {
		return
	}
	if scope.Kind == MAIN && n.Left != nil && n.Left.Kind == ast.MODIFIER {
		a.diags.Add(diagnostics.ModifierViolation(a.file, n.Left.Pos,
			fmt.Sprintf("modifier %q is not allowed at the top level", n.Left.Value)))
	}

	switch n.Kind {
	case ast.INCLUDE:
		a.externals = append(a.externals, ExternalRef{Path: n.Value, Pos: n.Pos})
	case ast.EXPORT:
		if _, scopeOf := scope.Lookup(n.Value); scopeOf == nil {
			a.diags.Add(diagnostics.NotDefined(a.file, n.Pos, n.Value))
		}
	case ast.VAR, ast.CONST, ast.ARRAY_VAR, ast.CONDITIONAL_VAR, ast.CLASS_INSTANCE_VAR:
		a.walkVarDecl(n, scope)
	case ast.FUNCTION:
		if scope.Kind != MAIN && scope.Kind != CLASS {
			a.diags.Add(diagnostics.StatementMisplaced(a.file, n.Pos, "functions are only allowed at the top level or inside a class"))
			return
		}
		a.walkFuncDecl(n, scope)
	case ast.CLASS:
		if scope.Kind != MAIN {
			a.diags.Add(diagnostics.StatementMisplaced(a.file, n.Pos, "classes are only allowed at the top level"))
			return
		}
		a.walkClassDecl(n, scope)
	case ast.ENUM:
		if scope.Kind != MAIN {
			a.diags.Add(diagnostics.StatementMisplaced(a.file, n.Pos, "enums are only allowed at the top level"))
			return
		}
		a.walkEnumDecl(n, scope)
	case ast.CLASS_CONSTRUCTOR:
		a.diags.Add(diagnostics.StatementMisplaced(a.file, n.Pos, "constructors are only allowed in classes"))
	default:
		a.walkStmt(n, scope)
	}
}

func (a *Analyzer) walkVarDecl(n *ast.Node, scope *ScopeTable) {
	var declared VarDec
	var explicit *ast.Node
	if len(n.Details) > 0 {
		explicit = n.Details[0]
	}
	if explicit != nil {
		declared = a.resolveVarType(explicit)
	}

	if n.Kind == ast.CLASS_INSTANCE_VAR {
		declared = a.inferExpr(n.Right, scope)
	} else if n.Right != nil {
		initType := a.inferExpr(n.Right, scope)
		if explicit == nil {
			declared = initType
		} else if !declared.NonStrictEqual(initType) {
			a.diags.Add(diagnostics.TypeMismatch(a.file, n.Right.Loc(), declared.String(), initType.String()))
		}
	}
	declared.Constant = n.Kind == ast.CONST

	a.declareEntry(scope, n.Value, Entry{
		Name: n.Value, Type: declared, Kind: constKind(n.Kind),
		Visibility: a.modifierVisibility(n.Left), Pos: n.Pos,
	})
}

func constKind(k ast.NodeKind) EntryKind {
	if k == ast.CONST {
		return CONSTANT
	}
	return VARIABLE
}

func (a *Analyzer) walkFuncDecl(n *ast.Node, parent *ScopeTable) {
	entry, _ := parent.LookupLocal(n.Value)
	var fnScope *ScopeTable
	if entry != nil && entry.Scope != nil {
		fnScope = entry.Scope
	} else {
		// No prior forward-declaration reached this scope (a local function
		// declared inside a block, rather than at module or class level).
		fnScope = NewScope(FUNCTION, n.Value, parent, n.Pos)
		a.declareEntry(parent, n.Value, Entry{Name: n.Value, Kind: ENTRY_FUNCTION, Type: a.funcReturnType(n), Visibility: a.modifierVisibility(n.Left), Scope: fnScope, Pos: n.Pos})
	}

	for _, p := range n.Details[1:] {
		if p == nil {
			continue
		}
		pe := &Entry{Name: p.Value, Type: a.resolveVarType(p.Details[0]), Kind: PARAMETER, Visibility: P_GLOBAL, Pos: p.Pos}
		fnScope.Params = append(fnScope.Params, pe)
	}

	if n.Right != nil {
		a.walkBlock(n.Right, fnScope)
	}
}

func (a *Analyzer) walkClassDecl(n *ast.Node, parent *ScopeTable) {
	entry, _ := parent.Lookup(n.Value)
	var classScope *ScopeTable
	if entry != nil && entry.Scope != nil {
		classScope = entry.Scope
	} else {
		classScope = NewScope(CLASS, n.Value, parent, n.Pos)
	}

	if len(n.Details) > 0 && n.Details[0] != nil {
		if _, scopeOf := parent.Lookup(n.Details[0].Value); scopeOf == nil {
			a.diags.Add(diagnostics.NotDefined(a.file, n.Details[0].Pos, n.Details[0].Value))
		}
	}

	if n.Right == nil {
		return
	}
	for _, member := range n.Right.Details {
		a.forwardDeclare(member, classScope)
	}
	seenConstructors := map[string]bool{}
	for _, member := range n.Right.Details {
		if member == nil {
			continue
		}
		if member.Kind == ast.CLASS_CONSTRUCTOR {
			a.walkConstructor(member, classScope, seenConstructors)
			continue
		}
		a.walkTopLevel(member, classScope)
	}
}

func (a *Analyzer) walkConstructor(n *ast.Node, classScope *ScopeTable, seen map[string]bool) {
	ctorScope := NewScope(CONSTRUCTOR, classScope.Name, classScope, n.Pos)
	sig := ""
	for _, p := range n.Details {
		if p == nil {
			continue
		}
		t := a.resolveVarType(p.Details[0])
		sig += t.String() + ","
		ctorScope.Params = append(ctorScope.Params, &Entry{Name: p.Value, Type: t, Kind: PARAMETER, Pos: p.Pos})
	}
	if seen[sig] {
		a.diags.Add(diagnostics.AlreadyDefined(a.file, n.Pos, "constructor("+sig+")"))
	} else {
		seen[sig] = true
		classScope.Params = append(classScope.Params, &Entry{Kind: ENTRY_CONSTRUCTOR, Type: VoidDec, Scope: ctorScope, Pos: n.Pos})
	}
	if n.Right != nil {
		a.walkBlock(n.Right, ctorScope)
	}
}

func (a *Analyzer) walkEnumDecl(n *ast.Node, scope *ScopeTable) {
	if n.Right == nil {
		return
	}
	entry, _ := scope.Lookup(n.Value)
	enumScope := scope
	if entry != nil && entry.Scope != nil {
		enumScope = entry.Scope
	}
	next := 0
	for _, enumerator := range n.Right.Details {
		if enumerator == nil {
			continue
		}
		value := next
		if enumerator.Right != nil {
			value = atoiSafe(enumerator.Right.Value)
		}
		next = value + 1
		a.declareEntry(enumScope, enumerator.Value, Entry{
			Name: enumerator.Value, Kind: ENTRY_ENUMERATOR,
			Type: VarDec{Type: INTEGER}, Visibility: P_GLOBAL, Pos: enumerator.Pos,
		})
	}
}
