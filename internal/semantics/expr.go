package semantics

import (
	"github.com/lnelampl/spacec/internal/ast"
	"github.com/lnelampl/spacec/internal/diagnostics"
	"github.com/lnelampl/spacec/internal/source"
)

// inferExpr type-checks an expression subtree against scope and returns
// its resolved VarDec, reporting mismatches and undefined names along the
// way. Unresolvable operands fall back to ExternalDec so a single bad
// reference doesn't cascade into unrelated diagnostics.
func (a *Analyzer) inferExpr(n *ast.Node, scope *ScopeTable) VarDec {
	if n == nil {
		return VoidDec
	}
	switch n.Kind {
	case ast.NUMBER:
		return IntegerDec
	case ast.FLOAT:
		return VarDec{Type: FLOAT}
	case ast.STRING:
		return VarDec{Type: STRING}
	case ast.CHAR_ARRAY:
		return VarDec{Type: CHAR}
	case ast.BOOL:
		return BooleanDec
	case ast.NULL:
		return NullDec
	case ast.THIS:
		if cls := scope.EnclosingClass(); cls != nil {
			return VarDec{Type: CLASS_REF, ClassName: cls.Name}
		}
		a.diags.Add(diagnostics.StatementMisplaced(a.file, n.Pos, "'this' used outside of a class"))
		return CustomDec

	case ast.IDEN:
		entry, _ := scope.Lookup(n.Value)
		if entry == nil {
			a.diags.Add(diagnostics.NotDefined(a.file, n.Pos, n.Value))
			return ExternalDec
		}
		return entry.Type

	case ast.PLUS, ast.MINUS, ast.MULTIPLY, ast.DIVIDE, ast.MODULO:
		return a.inferArithmetic(n, scope)

	case ast.EQUALS, ast.NOT_EQUALS, ast.LESS, ast.GREATER, ast.LESS_EQ, ast.GREATER_EQ:
		a.inferExpr(n.Left, scope)
		a.inferExpr(n.Right, scope)
		return BooleanDec

	case ast.LOGICAL_AND, ast.LOGICAL_OR, ast.CHAINED_CONDITION:
		a.inferExpr(n.Left, scope)
		a.inferExpr(n.Right, scope)
		return BooleanDec

	case ast.CONDITIONAL_ASSIGNMENT:
		a.inferExpr(n.Left, scope)
		ifTrue := a.inferExpr(n.Right, scope)
		var ifFalse VarDec
		if len(n.Details) > 0 {
			ifFalse = a.inferExpr(n.Details[0], scope)
		}
		if !ifTrue.NonStrictEqual(ifFalse) {
			a.diags.Add(diagnostics.TypeMismatch(a.file, n.Pos, ifTrue.String(), ifFalse.String()))
		}
		return ifTrue

	case ast.SIMPLE_ASSIGNMENT:
		lhs := a.inferExpr(n.Left, scope)
		rhs := a.inferExpr(n.Right, scope)
		a.checkAssignable(n.Left, lhs, rhs)
		return lhs

	case ast.ARRAY_ASSIGNMENT:
		lhs := a.inferExpr(n.Left, scope)
		rhs := a.inferExpr(n.Right, scope)
		if !lhs.NonStrictEqual(rhs) {
			a.diags.Add(diagnostics.TypeMismatch(a.file, n.Pos, lhs.String(), rhs.String()))
		}
		return lhs

	case ast.SIMPLE_INC_DEC_ASS:
		lhs := a.inferExpr(n.Left, scope)
		if n.Right != nil {
			rhs := a.inferExpr(n.Right, scope)
			a.checkAssignable(n.Left, lhs, rhs)
		} else if !isNumeric(lhs.Type) {
			a.diags.Add(diagnostics.TypeMismatch(a.file, n.Pos, "numeric", lhs.String()))
		}
		return lhs

	case ast.FUNCTION_CALL:
		return a.inferCall(n, scope, nil)

	case ast.ARRAY_CREATION:
		var elem VarDec
		for i, e := range n.Details {
			t := a.inferExpr(e, scope)
			if i == 0 {
				elem = t
			}
		}
		elem.Dimension++
		return elem

	case ast.MEMBER_ACCESS, ast.CLASS_ACCESS:
		if n.Left == nil {
			// Bare array-index step with no preceding base: shouldn't occur
			// standalone, but resolve defensively.
			return a.inferExpr(n.Right, scope)
		}
		base := a.inferExpr(n.Left, scope)
		return a.inferArraySuffix(n.Right, base, n.Pos)

	case ast.MEM_CLASS_ACC:
		return a.inferAccessChain(n, scope)

	default:
		return ExternalDec
	}
}

func (a *Analyzer) inferArithmetic(n *ast.Node, scope *ScopeTable) VarDec {
	left := a.inferExpr(n.Left, scope)
	right := a.inferExpr(n.Right, scope)
	if n.Kind == ast.PLUS && (left.Type == STRING || right.Type == STRING) {
		return VarDec{Type: STRING}
	}
	if !isNumeric(left.Type) || !isNumeric(right.Type) {
		if left.Type != EXTERNAL_RET && right.Type != EXTERNAL_RET && left.Type != CUSTOM && right.Type != CUSTOM {
			a.diags.Add(diagnostics.TypeMismatch(a.file, n.Pos, "numeric", left.String()+" / "+right.String()))
		}
		return left
	}
	if left.Type == DOUBLE || right.Type == DOUBLE {
		return VarDec{Type: DOUBLE}
	}
	if left.Type == FLOAT || right.Type == FLOAT {
		return VarDec{Type: FLOAT}
	}
	return left
}

func (a *Analyzer) checkAssignable(target *ast.Node, lhs, rhs VarDec) {
	if lhs.Constant {
		a.diags.Add(diagnostics.ModifierViolation(a.file, target.Loc(), "cannot assign to a constant"))
	}
	if !lhs.NonStrictEqual(rhs) {
		a.diags.Add(diagnostics.TypeMismatch(a.file, target.Loc(), lhs.String(), rhs.String()))
	}
}

// inferArraySuffix walks a right-to-left ARRAY_ACCESS chain, reducing
// base's declared dimension by one per index step and flagging a chain
// deeper than the declared dimension.
func (a *Analyzer) inferArraySuffix(chain *ast.Node, base VarDec, pos source.Position) VarDec {
	result := base
	for step := chain; step != nil; step = step.Right {
		if result.Dimension <= 0 {
			a.diags.Add(diagnostics.NoSuchArrayDimension(a.file, pos))
			break
		}
		result.Dimension--
	}
	return result
}

// classScope looks up the ScopeTable owned by a top-level class or enum
// entry, used to resolve the trailing segments of an access chain.
func (a *Analyzer) classScope(name string) *ScopeTable {
	entry, _ := a.root.Lookup(name)
	if entry == nil {
		return nil
	}
	return entry.Scope
}

// inferAccessChain walks a MEM_CLASS_ACC's ordered Details spine,
// resolving each segment's type in the context of the previous segment's
// class scope, and enforcing visibility at every step after the first.
func (a *Analyzer) inferAccessChain(n *ast.Node, scope *ScopeTable) VarDec {
	if len(n.Details) == 0 {
		return ExternalDec
	}
	current := a.inferExpr(n.Details[0], scope)
	var ownerScope *ScopeTable
	if current.Type == CLASS_REF {
		ownerScope = a.classScope(current.ClassName)
	}

	for _, step := range n.Details[1:] {
		target := step.Right
		if step.Kind == ast.CLASS_ACCESS && (ownerScope == nil || ownerScope.Kind != CLASS) {
			a.diags.Add(diagnostics.WrongAccessor(a.file, step.Pos, `used "->" for non-class access instead of "."`))
		}

		if ownerScope == nil {
			// Unresolvable owner (external or primitive): keep inferring
			// so arguments still get checked, but stop reporting types.
			if target.Kind == ast.FUNCTION_CALL {
				current = a.inferCall(target, scope, nil)
			} else {
				current = ExternalDec
			}
			continue
		}

		switch target.Kind {
		case ast.FUNCTION_CALL:
			current = a.inferCall(target, scope, ownerScope)
		case ast.MEMBER_ACCESS:
			// An array-indexed field step: target.Left is the field IDEN,
			// target.Right the ARRAY_ACCESS chain.
			entry, ok := ownerScope.LookupLocal(target.Left.Value)
			if !ok {
				a.diags.Add(diagnostics.NotDefined(a.file, target.Left.Loc(), target.Left.Value))
				current = ExternalDec
				continue
			}
			a.checkModifierAccess(entry, target.Left.Pos, scope)
			a.checkDotAccessor(step, entry, ownerScope)
			current = a.inferArraySuffix(target.Right, entry.Type, target.Pos)
		default: // IDEN
			entry, ok := ownerScope.LookupLocal(target.Value)
			if !ok {
				a.diags.Add(diagnostics.NotDefined(a.file, target.Loc(), target.Value))
				current = ExternalDec
				continue
			}
			a.checkModifierAccess(entry, target.Pos, scope)
			a.checkDotAccessor(step, entry, ownerScope)
			current = entry.Type
		}

		if current.Type == CLASS_REF {
			ownerScope = a.classScope(current.ClassName)
		} else {
			ownerScope = nil
		}
	}
	return current
}

// inferCall resolves a function/method/constructor call's callee against
// owner (nil for a bare call resolved in the lexical scope chain, non-nil
// for a call as an access-chain segment on owner's class scope), checks
// its argument count, and returns its declared return type.
func (a *Analyzer) inferCall(n *ast.Node, scope *ScopeTable, owner *ScopeTable) VarDec {
	var entry *Entry
	if owner != nil {
		entry, _ = owner.LookupLocal(n.Value)
	} else {
		entry, _ = scope.Lookup(n.Value)
	}
	if entry == nil {
		for _, arg := range n.Details {
			a.inferExpr(arg, scope)
		}
		return ExternalDec
	}
	if owner != nil {
		a.checkModifierAccess(entry, n.Pos, scope)
	}
	if entry.Kind == ENTRY_CLASS {
		return a.inferConstructorCall(n, scope, entry)
	}

	var params []*Entry
	if entry.Scope != nil {
		params = entry.Scope.Params
	}
	if entry.Scope != nil && len(params) != len(n.Details) {
		a.diags.Add(diagnostics.WrongArgumentCount(a.file, n.Pos, len(params), len(n.Details)))
	}
	for i, arg := range n.Details {
		argType := a.inferExpr(arg, scope)
		if i < len(params) && !params[i].Type.NonStrictEqual(argType) {
			a.diags.Add(diagnostics.TypeMismatch(a.file, arg.Loc(), params[i].Type.String(), argType.String()))
		}
	}
	return entry.Type
}

// inferConstructorCall resolves a `new ClassName(args)` call against
// classEntry's overloaded constructor list (stored on the class scope's
// Params, keyed by signature), matching candidates first by arity and
// then, among arity matches, by per-position non-strict VarDec equality.
// Arguments are always inferred so every operand still gets checked
// regardless of which overload (if any) resolves.
func (a *Analyzer) inferConstructorCall(n *ast.Node, scope *ScopeTable, classEntry *Entry) VarDec {
	result := VarDec{Type: CLASS_REF, ClassName: classEntry.Name}
	argTypes := make([]VarDec, len(n.Details))
	for i, arg := range n.Details {
		argTypes[i] = a.inferExpr(arg, scope)
	}

	var ctors []*Entry
	if classEntry.Scope != nil {
		ctors = classEntry.Scope.Params
	}
	if len(ctors) == 0 {
		if len(argTypes) != 0 {
			a.diags.Add(diagnostics.WrongArgumentCount(a.file, n.Pos, 0, len(argTypes)))
		}
		return result
	}

	var arityMatch *Entry
	for _, ctor := range ctors {
		if ctor.Scope == nil || len(ctor.Scope.Params) != len(argTypes) {
			continue
		}
		if arityMatch == nil {
			arityMatch = ctor
		}
		matched := true
		for i, param := range ctor.Scope.Params {
			if !param.Type.NonStrictEqual(argTypes[i]) {
				matched = false
				break
			}
		}
		if matched {
			return result
		}
	}

	if arityMatch == nil {
		a.diags.Add(diagnostics.WrongArgumentCount(a.file, n.Pos, len(ctors[0].Scope.Params), len(argTypes)))
		return result
	}
	for i, param := range arityMatch.Scope.Params {
		if !param.Type.NonStrictEqual(argTypes[i]) {
			a.diags.Add(diagnostics.TypeMismatch(a.file, n.Details[i].Loc(), param.Type.String(), argTypes[i].String()))
			break
		}
	}
	return result
}

// checkModifierAccess enforces that a PRIVATE/SECURE member is reached
// only from within its declaring class; GLOBAL/P_GLOBAL members are
// always reachable.
func (a *Analyzer) checkModifierAccess(entry *Entry, pos source.Position, scope *ScopeTable) {
	if entry.Visibility != PRIVATE_VIS && entry.Visibility != SECURE_VIS {
		return
	}
	current := scope.EnclosingClass()
	if current == nil {
		a.diags.Add(diagnostics.ModifierViolation(a.file, pos,
			"cannot access a private/secure member from outside of a class"))
		return
	}
	if declared, ok := current.LookupLocal(entry.Name); ok && declared == entry {
		return
	}
	a.diags.Add(diagnostics.ModifierViolation(a.file, pos,
		"cannot access a private/secure member from outside its declaring class"))
}

// checkDotAccessor enforces that `.` never addresses a class declaration
// itself (only object fields, methods, constants and enum enumerators);
// enum access is exempt since enumerators aren't reached any other way.
func (a *Analyzer) checkDotAccessor(step *ast.Node, entry *Entry, ownerScope *ScopeTable) {
	if step.Kind != ast.MEMBER_ACCESS {
		return
	}
	if entry.Kind == ENTRY_CLASS && ownerScope.Kind != SCOPE_ENUM {
		a.diags.Add(diagnostics.WrongAccessor(a.file, step.Pos, `used "." to access a class; use "->" instead`))
	}
}
