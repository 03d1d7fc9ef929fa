package semantics

import (
	"github.com/lnelampl/spacec/internal/ast"
	"github.com/lnelampl/spacec/internal/diagnostics"
)

// walkBlock walks a RUNNABLE's statement list in order, tracking the
// previous statement's kind so ELSE_IF/ELSE and CATCH can validate
// adjacency to a preceding IF/ELSE_IF or TRY/CATCH sibling, and so a
// RETURN/BREAK/CONTINUE can flag any statement that follows it as dead.
func (a *Analyzer) walkBlock(block *ast.Node, scope *ScopeTable) {
	var prevKind ast.NodeKind
	terminated := false
	for i, stmt := range block.Details {
		if stmt == nil {
			continue
		}
		if terminated {
			a.diags.Add(diagnostics.Unreachable(a.file, stmt.Pos))
			terminated = false
		}

		switch stmt.Kind {
		case ast.ELSE_IF, ast.ELSE:
			if prevKind != ast.IF && prevKind != ast.ELSE_IF {
				a.diags.Add(diagnostics.StatementMisplaced(a.file, stmt.Pos,
					"'else'/'else if' must directly follow an 'if' or 'else if'"))
			}
		case ast.CATCH:
			if prevKind != ast.TRY && prevKind != ast.CATCH {
				a.diags.Add(diagnostics.StatementMisplaced(a.file, stmt.Pos,
					"'catch' must directly follow a 'try' or another 'catch'"))
			}
		}

		a.walkStmt(stmt, scope)

		if stmt.Kind == ast.RETURN || stmt.Kind == ast.BREAK || stmt.Kind == ast.CONTINUE {
			terminated = i != len(block.Details)-1
		}
		prevKind = stmt.Kind
	}
}

// walkStmt dispatches one statement inside a block, descending into any
// nested scope the construct introduces.
func (a *Analyzer) walkStmt(n *ast.Node, scope *ScopeTable) {
	switch n.Kind {
	case ast.VAR, ast.CONST, ast.ARRAY_VAR, ast.CONDITIONAL_VAR, ast.CLASS_INSTANCE_VAR:
		a.walkVarDecl(n, scope)
	case ast.FUNCTION:
		a.diags.Add(diagnostics.StatementMisplaced(a.file, n.Pos, "functions are only allowed at the top level or inside a class"))
	case ast.CLASS:
		a.diags.Add(diagnostics.StatementMisplaced(a.file, n.Pos, "classes are only allowed at the top level"))
	case ast.ENUM:
		a.diags.Add(diagnostics.StatementMisplaced(a.file, n.Pos, "enums are only allowed at the top level"))
	case ast.CLASS_CONSTRUCTOR:
		a.diags.Add(diagnostics.StatementMisplaced(a.file, n.Pos, "constructors are only allowed in classes"))
	case ast.IF:
		a.walkCondBranch(IF, n, scope)
	case ast.ELSE_IF:
		a.walkCondBranch(ELSE_IF, n, scope)
	case ast.ELSE:
		a.walkBlock(n.Right, NewScope(ELSE, "else", scope, n.Pos))
	case ast.WHILE:
		a.inferExpr(n.Left, scope)
		a.walkBlock(n.Right, NewScope(WHILE, "while", scope, n.Pos))
	case ast.DO:
		a.inferExpr(n.Left, scope)
		a.walkBlock(n.Right, NewScope(DO, "do", scope, n.Pos))
	case ast.FOR:
		forScope := NewScope(FOR, "for", scope, n.Pos)
		if n.Left != nil {
			a.walkVarDecl(n.Left, forScope)
		}
		if len(n.Details) > 0 {
			a.inferExpr(n.Details[0], forScope)
		}
		if len(n.Details) > 1 {
			a.inferExpr(n.Details[1], forScope)
		}
		a.walkBlock(n.Right, forScope)
	case ast.CHECK:
		a.inferExpr(n.Left, scope)
		for _, c := range n.Right.Details {
			isScope := NewScope(IS, "is", scope, c.Pos)
			a.inferExpr(c.Left, isScope)
			a.walkBlock(c.Right, isScope)
		}
	case ast.TRY:
		a.walkBlock(n.Right, NewScope(TRY, "try", scope, n.Pos))
	case ast.CATCH:
		catchScope := NewScope(CATCH, "catch", scope, n.Pos)
		if len(n.Details) > 0 && n.Details[0] != nil {
			p := n.Details[0]
			catchScope.Params = append(catchScope.Params, &Entry{Name: p.Value, Type: a.resolveVarType(p.Details[0]), Kind: PARAMETER, Pos: p.Pos})
		}
		a.walkBlock(n.Right, catchScope)
	case ast.RETURN:
		if n.Right != nil {
			a.inferExpr(n.Right, scope)
		}
	case ast.BREAK, ast.CONTINUE:
		if scope.EnclosingLoopOrIs() == nil {
			a.diags.Add(diagnostics.StatementMisplaced(a.file, n.Pos, "'break'/'continue' outside of a loop or check"))
		}
	case ast.RUNNABLE:
		a.walkBlock(n, NewScope(IF, "block", scope, n.Pos))
	default:
		a.inferExpr(n, scope)
	}
}

func (a *Analyzer) walkCondBranch(kind ScopeKind, n *ast.Node, scope *ScopeTable) {
	a.inferExpr(n.Left, scope)
	a.walkBlock(n.Right, NewScope(kind, "if", scope, n.Pos))
}
