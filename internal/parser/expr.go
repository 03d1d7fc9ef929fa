package parser

import (
	"github.com/lnelampl/spacec/internal/ast"
	"github.com/lnelampl/spacec/internal/lexer"
	"github.com/lnelampl/spacec/internal/source"
)

func posOf(t lexer.Token) source.Position {
	return source.Position{Line: t.Line, Column: t.Column, Offset: t.Offset}
}

// parseExpr is the expression entry point: a conditional assignment whose
// condition is a chained boolean expression, falling straight through to
// plain arithmetic when no `?` follows — the precedence ladder below is a
// superset of both grammars, so no speculative backtracking is needed.
func (p *Parser) parseExpr() *ast.Node {
	cond := p.parseLogicalOr()
	if p.check(lexer.QUESTION) {
		pos := p.here()
		p.advance()
		ifTrue := p.parseExpr()
		p.expect(lexer.COLON, "':'")
		ifFalse := p.parseExpr()
		return ast.ConditionalAssignment(cond, ifTrue, ifFalse, pos)
	}
	return cond
}

// parseLogicalOr/parseLogicalAnd implement the chained-condition tier:
// comparison sub-expressions combined with and/or, left-associative.
func (p *Parser) parseLogicalOr() *ast.Node {
	left := p.parseLogicalAnd()
	for p.check(lexer.OR) {
		op := p.advance()
		right := p.parseLogicalAnd()
		left = ast.ChainedCondition("or", left, right, posOf(op))
	}
	return left
}

func (p *Parser) parseLogicalAnd() *ast.Node {
	left := p.parseComparison()
	for p.check(lexer.AND) {
		op := p.advance()
		right := p.parseComparison()
		left = ast.ChainedCondition("and", left, right, posOf(op))
	}
	return left
}

func (p *Parser) parseComparison() *ast.Node {
	left := p.parseAdditive()
	for p.check(lexer.EQ) || p.check(lexer.NEQ) || p.check(lexer.LT) ||
		p.check(lexer.GT) || p.check(lexer.LE) || p.check(lexer.GE) {
		op := p.advance()
		right := p.parseAdditive()
		left = ast.Binary(compareKind(op.Kind), left, right, posOf(op))
	}
	return left
}

func compareKind(k lexer.TokenKind) ast.NodeKind {
	switch k {
	case lexer.EQ:
		return ast.EQUALS
	case lexer.NEQ:
		return ast.NOT_EQUALS
	case lexer.LT:
		return ast.LESS
	case lexer.GT:
		return ast.GREATER
	case lexer.LE:
		return ast.LESS_EQ
	default:
		return ast.GREATER_EQ
	}
}

// parseAdditive implements the additive precedence tier: it walks
// left-to-right, recursing into parseMultiplicative for the higher-
// precedence sub-term on each side of a `+`/`-`.
func (p *Parser) parseAdditive() *ast.Node {
	left := p.parseMultiplicative()
	for p.check(lexer.PLUS) || p.check(lexer.MINUS) {
		op := p.advance()
		kind := ast.PLUS
		if op.Kind == lexer.MINUS {
			kind = ast.MINUS
		}
		right := p.parseMultiplicative()
		left = ast.Binary(kind, left, right, posOf(op))
	}
	return left
}

// parseMultiplicative implements the multiplicative precedence tier: it
// directly consumes the next primary as the right operand.
func (p *Parser) parseMultiplicative() *ast.Node {
	left := p.parseUnary()
	for p.check(lexer.STAR) || p.check(lexer.SLASH) || p.check(lexer.PERCENT) {
		op := p.advance()
		var kind ast.NodeKind
		switch op.Kind {
		case lexer.STAR:
			kind = ast.MULTIPLY
		case lexer.SLASH:
			kind = ast.DIVIDE
		default:
			kind = ast.MODULO
		}
		right := p.parseUnary()
		left = ast.Binary(kind, left, right, posOf(op))
	}
	return left
}

func (p *Parser) parseUnary() *ast.Node {
	if p.check(lexer.MINUS) {
		op := p.advance()
		operand := p.parseUnary()
		zero := ast.Number("0", posOf(op))
		return ast.Binary(ast.MINUS, zero, operand, posOf(op))
	}
	if p.check(lexer.INC) || p.check(lexer.DEC) {
		op := p.advance()
		operand := p.parsePostfix()
		return ast.IncDecAssignment(operand, op.Lexeme, nil, posOf(op))
	}
	return p.parsePostfix()
}

// parsePostfix handles trailing `++`/`--` after the access/call/array chain.
func (p *Parser) parsePostfix() *ast.Node {
	expr := p.parseAccessChain()
	if p.check(lexer.INC) || p.check(lexer.DEC) {
		op := p.advance()
		return ast.IncDecAssignment(expr, op.Lexeme, nil, posOf(op))
	}
	return expr
}

// parseAccessChain parses a primary followed by zero or more `.`/`->`
// steps and array-index groups, collapsing chains of length > 1 into a
// single MEM_CLASS_ACC node so the semantic pass can walk down the spine.
func (p *Parser) parseAccessChain() *ast.Node {
	first := p.parseArraySuffix(p.parsePrimary())
	var steps []*ast.Node

	for p.check(lexer.DOT) || p.check(lexer.ARROW) {
		isClass := p.check(lexer.ARROW)
		op := p.advance()
		member := p.parseArraySuffix(p.parseAccessPrimary())
		kind := ast.MEMBER_ACCESS
		if isClass {
			kind = ast.CLASS_ACCESS
		}
		steps = append(steps, ast.MemberOrClassAccess(kind, nil, member, posOf(op)))
	}

	if len(steps) == 0 {
		return first
	}
	return ast.MemClassAcc(append([]*ast.Node{first}, steps...), first.Pos)
}

// parseAccessPrimary parses one identifier or call step within an access chain.
func (p *Parser) parseAccessPrimary() *ast.Node {
	if p.check(lexer.IDENTIFIER) && p.peekAt(1).Kind == lexer.LPAREN {
		return p.parseCall()
	}
	tok := p.expect(lexer.IDENTIFIER, "identifier")
	return ast.Ident(tok.Lexeme, posOf(tok))
}

// parseArraySuffix consumes consecutive `[expr]` groups, nesting
// right-to-left: each access node holds its index on Left and the next
// access on Right.
func (p *Parser) parseArraySuffix(base *ast.Node) *ast.Node {
	if base == nil || !p.check(lexer.LBRACKET) {
		return base
	}
	var indices []*ast.Node
	for p.check(lexer.LBRACKET) {
		p.advance()
		idx := p.parseAdditive()
		p.expect(lexer.RBRACKET, "']'")
		indices = append(indices, idx)
	}
	var chain *ast.Node
	for i := len(indices) - 1; i >= 0; i-- {
		chain = ast.ArrayAccess(indices[i], chain, indices[i].Pos)
	}
	return ast.MemberOrClassAccess(ast.MEMBER_ACCESS, base, chain, base.Pos)
}

// parseCall parses a function-call argument list; an argument may carry a
// `: Type` annotation immediately after its expression.
func (p *Parser) parseCall() *ast.Node {
	name := p.advance()
	p.expect(lexer.LPAREN, "'('")
	var args []*ast.Node
	if !p.check(lexer.RPAREN) {
		args = append(args, p.parseArgument())
		for p.match(lexer.COMMA) {
			args = append(args, p.parseArgument())
		}
	}
	p.expect(lexer.RPAREN, "')'")
	return ast.FunctionCall(name.Lexeme, args, posOf(name))
}

func (p *Parser) parseArgument() *ast.Node {
	expr := p.parseExpr()
	if p.match(lexer.COLON) {
		t := p.parseVarType()
		return ast.Argument(expr, t)
	}
	return expr
}

func (p *Parser) parsePrimary() *ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case lexer.INT_LIT:
		p.advance()
		return ast.Number(tok.Lexeme, posOf(tok))
	case lexer.FLOAT_LIT:
		p.advance()
		return ast.Float(tok.Lexeme, posOf(tok))
	case lexer.STRING_LIT:
		p.advance()
		return ast.StringLit(tok.Lexeme, posOf(tok))
	case lexer.CHAR_ARRAY_LIT:
		p.advance()
		return ast.CharArray(tok.Lexeme, posOf(tok))
	case lexer.TRUE, lexer.FALSE:
		p.advance()
		return ast.Bool(tok.Lexeme, posOf(tok))
	case lexer.NULL:
		p.advance()
		return ast.NullLit(posOf(tok))
	case lexer.THIS:
		p.advance()
		return ast.This(posOf(tok))
	case lexer.NEW:
		p.advance()
		return p.parseAccessChain()
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.expect(lexer.RPAREN, "')'")
		return inner
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.IDENTIFIER:
		if p.peekAt(1).Kind == lexer.LPAREN {
			return p.parseCall()
		}
		p.advance()
		return ast.Ident(tok.Lexeme, posOf(tok))
	default:
		p.errorf("expected expression, got %q", tok.Lexeme)
		p.advance()
		return nil
	}
}

func (p *Parser) parseArrayLiteral() *ast.Node {
	start := p.here()
	p.expect(lexer.LBRACKET, "'['")
	var elems []*ast.Node
	if !p.check(lexer.RBRACKET) {
		elems = append(elems, p.parseExpr())
		for p.match(lexer.COMMA) {
			elems = append(elems, p.parseExpr())
		}
	}
	p.expect(lexer.RBRACKET, "']'")
	return ast.ArrayCreation(elems, start)
}
