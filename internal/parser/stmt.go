package parser

import (
	"github.com/lnelampl/spacec/internal/ast"
	"github.com/lnelampl/spacec/internal/lexer"
)

// parseStmt dispatches on the leading token kind for one statement, per
// spec's top-level grammar: declarations, includes/exports, enum,
// function, class, constructor, try/catch, loops, if-chains, check/is,
// return/break/continue, or a fall-through expression statement.
func (p *Parser) parseStmt() *ast.Node {
	switch p.peek().Kind {
	case lexer.GLOBAL, lexer.PRIVATE, lexer.SECURE:
		return p.parseModified()
	case lexer.VAR:
		return p.parseVarDecl(nil)
	case lexer.CONST:
		return p.parseConstDecl(nil)
	case lexer.INCLUDE:
		return p.parseInclude()
	case lexer.EXPORT:
		return p.parseExport()
	case lexer.ENUM:
		return p.parseEnumDecl(nil)
	case lexer.FUNCTION:
		return p.parseFuncDecl(nil)
	case lexer.CLASS:
		return p.parseClassDecl(nil)
	case lexer.THIS:
		if p.peekAt(1).Kind == lexer.DOUBLE_COLON {
			return p.parseConstructor()
		}
		return p.parseExprOrAssignStmt()
	case lexer.TRY:
		return p.parseTryStmt()
	case lexer.CATCH:
		return p.parseCatchStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.DO:
		return p.parseDoStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.IF:
		return p.parseIfStmt(ast.IF)
	case lexer.ELSE:
		return p.parseElseOrElseIf()
	case lexer.CHECK:
		return p.parseCheckStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.BREAK:
		pos := p.here()
		p.advance()
		p.expect(lexer.SEMICOLON, "';'")
		return ast.BreakStmt(pos)
	case lexer.CONTINUE:
		pos := p.here()
		p.advance()
		p.expect(lexer.SEMICOLON, "';'")
		return ast.ContinueStmt(pos)
	case lexer.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseModified() *ast.Node {
	modTok := p.advance()
	mod := ast.Modifier(modTok.Lexeme, posOf(modTok))

	switch p.peek().Kind {
	case lexer.VAR:
		return p.parseVarDecl(mod)
	case lexer.CONST:
		return p.parseConstDecl(mod)
	case lexer.FUNCTION:
		return p.parseFuncDecl(mod)
	case lexer.CLASS:
		return p.parseClassDecl(mod)
	case lexer.ENUM:
		return p.parseEnumDecl(mod)
	default:
		p.errorf("expected var, const, function, class or enum after modifier, got %q", p.peek().Lexeme)
		return nil
	}
}

func (p *Parser) parseBlock() *ast.Node {
	pos := p.here()
	p.expect(lexer.LBRACE, "'{'")
	var stmts []*ast.Node
	for !p.check(lexer.RBRACE) && !p.isAtEnd() && !p.failed {
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(lexer.RBRACE, "'}'")
	return ast.Runnable(stmts, pos)
}

func (p *Parser) parseInclude() *ast.Node {
	pos := p.here()
	p.advance()
	tok := p.expect(lexer.STRING_LIT, "include path")
	p.expect(lexer.SEMICOLON, "';'")
	path := tok.Lexeme
	if tok.Kind == lexer.STRING_LIT && len(path) >= 2 {
		path = path[1 : len(path)-1]
	}
	return ast.Include(path, pos)
}

func (p *Parser) parseExport() *ast.Node {
	pos := p.here()
	p.advance()
	tok := p.expect(lexer.IDENTIFIER, "identifier")
	p.expect(lexer.SEMICOLON, "';'")
	return ast.Export(tok.Lexeme, pos)
}

func (p *Parser) parseIfStmt(kind ast.NodeKind) *ast.Node {
	pos := p.here()
	p.advance()
	p.expect(lexer.LPAREN, "'('")
	cond := p.parseExpr()
	p.expect(lexer.RPAREN, "')'")
	body := p.parseBlock()
	return ast.IfStmt(kind, cond, body, pos)
}

func (p *Parser) parseElseOrElseIf() *ast.Node {
	pos := p.here()
	p.advance()
	if p.check(lexer.IF) {
		p.advance()
		p.expect(lexer.LPAREN, "'('")
		cond := p.parseExpr()
		p.expect(lexer.RPAREN, "')'")
		body := p.parseBlock()
		return ast.IfStmt(ast.ELSE_IF, cond, body, pos)
	}
	body := p.parseBlock()
	return ast.ElseStmt(body, pos)
}

func (p *Parser) parseWhileStmt() *ast.Node {
	p.advance()
	p.expect(lexer.LPAREN, "'('")
	cond := p.parseExpr()
	p.expect(lexer.RPAREN, "')'")
	body := p.parseBlock()
	return ast.WhileStmt(cond, body, cond.Pos)
}

func (p *Parser) parseDoStmt() *ast.Node {
	p.advance()
	body := p.parseBlock()
	p.expect(lexer.WHILE, "'while'")
	p.expect(lexer.LPAREN, "'('")
	cond := p.parseExpr()
	p.expect(lexer.RPAREN, "')'")
	p.expect(lexer.SEMICOLON, "';'")
	return ast.DoStmt(body, cond, body.Pos)
}

func (p *Parser) parseForStmt() *ast.Node {
	p.advance()
	p.expect(lexer.LPAREN, "'('")
	init := p.parseVarDecl(nil)
	cond := p.parseExpr()
	p.expect(lexer.SEMICOLON, "';'")
	action := p.parseAssignmentExpr()
	p.expect(lexer.RPAREN, "')'")
	body := p.parseBlock()
	return ast.ForStmt(init, cond, action, body, init.Pos)
}

func (p *Parser) parseCheckStmt() *ast.Node {
	pos := p.here()
	p.advance()
	p.expect(lexer.LPAREN, "'('")
	disc := p.parseExpr()
	p.expect(lexer.RPAREN, "')'")
	p.expect(lexer.LBRACE, "'{'")
	var cases []*ast.Node
	for p.check(lexer.IS) {
		casePos := p.here()
		p.advance()
		val := p.parseExpr()
		p.expect(lexer.COLON, "':'")
		block := p.parseBlock()
		cases = append(cases, ast.IsCase(val, block, casePos))
	}
	p.expect(lexer.RBRACE, "'}'")
	return ast.CheckStmt(disc, ast.Runnable(cases, pos), pos)
}

func (p *Parser) parseTryStmt() *ast.Node {
	p.advance()
	body := p.parseBlock()
	return ast.TryStmt(body, body.Pos)
}

func (p *Parser) parseCatchStmt() *ast.Node {
	pos := p.here()
	p.advance()
	p.expect(lexer.LPAREN, "'('")
	typeTok := p.expect(lexer.IDENTIFIER, "exception type")
	nameTok := p.expect(lexer.IDENTIFIER, "exception variable")
	p.expect(lexer.RPAREN, "')'")
	param := ast.Param(nameTok.Lexeme, ast.VarType(typeTok.Lexeme, nil, posOf(typeTok)), posOf(nameTok))
	body := p.parseBlock()
	return ast.CatchStmt(param, body, pos)
}

func (p *Parser) parseReturnStmt() *ast.Node {
	pos := p.here()
	p.advance()
	var value *ast.Node
	if !p.check(lexer.SEMICOLON) {
		value = p.parseExpr()
	}
	p.expect(lexer.SEMICOLON, "';'")
	return ast.ReturnStmt(value, pos)
}

// parseExprOrAssignStmt parses a bare expression statement or an
// assignment; the leading operand is parsed once and reused whichever way
// it resolves.
func (p *Parser) parseExprOrAssignStmt() *ast.Node {
	expr := p.parseAssignmentExpr()
	p.expect(lexer.SEMICOLON, "';'")
	return expr
}

// parseAssignmentExpr parses a single assignment or bare expression
// without the trailing semicolon, used directly by `for`'s action clause.
func (p *Parser) parseAssignmentExpr() *ast.Node {
	lhs := p.parseExpr()
	switch p.peek().Kind {
	case lexer.ASSIGN:
		pos := p.here()
		p.advance()
		rhs := p.parseExpr()
		if lhs != nil && lhs.Kind == ast.MEMBER_ACCESS && lhs.Right != nil && lhs.Right.Kind == ast.ARRAY_ACCESS {
			return ast.ArrayAssignment(lhs, rhs, pos)
		}
		return ast.SimpleAssignment(lhs, rhs, pos)
	case lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.STAR_ASSIGN, lexer.SLASH_ASSIGN:
		op := p.advance()
		rhs := p.parseExpr()
		return ast.IncDecAssignment(lhs, op.Lexeme, rhs, posOf(op))
	default:
		return lhs
	}
}
