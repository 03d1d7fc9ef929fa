package parser

import (
	"github.com/lnelampl/spacec/internal/ast"
	"github.com/lnelampl/spacec/internal/lexer"
	"github.com/lnelampl/spacec/internal/source"
)

// parseVarDecl parses a declaration and classifies it as NORMAL, ARRAY,
// CONDITIONAL, or INSTANCE: INSTANCE when `new` follows the `=`, otherwise
// from the parsed type annotation and initializer.
func (p *Parser) parseVarDecl(modifier *ast.Node) *ast.Node {
	pos := p.here()
	p.expect(lexer.VAR, "'var'")
	return p.parseVarBody(ast.VAR, modifier, pos)
}

func (p *Parser) parseConstDecl(modifier *ast.Node) *ast.Node {
	pos := p.here()
	p.expect(lexer.CONST, "'const'")
	return p.parseVarBody(ast.CONST, modifier, pos)
}

func (p *Parser) parseVarBody(defaultKind ast.NodeKind, modifier *ast.Node, pos source.Position) *ast.Node {
	name := p.expect(lexer.IDENTIFIER, "identifier")

	var varType *ast.Node
	if p.match(lexer.COLON) {
		varType = p.parseVarType()
	}

	if p.check(lexer.SEMICOLON) {
		p.advance()
		kind := defaultKind
		if varType != nil && varType.Left != nil {
			kind = ast.ARRAY_VAR
		}
		return ast.VarDecl(kind, name.Lexeme, modifier, varType, nil, pos)
	}

	p.expect(lexer.ASSIGN, "'='")

	if p.check(lexer.NEW) {
		p.advance()
		path := p.parseAccessChain()
		p.expect(lexer.SEMICOLON, "';'")
		return ast.ClassInstanceVar(name.Lexeme, modifier, path, pos)
	}

	init := p.parseExpr()
	p.expect(lexer.SEMICOLON, "';'")

	kind := defaultKind
	switch {
	case varType != nil && varType.Left != nil:
		kind = ast.ARRAY_VAR
	case init != nil && init.Kind == ast.CONDITIONAL_ASSIGNMENT:
		kind = ast.CONDITIONAL_VAR
	}
	return ast.VarDecl(kind, name.Lexeme, modifier, varType, init, pos)
}

func (p *Parser) parseEnumDecl(modifier *ast.Node) *ast.Node {
	pos := p.here()
	p.advance()
	name := p.expect(lexer.IDENTIFIER, "identifier")
	p.expect(lexer.LBRACE, "'{'")

	var entries []*ast.Node
	for !p.check(lexer.RBRACE) && !p.isAtEnd() {
		entryPos := p.here()
		entryName := p.expect(lexer.IDENTIFIER, "enum entry")
		var explicit *ast.Node
		if p.match(lexer.COLON) {
			explicit = p.parsePrimary()
		}
		entries = append(entries, ast.Enumerator(entryName.Lexeme, explicit, entryPos))
		if !p.match(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE, "'}'")
	return ast.EnumDecl(name.Lexeme, modifier, ast.Runnable(entries, pos), pos)
}

func (p *Parser) parseFuncDecl(modifier *ast.Node) *ast.Node {
	pos := p.here()
	p.advance()

	var retType *ast.Node
	if p.match(lexer.DOUBLE_COLON) {
		retType = p.parseVarType()
	}

	name := p.expect(lexer.IDENTIFIER, "identifier")
	params := p.parseParamList()
	body := p.parseBlock()
	return ast.FuncDecl(name.Lexeme, modifier, retType, params, body, pos)
}

func (p *Parser) parseParamList() []*ast.Node {
	p.expect(lexer.LPAREN, "'('")
	var params []*ast.Node
	if !p.check(lexer.RPAREN) {
		params = append(params, p.parseParam())
		for p.match(lexer.COMMA) {
			params = append(params, p.parseParam())
		}
	}
	p.expect(lexer.RPAREN, "')'")
	return params
}

func (p *Parser) parseParam() *ast.Node {
	name := p.expect(lexer.IDENTIFIER, "identifier")
	p.expect(lexer.COLON, "':'")
	t := p.parseVarType()
	return ast.Param(name.Lexeme, t, posOf(name))
}

func (p *Parser) parseClassDecl(modifier *ast.Node) *ast.Node {
	pos := p.here()
	p.advance()
	name := p.expect(lexer.IDENTIFIER, "identifier")

	var inherits *ast.Node
	if p.match(lexer.EXTENDS) {
		parent := p.expect(lexer.IDENTIFIER, "identifier")
		inherits = ast.Inheritance(parent.Lexeme, posOf(parent))
	}

	var ifaces *ast.Node
	if p.match(lexer.WITH) {
		ifacePos := p.here()
		var names []*ast.Node
		iface := p.expect(lexer.IDENTIFIER, "identifier")
		names = append(names, ast.Ident(iface.Lexeme, posOf(iface)))
		for p.match(lexer.COMMA) {
			iface = p.expect(lexer.IDENTIFIER, "identifier")
			names = append(names, ast.Ident(iface.Lexeme, posOf(iface)))
		}
		ifaces = ast.Interfaces(names, ifacePos)
	}

	body := p.parseBlock()
	return ast.ClassDecl(name.Lexeme, modifier, inherits, ifaces, body, pos)
}

// parseConstructor parses `this::constructor(params) { body }`. Constructors
// are distinguished by parameter signature, not name, so no identifier is
// consumed after `constructor`.
func (p *Parser) parseConstructor() *ast.Node {
	pos := p.here()
	p.advance() // this
	p.expect(lexer.DOUBLE_COLON, "'::'")
	kw := p.expect(lexer.IDENTIFIER, "'constructor'")
	if kw.Lexeme != "constructor" {
		p.errorf("expected 'constructor', got %q", kw.Lexeme)
	}
	params := p.parseParamList()
	body := p.parseBlock()
	return ast.Constructor(params, body, pos)
}
