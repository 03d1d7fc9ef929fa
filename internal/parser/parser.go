// Package parser implements the SPACE recursive-descent parser: a single
// Parser struct holding the token vector and a cursor, with one method per
// grammar construct. Each construction routine returns the subtree it
// built; the cursor and a failure flag are the only state shared between
// routines besides the vector itself, mirroring the "(value, diagnostic-status)" propagation
// contract used throughout the pipeline.
package parser

import (
	"fmt"

	"github.com/lnelampl/spacec/internal/ast"
	"github.com/lnelampl/spacec/internal/diagnostics"
	"github.com/lnelampl/spacec/internal/lexer"
	"github.com/lnelampl/spacec/internal/source"
)

// Parser walks a fixed token vector with local lookahead.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	diags   *diagnostics.Bag
	file    string
	failed  bool
}

// New builds a parser over tokens, reporting diagnostics against file.
func New(tokens []lexer.Token, file string, diags *diagnostics.Bag) *Parser {
	return &Parser{tokens: tokens, file: file, diags: diags}
}

// Parse consumes the whole token vector and returns the top-level RUNNABLE.
// ok is false once the first grammatical violation aborted the routine
// currently in progress, per the parser's no-recovery failure model.
func (p *Parser) Parse() (module *ast.Node, ok bool) {
	pos := p.here()
	var stmts []*ast.Node
	for !p.isAtEnd() && !p.failed {
		stmt := p.parseTopLevel()
		if p.failed {
			break
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return ast.Runnable(stmts, pos), !p.failed
}

func (p *Parser) here() source.Position {
	t := p.peek()
	return source.Position{Line: t.Line, Column: t.Column, Offset: t.Offset}
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) previous() lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) advance() lexer.Token {
	t := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) check(k lexer.TokenKind) bool {
	return p.peek().Kind == k
}

func (p *Parser) match(kinds ...lexer.TokenKind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of kind k or raises a syntax-mismatch diagnostic
// and marks the parser failed (no recovery, per the parser's failure model).
func (p *Parser) expect(k lexer.TokenKind, label string) lexer.Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorf("expected %s, got %q", label, p.peek().Lexeme)
	return p.peek()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.diags.Add(diagnostics.New(diagnostics.SyntaxMismatchException, p.file, p.here(), msg))
	p.failed = true
}

// parseTopLevel dispatches on the leading token kind for one file-level or
// block-level statement.
func (p *Parser) parseTopLevel() *ast.Node {
	return p.parseStmt()
}
