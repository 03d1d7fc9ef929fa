package parser

import (
	"github.com/lnelampl/spacec/internal/ast"
	"github.com/lnelampl/spacec/internal/lexer"
)

// parseVarType parses a type annotation: a base name followed by zero or
// more trailing `[]` groups, recorded as a VAR_DIM child carrying the
// count as a string (spec keeps the dimension count textual at parse
// time; the semantic pass converts it when resolving the VarDec).
func (p *Parser) parseVarType() *ast.Node {
	tok := p.expect(lexer.IDENTIFIER, "type name")
	base := ast.VarType(tok.Lexeme, nil, posOf(tok))

	dim := 0
	for p.check(lexer.LBRACKET) && p.peekAt(1).Kind == lexer.RBRACKET {
		p.advance()
		p.advance()
		dim++
	}
	if dim > 0 {
		base.Left = ast.VarDim(itoa(dim), posOf(tok))
	}
	return base
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}
