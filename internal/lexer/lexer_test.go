package lexer

import (
	"testing"

	"github.com/lnelampl/spacec/internal/diagnostics"
	"github.com/lnelampl/spacec/internal/source"
)

func tokenize(t *testing.T, src string) ([]Token, *diagnostics.Bag) {
	buf := source.NewBuffer("test.sp", []byte(src))
	diags := diagnostics.NewBag()
	lx := New(buf, diags, false)
	tokens, ok := lx.Tokenize()
	if !ok && !diags.HasErrors() {
		t.Fatalf("Tokenize reported failure without a diagnostic")
	}
	return tokens, diags
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeVarDecl(t *testing.T) {
	tokens, diags := tokenize(t, "var x: int = 5;")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
	want := []TokenKind{VAR, IDENTIFIER, COLON, IDENTIFIER, ASSIGN, INT_LIT, SEMICOLON, EOF}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected kind %d, got %d", i, want[i], got[i])
		}
	}
}

func TestTokenizeUnaryMinusVsSubtraction(t *testing.T) {
	tokens, diags := tokenize(t, "var x = -5;")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
	// The sizing pass should fold the leading '-' into the numeric literal
	// rather than emitting a separate MINUS token.
	foundNumber := false
	for _, tok := range tokens {
		if tok.Kind == INT_LIT && tok.Lexeme == "-5" {
			foundNumber = true
		}
	}
	if !foundNumber {
		t.Errorf("expected a single -5 numeric literal, got tokens: %+v", tokens)
	}
}

func TestTokenizeTwoCharOperators(t *testing.T) {
	tokens, _ := tokenize(t, "a == b != c -> d;")
	got := kinds(tokens)
	want := []TokenKind{IDENTIFIER, EQ, IDENTIFIER, NEQ, IDENTIFIER, ARROW, IDENTIFIER, SEMICOLON, EOF}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected kind %d, got %d", i, want[i], got[i])
		}
	}
}

func TestTokenizeKeywords(t *testing.T) {
	tokens, _ := tokenize(t, "if else while class function")
	want := []TokenKind{IF, ELSE, WHILE, CLASS, FUNCTION, EOF}
	got := kinds(tokens)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected kind %d, got %d", i, want[i], got[i])
		}
	}
}

func TestTokenizeStringLiteralWithEscapedQuotes(t *testing.T) {
	tokens, diags := tokenize(t, `"hello \"world\""`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
	if len(tokens) < 1 || tokens[0].Kind != STRING_LIT {
		t.Fatalf("expected a string literal token, got %+v", tokens)
	}
}

func TestTokenizeUnterminatedStringReportsLexicalException(t *testing.T) {
	tokens, diags := tokenize(t, `var x = "unterminated`)
	if tokens != nil {
		t.Errorf("expected no tokens on a fatal lexical error, got %+v", tokens)
	}
	if !diags.HasErrors() {
		t.Fatalf("expected a lexical diagnostic for the unterminated string")
	}
	found := false
	for _, d := range diags.Diagnostics() {
		if d.Category == diagnostics.LexicalException {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a LexicalException diagnostic, got %+v", diags.Diagnostics())
	}
}
