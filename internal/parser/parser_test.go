package parser

import (
	"testing"

	"github.com/lnelampl/spacec/internal/ast"
	"github.com/lnelampl/spacec/internal/diagnostics"
	"github.com/lnelampl/spacec/internal/lexer"
	"github.com/lnelampl/spacec/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Node, *diagnostics.Bag) {
	buf := source.NewBuffer("test.sp", []byte(src))
	diags := diagnostics.NewBag()
	tokens, ok := lexer.New(buf, diags, false).Tokenize()
	if !ok {
		t.Fatalf("lex failed: %+v", diags.Diagnostics())
	}
	module, ok := New(tokens, "test.sp", diags).Parse()
	if !ok {
		t.Fatalf("parse failed: %+v", diags.Diagnostics())
	}
	return module, diags
}

func TestParseVarDecl(t *testing.T) {
	module, diags := parseSource(t, "var x: int = 5;")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
	if len(module.Details) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(module.Details))
	}
	decl := module.Details[0]
	if decl.Kind != ast.VAR {
		t.Fatalf("expected VAR, got %v", decl.Kind)
	}
	if decl.Value != "x" {
		t.Errorf("expected name %q, got %q", "x", decl.Value)
	}
}

func TestParseArrayVarDecl(t *testing.T) {
	module, diags := parseSource(t, "var xs: int[] = [1, 2, 3];")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
	decl := module.Details[0]
	if decl.Kind != ast.ARRAY_VAR {
		t.Fatalf("expected ARRAY_VAR, got %v", decl.Kind)
	}
	if decl.Right.Kind != ast.ARRAY_CREATION || len(decl.Right.Details) != 3 {
		t.Fatalf("expected a 3-element array literal initializer, got %+v", decl.Right)
	}
}

// TestParseIfElseIfElseAsFlatSiblings verifies the if/else-if/else chain is
// represented as three standalone sibling statements in the enclosing
// block's Details list, rather than a nested/linked structure.
func TestParseIfElseIfElseAsFlatSiblings(t *testing.T) {
	src := `function f() {
		if (true) { return 1; }
		else if (false) { return 2; }
		else { return 3; }
	}`
	module, diags := parseSource(t, src)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
	body := module.Details[0].Right
	if len(body.Details) != 3 {
		t.Fatalf("expected 3 sibling statements, got %d", len(body.Details))
	}
	wantKinds := []ast.NodeKind{ast.IF, ast.ELSE_IF, ast.ELSE}
	for i, want := range wantKinds {
		if body.Details[i].Kind != want {
			t.Errorf("sibling %d: expected kind %v, got %v", i, want, body.Details[i].Kind)
		}
	}
}

func TestParseTryCatchAsFlatSiblings(t *testing.T) {
	src := `function f() {
		try { var x = 1; }
		catch (Error e) { var y = 2; }
	}`
	module, diags := parseSource(t, src)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
	body := module.Details[0].Right
	if len(body.Details) != 2 {
		t.Fatalf("expected 2 sibling statements, got %d", len(body.Details))
	}
	if body.Details[0].Kind != ast.TRY || body.Details[1].Kind != ast.CATCH {
		t.Errorf("expected TRY then CATCH, got %v then %v", body.Details[0].Kind, body.Details[1].Kind)
	}
}

func TestParseMemberAccessChainCollapsesToMemClassAcc(t *testing.T) {
	module, diags := parseSource(t, "var x = a.b.c;")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
	init := module.Details[0].Right
	if init.Kind != ast.MEM_CLASS_ACC {
		t.Fatalf("expected MEM_CLASS_ACC, got %v", init.Kind)
	}
	if len(init.Details) != 3 {
		t.Fatalf("expected 3 chain segments (a, .b, .c), got %d", len(init.Details))
	}
}

func TestParseFunctionCallWithArguments(t *testing.T) {
	module, diags := parseSource(t, "var x = add(1, 2);")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
	call := module.Details[0].Right
	if call.Kind != ast.FUNCTION_CALL || call.Value != "add" {
		t.Fatalf("expected call to 'add', got %+v", call)
	}
	if len(call.Details) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Details))
	}
}

func TestParseClassWithExtendsAndInterfaces(t *testing.T) {
	src := `class Dog extends Animal with Runnable, Named {
	}`
	module, diags := parseSource(t, src)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
	class := module.Details[0]
	if class.Kind != ast.CLASS || class.Value != "Dog" {
		t.Fatalf("expected class 'Dog', got %+v", class)
	}
	if class.Details[0] == nil || class.Details[0].Value != "Animal" {
		t.Errorf("expected inheritance from 'Animal', got %+v", class.Details[0])
	}
	if class.Details[1] == nil || len(class.Details[1].Details) != 2 {
		t.Errorf("expected 2 interfaces, got %+v", class.Details[1])
	}
}

func TestParseConditionalAssignment(t *testing.T) {
	module, diags := parseSource(t, "var x = a > b ? a : b;")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
	init := module.Details[0].Right
	if init.Kind != ast.CONDITIONAL_ASSIGNMENT {
		t.Fatalf("expected CONDITIONAL_ASSIGNMENT, got %v", init.Kind)
	}
}

func TestParseMissingSemicolonReportsSyntaxMismatch(t *testing.T) {
	buf := source.NewBuffer("test.sp", []byte("var x = 5"))
	diags := diagnostics.NewBag()
	tokens, ok := lexer.New(buf, diags, false).Tokenize()
	if !ok {
		t.Fatalf("lex failed: %+v", diags.Diagnostics())
	}
	_, ok = New(tokens, "test.sp", diags).Parse()
	if ok {
		t.Fatalf("expected parse failure for a missing semicolon")
	}
	if !diags.HasErrors() {
		t.Fatalf("expected a syntax diagnostic")
	}
}
