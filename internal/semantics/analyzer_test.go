package semantics

import (
	"testing"

	"github.com/lnelampl/spacec/internal/diagnostics"
	"github.com/lnelampl/spacec/internal/lexer"
	"github.com/lnelampl/spacec/internal/parser"
	"github.com/lnelampl/spacec/internal/source"
)

func analyzeSource(t *testing.T, src string) *diagnostics.Bag {
	buf := source.NewBuffer("test.sp", []byte(src))
	diags := diagnostics.NewBag()
	tokens, ok := lexer.New(buf, diags, false).Tokenize()
	if !ok {
		t.Fatalf("lex failed: %+v", diags.Diagnostics())
	}
	module, ok := parser.New(tokens, "test.sp", diags).Parse()
	if !ok {
		t.Fatalf("parse failed: %+v", diags.Diagnostics())
	}
	New("test.sp", diags, false).Analyze(module)
	return diags
}

func hasCategory(diags *diagnostics.Bag, cat diagnostics.Category) bool {
	for _, d := range diags.Diagnostics() {
		if d.Category == cat {
			return true
		}
	}
	return false
}

func TestAnalyzeVarDeclInfersTypeFromInitializer(t *testing.T) {
	diags := analyzeSource(t, "var x = 5;")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
}

func TestAnalyzeTypeMismatchOnExplicitDeclaration(t *testing.T) {
	diags := analyzeSource(t, `var x: int = "hello";`)
	if !hasCategory(diags, diagnostics.TypeMismatchException) {
		t.Errorf("expected a TypeMismatchException, got %+v", diags.Diagnostics())
	}
}

func TestAnalyzeUndefinedIdentifierReportsNotDefined(t *testing.T) {
	diags := analyzeSource(t, "var x = y;")
	if !hasCategory(diags, diagnostics.NotDefinedException) {
		t.Errorf("expected a NotDefinedException, got %+v", diags.Diagnostics())
	}
}

func TestAnalyzeRedeclarationReportsAlreadyDefined(t *testing.T) {
	diags := analyzeSource(t, "var x = 1;\nvar x = 2;")
	if !hasCategory(diags, diagnostics.AlreadyDefinedException) {
		t.Errorf("expected an AlreadyDefinedException, got %+v", diags.Diagnostics())
	}
}

func TestAnalyzeTopLevelModifierIsModifierViolation(t *testing.T) {
	diags := analyzeSource(t, "private var x = 1;")
	if !hasCategory(diags, diagnostics.ModifierException) {
		t.Errorf("expected a ModifierException for a modifier at the top level, got %+v", diags.Diagnostics())
	}
}

func TestAnalyzeBreakOutsideLoopReportsStatementMisplacement(t *testing.T) {
	diags := analyzeSource(t, "function f() { break; }")
	if !hasCategory(diags, diagnostics.StatementMisplacement) {
		t.Errorf("expected a StatementMisplacement for a bare break, got %+v", diags.Diagnostics())
	}
}

func TestAnalyzeBreakInsideWhileIsValid(t *testing.T) {
	diags := analyzeSource(t, "function f() { while (true) { break; } }")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
}

func TestAnalyzeElseWithoutPrecedingIfReportsMisplacement(t *testing.T) {
	diags := analyzeSource(t, `function f() {
		var x = 1;
		else { x = 2; }
	}`)
	if !hasCategory(diags, diagnostics.StatementMisplacement) {
		t.Errorf("expected a StatementMisplacement for a dangling else, got %+v", diags.Diagnostics())
	}
}

func TestAnalyzePrivateMemberAccessFromOutsideClassIsViolation(t *testing.T) {
	diags := analyzeSource(t, `class Box {
		private var secret: int = 1;
	}
	function f() {
		var b = new Box();
		var leaked = b.secret;
	}`)
	if !hasCategory(diags, diagnostics.ModifierException) {
		t.Errorf("expected a ModifierException for private member access, got %+v", diags.Diagnostics())
	}
}

func TestAnalyzeFunctionCallArgumentCountMismatch(t *testing.T) {
	diags := analyzeSource(t, `function add(a: int, b: int) {
		return a + b;
	}
	var x = add(1);`)
	if !hasCategory(diags, diagnostics.WrongArgumentException) {
		t.Errorf("expected a WrongArgumentException, got %+v", diags.Diagnostics())
	}
}

func TestAnalyzeArrowAccessorOnEnumIsWrongAccessor(t *testing.T) {
	diags := analyzeSource(t, `enum Color {
		RED,
		GREEN
	}
	function f() {
		var c = Color->RED;
	}`)
	if !hasCategory(diags, diagnostics.WrongAccessorException) {
		t.Errorf("expected a WrongAccessorException for \"->\" on a non-class owner, got %+v", diags.Diagnostics())
	}
}

func TestAnalyzeDotAccessorOnClassInstanceIsValid(t *testing.T) {
	diags := analyzeSource(t, `class Box {
		var secret: int = 1;
	}
	function f() {
		var b = new Box();
		var leaked = b.secret;
	}`)
	if hasCategory(diags, diagnostics.WrongAccessorException) {
		t.Errorf("did not expect a WrongAccessorException for ordinary dot field access, got %+v", diags.Diagnostics())
	}
}

func TestAnalyzeEnumAutoIncrement(t *testing.T) {
	diags := analyzeSource(t, `enum Color {
		RED,
		GREEN,
		BLUE : 10,
		YELLOW
	}`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.Diagnostics())
	}
}
