package diagnostics

import (
	"fmt"

	"github.com/lnelampl/spacec/internal/source"
)

// UnexpectedSymbol reports a fatal lexical error: a byte the lexer could not
// classify into any token span, or an unterminated string, block comment
// or pointer span. offset/line come straight from the sizing pass since the
// buffer has not been fully indexed into lines yet at lex time.
func UnexpectedSymbol(buf *source.Buffer, offset, line int, msg string) *Diagnostic {
	pos := buf.ResolvePosition(offset)
	pos.Line = line
	return New(LexicalException, buf.Name, pos, msg)
}

// StatementMisplaced reports a construct used where its grammar forbids it
// (e.g. a bare break outside any loop, a class declared inside a function).
func StatementMisplaced(file string, pos source.Position, what string) *Diagnostic {
	return New(StatementMisplacement, file, pos, what)
}

// AlreadyDefined reports a redeclaration within the same scope.
func AlreadyDefined(file string, pos source.Position, name string) *Diagnostic {
	return New(AlreadyDefinedException, file, pos, fmt.Sprintf("%q is already defined in this scope", name))
}

// NotDefined reports a reference to an identifier the resolver could not find.
func NotDefined(file string, pos source.Position, name string) *Diagnostic {
	return New(NotDefinedException, file, pos, fmt.Sprintf("%q is not defined", name))
}

// TypeMismatch reports an expected-vs-got type disagreement.
func TypeMismatch(file string, pos source.Position, expected, got string) *Diagnostic {
	return New(TypeMismatchException, file, pos,
		fmt.Sprintf("expected type %s, got %s", expected, got))
}

// WrongAccessor reports `.`/`->` used on the wrong kind of operand.
func WrongAccessor(file string, pos source.Position, msg string) *Diagnostic {
	return New(WrongAccessorException, file, pos, msg)
}

// WrongArgumentCount reports a call whose argument count does not match
// the callee's parameter count.
func WrongArgumentCount(file string, pos source.Position, expected, got int) *Diagnostic {
	return New(WrongArgumentException, file, pos,
		fmt.Sprintf("expected %d argument(s), got %d", expected, got))
}

// ModifierViolation reports an attempt to access a PRIVATE/SECURE member
// from outside its declaring class, or a modifier used directly in MAIN.
func ModifierViolation(file string, pos source.Position, msg string) *Diagnostic {
	return New(ModifierException, file, pos, msg)
}

// NoSuchArrayDimension reports an array-access chain longer than the
// declared dimension of the value it indexes.
func NoSuchArrayDimension(file string, pos source.Position) *Diagnostic {
	return New(NoSuchArrayDimException, file, pos, "array access exceeds the declared dimension")
}

// Unreachable reports code that follows a statement that always
// terminates control flow in its block.
func Unreachable(file string, pos source.Position) *Diagnostic {
	return NewWarning(UnreachableCodeWarning, file, pos, "unreachable code")
}

// Internal reports a failure in the compiler itself rather than in the
// input program (allocation failure, inter-stage transmission error).
func Internal(file string, pos source.Position, msg string) *Diagnostic {
	return New(InternalException, file, pos, msg)
}
