package source

import "testing"

func TestResolvePositionTracksLinesAndColumns(t *testing.T) {
	buf := NewBuffer("test.sp", []byte("var x;\nvar y;\n"))

	pos := buf.ResolvePosition(0)
	if pos.Line != 1 || pos.Column != 1 {
		t.Fatalf("expected line 1 col 1, got %+v", pos)
	}

	pos = buf.ResolvePosition(7) // start of second line
	if pos.Line != 2 || pos.Column != 1 {
		t.Fatalf("expected line 2 col 1, got %+v", pos)
	}
}

func TestLineReturnsEmptyOutOfRange(t *testing.T) {
	buf := NewBuffer("test.sp", []byte("one\ntwo\n"))
	if got := buf.Line(1); got != "one" {
		t.Errorf("expected %q, got %q", "one", got)
	}
	if got := buf.Line(99); got != "" {
		t.Errorf("expected empty string for out-of-range line, got %q", got)
	}
}
