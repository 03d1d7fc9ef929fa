package compiler

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestCompileSingleFileNoIncludes(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.sp", "function main() { var x = 1; }")

	result, err := Compile(main, Options{})
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}
	if !result.Ok() {
		t.Fatalf("expected a clean compile, got diagnostics: %+v", result.Diagnostics.Diagnostics())
	}
	if len(result.Units) != 1 {
		t.Fatalf("expected 1 compiled unit, got %d", len(result.Units))
	}
}

func TestCompileRecordsExternalAccessQueueWithoutOpeningIncludes(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.sp", `include "lib.sp";
	function main() { var x = 1; }`)

	result, err := Compile(main, Options{})
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}
	if len(result.Units) != 1 {
		t.Fatalf("expected 1 compiled unit (include is recorded, not opened), got %d", len(result.Units))
	}
	externals := result.Units[0].Analyzer.Externals()
	if len(externals) != 1 || externals[0].Path != "lib.sp" {
		t.Fatalf("expected the external-access queue to record lib.sp, got %+v", externals)
	}
}

func TestCompileSyntaxErrorIsNotOk(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.sp", "var x = 5")

	result, err := Compile(main, Options{})
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}
	if result.Ok() {
		t.Fatalf("expected a failing compile for a missing semicolon")
	}
}

func TestCompileMissingFileReturnsError(t *testing.T) {
	_, err := Compile("/does/not/exist.sp", Options{})
	if err == nil {
		t.Fatalf("expected an error for a missing entry file")
	}
}
