// Package compiler drives the lexer, parser and semantic analyzer over a
// single compilation unit.
package compiler

import (
	"fmt"
	"os"

	"github.com/lnelampl/spacec/internal/ast"
	"github.com/lnelampl/spacec/internal/diagnostics"
	"github.com/lnelampl/spacec/internal/lexer"
	"github.com/lnelampl/spacec/internal/parser"
	"github.com/lnelampl/spacec/internal/semantics"
	"github.com/lnelampl/spacec/internal/source"
)

// Options configures a compilation run.
type Options struct {
	Debug bool
}

// Unit is the compiled source file: its buffer, token stream, AST and the
// semantic analyzer that walked it.
type Unit struct {
	Path     string
	Buffer   *source.Buffer
	Tokens   []lexer.Token
	Module   *ast.Node
	Analyzer *semantics.Analyzer
}

// Result is the outcome of a compilation run: the unit reached plus the
// diagnostic bag it reported into.
type Result struct {
	Units       []*Unit
	Diagnostics *diagnostics.Bag
}

// Ok reports whether the compilation produced no error-severity diagnostics.
func (r *Result) Ok() bool { return !r.Diagnostics.HasErrors() }

func (o Options) logf(format string, args ...interface{}) {
	if o.Debug {
		fmt.Fprintf(os.Stderr, "[compiler] "+format+"\n", args...)
	}
}

// Compile runs lex -> parse -> analyze over entryPath. Cross-file
// references reached via `include` are not opened or followed; they are
// recorded by the analyzer as an ordered external-access queue (see
// Unit.Analyzer.Externals) for a downstream include resolver to consume.
func Compile(entryPath string, opts Options) (*Result, error) {
	diags := diagnostics.NewBag()
	result := &Result{Diagnostics: diags}

	unit, err := compileUnit(entryPath, diags, opts)
	if err != nil {
		return result, err
	}
	result.Units = []*Unit{unit}

	return result, nil
}

// compileUnit runs lex -> parse -> analyze over one file, stopping early
// (but still returning a populated Unit) as soon as a stage fails.
func compileUnit(path string, diags *diagnostics.Bag, opts Options) (*Unit, error) {
	opts.logf("reading %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	buf := source.NewBuffer(path, data)
	unit := &Unit{Path: path, Buffer: buf}

	opts.logf("lexing %s (%d bytes)", path, len(data))
	lx := lexer.New(buf, diags, opts.Debug)
	tokens, ok := lx.Tokenize()
	unit.Tokens = tokens
	if !ok {
		return unit, nil
	}

	opts.logf("parsing %s (%d tokens)", path, len(tokens))
	ps := parser.New(tokens, path, diags)
	module, ok := ps.Parse()
	unit.Module = module
	if !ok || module == nil {
		return unit, nil
	}

	opts.logf("analyzing %s", path)
	an := semantics.New(path, diags, opts.Debug)
	an.Analyze(module)
	unit.Analyzer = an

	return unit, nil
}
