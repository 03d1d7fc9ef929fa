// Command spacec is the entry point for the SPACE compiler frontend:
// it lexes, parses and semantically analyzes a source file, reporting
// diagnostics and optionally dumping the intermediate token and AST
// representations. Included files are recorded in the external-access
// queue but not opened.
package main

import (
	"fmt"
	"os"

	"github.com/sanity-io/litter"
	"github.com/urfave/cli/v2"

	"github.com/lnelampl/spacec/internal/compiler"
	"github.com/lnelampl/spacec/internal/diagnostics"
	"github.com/lnelampl/spacec/internal/source"
)

func main() {
	app := &cli.App{
		Name:  "spacec",
		Usage: "compile a SPACE source file",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "log pipeline progress to stderr"},
			&cli.BoolFlag{Name: "dump-tokens", Usage: "print the lexer's token stream for the entry file"},
			&cli.BoolFlag{Name: "dump-ast", Usage: "print the parsed AST for the entry file"},
		},
		Args:      true,
		ArgsUsage: "<path>",
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("expected a source file path", 1)
	}

	opts := compiler.Options{Debug: c.Bool("debug")}
	result, err := compiler.Compile(path, opts)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	for _, unit := range result.Units {
		if c.Bool("dump-tokens") && unit.Path == path {
			for _, tok := range unit.Tokens {
				fmt.Println(tok.String())
			}
		}
		if c.Bool("dump-ast") && unit.Path == path && unit.Module != nil {
			litter.Dump(unit.Module)
		}
	}

	buffers := make(map[string]*source.Buffer, len(result.Units))
	for _, unit := range result.Units {
		buffers[unit.Path] = unit.Buffer
	}
	for _, d := range result.Diagnostics.Diagnostics() {
		var lines diagnostics.LineSource
		if buf, ok := buffers[d.File]; ok {
			lines = buf
		}
		diagnostics.NewEmitter(os.Stderr, lines).Emit(d)
	}
	diagnostics.Summary(os.Stderr, result.Diagnostics.ErrorCount(), result.Diagnostics.WarningCount())

	if !result.Ok() {
		return cli.Exit("", 1)
	}
	return nil
}
