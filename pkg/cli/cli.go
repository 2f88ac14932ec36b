package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/config"
	"github.com/sparvlang/sparv/internal/interp"
	"github.com/sparvlang/sparv/internal/lexer"
	"github.com/sparvlang/sparv/internal/manifest"
	"github.com/sparvlang/sparv/internal/parser"
	"github.com/sparvlang/sparv/internal/pipeline"
	"github.com/sparvlang/sparv/internal/prettyprinter"
)

// App builds the sparv command. One positional path runs a file;
// trailing arguments populate ARGV. With no arguments on a terminal the
// REPL starts.
func App() *cli.App {
	return &cli.App{
		Name:    "sparv",
		Usage:   "sparv language interpreter",
		Version: config.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "eval",
				Aliases: []string{"e"},
				Usage:   "evaluate the given source and exit",
			},
			&cli.StringFlag{
				Name:    "print-ast",
				Aliases: []string{"p"},
				Usage:   "print the parenthesized AST of the given source",
			},
			&cli.StringFlag{
				Name:  "debug-ast",
				Usage: "dump the raw AST of the given source",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if src := c.String("print-ast"); src != "" {
		return printAST(src, false)
	}
	if src := c.String("debug-ast"); src != "" {
		return printAST(src, true)
	}
	if src := c.String("eval"); src != "" {
		return evalSource(src, "", c.Args().Slice())
	}
	if c.Args().Len() > 0 {
		return runFile(c.Args().First(), c.Args().Tail())
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return runREPL()
	}
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		return cli.Exit(fmt.Sprintf("sparv: %v", err), 1)
	}
	return evalSource(string(source), "", nil)
}

func runFile(path string, args []string) error {
	if !hasSourceExt(path) {
		return cli.Exit(fmt.Sprintf("sparv: not a source file: %s", path), 1)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("sparv: %v", err), 1)
	}

	// Manifest defaults come after the command line arguments.
	if m, err := manifest.Load(path); err != nil {
		return cli.Exit(fmt.Sprintf("sparv: %v", err), 1)
	} else if m != nil {
		args = append(args, m.Args...)
	}

	return evalSource(string(source), path, args)
}

func evalSource(source, filePath string, args []string) error {
	rep := newReporter()
	ip := interp.New(interp.Options{
		Out:        func(line string) { fmt.Println(line) },
		ScanErr:    rep.report,
		ParseErr:   rep.report,
		ResolveErr: rep.report,
		TypeErr:    rep.report,
		RuntimeErr: rep.report,
		Args:       args,
		FilePath:   filePath,
	})
	ip.Eval(source)
	if rep.count > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// printAST runs the front half of the pipeline only. raw selects the
// repr dump over the parenthesized form.
func printAST(source string, raw bool) error {
	rep := newReporter()
	ctx := pipeline.NewPipelineContext(source)
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	for _, err := range ctx.Errors {
		rep.report(err)
	}
	if rep.count > 0 {
		return cli.Exit("", 1)
	}
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return cli.Exit("sparv: no program", 1)
	}
	if raw {
		repr.Println(program)
		return nil
	}
	fmt.Print(prettyprinter.New().Print(program))
	return nil
}

func hasSourceExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range config.SourceFileExtensions {
		if ext == known {
			return true
		}
	}
	return false
}
