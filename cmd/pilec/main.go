// Command pilec is the compiler/VM front end for the stack language:
//
//	pilec compile --filename <path> [--codegen vm|llvm] [--output <name>] [--grammar <path>]
//	pilec run --filename <path>
//	pilec disasm --filename <path>
//
// Exit code 0 on success, nonzero on any error.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/pile-lang/rusted-pile/internal/pile/ast"
	"github.com/pile-lang/rusted-pile/internal/pile/bytecode"
	"github.com/pile-lang/rusted-pile/internal/pile/codegen"
	"github.com/pile-lang/rusted-pile/internal/pile/config"
	"github.com/pile-lang/rusted-pile/internal/pile/grammar"
	"github.com/pile-lang/rusted-pile/internal/pile/lex"
	"github.com/pile-lang/rusted-pile/internal/pile/parser"
	"github.com/pile-lang/rusted-pile/internal/pile/parsetab"
	"github.com/pile-lang/rusted-pile/internal/pile/vm"
)

const (
	ExitSuccess = iota
	ExitUsageError
	ExitCompileError
	ExitRunError
)

func main() {
	returnCode := ExitSuccess

	defer func() {
		if panicErr := recover(); panicErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", panicErr)
			returnCode = ExitRunError
		}
		os.Exit(returnCode)
	}()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "ERROR: expected a subcommand (compile, run, disasm)")
		returnCode = ExitUsageError
		return
	}

	sub := os.Args[1]
	flags := pflag.NewFlagSet(sub, pflag.ContinueOnError)

	filename := flags.StringP("filename", "f", "", "source or bytecode file")
	codegenName := flags.String("codegen", "", "codegen backend: vm|llvm (default: config, else vm)")
	output := flags.StringP("output", "o", "", "bytecode output path")
	grammarPath := flags.String("grammar", "", "grammar text file (default: built-in grammar)")
	configPath := flags.String("config", "pilec.toml", "configuration file path")

	if err := flags.Parse(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitUsageError
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: loading config: %s\n", err)
		returnCode = ExitUsageError
		return
	}
	if *output == "" {
		*output = cfg.Output
	}
	if *codegenName == "" {
		*codegenName = cfg.Codegen
	}
	if *grammarPath == "" {
		*grammarPath = cfg.GrammarPath
	}

	if *filename == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --filename is required")
		returnCode = ExitUsageError
		return
	}

	switch sub {
	case "compile":
		if err := runCompile(*filename, *codegenName, *output, *grammarPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			returnCode = ExitCompileError
		}
	case "run":
		if err := runRun(*filename); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			returnCode = ExitRunError
		}
	case "disasm":
		if err := runDisasm(*filename); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			returnCode = ExitRunError
		}
	default:
		fmt.Fprintf(os.Stderr, "ERROR: unknown subcommand %q\n", sub)
		returnCode = ExitUsageError
	}
}

func loadGrammar(path string) (*grammar.Grammar, error) {
	text := grammar.DefaultGrammarText
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading grammar file: %w", err)
		}
		text = string(raw)
	}

	g, err := grammar.ParseText(text)
	if err != nil {
		return nil, fmt.Errorf("parsing grammar: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("validating grammar: %w", err)
	}
	g.ComputeFirst()
	g.ComputeFollow()
	return g, nil
}

func runCompile(filename, codegenName, output, grammarPath string, cfg config.Config) error {
	g, err := loadGrammar(grammarPath)
	if err != nil {
		return err
	}

	table, err := parsetab.Build(g)
	if err != nil {
		return fmt.Errorf("building parse table: %w", err)
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading source file: %w", err)
	}

	tokens, err := lex.Lex(string(src))
	if err != nil {
		return fmt.Errorf("lexing: %w", err)
	}

	tree, err := parser.Parse(table, tokens)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	program, err := ast.Lower(tree)
	if err != nil {
		return fmt.Errorf("lowering AST: %w", err)
	}

	backend, err := codegen.Select(codegenName)
	if err != nil {
		return err
	}

	instrs, err := backend.Generate(program)
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	if backend.Name() != "vm" {
		return fmt.Errorf("backend %q: %w", backend.Name(), codegen.ErrUnsupportedBackend)
	}

	if err := bytecode.Save(output, instrs); err != nil {
		return fmt.Errorf("writing bytecode: %w", err)
	}

	return nil
}

func runRun(filename string) error {
	instrs, _, err := bytecode.Load(filename)
	if err != nil {
		return err
	}

	m := vm.New(os.Stdout)
	return m.Execute(instrs)
}

func runDisasm(filename string) error {
	instrs, buildID, err := bytecode.Load(filename)
	if err != nil {
		return err
	}

	fmt.Printf("build %s\n", buildID)
	fmt.Println(bytecode.Disassemble(instrs))
	return nil
}
