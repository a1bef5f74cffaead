package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/diag"
	"github.com/silica-lang/silica/internal/lexer"
	"github.com/silica-lang/silica/internal/parser"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: silica <command> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  parse <file>    Parse a Silica source file and report errors\n")
		fmt.Fprintf(os.Stderr, "  dump <file>     Parse a Silica source file and list its members\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "parse":
		runParse(args, false)
	case "dump":
		runParse(args, true)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runParse(args []string, dump bool) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: silica parse <file>\n")
		os.Exit(1)
	}
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "silica: %v\n", err)
		os.Exit(1)
	}
	src := string(data)

	scanner := lexer.NewScanner(src)
	scanner.SetFilename(path)
	moduleName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p := parser.New(moduleName, lexer.NewCursor(scanner))

	module, err := p.ParseModule(nil)
	if err != nil {
		f := diag.NewFormatter(os.Stderr)
		f.AddSource(path, src)
		if d, ok := diag.AsDiagnostic(err); ok {
			f.Format(d)
		} else {
			fmt.Fprintf(os.Stderr, "silica: %v\n", err)
		}
		os.Exit(1)
	}

	if dump {
		dumpModule(module)
	}
	fmt.Printf("%s: ok (%d top-level members)\n", path, len(module.Top))
}

func dumpModule(m *ast.Module) {
	for _, member := range m.Top {
		switch n := member.(type) {
		case *ast.Function:
			vis := ""
			if n.Public {
				vis = "pub "
			}
			fmt.Printf("%sfn %s (%d params)\n", vis, n.Name.Name, len(n.Params))
		case *ast.Proc:
			fmt.Printf("proc %s\n", n.Name.Name)
		case *ast.StructDef:
			fmt.Printf("struct %s (%d members)\n", n.Name.Name, len(n.Members))
		case *ast.EnumDef:
			fmt.Printf("enum %s (%d members)\n", n.Name.Name, len(n.Members))
		case *ast.TypeDef:
			fmt.Printf("type %s\n", n.Name.Name)
		case *ast.ConstantDef:
			fmt.Printf("const %s\n", n.Name.Name)
		case *ast.Import:
			fmt.Printf("import %s\n", strings.Join(n.Path, "."))
		case *ast.Test:
			fmt.Printf("test %s\n", n.Name.Name)
		case *ast.TestFunction:
			fmt.Printf("test fn %s\n", n.Fn.Name.Name)
		case *ast.QuickCheck:
			fmt.Printf("quickcheck fn %s (test_count=%d)\n", n.Fn.Name.Name, n.TestCount)
		}
	}
}
