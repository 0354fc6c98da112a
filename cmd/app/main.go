package main

import (
	"flag"
	"fmt"
	"os"

	"quill/internal/ast"
	"quill/internal/eval"
	"quill/internal/logger"
	"quill/internal/natives"
	"quill/internal/object"
	"quill/internal/syntax"
	"quill/internal/util"
)

var (
	// Version is stamped by the build.
	Version   = "dev"
	BuildDate = "unknown"

	help       bool
	version    bool
	configPath string
	logLevel   string
	noColor    bool
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.StringVar(&configPath, "config", "", "Path to a TOML configuration file")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.BoolVar(&noColor, "no-color", false, "Disable colored log output")
}

func main() {
	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}
	if version {
		fmt.Printf("quill %s (built %s)\n", Version, BuildDate)
		os.Exit(0)
	}

	cfg, err := util.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	cfg.Version = Version
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if noColor {
		cfg.NoColor = true
	}
	logger.Init(cfg.LogLevel, cfg.NoColor)

	if err := runDemo(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// runDemo evaluates a small built-in program exercising closures, partial
// application and the sequence operations.
func runDemo() error {
	ctx := eval.NewContext()
	vm := ctx.Machine(object.Route{}, object.NewScopes(natives.BaseScope()))

	span := syntax.DetachedSpan
	program := []ast.Expr{
		// let double = (x) => x * 2
		&ast.Let{Pos: span, Name: "double", Value: &ast.ClosureLit{
			Pos:    span,
			Params: []ast.ClosureParam{{Name: "x"}},
			Body: &ast.Binary{Pos: span, Operator: "*",
				Left:  &ast.Ident{Pos: span, Name: "x"},
				Right: &ast.IntLit{Pos: span, Value: 2}},
		}},
		// range(5).map(double)
		&ast.MethodCall{Pos: span, Name: "map",
			Recv: &ast.Call{Pos: span,
				Callee: &ast.Ident{Pos: span, Name: "range"},
				Args:   []ast.CallArg{{Pos: span, Value: &ast.IntLit{Pos: span, Value: 5}}}},
			Args: []ast.CallArg{{Pos: span, Value: &ast.Ident{Pos: span, Name: "double"}}}},
		// let add = (a, b) => a + b
		&ast.Let{Pos: span, Name: "add", Value: &ast.ClosureLit{
			Pos:    span,
			Params: []ast.ClosureParam{{Name: "a"}, {Name: "b"}},
			Body: &ast.Binary{Pos: span, Operator: "+",
				Left:  &ast.Ident{Pos: span, Name: "a"},
				Right: &ast.Ident{Pos: span, Name: "b"}},
		}},
		// add.with(2)(3)
		&ast.Call{Pos: span,
			Callee: &ast.MethodCall{Pos: span, Name: "with",
				Recv: &ast.Ident{Pos: span, Name: "add"},
				Args: []ast.CallArg{{Pos: span, Value: &ast.IntLit{Pos: span, Value: 2}}}},
			Args: []ast.CallArg{{Pos: span, Value: &ast.IntLit{Pos: span, Value: 3}}}},
		// ("a", "b", "c").join(", ", last: " and ")
		&ast.MethodCall{Pos: span, Name: "join",
			Recv: &ast.ArrayLit{Pos: span, Elems: []ast.Expr{
				&ast.StrLit{Pos: span, Value: "a"},
				&ast.StrLit{Pos: span, Value: "b"},
				&ast.StrLit{Pos: span, Value: "c"},
			}},
			Args: []ast.CallArg{
				{Pos: span, Value: &ast.StrLit{Pos: span, Value: ", "}},
				{Pos: span, Name: "last", Value: &ast.StrLit{Pos: span, Value: " and "}},
			}},
	}

	for _, expr := range program {
		result, err := vm.Eval(expr)
		if err != nil {
			return err
		}
		if result != object.NIL {
			fmt.Printf("%s\n  => %s\n", expr.String(), result.Inspect())
		}
	}
	return nil
}
