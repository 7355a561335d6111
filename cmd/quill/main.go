// Command quill is a thin demonstration front end for the reader/value/
// scope/sysfn core: it has no compiler or VM of its own (evaluating
// compiled code and applying lambdas is a host's job), so this binary
// only reads source into Values and prints what the reader produced.
// Grounded on cmd/sentra's run/repl command split, trimmed to the
// "parse" and "repl" subcommands this core can actually back.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"quill/internal/name"
	"quill/internal/reader"
	"quill/internal/scope"
	"quill/internal/value"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "parse":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: quill parse <file.ql>")
			os.Exit(1)
		}
		runParse(args[1])
	case "repl":
		runRepl()
	case "--help", "-h", "help":
		showUsage()
	case "--version", "-v", "version":
		fmt.Println("quill 0.1.0 — reader/value/scope core demo")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		showUsage()
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println("quill - embeddable Lisp-dialect core")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  quill parse <file.ql>   Parse a file and print its Value forms")
	fmt.Println("  quill repl              Read expressions from stdin one at a time")
	fmt.Println("  quill help              Show this message")
	fmt.Println("  quill version           Show version")
}

func runParse(filename string) {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quill: cannot read %s: %v\n", filename, err)
		os.Exit(1)
	}

	nm := name.NewStore()
	exprs, err := reader.ParseExprs(string(src), nm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}

	for i, v := range exprs {
		fmt.Printf("%d: %s\n", i, debugString(nm, v))
	}
}

// runRepl reads one expression per input line and echoes it back parsed.
// It checks isatty so piped input (e.g. `echo '(+ 1 2)' | quill repl`)
// skips the interactive "quill> " prompt rather than interleaving it with
// the echoed output.
func runRepl() {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	master := scope.NewMasterScope(name.NewStore())
	_ = master // the master table is available for a host to wire eval against

	nm := name.NewStore()
	in := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("quill> ")
		}
		if !in.Scan() {
			if interactive {
				fmt.Println()
			}
			return
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		v, err := reader.ParseSingleExpr(line, nm)
		if err != nil {
			fmt.Fprintf(os.Stderr, "quill: %v\n", err)
			continue
		}
		fmt.Println(debugString(nm, v))
	}
}

// debugString renders a Value as source-like text for the reader demo.
// It does not attempt sysfn's display/debug formatting (that lives on the
// format.Valuer adapter in internal/sysfn, which needs evaluated Values,
// not the raw code forms the reader alone produces).
func debugString(nm *name.Store, v value.Value) string {
	switch v.Kind {
	case value.KindUnit:
		return "()"
	case value.KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case value.KindInteger:
		return v.Int.String()
	case value.KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case value.KindRatio:
		return v.Ratio.String()
	case value.KindChar:
		return fmt.Sprintf("#\\%c", v.Char)
	case value.KindString:
		return fmt.Sprintf("%q", v.Str)
	case value.KindName:
		return nm.MustGet(v.Name)
	case value.KindList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = debugString(nm, e)
		}
		return "(" + strings.Join(parts, " ") + ")"
	case value.KindQuote:
		return strings.Repeat("'", int(v.Depth)) + debugString(nm, *v.Quoted)
	case value.KindQuasiquote:
		return strings.Repeat("`", int(v.Depth)) + debugString(nm, *v.Quoted)
	case value.KindComma:
		return strings.Repeat(",", int(v.Depth)) + debugString(nm, *v.Quoted)
	case value.KindCommaAt:
		return ",@" + debugString(nm, *v.Quoted)
	default:
		return "#<" + v.Kind.String() + ">"
	}
}
