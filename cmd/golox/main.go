// Command golox is the interpreter CLI. With a file operand it runs the file;
// with "-" it runs standard input; with no operand it starts a REPL.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"golox/pkg/config"
	"golox/pkg/runtime"
)

// Exit codes follow the BSD sysexits convention.
const (
	exitOK      = 0
	exitUsage   = 64
	exitDataErr = 65 // scan or parse errors
	exitRuntime = 70 // runtime error
	exitIOErr   = 74
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: golox [-djn] [-c config] [script | -]")
	fmt.Fprintln(w, "  -d    dump scanned tokens to stderr")
	fmt.Fprintln(w, "  -j    report diagnostics as JSON")
	fmt.Fprintln(w, "  -n    disable colored output")
	fmt.Fprintln(w, "  -c    load configuration from an explicit path")
}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var (
		jsonDiags bool
		noColor   bool
		debug     bool
		cfgPath   string
	)

	opts, optind, err := getopt.Getopts(args, "djnc:")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage(os.Stderr)
		return exitUsage
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'd':
			debug = true
		case 'j':
			jsonDiags = true
		case 'n':
			noColor = true
		case 'c':
			cfgPath = opt.Value
		}
	}
	operands := args[optind:]
	if len(operands) > 1 {
		usage(os.Stderr)
		return exitUsage
	}

	var cfg config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.Discover()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOErr
	}

	if noColor {
		color.NoColor = true
	} else if cfg.Color != nil {
		color.NoColor = !*cfg.Color
	}

	var rtOpts []runtime.Option
	if jsonDiags {
		rtOpts = append(rtOpts, runtime.WithJSONDiagnostics())
	}
	if debug || cfg.DebugTokens {
		rtOpts = append(rtOpts, runtime.WithDebugTokens())
	}
	rt := runtime.New(rtOpts...)

	switch {
	case len(operands) == 0:
		return repl(rt, cfg)
	case operands[0] == "-":
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "golox: read stdin: %v\n", err)
			return exitIOErr
		}
		return exitCode(rt.Run(string(source)))
	default:
		source, err := os.ReadFile(operands[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "golox: %v\n", err)
			return exitIOErr
		}
		return exitCode(rt.Run(string(source)))
	}
}

func exitCode(err error) int {
	var diagErr *runtime.DiagnosticError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &diagErr):
		return exitDataErr
	case errors.Is(err, runtime.ErrRuntime):
		return exitRuntime
	default:
		return exitRuntime
	}
}

// repl reads one line at a time and runs each independently; errors are
// reported and the session continues with its bindings intact.
func repl(rt *runtime.Runtime, cfg config.Config) int {
	color.Cyan("golox interactive interpreter (type \"exit\" to quit)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(cfg.Prompt)
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" {
			break
		}
		if line == "" {
			continue
		}
		// Errors were already reported; keep the session alive.
		_ = rt.Run(line)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "golox: read stdin: %v\n", err)
		return exitIOErr
	}
	fmt.Println()
	return exitOK
}
