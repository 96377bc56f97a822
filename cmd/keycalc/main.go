// Package main is the entry point for the keycalc calculator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/keycalc/internal/app"
	"github.com/dshills/keycalc/internal/repl"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type mode int

const (
	modeTerminal mode = iota
	modeBatch
	modeREPL
)

type cliOptions struct {
	app.Options
	repl      bool
	keepGoing bool
	history   string
}

func main() {
	os.Exit(run())
}

func run() int {
	cli, code, ok := parseFlags(os.Args[1:], os.Stderr)
	if !ok {
		return code
	}

	m := modeTerminal
	switch {
	case cli.repl:
		m = modeREPL
	case !term.IsTerminal(int(os.Stdin.Fd())):
		m = modeBatch
	}

	opts := cli.Options
	if m != modeTerminal {
		opts.ScriptOutput = os.Stderr
		if opts.LogLevel != "" {
			opts.LogOutput = os.Stderr
		}
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch m {
	case modeBatch:
		err = application.RunBatch(ctx, os.Stdin, os.Stdout, cli.keepGoing)
	case modeREPL:
		err = application.RunREPL(ctx, os.Stdout, cli.history)
	default:
		go func() {
			<-ctx.Done()
			_ = application.Shutdown()
		}()
		err = application.Run()
	}

	if err != nil && !errors.Is(err, app.ErrQuit) && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags parses args. When ok is false the program exits with code.
func parseFlags(args []string, stderr io.Writer) (cli cliOptions, code int, ok bool) {
	fs := flag.NewFlagSet("keycalc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		scripts     stringList
		showVersion bool
	)

	fs.StringVar(&cli.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&cli.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&cli.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cli.Theme, "theme", "", "Theme (light, dark)")
	fs.Var(&scripts, "script", "Lua script to run at startup (repeatable)")
	fs.StringVar(&cli.ExportPath, "export", "", "Write history as JSON to this file on exit")
	fs.BoolVar(&cli.repl, "repl", false, "Line-oriented mode with editing and history")
	fs.StringVar(&cli.history, "history", repl.DefaultHistoryFile(), "REPL history file (empty disables)")
	fs.BoolVar(&cli.keepGoing, "keep-going", false, "In batch mode, report bad lines and continue")
	fs.BoolVar(&cli.WatchConfig, "watch", true, "Reload the config file when it changes")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "keycalc - keyboard calculator\n\n")
		fmt.Fprintf(stderr, "Usage: keycalc [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  keycalc                         Interactive calculator\n")
		fmt.Fprintf(stderr, "  keycalc -repl                   Line mode\n")
		fmt.Fprintf(stderr, "  echo '12 + 3 =' | keycalc       Batch mode\n")
		fmt.Fprintf(stderr, "  keycalc -export hist.json       Save history on exit\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cli, 0, false
		}
		return cli, 2, false
	}

	if showVersion {
		fmt.Fprintf(stderr, "keycalc %s\n", version)
		fmt.Fprintf(stderr, "Commit: %s\n", commit)
		fmt.Fprintf(stderr, "Built: %s\n", date)
		return cli, 0, false
	}

	switch cli.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", cli.LogLevel)
		return cli, 2, false
	}
	switch cli.Theme {
	case "", "light", "dark":
	default:
		fmt.Fprintf(stderr, "Error: invalid theme %q (must be light or dark)\n", cli.Theme)
		return cli, 2, false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return cli, 2, false
	}

	cli.Scripts = scripts
	return cli, 0, true
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
