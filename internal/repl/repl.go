// Package repl provides the interactive line mode (-repl): a liner prompt
// over the batch token grammar with persistent input history.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/dshills/keycalc/internal/batch"
)

// DefaultPrompt is shown before each input line.
const DefaultPrompt = "keycalc> "

// words offered by tab completion.
var completions = []string{
	"AC", "BS", "C", "M+", "M-", "MC", "MR", "+/-", "=",
	"clear", "backspace", "quit", ":help", ":quit",
}

const helpText = `tokens: digits . + - * / % =   C  BS  +/-  M+ M-  MR  MC
several tokens per line, e.g. "12 + 3 =" or "12+3="; :quit or Ctrl-D exits`

// Option configures a REPL.
type Option func(*REPL)

// WithPrompt sets the prompt.
func WithPrompt(p string) Option {
	return func(r *REPL) { r.prompt = p }
}

// WithHistoryFile persists input history to path.
func WithHistoryFile(path string) Option {
	return func(r *REPL) { r.historyPath = path }
}

// REPL reads token lines from the terminal and prints the display after
// each one.
type REPL struct {
	runner      *batch.Runner
	out         io.Writer
	prompt      string
	historyPath string
}

// New creates a REPL feeding runner and printing to out.
func New(runner *batch.Runner, out io.Writer, opts ...Option) *REPL {
	r := &REPL{
		runner: runner,
		out:    out,
		prompt: DefaultPrompt,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultHistoryFile returns $XDG_STATE_HOME/keycalc/repl_history.
func DefaultHistoryFile() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "keycalc", "repl_history")
}

// Run prompts until EOF, Ctrl-C, :quit or a quit action.
func (r *REPL) Run(ctx context.Context) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(complete)

	r.readHistory(ln)
	defer r.writeHistory(ln)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := ln.Prompt(r.prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if r.handle(line) {
			return nil
		}
	}
}

// handle runs one input line and reports whether the REPL should exit.
func (r *REPL) handle(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return false
	case ":quit", ":q":
		return true
	case ":help", "?":
		fmt.Fprintln(r.out, helpText)
		return false
	}

	shown, err := r.runner.Line(line)
	if shown != "" {
		fmt.Fprintln(r.out, shown)
	}
	switch {
	case errors.Is(err, batch.ErrQuit):
		return true
	case err != nil:
		fmt.Fprintf(r.out, "error: %v\n", err)
	}
	return false
}

// complete completes the last word of line.
func complete(line string) []string {
	i := strings.LastIndexAny(line, " \t")
	head, word := line[:i+1], line[i+1:]
	if word == "" {
		return nil
	}

	var out []string
	for _, c := range completions {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(word)) {
			out = append(out, head+c)
		}
	}
	sort.Strings(out)
	return out
}

func (r *REPL) readHistory(ln *liner.State) {
	if r.historyPath == "" {
		return
	}
	if f, err := os.Open(r.historyPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
}

func (r *REPL) writeHistory(ln *liner.State) {
	if r.historyPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.historyPath), 0o755); err != nil {
		return
	}
	if f, err := os.Create(r.historyPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}
