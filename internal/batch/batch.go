// Package batch drives the calculator from lines of text, one display per
// line. It backs both piped input and the interactive REPL.
//
// Each line is split like a shell command line and every word is a token of
// the keymap token grammar:
//
//	12 + 3 =        -> 15
//	M+              -> 15
//	C 2 * MR =      -> 30
//	7 +/- %         -> -0.07
//	# comment lines and blank lines are skipped
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"

	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/input/keymap"
)

// ErrQuit is returned when a line contains the quit action.
var ErrQuit = errors.New("quit")

// Calculator is the engine surface batch input drives.
type Calculator interface {
	keymap.Target
	ViewState() engine.View
}

// Handler receives actions the engine does not handle (theme, quit).
type Handler func(keymap.Action) error

// LineError reports a line that could not be run.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Option configures a Runner.
type Option func(*Runner)

// WithHandler sets the handler for theme and quit actions. The default
// ignores theme and returns ErrQuit for quit.
func WithHandler(h Handler) Option {
	return func(r *Runner) { r.handler = h }
}

// WithKeepGoing makes Run report bad lines to the output and continue
// instead of stopping.
func WithKeepGoing(keepGoing bool) Option {
	return func(r *Runner) { r.keepGoing = keepGoing }
}

// WithEvalHook sets a function called with every evaluation failure, e.g.
// for logging.
func WithEvalHook(fn func(expr string, err error)) Option {
	return func(r *Runner) { r.onEvalError = fn }
}

// Runner executes token lines against a calculator.
type Runner struct {
	calc        Calculator
	handler     Handler
	keepGoing   bool
	onEvalError func(string, error)
	lines       int
}

// New creates a Runner driving calc.
func New(calc Calculator, opts ...Option) *Runner {
	r := &Runner{
		calc:    calc,
		handler: defaultHandler,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func defaultHandler(a keymap.Action) error {
	if a.Kind == keymap.KindQuit {
		return ErrQuit
	}
	return nil
}

// Line runs one line and returns the text to display: the engine display,
// or engine.DisplayError when the line's last evaluation failed. Blank and
// comment lines return "" and no error.
func (r *Runner) Line(line string) (string, error) {
	r.lines++
	words, err := shlex.Split(line)
	if err != nil {
		return "", &LineError{Line: r.lines, Text: line, Err: err}
	}
	if len(words) == 0 {
		return "", nil
	}

	var actions []keymap.Action
	for _, w := range words {
		as, err := keymap.ParseToken(w)
		if err != nil {
			return "", &LineError{Line: r.lines, Text: line, Err: err}
		}
		actions = append(actions, as...)
	}

	failed := false
	for _, a := range actions {
		var before string
		if a.Kind == keymap.KindEvaluate {
			before = r.calc.ViewState().DisplayText
		}

		err := keymap.Apply(r.calc, a)
		switch {
		case errors.Is(err, keymap.ErrNotEngineAction):
			if herr := r.handler(a); herr != nil {
				return r.display(failed), herr
			}
		case err != nil:
			failed = true
			if r.onEvalError != nil {
				r.onEvalError(before, err)
			}
		default:
			failed = false
		}
	}
	return r.display(failed), nil
}

func (r *Runner) display(failed bool) string {
	if failed {
		return engine.DisplayError
	}
	return r.calc.ViewState().DisplayText
}

// Run reads lines from in until EOF, writing each line's display to out.
// It stops at the first bad line unless WithKeepGoing is set, and returns
// nil when a quit action ends the input.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			r.lines++
			continue
		}
		shown, err := r.Line(text)
		if shown != "" {
			fmt.Fprintln(out, shown)
		}

		var lerr *LineError
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case errors.As(err, &lerr) && r.keepGoing:
			fmt.Fprintf(out, "error: %v\n", err)
		case err != nil:
			return err
		}
	}
	return sc.Err()
}
