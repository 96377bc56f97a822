package batch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/input/keymap"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"simple", []string{"12 + 3 ="}, "15"},
		{"compact", []string{"12+3="}, "15"},
		{"pending", []string{"12 +"}, "12+"},
		{"memory", []string{"2 * 3 =", "M+", "C", "MR +", "1 ="}, "7"},
		{"sign and percent", []string{"7 +/- %"}, "-0.07"},
		{"divide by zero", []string{"5 / 0 ="}, engine.DisplayError},
		{"recover after error", []string{"5 / 0 =", "BS 2 ="}, "2.5"},
		{"comment", []string{"# nothing here"}, ""},
		{"quoted token", []string{`"12" "+" "1" "="`}, "13"},
		{"multiply symbols", []string{"6 × 7 ="}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(engine.New())
			var got string
			for _, l := range tt.lines {
				var err error
				got, err = r.Line(l)
				if err != nil {
					t.Fatalf("Line(%q) error = %v", l, err)
				}
			}
			if got != tt.want {
				t.Errorf("display = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLineErrors(t *testing.T) {
	r := New(engine.New())

	_, err := r.Line("1 + sqrt")
	var lerr *LineError
	if !errors.As(err, &lerr) || lerr.Line != 1 {
		t.Fatalf("Line() error = %v, want *LineError on line 1", err)
	}
	if !errors.Is(err, keymap.ErrUnknownToken) {
		t.Errorf("error = %v, want ErrUnknownToken", err)
	}

	if _, err := r.Line(`"unterminated`); !errors.As(err, &lerr) || lerr.Line != 2 {
		t.Errorf("Line(unterminated quote) error = %v, want *LineError on line 2", err)
	}
}

func TestRun(t *testing.T) {
	in := strings.NewReader("12 + 3 =\n\nM+\n# skip\n5 / 0 =\nC 2 =\n")
	var out strings.Builder

	if err := New(engine.New()).Run(context.Background(), in, &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := "15\n15\nError\n2\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunStopsOnBadLine(t *testing.T) {
	in := strings.NewReader("1 +\nbogus\n2 =\n")
	var out strings.Builder

	err := New(engine.New()).Run(context.Background(), in, &out)
	var lerr *LineError
	if !errors.As(err, &lerr) || lerr.Line != 2 {
		t.Fatalf("Run() error = %v, want *LineError on line 2", err)
	}
	if out.String() != "1+\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunKeepGoing(t *testing.T) {
	in := strings.NewReader("1 +\nbogus\n2 =\n")
	var out strings.Builder

	if err := New(engine.New(), WithKeepGoing(true)).Run(context.Background(), in, &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "error: line 2") || lines[2] != "3" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunQuit(t *testing.T) {
	in := strings.NewReader("4 =\nquit\n5 =\n")
	var out strings.Builder

	if err := New(engine.New()).Run(context.Background(), in, &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.String() != "4\n4\n" {
		t.Errorf("output = %q, want input to stop at quit", out.String())
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(engine.New()).Run(ctx, strings.NewReader("1\n"), &strings.Builder{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestHandlerAndEvalHook(t *testing.T) {
	var seen []string
	var failures []string
	r := New(engine.New(),
		WithHandler(func(a keymap.Action) error {
			seen = append(seen, a.String())
			return nil
		}),
		WithEvalHook(func(expr string, err error) {
			failures = append(failures, expr)
		}),
	)

	if _, err := r.Line("theme 1 / 0 = quit"); err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	if len(seen) != 2 || seen[0] != "theme" || seen[1] != "quit" {
		t.Errorf("handler saw %v", seen)
	}
	if len(failures) != 1 || failures[0] != "1/0" {
		t.Errorf("eval hook saw %v", failures)
	}
}
