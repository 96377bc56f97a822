package keymap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/keycalc/internal/engine"
)

var (
	// ErrNotEngineAction is returned by Apply for actions the engine does
	// not handle (theme, quit); the caller owns those.
	ErrNotEngineAction = errors.New("not an engine action")

	// ErrUnknownToken is returned by ParseToken for unrecognized input.
	ErrUnknownToken = errors.New("unknown token")
)

// Target is the calculator an Action is applied to. *engine.Engine
// satisfies it.
type Target interface {
	AppendToken(tok rune)
	Clear()
	Evaluate() (engine.Outcome, error)
	Backspace()
	MemoryOp(action engine.MemoryAction) error
}

// Apply performs a on t. Evaluation failures are returned as the error from
// Evaluate.
func Apply(t Target, a Action) error {
	switch a.Kind {
	case KindToken:
		t.AppendToken(a.Token)
	case KindEvaluate:
		_, err := t.Evaluate()
		return err
	case KindClear:
		t.Clear()
	case KindBackspace:
		t.Backspace()
	case KindMemory:
		return t.MemoryOp(a.Memory)
	default:
		return fmt.Errorf("%w: %s", ErrNotEngineAction, a)
	}
	return nil
}

// tokenKeywords are the whole-word tokens of the batch and script grammar.
var tokenKeywords = map[string]Action{
	"=":         Evaluate,
	"c":         Clear,
	"ac":        Clear,
	"clear":     Clear,
	"bs":        Backspace,
	"backspace": Backspace,
	"+/-":       Sign,
	"±":         Sign,
	"neg":       Sign,
	"m+":        Memory(engine.MemoryAdd),
	"m-":        Memory(engine.MemorySubtract),
	"mr":        Memory(engine.MemoryRecall),
	"mc":        Memory(engine.MemoryClear),
}

// ParseToken converts one whitespace-separated token of the batch/script
// grammar into the actions it stands for.
//
//	12.5  +  -  *  /  ×  ÷  %  =   keystrokes, several per token ("12+3=")
//	C AC BS +/- ± M+ M- MR MC      whole-word keys (case-insensitive)
//	digit:7 memory:M+ theme ...    any ParseAction name
func ParseToken(tok string) ([]Action, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return nil, fmt.Errorf("%w: empty", ErrUnknownToken)
	}
	if a, ok := tokenKeywords[strings.ToLower(tok)]; ok {
		return []Action{a}, nil
	}

	actions := make([]Action, 0, len(tok))
	for _, r := range tok {
		a, ok := keystroke(r)
		if !ok {
			actions = nil
			break
		}
		actions = append(actions, a)
	}
	if actions != nil {
		return actions, nil
	}

	if a, err := ParseAction(tok); err == nil {
		return []Action{a}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownToken, tok)
}

func keystroke(r rune) (Action, bool) {
	switch {
	case r >= '0' && r <= '9', r == '.':
		return Digit(r), true
	case r == '+', r == '-', r == '*', r == '/':
		return Operator(r), true
	case r == '×':
		return Operator('*'), true
	case r == '÷':
		return Operator('/'), true
	case r == '%':
		return Percent, true
	case r == '=':
		return Evaluate, true
	}
	return Action{}, false
}
