package keymap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/keycalc/internal/engine"
)

// ErrUnknownAction is returned for action names outside the vocabulary.
var ErrUnknownAction = errors.New("unknown action")

// Kind classifies an Action.
type Kind uint8

const (
	// KindNone is the zero Action.
	KindNone Kind = iota
	// KindToken feeds Action.Token to engine.AppendToken.
	KindToken
	KindEvaluate
	KindClear
	KindBackspace
	KindMemory
	// KindTheme toggles between the light and dark themes.
	KindTheme
	KindQuit
)

// Action is what a key, batch token or script call asks the calculator to
// do.
type Action struct {
	Kind   Kind
	Token  rune
	Memory engine.MemoryAction
}

// Common actions.
var (
	Evaluate  = Action{Kind: KindEvaluate}
	Clear     = Action{Kind: KindClear}
	Backspace = Action{Kind: KindBackspace}
	Sign      = Action{Kind: KindToken, Token: engine.TokenSign}
	Percent   = Action{Kind: KindToken, Token: engine.TokenPercent}
	Theme     = Action{Kind: KindTheme}
	Quit      = Action{Kind: KindQuit}
)

// Digit returns the action for typing d.
func Digit(d rune) Action {
	return Action{Kind: KindToken, Token: d}
}

// Operator returns the action for typing op.
func Operator(op rune) Action {
	return Action{Kind: KindToken, Token: op}
}

// Memory returns the action for a memory register operation.
func Memory(a engine.MemoryAction) Action {
	return Action{Kind: KindMemory, Memory: a}
}

// String returns the action name accepted by ParseAction.
func (a Action) String() string {
	switch a.Kind {
	case KindToken:
		switch {
		case a.Token >= '0' && a.Token <= '9':
			return "digit:" + string(a.Token)
		case a.Token == '.':
			return "decimal"
		case a.Token == engine.TokenSign:
			return "sign"
		case a.Token == engine.TokenPercent:
			return "percent"
		default:
			return "op:" + string(a.Token)
		}
	case KindEvaluate:
		return "evaluate"
	case KindClear:
		return "clear"
	case KindBackspace:
		return "backspace"
	case KindMemory:
		return "memory:" + string(a.Memory)
	case KindTheme:
		return "theme"
	case KindQuit:
		return "quit"
	default:
		return "none"
	}
}

// ParseAction parses an action name.
//
//	digit:0 .. digit:9   decimal   op:+ op:- op:* op:/
//	evaluate   clear   backspace   sign   percent
//	memory:M+ memory:M- memory:MR memory:MC   theme   quit
func ParseAction(name string) (Action, error) {
	name = strings.TrimSpace(name)
	verb, arg, hasArg := strings.Cut(name, ":")

	switch strings.ToLower(verb) {
	case "digit":
		if len(arg) == 1 && arg[0] >= '0' && arg[0] <= '9' {
			return Digit(rune(arg[0])), nil
		}
	case "op":
		if len(arg) == 1 && strings.ContainsRune("+-*/", rune(arg[0])) {
			return Operator(rune(arg[0])), nil
		}
	case "memory":
		if m, err := engine.ParseMemoryAction(arg); err == nil {
			return Memory(m), nil
		}
	case "decimal":
		if !hasArg {
			return Digit('.'), nil
		}
	case "evaluate":
		if !hasArg {
			return Evaluate, nil
		}
	case "clear":
		if !hasArg {
			return Clear, nil
		}
	case "backspace":
		if !hasArg {
			return Backspace, nil
		}
	case "sign":
		if !hasArg {
			return Sign, nil
		}
	case "percent":
		if !hasArg {
			return Percent, nil
		}
	case "theme":
		if !hasArg {
			return Theme, nil
		}
	case "quit":
		if !hasArg {
			return Quit, nil
		}
	}
	return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}
