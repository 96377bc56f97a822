package lua

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/input/keymap"
)

// CalcModule is the name of the calculator module.
const CalcModule = "calc"

// Calculator is the engine surface scripts drive. *engine.Engine
// satisfies it.
type Calculator interface {
	keymap.Target
	ToggleSign()
	ApplyPercent()
	ViewState() engine.View
	Memory() float64
	History() []engine.Entry
}

// OpenCalc registers the calc module bound to c.
func OpenCalc(s *State, c Calculator) {
	m := &calcModule{calc: c}
	s.RegisterModule(CalcModule, map[string]lua.LGFunction{
		"press":        m.press,
		"clear":        m.clear,
		"evaluate":     m.evaluate,
		"backspace":    m.backspace,
		"sign":         m.sign,
		"percent":      m.percent,
		"memory":       m.memory,
		"display":      m.display,
		"history":      m.history,
		"memory_value": m.memoryValue,
	})
}

type calcModule struct {
	calc Calculator
}

// press(token, ...) -> display
func (m *calcModule) press(L *lua.LState) int {
	n := L.GetTop()
	var actions []keymap.Action
	for i := 1; i <= n; i++ {
		tok := L.CheckString(i)
		as, err := keymap.ParseToken(tok)
		if err != nil {
			L.ArgError(i, err.Error())
			return 0
		}
		actions = append(actions, as...)
	}

	for _, a := range actions {
		if err := keymap.Apply(m.calc, a); errors.Is(err, keymap.ErrNotEngineAction) {
			L.RaiseError("action %s is not available to scripts", a)
			return 0
		}
	}
	L.Push(lua.LString(m.calc.ViewState().DisplayText))
	return 1
}

func (m *calcModule) clear(L *lua.LState) int {
	m.calc.Clear()
	return 0
}

// evaluate() -> ok, display
func (m *calcModule) evaluate(L *lua.LState) int {
	out, err := m.calc.Evaluate()
	L.Push(lua.LBool(err == nil))
	L.Push(lua.LString(out.Display))
	return 2
}

func (m *calcModule) backspace(L *lua.LState) int {
	m.calc.Backspace()
	return 0
}

func (m *calcModule) sign(L *lua.LState) int {
	m.calc.ToggleSign()
	return 0
}

func (m *calcModule) percent(L *lua.LState) int {
	m.calc.ApplyPercent()
	return 0
}

// memory(action) -> memory value
func (m *calcModule) memory(L *lua.LState) int {
	action, err := engine.ParseMemoryAction(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	if err := m.calc.MemoryOp(action); err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LNumber(m.calc.Memory()))
	return 1
}

func (m *calcModule) display(L *lua.LState) int {
	L.Push(lua.LString(m.calc.ViewState().DisplayText))
	return 1
}

// history() -> { {expression=, result=, line=}, ... } newest first
func (m *calcModule) history(L *lua.LState) int {
	entries := m.calc.History()
	tbl := L.CreateTable(len(entries), 0)
	for _, e := range entries {
		row := L.CreateTable(0, 3)
		row.RawSetString("expression", lua.LString(e.Expression))
		row.RawSetString("result", lua.LNumber(e.Result))
		row.RawSetString("line", lua.LString(e.String()))
		tbl.Append(row)
	}
	L.Push(tbl)
	return 1
}

func (m *calcModule) memoryValue(L *lua.LState) int {
	L.Push(lua.LNumber(m.calc.Memory()))
	return 1
}
