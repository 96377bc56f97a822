// Package lua runs user scripts against the calculator in a sandboxed
// gopher-lua state.
//
// # State
//
// The State type manages a Lua runtime with only the base, table, string
// and math libraries. dofile, loadfile, load and loadstring are removed,
// print writes to a configurable writer and require only loads allowed
// modules.
//
//	state := lua.NewState(lua.WithExecutionTimeout(2 * time.Second))
//	defer state.Close()
//
// # The calc module
//
// OpenCalc binds a calculator to the global calc table (also available as
// require("calc")):
//
//	calc.press("12", "+", "3")      -- keystrokes, same tokens as batch mode
//	local ok, shown = calc.evaluate()
//	calc.memory("M+")
//	print(calc.display(), calc.memory_value())
//	for i, e in ipairs(calc.history()) do print(e.expression, e.result) end
//
// Evaluation failures are reported through return values, never raised.
// Unknown tokens and memory actions raise a Lua error.
package lua
