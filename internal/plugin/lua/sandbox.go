package lua

import (
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L      *lua.LState
	output io.Writer

	// modules that require may load
	allowed map[string]bool
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState, output io.Writer) *Sandbox {
	return &Sandbox{
		L:      L,
		output: output,
		allowed: map[string]bool{
			"string": true,
			"table":  true,
			"math":   true,
		},
	}
}

// Install removes functions that load code from disk or strings, redirects
// print and restricts require to allowed modules.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.installPrint()
	s.installRequire()
}

// Allow lets require load name.
func (s *Sandbox) Allow(name string) {
	s.allowed[name] = true
}

// installPrint replaces print with one writing to the sandbox output.
func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(s.output, strings.Join(parts, "\t"))
		return 0
	}))
}

// installRequire clears the module search paths and wraps require so only
// allowed modules load.
func (s *Sandbox) installRequire() {
	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := s.L.GetGlobal("require")
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)
		if !s.allowed[modName] {
			L.RaiseError("module %q is not available", modName)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(modName))
		L.Call(1, 1)
		return 1
	}))
}
