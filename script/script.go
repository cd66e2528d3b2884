// This file is part of Nestrace.
//
// Nestrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Nestrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Nestrace.  If not, see <https://www.gnu.org/licenses/>.

// Package script implements the expression.Evaluator interface with an
// embedded Lua interpreter. Condition text is any Lua expression. The
// hardware state is exposed through global variables:
//
//	pc a x y sp ps cycle       CPU state at the candidate event
//	dot scanline frame         PPU coordinates
//	address value optype       the operation being considered; optype is
//	                           one of "execute", "read", "write",
//	                           "dummy read"
//
// For example:
//
//	pc == 0x8000
//	optype == "write" and address >= 0x2000 and address <= 0x2007
//	a == 0xff and scanline > 240
//
// An Evaluator is not safe for concurrent use. The tracer serialises all
// Compile and Evaluate calls behind its own lock which satisfies the
// expression.Evaluator contract.
package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/nestrace/curated"
	"github.com/jetsetilly/nestrace/expression"
)

// Evaluator implements the expression.Evaluator interface.
type Evaluator struct {
	vm *lua.LState

	// compiled condition functions. a token list produced by Compile() is a
	// single index into this slice
	chunks []*lua.LFunction
}

// NewEvaluator is the preferred method of initialisation for the Evaluator
// type.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		// the condition language is pure expressions. no library functions
		// are needed so none are opened
		vm: lua.NewState(lua.Options{SkipOpenLibs: true}),
	}
}

// Compile implements the expression.Evaluator interface.
func (ev *Evaluator) Compile(condition string) (expression.RPN, error) {
	fn, err := ev.vm.LoadString("return (" + condition + ")")
	if err != nil {
		return nil, curated.Errorf("script: cannot compile condition: %v", err)
	}

	ev.chunks = append(ev.chunks, fn)

	return expression.RPN{expression.Token(len(ev.chunks) - 1)}, nil
}

// Evaluate implements the expression.Evaluator interface.
func (ev *Evaluator) Evaluate(rpn expression.RPN, state expression.DebugState, op expression.Operation) (bool, error) {
	if len(rpn) == 0 {
		return true, nil
	}

	idx := int(rpn[0])
	if idx < 0 || idx >= len(ev.chunks) {
		return false, curated.Errorf("script: not a compiled condition")
	}

	ev.vm.SetGlobal("pc", lua.LNumber(state.CPU.PC))
	ev.vm.SetGlobal("a", lua.LNumber(state.CPU.A))
	ev.vm.SetGlobal("x", lua.LNumber(state.CPU.X))
	ev.vm.SetGlobal("y", lua.LNumber(state.CPU.Y))
	ev.vm.SetGlobal("sp", lua.LNumber(state.CPU.SP))
	ev.vm.SetGlobal("ps", lua.LNumber(state.CPU.PS))
	ev.vm.SetGlobal("cycle", lua.LNumber(state.CPU.Cycles))
	ev.vm.SetGlobal("dot", lua.LNumber(state.PPU.Cycle))
	ev.vm.SetGlobal("scanline", lua.LNumber(state.PPU.Scanline))
	ev.vm.SetGlobal("frame", lua.LNumber(state.PPU.Frame))
	ev.vm.SetGlobal("address", lua.LNumber(op.Address))
	ev.vm.SetGlobal("value", lua.LNumber(op.Value))
	ev.vm.SetGlobal("optype", lua.LString(op.Type.String()))

	if err := ev.vm.CallByParam(lua.P{
		Fn:      ev.chunks[idx],
		NRet:    1,
		Protect: true,
	}); err != nil {
		return false, curated.Errorf("script: %v", err)
	}

	ret := ev.vm.Get(-1)
	ev.vm.Pop(1)

	return lua.LVAsBool(ret), nil
}
