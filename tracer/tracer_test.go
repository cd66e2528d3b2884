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

package tracer_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/nestrace/disassembly"
	"github.com/jetsetilly/nestrace/expression"
	"github.com/jetsetilly/nestrace/hardware/cpu"
	"github.com/jetsetilly/nestrace/hardware/memory"
	"github.com/jetsetilly/nestrace/test"
	"github.com/jetsetilly/nestrace/tracer"
)

// stubEvaluator satisfies the expression.Evaluator interface with canned
// behaviour, letting the tests drive the condition machinery without a real
// expression language.
type stubEvaluator struct {
	compileErr error
	eval       func(state expression.DebugState, op expression.Operation) (bool, error)
	evalCount  int
}

func (ev *stubEvaluator) Compile(condition string) (expression.RPN, error) {
	if ev.compileErr != nil {
		return nil, ev.compileErr
	}
	return expression.RPN{0}, nil
}

func (ev *stubEvaluator) Evaluate(rpn expression.RPN, state expression.DebugState, op expression.Operation) (bool, error) {
	ev.evalCount++
	if ev.eval == nil {
		return true, nil
	}
	return ev.eval(state, op)
}

func decode(mem *memory.Block, origin uint16, encoding ...uint8) *disassembly.Entry {
	mem.WriteSlice(origin, encoding)
	return disassembly.FromMemory(origin, mem)
}

func execOp(e *disassembly.Entry) expression.Operation {
	return expression.Operation{
		Type:    expression.Execute,
		Address: e.Address(),
		Value:   e.Definition().OpCode,
	}
}

func TestUnconditional(t *testing.T) {
	mem := &memory.Block{}
	e := decode(mem, 0xc000, 0xa9, 0x01)

	trc := tracer.NewTracer(&stubEvaluator{}, mem, nil)
	trc.SetOptions(tracer.Options{})

	state := expression.DebugState{CPU: cpu.State{PC: 0xc000, SP: 0xff}}
	trc.Log(state, e, execOp(e))
	trc.Log(state, e, execOp(e))

	s := trc.GetExecutionTrace(10)
	lines := strings.Split(s, "\n")
	test.Equate(t, len(lines), 2)
	for _, l := range lines {
		if !strings.HasPrefix(l, "c000  LDA #$01") {
			t.Errorf("unexpected trace row: %q", l)
		}
	}

	// a nil entry means nothing to record
	trc.Log(state, nil, expression.Operation{})
	test.Equate(t, len(strings.Split(trc.GetExecutionTrace(10), "\n")), 2)
}

func TestGetExecutionTraceCount(t *testing.T) {
	mem := &memory.Block{}
	e := decode(mem, 0xc000, 0xea)

	trc := tracer.NewTracer(&stubEvaluator{}, mem, nil)
	trc.SetOptions(tracer.Options{})

	for i := 0; i < 20; i++ {
		state := expression.DebugState{CPU: cpu.State{PC: 0xc000, A: uint8(i), SP: 0xff}}
		trc.Log(state, e, execOp(e))
	}

	test.Equate(t, trc.GetExecutionTrace(0), "")
	test.Equate(t, len(strings.Split(trc.GetExecutionTrace(5), "\n")), 5)
	test.Equate(t, len(strings.Split(trc.GetExecutionTrace(20), "\n")), 20)
}

func TestFileSession(t *testing.T) {
	mem := &memory.Block{}
	e := decode(mem, 0xc000, 0xa9, 0x01)

	trc := tracer.NewTracer(&stubEvaluator{}, mem, nil)
	trc.SetOptions(tracer.Options{ShowRegisters: true, StatusFormat: tracer.StatusCompact})

	path := filepath.Join(t.TempDir(), "trace.log")
	if err := trc.StartLogging(path); err != nil {
		t.Fatal(err)
	}
	test.Equate(t, trc.IsLogging(), true)

	const n = 10
	for i := 0; i < n; i++ {
		state := expression.DebugState{CPU: cpu.State{PC: 0xc000, A: uint8(i), SP: 0xff}}
		trc.Log(state, e, execOp(e))
	}

	if err := trc.StopLogging(); err != nil {
		t.Fatal(err)
	}
	test.Equate(t, trc.IsLogging(), false)

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// the file and the history ring format the same rows the same way
	test.Equate(t, string(b), trc.GetExecutionTrace(n))

	// the final row is not newline terminated
	if strings.HasSuffix(string(b), "\n") {
		t.Error("trace file ends with a newline")
	}
	test.Equate(t, len(strings.Split(string(b), "\n")), n)
}

func TestEmptySession(t *testing.T) {
	mem := &memory.Block{}
	trc := tracer.NewTracer(&stubEvaluator{}, mem, nil)
	trc.SetOptions(tracer.Options{})

	path := filepath.Join(t.TempDir(), "trace.log")
	if err := trc.StartLogging(path); err != nil {
		t.Fatal(err)
	}
	if err := trc.StopLogging(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, len(b), 0)
}

func TestStartLoggingFailure(t *testing.T) {
	mem := &memory.Block{}
	e := decode(mem, 0xc000, 0xea)

	trc := tracer.NewTracer(&stubEvaluator{}, mem, nil)
	trc.SetOptions(tracer.Options{})

	err := trc.StartLogging(filepath.Join(t.TempDir(), "no", "such", "dir", "trace.log"))
	if err == nil {
		t.Fatal("expected error starting log in a non-existent directory")
	}
	test.Equate(t, trc.IsLogging(), false)

	// the history ring carries on regardless
	state := expression.DebugState{CPU: cpu.State{PC: 0xc000, SP: 0xff}}
	trc.Log(state, e, execOp(e))
	test.Equate(t, len(strings.Split(trc.GetExecutionTrace(10), "\n")), 1)
}

func TestRestartReplacesSession(t *testing.T) {
	mem := &memory.Block{}
	e := decode(mem, 0xc000, 0xea)

	trc := tracer.NewTracer(&stubEvaluator{}, mem, nil)
	trc.SetOptions(tracer.Options{})

	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	if err := trc.StartLogging(first); err != nil {
		t.Fatal(err)
	}
	state := expression.DebugState{CPU: cpu.State{PC: 0xc000, SP: 0xff}}
	trc.Log(state, e, execOp(e))

	// starting a new session flushes and closes the old one
	if err := trc.StartLogging(second); err != nil {
		t.Fatal(err)
	}
	trc.Log(state, e, execOp(e))
	if err := trc.StopLogging(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, len(strings.Split(string(b), "\n")), 1)

	b, err = os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, len(strings.Split(string(b), "\n")), 1)
}

func TestFlushThreshold(t *testing.T) {
	mem := &memory.Block{}
	e := decode(mem, 0xc000, 0xea)

	trc := tracer.NewTracer(&stubEvaluator{}, mem, nil)
	trc.SetOptions(tracer.Options{})

	path := filepath.Join(t.TempDir(), "trace.log")
	if err := trc.StartLogging(path); err != nil {
		t.Fatal(err)
	}

	// each row is well under a kilobyte so a handful of rows stays in the
	// accumulator
	state := expression.DebugState{CPU: cpu.State{PC: 0xc000, SP: 0xff}}
	for i := 0; i < 10; i++ {
		trc.Log(state, e, execOp(e))
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, int(fi.Size()), 0)

	// enough rows pushes the accumulator past the flush threshold and some
	// of the session reaches the file before it is stopped
	for i := 0; i < 2000; i++ {
		trc.Log(state, e, execOp(e))
	}
	fi, err = os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error("accumulator was never flushed during the session")
	}

	if err := trc.StopLogging(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, len(strings.Split(string(b), "\n")), 2010)
}

func TestCondition(t *testing.T) {
	mem := &memory.Block{}
	e := decode(mem, 0xc000, 0xa9, 0x01)

	ev := &stubEvaluator{
		eval: func(state expression.DebugState, op expression.Operation) (bool, error) {
			return state.CPU.A == 0x55, nil
		},
	}

	trc := tracer.NewTracer(ev, mem, nil)
	trc.SetOptions(tracer.Options{Condition: "a == 0x55", ShowRegisters: true, StatusFormat: tracer.StatusCompact})

	trc.Log(expression.DebugState{CPU: cpu.State{PC: 0xc000, A: 0x01, SP: 0xff}}, e, execOp(e))
	trc.Log(expression.DebugState{CPU: cpu.State{PC: 0xc000, A: 0x55, SP: 0xff}}, e, execOp(e))
	trc.Log(expression.DebugState{CPU: cpu.State{PC: 0xc000, A: 0x02, SP: 0xff}}, e, execOp(e))

	s := trc.GetExecutionTrace(10)
	test.Equate(t, len(strings.Split(s, "\n")), 1)
	if !strings.Contains(s, "A:55") {
		t.Errorf("recorded row has the wrong state: %q", s)
	}
}

func TestDeferredMatch(t *testing.T) {
	mem := &memory.Block{}
	e := decode(mem, 0xc000, 0x8d, 0x02, 0x20)

	// the condition holds only for a write to $2002. the execution event
	// fails; the write made later in the same instruction confirms the match
	ev := &stubEvaluator{
		eval: func(state expression.DebugState, op expression.Operation) (bool, error) {
			return op.Type == expression.Write && op.Address == 0x2002, nil
		},
	}

	trc := tracer.NewTracer(ev, mem, nil)
	trc.SetOptions(tracer.Options{Condition: "iswrite && address == 0x2002", ShowRegisters: true, StatusFormat: tracer.StatusCompact})

	execState := expression.DebugState{CPU: cpu.State{PC: 0xc000, A: 0x55, SP: 0xff}}
	trc.Log(execState, e, execOp(e))
	test.Equate(t, trc.GetExecutionTrace(10), "")

	// a non-matching bus event leaves the pending match in place
	trc.LogNonExec(expression.Operation{Type: expression.Read, Address: 0xc001})
	test.Equate(t, trc.GetExecutionTrace(10), "")

	// the matching write records the instruction with the state captured at
	// the execution event
	trc.LogNonExec(expression.Operation{Type: expression.Write, Address: 0x2002, Value: 0x55})
	s := trc.GetExecutionTrace(10)
	test.Equate(t, len(strings.Split(s, "\n")), 1)
	if !strings.Contains(s, "A:55") {
		t.Errorf("recorded row has the wrong state: %q", s)
	}

	// a successful record clears the pending match. further bus events do
	// not re-evaluate or re-record
	n := ev.evalCount
	trc.LogNonExec(expression.Operation{Type: expression.Write, Address: 0x2002, Value: 0x55})
	test.Equate(t, ev.evalCount, n)
	test.Equate(t, len(strings.Split(trc.GetExecutionTrace(10), "\n")), 1)
}

func TestDeferredMatchReplaced(t *testing.T) {
	mem := &memory.Block{}
	e1 := decode(mem, 0xc000, 0x8d, 0x02, 0x20)
	e2 := decode(mem, 0xc003, 0x8d, 0x02, 0x20)

	ev := &stubEvaluator{
		eval: func(state expression.DebugState, op expression.Operation) (bool, error) {
			return op.Type == expression.Write && op.Address == 0x2002, nil
		},
	}

	trc := tracer.NewTracer(ev, mem, nil)
	trc.SetOptions(tracer.Options{Condition: "iswrite && address == 0x2002"})

	// two failed execution events in a row. the second replaces the first as
	// the pending match
	trc.Log(expression.DebugState{CPU: cpu.State{PC: 0xc000, SP: 0xff}}, e1, execOp(e1))
	trc.Log(expression.DebugState{CPU: cpu.State{PC: 0xc003, SP: 0xff}}, e2, execOp(e2))

	trc.LogNonExec(expression.Operation{Type: expression.Write, Address: 0x2002})
	s := trc.GetExecutionTrace(10)
	test.Equate(t, len(strings.Split(s, "\n")), 1)
	if !strings.HasPrefix(s, "c003") {
		t.Errorf("wrong pending instruction recorded: %q", s)
	}
}

func TestFailOpenCompile(t *testing.T) {
	mem := &memory.Block{}
	e := decode(mem, 0xc000, 0xea)

	ev := &stubEvaluator{compileErr: errors.New("parse error")}
	trc := tracer.NewTracer(ev, mem, nil)
	trc.SetOptions(tracer.Options{Condition: "not a condition"})

	// the malformed condition is discarded and tracing proceeds
	// unconditionally
	state := expression.DebugState{CPU: cpu.State{PC: 0xc000, SP: 0xff}}
	trc.Log(state, e, execOp(e))
	test.Equate(t, len(strings.Split(trc.GetExecutionTrace(10), "\n")), 1)
	test.Equate(t, ev.evalCount, 0)
}

func TestEvaluateErrorIsFalse(t *testing.T) {
	mem := &memory.Block{}
	e := decode(mem, 0xc000, 0xea)

	ev := &stubEvaluator{
		eval: func(state expression.DebugState, op expression.Operation) (bool, error) {
			return true, errors.New("runtime error")
		},
	}
	trc := tracer.NewTracer(ev, mem, nil)
	trc.SetOptions(tracer.Options{Condition: "oddity"})

	state := expression.DebugState{CPU: cpu.State{PC: 0xc000, SP: 0xff}}
	trc.Log(state, e, execOp(e))
	test.Equate(t, trc.GetExecutionTrace(10), "")
}

func TestAnnotate(t *testing.T) {
	mem := &memory.Block{}
	e := decode(mem, 0xc000, 0xea)

	trc := tracer.NewTracer(&stubEvaluator{}, mem, nil)
	trc.SetOptions(tracer.Options{ShowExtraInfo: true})

	path := filepath.Join(t.TempDir(), "trace.log")
	if err := trc.StartLogging(path); err != nil {
		t.Fatal(err)
	}

	// annotations before the first row are dropped
	trc.Annotate("Reset")

	state := expression.DebugState{CPU: cpu.State{PC: 0xc000, SP: 0xff, Cycles: 1234}}
	trc.Log(state, e, execOp(e))
	trc.Annotate("Reset")

	if err := trc.StopLogging(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(b), " - [Reset - Cycle: 1234]") {
		t.Errorf("annotation missing or malformed: %q", string(b))
	}
	if strings.HasPrefix(string(b), " - [") {
		t.Errorf("annotation stamped before the first row: %q", string(b))
	}
}

func TestAnnotateRequiresExtraInfo(t *testing.T) {
	mem := &memory.Block{}
	e := decode(mem, 0xc000, 0xea)

	trc := tracer.NewTracer(&stubEvaluator{}, mem, nil)
	trc.SetOptions(tracer.Options{})

	path := filepath.Join(t.TempDir(), "trace.log")
	if err := trc.StartLogging(path); err != nil {
		t.Fatal(err)
	}

	state := expression.DebugState{CPU: cpu.State{PC: 0xc000, SP: 0xff}}
	trc.Log(state, e, execOp(e))
	trc.Annotate("Reset")

	if err := trc.StopLogging(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "Reset") {
		t.Errorf("annotation written despite extra info being disabled: %q", string(b))
	}
}
