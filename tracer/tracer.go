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

package tracer

import (
	"strings"
	"sync"

	"github.com/jetsetilly/nestrace/disassembly"
	"github.com/jetsetilly/nestrace/expression"
	"github.com/jetsetilly/nestrace/hardware/cpu"
	"github.com/jetsetilly/nestrace/hardware/memory"
	"github.com/jetsetilly/nestrace/hardware/ppu"
	"github.com/jetsetilly/nestrace/logger"
	"github.com/jetsetilly/nestrace/symbols"
)

// Tracer records retired instructions into a rolling history and,
// optionally, into a log file. See the package documentation for the
// threading model.
type Tracer struct {
	// guards everything below. no public function releases it before
	// returning
	crit sync.Mutex

	ev  expression.Evaluator
	mem memory.Reader
	sym *symbols.Table

	opts Options

	// compiled form of opts.Condition. zero-length means no condition
	condition expression.RPN

	history historyRing

	// state retained from an execution event that failed its condition. a
	// later non-execution event for the same instruction may confirm the
	// match; if it does the instruction is recorded with this state, not
	// the state at the confirming event. see matches()
	pendingState expression.DebugState
	pendingEntry *disassembly.Entry

	// cycle count at the most recent execution event. Annotate() stamps
	// this into the file as the best available notion of "now"
	lastCycles uint64

	sink fileSink
}

// NewTracer is the preferred method of initialisation for the Tracer type.
// The sym argument may be nil if no symbols are available.
func NewTracer(ev expression.Evaluator, mem memory.Reader, sym *symbols.Table) *Tracer {
	return &Tracer{
		ev:  ev,
		mem: mem,
		sym: sym,
	}
}

// SetOptions replaces the current options wholesale and recompiles the
// condition. A condition that fails to compile is noted in the central log
// and replaced with no condition at all; tracing proceeds unconditionally
// rather than not at all.
func (trc *Tracer) SetOptions(opts Options) {
	trc.crit.Lock()
	defer trc.crit.Unlock()

	trc.opts = opts
	trc.condition = nil

	if opts.Condition != "" {
		rpn, err := trc.ev.Compile(opts.Condition)
		if err != nil {
			logger.Logf("tracer", "condition %q: %v (tracing unconditionally)", opts.Condition, err)
		} else {
			trc.condition = rpn
		}
	}
}

// StartLogging opens a file session at path, replacing any session already
// open. On failure the tracer carries on without a file session - the
// history ring keeps updating - and the error is returned for callers that
// want to surface it. IsLogging() reflects the outcome either way.
func (trc *Tracer) StartLogging(path string) error {
	trc.crit.Lock()
	defer trc.crit.Unlock()

	err := trc.sink.start(path)
	if err != nil {
		logger.Logf("tracer", "%v (file logging not started)", err)
	}

	return err
}

// StopLogging flushes and closes the current file session. A no-op if no
// session is open.
func (trc *Tracer) StopLogging() error {
	trc.crit.Lock()
	defer trc.crit.Unlock()

	return trc.sink.stop()
}

// IsLogging returns true if a file session is open.
func (trc *Tracer) IsLogging() bool {
	trc.crit.Lock()
	defer trc.crit.Unlock()

	return trc.sink.active()
}

// Log is called by the emulation thread once for every retired instruction.
// A nil entry is "nothing to record", not an error.
func (trc *Tracer) Log(state expression.DebugState, e *disassembly.Entry, op expression.Operation) {
	if e == nil {
		return
	}

	trc.crit.Lock()
	defer trc.crit.Unlock()

	trc.lastCycles = state.CPU.Cycles

	if trc.matches(state, e, op) {
		trc.record(state, e)
	}
}

// LogNonExec is called by the emulation thread for bus accesses made while
// an instruction is in flight. It has no effect unless an earlier execution
// event left a pending match.
func (trc *Tracer) LogNonExec(op expression.Operation) {
	trc.crit.Lock()
	defer trc.crit.Unlock()

	if trc.pendingEntry == nil {
		return
	}

	if trc.matches(trc.pendingState, trc.pendingEntry, op) {
		trc.record(trc.pendingState, trc.pendingEntry)
	}
}

// GetExecutionTrace formats the last count entries of the history ring,
// oldest first. The result is independent of any file session. The returned
// string is a copy; the caller can hold it for as long as it likes.
func (trc *Tracer) GetExecutionTrace(count int) string {
	trc.crit.Lock()
	defer trc.crit.Unlock()

	s := strings.Builder{}
	firstLine := true
	trc.history.recent(count, func(cs cpu.State, ps ppu.State, e *disassembly.Entry) {
		writeRow(&s, trc.opts, trc.mem, trc.sym, cs, ps, e, firstLine)
		firstLine = false
	})

	return s.String()
}

// Annotate stamps a bracketed note into the open log file, directly after
// the most recent row. Used for out-of-band events (reset, save-state load)
// that deserve a place in the instruction stream. It has no effect unless a
// session is open, ShowExtraInfo is set and at least one row has been
// written.
func (trc *Tracer) Annotate(label string) {
	trc.crit.Lock()
	defer trc.crit.Unlock()

	if !trc.sink.active() || !trc.opts.ShowExtraInfo || trc.sink.firstLine {
		return
	}

	if err := trc.sink.annotate(label, trc.lastCycles); err != nil {
		logger.Logf("tracer", "%v (file logging stopped)", err)
		_ = trc.sink.stop()
	}
}

// matches returns true if the current condition holds for the given state
// and operation. When the condition fails for an execution event the state
// and entry are retained so that a later non-execution event can confirm the
// match. Called with the lock held.
func (trc *Tracer) matches(state expression.DebugState, e *disassembly.Entry, op expression.Operation) bool {
	if len(trc.condition) == 0 {
		return true
	}

	ok, err := trc.ev.Evaluate(trc.condition, state, op)
	if err != nil {
		logger.Logf("tracer", "condition: %v", err)
	}

	if !ok || err != nil {
		if op.Type == expression.Execute {
			// keep state for the instruction's subsequent cycles
			trc.pendingState = state
			trc.pendingEntry = e
		}
		return false
	}

	return true
}

// record pushes the event into the history ring and, if a file session is
// open, formats a row into the sink. Called with the lock held.
func (trc *Tracer) record(state expression.DebugState, e *disassembly.Entry) {
	trc.history.push(state.CPU, state.PPU, e)
	trc.pendingEntry = nil

	if !trc.sink.active() {
		return
	}

	writeRow(&trc.sink.buffer, trc.opts, trc.mem, trc.sym, state.CPU, state.PPU, e, trc.sink.firstLine)
	trc.sink.firstLine = false

	if err := trc.sink.maybeFlush(); err != nil {
		// an unwritable file downgrades to "no file session" rather than
		// troubling the emulation thread
		logger.Logf("tracer", "%v (file logging stopped)", err)
		_ = trc.sink.stop()
	}
}
