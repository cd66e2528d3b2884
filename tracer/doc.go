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

// Package tracer records the instruction-by-instruction history of the
// emulation.
//
// The emulation thread calls Log() once for every retired instruction and
// LogNonExec() for bus accesses made while an instruction is in flight. A
// compiled condition decides whether each event is recorded. Recorded events
// always enter a fixed-size history ring, whether or not a log file is open;
// the ring is the backing store for the GetExecutionTrace() query and is the
// reason the tracer is useful even when nothing is being written to disk.
//
// File logging is a session. StartLogging() opens the file and
// StopLogging() flushes and closes it. Rows accumulate in memory and are
// written to disk in large chunks so that the emulation thread is not paying
// for a syscall on every instruction.
//
// A single mutex guards all mutable state. Every public function holds it
// for its whole body. The emulation thread and the debugger/UI thread can
// therefore call into the tracer freely from their own sides. The critical
// section never spans a wait on external input so a StopLogging() call from
// the UI thread cannot deadlock against a Log() call mid-flight.
//
// The condition policy for multi-cycle instructions deserves a note. A
// condition may refer to state that does not exist at retirement time, the
// address or value of a memory access made later in the instruction for
// example. When a condition fails for an Execute operation the instruction's
// state is retained; a later LogNonExec() event re-evaluates the condition
// against the retained state and the new operation context, and if it now
// passes the instruction is recorded with the state captured at retirement.
package tracer
