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

// Package expression defines the interface between the tracer and the
// condition expression machinery. The tracer never parses or evaluates
// condition text itself; it compiles the text once through an Evaluator and
// holds on to the resulting token list, re-running it against live state on
// every candidate event.
//
// The token list is opaque. The tracer only ever asks two things of it: is it
// empty (an empty list means there is no condition and every event matches)
// and does it evaluate to true for a given state and operation.
package expression

import (
	"github.com/jetsetilly/nestrace/hardware/cpu"
	"github.com/jetsetilly/nestrace/hardware/ppu"
)

// Token is a single element of a compiled condition. Its meaning is private
// to the Evaluator that produced it.
type Token int

// RPN is a compiled condition in reverse-Polish form. The zero-length list
// means "no condition".
type RPN []Token

// OperationType distinguishes the bus events the emulation reports to the
// tracer.
type OperationType int

// List of operation types. Execute is the retirement of an instruction; the
// others are bus accesses made while an instruction is in flight.
const (
	Execute OperationType = iota
	Read
	Write
	DummyRead
)

func (o OperationType) String() string {
	switch o {
	case Execute:
		return "execute"
	case Read:
		return "read"
	case Write:
		return "write"
	case DummyRead:
		return "dummy read"
	}
	return "unknown"
}

// Operation describes one bus event: what kind of access it was and the
// address/value involved. For Execute operations the address is the program
// counter and the value is the opcode.
type Operation struct {
	Type    OperationType
	Address uint16
	Value   uint8
}

// DebugState gathers the hardware snapshots a condition can be evaluated
// against.
type DebugState struct {
	CPU cpu.State
	PPU ppu.State
}

// Evaluator compiles condition text and evaluates the result against live
// state. Implementations must allow Evaluate to be called from a different
// goroutine to Compile, although never concurrently with it.
type Evaluator interface {
	// Compile the condition text. An error means the text is malformed; how
	// the caller responds is its own policy (the tracer fails open).
	Compile(condition string) (RPN, error)

	// Evaluate the compiled condition. The rpn argument is always a list
	// previously returned by Compile. A non-nil error is treated as a false
	// result by the tracer.
	Evaluate(rpn RPN, state DebugState, op Operation) (bool, error)
}
