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

// Package transcript replays a recorded stream of bus events through a
// tracer. It exists so that trace logs can be produced and reproduced
// offline, away from a live emulation. The transcript format is plain text,
// one record per line:
//
//	mem <origin> <byte> <byte> ...     load bytes into memory at origin
//	exec <pc> <a> <x> <y> <sp> <ps> <cycles> <dot> <scanline> <frame>
//	read <address> <value>             bus read during current instruction
//	write <address> <value>            bus write during current instruction
//	dummy <address> <value>            dummy read during current instruction
//	note <text>                        annotation for the trace file
//
// Addresses, register values and memory bytes are hexadecimal (no prefix);
// the cycles, dot, scanline and frame fields are decimal. Blank lines and
// lines beginning with # are ignored.
package transcript

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/nestrace/curated"
	"github.com/jetsetilly/nestrace/disassembly"
	"github.com/jetsetilly/nestrace/expression"
	"github.com/jetsetilly/nestrace/hardware/memory"
	"github.com/jetsetilly/nestrace/tracer"
)

type eventKind int

const (
	execEvent eventKind = iota
	busEvent
	noteEvent
)

type playbackEntry struct {
	kind  eventKind
	state expression.DebugState
	op    expression.Operation
	label string

	// the line in the transcript file the event appears
	line int
}

// Playback is a parsed transcript ready to be run through a tracer.
type Playback struct {
	// the memory image assembled from the transcript's mem records. exposed
	// so the tracer being driven can share it
	Mem *memory.Block

	sequence []playbackEntry

	// decoded instructions, one per address. the same entry pointer is
	// handed to the tracer every time the instruction at that address
	// retires, mirroring how a live emulation shares its decode cache
	entries map[uint16]*disassembly.Entry
}

// ParsePlayback reads a transcript. Parse errors identify the offending
// line.
func ParsePlayback(r io.Reader) (*Playback, error) {
	plb := &Playback{
		Mem:     &memory.Block{},
		entries: make(map[uint16]*disassembly.Entry),
	}

	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		fields := strings.Fields(s)

		switch fields[0] {
		case "mem":
			if len(fields) < 3 {
				return nil, curated.Errorf("transcript: line %d: mem record needs an origin and at least one byte", line)
			}
			origin, err := parseHex(fields[1], 16)
			if err != nil {
				return nil, curated.Errorf("transcript: line %d: %v", line, err)
			}
			data := make([]uint8, 0, len(fields)-2)
			for _, f := range fields[2:] {
				b, err := parseHex(f, 8)
				if err != nil {
					return nil, curated.Errorf("transcript: line %d: %v", line, err)
				}
				data = append(data, uint8(b))
			}
			plb.Mem.WriteSlice(uint16(origin), data)

		case "exec":
			if len(fields) != 11 {
				return nil, curated.Errorf("transcript: line %d: exec record needs 10 fields", line)
			}

			var e playbackEntry
			e.kind = execEvent
			e.line = line

			v, err := parseHex(fields[1], 16)
			if err != nil {
				return nil, curated.Errorf("transcript: line %d: %v", line, err)
			}
			e.state.CPU.PC = uint16(v)

			reg := make([]uint8, 5)
			for i := 0; i < 5; i++ {
				v, err := parseHex(fields[2+i], 8)
				if err != nil {
					return nil, curated.Errorf("transcript: line %d: %v", line, err)
				}
				reg[i] = uint8(v)
			}
			e.state.CPU.A = reg[0]
			e.state.CPU.X = reg[1]
			e.state.CPU.Y = reg[2]
			e.state.CPU.SP = reg[3]
			e.state.CPU.PS = reg[4]

			cycles, err := strconv.ParseUint(fields[7], 10, 64)
			if err != nil {
				return nil, curated.Errorf("transcript: line %d: %v", line, err)
			}
			e.state.CPU.Cycles = cycles

			dec := make([]int, 3)
			for i := 0; i < 3; i++ {
				v, err := strconv.Atoi(fields[8+i])
				if err != nil {
					return nil, curated.Errorf("transcript: line %d: %v", line, err)
				}
				dec[i] = v
			}
			e.state.PPU.Cycle = dec[0]
			e.state.PPU.Scanline = dec[1]
			e.state.PPU.Frame = dec[2]

			e.op = expression.Operation{
				Type:    expression.Execute,
				Address: e.state.CPU.PC,
				Value:   plb.Mem.Read(e.state.CPU.PC),
			}

			plb.sequence = append(plb.sequence, e)

		case "read", "write", "dummy":
			if len(fields) != 3 {
				return nil, curated.Errorf("transcript: line %d: %s record needs 2 fields", line, fields[0])
			}

			addr, err := parseHex(fields[1], 16)
			if err != nil {
				return nil, curated.Errorf("transcript: line %d: %v", line, err)
			}
			val, err := parseHex(fields[2], 8)
			if err != nil {
				return nil, curated.Errorf("transcript: line %d: %v", line, err)
			}

			typ := expression.Read
			switch fields[0] {
			case "write":
				typ = expression.Write
			case "dummy":
				typ = expression.DummyRead
			}

			plb.sequence = append(plb.sequence, playbackEntry{
				kind: busEvent,
				op: expression.Operation{
					Type:    typ,
					Address: uint16(addr),
					Value:   uint8(val),
				},
				line: line,
			})

		case "note":
			plb.sequence = append(plb.sequence, playbackEntry{
				kind:  noteEvent,
				label: strings.TrimSpace(s[len("note"):]),
				line:  line,
			})

		default:
			return nil, curated.Errorf("transcript: line %d: unrecognised record %q", line, fields[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("transcript: %v", err)
	}

	return plb, nil
}

// Len returns the number of events in the playback sequence.
func (plb *Playback) Len() int {
	return len(plb.sequence)
}

// Run feeds the playback sequence through the tracer.
func (plb *Playback) Run(trc *tracer.Tracer) {
	for i := range plb.sequence {
		e := &plb.sequence[i]
		switch e.kind {
		case execEvent:
			trc.Log(e.state, plb.entry(e.state.CPU.PC), e.op)
		case busEvent:
			trc.LogNonExec(e.op)
		case noteEvent:
			trc.Annotate(e.label)
		}
	}
}

// entry returns the shared disassembly entry for the instruction at pc,
// decoding it on first sight.
func (plb *Playback) entry(pc uint16) *disassembly.Entry {
	if e, ok := plb.entries[pc]; ok {
		return e
	}

	// FromMemory returns nil for opcodes with no definition. nil is cached
	// like any other result; the tracer treats it as nothing to record
	e := disassembly.FromMemory(pc, plb.Mem)
	plb.entries[pc] = e

	return e
}

func parseHex(s string, bits int) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, "$"), 16, bits)
}
