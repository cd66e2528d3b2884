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
	"github.com/jetsetilly/nestrace/disassembly"
	"github.com/jetsetilly/nestrace/hardware/cpu"
	"github.com/jetsetilly/nestrace/hardware/ppu"
)

// number of entries retained in the history ring.
const historySize = 1000

// historyRing is the rolling record of recently recorded instructions. it is
// written to on every recorded event, with or without a file session.
//
// the three arrays are parallel. for any slot, either the entry pointer is
// nil (the slot has never been written; only possible before the ring wraps
// for the first time) or all three arrays describe the same retired
// instruction.
type historyRing struct {
	cpu     [historySize]cpu.State
	ppu     [historySize]ppu.State
	entries [historySize]*disassembly.Entry

	// the slot the next push will write to
	cursor int
}

// push overwrites the oldest slot. the entry argument must not be nil.
func (r *historyRing) push(cs cpu.State, ps ppu.State, e *disassembly.Entry) {
	r.cpu[r.cursor] = cs
	r.ppu[r.cursor] = ps
	r.entries[r.cursor] = e
	r.cursor = (r.cursor + 1) % historySize
}

// recent visits up to count of the most recently pushed slots in
// chronological order, oldest first. slots that have never been written are
// skipped. count may be larger than the ring; the visit is capped at the
// ring size.
func (r *historyRing) recent(count int, visit func(cs cpu.State, ps ppu.State, e *disassembly.Entry)) {
	if count > historySize {
		count = historySize
	}

	start := r.cursor + historySize - count
	for i := 0; i < count; i++ {
		idx := (start + i) % historySize
		if r.entries[idx] != nil {
			visit(r.cpu[idx], r.ppu[idx], r.entries[idx])
		}
	}
}
