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

// Package memory defines how the disassembler reads the address space of the
// emulated machine. The real bus belongs to the emulation engine; this
// package only names the surface the debugger is allowed to touch.
package memory

// Reader is the view of the address space available to the debugger. Reads
// through this interface must never have side-effects on the emulated
// hardware (no register latching, no open-bus decay).
type Reader interface {
	Read(addr uint16) uint8
}

// Block is a flat 64K implementation of the Reader interface. Useful for
// testing and for offline work where no live emulation is attached.
type Block struct {
	data [0x10000]uint8
}

// Read implements the Reader interface.
func (b *Block) Read(addr uint16) uint8 {
	return b.data[addr]
}

// Write sets the value at addr.
func (b *Block) Write(addr uint16, v uint8) {
	b.data[addr] = v
}

// WriteSlice copies data into the block starting at origin. Data that would
// extend past the top of the address space is dropped.
func (b *Block) WriteSlice(origin uint16, data []uint8) {
	copy(b.data[origin:], data)
}
