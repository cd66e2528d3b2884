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

package cpu

import "fmt"

// State is a snapshot of the CPU registers at the moment an instruction
// retires.
type State struct {
	PC uint16
	A  uint8
	X  uint8
	Y  uint8
	SP uint8

	// the processor status register, packed in the order the 6502 pushes it
	// to the stack. use the Status type to work with individual flags
	PS uint8

	// number of cycles the CPU has run since power-on
	Cycles uint64
}

func (s State) String() string {
	return fmt.Sprintf("PC=%04x A=%02x X=%02x Y=%02x SP=%02x P=%s",
		s.PC, s.A, s.X, s.Y, s.SP, StatusFromValue(s.PS).ToBits())
}
