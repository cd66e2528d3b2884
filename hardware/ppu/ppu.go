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

// Package ppu represents the coordinates of the picture processing unit.
//
// Coordinates are a measurement of time from the point of view of the video
// chip. They define *when* something happened (this instruction retired, this
// register was written, etc.) relative to the start of the emulation.
package ppu

import "fmt"

// State represents the position of the PPU at any moment in time. It can be
// used when all three values need to be stored or passed around.
type State struct {
	// the dot within the current scanline. one pixel is output per dot
	Cycle int

	Scanline int

	// number of completed frames since power-on
	Frame int
}

func (s State) String() string {
	return fmt.Sprintf("Frame: %d  Scanline: %03d  Cycle: %03d", s.Frame, s.Scanline, s.Cycle)
}

// Equal compares two instances of State and returns true if both are equal.
func Equal(a, b State) bool {
	return a.Frame == b.Frame && a.Scanline == b.Scanline && a.Cycle == b.Cycle
}
