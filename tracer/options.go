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

// StatusFormat selects how the processor status register appears in a trace
// row.
type StatusFormat int

// List of status formats. StatusText shows all eight flags, lower-case when
// clear. StatusCompact shows set flags only. StatusHexadecimal shows the
// packed register value.
const (
	StatusHexadecimal StatusFormat = iota
	StatusText
	StatusCompact
)

// Options controls what appears in each trace row and which events are
// recorded at all. An Options value is captured wholesale by SetOptions();
// changing a field afterwards has no effect until the value is passed to
// SetOptions() again.
type Options struct {
	// events are recorded only when the condition holds. the empty string
	// is no condition at all: every event is recorded
	Condition string

	ShowByteCode bool

	// indent the mnemonic by the depth of the stack. a cheap visualisation
	// of how deeply nested the program is at that point
	IndentCode bool

	// substitute labels for addresses where the symbols table has an entry
	UseLabels bool

	ShowRegisters   bool
	ShowPPUCycles   bool
	ShowPPUScanline bool
	ShowPPUFrames   bool
	ShowCPUCycles   bool

	// allow Annotate() to stamp out-of-band events into the log file
	ShowExtraInfo bool

	StatusFormat StatusFormat
}
