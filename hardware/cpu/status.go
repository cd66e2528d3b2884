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

// Status is the unpacked form of the processor status register.
//
// Note that bit 5 of the packed register has no storage here. It is unused by
// the 6502 and always reads as set.
type Status struct {
	Sign             bool
	Overflow         bool
	Break            bool
	DecimalMode      bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// StatusFromValue unpacks a status register value as pushed to the stack by
// the 6502.
func StatusFromValue(v uint8) Status {
	return Status{
		Sign:             v&0x80 == 0x80,
		Overflow:         v&0x40 == 0x40,
		Break:            v&0x10 == 0x10,
		DecimalMode:      v&0x08 == 0x08,
		InterruptDisable: v&0x04 == 0x04,
		Zero:             v&0x02 == 0x02,
		Carry:            v&0x01 == 0x01,
	}
}

// Value packs the status flags into the stack representation. Bit 5 is always
// set, as it is on the real CPU.
func (st Status) Value() uint8 {
	v := uint8(0x20)

	if st.Sign {
		v |= 0x80
	}
	if st.Overflow {
		v |= 0x40
	}
	if st.Break {
		v |= 0x10
	}
	if st.DecimalMode {
		v |= 0x08
	}
	if st.InterruptDisable {
		v |= 0x04
	}
	if st.Zero {
		v |= 0x02
	}
	if st.Carry {
		v |= 0x01
	}

	return v
}

// ToBits returns the status register as a labelled bit pattern. Upper-case
// letters indicate a set flag.
func (st Status) ToBits() string {
	var v string

	if st.Sign {
		v += "N"
	} else {
		v += "n"
	}
	if st.Overflow {
		v += "V"
	} else {
		v += "v"
	}
	v += "-"
	if st.Break {
		v += "B"
	} else {
		v += "b"
	}
	if st.DecimalMode {
		v += "D"
	} else {
		v += "d"
	}
	if st.InterruptDisable {
		v += "I"
	} else {
		v += "i"
	}
	if st.Zero {
		v += "Z"
	} else {
		v += "z"
	}
	if st.Carry {
		v += "C"
	} else {
		v += "c"
	}

	return v
}

func (st Status) String() string {
	return st.ToBits()
}
