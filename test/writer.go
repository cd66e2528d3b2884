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

package test

// Writer implements the io.Writer interface and should be used to capture
// output during testing.
type Writer struct {
	buffer []byte
}

// Write implements the io.Writer interface.
func (w *Writer) Write(p []byte) (n int, err error) {
	w.buffer = append(w.buffer, p...)
	return len(p), nil
}

// Compare buffered output with the supplied string.
func (w *Writer) Compare(s string) bool {
	return s == string(w.buffer)
}

// Clear buffered output.
func (w *Writer) Clear() {
	w.buffer = w.buffer[:0]
}

// String returns the buffered output.
func (w *Writer) String() string {
	return string(w.buffer)
}
