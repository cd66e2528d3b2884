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

// Package symbols maintains the table of labels used when the tracer is asked
// to substitute addresses for names.
package symbols

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/nestrace/curated"
)

// Table maps addresses to labels.
type Table struct {
	labels map[uint16]string
}

// NewTable is the preferred method of initialisation for the Table type.
func NewTable() *Table {
	return &Table{
		labels: make(map[uint16]string),
	}
}

// Add a label for an address. Any existing label for the address is replaced.
func (t *Table) Add(addr uint16, label string) {
	t.labels[addr] = label
}

// Lookup the label for an address. The second return value is false if no
// label has been added for the address.
func (t *Table) Lookup(addr uint16) (string, bool) {
	l, ok := t.labels[addr]
	return l, ok
}

// Len returns the number of labels in the table.
func (t *Table) Len() int {
	return len(t.labels)
}

// ReadSymbols populates the table from a symbols file. The expected format is
// one entry per line:
//
//	label = $c000
//
// The address may be decimal or hexadecimal (with a $ or 0x prefix). Blank
// lines and lines beginning with ; are ignored.
func (t *Table) ReadSymbols(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, ";") {
			continue
		}

		p := strings.SplitN(s, "=", 2)
		if len(p) != 2 {
			return curated.Errorf("symbols: line %d: not a label assignment", line)
		}

		label := strings.TrimSpace(p[0])
		addr := strings.TrimSpace(p[1])

		base := 10
		if strings.HasPrefix(addr, "$") {
			addr = addr[1:]
			base = 16
		} else if strings.HasPrefix(addr, "0x") {
			addr = addr[2:]
			base = 16
		}

		v, err := strconv.ParseUint(addr, base, 16)
		if err != nil {
			return curated.Errorf("symbols: line %d: %v", line, err)
		}

		t.Add(uint16(v), label)
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf("symbols: %v", err)
	}

	return nil
}
