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

// Package viewer is a minimal interactive tail for trace files. It puts the
// terminal into cbreak mode so single keypresses drive the display: any key
// redraws the last rows of the file, q quits.
//
// It is intended for watching a trace session grow while the emulation that
// is writing it runs in another process.
package viewer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/jetsetilly/nestrace/curated"
)

// only the tail of the file is ever read. rows are bounded in length so this
// comfortably covers more rows than any terminal can show.
const tailBytes = 65536

// Viewer is the main container for the interactive tail. The terminal
// attributes for canonical and cbreak modes are prepared once at
// initialisation.
type Viewer struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// NewViewer is the preferred method of initialisation for the Viewer type.
// The input file must be a terminal.
func NewViewer(input, output *os.File) (*Viewer, error) {
	v := &Viewer{
		input:  input,
		output: output,
	}

	if err := termios.Tcgetattr(input.Fd(), &v.canAttr); err != nil {
		return nil, curated.Errorf("viewer: %v", err)
	}

	v.cbreakAttr = v.canAttr
	termios.Cfmakecbreak(&v.cbreakAttr)

	return v, nil
}

// Run the interactive tail until the user quits. The terminal is restored to
// canonical mode on return.
func (v *Viewer) Run(path string, lines int) error {
	if err := termios.Tcsetattr(v.input.Fd(), termios.TCSANOW, &v.cbreakAttr); err != nil {
		return curated.Errorf("viewer: %v", err)
	}
	defer termios.Tcsetattr(v.input.Fd(), termios.TCSANOW, &v.canAttr)

	b := make([]byte, 1)
	for {
		s, err := tail(path, lines)
		if err != nil {
			return err
		}

		// clear screen, home cursor, draw
		fmt.Fprintf(v.output, "\033[2J\033[H%s\n\n[any key] refresh  [q] quit\n", s)

		if _, err := v.input.Read(b); err != nil {
			return curated.Errorf("viewer: %v", err)
		}
		if b[0] == 'q' || b[0] == 'Q' {
			return nil
		}
	}
}

// tail returns the last n lines of the file at path.
func tail(path string, n int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", curated.Errorf("viewer: %v", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", curated.Errorf("viewer: %v", err)
	}

	var offset int64
	if fi.Size() > tailBytes {
		offset = fi.Size() - tailBytes
	}

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return "", curated.Errorf("viewer: %v", err)
	}

	buf, err := io.ReadAll(f)
	if err != nil {
		return "", curated.Errorf("viewer: %v", err)
	}

	rows := strings.Split(string(buf), "\n")

	// the first row may be a partial row if we seeked into the middle of the
	// file
	if offset > 0 && len(rows) > 0 {
		rows = rows[1:]
	}

	if len(rows) > n {
		rows = rows[len(rows)-n:]
	}

	return strings.Join(rows, "\n"), nil
}
