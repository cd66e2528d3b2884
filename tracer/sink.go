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
	"fmt"
	"os"
	"strings"

	"github.com/jetsetilly/nestrace/curated"
)

// rows accumulate in memory and are flushed to disk in chunks of this many
// bytes. flushing in chunks bounds memory use while keeping syscalls off the
// fast path.
const flushThreshold = 32768

// fileSink owns the open log file and the not-yet-flushed text destined for
// it.
type fileSink struct {
	stream *os.File

	// rows not yet written to the stream
	buffer strings.Builder

	// true until the first row of the session has been formatted. the first
	// row is not preceded by a newline
	firstLine bool
}

// active is true if the sink has an open stream.
func (sk *fileSink) active() bool {
	return sk.stream != nil
}

// start a new file session, truncating or creating the file at path. any
// session already open is stopped first.
func (sk *fileSink) start(path string) error {
	if sk.stream != nil {
		_ = sk.stop()
	}

	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf("tracer: %v", err)
	}

	sk.stream = f
	sk.buffer.Reset()
	sk.firstLine = true

	return nil
}

// flush the accumulated rows to the stream. a no-op if there is nothing
// buffered.
func (sk *fileSink) flush() error {
	if sk.buffer.Len() == 0 {
		return nil
	}

	_, err := sk.stream.WriteString(sk.buffer.String())
	sk.buffer.Reset()
	if err != nil {
		return curated.Errorf("tracer: %v", err)
	}

	return nil
}

// maybeFlush flushes only once the accumulator has grown past the flush
// threshold.
func (sk *fileSink) maybeFlush() error {
	if sk.buffer.Len() > flushThreshold {
		return sk.flush()
	}
	return nil
}

// annotate stamps an out-of-band event into the stream, directly after the
// most recent row's text. the accumulator is flushed first so the annotation
// lands in the right place.
func (sk *fileSink) annotate(label string, cycles uint64) error {
	if err := sk.flush(); err != nil {
		return err
	}

	_, err := sk.stream.WriteString(fmt.Sprintf(" - [%s - Cycle: %d]", label, cycles))
	if err != nil {
		return curated.Errorf("tracer: %v", err)
	}

	return nil
}

// stop the session: flush whatever remains and close the file. safe to call
// when no session is open.
func (sk *fileSink) stop() error {
	if sk.stream == nil {
		return nil
	}

	ferr := sk.flush()
	cerr := sk.stream.Close()
	sk.stream = nil

	if ferr != nil {
		return ferr
	}
	if cerr != nil {
		return curated.Errorf("tracer: %v", cerr)
	}

	return nil
}
