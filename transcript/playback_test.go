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

package transcript_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/nestrace/curated"
	"github.com/jetsetilly/nestrace/script"
	"github.com/jetsetilly/nestrace/test"
	"github.com/jetsetilly/nestrace/tracer"
	"github.com/jetsetilly/nestrace/transcript"
)

// a short program. LDA #$01 / STA $2000 / NOP, as it would be recorded by an
// emulation.
const shortTranscript = `# test transcript
mem c000 a9 01 8d 00 20 ea

exec c000 00 00 00 fd 24 7 21 0 0
exec c002 01 00 00 fd 24 9 27 0 0
write 2000 01
exec c005 01 00 00 fd 24 13 39 0 0
`

func TestPlayback(t *testing.T) {
	plb, err := transcript.ParsePlayback(strings.NewReader(shortTranscript))
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, plb.Len(), 4)

	// the mem record populated the shared memory image
	test.Equate(t, plb.Mem.Read(0xc000), 0xa9)
	test.Equate(t, plb.Mem.Read(0xc005), 0xea)

	trc := tracer.NewTracer(script.NewEvaluator(), plb.Mem, nil)
	trc.SetOptions(tracer.Options{ShowRegisters: true, StatusFormat: tracer.StatusCompact})
	plb.Run(trc)

	s := trc.GetExecutionTrace(10)
	lines := strings.Split(s, "\n")
	test.Equate(t, len(lines), 3)

	if !strings.HasPrefix(lines[0], "c000  LDA #$01") {
		t.Errorf("unexpected first row: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "c002  STA $2000") {
		t.Errorf("unexpected second row: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "c005  NOP") {
		t.Errorf("unexpected third row: %q", lines[2])
	}
}

func TestPlaybackCondition(t *testing.T) {
	plb, err := transcript.ParsePlayback(strings.NewReader(shortTranscript))
	if err != nil {
		t.Fatal(err)
	}

	// the condition only holds at the write. the STA is recorded
	// retroactively with the state captured at its execution event
	trc := tracer.NewTracer(script.NewEvaluator(), plb.Mem, nil)
	trc.SetOptions(tracer.Options{
		Condition:     `optype == "write" and address == 0x2000`,
		ShowRegisters: true,
		StatusFormat:  tracer.StatusCompact,
	})
	plb.Run(trc)

	s := trc.GetExecutionTrace(10)
	test.Equate(t, len(strings.Split(s, "\n")), 1)
	if !strings.HasPrefix(s, "c002  STA $2000") {
		t.Errorf("unexpected row: %q", s)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := transcript.ParsePlayback(strings.NewReader("bogus c000 00"))
	if !curated.IsAny(err) {
		t.Fatal("expected a curated error for an unrecognised record")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("error does not identify the line: %v", err)
	}

	_, err = transcript.ParsePlayback(strings.NewReader("mem c000"))
	if err == nil {
		t.Error("expected an error for a mem record with no bytes")
	}

	_, err = transcript.ParsePlayback(strings.NewReader("exec c000 00 00 00 fd 24"))
	if err == nil {
		t.Error("expected an error for a truncated exec record")
	}

	_, err = transcript.ParsePlayback(strings.NewReader("mem c000 a9\nread zz 00\n"))
	if err == nil {
		t.Fatal("expected an error for a malformed address")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error does not identify the line: %v", err)
	}
}

func TestAnnotationPlayback(t *testing.T) {
	f := `mem c000 ea
exec c000 00 00 00 ff 24 2 6 0 0
note Reset
`

	plb, err := transcript.ParsePlayback(strings.NewReader(f))
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, plb.Len(), 2)

	// without a file session the annotation goes nowhere but the playback
	// must still run cleanly
	trc := tracer.NewTracer(script.NewEvaluator(), plb.Mem, nil)
	trc.SetOptions(tracer.Options{ShowExtraInfo: true})
	plb.Run(trc)
	test.Equate(t, len(strings.Split(trc.GetExecutionTrace(10), "\n")), 1)
}
