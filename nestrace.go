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

package main

import (
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/nestrace/logger"
	"github.com/jetsetilly/nestrace/modalflag"
	"github.com/jetsetilly/nestrace/script"
	"github.com/jetsetilly/nestrace/statsview"
	"github.com/jetsetilly/nestrace/symbols"
	"github.com/jetsetilly/nestrace/tracer"
	"github.com/jetsetilly/nestrace/transcript"
	"github.com/jetsetilly/nestrace/version"
	"github.com/jetsetilly/nestrace/viewer"
)

const transcriptHelp = `The transcript argument is a file of bus events, one per line:

  mem <origin> <byte> <byte> ...     load bytes into memory at origin
  exec <pc> <a> <x> <y> <sp> <ps> <cycles> <dot> <scanline> <frame>
  read <address> <value>             bus read during current instruction
  write <address> <value>            bus write during current instruction
  dummy <address> <value>            dummy read during current instruction
  note <text>                        annotation for the trace file

Addresses, register values and memory bytes are hexadecimal; cycles, dot,
scanline and frame are decimal. Use - to read the transcript from stdin.`

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "VIEW", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "VIEW":
		err = view(md)
	case "VERSION":
		n, rev := version.Version()
		fmt.Printf("%s %s\n", version.ApplicationName, n)
		if rev != "" {
			fmt.Printf("  %s\n", rev)
		}
	}

	if err != nil {
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	condition := md.AddString("condition", "", "record only events matching this expression")
	symbolsFile := md.AddString("symbols", "", "symbols file for label substitution")
	traceFile := md.AddString("trace", "", "write trace rows to file (implies a file session)")
	lines := md.AddInt("lines", 25, "number of rows to print when no trace file is given")
	byteCode := md.AddBool("bytecode", false, "show instruction byte code")
	indent := md.AddBool("indent", false, "indent mnemonic by stack depth")
	useLabels := md.AddBool("labels", false, "substitute labels for addresses")
	registers := md.AddBool("registers", true, "show CPU registers")
	ppuCoords := md.AddBool("ppu", true, "show PPU cycle and scanline")
	frames := md.AddBool("frames", false, "show PPU frame count")
	cpuCycles := md.AddBool("cpucycles", false, "show cumulative CPU cycle count")
	extra := md.AddBool("extra", false, "stamp note records into the trace file")
	status := md.AddString("status", "compact", "status register format: hex, text or compact")
	memvizFile := md.AddString("memviz", "", "write a memviz dot graph of the tracer to file")
	stats := md.AddBool("stats", false, "launch the statsview server (if built in)")
	echoLog := md.AddBool("log", false, "echo log entries to stderr as they happen")

	md.AdditionalHelp(transcriptHelp)

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		return err
	}

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}

	if *stats {
		statsview.Launch(os.Stderr)
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("RUN mode requires a single transcript file")
	}

	statusFormat, err := parseStatusFormat(*status)
	if err != nil {
		return err
	}

	input := os.Stdin
	if md.GetArg(0) != "-" {
		f, err := os.Open(md.GetArg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	plb, err := transcript.ParsePlayback(input)
	if err != nil {
		return err
	}

	sym := symbols.NewTable()
	if *symbolsFile != "" {
		f, err := os.Open(*symbolsFile)
		if err != nil {
			return err
		}
		err = sym.ReadSymbols(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	trc := tracer.NewTracer(script.NewEvaluator(), plb.Mem, sym)
	trc.SetOptions(tracer.Options{
		Condition:       *condition,
		ShowByteCode:    *byteCode,
		IndentCode:      *indent,
		UseLabels:       *useLabels,
		ShowRegisters:   *registers,
		ShowPPUCycles:   *ppuCoords,
		ShowPPUScanline: *ppuCoords,
		ShowPPUFrames:   *frames,
		ShowCPUCycles:   *cpuCycles,
		ShowExtraInfo:   *extra,
		StatusFormat:    statusFormat,
	})

	if *traceFile != "" {
		if err := trc.StartLogging(*traceFile); err != nil {
			return err
		}
	}

	plb.Run(trc)

	if err := trc.StopLogging(); err != nil {
		return err
	}

	if *memvizFile != "" {
		f, err := os.Create(*memvizFile)
		if err != nil {
			return err
		}
		memviz.Map(f, trc)
		if err := f.Close(); err != nil {
			return err
		}
	}

	if *traceFile == "" {
		fmt.Println(trc.GetExecutionTrace(*lines))
	}

	return nil
}

func view(md *modalflag.Modes) error {
	md.NewMode()

	lines := md.AddInt("lines", 40, "number of rows to show")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("VIEW mode requires a single trace file")
	}

	v, err := viewer.NewViewer(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	return v.Run(md.GetArg(0), *lines)
}

func parseStatusFormat(s string) (tracer.StatusFormat, error) {
	switch s {
	case "hex":
		return tracer.StatusHexadecimal, nil
	case "text":
		return tracer.StatusText, nil
	case "compact":
		return tracer.StatusCompact, nil
	}
	return 0, fmt.Errorf("unrecognised status format %q (hex, text or compact)", s)
}
