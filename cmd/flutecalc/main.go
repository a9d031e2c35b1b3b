// Command flutecalc computes the acoustic input impedance spectrum of a
// flute description and reports per-note tuning deviations.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cwbudde/algo-flute/loader"
	"github.com/cwbudde/algo-flute/report"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run implements the ten-positional-argument CLI: input-file,
// output-prefix, pitch-standard, emit-bore-flag, emit-tuning-flag,
// note-name, note-octave, freq-start, freq-end, nfreq (spec section 6).
func run(args []string) error {
	if len(args) != 10 {
		return fmt.Errorf("usage: flutecalc input-file output-prefix pitch-standard emit-bore emit-tuning note-name note-octave freq-start freq-end nfreq")
	}

	inputFile, outputPrefix := args[0], args[1]
	pitchStd, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("pitch-standard: %w", err)
	}
	emitBore, err := parseFlag(args[3])
	if err != nil {
		return fmt.Errorf("emit-bore-flag: %w", err)
	}
	emitTuning, err := parseFlag(args[4])
	if err != nil {
		return fmt.Errorf("emit-tuning-flag: %w", err)
	}
	noteName := args[5]
	noteOctave, err := strconv.Atoi(args[6])
	if err != nil {
		return fmt.Errorf("note-octave: %w", err)
	}
	freqStart, err := strconv.ParseFloat(args[7], 64)
	if err != nil {
		return fmt.Errorf("freq-start: %w", err)
	}
	freqEnd, err := strconv.ParseFloat(args[8], 64)
	if err != nil {
		return fmt.Errorf("freq-end: %w", err)
	}
	nfreq, err := strconv.Atoi(args[9])
	if err != nil {
		return fmt.Errorf("nfreq: %w", err)
	}

	src, err := os.ReadFile(inputFile)
	if err != nil {
		return err
	}
	desc, err := loader.Parse(string(src))
	if err != nil {
		return err
	}
	inst, err := loader.Build(desc)
	if err != nil {
		return err
	}
	inst.PitchStd = pitchStd

	if emitBore {
		if err := writeFile(outputPrefix+".fcb", func(f *os.File) error {
			return report.WriteBore(f, inst.Bore())
		}); err != nil {
			return err
		}
	}

	if noteName != "" {
		if err := inst.SetFingering(noteName, noteOctave); err != nil {
			return err
		}
		spec := inst.ResonanceScan(freqStart, freqEnd, nfreq)
		if err := writeFile(outputPrefix+".fci", func(f *os.File) error {
			return report.WriteSpectrum(f, spec)
		}); err != nil {
			return err
		}
	}

	if emitTuning {
		tunings, err := inst.TuningReport(nfreq)
		if err != nil {
			return err
		}
		if err := writeFile(outputPrefix+".fct", func(f *os.File) error {
			return report.WriteTuning(f, tunings)
		}); err != nil {
			return err
		}
	}

	return nil
}

func parseFlag(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("expected 0 or 1, got %q", s)
	}
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
