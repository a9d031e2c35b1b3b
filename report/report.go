// Package report writes the tab-separated diagnostic files described in
// the external interface: bore profile, per-frequency spectrum, and
// per-note tuning (spec section 6).
package report

import (
	"fmt"
	"io"
	"math/cmplx"

	"github.com/cwbudde/algo-flute/acoustic"
)

// WriteBore writes running length vs. diameter for each bore section
// boundary, to <prefix>.fcb.
func WriteBore(w io.Writer, bore []*acoustic.BoreSection) error {
	running := 0.0
	if _, err := fmt.Fprintf(w, "%g\t%g\n", running, 2*boreHeadRadius(bore)); err != nil {
		return err
	}
	for _, b := range bore {
		running += b.L
		if _, err := fmt.Fprintf(w, "%g\t%g\n", running, 2*b.RR); err != nil {
			return err
		}
	}
	return nil
}

func boreHeadRadius(bore []*acoustic.BoreSection) float64 {
	if len(bore) == 0 {
		return 0
	}
	return bore[0].RL
}

// WriteSpectrum writes f, |Z|, Re Z, Im Z for every sample in spec, to
// <prefix>.fci.
func WriteSpectrum(w io.Writer, spec acoustic.ImpedanceSpectrum) error {
	for i, f := range spec.Freq {
		z := spec.Z[i]
		if _, err := fmt.Fprintf(w, "%g\t%g\t%g\t%g\n", f, cmplx.Abs(z), real(z), imag(z)); err != nil {
			return err
		}
	}
	return nil
}

// WriteTuning writes note-name, octave, nominal f, and cents deviation for
// every entry in tunings, to <prefix>.fct. An out-of-range entry's cents
// column reads "out of range".
func WriteTuning(w io.Writer, tunings []acoustic.NoteTuning) error {
	for _, t := range tunings {
		if t.OutOfRange {
			if _, err := fmt.Fprintf(w, "%s\t%d\t%g\tout of range\n", t.Note, t.Octave, t.Nominal); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%g\t%g\n", t.Note, t.Octave, t.Nominal, t.Cents); err != nil {
			return err
		}
	}
	return nil
}
