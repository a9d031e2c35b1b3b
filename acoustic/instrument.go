package acoustic

import (
	"fmt"

	"github.com/cwbudde/algo-flute/temperament"
)

// Fingering assigns an open/closed state to every hole, head to foot, that
// together produce a named note.
type Fingering struct {
	Note   string
	Octave int
	Holes  []bool // true = closed, one per hole in head-to-foot order.
}

// Instrument is an ordered chain of acoustic elements terminated by a load,
// plus the fingering table and temperament needed to turn a note name into
// a playable configuration. It owns every element and the terminal for its
// lifetime; elements are never shared between instruments (spec section 3).
type Instrument struct {
	chain       []ChainElement
	embouchure  *Embouchure
	bore        []*BoreSection
	holes       []HoleElement
	terminal    Terminal
	fingerings  []Fingering
	Temperament temperament.Temperament
	PitchStd    float64
}

// NewInstrument returns an empty instrument with equal temperament and
// A440 as defaults. Build it up with SetEmbouchure, AddBore, AddHole,
// SetTerminal, and AddFingering, then call Validate.
func NewInstrument() *Instrument {
	return &Instrument{
		Temperament: temperament.NewEqualTemperament(),
		PitchStd:    440.0,
	}
}

// SetEmbouchure installs the embouchure at the head of the chain. It may be
// called only once.
func (in *Instrument) SetEmbouchure(e *Embouchure) error {
	if in.embouchure != nil {
		return ErrDuplicateEmbouchure
	}
	in.embouchure = e
	in.chain = append([]ChainElement{e}, in.chain...)
	return nil
}

// AddBore appends a bore section to the foot end of the chain.
func (in *Instrument) AddBore(b *BoreSection) {
	in.chain = append(in.chain, b)
	in.bore = append(in.bore, b)
}

// AddHole appends a tone hole to the foot end of the chain.
func (in *Instrument) AddHole(h HoleElement) {
	in.chain = append(in.chain, h)
	in.holes = append(in.holes, h)
}

// SetTerminal installs the load termination. It may be called only once.
func (in *Instrument) SetTerminal(t Terminal) error {
	if in.terminal != nil {
		return ErrDuplicateTerminal
	}
	in.terminal = t
	return nil
}

// AddFingering registers a named note's hole configuration.
func (in *Instrument) AddFingering(f Fingering) {
	in.fingerings = append(in.fingerings, f)
}

// Validate checks every element, then the instrument-level invariants: an
// embouchure and terminal are present, bore sections are radially
// contiguous, no fingering exceeds the hole count, and the foot end is a
// bore section rather than a hole.
func (in *Instrument) Validate() error {
	if in.embouchure == nil {
		return ErrMissingEmbouchure
	}
	if in.terminal == nil {
		return ErrMissingTerminal
	}
	if err := in.embouchure.Validate(); err != nil {
		return err
	}
	for i, b := range in.bore {
		if err := b.Validate(); err != nil {
			return err
		}
		if i > 0 {
			prev := in.bore[i-1]
			if prev.RR != b.RL {
				return fmt.Errorf("bore section %d foot radius %g does not match section %d head radius %g: %w",
					i-1, prev.RR, i, b.RL, ErrDiscontinuousBore)
			}
		}
	}
	for _, h := range in.holes {
		if err := h.Validate(); err != nil {
			return err
		}
	}
	if len(in.chain) == 0 || !in.footIsBore() {
		return ErrFootNotBore
	}
	for _, fing := range in.fingerings {
		if len(fing.Holes) > len(in.holes) {
			return fmt.Errorf("fingering %s[%d] specifies %d holes, instrument has %d: %w",
				fing.Note, fing.Octave, len(fing.Holes), len(in.holes), ErrFingeringHoleCount)
		}
	}
	return nil
}

func (in *Instrument) footIsBore() bool {
	last := in.chain[len(in.chain)-1]
	_, isBore := last.(*BoreSection)
	return isBore
}

// SetFingering applies the named note's hole configuration, head to foot,
// re-validating each affected hole.
func (in *Instrument) SetFingering(note string, octave int) error {
	for _, fing := range in.fingerings {
		if fing.Note != note || fing.Octave != octave {
			continue
		}
		for i, closed := range fing.Holes {
			if i >= len(in.holes) {
				break
			}
			in.holes[i].SetClosed(closed)
			if err := in.holes[i].Validate(); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("note %s[%d]: %w", note, octave, ErrUnknownFingering)
}

// Fingerings returns the registered fingering table.
func (in *Instrument) Fingerings() []Fingering {
	return in.fingerings
}

// HoleCount returns the number of tone holes in the chain.
func (in *Instrument) HoleCount() int {
	return len(in.holes)
}

// Bore returns the bore sections in head-to-foot order. Callers must not
// mutate the returned slice's elements before Validate is called again.
func (in *Instrument) Bore() []*BoreSection {
	return in.bore
}

// Holes returns the tone holes in head-to-foot order.
func (in *Instrument) Holes() []HoleElement {
	return in.holes
}

// Embouchure returns the installed embouchure, or nil if none has been set.
func (in *Instrument) Embouchure() *Embouchure {
	return in.embouchure
}

// ComputeZ folds the chain's transfer matrix product and applies the
// terminal load to return the input impedance at frequency f (spec section
// 4.1).
func (in *Instrument) ComputeZ(f float64) complex128 {
	t := IdentityMatrix
	for _, el := range in.chain {
		t = t.Mul(el.CalcT(f))
	}
	zl := in.terminal.CalcZL(f)
	return (zl*t.PP + t.PU) / (zl*t.UP + t.UU)
}
