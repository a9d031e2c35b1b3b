// Package loader parses an instrument description file (spec section 6
// grammar) into a plain structured Description, then folds that
// description into an acoustic.Instrument. The parser is a hand-written
// recursive descent: no generator, no process-wide state.
package loader

// NoteEntry is one parsed "notes" line: a note name, optional octave, and
// its x/o hole configuration string.
type NoteEntry struct {
	Name   string
	Octave int
	Config string
}

// LengthRef is a named absolute position in the running length-reference
// frame.
type LengthRef struct {
	Label string
	Pos   float64
}

// BorePoint is one [pos, diam] pair within a "from" group, resolved to an
// absolute position in metres once the group's from-ref is known.
type BorePoint struct {
	AbsPos float64
	Diam   float64
}

// EmbouchureSpec is the parsed embouchure clause. HasDiam reports whether
// diam was given explicitly; if not, the builder takes the bore radius at
// position 0.
type EmbouchureSpec struct {
	Pos       float64
	CharDim   float64
	CavLength float64
	Diam      float64
	HasDiam   bool
}

// TerminationSpec is the parsed termination clause.
type TerminationSpec struct {
	Pos        float64
	FlangeDiam float64
}

// HoleSpec is one parsed hole or silver-flute-hole clause.
type HoleSpec struct {
	Pos       float64
	Diam      float64
	Depth     float64
	EdgeRC    float64
	Padded    bool
	PadHeight float64
	PadDiam   float64
}

// Description is the plain structured result of parsing an instrument
// description file, before it is folded into an acoustic.Instrument.
type Description struct {
	Notes       []NoteEntry
	Temp        float64
	LengthUnits string
	LengthRefs  []LengthRef
	Bore        []BorePoint
	Embouchure  *EmbouchureSpec
	Termination *TerminationSpec
	Holes       []HoleSpec
}

// lengthMultiplier maps an input length-units name to metres.
func lengthMultiplier(units string) (float64, bool) {
	switch units {
	case "mm":
		return 0.001, true
	case "cm":
		return 0.01, true
	case "m":
		return 1.0, true
	case "in":
		return 0.0254, true
	default:
		return 0, false
	}
}
