// Package temperament maps note names and octaves to frequencies under a
// named tuning system, and reports the nearest note and its cents deviation
// for an arbitrary frequency.
package temperament

import "math"

const (
	// CentsInSemitone is the number of cents per equal-tempered semitone.
	CentsInSemitone = 100
	// CentsInOctave is the number of cents per octave.
	CentsInOctave = 1200
)

// Note is a named pitch class with its cents offset from the temperament's
// reference note, within one octave.
type Note struct {
	Name  string
	Cents float64
}

// Temperament is an ordered collection of Notes. Enharmonic duplicates (for
// example C#/Db) may share the same cents value; GetFrequency and
// NearestNote resolve ties by returning whichever entry appears first in
// Notes (spec section 9, Open Question d).
type Temperament struct {
	Notes []Note
}

// NewEqualTemperament returns the built-in 12-tone equal-tempered
// temperament, with enharmonic duplicates, ordered the same way the
// original reference implementation lists them.
func NewEqualTemperament() Temperament {
	return Temperament{Notes: []Note{
		{"C", -9 * CentsInSemitone},
		{"C#", -8 * CentsInSemitone},
		{"D", -7 * CentsInSemitone},
		{"D#", -6 * CentsInSemitone},
		{"Eb", -6 * CentsInSemitone},
		{"E", -5 * CentsInSemitone},
		{"F", -4 * CentsInSemitone},
		{"F#", -3 * CentsInSemitone},
		{"Gb", -3 * CentsInSemitone},
		{"G", -2 * CentsInSemitone},
		{"G#", -1 * CentsInSemitone},
		{"Ab", -1 * CentsInSemitone},
		{"A", 0 * CentsInSemitone},
		{"A#", 1 * CentsInSemitone},
		{"Bb", 1 * CentsInSemitone},
		{"B", 2 * CentsInSemitone},
	}}
}

// DeviatedNote is a note name, octave, and signed cents deviation from its
// (unspecified) nominal pitch.
type DeviatedNote struct {
	Name          string
	Octave        int
	CentsDeviation float64
}

// GetFrequency returns the frequency of the named note in the given octave,
// at reference pitch ref (Hz). The first matching entry in Notes wins when
// a name has enharmonic duplicates.
func (t Temperament) GetFrequency(name string, octave int, ref float64) (float64, bool) {
	for _, n := range t.Notes {
		if n.Name == name {
			return ref * math.Pow(2, n.Cents/CentsInOctave) * math.Pow(2, float64(octave)), true
		}
	}
	return 0, false
}

// NearestNote returns the note (and octave, with wrap adjustment) nearest
// to freq at reference pitch ref, plus its signed cents deviation. It scans
// the notes of the enclosing octave plus one wrapped neighbor on either
// side, so that a frequency near an octave boundary is compared against the true nearest
// neighbor rather than being clipped to its own octave's note list.
func (t Temperament) NearestNote(freq, ref float64) DeviatedNote {
	n := len(t.Notes)
	centsMin := t.Notes[0].Cents
	centsFromRef := CentsInOctave * math.Log2(freq/ref)
	centsFromMin := centsFromRef - centsMin

	octave := int(math.Floor(centsFromMin / CentsInOctave))

	var best DeviatedNote
	minDeviation := math.Inf(1)

	for i := -1; i <= n; i++ {
		var idx, octaveShift int
		switch {
		case i == -1:
			idx = n - 1
			octaveShift = -1
		case i == n:
			idx = 0
			octaveShift = 1
		default:
			idx = i
			octaveShift = 0
		}

		shiftedOctave := octave + octaveShift
		shiftedCents := centsFromRef - CentsInOctave*float64(octave)
		deviation := shiftedCents - (t.Notes[idx].Cents + CentsInOctave*float64(octaveShift))

		if math.Abs(deviation) < math.Abs(minDeviation) {
			minDeviation = deviation
			best = DeviatedNote{Name: t.Notes[idx].Name, Octave: shiftedOctave, CentsDeviation: deviation}
		}
	}

	return best
}
