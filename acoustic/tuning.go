package acoustic

import (
	"fmt"
	"math"
)

// semitoneRatio is 2^(1/12), the equal-tempered frequency ratio of one
// semitone.
const semitoneRatio = 1.0594630943592953

// NoteTuning reports how closely one fingering's nearest impedance minimum
// matches its nominal pitch.
type NoteTuning struct {
	Note       string
	Octave     int
	Nominal    float64 // Hz, from the temperament and pitch standard.
	Matched    float64 // Hz of the nearest impedance minimum, 0 if out of range.
	Cents      float64 // 1200*log2(Matched/Nominal); 0 if out of range.
	OutOfRange bool
}

// TuningReport selects each registered fingering in turn, sweeps a band of
// +/-4 semitones around its nominal pitch sampled at nfreq points, and
// reports the cents deviation of the impedance minimum nearest that pitch
// (spec section 4.6).
func (in *Instrument) TuningReport(nfreq int) ([]NoteTuning, error) {
	reports := make([]NoteTuning, 0, len(in.fingerings))

	for _, fing := range in.fingerings {
		if err := in.SetFingering(fing.Note, fing.Octave); err != nil {
			return nil, err
		}

		f0, ok := in.Temperament.GetFrequency(fing.Note, fing.Octave, in.PitchStd)
		if !ok {
			return nil, fmt.Errorf("note %s: %w", fing.Note, ErrUnknownNote)
		}

		fLow := f0 / math.Pow(semitoneRatio, 4)
		fHigh := f0 * math.Pow(semitoneRatio, 4)

		spec := in.ResonanceScan(fLow, fHigh, nfreq)

		report := NoteTuning{Note: fing.Note, Octave: fing.Octave, Nominal: f0}
		best, found := nearestTo(spec.Minima, f0)
		if !found {
			report.OutOfRange = true
		} else {
			report.Matched = best
			report.Cents = 1200.0 * math.Log2(best/f0)
		}
		reports = append(reports, report)
	}

	return reports, nil
}

func nearestTo(candidates []float64, target float64) (float64, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	best := candidates[0]
	bestDist := math.Abs(best - target)
	for _, c := range candidates[1:] {
		d := math.Abs(c - target)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}
