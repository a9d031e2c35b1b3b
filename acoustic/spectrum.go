package acoustic

import (
	"math/cmplx"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
)

// ImpedanceSpectrum holds the samples of one frequency sweep of an
// Instrument's input impedance, plus the frequencies at which |Z| attains a
// local minimum or maximum (spec section 3).
type ImpedanceSpectrum struct {
	Freq   []float64
	Z      []complex128
	Minima []float64
	Maxima []float64
}

// flushZ flushes denormal real/imaginary components of a sampled impedance
// to zero before it is retained in a spectrum, the same guard the teacher
// applies to its own recursively-accumulated filter state.
func flushZ(z complex128) complex128 {
	return complex(dspcore.FlushDenormals(real(z)), dspcore.FlushDenormals(imag(z)))
}

// ResonanceScan sweeps nfreq uniformly-spaced frequencies from fStart to
// fEnd, computes Z at each, and detects local extrema of |Z| by three-point
// comparison with indices i-1, i, i+1: a minimum is recorded at f_i when
// |Z_i| is strictly less than both neighbors, a maximum symmetrically.
// Endpoints never produce extrema (spec section 4.6).
func (in *Instrument) ResonanceScan(fStart, fEnd float64, nfreq int) ImpedanceSpectrum {
	spec := ImpedanceSpectrum{
		Freq: make([]float64, nfreq),
		Z:    make([]complex128, nfreq),
	}
	if nfreq < 1 {
		return spec
	}

	step := 0.0
	if nfreq > 1 {
		step = (fEnd - fStart) / float64(nfreq-1)
	}

	mag := make([]float64, nfreq)
	for i := 0; i < nfreq; i++ {
		f := fStart + step*float64(i)
		z := flushZ(in.ComputeZ(f))
		spec.Freq[i] = f
		spec.Z[i] = z
		mag[i] = cmplx.Abs(z)
	}

	for i := 1; i < nfreq-1; i++ {
		prev, cur, next := mag[i-1], mag[i], mag[i+1]
		if cur < prev && cur < next {
			spec.Minima = append(spec.Minima, spec.Freq[i])
		}
		if cur > prev && cur > next {
			spec.Maxima = append(spec.Maxima, spec.Freq[i])
		}
	}

	return spec
}
