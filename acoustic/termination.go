package acoustic

import (
	"fmt"
	"math"
)

// FlangedEnd models the flanged open-end termination at the foot of the
// instrument. It embeds a BoreSection by value (the foot-most bore section)
// and implements Terminal, but does not itself participate in the chain —
// this sidesteps the original source's multiple-inheritance entanglement
// (spec section 9).
type FlangedEnd struct {
	Bore    BoreSection
	RFlange float64 // Outer radius of the flange.

	// AreaCorrection scales the load impedance by s_p/s_s (cross-sectional
	// vs. spherical-wave surface area at the cone's end). The original
	// documents this correction but hardcodes it to 1.0; we keep that
	// numerical behavior by default and expose the factor so a caller can
	// opt into the correction (spec section 9, Open Question b).
	AreaCorrection float64
}

// NewFlangedEnd constructs a flanged termination from the instrument's
// foot-most bore section. Call Validate before use.
func NewFlangedEnd(bore BoreSection, rFlange float64) *FlangedEnd {
	return &FlangedEnd{Bore: bore, RFlange: rFlange, AreaCorrection: 1.0}
}

// Validate validates the embedded bore section and the flange radius.
func (e *FlangedEnd) Validate() error {
	if err := e.Bore.Validate(); err != nil {
		return err
	}
	if e.RFlange <= 0 {
		return fmt.Errorf("flange radius %g: %w", e.RFlange, ErrInvalidGeometry)
	}
	if e.AreaCorrection == 0 {
		e.AreaCorrection = 1.0
	}
	return nil
}

// CalcZL returns the flanged-end load impedance at frequency f. It depends
// only on the foot bore section's geometry and the flange radius, never on
// the rest of the instrument's interior state (spec section 8, terminal
// reciprocity).
func (e *FlangedEnd) CalcZL(f float64) complex128 {
	rr := e.Bore.RR
	kr := 2.0 * math.Pi * f * rr / e.Bore.params.C
	z0 := e.Bore.params.CalcZ0(rr)
	flangeFactor := rr / e.RFlange
	lengthCorrFactor := 0.821 - 0.135*flangeFactor - 0.073*math.Pow(flangeFactor, 4)

	reactance := z0 * lengthCorrFactor * kr
	var resistance float64
	if kr < 2.0 {
		resistance = z0 * 0.25 * kr * kr
	} else {
		resistance = z0
	}

	result := complex(resistance, reactance)
	return result * complex(e.AreaCorrection, 0)
}

// FlangeLabel returns the diagnostic label for the foot bore section's
// printed length field. The original source labels this field "Flange
// radius" while actually printing the bore length — preserved here as the
// numerical behavior (BoreLength), with the label corrected (spec section
// 9, Open Question a).
func (e *FlangedEnd) FlangeLabel() (label string, value float64) {
	return "Bore length", e.Bore.L
}
