package acoustic

import (
	"fmt"
	"math"
)

// Embouchure models the embouchure hole plus the stopper cavity as a single
// shunt compliance and mass at the head end of the instrument (spec section
// 4.4).
type Embouchure struct {
	params PhysParams

	RB    float64 // Local bore radius.
	LChar float64 // Characteristic length (hole area / effective length).
	LCav  float64 // Stopper cavity length.
}

// NewEmbouchure constructs an embouchure component. Call Validate before use.
func NewEmbouchure(params PhysParams, rBore, charLength, cavLength float64) *Embouchure {
	return &Embouchure{params: params, RB: rBore, LChar: charLength, LCav: cavLength}
}

// Validate checks the embouchure's invariants.
func (e *Embouchure) Validate() error {
	if e.RB <= 0 {
		return fmt.Errorf("embouchure bore radius %g: %w", e.RB, ErrInvalidGeometry)
	}
	if e.LChar <= 0 {
		return fmt.Errorf("embouchure characteristic length %g: %w", e.LChar, ErrInvalidGeometry)
	}
	if e.LCav < 0 {
		return fmt.Errorf("embouchure cavity length %g: %w", e.LCav, ErrInvalidGeometry)
	}
	return nil
}

func (e *Embouchure) calcJYE(f float64) float64 {
	omega := 2.0 * math.Pi * f
	return e.LChar / (e.params.Gamma * omega)
}

func (e *Embouchure) calcJYC(f float64) float64 {
	omega := 2.0 * math.Pi * f
	v := 2.0 * math.Pi * e.RB * e.RB * e.LCav
	return -(omega * v) / (e.params.Gamma * e.params.C * e.params.C)
}

// calcKDeltaL returns kDeltaL, the equivalent-length phase angle defined
// implicitly by the embouchure's admittance (spec section 4.4).
func (e *Embouchure) calcKDeltaL(f float64) float64 {
	z0 := e.params.CalcZ0(e.RB)
	return math.Atan(1.0 / (z0 * (e.calcJYE(f) + e.calcJYC(f))))
}

// CalcT computes the embouchure's transfer matrix at frequency f.
func (e *Embouchure) CalcT(f float64) TransferMatrix {
	z0 := e.params.CalcZ0(e.RB)
	kdl := e.calcKDeltaL(f)
	cosKdl := math.Cos(kdl)
	sinKdl := math.Sin(kdl)

	return TransferMatrix{
		PP: complex(cosKdl, 0),
		PU: complex(0, 1) * complex(sinKdl*z0, 0),
		UP: complex(0, 1) * complex(sinKdl/z0, 0),
		UU: complex(cosKdl, 0),
	}
}
