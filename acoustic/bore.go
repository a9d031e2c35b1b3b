package acoustic

import (
	"fmt"
	"math"
	"math/cmplx"
)

// BoreSection is a conic frustum of the main bore, with viscothermal losses.
// It must be validated before CalcT is called.
type BoreSection struct {
	params PhysParams

	L   float64 // Length, m.
	RL  float64 // Bore radius, head (left) end, m.
	RR  float64 // Bore radius, foot (right) end, m.

	// Lossless disables the viscothermal correction terms, reducing the
	// section to the exact lossless-cylinder/cone formulation. Used by
	// tests exercising the cylindrical/lossless limit; real instruments
	// leave this false.
	Lossless bool

	// Derived at validation.
	valid  bool
	isConv bool
	rSmall float64
	rLarge float64
	x0Inv  float64
}

// NewBoreSection constructs a bore section. Call Validate before use.
func NewBoreSection(params PhysParams, length, rLeft, rRight float64) *BoreSection {
	return &BoreSection{params: params, L: length, RL: rLeft, RR: rRight}
}

// Validate checks the section's invariants and caches derived geometry.
// It must be called once before CalcT, and again after any field mutation.
func (b *BoreSection) Validate() error {
	if b.L <= 0 {
		return fmt.Errorf("bore section length %g: %w", b.L, ErrInvalidGeometry)
	}
	if b.RL <= 0 {
		return fmt.Errorf("bore section head radius %g: %w", b.RL, ErrInvalidGeometry)
	}
	if b.RR <= 0 {
		return fmt.Errorf("bore section foot radius %g: %w", b.RR, ErrInvalidGeometry)
	}

	b.isConv = b.RL > b.RR
	if b.isConv {
		b.rSmall, b.rLarge = b.RR, b.RL
	} else {
		b.rSmall, b.rLarge = b.RL, b.RR
	}
	b.x0Inv = (b.rLarge - b.rSmall) / (b.L * b.rSmall)
	b.valid = true
	return nil
}

// IsConverging reports whether the section narrows from head to foot.
func (b *BoreSection) IsConverging() bool {
	return b.isConv
}

// CalcT computes the section's transfer matrix at frequency f, following
// Scavone's lossy-conic formulation (see spec section 4.2).
func (b *BoreSection) CalcT(f float64) TransferMatrix {
	omega := 2.0 * math.Pi * f
	k := omega / b.params.C

	z0 := b.params.CalcZ0(b.rSmall)

	lCOnX0 := 1.0 + b.L*b.x0Inv // h in spec notation.
	x0OnLC := 1.0 / lCOnX0
	lCInv := b.x0Inv / lCOnX0

	var gamma, zc complex128
	if b.Lossless {
		gamma = complex(0, k)
		zc = complex(z0, 0)
	} else {
		rAve := 0.5 * (b.RL + b.RR)
		rvInv1 := 1.0 / (math.Sqrt(omega*b.params.Rho/b.params.Eta) * rAve)
		rvInv2 := rvInv1 * rvInv1
		rvInv3 := rvInv2 * rvInv1

		omegaOnVp := k * (1.0 + 1.045*rvInv1)
		alpha := k * (1.045*rvInv1 + 1.080*rvInv2 + 0.750*rvInv3)
		gamma = complex(alpha, omegaOnVp)

		zc = complex(z0, 0) * complex(1.0+0.369*rvInv1, -(0.369*rvInv1+1.149*rvInv2+0.303*rvInv3))
	}

	gammaL := gamma * complex(b.L, 0)
	coshGL := cmplx.Cosh(gammaL)
	sinhGL := cmplx.Sinh(gammaL)

	gammaX0Inv := complex(b.x0Inv, 0) / gamma

	a := complex(lCOnX0, 0)*coshGL - gammaX0Inv*sinhGL
	bb := complex(x0OnLC, 0) * zc * sinhGL
	c := (1.0 / zc) * ((complex(lCOnX0, 0)-gammaX0Inv*gammaX0Inv)*sinhGL +
		complex(b.x0Inv*b.L, 0)*gammaX0Inv*coshGL)
	d := complex(x0OnLC, 0)*coshGL + complex(lCInv, 0)*sinhGL/gamma

	if b.isConv {
		return TransferMatrix{PP: d, PU: bb, UP: c, UU: a}
	}
	return TransferMatrix{PP: a, PU: bb, UP: c, UU: d}
}
