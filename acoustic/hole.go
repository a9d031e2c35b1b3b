package acoustic

import (
	"fmt"
	"math"
)

// defaultEdgeRC is the default edge radius of curvature, in metres; the
// loader keeps its own constant with the same value for input files that
// omit edge-rc (spec section 6).
const defaultEdgeRC = 0.0005

// HoleElement is the subset of Hole/PaddedHole behavior an Instrument needs
// to seat a tone hole in its chain and apply fingerings to it.
type HoleElement interface {
	ChainElement
	Validate() error
	SetClosed(bool)
	IsClosed() bool
}

// holeCore holds the fields and cached derived values common to Hole and
// PaddedHole: bore radius, hole radius/depth, open/closed state, edge
// radius of curvature, and the series length corrections cached at
// validation (Keefe 1990 eq. 8-9). Mutating Closed does not invalidate the
// cache; it only selects which cached value CalcT uses.
type holeCore struct {
	params PhysParams

	RB     float64 // Bore radius at the hole's position.
	RHExt  float64 // Physical (external) hole radius.
	LH     float64 // Physical hole depth.
	Closed bool
	RC     float64 // Edge radius of curvature.

	valid bool
	rHG   float64 // Geometric hole radius.
	lHG   float64 // Geometric hole length.
	ohlb  float64 // Cached open-hole series length correction.
	chlb  float64 // Cached closed-hole series length correction.
}

func (c *holeCore) validateCommon(rHG, lHG float64) error {
	if c.RB <= 0 {
		return fmt.Errorf("hole bore radius %g: %w", c.RB, ErrInvalidGeometry)
	}
	if c.RHExt <= 0 {
		return fmt.Errorf("hole radius %g: %w", c.RHExt, ErrInvalidGeometry)
	}
	if c.LH <= 0 {
		return fmt.Errorf("hole depth %g: %w", c.LH, ErrInvalidGeometry)
	}
	if c.RC <= 0 {
		return fmt.Errorf("hole edge radius of curvature %g: %w", c.RC, ErrInvalidGeometry)
	}

	c.rHG = rHG
	c.lHG = lHG

	rhOnRb := c.rHG / c.RB
	rhOnRb2 := rhOnRb * rhOnRb
	rhOnRb4 := rhOnRb2 * rhOnRb2

	term1 := 0.47 * c.rHG * rhOnRb4
	term2 := 0.62*rhOnRb2 + 0.64*rhOnRb
	term3 := math.Tanh(1.84 * c.lHG / c.rHG)

	c.ohlb = term1 / (term2 + term3)
	c.chlb = term1 / (term2 + 1.0/term3)
	c.valid = true
	return nil
}

// IsClosed reports the hole's current open/closed state.
func (c *holeCore) IsClosed() bool {
	return c.Closed
}

// calcXi is the boundary-layer specific resistance along the bore when the
// hole is open (spec section 4.3).
func (c *holeCore) calcXi(f float64) float64 {
	omega := 2.0 * math.Pi * f
	k := omega / c.params.C

	dv := math.Sqrt(2.0 * c.params.Eta / (c.params.Rho * omega))

	alpha := (math.Sqrt(2*c.params.Eta*omega/c.params.Rho) +
		(c.params.Gamma-1)*math.Sqrt(2*c.params.Kappa*omega/(c.params.Rho*c.params.Cp))) /
		(2 * c.rHG * c.params.C)

	return 0.25*(k*c.rHG)*(k*c.rHG) + alpha*c.lHG + 0.25*k*dv*math.Log(2*c.rHG/c.RC)
}

// calcT computes the shunt-branch transfer matrix shared by Hole and
// PaddedHole, given the effective-length function of the concrete type.
func (c *holeCore) calcT(f float64, effectiveLength func(f float64) float64) TransferMatrix {
	omega := 2.0 * math.Pi * f
	k := omega / c.params.C
	z0 := c.params.Rho * c.params.C / (math.Pi * c.RB * c.RB)
	rbOnRh := c.RB / c.rHG
	rbOnRh2 := rbOnRh * rbOnRh

	t := TransferMatrix{PP: 1, UU: 1}
	if c.Closed {
		t.PU = complex(0, -1) * complex(z0*rbOnRh2*k*c.chlb, 0)
		t.UP = complex(0, 1) * complex(math.Tan(k*c.lHG), 0) / complex(z0*rbOnRh2, 0)
	} else {
		t.PU = complex(0, -1) * complex(z0*rbOnRh2*k*c.ohlb, 0)
		le := effectiveLength(f)
		xi := c.calcXi(f)
		t.UP = 1.0 / (complex(z0*rbOnRh2, 0) * (complex(0, k*le) + complex(xi, 0)))
	}
	return t
}

// Hole is a plain finger/tone hole (see spec section 4.3).
type Hole struct {
	holeCore
}

// NewHole constructs a plain tone hole. Call Validate before use.
func NewHole(params PhysParams, rBore, rHole, depth float64, closed bool, edgeRC float64) *Hole {
	return &Hole{holeCore{
		params: params,
		RB:     rBore,
		RHExt:  rHole,
		LH:     depth,
		Closed: closed,
		RC:     edgeRC,
	}}
}

// Validate checks invariants and caches derived geometry. Must be called
// once up front, and again whenever Closed is toggled is NOT required (the
// cache is independent of open/closed state) — but is required after any
// change to RB/RHExt/LH/RC.
func (h *Hole) Validate() error {
	return h.validateCommon(h.RHExt, h.LH)
}

// SetClosed updates the open/closed flag. No re-validation is needed: the
// cached series corrections (ohlb/chlb) cover both states already.
func (h *Hole) SetClosed(closed bool) {
	h.Closed = closed
}

// CalcHLE returns the open-hole effective acoustic length at frequency f
// (Keefe 1990 eq. 5).
func (h *Hole) CalcHLE(f float64) float64 {
	k := 2.0 * math.Pi * f / h.params.C
	tanKL := math.Tan(k * h.lHG)
	rhOnRb := h.rHG / h.RB

	return (1.0/k*tanKL + h.rHG*(1.40-0.58*rhOnRb*rhOnRb)) /
		(1.0 - 0.61*k*h.rHG*tanKL)
}

// CalcT computes the hole's transfer matrix at frequency f.
func (h *Hole) CalcT(f float64) TransferMatrix {
	return h.calcT(f, h.CalcHLE)
}

// PaddedHole is a Hole specialized for a padded "silver flute" key: its
// geometric length and open effective-length formulas both differ from the
// plain Hole (spec section 4.3).
type PaddedHole struct {
	holeCore
	PadHeight float64
	PadRadius float64
}

// NewPaddedHole constructs a padded tone hole. Call Validate before use.
func NewPaddedHole(params PhysParams, rBore, rHole, depth float64, closed bool, edgeRC, padHeight, padRadius float64) *PaddedHole {
	return &PaddedHole{
		holeCore: holeCore{
			params: params,
			RB:     rBore,
			RHExt:  rHole,
			LH:     depth,
			Closed: closed,
			RC:     edgeRC,
		},
		PadHeight: padHeight,
		PadRadius: padRadius,
	}
}

// Validate checks invariants and caches derived geometry, including the
// padded-hole geometric length override.
func (h *PaddedHole) Validate() error {
	if h.PadHeight <= 0 {
		return fmt.Errorf("pad height %g: %w", h.PadHeight, ErrInvalidGeometry)
	}
	if h.PadRadius <= 0 {
		return fmt.Errorf("pad radius %g: %w", h.PadRadius, ErrInvalidGeometry)
	}

	rHG := h.RHExt
	rhOnRb := rHG / h.RB
	lHG := h.LH + 0.125*rHG*rhOnRb*(1.0+0.172*rhOnRb*rhOnRb)
	return h.validateCommon(rHG, lHG)
}

// SetClosed updates the open/closed flag.
func (h *PaddedHole) SetClosed(closed bool) {
	h.Closed = closed
}

// CalcHLE returns the open-hole effective acoustic length at frequency f,
// using the pad-dependent tau factor in place of the plain hole's constants
// (Keefe 1990 eq. 5, padded-hole variant).
func (h *PaddedHole) CalcHLE(f float64) float64 {
	k := 2.0 * math.Pi * f / h.params.C
	tanKL := math.Tan(k * h.lHG)
	rhOnRb := h.rHG / h.RB
	rpadOnRh := h.PadRadius / h.rHG
	rhOnPadH := h.rHG / h.PadHeight

	tau := 0.61 * math.Pow(rpadOnRh, 0.18) * math.Pow(rhOnPadH, 0.39)

	return (1.0/k*tanKL + h.rHG*(tau+(math.Pi/4)*(1-0.74*rhOnRb*rhOnRb))) /
		(1.0 - tau*k*h.rHG*tanKL)
}

// CalcT computes the padded hole's transfer matrix at frequency f.
func (h *PaddedHole) CalcT(f float64) TransferMatrix {
	return h.calcT(f, h.CalcHLE)
}
