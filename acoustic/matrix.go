package acoustic

import "math/cmplx"

// TransferMatrix is a 2x2 complex matrix relating (pressure, volume flow) at
// one face of a two-port acoustic element to the other. PP/PU/UU/UP name the
// dependence of the output quantity (first letter) on the input quantity
// (second letter) — e.g. PU is the component of output pressure driven by
// input volume flow.
type TransferMatrix struct {
	PP, PU, UP, UU complex128
}

// IdentityMatrix is the transfer matrix of a zero-length, lossless element.
var IdentityMatrix = TransferMatrix{PP: 1, UU: 1}

// Mul returns m * rhs, the transfer matrix of the element formed by chaining
// m (head end first) with rhs.
func (m TransferMatrix) Mul(rhs TransferMatrix) TransferMatrix {
	return TransferMatrix{
		PP: m.PP*rhs.PP + m.PU*rhs.UP,
		PU: m.PP*rhs.PU + m.PU*rhs.UU,
		UP: m.UP*rhs.PP + m.UU*rhs.UP,
		UU: m.UP*rhs.PU + m.UU*rhs.UU,
	}
}

// StateVector is the (pressure, volume flow) state of the air column at a
// point in the bore.
type StateVector struct {
	P, U complex128
}

// Apply returns the state vector obtained by pushing v through m.
func (m TransferMatrix) Apply(v StateVector) StateVector {
	return StateVector{
		P: m.PP*v.P + m.PU*v.U,
		U: m.UP*v.P + m.UU*v.U,
	}
}

// approxEqual reports whether two transfer matrices agree within tol,
// entrywise, by complex modulus of the difference. Used by tests.
func approxEqual(a, b TransferMatrix, tol float64) bool {
	return cmplx.Abs(a.PP-b.PP) < tol &&
		cmplx.Abs(a.PU-b.PU) < tol &&
		cmplx.Abs(a.UP-b.UP) < tol &&
		cmplx.Abs(a.UU-b.UU) < tol
}
