package acoustic

import (
	"math/cmplx"
	"testing"
)

func TestMulIdentity(t *testing.T) {
	m := TransferMatrix{PP: 1, PU: 2, UP: 3, UU: 4}
	got := IdentityMatrix.Mul(m)
	if !approxEqual(got, m, 1e-12) {
		t.Fatalf("identity*m = %+v, want %+v", got, m)
	}
	got = m.Mul(IdentityMatrix)
	if !approxEqual(got, m, 1e-12) {
		t.Fatalf("m*identity = %+v, want %+v", got, m)
	}
}

func TestApplyMatchesMulByColumn(t *testing.T) {
	m := TransferMatrix{PP: complex(1, 0.5), PU: complex(0, 2), UP: complex(-1, 0), UU: complex(0.3, 0.1)}
	v := StateVector{P: complex(2, 1), U: complex(-1, 3)}

	got := m.Apply(v)
	want := StateVector{
		P: m.PP*v.P + m.PU*v.U,
		U: m.UP*v.P + m.UU*v.U,
	}
	if cmplx.Abs(got.P-want.P) > 1e-12 || cmplx.Abs(got.U-want.U) > 1e-12 {
		t.Fatalf("Apply = %+v, want %+v", got, want)
	}
}
