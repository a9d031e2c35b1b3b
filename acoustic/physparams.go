package acoustic

import "math"

// PhysParams holds the temperature-dependent physical properties of air used
// throughout the acoustic model. All fields are SI units. A PhysParams is
// immutable once constructed by NewPhysParams.
type PhysParams struct {
	T     float64 // Absolute temperature, K.
	C     float64 // Speed of sound, m/s.
	Rho   float64 // Density, kg/m^3.
	Eta   float64 // Shear viscosity, Pa*s.
	Gamma float64 // Ratio of specific heats.
	Kappa float64 // Thermal conductivity, W/(m*K).
	Cp    float64 // Specific heat at constant pressure, J/(kg*K).
}

// NewPhysParams derives air properties at the given temperature in Celsius.
func NewPhysParams(tempC float64) PhysParams {
	const (
		pAir = 101325.0 // Dry air pressure, Pa.
		pV   = 0.0      // Vapour pressure, Pa.
		rAir = 287.05   // Gas constant, dry air.
		rV   = 461.495  // Gas constant, water vapour.
	)

	t := tempC + 273.15
	return PhysParams{
		T:     t,
		C:     332.0 * (1.0 + 0.00166*tempC),
		Rho:   ((pAir / rAir) + (pV / rV)) / t,
		Eta:   3.648e-6 * (1 + 0.0135003*t),
		Gamma: 1.4017,
		Kappa: 2.6118e-2,
		Cp:    1.0063e3,
	}
}

// CalcZ0 returns the characteristic wave impedance rho*c/(pi*r^2) of an
// infinite cylindrical bore of radius r.
func (p PhysParams) CalcZ0(r float64) float64 {
	return p.Rho * p.C / (math.Pi * r * r)
}
