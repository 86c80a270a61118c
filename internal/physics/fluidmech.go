package physics

import "math"

// ReynoldsNumber for pipe flow: velocity in m/s, inner diameter in m,
// kinematic viscosity in m²/s.
func ReynoldsNumber(velocity, diameter, kinematicViscosity float64) float64 {
	if kinematicViscosity == 0 {
		return 0
	}
	return velocity * diameter / kinematicViscosity
}

// FrictionFactor returns the Darcy friction factor: 64/Re in the laminar
// regime, Blasius correlation for smooth turbulent pipes above Re 4000.
// The transitional band uses the turbulent correlation, which is the
// conservative choice for pressure-drop sizing.
func FrictionFactor(reynolds float64) float64 {
	if reynolds <= 0 {
		return 0
	}
	if reynolds < 2300 {
		return 64 / reynolds
	}
	return 0.3164 / math.Pow(reynolds, 0.25)
}

// PressureDrop returns the Darcy-Weisbach pressure loss in Pa over a pipe of
// the given length and inner diameter in m, at the given mean velocity in
// m/s and fluid density in kg/m³.
//
//	ΔP = f × (L/D) × (ρ v² / 2)
func PressureDrop(frictionFactor, lengthM, diameterM, density, velocity float64) float64 {
	if diameterM <= 0 {
		return 0
	}
	return frictionFactor * (lengthM / diameterM) * (density * velocity * velocity / 2)
}

// MinimumDiameterForVelocity returns the smallest inner diameter in mm that
// keeps the given flow (L/min) at or below the velocity limit (m/s).
func MinimumDiameterForVelocity(flowLPM, maxVelocity float64) float64 {
	if maxVelocity <= 0 {
		return 0
	}
	d := math.Sqrt(4 * LitersPerMinuteToM3PerSecond(flowLPM) / (math.Pi * maxVelocity))
	return MetersToMillimeters(d)
}
