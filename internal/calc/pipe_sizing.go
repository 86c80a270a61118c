package calc

import (
	"heatcli/internal/physics"
)

// PipeSizing selects the smallest standard DN pipe that keeps a flow below a
// velocity limit, then reports the actual hydraulics for the chosen size.
type PipeSizing struct {
	meta
}

// NewPipeSizing creates the standard pipe sizing calculation.
func NewPipeSizing() *PipeSizing {
	return &PipeSizing{meta: meta{
		name:        "pipe_sizing",
		description: "Pipe diameter selection from flow velocity and pressure drop limits",
		category:    "fluid_mechanics",
		inputs: []Parameter{
			{Name: "flow_rate", Description: "Volumetric flow rate", Unit: "L/min",
				Min: ptr(1), Max: ptr(50000)},
			{Name: "max_velocity", Description: "Maximum velocity", Unit: "m/s",
				Min: ptr(0.5), Max: ptr(10), Default: ptr(2.5)},
			{Name: "pipe_length", Description: "Pipe length", Unit: "m",
				Min: ptr(1), Max: ptr(1000), Default: ptr(50)},
		},
		outputs: []Parameter{
			{Name: "recommended_diameter", Description: "Recommended pipe inner diameter", Unit: "mm"},
			{Name: "actual_velocity", Description: "Velocity in the selected pipe", Unit: "m/s"},
			{Name: "reynolds_number", Description: "Reynolds number", Unit: "1"},
			{Name: "pressure_drop", Description: "Pressure drop over the pipe length", Unit: "Pa"},
		},
		references: []string{
			"Fluid Mechanics, White, Ch. 6",
			"Perry's Chemical Engineers' Handbook, Ch. 6",
		},
	}}
}

// Run selects the pipe and reports actual velocity, Reynolds number and
// Darcy-Weisbach pressure drop for 20°C water.
func (c *PipeSizing) Run(inputs map[string]float64) (map[string]float64, error) {
	in, err := c.resolveInputs(inputs)
	if err != nil {
		return nil, err
	}

	minDiameterMM := physics.MinimumDiameterForVelocity(in["flow_rate"], in["max_velocity"])

	// Next standard size at or above the velocity-limited minimum; flows
	// beyond the largest size get the largest size.
	var innerMM float64
	for _, dn := range physics.DNSizes() {
		d, _ := physics.DNInnerDiameterMM(dn)
		innerMM = d
		if d >= minDiameterMM {
			break
		}
	}

	water := physics.Water20C
	velocity := physics.VelocityFromFlow(in["flow_rate"], innerMM)
	diameterM := physics.MillimetersToMeters(innerMM)
	reynolds := physics.ReynoldsNumber(velocity, diameterM, water.KinematicViscosity)
	friction := physics.FrictionFactor(reynolds)
	drop := physics.PressureDrop(friction, in["pipe_length"], diameterM, water.Density, velocity)

	return map[string]float64{
		"recommended_diameter": innerMM,
		"actual_velocity":      velocity,
		"reynolds_number":      reynolds,
		"pressure_drop":        drop,
	}, nil
}
