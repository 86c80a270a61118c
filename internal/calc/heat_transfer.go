package calc

import (
	"heatcli/internal/physics"
)

// HeatTransfer computes the sensible heat transfer rate of a coolant loop
// from flow and terminal temperatures.
//
//	Q̇ = ṁ × cp × ΔT
type HeatTransfer struct {
	meta
}

// NewHeatTransfer creates the standard heat transfer calculation.
func NewHeatTransfer() *HeatTransfer {
	return &HeatTransfer{meta: meta{
		name:        "heat_transfer",
		description: "Heat transfer rate of a coolant loop from flow and terminal temperatures",
		category:    "thermodynamics",
		inputs: []Parameter{
			{Name: "flow_rate", Description: "Volumetric flow rate", Unit: "L/min",
				Min: ptr(1), Max: ptr(50000), Default: ptr(1000)},
			{Name: "inlet_temperature", Description: "Inlet temperature", Unit: "°C",
				Min: ptr(-10), Max: ptr(100), Default: ptr(20)},
			{Name: "outlet_temperature", Description: "Outlet temperature", Unit: "°C",
				Min: ptr(-10), Max: ptr(100), Default: ptr(30)},
			{Name: "specific_heat", Description: "Specific heat capacity", Unit: "J/(kg·K)",
				Min: ptr(1000), Max: ptr(10000), Default: ptr(physics.Water20C.SpecificHeat)},
		},
		outputs: []Parameter{
			{Name: "heat_rate_watts", Description: "Heat transfer rate", Unit: "W"},
			{Name: "heat_rate_mw", Description: "Heat transfer rate", Unit: "MW"},
			{Name: "delta_temperature", Description: "Temperature difference", Unit: "°C"},
			{Name: "mass_flow_rate", Description: "Mass flow rate", Unit: "kg/s"},
		},
		references: []string{
			"Fundamentals of Heat and Mass Transfer, Incropera & DeWitt, Ch. 1",
			"Thermodynamics: An Engineering Approach, Cengel & Boles, Ch. 2",
		},
	}}
}

// Run computes the loop heat rate. Inputs outside the declared ranges are
// rejected; unlike the cell converter, calculations fail loudly.
func (c *HeatTransfer) Run(inputs map[string]float64) (map[string]float64, error) {
	in, err := c.resolveInputs(inputs)
	if err != nil {
		return nil, err
	}

	massFlow := physics.LitersPerMinuteToKgPerSecond(in["flow_rate"], 0)
	deltaT := in["outlet_temperature"] - in["inlet_temperature"]
	watts := physics.SensibleHeat(massFlow, in["specific_heat"], deltaT)

	return map[string]float64{
		"heat_rate_watts":   watts,
		"heat_rate_mw":      physics.WattsToMegawatts(watts),
		"delta_temperature": deltaT,
		"mass_flow_rate":    massFlow,
	}, nil
}
