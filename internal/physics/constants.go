// Package physics carries the property tables, unit conversions and
// engineering formulas used by the heat-reuse calculations. Values come from
// NIST, ASHRAE and the VDI Heat Atlas; European/metric conventions are used
// throughout.
package physics

// Universal physical constants (CODATA 2018).
const (
	StefanBoltzmann = 5.670374419e-8 // W/(m²·K⁴)
	GasConstant     = 8.314462618    // J/(mol·K)
)

// Standard reference conditions (ISO 3046-1, ISO 80000-3).
const (
	StandardTemperatureC = 20.0
	StandardPressurePa   = 101325.0
	StandardGravity      = 9.80665 // m/s²
)

// FluidProperties describes one fluid at a fixed reference temperature.
type FluidProperties struct {
	TemperatureC        float64
	Density             float64 // kg/m³
	SpecificHeat        float64 // J/(kg·K)
	ThermalConductivity float64 // W/(m·K)
	DynamicViscosity    float64 // Pa·s
	KinematicViscosity  float64 // m²/s
	PrandtlNumber       float64
}

// Water properties at the reference temperatures the calculations use.
// Primary coolant; Reference: NIST Webbook.
var (
	Water20C = FluidProperties{
		TemperatureC:        20,
		Density:             998.2,
		SpecificHeat:        4182,
		ThermalConductivity: 0.598,
		DynamicViscosity:    1.002e-3,
		KinematicViscosity:  1.004e-6,
		PrandtlNumber:       7.01,
	}
	Water30C = FluidProperties{
		TemperatureC:        30,
		Density:             995.7,
		SpecificHeat:        4178,
		ThermalConductivity: 0.615,
		DynamicViscosity:    7.97e-4,
		KinematicViscosity:  8.01e-7,
		PrandtlNumber:       5.42,
	}
	Water45C = FluidProperties{
		TemperatureC:        45,
		Density:             990.2,
		SpecificHeat:        4180,
		ThermalConductivity: 0.637,
		DynamicViscosity:    5.96e-4,
		KinematicViscosity:  6.02e-7,
		PrandtlNumber:       3.91,
	}
	Water60C = FluidProperties{
		TemperatureC:        60,
		Density:             983.2,
		SpecificHeat:        4184,
		ThermalConductivity: 0.654,
		DynamicViscosity:    4.66e-4,
		KinematicViscosity:  4.74e-7,
		PrandtlNumber:       2.98,
	}
)

// Air properties at European standard conditions (VDI Heat Atlas, ASHRAE).
var (
	Air20C = FluidProperties{
		TemperatureC:        20,
		Density:             1.204,
		SpecificHeat:        1006,
		ThermalConductivity: 0.0251,
		DynamicViscosity:    1.825e-5,
		KinematicViscosity:  1.516e-5,
		PrandtlNumber:       0.730,
	}
	Air35C = FluidProperties{
		TemperatureC:        35,
		Density:             1.146,
		SpecificHeat:        1007,
		ThermalConductivity: 0.0268,
		DynamicViscosity:    1.895e-5,
		KinematicViscosity:  1.655e-5,
		PrandtlNumber:       0.725,
	}
)

// WaterPropertiesAt picks the reference table nearest to the average loop
// temperature. Break points follow datacenter supply/return practice.
func WaterPropertiesAt(tempC float64) FluidProperties {
	switch {
	case tempC <= 25:
		return Water20C
	case tempC <= 37.5:
		return Water30C
	case tempC <= 52.5:
		return Water45C
	default:
		return Water60C
	}
}
