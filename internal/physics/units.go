package physics

import (
	"math"
	"sort"
)

// Temperature conversions.

func CelsiusToKelvin(c float64) float64 { return c + 273.15 }
func KelvinToCelsius(k float64) float64 { return k - 273.15 }
func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }
func FahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }

// Flow conversions.

func LitersPerMinuteToM3PerSecond(lpm float64) float64 { return lpm / 1000 / 60 }
func M3PerSecondToLitersPerMinute(m3s float64) float64 { return m3s * 1000 * 60 }
func CubicMetersPerHourToLitersPerMinute(m3h float64) float64 { return m3h * 1000 / 60 }
func GPMToLitersPerMinute(gpm float64) float64 { return gpm * 3.785411784 }

// LitersPerMinuteToKgPerSecond converts a volumetric water flow to mass flow
// at the given density (default 20°C water when density is zero).
func LitersPerMinuteToKgPerSecond(lpm, density float64) float64 {
	if density == 0 {
		density = Water20C.Density
	}
	return LitersPerMinuteToM3PerSecond(lpm) * density
}

// Power conversions.

func WattsToKilowatts(w float64) float64 { return w / 1e3 }
func WattsToMegawatts(w float64) float64 { return w / 1e6 }
func MegawattsToWatts(mw float64) float64 { return mw * 1e6 }
func WattsToBTUPerHour(w float64) float64 { return w * 3.412141633 }

// Pressure conversions.

func PascalToBar(pa float64) float64 { return pa / 1e5 }
func BarToPascal(bar float64) float64 { return bar * 1e5 }
func PascalToPSI(pa float64) float64 { return pa / 6894.757293168 }

// Length conversions.

func MillimetersToMeters(mm float64) float64 { return mm / 1000 }
func MetersToMillimeters(m float64) float64 { return m * 1000 }
func InchesToMillimeters(in float64) float64 { return in * 25.4 }

// dnInnerDiametersMM maps European DN pipe designations to inner diameters in
// millimeters (EN 10255 medium series, welded steel).
var dnInnerDiametersMM = map[int]float64{
	15:  16.1,
	20:  21.7,
	25:  27.3,
	32:  36.0,
	40:  41.9,
	50:  53.1,
	65:  68.9,
	80:  80.9,
	100: 105.3,
	125: 129.7,
	150: 155.1,
	200: 206.5,
	250: 260.4,
	300: 309.7,
}

// DNInnerDiameterMM returns the inner diameter for a DN designation.
func DNInnerDiameterMM(dn int) (float64, bool) {
	d, ok := dnInnerDiametersMM[dn]
	return d, ok
}

// DNSizes returns the available DN designations in ascending order.
func DNSizes() []int {
	sizes := make([]int, 0, len(dnInnerDiametersMM))
	for dn := range dnInnerDiametersMM {
		sizes = append(sizes, dn)
	}
	sort.Ints(sizes)
	return sizes
}

// VelocityFromFlow computes the mean velocity in m/s for a flow in L/min
// through a circular section of the given inner diameter in mm.
func VelocityFromFlow(flowLPM, diameterMM float64) float64 {
	if diameterMM <= 0 {
		return 0
	}
	area := math.Pi * math.Pow(MillimetersToMeters(diameterMM)/2, 2)
	return LitersPerMinuteToM3PerSecond(flowLPM) / area
}

// FlowFromVelocity is the inverse of VelocityFromFlow, returning L/min.
func FlowFromVelocity(velocityMS, diameterMM float64) float64 {
	area := math.Pi * math.Pow(MillimetersToMeters(diameterMM)/2, 2)
	return M3PerSecondToLitersPerMinute(velocityMS * area)
}
