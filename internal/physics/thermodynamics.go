package physics

import "math"

// SensibleHeat returns the heat transfer rate in watts for a mass flow in
// kg/s, specific heat in J/(kg·K) and temperature difference in K.
//
//	Q̇ = ṁ × cp × ΔT
func SensibleHeat(massFlowKgS, specificHeat, deltaT float64) float64 {
	return massFlowKgS * specificHeat * deltaT
}

// PowerFromFlow returns the thermal power in watts carried by a water loop
// with the given volumetric flow in L/min between inlet and outlet
// temperatures in °C. Water properties are taken at the loop average.
func PowerFromFlow(flowLPM, inletC, outletC float64) float64 {
	props := WaterPropertiesAt((inletC + outletC) / 2)
	massFlow := LitersPerMinuteToKgPerSecond(flowLPM, props.Density)
	return SensibleHeat(massFlow, props.SpecificHeat, math.Abs(outletC-inletC))
}

// TemperatureApproach returns the approach temperature difference of a heat
// exchanger: the smaller of the two terminal differences. Negative values
// indicate a temperature cross.
func TemperatureApproach(hotInC, hotOutC, coldInC, coldOutC float64) float64 {
	return math.Min(hotInC-coldOutC, hotOutC-coldInC)
}

// LogMeanTemperatureDifference returns the LMTD for counterflow terminal
// differences dT1 and dT2. Equal differences degenerate to that value.
func LogMeanTemperatureDifference(dT1, dT2 float64) float64 {
	if dT1 <= 0 || dT2 <= 0 {
		return 0
	}
	if dT1 == dT2 {
		return dT1
	}
	return (dT1 - dT2) / math.Log(dT1/dT2)
}
