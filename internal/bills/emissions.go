package bills

import "strconv"

// emissionFactor converts consumed electricity units to kg of CO2.
const emissionFactor = 0.82

// CalcCarbon computes the estimated carbon emission for the consumed units,
// formatted as a fixed-point string with two decimal places.
func CalcCarbon(units float64) string {
	return strconv.FormatFloat(units*emissionFactor, 'f', 2, 64)
}
