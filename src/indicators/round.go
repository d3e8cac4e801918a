package indicators

import "math"

func Round(value float64, digits int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}

	pow := math.Pow(10, float64(digits))
	return math.Round(value*pow) / pow
}

// RoundOrNil maps undefined values to nil so they serialize as JSON null.
func RoundOrNil(value float64, digits int) *float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}

	rounded := Round(value, digits)
	return &rounded
}

// OrNil is RoundOrNil without rounding.
func OrNil(value float64) *float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}

	return &value
}
