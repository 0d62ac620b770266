package validate

const floatingPointTolerance = 0.000001

func InRange(start float64, end float64, value float64) bool {
	return value >= start && value <= end
}

// ClampMax truncates value to max.
func ClampMax(value float64, max float64) float64 {
	if value > max {
		return max
	}
	return value
}

// NearZero reports whether value is zero within floating point tolerance.
func NearZero(value float64) bool {
	return value > -floatingPointTolerance && value < floatingPointTolerance
}
