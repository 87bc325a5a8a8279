package number

import (
	"math"
	"strconv"
)

// Epsilon used by every distance/velocity comparison in the simulation.
var Epsilon float64 = 0.000001

func IsZero(f float64) bool {
	return math.Abs(f) < Epsilon
}

func EqualsWithEpsilon(a float64, b float64, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func Clamp(f float64, min float64, max float64) float64 {
	if f < min {
		return min
	}

	if f > max {
		return max
	}

	return f
}

func Clamp01(f float64) float64 {
	return Clamp(f, 0, 1)
}

func DegreeToRadian(degree float64) float64 {
	return degree * math.Pi / 180.0
}

func RadianToDegree(radian float64) float64 {
	return radian * 180.0 / math.Pi
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func FloatToStr(f float64, places int) string {
	return strconv.FormatFloat(f, 'f', places, 64)
}
