// Package nutrition holds the goal, macro and progress arithmetic. Every
// function here is pure: callers pass in the profile, the log history and
// "today" explicitly, so the package is safe to call from any goroutine.
package nutrition

import "math"

const (
	kilogramsPerPound   = 0.453592
	centimetersPerInch  = 2.54
	caloriesPerPoundFat = 3500
)

func PoundsToKilograms(lb float64) float64 { return lb * kilogramsPerPound }

func KilogramsToPounds(kg float64) float64 { return kg / kilogramsPerPound }

func InchesToCentimeters(in float64) float64 { return in * centimetersPerInch }

func CentimetersToInches(cm float64) float64 { return cm / centimetersPerInch }

// round rounds half up (toward +Inf), so round(-2.5) == -2. math.Round rounds
// half away from zero, which disagrees on negative halves such as a surplus
// goal's target.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func roundInt(x float64) int {
	return int(round(x))
}
