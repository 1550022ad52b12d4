package pitch

import "math"

// hzToERB converts a frequency in Hz to the Equivalent Rectangular
// Bandwidth scale used to lay out the auditory frequency axis.
func hzToERB(hz float64) float64 {
	return 21.4 * math.Log10(1+hz/229)
}

// erbToHz is the inverse of hzToERB.
func erbToHz(erb float64) float64 {
	return (math.Pow(10, erb/21.4) - 1) * 229
}
