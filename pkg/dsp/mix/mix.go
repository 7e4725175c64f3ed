// Package mix provides dry/wet blending shared by the effect stages.
package mix

// DryWet performs a dry/wet mix between two signals.
// amount parameter: 0.0 = 100% dry, 1.0 = 100% wet.
func DryWet(dry, wet, amount float64) float64 {
	return dry*(1.0-amount) + wet*amount
}

// Complement returns the dry share left over by a set of wet levels.
// Once the levels reach unity nothing is left.
func Complement(levelSum float64) float64 {
	if levelSum < 1 {
		return 1 - levelSum
	}
	return 0
}
