// Package complexnum implements arithmetic on complex numbers.
package complexnum

import "math"

// Complex is Real + Im*i.
type Complex struct {
	Real float64
	Im   float64
}

// Add returns a + b.
func Add(a, b Complex) Complex {
	return Complex{a.Real + b.Real, a.Im + b.Im}
}

// Negate returns -a.
func Negate(a Complex) Complex {
	return Complex{-a.Real, -a.Im}
}

// Multiply returns a * b.
func Multiply(a, b Complex) Complex {
	return Complex{
		Real: a.Real*b.Real - a.Im*b.Im,
		Im:   a.Real*b.Im + a.Im*b.Real,
	}
}

// Magnitude returns |a|.
func Magnitude(a Complex) float64 {
	return math.Hypot(a.Real, a.Im)
}
