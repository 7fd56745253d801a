// Package fraction reduces integer fractions.
package fraction

import "strconv"

// Fraction is num/den.
type Fraction struct {
	Num int
	Den int
}

func (f Fraction) String() string {
	return strconv.Itoa(f.Num) + "/" + strconv.Itoa(f.Den)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Reduce returns the fraction in lowest terms with the sign on the numerator.
//
// 0/0 stays 0/0, n/n is 1/1, 0/d is 0/1 and n/0 is 1/0.
func Reduce(f Fraction) Fraction {
	switch {
	case f.Num == 0 && f.Den == 0:
		return Fraction{0, 0}
	case f.Num == f.Den:
		return Fraction{1, 1}
	case f.Num == 0:
		return Fraction{0, 1}
	case f.Den == 0:
		return Fraction{1, 0}
	}
	g := gcd(abs(f.Num), abs(f.Den))
	if f.Den < 0 {
		g = -g
	}
	return Fraction{f.Num / g, f.Den / g}
}
