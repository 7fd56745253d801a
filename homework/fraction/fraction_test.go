package fraction

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// expectedReduce reduces by searching the greatest common factor.
func expectedReduce(f Fraction) Fraction {
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
	sign := 1
	if f.Den < 0 {
		sign = -1
	}
	gcf := 1
	for i := 1; i <= abs(f.Num) && i <= abs(f.Den); i++ {
		if f.Num%i == 0 && f.Den%i == 0 {
			gcf = i
		}
	}
	return Fraction{sign * f.Num / gcf, sign * f.Den / gcf}
}

func TestFractionReduce(t *testing.T) {
	for num := -10; num < 10; num++ {
		for den := -1000; den < 1000; den += 100 {
			f := Fraction{num, den}
			t.Run(fmt.Sprintf("num=%d,den=%d", num, den), func(t *testing.T) {
				require.Equal(t, expectedReduce(f), Reduce(f), "reduce %v", f)
			})
		}
	}
}

func TestFractionReduceSpecialCases(t *testing.T) {
	tests := []struct {
		in, want Fraction
	}{
		{Fraction{0, 0}, Fraction{0, 0}},
		{Fraction{7, 7}, Fraction{1, 1}},
		{Fraction{-7, -7}, Fraction{1, 1}},
		{Fraction{0, -5}, Fraction{0, 1}},
		{Fraction{-3, 0}, Fraction{1, 0}},
		{Fraction{6, -4}, Fraction{-3, 2}},
		{Fraction{-6, -4}, Fraction{3, 2}},
		{Fraction{-6, 4}, Fraction{-3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			require.Equal(t, tt.want, Reduce(tt.in))
		})
	}
}
