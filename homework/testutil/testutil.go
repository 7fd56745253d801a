// Package testutil holds the helpers shared by the graded homework tests.
package testutil

import (
	"hash/fnv"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Rand returns a random generator seeded from the name of the test,
// so that a failing test sees the same values when it is run again.
func Rand(t testing.TB) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.Name()))
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Float64s returns n random values in [min, max).
func Float64s(r *rand.Rand, n int, min, max float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = min + r.Float64()*(max-min)
	}
	return v
}

// Ints returns n random values in [min, max).
func Ints(r *rand.Rand, n int, min, max int) []int {
	v := make([]int, n)
	for i := range v {
		if max > min {
			v[i] = min + r.IntN(max-min)
		} else {
			v[i] = min
		}
	}
	return v
}

// Float64Matrix returns a rows x cols matrix of random values in [min, max).
func Float64Matrix(r *rand.Rand, rows, cols int, min, max float64) [][]float64 {
	x := make([][]float64, rows)
	for i := range x {
		x[i] = Float64s(r, cols, min, max)
	}
	return x
}

// IntMatrix returns a rows x cols matrix of random values in [min, max).
func IntMatrix(r *rand.Rand, rows, cols int, min, max int) [][]int {
	x := make([][]int, rows)
	for i := range x {
		x[i] = Ints(r, cols, min, max)
	}
	return x
}

// FormatRows formats the values with six decimals.
func FormatRows(x [][]float64) [][]string {
	s := make([][]string, len(x))
	for i, row := range x {
		s[i] = make([]string, len(row))
		for j, v := range row {
			s[i][j] = strconv.FormatFloat(v, 'f', 6, 64)
		}
	}
	return s
}

// SaveCSV writes the rows as a CSV file into a temporary directory of the test
// and returns its path. Fields are written as they are.
func SaveCSV(t testing.TB, rows [][]string) string {
	b := strings.Builder{}
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	path := filepath.Join(t.TempDir(), "tmp.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}
