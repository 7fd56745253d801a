package magnitude

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwgrade/homework/testutil"
)

func TestSortByMagnitude(t *testing.T) {
	for size := 0; size < 1000; size += 100 {
		t.Run(fmt.Sprintf("size=%d", size), func(t *testing.T) {
			v := testutil.Float64s(testutil.Rand(t), size, -1000, 1000)
			want := append([]float64(nil), v...)

			got := Sort(v)
			require.Equal(t, v, got)

			require.Len(t, v, size)
			assert.ElementsMatch(t, want, v)
			for i := 1; i < len(v); i++ {
				require.LessOrEqual(t, math.Abs(v[i-1]), math.Abs(v[i]), "index %d", i)
			}
		})
	}
}

func TestSortByMagnitudeStable(t *testing.T) {
	v := []float64{3, -1, 2, 1, -2, -3, 0}
	Sort(v)
	assert.Equal(t, []float64{0, -1, 1, 2, -2, 3, -3}, v)
}
