package ellipse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian_Odd(t *testing.T) {
	vals := []float64{5, 1, 3}
	assert.Equal(t, 3.0, median(vals))
}

func TestMedian_Even(t *testing.T) {
	vals := []float64{4, 1, 3, 2}
	assert.Equal(t, 2.5, median(vals))
}

func TestMedian_Single(t *testing.T) {
	assert.Equal(t, 7.0, median([]float64{7}))
}

func TestMedian_Empty(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
}

func TestQuickselect_MatchesSortedOrder(t *testing.T) {
	vals := []float64{9, 2, 7, 4, 1, 8, 3}
	for k := 0; k < len(vals); k++ {
		cp := append([]float64(nil), vals...)
		got := quickselect(cp, 0, len(cp)-1, k)
		assert.Equal(t, sortedNth(vals, k), got, "k=%d", k)
	}
}

func sortedNth(vals []float64, k int) float64 {
	sorted := append([]float64(nil), vals...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	return sorted[k]
}
