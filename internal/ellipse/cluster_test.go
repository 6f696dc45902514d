package ellipse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yaed/pkg/geometry"
)

func hyp(cx, cy, rho, a, b, finalScore float64) *hypothesis {
	return &hypothesis{
		center:     geometry.Point2D{X: cx, Y: cy},
		rho:        rho,
		a:          a,
		b:          b,
		finalScore: finalScore,
	}
}

func TestCluster_DropsNearDuplicate(t *testing.T) {
	best := hyp(100, 100, 0.1, 80, 40, 0.9)
	dup := hyp(101, 100, 0.1, 81, 41, 0.5) // within every predicate's tolerance of best

	out := cluster([]*hypothesis{dup, best})
	assert.Len(t, out, 1)
	assert.Equal(t, 0.9, out[0].EllipseScore, "the higher-scored hypothesis must be the survivor")
}

func TestCluster_KeepsFarApartEllipses(t *testing.T) {
	a := hyp(50, 50, 0.1, 40, 20, 0.9)
	b := hyp(300, 300, 1.2, 40, 20, 0.8)

	out := cluster([]*hypothesis{a, b})
	assert.Len(t, out, 2)
}

func TestCluster_NormalizesRhoIntoZeroPi(t *testing.T) {
	a := hyp(10, 10, -0.2, 30, 15, 0.9)
	out := cluster([]*hypothesis{a})
	assert.GreaterOrEqual(t, out[0].Rho, 0.0)
	assert.Less(t, out[0].Rho, 3.14159265358979*1.0+1e-9)
}

func TestDiffers_SameEllipseIsNotDifferent(t *testing.T) {
	a := hyp(10, 10, 0.5, 30, 15, 0.9)
	b := hyp(10, 10, 0.5, 30, 15, 0.1)
	assert.False(t, differs(a, b))
}
