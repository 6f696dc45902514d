package ellipse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yaed/internal/edgemap"
	"yaed/pkg/geometry"
)

func detect(t *testing.T, em EdgeMap, cfg Config) ([]Ellipse, Diagnostics) {
	t.Helper()
	det := NewDetector(cfg)
	det.SetEdgeMap(em)
	ellipses, diag, err := det.Detect()
	require.NoError(t, err)
	return ellipses, diag
}

func TestDetect_NoEdgeMapIsConfigError(t *testing.T) {
	det := NewDetector(DefaultConfig())
	_, _, err := det.Detect()
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

// (a) axis-aligned ellipse.
func TestDetect_AxisAlignedEllipse(t *testing.T) {
	contour := geometry.GenerateEllipsePoints(200, 200, 100, 50, 0, 1500)
	em := edgemap.FromContour(400, 400, contour)

	ellipses, _ := detect(t, em, DefaultConfig())
	require.NotEmpty(t, ellipses)

	best := bestMatch(ellipses, 200, 200)
	assert.InDelta(t, 200, best.Center.X, 6)
	assert.InDelta(t, 200, best.Center.Y, 6)
	assert.InDelta(t, 100, best.AAxis, 8)
	assert.InDelta(t, 50, best.BAxis, 8)
}

// (b) rotated ellipse.
func TestDetect_RotatedEllipse(t *testing.T) {
	contour := geometry.GenerateEllipsePoints(200, 200, 100, 50, 0.785398, 1500)
	em := edgemap.FromContour(400, 400, contour)

	ellipses, _ := detect(t, em, DefaultConfig())
	require.NotEmpty(t, ellipses)

	best := bestMatch(ellipses, 200, 200)
	assert.InDelta(t, 0.785398, best.Rho, 0.1)
}

// (c) two non-overlapping ellipses cluster to two survivors.
func TestDetect_TwoSeparateEllipses(t *testing.T) {
	em := edgemap.NewArrayEdgeMap(600, 300)
	mergeContour(em, geometry.GenerateEllipsePoints(120, 150, 80, 40, 0, 1200))
	mergeContour(em, geometry.GenerateEllipsePoints(450, 150, 80, 40, 0, 1200))

	ellipses, _ := detect(t, em, DefaultConfig())
	assert.Len(t, ellipses, 2)
}

// (d) straight line only: empty result, straight-line counter fires.
func TestDetect_StraightLineOnlyYieldsNothing(t *testing.T) {
	em := edgemap.NewArrayEdgeMap(100, 100)
	for i := 10; i < 90; i++ {
		em.SetEdge(i, i, 1, -1) // oriented onto the diagonal the straightness test checks
	}

	ellipses, diag := detect(t, em, DefaultConfig())
	assert.Empty(t, ellipses)
	assert.GreaterOrEqual(t, diag.StraightLineCount, 1)
}

// (e) circle: nearly-equal semi-axes.
func TestDetect_Circle(t *testing.T) {
	contour := geometry.GenerateCirclePoints(150, 150, 75, 1500)
	em := edgemap.FromContour(300, 300, contour)

	ellipses, _ := detect(t, em, DefaultConfig())
	require.NotEmpty(t, ellipses)

	best := bestMatch(ellipses, 150, 150)
	assert.InDelta(t, best.AAxis, best.BAxis, 4)
}

// (f) degenerate: no gradient anywhere.
func TestDetect_ZeroGradientEdgesYieldNothing(t *testing.T) {
	em := edgemap.NewArrayEdgeMap(100, 100)
	for i := 10; i < 90; i++ {
		em.SetEdge(i, 50, 0, 0) // edge pixels with no gradient
	}

	ellipses, diag := detect(t, em, DefaultConfig())
	assert.Empty(t, ellipses)
	assert.Equal(t, 0, diag.TotalLineSegmentCount)
}

func TestDetect_IdempotentAcrossRuns(t *testing.T) {
	contour := geometry.GenerateEllipsePoints(200, 200, 100, 50, 0, 1500)
	em := edgemap.FromContour(400, 400, contour)
	cfg := DefaultConfig()

	first, diag1 := detect(t, em, cfg)
	second, diag2 := detect(t, em, cfg)

	assert.Equal(t, diag1, diag2)
	assert.Equal(t, first, second)
}

func TestDetect_TranslationInvarianceOfCenter(t *testing.T) {
	const dx, dy = 30.0, -15.0
	base := geometry.GenerateEllipsePoints(200, 200, 100, 50, 0, 1500)
	shifted := make([]geometry.Point2D, len(base))
	for i, p := range base {
		shifted[i] = geometry.Point2D{X: p.X + dx, Y: p.Y + dy}
	}

	emBase := edgemap.FromContour(400, 400, base)
	emShifted := edgemap.FromContour(500, 500, shifted)

	cfg := DefaultConfig()
	baseEllipses, _ := detect(t, emBase, cfg)
	shiftedEllipses, _ := detect(t, emShifted, cfg)
	require.NotEmpty(t, baseEllipses)
	require.NotEmpty(t, shiftedEllipses)

	baseBest := bestMatch(baseEllipses, 200, 200)
	shiftedBest := bestMatch(shiftedEllipses, 200+dx, 200+dy)

	assert.InDelta(t, baseBest.Center.X+dx, shiftedBest.Center.X, 6)
	assert.InDelta(t, baseBest.Center.Y+dy, shiftedBest.Center.Y, 6)
}

func mergeContour(em *edgemap.ArrayEdgeMap, contour []geometry.Point2D) {
	sub := edgemap.FromContour(em.Width(), em.Height(), contour)
	for y := 0; y < em.Height(); y++ {
		for x := 0; x < em.Width(); x++ {
			if sub.IsEdge(x, y) {
				gx, gy := sub.Gradient(x, y)
				em.SetEdge(x, y, gx, gy)
			}
		}
	}
}

func bestMatch(ellipses []Ellipse, nearX, nearY float64) Ellipse {
	best := ellipses[0]
	bestDist := (best.Center.X-nearX)*(best.Center.X-nearX) + (best.Center.Y-nearY)*(best.Center.Y-nearY)
	for _, e := range ellipses[1:] {
		d := (e.Center.X-nearX)*(e.Center.X-nearX) + (e.Center.Y-nearY)*(e.Center.Y-nearY)
		if d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}
