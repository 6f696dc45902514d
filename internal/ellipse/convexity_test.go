package ellipse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yaed/pkg/geometry"
)

// archArc builds an arc bulging upward (smaller y near the middle) inside a
// 0..9 x 0..10 bounding box, the shape a Q1/Q2 quarter-ellipse produces.
func archArc(grad gradientSign) *Arc {
	pts := []geometry.PointInt{
		{X: 0, Y: 10}, {X: 1, Y: 6}, {X: 2, Y: 3}, {X: 3, Y: 1},
		{X: 4, Y: 0}, {X: 5, Y: 0}, {X: 6, Y: 1}, {X: 7, Y: 3},
		{X: 8, Y: 6}, {X: 9, Y: 10},
	}
	return &Arc{Points: pts, BBox: boundingBox(pts), Gradient: grad}
}

func TestClassifyConvexity_BulgingUpIsPositiveConvexity(t *testing.T) {
	arc := archArc(gradPositive)
	ok := classifyConvexity(arc)
	assert.True(t, ok)
	assert.Equal(t, Q1, arc.Quadrant)
}

func TestClassifyConvexity_NegativeGradientBulgingUpIsQ2(t *testing.T) {
	arc := archArc(gradNegative)
	ok := classifyConvexity(arc)
	assert.True(t, ok)
	assert.Equal(t, Q2, arc.Quadrant)
}

func TestClassifyArcs_DropsDegenerateArcs(t *testing.T) {
	// A perfectly symmetric 2-point "arc" has equal area on both sides of
	// its own single-pixel-tall bounding box.
	flat := &Arc{
		Points:   []geometry.PointInt{{X: 0, Y: 0}, {X: 1, Y: 0}},
		BBox:     geometry.RectInt{Left: 0, Top: 0, Right: 1, Bottom: 0},
		Gradient: gradPositive,
	}
	kept := classifyArcs([]*Arc{flat, archArc(gradPositive)})
	assert.Len(t, kept, 1)
}
