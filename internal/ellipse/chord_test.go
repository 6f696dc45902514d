package ellipse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yaed/pkg/geometry"
)

func TestClampDenominator_LeavesLargeValuesUnchanged(t *testing.T) {
	assert.Equal(t, 2.0, clampDenominator(2.0))
	assert.Equal(t, -2.0, clampDenominator(-2.0))
}

func TestClampDenominator_ClampsNearZeroPreservingSign(t *testing.T) {
	assert.Equal(t, chordEpsilon, clampDenominator(0))
	assert.Equal(t, -chordEpsilon, clampDenominator(-1e-9))
	assert.Equal(t, chordEpsilon, clampDenominator(1e-9))
}

func TestEstimateCenter_IntersectsTwoKnownLines(t *testing.T) {
	// Line 1: y = x (through origin), line 2: y = -x + 20 (through (0,20)).
	// They cross at (10, 10).
	chord1 := &parallelChords{medianSlope: 1, medianCentroid: geometry.Point2D{X: 0, Y: 0}}
	chord2 := &parallelChords{medianSlope: -1, medianCentroid: geometry.Point2D{X: 0, Y: 20}}

	center, ok := estimateCenter(chord1, chord2)
	assert.True(t, ok)
	assert.InDelta(t, 10, center.X, 1e-9)
	assert.InDelta(t, 10, center.Y, 1e-9)
}

func TestEstimateCenter_ParallelLinesAreDegenerate(t *testing.T) {
	chord1 := &parallelChords{medianSlope: 1, medianCentroid: geometry.Point2D{X: 0, Y: 0}}
	chord2 := &parallelChords{medianSlope: 1, medianCentroid: geometry.Point2D{X: 5, Y: 5}}

	_, ok := estimateCenter(chord1, chord2)
	assert.False(t, ok)
}

func TestArcReferenceEndpoint_FlipsByQuadrantAndDirection(t *testing.T) {
	arc := &Arc{
		Quadrant: Q1,
		Points:   []geometry.PointInt{{X: 0, Y: 0}, {X: 5, Y: 5}},
	}
	assert.Equal(t, geometry.PointInt{X: 0, Y: 0}, arcReferenceEndpoint(arc, true))
	assert.Equal(t, geometry.PointInt{X: 5, Y: 5}, arcReferenceEndpoint(arc, false))

	arc.Quadrant = Q3
	assert.Equal(t, geometry.PointInt{X: 5, Y: 5}, arcReferenceEndpoint(arc, true))
	assert.Equal(t, geometry.PointInt{X: 0, Y: 0}, arcReferenceEndpoint(arc, false))
}

func TestSetMedianSlopeAndCentroid_ComputesMedianOfPerpendicularSlopes(t *testing.T) {
	pc := &parallelChords{
		midpoints: []geometry.Point2D{
			{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 4, Y: 4}, {X: 6, Y: 8},
		},
	}
	setMedianSlopeAndCentroid(pc)
	assert.Len(t, pc.perpSlopes, 2)
	// Pairs (0,0)-(4,4) and (2,2)-(6,8) give slopes 1 and 1.5.
	assert.Equal(t, 1.25, pc.medianSlope)
	assert.Equal(t, 3.0, pc.medianCentroid.X)
	assert.Equal(t, 3.0, pc.medianCentroid.Y)
}
