// Package ellipse implements the ellipse-hypothesis detection pipeline:
// arc segmentation, convexity classification, triplet finding, chord-based
// center estimation, accumulator-voted parameter estimation, validation and
// clustering. It consumes a pre-computed edge map (see EdgeMap) and never
// touches raw pixels or image codecs itself — that is the caller's job
// (see internal/edgemap and internal/raster).
package ellipse

import "yaed/pkg/geometry"

// Quadrant classifies an arc by which quarter of an ellipse it could trace,
// derived from (gradient sign × convexity sign). Screen convention: y grows
// down, quadrants are labeled counter-clockwise Q1..Q4.
type Quadrant int

const (
	Q1 Quadrant = iota
	Q2
	Q3
	Q4
)

func (q Quadrant) String() string {
	switch q {
	case Q1:
		return "Q1"
	case Q2:
		return "Q2"
	case Q3:
		return "Q3"
	case Q4:
		return "Q4"
	default:
		return "Qunknown"
	}
}

// next returns the quadrant that follows q in the counter-clockwise cycle
// Q1->Q2->Q3->Q4->Q1.
func (q Quadrant) next() Quadrant {
	return (q + 1) % 4
}

// gradientSign is the oriented sign of sign(gx)*sign(gy), inverted because
// y grows downward on screen. Computed once via orientedGradientSign and
// reused everywhere a gradient-sign comparison is needed, per the spec's
// design note against losing the inversion in re-implementation.
type gradientSign int

const (
	gradNegative gradientSign = -1
	gradPositive gradientSign = 1
)

// convexitySign is the sign of an arc's convexity: positive means the arc
// bulges up inside its bounding box (areaUnder > areaOver), negative means
// it bulges down.
type convexitySign int

const (
	convexNegative convexitySign = -1
	convexPositive convexitySign = 1
)

// quadrantOf combines gradient and convexity sign into a quadrant label.
func quadrantOf(g gradientSign, c convexitySign) Quadrant {
	switch {
	case g == gradPositive && c == convexPositive:
		return Q1
	case g == gradNegative && c == convexPositive:
		return Q2
	case g == gradPositive && c == convexNegative:
		return Q3
	default: // gradNegative, convexNegative
		return Q4
	}
}

// Arc is a maximal 8-connected run of edge pixels sharing gradient sign,
// curved (not straight), and long enough to be useful. Arcs are created by
// segment, classified by classifyConvexity, and are immutable afterward.
type Arc struct {
	Points   []geometry.PointInt // sorted by (x asc, y asc on tie)
	BBox     geometry.RectInt
	Quadrant Quadrant
	Gradient gradientSign
}

// Mid returns arc's midpoint by index (len/2), matching the "middle1"
// reference used throughout chord estimation.
func (a *Arc) Mid() geometry.PointInt {
	return a.Points[len(a.Points)/2]
}

// parallelChords is a family of chords joining two adjacent arcs, used as a
// Theil-Sen estimator of the line through the ellipse center.
type parallelChords struct {
	referenceSlope   float64
	midpoints        []geometry.Point2D
	slopes           []float64
	perpSlopes       []float64 // slopes of chords between midpoint pairs
	medianCentroid   geometry.Point2D
	medianSlope      float64
}

// hypothesis is an in-progress ellipse candidate: three quadrant-distinct
// arcs plus the interim centers, chord families, and final parameters
// filled in by each pipeline stage. It is package-private — callers only
// ever see the finished Ellipse record.
type hypothesis struct {
	arc1, arc2, arc3 *Arc // inner, middle, outer, in CCW quadrant order

	center32 geometry.Point2D // from (arc3, arc2) chord pair
	center21 geometry.Point2D // from (arc2, arc1) chord pair

	chord3start2mid *parallelChords
	chord3mid2end   *parallelChords
	chord2start1mid *parallelChords
	chord2mid1end   *parallelChords

	center geometry.Point2D
	rho    float64 // radians, [0, pi)
	a, b   float64 // semi-major, semi-minor

	score       float64 // on-contour fraction
	reliability float64
	finalScore  float64
}

// totalArcPoints returns the combined point count of the hypothesis's three
// source arcs, used both for scoring and for testable property #5.
func (h *hypothesis) totalArcPoints() int {
	return len(h.arc1.Points) + len(h.arc2.Points) + len(h.arc3.Points)
}

// Ellipse is a validated, deduplicated detection result.
type Ellipse struct {
	Center       geometry.Point2D `json:"center"`
	Rho          float64          `json:"rho"`           // radians, [0, pi)
	AAxis        float64          `json:"a_axis"`        // semi-major axis
	BAxis        float64          `json:"b_axis"`         // semi-minor axis
	EllipseScore float64          `json:"ellipse_score"` // [0, 1]
}

// Diagnostics reports pipeline counters, always available even when detect
// returns no ellipses — the tuning knobs spec.md §6 calls out.
type Diagnostics struct {
	TotalLineSegmentCount int
	ShortLineCount        int
	StraightLineCount     int
}
