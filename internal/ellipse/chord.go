package ellipse

import (
	"math"

	"yaed/pkg/geometry"
)

const chordEpsilon = 1e-5

// clampDenominator keeps a near-zero slope denominator away from zero while
// preserving its sign, per spec.md §5's "dyRef=0 is clamped to 1e-5": in the
// standard y=m*x+c convention this package uses throughout (m=dy/dx, to
// match the closed-form center intersection in estimateCenter verbatim),
// the quantity that actually needs guarding is the run (dx), not the rise
// the spec's prose names — the spec's own intersection formula only holds
// together under the dy/dx convention, so that is what we clamp.
func clampDenominator(d float64) float64 {
	if math.Abs(d) >= chordEpsilon {
		return d
	}
	if d < 0 {
		return -chordEpsilon
	}
	return chordEpsilon
}

// arcReferenceEndpoint picks arc2's reference endpoint per spec.md §4.4's
// flip table: which end of the (x-ascending-sorted) point list corresponds
// to "start" depends on both quadrant and traversal direction.
func arcReferenceEndpoint(arc2 *Arc, startOfArc2 bool) geometry.PointInt {
	firstHalf := arc2.Quadrant == Q1 || arc2.Quadrant == Q2
	useFirst := firstHalf == startOfArc2
	if useFirst {
		return arc2.Points[0]
	}
	return arc2.Points[len(arc2.Points)-1]
}

// arc1HalfIndices returns the indices into arc1.Points that getParallelChords
// samples, in walk order, per spec.md §4.4.
func arc1HalfIndices(arc1 *Arc, startOfArc2 bool) []int {
	n := len(arc1.Points)
	halfSize := n / 2

	firstHalf := arc1.Quadrant == Q1 || arc1.Quadrant == Q2
	forward := firstHalf == startOfArc2

	base := 0
	if !forward {
		base = n - halfSize
	}

	indices := make([]int, 0, halfSize)
	if forward {
		for i := 0; i < halfSize; i++ {
			indices = append(indices, base+i)
		}
	} else {
		for i := 0; i < halfSize; i++ {
			indices = append(indices, base+halfSize-1-i)
		}
	}
	return indices
}

// sampleArc1Indices thins arc1HalfIndices down to numberOfParallelChords
// equispaced samples when the half is long enough, per spec.md §4.4.
func sampleArc1Indices(full []int, numberOfParallelChords int) []int {
	halfSize := len(full)
	if numberOfParallelChords >= halfSize || numberOfParallelChords <= 0 {
		return full
	}
	step := float64(halfSize) / float64(numberOfParallelChords)
	out := make([]int, 0, numberOfParallelChords)
	pos := step / 2
	for i := 0; i < numberOfParallelChords; i++ {
		idx := int(pos)
		if idx >= halfSize {
			idx = halfSize - 1
		}
		out = append(out, full[idx])
		pos += step
	}
	return out
}

// getParallelChords computes the chord family between arc1 and arc2 per
// spec.md §4.4. Returns nil if fewer than 2 valid chords are found
// (DegenerateGeometry, handled by skipping this pair).
func getParallelChords(arc2, arc1 *Arc, startOfArc2 bool, cfg Config) *parallelChords {
	refEnd := arcReferenceEndpoint(arc2, startOfArc2).ToFloat()
	middle1 := arc1.Mid().ToFloat()

	dxRef := clampDenominator(refEnd.X - middle1.X)
	dyRef := refEnd.Y - middle1.Y
	slopeRef := dyRef / dxRef

	full := arc1HalfIndices(arc1, startOfArc2)
	if len(full) == 0 {
		return nil
	}
	samples := sampleArc1Indices(full, cfg.NumberOfParallelChords)

	pc := &parallelChords{referenceSlope: slopeRef}

	for _, idx := range samples {
		p1 := arc1.Points[idx].ToFloat()
		mid, slope, ok := findParallelChord(p1, dxRef, dyRef, arc2)
		if !ok {
			continue
		}
		pc.midpoints = append(pc.midpoints, mid)
		pc.slopes = append(pc.slopes, slope)
	}

	if len(pc.midpoints) < 2 {
		return nil
	}

	setMedianSlopeAndCentroid(pc)
	return pc
}

// findParallelChord binary-searches arc2's point list for the point P2 such
// that (P2-P1) is parallel to the reference direction (dxRef, dyRef), per
// spec.md §4.4. Interpolates the exact intersection when the bracket
// narrows to two adjacent points rather than snapping.
func findParallelChord(p1 geometry.Point2D, dxRef, dyRef float64, arc2 *Arc) (mid geometry.Point2D, slope float64, ok bool) {
	sideOf := func(p2 geometry.Point2D) float64 {
		return (p2.X-p1.X)*dyRef - (p2.Y-p1.Y)*dxRef
	}

	lo, hi := 0, len(arc2.Points)-1
	sLo := sideOf(arc2.Points[lo].ToFloat())
	sHi := sideOf(arc2.Points[hi].ToFloat())
	if sLo == 0 {
		return midChord(p1, arc2.Points[lo].ToFloat())
	}
	if sHi == 0 {
		return midChord(p1, arc2.Points[hi].ToFloat())
	}
	if (sLo > 0) == (sHi > 0) {
		return geometry.Point2D{}, 0, false // no bracket, skip this sample
	}

	for hi-lo > 1 {
		mid := (lo + hi) / 2
		sMid := sideOf(arc2.Points[mid].ToFloat())
		if sMid == 0 {
			return midChord(p1, arc2.Points[mid].ToFloat())
		}
		if (sMid > 0) == (sLo > 0) {
			lo = mid
			sLo = sMid
		} else {
			hi = mid
			sHi = sMid
		}
	}

	// Interpolate the exact intersection of the reference line through p1
	// with the segment between arc2.Points[lo] and arc2.Points[hi].
	a := arc2.Points[lo].ToFloat()
	b := arc2.Points[hi].ToFloat()
	denom := sHi - sLo
	if denom == 0 {
		return midChord(p1, a)
	}
	t := -sLo / denom
	p2 := geometry.Point2D{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
	return midChord(p1, p2)
}

func midChord(p1, p2 geometry.Point2D) (geometry.Point2D, float64, bool) {
	mid := geometry.Point2D{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}
	dx := clampDenominator(p2.X - p1.X)
	slope := (p2.Y - p1.Y) / dx
	return mid, slope, true
}

// setMedianSlopeAndCentroid fills pc's Theil-Sen line estimate from its
// chord midpoints, per spec.md §4.4.
func setMedianSlopeAndCentroid(pc *parallelChords) {
	n := len(pc.midpoints)
	half := n / 2

	perp := make([]float64, 0, half)
	for i := 0; i < half; i++ {
		p1 := pc.midpoints[i]
		p2 := pc.midpoints[i+half]
		dx := clampDenominator(p2.X - p1.X)
		perp = append(perp, (p2.Y-p1.Y)/dx)
	}
	pc.perpSlopes = perp
	pc.medianSlope = median(append([]float64(nil), perp...))

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range pc.midpoints {
		xs[i] = p.X
		ys[i] = p.Y
	}
	pc.medianCentroid = geometry.Point2D{
		X: median(xs),
		Y: median(ys),
	}
}

// estimateCenter intersects two Theil-Sen lines (m, centroid) per spec.md
// §4.4's closed form. Returns ok=false if the lines are parallel
// (DegenerateGeometry).
func estimateCenter(chord1, chord2 *parallelChords) (geometry.Point2D, bool) {
	m1, m2 := chord1.medianSlope, chord2.medianSlope
	if m2 == m1 {
		return geometry.Point2D{}, false
	}
	x1, y1 := chord1.medianCentroid.X, chord1.medianCentroid.Y
	x2, y2 := chord2.medianCentroid.X, chord2.medianCentroid.Y

	cx := (y1 - m1*x1 - y2 + m2*x2) / (m2 - m1)
	cy := (m2*y1 - m1*y2 + m2*m1*(x2-x1)) / (m2 - m1)
	return geometry.Point2D{X: cx, Y: cy}, true
}

// getParallelChordsAndEstimateCenter computes the two chord families between
// arc2 (clockwise-next to arc1) and arc1, and the center their Theil-Sen
// lines imply, per spec.md §4.4.
func getParallelChordsAndEstimateCenter(arc2, arc1 *Arc, cfg Config) (chordA2toA1, chordA1toA2 *parallelChords, center geometry.Point2D, ok bool) {
	chordA2toA1 = getParallelChords(arc2, arc1, true, cfg)
	chordA1toA2 = getParallelChords(arc2, arc1, false, cfg)
	if chordA2toA1 == nil || chordA1toA2 == nil {
		return nil, nil, geometry.Point2D{}, false
	}
	center, ok = estimateCenter(chordA2toA1, chordA1toA2)
	return chordA2toA1, chordA1toA2, center, ok
}
