package ellipse

import "yaed/pkg/geometry"

// mutualPositionOK applies the 1-pixel-tolerance bounding-box filter from
// spec.md §4.3 for one of the four cyclic quadrant orderings, identified by
// the inner arc's quadrant.
func mutualPositionOK(inner, middle, outer *Arc, tol int) bool {
	t := float64(tol)
	switch inner.Quadrant {
	case Q1: // (Q1,Q2,Q3)
		return float64(middle.BBox.Right) < float64(inner.BBox.Left)+t &&
			float64(outer.BBox.Top) > float64(middle.BBox.Bottom)-t
	case Q2: // (Q2,Q3,Q4)
		return float64(middle.BBox.Top) > float64(inner.BBox.Bottom)-t &&
			float64(outer.BBox.Left) > float64(middle.BBox.Right)-t
	case Q3: // (Q3,Q4,Q1)
		return float64(middle.BBox.Left) > float64(inner.BBox.Right)-t &&
			float64(outer.BBox.Bottom) < float64(middle.BBox.Top)+t
	default: // Q4: (Q4,Q1,Q2)
		return float64(middle.BBox.Bottom) < float64(inner.BBox.Top)+t &&
			float64(outer.BBox.Right) < float64(middle.BBox.Left)+t
	}
}

// findTriplets scans byQuadrant (arcs bucketed by their classified quadrant)
// for all four cyclic quadrant orderings and returns every triplet whose
// bounding boxes are mutually positioned correctly and whose two
// chord-estimated centers agree within centerDistancePercent of the image
// diagonal, per spec.md §4.3.
func findTriplets(byQuadrant [4][]*Arc, imageDiagonal float64, cfg Config) []*hypothesis {
	var hyps []*hypothesis
	maxCenterDist2 := (cfg.CenterDistancePercent * imageDiagonal) * (cfg.CenterDistancePercent * imageDiagonal)

	for i := Q1; i <= Q4; i++ {
		inner := i
		middle := i.next()
		outer := middle.next()

		for _, arcInner := range byQuadrant[inner] {
			for _, arcMiddle := range byQuadrant[middle] {
				for _, arcOuter := range byQuadrant[outer] {
					if !mutualPositionOK(arcInner, arcMiddle, arcOuter, cfg.MutualPositionBoundingBoxPixelTolerance) {
						continue
					}

					chord3start2mid, chord3mid2end, center32, ok32 := getParallelChordsAndEstimateCenter(arcOuter, arcMiddle, cfg)
					if !ok32 {
						continue
					}
					chord2start1mid, chord2mid1end, center21, ok21 := getParallelChordsAndEstimateCenter(arcMiddle, arcInner, cfg)
					if !ok21 {
						continue
					}

					if centerDistance2(center32, center21) >= maxCenterDist2 {
						continue
					}

					hyps = append(hyps, &hypothesis{
						arc1: arcInner, arc2: arcMiddle, arc3: arcOuter,
						center32: center32, center21: center21,
						chord3start2mid: chord3start2mid, chord3mid2end: chord3mid2end,
						chord2start1mid: chord2start1mid, chord2mid1end: chord2mid1end,
					})
				}
			}
		}
	}

	return hyps
}

func centerDistance2(a, b geometry.Point2D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
