package ellipse

import (
	"math"

	"yaed/pkg/geometry"
)

// validate scores h by on-contour fraction and angular reliability per
// spec.md §4.6, filling h.score, h.reliability and h.finalScore. Returns
// false if either cutoff rejects the hypothesis.
func validate(h *hypothesis, cfg Config) bool {
	total := h.totalArcPoints()
	if total == 0 {
		return false
	}

	onContour := countOnContour(h.arc1, h.center, h.rho, h.a, h.b, cfg.DistanceToEllipseContour) +
		countOnContour(h.arc2, h.center, h.rho, h.a, h.b, cfg.DistanceToEllipseContour) +
		countOnContour(h.arc3, h.center, h.rho, h.a, h.b, cfg.DistanceToEllipseContour)

	h.score = float64(onContour) / float64(total)
	if h.score <= cfg.DistanceToEllipseContourScoreCutoff {
		return false
	}

	h.reliability = calculateReliability(h)
	if h.reliability <= cfg.ReliabilityCutoff {
		return false
	}

	h.finalScore = (h.score + h.reliability) / 2
	return true
}

// countOnContour counts arc's points P satisfying |h-1| < tol where
// h = rx²/a² + ry²/b², using the minus-sign ry formula. This is the
// "calculatePointsOnEllipse" rotation direction; spec.md §9 documents that
// calculateReliability uses the opposite sign and instructs against
// reconciling the two.
func countOnContour(arc *Arc, center geometry.Point2D, rho, a, b, tol float64) int {
	if a == 0 || b == 0 {
		return 0
	}
	cosR, sinR := math.Cos(rho), math.Sin(rho)
	a2, b2 := a*a, b*b

	count := 0
	for _, p := range arc.Points {
		dx := float64(p.X) - center.X
		dy := float64(p.Y) - center.Y
		rx := dx*cosR - dy*sinR
		ry := dx*sinR - dy*cosR
		hVal := rx*rx/a2 + ry*ry/b2
		if math.Abs(hVal-1) < tol {
			count++
		}
	}
	return count
}

// calculateReliability computes the angular-coverage proxy from spec.md
// §4.6: for each arc's first/last point relative to center, rotated by ρ
// using the plus-sign r1y formula, accumulate |Δr1x|+|Δr1y|, normalize by
// 3·(a+b), clamp to 1.
func calculateReliability(h *hypothesis) float64 {
	cosR, sinR := math.Cos(h.rho), math.Sin(h.rho)

	var total float64
	for _, arc := range [3]*Arc{h.arc1, h.arc2, h.arc3} {
		first := arc.Points[0]
		last := arc.Points[len(arc.Points)-1]

		r1x, r1y := rotatedOffset(first, h.center, cosR, sinR)
		r2x, r2y := rotatedOffset(last, h.center, cosR, sinR)

		total += math.Abs(r2x-r1x) + math.Abs(r2y-r1y)
	}

	norm := 3 * (h.a + h.b)
	if norm == 0 {
		return 0
	}
	reliability := total / norm
	if reliability > 1 {
		reliability = 1
	}
	return reliability
}

// rotatedOffset rotates (p - center) by ρ using the r1y = x·sin + y·cos
// convention spec.md §9 preserves verbatim for calculateReliability.
func rotatedOffset(p geometry.PointInt, center geometry.Point2D, cosR, sinR float64) (float64, float64) {
	dx := float64(p.X) - center.X
	dy := float64(p.Y) - center.Y
	rx := dx*cosR - dy*sinR
	ry := dx*sinR + dy*cosR
	return rx, ry
}
