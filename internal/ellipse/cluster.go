package ellipse

import (
	"math"
	"sort"
)

// cluster sorts hypotheses by finalScore descending and keeps each one only
// if it differs from every already-retained ellipse by at least one of the
// four predicates in spec.md §4.7; otherwise it is a lower-scored duplicate
// and is dropped.
func cluster(hyps []*hypothesis) []Ellipse {
	sorted := append([]*hypothesis(nil), hyps...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].finalScore > sorted[j].finalScore
	})

	var retained []*hypothesis
	for _, h := range sorted {
		if isDuplicate(h, retained) {
			continue
		}
		retained = append(retained, h)
	}

	out := make([]Ellipse, len(retained))
	for i, h := range retained {
		out[i] = Ellipse{
			Center:       h.center,
			Rho:          normalizeRho(h.rho),
			AAxis:        h.a,
			BAxis:        h.b,
			EllipseScore: h.finalScore,
		}
	}
	return out
}

func normalizeRho(rho float64) float64 {
	for rho < 0 {
		rho += math.Pi
	}
	for rho >= math.Pi {
		rho -= math.Pi
	}
	return rho
}

func isDuplicate(h *hypothesis, retained []*hypothesis) bool {
	for _, r := range retained {
		if !differs(h, r) {
			return true
		}
	}
	return false
}

// differs implements the four spec.md §4.7 predicates; h is treated as a
// duplicate of r only when ALL FOUR are false simultaneously.
func differs(h, r *hypothesis) bool {
	dx := h.center.X - r.center.X
	dy := h.center.Y - r.center.Y
	dist2 := dx*dx + dy*dy
	minB := math.Min(h.b, r.b)
	if dist2 > (0.1*minB)*(0.1*minB) {
		return true
	}

	maxA := math.Max(h.a, r.a)
	if maxA != 0 && math.Abs(h.a-r.a)/maxA > 1 {
		return true
	}

	maxB := math.Max(h.b, r.b)
	if maxB != 0 && math.Abs(h.b-r.b)/maxB > 1 {
		return true
	}

	rho1, rho2 := normalizeRho(h.rho), normalizeRho(r.rho)
	angDist := math.Abs(rho1 - rho2)
	if angDist > math.Pi/2 {
		angDist = math.Pi - angDist
	}
	elongated1 := h.a != 0 && h.b/h.a < 0.9
	elongated2 := r.a != 0 && r.b/r.a < 0.9
	if angDist/math.Pi > 0.1 && elongated1 && elongated2 {
		return true
	}

	return false
}
