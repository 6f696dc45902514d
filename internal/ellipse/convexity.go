package ellipse

// classifyConvexity labels arc's convexity sign by comparing the area above
// and below the curve inside its bounding box, per spec.md §4.2, then
// combines it with the arc's gradient sign to set arc.Quadrant. It returns
// false if the arc has equal area on both sides and must be dropped.
func classifyConvexity(arc *Arc) bool {
	bbox := arc.BBox
	top := bbox.Top
	bboxArea := bbox.Area()
	pointCount := len(arc.Points)

	// Points are sorted (x asc, y asc), so the first point seen for each
	// distinct x is the column's topmost (smallest-y) representative.
	var areaOver int
	lastX := arc.Points[0].X - 1
	for _, p := range arc.Points {
		if p.X == lastX {
			continue
		}
		lastX = p.X
		areaOver += p.Y - top
	}

	areaUnder := bboxArea - pointCount - areaOver

	switch {
	case areaUnder > areaOver:
		arc.Quadrant = quadrantOf(arc.Gradient, convexPositive)
		return true
	case areaUnder < areaOver:
		arc.Quadrant = quadrantOf(arc.Gradient, convexNegative)
		return true
	default:
		return false
	}
}

// classifyArcs filters arcs through classifyConvexity in place, returning
// only the survivors.
func classifyArcs(arcs []*Arc) []*Arc {
	kept := arcs[:0]
	for _, a := range arcs {
		if classifyConvexity(a) {
			kept = append(kept, a)
		}
	}
	return kept
}
