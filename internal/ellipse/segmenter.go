package ellipse

import (
	"math"

	"yaed/pkg/geometry"
)

// orientedGradientSign computes sign(gx)*sign(gy) inverted by -1, because y
// grows downward on screen. spec.md's design notes flag this inversion as
// easy to lose in re-implementation; every gradient-sign comparison in this
// package goes through this one helper.
func orientedGradientSign(gx, gy float32) gradientSign {
	raw := 1
	if gx < 0 {
		raw = -raw
	}
	if gy < 0 {
		raw = -raw
	}
	if raw > 0 {
		return gradNegative
	}
	return gradPositive
}

// unionFind is a small disjoint-set structure over label IDs 1..n,
// allocated lazily as the segmenter discovers new components.
type unionFind struct {
	parent []int // 1-indexed; parent[0] unused
}

func (u *unionFind) newLabel() int {
	u.parent = append(u.parent, 0)
	label := len(u.parent) - 1
	u.parent[label] = label
	return label
}

func (u *unionFind) find(label int) int {
	for u.parent[label] != label {
		u.parent[label] = u.parent[u.parent[label]] // path halving
		label = u.parent[label]
	}
	return label
}

func (u *unionFind) union(a, b int) int {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return ra
	}
	root := ra
	if rb < ra {
		root = rb
	}
	u.parent[ra] = root
	u.parent[rb] = root
	return root
}

// segment runs single-pass connected-components labeling over em's edge
// pixels, grouped by oriented gradient sign, then filters and sorts each
// candidate arc per spec.md §4.1. It returns the positive- and
// negative-gradient arc pools plus segmentation diagnostics.
func segment(em EdgeMap, cfg Config) (positive, negative []*Arc, diag Diagnostics) {
	w, h := em.Width(), em.Height()
	if w < 3 || h < 3 {
		return nil, nil, Diagnostics{}
	}

	labels := make([]int, w*h) // 0 == unlabeled
	idx := func(x, y int) int { return y*w + x }

	uf := &unionFind{parent: []int{0}} // index 0 reserved, unused

	// gOf records the gradient sign each root label represents, so a
	// neighbor with a different sign is never unioned in.
	gOf := make(map[int]gradientSign)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if !em.IsEdge(x, y) {
				continue
			}
			gx, gy := em.Gradient(x, y)
			if gx == 0 || gy == 0 {
				continue
			}
			g := orientedGradientSign(gx, gy)

			var neighborLabels []int
			for _, d := range [4][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}} { // NW, N, NE, W
				nx, ny := x+d[0], y+d[1]
				nl := labels[idx(nx, ny)]
				if nl == 0 {
					continue
				}
				if gOf[uf.find(nl)] == g {
					neighborLabels = append(neighborLabels, nl)
				}
			}

			var label int
			if len(neighborLabels) == 0 {
				label = uf.newLabel()
				gOf[label] = g
			} else {
				label = neighborLabels[0]
				for _, nl := range neighborLabels[1:] {
					label = uf.union(label, nl)
				}
				label = uf.find(label)
				gOf[label] = g
			}
			labels[idx(x, y)] = label
		}
	}

	// Path-compress everything and bucket points by root label. Component
	// order is the row-major order each root is first encountered in, not
	// map iteration order, so segmentation is deterministic run to run
	// (testable property #6).
	byRoot := make(map[int][]geometry.PointInt)
	var rootOrder []int
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			l := labels[idx(x, y)]
			if l == 0 {
				continue
			}
			root := uf.find(l)
			if _, seen := byRoot[root]; !seen {
				rootOrder = append(rootOrder, root)
			}
			byRoot[root] = append(byRoot[root], geometry.PointInt{X: x, Y: y})
		}
	}

	diag.TotalLineSegmentCount = len(rootOrder)

	for _, root := range rootOrder {
		arc, reason := buildArc(byRoot[root], gOf[root], cfg)
		switch reason {
		case arcTooShort:
			diag.ShortLineCount++
		case arcStraight:
			diag.StraightLineCount++
		case arcOK:
			if arc.Gradient == gradPositive {
				positive = append(positive, arc)
			} else {
				negative = append(negative, arc)
			}
		}
	}

	return positive, negative, diag
}

type arcFilterReason int

const (
	arcOK arcFilterReason = iota
	arcTooShort
	arcStraight
)

// buildArc applies the §4.1 post-filter to a raw connected component:
// minimum point count, then the straightness test, then sorts points by
// (x asc, y asc) as required by convexity classification and chord
// indexing.
func buildArc(pts []geometry.PointInt, g gradientSign, cfg Config) (*Arc, arcFilterReason) {
	if len(pts) < cfg.MinArcPixelCount {
		return nil, arcTooShort
	}

	sortPoints(pts)
	bbox := boundingBox(pts)

	if isStraight(pts, bbox, g, cfg) {
		return nil, arcStraight
	}

	return &Arc{Points: pts, BBox: bbox, Gradient: g}, arcOK
}

// sortPoints sorts in place by x ascending, y ascending on tie.
func sortPoints(pts []geometry.PointInt) {
	// Insertion sort, allocation-free. Points arrive in row-major (y-major)
	// scan order, so the cost depends on the arc's direction: close to
	// linear when x grows with y, quadratic in the point count when x
	// shrinks as y grows.
	for i := 1; i < len(pts); i++ {
		p := pts[i]
		j := i - 1
		for j >= 0 && (pts[j].X > p.X || (pts[j].X == p.X && pts[j].Y > p.Y)) {
			pts[j+1] = pts[j]
			j--
		}
		pts[j+1] = p
	}
}

func boundingBox(pts []geometry.PointInt) geometry.RectInt {
	box := geometry.RectInt{Left: pts[0].X, Right: pts[0].X, Top: pts[0].Y, Bottom: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < box.Left {
			box.Left = p.X
		}
		if p.X > box.Right {
			box.Right = p.X
		}
		if p.Y < box.Top {
			box.Top = p.Y
		}
		if p.Y > box.Bottom {
			box.Bottom = p.Y
		}
	}
	return box
}

// isStraight implements the axis-aligned-diagonal straightness test from
// spec.md §4.1.
func isStraight(pts []geometry.PointInt, bbox geometry.RectInt, g gradientSign, cfg Config) bool {
	if bbox.Width() < cfg.MinBoundingBoxSize || bbox.Height() < cfg.MinBoundingBoxSize {
		return true
	}

	var d0, d1 geometry.PointInt
	if g == gradPositive {
		d0 = geometry.PointInt{X: bbox.Left, Y: bbox.Top}
		d1 = geometry.PointInt{X: bbox.Right, Y: bbox.Bottom}
	} else {
		d0 = geometry.PointInt{X: bbox.Left, Y: bbox.Bottom}
		d1 = geometry.PointInt{X: bbox.Right, Y: bbox.Top}
	}

	var testPoints []geometry.PointInt
	if cfg.CheckAllArcPointsForStraightLine {
		testPoints = pts
	} else {
		n := len(pts)
		testPoints = []geometry.PointInt{
			pts[n/4],
			pts[n/2],
			pts[(3*n)/4],
		}
	}

	for _, p := range testPoints {
		if perpendicularDistance(p, d0, d1)*2 > float64(cfg.MinBoundingBoxSize) {
			return false // curved
		}
	}
	return true
}

// perpendicularDistance returns the distance from p to the infinite line
// through d0-d1.
func perpendicularDistance(p, d0, d1 geometry.PointInt) float64 {
	dx := float64(d1.X - d0.X)
	dy := float64(d1.Y - d0.Y)
	length := dx*dx + dy*dy
	if length == 0 {
		px := float64(p.X - d0.X)
		py := float64(p.Y - d0.Y)
		return math.Sqrt(px*px + py*py)
	}
	cross := dx*float64(p.Y-d0.Y) - dy*float64(p.X-d0.X)
	if cross < 0 {
		cross = -cross
	}
	return cross / math.Sqrt(length)
}
