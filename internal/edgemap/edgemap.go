// Package edgemap provides the EdgeMap producers spec.md §1 leaves out of
// the core ellipse pipeline: a dense in-memory implementation for test
// fixtures and synthetic scenarios, and a gocv-backed builder that runs
// Canny edge detection plus Sobel gradients over a decoded raster image.
package edgemap

import "yaed/pkg/geometry"

// ArrayEdgeMap is a dense, directly-constructible ellipse.EdgeMap: a binary
// edge mask plus per-pixel X/Y gradients, stored row-major. It satisfies
// ellipse.EdgeMap structurally without importing that package, so test code
// in internal/ellipse can depend on this package without a cycle.
type ArrayEdgeMap struct {
	width, height int
	edge          []bool
	gx, gy        []float32
}

// NewArrayEdgeMap allocates a blank width×height edge map.
func NewArrayEdgeMap(width, height int) *ArrayEdgeMap {
	n := width * height
	return &ArrayEdgeMap{
		width:  width,
		height: height,
		edge:   make([]bool, n),
		gx:     make([]float32, n),
		gy:     make([]float32, n),
	}
}

func (m *ArrayEdgeMap) Width() int  { return m.width }
func (m *ArrayEdgeMap) Height() int { return m.height }

func (m *ArrayEdgeMap) idx(x, y int) int { return y*m.width + x }

// IsEdge reports whether (x, y) is marked as an edge pixel.
func (m *ArrayEdgeMap) IsEdge(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.edge[m.idx(x, y)]
}

// Gradient returns the stored X/Y gradient at (x, y).
func (m *ArrayEdgeMap) Gradient(x, y int) (float32, float32) {
	i := m.idx(x, y)
	return m.gx[i], m.gy[i]
}

// SetEdge marks (x, y) as an edge pixel with the given gradient.
func (m *ArrayEdgeMap) SetEdge(x, y int, gx, gy float32) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	i := m.idx(x, y)
	m.edge[i] = true
	m.gx[i] = gx
	m.gy[i] = gy
}

// FromContour rasterizes a closed point sequence (e.g.
// geometry.GenerateEllipsePoints or geometry.GenerateCirclePoints) into an
// ArrayEdgeMap, deriving each rasterized pixel's gradient from the normal
// of the two neighboring contour points. Used to synthesize the
// spec.md §8 test scenarios without a real Canny/Sobel pass.
func FromContour(width, height int, contour []geometry.Point2D) *ArrayEdgeMap {
	m := NewArrayEdgeMap(width, height)
	n := len(contour)
	for i, p := range contour {
		prev := contour[(i-1+n)%n]
		next := contour[(i+1)%n]

		// Tangent direction; the normal (gx, gy) is its perpendicular
		// (-ty, tx), which points toward the center for the contours
		// GenerateEllipsePoints/GenerateCirclePoints produce. The segmenter's
		// gradient sign test only cares about sign(gx)*sign(gy), which is
		// the same for either normal direction, not magnitude.
		tx := next.X - prev.X
		ty := next.Y - prev.Y
		gx, gy := -ty, tx

		x, y := int(p.X+0.5), int(p.Y+0.5)
		if gx == 0 {
			gx = 1e-3
		}
		if gy == 0 {
			gy = 1e-3
		}
		m.SetEdge(x, y, float32(gx), float32(gy))
	}
	return m
}
