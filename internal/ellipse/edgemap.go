package ellipse

// EdgeMap is the pre-computed edge mask and gradient field the detector
// consumes. Producing one — running a Canny edge detector, computing Sobel
// gradients, decoding the source image — is explicitly out of scope for
// this package (spec.md §1); see internal/edgemap for a reference
// implementation and a gocv-backed builder.
//
// The detector borrows an EdgeMap by read-only reference for the duration
// of one Detect call; it never mutates it.
type EdgeMap interface {
	// Width and Height are the edge map's pixel dimensions.
	Width() int
	Height() int

	// IsEdge reports whether (x, y) is an edge pixel. Never called with
	// out-of-range coordinates — the segmenter always skips the 1-pixel
	// border.
	IsEdge(x, y int) bool

	// Gradient returns the unnormalized Sobel-style X/Y gradient at
	// (x, y). Only called for edge pixels, where both components are
	// guaranteed defined.
	Gradient(x, y int) (gx, gy float32)
}
