package edgemap

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// FromImage builds an ArrayEdgeMap from a decoded raster image by running
// Canny edge detection for the binary mask and Sobel for the X/Y gradient
// field, mirroring the blur-then-detect pipeline the rest of this codebase
// uses for contour work. This is the concrete collaborator spec.md §1
// leaves as "out of scope" for the core pipeline; nothing in
// internal/ellipse imports this file.
func FromImage(img image.Image, cannyLow, cannyHigh float32) (*ArrayEdgeMap, error) {
	mat, err := imageToMat(img)
	if err != nil {
		return nil, fmt.Errorf("edgemap: convert image: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 5, Y: 5}, 1.4, 1.4, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, cannyLow, cannyHigh)

	sobelX := gocv.NewMat()
	defer sobelX.Close()
	gocv.Sobel(blurred, &sobelX, gocv.MatTypeCV32F, 1, 0, 3, 1, 0, gocv.BorderDefault)

	sobelY := gocv.NewMat()
	defer sobelY.Close()
	gocv.Sobel(blurred, &sobelY, gocv.MatTypeCV32F, 0, 1, 3, 1, 0, gocv.BorderDefault)

	w, h := edges.Cols(), edges.Rows()
	out := NewArrayEdgeMap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if edges.GetUCharAt(y, x) == 0 {
				continue
			}
			gx := sobelX.GetFloatAt(y, x)
			gy := sobelY.GetFloatAt(y, x)
			if gx == 0 || gy == 0 {
				continue
			}
			out.SetEdge(x, y, gx, gy)
		}
	}
	return out, nil
}

// imageToMat converts a Go image.Image to a BGR gocv.Mat, matching the
// teacher repo's pixel-by-pixel RGBA->BGR conversion convention.
func imageToMat(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat, nil
}
