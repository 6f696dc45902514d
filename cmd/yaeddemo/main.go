// Command yaeddemo decodes an image, builds an edge map via Canny/Sobel,
// and runs the ellipse detector over it, printing each detected ellipse and
// the pipeline diagnostics. It exists to exercise internal/ellipse end to
// end; it is not part of the detector's public contract.
package main

import (
	"flag"
	"log"

	"yaed/internal/edgemap"
	"yaed/internal/ellipse"
	"yaed/internal/raster"
	"yaed/internal/version"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	path := flag.String("image", "", "path to the source image (png, jpeg, tiff, bmp)")
	cannyLow := flag.Float64("canny-low", 50, "Canny low threshold")
	cannyHigh := flag.Float64("canny-high", 150, "Canny high threshold")
	flag.Parse()

	log.Printf("yaed demo v%s (%s)", version.Version, version.GitCommit)

	if *path == "" {
		log.Fatal("missing required -image flag")
	}

	img, err := raster.Load(*path)
	if err != nil {
		log.Fatalf("load image: %v", err)
	}

	em, err := edgemap.FromImage(img, float32(*cannyLow), float32(*cannyHigh))
	if err != nil {
		log.Fatalf("build edge map: %v", err)
	}

	det := ellipse.NewDetector(ellipse.DefaultConfig())
	det.SetEdgeMap(em)

	ellipses, diag, err := det.Detect()
	if err != nil {
		log.Fatalf("detect: %v", err)
	}

	log.Printf("segments: total=%d short=%d straight=%d",
		diag.TotalLineSegmentCount, diag.ShortLineCount, diag.StraightLineCount)
	log.Printf("found %d ellipse(s)", len(ellipses))
	for i, e := range ellipses {
		log.Printf("  [%d] center=(%.1f,%.1f) rho=%.3f a=%.1f b=%.1f score=%.3f",
			i, e.Center.X, e.Center.Y, e.Rho, e.AAxis, e.BAxis, e.EllipseScore)
	}
}
