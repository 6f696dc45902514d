package main

import "yaed/internal/ellipse"

// DetectAll runs one fresh Detector per edge map, sequentially. spec.md §5
// declares the core single-threaded by contract, so this stays a plain
// loop rather than the teacher's goroutine-based DetectViasAsync /
// BatchDetectVias pattern — each Detector is still constructed fresh per
// image, matching spec.md's documented per-image lifecycle.
func DetectAll(edgeMaps []ellipse.EdgeMap, cfg ellipse.Config) [][]ellipse.Ellipse {
	results := make([][]ellipse.Ellipse, len(edgeMaps))
	for i, em := range edgeMaps {
		det := ellipse.NewDetector(cfg)
		det.SetEdgeMap(em)
		ellipses, _, err := det.Detect()
		if err != nil {
			continue
		}
		results[i] = ellipses
	}
	return results
}
