package ellipse

import "math"

// Detector runs the full arc-segmentation -> convexity -> triplet ->
// chord/parameter-estimation -> validation -> clustering pipeline over one
// EdgeMap. A Detector is single-use per EdgeMap: construct a fresh one (or
// call SetEdgeMap again) for each new image, per spec.md §5's
// no-shared-mutable-state contract.
type Detector struct {
	cfg Config
	em  EdgeMap
}

// NewDetector returns a Detector configured with cfg.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// SetEdgeMap attaches the EdgeMap the next Detect call will consume.
// Detector borrows em by reference; it never mutates it.
func (d *Detector) SetEdgeMap(em EdgeMap) {
	d.em = em
}

// Detect runs the pipeline to completion and returns the deduplicated
// ellipse hypotheses that survived validation, plus stage diagnostics.
// Returns a *ConfigError if no EdgeMap has been set or the Config is invalid.
func (d *Detector) Detect() ([]Ellipse, Diagnostics, error) {
	if d.em == nil {
		return nil, Diagnostics{}, &ConfigError{Reason: "no EdgeMap set"}
	}
	if err := d.cfg.Validate(); err != nil {
		return nil, Diagnostics{}, &ConfigError{Reason: err.Error()}
	}

	positive, negative, diag := segment(d.em, d.cfg)

	arcs := make([]*Arc, 0, len(positive)+len(negative))
	arcs = append(arcs, positive...)
	arcs = append(arcs, negative...)
	arcs = classifyArcs(arcs)

	var byQuadrant [4][]*Arc
	for _, a := range arcs {
		byQuadrant[a.Quadrant] = append(byQuadrant[a.Quadrant], a)
	}

	imageDiagonal := diagonal(d.em.Width(), d.em.Height())
	hyps := findTriplets(byQuadrant, imageDiagonal, d.cfg)

	var validated []*hypothesis
	for _, h := range hyps {
		if !estimateParameters(h, d.cfg) {
			continue
		}
		if !validate(h, d.cfg) {
			continue
		}
		validated = append(validated, h)
	}

	ellipses := cluster(validated)
	return ellipses, diag, nil
}

func diagonal(w, h int) float64 {
	return math.Sqrt(float64(w)*float64(w) + float64(h)*float64(h))
}
