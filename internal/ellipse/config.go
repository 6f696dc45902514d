package ellipse

import "fmt"

// Config holds the tunables enumerated in spec.md §6. It follows the
// teacher repo's parameter-struct idiom (see the former via.DetectionParams
// and board.ContactDetectionParams): JSON tags for serialization, a
// Default constructor, fluent With... copies, and a Validate method.
type Config struct {
	// MinArcPixelCount is the minimum number of points an arc must have to
	// survive segmentation.
	MinArcPixelCount int `json:"min_arc_pixel_count"`

	// MinBoundingBoxSize is the minimum bounding-box width/height an arc
	// must have; smaller arcs are rejected as straight. It is also the
	// straightness test's threshold: an arc counts as curved when a test
	// point lies more than MinBoundingBoxSize/2 from the box diagonal.
	MinBoundingBoxSize int `json:"min_bounding_box_size"`

	// CheckAllArcPointsForStraightLine, when true, tests every arc point
	// against the bounding-box diagonal instead of just three samples.
	CheckAllArcPointsForStraightLine bool `json:"check_all_arc_points_for_straight_line"`

	// MutualPositionBoundingBoxPixelTolerance is the pixel slack allowed
	// when checking that two arcs' bounding boxes are mutually positioned
	// the way their quadrants require.
	MutualPositionBoundingBoxPixelTolerance int `json:"mutual_position_bounding_box_pixel_tolerance"`

	// NumberOfParallelChords is the target chord-family size used by the
	// chord estimator when an arc half is long enough to subsample.
	NumberOfParallelChords int `json:"number_of_parallel_chords"`

	// CenterDistancePercent is the fraction of the image diagonal within
	// which a triplet's two interim centers must agree to be accepted.
	CenterDistancePercent float64 `json:"center_distance_percent"`

	// DistanceToEllipseContour is the |h-1| tolerance for counting an edge
	// point as lying on the fitted ellipse's contour.
	DistanceToEllipseContour float64 `json:"distance_to_ellipse_contour"`

	// DistanceToEllipseContourScoreCutoff is the minimum on-contour
	// fraction a hypothesis needs to survive validation.
	DistanceToEllipseContourScoreCutoff float64 `json:"distance_to_ellipse_contour_score_cutoff"`

	// ReliabilityCutoff is the minimum angular-coverage reliability a
	// hypothesis needs to survive validation.
	ReliabilityCutoff float64 `json:"reliability_cutoff"`

	// UseMedianCenter selects the 7-candidate median center estimate
	// (true) over the 6-candidate mean (false).
	UseMedianCenter bool `json:"use_median_center"`
}

// DefaultConfig returns the defaults documented in spec.md §6.
func DefaultConfig() Config {
	return Config{
		MinArcPixelCount:                        16,
		MinBoundingBoxSize:                       3,
		CheckAllArcPointsForStraightLine:          false,
		MutualPositionBoundingBoxPixelTolerance:   1,
		NumberOfParallelChords:                    16,
		CenterDistancePercent:                     0.05,
		DistanceToEllipseContour:                  0.5,
		DistanceToEllipseContourScoreCutoff:       0.4,
		ReliabilityCutoff:                         0.4,
		UseMedianCenter:                           true,
	}
}

// WithNumberOfParallelChords returns a copy of cfg with the chord-family
// sample count overridden.
func (cfg Config) WithNumberOfParallelChords(n int) Config {
	cfg.NumberOfParallelChords = n
	return cfg
}

// WithDistanceToEllipseContour returns a copy of cfg with the contour
// tolerance overridden. The paper recommends 0.1; the default here (0.5)
// is the value the teacher convention would tune for synthetic test
// inputs — see spec.md §9's open question. Do not silently change the
// default; override explicitly per caller.
func (cfg Config) WithDistanceToEllipseContour(d float64) Config {
	cfg.DistanceToEllipseContour = d
	return cfg
}

// WithCenterDistancePercent returns a copy of cfg with the triplet
// center-agreement tolerance overridden.
func (cfg Config) WithCenterDistancePercent(p float64) Config {
	cfg.CenterDistancePercent = p
	return cfg
}

// Validate reports an error for any non-sensical configuration value.
func (cfg Config) Validate() error {
	if cfg.MinArcPixelCount < 2 {
		return fmt.Errorf("min arc pixel count must be at least 2, got %d", cfg.MinArcPixelCount)
	}
	if cfg.MinBoundingBoxSize < 1 {
		return fmt.Errorf("min bounding box size must be positive, got %d", cfg.MinBoundingBoxSize)
	}
	if cfg.MutualPositionBoundingBoxPixelTolerance < 0 {
		return fmt.Errorf("mutual position tolerance must be non-negative, got %d", cfg.MutualPositionBoundingBoxPixelTolerance)
	}
	if cfg.NumberOfParallelChords < 2 {
		return fmt.Errorf("number of parallel chords must be at least 2, got %d", cfg.NumberOfParallelChords)
	}
	if cfg.CenterDistancePercent <= 0 {
		return fmt.Errorf("center distance percent must be positive, got %f", cfg.CenterDistancePercent)
	}
	if cfg.DistanceToEllipseContour <= 0 {
		return fmt.Errorf("distance to ellipse contour must be positive, got %f", cfg.DistanceToEllipseContour)
	}
	if cfg.DistanceToEllipseContourScoreCutoff < 0 || cfg.DistanceToEllipseContourScoreCutoff >= 1 {
		return fmt.Errorf("distance to ellipse contour score cutoff must be in [0,1), got %f", cfg.DistanceToEllipseContourScoreCutoff)
	}
	if cfg.ReliabilityCutoff < 0 || cfg.ReliabilityCutoff >= 1 {
		return fmt.Errorf("reliability cutoff must be in [0,1), got %f", cfg.ReliabilityCutoff)
	}
	return nil
}
