package ellipse

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"yaed/pkg/geometry"
)

// rhoBinCount and nBinCount are the accumulators' fixed dense-array sizes:
// ρ is quantized to whole degrees (0..179) and n to whole percent (1..100),
// per spec.md §4.5's 1°/1% discretization and §9's note that a small,
// bounded key space is "faster and deterministic" as a dense array than a
// hash table.
const (
	rhoBinCount = 180
	nBinCount   = 100
)

// estimateParameters fills h's center, rho, a and b from its chord families
// and source arcs, per spec.md §4.5. Returns false if every center
// candidate or every ρ/n accumulator bin is degenerate.
func estimateParameters(h *hypothesis, cfg Config) bool {
	center, ok := estimateHypothesisCenter(h, cfg)
	if !ok {
		return false
	}
	h.center = center

	rho, n, ok := estimateRhoAndN(h)
	if !ok {
		return false
	}
	h.rho = rho

	a, ok := estimateA(h, center, rho, n)
	if !ok {
		return false
	}
	h.a = a
	h.b = a * n
	return true
}

// estimateHypothesisCenter collects up to 7 candidate centers (4 pairwise
// chord-line intersections, the two interim triplet centers, and — when
// cfg.UseMedianCenter — their mean) and combines them per spec.md §4.5.
func estimateHypothesisCenter(h *hypothesis, cfg Config) (geometry.Point2D, bool) {
	var candidates []geometry.Point2D

	pairs := [4][2]*parallelChords{
		{h.chord3start2mid, h.chord2start1mid},
		{h.chord3mid2end, h.chord2start1mid},
		{h.chord3start2mid, h.chord2mid1end},
		{h.chord3mid2end, h.chord2mid1end},
	}
	for _, pair := range pairs {
		if c, ok := estimateCenter(pair[0], pair[1]); ok {
			candidates = append(candidates, c)
		}
	}
	candidates = append(candidates, h.center32, h.center21)

	if len(candidates) == 0 {
		return geometry.Point2D{}, false
	}

	if cfg.UseMedianCenter {
		avg := geometry.Point2D{X: (h.center32.X + h.center21.X) / 2, Y: (h.center32.Y + h.center21.Y) / 2}
		candidates = append(candidates, avg)

		xs := make([]float64, len(candidates))
		ys := make([]float64, len(candidates))
		for i, c := range candidates {
			xs[i] = c.X
			ys[i] = c.Y
		}
		return geometry.Point2D{X: median(xs), Y: median(ys)}, true
	}

	xs := make([]float64, len(candidates))
	ys := make([]float64, len(candidates))
	for i, c := range candidates {
		xs[i] = c.X
		ys[i] = c.Y
	}
	return geometry.Point2D{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}, true
}

// estimateRhoAndN runs the ρ/n integer-binned accumulator vote described in
// spec.md §4.5 over the four chord-family combinations, then returns the
// mean of the tied maximum-count bins, converted back to radians / [0,1].
func estimateRhoAndN(h *hypothesis) (rho, n float64, ok bool) {
	rhoCounts := make([]float64, rhoBinCount)
	nCounts := make([]float64, nBinCount+1) // index 0 unused; bins are 1..100

	combos := [4][2]*parallelChords{
		{h.chord3start2mid, h.chord2start1mid},
		{h.chord3mid2end, h.chord2start1mid},
		{h.chord3start2mid, h.chord2mid1end},
		{h.chord3mid2end, h.chord2mid1end},
	}

	for _, combo := range combos {
		chord2, chord1 := combo[0], combo[1]
		if chord2 == nil || chord1 == nil {
			continue
		}
		q1 := chord2.referenceSlope
		q3 := chord1.referenceSlope
		for _, q2 := range chord2.perpSlopes {
			for _, q4 := range chord1.perpSlopes {
				voteRhoN(q1, q2, q3, q4, rhoCounts, nCounts)
			}
		}
	}

	rhoDeg, ok1 := argmaxMeanBin(rhoCounts, 0)
	nPct, ok2 := argmaxMeanBin(nCounts, 0)
	if !ok1 || !ok2 {
		return 0, 0, false
	}

	rho = rhoDeg * math.Pi / 180
	n = nPct / 100
	if n > 1 {
		n = 1
	}
	if n <= 0 {
		return 0, 0, false
	}
	return rho, n, true
}

// voteRhoN computes γ, β, k, z per spec.md §4.5 for one (q1,q2,q3,q4)
// combination and, when z < 0, increments the ρ and n accumulators.
// γ == 0 (parallel chord pair) is guarded and silently skipped. rhoCounts
// is indexed directly by its 0..179 bin; nCounts is indexed by its 1..100
// bin (index 0 unused).
func voteRhoN(q1, q2, q3, q4 float64, rhoCounts, nCounts []float64) {
	gamma := q1*q2 - q3*q4
	if gamma == 0 {
		return
	}
	beta := (q3*q4+1)*(q1+q2) - (q1*q2+1)*(q3+q4)

	disc := beta*beta + 4*gamma*gamma
	if disc < 0 {
		return
	}
	k := (-beta + math.Sqrt(disc)) / (2 * gamma)

	denom1 := 1 + q1*k
	denom2 := 1 + q2*k
	if denom1 == 0 || denom2 == 0 {
		return
	}
	z := ((q1 - k) * (q2 - k)) / (denom1 * denom2)
	if z >= 0 {
		return
	}

	nPrime := math.Sqrt(-z)
	rhoPrime := math.Atan(k)
	var nVal float64
	if nPrime <= 1 {
		nVal = nPrime
	} else {
		rhoPrime += math.Pi / 2
		nVal = 1 / nPrime
	}

	rhoDeg := int(math.Round(rhoPrime*180/math.Pi+180)) % 180
	if rhoDeg < 0 {
		rhoDeg += 180
	}
	nPct := int(math.Round(nVal * 100))
	if nPct < 1 || nPct > 100 {
		return
	}

	rhoCounts[rhoDeg]++
	nCounts[nPct]++
}

// argmaxMeanBin scans a dense accumulator for its maximum count (via
// floats.MaxIdx) and returns the mean of every bin tied at that maximum
// (via floats.Sum), converting array index back to bin value by adding
// offset. Bins with zero votes are included in the scan but never win
// unless the whole accumulator is empty, which is reported as !ok.
func argmaxMeanBin(counts []float64, offset int) (float64, bool) {
	maxIdx := floats.MaxIdx(counts)
	maxCount := counts[maxIdx]
	if maxCount == 0 {
		return 0, false
	}

	var tied []float64
	for i, c := range counts {
		if c == maxCount {
			tied = append(tied, float64(i+offset))
		}
	}
	return floats.Sum(tied) / float64(len(tied)), true
}

// estimateA runs the semi-axis accumulator vote from spec.md §4.5 over every
// point of the hypothesis's three source arcs. The accumulator is a dense
// array bounded by the source arcs' combined bounding-box diagonal: no
// fitted semi-axis can exceed the pixel extent of the edge points that
// voted for it.
func estimateA(h *hypothesis, center geometry.Point2D, rho, n float64) (float64, bool) {
	k := math.Tan(rho)
	denomRecip := 1 / math.Sqrt(k*k+1)
	cosRho := math.Cos(rho)
	if cosRho == 0 {
		return 0, false
	}

	maxBin := int(math.Ceil(arcsBoundingBox(h.arc1, h.arc2, h.arc3).Diagonal())) + 1
	counts := make([]float64, maxBin+1)

	visit := func(p geometry.PointInt) {
		px := float64(p.X) - center.X
		py := float64(p.Y) - center.Y
		x0 := (px + py*k) * denomRecip
		y0 := (-px*k + py) * denomRecip
		inner := (x0*x0*n*n + y0*y0) / (n * n)
		if inner < 0 {
			return
		}
		aX := math.Sqrt(inner) * denomRecip
		aPoint := math.Abs(aX / cosRho)
		bin := int(math.Round(aPoint))
		if bin <= 0 || bin > maxBin {
			return
		}
		counts[bin]++
	}

	for _, p := range h.arc1.Points {
		visit(p)
	}
	for _, p := range h.arc2.Points {
		visit(p)
	}
	for _, p := range h.arc3.Points {
		visit(p)
	}

	return argmaxMeanBin(counts, 0)
}

// arcsBoundingBox returns the union of three arcs' bounding boxes.
func arcsBoundingBox(a1, a2, a3 *Arc) geometry.RectInt {
	box := a1.BBox
	for _, b := range []geometry.RectInt{a2.BBox, a3.BBox} {
		if b.Left < box.Left {
			box.Left = b.Left
		}
		if b.Top < box.Top {
			box.Top = b.Top
		}
		if b.Right > box.Right {
			box.Right = b.Right
		}
		if b.Bottom > box.Bottom {
			box.Bottom = b.Bottom
		}
	}
	return box
}
