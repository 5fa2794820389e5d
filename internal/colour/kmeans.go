package colour

import (
	"image"
	"math"
	"math/rand"
	"time"

	"github.com/hashicorp/go-hclog"
)

// KMeansExtractor implements colour extraction using k-means clustering.
type KMeansExtractor struct {
	workingSize   int
	maxSamples    int
	restarts      int
	maxIterations int
	tolerance     float64
	logger        hclog.Logger
}

// Option configures a KMeansExtractor.
type Option func(*KMeansExtractor)

// WithLogger sets the logger used to report extraction stages.
func WithLogger(logger hclog.Logger) Option {
	return func(e *KMeansExtractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRestarts sets how many randomly seeded clustering runs are tried.
// The run with the lowest inertia wins.
func WithRestarts(n int) Option {
	return func(e *KMeansExtractor) {
		if n > 0 {
			e.restarts = n
		}
	}
}

// WithMaxIterations caps the Lloyd iterations of a single run.
func WithMaxIterations(n int) Option {
	return func(e *KMeansExtractor) {
		if n > 0 {
			e.maxIterations = n
		}
	}
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor(opts ...Option) *KMeansExtractor {
	e := &KMeansExtractor{
		workingSize:   WorkingSize,
		maxSamples:    MaxSamples,
		restarts:      10,
		maxIterations: 300,
		tolerance:     1e-4,
		logger:        hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract extracts params.Colours colours from an image.
//
// The image is resized to a fixed square, sampled, optionally filtered by
// HSV saturation/value, and clustered. The returned order is the clustering
// order and carries no meaning; use Reorder to build a gradient.
//
// Results are only reproducible when params.Seed is set.
func (e *KMeansExtractor) Extract(img image.Image, params ExtractionParams) (Palette, error) {
	if err := params.Validate(); err != nil {
		return Palette{}, err
	}
	if img == nil {
		return Palette{}, &InvalidImageError{Reason: "image is nil"}
	}
	if bounds := img.Bounds(); bounds.Empty() {
		return Palette{}, &InvalidImageError{Reason: "image has zero area"}
	}

	rng := newRand(params.Seed)

	points := flatten(downscale(img, e.workingSize))
	working := samplePoints(points, e.maxSamples, rng)
	e.logger.Debug("sampled pixels", "pixels", len(points), "samples", len(working))

	if params.filtering() {
		filtered := filterPoints(working, params.MinSaturation, params.MinValue)
		if len(filtered) < params.Colours {
			e.logger.Debug("filter left too few pixels, using unfiltered samples",
				"kept", len(filtered), "colours", params.Colours)
		} else {
			e.logger.Debug("filtered samples", "kept", len(filtered), "dropped", len(working)-len(filtered))
			working = filtered
		}
	}

	// Not enough points to partition: hand back raw pixels.
	if len(working) <= params.Colours {
		e.logger.Debug("too few samples to cluster", "samples", len(working), "colours", params.Colours)
		colours := make([]RGB, len(working))
		for i, p := range working {
			colours[i] = p.rgb()
		}
		return Palette{colours: colours}, nil
	}

	centroids, inertia := e.cluster(working, params.Colours, rng)
	e.logger.Debug("clustering complete", "colours", len(centroids), "inertia", inertia)

	colours := make([]RGB, len(centroids))
	for i, c := range centroids {
		colours[i] = c.rgb()
	}
	return Palette{colours: colours}, nil
}

func newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed)) // #nosec G404 -- clustering does not need crypto randomness
	}
	return rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- clustering does not need crypto randomness
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distSq returns the squared Euclidean distance between two points.
func (p point3D) distSq(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

// rgb truncates the point toward zero and clamps each channel into [0, 255].
func (p point3D) rgb() RGB {
	return RGB{R: clampChannel(p.R), G: clampChannel(p.G), B: clampChannel(p.B)}
}

// cluster runs k-means e.restarts times and keeps the centroids with the
// lowest inertia (sum of squared distances to the nearest centroid).
func (e *KMeansExtractor) cluster(points []point3D, k int, rng *rand.Rand) ([]point3D, float64) {
	tol := e.tolerance * meanVariance(points)

	var best []point3D
	bestInertia := math.Inf(1)
	for run := range e.restarts {
		centroids := initializeCentroidsKMeansPlusPlus(points, k, rng)
		centroids, iterations := e.lloyd(points, centroids, tol)
		inertia := inertiaOf(points, centroids)
		e.logger.Trace("k-means run", "run", run, "iterations", iterations, "inertia", inertia)

		if inertia < bestInertia {
			best, bestInertia = centroids, inertia
		}
	}
	return best, bestInertia
}

// lloyd iterates assignment and update steps until no assignment changes,
// the total centroid shift drops to tol, or maxIterations is reached.
func (e *KMeansExtractor) lloyd(points, centroids []point3D, tol float64) ([]point3D, int) {
	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	iter := 0
	for iter < e.maxIterations {
		iter++

		changed := 0
		for i, point := range points {
			nearest, _ := findNearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if changed == 0 {
			break
		}

		newCentroids := recalculateCentroids(points, assignments, centroids)

		shift := 0.0
		for i := range centroids {
			shift += centroids[i].distSq(newCentroids[i])
		}
		centroids = newCentroids

		if shift <= tol {
			break
		}
	}
	return centroids, iter
}

// initializeCentroidsKMeansPlusPlus picks k initial centroids, each new one
// chosen with probability proportional to its squared distance from the
// nearest centroid already picked.
func initializeCentroidsKMeansPlusPlus(points []point3D, k int, rng *rand.Rand) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, point := range points {
			_, d := findNearestCentroid(point, centroids)
			distances[i] = d
			total += d
		}

		// Every point coincides with a centroid already.
		if total == 0 {
			centroids = append(centroids, points[rng.Intn(len(points))])
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target && d > 0 {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

// findNearestCentroid returns the index of the nearest centroid and the squared distance to it.
func findNearestCentroid(point point3D, centroids []point3D) (int, float64) {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		if d := point.distSq(centroid); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest, minDist
}

// recalculateCentroids moves each centroid to the mean of its assigned points.
// An empty cluster takes over the point farthest from its current centroid.
func recalculateCentroids(points []point3D, assignments []int, previous []point3D) []point3D {
	k := len(previous)
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] > 0 {
			n := float64(counts[i])
			centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
		}
	}

	for i := range k {
		if counts[i] > 0 {
			continue
		}
		farthest, farthestDist := 0, -1.0
		for j, point := range points {
			if d := point.distSq(centroids[assignments[j]]); d > farthestDist {
				farthest, farthestDist = j, d
			}
		}
		centroids[i] = points[farthest]
		// Claim the point so a second empty cluster picks a different one.
		counts[assignments[farthest]]--
		assignments[farthest] = i
		counts[i] = 1
	}

	return centroids
}

func inertiaOf(points, centroids []point3D) float64 {
	total := 0.0
	for _, point := range points {
		_, d := findNearestCentroid(point, centroids)
		total += d
	}
	return total
}

// meanVariance returns the mean of the per-channel variances of points.
func meanVariance(points []point3D) float64 {
	if len(points) == 0 {
		return 0
	}
	var mean point3D
	for _, p := range points {
		mean.R += p.R
		mean.G += p.G
		mean.B += p.B
	}
	n := float64(len(points))
	mean = point3D{R: mean.R / n, G: mean.G / n, B: mean.B / n}

	total := 0.0
	for _, p := range points {
		total += p.distSq(mean)
	}
	return total / n / 3
}
