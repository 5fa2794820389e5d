package colour

import (
	"fmt"
	"image"
	"math"
)

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract extracts a colour palette from an image.
	Extract(img image.Image, params ExtractionParams) (Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses k-means clustering for colour extraction.
	AlgorithmKMeans Algorithm = "kmeans"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewExtractor creates a new Extractor based on the specified algorithm.
// Returns an error if the algorithm is not recognised.
func NewExtractor(alg Algorithm, opts ...Option) (Extractor, error) {
	switch alg {
	case AlgorithmKMeans:
		return NewKMeansExtractor(opts...), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// DefaultColours is the default number of ramp nodes.
const DefaultColours = 7

// ExtractionParams holds the inputs to a single extraction.
type ExtractionParams struct {
	// Colours is the number of colours (ramp nodes) to extract. Must be at least 2.
	Colours int

	// MinSaturation drops sampled pixels whose HSV saturation is below it.
	// Zero disables the check.
	MinSaturation float64

	// MinValue drops sampled pixels whose HSV value is below it.
	// Zero disables the check.
	MinValue float64

	// Seed fixes the random source used for sampling and clustering.
	// A nil seed gives non-reproducible results.
	Seed *int64
}

// DefaultExtractionParams returns the default extraction parameters.
func DefaultExtractionParams() ExtractionParams {
	return ExtractionParams{
		Colours: DefaultColours,
	}
}

// WithSeed returns a copy of the params with the seed set.
func (p ExtractionParams) WithSeed(seed int64) ExtractionParams {
	p.Seed = &seed
	return p
}

// Validate validates the extraction parameters.
func (p ExtractionParams) Validate() error {
	if p.Colours < 2 {
		return &InvalidParamsError{
			Field:  "colours",
			Reason: fmt.Sprintf("must be at least 2, got %d", p.Colours),
		}
	}
	if err := validateUnit("min saturation", p.MinSaturation); err != nil {
		return err
	}
	return validateUnit("min value", p.MinValue)
}

func (p ExtractionParams) filtering() bool {
	return p.MinSaturation > 0 || p.MinValue > 0
}

func validateUnit(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return &InvalidParamsError{
			Field:  field,
			Reason: fmt.Sprintf("must be between 0 and 1, got %v", v),
		}
	}
	return nil
}
