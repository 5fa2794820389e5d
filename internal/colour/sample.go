package colour

import (
	"image"
	"math/rand"

	"golang.org/x/image/draw"
)

const (
	// WorkingSize is the side of the square every image is resized to before sampling.
	WorkingSize = 150

	// MaxSamples caps the number of pixels used for filtering and clustering.
	MaxSamples = 5000
)

// downscale resizes img to a WorkingSize square. The destination keeps
// straight (non-premultiplied) alpha, which is then ignored.
func downscale(img image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// flatten returns the RGB channels of every pixel in row-major order.
func flatten(img *image.NRGBA) []point3D {
	bounds := img.Bounds()
	points := make([]point3D, 0, bounds.Dx()*bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+bounds.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			points = append(points, point3D{
				R: float64(row[x]),
				G: float64(row[x+1]),
				B: float64(row[x+2]),
			})
		}
	}
	return points
}

// samplePoints draws a uniform sample of exactly limit points without
// replacement. When there are not more than limit points, all are returned.
func samplePoints(points []point3D, limit int, rng *rand.Rand) []point3D {
	if len(points) <= limit {
		return points
	}

	// Partial Fisher-Yates over a copy so the input order is untouched.
	pool := append([]point3D(nil), points...)
	for i := range limit {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:limit]
}

// filterPoints keeps points whose HSV saturation and value reach the given minimums.
func filterPoints(points []point3D, minSat, minVal float64) []point3D {
	kept := make([]point3D, 0, len(points))
	for _, p := range points {
		_, s, v := HSV(p.rgb())
		if s < minSat || v < minVal {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
