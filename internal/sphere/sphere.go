// Package sphere lays out the decorative point sphere shown on the landing
// page and computes its mouse parallax rotation.
package sphere

import "math"

const (
	DefaultPoints = 100
	DefaultRadius = 350.0

	// parallaxDamping divides the pointer's offset from the viewport centre
	// to get degrees of rotation.
	parallaxDamping = 25.0
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Rotation struct {
	RotateY float64 `json:"rotateY"`
	RotateX float64 `json:"rotateX"`
}

// Points spreads n points over a sphere of the given radius along a spiral
// from the south pole to the north pole.
func Points(n int, radius float64) []Point {
	if n <= 0 {
		return []Point{}
	}
	pts := make([]Point, n)
	spin := math.Sqrt(float64(n) * math.Pi)
	for i := range pts {
		phi := math.Acos(-1 + 2*float64(i)/float64(n))
		theta := spin * phi
		pts[i] = Point{
			X: radius * math.Cos(theta) * math.Sin(phi),
			Y: radius * math.Sin(theta) * math.Sin(phi),
			Z: radius * math.Cos(phi),
		}
	}
	return pts
}

// Parallax returns the rotation for a pointer at (pageX, pageY) in a
// viewport of width w and height h.
func Parallax(w, h, pageX, pageY float64) Rotation {
	return Rotation{
		RotateY: (w/2 - pageX) / parallaxDamping,
		RotateX: (h/2 - pageY) / parallaxDamping,
	}
}
