package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/onion/pkg/errors"
)

const (
	// AngleEpsilon is the tolerance, in degrees, under which a forward
	// rotation counts as zero.
	AngleEpsilon = 1e-9

	// radicandTolerance is the relative slack allowed when a point pair is
	// almost exactly one diameter apart.
	radicandTolerance = 1e-9
)

// Circle is a disc position. It is never mutated, only replaced.
type Circle struct {
	Center   r2.Vec
	Diameter float64
}

// Radius returns half the diameter.
func (c Circle) Radius() float64 { return c.Diameter / 2 }

// Distance returns the Euclidean distance between p and q.
func Distance(p, q r2.Vec) float64 { return r2.Norm(r2.Sub(p, q)) }

// Bearing returns the direction from "from" to "to" in degrees in [0, 360).
func Bearing(from, to r2.Vec) float64 {
	a := math.Atan2(to.Y-from.Y, to.X-from.X) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// ForwardAngle returns the rotation from bearing a to bearing b in the pivot
// direction, in [0, 360). Only strictly negative differences wrap around, and
// results within AngleEpsilon of 0 or 360 are reported as exactly 0.
func ForwardAngle(a, b float64) float64 {
	r := b - a
	if r < 0 {
		r += 360
	}
	if r < AngleEpsilon || r > 360-AngleEpsilon {
		return 0
	}
	return r
}

// Centers returns the two centers at which a disc of the given diameter
// touches both p1 and p2. The first center lies on the left of the directed
// segment p1→p2.
//
// It returns a DEGENERATE_GEOMETRY error when the points coincide, when the
// diameter is not positive, or when the points are farther apart than the
// diameter.
func Centers(p1, p2 r2.Vec, diameter float64) (r2.Vec, r2.Vec, error) {
	if !(diameter > 0) || math.IsInf(diameter, 0) {
		return r2.Vec{}, r2.Vec{}, errors.Degenerate("diameter must be positive and finite, got %g", diameter)
	}
	q := Distance(p1, p2)
	if q == 0 {
		return r2.Vec{}, r2.Vec{}, errors.Degenerate("points (%g, %g) coincide", p1.X, p1.Y)
	}

	r := diameter / 2
	radicand := r*r - (q/2)*(q/2)
	if radicand < 0 {
		if radicand < -radicandTolerance*r*r {
			return r2.Vec{}, r2.Vec{}, errors.Degenerate("points are %g apart, farther than diameter %g", q, diameter)
		}
		radicand = 0
	}
	h := math.Sqrt(radicand)

	mid := r2.Scale(0.5, r2.Add(p1, p2))
	perp := r2.Vec{X: (p1.Y - p2.Y) / q, Y: (p2.X - p1.X) / q}
	offset := r2.Scale(h, perp)
	return r2.Add(mid, offset), r2.Sub(mid, offset), nil
}

// insideTolerance returns the squared-distance slack used by IsInside.
// It grows with the radius, which keeps the emptiness test monotonic.
func insideTolerance(radius float64) float64 {
	return radicandTolerance * radius * radius
}

// IsInside reports whether p lies strictly inside the disc of the given
// radius around center. Points on the circle, within a relative tolerance,
// are not inside.
func IsInside(center, p r2.Vec, radius float64) bool {
	return r2.Norm2(r2.Sub(p, center)) < radius*radius-insideTolerance(radius)
}

// IsEmpty reports whether no point of candidates lies strictly inside the disc
// of the given radius around center. The candidate at index exclude is
// skipped; pass -1 to test every candidate.
func IsEmpty(center r2.Vec, candidates []r2.Vec, exclude int, radius float64) bool {
	for i, p := range candidates {
		if i == exclude {
			continue
		}
		if IsInside(center, p, radius) {
			return false
		}
	}
	return true
}
