// Package geom provides the planar geometry behind the rolling-disc boundary
// search: tangent circles through two points, the empty-disc test and the
// angular bookkeeping used to decide which way the disc pivots.
//
// # Tangent Circles
//
// A disc of diameter d touches two points p1 and p2 when its center lies on
// the perpendicular bisector of p1p2 at distance d/2 from both. [Centers]
// returns both such centers, or a DEGENERATE_GEOMETRY error when the points
// coincide or lie farther apart than d. A pair that is almost exactly d apart
// is accepted: the square-root radicand is clamped to zero within a small
// relative tolerance so floating round-off does not reject it.
//
// # Angles
//
// All angles are in degrees. [Bearing] measures the direction from one point
// to another counter-clockwise from the +x axis in [0, 360).
// [ForwardAngle] is the rotation needed to turn from one bearing to another
// in the pivot direction; it wraps only strictly negative differences, and
// values within [AngleEpsilon] of a full turn snap to 0 so an exact tangency
// is recognised as "no rotation".
//
// # Emptiness
//
// [IsEmpty] is the admissibility test for a disc position: no neighbor of the
// anchor (other than the one the disc is pivoting onto) may lie strictly
// inside. Points on the circle are tolerated.
package geom
