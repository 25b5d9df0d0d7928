package game

import "math"

// Vec2 is a point or direction in world space. One world unit is one tile;
// y grows upward.
type Vec2 struct {
	X float64
	Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) DistanceTo(o Vec2) float64 { return o.Sub(v).Length() }

// Normalized returns the unit vector along v together with v's original
// length. A zero vector comes back unchanged with length 0.
func (v Vec2) Normalized() (Vec2, float64) {
	l := v.Length()
	if l < 1e-12 {
		return Vec2{}, 0
	}
	return Vec2{v.X / l, v.Y / l}, l
}

// OrientationDegrees returns the heading of v: 0 = +x, counter-clockwise positive.
func (v Vec2) OrientationDegrees() float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// FromPolarDegrees returns a vector of the given length at the given heading.
func FromPolarDegrees(deg, length float64) Vec2 {
	rad := deg * math.Pi / 180
	return Vec2{math.Cos(rad) * length, math.Sin(rad) * length}
}

// AABB2 is an axis-aligned box.
type AABB2 struct {
	Min Vec2
	Max Vec2
}

// ClosestPoint returns the point inside the box nearest to p.
func (b AABB2) ClosestPoint(p Vec2) Vec2 {
	return Vec2{clampF(p.X, b.Min.X, b.Max.X), clampF(p.Y, b.Min.Y, b.Max.Y)}
}

// Contains reports whether p lies inside or on the box.
func (b AABB2) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Center returns the box midpoint.
func (b AABB2) Center() Vec2 {
	return Vec2{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// AngularDisplacement returns the signed shortest rotation from -> to,
// in degrees, wrapped to [-180, 180].
func AngularDisplacement(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}

// TurnedTowards rotates current toward goal by at most maxDelta degrees.
func TurnedTowards(current, goal, maxDelta float64) float64 {
	d := AngularDisplacement(current, goal)
	if math.Abs(d) <= maxDelta {
		return normalizeDegrees(goal)
	}
	if d > 0 {
		return normalizeDegrees(current + maxDelta)
	}
	return normalizeDegrees(current - maxDelta)
}

// normalizeDegrees wraps an angle to [0, 360).
func normalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// discsOverlap reports strict overlap; touching discs do not overlap.
func discsOverlap(a Vec2, ra float64, b Vec2, rb float64) bool {
	r := ra + rb
	return a.Sub(b).LengthSquared() < r*r
}

// reflectAbout mirrors v about the surface with normal n (n need not be unit length).
func reflectAbout(v, n Vec2) Vec2 {
	n, l := n.Normalized()
	if l == 0 {
		return v
	}
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// pushDiscOutOfPoint moves the disc centre so that p sits on its rim.
func pushDiscOutOfPoint(center *Vec2, r float64, p Vec2) {
	away := center.Sub(p)
	dir, dist := away.Normalized()
	if dist >= r {
		return
	}
	if dist == 0 {
		dir = Vec2{1, 0}
	}
	*center = center.Add(dir.Scale(r - dist))
}

// pushDiscOutOfDisc moves the first disc by the full overlap; the second stays put.
func pushDiscOutOfDisc(center *Vec2, r float64, fixed Vec2, fixedR float64) {
	away := center.Sub(fixed)
	dir, dist := away.Normalized()
	overlap := r + fixedR - dist
	if overlap <= 0 {
		return
	}
	if dist == 0 {
		dir = Vec2{1, 0}
	}
	*center = center.Add(dir.Scale(overlap))
}

// pushDiscsOutOfEachOther splits the overlap evenly between two discs.
func pushDiscsOutOfEachOther(a *Vec2, ra float64, b *Vec2, rb float64) {
	away := a.Sub(*b)
	dir, dist := away.Normalized()
	overlap := ra + rb - dist
	if overlap <= 0 {
		return
	}
	if dist == 0 {
		dir = Vec2{1, 0}
	}
	half := dir.Scale(overlap / 2)
	*a = a.Add(half)
	*b = b.Sub(half)
}

// pushDiscOutOfAABB moves the disc so it no longer overlaps the box. A centre
// already inside the box leaves through the nearest face.
func pushDiscOutOfAABB(center *Vec2, r float64, box AABB2) {
	if !box.Contains(*center) {
		pushDiscOutOfPoint(center, r, box.ClosestPoint(*center))
		return
	}
	left := center.X - box.Min.X
	right := box.Max.X - center.X
	down := center.Y - box.Min.Y
	up := box.Max.Y - center.Y
	switch math.Min(math.Min(left, right), math.Min(down, up)) {
	case left:
		center.X = box.Min.X - r
	case right:
		center.X = box.Max.X + r
	case down:
		center.Y = box.Min.Y - r
	default:
		center.Y = box.Max.Y + r
	}
}
