package volume

import (
	"github.com/seqsense/pcgol/mat"
)

var cornerOffsets = [8]mat.Vec3{
	{-0.5, 0.5, -0.5},
	{-0.5, 0.5, 0.5},
	{0.5, 0.5, 0.5},
	{0.5, 0.5, -0.5},
	{-0.5, -0.5, -0.5},
	{-0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5},
	{0.5, -0.5, -0.5},
}

// Query is a Volume placed in world space by a Transform.
// All derived geometry is recomputed on every call, so changes of the
// Volume or the Transform between calls are always reflected.
type Query struct {
	Volume    *Volume
	Transform Transform
}

// NewQuery binds v to t. v is referenced, not copied.
func NewQuery(v *Volume, t Transform) *Query {
	return &Query{Volume: v, Transform: t}
}

// SideDirection returns the world direction of the outward normal of the side.
func (q *Query) SideDirection(s Side) mat.Vec3 {
	return q.Transform.DirectionToWorld(s.Unit())
}

// SidePosition returns the world position of the center of the face.
func (q *Query) SidePosition(s Side) mat.Vec3 {
	return q.Transform.PointToWorld(
		s.Unit().Mul(q.Volume.HalfExtent(s)).Add(q.Volume.Origin),
	)
}

// SidePlane returns the world plane of the face with the normal pointing out.
func (q *Query) SidePlane(s Side) Plane {
	return NewPlane(q.SideDirection(s), q.SidePosition(s))
}

func (q *Query) SidePlanes() [NumSides]Plane {
	var planes [NumSides]Plane
	for i := range planes {
		planes[i] = q.SidePlane(Side(i))
	}
	return planes
}

// Corners returns the world positions of the 8 corners.
// Top face first, then bottom face, both in the same winding.
func (q *Query) Corners() [8]mat.Vec3 {
	var corners [8]mat.Vec3
	size := q.Volume.Size
	for i, c := range cornerOffsets {
		local := mat.Vec3{c[0] * size[0], c[1] * size[1], c[2] * size[2]}
		corners[i] = q.Transform.PointToWorld(q.Volume.Origin.Add(local))
	}
	return corners
}

// Bounds returns the world axis-aligned bounds of the corners.
// It is tight only if the transform has no rotation.
func (q *Query) Bounds() Bounds {
	corners := q.Corners()
	return BoundsOf(corners[:])
}

// ContainsPoint returns true if p is behind all six side planes.
// Points on a face are contained.
func (q *Query) ContainsPoint(p mat.Vec3) bool {
	return containsPoint(q.SidePlanes(), p)
}

// Contains returns a ContainsPoint predicate bound to the current side
// planes. It does not follow later changes of the Volume or the Transform.
func (q *Query) Contains() func(mat.Vec3) bool {
	planes := q.SidePlanes()
	return func(p mat.Vec3) bool {
		return containsPoint(planes, p)
	}
}

// ContainsAny returns true if at least one point is contained.
// It is false for an empty slice.
func (q *Query) ContainsAny(points []mat.Vec3) bool {
	contains := q.Contains()
	for _, p := range points {
		if contains(p) {
			return true
		}
	}
	return false
}

// ContainsAll returns true if every point is contained.
// It is true for an empty slice.
func (q *Query) ContainsAll(points []mat.Vec3) bool {
	contains := q.Contains()
	for _, p := range points {
		if !contains(p) {
			return false
		}
	}
	return true
}

// InBounds returns true if the world bounds of the volume and of points
// intersect. It is a coarse test and false for an empty slice.
func (q *Query) InBounds(points []mat.Vec3) bool {
	b, ok := BoundsOfPoints(points)
	if !ok {
		return false
	}
	return q.Bounds().Intersects(b)
}

// OnBorder returns true if points are in bounds but not all contained.
func (q *Query) OnBorder(points []mat.Vec3) bool {
	if !q.InBounds(points) {
		return false
	}
	return !q.ContainsAll(points)
}

// Classify returns where points lie relative to the volume.
func (q *Query) Classify(points []mat.Vec3) Classification {
	if !q.InBounds(points) {
		return Outside
	}
	if q.ContainsAll(points) {
		return Inside
	}
	return Border
}

func containsPoint(planes [NumSides]Plane, p mat.Vec3) bool {
	for _, pl := range planes {
		if pl.GetSide(p) {
			return false
		}
	}
	return true
}

// Classification is the result of Classify.
type Classification int

const (
	Outside Classification = iota
	Border
	Inside
)

func (c Classification) String() string {
	switch c {
	case Outside:
		return "outside"
	case Border:
		return "border"
	case Inside:
		return "inside"
	default:
		return "unknown"
	}
}
