package volume

import (
	"github.com/seqsense/pcgol/mat"
)

// Plane is a half-space boundary. The normal points to the front side.
type Plane struct {
	Normal   mat.Vec3
	Distance float32
}

// NewPlane returns the plane through point with the given normal.
// The normal is normalized.
func NewPlane(normal, point mat.Vec3) Plane {
	n := normal.Normalized()
	return Plane{
		Normal:   n,
		Distance: -n.Dot(point),
	}
}

// DistanceTo returns the signed distance from the plane, positive in front.
func (p Plane) DistanceTo(v mat.Vec3) float32 {
	return p.Normal.Dot(v) + p.Distance
}

// GetSide returns true if v is strictly on the side the normal points to.
func (p Plane) GetSide(v mat.Vec3) bool {
	return p.DistanceTo(v) > 0
}
