// Package volume implements an oriented box placed in world space by an
// external transform, and the containment, border and overlap queries on it.
package volume

import (
	"github.com/seqsense/pcgol/mat"
)

// Volume is a box in the parent frame of a transform.
// Size holds full extents. Zero or negative components are accepted and
// produce a degenerate or inverted shape.
type Volume struct {
	Origin mat.Vec3 `yaml:"origin"`
	Size   mat.Vec3 `yaml:"size"`
}

// New returns a Volume centered at origin with the given size.
func New(origin, size mat.Vec3) Volume {
	return Volume{Origin: origin, Size: size}
}

// HalfExtent returns half of the size along the axis of the side.
func (v Volume) HalfExtent(s Side) float32 {
	return v.Size[s.Axis()] * 0.5
}

// Transform maps between the volume's parent frame and world space.
type Transform interface {
	PointToWorld(local mat.Vec3) mat.Vec3
	// DirectionToWorld applies rotation only.
	DirectionToWorld(local mat.Vec3) mat.Vec3
	PointToLocal(world mat.Vec3) mat.Vec3
}
