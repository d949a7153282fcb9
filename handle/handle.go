// Package handle edits a volume by dragging the centers of its six faces,
// each constrained to the world direction of its face.
package handle

import (
	"github.com/seqsense/pcdvolume/volume"
	"github.com/seqsense/pcgol/mat"
)

// Handles holds the world positions and slide directions of the six faces.
type Handles struct {
	Positions  [volume.NumSides]mat.Vec3
	Directions [volume.NumSides]mat.Vec3
}

// FromQuery reads the handles of the current face centers.
func FromQuery(q *volume.Query) *Handles {
	h := &Handles{}
	for i := range h.Positions {
		s := volume.Side(i)
		h.Positions[i] = q.SidePosition(s)
		h.Directions[i] = q.SideDirection(s).Normalized()
	}
	return h
}

// Slide moves the handle of s by d along the outward direction of the face.
func (h *Handles) Slide(s volume.Side, d float32) {
	h.Positions[s] = h.Positions[s].Add(h.Directions[s].Mul(d))
}

// MoveTo moves the handle of s to the point on its slide axis nearest to p.
func (h *Handles) MoveTo(s volume.Side, p mat.Vec3) {
	dir := h.Directions[s]
	h.Slide(s, p.Sub(h.Positions[s]).Dot(dir))
}

// Volume rebuilds the volume in the local frame of t from the handles.
// Each axis takes the midpoint of its opposite handles as origin and
// their local distance as size.
func (h *Handles) Volume(t volume.Transform) volume.Volume {
	var v volume.Volume
	for axis := 0; axis < 3; axis++ {
		pos := h.Positions[2*axis]
		neg := h.Positions[2*axis+1]
		mid := t.PointToLocal(pos.Add(neg).Mul(0.5))
		v.Origin[axis] = mid[axis]
		v.Size[axis] = t.PointToLocal(pos)[axis] - t.PointToLocal(neg)[axis]
	}
	return v
}
