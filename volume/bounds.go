package volume

import (
	"github.com/seqsense/pcgol/mat"
)

// Bounds is an axis-aligned box given by its center and full size.
type Bounds struct {
	Center mat.Vec3
	Size   mat.Vec3
}

// BoundsFromMinMax returns the bounds spanning min to max.
func BoundsFromMinMax(min, max mat.Vec3) Bounds {
	b := Bounds{}
	b.SetMinMax(min, max)
	return b
}

func (b Bounds) Extents() mat.Vec3 {
	return b.Size.Mul(0.5)
}

func (b Bounds) Min() mat.Vec3 {
	return b.Center.Sub(b.Extents())
}

func (b Bounds) Max() mat.Vec3 {
	return b.Center.Add(b.Extents())
}

func (b *Bounds) SetMinMax(min, max mat.Vec3) {
	b.Size = max.Sub(min)
	b.Center = min.Add(b.Size.Mul(0.5))
}

// Encapsulate grows the bounds to include p.
func (b *Bounds) Encapsulate(p mat.Vec3) {
	b.SetMinMax(vec3Min(b.Min(), p), vec3Max(b.Max(), p))
}

// Intersects returns true if the two bounds overlap. Touching faces count.
func (b Bounds) Intersects(o Bounds) bool {
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := o.Min(), o.Max()
	return !(bMax[0] < oMin[0] || oMax[0] < bMin[0] ||
		bMax[1] < oMin[1] || oMax[1] < bMin[1] ||
		bMax[2] < oMin[2] || oMax[2] < bMin[2])
}

// Contains returns true if p is inside or on the bounds.
func (b Bounds) Contains(p mat.Vec3) bool {
	min, max := b.Min(), b.Max()
	return !(p[0] < min[0] ||
		p[1] < min[1] ||
		p[2] < min[2] ||
		max[0] < p[0] ||
		max[1] < p[1] ||
		max[2] < p[2])
}

// IsValid returns false if any size component is negative.
func (b Bounds) IsValid() bool {
	return !(b.Size[0] < 0 || b.Size[1] < 0 || b.Size[2] < 0)
}

// BoundsOf returns the axis-aligned bounds enclosing points.
// The zero Bounds is returned for an empty slice.
func BoundsOf(points []mat.Vec3) Bounds {
	b, _ := BoundsOfPoints(points)
	return b
}

// BoundsOfPoints is BoundsOf reporting whether points was non-empty.
func BoundsOfPoints(points []mat.Vec3) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	var center mat.Vec3
	for _, p := range points {
		center = center.Add(p)
	}
	center = center.Mul(1 / float32(len(points)))

	b := Bounds{Center: center}
	for _, p := range points {
		b.Encapsulate(p)
	}
	return b, true
}

func vec3Min(a, b mat.Vec3) mat.Vec3 {
	var out mat.Vec3
	for i := range out {
		if a[i] < b[i] {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}
	return out
}

func vec3Max(a, b mat.Vec3) mat.Vec3 {
	var out mat.Vec3
	for i := range out {
		if a[i] > b[i] {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}
	return out
}
