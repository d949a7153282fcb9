package volume

// Candidate is an object the overlap query can report.
type Candidate interface {
	WorldBounds() Bounds
	// Layer returns the layer index in [0, 31].
	Layer() int
}

// Source enumerates candidates in the host world.
type Source interface {
	Candidates() []Candidate
}

// ExcludeFunc returns true for candidates which must never be reported,
// such as the host of the query itself.
type ExcludeFunc func(Candidate) bool

// LayerMask selects layers by bit. Bit i selects layer i.
type LayerMask uint32

const AllLayers LayerMask = ^LayerMask(0)

func LayerMaskOf(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if 0 <= l && l < 32 {
			m |= 1 << uint(l)
		}
	}
	return m
}

// Has returns true if layer is selected. Layers outside [0, 31] never are.
func (m LayerMask) Has(layer int) bool {
	if layer < 0 || 32 <= layer {
		return false
	}
	return m&(1<<uint(layer)) != 0
}

// ObjectsInBounds returns the candidates of src in a layer of mask whose
// world bounds intersect the world bounds of the volume, in source order.
// This is a coarse test. Use ContainsPoint on representative points of the
// candidates if exact containment is needed.
func (q *Query) ObjectsInBounds(src Source, mask LayerMask, exclude ExcludeFunc) []Candidate {
	if src == nil || mask == 0 {
		return nil
	}
	bounds := q.Bounds()

	var out []Candidate
	for _, c := range src.Candidates() {
		if exclude != nil && exclude(c) {
			continue
		}
		if !mask.Has(c.Layer()) {
			continue
		}
		if bounds.Intersects(c.WorldBounds()) {
			out = append(out, c)
		}
	}
	return out
}
