package scene

import (
	"errors"
	"fmt"
	"io"

	"github.com/seqsense/pcdvolume/volume"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

var ErrNoPoint = errors.New("no point")

// LoadPCD reads a point cloud and returns an object bounding it.
func LoadPCD(name string, r io.Reader, layer int) (*Object, error) {
	pp, err := pc.Unmarshal(r)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return NewCloudObject(name, pp, layer)
}

// NewCloudObject returns an object bounding the points of pp.
func NewCloudObject(name string, pp *pc.PointCloud, layer int) (*Object, error) {
	if pp.Points == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoPoint)
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	min, max, err := pc.MinMaxVec3(it)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Object{
		Name:       name,
		Bounds:     volume.BoundsFromMinMax(min, max),
		LayerIndex: layer,
		Cloud:      pp,
	}, nil
}

// Points returns the positions of all points of pp.
func Points(pp *pc.PointCloud) ([]mat.Vec3, error) {
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	out := make([]mat.Vec3, 0, pp.Points)
	for i := 0; i < pp.Points; i++ {
		out = append(out, it.Vec3())
		it.Incr()
	}
	return out, nil
}

// ClassifyCloud returns where the points of pp lie relative to the volume.
func ClassifyCloud(q *volume.Query, pp *pc.PointCloud) (volume.Classification, error) {
	points, err := Points(pp)
	if err != nil {
		return volume.Outside, err
	}
	return q.Classify(points), nil
}

// Crop returns a copy of pp holding the points contained by the volume,
// or the points not contained if invert is set. All fields are kept.
func Crop(q *volume.Query, pp *pc.PointCloud, invert bool) (*pc.PointCloud, error) {
	contains := q.Contains()
	return passThrough(pp, func(p mat.Vec3) bool {
		return contains(p) != invert
	})
}

func passThrough(pp *pc.PointCloud, fn func(mat.Vec3) bool) (*pc.PointCloud, error) {
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	pcNew := &pc.PointCloud{
		PointCloudHeader: pp.PointCloudHeader.Clone(),
		Data:             make([]byte, len(pp.Data)),
	}

	j := 0
	is, js, cnt := 0, 0, 0
	for i := 0; i < pp.Points; i++ {
		if fn(it.Vec3()) {
			if cnt == 0 {
				is, js = i, j
			}
			cnt++
			j++
		} else if cnt > 0 {
			pc.Copy(pcNew, js, pp, is, cnt)
			cnt = 0
		}
		it.Incr()
	}
	if cnt > 0 {
		pc.Copy(pcNew, js, pp, is, cnt)
	}

	pcNew.Points = j
	pcNew.Width = j
	pcNew.Height = 1
	pcNew.Data = pcNew.Data[: j*pcNew.Stride() : j*pcNew.Stride()]
	return pcNew, nil
}
