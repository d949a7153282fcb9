package scene

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/seqsense/pcdvolume/transform"
	"github.com/seqsense/pcdvolume/volume"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

func newCloud(t *testing.T, vecs []mat.Vec3) *pc.PointCloud {
	t.Helper()
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Fields: []string{"x", "y", "z", "label"},
			Size:   []int{4, 4, 4, 4},
			Type:   []string{"F", "F", "F", "U"},
			Count:  []int{1, 1, 1, 1},
			Width:  len(vecs),
			Height: 1,
		},
		Points: len(vecs),
	}
	pp.Data = make([]byte, len(vecs)*pp.Stride())
	if len(vecs) == 0 {
		return pp
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range vecs {
		it.SetVec3(v)
		it.Incr()
	}
	return pp
}

func binaryPCD(t *testing.T, vecs []mat.Vec3) []byte {
	t.Helper()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# .PCD v0.7 - Point Cloud Data file format\n"+
		"VERSION 0.7\n"+
		"FIELDS x y z\n"+
		"SIZE 4 4 4\n"+
		"TYPE F F F\n"+
		"COUNT 1 1 1\n"+
		"WIDTH %d\n"+
		"HEIGHT 1\n"+
		"VIEWPOINT 0 0 0 1 0 0 0\n"+
		"POINTS %d\n"+
		"DATA binary\n", len(vecs), len(vecs))
	for _, v := range vecs {
		if err := binary.Write(&buf, binary.LittleEndian, [3]float32(v)); err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

func TestLoadPCD(t *testing.T) {
	vecs := []mat.Vec3{
		{10.1, -20.2, 3.3},
		{1.1, 2.2, 4.3},
		{15.1, 21.2, 0.3},
	}
	o, err := LoadPCD("cloud", bytes.NewReader(binaryPCD(t, vecs)), 3)
	if err != nil {
		t.Fatal(err)
	}
	if o.Name != "cloud" || o.Layer() != 3 {
		t.Errorf("Unexpected object: %s, layer %d", o.Name, o.Layer())
	}
	if min := o.Bounds.Min(); !vec3Near(min, mat.Vec3{1.1, -20.2, 0.3}) {
		t.Errorf("Expected min (1.1, -20.2, 0.3), got %v", min)
	}
	if max := o.Bounds.Max(); !vec3Near(max, mat.Vec3{15.1, 21.2, 4.3}) {
		t.Errorf("Expected max (15.1, 21.2, 4.3), got %v", max)
	}
	if o.Cloud == nil || o.Cloud.Points != 3 {
		t.Error("Expected the cloud to be kept")
	}
}

func TestNewCloudObject_Empty(t *testing.T) {
	_, err := NewCloudObject("empty", newCloud(t, nil), 0)
	if !errors.Is(err, ErrNoPoint) {
		t.Errorf("Expected ErrNoPoint, got %v", err)
	}
}

func TestCrop(t *testing.T) {
	vecs := []mat.Vec3{
		{0, 0, 0},
		{5, 0, 0},
		{0.5, 0.5, 0.5},
		{0.9, -0.9, 0},
		{0, 3, 0},
		{0, 0, -0.2},
	}
	pp := newCloud(t, vecs)

	v := volume.New(mat.Vec3{}, mat.Vec3{2, 2, 2})
	q := volume.NewQuery(&v, transform.New())

	testCases := map[string]struct {
		invert   bool
		expected []mat.Vec3
	}{
		"Inside": {false, []mat.Vec3{vecs[0], vecs[2], vecs[3], vecs[5]}},
		"Invert": {true, []mat.Vec3{vecs[1], vecs[4]}},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			out, err := Crop(q, pp, tt.invert)
			if err != nil {
				t.Fatal(err)
			}
			if out.Points != len(tt.expected) || out.Width != len(tt.expected) {
				t.Fatalf("Expected %d points, got %d", len(tt.expected), out.Points)
			}
			if !reflect.DeepEqual(pp.Fields, out.Fields) {
				t.Errorf("Expected fields %v, got %v", pp.Fields, out.Fields)
			}
			points, err := Points(out)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(tt.expected, points) {
				t.Errorf("Expected:\n%v\nGot:\n%v", tt.expected, points)
			}
		})
	}
}

func TestClassifyCloud(t *testing.T) {
	v := volume.New(mat.Vec3{}, mat.Vec3{2, 2, 2})
	q := volume.NewQuery(&v, transform.New())

	testCases := map[string]struct {
		vecs     []mat.Vec3
		expected volume.Classification
	}{
		"Inside":  {[]mat.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, volume.Inside},
		"Border":  {[]mat.Vec3{{0, 0, 0}, {3, 0, 0}}, volume.Border},
		"Outside": {[]mat.Vec3{{3, 3, 3}, {4, 4, 4}}, volume.Outside},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			c, err := ClassifyCloud(q, newCloud(t, tt.vecs))
			if err != nil {
				t.Fatal(err)
			}
			if c != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, c)
			}
		})
	}
}
