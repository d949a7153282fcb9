package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/seqsense/pcdvolume/scene"
	"github.com/seqsense/pcdvolume/transform"
	"github.com/seqsense/pcdvolume/volume"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

type pcdIOBuffer struct {
	files map[string]*bytes.Buffer
}

func (b *pcdIOBuffer) exportPCD(name string) (io.WriteCloser, error) {
	buf := &bytes.Buffer{}
	b.files[name] = buf
	return nopWriteCloser{buf}, nil
}

func newTestConsole(t *testing.T) (*console, *pcdIOBuffer) {
	t.Helper()
	s := scene.New()
	objects := []*scene.Object{
		{Name: "inner", Bounds: volume.BoundsFromMinMax(mat.Vec3{-0.5, -0.5, -0.5}, mat.Vec3{0.5, 0.5, 0.5})},
		{Name: "edge", Bounds: volume.BoundsFromMinMax(mat.Vec3{0.5, 0, 0}, mat.Vec3{3, 0.5, 0.5}), LayerIndex: 1},
		{Name: "far", Bounds: volume.BoundsFromMinMax(mat.Vec3{5, 5, 5}, mat.Vec3{6, 6, 6})},
		{Name: "sibling", Bounds: volume.BoundsFromMinMax(mat.Vec3{0, 0, 0}, mat.Vec3{1, 1, 1}), VolumeHost: true},
	}
	for _, o := range objects {
		if err := s.Add(o); err != nil {
			t.Fatal(err)
		}
	}
	vecs := []mat.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}, {4, 0, 0}}
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version:   0.7,
			Fields:    []string{"x", "y", "z"},
			Size:      []int{4, 4, 4},
			Type:      []string{"F", "F", "F"},
			Count:     []int{1, 1, 1},
			Width:     len(vecs),
			Height:    1,
			Viewpoint: []float32{0, 0, 0, 1, 0, 0, 0},
		},
		Points: len(vecs),
	}
	pp.Data = make([]byte, len(vecs)*pp.Stride())
	it, err := pp.Vec3Iterator()
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range vecs {
		it.SetVec3(v)
		it.Incr()
	}
	cloud, err := scene.NewCloudObject("cloud", pp, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Add(cloud); err != nil {
		t.Fatal(err)
	}

	pio := &pcdIOBuffer{files: make(map[string]*bytes.Buffer)}
	v := volume.New(mat.Vec3{}, mat.Vec3{2, 2, 2})
	return &console{cmd: newCommandContext(v, transform.New(), s, pio)}, pio
}

func TestConsole(t *testing.T) {
	testCases := []struct {
		lines    []string
		expected string
		err      error
	}{
		{[]string{"origin"}, "0.000 0.000 0.000", nil},
		{[]string{"size 1 2 3"}, "1.000 2.000 3.000", nil},
		{[]string{"size 1 2"}, "", errArgumentNumber},
		{[]string{"unknown"}, "", errInvalidCommand},
		{[]string{""}, "", nil},
		{[]string{"bounds"}, "0.000 0.000 0.000\n2.000 2.000 2.000", nil},
		{[]string{"side_position 0"}, "1.000 0.000 0.000", nil},
		{[]string{"side_position 6"}, "", errInvalidSide},
		{[]string{"side_position 1.7"}, "", errInvalidSide},
		{[]string{"side_direction -1"}, "", errInvalidSide},
		{[]string{"slide 0.5 1"}, "", errInvalidSide},
		{[]string{"side_direction 5"}, "0.000 0.000 -1.000", nil},
		{[]string{"inside 0.9 0.9 0.9"}, "1.000", nil},
		{[]string{"inside 1.1 0 0"}, "0.000", nil},
		{[]string{"position 10 0 0", "inside 0 0 0"}, "0.000", nil},
		{[]string{"scale 2 1 1", "bounds"}, "0.000 0.000 0.000\n4.000 2.000 2.000", nil},
		{[]string{"slide 0 1"}, "0.500 0.000 0.000\n3.000 2.000 2.000", nil},
		{[]string{"slide 0 1", "undo"}, "0.000 0.000 0.000\n2.000 2.000 2.000", nil},
		{[]string{"undo"}, "", errors.New("no history")},
		{[]string{"slide 0 1", "size 3 3 3", "reset"}, "0.000 0.000 0.000\n2.000 2.000 2.000", nil},
		{[]string{"slide 0 1", "reset", "undo"}, "", errors.New("no history")},
		{[]string{"objects"}, "inner\nedge\ncloud", nil},
		{[]string{"objects 1"}, "edge", nil},
		{[]string{"objects 1 2"}, "edge\ncloud", nil},
		{[]string{"objects 40"}, "", nil},
		{[]string{"classify inner"}, "inside", nil},
		{[]string{"classify edge"}, "border", nil},
		{[]string{"classify far"}, "outside", nil},
		{[]string{"classify cloud"}, "border", nil},
		{[]string{"classify none"}, "", scene.ErrNotFound},
		{[]string{"crop inner out.pcd"}, "", errNoCloud},
		{[]string{"crop cloud"}, "", errArgumentNumber},
		{[]string{"max_history 3"}, "3.000", nil},
	}
	for _, tt := range testCases {
		tt := tt
		t.Run(strings.Join(tt.lines, ","), func(t *testing.T) {
			c, _ := newTestConsole(t)
			var res string
			var err error
			for _, l := range tt.lines {
				res, err = c.Run(l)
			}
			switch {
			case tt.err == nil && err != nil:
				t.Fatalf("Unexpected error: %v", err)
			case tt.err != nil && err == nil:
				t.Fatalf("Expected error: %v", tt.err)
			case tt.err != nil && !errors.Is(err, tt.err) && err.Error() != tt.err.Error():
				t.Fatalf("Expected error: %v, got: %v", tt.err, err)
			}
			if res != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, res)
			}
		})
	}
}

func TestConsole_Crop(t *testing.T) {
	c, pio := newTestConsole(t)

	testCases := map[string]struct {
		line     string
		expected []mat.Vec3
	}{
		"Inside": {"crop cloud in.pcd", []mat.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}},
		"Invert": {"crop cloud out.pcd invert", []mat.Vec3{{4, 0, 0}}},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			res, err := c.Run(tt.line)
			if err != nil {
				t.Fatal(err)
			}
			if res != strconv.Itoa(len(tt.expected)) {
				t.Errorf("Expected %d points, got %s", len(tt.expected), res)
			}
			out := pio.files[strings.Fields(tt.line)[2]]
			if out == nil {
				t.Fatal("PCD is not exported")
			}
			pp, err := pc.Unmarshal(out)
			if err != nil {
				t.Fatal(err)
			}
			points, err := scene.Points(pp)
			if err != nil {
				t.Fatal(err)
			}
			if len(points) != len(tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, points)
			}
			for i := range points {
				if !points[i].Equal(tt.expected[i]) {
					t.Errorf("Expected %v, got %v", tt.expected[i], points[i])
				}
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volume.yaml")
	yaml := `
volume: {origin: [0, 0, 0], size: [2, 2, 2]}
transform: {rotation: [0, 45, 0]}
objects:
  - {name: a, center: [0, 0, 0], size: [0.5, 0.5, 0.5]}
  - {name: b, center: [1.25, 0, 1.25], size: [0.1, 0.1, 0.1]}
log: {level: error}
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	in := strings.NewReader("objects\nclassify a\nclassify b\nrotation\nbad command\n")
	var out bytes.Buffer
	if err := run(path, "", in, &out); err != nil {
		t.Fatal(err)
	}
	expected := "a\nb\ninside\nborder\n0.000 45.000 0.000\n"
	if out.String() != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, out.String())
	}
}

func TestRun_EnvWithoutConfig(t *testing.T) {
	defer func(l zerolog.Logger) { log.Logger = l }(log.Logger)
	t.Setenv("PCDVOLUME_LOG_LEVEL", "debug")

	var out bytes.Buffer
	if err := run("", "", strings.NewReader("size\n"), &out); err != nil {
		t.Fatal(err)
	}
	if l := log.Logger.GetLevel(); l != zerolog.DebugLevel {
		t.Errorf("Expected level debug from environment, got %s", l)
	}
	if out.String() != "1.000 1.000 1.000\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}

	if err := run("", "warn", strings.NewReader(""), &out); err != nil {
		t.Fatal(err)
	}
	if l := log.Logger.GetLevel(); l != zerolog.WarnLevel {
		t.Errorf("Expected flag to override environment, got %s", l)
	}
}
