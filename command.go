package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/seqsense/pcdvolume/handle"
	"github.com/seqsense/pcdvolume/scene"
	"github.com/seqsense/pcdvolume/transform"
	"github.com/seqsense/pcdvolume/volume"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

const hostName = "volume"

var (
	errInvalidSide = errors.New("side must be 0-5")
	errNoCloud     = errors.New("object has no point cloud")
)

type pcdIO interface {
	exportPCD(name string) (io.WriteCloser, error)
}

type commandContext struct {
	volume    volume.Volume
	initial   volume.Volume
	transform *transform.Transform
	euler     mat.Vec3
	query     *volume.Query

	scene *scene.Scene
	host  *scene.Object
	mask  volume.LayerMask

	history *history
	pcdIO   pcdIO
}

func newCommandContext(v volume.Volume, t *transform.Transform, s *scene.Scene, pcdio pcdIO) *commandContext {
	if t == nil {
		t = transform.New()
	}
	if s == nil {
		s = scene.New()
	}
	c := &commandContext{
		volume:    v,
		initial:   v,
		transform: t,
		scene:     s,
		mask:      volume.AllLayers,
		history:   newHistory(maxHistoryDefault),
		pcdIO:     pcdio,
	}
	c.query = volume.NewQuery(&c.volume, c.transform)
	c.host = &scene.Object{Name: hostName, VolumeHost: true}
	if err := s.Add(c.host); err != nil {
		// Another object has the same name. The host still excludes itself
		// by identity, so it just stays out of the scene.
		log.Warn().Err(err).Str("name", hostName).Msg("volume host not registered")
	}
	c.updateHost()
	return c
}

func (c *commandContext) updateHost() {
	c.host.Bounds = c.query.Bounds()
}

func (c *commandContext) Volume() volume.Volume {
	return c.volume
}

func (c *commandContext) SetVolume(v volume.Volume) {
	c.history.push(c.volume)
	c.volume = v
	c.updateHost()
	log.Debug().
		Floats32("origin", v.Origin[:]).
		Floats32("size", v.Size[:]).
		Msg("volume updated")
}

func (c *commandContext) SetOrigin(o mat.Vec3) {
	v := c.volume
	v.Origin = o
	c.SetVolume(v)
}

func (c *commandContext) SetSize(s mat.Vec3) {
	v := c.volume
	v.Size = s
	c.SetVolume(v)
}

func (c *commandContext) Undo() bool {
	v, ok := c.history.undo()
	if ok {
		c.volume = v
		c.updateHost()
	}
	return ok
}

// Reset restores the volume given at startup and drops the undo history.
func (c *commandContext) Reset() {
	c.volume = c.initial
	c.history.clear()
	c.updateHost()
	log.Debug().Msg("volume reset")
}

func (c *commandContext) Position() mat.Vec3 {
	return c.transform.Position
}

func (c *commandContext) SetPosition(p mat.Vec3) {
	c.transform.Position = p
	c.updateHost()
}

func (c *commandContext) Rotation() mat.Vec3 {
	return c.euler
}

// SetRotation sets the rotation in euler degrees.
func (c *commandContext) SetRotation(e mat.Vec3) {
	c.euler = e
	c.transform.SetEuler(e[0], e[1], e[2])
	c.updateHost()
}

func (c *commandContext) Scale() mat.Vec3 {
	return c.transform.Scale
}

func (c *commandContext) SetScale(s mat.Vec3) {
	c.transform.Scale = s
	c.updateHost()
}

func (c *commandContext) SetMask(m volume.LayerMask) {
	c.mask = m
}

func (c *commandContext) Corners() [8]mat.Vec3 {
	return c.query.Corners()
}

func (c *commandContext) Bounds() volume.Bounds {
	return c.query.Bounds()
}

func (c *commandContext) SidePosition(s volume.Side) (mat.Vec3, error) {
	if !s.Valid() {
		return mat.Vec3{}, errInvalidSide
	}
	return c.query.SidePosition(s), nil
}

func (c *commandContext) SideDirection(s volume.Side) (mat.Vec3, error) {
	if !s.Valid() {
		return mat.Vec3{}, errInvalidSide
	}
	return c.query.SideDirection(s), nil
}

func (c *commandContext) Inside(p mat.Vec3) bool {
	return c.query.ContainsPoint(p)
}

// Slide moves a face along its world direction and updates the volume.
func (c *commandContext) Slide(s volume.Side, d float32) error {
	if !s.Valid() {
		return errInvalidSide
	}
	h := handle.FromQuery(c.query)
	h.Slide(s, d)
	c.SetVolume(h.Volume(c.transform))
	return nil
}

// Objects returns the objects overlapping the volume in the layers of mask,
// or of the context mask if mask is zero.
func (c *commandContext) Objects(mask volume.LayerMask) []*scene.Object {
	if mask == 0 {
		mask = c.mask
	}
	var out []*scene.Object
	for _, o := range c.query.ObjectsInBounds(c.scene, mask, scene.ExcludeHosts(c.host)) {
		out = append(out, o.(*scene.Object))
	}
	return out
}

// Classify returns where the object lies. Point cloud objects are tested
// point by point, other objects by the corners of their bounds.
func (c *commandContext) Classify(name string) (volume.Classification, error) {
	o, ok := c.scene.Get(name)
	if !ok {
		return volume.Outside, fmt.Errorf("%s: %w", name, scene.ErrNotFound)
	}
	if o.Cloud != nil {
		return scene.ClassifyCloud(c.query, o.Cloud)
	}
	return c.query.Classify(boundsCorners(o.Bounds)), nil
}

// Crop writes the points of the object contained by the volume.
func (c *commandContext) Crop(name, out string, invert bool) (int, error) {
	o, ok := c.scene.Get(name)
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, scene.ErrNotFound)
	}
	if o.Cloud == nil {
		return 0, fmt.Errorf("%s: %w", name, errNoCloud)
	}
	pp, err := scene.Crop(c.query, o.Cloud, invert)
	if err != nil {
		return 0, err
	}
	w, err := c.pcdIO.exportPCD(out)
	if err != nil {
		return 0, err
	}
	if err := pc.Marshal(pp, w); err != nil {
		w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	log.Info().Str("object", name).Str("out", out).Int("points", pp.Points).Msg("cropped")
	return pp.Points, nil
}

func boundsCorners(b volume.Bounds) []mat.Vec3 {
	min, max := b.Min(), b.Max()
	out := make([]mat.Vec3, 0, 8)
	for i := 0; i < 8; i++ {
		var p mat.Vec3
		for a := 0; a < 3; a++ {
			if i&(1<<uint(a)) == 0 {
				p[a] = min[a]
			} else {
				p[a] = max[a]
			}
		}
		out = append(out, p)
	}
	return out
}
