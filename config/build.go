package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/seqsense/pcdvolume/scene"
	"github.com/seqsense/pcdvolume/transform"
	"github.com/seqsense/pcdvolume/volume"
)

// NewTransform returns the configured transform.
func (c *Config) NewTransform() *transform.Transform {
	t := transform.New()
	t.Position = c.Transform.Position
	t.SetEuler(c.Transform.Rotation[0], c.Transform.Rotation[1], c.Transform.Rotation[2])
	t.Scale = c.Transform.Scale
	return t
}

// NewScene builds the configured objects. PCD paths are relative to dir.
func (c *Config) NewScene(dir string) (*scene.Scene, error) {
	s := scene.New()
	for _, oc := range c.Objects {
		o, err := oc.newObject(dir)
		if err != nil {
			return nil, err
		}
		if err := s.Add(o); err != nil {
			return nil, fmt.Errorf("%s: %w", oc.Name, err)
		}
	}
	return s, nil
}

func (oc ObjectConfig) newObject(dir string) (*scene.Object, error) {
	if oc.PCD == "" {
		return &scene.Object{
			Name:       oc.Name,
			Bounds:     volume.Bounds{Center: oc.Center, Size: oc.Size},
			LayerIndex: oc.Layer,
			VolumeHost: oc.VolumeHost,
		}, nil
	}
	path := oc.PCD
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	o, err := scene.LoadPCD(oc.Name, f, oc.Layer)
	if err != nil {
		return nil, err
	}
	o.VolumeHost = oc.VolumeHost
	return o, nil
}
