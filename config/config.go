// Package config loads the volume, its transform and the scene objects
// from a YAML file, with logging settings overridable by environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/seqsense/pcdvolume/volume"
	"github.com/seqsense/pcgol/mat"
)

var (
	ErrNoName        = errors.New("object name is empty")
	ErrDuplicateName = errors.New("duplicated object name")
	ErrInvalidLayer  = errors.New("layer must be in [0, 31]")
	ErrNoShape       = errors.New("object needs either pcd or size")
)

type Config struct {
	Volume    volume.Volume   `yaml:"volume"`
	Transform TransformConfig `yaml:"transform"`
	LayerMask []int           `yaml:"layer_mask"`
	Objects   []ObjectConfig  `yaml:"objects"`
	Log       LogConfig       `yaml:"log"`
}

type TransformConfig struct {
	Position mat.Vec3 `yaml:"position"`
	// Rotation is in euler degrees.
	Rotation mat.Vec3 `yaml:"rotation"`
	Scale    mat.Vec3 `yaml:"scale"`
}

type ObjectConfig struct {
	Name       string   `yaml:"name"`
	Layer      int      `yaml:"layer"`
	Center     mat.Vec3 `yaml:"center"`
	Size       mat.Vec3 `yaml:"size"`
	VolumeHost bool     `yaml:"volume_host"`
	PCD        string   `yaml:"pcd"`
}

type LogConfig struct {
	Level     string `yaml:"level" env:"PCDVOLUME_LOG_LEVEL"`
	File      string `yaml:"file" env:"PCDVOLUME_LOG_FILE"`
	Formatted bool   `yaml:"formatted" env:"PCDVOLUME_LOG_FORMATTED"`
	MaxSize   int    `yaml:"max_size" env:"PCDVOLUME_LOG_MAX_SIZE"`
	MaxFiles  int    `yaml:"max_files" env:"PCDVOLUME_LOG_MAX_FILES"`
}

// Default returns a unit volume under an identity transform.
func Default() *Config {
	return &Config{
		Volume: volume.New(mat.Vec3{}, mat.Vec3{1, 1, 1}),
		Transform: TransformConfig{
			Scale: mat.Vec3{1, 1, 1},
		},
		Log: LogConfig{
			Level:    "info",
			MaxSize:  10,
			MaxFiles: 5,
		},
	}
}

// Load reads the file at path over the defaults and applies environment
// overrides.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := LoadEnv(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Decode parses YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	names := make(map[string]bool)
	for i, o := range c.Objects {
		if o.Name == "" {
			return fmt.Errorf("objects[%d]: %w", i, ErrNoName)
		}
		if names[o.Name] {
			return fmt.Errorf("objects[%d] %s: %w", i, o.Name, ErrDuplicateName)
		}
		names[o.Name] = true
		if o.Layer < 0 || 31 < o.Layer {
			return fmt.Errorf("objects[%d] %s: %w", i, o.Name, ErrInvalidLayer)
		}
		if o.PCD == "" && o.Size == (mat.Vec3{}) {
			return fmt.Errorf("objects[%d] %s: %w", i, o.Name, ErrNoShape)
		}
	}
	for _, l := range c.LayerMask {
		if l < 0 || 31 < l {
			return fmt.Errorf("layer_mask %d: %w", l, ErrInvalidLayer)
		}
	}
	return nil
}

// Mask returns the configured layers, or all layers if none is given.
func (c *Config) Mask() volume.LayerMask {
	if len(c.LayerMask) == 0 {
		return volume.AllLayers
	}
	return volume.LayerMaskOf(c.LayerMask...)
}
