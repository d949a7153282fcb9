// Package scene is an in-memory world of objects with world bounds and
// layers, enumerated as candidates of volume overlap queries.
package scene

import (
	"errors"
	"sync"

	"github.com/seqsense/pcdvolume/volume"
	"github.com/seqsense/pcgol/pc"
)

var (
	ErrDuplicatedName = errors.New("duplicated object name")
	ErrNotFound       = errors.New("object not found")
)

// Object is a named entry of the scene.
type Object struct {
	Name       string
	Bounds     volume.Bounds
	LayerIndex int
	// VolumeHost marks objects hosting their own volume query.
	// They are never reported as contents of a volume.
	VolumeHost bool

	// Cloud is set for objects loaded from point cloud data.
	Cloud *pc.PointCloud
}

func (o *Object) WorldBounds() volume.Bounds {
	return o.Bounds
}

func (o *Object) Layer() int {
	return o.LayerIndex
}

// Scene is a set of objects. It is safe for concurrent use.
type Scene struct {
	mu      sync.RWMutex
	objects []*Object
}

func New() *Scene {
	return &Scene{}
}

func (s *Scene) Add(o *Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.objects {
		if e.Name == o.Name {
			return ErrDuplicatedName
		}
	}
	s.objects = append(s.objects, o)
	return nil
}

func (s *Scene) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.objects {
		if o.Name == name {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Scene) Get(name string) (*Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Candidates returns a snapshot of the objects in insertion order.
func (s *Scene) Candidates() []volume.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]volume.Candidate, len(s.objects))
	for i, o := range s.objects {
		out[i] = o
	}
	return out
}

// ExcludeHosts returns a filter dropping self and any volume host.
// self may be nil.
func ExcludeHosts(self volume.Candidate) volume.ExcludeFunc {
	return func(c volume.Candidate) bool {
		if self != nil && c == self {
			return true
		}
		o, ok := c.(*Object)
		return ok && o.VolumeHost
	}
}
