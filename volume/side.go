package volume

import (
	"errors"
	"fmt"

	"github.com/seqsense/pcgol/mat"
)

// ErrInvalidSide is the panic cause for side indices outside [0, 5].
var ErrInvalidSide = errors.New("invalid side")

// Side indexes a face of the box. Opposite faces are paired.
type Side int

const (
	SideRight Side = iota
	SideLeft
	SideUp
	SideDown
	SideForward
	SideBack
)

// NumSides is the number of faces of a box.
const NumSides = 6

var sideNames = [NumSides]string{"right", "left", "up", "down", "forward", "back"}

func (s Side) Valid() bool {
	return 0 <= s && s < NumSides
}

func (s Side) mustValid() {
	if !s.Valid() {
		panic(fmt.Errorf("%w: %d", ErrInvalidSide, int(s)))
	}
}

// Axis returns 0, 1 or 2 for X, Y or Z.
func (s Side) Axis() int {
	s.mustValid()
	return int(s) / 2
}

// Sign returns 1 for the positive face of the axis and -1 for the negative one.
func (s Side) Sign() float32 {
	s.mustValid()
	if s%2 == 0 {
		return 1
	}
	return -1
}

func (s Side) Opposite() Side {
	s.mustValid()
	return s ^ 1
}

// Unit returns the local unit vector pointing out of the face.
func (s Side) Unit() mat.Vec3 {
	var v mat.Vec3
	v[s.Axis()] = s.Sign()
	return v
}

func (s Side) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}
