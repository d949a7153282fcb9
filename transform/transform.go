// Package transform provides a position, rotation and scale hierarchy
// mapping points between local and world space.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/seqsense/pcgol/mat"
)

// Transform places a local frame in its parent's frame, or in world space
// if Parent is nil.
type Transform struct {
	Position mat.Vec3
	Rotation mgl32.Quat
	Scale    mat.Vec3
	Parent   *Transform
}

// New returns an identity transform.
func New() *Transform {
	return &Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mat.Vec3{1, 1, 1},
	}
}

// Euler returns the rotation of z, x then y degrees around the local axes.
func Euler(x, y, z float32) mgl32.Quat {
	qx := mgl32.QuatRotate(mgl32.DegToRad(x), mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(mgl32.DegToRad(y), mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(mgl32.DegToRad(z), mgl32.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz).Normalize()
}

func (t *Transform) SetEuler(x, y, z float32) {
	t.Rotation = Euler(x, y, z)
}

// Rotate applies an additional rotation of ang degrees around a local axis.
func (t *Transform) Rotate(axis mat.Vec3, ang float32) {
	q := mgl32.QuatRotate(mgl32.DegToRad(ang), mgl32.Vec3(axis.Normalized()))
	t.Rotation = t.Rotation.Mul(q).Normalize()
}

// LocalMatrix returns translation * rotation * scale.
func (t *Transform) LocalMatrix() mat.Mat4 {
	r := mat.Mat4(t.Rotation.Normalize().Mat4())
	return mat.Translate(t.Position[0], t.Position[1], t.Position[2]).
		MulAffine(r).
		MulAffine(mat.Scale(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// Matrix returns the local to world matrix through all parents.
func (t *Transform) Matrix() mat.Mat4 {
	m := t.LocalMatrix()
	for p := t.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().MulAffine(m)
	}
	return m
}

// WorldRotation returns the rotation of the frame in world space.
// Non-uniform parent scale is not reflected.
func (t *Transform) WorldRotation() mgl32.Quat {
	q := t.Rotation
	for p := t.Parent; p != nil; p = p.Parent {
		q = p.Rotation.Mul(q)
	}
	return q.Normalize()
}

func (t *Transform) PointToWorld(local mat.Vec3) mat.Vec3 {
	return t.Matrix().TransformAffine(local)
}

// DirectionToWorld rotates local into world space. Scale is not applied.
func (t *Transform) DirectionToWorld(local mat.Vec3) mat.Vec3 {
	return mat.Vec3(t.WorldRotation().Rotate(mgl32.Vec3(local)))
}

func (t *Transform) PointToLocal(world mat.Vec3) mat.Vec3 {
	return t.Matrix().InvAffine().TransformAffine(world)
}

// Right, Up and Forward return the world directions of the local axes.
func (t *Transform) Right() mat.Vec3 {
	return t.DirectionToWorld(mat.Vec3{1, 0, 0})
}

func (t *Transform) Up() mat.Vec3 {
	return t.DirectionToWorld(mat.Vec3{0, 1, 0})
}

func (t *Transform) Forward() mat.Vec3 {
	return t.DirectionToWorld(mat.Vec3{0, 0, 1})
}
