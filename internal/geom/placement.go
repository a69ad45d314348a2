package geom

import "cogentcore.org/core/math32"

// Local axes of every actor. Forward is +Z and right is -X, which keeps the
// frame right-handed with +Y up.
var (
	LocalForward = math32.Vec3(0, 0, 1)
	LocalRight   = math32.Vec3(-1, 0, 0)
	LocalUp      = math32.Vec3(0, 1, 0)
)

// Placement is the spawn-time transform handed to an actor.
type Placement struct {
	Position math32.Vector3
	Rotation math32.Quat
	Scale    math32.Vector3
}

// NewPlacement returns a placement at pos with identity rotation and unit scale.
func NewPlacement(pos math32.Vector3) Placement {
	return Placement{
		Position: pos,
		Rotation: math32.NewQuat(0, 0, 0, 1),
		Scale:    math32.Vec3(1, 1, 1),
	}
}

// WithRotation returns a copy of p using rot.
func (p Placement) WithRotation(rot math32.Quat) Placement {
	p.Rotation = rot
	return p
}

func (p Placement) rotation() math32.Quat {
	if p.Rotation.IsNil() {
		return math32.NewQuat(0, 0, 0, 1)
	}
	return p.Rotation
}

func (p Placement) ForwardVector() math32.Vector3 {
	return LocalForward.MulQuat(p.rotation())
}

func (p Placement) RightVector() math32.Vector3 {
	return LocalRight.MulQuat(p.rotation())
}

func (p Placement) UpVector() math32.Vector3 {
	return LocalUp.MulQuat(p.rotation())
}

// EulerPlacement builds a placement from a position and Euler angles in degrees.
func EulerPlacement(pos, eulerDeg math32.Vector3) Placement {
	p := NewPlacement(pos)
	if eulerDeg != (math32.Vector3{}) {
		p.Rotation = math32.NewQuatEuler(eulerDeg.MulScalar(math32.DegToRadFactor))
	}
	return p
}
