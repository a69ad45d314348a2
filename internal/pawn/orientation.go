package pawn

import (
	"math"

	"cogentcore.org/core/math32"
)

const (
	// degenerateProjectionSq is the squared horizontal length below which a
	// spawn forward vector counts as vertical.
	degenerateProjectionSq = 1e-4
	rightAxisYawOffset     = 90.0

	MinPitch = -90
	MaxPitch = 90
)

// Orientation is a pawn's view angles in degrees. Yaw stays in (-180, 180],
// pitch in [-90, 90], and roll is always 0.
type Orientation struct {
	Yaw   float32
	Pitch float32
	Roll  float32
}

// InitialOrientation derives the spawn yaw from the placement basis vectors.
// Only the heading survives: pitch and roll of the spawn rotation are dropped.
func InitialOrientation(forward, right math32.Vector3) Orientation {
	dir := math32.Vec3(forward.X, 0, forward.Z)
	offset := 0.0
	if dir.LengthSquared() < degenerateProjectionSq {
		dir = math32.Vec3(right.X, 0, right.Z)
		offset = rightAxisYawOffset
	}
	if dir.LengthSquared() < degenerateProjectionSq || !finiteVec(dir) {
		return Orientation{}
	}
	dir = dir.Normal()

	yaw := math.Atan2(float64(dir.X), float64(dir.Z))*180.0/math.Pi + offset
	return Orientation{Yaw: Wrap180(float32(yaw))}
}

// Turn applies a yaw/pitch delta. Positive yaw delta turns toward the pawn's
// right; pitch is clamped rather than wrapped.
func (o *Orientation) Turn(deltaYaw, deltaPitch float32) {
	if finite(deltaYaw) {
		o.Yaw = Wrap180(o.Yaw - deltaYaw)
	}
	if finite(deltaPitch) {
		o.Pitch = ClampPitch(o.Pitch + deltaPitch)
	}
	o.Roll = 0
}

// Quat returns the rotation yaw about +Y followed by pitch about the local X axis.
func (o Orientation) Quat() math32.Quat {
	yaw := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.DegToRad(o.Yaw))
	pitch := math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), math32.DegToRad(o.Pitch))
	return yaw.Mul(pitch)
}

// Wrap180 maps a into (-180, 180]. Non-finite input maps to 0.
func Wrap180(a float32) float32 {
	if !finite(a) {
		return 0
	}
	v := float64(a)
	v -= 360 * math.Ceil((v-180)/360)
	out := float32(v)
	// float32 rounding can land exactly on the open bound
	if out <= -180 {
		out += 360
	}
	if out > 180 {
		out -= 360
	}
	return out
}

// ClampPitch limits p to [MinPitch, MaxPitch]. Non-finite input maps to 0.
func ClampPitch(p float32) float32 {
	if !finite(p) {
		return 0
	}
	if p < MinPitch {
		return MinPitch
	}
	if p > MaxPitch {
		return MaxPitch
	}
	return p
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func finiteVec(v math32.Vector3) bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}
