package pawn

import "cogentcore.org/core/math32"

// Movement speeds in units per second.
const (
	WalkSpeed = 1.5
	RunSpeed  = 3.0
)

// SpeedModifier is the run toggle. The latest press or release wins.
type SpeedModifier struct {
	active bool
}

func (s *SpeedModifier) Press()   { s.active = true }
func (s *SpeedModifier) Release() { s.active = false }
func (s *SpeedModifier) Active() bool {
	return s.active
}

// Step integrates one frame of intent into a local-space position delta.
func Step(elapsed float32, intent math32.Vector3, speedActive bool) math32.Vector3 {
	if intent.LengthSquared() == 0 {
		return math32.Vector3{}
	}
	if !finite(elapsed) || elapsed <= 0 || !finiteVec(intent) {
		return math32.Vector3{}
	}
	speed := float32(WalkSpeed)
	if speedActive {
		speed = RunSpeed
	}
	return intent.Normal().MulScalar(speed * elapsed)
}
