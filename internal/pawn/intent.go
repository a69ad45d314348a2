package pawn

import (
	"cogentcore.org/core/math32"

	"github.com/Versifine/flycam/internal/geom"
)

// Axis channel names the controller binds.
const (
	MoveForward = "MoveForward"
	MoveRight   = "MoveRight"
	MoveUp      = "MoveUp"
	MoveDown    = "MoveDown"
	TurnRight   = "TurnRight"
	TurnUp      = "TurnUp"

	// Speed is the action channel for the run modifier.
	Speed = "Speed"
)

// Intent accumulates the movement intent of one frame in the pawn's local
// basis. Only the sign of horizontal contributions matters.
type Intent struct {
	v math32.Vector3
}

// Contribute adds one axis sample. MoveUp and MoveDown are digital: they add a
// fixed unit step whatever value the binding reports.
func (in *Intent) Contribute(channel string, value float32) {
	switch channel {
	case MoveForward:
		in.v = in.v.Add(geom.LocalForward.MulScalar(sign(value)))
	case MoveRight:
		in.v = in.v.Add(geom.LocalRight.MulScalar(sign(value)))
	case MoveUp:
		in.v = in.v.Add(geom.LocalUp)
	case MoveDown:
		in.v = in.v.Sub(geom.LocalUp)
	}
}

// Consume returns the accumulated intent and resets it.
func (in *Intent) Consume() math32.Vector3 {
	out := in.v
	in.v = math32.Vector3{}
	return out
}

// Pending returns the accumulated intent without resetting it.
func (in *Intent) Pending() math32.Vector3 {
	return in.v
}

func sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
