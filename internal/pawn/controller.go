// Package pawn implements the fly-camera pawn controller: spawn orientation,
// per-frame movement intent, the run modifier and frame-rate independent
// locomotion.
//
// A Controller is owned by exactly one pawn and is driven from a single
// goroutine. Input callbacks for a frame must all run before OnTick.
package pawn

import (
	"cogentcore.org/core/math32"

	"github.com/Versifine/flycam/internal/geom"
	"github.com/Versifine/flycam/internal/input"
)

// TransformSink receives the controller's output. The orientation is pushed
// as soon as it changes; MoveLocal is called at most once per tick.
type TransformSink interface {
	SetOrientation(o Orientation)
	MoveLocal(delta math32.Vector3)
}

// State is a copy of the controller state for inspection.
type State struct {
	Orientation Orientation
	Intent      math32.Vector3
	SpeedActive bool
}

type Controller struct {
	sink        TransformSink
	orientation Orientation
	intent      Intent
	speed       SpeedModifier
}

func NewController(sink TransformSink) *Controller {
	return &Controller{sink: sink}
}

// OnSpawn derives the initial heading from the spawn rotation.
func (c *Controller) OnSpawn(p geom.Placement) {
	c.orientation = InitialOrientation(p.ForwardVector(), p.RightVector())
	c.intent = Intent{}
	c.speed = SpeedModifier{}
	c.push()
}

// OnBindInput registers the controller's channels on b.
func (c *Controller) OnBindInput(b *input.Bindings) {
	for _, ch := range []string{MoveForward, MoveRight, MoveUp, MoveDown} {
		b.BindAxis(ch, func(v float32) { c.intent.Contribute(ch, v) })
	}
	b.BindAxis(TurnRight, func(v float32) { c.Turn(v, 0) })
	b.BindAxis(TurnUp, func(v float32) { c.Turn(0, v) })
	b.BindAction(Speed, input.Press, c.speed.Press)
	b.BindAction(Speed, input.Release, c.speed.Release)
}

// OnTick consumes this frame's intent and moves the pawn.
func (c *Controller) OnTick(dt float32) {
	delta := Step(dt, c.intent.Consume(), c.speed.Active())
	if delta.LengthSquared() == 0 || c.sink == nil {
		return
	}
	c.sink.MoveLocal(delta)
}

func (c *Controller) Turn(deltaYaw, deltaPitch float32) {
	c.orientation.Turn(deltaYaw, deltaPitch)
	c.push()
}

// SetOrientation overrides the view angles, keeping them inside their ranges.
// A non-finite angle leaves the current value in place.
func (c *Controller) SetOrientation(o Orientation) {
	next := c.orientation
	if finite(o.Yaw) {
		next.Yaw = Wrap180(o.Yaw)
	}
	if finite(o.Pitch) {
		next.Pitch = ClampPitch(o.Pitch)
	}
	next.Roll = 0
	c.orientation = next
	c.push()
}

func (c *Controller) Orientation() Orientation { return c.orientation }

func (c *Controller) State() State {
	return State{
		Orientation: c.orientation,
		Intent:      c.intent.Pending(),
		SpeedActive: c.speed.Active(),
	}
}

func (c *Controller) push() {
	if c.sink != nil {
		c.sink.SetOrientation(c.orientation)
	}
}
