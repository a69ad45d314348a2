package pawn

import (
	"math"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestIntentContribute(t *testing.T) {
	tests := []struct {
		name  string
		feed  func(in *Intent)
		want  math32.Vector3
	}{
		{
			name: "forward uses sign only",
			feed: func(in *Intent) { in.Contribute(MoveForward, 0.25) },
			want: math32.Vec3(0, 0, 1),
		},
		{
			name: "backward",
			feed: func(in *Intent) { in.Contribute(MoveForward, -7) },
			want: math32.Vec3(0, 0, -1),
		},
		{
			name: "right is minus x",
			feed: func(in *Intent) { in.Contribute(MoveRight, 3) },
			want: math32.Vec3(-1, 0, 0),
		},
		{
			name: "zero value adds nothing",
			feed: func(in *Intent) { in.Contribute(MoveRight, 0) },
			want: math32.Vector3{},
		},
		{
			name: "up ignores value",
			feed: func(in *Intent) { in.Contribute(MoveUp, -5) },
			want: math32.Vec3(0, 1, 0),
		},
		{
			name: "down ignores value",
			feed: func(in *Intent) { in.Contribute(MoveDown, 0) },
			want: math32.Vec3(0, -1, 0),
		},
		{
			name: "contributions add up",
			feed: func(in *Intent) {
				in.Contribute(MoveForward, 1)
				in.Contribute(MoveForward, 1)
				in.Contribute(MoveUp, 1)
				in.Contribute(MoveDown, 1)
				in.Contribute(MoveRight, -1)
			},
			want: math32.Vec3(1, 0, 2),
		},
		{
			name: "unknown channel",
			feed: func(in *Intent) { in.Contribute("Jump", 1) },
			want: math32.Vector3{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in Intent
			tt.feed(&in)
			assert.Equal(t, tt.want, in.Consume())
		})
	}
}

func TestIntentConsumeResets(t *testing.T) {
	var in Intent
	in.Contribute(MoveForward, 1)
	assert.Equal(t, math32.Vec3(0, 0, 1), in.Consume())
	assert.Equal(t, math32.Vector3{}, in.Consume())
}

func TestStepMagnitude(t *testing.T) {
	walk := Step(1, math32.Vec3(1, 0, 0), false)
	assert.Equal(t, float32(1.5), walk.Length())
	assert.Equal(t, math32.Vec3(1.5, 0, 0), walk)

	run := Step(1, math32.Vec3(1, 0, 0), true)
	assert.Equal(t, float32(3), run.Length())
}

func TestStepNormalizesIntent(t *testing.T) {
	d := Step(0.5, math32.Vec3(3, 0, 4), false)
	assert.InDelta(t, 0.75, d.Length(), 1e-6)
	assert.InDelta(t, 0.45, d.X, 1e-6)
	assert.InDelta(t, 0.6, d.Z, 1e-6)
}

func TestStepIsFrameRateIndependent(t *testing.T) {
	intent := math32.Vec3(0, 1, 1)
	var total math32.Vector3
	for i := 0; i < 60; i++ {
		total = total.Add(Step(1.0/60, intent, true))
	}
	once := Step(1, intent, true)
	assert.InDelta(t, once.Length(), total.Length(), 1e-4)
}

func TestStepZeroIntent(t *testing.T) {
	for _, dt := range []float32{0, 0.016, 1, 100} {
		assert.Equal(t, math32.Vector3{}, Step(dt, math32.Vector3{}, false))
		assert.Equal(t, math32.Vector3{}, Step(dt, math32.Vector3{}, true))
	}
}

func TestStepRejectsBadElapsed(t *testing.T) {
	intent := math32.Vec3(0, 0, 1)
	assert.Equal(t, math32.Vector3{}, Step(-1, intent, false))
	assert.Equal(t, math32.Vector3{}, Step(float32(math.NaN()), intent, false))
}

func TestSpeedModifierLastWriteWins(t *testing.T) {
	var s SpeedModifier
	s.Press()
	s.Press()
	assert.True(t, s.Active())
	s.Release()
	assert.False(t, s.Active())
	s.Release()
	assert.False(t, s.Active())

	s.Press()
	s.Release()
	assert.Equal(t, float32(1.5), Step(1, math32.Vec3(0, 0, 1), s.Active()).Length())
}
