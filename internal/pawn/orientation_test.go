package pawn

import (
	"math"
	"math/rand"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const angleTol = 1e-3

func TestInitialOrientationFromHorizontalForward(t *testing.T) {
	tests := []struct {
		name    string
		forward math32.Vector3
		wantYaw float32
	}{
		{"plus z", math32.Vec3(0, 0, 1), 0},
		{"minus z", math32.Vec3(0, 0, -1), 180},
		{"plus x", math32.Vec3(1, 0, 0), 90},
		{"minus x", math32.Vec3(-1, 0, 0), -90},
		{"diagonal with vertical part", math32.Vec3(1, 5, 1), 45},
		{"unnormalized", math32.Vec3(0, 0, 0.02), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := InitialOrientation(tt.forward, math32.Vec3(-1, 0, 0))
			assert.InDelta(t, tt.wantYaw, o.Yaw, angleTol)
			assert.Zero(t, o.Pitch)
			assert.Zero(t, o.Roll)
		})
	}
}

func TestInitialOrientationVerticalForwardUsesRightAxis(t *testing.T) {
	o := InitialOrientation(math32.Vec3(0, 1, 0), math32.Vec3(-1, 0, 0))
	require.False(t, math32.IsNaN(o.Yaw))
	require.False(t, math32.IsInf(o.Yaw, 0))
	// atan2(-1, 0) = -90, plus the 90 degree offset
	assert.InDelta(t, 0, o.Yaw, angleTol)

	o = InitialOrientation(math32.Vec3(0, -1, 0), math32.Vec3(1, 0, 0))
	assert.InDelta(t, 180, o.Yaw, angleTol)
}

func TestInitialOrientationNearlyVerticalForward(t *testing.T) {
	// horizontal projection length 0.005, squared 2.5e-5 < 1e-4
	forward := math32.Vec3(0.005, 1, 0)
	o := InitialOrientation(forward, math32.Vec3(0, 0, 1))
	assert.InDelta(t, 90, o.Yaw, angleTol)
}

func TestInitialOrientationDegenerateBasis(t *testing.T) {
	o := InitialOrientation(math32.Vec3(0, 1, 0), math32.Vec3(0, -1, 0))
	assert.Equal(t, Orientation{}, o)
}

func TestInitialOrientationMatchesPitchedSpawn(t *testing.T) {
	// yaw 30 then pitch straight down: forward is vertical, the right axis
	// still carries the heading
	yaw := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.DegToRad(30))
	pitch := math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), math32.DegToRad(90))
	q := yaw.Mul(pitch)
	forward := math32.Vec3(0, 0, 1).MulQuat(q)
	right := math32.Vec3(-1, 0, 0).MulQuat(q)

	o := InitialOrientation(forward, right)
	assert.InDelta(t, 30, o.Yaw, 0.01)
}

func TestWrap180(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{181, -179},
		{-181, 179},
		{360, 0},
		{540, 180},
		{-540, 180},
		{719, -1},
		{1e6, -80},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Wrap180(tt.in), angleTol, "Wrap180(%v)", tt.in)
	}
	assert.Equal(t, float32(0), Wrap180(float32(math.NaN())))
}

func TestTurnKeepsAnglesInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var o Orientation
	for i := 0; i < 5000; i++ {
		o.Turn(float32(rng.NormFloat64()*400), float32(rng.NormFloat64()*60))
		require.Greater(t, o.Yaw, float32(-180))
		require.LessOrEqual(t, o.Yaw, float32(180))
		require.GreaterOrEqual(t, o.Pitch, float32(MinPitch))
		require.LessOrEqual(t, o.Pitch, float32(MaxPitch))
		require.Zero(t, o.Roll)
	}
}

func TestTurnSubtractsYawAndClampsPitch(t *testing.T) {
	o := Orientation{Yaw: 170, Pitch: 80}
	o.Turn(-20, 25)
	assert.InDelta(t, -170, o.Yaw, angleTol)
	assert.Equal(t, float32(90), o.Pitch)

	o.Turn(10, -200)
	assert.InDelta(t, 180, o.Yaw, angleTol)
	assert.Equal(t, float32(-90), o.Pitch)
}

func TestTurnIgnoresNonFiniteDeltas(t *testing.T) {
	o := Orientation{Yaw: 10, Pitch: 5}
	o.Turn(float32(math.NaN()), float32(math.Inf(1)))
	assert.Equal(t, Orientation{Yaw: 10, Pitch: 5}, o)
}

func TestClampPitchNonFinite(t *testing.T) {
	assert.Zero(t, ClampPitch(float32(math.NaN())))
	assert.Zero(t, ClampPitch(float32(math.Inf(1))))
	assert.Zero(t, ClampPitch(float32(math.Inf(-1))))
	assert.Equal(t, float32(MaxPitch), ClampPitch(120))
}

func TestOrientationQuatFacesYaw(t *testing.T) {
	o := Orientation{Yaw: 90}
	fwd := math32.Vec3(0, 0, 1).MulQuat(o.Quat())
	assert.InDelta(t, 1, fwd.X, 1e-5)
	assert.InDelta(t, 0, fwd.Z, 1e-5)

	// a round trip through the quaternion recovers the yaw
	back := InitialOrientation(fwd, math32.Vec3(-1, 0, 0).MulQuat(o.Quat()))
	assert.InDelta(t, 90, back.Yaw, angleTol)
}
