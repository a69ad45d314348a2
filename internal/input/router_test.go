package input

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type axisSample struct {
	name  string
	value float32
}

func recordAxes(b *Bindings, names ...string) *[]axisSample {
	var got []axisSample
	for _, name := range names {
		b.BindAxis(name, func(v float32) {
			got = append(got, axisSample{name: name, value: v})
		})
	}
	return &got
}

func TestDefaultMappingsAxisOrder(t *testing.T) {
	m := DefaultMappings()
	assert.Equal(t,
		[]string{"MoveForward", "MoveRight", "MoveUp", "MoveDown", "TurnRight", "TurnUp"},
		m.AxisNames(PlayerOne),
	)
	assert.Empty(t, m.AxisNames(1))
}

func TestRouterDispatchHeldKeys(t *testing.T) {
	r := NewRouter(PlayerOne, DefaultMappings())
	b := NewBindings()
	got := recordAxes(b, "MoveForward", "MoveRight", "MoveDown")
	r.SetBindings(b)

	r.HandleEvent(KeyDownEvent(KeyS))
	r.HandleEvent(KeyDownEvent(KeyA))
	r.HandleEvent(KeyDownEvent(KeyC))
	r.Dispatch()

	assert.Equal(t, []axisSample{
		{"MoveForward", -1},
		{"MoveRight", -1},
		{"MoveDown", 1},
	}, *got)
}

func TestRouterOpposingKeysCancel(t *testing.T) {
	r := NewRouter(PlayerOne, DefaultMappings())
	b := NewBindings()
	got := recordAxes(b, "MoveForward")
	r.SetBindings(b)

	r.HandleEvent(KeyDownEvent(KeyW))
	r.HandleEvent(KeyDownEvent(KeyS))
	r.Dispatch()
	assert.Empty(t, *got)
}

func TestRouterReleasedKeyStopsAxis(t *testing.T) {
	r := NewRouter(PlayerOne, DefaultMappings())
	b := NewBindings()
	got := recordAxes(b, "MoveUp")
	r.SetBindings(b)

	r.HandleEvent(KeyDownEvent(KeySpace))
	r.Dispatch()
	r.HandleEvent(KeyUpEvent(KeySpace))
	r.Dispatch()
	assert.Len(t, *got, 1)
}

func TestRouterMouseUsesSensitivityAndClears(t *testing.T) {
	r := NewRouter(PlayerOne, DefaultMappings())
	r.SetSensitivity(0.3)
	b := NewBindings()
	got := recordAxes(b, "TurnRight", "TurnUp")
	r.SetBindings(b)

	r.HandleEvent(MouseMoveEvent(MouseAxisX, 4))
	r.HandleEvent(MouseMoveEvent(MouseAxisX, 6))
	r.HandleEvent(MouseMoveEvent(MouseAxisY, -2))
	r.Dispatch()
	r.Dispatch()

	require.Len(t, *got, 2)
	assert.Equal(t, "TurnRight", (*got)[0].name)
	assert.InDelta(t, 3.0, (*got)[0].value, 1e-6)
	assert.Equal(t, "TurnUp", (*got)[1].name)
	assert.InDelta(t, -0.6, (*got)[1].value, 1e-6)
}

func TestRouterDropMotionDiscardsMouse(t *testing.T) {
	r := NewRouter(PlayerOne, DefaultMappings())
	b := NewBindings()
	got := recordAxes(b, "TurnRight", "MoveForward")
	r.SetBindings(b)

	r.HandleEvent(MouseMoveEvent(MouseAxisX, 10))
	r.HandleEvent(KeyDownEvent(KeyW))
	r.DropMotion()
	r.Dispatch()

	assert.Equal(t, []axisSample{{"MoveForward", 1}}, *got)
}

func TestRouterActionsFireOncePerTransition(t *testing.T) {
	r := NewRouter(PlayerOne, DefaultMappings())
	b := NewBindings()
	var presses, releases int
	b.BindAction("Speed", Press, func() { presses++ })
	b.BindAction("Speed", Release, func() { releases++ })
	r.SetBindings(b)

	r.HandleEvent(KeyDownEvent(KeyLeftShift))
	r.HandleEvent(KeyDownEvent(KeyLeftShift))
	r.HandleEvent(KeyUpEvent(KeyLeftShift))
	r.HandleEvent(KeyUpEvent(KeyLeftShift))

	assert.Equal(t, 1, presses)
	assert.Equal(t, 1, releases)
}

func TestRouterIgnoresOtherPlayers(t *testing.T) {
	m := NewMappings()
	m.MapAxis("MoveForward", DeviceKeyboard, KeyW, 1, 1)
	r := NewRouter(PlayerOne, m)
	b := NewBindings()
	got := recordAxes(b, "MoveForward")
	r.SetBindings(b)

	r.HandleEvent(KeyDownEvent(KeyW))
	r.Dispatch()
	assert.Empty(t, *got)
}

func TestRouterSetBindingsReleasesHeldActions(t *testing.T) {
	r := NewRouter(PlayerOne, DefaultMappings())
	old := NewBindings()
	released := false
	old.BindAction("Speed", Release, func() { released = true })
	r.SetBindings(old)

	r.HandleEvent(KeyDownEvent(KeyLeftShift))
	r.SetBindings(NewBindings())

	assert.True(t, released)
	assert.False(t, r.Held(DeviceKeyboard, KeyLeftShift))
}

func TestParseKeyAndDevice(t *testing.T) {
	k, err := ParseKey("leftshift")
	require.NoError(t, err)
	assert.Equal(t, KeyLeftShift, k)
	assert.Equal(t, "LeftShift", k.String())

	k, err = ParseKey(" MouseY ")
	require.NoError(t, err)
	assert.True(t, k.IsMouseAxis())

	_, err = ParseKey("Hyper")
	assert.Error(t, err)

	d, err := ParseDevice("Mouse")
	require.NoError(t, err)
	assert.Equal(t, DeviceMouse, d)
	_, err = ParseDevice("gamepad")
	assert.Error(t, err)
}

func TestRouterSensitivityRejectsNonFinite(t *testing.T) {
	r := NewRouter(PlayerOne, DefaultMappings())
	for _, s := range []float32{float32(math.NaN()), float32(math.Inf(1)), 0, -2} {
		r.SetSensitivity(s)
		assert.Equal(t, float32(1), r.Sensitivity(), "%v", s)
	}
	r.SetSensitivity(0.5)
	assert.Equal(t, float32(0.5), r.Sensitivity())
}
