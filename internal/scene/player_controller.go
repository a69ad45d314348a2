package scene

import (
	"log/slog"

	"cogentcore.org/core/math32"

	"github.com/Versifine/flycam/internal/event"
	"github.com/Versifine/flycam/internal/input"
	"github.com/Versifine/flycam/internal/pawn"
)

// Action channels handled by the player controller itself.
const (
	ActionPause           = "Pause"
	ActionTakeScreenshot  = "TakeScreenshot"
	ActionToggleWireframe = "ToggleWireframe"
	ActionToggleDebugDraw = "ToggleDebugDraw"
)

// DefaultMouseSensitivity scales raw mouse motion into turn degrees.
const DefaultMouseSensitivity = 0.3

// RenderingParameters are the per-viewport draw switches.
type RenderingParameters struct {
	Background      [4]float32
	ClearBackground bool
	Wireframe       bool
	DrawDebug       bool
}

// Viewpoint is implemented by pawns that can be captured in a screenshot.
type Viewpoint interface {
	ViewPosition() math32.Vector3
	ViewOrientation() pawn.Orientation
}

// PlayerController routes one player's input into the pawn it possesses and
// handles the pause, screenshot and render toggle actions.
type PlayerController struct {
	Router    *input.Router
	Rendering *RenderingParameters

	world *World
	bus   *event.Bus
	pawn  Actor
}

type PlayerControllerOptions struct {
	Player      int
	Mappings    *input.Mappings
	Rendering   *RenderingParameters
	Sensitivity float32
}

func NewPlayerController(world *World, bus *event.Bus, opts PlayerControllerOptions) *PlayerController {
	router := input.NewRouter(opts.Player, opts.Mappings)
	sensitivity := opts.Sensitivity
	if sensitivity <= 0 {
		sensitivity = DefaultMouseSensitivity
	}
	router.SetSensitivity(sensitivity)
	rendering := opts.Rendering
	if rendering == nil {
		rendering = &RenderingParameters{ClearBackground: true, DrawDebug: true}
	}
	return &PlayerController{
		Router:    router,
		Rendering: rendering,
		world:     world,
		bus:       bus,
	}
}

func (pc *PlayerController) Name() string { return "PlayerController" }

// Possess takes control of a. The controller's own actions and the pawn's
// bindings replace whatever was bound before.
func (pc *PlayerController) Possess(a Actor) {
	pc.pawn = a
	b := input.NewBindings()
	pc.OnBindInput(b)
	if binder, ok := a.(InputBinder); ok {
		binder.OnBindInput(b)
	}
	pc.Router.SetBindings(b)
	slog.Info("Pawn possessed", "player", pc.Router.Player(), "pawn", a.Name())
}

func (pc *PlayerController) Pawn() Actor { return pc.pawn }

func (pc *PlayerController) OnBindInput(b *input.Bindings) {
	b.BindAction(ActionPause, input.Press, pc.TogglePause)
	b.BindAction(ActionTakeScreenshot, input.Press, pc.TakeScreenshot)
	b.BindAction(ActionToggleWireframe, input.Press, pc.ToggleWireframe)
	b.BindAction(ActionToggleDebugDraw, input.Press, pc.ToggleDebugDraw)
}

// DispatchInput reports this frame's axes to the bindings. While the world is
// paused mouse motion is dropped and no axis fires.
func (pc *PlayerController) DispatchInput() {
	if pc.world != nil && pc.world.Paused() {
		pc.Router.DropMotion()
		return
	}
	pc.Router.Dispatch()
}

func (pc *PlayerController) TogglePause() {
	paused := !pc.world.Paused()
	pc.world.SetPaused(paused)
	pc.bus.Publish(event.EventPause, &event.PauseEvent{Paused: paused})
}

func (pc *PlayerController) ToggleWireframe() {
	pc.Rendering.Wireframe = !pc.Rendering.Wireframe
	pc.bus.Publish(event.EventRenderToggle, &event.RenderToggleEvent{
		Kind: event.ToggleWireframe, Enabled: pc.Rendering.Wireframe,
	})
}

func (pc *PlayerController) ToggleDebugDraw() {
	pc.Rendering.DrawDebug = !pc.Rendering.DrawDebug
	pc.bus.Publish(event.EventRenderToggle, &event.RenderToggleEvent{
		Kind: event.ToggleDebugDraw, Enabled: pc.Rendering.DrawDebug,
	})
}

func (pc *PlayerController) TakeScreenshot() {
	evt := &event.ScreenshotEvent{Frame: pc.world.Frame()}
	if v, ok := pc.pawn.(Viewpoint); ok {
		pos := v.ViewPosition()
		o := v.ViewOrientation()
		evt.Position = [3]float32{pos.X, pos.Y, pos.Z}
		evt.Yaw, evt.Pitch = o.Yaw, o.Pitch
	}
	pc.bus.Publish(event.EventScreenshot, evt)
}
