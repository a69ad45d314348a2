package event

import "log/slog"

const (
	EventOrientation  = "pawn.orientation"
	EventPause        = "game.pause"
	EventRenderToggle = "render.toggle"
	EventScreenshot   = "screenshot"
)

type OrientationEvent struct {
	Yaw   float32
	Pitch float32
	Roll  float32
}

type PauseEvent struct {
	Paused bool
}

type ToggleKind int

const (
	ToggleWireframe ToggleKind = iota
	ToggleDebugDraw
)

func (k ToggleKind) String() string {
	switch k {
	case ToggleWireframe:
		return "wireframe"
	case ToggleDebugDraw:
		return "debug_draw"
	default:
		return "unknown"
	}
}

type RenderToggleEvent struct {
	Kind    ToggleKind
	Enabled bool
}

// ScreenshotEvent carries the view at the frame the capture was requested.
type ScreenshotEvent struct {
	Frame    uint64
	Position [3]float32
	Yaw      float32
	Pitch    float32
}

// LogHandler returns a handler that writes known events to slog at info level.
func LogHandler(eventName string) HandlerFunc {
	return func(raw any) {
		switch evt := raw.(type) {
		case *PauseEvent:
			slog.Info("Game pause toggled", "paused", evt.Paused)
		case *RenderToggleEvent:
			slog.Info("Rendering flag toggled", "flag", evt.Kind.String(), "enabled", evt.Enabled)
		case *ScreenshotEvent:
			slog.Info("Screenshot requested",
				"frame", evt.Frame,
				"x", evt.Position[0], "y", evt.Position[1], "z", evt.Position[2],
				"yaw", evt.Yaw, "pitch", evt.Pitch,
			)
		case *OrientationEvent:
			slog.Debug("Pawn orientation", "yaw", evt.Yaw, "pitch", evt.Pitch)
		default:
			slog.Error("Invalid event type for LogHandler", "event", eventName)
		}
	}
}
