package input

import (
	"log/slog"
	"math"
)

type EventKind uint8

const (
	KeyDown EventKind = iota
	KeyUp
	MouseMove
)

// Event is one raw device sample. Delta is only used by MouseMove.
type Event struct {
	Kind   EventKind
	Device Device
	Key    Key
	Delta  float32
}

func KeyDownEvent(k Key) Event {
	return Event{Kind: KeyDown, Device: DeviceKeyboard, Key: k}
}

func KeyUpEvent(k Key) Event {
	return Event{Kind: KeyUp, Device: DeviceKeyboard, Key: k}
}

func MouseMoveEvent(axis Key, delta float32) Event {
	return Event{Kind: MouseMove, Device: DeviceMouse, Key: axis, Delta: delta}
}

type deviceKey struct {
	device Device
	key    Key
}

// Router turns raw events into channel callbacks for one controller index.
// It is not safe for concurrent use; the host loop owns it.
type Router struct {
	player      int
	mappings    *Mappings
	bindings    *Bindings
	sensitivity float32
	held        map[deviceKey]bool
	mouse       map[Key]float32
}

func NewRouter(player int, mappings *Mappings) *Router {
	if mappings == nil {
		mappings = NewMappings()
	}
	return &Router{
		player:      player,
		mappings:    mappings,
		sensitivity: 1,
		held:        make(map[deviceKey]bool),
		mouse:       make(map[Key]float32),
	}
}

func (r *Router) Player() int { return r.player }

func (r *Router) SetMappings(m *Mappings) {
	if m == nil {
		m = NewMappings()
	}
	r.mappings = m
}

func (r *Router) Mappings() *Mappings { return r.mappings }

// SetBindings replaces the active callbacks. Held actions are released on
// the old bindings first so nothing stays latched.
func (r *Router) SetBindings(b *Bindings) {
	r.ReleaseAll()
	r.bindings = b
}

// SetSensitivity scales mouse deltas. Non-positive or non-finite values fall
// back to 1.
func (r *Router) SetSensitivity(s float32) {
	if !(s > 0) || math.IsInf(float64(s), 0) {
		s = 1
	}
	r.sensitivity = s
}

func (r *Router) Sensitivity() float32 { return r.sensitivity }

func (r *Router) Held(device Device, key Key) bool {
	return r.held[deviceKey{device: device, key: key}]
}

// HandleEvent applies a raw event. Action callbacks fire once per key
// transition; repeated key-down events while held are ignored.
func (r *Router) HandleEvent(ev Event) {
	dk := deviceKey{device: ev.Device, key: ev.Key}
	switch ev.Kind {
	case KeyDown:
		if r.held[dk] {
			return
		}
		r.held[dk] = true
		r.fireActions(dk, Press)
	case KeyUp:
		if !r.held[dk] {
			return
		}
		delete(r.held, dk)
		r.fireActions(dk, Release)
	case MouseMove:
		r.mouse[ev.Key] += ev.Delta
	default:
		slog.Debug("Ignoring input event", "kind", ev.Kind)
	}
}

// Dispatch reports every non-zero axis channel of this frame to its bound
// callbacks, then clears the accumulated mouse motion.
func (r *Router) Dispatch() {
	for _, name := range r.mappings.AxisNames(r.player) {
		value := r.axisValue(name)
		if value == 0 {
			continue
		}
		r.bindings.fireAxis(name, value)
	}
	clear(r.mouse)
}

// ReleaseAll drops every held key, firing release callbacks for mapped actions.
func (r *Router) ReleaseAll() {
	for dk := range r.held {
		delete(r.held, dk)
		r.fireActions(dk, Release)
	}
	clear(r.mouse)
}

func (r *Router) axisValue(name string) float32 {
	var value float32
	for _, a := range r.mappings.Axes {
		if a.Name != name || a.Player != r.player {
			continue
		}
		if a.Key.IsMouseAxis() {
			value += r.mouse[a.Key] * a.Scale * r.sensitivity
			continue
		}
		if r.held[deviceKey{device: a.Device, key: a.Key}] {
			value += a.Scale
		}
	}
	return value
}

func (r *Router) fireActions(dk deviceKey, phase Phase) {
	for _, a := range r.mappings.Actions {
		if a.Player != r.player || a.Device != dk.device || a.Key != dk.key {
			continue
		}
		r.bindings.fireAction(a.Name, phase)
	}
}

// DropMotion discards accumulated mouse motion without dispatching it.
func (r *Router) DropMotion() {
	clear(r.mouse)
}
