package scene

import (
	"image/color"
	"log/slog"

	"cogentcore.org/core/math32"

	"github.com/Versifine/flycam/internal/geom"
	"github.com/Versifine/flycam/internal/input"
)

// Actor is anything that lives in the world. Behavior is opted into through
// the capability interfaces below.
type Actor interface {
	Name() string
}

type Spawner interface {
	OnSpawn(p geom.Placement)
}

type Ticker interface {
	OnTick(dt float32)
}

type InputBinder interface {
	OnBindInput(b *input.Bindings)
}

type DebugDrawer interface {
	OnDebugDraw(r DebugRenderer)
}

// DebugRenderer collects debug primitives for a frame.
type DebugRenderer interface {
	DrawLine(from, to math32.Vector3, c color.RGBA)
	DrawSphere(center math32.Vector3, radius float32, c color.RGBA)
}

// World owns the spawned actors. It is driven from a single goroutine.
type World struct {
	actors []Actor
	paused bool
	frame  uint64
}

func NewWorld() *World {
	return &World{}
}

// SpawnActor adds a to the world and hands it its spawn placement.
func (w *World) SpawnActor(a Actor, p geom.Placement) Actor {
	w.actors = append(w.actors, a)
	if s, ok := a.(Spawner); ok {
		s.OnSpawn(p)
	}
	slog.Debug("Actor spawned", "actor", a.Name(),
		"x", p.Position.X, "y", p.Position.Y, "z", p.Position.Z)
	return a
}

// Tick advances every ticking actor by dt seconds. Nothing ticks while paused.
func (w *World) Tick(dt float32) {
	if w.paused {
		return
	}
	w.frame++
	for _, a := range w.actors {
		if t, ok := a.(Ticker); ok {
			t.OnTick(dt)
		}
	}
}

// Frame is the number of unpaused ticks so far.
func (w *World) Frame() uint64 { return w.frame }

func (w *World) Paused() bool { return w.paused }

func (w *World) SetPaused(paused bool) { w.paused = paused }

// Actors returns the spawned actors in spawn order.
func (w *World) Actors() []Actor {
	out := make([]Actor, len(w.actors))
	copy(out, w.actors)
	return out
}

// Find returns the first actor with the given name.
func (w *World) Find(name string) (Actor, bool) {
	for _, a := range w.actors {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

func (w *World) DebugDraw(r DebugRenderer) {
	for _, a := range w.actors {
		if d, ok := a.(DebugDrawer); ok {
			d.OnDebugDraw(r)
		}
	}
}

// DebugLine and DebugSphere are primitives recorded by DebugList.
type DebugLine struct {
	From, To math32.Vector3
	Color    color.RGBA
}

type DebugSphere struct {
	Center math32.Vector3
	Radius float32
	Color  color.RGBA
}

// DebugList is a DebugRenderer that records primitives in draw order.
type DebugList struct {
	Lines   []DebugLine
	Spheres []DebugSphere
}

func (l *DebugList) DrawLine(from, to math32.Vector3, c color.RGBA) {
	l.Lines = append(l.Lines, DebugLine{From: from, To: to, Color: c})
}

func (l *DebugList) DrawSphere(center math32.Vector3, radius float32, c color.RGBA) {
	l.Spheres = append(l.Spheres, DebugSphere{Center: center, Radius: radius, Color: c})
}

func (l *DebugList) Reset() {
	l.Lines = l.Lines[:0]
	l.Spheres = l.Spheres[:0]
}
