package host

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Versifine/flycam/internal/input"
	"github.com/Versifine/flycam/internal/scene"
)

const (
	eventQueueSize = 256
	taskQueueSize  = 64
	// maxFrameDelta caps dt after a stall so the pawn does not jump.
	maxFrameDelta = 250 * time.Millisecond
)

// Snapshot is a copy of the scene state published after every frame.
type Snapshot struct {
	Frame       uint64
	Paused      bool
	Position    [3]float32
	Yaw         float32
	Pitch       float32
	SpeedActive bool
	Wireframe   bool
	DrawDebug   bool
	DebugLines  int
	DebugSphere int
}

func (s Snapshot) String() string {
	var flags []string
	if s.Paused {
		flags = append(flags, "paused")
	}
	if s.SpeedActive {
		flags = append(flags, "run")
	}
	if s.Wireframe {
		flags = append(flags, "wireframe")
	}
	if s.DrawDebug {
		flags = append(flags, fmt.Sprintf("debug(%d lines, %d spheres)", s.DebugLines, s.DebugSphere))
	}
	return fmt.Sprintf("frame=%d pos=(%.2f, %.2f, %.2f) yaw=%.1f pitch=%.1f [%s]",
		s.Frame, s.Position[0], s.Position[1], s.Position[2], s.Yaw, s.Pitch, strings.Join(flags, " "))
}

// Loop owns a started scene module. Only the goroutine running Frame or Run
// touches the module; other goroutines talk to it through Send and Do and read
// it through Snapshot.
type Loop struct {
	module   *scene.Module
	interval time.Duration

	events chan input.Event
	tasks  chan func(*scene.Module)

	debug scene.DebugList

	mu   sync.RWMutex
	snap Snapshot
}

func NewLoop(m *scene.Module, tickRate int) *Loop {
	if tickRate <= 0 {
		tickRate = 60
	}
	l := &Loop{
		module:   m,
		interval: time.Second / time.Duration(tickRate),
		events:   make(chan input.Event, eventQueueSize),
		tasks:    make(chan func(*scene.Module), taskQueueSize),
	}
	l.publish()
	return l
}

// Send queues a raw input event for the next frame. It reports false when the
// queue is full and the event was dropped.
func (l *Loop) Send(ev input.Event) bool {
	select {
	case l.events <- ev:
		return true
	default:
		slog.Warn("Input queue full, dropping event", "kind", ev.Kind, "key", ev.Key.String())
		return false
	}
}

// Do queues fn to run on the loop goroutine before the next tick.
func (l *Loop) Do(fn func(*scene.Module)) bool {
	if fn == nil {
		return false
	}
	select {
	case l.tasks <- fn:
		return true
	default:
		slog.Warn("Task queue full, dropping task")
		return false
	}
}

func (l *Loop) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}

// Frame advances the scene by dt seconds: queued events, queued tasks, axis
// dispatch, world tick, then debug draw and snapshot.
func (l *Loop) Frame(dt float32) {
	m := l.module
	if !m.Started() {
		return
	}

	for drained := false; !drained; {
		select {
		case ev := <-l.events:
			m.Controller.Router.HandleEvent(ev)
		default:
			drained = true
		}
	}
	for drained := false; !drained; {
		select {
		case fn := <-l.tasks:
			fn(m)
		default:
			drained = true
		}
	}

	m.Controller.DispatchInput()
	m.World.Tick(dt)

	l.debug.Reset()
	if m.Controller.Rendering.DrawDebug {
		m.World.DebugDraw(&l.debug)
	}
	l.publish()
}

// Run ticks the scene at the configured rate until ctx is done, then ends
// the module.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	defer l.module.End()

	slog.Info("Host loop started", "interval", l.interval)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("Host loop stopped", "frame", l.Snapshot().Frame)
			return nil
		case now := <-ticker.C:
			dt := min(now.Sub(last), maxFrameDelta)
			last = now
			l.Frame(float32(dt.Seconds()))
		}
	}
}

func (l *Loop) publish() {
	m := l.module
	var s Snapshot
	if m.Started() {
		pos := m.Player.ViewPosition()
		state := m.Player.Controller().State()
		s = Snapshot{
			Frame:       m.World.Frame(),
			Paused:      m.World.Paused(),
			Position:    [3]float32{pos.X, pos.Y, pos.Z},
			Yaw:         state.Orientation.Yaw,
			Pitch:       state.Orientation.Pitch,
			SpeedActive: state.SpeedActive,
			Wireframe:   m.Controller.Rendering.Wireframe,
			DrawDebug:   m.Controller.Rendering.DrawDebug,
			DebugLines:  len(l.debug.Lines),
			DebugSphere: len(l.debug.Spheres),
		}
	}
	l.mu.Lock()
	l.snap = s
	l.mu.Unlock()
}
