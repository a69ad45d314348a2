package scene

import (
	"image/color"

	"cogentcore.org/core/math32"

	"github.com/Versifine/flycam/internal/event"
	"github.com/Versifine/flycam/internal/geom"
	"github.com/Versifine/flycam/internal/input"
	"github.com/Versifine/flycam/internal/pawn"
)

var (
	colorLight   = color.RGBA{R: 0xff, G: 0xe0, B: 0x80, A: 0xff}
	colorForward = color.RGBA{R: 0x40, G: 0xa0, B: 0xff, A: 0xff}
	colorBounds  = color.RGBA{R: 0x40, G: 0xff, B: 0x40, A: 0xff}
)

// Checker is the static ground plane.
type Checker struct {
	Mesh      *Mesh
	Material  *MaterialInstance
	placement geom.Placement
}

// NewChecker builds the ground actor from injected resources.
func NewChecker(res *Resources) *Checker {
	return &Checker{Mesh: res.PlaneMesh, Material: res.GridInstance}
}

func (c *Checker) Name() string { return "Checker" }

func (c *Checker) OnSpawn(p geom.Placement) { c.placement = p }

func (c *Checker) Placement() geom.Placement { return c.placement }

func (c *Checker) OnDebugDraw(r DebugRenderer) {
	if c.Mesh == nil {
		return
	}
	for _, box := range c.Mesh.Collisions {
		center := c.placement.Position.Add(box.Position)
		e := box.HalfExtents
		corners := [4]math32.Vector3{
			center.Add(math32.Vec3(-e.X, e.Y, -e.Z)),
			center.Add(math32.Vec3(e.X, e.Y, -e.Z)),
			center.Add(math32.Vec3(e.X, e.Y, e.Z)),
			center.Add(math32.Vec3(-e.X, e.Y, e.Z)),
		}
		for i := range corners {
			r.DrawLine(corners[i], corners[(i+1)%len(corners)], colorBounds)
		}
	}
}

// DefaultLightRadius is the influence radius of the scene light.
const DefaultLightRadius = 10

type PointLight struct {
	Radius    float32
	placement geom.Placement
}

func NewPointLight(radius float32) *PointLight {
	return &PointLight{Radius: radius}
}

func (l *PointLight) Name() string { return "PointLight" }

func (l *PointLight) OnSpawn(p geom.Placement) { l.placement = p }

func (l *PointLight) Position() math32.Vector3 { return l.placement.Position }

func (l *PointLight) OnDebugDraw(r DebugRenderer) {
	r.DrawSphere(l.placement.Position, l.Radius, colorLight)
}

// Camera is the view attached to the player pawn.
type Camera struct {
	FovY float32
	Near float32
	Far  float32
}

func DefaultCamera() Camera {
	return Camera{FovY: 90, Near: 0.04, Far: 99999}
}

// Player is the flying pawn. It applies the controller's output to its own
// transform and reports orientation changes on the bus.
type Player struct {
	Camera     Camera
	bus        *event.Bus
	placement  geom.Placement
	controller *pawn.Controller
}

func NewPlayer(bus *event.Bus) *Player {
	p := &Player{
		Camera:    DefaultCamera(),
		bus:       bus,
		placement: geom.NewPlacement(math32.Vector3{}),
	}
	p.controller = pawn.NewController(p)
	return p
}

func (p *Player) Name() string { return "Player" }

func (p *Player) OnSpawn(pl geom.Placement) {
	p.placement = pl
	p.controller.OnSpawn(pl)
}

func (p *Player) OnTick(dt float32) { p.controller.OnTick(dt) }

func (p *Player) OnBindInput(b *input.Bindings) { p.controller.OnBindInput(b) }

func (p *Player) OnDebugDraw(r DebugRenderer) {
	pos := p.placement.Position
	r.DrawLine(pos, pos.Add(p.placement.ForwardVector()), colorForward)
}

// SetOrientation replaces the pawn rotation with the controller's view angles.
func (p *Player) SetOrientation(o pawn.Orientation) {
	p.placement.Rotation = o.Quat()
	p.bus.Publish(event.EventOrientation, &event.OrientationEvent{
		Yaw: o.Yaw, Pitch: o.Pitch, Roll: o.Roll,
	})
}

// MoveLocal translates the pawn by a delta expressed in its local frame.
func (p *Player) MoveLocal(delta math32.Vector3) {
	p.placement.Position = p.placement.Position.Add(delta.MulQuat(p.placement.Rotation))
}

// Teleport moves the pawn without touching its orientation.
func (p *Player) Teleport(pos math32.Vector3) {
	p.placement.Position = pos
}

func (p *Player) Placement() geom.Placement { return p.placement }

func (p *Player) Controller() *pawn.Controller { return p.controller }

func (p *Player) ViewPosition() math32.Vector3 { return p.placement.Position }

func (p *Player) ViewOrientation() pawn.Orientation { return p.controller.Orientation() }
