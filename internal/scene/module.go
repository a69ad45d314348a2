package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/core/math32"

	"github.com/Versifine/flycam/internal/config"
	"github.com/Versifine/flycam/internal/event"
	"github.com/Versifine/flycam/internal/geom"
	"github.com/Versifine/flycam/internal/input"
)

const WindowTitle = "Flycam: Empty Project"

var ErrAlreadyStarted = errors.New("scene module already started")

// Module builds the demo scene on Start and tears it down on End.
type Module struct {
	cfg *config.Config
	bus *event.Bus

	Mappings   *input.Mappings
	Resources  *Resources
	World      *World
	Checker    *Checker
	Light      *PointLight
	Player     *Player
	Controller *PlayerController
	Desktop    *Desktop

	started bool
}

func NewModule(cfg *config.Config, bus *event.Bus) *Module {
	if cfg == nil {
		cfg = config.Default()
	}
	if bus == nil {
		bus = event.NewBus()
	}
	return &Module{cfg: cfg, bus: bus}
}

func (m *Module) Bus() *event.Bus { return m.bus }

func (m *Module) Started() bool { return m.started }

// Start creates resources, spawns the actors and possesses the player pawn.
func (m *Module) Start() error {
	if m.started {
		return ErrAlreadyStarted
	}

	mappings, err := MappingsFromConfig(m.cfg.Input)
	if err != nil {
		return fmt.Errorf("input mappings: %w", err)
	}
	m.Mappings = mappings

	res, err := CreateResources(ResourceOptions{GridTexturePath: m.cfg.GridTexturePath()})
	if err != nil {
		return fmt.Errorf("create resources: %w", err)
	}
	m.Resources = res

	m.World = NewWorld()

	m.Checker = NewChecker(res)
	m.World.SpawnActor(m.Checker, geom.NewPlacement(math32.Vector3{}))

	m.Light = NewPointLight(m.cfg.Light.Radius)
	m.World.SpawnActor(m.Light, geom.NewPlacement(vec3(m.cfg.Light.Position)))

	spawn := m.cfg.Player.Spawn
	m.Player = NewPlayer(m.bus)
	m.World.SpawnActor(m.Player, geom.EulerPlacement(vec3(spawn.Position), vec3(spawn.Rotation)))

	r := m.cfg.Rendering
	m.Controller = NewPlayerController(m.World, m.bus, PlayerControllerOptions{
		Player:   m.cfg.Player.Index,
		Mappings: mappings,
		Rendering: &RenderingParameters{
			Background:      r.Background,
			ClearBackground: r.ClearBackground,
			Wireframe:       r.Wireframe,
			DrawDebug:       r.DrawDebug,
		},
		Sensitivity: m.cfg.Player.MouseSensitivity,
	})
	m.Controller.Possess(m.Player)

	viewport, err := NewWidget(WidgetConfig{
		Kind:       WidgetViewport,
		Name:       "Viewport",
		HAlign:     AlignStretch,
		VAlign:     AlignStretch,
		Focus:      true,
		Controller: m.Controller,
	})
	if err != nil {
		return err
	}
	m.Desktop = NewDesktop(WindowTitle)
	m.Desktop.AddWidget(viewport)

	m.started = true
	slog.Info("Scene started",
		"actors", len(m.World.Actors()),
		"resources", len(res.Registry.Names()),
		"player", m.cfg.Player.Index,
	)
	return nil
}

// End releases held input. The world and resources stay readable.
func (m *Module) End() {
	if !m.started {
		return
	}
	m.Controller.Router.ReleaseAll()
	m.started = false
	slog.Info("Scene ended", "frames", m.World.Frame())
}

// ApplyConfig updates the settings that can change while running.
func (m *Module) ApplyConfig(cfg *config.Config) error {
	m.cfg = cfg
	if !m.started {
		return nil
	}
	mappings, err := MappingsFromConfig(cfg.Input)
	if err != nil {
		return fmt.Errorf("input mappings: %w", err)
	}
	m.Mappings = mappings
	m.Controller.Router.ReleaseAll()
	m.Controller.Router.SetMappings(mappings)
	m.Controller.Router.SetSensitivity(cfg.Player.MouseSensitivity)
	return nil
}

// MappingsFromConfig builds the mapping table from config, or the default
// table when config lists none.
func MappingsFromConfig(in config.InputConfig) (*input.Mappings, error) {
	if len(in.Axes) == 0 && len(in.Actions) == 0 {
		return input.DefaultMappings(), nil
	}
	m := input.NewMappings()
	var errs []error
	for i, a := range in.Axes {
		device, key, err := parseBinding(a.Device, a.Key)
		if err != nil {
			errs = append(errs, fmt.Errorf("axes[%d] %s: %w", i, a.Name, err))
			continue
		}
		m.MapAxis(strings.TrimSpace(a.Name), device, key, a.Scale, a.Player)
	}
	for i, a := range in.Actions {
		device, key, err := parseBinding(a.Device, a.Key)
		if err != nil {
			errs = append(errs, fmt.Errorf("actions[%d] %s: %w", i, a.Name, err))
			continue
		}
		m.MapAction(strings.TrimSpace(a.Name), device, key, a.Player)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return m, nil
}

func parseBinding(deviceName, keyName string) (input.Device, input.Key, error) {
	key, err := input.ParseKey(keyName)
	if err != nil {
		return 0, 0, err
	}
	if strings.TrimSpace(deviceName) == "" && key.IsMouseAxis() {
		return input.DeviceMouse, key, nil
	}
	device, err := input.ParseDevice(deviceName)
	if err != nil {
		return 0, 0, err
	}
	if key.IsMouseAxis() != (device == input.DeviceMouse) {
		return 0, 0, fmt.Errorf("key %s does not belong to device %s", key, device)
	}
	return device, key, nil
}

func vec3(v [3]float32) math32.Vector3 {
	return math32.Vec3(v[0], v[1], v[2])
}
