package scene

import (
	"fmt"
	"image/color"
	"log/slog"
	"sort"
	"sync"

	"cogentcore.org/core/math32"
)

// Resource names registered by CreateResources.
const (
	ResBlackSky          = "BlackSky"
	ResSkyboxMaterial    = "SkyboxMaterialInstance"
	ResGrid8             = "Grid8"
	ResGridMaterial      = "MyMaterial"
	ResGridInstance      = "Grid8MaterialInstance"
	ResPlaneMesh         = "DefaultShapePlane256x256x256"
	defaultSkyboxMatName = "DefaultSkyboxMaterial"
)

type SamplerFilter int

const (
	FilterNearest SamplerFilter = iota
	FilterLinear
	FilterMipmapTrilinear
)

type SamplerAddress int

const (
	AddressWrap SamplerAddress = iota
	AddressClamp
)

type Sampler struct {
	Filter  SamplerFilter
	Address SamplerAddress
}

type ShadingModel int

const (
	ShadingUnlit ShadingModel = iota
	ShadingPBR
)

// Material is a compiled material definition: a shading model plus texture
// slots sampled by its graph.
type Material struct {
	Name    string
	Shading ShadingModel
	Slots   []Sampler
	// Metallic and Roughness are the PBR constants fed into the graph.
	Metallic  float32
	Roughness float32
	// UVScale multiplies texture coordinates before sampling slot 0.
	UVScale float32
}

// MaterialInstance binds textures to a material's slots.
type MaterialInstance struct {
	Name     string
	Material *Material
	Textures []*Texture
}

// Texture returns the texture bound to slot, or nil.
func (mi *MaterialInstance) Texture(slot int) *Texture {
	if mi == nil || slot < 0 || slot >= len(mi.Textures) {
		return nil
	}
	return mi.Textures[slot]
}

type AABB struct {
	Min math32.Vector3
	Max math32.Vector3
}

func (b AABB) Center() math32.Vector3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

func (b AABB) HalfExtents() math32.Vector3 {
	return b.Max.Sub(b.Min).MulScalar(0.5)
}

// CollisionBox is an axis-aligned box collision body in mesh space.
type CollisionBox struct {
	Position    math32.Vector3
	HalfExtents math32.Vector3
}

type Mesh struct {
	Name       string
	Bounds     AABB
	Collisions []CollisionBox
}

// NewPlaneMesh builds a flat quad of the given size centered on the origin,
// facing +Y.
func NewPlaneMesh(name string, width, depth float32) *Mesh {
	hw, hd := width/2, depth/2
	return &Mesh{
		Name: name,
		Bounds: AABB{
			Min: math32.Vec3(-hw, 0, -hd),
			Max: math32.Vec3(hw, 0, hd),
		},
	}
}

// Registry maps resource names to created resources. It exists for listing
// and diagnostics; actors receive their resources through Resources.
type Registry struct {
	mu    sync.RWMutex
	items map[string]any
}

func NewRegistry() *Registry {
	return &Registry{items: make(map[string]any)}
}

// Register stores r under name. Names are unique.
func (r *Registry) Register(name string, res any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[name]; ok {
		return fmt.Errorf("resource %q already registered", name)
	}
	r.items[name] = res
	return nil
}

func (r *Registry) Get(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[name]
	return res, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resources holds the handles the demo scene is built from.
type Resources struct {
	Registry       *Registry
	BlackSky       *Texture
	SkyboxInstance *MaterialInstance
	Grid8          *Texture
	GridMaterial   *Material
	GridInstance   *MaterialInstance
	PlaneMesh      *Mesh
}

// ResourceOptions tells CreateResources where to find file-backed resources.
type ResourceOptions struct {
	GridTexturePath string
}

// CreateResources builds every resource the scene uses, once, and returns
// them as resolved handles.
func CreateResources(opts ResourceOptions) (*Resources, error) {
	reg := NewRegistry()
	res := &Resources{Registry: reg}

	res.BlackSky = NewSolidCubemap(ResBlackSky, 1, color.Gray{Y: 0})

	skyboxMat := &Material{Name: defaultSkyboxMatName, Shading: ShadingUnlit,
		Slots: []Sampler{{Filter: FilterLinear, Address: AddressClamp}}}
	res.SkyboxInstance = &MaterialInstance{
		Name:     ResSkyboxMaterial,
		Material: skyboxMat,
		Textures: []*Texture{res.BlackSky},
	}

	grid, err := LoadOrGenerateGrid(ResGrid8, opts.GridTexturePath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ResGrid8, err)
	}
	if grid.Source == "" {
		slog.Warn("Grid texture not found, using generated grid", "path", opts.GridTexturePath)
	}
	res.Grid8 = grid

	res.GridMaterial = &Material{
		Name:      ResGridMaterial,
		Shading:   ShadingPBR,
		Slots:     []Sampler{{Filter: FilterMipmapTrilinear, Address: AddressWrap}},
		Metallic:  0,
		Roughness: 1,
		UVScale:   1,
	}
	res.GridInstance = &MaterialInstance{
		Name:     ResGridInstance,
		Material: res.GridMaterial,
		Textures: []*Texture{res.Grid8},
	}

	plane := NewPlaneMesh(ResPlaneMesh, 256, 256)
	plane.Collisions = []CollisionBox{{
		Position:    math32.Vec3(0, -0.1, 0),
		HalfExtents: math32.Vec3(128, 0.1, 128),
	}}
	res.PlaneMesh = plane

	for name, r := range map[string]any{
		ResBlackSky:       res.BlackSky,
		ResSkyboxMaterial: res.SkyboxInstance,
		ResGrid8:          res.Grid8,
		ResGridMaterial:   res.GridMaterial,
		ResGridInstance:   res.GridInstance,
		ResPlaneMesh:      res.PlaneMesh,
	} {
		if err := reg.Register(name, r); err != nil {
			return nil, err
		}
	}
	slog.Debug("Scene resources created", "count", len(reg.Names()))
	return res, nil
}
