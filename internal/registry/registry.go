package registry

import (
	"fmt"

	"voxelmesh/internal/meshing"
	"voxelmesh/internal/world"
)

// Built-in block ids. Id 0 stays reserved for air.
const (
	Grass world.BlockType = iota + 1
	Dirt
	Stone
	Sand
)

// BlockDefinition describes one block type's identity and look. Texture
// fields name atlas tiles; Color doubles as the color-mode appearance and
// the solid-color tile when no texture art exists.
type BlockDefinition struct {
	ID            world.BlockType
	Name          string
	Color         world.RGB
	TextureTop    string
	TextureSide   string
	TextureBottom string
}

// Registry maps block ids to definitions and resolves per-face appearances
// for the mesher. It implements meshing.Appearance.
type Registry struct {
	defs  map[world.BlockType]*BlockDefinition
	names map[string]world.BlockType
	atlas *Atlas
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		defs:  make(map[world.BlockType]*BlockDefinition),
		names: make(map[string]world.BlockType),
	}
}

// Register adds a block definition. Ids and names must be unique, and id 0
// is rejected.
func (r *Registry) Register(def *BlockDefinition) error {
	if def.ID == world.BlockTypeAir {
		return fmt.Errorf("register %q: block id 0 is reserved for air", def.Name)
	}
	if prev, ok := r.defs[def.ID]; ok {
		return fmt.Errorf("register %q: id %d already taken by %q", def.Name, def.ID, prev.Name)
	}
	if _, ok := r.names[def.Name]; ok {
		return fmt.Errorf("register %q: name already taken", def.Name)
	}
	r.defs[def.ID] = def
	r.names[def.Name] = def.ID
	return nil
}

// Lookup returns the definition for a block id.
func (r *Registry) Lookup(id world.BlockType) (*BlockDefinition, bool) {
	def, ok := r.defs[id]
	return def, ok
}

// ByName returns the id registered under name.
func (r *Registry) ByName(name string) (world.BlockType, bool) {
	id, ok := r.names[name]
	return id, ok
}

// Definitions returns all registered definitions in unspecified order.
func (r *Registry) Definitions() []*BlockDefinition {
	out := make([]*BlockDefinition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	return out
}

// SetAtlas attaches the texture atlas consulted by FaceAppearance in texture
// mode.
func (r *Registry) SetAtlas(a *Atlas) { r.atlas = a }

// FaceAppearance resolves a voxel's block id into the face's color and atlas
// region. Unregistered ids resolve to the zero appearance rather than
// failing, so a corrupted or future block id degrades to a black face.
func (r *Registry) FaceAppearance(v world.Voxel, f world.Face) meshing.FaceAppearance {
	def, ok := r.defs[v.Block]
	if !ok {
		return meshing.FaceAppearance{}
	}
	ap := meshing.FaceAppearance{Color: [3]float32{
		float32(def.Color.R) / 255,
		float32(def.Color.G) / 255,
		float32(def.Color.B) / 255,
	}}
	if r.atlas != nil {
		name := def.TextureSide
		switch f {
		case world.FaceTop:
			name = def.TextureTop
		case world.FaceBottom:
			name = def.TextureBottom
		}
		if reg, ok := r.atlas.Region(name); ok {
			ap.Region = reg
		}
	}
	return ap
}

// RegisterDefaults installs the built-in block set.
func (r *Registry) RegisterDefaults() error {
	defs := []*BlockDefinition{
		{ID: Grass, Name: "grass", Color: world.RGB{R: 96, G: 160, B: 72},
			TextureTop: "grass_top", TextureSide: "grass_side", TextureBottom: "dirt"},
		{ID: Dirt, Name: "dirt", Color: world.RGB{R: 134, G: 96, B: 67},
			TextureTop: "dirt", TextureSide: "dirt", TextureBottom: "dirt"},
		{ID: Stone, Name: "stone", Color: world.RGB{R: 128, G: 128, B: 128},
			TextureTop: "stone", TextureSide: "stone", TextureBottom: "stone"},
		{ID: Sand, Name: "sand", Color: world.RGB{R: 219, G: 206, B: 163},
			TextureTop: "sand", TextureSide: "sand", TextureBottom: "sand"},
	}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}
