package material

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gekko3d/shadecore"
	"github.com/gekko3d/shadecore/texture"
)

// ID is a dense per-library material id, the value carried through the
// shading record. Asset identity across libraries is the UUID.
type ID uint32

// Library holds the registered materials. Append-only: IDs stay valid
// for the library's lifetime and reads during shading are race-free.
type Library struct {
	log       shadecore.Logger
	materials []Material
	assetIDs  []uuid.UUID
	byName    map[string]ID
}

func NewLibrary(log shadecore.Logger) *Library {
	return &Library{
		log:    shadecore.OrNop(log),
		byName: make(map[string]ID),
	}
}

func (l *Library) Add(m Material) ID {
	id := ID(len(l.materials))
	l.materials = append(l.materials, m)
	l.assetIDs = append(l.assetIDs, uuid.New())
	if m.Name != "" {
		l.byName[m.Name] = id
	}
	return id
}

// Get returns nil for out-of-range ids.
func (l *Library) Get(id ID) *Material {
	if int(id) >= len(l.materials) {
		return nil
	}
	return &l.materials[id]
}

func (l *Library) AssetID(id ID) uuid.UUID {
	if int(id) >= len(l.assetIDs) {
		return uuid.Nil
	}
	return l.assetIDs[id]
}

func (l *Library) Lookup(name string) (ID, bool) {
	id, ok := l.byName[name]
	return id, ok
}

func (l *Library) Len() int { return len(l.materials) }

// manifest is the on-disk JSON schema. Texture paths are relative to
// the manifest file.
type manifest struct {
	Materials []manifestMaterial `json:"materials"`
}

type manifestMaterial struct {
	Name           string     `json:"name"`
	Model          string     `json:"model"` // "metallic-roughness" | "specular-glossiness"
	AlphaMode      string     `json:"alpha_mode,omitempty"`
	AlphaThreshold *float32   `json:"alpha_threshold,omitempty"`
	DoubleSided    bool       `json:"double_sided,omitempty"`
	BaseColor      [4]float32 `json:"base_color,omitempty"`
	BaseColorMap   string     `json:"base_color_map,omitempty"`
	OpacityInMap   bool       `json:"opacity_in_map,omitempty"` // RGBA-packed base color
	SpecMap        string     `json:"spec_map,omitempty"`
	SpecFactor     [4]float32 `json:"spec_factor,omitempty"`
	HasOcclusion   bool       `json:"has_occlusion,omitempty"`
	OcclusionMap   string     `json:"occlusion_map,omitempty"`
	NormalMap      string     `json:"normal_map,omitempty"`
	NormalEncoding string     `json:"normal_encoding,omitempty"` // "rgb" | "rg"
	EmissiveMap    string     `json:"emissive_map,omitempty"`
	Emissive       [3]float32 `json:"emissive,omitempty"`
	EmissiveScale  *float32   `json:"emissive_scale,omitempty"`
	IoR            *float32   `json:"ior,omitempty"`
	Transmission   float32    `json:"transmission,omitempty"`
}

// LoadManifest reads a JSON material manifest, loads every referenced
// texture into bank, and registers the materials. Returns the ids in
// manifest order.
func (l *Library) LoadManifest(path string, bank *texture.Bank) ([]ID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("material: read manifest %s: %w", path, err)
	}
	var mf manifest
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("material: parse manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	loadMap := func(rel string) (texture.Handle, error) {
		if rel == "" {
			return texture.InvalidHandle, nil
		}
		return bank.LoadFile(filepath.Join(dir, rel))
	}

	ids := make([]ID, 0, len(mf.Materials))
	for _, entry := range mf.Materials {
		m := New(entry.Name)

		switch entry.Model {
		case "", "metallic-roughness":
			m.Model = MetalRough
		case "specular-glossiness":
			m.Model = SpecGloss
		default:
			return nil, fmt.Errorf("material: %s: unknown model %q", entry.Name, entry.Model)
		}

		switch entry.AlphaMode {
		case "", "opaque":
			m.Alpha = AlphaOpaque
		case "mask":
			m.Alpha = AlphaMask
		default:
			return nil, fmt.Errorf("material: %s: unknown alpha mode %q", entry.Name, entry.AlphaMode)
		}
		if entry.AlphaThreshold != nil {
			m.AlphaThreshold = *entry.AlphaThreshold
		}
		m.DoubleSided = entry.DoubleSided

		if entry.BaseColor != ([4]float32{}) {
			m.BaseColorFactor = mgl32.Vec4(entry.BaseColor)
		}
		if m.BaseColor, err = loadMap(entry.BaseColorMap); err != nil {
			return nil, err
		}
		if m.BaseColor.Valid() {
			m.BaseColorSource = BaseColorTexture
			if entry.OpacityInMap {
				m.BaseColorSource = BaseColorTextureRGBA
			}
		}

		if m.Spec, err = loadMap(entry.SpecMap); err != nil {
			return nil, err
		}
		if entry.SpecFactor != ([4]float32{}) {
			m.SpecFactor = mgl32.Vec4(entry.SpecFactor)
		}
		m.HasOcclusion = entry.HasOcclusion
		if m.Occlusion, err = loadMap(entry.OcclusionMap); err != nil {
			return nil, err
		}

		if m.Normal, err = loadMap(entry.NormalMap); err != nil {
			return nil, err
		}
		switch entry.NormalEncoding {
		case "", "rgb":
			m.NormalEnc = NormalRGB
		case "rg":
			m.NormalEnc = NormalRG
		default:
			return nil, fmt.Errorf("material: %s: unknown normal encoding %q", entry.Name, entry.NormalEncoding)
		}

		if m.Emissive, err = loadMap(entry.EmissiveMap); err != nil {
			return nil, err
		}
		m.EmissiveFactor = mgl32.Vec3(entry.Emissive)
		if entry.EmissiveScale != nil {
			m.EmissiveScale = *entry.EmissiveScale
		}

		if entry.IoR != nil {
			m.IoR = *entry.IoR
		}
		m.SpecularTransmission = entry.Transmission

		id := l.Add(m)
		ids = append(ids, id)
		l.log.Infof("registered material %q (%s) as id %d asset %s",
			m.Name, m.Model, id, l.AssetID(id))
	}
	return ids, nil
}
