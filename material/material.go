package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/shadecore/texture"
)

// ShadingModel selects the material parameterization. The set is
// closed; every switch over it must be exhaustive.
type ShadingModel uint8

const (
	// MetalRough packs occlusion/roughness/metallic into the spec
	// texture's R/G/B channels.
	MetalRough ShadingModel = iota
	// SpecGloss carries specular RGB in the spec texture and
	// glossiness (1 - roughness) in its alpha.
	SpecGloss
)

func (m ShadingModel) String() string {
	switch m {
	case MetalRough:
		return "metallic-roughness"
	case SpecGloss:
		return "specular-glossiness"
	}
	return "unknown"
}

// AlphaMode controls the alpha test during resolution.
type AlphaMode uint8

const (
	AlphaOpaque AlphaMode = iota
	// AlphaMask discards hits whose opacity falls below the threshold.
	AlphaMask
)

// BaseColorSource describes where base color and opacity come from.
type BaseColorSource uint8

const (
	// BaseColorConstant uses the constant factor only.
	BaseColorConstant BaseColorSource = iota
	// BaseColorTexture takes RGB from the texture; opacity comes from
	// the constant factor's alpha.
	BaseColorTexture
	// BaseColorTextureRGBA packs color and opacity in one RGBA texture.
	BaseColorTextureRGBA
)

// NormalEncoding is the channel layout of the normal map.
type NormalEncoding uint8

const (
	NormalRGB NormalEncoding = iota // xyz remapped from [0,1]
	NormalRG                        // xy remapped, z reconstructed
)

// Material is the per-material parameter block read during shading.
// It is a plain value record: texture references are bank handles and
// the block is never mutated during evaluation.
type Material struct {
	Name  string
	Model ShadingModel

	Alpha          AlphaMode
	AlphaThreshold float32
	DoubleSided    bool

	BaseColorSource BaseColorSource
	BaseColor       texture.Handle
	BaseColorFactor mgl32.Vec4 // alpha is the constant opacity

	// Spec carries the model-dependent auxiliary channels:
	// MetalRough R=occlusion G=roughness B=metallic, SpecGloss
	// RGB=specular A=glossiness. SpecFactor substitutes when the
	// texture is absent.
	Spec       texture.Handle
	SpecFactor mgl32.Vec4

	// HasOcclusion marks the MetalRough R channel as valid occlusion.
	HasOcclusion bool
	// Occlusion is the SpecGloss path's separate occlusion map.
	Occlusion texture.Handle

	Normal    texture.Handle
	NormalEnc NormalEncoding

	Emissive       texture.Handle
	EmissiveFactor mgl32.Vec3
	EmissiveScale  float32

	IoR                  float32
	SpecularTransmission float32
}

// New returns a material with neutral defaults: opaque white
// metallic-roughness dielectric, IoR 1.5, no textures.
func New(name string) Material {
	return Material{
		Name:            name,
		Model:           MetalRough,
		Alpha:           AlphaOpaque,
		AlphaThreshold:  0.5,
		BaseColorSource: BaseColorConstant,
		BaseColor:       texture.InvalidHandle,
		BaseColorFactor: mgl32.Vec4{1, 1, 1, 1},
		Spec:            texture.InvalidHandle,
		SpecFactor:      mgl32.Vec4{1, 1, 0, 0},
		Occlusion:       texture.InvalidHandle,
		Normal:          texture.InvalidHandle,
		Emissive:        texture.InvalidHandle,
		EmissiveScale:   1,
		IoR:             1.5,
	}
}

// HasNormalMap reports whether normal mapping applies to this material.
func (m *Material) HasNormalMap() bool {
	return m.Normal.Valid()
}
