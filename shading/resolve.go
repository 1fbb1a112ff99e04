package shading

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/shadecore/core"
	"github.com/gekko3d/shadecore/material"
	"github.com/gekko3d/shadecore/texture"
)

// ErrAlphaDiscard signals that the alpha test rejected the hit. The
// traversal owner must treat the intersection as a miss and keep
// searching; it is control flow, not a failure.
var ErrAlphaDiscard = errors.New("shading: alpha test discarded hit")

// MinLinearRoughness is the floor applied to linear roughness. Values
// below it make the downstream GGX evaluation singular.
const MinLinearRoughness = 0.08

// Resolver turns an interpolated surface sample plus a material block
// into a shading record. It holds no per-hit state: Resolve is pure in
// its inputs and safe to call from any number of goroutines.
type Resolver struct {
	Textures  *texture.Bank
	Materials *material.Library

	// NormalMapping toggles tangent-space normal perturbation for
	// materials that carry a normal map.
	NormalMapping bool
}

func NewResolver(bank *texture.Bank, lib *material.Library) *Resolver {
	return &Resolver{
		Textures:      bank,
		Materials:     lib,
		NormalMapping: true,
	}
}

// Resolve evaluates the material at one hit. view points from the
// surface toward the viewer and must be unit length. The sampler
// strategy is used for every texture fetch of this evaluation.
//
// Returns ErrAlphaDiscard when the alpha test rejects the hit.
func (r *Resolver) Resolve(surf core.SurfaceSample, id material.ID, view mgl32.Vec3, s texture.Sampler) (Data, error) {
	mat := r.Materials.Get(id)
	if mat == nil {
		return Data{}, fmt.Errorf("shading: unknown material id %d", id)
	}

	base := r.baseColor(mat, s, surf.UV)
	opacity := base.W()

	// The compare is a plain threshold on the resolved opacity, so
	// coincident samples always agree and no seams appear.
	if mat.Alpha == material.AlphaMask && opacity < mat.AlphaThreshold {
		return Data{}, ErrAlphaDiscard
	}

	sd := Data{
		Position:     surf.Position,
		View:         view,
		Normal:       surf.Normal,
		Tangent:      surf.Tangent,
		Bitangent:    surf.Bitangent,
		FaceNormal:   surf.FaceNormal,
		UV:           surf.UV,
		FrontFacing:  view.Dot(surf.FaceNormal) >= 0,
		DoubleSided:  mat.DoubleSided,
		Opacity:      opacity,
		IoR:          mat.IoR,
		Transmission: mat.SpecularTransmission,
		MaterialID:   id,
		Occlusion:    mgl32.Vec4{1, 1, 1, 1},
	}

	if sd.FrontFacing {
		sd.Eta = 1 / mat.IoR
	} else {
		sd.Eta = mat.IoR
	}

	spec, haveSpecTex := r.Textures.Sample(s, mat.Spec, surf.UV)
	if !haveSpecTex {
		spec = mat.SpecFactor
	}

	baseRGB := base.Vec3()
	switch mat.Model {
	case material.MetalRough:
		// R=occlusion, G=roughness, B=metallic.
		sd.LinearRoughness = spec.Y()
		sd.Metallic = spec.Z()
		sd.Diffuse = baseRGB.Mul(1 - sd.Metallic)

		f0 := dielectricF0(mat.IoR)
		sd.Specular = lerp3(mgl32.Vec3{f0, f0, f0}, baseRGB, sd.Metallic)

		if mat.HasOcclusion {
			occ := spec.X()
			sd.Occlusion = mgl32.Vec4{occ, occ, occ, occ}
		}

	case material.SpecGloss:
		sd.Diffuse = baseRGB
		sd.Specular = spec.Vec3()
		sd.LinearRoughness = 1 - spec.W()
		sd.Metallic = deriveMetallic(sd.Diffuse, sd.Specular)

		if occ, ok := r.Textures.Sample(s, mat.Occlusion, surf.UV); ok {
			sd.Occlusion = occ
		}
	}

	if sd.LinearRoughness < MinLinearRoughness {
		sd.LinearRoughness = MinLinearRoughness
	}
	sd.GGXAlpha = sd.LinearRoughness * sd.LinearRoughness

	// Back faces never emit.
	if sd.FrontFacing {
		emis := mat.EmissiveFactor
		if e, ok := r.Textures.Sample(s, mat.Emissive, surf.UV); ok {
			emis = e.Vec3()
		}
		sd.Emissive = emis.Mul(mat.EmissiveScale)
	}

	if r.NormalMapping && mat.HasNormalMap() && surf.Bitangent.LenSqr() > 0 {
		ApplyNormalMap(mat, s, r.Textures, &sd)
	}

	sd.NdotV = sd.Normal.Dot(sd.View)

	// Double-sided surfaces hit from the back get their shading normal
	// oriented toward the viewer.
	if sd.DoubleSided && !sd.FrontFacing {
		sd.Normal = sd.Normal.Mul(-1)
		sd.NdotV = -sd.NdotV
	}

	return sd, nil
}

func (r *Resolver) baseColor(mat *material.Material, s texture.Sampler, uv mgl32.Vec2) mgl32.Vec4 {
	switch mat.BaseColorSource {
	case material.BaseColorTexture:
		c, ok := r.Textures.Sample(s, mat.BaseColor, uv)
		if !ok {
			return mat.BaseColorFactor
		}
		return mgl32.Vec4{c.X(), c.Y(), c.Z(), mat.BaseColorFactor.W()}
	case material.BaseColorTextureRGBA:
		c, ok := r.Textures.Sample(s, mat.BaseColor, uv)
		if !ok {
			return mat.BaseColorFactor
		}
		return c
	default:
		return mat.BaseColorFactor
	}
}

// dielectricF0 is the normal-incidence reflectance of a dielectric:
// ((ior-1)/(ior+1))^2.
func dielectricF0(ior float32) float32 {
	f := (ior - 1) / (ior + 1)
	return f * f
}

// deriveMetallic estimates a metallic factor for spec-gloss materials,
// which store no metalness. It inverts the metal-rough parameterization
// with a dielectric F0 of 0.04: solving
// f0*m^2 + (s + d - f0)*m + (f0 - s) = 0 for m, where s and d are the
// specular and diffuse luminances.
func deriveMetallic(diffuse, specular mgl32.Vec3) float32 {
	const f0 = 0.04
	d := luminance(diffuse)
	s := luminance(specular)
	if s <= f0 {
		return 0
	}
	b := s + d - f0
	c := f0 - s
	root := float32(math.Sqrt(float64(b*b - 4*f0*c)))
	return mgl32.Clamp((root-b)/(2*f0), 0, 1)
}

func luminance(c mgl32.Vec3) float32 {
	return 0.2126*c.X() + 0.7152*c.Y() + 0.0722*c.Z()
}

func lerp3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
