package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/shadecore/material"
	"github.com/gekko3d/shadecore/texture"
)

// ApplyNormalMap perturbs the shading normal with the material's normal
// map and re-orthogonalizes the tangent frame. No-op when the material
// has no normal map or sd carries no usable bitangent.
func ApplyNormalMap(mat *material.Material, s texture.Sampler, bank *texture.Bank, sd *Data) {
	if !mat.HasNormalMap() || sd.Bitangent.LenSqr() == 0 {
		return
	}
	sample, ok := bank.Sample(s, mat.Normal, sd.UV)
	if !ok {
		return
	}

	n := DecodeNormal(sample, mat.NormalEnc)

	// Tangent space to world via the existing TBN frame.
	world := sd.Tangent.Mul(n.X()).
		Add(sd.Bitangent.Mul(n.Y())).
		Add(sd.Normal.Mul(n.Z()))
	if world.LenSqr() == 0 {
		return
	}
	sd.Normal = world.Normalize()
	orthonormalize(sd)
}

// DecodeNormal unpacks an encoded normal-map sample into a unit
// tangent-space vector.
func DecodeNormal(sample mgl32.Vec4, enc material.NormalEncoding) mgl32.Vec3 {
	switch enc {
	case material.NormalRG:
		x := sample.X()*2 - 1
		y := sample.Y()*2 - 1
		// Compression error can push x^2+y^2 past one; clamp so the
		// radicand never goes negative.
		z := float32(math.Sqrt(float64(1 - mgl32.Clamp(x*x+y*y, 0, 1))))
		return normalizeOrUp(mgl32.Vec3{x, y, z})
	default:
		return normalizeOrUp(mgl32.Vec3{
			sample.X()*2 - 1,
			sample.Y()*2 - 1,
			sample.Z()*2 - 1,
		})
	}
}

func normalizeOrUp(v mgl32.Vec3) mgl32.Vec3 {
	if v.LenSqr() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return v.Normalize()
}

// orthonormalize rebuilds bitangent and tangent against the current
// normal (Gram-Schmidt), keeping the frame orthonormal after the
// normal moved.
func orthonormalize(sd *Data) {
	b := sd.Bitangent.Sub(sd.Normal.Mul(sd.Bitangent.Dot(sd.Normal)))
	if b.LenSqr() < 1e-12 {
		return
	}
	sd.Bitangent = b.Normalize()
	sd.Tangent = sd.Bitangent.Cross(sd.Normal)
}
