package shading

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/shadecore/material"
)

// Data is the resolved per-hit shading record handed to lighting. It
// combines hit geometry with the material parameters after texture
// fetch, alpha test, normal mapping and roughness remap.
//
// Direction invariants: View, Normal, Tangent and Bitangent are unit
// length (Tangent/Bitangent may be zero when no tangent frame exists);
// FaceNormal keeps its world orientation and is never flipped.
type Data struct {
	Position   mgl32.Vec3
	View       mgl32.Vec3 // unit, from surface toward viewer
	Normal     mgl32.Vec3
	Tangent    mgl32.Vec3
	Bitangent  mgl32.Vec3
	FaceNormal mgl32.Vec3
	UV         mgl32.Vec2

	FrontFacing bool
	DoubleSided bool

	Diffuse         mgl32.Vec3 // diffuse albedo
	Opacity         float32
	Specular        mgl32.Vec3 // reflectance at normal incidence
	LinearRoughness float32    // >= MinLinearRoughness
	GGXAlpha        float32    // always LinearRoughness^2
	Metallic        float32
	Emissive        mgl32.Vec3 // radiance, zero on back faces
	Occlusion       mgl32.Vec4

	IoR          float32
	Eta          float32 // 1/IoR front-facing, IoR otherwise
	Transmission float32

	MaterialID material.ID

	// NdotV is dot(Normal, View), left unclamped. After the
	// double-sided back-face flip it is non-negative for surfaces the
	// viewer can see.
	NdotV float32
}
