package shading

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Denominators below this clamp the whole gradient contribution to
// zero instead of blowing up near degenerate or edge-on triangles.
const texGradEpsilon = 1e-12

// TexGradients derives the screen-space UV gradients at a primary-ray
// hit from the triangle geometry and the pixel footprint. dPdx and
// dPdy are the world-space extents of one pixel at the hit distance
// (core.Camera.Footprint). rayDir must be unit length.
//
// The footprint vectors are transferred onto the triangle plane along
// the ray and converted to barycentric deltas through the inverse
// Jacobian 1/dot(cross(e1,e2), rayDir), then mapped into UV space via
// the triangle's UV edge vectors. Degenerate triangles and edge-on
// rays yield zero gradients, never NaN.
func TexGradients(positions [3]mgl32.Vec3, uvs [3]mgl32.Vec2, rayDir, dPdx, dPdy mgl32.Vec3) (ddx, ddy mgl32.Vec2) {
	e1 := positions[1].Sub(positions[0])
	e2 := positions[2].Sub(positions[0])

	k := e1.Cross(e2).Dot(rayDir)
	if mgl32.Abs(k) < texGradEpsilon {
		return mgl32.Vec2{}, mgl32.Vec2{}
	}
	inv := 1 / k

	cu := e2.Cross(rayDir)
	cv := rayDir.Cross(e1)

	dudx := cu.Dot(dPdx) * inv
	dvdx := cv.Dot(dPdx) * inv
	dudy := cu.Dot(dPdy) * inv
	dvdy := cv.Dot(dPdy) * inv

	g1 := uvs[1].Sub(uvs[0])
	g2 := uvs[2].Sub(uvs[0])

	ddx = g1.Mul(dudx).Add(g2.Mul(dvdx))
	ddy = g1.Mul(dudy).Add(g2.Mul(dvdy))
	return ddx, ddy
}
