package shading

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ApplyBentNormal nudges the shading normal when the specular
// reflection of the view direction points below the geometric surface,
// which would otherwise produce light leaks or black speckle at
// grazing angles. The normal is pulled toward the view direction just
// far enough for the reflection to clear the geometric horizon; NdotV
// and the tangent frame are updated to match. No-op when the
// reflection is already valid.
func ApplyBentNormal(sd *Data) {
	ng := sd.FaceNormal
	if !sd.FrontFacing {
		ng = ng.Mul(-1)
	}

	r := reflect(sd.View.Mul(-1), sd.Normal)
	a := ng.Dot(r)
	if a >= 0 {
		return
	}

	// Stabilizer: keeps the division bounded at grazing angles.
	b := max(float32(0.001), sd.Normal.Dot(ng))
	rp := r.Sub(sd.Normal.Mul(a / b))
	if rp.LenSqr() == 0 {
		return
	}

	sd.Normal = sd.View.Add(rp.Normalize()).Normalize()
	sd.NdotV = sd.Normal.Dot(sd.View)
	orthonormalize(sd)
}

// reflect mirrors i about n. i points toward the surface.
func reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * i.Dot(n)))
}
