package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a primary ray in world space. Dir must be unit length.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Hit is the parametric result of a ray/triangle intersection.
// U and V are the barycentric coordinates of vertices 1 and 2.
type Hit struct {
	T float32
	U float32
	V float32
}
