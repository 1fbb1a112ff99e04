package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SurfaceSample carries the interpolated mesh attributes at one
// ray/triangle hit. It is immutable once built and lives for a single
// hit evaluation.
type SurfaceSample struct {
	Position   mgl32.Vec3
	FaceNormal mgl32.Vec3 // geometric normal, kept in world orientation (never flipped)
	Normal     mgl32.Vec3 // interpolated shading normal, unit length
	Tangent    mgl32.Vec3
	Bitangent  mgl32.Vec3 // zero when the mesh has no usable tangent frame
	UV         mgl32.Vec2

	// Triangle attributes, kept around for differential estimation.
	Positions [3]mgl32.Vec3
	UVs       [3]mgl32.Vec2
}

// FrontFacing reports whether the viewer is on the geometric front side.
// view points from the surface toward the viewer.
func (s SurfaceSample) FrontFacing(view mgl32.Vec3) bool {
	return view.Dot(s.FaceNormal) >= 0
}

// Triangle is one mesh triangle with full per-vertex attributes.
type Triangle struct {
	Positions  [3]mgl32.Vec3
	Normals    [3]mgl32.Vec3
	Tangents   [3]mgl32.Vec3
	Bitangents [3]mgl32.Vec3
	UVs        [3]mgl32.Vec2
}

const intersectEpsilon = 1e-7

// Intersect runs Moeller-Trumbore against the triangle. Returns false
// for misses, parallel rays and hits behind the origin.
func (tri Triangle) Intersect(r Ray) (Hit, bool) {
	e1 := tri.Positions[1].Sub(tri.Positions[0])
	e2 := tri.Positions[2].Sub(tri.Positions[0])

	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if det > -intersectEpsilon && det < intersectEpsilon {
		return Hit{}, false
	}
	inv := 1.0 / det

	s := r.Origin.Sub(tri.Positions[0])
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return Hit{}, false
	}

	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}

	t := e2.Dot(q) * inv
	if t <= intersectEpsilon {
		return Hit{}, false
	}
	return Hit{T: t, U: u, V: v}, true
}

// SampleAt interpolates the triangle attributes at the given hit and
// builds the surface sample handed to material resolution. The face
// normal comes from the triangle winding, not the vertex normals.
func (tri Triangle) SampleAt(r Ray, hit Hit) SurfaceSample {
	w := 1 - hit.U - hit.V

	faceN := tri.Positions[1].Sub(tri.Positions[0]).
		Cross(tri.Positions[2].Sub(tri.Positions[0]))
	if faceN.LenSqr() > 0 {
		faceN = faceN.Normalize()
	}

	n := bary3(tri.Normals, w, hit.U, hit.V)
	if n.LenSqr() > 0 {
		n = n.Normalize()
	} else {
		n = faceN
	}

	tangent := bary3(tri.Tangents, w, hit.U, hit.V)
	bitangent := bary3(tri.Bitangents, w, hit.U, hit.V)
	if tangent.LenSqr() > 0 {
		tangent = tangent.Normalize()
	}
	if bitangent.LenSqr() > 0 {
		bitangent = bitangent.Normalize()
	}

	return SurfaceSample{
		Position:   r.At(hit.T),
		FaceNormal: faceN,
		Normal:     n,
		Tangent:    tangent,
		Bitangent:  bitangent,
		UV: tri.UVs[0].Mul(w).
			Add(tri.UVs[1].Mul(hit.U)).
			Add(tri.UVs[2].Mul(hit.V)),
		Positions: tri.Positions,
		UVs:       tri.UVs,
	}
}

// ComputeTangents fills the per-vertex tangent frame from positions,
// UVs and normals. Triangles with a degenerate UV area keep a zero
// frame, which downstream shading treats as "no tangent space".
func (tri *Triangle) ComputeTangents() {
	e1 := tri.Positions[1].Sub(tri.Positions[0])
	e2 := tri.Positions[2].Sub(tri.Positions[0])

	du1 := tri.UVs[1].X() - tri.UVs[0].X()
	dv1 := tri.UVs[1].Y() - tri.UVs[0].Y()
	du2 := tri.UVs[2].X() - tri.UVs[0].X()
	dv2 := tri.UVs[2].Y() - tri.UVs[0].Y()

	denom := du1*dv2 - du2*dv1
	if denom == 0 {
		return
	}
	r := 1.0 / denom

	t := e1.Mul(dv2 * r).Sub(e2.Mul(dv1 * r))
	b := e2.Mul(du1 * r).Sub(e1.Mul(du2 * r))

	for i := 0; i < 3; i++ {
		n := tri.Normals[i]
		// T = normalize(T - N*(N.T)), then rebuild B against the frame.
		ti := t.Sub(n.Mul(n.Dot(t)))
		if ti.LenSqr() < 1e-8 {
			continue
		}
		ti = ti.Normalize()
		bi := b
		if bi.LenSqr() < 1e-8 {
			bi = n.Cross(ti)
		}
		tri.Tangents[i] = ti
		tri.Bitangents[i] = bi.Normalize()
	}
}

func bary3(v [3]mgl32.Vec3, w, u, vv float32) mgl32.Vec3 {
	return v[0].Mul(w).Add(v[1].Mul(u)).Add(v[2].Mul(vv))
}

// Area returns the triangle surface area.
func (tri Triangle) Area() float32 {
	e1 := tri.Positions[1].Sub(tri.Positions[0])
	e2 := tri.Positions[2].Sub(tri.Positions[0])
	return float32(0.5) * float32(math.Sqrt(float64(e1.Cross(e2).LenSqr())))
}
