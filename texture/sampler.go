package texture

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sampler is one texture-fetch strategy. A strategy is chosen once per
// hit evaluation and threaded through every fetch of that evaluation;
// it must not change mid-evaluation.
type Sampler interface {
	Sample(tex *Texture, uv mgl32.Vec2) mgl32.Vec4
}

// LODSampler samples at a fixed mip level. Valid in any evaluation
// context, including isolated single-ray evaluation.
type LODSampler struct {
	LOD float32
}

func (s LODSampler) Sample(tex *Texture, uv mgl32.Vec2) mgl32.Vec4 {
	return tex.SampleLOD(uv, s.LOD)
}

// GradientSampler selects the mip level from explicit screen-space UV
// derivatives. This is the only strategy that accounts for the actual
// pixel footprint at a ray-traced primary hit. The footprint is
// approximated isotropically from the longer gradient axis.
type GradientSampler struct {
	DDX mgl32.Vec2
	DDY mgl32.Vec2
}

func (s GradientSampler) Sample(tex *Texture, uv mgl32.Vec2) mgl32.Vec4 {
	w := float32(tex.Width())
	h := float32(tex.Height())

	// Footprint in texels at the base level.
	fx := sq(s.DDX.X()*w) + sq(s.DDX.Y()*h)
	fy := sq(s.DDY.X()*w) + sq(s.DDY.Y()*h)

	m := max(fx, fy)
	lod := float32(0)
	if m > 0 {
		lod = 0.5 * float32(math.Log2(float64(m)))
	}
	return tex.SampleLOD(uv, lod)
}

func sq(v float32) float32 { return v * v }

// QuadContext holds the UVs of a 2x2 group of neighboring shading
// points, the unit the implicit strategy differentiates over. Lane
// order is (x,y), (x+1,y), (x,y+1), (x+1,y+1).
type QuadContext struct {
	UV [4]mgl32.Vec2
}

func (q *QuadContext) DDX() mgl32.Vec2 { return q.UV[1].Sub(q.UV[0]) }
func (q *QuadContext) DDY() mgl32.Vec2 { return q.UV[2].Sub(q.UV[0]) }

// ImplicitSampler mirrors hardware automatic derivatives: UV gradients
// are finite differences across the quad. Caller contract: the quad
// must be fully populated from neighboring shading points evaluated in
// lockstep. Outside such grouped execution this strategy has no valid
// derivatives and must not be selected; use LODSampler or
// GradientSampler there instead.
type ImplicitSampler struct {
	Quad *QuadContext
}

func (s ImplicitSampler) Sample(tex *Texture, uv mgl32.Vec2) mgl32.Vec4 {
	g := GradientSampler{DDX: s.Quad.DDX(), DDY: s.Quad.DDY()}
	return g.Sample(tex, uv)
}
