package shading

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/shadecore/core"
	"github.com/gekko3d/shadecore/material"
	"github.com/gekko3d/shadecore/texture"
)

// Encoder receives resolved shading records. Packing them into
// discrete output channels is the encoder's contract, not this
// package's.
type Encoder interface {
	Encode(px, py int, d Data)
}

// Options configures a Pipeline.
type Options struct {
	// RayDifferentials derives per-hit UV gradients from the camera
	// footprint and samples textures through them. When off, every
	// fetch uses FixedLOD.
	RayDifferentials bool
	FixedLOD         float32
	NormalMapping    bool
	BentNormals      bool
}

func DefaultOptions() Options {
	return Options{
		RayDifferentials: true,
		NormalMapping:    true,
		BentNormals:      true,
	}
}

// Pipeline sequences one primary-ray hit evaluation: differential
// estimation, sampler selection, material resolution and bent-normal
// correction. Each call is an independent unit of work; a single
// Pipeline may be shared across goroutines.
type Pipeline struct {
	resolver *Resolver
	opts     Options
}

func NewPipeline(bank *texture.Bank, lib *material.Library, opts Options) *Pipeline {
	r := NewResolver(bank, lib)
	r.NormalMapping = opts.NormalMapping
	return &Pipeline{resolver: r, opts: opts}
}

// ShadeHit resolves the shading record for a primary-ray hit on tri.
// Returns ErrAlphaDiscard when the alpha test rejects the hit; the
// caller must then continue traversal past this intersection.
func (p *Pipeline) ShadeHit(cam *core.Camera, ray core.Ray, tri core.Triangle, hit core.Hit, id material.ID) (Data, error) {
	surf := tri.SampleAt(ray, hit)
	view := ray.Dir.Mul(-1)

	// Strategy is picked once and used for every fetch of this hit.
	var s texture.Sampler
	if p.opts.RayDifferentials {
		dPdx, dPdy := cam.Footprint(hit.T)
		ddx, ddy := TexGradients(surf.Positions, surf.UVs, ray.Dir, dPdx, dPdy)
		s = texture.GradientSampler{DDX: ddx, DDY: ddy}
	} else {
		s = texture.LODSampler{LOD: p.opts.FixedLOD}
	}

	sd, err := p.resolver.Resolve(surf, id, view, s)
	if err != nil {
		return Data{}, err
	}

	if p.opts.BentNormals {
		ApplyBentNormal(&sd)
	}
	return sd, nil
}

// ShadeInto resolves the hit and hands the record to enc at (px, py).
func (p *Pipeline) ShadeInto(cam *core.Camera, ray core.Ray, tri core.Triangle, hit core.Hit, id material.ID, px, py int, enc Encoder) error {
	sd, err := p.ShadeHit(cam, ray, tri, hit, id)
	if err != nil {
		return err
	}
	enc.Encode(px, py, sd)
	return nil
}

// ResolveSurface evaluates the material for an externally produced
// surface sample with an explicit sampler strategy. This is the entry
// point for owners that do their own traversal and differential
// bookkeeping.
func (p *Pipeline) ResolveSurface(surf core.SurfaceSample, id material.ID, view mgl32.Vec3, s texture.Sampler) (Data, error) {
	sd, err := p.resolver.Resolve(surf, id, view, s)
	if err != nil {
		return Data{}, err
	}
	if p.opts.BentNormals {
		ApplyBentNormal(&sd)
	}
	return sd, nil
}
