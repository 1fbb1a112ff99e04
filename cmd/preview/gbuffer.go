package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/shadecore/shading"
)

// gbuffer packs resolved shading records into a handful of preview
// channels. It implements shading.Encoder.
type gbuffer struct {
	diffuse   *image.NRGBA
	normal    *image.NRGBA
	roughness *image.NRGBA
	emissive  *image.NRGBA
}

func newGBuffer(w, h int) *gbuffer {
	r := image.Rect(0, 0, w, h)
	return &gbuffer{
		diffuse:   image.NewNRGBA(r),
		normal:    image.NewNRGBA(r),
		roughness: image.NewNRGBA(r),
		emissive:  image.NewNRGBA(r),
	}
}

func (g *gbuffer) Encode(px, py int, d shading.Data) {
	g.diffuse.SetNRGBA(px, py, toColor(d.Diffuse, d.Opacity))
	// Remap the unit normal into [0,1] for display.
	g.normal.SetNRGBA(px, py, toColor(d.Normal.Mul(0.5).Add(mgl32.Vec3{0.5, 0.5, 0.5}), 1))
	g.roughness.SetNRGBA(px, py, toColor(mgl32.Vec3{d.LinearRoughness, d.Metallic, d.Occlusion.X()}, 1))
	g.emissive.SetNRGBA(px, py, toColor(d.Emissive, 1))
}

func (g *gbuffer) channel(name string) *image.NRGBA {
	switch name {
	case "diffuse":
		return g.diffuse
	case "normal":
		return g.normal
	case "roughness":
		return g.roughness
	case "emissive":
		return g.emissive
	}
	return nil
}

// writeChannel saves one channel as <dir>/<name>.webp.
func (g *gbuffer) writeChannel(dir, name string) error {
	img := g.channel(name)
	if img == nil {
		return fmt.Errorf("preview: unknown output channel %q", name)
	}

	path := filepath.Join(dir, name+".webp")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("preview: encode %s: %w", path, err)
	}
	return nil
}

func toColor(c mgl32.Vec3, a float32) color.NRGBA {
	return color.NRGBA{
		R: toByte(c.X()),
		G: toByte(c.Y()),
		B: toByte(c.Z()),
		A: toByte(a),
	}
}

func toByte(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
