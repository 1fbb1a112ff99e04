package texture

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

// Texture is an RGBA texture with a full mip chain. Texel values are
// normalized floats; addressing wraps in both directions.
type Texture struct {
	levels []mipLevel
}

type mipLevel struct {
	width  int
	height int
	pix    []mgl32.Vec4 // row-major
}

// NewFromPixels builds a texture from row-major RGBA pixels. With
// buildMips set, a chain of box-filtered levels down to 1x1 is built.
func NewFromPixels(width, height int, pix []mgl32.Vec4, buildMips bool) *Texture {
	t := &Texture{levels: []mipLevel{{width: width, height: height, pix: pix}}}
	if !buildMips {
		return t
	}
	for {
		prev := t.levels[len(t.levels)-1]
		if prev.width == 1 && prev.height == 1 {
			break
		}
		t.levels = append(t.levels, downsample(prev))
	}
	return t
}

// NewFromImage converts a decoded image into a texture. Mip levels are
// produced by rescaling the source image per level.
func NewFromImage(img image.Image, buildMips bool) *Texture {
	src := toNRGBA(img)
	t := &Texture{levels: []mipLevel{nrgbaLevel(src)}}
	if !buildMips {
		return t
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	for w > 1 || h > 1 {
		w = max(1, w/2)
		h = max(1, h/2)
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		t.levels = append(t.levels, nrgbaLevel(dst))
	}
	return t
}

// NewConstant is a 1x1 texture holding a single color.
func NewConstant(c mgl32.Vec4) *Texture {
	return NewFromPixels(1, 1, []mgl32.Vec4{c}, false)
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	dst := image.NewNRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}

func nrgbaLevel(img *image.NRGBA) mipLevel {
	b := img.Bounds()
	l := mipLevel{
		width:  b.Dx(),
		height: b.Dy(),
		pix:    make([]mgl32.Vec4, b.Dx()*b.Dy()),
	}
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			c := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			l.pix[y*l.width+x] = mgl32.Vec4{
				float32(c.R) / 255,
				float32(c.G) / 255,
				float32(c.B) / 255,
				float32(c.A) / 255,
			}
		}
	}
	return l
}

func downsample(src mipLevel) mipLevel {
	w := max(1, src.width/2)
	h := max(1, src.height/2)
	dst := mipLevel{width: w, height: h, pix: make([]mgl32.Vec4, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// 2x2 box, clamped at odd edges.
			x0, y0 := x*2, y*2
			x1, y1 := min(x0+1, src.width-1), min(y0+1, src.height-1)
			sum := src.texel(x0, y0).
				Add(src.texel(x1, y0)).
				Add(src.texel(x0, y1)).
				Add(src.texel(x1, y1))
			dst.pix[y*w+x] = sum.Mul(0.25)
		}
	}
	return dst
}

func (t *Texture) Width() int  { return t.levels[0].width }
func (t *Texture) Height() int { return t.levels[0].height }
func (t *Texture) Levels() int { return len(t.levels) }

// SampleLOD fetches a bilinear sample at the given mip level, blending
// between the two nearest levels for fractional lod. lod is clamped to
// the available chain.
func (t *Texture) SampleLOD(uv mgl32.Vec2, lod float32) mgl32.Vec4 {
	maxLevel := float32(len(t.levels) - 1)
	lod = mgl32.Clamp(lod, 0, maxLevel)

	l0 := int(lod)
	frac := lod - float32(l0)
	c0 := t.levels[l0].bilinear(uv)
	if frac == 0 || l0 >= len(t.levels)-1 {
		return c0
	}
	c1 := t.levels[l0+1].bilinear(uv)
	return lerp4(c0, c1, frac)
}

func (l mipLevel) texel(x, y int) mgl32.Vec4 {
	return l.pix[y*l.width+x]
}

func (l mipLevel) bilinear(uv mgl32.Vec2) mgl32.Vec4 {
	fx := wrap(uv.X())*float32(l.width) - 0.5
	fy := wrap(uv.Y())*float32(l.height) - 0.5

	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := l.texel(wrapIndex(x0, l.width), wrapIndex(y0, l.height))
	c10 := l.texel(wrapIndex(x0+1, l.width), wrapIndex(y0, l.height))
	c01 := l.texel(wrapIndex(x0, l.width), wrapIndex(y0+1, l.height))
	c11 := l.texel(wrapIndex(x0+1, l.width), wrapIndex(y0+1, l.height))

	top := lerp4(c00, c10, tx)
	bot := lerp4(c01, c11, tx)
	return lerp4(top, bot, ty)
}

func wrap(v float32) float32 {
	v -= float32(math.Floor(float64(v)))
	if v < 0 {
		v += 1
	}
	return v
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func lerp4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}
