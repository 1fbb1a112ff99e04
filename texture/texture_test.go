package texture

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func checker2x2() []mgl32.Vec4 {
	return []mgl32.Vec4{
		{1, 0, 0, 1}, {0, 1, 0, 1},
		{0, 0, 1, 1}, {1, 1, 1, 1},
	}
}

func TestMipChain(t *testing.T) {
	tex := NewFromPixels(4, 4, make([]mgl32.Vec4, 16), true)
	if tex.Levels() != 3 {
		t.Fatalf("levels = %d, want 3", tex.Levels())
	}
	if tex.Width() != 4 || tex.Height() != 4 {
		t.Errorf("dims = %dx%d, want 4x4", tex.Width(), tex.Height())
	}

	noMips := NewFromPixels(4, 4, make([]mgl32.Vec4, 16), false)
	if noMips.Levels() != 1 {
		t.Errorf("levels = %d, want 1", noMips.Levels())
	}
}

func TestSampleTexelCenter(t *testing.T) {
	tex := NewFromPixels(2, 2, checker2x2(), false)

	// (0.25, 0.25) is the exact center of texel (0,0).
	got := tex.SampleLOD(mgl32.Vec2{0.25, 0.25}, 0)
	if !got.ApproxEqualThreshold(mgl32.Vec4{1, 0, 0, 1}, 1e-5) {
		t.Errorf("got %v, want red", got)
	}
	got = tex.SampleLOD(mgl32.Vec2{0.75, 0.75}, 0)
	if !got.ApproxEqualThreshold(mgl32.Vec4{1, 1, 1, 1}, 1e-5) {
		t.Errorf("got %v, want white", got)
	}
}

func TestSampleWrap(t *testing.T) {
	tex := NewFromPixels(2, 2, checker2x2(), false)

	a := tex.SampleLOD(mgl32.Vec2{0.25, 0.25}, 0)
	b := tex.SampleLOD(mgl32.Vec2{1.25, -0.75}, 0)
	if !a.ApproxEqualThreshold(b, 1e-5) {
		t.Errorf("wrap mismatch: %v vs %v", a, b)
	}
}

func TestSampleTopLevelIsAverage(t *testing.T) {
	tex := NewFromPixels(2, 2, checker2x2(), true)
	if tex.Levels() != 2 {
		t.Fatalf("levels = %d, want 2", tex.Levels())
	}

	want := mgl32.Vec4{0.5, 0.5, 0.5, 1}
	got := tex.SampleLOD(mgl32.Vec2{0.5, 0.5}, 1)
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("top level = %v, want %v", got, want)
	}

	// Over-large lod clamps to the top level.
	got = tex.SampleLOD(mgl32.Vec2{0.5, 0.5}, 10)
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("clamped lod = %v, want %v", got, want)
	}
}

func TestSampleFractionalLOD(t *testing.T) {
	tex := NewFromPixels(2, 2, checker2x2(), true)

	c0 := tex.SampleLOD(mgl32.Vec2{0.25, 0.25}, 0)
	c1 := tex.SampleLOD(mgl32.Vec2{0.25, 0.25}, 1)
	mid := tex.SampleLOD(mgl32.Vec2{0.25, 0.25}, 0.5)

	want := lerp4(c0, c1, 0.5)
	if !mid.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("lod 0.5 = %v, want %v", mid, want)
	}
}

func TestNewFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	tex := NewFromImage(img, true)
	if tex.Levels() != 2 {
		t.Fatalf("levels = %d, want 2", tex.Levels())
	}
	got := tex.SampleLOD(mgl32.Vec2{0.25, 0.25}, 0)
	if !got.ApproxEqualThreshold(mgl32.Vec4{1, 0, 0, 1}, 1e-5) {
		t.Errorf("got %v, want red", got)
	}
}

func TestNewConstant(t *testing.T) {
	c := mgl32.Vec4{0.2, 0.4, 0.6, 0.8}
	tex := NewConstant(c)
	got := tex.SampleLOD(mgl32.Vec2{0.7, 0.3}, 0)
	if !got.ApproxEqualThreshold(c, 1e-6) {
		t.Errorf("got %v, want %v", got, c)
	}
}
