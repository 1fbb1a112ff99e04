package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a pinhole camera used for primary-ray generation and for
// the per-pixel footprint basis consumed by texture-LOD estimation.
type Camera struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3

	Width  int
	Height int

	// Half extents of the image plane at unit distance.
	tanHalfFovX float32
	tanHalfFovY float32
}

// NewCamera builds a camera looking from position toward target.
// fovYDeg is the full vertical field of view in degrees.
func NewCamera(position, target, up mgl32.Vec3, fovYDeg float32, width, height int) *Camera {
	forward := target.Sub(position).Normalize()
	right := forward.Cross(up).Normalize()
	camUp := right.Cross(forward)

	tanHalfY := float32(math.Tan(float64(mgl32.DegToRad(fovYDeg)) / 2))
	aspect := float32(width) / float32(height)

	return &Camera{
		Position:    position,
		Forward:     forward,
		Right:       right,
		Up:          camUp,
		Width:       width,
		Height:      height,
		tanHalfFovX: tanHalfY * aspect,
		tanHalfFovY: tanHalfY,
	}
}

// PrimaryRay returns the ray through the center of pixel (px, py).
// Pixel (0,0) is the top-left corner.
func (c *Camera) PrimaryRay(px, py int) Ray {
	// NDC in [-1, 1] with y down in image space.
	ndcX := (2*(float32(px)+0.5)/float32(c.Width) - 1) * c.tanHalfFovX
	ndcY := (1 - 2*(float32(py)+0.5)/float32(c.Height)) * c.tanHalfFovY

	dir := c.Forward.
		Add(c.Right.Mul(ndcX)).
		Add(c.Up.Mul(ndcY)).
		Normalize()
	return Ray{Origin: c.Position, Dir: dir}
}

// Footprint returns the world-space extents of one pixel at the given
// hit distance: the right/up axes scaled by field of view, pixel size
// and distance. These are the dPdx/dPdy inputs to texture-gradient
// estimation at a primary hit.
func (c *Camera) Footprint(hitT float32) (dPdx, dPdy mgl32.Vec3) {
	sx := 2 * c.tanHalfFovX / float32(c.Width) * hitT
	sy := 2 * c.tanHalfFovY / float32(c.Height) * hitT
	// Image y grows downward.
	return c.Right.Mul(sx), c.Up.Mul(-sy)
}
