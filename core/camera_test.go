package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraPrimaryRay(t *testing.T) {
	// Odd resolution so the center pixel maps exactly to the axis.
	cam := NewCamera(
		mgl32.Vec3{0, 0, 5},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
		60, 101, 101,
	)

	center := cam.PrimaryRay(50, 50)
	if !center.Dir.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("center ray dir = %v, want -Z", center.Dir)
	}
	if center.Origin != cam.Position {
		t.Errorf("ray origin = %v, want %v", center.Origin, cam.Position)
	}

	// Left edge bends toward -X, top edge toward +Y.
	left := cam.PrimaryRay(0, 50)
	if left.Dir.X() >= 0 {
		t.Errorf("left ray dir = %v, want negative X", left.Dir)
	}
	top := cam.PrimaryRay(50, 0)
	if top.Dir.Y() <= 0 {
		t.Errorf("top ray dir = %v, want positive Y", top.Dir)
	}
}

func TestCameraFootprint(t *testing.T) {
	cam := NewCamera(
		mgl32.Vec3{0, 0, 5},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
		90, 100, 100,
	)

	dx1, dy1 := cam.Footprint(1)
	dx2, dy2 := cam.Footprint(2)

	// Footprint grows linearly with hit distance.
	if !dx2.ApproxEqualThreshold(dx1.Mul(2), 1e-6) || !dy2.ApproxEqualThreshold(dy1.Mul(2), 1e-6) {
		t.Errorf("footprint not linear in distance: %v %v vs %v %v", dx1, dy1, dx2, dy2)
	}

	// 90 deg fov over 100 pixels: one pixel spans 2*tan(45)/100 = 0.02
	// at unit distance.
	if !mgl32.FloatEqualThreshold(dx1.Len(), 0.02, 1e-4) {
		t.Errorf("pixel width = %v, want 0.02", dx1.Len())
	}
	if mgl32.Abs(dx1.Dot(dy1)) > 1e-6 {
		t.Errorf("footprint axes not orthogonal: %v %v", dx1, dy1)
	}
}
