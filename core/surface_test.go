package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func unitTriangle() Triangle {
	up := mgl32.Vec3{0, 0, 1}
	return Triangle{
		Positions: [3]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   [3]mgl32.Vec3{up, up, up},
		UVs:       [3]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
	}
}

func TestTriangleIntersect(t *testing.T) {
	tri := unitTriangle()

	tests := []struct {
		name   string
		ray    Ray
		hit    bool
		wantT  float32
		wantU  float32
		wantV  float32
	}{
		{
			name:  "hit interior",
			ray:   Ray{Origin: mgl32.Vec3{0.25, 0.25, 1}, Dir: mgl32.Vec3{0, 0, -1}},
			hit:   true,
			wantT: 1, wantU: 0.25, wantV: 0.25,
		},
		{
			name: "miss outside",
			ray:  Ray{Origin: mgl32.Vec3{1, 1, 1}, Dir: mgl32.Vec3{0, 0, -1}},
		},
		{
			name: "behind origin",
			ray:  Ray{Origin: mgl32.Vec3{0.25, 0.25, 1}, Dir: mgl32.Vec3{0, 0, 1}},
		},
		{
			name: "parallel",
			ray:  Ray{Origin: mgl32.Vec3{0.25, 0.25, 1}, Dir: mgl32.Vec3{1, 0, 0}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := tri.Intersect(tc.ray)
			if ok != tc.hit {
				t.Fatalf("Intersect ok = %v, want %v", ok, tc.hit)
			}
			if !ok {
				return
			}
			if !mgl32.FloatEqualThreshold(hit.T, tc.wantT, 1e-5) ||
				!mgl32.FloatEqualThreshold(hit.U, tc.wantU, 1e-5) ||
				!mgl32.FloatEqualThreshold(hit.V, tc.wantV, 1e-5) {
				t.Errorf("got t=%v u=%v v=%v, want t=%v u=%v v=%v",
					hit.T, hit.U, hit.V, tc.wantT, tc.wantU, tc.wantV)
			}
		})
	}
}

func TestTriangleSampleAt(t *testing.T) {
	tri := unitTriangle()
	ray := Ray{Origin: mgl32.Vec3{0.25, 0.25, 1}, Dir: mgl32.Vec3{0, 0, -1}}
	hit, ok := tri.Intersect(ray)
	if !ok {
		t.Fatal("expected hit")
	}

	surf := tri.SampleAt(ray, hit)
	if !surf.Position.ApproxEqualThreshold(mgl32.Vec3{0.25, 0.25, 0}, 1e-5) {
		t.Errorf("position = %v", surf.Position)
	}
	if !surf.FaceNormal.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("face normal = %v", surf.FaceNormal)
	}
	if !surf.Normal.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("normal = %v", surf.Normal)
	}
	wantUV := mgl32.Vec2{0.25, 0.25}
	if !surf.UV.ApproxEqualThreshold(wantUV, 1e-5) {
		t.Errorf("uv = %v, want %v", surf.UV, wantUV)
	}
	if !surf.FrontFacing(mgl32.Vec3{0, 0, 1}) {
		t.Error("expected front-facing from above")
	}
	if surf.FrontFacing(mgl32.Vec3{0, 0, -1}) {
		t.Error("expected back-facing from below")
	}
}

func TestComputeTangents(t *testing.T) {
	tri := unitTriangle()
	tri.ComputeTangents()

	for i := 0; i < 3; i++ {
		if !tri.Tangents[i].ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5) {
			t.Errorf("tangent[%d] = %v", i, tri.Tangents[i])
		}
		if !tri.Bitangents[i].ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-5) {
			t.Errorf("bitangent[%d] = %v", i, tri.Bitangents[i])
		}
	}
}

func TestComputeTangents_DegenerateUV(t *testing.T) {
	tri := unitTriangle()
	tri.UVs = [3]mgl32.Vec2{{0.5, 0.5}, {0.5, 0.5}, {0.5, 0.5}}
	tri.ComputeTangents()

	for i := 0; i < 3; i++ {
		if tri.Tangents[i] != (mgl32.Vec3{}) || tri.Bitangents[i] != (mgl32.Vec3{}) {
			t.Errorf("expected zero frame at vertex %d, got T=%v B=%v",
				i, tri.Tangents[i], tri.Bitangents[i])
		}
	}
}
