package shading

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func dirInXZ(degFromZ float64) mgl32.Vec3 {
	rad := degFromZ * math.Pi / 180
	return mgl32.Vec3{float32(math.Sin(rad)), 0, float32(math.Cos(rad))}
}

func TestApplyBentNormalCorrects(t *testing.T) {
	// View 60 deg off the geometric normal, shading normal tilted 20
	// deg the other way: the reflection lands 10 deg below the horizon.
	sd := Data{
		View:        dirInXZ(60),
		Normal:      dirInXZ(-20),
		FaceNormal:  mgl32.Vec3{0, 0, 1},
		Tangent:     mgl32.Vec3{1, 0, 0},
		Bitangent:   mgl32.Vec3{0, 1, 0},
		FrontFacing: true,
	}
	r := reflect(sd.View.Mul(-1), sd.Normal)
	if sd.FaceNormal.Dot(r) >= 0 {
		t.Fatal("setup: reflection should start below the horizon")
	}

	ApplyBentNormal(&sd)

	rPrime := reflect(sd.View.Mul(-1), sd.Normal)
	if sd.FaceNormal.Dot(rPrime) < -1e-3 {
		t.Errorf("corrected reflection still below horizon: dot = %v", sd.FaceNormal.Dot(rPrime))
	}
	if !mgl32.FloatEqualThreshold(sd.Normal.Len(), 1, 1e-5) {
		t.Errorf("normal not unit: %v", sd.Normal)
	}
	if !mgl32.FloatEqualThreshold(sd.NdotV, sd.Normal.Dot(sd.View), 1e-6) {
		t.Errorf("NdotV = %v, want %v", sd.NdotV, sd.Normal.Dot(sd.View))
	}
	assertOrthonormal(t, sd)
}

func TestApplyBentNormalNoop(t *testing.T) {
	sd := Data{
		View:        dirInXZ(30),
		Normal:      mgl32.Vec3{0, 0, 1},
		FaceNormal:  mgl32.Vec3{0, 0, 1},
		Tangent:     mgl32.Vec3{1, 0, 0},
		Bitangent:   mgl32.Vec3{0, 1, 0},
		FrontFacing: true,
		NdotV:       dirInXZ(30).Z(),
	}
	before := sd
	ApplyBentNormal(&sd)
	if sd != before {
		t.Errorf("valid reflection was modified: %+v", sd)
	}
}

func TestApplyBentNormalBackFace(t *testing.T) {
	// Double-sided back-face hit: the resolver has already flipped the
	// shading normal, the geometric test must use the flipped side too.
	sd := Data{
		View:        dirInXZ(60).Mul(-1),
		Normal:      dirInXZ(-20).Mul(-1),
		FaceNormal:  mgl32.Vec3{0, 0, 1},
		Tangent:     mgl32.Vec3{1, 0, 0},
		Bitangent:   mgl32.Vec3{0, 1, 0},
		FrontFacing: false,
		DoubleSided: true,
	}
	ApplyBentNormal(&sd)

	ng := sd.FaceNormal.Mul(-1)
	rPrime := reflect(sd.View.Mul(-1), sd.Normal)
	if ng.Dot(rPrime) < -1e-3 {
		t.Errorf("corrected reflection below oriented horizon: dot = %v", ng.Dot(rPrime))
	}
}
