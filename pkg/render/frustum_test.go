package render

import (
	"math"
	"testing"

	"github.com/taigrr/reflex/pkg/math3d"
)

func originFrustum(near, far float64) Frustum {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, near, far)
	return NewFrustumFromMatrix(proj.Mul(math3d.Identity()))
}

func TestPlaneNormalize(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	if math.Abs(plane.Normal.Len()-1.0) > 1e-9 {
		t.Errorf("normalized normal length = %v, want 1.0", plane.Normal.Len())
	}
	if math.Abs(plane.Normal.Y-0.6) > 1e-9 || math.Abs(plane.Normal.Z-0.8) > 1e-9 {
		t.Errorf("normal = %v, want (0, 0.6, 0.8)", plane.Normal)
	}
	if math.Abs(plane.D-2.0) > 1e-9 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}
	if d := plane.DistanceToPoint(math3d.V3(7, 0, 5)); math.Abs(d-6) > 1e-9 {
		t.Errorf("distance = %v, want 6", d)
	}
}

func TestFrustumPlanesNormalized(t *testing.T) {
	for i, plane := range originFrustum(0.1, 100).Planes {
		if length := plane.Normal.Len(); math.Abs(length-1.0) > 1e-6 {
			t.Errorf("plane %d normal length = %v, want 1.0", i, length)
		}
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	frustum := originFrustum(0.1, 100)

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center near", math3d.V3(0, 0, -1), true},
		{"center far", math3d.V3(0, 0, -99), true},
		{"behind camera", math3d.V3(0, 0, 1), false},
		{"too far", math3d.V3(0, 0, -200), false},
		{"too close", math3d.V3(0, 0, -0.01), false},
		{"above view", math3d.V3(0, 10, -5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectAABB(t *testing.T) {
	frustum := originFrustum(1, 100)

	tests := []struct {
		name     string
		box      AABB
		expected bool
	}{
		{"fully inside", AABB{math3d.V3(-1, -1, -10), math3d.V3(1, 1, -5)}, true},
		{"crosses near plane", AABB{math3d.V3(-1, -1, -2), math3d.V3(1, 1, 2)}, true},
		{"behind camera", AABB{math3d.V3(-1, -1, 5), math3d.V3(1, 1, 10)}, false},
		{"beyond far plane", AABB{math3d.V3(-1, -1, -150), math3d.V3(1, 1, -120)}, false},
		{"far to the right", AABB{math3d.V3(100, -1, -10), math3d.V3(110, 1, -5)}, false},
		{"contains frustum", AABB{math3d.V3(-200, -200, -200), math3d.V3(200, 200, 200)}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectAABB(tc.box); got != tc.expected {
				t.Errorf("IntersectAABB(%v) = %v, want %v", tc.box, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	frustum := originFrustum(1, 100)

	tests := []struct {
		name     string
		center   math3d.Vec3
		radius   float64
		expected bool
	}{
		{"inside", math3d.V3(0, 0, -10), 1.0, true},
		{"straddles near plane", math3d.V3(0, 0, -0.5), 1.0, true},
		{"behind", math3d.V3(0, 0, 5), 1.0, false},
		{"just off the left edge", math3d.V3(-30, 0, -10), 0.1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectsSphere(tc.center, tc.radius); got != tc.expected {
				t.Errorf("IntersectsSphere(%v, %v) = %v, want %v", tc.center, tc.radius, got, tc.expected)
			}
		})
	}
}

func TestAABBTransform(t *testing.T) {
	box := AABB{math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)}

	moved := box.Transform(math3d.Translate(math3d.V3(10, 20, 30)))
	if moved.Min != math3d.V3(9, 19, 29) || moved.Max != math3d.V3(11, 21, 31) {
		t.Errorf("translated = %v", moved)
	}

	// A 45 degree turn about Y widens the box to sqrt(2) in X and Z.
	turned := box.Transform(math3d.RotateY(math.Pi / 4))
	if math.Abs(turned.Max.X-math.Sqrt2) > 1e-9 || math.Abs(turned.Max.Y-1) > 1e-9 {
		t.Errorf("rotated max = %v", turned.Max)
	}
}

func TestCameraFrustumFollowsLookAt(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(1)
	cam.SetPosition(math3d.Zero3())
	cam.LookAt(math3d.V3(10, 0, 0))
	frustum := cam.Frustum()

	if !frustum.ContainsPoint(math3d.V3(10, 0, 0)) {
		t.Error("point in front of rotated camera should be visible")
	}
	if frustum.ContainsPoint(math3d.V3(-10, 0, 0)) {
		t.Error("point behind rotated camera should not be visible")
	}
}
