package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(0, 1.2, 7))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkEulerRotate(b *testing.B) {
	e := Euler{X: -0.3, Y: 0.2, Z: 0.4}
	v := V3(0, 0.5, 0)

	for b.Loop() {
		_ = e.Rotate(v)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Distance(b *testing.B) {
	v1 := V3(0, 1.5, 6.8)
	v2 := V3(0, 1.5, 7)

	for b.Loop() {
		_ = v1.Distance(v2)
	}
}
