package models

import (
	"math"

	"github.com/taigrr/reflex/pkg/math3d"
)

// NewCylinder builds a capped cylinder centered on the origin with its axis
// along Y, spanning -length/2 to +length/2.
func NewCylinder(radius, length float64, segments int) *Mesh {
	segments = max(segments, 3)
	m := NewMesh("cylinder")
	half := length / 2

	bottom := make([]int, segments)
	top := make([]int, segments)
	for i := range segments {
		a := 2 * math.Pi * float64(i) / float64(segments)
		x, z := radius*math.Cos(a), radius*math.Sin(a)
		bottom[i] = m.AddVertex(math3d.V3(x, -half, z))
		top[i] = m.AddVertex(math3d.V3(x, half, z))
	}
	bottomCenter := m.AddVertex(math3d.V3(0, -half, 0))
	topCenter := m.AddVertex(math3d.V3(0, half, 0))

	for i := range segments {
		j := (i + 1) % segments
		m.AddFace(bottom[i], top[i], top[j])
		m.AddFace(bottom[i], top[j], bottom[j])
		m.AddFace(topCenter, top[j], top[i])
		m.AddFace(bottomCenter, bottom[i], bottom[j])
	}

	m.CalculateSmoothNormals()
	m.CalculateBounds()
	return m
}

// NewBox builds an axis-aligned box centered on the origin.
func NewBox(size math3d.Vec3) *Mesh {
	m := NewMesh("box")
	h := size.Scale(0.5)

	for i := range 8 {
		x, y, z := -h.X, -h.Y, -h.Z
		if i&1 != 0 {
			x = h.X
		}
		if i&2 != 0 {
			y = h.Y
		}
		if i&4 != 0 {
			z = h.Z
		}
		m.AddVertex(math3d.V3(x, y, z))
	}

	// Two triangles per side, indices follow the bit layout above.
	quads := [6][4]int{
		{0, 2, 3, 1}, // -Z
		{4, 5, 7, 6}, // +Z
		{0, 1, 5, 4}, // -Y
		{2, 6, 7, 3}, // +Y
		{0, 4, 6, 2}, // -X
		{1, 3, 7, 5}, // +X
	}
	for _, q := range quads {
		m.AddFace(q[0], q[1], q[2])
		m.AddFace(q[0], q[2], q[3])
	}

	m.CalculateSmoothNormals()
	m.CalculateBounds()
	return m
}
