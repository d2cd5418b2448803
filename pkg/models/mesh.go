// Package models provides the triangle meshes drawn by the reflex scene.
package models

import (
	"math"

	"github.com/taigrr/reflex/pkg/math3d"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Faces    []Face

	// Bounding box (recalculated by Transform)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Vertex holds the per-vertex attributes the renderer uses.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face is a triangle as indices into Mesh.Vertices.
type Face struct {
	V [3]int
}

// Edge is an undirected vertex pair with A < B.
type Edge struct {
	A, B int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(pos math3d.Vec3) int {
	m.Vertices = append(m.Vertices, Vertex{Position: pos})
	return len(m.Vertices) - 1
}

// AddFace appends a triangle.
func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, Face{V: [3]int{a, b, c}})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Radius returns the radius of a sphere around Center enclosing every vertex.
func (m *Mesh) Radius() float64 {
	c := m.Center()
	r := 0.0
	for _, v := range m.Vertices {
		r = math.Max(r, v.Position.Distance(c))
	}
	return r
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateSmoothNormals computes area-weighted vertex normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0)) // Don't normalize yet

		for _, idx := range f.V {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies mat to every vertex.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		// Rotation part only; meshes here are scaled uniformly.
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// FitHeight centers the mesh on its bounding box and scales it uniformly so
// its extent along Y equals height. Meshes with no height are only centered.
func (m *Mesh) FitHeight(height float64) {
	m.CalculateBounds()
	center := m.Center()
	transform := math3d.Translate(center.Negate())
	if h := m.Size().Y; h > 0 {
		s := height / h
		transform = math3d.Scale(math3d.V3(s, s, s)).Mul(transform)
	}
	m.Transform(transform)
}

// Edges returns each undirected triangle edge once, in first-seen order.
func (m *Mesh) Edges() []Edge {
	seen := make(map[Edge]struct{}, len(m.Faces)*3/2)
	edges := make([]Edge, 0, len(m.Faces)*3/2)
	for _, f := range m.Faces {
		for i := range 3 {
			a, b := f.V[i], f.V[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			e := Edge{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}
