package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/reflex/pkg/math3d"
)

// LoadGLB loads every triangle primitive of a .glb or .gltf file into one mesh.
// Normals are computed when the file carries none.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := FromDocument(doc)
	if err != nil {
		return nil, err
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// FromDocument converts a decoded glTF document into a mesh.
func FromDocument(doc *gltf.Document) (*Mesh, error) {
	mesh := NewMesh("gltf")
	hasNormals := true

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			ok, err := appendPrimitive(doc, prim, mesh)
			if err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
			hasNormals = hasNormals && ok
		}
	}

	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("gltf has no triangles")
	}
	if !hasNormals {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// appendPrimitive adds one primitive's triangles to mesh and reports whether
// it carried normals.
func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) (bool, error) {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		// Lines and points have nothing to show as a bat.
		return true, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return true, nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return false, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
		if err != nil {
			return false, fmt.Errorf("read normals: %w", err)
		}
	}

	base := len(mesh.Vertices)
	for i, p := range positions {
		v := Vertex{Position: vec3(p)}
		if i < len(normals) {
			v.Normal = vec3(normals[i])
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return false, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := int(indices[i]), int(indices[i+1]), int(indices[i+2])
		if a >= len(positions) || b >= len(positions) || c >= len(positions) {
			return false, fmt.Errorf("index out of range in triangle %d", i/3)
		}
		// glTF winds front faces CCW; the renderer expects CW after its Y flip.
		mesh.AddFace(base+a, base+c, base+b)
	}

	return len(normals) == len(positions), nil
}

func vec3(f [3]float32) math3d.Vec3 {
	return math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
}
