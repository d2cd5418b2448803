package render

import (
	"github.com/taigrr/reflex/pkg/math3d"
	"github.com/taigrr/reflex/pkg/models"
)

// Wireframe draws lines, meshes and discs in world space through a camera.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// DrawLine3D draws a world-space segment. The part behind the near plane is
// clipped away in clip space before projection.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	vp := w.camera.ViewProjectionMatrix()
	a := vp.MulVec4(math3d.V4FromV3(p1, 1))
	b := vp.MulVec4(math3d.V4FromV3(p2, 1))

	// Inside the near plane means z >= -w.
	da, db := a.Z+a.W, b.Z+b.W
	switch {
	case da < 0 && db < 0:
		return
	case da < 0:
		a = lerp4(a, b, da/(da-db))
	case db < 0:
		b = lerp4(b, a, db/(db-da))
	}
	if a.W <= 0 || b.W <= 0 {
		return
	}

	x1, y1 := ndcToScreen(a.PerspectiveDivide(), w.fb.Width, w.fb.Height)
	x2, y2 := ndcToScreen(b.PerspectiveDivide(), w.fb.Width, w.fb.Height)
	w.fb.DrawLineF(x1, y1, x2, y2, color)
}

func lerp4(a, b math3d.Vec4, t float64) math3d.Vec4 {
	return math3d.V4(
		a.X+(b.X-a.X)*t,
		a.Y+(b.Y-a.Y)*t,
		a.Z+(b.Z-a.Z)*t,
		a.W+(b.W-a.W)*t,
	)
}

// DrawMesh draws every edge of mesh after transforming it to world space.
func (w *Wireframe) DrawMesh(mesh *models.Mesh, transform math3d.Mat4, color Color) {
	world := make([]math3d.Vec3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		world[i] = transform.MulVec3(v.Position)
	}
	for _, e := range mesh.Edges() {
		w.DrawLine3D(world[e.A], world[e.B], color)
	}
}

// DrawGrid draws a size x size grid on the XZ plane at height y, centered on
// the origin, with a line every step units.
func (w *Wireframe) DrawGrid(y, size, step float64, color Color) {
	if step <= 0 {
		return
	}
	half := size / 2
	n := int(size/step + 0.5)
	for i := 0; i <= n; i++ {
		v := -half + float64(i)*step
		w.DrawLine3D(math3d.V3(v, y, -half), math3d.V3(v, y, half), color)
		w.DrawLine3D(math3d.V3(-half, y, v), math3d.V3(half, y, v), color)
	}
}

// DrawDisc draws a camera-facing disc of world radius r. Discs wider than a
// few pixels get a shadowed lower-right rim so the ball reads as a sphere.
// It reports whether anything was drawn.
func (w *Wireframe) DrawDisc(center math3d.Vec3, r float64, color Color) bool {
	x, y, _, ok := w.camera.WorldToScreen(center, w.fb.Width, w.fb.Height)
	if !ok {
		return false
	}
	pr, ok := w.camera.ProjectRadius(center, r, w.fb.Height)
	if !ok {
		return false
	}

	if pr < 2 {
		w.fb.FillCircle(x, y, pr, color)
		return true
	}
	w.fb.FillCircle(x, y, pr, Shade(color, 0.6))
	w.fb.FillCircle(x-pr*0.15, y-pr*0.15, pr*0.8, color)
	return true
}

// DrawPoint draws a world-space point as a small screen-space cross.
func (w *Wireframe) DrawPoint(pos math3d.Vec3, color Color) {
	x, y, _, ok := w.camera.WorldToScreen(pos, w.fb.Width, w.fb.Height)
	if !ok {
		return
	}
	w.fb.DrawLineF(x-1, y, x+1, y, color)
	w.fb.DrawLineF(x, y-1, x, y+1, color)
}
