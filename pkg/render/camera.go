package render

import (
	"math"

	"github.com/taigrr/reflex/pkg/math3d"
)

// Camera is a perspective camera aimed from Position at Target.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	Up       math3d.Vec3

	FOV         float64 // vertical, radians
	AspectRatio float64 // width / height
	Near        float64
	Far         float64

	view, proj, viewProj math3d.Mat4
	dirty                bool
}

// NewCamera creates a camera at the origin looking down -Z with a 60 degree FOV.
func NewCamera() *Camera {
	return &Camera{
		Target:      math3d.V3(0, 0, -1),
		Up:          math3d.Up(),
		FOV:         math.Pi / 3,
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         100,
		dirty:       true,
	}
}

// SetPosition moves the camera without changing its target.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.dirty = true
}

// LookAt aims the camera at target.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.Target = target
	c.dirty = true
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.dirty = true
}

func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.dirty = true
}

func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.dirty = true
}

// Forward returns the unit view direction, or -Z when the target sits on
// the camera.
func (c *Camera) Forward() math3d.Vec3 {
	dir := c.Target.Sub(c.Position)
	if dir.LenSq() == 0 {
		return math3d.V3(0, 0, -1)
	}
	return dir.Normalize()
}

func (c *Camera) update() {
	if !c.dirty {
		return
	}
	target := c.Target
	if target == c.Position {
		target = c.Position.Add(c.Forward())
	}
	c.view = math3d.LookAt(c.Position, target, c.Up)
	c.proj = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
	c.viewProj = c.proj.Mul(c.view)
	c.dirty = false
}

// ViewMatrix returns the world to camera transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	c.update()
	return c.view
}

// ProjectionMatrix returns the camera to clip space transform.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	c.update()
	return c.proj
}

// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	c.update()
	return c.viewProj
}

// Frustum returns the current view frustum.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}

// WorldToScreen projects a world point to pixel coordinates and NDC depth.
// visible is false for points behind the camera or outside the view volume.
func (c *Camera) WorldToScreen(p math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clip := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clip.PerspectiveDivide()
	if math.Abs(ndc.X) > 1 || math.Abs(ndc.Y) > 1 || math.Abs(ndc.Z) > 1 {
		return 0, 0, 0, false
	}

	x, y = ndcToScreen(ndc, screenWidth, screenHeight)
	return x, y, ndc.Z, true
}

// ProjectRadius returns the on-screen radius in pixels of a sphere of radius r
// at center, or false when the center is behind the near plane.
func (c *Camera) ProjectRadius(center math3d.Vec3, r float64, screenHeight int) (float64, bool) {
	clip := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(center, 1))
	if clip.W <= c.Near {
		return 0, false
	}
	return r / (clip.W * math.Tan(c.FOV/2)) * 0.5 * float64(screenHeight), true
}

// ndcToScreen maps NDC to pixels with Y growing downward.
func ndcToScreen(ndc math3d.Vec3, screenWidth, screenHeight int) (x, y float64) {
	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight)
	return x, y
}
