package render

import (
	"math"

	"github.com/taigrr/reflex/pkg/game"
	"github.com/taigrr/reflex/pkg/math3d"
	"github.com/taigrr/reflex/pkg/models"
)

// Field layout in world units.
const (
	BallRadius = 0.1
	GroundY    = -1.0
	GroundSize = 20.0
	GridStep   = 1.0
)

var (
	DefaultEye    = math3d.V3(0, 1.6, 7.5)
	DefaultTarget = math3d.V3(0, 1.5, 0)
)

// Palette holds the scene colors.
type Palette struct {
	Background Color
	Ground     Color
	Ball       Color
	Bat        Color
	Tip        Color
	Mound      Color
}

// DefaultPalette returns the colors for variant v.
func DefaultPalette(v game.Variant) Palette {
	p := Palette{
		Background: RGB(30, 30, 40),
		Ground:     RGB(34, 139, 34),
		Ball:       RGB(245, 245, 245),
		Bat:        RGB(165, 42, 42),
		Tip:        RGB(255, 215, 0),
		Mound:      RGB(150, 110, 70),
	}
	if v == game.VariantCooldown {
		p.Ball = RGB(255, 220, 90)
	}
	return p
}

// Scene draws game snapshots from a fixed batter's-eye camera.
type Scene struct {
	Camera  *Camera
	Palette Palette

	spawn math3d.Vec3
	bat   *models.Mesh
	mound *models.Mesh
	fb    *Framebuffer
	wire  *Wireframe
}

// FrameStats reports what the last Draw put on screen.
type FrameStats struct {
	BallDrawn bool
	BatDrawn  bool
}

// NewScene creates a scene drawing into fb with the pitcher's mound under
// spawn. A nil bat gets the default cylinder, radius 0.05 and length 1.
func NewScene(fb *Framebuffer, bat *models.Mesh, palette Palette, spawn math3d.Vec3) *Scene {
	if bat == nil {
		bat = models.NewCylinder(0.05, 1, 8)
	}
	cam := NewCamera()
	cam.SetFOV(math.Pi / 3)
	cam.SetClipPlanes(0.1, 100)

	s := &Scene{
		Camera:  cam,
		Palette: palette,
		spawn:   spawn,
		bat:     bat,
		mound:   models.NewBox(math3d.V3(1.2, 0.3, 1.2)),
	}
	s.Resize(fb)
	return s
}

// Resize switches the scene to a new framebuffer.
func (s *Scene) Resize(fb *Framebuffer) {
	s.fb = fb
	s.wire = NewWireframe(s.Camera, fb)
	if fb.Height > 0 {
		s.Camera.SetAspectRatio(float64(fb.Width) / float64(fb.Height))
	}
}

// Framebuffer returns the framebuffer the scene draws into.
func (s *Scene) Framebuffer() *Framebuffer {
	return s.fb
}

// Draw renders snap. offset displaces the camera without changing where it
// looks, which is how hits shake the view.
func (s *Scene) Draw(snap game.Snapshot, offset math3d.Vec3) FrameStats {
	var stats FrameStats

	s.Camera.SetPosition(DefaultEye.Add(offset))
	s.Camera.LookAt(DefaultTarget.Add(offset))
	frustum := s.Camera.Frustum()

	s.fb.Clear(s.Palette.Background)
	s.wire.DrawGrid(GroundY, GroundSize, GridStep, s.Palette.Ground)

	// Pitcher's mound under the spawn point
	mound := math3d.Translate(math3d.V3(s.spawn.X, GroundY+0.15, s.spawn.Z))
	s.wire.DrawMesh(s.mound, mound, s.Palette.Mound)

	batTransform := math3d.Translate(snap.BatAnchor).Mul(snap.BatOrientation.Matrix())
	bounds := AABB{Min: s.bat.BoundsMin, Max: s.bat.BoundsMax}.Transform(batTransform)
	if frustum.IntersectAABB(bounds) {
		s.wire.DrawMesh(s.bat, batTransform, s.Palette.Bat)
		stats.BatDrawn = true
	}
	if snap.Swinging {
		s.wire.DrawPoint(snap.BatTip, s.Palette.Tip)
	}

	if snap.BallVisible() && frustum.IntersectsSphere(snap.BallPosition, BallRadius) {
		stats.BallDrawn = s.wire.DrawDisc(snap.BallPosition, BallRadius, s.Palette.Ball)
	}

	return stats
}
