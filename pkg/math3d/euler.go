package math3d

// Euler holds rotation angles in radians about each world axis.
// Matrix applies them in XYZ order, so a point is rotated about Z first.
type Euler struct {
	X, Y, Z float64
}

// Lerp interpolates each angle independently from e to to by t.
func (e Euler) Lerp(to Euler, t float64) Euler {
	return Euler{
		X: e.X + (to.X-e.X)*t,
		Y: e.Y + (to.Y-e.Y)*t,
		Z: e.Z + (to.Z-e.Z)*t,
	}
}

// Matrix returns Rx * Ry * Rz.
func (e Euler) Matrix() Mat4 {
	return RotateX(e.X).Mul(RotateY(e.Y)).Mul(RotateZ(e.Z))
}

// Rotate rotates v by the orientation.
func (e Euler) Rotate(v Vec3) Vec3 {
	return e.Matrix().MulVec3Dir(v)
}
