// Package affine implements the 2D affine transforms used to flatten
// nested block references into their world-space geometry.
package affine

import "math"

// Transform2D is a 2D affine transform in column-major-free form:
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
type Transform2D struct {
	A, B, C, D float64
	Tx, Ty     float64
}

// Identity returns the transform that leaves every point unchanged.
func Identity() Transform2D {
	return Transform2D{A: 1, D: 1}
}

// FromInsert builds the transform an INSERT's reference point, axis
// scales, and rotation (in radians) describe.
func FromInsert(refX, refY, scaleX, scaleY, rotation float64) Transform2D {
	cos := math.Cos(rotation)
	sin := math.Sin(rotation)
	return Transform2D{
		A:  cos * scaleX,
		B:  sin * scaleX,
		C:  -sin * scaleY,
		D:  cos * scaleY,
		Tx: refX,
		Ty: refY,
	}
}

// Compose returns the transform equivalent to applying rhs first, then t:
// t.Compose(rhs).ApplyPoint(p) == t.ApplyPoint(rhs.ApplyPoint(p)).
func (t Transform2D) Compose(rhs Transform2D) Transform2D {
	return Transform2D{
		A:  t.A*rhs.A + t.C*rhs.B,
		B:  t.B*rhs.A + t.D*rhs.B,
		C:  t.A*rhs.C + t.C*rhs.D,
		D:  t.B*rhs.C + t.D*rhs.D,
		Tx: t.A*rhs.Tx + t.C*rhs.Ty + t.Tx,
		Ty: t.B*rhs.Tx + t.D*rhs.Ty + t.Ty,
	}
}

// ApplyPoint transforms a point, including translation.
func (t Transform2D) ApplyPoint(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.Tx, t.B*x + t.D*y + t.Ty
}

// ApplyVector transforms a direction/offset, ignoring translation.
func (t Transform2D) ApplyVector(x, y float64) (float64, float64) {
	return t.A*x + t.C*y, t.B*x + t.D*y
}

// AverageScale returns the mean of the transform's two axis scale
// factors, used to scale text height and similar isotropic quantities
// under a transform that may not be uniform.
func (t Transform2D) AverageScale() float64 {
	sx := math.Hypot(t.A, t.B)
	sy := math.Hypot(t.C, t.D)
	return (sx + sy) / 2.0
}

// RotationDeg returns the transform's rotation component in degrees,
// derived from where it sends the unit X axis.
func (t Transform2D) RotationDeg() float64 {
	return math.Atan2(t.B, t.A) * 180.0 / math.Pi
}
