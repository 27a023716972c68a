package math

/**
 * @brief Builds a model matrix from independent scale, rotation and position.
 *
 * Rotations are given in degrees and applied as three separate axis
 * matrices. The result is M = T * Rx * Ry * Rz * S in column-vector
 * notation: scale first, then Z, Y and X rotation, translation last.
 *
 * The product is evaluated in the same association order every call so
 * identical inputs always produce bit-identical matrices.
 */
func Compose(scale, rotationDegrees, position Vec3) Mat4 {
	s := NewMat4Scale(scale)
	rx := NewMat4EulerX(DegToRad(rotationDegrees.X))
	ry := NewMat4EulerY(DegToRad(rotationDegrees.Y))
	rz := NewMat4EulerZ(DegToRad(rotationDegrees.Z))
	t := NewMat4Translation(position)

	// Mul applies the receiver first, so the chain reads right to left of
	// the column-vector formula.
	return s.Mul(rz.Mul(ry.Mul(rx.Mul(t))))
}
