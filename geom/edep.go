package geom

// EDep is a single energy deposition: a point in space plus the
// amount of energy deposited, the time of deposition and the local
// dE/dx, mirroring the original engine's EDep : public Point3D layout.
type EDep struct {
	Pos  Point3D
	Time float64
	E    float64
	Dedx float64
}

// NewEDep builds an EDep from raw components.
func NewEDep(x, y, z, t, e, dedx float64) EDep {
	return EDep{Pos: NewPoint3D(x, y, z), Time: t, E: e, Dedx: dedx}
}
