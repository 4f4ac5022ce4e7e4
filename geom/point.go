// Package geom implements the axis-aligned 3D geometry primitives
// shared by the voxelizer and the labeling engine: Point3D, BBox3D and
// Vertex.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// InvalidDouble marks a "not set" double value, mirroring the original
// engine's kINVALID_DOUBLE sentinel.
const InvalidDouble = math.MaxFloat64

// Point3D is a double-precision 3D point. The underlying storage is an
// mgl64.Vec3 so arithmetic, dot products and distances reuse the
// teacher's vector-math library rather than hand-rolled component ops.
type Point3D struct {
	v mgl64.Vec3
}

// NewPoint3D builds a Point3D from components.
func NewPoint3D(x, y, z float64) Point3D {
	return Point3D{v: mgl64.Vec3{x, y, z}}
}

func (p Point3D) X() float64 { return p.v[0] }
func (p Point3D) Y() float64 { return p.v[1] }
func (p Point3D) Z() float64 { return p.v[2] }

// Add returns p+q.
func (p Point3D) Add(q Point3D) Point3D { return Point3D{v: p.v.Add(q.v)} }

// Sub returns p-q.
func (p Point3D) Sub(q Point3D) Point3D { return Point3D{v: p.v.Sub(q.v)} }

// Scale returns p scaled by s.
func (p Point3D) Scale(s float64) Point3D { return Point3D{v: p.v.Mul(s)} }

// Equal reports exact component equality.
func (p Point3D) Equal(q Point3D) bool { return p.v == q.v }

// SquaredDistance returns the squared Euclidean distance to q.
func (p Point3D) SquaredDistance(q Point3D) float64 {
	d := p.v.Sub(q.v)
	return d.Dot(d)
}

// Distance returns the Euclidean distance to q.
func (p Point3D) Distance(q Point3D) float64 {
	d := p.v.Sub(q.v)
	return d.Len()
}

// Direction returns the vector from p to q.
func (p Point3D) Direction(q Point3D) Point3D { return Point3D{v: q.v.Sub(p.v)} }

// Vertex is a (position, time) 4-tuple, used for particle start/end and
// interaction vertices. Ordering is lexicographic (x,y,z,t).
type Vertex struct {
	Pos  Point3D
	Time float64
}

// NewVertex builds a Vertex from raw components.
func NewVertex(x, y, z, t float64) Vertex {
	return Vertex{Pos: NewPoint3D(x, y, z), Time: t}
}

// Equal reports equality on all four components.
func (v Vertex) Equal(o Vertex) bool {
	return v.Pos.Equal(o.Pos) && v.Time == o.Time
}

// Less implements the lexicographic (x,y,z,t) ordering of vertices.
func (v Vertex) Less(o Vertex) bool {
	if v.Pos.X() != o.Pos.X() {
		return v.Pos.X() < o.Pos.X()
	}
	if v.Pos.Y() != o.Pos.Y() {
		return v.Pos.Y() < o.Pos.Y()
	}
	if v.Pos.Z() != o.Pos.Z() {
		return v.Pos.Z() < o.Pos.Z()
	}
	return v.Time < o.Time
}
