package geom

// BBox3D is an inclusive axis-aligned bounding box with p1 <= p2
// componentwise. It is empty iff p1 == p2, matching the original
// engine's convention (not "min > max").
type BBox3D struct {
	p1, p2 Point3D
}

// NewBBox3D builds a box from explicit min/max corners.
func NewBBox3D(xmin, ymin, zmin, xmax, ymax, zmax float64) BBox3D {
	return BBox3D{p1: NewPoint3D(xmin, ymin, zmin), p2: NewPoint3D(xmax, ymax, zmax)}
}

// NewBBox3DFromPoints builds a box from two corner points.
func NewBBox3DFromPoints(p1, p2 Point3D) BBox3D {
	return BBox3D{p1: p1, p2: p2}
}

func (b BBox3D) Min() Point3D { return b.p1 }
func (b BBox3D) Max() Point3D { return b.p2 }

func (b BBox3D) MinX() float64 { return b.p1.X() }
func (b BBox3D) MinY() float64 { return b.p1.Y() }
func (b BBox3D) MinZ() float64 { return b.p1.Z() }
func (b BBox3D) MaxX() float64 { return b.p2.X() }
func (b BBox3D) MaxY() float64 { return b.p2.Y() }
func (b BBox3D) MaxZ() float64 { return b.p2.Z() }

// Empty reports whether this box has zero extent (p1 == p2).
func (b BBox3D) Empty() bool { return b.p1.Equal(b.p2) }

// Center returns the midpoint of the box.
func (b BBox3D) Center() Point3D {
	return NewPoint3D(
		b.p1.X()+0.5*(b.p2.X()-b.p1.X()),
		b.p1.Y()+0.5*(b.p2.Y()-b.p1.Y()),
		b.p1.Z()+0.5*(b.p2.Z()-b.p1.Z()),
	)
}

func (b BBox3D) Width() float64  { return b.p2.X() - b.p1.X() }
func (b BBox3D) Height() float64 { return b.p2.Y() - b.p1.Y() }
func (b BBox3D) Depth() float64  { return b.p2.Z() - b.p1.Z() }

func (b BBox3D) Volume() float64 { return b.Width() * b.Height() * b.Depth() }

// Contains reports whether the point lies within the inclusive box.
func (b BBox3D) Contains(p Point3D) bool {
	return p.X() >= b.p1.X() && p.X() <= b.p2.X() &&
		p.Y() >= b.p1.Y() && p.Y() <= b.p2.Y() &&
		p.Z() >= b.p1.Z() && p.Z() <= b.p2.Z()
}

// Overlap returns the intersection of the two boxes. If the boxes do
// not overlap on some axis, the resulting min will exceed the max on
// that axis; callers must check before using it as a valid region.
func (b BBox3D) Overlap(o BBox3D) BBox3D {
	return NewBBox3D(
		max(b.MinX(), o.MinX()), max(b.MinY(), o.MinY()), max(b.MinZ(), o.MinZ()),
		min(b.MaxX(), o.MaxX()), min(b.MaxY(), o.MaxY()), min(b.MaxZ(), o.MaxZ()),
	)
}

// Inclusive returns the smallest box containing both boxes.
func (b BBox3D) Inclusive(o BBox3D) BBox3D {
	return NewBBox3D(
		min(b.MinX(), o.MinX()), min(b.MinY(), o.MinY()), min(b.MinZ(), o.MinZ()),
		max(b.MaxX(), o.MaxX()), max(b.MaxY(), o.MaxY()), max(b.MaxZ(), o.MaxZ()),
	)
}

// Valid reports whether every axis of the box has min <= max, i.e.
// this box (typically the result of Overlap) is a legitimate region.
func (b BBox3D) Valid() bool {
	return b.MinX() <= b.MaxX() && b.MinY() <= b.MaxY() && b.MinZ() <= b.MaxZ()
}
