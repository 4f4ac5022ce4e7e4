package voxel

import (
	"github.com/zhulcher/supera-atomic/geom"
)

// ImageMeta3D is a fixed-resolution voxel grid over a BBox3D: the
// bounding box divided into xnum*ynum*znum equal cells, addressed by
// a row-major, Z-major integer id:
//
//	id = z*(xnum*ynum) + y*xnum + x
type ImageMeta3D struct {
	box              geom.BBox3D
	xnum, ynum, znum uint64
	xlen, ylen, zlen float64
	numElement       uint64
	valid            bool
}

// NewImageMeta3D builds a grid over box with the given per-axis voxel
// counts. All counts must be positive and box must be non-empty.
func NewImageMeta3D(box geom.BBox3D, xnum, ynum, znum uint64) ImageMeta3D {
	m := ImageMeta3D{box: box}
	m.Update(xnum, ynum, znum)
	return m
}

// Update (re)computes voxel pitches from the current box and the
// given voxel counts. It panics if box is empty or any count is zero
// — callers are expected to validate user input before reaching here.
func (m *ImageMeta3D) Update(xnum, ynum, znum uint64) {
	if m.box.Empty() {
		panic("voxel: ImageMeta3D.Update called on an empty bounding box")
	}
	if xnum == 0 || ynum == 0 || znum == 0 {
		panic("voxel: ImageMeta3D.Update called with a zero voxel count")
	}
	m.xlen = (m.box.MaxX() - m.box.MinX()) / float64(xnum)
	m.ylen = (m.box.MaxY() - m.box.MinY()) / float64(ynum)
	m.zlen = (m.box.MaxZ() - m.box.MinZ()) / float64(znum)
	m.xnum, m.ynum, m.znum = xnum, ynum, znum
	m.numElement = xnum * ynum * znum
	m.valid = true
}

func (m ImageMeta3D) Box() geom.BBox3D { return m.box }
func (m ImageMeta3D) XNum() uint64     { return m.xnum }
func (m ImageMeta3D) YNum() uint64     { return m.ynum }
func (m ImageMeta3D) ZNum() uint64     { return m.znum }
func (m ImageMeta3D) XLen() float64    { return m.xlen }
func (m ImageMeta3D) YLen() float64    { return m.ylen }
func (m ImageMeta3D) ZLen() float64    { return m.zlen }
func (m ImageMeta3D) Valid() bool      { return m.valid }
func (m ImageMeta3D) NumElement() uint64 { return m.numElement }

// ID returns the voxel id containing p, or InvalidID if p lies
// outside the grid's bounding box. A point sitting exactly on the max
// face of an axis is clamped to the last voxel index on that axis,
// rather than treated as out of range.
func (m ImageMeta3D) ID(p geom.Point3D) ID {
	if !m.valid {
		return InvalidID
	}
	if p.X() > m.box.MaxX() || p.X() < m.box.MinX() {
		return InvalidID
	}
	if p.Y() > m.box.MaxY() || p.Y() < m.box.MinY() {
		return InvalidID
	}
	if p.Z() > m.box.MaxZ() || p.Z() < m.box.MinZ() {
		return InvalidID
	}

	xi := uint64((p.X() - m.box.MinX()) / m.xlen)
	yi := uint64((p.Y() - m.box.MinY()) / m.ylen)
	zi := uint64((p.Z() - m.box.MinZ()) / m.zlen)

	if xi == m.xnum {
		xi--
	}
	if yi == m.ynum {
		yi--
	}
	if zi == m.znum {
		zi--
	}

	return zi*(m.xnum*m.ynum) + yi*m.xnum + xi
}

// Index returns the voxel id at the given per-axis integer indices,
// or InvalidID if any index is out of range.
func (m ImageMeta3D) Index(ix, iy, iz uint64) ID {
	if !m.valid || ix >= m.xnum || iy >= m.ynum || iz >= m.znum {
		return InvalidID
	}
	return iz*(m.xnum*m.ynum) + iy*m.xnum + ix
}

// Shift returns the id of the voxel offset from origin by
// (shiftX, shiftY, shiftZ) index steps, or InvalidID if the result
// falls outside the grid.
func (m ImageMeta3D) Shift(origin ID, shiftX, shiftY, shiftZ int) ID {
	ix, iy, iz := m.IDToXYZIndex(origin)

	nz := int64(iz) + int64(shiftZ)
	if nz < 0 || nz >= int64(m.znum) {
		return InvalidID
	}
	ny := int64(iy) + int64(shiftY)
	if ny < 0 || ny >= int64(m.ynum) {
		return InvalidID
	}
	nx := int64(ix) + int64(shiftX)
	if nx < 0 || nx >= int64(m.xnum) {
		return InvalidID
	}
	return uint64(nz)*(m.xnum*m.ynum) + uint64(ny)*m.xnum + uint64(nx)
}

// Position returns the center point of the voxel at id.
func (m ImageMeta3D) Position(id ID) geom.Point3D {
	ix, iy, iz := m.IDToXYZIndex(id)
	return geom.NewPoint3D(
		m.box.MinX()+(float64(ix)+0.5)*m.xlen,
		m.box.MinY()+(float64(iy)+0.5)*m.ylen,
		m.box.MinZ()+(float64(iz)+0.5)*m.zlen,
	)
}

// IDToXYZIndex decomposes a voxel id into its per-axis integer indices.
func (m ImageMeta3D) IDToXYZIndex(id ID) (ix, iy, iz uint64) {
	plane := m.xnum * m.ynum
	iz = id / plane
	rem := id - iz*plane
	iy = rem / m.xnum
	ix = rem - iy*m.xnum
	return
}
