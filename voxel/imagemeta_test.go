package voxel

import (
	"testing"

	"github.com/zhulcher/supera-atomic/geom"
)

func newTestMeta() ImageMeta3D {
	box := geom.NewBBox3D(0, 0, 0, 10, 10, 10)
	return NewImageMeta3D(box, 10, 10, 10)
}

func TestImageMetaIDRoundTrip(t *testing.T) {
	m := newTestMeta()
	for _, p := range []geom.Point3D{
		geom.NewPoint3D(0.5, 0.5, 0.5),
		geom.NewPoint3D(9.5, 9.5, 9.5),
		geom.NewPoint3D(3.2, 7.8, 1.1),
	} {
		id := m.ID(p)
		if id == InvalidID {
			t.Fatalf("ID(%+v) = InvalidID", p)
		}
		ix, iy, iz := m.IDToXYZIndex(id)
		back := m.Index(ix, iy, iz)
		if back != id {
			t.Errorf("Index(IDToXYZIndex(%d)) = %d, want %d", id, back, id)
		}
	}
}

func TestImageMetaBoundaryClamp(t *testing.T) {
	m := newTestMeta()
	// Exactly on the max face should clamp to the last index, not be invalid.
	id := m.ID(geom.NewPoint3D(10, 10, 10))
	if id == InvalidID {
		t.Fatalf("ID at max face returned InvalidID")
	}
	ix, iy, iz := m.IDToXYZIndex(id)
	if ix != 9 || iy != 9 || iz != 9 {
		t.Errorf("max-face point mapped to (%d,%d,%d), want (9,9,9)", ix, iy, iz)
	}
}

func TestImageMetaOutOfRange(t *testing.T) {
	m := newTestMeta()
	if id := m.ID(geom.NewPoint3D(-0.1, 5, 5)); id != InvalidID {
		t.Errorf("expected out-of-range point to return InvalidID, got %d", id)
	}
	if id := m.ID(geom.NewPoint3D(10.1, 5, 5)); id != InvalidID {
		t.Errorf("expected out-of-range point to return InvalidID, got %d", id)
	}
}

func TestImageMetaRowMajorZMajor(t *testing.T) {
	m := newTestMeta()
	id := m.Index(1, 2, 3)
	want := uint64(3*(10*10) + 2*10 + 1)
	if id != want {
		t.Errorf("Index(1,2,3) = %d, want %d", id, want)
	}
}

func TestImageMetaShift(t *testing.T) {
	m := newTestMeta()
	origin := m.Index(5, 5, 5)
	shifted := m.Shift(origin, 1, -1, 0)
	want := m.Index(6, 4, 5)
	if shifted != want {
		t.Errorf("Shift() = %d, want %d", shifted, want)
	}

	if got := m.Shift(origin, 100, 0, 0); got != InvalidID {
		t.Errorf("expected out-of-range shift to return InvalidID, got %d", got)
	}
}

func TestImageMetaPosition(t *testing.T) {
	m := newTestMeta()
	id := m.Index(0, 0, 0)
	p := m.Position(id)
	if p.X() != 0.5 || p.Y() != 0.5 || p.Z() != 0.5 {
		t.Errorf("Position(0,0,0) = %+v, want (0.5,0.5,0.5)", p)
	}
}

func TestFromEDeps(t *testing.T) {
	m := newTestMeta()
	edeps := []geom.EDep{
		geom.NewEDep(0.5, 0.5, 0.5, 0, 10, 1),
		geom.NewEDep(0.5, 0.5, 0.5, 0, 5, 1),
		geom.NewEDep(100, 100, 100, 0, 99, 1), // outside grid, dropped
	}
	vs := FromEDeps(&m, edeps)
	if vs.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", vs.Len())
	}
	id := m.Index(0, 0, 0)
	if got := vs.Find(id).Value; got != 15.0 {
		t.Errorf("accumulated energy = %v, want 15.0", got)
	}
}
