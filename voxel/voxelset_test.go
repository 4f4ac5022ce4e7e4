package voxel

import "testing"

func TestVoxelSetEmplaceAndFind(t *testing.T) {
	s := NewVoxelSet(0)
	s.Emplace(5, 1.0, false)
	s.Emplace(2, 2.0, false)
	s.Emplace(8, 3.0, false)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	ids := []ID{2, 5, 8}
	slice := s.AsSlice()
	for i, want := range ids {
		if slice[i].ID != want {
			t.Errorf("AsSlice()[%d].ID = %d, want %d (not sorted)", i, slice[i].ID, want)
		}
	}

	v := s.Find(5)
	if v.ID != 5 || v.Value != 1.0 {
		t.Errorf("Find(5) = %+v", v)
	}

	miss := s.Find(99)
	if miss.ID != InvalidID {
		t.Errorf("Find(99) = %+v, want InvalidID", miss)
	}
}

func TestVoxelSetEmplaceAdd(t *testing.T) {
	s := NewVoxelSet(0)
	s.Emplace(1, 1.0, true)
	s.Emplace(1, 2.0, true)
	if got := s.Find(1).Value; got != 3.0 {
		t.Errorf("expected accumulated value 3.0, got %v", got)
	}

	s.Emplace(1, 10.0, false)
	if got := s.Find(1).Value; got != 10.0 {
		t.Errorf("expected replaced value 10.0, got %v", got)
	}
}

func TestVoxelSetErase(t *testing.T) {
	s := NewVoxelSet(0)
	s.Emplace(1, 1.0, false)
	s.Emplace(2, 2.0, false)
	s.Erase(1)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.Find(1).ID != InvalidID {
		t.Errorf("expected erased voxel to be gone")
	}
}

func TestVoxelSetSum(t *testing.T) {
	s := NewVoxelSet(0)
	s.Emplace(1, 1.5, false)
	s.Emplace(2, 2.5, false)
	if got := s.Sum(); got != 4.0 {
		t.Errorf("Sum() = %v, want 4.0", got)
	}
}

func TestVoxelSetMerge(t *testing.T) {
	a := NewVoxelSet(0)
	a.Emplace(1, 1.0, false)
	b := NewVoxelSet(0)
	b.Emplace(1, 2.0, false)
	b.Emplace(2, 5.0, false)

	a.Merge(b)
	if got := a.Find(1).Value; got != 3.0 {
		t.Errorf("Find(1).Value = %v, want 3.0", got)
	}
	if got := a.Find(2).Value; got != 5.0 {
		t.Errorf("Find(2).Value = %v, want 5.0", got)
	}
}

func TestVoxelSetThreshold(t *testing.T) {
	s := NewVoxelSet(0)
	s.Emplace(1, 0.5, false)
	s.Emplace(2, 5.0, false)
	s.Threshold(1.0)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.Find(2).ID != 2 {
		t.Errorf("expected voxel 2 to survive threshold")
	}
}
