// Package voxel implements the sparse voxel grid primitives that sit
// between raw energy depositions and the per-event tensors: a sorted
// voxel-id to float map (VoxelSet) and the fixed 3D binning scheme
// that assigns ids to points (ImageMeta3D).
package voxel

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/zhulcher/supera-atomic/geom"
)

// ID identifies a single voxel within an ImageMeta3D grid.
type ID = uint64

// InvalidID marks a voxel lookup that fell outside the grid or an
// empty VoxelSet.Find result.
const InvalidID ID = math.MaxUint64

// Voxel is a single (id, value) pair, returned by value from VoxelSet
// lookups and iteration.
type Voxel struct {
	ID    ID
	Value float64
}

// VoxelSet is an id-sorted, duplicate-free collection of (id, value)
// pairs. It mirrors the original engine's larcv3::VoxelSet: a pair of
// parallel vectors kept sorted by id, found by binary search.
type VoxelSet struct {
	ids    []ID
	values []float64
}

// NewVoxelSet returns an empty set with capacity reserved for n voxels.
func NewVoxelSet(capacity int) *VoxelSet {
	return &VoxelSet{ids: make([]ID, 0, capacity), values: make([]float64, 0, capacity)}
}

// Len reports how many voxels are stored.
func (s *VoxelSet) Len() int { return len(s.ids) }

// search returns the index at which id is present, or would be
// inserted to keep s.ids sorted, and whether it is actually present.
func (s *VoxelSet) search(id ID) (int, bool) {
	i := sort.Search(len(s.ids), func(i int) bool { return s.ids[i] >= id })
	return i, i < len(s.ids) && s.ids[i] == id
}

// Find returns the voxel stored at id, or the zero Voxel with ID
// InvalidID if no such voxel exists.
func (s *VoxelSet) Find(id ID) Voxel {
	i, ok := s.search(id)
	if !ok {
		return Voxel{ID: InvalidID}
	}
	return Voxel{ID: id, Value: s.values[i]}
}

// Emplace inserts a voxel at id with value v. If a voxel already
// exists at id, its value is replaced, unless add is true, in which
// case v is added to the existing value.
func (s *VoxelSet) Emplace(id ID, v float64, add bool) {
	i, ok := s.search(id)
	if ok {
		if add {
			s.values[i] += v
		} else {
			s.values[i] = v
		}
		return
	}
	s.ids = append(s.ids, 0)
	copy(s.ids[i+1:], s.ids[i:])
	s.ids[i] = id

	s.values = append(s.values, 0)
	copy(s.values[i+1:], s.values[i:])
	s.values[i] = v
}

// Erase removes the voxel at id, if present.
func (s *VoxelSet) Erase(id ID) {
	i, ok := s.search(id)
	if !ok {
		return
	}
	s.ids = append(s.ids[:i], s.ids[i+1:]...)
	s.values = append(s.values[:i], s.values[i+1:]...)
}

// AsSlice returns the stored voxels, in ascending id order. The
// returned slice must not be mutated.
func (s *VoxelSet) AsSlice() []Voxel {
	out := make([]Voxel, len(s.ids))
	for i := range s.ids {
		out[i] = Voxel{ID: s.ids[i], Value: s.values[i]}
	}
	return out
}

// Sum returns the sum of all stored values, computed with gonum's
// floats.Sum.
func (s *VoxelSet) Sum() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return floats.Sum(s.values)
}

// Merge adds every voxel of other into s, summing values on overlap.
func (s *VoxelSet) Merge(other *VoxelSet) {
	for i, id := range other.ids {
		s.Emplace(id, other.values[i], true)
	}
}

// Threshold removes every voxel whose value is strictly below min.
func (s *VoxelSet) Threshold(min float64) {
	keptIDs := s.ids[:0]
	keptVals := s.values[:0]
	for i, v := range s.values {
		if v >= min {
			keptIDs = append(keptIDs, s.ids[i])
			keptVals = append(keptVals, v)
		}
	}
	s.ids = keptIDs
	s.values = keptVals
}

// IDs returns the ids currently stored, in ascending order. The
// returned slice must not be mutated.
func (s *VoxelSet) IDs() []ID { return s.ids }

// FilterIDs keeps only the voxels whose id appears in ids (which must
// be sorted ascending), dropping everything else, and reports any id
// in ids that s has no voxel for.
func (s *VoxelSet) FilterIDs(ids []ID) (missing []ID) {
	keptIDs := s.ids[:0]
	keptVals := s.values[:0]
	i := 0
	for _, id := range ids {
		for i < len(s.ids) && s.ids[i] < id {
			i++
		}
		if i < len(s.ids) && s.ids[i] == id {
			keptIDs = append(keptIDs, s.ids[i])
			keptVals = append(keptVals, s.values[i])
			i++
		} else {
			missing = append(missing, id)
		}
	}
	s.ids = keptIDs
	s.values = keptVals
	return missing
}

// FromEDeps builds a VoxelSet by projecting each deposition onto the
// grid via id and accumulating energy per voxel, matching the
// original engine's ImageMeta3D::edep2voxelset.
func FromEDeps(meta *ImageMeta3D, edeps []geom.EDep) *VoxelSet {
	out := NewVoxelSet(len(edeps))
	for _, e := range edeps {
		id := meta.ID(e.Pos)
		if id == InvalidID {
			continue
		}
		out.Emplace(id, e.E, true)
	}
	return out
}
