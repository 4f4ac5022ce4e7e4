// Package particleindex builds the GEANT4 track-id to particle-array
// index map and infers each particle's parent/ancestor chain from the
// raw parent track ids supplied in an EventInput.
package particleindex

import (
	"github.com/zhulcher/supera-atomic/event"
	"github.com/zhulcher/supera-atomic/superaerr"
)

// invalidIndex marks a trackid2index slot with no known particle.
const invalidIndex = ^uint64(0)

// Index is the workhorse mapping tying together a list of GEANT4
// particles and their genealogy, built once per event by Build.
type Index struct {
	trackIDs        []uint64
	parentIndex     []uint64
	parentTrackID   []uint64
	parentPDG       []int32
	ancestorIndex   []uint64
	ancestorTrackID []uint64
	ancestorPDG     []int32

	// trackID2Index maps a GEANT4 track id to its position in the
	// input particle array. Holes are invalidIndex.
	trackID2Index []uint64

	// parentHistory[i] is the chain of ancestor track ids (nearest
	// first) above particle i, up to but excluding the primary's own
	// self-loop.
	parentHistory [][]uint64
}

// Build infers parentage for every particle in in, matching each
// particle's raw parent_trackid to the array index of that parent (if
// present) and walking the chain up to the primary (self-parented)
// ancestor.
func Build(in *event.EventInput) (*Index, error) {
	n := len(in.Particles)
	idx := &Index{
		trackIDs:        make([]uint64, n),
		parentIndex:     make([]uint64, n),
		parentTrackID:   make([]uint64, n),
		parentPDG:       make([]int32, n),
		ancestorIndex:   make([]uint64, n),
		ancestorTrackID: make([]uint64, n),
		ancestorPDG:     make([]int32, n),
		trackID2Index:   make([]uint64, n),
		parentHistory:   make([][]uint64, n),
	}
	for i := range idx.trackID2Index {
		idx.trackID2Index[i] = invalidIndex
	}
	for i := 0; i < n; i++ {
		idx.parentIndex[i] = invalidIndex
		idx.ancestorIndex[i] = invalidIndex
		idx.trackIDs[i] = event.InvalidTrackID
		idx.parentTrackID[i] = event.InvalidTrackID
		idx.ancestorTrackID[i] = event.InvalidTrackID
		idx.parentPDG[i] = event.InvalidPDG
		idx.ancestorPDG[i] = event.InvalidPDG
	}

	for i, pin := range in.Particles {
		if pin.Part.TrackID == event.InvalidTrackID {
			return nil, superaerr.Dataf("particle at index %d has an invalid track id", i)
		}
		idx.trackIDs[i] = pin.Part.TrackID
		idx.parentTrackID[i] = pin.Part.ParentTrackID
		if pin.Part.TrackID >= uint64(len(idx.trackID2Index)) {
			grown := make([]uint64, pin.Part.TrackID+1)
			copy(grown, idx.trackID2Index)
			for j := len(idx.trackID2Index); j < len(grown); j++ {
				grown[j] = invalidIndex
			}
			idx.trackID2Index = grown
		}
		idx.trackID2Index[pin.Part.TrackID] = uint64(i)
	}

	for i, pin := range in.Particles {
		if pin.Part.ParentTrackID == event.InvalidTrackID {
			return nil, superaerr.Dataf("particle with track id %d has an invalid parent track id", pin.Part.TrackID)
		}

		motherID := pin.Part.ParentTrackID
		if motherID < uint64(len(idx.trackID2Index)) {
			motherIndex := idx.trackID2Index[motherID]
			if motherIndex != invalidIndex {
				idx.parentPDG[i] = in.Particles[motherIndex].Part.PDG
				idx.parentIndex[i] = motherIndex
			}
		}

		subjectTrackID := pin.Part.TrackID
		parentTrackID := pin.Part.ParentTrackID
		ancestorIndex := invalidIndex
		ancestorTrackID := event.InvalidTrackID
		accessed := map[uint64]bool{subjectTrackID: true}
		for parentTrackID < uint64(len(idx.trackID2Index)) {
			if parentTrackID == subjectTrackID {
				ancestorIndex = idx.trackID2Index[subjectTrackID]
				ancestorTrackID = subjectTrackID
				break
			}
			if accessed[parentTrackID] {
				return nil, superaerr.Dataf("particle with track id %d has a non-self-loop ancestry cycle at track id %d", pin.Part.TrackID, parentTrackID)
			}
			accessed[parentTrackID] = true
			idx.parentHistory[i] = append(idx.parentHistory[i], parentTrackID)
			parentIndex := idx.trackID2Index[parentTrackID]
			if parentIndex == invalidIndex {
				break
			}
			parent := in.Particles[parentIndex]
			subjectTrackID = parent.Part.TrackID
			parentTrackID = parent.Part.ParentTrackID
		}
		idx.ancestorIndex[i] = ancestorIndex
		idx.ancestorTrackID[i] = ancestorTrackID
		if ancestorIndex != invalidIndex && ancestorIndex < uint64(n) {
			idx.ancestorPDG[i] = in.Particles[ancestorIndex].Part.PDG
		}
	}

	return idx, nil
}

// InputIndex returns the particle-array index for trackid, or
// invalidIndex (reported via the second return value as false) if
// trackid is unknown to this event.
func (idx *Index) InputIndex(trackid uint64) (uint64, bool) {
	if trackid >= uint64(len(idx.trackID2Index)) {
		return invalidIndex, false
	}
	i := idx.trackID2Index[trackid]
	return i, i != invalidIndex
}

// ParentIndex returns the particle-array index of the parent of the
// particle at array index i, or false if the parent is not present in
// this event.
func (idx *Index) ParentIndex(i uint64) (uint64, bool) {
	if i >= uint64(len(idx.parentIndex)) {
		return invalidIndex, false
	}
	p := idx.parentIndex[i]
	return p, p != invalidIndex
}

// AncestorIndex returns the particle-array index of the primary
// ancestor of the particle at array index i, or false if no such
// primary could be traced within the event.
func (idx *Index) AncestorIndex(i uint64) (uint64, bool) {
	if i >= uint64(len(idx.ancestorIndex)) {
		return invalidIndex, false
	}
	a := idx.ancestorIndex[i]
	return a, a != invalidIndex
}

// ParentTrackID returns the raw parent track id recorded for the
// particle at array index i.
func (idx *Index) ParentTrackID(i uint64) uint64 { return idx.parentTrackID[i] }

// ParentPDG returns the PDG code of the parent of the particle at
// array index i, or event.InvalidPDG if the parent isn't in this event.
func (idx *Index) ParentPDG(i uint64) int32 { return idx.parentPDG[i] }

// AncestorTrackID returns the track id of the primary ancestor of the
// particle at array index i.
func (idx *Index) AncestorTrackID(i uint64) uint64 { return idx.ancestorTrackID[i] }

// AncestorPDG returns the PDG code of the primary ancestor of the
// particle at array index i.
func (idx *Index) AncestorPDG(i uint64) int32 { return idx.ancestorPDG[i] }

// ParentTrackIDArray returns the chain of ancestor track ids above
// trackid, nearest first, up to (but excluding) the self-loop at the
// primary. Looking this up always goes through InputIndex first,
// rather than indexing parentHistory by trackid directly, since
// parentHistory is keyed by array index, not by track id.
func (idx *Index) ParentTrackIDArray(trackid uint64) []uint64 {
	i, ok := idx.InputIndex(trackid)
	if !ok {
		return nil
	}
	return idx.parentHistory[i]
}

// SetParentInfo writes the inferred parent/ancestor fields back onto
// each particle in in, mutating it in place.
func SetParentInfo(in *event.EventInput, idx *Index) {
	for i := range in.Particles {
		in.Particles[i].Part.ParentPDG = idx.parentPDG[i]
		in.Particles[i].Part.ParentTrackID = idx.parentTrackID[i]
		in.Particles[i].Part.AncestorPDG = idx.ancestorPDG[i]
		in.Particles[i].Part.AncestorTrackID = idx.ancestorTrackID[i]
	}
}
