package event

import "github.com/zhulcher/supera-atomic/voxel"

// EventOutput is the labeling engine's result for one event: the
// merged, top-level particle labels plus the aggregated per-voxel
// tensors built from them.
type EventOutput struct {
	Particles []*ParticleLabel

	// UnassociatedVoxels holds energy deposits (including, when
	// StoreLEScatter is off, small fragments that never made it into
	// Particles) that could not be tied to any surviving particle.
	// They still count toward VoxelEnergies and always read back as
	// LEScatter from VoxelLabels, regardless of what else claims that
	// voxel.
	UnassociatedVoxels *voxel.VoxelSet
}

// VoxelEnergies returns the total deposited energy per voxel, summed
// across every particle label plus any unassociated deposits.
func (o *EventOutput) VoxelEnergies() *voxel.VoxelSet {
	energies := voxel.NewVoxelSet(0)
	for _, p := range o.Particles {
		energies.Merge(p.Energy)
	}
	if o.UnassociatedVoxels != nil {
		energies.Merge(o.UnassociatedVoxels)
	}
	return energies
}

// VoxelLabels returns the semantic-type label per voxel. When more
// than one particle contributes to a voxel, semanticPriority breaks
// the tie: the first type in the list that appears among the
// contenders wins. Voxels touched by UnassociatedVoxels always read
// back as LEScatter, overriding whatever particle-derived label they
// would otherwise have won.
func (o *EventOutput) VoxelLabels(semanticPriority []SemanticType) *voxel.VoxelSet {
	semantics := voxel.NewVoxelSet(0)
	for _, p := range o.Particles {
		semantic := float64(p.Part.Shape)
		for _, vox := range p.Energy.AsSlice() {
			prev := semantics.Find(vox.ID)
			if prev.ID == voxel.InvalidID {
				semantics.Emplace(vox.ID, semantic, false)
				continue
			}
			winner := resolveSemanticPriority(SemanticType(prev.Value), SemanticType(semantic), semanticPriority)
			if winner != SemanticType(prev.Value) {
				semantics.Emplace(vox.ID, semantic, false)
			}
		}
	}
	if o.UnassociatedVoxels != nil {
		for _, vox := range o.UnassociatedVoxels.AsSlice() {
			semantics.Emplace(vox.ID, float64(LEScatter), false)
		}
	}
	return semantics
}

// resolveSemanticPriority decides which of a, b wins when both label the
// same voxel: the first of the two to appear in priority order wins;
// if neither appears, a wins by default.
func resolveSemanticPriority(a, b SemanticType, priority []SemanticType) SemanticType {
	if a == b {
		return a
	}
	for _, s := range priority {
		if a == s {
			return a
		}
		if b == s {
			return b
		}
	}
	return a
}

// Equal reports whether o and rhs hold the same set of particle
// labels, compared by their Geant4 track id rather than slice order —
// the two outputs need not list particles in the same sequence.
func (o *EventOutput) Equal(rhs *EventOutput) bool {
	if len(o.Particles) != len(rhs.Particles) {
		return false
	}
	byTrack := make(map[uint64]*ParticleLabel, len(rhs.Particles))
	for _, p := range rhs.Particles {
		byTrack[p.Part.TrackID] = p
	}
	for _, p := range o.Particles {
		other, ok := byTrack[p.Part.TrackID]
		if !ok {
			return false
		}
		if !particleLabelsEqual(p, other) {
			return false
		}
	}
	return true
}

func particleLabelsEqual(a, b *ParticleLabel) bool {
	return a.Part.TrackID == b.Part.TrackID &&
		a.Part.Shape == b.Part.Shape &&
		a.Valid == b.Valid &&
		a.Size() == b.Size()
}
