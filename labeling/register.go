package labeling

import (
	"fmt"

	"github.com/zhulcher/supera-atomic/event"
	"github.com/zhulcher/supera-atomic/geom"
	"github.com/zhulcher/supera-atomic/particleindex"
	"github.com/zhulcher/supera-atomic/superaerr"
	"github.com/zhulcher/supera-atomic/voxel"
)

// registerOutputParticles assigns every surviving (valid) label its
// output index, non-LEScatter labels first and LEScatter labels
// second (only if Config.StoreLEScatter): a label with an unresolved
// Unknown shape at this point is fatal. Each registered label's
// energy_deposit is recomputed as the sum of its surviving energy
// voxels, and its first/last step is filled in from the first/last
// deposits seen. A final pass sets every valid label's parent id from
// whatever id its direct parent ended up with (InvalidInstanceID if
// the parent was never registered, e.g. because it was itself merged
// away).
func (e *Engine) registerOutputParticles(labels []*event.ParticleLabel, idx *particleindex.Index) (output2trackid []uint64, err error) {
	register := func(wantLEScatter bool) error {
		for _, label := range labels {
			if !label.Valid || label.Part.TrackID == event.InvalidTrackID {
				continue
			}
			if label.Part.Shape == event.Unknown {
				return superaerr.Logicf("label with track id %d reached output registration with an unresolved shape", label.Part.TrackID)
			}
			isLEScatter := label.Part.Shape == event.LEScatter
			if isLEScatter != wantLEScatter {
				continue
			}
			label.Part.ID = uint64(len(output2trackid))
			output2trackid = append(output2trackid, label.Part.TrackID)
			label.Part.EnergyDeposit = label.Energy.Sum()

			if label.HasFirstPoint() {
				label.Part.FirstStep = geom.NewVertex(label.FirstPt.Pos.X(), label.FirstPt.Pos.Y(), label.FirstPt.Pos.Z(), label.FirstPt.Time)
			}
			if label.HasLastPoint() {
				label.Part.LastStep = geom.NewVertex(label.LastPt.Pos.X(), label.LastPt.Pos.Y(), label.LastPt.Pos.Z(), label.LastPt.Time)
			}
		}
		return nil
	}

	if err := register(false); err != nil {
		return nil, err
	}
	if e.cfg.StoreLEScatter {
		if err := register(true); err != nil {
			return nil, err
		}
	}

	for i, label := range labels {
		if !label.Valid {
			continue
		}
		label.Part.ParentID = event.InvalidInstanceID
		if parentIndex, ok := idx.ParentIndex(uint64(i)); ok {
			label.Part.ParentID = labels[parentIndex].Part.ID
		}
	}

	return output2trackid, nil
}

// setGroupID assigns every valid label's group id: primaries, tracks
// and Michel electrons are their own group; deltas inherit their
// direct parent's group; showers walk their parent chain and adopt
// the group id of the topmost connected shower-type ancestor found;
// LEScatter labels are left untouched (they fold into the
// unassociated tensor or their host's group downstream).
func (e *Engine) setGroupID(labels []*event.ParticleLabel, idx *particleindex.Index) error {
	for _, label := range labels {
		if !label.Valid {
			continue
		}
		switch label.Part.Shape {
		case event.LEScatter:
			continue

		case event.ShapeTrack, event.Michel:
			label.Part.GroupID = label.Part.ID

		case event.ShapeDelta:
			parentIndex, ok := idx.InputIndex(label.Part.ParentTrackID)
			if !ok || !labels[parentIndex].Valid {
				return superaerr.Logicf("delta with track id %d has no valid parent for group id assignment", label.Part.TrackID)
			}
			label.Part.GroupID = labels[parentIndex].Part.ID

		case event.Shower:
			if label.Part.ParentTrackID == label.Part.TrackID {
				label.Part.GroupID = label.Part.ID
				continue
			}
			groupID := label.Part.ID
			for _, parentTrackID := range idx.ParentTrackIDArray(label.Part.TrackID) {
				parentIndex, ok := idx.InputIndex(parentTrackID)
				if !ok {
					continue
				}
				parent := labels[parentIndex]
				if parent.Part.Shape != event.Shower && parent.Part.Shape != event.LEScatter {
					break
				}
				if parent.Valid && parent.Part.Shape == event.Shower {
					groupID = parent.Part.ID
				}
			}
			label.Part.GroupID = groupID

		default:
			return superaerr.Logicf("label with track id %d has unexpected shape %v for group id assignment", label.Part.TrackID, label.Part.Shape)
		}
	}
	return nil
}

// setAncestorAttributes reconciles each label's parent_trackid and
// ancestor_trackid against the chain recomputed from idx (its first
// entry is the parent, its last is the ancestor), defaulting either
// one from the chain when unset, and fills in the parent/ancestor
// id/pdg/vertex/process fields from the resolved records.
func (e *Engine) setAncestorAttributes(labels []*event.ParticleLabel, idx *particleindex.Index) error {
	for _, label := range labels {
		if !label.Valid {
			continue
		}
		parentTrackID := label.Part.ParentTrackID
		ancestorTrackID := label.Part.AncestorTrackID
		chain := idx.ParentTrackIDArray(label.Part.TrackID)

		if parentTrackID == event.InvalidTrackID && len(chain) > 0 {
			parentTrackID = chain[0]
		}
		if ancestorTrackID == event.InvalidTrackID && len(chain) > 0 {
			ancestorTrackID = chain[len(chain)-1]
		}

		if len(chain) > 0 && chain[0] != parentTrackID {
			return superaerr.Dataf("particle with track id %d: parent track id %d does not match the first ancestry track id %d", label.Part.TrackID, parentTrackID, chain[0])
		}
		if len(chain) > 0 && chain[len(chain)-1] != ancestorTrackID {
			return superaerr.Dataf("particle with track id %d: ancestor track id %d does not match the most distant ancestry track id %d", label.Part.TrackID, ancestorTrackID, chain[len(chain)-1])
		}
		if parentTrackID == event.InvalidTrackID {
			return superaerr.Dataf("particle with track id %d is missing a parent track id", label.Part.TrackID)
		}
		if ancestorTrackID == event.InvalidTrackID {
			ancestorTrackID = parentTrackID
		}

		label.Part.ParentTrackID = parentTrackID
		label.Part.AncestorTrackID = ancestorTrackID

		if parentIndex, ok := idx.InputIndex(parentTrackID); ok {
			parent := labels[parentIndex].Part
			label.Part.ParentID = parent.ID
			label.Part.ParentPDG = parent.PDG
			label.Part.ParentVtx = parent.Vtx
			label.Part.ParentProcess = parent.Process
		}
		if ancestorIndex, ok := idx.InputIndex(ancestorTrackID); ok {
			ancestor := labels[ancestorIndex].Part
			label.Part.AncestorID = ancestor.ID
			label.Part.AncestorPDG = ancestor.PDG
			label.Part.AncestorVtx = ancestor.Vtx
			label.Part.AncestorProcess = ancestor.Process
		}
	}
	return nil
}

// setInteractionID assigns every valid label the index of its
// ancestor vertex among the set of distinct ancestor vertices seen
// this event, deduplicated by exact (x,y,z,t) match.
func (e *Engine) setInteractionID(labels []*event.ParticleLabel) {
	var vertices []geom.Vertex
	for _, label := range labels {
		if !label.Valid {
			continue
		}
		vtx := label.Part.AncestorVtx
		found := -1
		for i, v := range vertices {
			if v.Equal(vtx) {
				found = i
				break
			}
		}
		if found < 0 {
			found = len(vertices)
			vertices = append(vertices, vtx)
		}
		label.Part.InteractionID = uint64(found)
	}
}

// buildOutputLabels assembles the final particle catalog from the
// registered output indices. When StoreLEScatter is false, any
// label that is still valid at this point was never registered (by
// construction, registerOutputParticles only skips LEScatter-shaped
// labels in that case) and is not in output2trackid — its voxels are
// folded into unass instead, so
// the per-voxel tensors still carry that energy, labeled LEScatter,
// even though no catalog entry speaks for it.
func (e *Engine) buildOutputLabels(labels []*event.ParticleLabel, idx *particleindex.Index, output2trackid []uint64, unass *voxel.VoxelSet) (*event.EventOutput, error) {
	output := &event.EventOutput{
		Particles: make([]*event.ParticleLabel, 0, len(output2trackid)),
	}
	for _, trackid := range output2trackid {
		i, ok := idx.InputIndex(trackid)
		if !ok {
			return nil, superaerr.Logicf("registered output track id %d is not a known input particle", trackid)
		}
		output.Particles = append(output.Particles, labels[i])
	}

	if !e.cfg.StoreLEScatter {
		registered := make(map[uint64]bool, len(output2trackid))
		for _, trackid := range output2trackid {
			registered[trackid] = true
		}
		for _, label := range labels {
			if !label.Valid || registered[label.Part.TrackID] {
				continue
			}
			if label.Part.Shape != event.LEScatter {
				return nil, superaerr.Logicf("label with track id %d was never registered despite shape %v", label.Part.TrackID, label.Part.Shape)
			}
			unass.Merge(label.Energy)
		}
	}

	output.UnassociatedVoxels = unass
	return output, nil
}

// dumpHierarchy renders a particle's genealogy for debugging,
// resolving trackid through idx.InputIndex rather than indexing the
// label slice directly, since it is keyed by array index, not by
// track id.
func (e *Engine) dumpHierarchy(trackid uint64, labels []*event.ParticleLabel, idx *particleindex.Index) string {
	i, ok := idx.InputIndex(trackid)
	if !ok {
		return fmt.Sprintf("track id %d: not found in this event", trackid)
	}
	label := labels[i]
	return fmt.Sprintf("track id %d: pdg=%d shape=%v valid=%v parent=%d ancestor=%d merged=%v",
		label.Part.TrackID, label.Part.PDG, label.Part.Shape, label.Valid,
		label.Part.ParentTrackID, label.Part.AncestorTrackID, label.MergedTrackIDs)
}
