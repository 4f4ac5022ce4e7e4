package labeling

import (
	"github.com/zhulcher/supera-atomic/event"
	"github.com/zhulcher/supera-atomic/particleindex"
	"github.com/zhulcher/supera-atomic/superaerr"
	"github.com/zhulcher/supera-atomic/voxel"
)

// mergeParticleLabel folds the label with track id targetTrackID into
// the label with track id destTrackID, and repoints every descendant
// previously merged into target at dest as well.
func mergeParticleLabel(labels []*event.ParticleLabel, idx *particleindex.Index, destTrackID, targetTrackID uint64) error {
	destIdx, ok := idx.InputIndex(destTrackID)
	if !ok {
		return superaerr.Logicf("mergeParticleLabel: unknown destination track id %d", destTrackID)
	}
	targetIdx, ok := idx.InputIndex(targetTrackID)
	if !ok {
		return superaerr.Logicf("mergeParticleLabel: unknown target track id %d", targetTrackID)
	}
	dest := labels[destIdx]
	target := labels[targetIdx]
	merged := append([]uint64{}, target.MergedTrackIDs...)
	dest.Merge(target)
	for _, trackid := range merged {
		if i, ok := idx.InputIndex(trackid); ok {
			labels[i].MergeID = dest.Part.TrackID
		}
	}
	return nil
}

// isTouching reports whether any voxel of vs1 overlaps or lies within
// the configured touch distance of any voxel of vs2.
func (e *Engine) isTouching(meta *voxel.ImageMeta3D, vs1, vs2 *voxel.VoxelSet) bool {
	small, large := vs1, vs2
	if small.Len() > large.Len() {
		small, large = large, small
	}
	for _, vox := range small.AsSlice() {
		if large.Find(vox.ID).ID != voxel.InvalidID {
			return true
		}
	}

	for _, v1 := range vs1.AsSlice() {
		ix1, iy1, iz1 := meta.IDToXYZIndex(v1.ID)
		for _, v2 := range vs2.AsSlice() {
			ix2, iy2, iz2 := meta.IDToXYZIndex(v2.ID)
			if absDiff(ix1, ix2) <= e.cfg.TouchDistance &&
				absDiff(iy1, iy2) <= e.cfg.TouchDistance &&
				absDiff(iz1, iz2) <= e.cfg.TouchDistance {
				return true
			}
		}
	}
	return false
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

// parentShowerTrackIDs walks the parent history of trackid, stopping
// at (and excluding) the first Track or Unknown-shaped ancestor, and
// returns the track ids of every Shower/Michel/Delta (and, if
// includeLEScatter, LEScatter) ancestor encountered along the way.
func (e *Engine) parentShowerTrackIDs(trackid uint64, labels []*event.ParticleLabel, idx *particleindex.Index, includeLEScatter bool) []uint64 {
	if _, ok := idx.InputIndex(trackid); !ok {
		return nil
	}
	parents := idx.ParentTrackIDArray(trackid)
	result := make([]uint64, 0, len(parents))
	for _, parentTrackID := range parents {
		parentIndex, ok := idx.InputIndex(parentTrackID)
		if !ok {
			continue
		}
		grp := labels[parentIndex]
		if grp.Part.Shape == event.ShapeTrack || grp.Part.Shape == event.Unknown {
			break
		}
		if !grp.Valid {
			continue
		}
		if grp.Part.Shape == event.Michel || grp.Part.Shape == event.Shower || grp.Part.Shape == event.ShapeDelta ||
			(grp.Part.Shape == event.LEScatter && includeLEScatter) {
			result = append(result, parentTrackID)
		}
	}
	return result
}

// mergeShowerConversion repeatedly folds each Conversion-process
// electron into the nearest valid ancestor found in its parent chain,
// until no more merges are possible.
func (e *Engine) mergeShowerConversion(labels []*event.ParticleLabel, idx *particleindex.Index) error {
	for {
		mergeCount := 0
		for _, label := range labels {
			if !label.Valid || label.Part.Type != event.Conversion {
				continue
			}
			if abs32(label.Part.PDG) != 11 {
				return superaerr.Dataf("unexpected: Conversion-type particle with track id %d is not an electron (pdg=%d)", label.Part.TrackID, label.Part.PDG)
			}

			found := event.InvalidTrackID
			for _, parentTrackID := range idx.ParentTrackIDArray(label.Part.TrackID) {
				parentIndex, ok := idx.InputIndex(parentTrackID)
				if !ok || !labels[parentIndex].Valid {
					continue
				}
				found = parentTrackID
				break
			}
			if found != event.InvalidTrackID {
				if err := mergeParticleLabel(labels, idx, found, label.Part.TrackID); err != nil {
					return err
				}
				mergeCount++
			}
		}
		if mergeCount == 0 {
			break
		}
	}
	return nil
}

// mergeDeltas folds a delta-ray label into its parent when the delta
// contributes too few voxels (either in total or uniquely, beyond
// what the parent already covers) to stand on its own.
func (e *Engine) mergeDeltas(labels []*event.ParticleLabel, idx *particleindex.Index) error {
	for _, label := range labels {
		if label.Part.Shape != event.ShapeDelta {
			continue
		}
		parentIndex, ok := idx.InputIndex(label.Part.ParentTrackID)
		if !ok {
			continue
		}
		parent := labels[parentIndex]
		if !parent.Valid {
			continue
		}

		uniqueVoxels := 0
		for _, vox := range label.Energy.AsSlice() {
			if parent.Energy.Find(vox.ID).ID == voxel.InvalidID {
				uniqueVoxels++
			}
		}

		if label.Size() < e.cfg.DeltaSize || uniqueVoxels < e.cfg.DeltaSize {
			if err := mergeParticleLabel(labels, idx, parent.Part.TrackID, label.Part.TrackID); err != nil {
				return err
			}
		}
	}
	return nil
}

// mergeShowerFamilyTouching repeatedly folds a Shower label into its
// direct parent (or the group its direct parent was already merged
// into) when that parent is a Shower, Delta or Michel and the two
// voxel sets touch.
func (e *Engine) mergeShowerFamilyTouching(meta *voxel.ImageMeta3D, labels []*event.ParticleLabel, idx *particleindex.Index) error {
	for {
		mergeCount := 0
		for _, label := range labels {
			if !label.Valid || label.Part.Shape != event.Shower {
				continue
			}
			if label.Part.ParentTrackID == event.InvalidTrackID {
				continue
			}

			parentTrackID := event.InvalidTrackID
			if parentIndex, ok := idx.InputIndex(label.Part.ParentTrackID); ok && labels[parentIndex].Valid {
				parentTrackID = label.Part.ParentTrackID
			} else {
				for _, candidate := range labels {
					if candidate.Part.TrackID == label.Part.ParentTrackID || !candidate.Valid {
						continue
					}
					for _, trackid := range candidate.MergedTrackIDs {
						if trackid == label.Part.ParentTrackID {
							parentTrackID = candidate.Part.TrackID
							break
						}
					}
					if parentTrackID != event.InvalidTrackID {
						break
					}
				}
			}
			if parentTrackID == event.InvalidTrackID || parentTrackID == label.Part.TrackID {
				continue
			}
			parentIndex, ok := idx.InputIndex(parentTrackID)
			if !ok {
				continue
			}
			parent := labels[parentIndex]
			if parent.Part.Shape != event.Shower && parent.Part.Shape != event.ShapeDelta && parent.Part.Shape != event.Michel {
				continue
			}
			if !parent.Valid {
				continue
			}
			if e.isTouching(meta, label.Energy, parent.Energy) {
				if err := mergeParticleLabel(labels, idx, parentTrackID, label.Part.TrackID); err != nil {
					return err
				}
				mergeCount++
			}
		}
		if mergeCount == 0 {
			break
		}
	}
	return nil
}

// mergeShowerIonizations folds every Ionization-process label into
// the nearest valid ancestor found in its parent chain. Disabled by
// default; see Config.EnableIonizationMerge.
func (e *Engine) mergeShowerIonizations(labels []*event.ParticleLabel, idx *particleindex.Index) error {
	for {
		mergeCount := 0
		for _, label := range labels {
			if !label.Valid || label.Part.Type != event.Ionization {
				continue
			}
			parentFound := false
			parentTrackID := event.InvalidTrackID
			for _, trackid := range idx.ParentTrackIDArray(label.Part.TrackID) {
				parentTrackID = trackid
				parentIndex, ok := idx.InputIndex(parentTrackID)
				if !ok || !labels[parentIndex].Valid {
					continue
				}
				parentFound = true
				break
			}
			if parentFound {
				if err := mergeParticleLabel(labels, idx, parentTrackID, label.Part.TrackID); err != nil {
					return err
				}
				mergeCount++
			}
		}
		if mergeCount == 0 {
			break
		}
	}
	return nil
}

// mergeShowerTouching repeatedly merges pairs of Shower labels that
// share a common shower-type ancestor and whose voxel sets touch,
// folding the smaller into the larger.
func (e *Engine) mergeShowerTouching(meta *voxel.ImageMeta3D, labels []*event.ParticleLabel, idx *particleindex.Index) error {
	for {
		mergeCount := 0
		for i := 0; i < len(labels); i++ {
			labelA := labels[i]
			if !labelA.Valid || labelA.Part.Shape != event.Shower {
				continue
			}
			for j := 0; j < len(labels); j++ {
				if !labelA.Valid {
					break
				}
				if i == j {
					continue
				}
				labelB := labels[j]
				if !labelB.Valid || labelB.Part.Shape != event.Shower {
					continue
				}

				parentsA := e.parentShowerTrackIDs(labelA.Part.TrackID, labels, idx, false)
				setA := map[uint64]bool{labelA.Part.TrackID: true}
				for _, t := range parentsA {
					setA[t] = true
				}
				parentsB := e.parentShowerTrackIDs(labelB.Part.TrackID, labels, idx, false)
				setB := map[uint64]bool{labelB.Part.TrackID: true}
				for _, t := range parentsB {
					setB[t] = true
				}

				sameFamily := false
				for t := range setA {
					if setB[t] {
						sameFamily = true
						break
					}
				}

				if sameFamily && e.isTouching(meta, labelA.Energy, labelB.Energy) {
					var err error
					if labelA.Size() > labelB.Size() {
						err = mergeParticleLabel(labels, idx, labelA.Part.TrackID, labelB.Part.TrackID)
					} else {
						err = mergeParticleLabel(labels, idx, labelB.Part.TrackID, labelA.Part.TrackID)
					}
					if err != nil {
						return err
					}
					mergeCount++
				}
			}
		}
		if mergeCount == 0 {
			break
		}
	}
	return nil
}

// mergeShowerTouchingElectron repeatedly folds small electron-family
// fragments (photoelectron/ionization/Compton/conversion processes)
// into whichever ancestor in their parent chain they physically touch.
func (e *Engine) mergeShowerTouchingElectron(meta *voxel.ImageMeta3D, labels []*event.ParticleLabel, idx *particleindex.Index) error {
	for {
		mergeCount := 0
		for _, label := range labels {
			if !label.Valid || label.Size() < 1 || label.Size() > e.cfg.ComptonSize || abs32(label.Part.PDG) != 11 {
				continue
			}
			switch label.Part.Type {
			case event.PhotoElectron, event.Ionization, event.Compton, event.Conversion:
			default:
				continue
			}

			for _, parentTrackID := range idx.ParentTrackIDArray(label.Part.TrackID) {
				parentIndex, ok := idx.InputIndex(parentTrackID)
				if !ok {
					continue
				}
				parent := labels[parentIndex]
				if !parent.Valid || parent.Size() < 1 {
					continue
				}
				if e.isTouching(meta, label.Energy, parent.Energy) {
					if err := mergeParticleLabel(labels, idx, parentTrackID, label.Part.TrackID); err != nil {
						return err
					}
					mergeCount++
					break
				}
			}
		}
		if mergeCount == 0 {
			break
		}
	}
	return nil
}

// mergeShowerTouchingLEScatter repeatedly folds small LEScatter
// fragments into whichever non-LEScatter label they physically touch,
// anywhere in the event (not restricted to their own ancestry).
func (e *Engine) mergeShowerTouchingLEScatter(meta *voxel.ImageMeta3D, labels []*event.ParticleLabel, idx *particleindex.Index) error {
	for {
		mergeCount := 0
		for _, label := range labels {
			if !label.Valid || label.Size() < 1 || label.Size() > e.cfg.LEScatterSize || label.Part.Shape != event.LEScatter {
				continue
			}
			if label.Part.Type == event.Neutron || label.Part.Type == event.Nucleus {
				continue
			}

			for _, dest := range labels {
				if !dest.Valid || dest.Part.Shape == event.LEScatter {
					continue
				}
				if e.isTouching(meta, label.Energy, dest.Energy) {
					if err := mergeParticleLabel(labels, idx, dest.Part.TrackID, label.Part.TrackID); err != nil {
						return err
					}
					mergeCount++
					break
				}
			}
		}
		if mergeCount == 0 {
			break
		}
	}
	return nil
}
