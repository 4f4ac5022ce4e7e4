package labeling

import (
	"github.com/zhulcher/supera-atomic/event"
	"github.com/zhulcher/supera-atomic/particleindex"
	"github.com/zhulcher/supera-atomic/superaerr"
	"github.com/zhulcher/supera-atomic/voxel"
)

// initializeLabels builds the initial, per-particle working labels:
// one per input particle, each carrying its raw energy depositions
// projected onto meta and clipped to the world bounds. A particle
// whose parent PDG could not be inferred (no traceable parent in this
// event) starts out invalid.
func (e *Engine) initializeLabels(data *event.EventInput, meta *voxel.ImageMeta3D, idx *particleindex.Index) ([]*event.ParticleLabel, error) {
	labels := make([]*event.ParticleLabel, len(data.Particles))
	for i, pin := range data.Particles {
		label := event.NewParticleLabel(pin.Part)
		label.Part.ParentPDG = idx.ParentPDG(uint64(i))
		label.Valid = label.Part.ParentPDG != event.InvalidPDG

		for _, edep := range pin.PCloud {
			voxID := meta.ID(edep.Pos)
			if voxID == voxel.InvalidID || !e.worldBounds.Contains(edep.Pos) {
				continue
			}
			label.Energy.Emplace(voxID, edep.E, true)
			label.DEdx.Emplace(voxID, edep.Dedx, true)
			label.UpdateFirstPoint(edep)
			label.UpdateLastPoint(edep)
		}
		labels[i] = label
	}
	return labels, nil
}

// applyEnergyThreshold drops any voxel whose deposited energy is below
// the configured threshold from a label's energy voxel set, then
// drops the matching entries from dE/dx: the two sets must stay
// paired by id, so survival is decided by energy alone, never by
// comparing a dE/dx magnitude against the threshold directly.
func (e *Engine) applyEnergyThreshold(labels []*event.ParticleLabel) error {
	for _, label := range labels {
		label.Energy.Threshold(e.cfg.EnergyDepositThreshold)
		if missing := label.DEdx.FilterIDs(label.Energy.IDs()); len(missing) > 0 {
			return superaerr.Logicf("dedx/energy id mismatch after thresholding for track id %d: dedx is missing id(s) %v", label.Part.TrackID, missing)
		}
	}
	return nil
}

// setSemanticType classifies every valid label's appearance type from
// its creation process, PDG code and surviving voxel count.
func (e *Engine) setSemanticType(labels []*event.ParticleLabel) error {
	for _, label := range labels {
		if !label.Valid {
			continue
		}
		part := &label.Part
		switch part.Type {
		case event.InvalidProcess:
			return superaerr.Dataf("'InvalidProcess' particle process encountered for track id %d", part.TrackID)

		case event.Track:
			part.Shape = event.ShapeTrack

		case event.Primary:
			if abs32(part.PDG) != 11 && part.PDG != 22 {
				part.Shape = event.ShapeTrack
			} else {
				part.Shape = event.Shower
			}

		case event.Delta:
			if label.Size() < e.cfg.DeltaSize {
				part.Shape = event.LEScatter
			} else {
				part.Shape = event.ShapeDelta
			}

		case event.Decay:
			if abs32(part.PDG) == 11 && abs32(part.ParentPDG) == 13 {
				part.Shape = event.Michel
			} else if abs32(part.PDG) == 11 || part.PDG == 22 {
				if label.Size() > e.cfg.ComptonSize {
					part.Shape = event.Shower
				} else {
					part.Shape = event.LEScatter
				}
			} else {
				part.Shape = event.ShapeTrack
			}

		case event.Ionization, event.PhotoElectron, event.Neutron:
			part.Shape = event.LEScatter

		case event.Photon:
			part.Shape = event.Shower

		case event.Conversion, event.Compton, event.OtherShower:
			if abs32(part.PDG) == 11 || part.PDG == 22 {
				if label.Size() > e.cfg.ComptonSize {
					part.Shape = event.Shower
				} else {
					part.Shape = event.LEScatter
				}
			} else {
				part.Shape = event.ShapeTrack
			}

		case event.Nucleus:
			if label.Size() > e.cfg.ComptonSize {
				part.Shape = event.ShapeTrack
			} else {
				part.Shape = event.LEScatter
			}
		}
	}
	return nil
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
