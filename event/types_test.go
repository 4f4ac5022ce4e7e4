package event

import (
	"testing"

	"github.com/zhulcher/supera-atomic/geom"
)

func TestNewParticleSentinels(t *testing.T) {
	p := NewParticle()
	if p.TrackID != InvalidTrackID {
		t.Errorf("TrackID = %v, want InvalidTrackID", p.TrackID)
	}
	if p.Type != InvalidProcess {
		t.Errorf("Type = %v, want InvalidProcess", p.Type)
	}
	if p.GroupID != InvalidInstanceID {
		t.Errorf("GroupID = %v, want InvalidInstanceID", p.GroupID)
	}
}

func TestParticleLabelUpdatePoints(t *testing.T) {
	l := NewParticleLabel(NewParticle())
	l.UpdateFirstPoint(geom.NewEDep(0, 0, 0, 5, 1, 1))
	l.UpdateFirstPoint(geom.NewEDep(0, 0, 0, 2, 1, 1))
	if l.FirstPt.Time != 2 {
		t.Errorf("FirstPt.Time = %v, want 2", l.FirstPt.Time)
	}

	l.UpdateLastPoint(geom.NewEDep(0, 0, 0, 5, 1, 1))
	l.UpdateLastPoint(geom.NewEDep(0, 0, 0, 9, 1, 1))
	if l.LastPt.Time != 9 {
		t.Errorf("LastPt.Time = %v, want 9", l.LastPt.Time)
	}
}

func TestParticleLabelMerge(t *testing.T) {
	parent := NewParticleLabel(NewParticle())
	parent.Part.TrackID = 1
	parent.Energy.Emplace(10, 1.0, false)

	child := NewParticleLabel(NewParticle())
	child.Part.TrackID = 2
	child.Part.EnergyDeposit = 3.0
	child.Energy.Emplace(10, 2.0, false)
	child.Energy.Emplace(20, 5.0, false)

	parent.Merge(child)

	if child.Valid {
		t.Errorf("expected child to be invalidated after merge")
	}
	if child.MergeID != 1 {
		t.Errorf("child.MergeID = %v, want 1", child.MergeID)
	}
	if len(parent.MergedTrackIDs) != 1 || parent.MergedTrackIDs[0] != 2 {
		t.Errorf("MergedTrackIDs = %v, want [2]", parent.MergedTrackIDs)
	}
	if got := parent.Energy.Find(10).Value; got != 3.0 {
		t.Errorf("merged energy at voxel 10 = %v, want 3.0", got)
	}
	if got := parent.Energy.Find(20).Value; got != 5.0 {
		t.Errorf("merged energy at voxel 20 = %v, want 5.0", got)
	}
}
