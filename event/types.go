package event

import (
	"github.com/zhulcher/supera-atomic/geom"
	"github.com/zhulcher/supera-atomic/voxel"
)

// Particle is the truth-level record for a single GEANT4 track:
// kinematics, ancestry and the ids assigned by the labeling engine.
type Particle struct {
	ID    uint64       `json:"id"`
	Type  ProcessType  `json:"type"`
	Shape SemanticType `json:"shape"`

	TrackID uint64 `json:"track_id"`
	GenID   uint64 `json:"gen_id"`
	PDG     int32  `json:"pdg"`

	Px, Py, Pz          float64
	EndPx, EndPy, EndPz float64

	Vtx       geom.Vertex `json:"vtx"`
	EndPt     geom.Vertex `json:"end_pt"`
	FirstStep geom.Vertex `json:"first_step"`
	LastStep  geom.Vertex `json:"last_step"`

	DistTravel     float64 `json:"dist_travel"`
	EnergyInit     float64 `json:"energy_init"`
	EnergyDeposit  float64 `json:"energy_deposit"`
	Process        string  `json:"process"`

	ParentTrackID uint64      `json:"parent_track_id"`
	ParentPDG     int32       `json:"parent_pdg"`
	ParentVtx     geom.Vertex `json:"parent_vtx"`

	AncestorTrackID uint64      `json:"ancestor_track_id"`
	AncestorPDG     int32       `json:"ancestor_pdg"`
	AncestorVtx     geom.Vertex `json:"ancestor_vtx"`
	AncestorProcess string      `json:"ancestor_process"`

	ParentProcess string   `json:"parent_process"`
	ParentID      uint64   `json:"parent_id"`
	AncestorID    uint64   `json:"ancestor_id"`
	ChildrenID    []uint64 `json:"children_id"`

	GroupID       uint64 `json:"group_id"`
	InteractionID uint64 `json:"interaction_id"`
}

// NewParticle returns a Particle with every id/code field set to its
// sentinel "unset" value, matching the original engine's constructor.
func NewParticle() Particle {
	return Particle{
		ID:              InvalidInstanceID,
		Type:            InvalidProcess,
		Shape:           Unknown,
		TrackID:         InvalidTrackID,
		GenID:           InvalidTrackID,
		PDG:             InvalidPDG,
		DistTravel:      -1,
		ParentTrackID:   InvalidTrackID,
		ParentPDG:       InvalidPDG,
		AncestorTrackID: InvalidTrackID,
		AncestorPDG:     InvalidPDG,
		ParentID:        InvalidInstanceID,
		AncestorID:      InvalidInstanceID,
		GroupID:         InvalidInstanceID,
		InteractionID:   InvalidInstanceID,
	}
}

// Momentum returns the magnitude of the particle's initial momentum.
func (p Particle) Momentum() float64 {
	return geom.NewPoint3D(p.Px, p.Py, p.Pz).Distance(geom.NewPoint3D(0, 0, 0))
}

// ParticleInput is a single true particle plus its raw energy
// depositions, as handed to the labeling engine.
type ParticleInput struct {
	Part   Particle    `json:"particle"`
	PCloud []geom.EDep `json:"pcloud"`
	Valid  bool        `json:"valid"`
}

// NewParticleInput returns a valid ParticleInput wrapping part.
func NewParticleInput(part Particle) ParticleInput {
	return ParticleInput{Part: part, Valid: true}
}

// EventInput is the full truth record for one event: one
// ParticleInput per true particle, plus any energy deposits that
// could not be associated with a particle at all.
type EventInput struct {
	Particles         []ParticleInput `json:"particles"`
	UnassociatedEDeps []geom.EDep     `json:"unassociated_edeps"`
}

// ParticleLabel is a merged, top-level output particle: the surviving
// representative of a group of input particles that were folded
// together by the merge passes, plus its accumulated voxels.
type ParticleLabel struct {
	Part  Particle `json:"particle"`
	Valid bool     `json:"valid"`

	// MergedTrackIDs lists the track ids of descendant particles that
	// were folded into this label.
	MergedTrackIDs []uint64 `json:"merged_track_ids"`
	// ParentTrackIDs holds a track-id history above this particle. The
	// labeling engine does not fill it; it reads the history from
	// particleindex.Index.ParentTrackIDArray instead.
	ParentTrackIDs []uint64 `json:"parent_track_id_history"`
	// MergeID is the track id of the particle this one was merged
	// into, or InvalidTrackID if it was not merged away.
	MergeID uint64 `json:"merge_id"`

	Energy *voxel.VoxelSet `json:"-"`
	DEdx   *voxel.VoxelSet `json:"-"`

	FirstPt  geom.EDep `json:"first_pt"`
	LastPt   geom.EDep `json:"last_pt"`
	hasFirst bool
	hasLast  bool
}

// NewParticleLabel returns an initialized, valid ParticleLabel
// wrapping part with empty voxel sets.
func NewParticleLabel(part Particle) *ParticleLabel {
	return &ParticleLabel{
		Part:    part,
		Valid:   true,
		MergeID: InvalidTrackID,
		Energy:  voxel.NewVoxelSet(0),
		DEdx:    voxel.NewVoxelSet(0),
	}
}

// Size returns the number of voxels carrying energy for this label.
func (l *ParticleLabel) Size() int { return l.Energy.Len() }

// HasFirstPoint reports whether UpdateFirstPoint has recorded a point.
func (l *ParticleLabel) HasFirstPoint() bool { return l.hasFirst }

// HasLastPoint reports whether UpdateLastPoint has recorded a point.
func (l *ParticleLabel) HasLastPoint() bool { return l.hasLast }

// UpdateFirstPoint replaces FirstPt with pt if pt is the first point
// seen, or occurs earlier in time than the current FirstPt.
func (l *ParticleLabel) UpdateFirstPoint(pt geom.EDep) {
	if !l.hasFirst || pt.Time < l.FirstPt.Time {
		l.FirstPt = pt
		l.hasFirst = true
	}
}

// UpdateLastPoint replaces LastPt with pt if pt is the first point
// seen, or occurs later in time than the current LastPt.
func (l *ParticleLabel) UpdateLastPoint(pt geom.EDep) {
	if !l.hasLast || pt.Time > l.LastPt.Time {
		l.LastPt = pt
		l.hasLast = true
	}
}

// Merge folds child into l: child's track id and its own merged
// history are appended to l's merge record, child's voxels are added
// into l's, first/last points are recomputed, and child is marked
// invalid and pointed at l via MergeID.
func (l *ParticleLabel) Merge(child *ParticleLabel) {
	l.MergedTrackIDs = append(l.MergedTrackIDs, child.Part.TrackID)
	l.MergedTrackIDs = append(l.MergedTrackIDs, child.MergedTrackIDs...)

	l.Energy.Merge(child.Energy)
	l.DEdx.Merge(child.DEdx)

	if child.HasFirstPoint() {
		l.UpdateFirstPoint(child.FirstPt)
	}
	if child.HasLastPoint() {
		l.UpdateLastPoint(child.LastPt)
	}

	l.Part.EnergyDeposit += child.Part.EnergyDeposit

	child.Valid = false
	child.MergeID = l.Part.TrackID
}
