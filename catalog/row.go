// Package catalog writes a run's merged particle labels and voxel
// tensors out to durable storage: CSV, SQLite, and newline-delimited
// JSON sinks, one row/record per event per particle.
package catalog

import "github.com/zhulcher/supera-atomic/event"

// ParticleRow flattens one output Particle into CSV/SQL-friendly
// scalar columns. Vertex/point fields are split into their x/y/z/t
// components since gocsv and SQL columns don't carry structs.
type ParticleRow struct {
	EventID uint64 `csv:"event_id" db:"event_id"`
	ID      uint64 `csv:"id" db:"id"`
	Type    string `csv:"type" db:"type"`
	Shape   string `csv:"shape" db:"shape"`

	TrackID uint64 `csv:"track_id" db:"track_id"`
	GenID   uint64 `csv:"gen_id" db:"gen_id"`
	PDG     int32  `csv:"pdg" db:"pdg"`

	Px float64 `csv:"px" db:"px"`
	Py float64 `csv:"py" db:"py"`
	Pz float64 `csv:"pz" db:"pz"`

	VtxX float64 `csv:"vtx_x" db:"vtx_x"`
	VtxY float64 `csv:"vtx_y" db:"vtx_y"`
	VtxZ float64 `csv:"vtx_z" db:"vtx_z"`
	VtxT float64 `csv:"vtx_t" db:"vtx_t"`

	EndX float64 `csv:"end_x" db:"end_x"`
	EndY float64 `csv:"end_y" db:"end_y"`
	EndZ float64 `csv:"end_z" db:"end_z"`
	EndT float64 `csv:"end_t" db:"end_t"`

	DistTravel    float64 `csv:"dist_travel" db:"dist_travel"`
	EnergyInit    float64 `csv:"energy_init" db:"energy_init"`
	EnergyDeposit float64 `csv:"energy_deposit" db:"energy_deposit"`
	Process       string  `csv:"process" db:"process"`

	ParentTrackID   uint64 `csv:"parent_track_id" db:"parent_track_id"`
	ParentID        uint64 `csv:"parent_id" db:"parent_id"`
	AncestorTrackID uint64 `csv:"ancestor_track_id" db:"ancestor_track_id"`
	AncestorID      uint64 `csv:"ancestor_id" db:"ancestor_id"`

	GroupID       uint64 `csv:"group_id" db:"group_id"`
	InteractionID uint64 `csv:"interaction_id" db:"interaction_id"`

	NumVoxels int `csv:"num_voxels" db:"num_voxels"`
}

// toRow flattens label's Particle into a ParticleRow tagged with
// eventID, carrying its accumulated voxel count along for sizing.
func toRow(eventID uint64, label *event.ParticleLabel) ParticleRow {
	p := label.Part
	return ParticleRow{
		EventID: eventID,
		ID:      p.ID,
		Type:    p.Type.String(),
		Shape:   p.Shape.String(),

		TrackID: p.TrackID,
		GenID:   p.GenID,
		PDG:     p.PDG,

		Px: p.Px, Py: p.Py, Pz: p.Pz,

		VtxX: p.Vtx.Pos.X(), VtxY: p.Vtx.Pos.Y(), VtxZ: p.Vtx.Pos.Z(), VtxT: p.Vtx.Time,
		EndX: p.EndPt.Pos.X(), EndY: p.EndPt.Pos.Y(), EndZ: p.EndPt.Pos.Z(), EndT: p.EndPt.Time,

		DistTravel:    p.DistTravel,
		EnergyInit:    p.EnergyInit,
		EnergyDeposit: p.EnergyDeposit,
		Process:       p.Process,

		ParentTrackID:   p.ParentTrackID,
		ParentID:        p.ParentID,
		AncestorTrackID: p.AncestorTrackID,
		AncestorID:      p.AncestorID,

		GroupID:       p.GroupID,
		InteractionID: p.InteractionID,

		NumVoxels: label.Size(),
	}
}

// rowsForEvent flattens every particle in out into rows tagged eventID.
func rowsForEvent(eventID uint64, out *event.EventOutput) []ParticleRow {
	rows := make([]ParticleRow, 0, len(out.Particles))
	for _, label := range out.Particles {
		rows = append(rows, toRow(eventID, label))
	}
	return rows
}
