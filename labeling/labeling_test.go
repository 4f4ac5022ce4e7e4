package labeling

import (
	"testing"

	"github.com/zhulcher/supera-atomic/event"
	"github.com/zhulcher/supera-atomic/geom"
	"github.com/zhulcher/supera-atomic/voxel"
)

func testMeta() *voxel.ImageMeta3D {
	box := geom.NewBBox3D(0, 0, 0, 100, 100, 100)
	m := voxel.NewImageMeta3D(box, 100, 100, 100)
	return &m
}

func edepAt(x, y, z, t, e float64) geom.EDep {
	return geom.NewEDep(x, y, z, t, e, 1)
}

func primaryMuon(trackid uint64, edeps []geom.EDep) event.ParticleInput {
	p := event.NewParticle()
	p.TrackID = trackid
	p.ParentTrackID = trackid
	p.PDG = 13
	p.Type = event.Primary
	pin := event.NewParticleInput(p)
	pin.PCloud = edeps
	return pin
}

func childParticle(trackid, parentTrackID uint64, pdg int32, ptype event.ProcessType, edeps []geom.EDep) event.ParticleInput {
	p := event.NewParticle()
	p.TrackID = trackid
	p.ParentTrackID = parentTrackID
	p.PDG = pdg
	p.Type = ptype
	pin := event.NewParticleInput(p)
	pin.PCloud = edeps
	return pin
}

func manyEDeps(n int, startX float64) []geom.EDep {
	out := make([]geom.EDep, n)
	for i := 0; i < n; i++ {
		out[i] = edepAt(startX+float64(i), 1, 1, float64(i), 1.0)
	}
	return out
}

func TestGenerateSinglePrimaryMuon(t *testing.T) {
	eng, err := NewEngine(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	data := &event.EventInput{Particles: []event.ParticleInput{
		primaryMuon(1, manyEDeps(20, 10)),
	}}
	out, err := eng.Generate(data, testMeta())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out.Particles) != 1 {
		t.Fatalf("len(out.Particles) = %d, want 1", len(out.Particles))
	}
	if out.Particles[0].Part.Shape != event.ShapeTrack {
		t.Errorf("shape = %v, want Track", out.Particles[0].Part.Shape)
	}
	if out.Particles[0].Part.GroupID != 0 {
		t.Errorf("group id = %d, want 0", out.Particles[0].Part.GroupID)
	}
}

func TestGenerateComptonMergesIntoAncestorShower(t *testing.T) {
	eng, err := NewEngine(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	// A photon primary, with a small Compton-scattered electron child
	// too small to stand on its own and touching the parent shower.
	data := &event.EventInput{Particles: []event.ParticleInput{
		func() event.ParticleInput {
			p := event.NewParticle()
			p.TrackID, p.ParentTrackID, p.PDG, p.Type = 1, 1, 22, event.Primary
			pin := event.NewParticleInput(p)
			pin.PCloud = manyEDeps(15, 10)
			return pin
		}(),
		childParticle(2, 1, 11, event.Compton, manyEDeps(3, 24)),
	}}
	out, err := eng.Generate(data, testMeta())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out.Particles) != 1 {
		t.Fatalf("len(out.Particles) = %d, want 1 (electron merged into shower)", len(out.Particles))
	}
	if out.Particles[0].Part.Shape != event.Shower {
		t.Errorf("shape = %v, want Shower", out.Particles[0].Part.Shape)
	}
}

func TestGenerateSmallDeltaMergesIntoParentTrack(t *testing.T) {
	eng, err := NewEngine(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	data := &event.EventInput{Particles: []event.ParticleInput{
		primaryMuon(1, manyEDeps(20, 10)),
		childParticle(2, 1, 11, event.Delta, manyEDeps(2, 28)),
	}}
	out, err := eng.Generate(data, testMeta())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out.Particles) != 1 {
		t.Fatalf("len(out.Particles) = %d, want 1 (small delta merged into parent)", len(out.Particles))
	}
}

func TestGenerateUnassociatedEDepsOutsideBBoxAreDropped(t *testing.T) {
	eng, err := NewEngine(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	data := &event.EventInput{
		Particles:         []event.ParticleInput{primaryMuon(1, manyEDeps(20, 10))},
		UnassociatedEDeps: []geom.EDep{edepAt(-5, -5, -5, 0, 3)},
	}
	out, err := eng.Generate(data, testMeta())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out.Particles) != 1 {
		t.Fatalf("len(out.Particles) = %d, want 1", len(out.Particles))
	}
}

func TestGenerateStoreLEScatterFalseFoldsIntoBucket(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StoreLEScatter = false
	eng, err := NewEngine(cfg, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	data := &event.EventInput{Particles: []event.ParticleInput{
		primaryMuon(1, manyEDeps(20, 10)),
		childParticle(2, 1, 11, event.Ionization, manyEDeps(1, 90)),
	}}
	out, err := eng.Generate(data, testMeta())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, p := range out.Particles {
		if p.Part.Shape == event.LEScatter {
			t.Errorf("expected no LEScatter entries in the particle catalog when StoreLEScatter is false")
		}
	}
	if out.UnassociatedVoxels == nil || out.UnassociatedVoxels.Len() == 0 {
		t.Errorf("expected the unregistered LEScatter fragment's energy to land in UnassociatedVoxels")
	}
	if out.VoxelLabels(nil).Len() == 0 {
		t.Errorf("expected VoxelLabels to carry the folded-in LEScatter voxel")
	}
}

func TestIsTouchingOverlapAndDistance(t *testing.T) {
	eng, err := NewEngine(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	meta := testMeta()

	a := voxel.NewVoxelSet(1)
	a.Emplace(meta.ID(geom.NewPoint3D(10, 10, 10)), 1, true)
	b := voxel.NewVoxelSet(1)
	b.Emplace(meta.ID(geom.NewPoint3D(10, 10, 10)), 1, true)
	if !eng.isTouching(meta, a, b) {
		t.Errorf("expected overlapping voxel sets to touch")
	}

	c := voxel.NewVoxelSet(1)
	c.Emplace(meta.ID(geom.NewPoint3D(11, 10, 10)), 1, true)
	if !eng.isTouching(meta, a, c) {
		t.Errorf("expected adjacent voxel sets (distance 1) to touch")
	}

	d := voxel.NewVoxelSet(1)
	d.Emplace(meta.ID(geom.NewPoint3D(50, 50, 50)), 1, true)
	if eng.isTouching(meta, a, d) {
		t.Errorf("expected far-apart voxel sets not to touch")
	}
}

func TestSetInteractionIDDedupsByVertex(t *testing.T) {
	eng, err := NewEngine(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	l1 := event.NewParticleLabel(event.NewParticle())
	l1.Part.AncestorVtx = geom.NewVertex(1, 2, 3, 0)
	l2 := event.NewParticleLabel(event.NewParticle())
	l2.Part.AncestorVtx = geom.NewVertex(1, 2, 3, 0)
	l3 := event.NewParticleLabel(event.NewParticle())
	l3.Part.AncestorVtx = geom.NewVertex(4, 5, 6, 0)

	eng.setInteractionID([]*event.ParticleLabel{l1, l2, l3})

	if l1.Part.InteractionID != l2.Part.InteractionID {
		t.Errorf("same-vertex labels should share an interaction id")
	}
	if l1.Part.InteractionID == l3.Part.InteractionID {
		t.Errorf("distinct-vertex labels should not share an interaction id")
	}
}
