package labeling

import (
	"github.com/zhulcher/supera-atomic/event"
	"github.com/zhulcher/supera-atomic/geom"
	"github.com/zhulcher/supera-atomic/logging"
	"github.com/zhulcher/supera-atomic/particleindex"
	"github.com/zhulcher/supera-atomic/voxel"
)

// Engine runs the 8-phase labeling pipeline over one event at a time.
type Engine struct {
	cfg      Config
	priority []event.SemanticType
	log      logging.Logger

	worldBounds geom.BBox3D
}

// NewEngine validates cfg and returns a ready-to-use Engine.
func NewEngine(cfg Config, log logging.Logger) (*Engine, error) {
	priority, err := resolveSemanticPriority(cfg.SemanticPriority)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Engine{
		cfg:      cfg,
		priority: priority,
		log:      log,
		worldBounds: geom.NewBBox3D(
			cfg.WorldBoundMin[0], cfg.WorldBoundMin[1], cfg.WorldBoundMin[2],
			cfg.WorldBoundMax[0], cfg.WorldBoundMax[1], cfg.WorldBoundMax[2],
		),
	}, nil
}

// Generate runs the full pipeline over data binned onto meta,
// producing the merged particle catalog and voxel tensors.
func (e *Engine) Generate(data *event.EventInput, meta *voxel.ImageMeta3D) (*event.EventOutput, error) {
	e.log.Debugf("starting Generate over %d input particles", len(data.Particles))

	idx, err := particleindex.Build(data)
	if err != nil {
		return nil, err
	}

	labels, err := e.initializeLabels(data, meta, idx)
	if err != nil {
		return nil, err
	}

	if e.cfg.EnableIonizationMerge {
		if err := e.mergeShowerIonizations(labels, idx); err != nil {
			return nil, err
		}
	}

	if err := e.mergeShowerTouchingElectron(meta, labels, idx); err != nil {
		return nil, err
	}

	if err := e.applyEnergyThreshold(labels); err != nil {
		return nil, err
	}

	if err := e.setSemanticType(labels); err != nil {
		return nil, err
	}

	if err := e.mergeShowerConversion(labels, idx); err != nil {
		return nil, err
	}
	if err := e.mergeShowerFamilyTouching(meta, labels, idx); err != nil {
		return nil, err
	}
	if err := e.mergeShowerTouching(meta, labels, idx); err != nil {
		return nil, err
	}
	if err := e.mergeShowerTouchingLEScatter(meta, labels, idx); err != nil {
		return nil, err
	}
	if err := e.mergeDeltas(labels, idx); err != nil {
		return nil, err
	}

	for _, label := range labels {
		if !label.Valid {
			continue
		}
		if label.Part.Type == event.Photon && label.Size() < e.cfg.ComptonSize {
			label.Part.Shape = event.LEScatter
		}
	}

	output2trackid, err := e.registerOutputParticles(labels, idx)
	if err != nil {
		return nil, err
	}

	if err := e.setGroupID(labels, idx); err != nil {
		return nil, err
	}
	if err := e.setAncestorAttributes(labels, idx); err != nil {
		return nil, err
	}
	if e.cfg.RewriteInteractionID {
		e.setInteractionID(labels)
	}

	unass := voxel.NewVoxelSet(len(data.UnassociatedEDeps))
	invalidCount := 0
	for _, edep := range data.UnassociatedEDeps {
		voxID := meta.ID(edep.Pos)
		if voxID == voxel.InvalidID {
			invalidCount++
			continue
		}
		unass.Emplace(voxID, edep.E, true)
	}
	if invalidCount > 0 {
		e.log.Warnf("%d/%d unassociated packets are ignored (outside BBox)", invalidCount, len(data.UnassociatedEDeps))
	}

	return e.buildOutputLabels(labels, idx, output2trackid, unass)
}
