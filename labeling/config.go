// Package labeling implements the particle-labeling engine: the
// 8-phase graph-rewriting pipeline that turns per-particle truth and
// raw energy depositions into a merged particle catalog and the
// per-voxel energy/semantic tensors built from it.
package labeling

import (
	"math"

	"github.com/zhulcher/supera-atomic/event"
	"github.com/zhulcher/supera-atomic/superaerr"
)

// Config parameterizes the labeling pipeline.
type Config struct {
	// SemanticPriority ranks semantic types, highest priority first.
	// NewEngine rejects duplicate or unsupported entries and keeps a
	// copy with omitted types appended in their declaration order;
	// Generate does not use it. The per-voxel tie-break is applied by
	// event.EventOutput.VoxelLabels with the list its caller passes,
	// and the order of output particles does not depend on it.
	SemanticPriority []event.SemanticType

	// TouchDistance is the max per-axis voxel-index difference for two
	// voxel sets to be considered touching.
	TouchDistance uint64
	// EnergyDepositThreshold drops voxels with less than this much
	// deposited energy.
	EnergyDepositThreshold float64
	// DeltaSize is the minimum number of unique voxels a delta ray
	// must contribute to survive as its own label.
	DeltaSize int
	// ComptonSize is the voxel count a Compton/conversion fragment must
	// exceed to be classified as a Shower rather than LEScatter.
	ComptonSize int
	// LEScatterSize is the max voxel count for an LEScatter fragment
	// to be eligible for merging into a touching non-LEScatter group.
	LEScatterSize int
	// StoreLEScatter controls whether LEScatter particles survive as
	// their own output labels, or are folded silently into the
	// unassociated-energy tensor.
	StoreLEScatter bool
	// RewriteInteractionID re-derives interaction ids from ancestor
	// vertices; when false, upstream-assigned ids are left alone.
	RewriteInteractionID bool
	// EnableIonizationMerge turns on the (by-default-disabled)
	// ionization-electron merge pass.
	EnableIonizationMerge bool

	WorldBoundMin [3]float64
	WorldBoundMax [3]float64
}

// DefaultConfig returns the engine's stock configuration.
func DefaultConfig() Config {
	return Config{
		TouchDistance:          1,
		EnergyDepositThreshold: 0.01,
		DeltaSize:              3,
		ComptonSize:            10,
		LEScatterSize:          2,
		StoreLEScatter:         true,
		RewriteInteractionID:   true,
		EnableIonizationMerge:  false,
		WorldBoundMin:          [3]float64{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
		WorldBoundMax:          [3]float64{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
	}
}

// allSemanticTypes lists every classifiable semantic type in priority
// fill-in order (Unknown is a terminal failure state, never a
// candidate for priority ranking).
var allSemanticTypes = []event.SemanticType{
	event.Shower, event.ShapeTrack, event.Michel, event.ShapeDelta, event.LEScatter, event.Ghost,
}

// resolveSemanticPriority validates an explicit priority order and
// appends any omitted types afterward, so the returned slice always
// contains every classifiable type exactly once.
func resolveSemanticPriority(order []event.SemanticType) ([]event.SemanticType, error) {
	assigned := make(map[event.SemanticType]bool, len(allSemanticTypes))
	result := make([]event.SemanticType, 0, len(allSemanticTypes))
	for _, t := range order {
		valid := false
		for _, want := range allSemanticTypes {
			if t == want {
				valid = true
				break
			}
		}
		if !valid {
			return nil, superaerr.Configf("SemanticPriority received an unsupported semantic type %v", t)
		}
		if assigned[t] {
			return nil, superaerr.Configf("duplicate SemanticPriority entry for type %v", t)
		}
		assigned[t] = true
		result = append(result, t)
	}
	for _, t := range allSemanticTypes {
		if !assigned[t] {
			result = append(result, t)
		}
	}
	if len(result) != len(allSemanticTypes) {
		return nil, superaerr.Logicf("semantic priority resolution produced %d entries, want %d", len(result), len(allSemanticTypes))
	}
	return result, nil
}
