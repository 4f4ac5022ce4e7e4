// Package bboxselect derives the fixed voxel grid ("image meta") that
// an event's energy depositions will be binned into, either by
// centering a fixed-size box on the event's active region or by
// using an operator-supplied fixed box outright.
package bboxselect

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/zhulcher/supera-atomic/event"
	"github.com/zhulcher/supera-atomic/geom"
	"github.com/zhulcher/supera-atomic/superaerr"
	"github.com/zhulcher/supera-atomic/voxel"
)

// Config parameterizes bounding-box derivation.
type Config struct {
	// BoxSize is the fixed (x,y,z) extent of the generated box.
	BoxSize [3]float64
	// VoxelSize is the (x,y,z) edge length of a single voxel.
	VoxelSize [3]float64
	// BBoxBottom, if set (HasBBoxBottom true), fixes the box's
	// minimum corner outright instead of deriving it from the event.
	BBoxBottom    [3]float64
	HasBBoxBottom bool
	// WorldMin/WorldMax bound the region the active-region derivation
	// is allowed to center within. DefaultConfig sets them to
	// -/+math.MaxFloat64, i.e. effectively unbounded.
	WorldMin [3]float64
	WorldMax [3]float64
	// Seed drives the jitter draw when the active region is larger
	// than BoxSize on some axis. A negative seed means "derive from
	// the current time", matching the original engine's behavior.
	Seed int64
}

// DefaultConfig returns a Config with an unbounded world and no fixed
// bottom corner — the caller must still set BoxSize/VoxelSize.
func DefaultConfig() Config {
	return Config{
		WorldMin: [3]float64{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
		WorldMax: [3]float64{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		Seed:     -1,
	}
}

// Generate derives the ImageMeta3D grid for data according to cfg.
// When cfg.HasBBoxBottom is set, the box is placed exactly there.
// Otherwise the box is centered on the overlap between the event's
// active region (the bounding box of every energy deposition) and the
// configured world bounds, jittering the center within any axis on
// which the active region exceeds BoxSize.
func Generate(cfg Config, data *event.EventInput) (voxel.ImageMeta3D, error) {
	if cfg.VoxelSize[0] <= 0 || cfg.VoxelSize[1] <= 0 || cfg.VoxelSize[2] <= 0 {
		return voxel.ImageMeta3D{}, superaerr.Configf("voxel size must be set and positive on every axis")
	}
	if cfg.BoxSize[0] <= 0 || cfg.BoxSize[1] <= 0 || cfg.BoxSize[2] <= 0 {
		return voxel.ImageMeta3D{}, superaerr.Configf("box size must be set and positive on every axis")
	}

	xnum := uint64(cfg.BoxSize[0] / cfg.VoxelSize[0])
	ynum := uint64(cfg.BoxSize[1] / cfg.VoxelSize[1])
	znum := uint64(cfg.BoxSize[2] / cfg.VoxelSize[2])

	if cfg.HasBBoxBottom {
		box := geom.NewBBox3D(
			cfg.BBoxBottom[0], cfg.BBoxBottom[1], cfg.BBoxBottom[2],
			cfg.BBoxBottom[0]+cfg.BoxSize[0], cfg.BBoxBottom[1]+cfg.BoxSize[1], cfg.BBoxBottom[2]+cfg.BoxSize[2],
		)
		return voxel.NewImageMeta3D(box, xnum, ynum, znum), nil
	}

	activeMin := [3]float64{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}
	activeMax := [3]float64{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	for _, p := range data.Particles {
		for _, pt := range p.PCloud {
			activeMin[0] = math.Min(activeMin[0], pt.Pos.X())
			activeMin[1] = math.Min(activeMin[1], pt.Pos.Y())
			activeMin[2] = math.Min(activeMin[2], pt.Pos.Z())
			activeMax[0] = math.Max(activeMax[0], pt.Pos.X())
			activeMax[1] = math.Max(activeMax[1], pt.Pos.Y())
			activeMax[2] = math.Max(activeMax[2], pt.Pos.Z())
		}
	}
	for _, pt := range data.UnassociatedEDeps {
		activeMin[0] = math.Min(activeMin[0], pt.Pos.X())
		activeMin[1] = math.Min(activeMin[1], pt.Pos.Y())
		activeMin[2] = math.Min(activeMin[2], pt.Pos.Z())
		activeMax[0] = math.Max(activeMax[0], pt.Pos.X())
		activeMax[1] = math.Max(activeMax[1], pt.Pos.Y())
		activeMax[2] = math.Max(activeMax[2], pt.Pos.Z())
	}

	if activeMin[0] > activeMax[0] {
		return voxel.ImageMeta3D{}, superaerr.NoDataf("no energy depositions to derive a bounding box from")
	}

	var minPt, maxPt [3]float64
	for a := 0; a < 3; a++ {
		minPt[a] = math.Max(cfg.WorldMin[a], activeMin[a])
		maxPt[a] = math.Min(cfg.WorldMax[a], activeMax[a])
		if minPt[a] > maxPt[a] {
			return voxel.ImageMeta3D{}, superaerr.Dataf("active region does not overlap the configured world bounds on axis %d", a)
		}
	}

	center := [3]float64{
		minPt[0] + (maxPt[0]-minPt[0])/2.,
		minPt[1] + (maxPt[1]-minPt[1])/2.,
		minPt[2] + (maxPt[2]-minPt[2])/2.,
	}

	src := rand.NewSource(seedValue(cfg.Seed))
	for a := 0; a < 3; a++ {
		if maxPt[a]-minPt[a] > cfg.BoxSize[a] {
			offset := (maxPt[a] - minPt[a]) / 2.
			jitter := distuv.Uniform{Min: -offset, Max: offset, Src: src}
			center[a] += jitter.Rand()
		}
	}

	box := geom.NewBBox3D(
		center[0]-cfg.BoxSize[0]/2., center[1]-cfg.BoxSize[1]/2., center[2]-cfg.BoxSize[2]/2.,
		center[0]+cfg.BoxSize[0]/2., center[1]+cfg.BoxSize[1]/2., center[2]+cfg.BoxSize[2]/2.,
	)
	return voxel.NewImageMeta3D(box, xnum, ynum, znum), nil
}

func seedValue(seed int64) int64 {
	if seed >= 0 {
		return seed
	}
	return timeSeed()
}
