// Package config loads and validates the YAML run configuration for
// the BBox selector and labeling engine, following the teacher's
// typed-struct-tree-plus-embedded-defaults shape.
package config

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zhulcher/supera-atomic/bboxselect"
	"github.com/zhulcher/supera-atomic/event"
	"github.com/zhulcher/supera-atomic/labeling"
	"github.com/zhulcher/supera-atomic/logging"
	"github.com/zhulcher/supera-atomic/superaerr"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// BBoxConfig is the YAML shape of bboxselect.Config.
type BBoxConfig struct {
	BoxSize       [3]float64 `yaml:"box_size"`
	VoxelSize     [3]float64 `yaml:"voxel_size"`
	BBoxBottom    []float64  `yaml:"bbox_bottom,omitempty"`
	WorldBoundMin [3]float64 `yaml:"world_bound_min"`
	WorldBoundMax [3]float64 `yaml:"world_bound_max"`
	Seed          int64      `yaml:"seed"`
}

// LabelConfig is the YAML shape of labeling.Config.
type LabelConfig struct {
	SemanticPriority       []string   `yaml:"semantic_priority"`
	TouchDistance          uint64     `yaml:"touch_distance"`
	EnergyDepositThreshold float64    `yaml:"energy_deposit_threshold"`
	DeltaSize              int        `yaml:"delta_size"`
	ComptonSize            int        `yaml:"compton_size"`
	LEScatterSize          int        `yaml:"le_scatter_size"`
	StoreLEScatter         bool       `yaml:"store_le_scatter"`
	RewriteInteractionID   bool       `yaml:"rewrite_interaction_id"`
	EnableIonizationMerge  bool       `yaml:"enable_ionization_merge"`
	WorldBoundMin          [3]float64 `yaml:"world_bound_min"`
	WorldBoundMax          [3]float64 `yaml:"world_bound_max"`
}

// Config is the full run configuration: one document per run.
type Config struct {
	LogLevel       string      `yaml:"log_level"`
	BBoxAlgorithm  string      `yaml:"bbox_algorithm"`
	BBox           BBoxConfig  `yaml:"bbox"`
	LabelAlgorithm string      `yaml:"label_algorithm"`
	Label          LabelConfig `yaml:"label"`
}

// Load reads path, merging it over the embedded defaults; an empty
// path uses the defaults outright.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadBytes(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, superaerr.Configf("reading config file %q: %v", path, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses data over the embedded defaults, then validates
// the result. A nil/empty data leaves the defaults untouched.
func LoadBytes(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, superaerr.Configf("parsing embedded defaults: %v", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, superaerr.Configf("parsing config document: %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field this package cannot otherwise catch
// before it reaches bboxselect/labeling, so a malformed run config
// fails immediately rather than partway through the first event.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return superaerr.Configf("log_level: %v", err)
	}
	switch c.BBoxAlgorithm {
	case "BBoxInteraction", "BBoxFixed":
	default:
		return superaerr.Configf("unrecognized bbox_algorithm %q", c.BBoxAlgorithm)
	}
	if c.BBoxAlgorithm == "BBoxFixed" && len(c.BBox.BBoxBottom) != 3 {
		return superaerr.Configf("bbox_algorithm BBoxFixed requires a 3-element bbox.bbox_bottom")
	}
	if len(c.BBox.BBoxBottom) != 0 && len(c.BBox.BBoxBottom) != 3 {
		return superaerr.Configf("bbox.bbox_bottom must have exactly 3 elements, got %d", len(c.BBox.BBoxBottom))
	}
	switch c.LabelAlgorithm {
	case "LArTPCMLReco3D":
	default:
		return superaerr.Configf("unrecognized label_algorithm %q", c.LabelAlgorithm)
	}
	for _, name := range c.Label.SemanticPriority {
		if _, ok := event.ParseSemanticType(name); !ok {
			return superaerr.Configf("label.semantic_priority: unrecognized semantic type %q", name)
		}
	}
	for a := 0; a < 3; a++ {
		if c.BBox.BoxSize[a] <= 0 || c.BBox.VoxelSize[a] <= 0 {
			return superaerr.Configf("bbox.box_size and bbox.voxel_size must be positive on every axis")
		}
	}
	if _, err := c.bboxConfig(); err != nil {
		return err
	}
	lcfg, err := c.labelConfig()
	if err != nil {
		return err
	}
	// NewEngine rejects duplicate and unsupported semantic_priority entries.
	if _, err := labeling.NewEngine(lcfg, nil); err != nil {
		return err
	}
	return nil
}

// bboxConfig converts the YAML BBoxConfig into bboxselect.Config.
func (c *Config) bboxConfig() (bboxselect.Config, error) {
	cfg := bboxselect.Config{
		BoxSize:       c.BBox.BoxSize,
		VoxelSize:     c.BBox.VoxelSize,
		WorldMin:      c.BBox.WorldBoundMin,
		WorldMax:      c.BBox.WorldBoundMax,
		Seed:          c.BBox.Seed,
		HasBBoxBottom: len(c.BBox.BBoxBottom) == 3,
	}
	if cfg.HasBBoxBottom {
		cfg.BBoxBottom = [3]float64{c.BBox.BBoxBottom[0], c.BBox.BBoxBottom[1], c.BBox.BBoxBottom[2]}
	}
	return cfg, nil
}

// labelConfig converts the YAML LabelConfig into labeling.Config.
func (c *Config) labelConfig() (labeling.Config, error) {
	priority := make([]event.SemanticType, 0, len(c.Label.SemanticPriority))
	for _, name := range c.Label.SemanticPriority {
		t, ok := event.ParseSemanticType(name)
		if !ok {
			return labeling.Config{}, superaerr.Configf("label.semantic_priority: unrecognized semantic type %q", name)
		}
		priority = append(priority, t)
	}
	return labeling.Config{
		SemanticPriority:       priority,
		TouchDistance:          c.Label.TouchDistance,
		EnergyDepositThreshold: c.Label.EnergyDepositThreshold,
		DeltaSize:              c.Label.DeltaSize,
		ComptonSize:            c.Label.ComptonSize,
		LEScatterSize:          c.Label.LEScatterSize,
		StoreLEScatter:         c.Label.StoreLEScatter,
		RewriteInteractionID:   c.Label.RewriteInteractionID,
		EnableIonizationMerge:  c.Label.EnableIonizationMerge,
		WorldBoundMin:          c.Label.WorldBoundMin,
		WorldBoundMax:          c.Label.WorldBoundMax,
	}, nil
}

// BuildBBoxConfig returns the bboxselect.Config this document
// describes. Call after Validate (Load/LoadBytes already do).
func (c *Config) BuildBBoxConfig() (bboxselect.Config, error) { return c.bboxConfig() }

// BuildLabelConfig returns the labeling.Config this document
// describes. Call after Validate (Load/LoadBytes already do).
func (c *Config) BuildLabelConfig() (labeling.Config, error) { return c.labelConfig() }

// BuildLogger returns a DefaultLogger thresholded per LogLevel.
func (c *Config) BuildLogger(prefix string) (*logging.DefaultLogger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, superaerr.Configf("log_level: %v", err)
	}
	return logging.NewDefaultLogger(prefix, level), nil
}
