package config

import (
	"testing"

	"github.com/zhulcher/supera-atomic/logging"
)

func TestLoadBytesNilUsesDefaults(t *testing.T) {
	cfg, err := LoadBytes(nil)
	if err != nil {
		t.Fatalf("LoadBytes(nil): %v", err)
	}
	if cfg.BBoxAlgorithm != "BBoxInteraction" {
		t.Errorf("bbox_algorithm = %q, want BBoxInteraction", cfg.BBoxAlgorithm)
	}
	if cfg.LabelAlgorithm != "LArTPCMLReco3D" {
		t.Errorf("label_algorithm = %q, want LArTPCMLReco3D", cfg.LabelAlgorithm)
	}
	if cfg.BBox.BoxSize != [3]float64{256, 256, 256} {
		t.Errorf("box_size = %v, want [256 256 256]", cfg.BBox.BoxSize)
	}
	if cfg.Label.TouchDistance != 1 {
		t.Errorf("touch_distance = %d, want 1", cfg.Label.TouchDistance)
	}
}

func TestLoadBytesOverlaysDefaults(t *testing.T) {
	cfg, err := LoadBytes([]byte(`
label:
  store_le_scatter: false
  touch_distance: 5
`))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if cfg.Label.StoreLEScatter {
		t.Errorf("store_le_scatter should have been overlaid to false")
	}
	if cfg.Label.TouchDistance != 5 {
		t.Errorf("touch_distance = %d, want 5", cfg.Label.TouchDistance)
	}
	// Untouched defaulted fields should survive the overlay.
	if cfg.BBox.BoxSize != [3]float64{256, 256, 256} {
		t.Errorf("box_size should remain at its default, got %v", cfg.BBox.BoxSize)
	}
	if cfg.Label.DeltaSize != 3 {
		t.Errorf("delta_size should remain at its default, got %d", cfg.Label.DeltaSize)
	}
}

func TestLoadBytesRejectsUnknownBBoxAlgorithm(t *testing.T) {
	_, err := LoadBytes([]byte(`bbox_algorithm: NotARealAlgorithm`))
	if err == nil {
		t.Fatalf("expected an error for an unrecognized bbox_algorithm")
	}
}

func TestLoadBytesRejectsUnknownLabelAlgorithm(t *testing.T) {
	_, err := LoadBytes([]byte(`label_algorithm: NotARealAlgorithm`))
	if err == nil {
		t.Fatalf("expected an error for an unrecognized label_algorithm")
	}
}

func TestLoadBytesRejectsUnknownSemanticType(t *testing.T) {
	_, err := LoadBytes([]byte(`
label:
  semantic_priority: ["NotAType"]
`))
	if err == nil {
		t.Fatalf("expected an error for an unrecognized semantic type in semantic_priority")
	}
}

func TestLoadBytesRejectsBadLogLevel(t *testing.T) {
	_, err := LoadBytes([]byte(`log_level: NOT_A_LEVEL`))
	if err == nil {
		t.Fatalf("expected an error for an unrecognized log_level")
	}
}

func TestBBoxFixedRequiresBBoxBottom(t *testing.T) {
	_, err := LoadBytes([]byte(`bbox_algorithm: BBoxFixed`))
	if err == nil {
		t.Fatalf("expected an error: BBoxFixed requires bbox.bbox_bottom")
	}
}

func TestBBoxFixedWithBBoxBottomSucceeds(t *testing.T) {
	cfg, err := LoadBytes([]byte(`
bbox_algorithm: BBoxFixed
bbox:
  bbox_bottom: [1.0, 2.0, 3.0]
`))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	bcfg, err := cfg.BuildBBoxConfig()
	if err != nil {
		t.Fatalf("BuildBBoxConfig: %v", err)
	}
	if !bcfg.HasBBoxBottom {
		t.Errorf("expected HasBBoxBottom true")
	}
	if bcfg.BBoxBottom != [3]float64{1, 2, 3} {
		t.Errorf("bbox bottom = %v, want [1 2 3]", bcfg.BBoxBottom)
	}
}

func TestBBoxBottomWrongLengthRejected(t *testing.T) {
	_, err := LoadBytes([]byte(`
bbox:
  bbox_bottom: [1.0, 2.0]
`))
	if err == nil {
		t.Fatalf("expected an error for a 2-element bbox_bottom")
	}
}

func TestBuildLabelConfigResolvesSemanticPriority(t *testing.T) {
	cfg, err := LoadBytes([]byte(`
label:
  semantic_priority: ["Track", "Shower"]
`))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	lcfg, err := cfg.BuildLabelConfig()
	if err != nil {
		t.Fatalf("BuildLabelConfig: %v", err)
	}
	if len(lcfg.SemanticPriority) != 2 {
		t.Fatalf("len(SemanticPriority) = %d, want 2", len(lcfg.SemanticPriority))
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.BBoxAlgorithm != "BBoxInteraction" {
		t.Errorf("bbox_algorithm = %q, want BBoxInteraction", cfg.BBoxAlgorithm)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load("/no/such/file.yaml"); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestBuildLoggerRespectsLevel(t *testing.T) {
	cfg, err := LoadBytes([]byte(`log_level: WARNING`))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	log, err := cfg.BuildLogger("test")
	if err != nil {
		t.Fatalf("BuildLogger: %v", err)
	}
	if log == nil {
		t.Fatalf("expected a non-nil logger")
	}
	if log.Threshold() != logging.Warning {
		t.Errorf("Threshold() = %v, want Warning", log.Threshold())
	}
}
