package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/zhulcher/supera-atomic/config"
	"github.com/zhulcher/supera-atomic/event"
	"github.com/zhulcher/supera-atomic/geom"
)

func writeEventFile(t *testing.T, dir, name string) string {
	t.Helper()
	p := event.NewParticle()
	p.TrackID, p.ParentTrackID, p.PDG, p.Type = 1, 1, 13, event.Primary
	pin := event.NewParticleInput(p)
	for i := 0; i < 10; i++ {
		pin.PCloud = append(pin.PCloud, geom.NewEDep(10+float64(i), 1, 1, float64(i), 1.0, 1))
	}
	in := event.EventInput{Particles: []event.ParticleInput{pin}}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestListEventFilesFiltersJSONAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeEventFile(t, dir, "b.json")
	writeEventFile(t, dir, "a.json")
	os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("x"), 0644)

	files, err := listEventFiles(dir)
	if err != nil {
		t.Fatalf("listEventFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if filepath.Base(files[0]) != "a.json" || filepath.Base(files[1]) != "b.json" {
		t.Errorf("files not sorted: %v", files)
	}
}

func TestProcessOneEventProducesLabeledOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeEventFile(t, dir, "event0.json")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	rcfg, err := buildRunConfig(cfg)
	if err != nil {
		t.Fatalf("buildRunConfig: %v", err)
	}

	out, err := processOneEvent(path, rcfg)
	if err != nil {
		t.Fatalf("processOneEvent: %v", err)
	}
	if len(out.Particles) != 1 {
		t.Fatalf("len(Particles) = %d, want 1", len(out.Particles))
	}
}

func TestOpenSinkRejectsUnknownFormat(t *testing.T) {
	if _, err := openSink("xml", filepath.Join(t.TempDir(), "out"), nil); err == nil {
		t.Fatalf("expected an error for an unrecognized format")
	}
}
