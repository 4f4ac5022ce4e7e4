package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zhulcher/supera-atomic/event"
	"github.com/zhulcher/supera-atomic/voxel"
)

// eventRecord is one newline-delimited JSON record: an event's full
// particle catalog plus its per-voxel energy and semantic tensors.
type eventRecord struct {
	EventID        uint64        `json:"event_id"`
	Particles      []ParticleRow `json:"particles"`
	VoxelEnergies  []voxel.Voxel `json:"voxel_energies"`
	VoxelSemantics []voxel.Voxel `json:"voxel_semantics"`
}

// JSONSink writes one JSON record per event as a line of a
// newline-delimited JSON stream.
type JSONSink struct {
	file     *os.File
	enc      *json.Encoder
	priority []event.SemanticType
}

// NewJSONSink creates (or truncates) path. priority is forwarded to
// EventOutput.VoxelLabels for semantic tie-breaking.
func NewJSONSink(path string, priority []event.SemanticType) (*JSONSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &JSONSink{file: f, enc: json.NewEncoder(f), priority: priority}, nil
}

// WriteEvent appends one JSON line describing eventID's catalog and
// tensors.
func (s *JSONSink) WriteEvent(eventID uint64, out *event.EventOutput) error {
	rec := eventRecord{
		EventID:        eventID,
		Particles:      rowsForEvent(eventID, out),
		VoxelEnergies:  out.VoxelEnergies().AsSlice(),
		VoxelSemantics: out.VoxelLabels(s.priority).AsSlice(),
	}
	if err := s.enc.Encode(rec); err != nil {
		return fmt.Errorf("encoding event %d: %w", eventID, err)
	}
	return nil
}

// Close closes the underlying file.
func (s *JSONSink) Close() error {
	return s.file.Close()
}
