package catalog

import "github.com/zhulcher/supera-atomic/event"

// Sink accepts one event's labeling output at a time and persists it.
// CSVSink, SQLiteSink and JSONSink all implement it.
type Sink interface {
	WriteEvent(eventID uint64, out *event.EventOutput) error
	Close() error
}
