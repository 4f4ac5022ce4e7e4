package catalog

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/zhulcher/supera-atomic/event"
)

// CSVSink writes the particle catalog to a single CSV file, one row
// per output particle per event. Events with no particles write
// nothing; headers are written once, on the first WriteEvent call
// that has rows to write.
type CSVSink struct {
	file          *os.File
	headerWritten bool
}

// NewCSVSink creates (or truncates) path and returns a sink writing
// to it.
func NewCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &CSVSink{file: f}, nil
}

// WriteEvent appends eventID's particles as CSV rows.
func (s *CSVSink) WriteEvent(eventID uint64, out *event.EventOutput) error {
	rows := rowsForEvent(eventID, out)
	if len(rows) == 0 {
		return nil
	}
	if !s.headerWritten {
		if err := gocsv.Marshal(rows, s.file); err != nil {
			return fmt.Errorf("writing csv rows: %w", err)
		}
		s.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, s.file); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (s *CSVSink) Close() error {
	return s.file.Close()
}
