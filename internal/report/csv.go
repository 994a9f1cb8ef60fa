package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/UnknownOlympus/geocmp/internal/models"
)

// CSVWriter prints comma-joined rows. The address cell is written as is,
// so an address containing commas spills into extra columns.
type CSVWriter struct {
	out           io.Writer
	mode          Mode
	names         []string
	headerWritten bool
}

// NewCSVWriter creates a CSVWriter for the given sorted provider names.
func NewCSVWriter(out io.Writer, mode Mode, names []string) *CSVWriter {
	return &CSVWriter{out: out, mode: mode, names: names}
}

// WriteRow writes the header before the first row, then the row itself.
func (w *CSVWriter) WriteRow(address string, results map[string]models.ComparisonResult) error {
	if !w.headerWritten {
		if err := w.writeLine(Header(w.names)); err != nil {
			return err
		}
		w.headerWritten = true
	}

	return w.writeLine(Cells(w.mode, w.names, address, results))
}

// Flush is a no-op; rows are written as they arrive.
func (w *CSVWriter) Flush() error {
	return nil
}

func (w *CSVWriter) writeLine(cells []string) error {
	if _, err := fmt.Fprintln(w.out, strings.Join(cells, ",")); err != nil {
		return fmt.Errorf("failed to write csv line: %w", err)
	}

	return nil
}
