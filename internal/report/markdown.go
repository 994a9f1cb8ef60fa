package report

import (
	"fmt"
	"io"

	"github.com/UnknownOlympus/geocmp/internal/models"
	"github.com/nao1215/markdown"
)

// MarkdownWriter buffers rows and renders them as a single markdown table on Flush.
type MarkdownWriter struct {
	out   io.Writer
	mode  Mode
	names []string
	rows  [][]string
}

// NewMarkdownWriter creates a MarkdownWriter for the given sorted provider names.
func NewMarkdownWriter(out io.Writer, mode Mode, names []string) *MarkdownWriter {
	return &MarkdownWriter{out: out, mode: mode, names: names}
}

// WriteRow buffers one row.
func (w *MarkdownWriter) WriteRow(address string, results map[string]models.ComparisonResult) error {
	w.rows = append(w.rows, Cells(w.mode, w.names, address, results))

	return nil
}

// Flush renders the table. Nothing is written when no rows were collected.
func (w *MarkdownWriter) Flush() error {
	if len(w.rows) == 0 {
		return nil
	}

	md := markdown.NewMarkdown(w.out)
	md.Table(markdown.TableSet{
		Header: Header(w.names),
		Rows:   w.rows,
	})

	if err := md.Build(); err != nil {
		return fmt.Errorf("failed to write markdown table: %w", err)
	}

	return nil
}
