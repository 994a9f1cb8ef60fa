package report

import (
	"fmt"
	"io"

	"github.com/UnknownOlympus/geocmp/internal/models"
)

// Supported output formats.
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Writer receives result rows and renders them to its output.
type Writer interface {
	WriteRow(address string, results map[string]models.ComparisonResult) error
	Flush() error
}

// NewWriter returns the Writer for format.
func NewWriter(format string, out io.Writer, mode Mode, names []string) (Writer, error) {
	switch format {
	case FormatCSV, "":
		return NewCSVWriter(out, mode, names), nil
	case FormatMarkdown:
		return NewMarkdownWriter(out, mode, names), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
