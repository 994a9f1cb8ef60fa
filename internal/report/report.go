// Package report renders comparison results as one row per address.
package report

import (
	"strconv"

	"github.com/UnknownOlympus/geocmp/internal/models"
)

// Mode selects what each provider cell shows.
type Mode int

const (
	// ModePassFail prints Y or N.
	ModePassFail Mode = iota
	// ModeDistances prints the distance from the reference in meters.
	ModeDistances
	// ModeLocations prints the provider's "lat,lng".
	ModeLocations
)

// NotAvailable fills cells whose value is unknown.
const NotAvailable = "NA"

// AddressColumn is the name of the last column.
const AddressColumn = "address"

// ModeFromFlags maps the command-line switches to a Mode.
// Distances win when both switches are set.
func ModeFromFlags(showDistances, showLocations bool) Mode {
	switch {
	case showDistances:
		return ModeDistances
	case showLocations:
		return ModeLocations
	default:
		return ModePassFail
	}
}

// Header returns the column names for the given providers.
func Header(names []string) []string {
	header := make([]string, 0, len(names)+1)
	header = append(header, names...)

	return append(header, AddressColumn)
}

// Cells renders one row: a cell per provider in names order, then the address.
func Cells(mode Mode, names []string, address string, results map[string]models.ComparisonResult) []string {
	cells := make([]string, 0, len(names)+1)
	for _, name := range names {
		cells = append(cells, Cell(mode, results[name]))
	}

	return append(cells, address)
}

// Cell renders a single provider result.
func Cell(mode Mode, result models.ComparisonResult) string {
	switch mode {
	case ModeDistances:
		if result.Distance == nil {
			return NotAvailable
		}
		return formatFloat(*result.Distance)
	case ModeLocations:
		if result.Location == nil {
			return NotAvailable
		}
		return `"` + formatFloat(result.Location.Latitude) + "," + formatFloat(result.Location.Longitude) + `"`
	default:
		if result.Passed {
			return "Y"
		}
		return "N"
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
