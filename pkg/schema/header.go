package schema

import (
	"fmt"
	"strings"
)

// Header maps column names to their positions.
type Header map[string]int

// NewHeader creates a Header from the first row of a table.
// Names are trimmed; a repeated name keeps its first position.
func NewHeader(row []string) Header {
	res := make(Header, len(row))
	for i, v := range row {
		v = strings.TrimSpace(v)
		if _, ok := res[v]; ok {
			continue
		}
		res[v] = i
	}
	return res
}

// Require returns an error listing every required column that is absent.
func (h Header) Require(cols ...string) error {
	var missing []string
	for _, v := range cols {
		if _, ok := h[v]; !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required column(s): %s",
			strings.Join(missing, ", "))
	}
	return nil
}

// Value returns the trimmed value of the column in a row, or an empty
// string if the column is absent or the row is too short.
func (h Header) Value(row []string, col string) string {
	idx, ok := h[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// RepresentativesHeader is the header of filtered and merged
// representatives tables.
func RepresentativesHeader() []string {
	return []string{ColMotif, ColProfiles}
}

// LegacyHeader is the declared header of the legacy representatives export.
func LegacyHeader() []string {
	return []string{ColMotif, ColNumProfiles, ColProfiles}
}
