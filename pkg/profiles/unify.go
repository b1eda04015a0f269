package profiles

import (
	"maps"
	"slices"

	"github.com/gnames/mtreps/pkg/schema"
)

// Collision is an accession claimed by more than one metadata row.
type Collision struct {
	Accession string          `json:"accession"`
	Sources   []schema.Source `json:"sources"`
}

// Unify concatenates metadata tables in the given order and tags every
// row with its source. Source-local id columns are dropped. Columns are
// the union of the remaining columns in order of first appearance,
// followed by the source column. Rows are not deduplicated; use
// Collisions to find accessions that appear more than once.
func Unify(tables ...*schema.MetadataTable) *schema.UnifiedMetadata {
	res := &schema.UnifiedMetadata{}
	seen := make(map[string]struct{})
	var rowsNum int
	for _, t := range tables {
		local := t.LocalIDColumn()
		for _, col := range t.Columns {
			if col == local || col == schema.ColSource {
				continue
			}
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			res.Columns = append(res.Columns, col)
		}
		rowsNum += len(t.Rows)
	}
	res.Columns = append(res.Columns, schema.ColSource)

	res.Rows = make([]schema.MetadataRow, 0, rowsNum)
	for _, t := range tables {
		local := t.LocalIDColumn()
		for _, row := range t.Rows {
			attrs := maps.Clone(row.Attrs)
			if local != "" {
				delete(attrs, local)
			}
			delete(attrs, schema.ColSource)
			res.Rows = append(res.Rows, schema.MetadataRow{
				Accession: row.Accession,
				Source:    t.Source,
				Attrs:     attrs,
			})
		}
	}
	return res
}

// Collisions returns accessions that occur in more than one row of the
// unified metadata, sorted by accession. Sources are listed in row
// order, so a source repeats if it contains the same accession twice.
func Collisions(meta *schema.UnifiedMetadata) []Collision {
	bySource := make(map[string][]schema.Source)
	for _, row := range meta.Rows {
		if row.Accession == "" {
			continue
		}
		bySource[row.Accession] = append(bySource[row.Accession], row.Source)
	}

	var res []Collision
	for _, acc := range slices.Sorted(maps.Keys(bySource)) {
		srcs := bySource[acc]
		if len(srcs) < 2 {
			continue
		}
		res = append(res, Collision{Accession: acc, Sources: srcs})
	}
	return res
}
