package profiles

import (
	"maps"
	"slices"

	"github.com/gnames/mtreps/pkg/schema"
)

// Merge performs a full outer join of representatives tables on motif.
// Every motif of any table appears exactly once in the result. Its
// profiles are the union of all ids given for that motif, without
// duplicates and sorted lexicographically. Result rows are sorted by
// motif, so the output depends only on the input values.
func Merge(tables ...[]schema.RepresentativesRow) []schema.RepresentativesRow {
	union := make(map[string]map[string]struct{})
	for _, table := range tables {
		for _, row := range table {
			set, ok := union[row.Motif]
			if !ok {
				set = make(map[string]struct{})
				union[row.Motif] = set
			}
			for _, id := range row.Profiles {
				set[id] = struct{}{}
			}
		}
	}

	motifs := slices.Sorted(maps.Keys(union))
	res := make([]schema.RepresentativesRow, len(motifs))
	for i, motif := range motifs {
		res[i] = schema.RepresentativesRow{
			Motif:    motif,
			Profiles: slices.Sorted(maps.Keys(union[motif])),
		}
	}
	return res
}

// AccessionsNum returns the total number of ids over all rows.
func AccessionsNum(rows []schema.RepresentativesRow) int {
	var res int
	for _, v := range rows {
		res += len(v.Profiles)
	}
	return res
}
