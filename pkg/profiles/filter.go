package profiles

import (
	"github.com/gnames/mtreps/pkg/schema"
)

// FilterStats counts what happened to the ids of one source.
type FilterStats struct {
	// Rows is the number of representatives rows processed.
	Rows int `json:"rows"`
	// Input is the number of ids before filtering.
	Input int `json:"input"`
	// Remapped is the number of source-local ids replaced by accessions.
	Remapped int `json:"remapped"`
	// Dropped is the number of ids absent from the source metadata.
	Dropped int `json:"dropped"`
	// Kept is the number of ids that survived filtering.
	Kept int `json:"kept"`
}

// FilterTable restricts every row of reps to accessions of meta.
// If meta is keyed by a source-local id, ids are remapped to accessions
// first. Rows keep their order and stay in the result even when all
// their ids are dropped. The input slice is not modified.
func FilterTable(
	reps []schema.RepresentativesRow,
	meta *schema.MetadataTable,
) ([]schema.RepresentativesRow, FilterStats) {
	valid := meta.Accessions()
	idMap := meta.IDMap()

	stats := FilterStats{Rows: len(reps)}
	res := make([]schema.RepresentativesRow, len(reps))
	for i, row := range reps {
		ids := row.Profiles
		stats.Input += len(ids)
		if idMap != nil {
			var n int
			ids, n = Remap(ids, idMap)
			stats.Remapped += n
		}
		kept, dropped := Filter(ids, valid)
		stats.Dropped += dropped
		stats.Kept += len(kept)
		res[i] = schema.RepresentativesRow{Motif: row.Motif, Profiles: kept}
	}
	return res, stats
}
