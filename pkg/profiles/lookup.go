package profiles

import (
	"github.com/gnames/mtreps/pkg/schema"
)

// Lookup gives accessions of a motif. Tree serializers use it to embed
// sample accessions into haplogroup nodes.
type Lookup map[string][]string

// NewLookup creates a Lookup from representatives rows.
// Rows with the same motif are concatenated.
func NewLookup(rows []schema.RepresentativesRow) Lookup {
	res := make(Lookup, len(rows))
	for _, v := range rows {
		ids, ok := res[v.Motif]
		if !ok {
			ids = []string{}
		}
		res[v.Motif] = append(ids, v.Profiles...)
	}
	return res
}

// Get returns accessions of a motif. Unknown motifs give an empty slice.
func (l Lookup) Get(motif string) []string {
	if res, ok := l[motif]; ok {
		return res
	}
	return []string{}
}
