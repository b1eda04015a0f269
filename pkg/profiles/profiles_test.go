package profiles_test

import (
	"testing"

	"github.com/gnames/mtreps/pkg/profiles"
	"github.com/gnames/mtreps/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accSet(accs ...string) schema.AccessionSet {
	res := make(schema.AccessionSet)
	for _, v := range accs {
		res[v] = struct{}{}
	}
	return res
}

func TestRemapIDs(t *testing.T) {
	idMap := schema.IDMap{"S1": "ACC100", "S2": "ACC200"}

	tests := []struct {
		msg, input, res string
	}{
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"all mapped", "S1 S2", "ACC100 ACC200"},
		{"pass through", "S1 X9 S2", "ACC100 X9 ACC200"},
		{"extra spaces", "  S2   S1 ", "ACC200 ACC100"},
		{"accession untouched", "ACC100", "ACC100"},
	}

	for _, v := range tests {
		res := profiles.RemapIDs(v.input, idMap)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestRemapCount(t *testing.T) {
	res, n := profiles.Remap(
		[]string{"S1", "X", "S1"},
		schema.IDMap{"S1": "A1"},
	)
	assert.Equal(t, []string{"A1", "X", "A1"}, res)
	assert.Equal(t, 2, n)

	res, n = profiles.Remap(nil, schema.IDMap{"S1": "A1"})
	assert.NotNil(t, res)
	assert.Empty(t, res)
	assert.Zero(t, n)
}

func TestFilterIDs(t *testing.T) {
	valid := accSet("A1", "A2", "A3")

	tests := []struct {
		msg, input, res string
		dropped         int
	}{
		{"empty", "", "", 0},
		{"blank", " \t ", "", 0},
		{"all valid", "A1 A2", "A1 A2", 0},
		{"keeps order", "A3 A1 A2", "A3 A1 A2", 0},
		{"drops invalid", "A1 B7 A3 B8", "A1 A3", 2},
		{"none valid", "B1 B2", "", 2},
	}

	for _, v := range tests {
		res, dropped := profiles.FilterIDs(v.input, valid)
		assert.Equal(t, v.res, res, v.msg)
		assert.Equal(t, v.dropped, dropped, v.msg)
	}
}

func TestRemapThenFilter(t *testing.T) {
	// S1 maps to a valid accession, S2 maps to an invalid one,
	// ACC5 is unmapped but happens to be valid.
	idMap := schema.IDMap{"S1": "ACC1", "S2": "ACC2"}
	valid := accSet("ACC1", "ACC5")

	remapped := profiles.RemapIDs("S1 S2 ACC5 S9", idMap)
	res, dropped := profiles.FilterIDs(remapped, valid)
	assert.Equal(t, "ACC1 ACC5", res)
	assert.Equal(t, 2, dropped)
}

func TestFilterTable(t *testing.T) {
	meta := &schema.MetadataTable{
		Source:   schema.EMPOP,
		Columns:  []string{"accession", "sample_id"},
		IDColumn: "sample_id",
		Rows: []schema.MetadataRow{
			{Accession: "ACC100", Attrs: map[string]string{
				"accession": "ACC100", "sample_id": "S1"}},
			{Accession: "ACC200", Attrs: map[string]string{
				"accession": "ACC200", "sample_id": "S2"}},
		},
	}
	reps := []schema.RepresentativesRow{
		{Motif: "L0a2a1", Profiles: []string{"S1", "S2"}},
		{Motif: "L1b", Profiles: []string{"S7"}},
		{Motif: "H1", Profiles: nil},
	}

	res, stats := profiles.FilterTable(reps, meta)
	require.Len(t, res, 3)
	assert.Equal(t, "L0a2a1", res[0].Motif)
	assert.Equal(t, []string{"ACC100", "ACC200"}, res[0].Profiles)
	assert.Equal(t, "L1b", res[1].Motif)
	assert.Empty(t, res[1].Profiles)
	assert.Equal(t, "H1", res[2].Motif)
	assert.Empty(t, res[2].Profiles)

	assert.Equal(t, profiles.FilterStats{
		Rows: 3, Input: 3, Remapped: 2, Dropped: 1, Kept: 2,
	}, stats)

	// input is not modified
	assert.Equal(t, []string{"S1", "S2"}, reps[0].Profiles)
}

func TestFilterTableByAccession(t *testing.T) {
	meta := &schema.MetadataTable{
		Source:   schema.NCBI,
		Columns:  []string{"accession"},
		IDColumn: "accession",
		Rows: []schema.MetadataRow{
			{Accession: "ACC200"},
		},
	}
	reps := []schema.RepresentativesRow{
		{Motif: "L0a2a1", Profiles: []string{"ACC200", "ACC300"}},
	}
	res, stats := profiles.FilterTable(reps, meta)
	assert.Equal(t, []string{"ACC200"}, res[0].Profiles)
	assert.Zero(t, stats.Remapped)
	assert.Equal(t, 1, stats.Dropped)
}
