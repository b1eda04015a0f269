package profiles_test

import (
	"testing"

	"github.com/gnames/mtreps/pkg/profiles"
	"github.com/gnames/mtreps/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metaRow(attrs map[string]string) schema.MetadataRow {
	return schema.MetadataRow{Accession: attrs["accession"], Attrs: attrs}
}

func testTables() (ncbi, empop, kg *schema.MetadataTable) {
	ncbi = &schema.MetadataTable{
		Source:   schema.NCBI,
		Columns:  []string{"accession", "country"},
		IDColumn: "accession",
		Rows: []schema.MetadataRow{
			metaRow(map[string]string{"accession": "MN1", "country": "DE"}),
		},
	}
	empop = &schema.MetadataTable{
		Source:   schema.EMPOP,
		Columns:  []string{"sample_id", "accession", "country", "tech"},
		IDColumn: "sample_id",
		Rows: []schema.MetadataRow{
			metaRow(map[string]string{"sample_id": "S1", "accession": "EM1",
				"country": "AT", "tech": "MPS"}),
			metaRow(map[string]string{"sample_id": "S2", "accession": "MN1",
				"country": "AT", "tech": "Sanger"}),
		},
	}
	kg = &schema.MetadataTable{
		Source:   schema.KGenomes,
		Columns:  []string{"accession", "population"},
		IDColumn: "accession",
		Rows: []schema.MetadataRow{
			metaRow(map[string]string{"accession": "HG1", "population": "YRI"}),
		},
	}
	return ncbi, empop, kg
}

func TestUnify(t *testing.T) {
	ncbi, empop, kg := testTables()
	res := profiles.Unify(ncbi, empop, kg)

	assert.Equal(t,
		[]string{"accession", "country", "tech", "population", "source"},
		res.Columns)
	require.Len(t, res.Rows, 4)

	var srcs []schema.Source
	for _, v := range res.Rows {
		srcs = append(srcs, v.Source)
	}
	assert.Equal(t,
		[]schema.Source{schema.NCBI, schema.EMPOP, schema.EMPOP, schema.KGenomes},
		srcs)

	assert.Equal(t,
		[]string{"EM1", "AT", "MPS", "", "EMPOP"},
		res.Record(res.Rows[1]))
	assert.Equal(t,
		[]string{"HG1", "", "", "YRI", "1K_GENOMES"},
		res.Record(res.Rows[3]))

	for _, v := range res.Rows {
		assert.NotContains(t, v.Attrs, "sample_id")
	}
	// input tables are not modified
	assert.Equal(t, "S1", empop.Rows[0].Attrs["sample_id"])
}

func TestUnifyOverridesSourceColumn(t *testing.T) {
	tbl := &schema.MetadataTable{
		Source:  schema.NCBI,
		Columns: []string{"source", "accession"},
		Rows: []schema.MetadataRow{
			metaRow(map[string]string{"accession": "A", "source": "GenBank"}),
		},
	}
	res := profiles.Unify(tbl)
	assert.Equal(t, []string{"accession", "source"}, res.Columns)
	assert.Equal(t, []string{"A", "NCBI"}, res.Record(res.Rows[0]))
}

func TestCollisions(t *testing.T) {
	ncbi, empop, kg := testTables()
	res := profiles.Collisions(profiles.Unify(ncbi, empop, kg))
	require.Len(t, res, 1)
	assert.Equal(t, "MN1", res[0].Accession)
	assert.Equal(t, []schema.Source{schema.NCBI, schema.EMPOP}, res[0].Sources)

	res = profiles.Collisions(profiles.Unify(ncbi, kg))
	assert.Empty(t, res)
}
