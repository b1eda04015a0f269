package ioarchive_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/mtreps/internal/ioarchive"
	"github.com/gnames/mtreps/pkg/errcode"
	"github.com/gnames/mtreps/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArchive() ioarchive.Archive {
	return ioarchive.Archive{
		Representatives: []schema.RepresentativesRow{
			{Motif: "H1", Profiles: []string{"A1", "A2"}},
			{Motif: "L1b", Profiles: []string{}},
		},
		Metadata: &schema.UnifiedMetadata{
			Columns: []string{"accession", "country", "source"},
			Rows: []schema.MetadataRow{
				{Accession: "A1", Source: schema.NCBI,
					Attrs: map[string]string{"accession": "A1", "country": "DE"}},
				{Accession: "A2", Source: schema.EMPOP,
					Attrs: map[string]string{"accession": "A2"}},
			},
		},
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "reps.sqlite")
	err := ioarchive.Write(context.Background(), path, testArchive(), false)
	require.NoError(t, err)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var profiles string
	err = db.QueryRow(
		"SELECT profiles FROM representatives WHERE motif = ?", "H1",
	).Scan(&profiles)
	require.NoError(t, err)
	assert.Equal(t, "A1 A2", profiles)

	var motif string
	err = db.QueryRow(
		"SELECT motif FROM representative_accessions WHERE accession = ?", "A2",
	).Scan(&motif)
	require.NoError(t, err)
	assert.Equal(t, "H1", motif)

	var num int
	err = db.QueryRow("SELECT count(*) FROM representatives").Scan(&num)
	require.NoError(t, err)
	assert.Equal(t, 2, num)

	var country, source string
	err = db.QueryRow(
		`SELECT country, source FROM metadata WHERE accession = ?`, "A2",
	).Scan(&country, &source)
	require.NoError(t, err)
	assert.Equal(t, "", country)
	assert.Equal(t, "EMPOP", source)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are removed")
}

func TestWrite_Replaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reps.sqlite")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	err := ioarchive.Write(context.Background(), path, testArchive(), false)
	require.NoError(t, err)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	var num int
	err = db.QueryRow("SELECT count(*) FROM metadata").Scan(&num)
	require.NoError(t, err)
	assert.Equal(t, 2, num)
}

func TestWrite_OddColumns(t *testing.T) {
	arc := testArchive()
	arc.Metadata.Columns = []string{"accession", "", `a "b"`, "Country", "country", "source"}
	path := filepath.Join(t.TempDir(), "reps.sqlite")
	err := ioarchive.Write(context.Background(), path, arc, false)
	require.NoError(t, err)
}

func TestWrite_SuffixTaken(t *testing.T) {
	arc := testArchive()
	arc.Metadata.Columns = []string{"accession", "a", "a_2", "A", "", "column_5", "source"}
	path := filepath.Join(t.TempDir(), "reps.sqlite")
	err := ioarchive.Write(context.Background(), path, arc, false)
	require.NoError(t, err)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query("SELECT name FROM pragma_table_info('metadata')")
	require.NoError(t, err)
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{
		"accession", "a", "a_2", "A_3", "column_5", "column_5_2", "source",
	}, names)
}

func TestWrite_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reps.sqlite")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ioarchive.Write(ctx, path, testArchive(), false)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ArchiveError, gnErr.Code)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
