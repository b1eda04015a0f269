// Package schema defines typed records for the tables mtreps reads and
// writes. Column names live here and nowhere else; tables are validated
// once when they are loaded and the rest of the code works with records.
package schema

import (
	"strings"
)

// Column names of the input and output tables.
const (
	ColMotif       = "motif"
	ColNumProfiles = "num_profiles"
	ColProfiles    = "profiles"
	ColAccession   = "accession"
	ColSampleID    = "sample_id"
	ColSource      = "source"
)

// Source is a repository that contributes samples.
type Source string

const (
	NCBI     Source = "NCBI"
	EMPOP    Source = "EMPOP"
	KGenomes Source = "1K_GENOMES"
)

// Sources returns all sources in their processing order.
// Metadata rows are concatenated in this order.
func Sources() []Source {
	return []Source{NCBI, EMPOP, KGenomes}
}

// IsValid returns true if the source is one of the known labels.
func (s Source) IsValid() bool {
	switch s {
	case NCBI, EMPOP, KGenomes:
		return true
	}
	return false
}

// Key is the lowercase name used in configuration and file names.
func (s Source) Key() string {
	return strings.ToLower(string(s))
}

// RepresentativesRow associates a haplogroup motif with the samples
// that exemplify it.
type RepresentativesRow struct {
	Motif    string
	Profiles []string
}

// ProfilesString returns profiles as a space-delimited string.
func (r RepresentativesRow) ProfilesString() string {
	return strings.Join(r.Profiles, " ")
}

// MetadataRow is one sample record of a source.
type MetadataRow struct {
	Accession string
	Source    Source
	// Attrs holds every column of the row, including accession.
	Attrs map[string]string
}

// MetadataTable is the metadata of one source.
type MetadataTable struct {
	Source  Source
	Columns []string
	Rows    []MetadataRow

	// IDColumn is the column used to match representatives. If it is
	// not ColAccession, it is a source-local column that is dropped
	// during unification.
	IDColumn string
}

// LocalIDColumn returns the source-local id column, or an empty string
// if representatives of the source are keyed by accession.
func (t *MetadataTable) LocalIDColumn() string {
	if t.IDColumn == "" || t.IDColumn == ColAccession {
		return ""
	}
	return t.IDColumn
}

// AccessionSet is a set of accessions a source vouches for.
type AccessionSet map[string]struct{}

// Has returns true if accession belongs to the set.
func (s AccessionSet) Has(accession string) bool {
	_, ok := s[accession]
	return ok
}

// Accessions returns the set of valid accessions of the table.
// Empty accession values are never valid.
func (t *MetadataTable) Accessions() AccessionSet {
	res := make(AccessionSet, len(t.Rows))
	for _, v := range t.Rows {
		if v.Accession == "" {
			continue
		}
		res[v.Accession] = struct{}{}
	}
	return res
}

// IDMap translates source-local sample ids to accessions.
type IDMap map[string]string

// IDMap builds a mapping from the IDColumn values to accessions.
// When an id repeats, the later row wins. For tables keyed by accession
// it returns nil, because remapping is not needed.
func (t *MetadataTable) IDMap() IDMap {
	col := t.LocalIDColumn()
	if col == "" {
		return nil
	}
	res := make(IDMap, len(t.Rows))
	for _, v := range t.Rows {
		id := v.Attrs[col]
		if id == "" {
			continue
		}
		res[id] = v.Accession
	}
	return res
}

// UnifiedMetadata is the canonical metadata table of all sources.
// Columns always ends with ColSource.
type UnifiedMetadata struct {
	Columns []string
	Rows    []MetadataRow
}

// Record returns values of a row in the order of Columns.
// Missing attributes are empty strings.
func (u *UnifiedMetadata) Record(row MetadataRow) []string {
	res := make([]string, len(u.Columns))
	for i, col := range u.Columns {
		if col == ColSource {
			res[i] = string(row.Source)
			continue
		}
		res[i] = row.Attrs[col]
	}
	return res
}
