// Package iotable reads and writes delimited tables of representatives
// and metadata. Tables are validated here, once, and converted to
// records of the schema package.
package iotable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gnames/mtreps/internal/iofs"
	"github.com/gnames/mtreps/pkg/profiles"
	"github.com/gnames/mtreps/pkg/schema"
)

// ReadRepresentatives loads a representatives table. It requires
// motif and profiles columns; other columns are ignored.
func ReadRepresentatives(path string) ([]schema.RepresentativesRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()
	return ParseRepresentatives(f, path)
}

// ParseRepresentatives loads a representatives table from r.
// The name is used in error messages.
func ParseRepresentatives(
	r io.Reader,
	name string,
) ([]schema.RepresentativesRow, error) {
	cr := csv.NewReader(r)
	h, err := readHeader(cr, name, schema.ColMotif, schema.ColProfiles)
	if err != nil {
		return nil, err
	}

	var res []schema.RepresentativesRow
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rowError(name, err)
		}
		line, _ := cr.FieldPos(0)
		motif := h.Value(row, schema.ColMotif)
		if motif == "" {
			return nil, TableRowError(name, line, errors.New("empty motif"))
		}
		res = append(res, schema.RepresentativesRow{
			Motif:    motif,
			Profiles: profiles.Tokens(h.Value(row, schema.ColProfiles)),
		})
	}
	return res, nil
}

// ReadMetadata loads metadata of a source. It requires the accession
// column and, if different, the idColumn. All values are trimmed and
// kept as strings.
func ReadMetadata(
	path string,
	src schema.Source,
	idColumn string,
) (*schema.MetadataTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()
	return ParseMetadata(f, path, src, idColumn)
}

// ParseMetadata loads metadata of a source from r.
func ParseMetadata(
	r io.Reader,
	name string,
	src schema.Source,
	idColumn string,
) (*schema.MetadataTable, error) {
	if idColumn == "" {
		idColumn = schema.ColAccession
	}
	cr := csv.NewReader(r)
	h, err := readHeader(cr, name, schema.ColAccession, idColumn)
	if err != nil {
		return nil, err
	}

	res := &schema.MetadataTable{
		Source:   src,
		Columns:  h.columns,
		IDColumn: idColumn,
	}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rowError(name, err)
		}
		attrs := make(map[string]string, len(h.columns))
		for _, col := range h.columns {
			attrs[col] = h.Value(row, col)
		}
		res.Rows = append(res.Rows, schema.MetadataRow{
			Accession: attrs[schema.ColAccession],
			Source:    src,
			Attrs:     attrs,
		})
	}
	return res, nil
}

// RenderRepresentatives renders rows as a motif,profiles table.
func RenderRepresentatives(rows []schema.RepresentativesRow) ([]byte, error) {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, schema.RepresentativesHeader())
	for _, v := range rows {
		records = append(records, []string{v.Motif, v.ProfilesString()})
	}
	return render(records)
}

// RenderMetadata renders the unified metadata table.
func RenderMetadata(meta *schema.UnifiedMetadata) ([]byte, error) {
	records := make([][]string, 0, len(meta.Rows)+1)
	records = append(records, meta.Columns)
	for _, v := range meta.Rows {
		records = append(records, meta.Record(v))
	}
	return render(records)
}

type header struct {
	schema.Header
	columns []string
}

func readHeader(cr *csv.Reader, name string, required ...string) (header, error) {
	var res header
	row, err := cr.Read()
	if err == io.EOF {
		return res, TableHeaderError(name, errors.New("table is empty"))
	}
	if err != nil {
		return res, TableHeaderError(name, err)
	}

	// spreadsheet exports often start with a byte order mark
	row[0] = strings.TrimPrefix(row[0], "\ufeff")
	res.Header = schema.NewHeader(row)
	if len(res.Header) != len(row) {
		return res, TableHeaderError(name, errors.New("repeated column names"))
	}
	if err = res.Require(required...); err != nil {
		return res, TableHeaderError(name, err)
	}
	res.columns = make([]string, len(row))
	for i, col := range row {
		res.columns[i] = strings.TrimSpace(col)
	}
	return res, nil
}

func rowError(name string, err error) error {
	var line int
	var pErr *csv.ParseError
	if errors.As(err, &pErr) {
		line = pErr.StartLine
	}
	return TableRowError(name, line, err)
}

func render(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("cannot render table: %w", err)
	}
	return buf.Bytes(), nil
}
