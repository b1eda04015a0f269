package iotable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gnames/mtreps/internal/iofs"
	"github.com/gnames/mtreps/pkg/profiles"
	"github.com/gnames/mtreps/pkg/schema"
)

// LegacyRow is a row of the legacy representatives export after
// its trailing columns are joined.
type LegacyRow struct {
	Motif       string
	NumProfiles string
	Profiles    string
}

// ReadLegacy loads and normalizes a legacy representatives export.
func ReadLegacy(path string) ([]LegacyRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()
	return ParseLegacy(f, path)
}

// ParseLegacy normalizes a table that declares the header
// motif,num_profiles,profiles but spreads profiles of a row over any
// number of trailing fields, e.g.
//
//	L0a2a1,3,CMR_21_00000085,CMR_21_00000051,CMR_21_00000048
//
// Everything after the second field is joined with single spaces into
// profiles. num_profiles is copied as is. A row with fewer than two
// fields is an error. Normalized input stays unchanged.
func ParseLegacy(r io.Reader, name string) ([]LegacyRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, TableHeaderError(name, errors.New("table is empty"))
	}
	if err != nil {
		return nil, TableHeaderError(name, err)
	}
	trimmed := make([]string, len(header))
	for i, v := range header {
		trimmed[i] = strings.TrimSpace(v)
	}
	trimmed[0] = strings.TrimPrefix(trimmed[0], "\ufeff")
	if !slices.Equal(trimmed, schema.LegacyHeader()) {
		return nil, LegacyHeaderError(name, trimmed)
	}

	var res []LegacyRow
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rowError(name, err)
		}
		line, _ := cr.FieldPos(0)
		if len(row) < 2 {
			return nil, TableRowError(name, line,
				fmt.Errorf("expected at least 2 fields, got %d", len(row)))
		}
		motif := strings.TrimSpace(row[0])
		if motif == "" {
			return nil, TableRowError(name, line, errors.New("empty motif"))
		}

		var ids []string
		for _, v := range row[2:] {
			ids = append(ids, profiles.Tokens(v)...)
		}
		res = append(res, LegacyRow{
			Motif:       motif,
			NumProfiles: strings.TrimSpace(row[1]),
			Profiles:    strings.Join(ids, " "),
		})
	}
	return res, nil
}

// RenderLegacy renders normalized rows as a three-column table.
func RenderLegacy(rows []LegacyRow) ([]byte, error) {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, schema.LegacyHeader())
	for _, v := range rows {
		records = append(records, []string{v.Motif, v.NumProfiles, v.Profiles})
	}
	return render(records)
}

// NormalizeFile repairs a legacy export at in and writes the result to
// out. If out equals in, the input is replaced atomically. It returns
// the number of data rows.
func NormalizeFile(in, out string) (int, error) {
	rows, err := ReadLegacy(in)
	if err != nil {
		return 0, err
	}
	data, err := RenderLegacy(rows)
	if err != nil {
		return 0, err
	}
	if err = iofs.WriteFile(out, data); err != nil {
		return 0, err
	}
	return len(rows), nil
}
