// Package ioarchive writes canonical tables into a SQLite file, so they
// can be queried or shipped as one artifact.
package ioarchive

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/mtreps/pkg/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// Archive holds canonical tables for the SQLite file.
type Archive struct {
	Representatives []schema.RepresentativesRow
	Metadata        *schema.UnifiedMetadata
}

// Write creates a SQLite database at path with tables representatives,
// representative_accessions and metadata. The database is built in a
// temporary file and renamed into place when complete.
func Write(
	ctx context.Context,
	path string,
	arc Archive,
	withProgress bool,
) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ArchiveError(path, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return ArchiveError(path, err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(tmpPath) }()

	if err = build(ctx, tmpPath, arc, withProgress); err != nil {
		return ArchiveError(path, err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return ArchiveError(path, err)
	}
	slog.Info("Archive created", "path", path)
	return nil
}

func build(
	ctx context.Context,
	path string,
	arc Archive,
	withProgress bool,
) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	meta := arc.Metadata
	if meta == nil {
		meta = &schema.UnifiedMetadata{Columns: []string{schema.ColSource}}
	}
	cols := columnNames(meta.Columns)

	for _, q := range ddl(cols) {
		if _, err = db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("cannot create tables: %w", err)
		}
	}

	var bar *pb.ProgressBar
	if withProgress {
		bar = newProgressBar(len(arc.Representatives)+len(meta.Rows), "archive ")
		defer bar.Finish()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err = insertReps(ctx, tx, arc.Representatives, bar); err != nil {
		return err
	}
	if err = insertMeta(ctx, tx, cols, meta, bar); err != nil {
		return err
	}
	return tx.Commit()
}

func ddl(metaCols []string) []string {
	defs := make([]string, len(metaCols))
	for i, v := range metaCols {
		defs[i] = quote(v) + " TEXT"
	}
	return []string{
		`CREATE TABLE representatives (
			motif TEXT PRIMARY KEY,
			profiles TEXT NOT NULL
		)`,
		`CREATE TABLE representative_accessions (
			motif TEXT NOT NULL,
			accession TEXT NOT NULL,
			PRIMARY KEY (motif, accession)
		)`,
		`CREATE INDEX idx_rep_accessions_accession
			ON representative_accessions (accession)`,
		"CREATE TABLE metadata (" + strings.Join(defs, ", ") + ")",
	}
}

func insertReps(
	ctx context.Context,
	tx *sql.Tx,
	rows []schema.RepresentativesRow,
	bar *pb.ProgressBar,
) error {
	repStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO representatives (motif, profiles) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer repStmt.Close()

	accStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO representative_accessions (motif, accession)
		VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer accStmt.Close()

	for _, v := range rows {
		if _, err = repStmt.ExecContext(ctx, v.Motif, v.ProfilesString()); err != nil {
			return fmt.Errorf("cannot insert motif %s: %w", v.Motif, err)
		}
		for _, acc := range v.Profiles {
			if _, err = accStmt.ExecContext(ctx, v.Motif, acc); err != nil {
				return fmt.Errorf("cannot insert accession %s: %w", acc, err)
			}
		}
		if bar != nil {
			bar.Increment()
		}
	}
	return nil
}

func insertMeta(
	ctx context.Context,
	tx *sql.Tx,
	cols []string,
	meta *schema.UnifiedMetadata,
	bar *pb.ProgressBar,
) error {
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, v := range cols {
		quoted[i] = quote(v)
		marks[i] = "?"
	}
	q := fmt.Sprintf("INSERT INTO metadata (%s) VALUES (%s)",
		strings.Join(quoted, ", "), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range meta.Rows {
		rec := meta.Record(row)
		args := make([]any, len(rec))
		for i, v := range rec {
			args[i] = v
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("cannot insert metadata of %s: %w",
				row.Accession, err)
		}
		if bar != nil {
			bar.Increment()
		}
	}
	return nil
}

// columnNames gives names to empty columns. Names are compared
// case-insensitively by SQLite, so duplicates get the first free
// numeric suffix.
func columnNames(cols []string) []string {
	res := make([]string, len(cols))
	taken := make(map[string]struct{})
	for i, v := range cols {
		if v == "" {
			v = fmt.Sprintf("column_%d", i+1)
		}
		name := v
		for n := 2; ; n++ {
			if _, ok := taken[strings.ToLower(name)]; !ok {
				break
			}
			name = fmt.Sprintf("%s_%d", v, n)
		}
		taken[strings.ToLower(name)] = struct{}{}
		res[i] = name
	}
	return res
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// newProgressBar creates a new progress bar with consistent
// settings.
func newProgressBar(
	total int,
	prefix string,
) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
