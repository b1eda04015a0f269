// Package ioreconcile runs the reconciliation of representatives and
// metadata tables of all sources and writes canonical outputs.
package ioreconcile

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/gnames/mtreps/internal/ioarchive"
	"github.com/gnames/mtreps/internal/iofs"
	"github.com/gnames/mtreps/internal/iotable"
	mtreps "github.com/gnames/mtreps/pkg"
	"github.com/gnames/mtreps/pkg/config"
	"github.com/gnames/mtreps/pkg/profiles"
	"github.com/gnames/mtreps/pkg/schema"
	"golang.org/x/sync/errgroup"
)

type reconciler struct {
	cfg *config.Config
}

// output is a rendered file waiting to be written.
type output struct {
	path string
	data []byte
}

// New creates a Reconciler for the given configuration.
func New(cfg *config.Config) mtreps.Reconciler {
	return &reconciler{cfg: cfg}
}

// Reconcile implements mtreps.Reconciler.
func (r *reconciler) Reconcile(ctx context.Context) (*mtreps.Report, error) {
	start := time.Now()
	cfg := r.cfg

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := r.checkOverwrite(); err != nil {
		return nil, err
	}

	srcs := schema.Sources()
	results := make([]*sourceResult, len(srcs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.JobsNumber, 1))
	for i, src := range srcs {
		g.Go(func() error {
			res, err := processSource(gCtx, cfg, src)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	repsTables := make([][]schema.RepresentativesRow, len(results))
	metaTables := make([]*schema.MetadataTable, len(results))
	for i, v := range results {
		repsTables[i] = v.filtered
		metaTables[i] = v.meta
	}
	merged := profiles.Merge(repsTables...)
	meta := profiles.Unify(metaTables...)

	collisions := profiles.Collisions(meta)
	if len(collisions) > 0 {
		for _, v := range collisions {
			slog.Warn("Accession collision",
				"accession", v.Accession,
				"sources", v.Sources,
			)
		}
		if cfg.IsFailOnCollision() {
			return nil, CollisionError(collisions)
		}
		gn.Warn(
			"Found <em>%s</em> accession(s) in more than one metadata row, "+
				"see the report for details",
			humanize.Comma(int64(len(collisions))),
		)
	}

	outs, err := r.renderTables(results, merged, meta)
	if err != nil {
		return nil, err
	}
	repsData, metaData := outs[len(outs)-2].data, outs[len(outs)-1].data

	var pubs []output
	if cfg.Paths.PublishDir != "" {
		pubs, err = r.renderPublish(merged, repsData, metaData)
		if err != nil {
			return nil, err
		}
	}

	report := r.newReport(results, merged, meta, collisions, repsData, metaData)
	report.Duration = gnfmt.TimeString(time.Since(start).Seconds())
	reportPath := cfg.Path(cfg.Paths.Report)
	reportData, err := gnfmt.GNjson{Pretty: true}.Encode(report)
	if err != nil {
		return nil, ReportError(reportPath, err)
	}

	// Inputs are loaded and outputs are rendered. Once writing starts
	// it is not interrupted.
	if err = ctx.Err(); err != nil {
		return nil, NewCancelledError(err)
	}

	if err = writeAll(outs); err != nil {
		return nil, err
	}
	gn.Info(
		"Merged <em>%s</em> motifs with <em>%s</em> accessions into <em>%s</em>",
		humanize.Comma(int64(report.MergedMotifs)),
		humanize.Comma(int64(report.MergedAccessions)),
		outs[len(outs)-2].path,
	)
	gn.Info(
		"Unified <em>%s</em> metadata rows into <em>%s</em>",
		humanize.Comma(int64(report.MetadataRows)),
		outs[len(outs)-1].path,
	)

	if len(pubs) > 0 {
		dir := cfg.Path(cfg.Paths.PublishDir)
		if err = writeAll(pubs); err != nil {
			return nil, PublishError(dir, err)
		}
		gn.Info("Published data to <em>%s</em>", dir)
	}

	if cfg.Paths.Archive != "" {
		arc := ioarchive.Archive{Representatives: merged, Metadata: meta}
		path := cfg.Path(cfg.Paths.Archive)
		if err = ioarchive.Write(ctx, path, arc, cfg.IsWithProgress()); err != nil {
			return nil, err
		}
		gn.Info("Archived canonical tables to <em>%s</em>", path)
	}

	if err = iofs.WriteFile(reportPath, reportData); err != nil {
		return nil, err
	}

	slog.Info("Reconciliation complete",
		"motifs", report.MergedMotifs,
		"accessions", report.MergedAccessions,
		"metadata_rows", report.MetadataRows,
		"collisions", len(collisions),
		"duration", report.Duration,
	)
	gn.Info("Reconciliation complete in <em>%s</em>", report.Duration)
	return report, nil
}

// renderTables renders per-source and canonical tables. Canonical
// representatives and metadata are the last two outputs.
func (r *reconciler) renderTables(
	results []*sourceResult,
	merged []schema.RepresentativesRow,
	meta *schema.UnifiedMetadata,
) ([]output, error) {
	cfg := r.cfg
	var res []output
	for _, v := range results {
		data, err := iotable.RenderRepresentatives(v.filtered)
		if err != nil {
			return nil, err
		}
		path := cfg.Path(cfg.Source(v.source).Filtered)
		res = append(res, output{path: path, data: data})

		if v.legacy != nil {
			data, err = iotable.RenderLegacy(v.legacy)
			if err != nil {
				return nil, err
			}
			path = cfg.NormalizedPath(v.source)
			res = append(res, output{path: path, data: data})
		}
	}

	repsData, err := iotable.RenderRepresentatives(merged)
	if err != nil {
		return nil, err
	}
	metaData, err := iotable.RenderMetadata(meta)
	if err != nil {
		return nil, err
	}
	res = append(res,
		output{path: cfg.Path(cfg.Paths.MergedReps), data: repsData},
		output{path: cfg.Path(cfg.Paths.MergedMeta), data: metaData},
	)
	return res, nil
}

func (r *reconciler) newReport(
	results []*sourceResult,
	merged []schema.RepresentativesRow,
	meta *schema.UnifiedMetadata,
	collisions []profiles.Collision,
	repsData, metaData []byte,
) *mtreps.Report {
	res := &mtreps.Report{
		Version:           mtreps.Version,
		Sources:           make([]mtreps.SourceReport, len(results)),
		MergedMotifs:      len(merged),
		MergedAccessions:  profiles.AccessionsNum(merged),
		MetadataRows:      len(meta.Rows),
		Collisions:        collisions,
		RepresentativesID: gnuuid.New(string(repsData)).String(),
		MetadataID:        gnuuid.New(string(metaData)).String(),
	}
	if res.Collisions == nil {
		res.Collisions = []profiles.Collision{}
	}
	for i, v := range results {
		res.Sources[i] = mtreps.SourceReport{
			Source:       v.source,
			FilterStats:  v.stats,
			MetadataRows: len(v.meta.Rows),
			Normalized:   v.legacy != nil,
		}
	}
	return res
}

// checkOverwrite makes sure no output replaces an input table.
func (r *reconciler) checkOverwrite() error {
	cfg := r.cfg
	inputs := make(map[string]struct{})
	for _, src := range schema.Sources() {
		inputs[filepath.Clean(cfg.RepsPath(src))] = struct{}{}
		inputs[filepath.Clean(cfg.Path(cfg.Source(src).Meta))] = struct{}{}
		if p := cfg.LegacyPath(src); p != "" {
			inputs[filepath.Clean(p)] = struct{}{}
		}
	}

	var outs []string
	for _, v := range []string{
		cfg.Paths.MergedReps,
		cfg.Paths.MergedMeta,
		cfg.Paths.Report,
		cfg.Paths.Archive,
	} {
		if v != "" {
			outs = append(outs, cfg.Path(v))
		}
	}
	for _, src := range schema.Sources() {
		sc := cfg.Source(src)
		outs = append(outs, cfg.Path(sc.Filtered))
		if sc.Legacy != "" {
			outs = append(outs, cfg.NormalizedPath(src))
		}
	}
	if cfg.Paths.PublishDir != "" {
		dir := cfg.Path(cfg.Paths.PublishDir)
		for _, v := range []string{
			PublishProfiles, PublishRepresentatives, PublishLookup,
		} {
			outs = append(outs, filepath.Join(dir, v))
		}
	}

	for _, v := range outs {
		path := filepath.Clean(v)
		if _, ok := inputs[path]; ok {
			return OverwriteInputError(path)
		}
	}
	return nil
}

func writeAll(outs []output) error {
	for _, v := range outs {
		if err := iofs.WriteFile(v.path, v.data); err != nil {
			return err
		}
		slog.Info("File written", "path", v.path,
			"bytes", len(v.data), "lines", strings.Count(string(v.data), "\n"))
	}
	return nil
}
