package ioreconcile

import (
	"context"
	"log/slog"

	"github.com/gnames/mtreps/internal/iotable"
	"github.com/gnames/mtreps/pkg/config"
	"github.com/gnames/mtreps/pkg/profiles"
	"github.com/gnames/mtreps/pkg/schema"
)

// sourceResult keeps everything a source pipeline produced.
// Nothing is written to disk at this stage.
type sourceResult struct {
	source schema.Source

	// legacy is the normalized legacy table, nil for sources with
	// a regular representatives table.
	legacy []iotable.LegacyRow

	meta     *schema.MetadataTable
	filtered []schema.RepresentativesRow
	stats    profiles.FilterStats
}

// processSource repairs the legacy export of a source, if any, and
// runs load, remap and filter stages on its representatives table.
func processSource(
	ctx context.Context,
	cfg *config.Config,
	src schema.Source,
) (*sourceResult, error) {
	sc := cfg.Source(src)
	res := &sourceResult{source: src}

	if err := ctx.Err(); err != nil {
		return nil, NewCancelledError(err)
	}

	var err error
	if sc.Legacy != "" {
		res.legacy, err = iotable.ReadLegacy(cfg.LegacyPath(src))
		if err != nil {
			return nil, err
		}
	}

	repsPath := cfg.RepsPath(src)
	reps, err := iotable.ReadRepresentatives(repsPath)
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, NewCancelledError(err)
	}

	res.meta, err = iotable.ReadMetadata(cfg.Path(sc.Meta), src, sc.IDColumn)
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, NewCancelledError(err)
	}

	res.filtered, res.stats = profiles.FilterTable(reps, res.meta)

	slog.Info("Source filtered",
		"source", src,
		"reps", repsPath,
		"legacy", sc.Legacy,
		"rows", res.stats.Rows,
		"input", res.stats.Input,
		"remapped", res.stats.Remapped,
		"dropped", res.stats.Dropped,
		"kept", res.stats.Kept,
	)
	return res, nil
}
