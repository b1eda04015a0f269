package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/mtreps/internal/ioreconcile"
	mtreps "github.com/gnames/mtreps/pkg"
	"github.com/gnames/mtreps/pkg/config"
	"github.com/spf13/cobra"
)

// getMergeCmd returns the merge command.
func getMergeCmd() *cobra.Command {
	mergeCmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge representatives and metadata of all sources",
		Long: `Build canonical representatives and metadata tables.

This command:
  1. Loads representatives and metadata tables of NCBI, EMPOP and
     1K_GENOMES, normalizing legacy exports when configured
  2. Translates source-local sample ids to accessions
  3. Keeps only accessions present in the metadata of each source
  4. Merges filtered tables by motif (sorted union of accessions)
  5. Concatenates metadata of all sources with a source column
  6. Reports accessions that appear in several metadata rows

Nothing is written if any input is malformed. Every output file is
replaced atomically.

Examples:
  mtreps merge
  mtreps merge --root-dir ~/code/mitotree
  mtreps merge -r . --publish-dir web/src/data --archive output/reps.sqlite
  mtreps merge --fail-on-collision`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(mergeOptions(cmd))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			_, err := runMerge(ctx, cfg)
			if err != nil {
				printError(err)
			}
			return err
		},
	}

	fl := mergeCmd.Flags()
	fl.StringP("root-dir", "r", "", "directory relative paths are resolved against")
	fl.StringP("output-dir", "o", "", "directory for per-source outputs and the report")
	fl.StringP("archive", "a", "", "create SQLite archive of canonical tables")
	fl.StringP("publish-dir", "p", "", "copy canonical tables to web data directory")
	fl.Bool("fail-on-collision", false, "abort if an accession has several metadata rows")
	fl.BoolP("quiet", "q", false, "do not show progress bars")
	fl.IntP("jobs", "j", 0, "number of source pipelines running concurrently")

	return mergeCmd
}

func runMerge(ctx context.Context, cfg *config.Config) (*mtreps.Report, error) {
	gn.Info("Reconciling sources from <em>%s</em>", cfg.Paths.RootDir)

	rec := ioreconcile.New(cfg)
	res, err := rec.Reconcile(ctx)
	if err != nil {
		return nil, err
	}

	for _, v := range res.Sources {
		gn.Info(
			"  %-10s kept <em>%s</em>, dropped <em>%s</em>, remapped <em>%s</em>",
			v.Source,
			humanize.Comma(int64(v.Kept)),
			humanize.Comma(int64(v.Dropped)),
			humanize.Comma(int64(v.Remapped)),
		)
	}
	return res, nil
}
