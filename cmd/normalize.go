package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/mtreps/internal/iotable"
	"github.com/gnames/mtreps/pkg/config"
	"github.com/gnames/mtreps/pkg/schema"
	"github.com/spf13/cobra"
)

// getNormalizeCmd returns the normalize command.
func getNormalizeCmd() *cobra.Command {
	var output string

	normalizeCmd := &cobra.Command{
		Use:   "normalize [legacy-table]",
		Short: "Repair legacy representatives exports",
		Long: `Repair representatives tables exported with profiles spread over
several trailing columns:

  motif,num_profiles,profiles
  L0a2a1,3,CMR_21_00000085,CMR_21_00000051,CMR_21_00000048

becomes

  motif,num_profiles,profiles
  L0a2a1,3,CMR_21_00000085 CMR_21_00000051 CMR_21_00000048

With a file argument the file is rewritten in place, or written to
--output. Without arguments the legacy export of every source that
configures one is normalized into the output directory.

Examples:
  mtreps normalize inputfiles/empop/empop_reps.csv
  mtreps normalize empop_reps.csv -o empop_reps_fixed.csv
  mtreps normalize`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runNormalize(cfg, args, output)
			if err != nil {
				printError(err)
			}
			return err
		},
	}

	normalizeCmd.Flags().StringVarP(&output, "output", "o", "",
		"output file (default: rewrite input)")

	return normalizeCmd
}

func runNormalize(cfg *config.Config, args []string, output string) error {
	if len(args) == 1 {
		out := output
		if out == "" {
			out = args[0]
		}
		return normalizeFile(args[0], out)
	}

	var num int
	for _, src := range schema.Sources() {
		in := cfg.LegacyPath(src)
		if in == "" {
			continue
		}
		err := normalizeFile(in, cfg.NormalizedPath(src))
		if err != nil {
			return err
		}
		num++
	}
	if num == 0 {
		gn.Warn("No sources are configured with a <em>legacy</em> export")
	}
	return nil
}

func normalizeFile(in, out string) error {
	n, err := iotable.NormalizeFile(in, out)
	if err != nil {
		return err
	}
	gn.Info("Normalized <em>%s</em> rows of <em>%s</em> into <em>%s</em>",
		humanize.Comma(int64(n)), in, out)
	return nil
}
