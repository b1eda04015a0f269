package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/mtreps/pkg/errcode"
	"github.com/gnames/mtreps/pkg/schema"
)

// Validate checks that every path needed by reconciliation is set.
// Options never leave empty required fields, but a Config literal or a
// partially filled config.yaml can.
func (c *Config) Validate() error {
	var missing []string
	paths := []struct {
		name, val string
	}{
		{"paths.root_dir", c.Paths.RootDir},
		{"paths.output_dir", c.Paths.OutputDir},
		{"paths.merged_reps", c.Paths.MergedReps},
		{"paths.merged_meta", c.Paths.MergedMeta},
		{"paths.report", c.Paths.Report},
	}
	for _, v := range paths {
		if v.val == "" {
			missing = append(missing, v.name)
		}
	}

	for _, src := range schema.Sources() {
		sc := c.Source(src)
		prefix := "sources." + src.Key()
		if sc.Meta == "" {
			missing = append(missing, prefix+".meta")
		}
		if sc.Filtered == "" {
			missing = append(missing, prefix+".filtered")
		}
		if sc.Reps == "" && c.Paths.AllReps == "" {
			missing = append(missing, prefix+".reps or paths.all_reps")
		}
		switch sc.IDColumn {
		case schema.ColAccession, schema.ColSampleID:
		default:
			return &gn.Error{
				Code: errcode.ConfigSourceError,
				Msg: `Unsupported id column <em>%s</em> for source <em>%s</em>
   Use '<em>accession</em>' or '<em>sample_id</em>'`,
				Vars: []any{sc.IDColumn, src},
				Err: fmt.Errorf("source %s: unsupported id_column %q",
					src, sc.IDColumn),
			}
		}
	}

	if len(missing) > 0 {
		return &gn.Error{
			Code: errcode.ConfigPathError,
			Msg:  "Configuration misses required paths:\n  %s",
			Vars: []any{strings.Join(missing, "\n  ")},
			Err: errors.New("missing paths: " +
				strings.Join(missing, ", ")),
		}
	}
	return nil
}
