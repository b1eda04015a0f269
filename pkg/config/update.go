package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/mtreps/pkg/schema"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Paths.RootDir
	if s != "" {
		res = append(res, OptRootDir(s))
	}
	s = c.Paths.AllReps
	if s != "" {
		res = append(res, OptAllReps(s))
	}
	s = c.Paths.OutputDir
	if s != "" {
		res = append(res, OptOutputDir(s))
	}
	s = c.Paths.MergedReps
	if s != "" {
		res = append(res, OptMergedReps(s))
	}
	s = c.Paths.MergedMeta
	if s != "" {
		res = append(res, OptMergedMeta(s))
	}
	s = c.Paths.Report
	if s != "" {
		res = append(res, OptReport(s))
	}
	// archive and publish dir are optional, empty values are meaningful
	res = append(res, OptArchive(c.Paths.Archive))
	res = append(res, OptPublishDir(c.Paths.PublishDir))

	for _, src := range schema.Sources() {
		sc := c.Source(src)
		if sc.Meta != "" || sc.Filtered != "" || sc.IDColumn != "" {
			res = append(res, OptSource(src, sc))
		}
	}

	res = append(res, OptFailOnCollision(c.Reconcile.FailOnCollision))
	res = append(res, OptWithProgress(c.Reconcile.WithProgress))

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Source": {"ncbi": s, "empop": s, "1k_genomes": s},
		"Source.IDColumn": {
			schema.ColAccession: s, schema.ColSampleID: s,
		},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
