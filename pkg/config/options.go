package config

import (
	"strings"

	"github.com/gnames/mtreps/pkg/schema"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptRootDir sets the directory relative paths are resolved against.
func OptRootDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Root Directory", s) {
			c.Paths.RootDir = s
		}
	}
}

// OptAllReps sets the representatives table shared by sources.
func OptAllReps(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("All Representatives", s) {
			c.Paths.AllReps = s
		}
	}
}

// OptOutputDir sets the directory for intermediate outputs.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.Paths.OutputDir = s
		}
	}
}

// OptMergedReps sets the path of the canonical representatives table.
func OptMergedReps(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Merged Representatives", s) {
			c.Paths.MergedReps = s
		}
	}
}

// OptMergedMeta sets the path of the canonical metadata table.
func OptMergedMeta(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Merged Metadata", s) {
			c.Paths.MergedMeta = s
		}
	}
}

// OptReport sets the path of the JSON report.
func OptReport(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Report", s) {
			c.Paths.Report = s
		}
	}
}

// OptArchive sets the path of the SQLite archive.
// Empty string disables the archive.
func OptArchive(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Paths.Archive = s
	}
}

// OptPublishDir sets the data directory of the web application.
// Empty string disables publishing.
func OptPublishDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Paths.PublishDir = s
	}
}

// OptSource replaces configuration of a source.
// The whole SourceConfig is rejected if any of its required fields is
// empty or if IDColumn is not supported.
func OptSource(src schema.Source, sc SourceConfig) Option {
	sc.Meta = strings.TrimSpace(sc.Meta)
	sc.Reps = strings.TrimSpace(sc.Reps)
	sc.Legacy = strings.TrimSpace(sc.Legacy)
	sc.Filtered = strings.TrimSpace(sc.Filtered)
	sc.IDColumn = strings.ToLower(strings.TrimSpace(sc.IDColumn))
	return func(c *Config) {
		name := "Sources." + src.Key()
		if !src.IsValid() {
			isValidEnum("Source", src.Key())
			return
		}
		if !isValidString(name+".meta", sc.Meta) ||
			!isValidString(name+".filtered", sc.Filtered) ||
			!isValidEnum("Source.IDColumn", sc.IDColumn) {
			return
		}
		switch src {
		case schema.NCBI:
			c.Sources.NCBI = sc
		case schema.EMPOP:
			c.Sources.EMPOP = sc
		case schema.KGenomes:
			c.Sources.KGenomes = sc
		}
	}
}

// OptFailOnCollision sets whether accessions claimed by several
// metadata rows abort the run.
// Uses pointer to distinguish between unset (nil) and false.
func OptFailOnCollision(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Reconcile.FailOnCollision = b
		}
	}
}

// OptWithProgress sets whether progress bars are shown.
func OptWithProgress(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Reconcile.WithProgress = b
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of source pipelines that run concurrently.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
