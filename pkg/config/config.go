// Package config provides configuration management for mtreps.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Every input and output path is a named field; there is no global path state
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Relative paths are resolved against Paths.RootDir
//
// # Environment Variables
//
// Use MTREPS_ prefix with underscores for nesting:
//
//	MTREPS_PATHS_ROOT_DIR=/data/mitotree
//	MTREPS_PATHS_OUTPUT_DIR=output
//	MTREPS_LOG_LEVEL=info
//	MTREPS_JOBS_NUMBER=3
package config

import (
	"path/filepath"
	"runtime"

	"github.com/gnames/mtreps/pkg/schema"
)

// Config represents the complete mtreps configuration.
type Config struct {
	// Paths contains locations of shared inputs and of all outputs.
	Paths PathsConfig `mapstructure:"paths" yaml:"paths"`

	// Sources contains per-source inputs and outputs.
	Sources SourcesConfig `mapstructure:"sources" yaml:"sources"`

	// Reconcile contains settings of the reconciliation run.
	Reconcile ReconcileConfig `mapstructure:"reconcile" yaml:"reconcile"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber limits how many source pipelines run concurrently.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// PathsConfig contains paths that do not belong to a single source.
type PathsConfig struct {
	// RootDir is the directory relative paths are resolved against.
	RootDir string `mapstructure:"root_dir" yaml:"root_dir"`

	// AllReps is the representatives table produced by the tree
	// building process. Sources without their own table use it.
	AllReps string `mapstructure:"all_reps" yaml:"all_reps"`

	// OutputDir keeps per-source filtered tables, normalized legacy
	// tables and the report.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// MergedReps is the canonical motif to accessions table.
	MergedReps string `mapstructure:"merged_reps" yaml:"merged_reps"`

	// MergedMeta is the canonical source-tagged metadata table.
	MergedMeta string `mapstructure:"merged_meta" yaml:"merged_meta"`

	// Report is a JSON summary of the run.
	Report string `mapstructure:"report" yaml:"report"`

	// Archive is an optional SQLite copy of canonical tables.
	// Empty value disables the archive.
	Archive string `mapstructure:"archive" yaml:"archive"`

	// PublishDir is an optional data directory of the web application.
	// Empty value disables publishing.
	PublishDir string `mapstructure:"publish_dir" yaml:"publish_dir"`
}

// SourceConfig describes inputs and outputs of one source.
type SourceConfig struct {
	// Meta is the metadata table of the source, the source of truth
	// for valid accessions.
	Meta string `mapstructure:"meta" yaml:"meta"`

	// Reps is an optional representatives table that replaces
	// Paths.AllReps for the source.
	Reps string `mapstructure:"reps" yaml:"reps,omitempty"`

	// Legacy is an optional export of the source with a variable number
	// of trailing profile columns. It is repaired into the output
	// directory and does not take part in filtering.
	Legacy string `mapstructure:"legacy" yaml:"legacy,omitempty"`

	// IDColumn is the metadata column that matches ids in the
	// representatives table: "accession" or "sample_id".
	IDColumn string `mapstructure:"id_column" yaml:"id_column"`

	// Filtered is the output path of filtered representatives.
	Filtered string `mapstructure:"filtered" yaml:"filtered"`
}

// SourcesConfig has one field per source.
type SourcesConfig struct {
	NCBI     SourceConfig `mapstructure:"ncbi" yaml:"ncbi"`
	EMPOP    SourceConfig `mapstructure:"empop" yaml:"empop"`
	KGenomes SourceConfig `mapstructure:"1k_genomes" yaml:"1k_genomes"`
}

// ReconcileConfig contains settings of the reconciliation.
type ReconcileConfig struct {
	// FailOnCollision aborts the run when an accession is claimed by
	// more than one metadata row. By default collisions are reported
	// and both rows are kept.
	FailOnCollision *bool `mapstructure:"fail_on_collision" yaml:"fail_on_collision"`

	// WithProgress shows progress bars for long operations.
	WithProgress *bool `mapstructure:"with_progress" yaml:"with_progress"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// Default paths follow the layout of the mitoTree input directory.
func New() *Config {
	f, t := false, true
	res := &Config{
		Paths: PathsConfig{
			RootDir:    ".",
			AllReps:    "inputfiles/metadata/mitoTree_representatives.csv",
			OutputDir:  "output",
			MergedReps: "inputfiles/metadata/motif_representatives.csv",
			MergedMeta: "inputfiles/metadata/metadata_representatives.csv",
			Report:     "output/reconcile_report.json",
		},
		Sources: SourcesConfig{
			NCBI: SourceConfig{
				Meta:     "inputfiles/ncbi/ncbi_metadata.csv",
				IDColumn: schema.ColAccession,
				Filtered: "output/ncbi_reps.csv",
			},
			EMPOP: SourceConfig{
				Meta:     "inputfiles/empop/empop_metadata.csv",
				Legacy:   "inputfiles/empop/empop_reps.csv",
				IDColumn: schema.ColSampleID,
				Filtered: "output/empop_reps.csv",
			},
			KGenomes: SourceConfig{
				Meta:     "inputfiles/1k_genomes/1k_metadata.csv",
				IDColumn: schema.ColAccession,
				Filtered: "output/1k_reps.csv",
			},
		},
		Reconcile: ReconcileConfig{
			FailOnCollision: &f,
			WithProgress:    &t,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: min(runtime.NumCPU(), len(schema.Sources())),
	}

	return res
}

// Source returns configuration of a source.
func (c *Config) Source(src schema.Source) SourceConfig {
	switch src {
	case schema.NCBI:
		return c.Sources.NCBI
	case schema.EMPOP:
		return c.Sources.EMPOP
	case schema.KGenomes:
		return c.Sources.KGenomes
	}
	return SourceConfig{}
}

// Path resolves p against Paths.RootDir.
// Absolute and empty paths are returned unchanged.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Paths.RootDir, p)
}

// RepsPath returns the representatives table used by a source.
func (c *Config) RepsPath(src schema.Source) string {
	if p := c.Source(src).Reps; p != "" {
		return c.Path(p)
	}
	return c.Path(c.Paths.AllReps)
}

// LegacyPath returns the legacy export of a source, or an empty string
// if the source has none.
func (c *Config) LegacyPath(src schema.Source) string {
	return c.Path(c.Source(src).Legacy)
}

// NormalizedPath returns where the repaired legacy table of a source
// is written.
func (c *Config) NormalizedPath(src schema.Source) string {
	return filepath.Join(
		c.Path(c.Paths.OutputDir),
		src.Key()+"_reps_normalized.csv",
	)
}

// IsFailOnCollision returns true if collisions must abort the run.
func (c *Config) IsFailOnCollision() bool {
	return c.Reconcile.FailOnCollision != nil && *c.Reconcile.FailOnCollision
}

// IsWithProgress returns true if progress bars are shown.
func (c *Config) IsWithProgress() bool {
	return c.Reconcile.WithProgress != nil && *c.Reconcile.WithProgress
}
