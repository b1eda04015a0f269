// Package mtreps reconciles mitochondrial haplogroup representatives and
// sample metadata coming from several independent repositories into
// canonical, source-tagged tables ready for publication.
package mtreps

import (
	"context"

	"github.com/gnames/mtreps/pkg/profiles"
	"github.com/gnames/mtreps/pkg/schema"
)

var (
	// Version is set during the build.
	Version = "v0.1.0"
	// Build is a timestamp of the build.
	Build = "n/a"
)

// Reconciler builds canonical representatives and metadata tables
// out of per-source inputs.
// Config is provided during construction.
type Reconciler interface {
	// Reconcile loads and validates every input, filters each source
	// against its own metadata, merges the results and writes all
	// outputs. Nothing is written if any input is malformed.
	Reconcile(ctx context.Context) (*Report, error)
}

// Report summarizes one reconciliation run.
type Report struct {
	// Version of mtreps that produced the outputs.
	Version string `json:"version"`

	// Sources contains statistics for every source in processing order.
	Sources []SourceReport `json:"sources"`

	// MergedMotifs is the number of rows in the canonical
	// representatives table.
	MergedMotifs int `json:"mergedMotifs"`

	// MergedAccessions is the number of accessions over all merged
	// profile sets.
	MergedAccessions int `json:"mergedAccessions"`

	// MetadataRows is the number of rows in the unified metadata table.
	MetadataRows int `json:"metadataRows"`

	// Collisions lists accessions claimed by more than one metadata row.
	Collisions []profiles.Collision `json:"collisions"`

	// RepresentativesID is a UUID v5 of the canonical representatives
	// file content. Identical inputs give identical IDs.
	RepresentativesID string `json:"representativesId"`

	// MetadataID is a UUID v5 of the canonical metadata file content.
	MetadataID string `json:"metadataId"`

	// Duration of the run.
	Duration string `json:"duration"`
}

// SourceReport contains filtering statistics of one source.
type SourceReport struct {
	Source schema.Source `json:"source"`
	profiles.FilterStats
	MetadataRows int  `json:"metadataRows"`
	Normalized   bool `json:"normalized"`
}
