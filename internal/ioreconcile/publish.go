package ioreconcile

import (
	"path/filepath"

	"github.com/gnames/gnfmt"
	"github.com/gnames/mtreps/pkg/profiles"
	"github.com/gnames/mtreps/pkg/schema"
)

// Files of the web application data directory.
const (
	PublishProfiles        = "profiles.csv"
	PublishRepresentatives = "mito_representatives.csv"
	PublishLookup          = "representatives.json"
)

// renderPublish prepares copies of canonical tables and a motif to
// accessions lookup for the web application.
func (r *reconciler) renderPublish(
	merged []schema.RepresentativesRow,
	repsData, metaData []byte,
) ([]output, error) {
	dir := r.cfg.Path(r.cfg.Paths.PublishDir)

	lookup := profiles.NewLookup(merged)
	lookupData, err := gnfmt.GNjson{}.Encode(lookup)
	if err != nil {
		return nil, PublishError(dir, err)
	}

	res := []output{
		{path: filepath.Join(dir, PublishProfiles), data: metaData},
		{path: filepath.Join(dir, PublishRepresentatives), data: repsData},
		{path: filepath.Join(dir, PublishLookup), data: lookupData},
	}
	return res, nil
}
