// Package iotesting provides shared test utilities: a small input tree
// of all sources and a configuration pointing to it.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/mtreps/pkg/config"
)

// Inputs is a minimal input tree laid out the same way as defaults of
// config.New(). Accession ACC200 is claimed by NCBI and EMPOP. EMPOP
// samples S1 and S3 appear in the shared representatives table by
// sample_id, the legacy EMPOP export is only repaired.
var Inputs = map[string]string{
	"inputfiles/metadata/mitoTree_representatives.csv": `motif,num_profiles,profiles
L0a2a1,4,ACC100 ACC999 KG1 S1
H1,1,ACC200
L1b,1,S3
`,
	"inputfiles/ncbi/ncbi_metadata.csv": `accession,country
ACC100,DE
ACC200,US
`,
	"inputfiles/empop/empop_reps.csv": `motif,num_profiles,profiles
L0a2a1,2,S1,S2
U5a,1,S3
`,
	"inputfiles/empop/empop_metadata.csv": `sample_id,accession,country
S1,ACC200,AT
S3,EM3,AT
`,
	"inputfiles/1k_genomes/1k_metadata.csv": `accession,population
KG1,GBR
`,
}

// Canonical tables reconciled from Inputs.
const (
	MergedReps = `motif,profiles
H1,ACC200
L0a2a1,ACC100 ACC200 KG1
L1b,EM3
`
	MergedMeta = `accession,country,population,source
ACC100,DE,,NCBI
ACC200,US,,NCBI
ACC200,AT,,EMPOP
EM3,AT,,EMPOP
KG1,,GBR,1K_GENOMES
`
)

// WriteFiles writes files relative to dir, creating directories
// as needed.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for k, v := range files {
		path := filepath.Join(dir, k)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir for %s: %v", k, err)
		}
		if err := os.WriteFile(path, []byte(v), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", k, err)
		}
	}
}

// Config returns a configuration rooted at dir with progress bars
// disabled. Additional options are applied last.
func Config(dir string, opts ...config.Option) *config.Config {
	noProgress := false
	res := config.New()
	res.Update([]config.Option{
		config.OptRootDir(dir),
		config.OptWithProgress(&noProgress),
	})
	res.Update(opts)
	return res
}

// Setup writes Inputs into a temporary directory and returns it with
// a configuration rooted there.
func Setup(t *testing.T, opts ...config.Option) (string, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	WriteFiles(t, dir, Inputs)
	return dir, Config(dir, opts...)
}
