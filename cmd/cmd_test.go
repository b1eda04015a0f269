package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/mtreps/internal/iotesting"
	"github.com/gnames/mtreps/pkg/config"
	"github.com/gnames/mtreps/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCmd_Subcommands verifies all commands are registered.
func TestRootCmd_Subcommands(t *testing.T) {
	assert.Equal(t, "mtreps", rootCmd.Use)
	for _, v := range []string{"merge", "normalize", "config"} {
		cmd, _, err := rootCmd.Find([]string{v})
		require.NoError(t, err, v)
		assert.Equal(t, v, cmd.Name())
	}
	assert.NotNil(t, rootCmd.Flags().Lookup("version"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

// TestGetMergeCmd_Flags verifies merge flags and their shorthands.
func TestGetMergeCmd_Flags(t *testing.T) {
	cmd := getMergeCmd()
	assert.Equal(t, "merge", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.Contains(t, cmd.Long, "atomically")

	tests := []struct {
		name, short string
	}{
		{"root-dir", "r"},
		{"output-dir", "o"},
		{"archive", "a"},
		{"publish-dir", "p"},
		{"fail-on-collision", ""},
		{"quiet", "q"},
		{"jobs", "j"},
	}
	for _, v := range tests {
		fl := cmd.Flags().Lookup(v.name)
		require.NotNil(t, fl, v.name)
		assert.Equal(t, v.short, fl.Shorthand, v.name)
	}
}

func TestMergeOptions(t *testing.T) {
	t.Run("no flags change nothing", func(t *testing.T) {
		cmd := getMergeCmd()
		require.NoError(t, cmd.ParseFlags(nil))
		assert.Empty(t, mergeOptions(cmd))
	})

	t.Run("flags override config", func(t *testing.T) {
		cmd := getMergeCmd()
		err := cmd.ParseFlags([]string{
			"-r", "/data/mitotree",
			"-o", "tmp",
			"--fail-on-collision",
			"-q",
			"-j", "2",
			"-p", "web/src/data",
			"-a", "output/reps.sqlite",
		})
		require.NoError(t, err)

		cfg := config.New()
		cfg.Update(mergeOptions(cmd))
		assert.Equal(t, "/data/mitotree", cfg.Paths.RootDir)
		assert.Equal(t, "tmp", cfg.Paths.OutputDir)
		assert.True(t, cfg.IsFailOnCollision())
		assert.False(t, cfg.IsWithProgress())
		assert.Equal(t, 2, cfg.JobsNumber)
		assert.Equal(t, "web/src/data", cfg.Paths.PublishDir)
		assert.Equal(t, "output/reps.sqlite", cfg.Paths.Archive)
	})
}

func TestRunMerge(t *testing.T) {
	dir := t.TempDir()
	iotesting.WriteFiles(t, dir, map[string]string{
		"inputfiles/metadata/mitoTree_representatives.csv": "motif,profiles\nL0a2a1,ACC100 X S1\n",
		"inputfiles/ncbi/ncbi_metadata.csv":                "accession\nACC100\n",
		"inputfiles/empop/empop_reps.csv":                  "motif,num_profiles,profiles\nL0a2a1,1,S1\n",
		"inputfiles/empop/empop_metadata.csv":              "sample_id,accession\nS1,ACC200\n",
		"inputfiles/1k_genomes/1k_metadata.csv":            "accession\nKG1\n",
	})

	cfg := iotesting.Config(dir)
	res, err := runMerge(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, res.MergedMotifs)

	data, err := os.ReadFile(cfg.Path(cfg.Paths.MergedReps))
	require.NoError(t, err)
	assert.Equal(t, "motif,profiles\nL0a2a1,ACC100 ACC200\n", string(data))
}

func TestRunNormalize(t *testing.T) {
	legacy := "motif,num_profiles,profiles\nL1b,2,A1,A2\n"
	normalized := "motif,num_profiles,profiles\nL1b,2,A1 A2\n"

	t.Run("file to output", func(t *testing.T) {
		dir := t.TempDir()
		iotesting.WriteFiles(t, dir, map[string]string{"in.csv": legacy})
		in := filepath.Join(dir, "in.csv")
		out := filepath.Join(dir, "out.csv")

		err := runNormalize(iotesting.Config(dir), []string{in}, out)
		require.NoError(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, normalized, string(data))
		data, err = os.ReadFile(in)
		require.NoError(t, err)
		assert.Equal(t, legacy, string(data))
	})

	t.Run("file in place", func(t *testing.T) {
		dir := t.TempDir()
		iotesting.WriteFiles(t, dir, map[string]string{"in.csv": legacy})
		in := filepath.Join(dir, "in.csv")

		require.NoError(t, runNormalize(iotesting.Config(dir), []string{in}, ""))
		data, err := os.ReadFile(in)
		require.NoError(t, err)
		assert.Equal(t, normalized, string(data))
	})

	t.Run("configured sources", func(t *testing.T) {
		dir := t.TempDir()
		iotesting.WriteFiles(t, dir, map[string]string{
			"inputfiles/empop/empop_reps.csv": legacy,
		})
		cfg := iotesting.Config(dir)

		require.NoError(t, runNormalize(cfg, nil, ""))
		data, err := os.ReadFile(cfg.NormalizedPath(schema.EMPOP))
		require.NoError(t, err)
		assert.Equal(t, normalized, string(data))
	})
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := iotesting.Config("/data/mitotree")
	require.NoError(t, showConfig(&buf, cfg, true))

	out := buf.String()
	assert.Contains(t, out, "root_dir: /data/mitotree")
	assert.Contains(t, out, "1k_genomes:")
	assert.Contains(t, out, "id_column: sample_id")
	assert.NotContains(t, out, "homedir")

	buf.Reset()
	err := showConfig(&buf, &config.Config{}, true)
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}
