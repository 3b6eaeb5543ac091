package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/merit/pkg/config"
)

// scoreContext builds a cli.Context carrying the score command's flags.
func scoreContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("score", flag.ContinueOnError)
	for _, f := range scoreCmd().Flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestApplyScoreFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Repo.Authors = []string{"from-config"}
	cfg.Output.Format = "markdown"

	c := scoreContext(t,
		"--repo", "/srv/project",
		"--authors", "alice",
		"--authors", "bob",
		"--since", "2024-01-01",
		"--until", "2024-01-31",
		"--no-export",
		"--export-dir", "/tmp/reports",
	)
	applyScoreFlags(c, cfg)

	assert.Equal(t, "/srv/project", cfg.Repo.Path)
	assert.Equal(t, []string{"alice", "bob"}, cfg.Repo.Authors)
	assert.Equal(t, "2024-01-01", cfg.Window.Since)
	assert.Equal(t, "2024-01-31", cfg.Window.Until)
	assert.False(t, cfg.Export.Enabled)
	assert.Equal(t, "/tmp/reports", cfg.Export.Dir)
	// --format was not passed, so the config file value survives.
	assert.Equal(t, "markdown", cfg.Output.Format)
}

func TestApplyScoreFlagsFormatOverride(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Format = "markdown"

	applyScoreFlags(scoreContext(t, "--format", "json"), cfg)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestApplyScoreFlagsKeepsConfigValues(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Repo.Path = "/from/config"
	cfg.Repo.Authors = []string{"carol"}

	applyScoreFlags(scoreContext(t), cfg)

	assert.Equal(t, "/from/config", cfg.Repo.Path)
	assert.Equal(t, []string{"carol"}, cfg.Repo.Authors)
	assert.True(t, cfg.Export.Enabled)
}

func TestResolveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merit.toml")
	require.NoError(t, os.WriteFile(path, []byte("[repo]\npath = \"/explicit\"\n"), 0o644))

	cfg, err := resolveConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/explicit", cfg.Repo.Path)

	_, err = resolveConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	cfg, err = resolveConfig("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
}
