package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/merit/pkg/models"
)

// buildScoreRepo creates a repository with one in-window commit by alice.
func buildScoreRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("x = 1\ny = 2\n"), 0o644))
	_, err = wt.Add("a.py")
	require.NoError(t, err)

	_, err = wt.Commit("add module", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "alice",
			Email: "alice@example.com",
			When:  time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)

	return dir
}

func TestScoreCommand_EndToEnd(t *testing.T) {
	dir := buildScoreRepo(t)
	outPath := filepath.Join(t.TempDir(), "scores.json")

	err := newApp().Run([]string{
		"merit", "score",
		"--repo", dir,
		"--authors", "alice",
		"--since", "2024-01-01",
		"--until", "2024-01-31",
		"--format", "json",
		"--output", outPath,
		"--no-export",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var records []models.ScoreRecord
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "alice", rec.Author)
	assert.Equal(t, 1, rec.Commits)
	assert.Equal(t, 2, rec.TotalChanged)
	assert.Equal(t, 0, rec.TotalIssues)
	assert.Equal(t, 100.0, rec.QualityScore)
	// The sole author sits exactly at the cohort average.
	assert.Equal(t, 80.0, rec.QuantityScore)
	assert.Equal(t, 96.0, rec.FinalScore)
	assert.Equal(t, "2024-01-01 to 2024-01-31", rec.Period)
}

func TestScoreCommand_NoDataSkipsExport(t *testing.T) {
	dir := buildScoreRepo(t)
	exportDir := t.TempDir()

	err := newApp().Run([]string{
		"merit", "score",
		"--repo", dir,
		"--authors", "nobody",
		"--since", "2024-01-01",
		"--until", "2024-01-31",
		"--export-dir", exportDir,
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(exportDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no spreadsheet should be written without matched commits")
}

func TestScoreCommand_MissingAuthors(t *testing.T) {
	dir := buildScoreRepo(t)

	err := newApp().Run([]string{
		"merit", "score",
		"--repo", dir,
		"--since", "2024-01-01",
		"--until", "2024-01-31",
	})
	require.ErrorContains(t, err, "no target authors")
}
