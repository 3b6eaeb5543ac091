// Package history extracts per-author commits and added-line content from a
// git repository.
package history

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/panbanda/merit/internal/vcs"
	"github.com/panbanda/merit/pkg/models"
)

var (
	// ErrPathMissing indicates the configured repository path does not exist.
	ErrPathMissing = errors.New("repository path does not exist")
	// ErrNotRepository indicates the path exists but is not a git repository.
	ErrNotRepository = errors.New("path is not a git repository")
)

// Extractor reads commit metadata and line-level diffs from a repository.
type Extractor struct {
	repo vcs.Repository
	path string
}

// Option is a functional option for configuring Open.
type Option func(*settings)

type settings struct {
	opener vcs.Opener
}

// WithOpener sets the VCS opener (useful for testing).
func WithOpener(opener vcs.Opener) Option {
	return func(s *settings) {
		s.opener = opener
	}
}

// Open validates and opens the repository at path. A missing path or a path
// that is not a valid repository is a fatal setup error; no analysis runs
// against a half-open handle.
func Open(path string, opts ...Option) (*Extractor, error) {
	s := settings{opener: vcs.NewGitOpener()}
	for _, opt := range opts {
		opt(&s)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPathMissing, path)
	}

	repo, err := s.opener.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
	}

	return &Extractor{repo: repo, path: path}, nil
}

// Path returns the repository path this extractor reads from.
func (e *Extractor) Path() string {
	return e.path
}

// Branch returns the currently checked-out branch name.
func (e *Extractor) Branch() string {
	return e.repo.CurrentBranch()
}

// CommitsByAuthor walks the commit log inside the window and buckets
// matching commits by the commit's author display name. A commit matches a
// target name when either string contains the other, and it is assigned to
// at most one bucket: the first matching target wins. Overlapping target
// names can therefore misattribute commits; see the known-heuristic note in
// the project design doc.
func (e *Extractor) CommitsByAuthor(targets []string, window models.Window) (map[string][]vcs.Commit, error) {
	iter, err := e.repo.Log(&vcs.LogOptions{
		Since: &window.Since,
		Until: &window.Until,
	})
	if err != nil {
		return nil, fmt.Errorf("reading commit log: %w", err)
	}
	defer iter.Close()

	byAuthor := make(map[string][]vcs.Commit)
	err = iter.ForEach(func(c vcs.Commit) error {
		author := c.Author()
		if !window.Contains(author.When) {
			return nil
		}
		for _, target := range targets {
			if strings.Contains(author.Name, target) || strings.Contains(target, author.Name) {
				byAuthor[author.Name] = append(byAuthor[author.Name], c)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking commit log: %w", err)
	}

	return byAuthor, nil
}

// CommitStats returns the commit's aggregate insertion, deletion and
// changed-file counts. A commit whose stats cannot be read contributes
// zeros; the batch never aborts over one unreadable commit.
func (e *Extractor) CommitStats(c vcs.Commit) (insertions, deletions, files int) {
	stats, err := c.Stats()
	if err != nil {
		return 0, 0, 0
	}
	for _, fs := range stats {
		insertions += fs.Addition
		deletions += fs.Deletion
	}
	return insertions, deletions, len(stats)
}

// AddedLines returns the lines added by a commit, diffed against its first
// parent or against the empty tree for a root commit. Only lines flagged as
// additions are kept; the diff's own "+++" file headers are not content.
// Any per-commit extraction failure yields an empty list.
func (e *Extractor) AddedLines(c vcs.Commit) []string {
	tree, err := c.Tree()
	if err != nil {
		return nil
	}

	var parentTree vcs.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil
		}
	}

	changes, err := e.repo.DiffTrees(parentTree, tree)
	if err != nil {
		return nil
	}

	var added []string
	for _, change := range changes {
		patch, err := change.Patch()
		if err != nil {
			continue
		}
		for _, line := range strings.Split(patch.String(), "\n") {
			if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
				added = append(added, line[1:])
			}
		}
	}
	return added
}
