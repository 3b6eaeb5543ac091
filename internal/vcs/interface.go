// Package vcs provides version control system abstractions.
package vcs

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository provides read-only access to git repository operations.
type Repository interface {
	// Log returns a commit iterator starting from HEAD, restricted to the
	// given time range.
	Log(opts *LogOptions) (CommitIterator, error)
	// DiffTrees computes the changes between two trees. A nil from-tree
	// diffs the to-tree against an empty baseline, which is how root
	// commits are handled.
	DiffTrees(from, to Tree) (Changes, error)
	// CurrentBranch returns the checked-out branch name, the short HEAD
	// hash on a detached HEAD, or "unknown" when neither resolves.
	CurrentBranch() string
}

// LogOptions restricts the commit log query to a half-open time range.
type LogOptions struct {
	Since *time.Time
	Until *time.Time
}

// CommitIterator iterates over commits.
type CommitIterator interface {
	ForEach(fn func(Commit) error) error
	Close()
}

// Commit represents a git commit.
type Commit interface {
	// Hash returns the commit hash.
	Hash() plumbing.Hash
	// NumParents returns the number of parent commits.
	NumParents() int
	// Parent returns the nth parent commit.
	Parent(n int) (Commit, error)
	// Tree returns the tree object for this commit.
	Tree() (Tree, error)
	// Stats returns per-file change stats for this commit.
	Stats() (object.FileStats, error)
	// Author returns commit author information.
	Author() object.Signature
}

// Tree represents a git tree object.
type Tree interface {
	// Hash returns the tree hash.
	Hash() plumbing.Hash
}

// Changes represents a collection of file changes between trees.
type Changes []Change

// Change represents a single file change.
type Change interface {
	// FromName returns the source file name (empty for new files).
	FromName() string
	// ToName returns the destination file name (empty for deleted files).
	ToName() string
	// Patch computes the patch for this change.
	Patch() (Patch, error)
}

// Patch represents a diff patch.
type Patch interface {
	// String renders the patch as unified diff text.
	String() string
}

// Opener opens git repositories.
type Opener interface {
	// PlainOpen opens an existing git repository.
	PlainOpen(path string) (Repository, error)
}
