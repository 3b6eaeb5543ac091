package analyzer

import (
	"github.com/panbanda/merit/internal/vcs"
	"github.com/panbanda/merit/pkg/models"
)

// Quantity accumulates change-volume metrics over an author's commits.
// A commit whose stats cannot be read is skipped: it contributes zeros
// rather than aborting the batch.
func Quantity(src Source, commits []vcs.Commit) models.QuantityMetrics {
	m := models.QuantityMetrics{Commits: len(commits)}
	for _, c := range commits {
		insertions, deletions, files := src.CommitStats(c)
		m.Insertions += insertions
		m.Deletions += deletions
		m.FilesChanged += files
	}
	m.NetLines = m.Insertions - m.Deletions
	m.TotalChanged = m.Insertions + m.Deletions
	return m
}
