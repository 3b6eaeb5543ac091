package analyzer

import (
	"context"
	"errors"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/panbanda/merit/internal/metrics"
	"github.com/panbanda/merit/internal/vcs"
	"github.com/panbanda/merit/pkg/models"
)

// ErrNoCommits is the distinct "no data" outcome: no commits matched any
// target author inside the window.
var ErrNoCommits = errors.New("no commits found for target authors in the window")

// Source provides the commit history access the aggregator needs. It is
// satisfied by *history.Extractor.
type Source interface {
	CommitsByAuthor(targets []string, window models.Window) (map[string][]vcs.Commit, error)
	CommitStats(c vcs.Commit) (insertions, deletions, files int)
	AddedLines(c vcs.Commit) []string
}

// structuralKeywords mark lines worth feeding to the structural analyzer.
var structuralKeywords = []string{"def ", "class ", "import "}

// ContributionAnalyzer orchestrates the per-author pipeline: gather
// commits, extract added lines, run both detectors, compute metrics.
type ContributionAnalyzer struct {
	source    Source
	issues    *IssueDetector
	structure *StructuralAnalyzer
	onAuthor  func(name string, index, total int)

	qualityWeight  float64
	quantityWeight float64
}

// ContributionOption is a functional option for configuring ContributionAnalyzer.
type ContributionOption func(*ContributionAnalyzer)

// WithIssueDetector replaces the default issue detector.
func WithIssueDetector(d *IssueDetector) ContributionOption {
	return func(a *ContributionAnalyzer) {
		a.issues = d
	}
}

// WithStructuralAnalyzer replaces the default structural analyzer.
func WithStructuralAnalyzer(s *StructuralAnalyzer) ContributionOption {
	return func(a *ContributionAnalyzer) {
		a.structure = s
	}
}

// WithAuthorHook registers a callback invoked before each author is
// analyzed, in processing order, with the author's position and the
// matched-author total for progress reporting.
func WithAuthorHook(fn func(name string, index, total int)) ContributionOption {
	return func(a *ContributionAnalyzer) {
		a.onAuthor = fn
	}
}

// WithWeights overrides the default 80/20 quality/quantity weighting of
// the final score.
func WithWeights(quality, quantity float64) ContributionOption {
	return func(a *ContributionAnalyzer) {
		if quality >= 0 && quantity >= 0 && quality+quantity > 0 {
			a.qualityWeight = quality
			a.quantityWeight = quantity
		}
	}
}

// NewContributionAnalyzer creates an aggregator over the given source.
func NewContributionAnalyzer(source Source, opts ...ContributionOption) *ContributionAnalyzer {
	a := &ContributionAnalyzer{
		source:         source,
		issues:         NewIssueDetector(),
		structure:      NewStructuralAnalyzer(),
		qualityWeight:  metrics.QualityWeight,
		quantityWeight: metrics.QuantityWeight,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze produces one finalized ScoreRecord per matched author.
func (a *ContributionAnalyzer) Analyze(targets []string, window models.Window) ([]models.ScoreRecord, error) {
	return a.AnalyzeContext(context.Background(), targets, window)
}

// AnalyzeContext is Analyze with cancellation checked between authors.
func (a *ContributionAnalyzer) AnalyzeContext(ctx context.Context, targets []string, window models.Window) ([]models.ScoreRecord, error) {
	buckets, err := a.source.CommitsByAuthor(targets, window)
	if err != nil {
		return nil, err
	}
	if len(buckets) == 0 {
		return nil, ErrNoCommits
	}

	// Stable processing order across runs.
	authors := make([]string, 0, len(buckets))
	for author := range buckets {
		authors = append(authors, author)
	}
	sort.Strings(authors)

	records := make([]models.ScoreRecord, 0, len(authors))
	for i, author := range authors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if a.onAuthor != nil {
			a.onAuthor(author, i, len(authors))
		}
		records = append(records, a.analyzeAuthor(author, buckets[author], window))
	}

	FinalizeWeighted(records, a.qualityWeight, a.quantityWeight)
	return records, nil
}

// analyzeAuthor runs quantity and quality analysis for one author. The
// record's quantity and final scores stay at zero until Finalize fills
// them in from the cohort average.
func (a *ContributionAnalyzer) analyzeAuthor(author string, commits []vcs.Commit, window models.Window) models.ScoreRecord {
	quantity := Quantity(a.source, commits)

	var added []string
	for _, c := range commits {
		added = append(added, a.source.AddedLines(c)...)
	}

	tally := models.NewIssueTally()
	if len(added) > 0 {
		tally.Merge(a.issues.Analyze(added))
		if structural := filterStructuralLines(added); structural != "" {
			tally.Merge(a.structure.Analyze(structural))
		}
	}

	totalIssues := tally.Total()
	quality := metrics.Quality(totalIssues, quantity.TotalChanged)

	return models.ScoreRecord{
		Author:            author,
		Period:            window.Label(),
		Commits:           quantity.Commits,
		TotalChanged:      quantity.TotalChanged,
		TotalIssues:       totalIssues,
		IssuesPerKLOC:     quality.IssuesPerKLOC,
		IssueRatePerMille: quality.IssueRatePerMille,
		QualityScore:      quality.Score,
	}
}

// filterStructuralLines keeps only lines that look like definitions or
// imports, joined back into one blob for parsing.
func filterStructuralLines(lines []string) string {
	var kept []string
	for _, line := range lines {
		for _, keyword := range structuralKeywords {
			if strings.Contains(line, keyword) {
				kept = append(kept, line)
				break
			}
		}
	}
	return strings.Join(kept, "\n")
}

// Finalize fills in quantity and final scores with the default weighting.
func Finalize(records []models.ScoreRecord) {
	FinalizeWeighted(records, metrics.QualityWeight, metrics.QuantityWeight)
}

// FinalizeWeighted fills in quantity and final scores once the whole
// cohort is known. Quantity scoring is relative to the cross-author
// average of total changed lines, so it cannot run during the first pass.
func FinalizeWeighted(records []models.ScoreRecord, qualityWeight, quantityWeight float64) {
	if len(records) == 0 {
		return
	}

	volumes := make([]float64, len(records))
	for i, rec := range records {
		volumes[i] = float64(rec.TotalChanged)
	}
	avg := stat.Mean(volumes, nil)

	for i := range records {
		records[i].QuantityScore = metrics.QuantityScore(records[i].TotalChanged, avg)
		records[i].FinalScore = metrics.WeightedScore(records[i].QualityScore, records[i].QuantityScore, qualityWeight, quantityWeight)
	}
}

// Close releases analyzer resources.
func (a *ContributionAnalyzer) Close() {
	a.structure.Close()
}
