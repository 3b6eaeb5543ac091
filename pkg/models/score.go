package models

// QuantityMetrics accumulates an author's change volume over their commits
// in the window. All counters are zero-initialized and strictly additive.
type QuantityMetrics struct {
	Commits      int `json:"commits"`
	Insertions   int `json:"insertions"`
	Deletions    int `json:"deletions"`
	NetLines     int `json:"net_lines"`
	FilesChanged int `json:"files_changed"`
	TotalChanged int `json:"total_changed"`
}

// QualityMetrics holds issue-density figures derived from an author's issue
// count and change volume.
type QualityMetrics struct {
	IssuesPerKLOC     float64 `json:"issues_per_kloc"`
	IssueRatePerMille float64 `json:"issue_rate_per_mille"`
	Score             float64 `json:"score"`
}

// ScoreRecord is the per-author scorecard row. QualityScore and the density
// figures are filled during aggregation; QuantityScore and FinalScore stay
// at zero until Finalize runs with the cohort average, and are never mutated
// afterwards.
type ScoreRecord struct {
	Author            string  `json:"author"`
	Period            string  `json:"period"`
	Commits           int     `json:"commits"`
	TotalChanged      int     `json:"total_changed"`
	TotalIssues       int     `json:"total_issues"`
	IssuesPerKLOC     float64 `json:"issues_per_kloc"`
	IssueRatePerMille float64 `json:"issue_rate_per_mille"`
	QualityScore      float64 `json:"quality_score"`
	QuantityScore     float64 `json:"quantity_score"`
	FinalScore        float64 `json:"final_score"`
}
