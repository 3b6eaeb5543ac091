package models

// IssueCategory classifies one kind of detected quality concern.
type IssueCategory string

const (
	IssueDeadCode       IssueCategory = "dead_code"
	IssueDuplication    IssueCategory = "duplication"
	IssueSecurity       IssueCategory = "security"
	IssuePerformance    IssueCategory = "performance"
	IssueStyle          IssueCategory = "style"
	IssueMissingDocs    IssueCategory = "missing_docs"
	IssueHighComplexity IssueCategory = "high_complexity"
	IssueDeepNesting    IssueCategory = "deep_nesting"
	IssueSyntaxError    IssueCategory = "syntax_error"
)

// Categories lists all issue categories in report order.
func Categories() []IssueCategory {
	return []IssueCategory{
		IssueDeadCode,
		IssueDuplication,
		IssueSecurity,
		IssuePerformance,
		IssueStyle,
		IssueMissingDocs,
		IssueHighComplexity,
		IssueDeepNesting,
		IssueSyntaxError,
	}
}

// IssueTally maps issue categories to occurrence counts. A tally is scoped
// to a single author's added lines and is never merged across authors.
type IssueTally map[IssueCategory]int

// NewIssueTally creates an empty tally.
func NewIssueTally() IssueTally {
	return make(IssueTally)
}

// Add increments a category by n.
func (t IssueTally) Add(category IssueCategory, n int) {
	if n != 0 {
		t[category] += n
	}
}

// Merge folds another tally into this one.
func (t IssueTally) Merge(other IssueTally) {
	for category, n := range other {
		t.Add(category, n)
	}
}

// Total returns the sum of all category counts.
func (t IssueTally) Total() int {
	var total int
	for _, n := range t {
		total += n
	}
	return total
}
