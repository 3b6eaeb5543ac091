package analyzer

import (
	"regexp"
	"strings"

	"github.com/panbanda/merit/pkg/models"
)

// issueRule binds one issue category to its detection patterns. The
// catalogue below is data, not logic: adding a category means adding an
// entry, not new code. Patterns are applied case-insensitively across the
// whole multi-line blob and counted as non-overlapping matches.
type issueRule struct {
	category models.IssueCategory
	patterns []string
}

// issueCatalogue is the ordered pattern table for the textual detector.
// Duplicated blocks and missing docstrings need lookbehind-style matching
// that RE2 does not offer, so those two categories are line scans (below)
// with the same observable counts.
var issueCatalogue = []issueRule{
	{
		category: models.IssueDeadCode,
		patterns: []string{
			`^\s*#.*TODO.*$`,
			`^\s*#.*FIXME.*$`,
			`^\s*#.*HACK.*$`,
			`^\s*def\s+\w+.*:\s*pass\s*$`,
			`^\s*class\s+\w+.*:\s*pass\s*$`,
		},
	},
	{
		category: models.IssueSecurity,
		patterns: []string{
			`eval\s*\(`,
			`exec\s*\(`,
			`subprocess\..*shell=True`,
			`os\.system\s*\(`,
			`pickle\.loads?\s*\(`,
			`yaml\.load\s*\(`,
		},
	},
	{
		category: models.IssuePerformance,
		patterns: []string{
			`for\s+\w+\s+in\s+range\s*\(\s*len\s*\(`,
			`\+\s*=.*\+.*\+`,
			`\.append\s*\(.*\)\s*\n.*\.append\s*\(`,
		},
	},
	{
		category: models.IssueStyle,
		patterns: []string{
			`^\s{1,3}\S`,
			`=\s{2,}`,
			`\s+$`,
			`^[a-z]+[A-Z]`,
		},
	},
}

// IssueDetector scans added-line text for quality issues. It is purely
// textual and does not require the content to be syntactically valid.
type IssueDetector struct {
	rules []compiledRule

	dupMinLength int
	dupWindow    int
}

type compiledRule struct {
	category models.IssueCategory
	patterns []*regexp.Regexp
}

// IssueOption is a functional option for configuring IssueDetector.
type IssueOption func(*IssueDetector)

// WithDuplicateMinLength sets the minimum line length considered for
// duplicated-block detection.
func WithDuplicateMinLength(n int) IssueOption {
	return func(d *IssueDetector) {
		if n > 0 {
			d.dupMinLength = n
		}
	}
}

// WithDuplicateWindow sets how many lines ahead a repetition may appear.
func WithDuplicateWindow(n int) IssueOption {
	return func(d *IssueDetector) {
		if n > 0 {
			d.dupWindow = n
		}
	}
}

// NewIssueDetector creates a detector with the default pattern catalogue.
func NewIssueDetector(opts ...IssueOption) *IssueDetector {
	d := &IssueDetector{
		dupMinLength: 20,
		dupWindow:    5,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.rules = make([]compiledRule, 0, len(issueCatalogue))
	for _, rule := range issueCatalogue {
		compiled := compiledRule{category: rule.category}
		for _, pattern := range rule.patterns {
			compiled.patterns = append(compiled.patterns, regexp.MustCompile(`(?im)`+pattern))
		}
		d.rules = append(d.rules, compiled)
	}
	return d
}

// Analyze scans an author's added lines and tallies issues per category.
// Counts are summed per category; a match is never deduplicated across
// categories.
func (d *IssueDetector) Analyze(lines []string) models.IssueTally {
	tally := models.NewIssueTally()
	if len(lines) == 0 {
		return tally
	}

	blob := strings.Join(lines, "\n")
	for _, rule := range d.rules {
		for _, re := range rule.patterns {
			tally.Add(rule.category, len(re.FindAllStringIndex(blob, -1)))
		}
	}

	tally.Add(models.IssueDuplication, d.countDuplicateBlocks(lines))
	tally.Add(models.IssueMissingDocs, countMissingDocstrings(lines))

	return tally
}

// countDuplicateBlocks counts lines of at least dupMinLength characters
// that reappear within dupWindow following lines. Comparison is
// case-insensitive like the pattern rules. Matches do not overlap:
// scanning resumes after a found repetition.
func (d *IssueDetector) countDuplicateBlocks(lines []string) int {
	folded := make([]string, len(lines))
	for i, line := range lines {
		folded[i] = strings.ToLower(line)
	}

	var count int
	for i := 0; i < len(folded); i++ {
		line := folded[i]
		if len(line) < d.dupMinLength {
			continue
		}
		limit := i + d.dupWindow + 1
		if limit >= len(folded) {
			limit = len(folded) - 1
		}
		for j := i + 1; j <= limit; j++ {
			if strings.HasPrefix(folded[j], line) {
				count++
				i = j
				break
			}
		}
	}
	return count
}

var (
	defLineRe   = regexp.MustCompile(`(?i)^\s*def\s+[^_\s]`)
	classLineRe = regexp.MustCompile(`(?i)^\s*class\s+\w+`)
)

// countMissingDocstrings counts public function and class definitions whose
// body does not open with a docstring marker.
func countMissingDocstrings(lines []string) int {
	var count int
	for i, line := range lines {
		if !defLineRe.MatchString(line) && !classLineRe.MatchString(line) {
			continue
		}
		colon := strings.LastIndex(line, ":")
		if colon < 0 {
			continue
		}
		if hasDocstringMarker(line[colon+1:], lines[i+1:]) {
			continue
		}
		count++
	}
	return count
}

// hasDocstringMarker reports whether the first non-blank content after a
// definition's colon is a docstring opener.
func hasDocstringMarker(rest string, following []string) bool {
	if trimmed := strings.TrimSpace(rest); trimmed != "" {
		return strings.HasPrefix(trimmed, `"""`)
	}
	for _, line := range following {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		return strings.HasPrefix(trimmed, `"""`)
	}
	return false
}
