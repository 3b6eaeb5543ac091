package analyzer

import (
	"strings"
	"testing"

	"github.com/panbanda/merit/pkg/models"
)

func TestIssueDetector_EmptyInput(t *testing.T) {
	d := NewIssueDetector()
	tally := d.Analyze(nil)
	if tally.Total() != 0 {
		t.Errorf("empty input should yield empty tally, got %v", tally)
	}
}

func TestIssueDetector_DeadCode(t *testing.T) {
	d := NewIssueDetector()
	tally := d.Analyze([]string{
		"# TODO: wire up the cache",
		"x = 1",
		"# FIXME broken on windows",
		"# HACK temporary",
		"def noop(): pass",
		"class Empty: pass",
	})
	if got := tally[models.IssueDeadCode]; got != 5 {
		t.Errorf("dead_code = %d, want 5", got)
	}
}

func TestIssueDetector_Security(t *testing.T) {
	d := NewIssueDetector()
	tally := d.Analyze([]string{
		`result = eval(user_input)`,
		`exec(payload)`,
		`subprocess.run(cmd, shell=True)`,
		`os.system("rm -rf /tmp/x")`,
		`obj = pickle.loads(blob)`,
		`cfg = yaml.load(f)`,
	})
	if got := tally[models.IssueSecurity]; got != 6 {
		t.Errorf("security = %d, want 6", got)
	}
}

func TestIssueDetector_Performance(t *testing.T) {
	d := NewIssueDetector()
	tally := d.Analyze([]string{
		`for i in range(len(items)):`,
		`s += a + b + c`,
		`out.append(x)`,
		`out.append(y)`,
	})
	if got := tally[models.IssuePerformance]; got != 3 {
		t.Errorf("performance = %d, want 3", got)
	}
}

func TestIssueDetector_Style(t *testing.T) {
	d := NewIssueDetector()

	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"odd indentation", []string{"def f():", "   x = 1"}, 1},
		{"extra assignment spaces", []string{"x =  1"}, 1},
		{"trailing whitespace", []string{"x = 1 "}, 1},
		{"camel case name", []string{"myVar = 2"}, 1},
		{"clean line", []string{"total = 0"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally := d.Analyze(tt.lines)
			if got := tally[models.IssueStyle]; got != tt.want {
				t.Errorf("style = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIssueDetector_Duplicates(t *testing.T) {
	d := NewIssueDetector()

	long := "value = compute_the_important_thing(a, b)"
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{
			"repeat within window",
			[]string{long, "x = 1", long},
			1,
		},
		{
			"repeat outside window",
			[]string{long, "1", "2", "3", "4", "5", "6", long},
			0,
		},
		{
			"short lines never count",
			[]string{"x = 1", "x = 1"},
			0,
		},
		{
			"non-overlapping pairs",
			[]string{long, long, long, long},
			2,
		},
		{
			"repeat differing only in case",
			[]string{long, "x = 1", strings.ToUpper(long)},
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally := d.Analyze(tt.lines)
			if got := tally[models.IssueDuplication]; got != tt.want {
				t.Errorf("duplication = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIssueDetector_DuplicateOptions(t *testing.T) {
	d := NewIssueDetector(WithDuplicateMinLength(5), WithDuplicateWindow(1))
	tally := d.Analyze([]string{"abcdef", "abcdef"})
	if got := tally[models.IssueDuplication]; got != 1 {
		t.Errorf("duplication with custom thresholds = %d, want 1", got)
	}
}

func TestIssueDetector_MissingDocs(t *testing.T) {
	d := NewIssueDetector()

	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{
			"undocumented function",
			[]string{"def fetch(url):", "    return get(url)"},
			1,
		},
		{
			"documented next line",
			[]string{"def fetch(url):", `    """Fetch a URL."""`, "    return get(url)"},
			0,
		},
		{
			"documented same line",
			[]string{`def fetch(url): """Fetch."""`},
			0,
		},
		{
			"private functions are skipped",
			[]string{"def _helper():", "    return 1"},
			0,
		},
		{
			"undocumented class",
			[]string{"class Loader:", "    pass"},
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally := d.Analyze(tt.lines)
			if got := tally[models.IssueMissingDocs]; got != tt.want {
				t.Errorf("missing_docs = %d, want %d", got, tt.want)
			}
		})
	}
}
