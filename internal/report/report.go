// Package report renders score records as a scorecard table and exports
// them to spreadsheet files.
package report

import (
	"fmt"
	"strconv"

	"github.com/panbanda/merit/internal/output"
	"github.com/panbanda/merit/pkg/models"
)

// scorecardHeaders is the fixed column order of the scorecard.
var scorecardHeaders = []string{
	"Contributor",
	"Period",
	"Commits",
	"Changed Lines",
	"Issues",
	"Issues/KLOC",
	"Issue Rate",
	"Quality",
	"Quantity",
	"Final",
}

// Scorecard builds the renderable table for a cohort of score records.
// Rows keep the order of the input records.
func Scorecard(records []models.ScoreRecord) *output.Table {
	return scorecard(records, false)
}

// ColoredScorecard is Scorecard with the Final column colored by grade.
// Only for terminal display; exports and markdown take the plain table.
func ColoredScorecard(records []models.ScoreRecord) *output.Table {
	return scorecard(records, true)
}

func scorecard(records []models.ScoreRecord, colored bool) *output.Table {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = scorecardRow(rec)
		if colored {
			final := len(rows[i]) - 1
			rows[i][final] = output.ScoreColor(rec.FinalScore, rows[i][final])
		}
	}
	return output.NewTable("Contribution Scorecard", scorecardHeaders, rows, nil, records)
}

func scorecardRow(rec models.ScoreRecord) []string {
	return []string{
		rec.Author,
		rec.Period,
		strconv.Itoa(rec.Commits),
		strconv.Itoa(rec.TotalChanged),
		strconv.Itoa(rec.TotalIssues),
		fmt.Sprintf("%.2f", rec.IssuesPerKLOC),
		fmt.Sprintf("%.2f‰", rec.IssueRatePerMille),
		fmt.Sprintf("%.2f", rec.QualityScore),
		fmt.Sprintf("%.2f", rec.QuantityScore),
		fmt.Sprintf("%.2f", rec.FinalScore),
	}
}
