package report

import (
	"fmt"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/panbanda/merit/internal/output"
)

// maxColumnWidth caps spreadsheet column auto-sizing.
const maxColumnWidth = 20

// exportTimestamp is the layout of the timestamp embedded in export
// filenames.
const exportTimestamp = "20060102150405"

// Export writes the table to a timestamped xlsx workbook inside dir and
// returns the path of the file it created.
func Export(dir string, table *output.Table) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	widths := make([]int, len(table.Headers))
	writeRow := func(rowIdx int, cells []string) error {
		for colIdx, value := range cells {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
			if colIdx < len(widths) {
				if n := utf8.RuneCountInString(value); n > widths[colIdx] {
					widths[colIdx] = n
				}
			}
		}
		return nil
	}

	if err := writeRow(1, table.Headers); err != nil {
		return "", fmt.Errorf("writing header row: %w", err)
	}
	for i, row := range table.Rows {
		if err := writeRow(i+2, row); err != nil {
			return "", fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	for colIdx, width := range widths {
		name, err := excelize.ColumnNumberToName(colIdx + 1)
		if err != nil {
			return "", err
		}
		w := float64(width + 2)
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("result-%s.xlsx", time.Now().Format(exportTimestamp)))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}
	return path, nil
}
