package reporting

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// BuildWorkbook renders a measure report as a single-sheet Excel workbook.
// Columns are the sorted union of result keys so ragged rows still line up.
func BuildWorkbook(report *MeasureReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	f.SetSheetName(f.GetSheetName(0), sheet)

	columns := columnOrder(report.Results)

	f.SetCellValue(sheet, "A1", report.MeasureName)
	f.SetCellValue(sheet, "A2", "Generated "+report.GeneratedAt.Format("2006-01-02 15:04 MST"))

	headerRow := 4
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		f.SetCellValue(sheet, cell, col)
	}

	for r, row := range report.Results {
		for i, col := range columns {
			cell, err := excelize.CoordinatesToCellName(i+1, headerRow+1+r)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if v, ok := row[col]; ok && v != nil {
				f.SetCellValue(sheet, cell, v)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func columnOrder(results []map[string]interface{}) []string {
	seen := map[string]bool{}
	var columns []string
	for _, row := range results {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)
	return columns
}
