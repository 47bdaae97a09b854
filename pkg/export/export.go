// Package export renders an assembled checklist as CSV or XLSX bytes.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/aodesk/ao-analyzer/models"
)

var checklistHeaders = []string{"key", "label", "status", "source", "submission_path"}

// ChecklistCSV renders the checklist as UTF-8 CSV with a header row.
func ChecklistCSV(rows []models.ChecklistRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(checklistHeaders); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Key, row.Label, row.Status, row.Source, row.SubmissionPath}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv row %s: %w", row.Key, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}

// ChecklistXLSX renders the checklist as a single-sheet XLSX workbook.
func ChecklistXLSX(rows []models.ChecklistRow) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Checklist"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range checklistHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		values := []string{row.Key, row.Label, row.Status, row.Source, row.SubmissionPath}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 40)
	_ = f.SetColWidth(sheet, "C", "C", 12)
	_ = f.SetColWidth(sheet, "D", "E", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
