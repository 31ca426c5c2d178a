package outwriter

import (
	"fmt"
	"strings"

	"happydash/domain/happiness"
	"happydash/internal/analysis"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// writeXLSX writes a summary sheet followed by one sheet per analysis
func writeXLSX(path string, d *analysis.Dashboard, frames []happiness.Frame) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	p := d.Params
	summary := [][]any{
		{"Cycle", d.CycleID.String()},
		{"Year range", fmt.Sprintf("%d-%d", p.YearMin, p.YearMax)},
		{"Countries filter", strings.Join(p.Countries, ", ")},
		{"Countries", d.Summary.Countries},
		{"Years", d.Summary.Years},
		{"Rows", d.Summary.Rows},
		{},
		{"Analysis", "Title", "Status", "Rows", "Reason"},
	}
	for _, fr := range frames {
		reason := fr.Reason
		if len(fr.Missing) > 0 {
			reason = "missing: " + strings.Join(fr.Missing, ", ")
		}
		summary = append(summary, []any{string(fr.Analysis), fr.Title, string(fr.Status), len(fr.Rows), reason})
	}
	for i, warning := range d.Warnings {
		if i == 0 {
			summary = append(summary, []any{}, []any{"Warnings"})
		}
		summary = append(summary, []any{warning})
	}
	if err := setRows(f, summarySheet, summary); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A8", "E8", bold); err != nil {
		return err
	}

	for _, fr := range frames {
		sheet := string(fr.Analysis)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		header := make([]any, len(fr.Columns))
		for i, c := range fr.Columns {
			header[i] = c
		}
		rows := append([][]any{header}, fr.Rows...)
		if err := setRows(f, sheet, rows); err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(max(len(fr.Columns), 1), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
