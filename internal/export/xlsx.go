package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"verdicto/internal/domain"
)

const (
	conflictsSheet = "Conflicts"
	summarySheet   = "Summary"
)

// WriteXLSX writes a workbook with a Conflicts sheet (one row per conflict)
// and a Summary sheet describing the comparison.
func WriteXLSX(out io.Writer, comp *domain.Comparison) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), conflictsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetSheetRow(conflictsSheet, "A1", &columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(conflictsSheet, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i := range comp.Conflicts {
		row := conflictToRow(i+1, &comp.Conflicts[i])
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(conflictsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing conflict %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(conflictsSheet, "D", "D", 60); err != nil {
		return err
	}
	if err := f.SetColWidth(conflictsSheet, "H", "H", 50); err != nil {
		return err
	}

	if err := writeSummary(f, comp, bold); err != nil {
		return err
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, comp *domain.Comparison, bold int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	rows := [][]string{
		{"Comparison ID", comp.ID.String()},
		{"Status", string(comp.Status)},
		{"Risk Score", strconv.Itoa(comp.RiskScore)},
		{"Conflicts", strconv.Itoa(len(comp.Conflicts))},
		{"Created At", formatTime(&comp.CreatedAt)},
		{"Completed At", formatTime(comp.CompletedAt)},
	}
	for i, title := range comp.DocumentTitles {
		rows = append(rows, []string{fmt.Sprintf("Document %d", i+1), title})
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}
	lastLabel, err := excelize.CoordinatesToCellName(1, len(rows))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", lastLabel, bold); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "A", "A", 18)
}
