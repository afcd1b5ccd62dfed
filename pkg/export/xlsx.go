package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/shifttrack/pkg/core/model"
)

const xlsxSheet = "Report"

// WriteXLSX writes the report as a single-sheet workbook with a frozen,
// bold header row
func WriteXLSX(w io.Writer, shifts []model.Shift) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, row := range Values(shifts) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetPanes(xlsxSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

// Write dispatches to the writer for format
func Write(w io.Writer, format Format, shifts []model.Shift) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, shifts)
	case FormatXLSX:
		return WriteXLSX(w, shifts)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
