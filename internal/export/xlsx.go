package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sadopc/runlog/internal/store"
)

const backupSheet = "Backup"

// ToXLSX writes all records to an Excel backup workbook, one header row plus
// one row per record in the order given (the store returns them ascending by
// date).
func ToXLSX(logs []store.DailyLog, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(backupSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := make([]any, len(backupHeader))
	for i, h := range backupHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(backupSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(backupHeader), 1)
	f.SetCellStyle(backupSheet, "A1", last, headerStyle)
	f.SetColWidth(backupSheet, "A", "A", 12)
	f.SetColWidth(backupSheet, "B", "B", 40)

	for i, l := range logs {
		cellName, _ := excelize.CoordinatesToCellName(1, i+2)
		row := logToRow(l)
		if err := f.SetSheetRow(backupSheet, cellName, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// FromXLSX reads a backup workbook and returns its records. The first row is
// the header and is skipped; rows with an empty date cell are ignored.
// Missing cells fall back to zero values, so partially filled backups still
// load. The caller applies each record via UpsertLog.
func FromXLSX(path string) ([]store.DailyLog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var logs []store.DailyLog
	for i, row := range rows {
		if i == 0 {
			continue
		}
		l := rowToLog(row)
		if l.Date == "" {
			continue
		}
		logs = append(logs, l)
	}
	return logs, nil
}
