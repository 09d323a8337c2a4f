package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/runlog/internal/store"
)

// ToCSV writes all records to a CSV backup with the shared column layout.
func ToCSV(logs []store.DailyLog, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(backupHeader); err != nil {
		return err
	}

	for _, l := range logs {
		row := make([]string, 0, len(backupHeader))
		for _, v := range logToRow(l) {
			switch t := v.(type) {
			case string:
				row = append(row, t)
			case int:
				row = append(row, strconv.Itoa(t))
			case float64:
				row = append(row, strconv.FormatFloat(t, 'f', 2, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
