package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/runlog/internal/store"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Logs       []jsonLog `json:"logs"`
}

type jsonLog struct {
	Date             string  `json:"date"`
	Running          string  `json:"running,omitempty"`
	Strength         string  `json:"strength,omitempty"`
	MorningHeartRate int     `json:"morning_heart_rate,omitempty"`
	FastingWeight    int     `json:"fasting_weight,omitempty"`
	Bedtime          string  `json:"bedtime,omitempty"`
	WakeTime         string  `json:"wake_time,omitempty"`
	SleepHours       float64 `json:"sleep_hours,omitempty"`
	Bowel            string  `json:"bowel,omitempty"`
	MealBreakfast    string  `json:"meal_breakfast,omitempty"`
	MealLunch        string  `json:"meal_lunch,omitempty"`
	MealDinner       string  `json:"meal_dinner,omitempty"`
	MealSnack        string  `json:"meal_snack,omitempty"`
	Comment          string  `json:"comment,omitempty"`
}

// ToJSON writes all records to a JSON backup.
func ToJSON(logs []store.DailyLog, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(logs),
	}

	for _, l := range logs {
		export.Logs = append(export.Logs, jsonLog{
			Date:             l.Date,
			Running:          l.Running,
			Strength:         l.Strength,
			MorningHeartRate: l.MorningHeartRate,
			FastingWeight:    l.FastingWeight,
			Bedtime:          l.Bedtime,
			WakeTime:         l.WakeTime,
			SleepHours:       l.SleepHours,
			Bowel:            string(l.Bowel),
			MealBreakfast:    l.MealBreakfast,
			MealLunch:        l.MealLunch,
			MealDinner:       l.MealDinner,
			MealSnack:        l.MealSnack,
			Comment:          l.Comment,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
