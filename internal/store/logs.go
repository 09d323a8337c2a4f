package store

import (
	"database/sql"
	"fmt"
	"time"
)

const logColumns = `date, running, strength, morning_heart_rate, fasting_weight,
	bedtime, wake_time, sleep_hours, bowel,
	meal_breakfast, meal_lunch, meal_dinner, meal_snack, comment`

// UpsertLog inserts the record or wholesale-replaces the existing record for
// the same date. There is no field-by-field merge: blank fields overwrite.
func (s *Store) UpsertLog(l DailyLog) error {
	_, err := s.db.Exec(`
		INSERT INTO logs (`+logColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			running = excluded.running,
			strength = excluded.strength,
			morning_heart_rate = excluded.morning_heart_rate,
			fasting_weight = excluded.fasting_weight,
			bedtime = excluded.bedtime,
			wake_time = excluded.wake_time,
			sleep_hours = excluded.sleep_hours,
			bowel = excluded.bowel,
			meal_breakfast = excluded.meal_breakfast,
			meal_lunch = excluded.meal_lunch,
			meal_dinner = excluded.meal_dinner,
			meal_snack = excluded.meal_snack,
			comment = excluded.comment`,
		l.Date, l.Running, l.Strength, l.MorningHeartRate, l.FastingWeight,
		l.Bedtime, l.WakeTime, l.SleepHours, string(l.Bowel),
		l.MealBreakfast, l.MealLunch, l.MealDinner, l.MealSnack, l.Comment,
	)
	if err != nil {
		return fmt.Errorf("upsert log %s: %w", l.Date, err)
	}
	return nil
}

func scanLog(row interface{ Scan(...any) error }) (*DailyLog, error) {
	l := &DailyLog{}
	var bowel string
	err := row.Scan(
		&l.Date, &l.Running, &l.Strength, &l.MorningHeartRate, &l.FastingWeight,
		&l.Bedtime, &l.WakeTime, &l.SleepHours, &bowel,
		&l.MealBreakfast, &l.MealLunch, &l.MealDinner, &l.MealSnack, &l.Comment,
	)
	if err != nil {
		return nil, err
	}
	l.Bowel = Bowel(bowel)
	return l, nil
}

// GetLog returns the record for date, or nil when no record exists. A missing
// day is not an error and is never conflated with a zero-valued record.
func (s *Store) GetLog(date string) (*DailyLog, error) {
	row := s.db.QueryRow(`SELECT `+logColumns+` FROM logs WHERE date = ?`, date)
	l, err := scanLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get log %s: %w", date, err)
	}
	return l, nil
}

// GetLogRange returns records with date in [start, end], ascending. Days
// without an entry are simply absent from the result.
func (s *Store) GetLogRange(start, end string) ([]DailyLog, error) {
	rows, err := s.db.Query(
		`SELECT `+logColumns+` FROM logs WHERE date BETWEEN ? AND ? ORDER BY date`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("log range %s..%s: %w", start, end, err)
	}
	defer rows.Close()
	return collectLogs(rows)
}

// GetAllLogs returns every record ascending by date, for backup export.
func (s *Store) GetAllLogs() ([]DailyLog, error) {
	rows, err := s.db.Query(`SELECT ` + logColumns + ` FROM logs ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("all logs: %w", err)
	}
	defer rows.Close()
	return collectLogs(rows)
}

func collectLogs(rows *sql.Rows) ([]DailyLog, error) {
	var logs []DailyLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// GetPreviousWeight returns the fasting weight recorded the day before date,
// or nil when there is no prior-day record. A stored weight of zero is still
// a value; only a missing row (or an unparseable date) yields nil.
func (s *Store) GetPreviousWeight(date string) (*int, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, nil
	}
	prev := d.AddDate(0, 0, -1).Format("2006-01-02")

	var weight int
	err = s.db.QueryRow(`SELECT fasting_weight FROM logs WHERE date = ?`, prev).Scan(&weight)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("previous weight for %s: %w", date, err)
	}
	return &weight, nil
}
