package training

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// csvHeader mirrors the parquet schema column for column.
var csvHeader = []string{
	"request_id", "session_key", "user_id", "category",
	"user_lat", "user_lng", "request_time", "event_ts",
	"candidate_id", "position", "score", "distance_km",
	"is_available", "status",
	"f_rating_norm", "f_distance_closeness", "f_open_now",
	"hour", "dayofweek", "label_clicked",
}

// WriteCSV writes the dataset as CSV with a header row.
func WriteCSV(rows []TrainingRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.RequestID,
			r.SessionKey,
			r.UserID,
			r.Category,
			formatFloat(r.UserLat),
			formatFloat(r.UserLng),
			r.RequestTime.Format(time.RFC3339),
			r.EventTime.Format(time.RFC3339),
			strconv.FormatInt(r.CandidateID, 10),
			strconv.Itoa(int(r.Position)),
			formatFloat(r.Score),
			formatFloat(r.DistanceKm),
			strconv.FormatBool(r.Available),
			r.Status,
			formatFloat(r.RatingNorm),
			formatFloat(r.DistanceCloseness),
			formatFloat(r.OpenNow),
			strconv.Itoa(int(r.Hour)),
			strconv.Itoa(int(r.DayOfWeek)),
			strconv.Itoa(int(r.Label)),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// LoadCSV reads a dataset written by WriteCSV. Columns are located by header
// name so column order changes stay harmless.
func LoadCSV(path string) ([]TrainingRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDataset, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrBadDataset)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, name := range csvHeader {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrBadDataset, name)
		}
	}

	rows := make([]TrainingRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRow(rec, col)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrBadDataset, i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string, col map[string]int) (TrainingRow, error) {
	get := func(name string) string { return rec[col[name]] }

	var row TrainingRow
	var err error
	row.RequestID = get("request_id")
	row.SessionKey = get("session_key")
	row.UserID = get("user_id")
	row.Category = get("category")
	row.Status = get("status")

	if row.UserLat, err = strconv.ParseFloat(get("user_lat"), 64); err != nil {
		return row, fmt.Errorf("user_lat: %w", err)
	}
	if row.UserLng, err = strconv.ParseFloat(get("user_lng"), 64); err != nil {
		return row, fmt.Errorf("user_lng: %w", err)
	}
	if row.RequestTime, err = time.Parse(time.RFC3339, get("request_time")); err != nil {
		return row, fmt.Errorf("request_time: %w", err)
	}
	if row.EventTime, err = time.Parse(time.RFC3339, get("event_ts")); err != nil {
		return row, fmt.Errorf("event_ts: %w", err)
	}
	if row.CandidateID, err = strconv.ParseInt(get("candidate_id"), 10, 64); err != nil {
		return row, fmt.Errorf("candidate_id: %w", err)
	}
	if row.Score, err = strconv.ParseFloat(get("score"), 64); err != nil {
		return row, fmt.Errorf("score: %w", err)
	}
	if row.DistanceKm, err = strconv.ParseFloat(get("distance_km"), 64); err != nil {
		return row, fmt.Errorf("distance_km: %w", err)
	}
	if row.Available, err = strconv.ParseBool(get("is_available")); err != nil {
		return row, fmt.Errorf("is_available: %w", err)
	}
	if row.RatingNorm, err = strconv.ParseFloat(get("f_rating_norm"), 64); err != nil {
		return row, fmt.Errorf("f_rating_norm: %w", err)
	}
	if row.DistanceCloseness, err = strconv.ParseFloat(get("f_distance_closeness"), 64); err != nil {
		return row, fmt.Errorf("f_distance_closeness: %w", err)
	}
	if row.OpenNow, err = strconv.ParseFloat(get("f_open_now"), 64); err != nil {
		return row, fmt.Errorf("f_open_now: %w", err)
	}

	ints := map[string]*int32{
		"position": &row.Position, "hour": &row.Hour,
		"dayofweek": &row.DayOfWeek, "label_clicked": &row.Label,
	}
	for name, dst := range ints {
		v, err := strconv.Atoi(get(name))
		if err != nil {
			return row, fmt.Errorf("%s: %w", name, err)
		}
		*dst = int32(v)
	}
	return row, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
