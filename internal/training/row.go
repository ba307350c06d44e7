// Package training turns serving logs into labeled datasets and fits the
// click model that the serving path later loads.
package training

import (
	"time"

	"github.com/roviahq/rovia/internal/domain/feature"
)

// FeatureColumns is the fixed model input schema, in training and inference
// order. The trained artifact carries this list so the serving path builds
// rows the same way.
var FeatureColumns = []string{
	"f_rating_norm",
	"f_distance_closeness",
	"f_open_now",
	"position",
	"hour",
	"dayofweek",
}

// TrainingRow is one labeled impression. The parquet tags define the dataset
// schema; the CSV writer mirrors the same columns.
type TrainingRow struct {
	RequestID   string    `parquet:"request_id,snappy"`
	SessionKey  string    `parquet:"session_key,snappy"`
	UserID      string    `parquet:"user_id,snappy"`
	Category    string    `parquet:"category,snappy"`
	UserLat     float64   `parquet:"user_lat,snappy"`
	UserLng     float64   `parquet:"user_lng,snappy"`
	RequestTime time.Time `parquet:"request_time,snappy"`
	EventTime   time.Time `parquet:"event_ts,snappy"`
	CandidateID int64     `parquet:"candidate_id,snappy"`
	Position    int32     `parquet:"position,snappy"`
	Score       float64   `parquet:"score,snappy"`
	DistanceKm  float64   `parquet:"distance_km,snappy"`
	Available   bool      `parquet:"is_available,snappy"`
	Status      string    `parquet:"status,snappy"`

	RatingNorm        float64 `parquet:"f_rating_norm,snappy"`
	DistanceCloseness float64 `parquet:"f_distance_closeness,snappy"`
	OpenNow           float64 `parquet:"f_open_now,snappy"`
	Hour              int32   `parquet:"hour,snappy"`
	DayOfWeek         int32   `parquet:"dayofweek,snappy"`

	Label int32 `parquet:"label_clicked,snappy"`
}

// Feature returns the row's value for one model input column. Unknown
// columns read as zero, matching the stable-schema fill rule.
func (r TrainingRow) Feature(col string) float64 {
	switch col {
	case "f_" + feature.NameRatingNorm:
		return r.RatingNorm
	case "f_" + feature.NameDistanceCloseness:
		return r.DistanceCloseness
	case "f_" + feature.NameOpenNow:
		return r.OpenNow
	case "position":
		return float64(r.Position)
	case "hour":
		return float64(r.Hour)
	case "dayofweek":
		return float64(r.DayOfWeek)
	default:
		return 0
	}
}
