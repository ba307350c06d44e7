package training

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/roviahq/rovia/internal/adapters/eventlog"
	"github.com/roviahq/rovia/internal/domain/feature"
	"github.com/roviahq/rovia/pkg/logger"
)

// Assembler joins impression and click events into labeled rows.
type Assembler struct {
	log logger.Logger
}

// NewAssembler creates an assembler.
func NewAssembler() *Assembler {
	return &Assembler{log: logger.Named("training")}
}

// Assemble labels every impressed candidate with whether it was clicked.
// Clicks join to impressions by (request_id, candidate_id) when both sides
// carry request ids; logs predating request ids fall back to a session key,
// which can mislabel two identical requests within the same minute.
func (a *Assembler) Assemble(ctx context.Context, records []eventlog.Record) ([]TrainingRow, error) {
	var rows []TrainingRow
	var clicks []eventlog.Record
	impressionsHaveID, clicksHaveID := false, false

	for _, rec := range records {
		switch rec.EventType {
		case eventlog.EventImpression:
			if rec.Context != nil && rec.Context.RequestID != "" {
				impressionsHaveID = true
			}
			rows = append(rows, a.impressionRows(rec)...)
		case eventlog.EventClick:
			if rec.Clicked == nil {
				continue
			}
			if rec.Context != nil && rec.Context.RequestID != "" {
				clicksHaveID = true
			}
			clicks = append(clicks, rec)
		}
	}

	if len(rows) == 0 {
		return nil, ErrNoImpressions
	}

	useRequestID := impressionsHaveID && clicksHaveID
	clicked := make(map[string]struct{}, len(clicks))
	for _, rec := range clicks {
		clicked[clickKey(rec, useRequestID)] = struct{}{}
	}

	positives := 0
	for i := range rows {
		key := rowKey(rows[i], useRequestID)
		if _, ok := clicked[key]; ok {
			rows[i].Label = 1
			positives++
		}
	}

	a.log.Info(ctx, "dataset assembled",
		logger.Int("rows", len(rows)),
		logger.Int("clicks", len(clicks)),
		logger.Int("positives", positives),
		logger.Bool("request_id_join", useRequestID))
	return rows, nil
}

func (a *Assembler) impressionRows(rec eventlog.Record) []TrainingRow {
	ctx := rec.Context
	if ctx == nil {
		return nil
	}

	requestTime := ctx.RequestTime
	if requestTime.IsZero() {
		requestTime = rec.Timestamp
	}

	rows := make([]TrainingRow, 0, len(rec.Candidates))
	for _, c := range rec.Candidates {
		rows = append(rows, TrainingRow{
			RequestID:   ctx.RequestID,
			SessionKey:  sessionKey(ctx.UserID, ctx.Category, ctx.UserLat, ctx.UserLng, requestTime),
			UserID:      orDefault(ctx.UserID, "anon"),
			Category:    orDefault(ctx.Category, "unknown"),
			UserLat:     ctx.UserLat,
			UserLng:     ctx.UserLng,
			RequestTime: requestTime,
			EventTime:   rec.Timestamp,
			CandidateID: c.CandidateID,
			Position:    int32(c.Position),
			Score:       c.Score,
			DistanceKm:  c.DistanceKm,
			Available:   c.Available,
			Status:      c.Status,

			RatingNorm:        c.Features[feature.NameRatingNorm],
			DistanceCloseness: c.Features[feature.NameDistanceCloseness],
			OpenNow:           c.Features[feature.NameOpenNow],
			Hour:              int32(requestTime.Hour()),
			DayOfWeek:         mondayIndexed(requestTime.Weekday()),
		})
	}
	return rows
}

func clickKey(rec eventlog.Record, useRequestID bool) string {
	ctx := rec.Context
	if useRequestID {
		rid := ""
		if ctx != nil {
			rid = ctx.RequestID
		}
		return fmt.Sprintf("%s|%d", rid, rec.Clicked.CandidateID)
	}

	requestTime := rec.Timestamp
	userID, category := "", ""
	lat, lng := 0.0, 0.0
	if ctx != nil {
		userID, category = ctx.UserID, ctx.Category
		lat, lng = ctx.UserLat, ctx.UserLng
		if !ctx.RequestTime.IsZero() {
			requestTime = ctx.RequestTime
		}
	}
	return fmt.Sprintf("%s|%d", sessionKey(userID, category, lat, lng, requestTime), rec.Clicked.CandidateID)
}

func rowKey(row TrainingRow, useRequestID bool) string {
	if useRequestID {
		return fmt.Sprintf("%s|%d", row.RequestID, row.CandidateID)
	}
	return fmt.Sprintf("%s|%d", row.SessionKey, row.CandidateID)
}

// sessionKey buckets a request by user, category, coarse location and
// minute. Coordinates round to 3 decimals (roughly 110 m).
func sessionKey(userID, category string, lat, lng float64, t time.Time) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s",
		orDefault(userID, "anon"),
		orDefault(category, "unknown"),
		formatCoord(lat),
		formatCoord(lng),
		t.Format("2006-01-02T15:04"))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// mondayIndexed maps Go's Sunday-first weekday to Monday=0..Sunday=6.
func mondayIndexed(d time.Weekday) int32 {
	return int32((int(d) + 6) % 7)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
