package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/roviahq/rovia/internal/domain/model"
	"github.com/roviahq/rovia/pkg/metrics"
)

// File permission constants.
const (
	logFilePermission = 0o644
	logDirPermission  = 0o755
)

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithClock injects the timestamp source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// Recorder appends events to the log file. Every event is marshaled to a
// single line and written with one Write call under a lock, so concurrent
// writers can never interleave partial records. Write failures are returned
// to the caller: a dropped event silently corrupts the training pipeline's
// input, so it must surface as an operational error.
type Recorder struct {
	mu     sync.Mutex
	file   *os.File
	path   string
	now    func() time.Time
	closed bool
}

// NewRecorder opens (creating if needed) the append-only log at path.
func NewRecorder(path string, opts ...Option) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, logDirPermission); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}

	r := &Recorder{file: f, path: path, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Path returns the log file location.
func (r *Recorder) Path() string { return r.path }

// LogImpression appends one impression record carrying the request context
// and, per shown candidate, its position, scores, availability and features.
func (r *Recorder) LogImpression(
	_ context.Context,
	reqCtx model.RequestContext,
	ranked []model.RankedCandidate,
	features map[int64]model.FeatureVector,
) error {
	shown := make([]CandidateRecord, len(ranked))
	for i, c := range ranked {
		shown[i] = CandidateRecord{
			CandidateID:  c.ID,
			Position:     i,
			Score:        c.Score,
			LearnedScore: c.LearnedScore,
			DistanceKm:   c.DistanceKm,
			Available:    c.Available,
			Status:       string(c.Status),
			Features:     features[c.ID],
		}
	}
	err := r.append(Record{
		EventType:  EventImpression,
		Timestamp:  r.now().UTC(),
		Context:    &reqCtx,
		Candidates: shown,
	})
	if err == nil {
		metrics.RecordImpressionLogged()
	}
	return err
}

// LogClick appends one click record for a candidate shown earlier.
func (r *Recorder) LogClick(
	_ context.Context,
	reqCtx model.RequestContext,
	candidateID int64,
	position *int,
) error {
	err := r.append(Record{
		EventType: EventClick,
		Timestamp: r.now().UTC(),
		Context:   &reqCtx,
		Clicked:   &ClickRecord{CandidateID: candidateID, Position: position},
	})
	if err == nil {
		metrics.RecordClickLogged()
	}
	return err
}

// LogPartsImpression appends one parts impression to the parts log.
func (r *Recorder) LogPartsImpression(
	_ context.Context,
	reqCtx model.RequestContext,
	query string,
	parts []PartRecord,
) error {
	return r.append(Record{
		EventType: EventPartsImpression,
		Timestamp: r.now().UTC(),
		Context:   &reqCtx,
		Query:     query,
		Parts:     parts,
	})
}

// LogPartsClick appends one parts click to the parts log.
func (r *Recorder) LogPartsClick(
	_ context.Context,
	reqCtx model.RequestContext,
	partID int64,
	position *int,
) error {
	return r.append(Record{
		EventType: EventPartsClick,
		Timestamp: r.now().UTC(),
		Context:   &reqCtx,
		Clicked:   &ClickRecord{CandidateID: partID, Position: position},
	})
}

// append marshals the record and writes it as one line in a single Write
// call. The log is append-only and never rewritten in place.
func (r *Recorder) append(rec Record) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal event record: %w", err)
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if _, err := r.file.Write(line); err != nil {
		metrics.RecordLogWriteError()
		return fmt.Errorf("append event to %s: %w", r.path, err)
	}
	return nil
}

// Close closes the underlying file. Further appends return ErrClosed.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("close event log: %w", err)
	}
	return nil
}
