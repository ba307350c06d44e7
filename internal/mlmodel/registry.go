package mlmodel

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/roviahq/rovia/pkg/metrics"
)

// registry lifecycle states.
type state int

const (
	stateUninitialized state = iota
	stateLoaded
	stateAbsent
)

// Registry is the process-wide cache of the model artifact. The first
// access loads from the configured path; the outcome is sticky for the
// process lifetime, including the negative "confirmed absent" result.
// Picking up a newly trained artifact requires an explicit Reload or a
// process restart.
type Registry struct {
	mu       sync.Mutex
	path     string
	st       state
	artifact *Artifact
}

// NewRegistry creates an uninitialized registry for the given path.
func NewRegistry(path string) *Registry {
	return &Registry{path: path}
}

// Artifact returns the cached artifact. On first use it attempts a load;
// afterwards the cached result is returned without touching the filesystem.
// The boolean is false when no usable model exists.
func (r *Registry) Artifact(_ context.Context) (*Artifact, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.st == stateUninitialized {
		r.loadLocked()
	}
	if r.st != stateLoaded {
		return nil, false
	}
	return r.artifact, true
}

// Reload discards the cached state and loads the artifact again. Returns
// ErrNoModel when the artifact file does not exist.
func (r *Registry) Reload(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.st = stateUninitialized
	r.artifact = nil
	return r.loadLocked()
}

// State describes the registry lifecycle for stats reporting.
func (r *Registry) State() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.st {
	case stateLoaded:
		return "loaded"
	case stateAbsent:
		return "absent"
	default:
		return "uninitialized"
	}
}

func (r *Registry) loadLocked() error {
	a, err := LoadArtifact(r.path)
	if err != nil {
		// A missing or unreadable artifact degrades serving to the
		// rule-based path; it must never fail a request.
		r.st = stateAbsent
		metrics.RecordModelAbsent()
		if errors.Is(err, os.ErrNotExist) {
			return ErrNoModel
		}
		return err
	}
	r.st = stateLoaded
	r.artifact = a
	metrics.RecordModelLoad()
	return nil
}
