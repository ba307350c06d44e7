package mlmodel

import "errors"

// Sentinel kinds for model artifact errors.
var (
	ErrNoModel       = errors.New("no model artifact available")
	ErrBadArtifact   = errors.New("invalid model artifact")
	ErrMissingColumn = errors.New("feature column missing from row")
)
