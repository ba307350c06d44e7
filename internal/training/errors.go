package training

import "errors"

var (
	// ErrNoImpressions indicates the event log holds no impression events,
	// so there is nothing to label.
	ErrNoImpressions = errors.New("no impression events in log")

	// ErrNoPositives indicates the dataset holds no clicked rows; a
	// classifier trained on one class is meaningless.
	ErrNoPositives = errors.New("no positive labels in dataset")

	// ErrNoNegatives indicates every row is labeled clicked, which is just
	// as untrainable as the reverse.
	ErrNoNegatives = errors.New("no negative labels in dataset")

	// ErrDatasetNotFound indicates the dataset file does not exist.
	ErrDatasetNotFound = errors.New("dataset file not found")

	// ErrBadDataset indicates the dataset file could not be parsed.
	ErrBadDataset = errors.New("malformed dataset")
)
