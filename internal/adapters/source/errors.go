package source

import "errors"

var (
	// ErrCatalogNotFound indicates the catalog file does not exist.
	ErrCatalogNotFound = errors.New("catalog file not found")

	// ErrInvalidCatalog indicates the catalog file failed validation.
	ErrInvalidCatalog = errors.New("invalid catalog")
)
