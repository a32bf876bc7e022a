package apperr

import "errors"

var (
	// ErrLoad indicates the catalog could not be read or parsed.
	// Fatal: nothing downstream can render without a catalog.
	ErrLoad = errors.New("catalog load failed")

	ErrNotFound = errors.New("not found")
)
