package digest

import "errors"

var (
	// ErrNotIngested is returned when a queried identifier has no stored digest.
	ErrNotIngested = errors.New("repository not ingested")
	// ErrAddressNotFound is returned when a resource address does not resolve
	// to any stored identifier.
	ErrAddressNotFound = errors.New("no digest for address")
	// ErrSectionNotFound is returned when a file path matches no section of a
	// digest's content blob.
	ErrSectionNotFound = errors.New("file not found in digest content")
	// ErrIngestFailed wraps failures reported by the ingestion collaborator.
	ErrIngestFailed = errors.New("ingestion failed")
)
