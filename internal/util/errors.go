package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrUnreadable indicates a file could not be read (permission/IO)
	ErrUnreadable = errors.New("unreadable file")

	// ErrUnsupported indicates no extraction strategy exists for a file type
	ErrUnsupported = errors.New("unsupported type")

	// ErrExtractFailed indicates a document is corrupt or malformed
	ErrExtractFailed = errors.New("extraction failed")

	// ErrCapabilityUnavailable indicates an optional engine (e.g. OCR) is missing
	ErrCapabilityUnavailable = errors.New("capability unavailable")

	// ErrStoreWrite indicates an upsert transaction failed
	ErrStoreWrite = errors.New("store write failed")

	// ErrThumbnailUnavailable indicates a thumbnail could not be produced
	ErrThumbnailUnavailable = errors.New("thumbnail unavailable")

	// ErrOutsideRoot indicates a path resolves outside the archive root
	ErrOutsideRoot = errors.New("path outside archive root")

	// ErrNotFound indicates a required resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)
