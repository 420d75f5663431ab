package domain

import "errors"

var (
	// ErrInvalidImage is returned when the submitted image reference cannot be resolved to a readable file
	ErrInvalidImage = errors.New("invalid or unreadable image")

	// ErrEncodingFailed is returned when the encoder capability could not produce a feature vector
	ErrEncodingFailed = errors.New("image encoding failed")

	// ErrDimensionMismatch is returned when the query vector length differs from the catalog's
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmptyCatalog is returned when the catalog contains no items
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrGenerationFailed is returned when the generation backend request fails
	ErrGenerationFailed = errors.New("text generation failed")

	// ErrEncoderUnavailable is returned when the encoder service cannot be reached
	ErrEncoderUnavailable = errors.New("encoder service unavailable")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
