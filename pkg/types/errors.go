package types

import "errors"

// Domain errors shared across packages
var (
	// Configuration and input errors
	ErrInvalidConfig = errors.New("invalid chunker configuration")
	ErrInvalidInput  = errors.New("invalid input text")

	// Chunk validation errors
	ErrEmptyContent   = errors.New("content cannot be empty")
	ErrInvalidOffsets = errors.New("invalid chunk offsets")

	// Document errors
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// Ingest errors
	ErrPathNotFound     = errors.New("path not found")
	ErrIngestInProgress = errors.New("ingest already in progress")
)
