package services

import "errors"

// Calculation service errors
var (
	// Upload errors
	ErrFileTooLarge      = errors.New("uploaded file exceeds the size limit")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrTooManyValues     = errors.New("measurement count exceeds the configured limit")

	// Limit errors
	ErrInvalidLimits = errors.New("lower spec limit must be less than upper spec limit")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
