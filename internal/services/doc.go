// Package services contains the business logic between HTTP transport
// and the capability core. CalculationService validates requests, routes
// uploads by file type, applies the configured input caps and records
// prometheus metrics; HealthService reports liveness.
//
// Service errors (ErrFileTooLarge, ErrUnsupportedFormat, ...) are
// sentinels the transport layer maps to RFC 7807 responses. Incomputable
// statistics are never errors — they come back as nil fields in the
// result.
package services
