// Package capability implements the measurement parsing and process
// capability calculation core.
//
// The package has two halves:
//
// 1. Value Parser: converts heterogeneous raw input (freeform delimited
// text, a CSV column, or a spreadsheet column) into a measurement
// sequence. Tokens that fail numeric conversion are dropped, never
// raised — a missing value is data, not an error.
//
// 2. Statistics Engine: computes a Summary (count, mean, sample standard
// deviation, min, max) and the process capability index Cpk against
// optional specification limits.
//
// Undefined values are modeled as nil *float64 throughout: an empty
// sequence has no mean, a single measurement has no standard deviation,
// and a Cpk with no spec limits or non-positive sigma does not exist.
// Callers render nil however suits their surface (JSON null, empty CSV
// cell, "not computable").
//
// Example:
//
//	values := capability.ParseTokens("0.01, 0.02\n-0.03")
//	summary := capability.Summarize(values)
//	cpk := summary.Cpk(capability.SpecLimits{
//		USL: capability.Float(0.3),
//		LSL: capability.Float(-0.3),
//	})
//
// Header detection in tabular input is a best-effort heuristic: the
// header parse is attempted first and falls back to headerless when the
// first row looks numeric. A numeric-looking header over a single numeric
// column is genuinely ambiguous and may be misclassified; this is an
// accepted limitation of format sniffing, not a bug.
//
// Every function in this package is a pure, total function over its
// input: no I/O, no shared state, and every input — however degenerate —
// yields a well-formed result.
package capability
