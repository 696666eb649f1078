package exporter

import (
	"fmt"
	"strconv"
)

// formatOptional formats an optional float for CSV output. Nil renders as
// an empty cell; values keep full precision so re-imports round-trip.
func formatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}
