package capability

// Summary holds descriptive statistics for a measurement sequence.
// Nil fields mean the statistic is undefined for the input: everything is
// nil for an empty sequence, and Std is nil when fewer than two
// measurements exist (the sample standard deviation needs n ≥ 2).
type Summary struct {
	Count int      `json:"count"`
	Mean  *float64 `json:"mean"`
	Std   *float64 `json:"std"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
}

// SpecLimits carries the user-supplied specification limits. Either side
// may be absent; a single-sided Cpk is computed from whichever limit is
// present.
type SpecLimits struct {
	USL *float64 `json:"usl,omitempty"`
	LSL *float64 `json:"lsl,omitempty"`
}

// TwoSided reports whether both limits are present.
func (l SpecLimits) TwoSided() bool {
	return l.USL != nil && l.LSL != nil
}

// Float returns a pointer to v. Convenience for building optional values.
func Float(v float64) *float64 {
	return &v
}
