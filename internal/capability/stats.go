package capability

import "math"

// Summarize computes descriptive statistics over a measurement sequence.
// It is total: an empty sequence yields a Summary with Count 0 and all
// statistics nil, a single measurement yields mean/min/max with a nil
// Std. The standard deviation is the sample standard deviation (n−1
// divisor).
func Summarize(values []float64) Summary {
	s := Summary{Count: len(values)}
	if len(values) == 0 {
		return s
	}

	min, max := values[0], values[0]
	sum := 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	mean := sum / float64(len(values))
	s.Mean = Float(mean)
	s.Min = Float(min)
	s.Max = Float(max)

	if len(values) < 2 {
		return s
	}

	var sumsq float64
	for _, v := range values {
		d := v - mean
		sumsq += d * d
	}
	s.Std = Float(math.Sqrt(sumsq / float64(len(values)-1)))
	return s
}

// ComputeCpk derives the process capability index from a mean, a sample
// standard deviation and the spec limits:
//
//	Cpk = min( (USL − mean) / 3σ, (mean − LSL) / 3σ )
//
// With a single limit the one-sided value is returned. The result is nil
// when sigma is absent, NaN or non-positive, or when neither limit is
// present — Cpk is meaningless with zero spread or no specification.
func ComputeCpk(mean float64, sigma, usl, lsl *float64) *float64 {
	if sigma == nil || math.IsNaN(*sigma) || *sigma <= 0 {
		return nil
	}

	spread := 3 * *sigma
	var sides []float64
	if usl != nil && !math.IsNaN(*usl) {
		sides = append(sides, (*usl-mean)/spread)
	}
	if lsl != nil && !math.IsNaN(*lsl) {
		sides = append(sides, (mean-*lsl)/spread)
	}
	if len(sides) == 0 {
		return nil
	}

	cpk := sides[0]
	for _, v := range sides[1:] {
		if v < cpk {
			cpk = v
		}
	}
	return Float(cpk)
}

// Cpk computes the capability index for this summary against the given
// limits. Nil when the summary has no mean (empty sequence) or no usable
// standard deviation.
func (s Summary) Cpk(limits SpecLimits) *float64 {
	if s.Mean == nil {
		return nil
	}
	return ComputeCpk(*s.Mean, s.Std, limits.USL, limits.LSL)
}
