package evo

import "math"

// Score carries one scalar signal through the three pipeline stages:
// the evaluator-supplied raw value, the baseline-shifted value and the
// population-normalized value. Fitness and novelty use the identical
// pipeline.
type Score struct {
	Raw        float64
	Shifted    float64
	Normalized float64
}

// NewScore shifts raw by the population baseline (the minimum raw value
// this generation) and normalizes by the population spread (the maximum
// shifted value). The 1.0 floor on the divisor keeps near-zero spreads
// from blowing the normalized value up.
func NewScore(raw, baseline, spread float64) Score {
	shifted := raw - baseline
	return Score{
		Raw:        raw,
		Shifted:    shifted,
		Normalized: shifted / math.Max(spread, 1.0),
	}
}
