package evo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScorePipelineShiftsAndNormalizes(t *testing.T) {
	raws := []float64{2.0, 5.0, 9.0}
	baseline := 2.0
	spread := 7.0

	wantShifted := []float64{0.0, 3.0, 7.0}
	wantNormalized := []float64{0.0, 3.0 / 7.0, 1.0}

	for i, raw := range raws {
		score := NewScore(raw, baseline, spread)
		require.Equal(t, raw, score.Raw)
		require.InDelta(t, wantShifted[i], score.Shifted, 1e-12)
		require.InDelta(t, wantNormalized[i], score.Normalized, 1e-12)
	}
}

func TestScoreDivisorIsFlooredAtOne(t *testing.T) {
	// spread below 1.0 must not inflate tiny shifted values
	score := NewScore(0.3, 0.1, 0.25)
	require.InDelta(t, 0.2, score.Shifted, 1e-12)
	require.InDelta(t, 0.2, score.Normalized, 1e-12)
}

func TestScoreDegenerateSpread(t *testing.T) {
	score := NewScore(4.0, 4.0, 0.0)
	require.Equal(t, 0.0, score.Shifted)
	require.Equal(t, 0.0, score.Normalized)
}
