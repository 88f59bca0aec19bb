package evo

import (
	"time"

	"noveltyneat/internal/model"
)

// ScoreSummary aggregates one scored signal across the population at all
// three pipeline stages.
type ScoreSummary struct {
	RawMinimum        float64
	RawAverage        float64
	RawMaximum        float64
	ShiftedMinimum    float64
	ShiftedAverage    float64
	ShiftedMaximum    float64
	NormalizedMinimum float64
	NormalizedAverage float64
	NormalizedMaximum float64
}

// summarize runs the raw extrema through the same shift/normalize
// pipeline the individual scores went through.
func summarize(rawMin, rawAvg, rawMax, baseline, spread float64) ScoreSummary {
	minimum := NewScore(rawMin, baseline, spread)
	average := NewScore(rawAvg, baseline, spread)
	maximum := NewScore(rawMax, baseline, spread)
	return ScoreSummary{
		RawMinimum:        minimum.Raw,
		RawAverage:        average.Raw,
		RawMaximum:        maximum.Raw,
		ShiftedMinimum:    minimum.Shifted,
		ShiftedAverage:    average.Shifted,
		ShiftedMaximum:    maximum.Shifted,
		NormalizedMinimum: minimum.Normalized,
		NormalizedAverage: average.Normalized,
		NormalizedMaximum: maximum.Normalized,
	}
}

// Statistics is one generation's aggregate report.
type Statistics struct {
	Generation           int
	TopPerformer         *Individual
	Fitness              ScoreSummary
	Novelty              ScoreSummary
	AgeMinimum           int
	AgeAverage           float64
	AgeMaximum           int
	ArchiveSize          int
	EvaluationDuration   time.Duration
	ReproductionDuration time.Duration
}

// ToRecord converts the statistics into their persistence record.
func (s Statistics) ToRecord() model.GenerationStatsRecord {
	return model.GenerationStatsRecord{
		Generation:               s.Generation,
		Fitness:                  summaryRecord(s.Fitness),
		Novelty:                  summaryRecord(s.Novelty),
		AgeMinimum:               s.AgeMinimum,
		AgeAverage:               s.AgeAverage,
		AgeMaximum:               s.AgeMaximum,
		ArchiveSize:              s.ArchiveSize,
		EvaluationMilliseconds:   s.EvaluationDuration.Milliseconds(),
		ReproductionMilliseconds: s.ReproductionDuration.Milliseconds(),
	}
}

func summaryRecord(s ScoreSummary) model.ScoreSummaryRecord {
	return model.ScoreSummaryRecord{
		RawMinimum:        s.RawMinimum,
		RawAverage:        s.RawAverage,
		RawMaximum:        s.RawMaximum,
		ShiftedMinimum:    s.ShiftedMinimum,
		ShiftedAverage:    s.ShiftedAverage,
		ShiftedMaximum:    s.ShiftedMaximum,
		NormalizedMinimum: s.NormalizedMinimum,
		NormalizedAverage: s.NormalizedAverage,
		NormalizedMaximum: s.NormalizedMaximum,
	}
}
