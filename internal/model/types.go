package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// NodeRecord preserves a node gene losslessly: id and activation tag.
type NodeRecord struct {
	ID         uint64 `json:"id"`
	Activation string `json:"activation"`
}

// ConnectionRecord preserves a connection gene: endpoints and weight.
type ConnectionRecord struct {
	Input  uint64  `json:"input"`
	Weight float64 `json:"weight"`
	Output uint64  `json:"output"`
}

// GenomeRecord is the serialized form of a genome; slices keep gene-set
// insertion order so reloading reconstructs membership exactly.
type GenomeRecord struct {
	VersionedRecord
	Inputs      []NodeRecord       `json:"inputs"`
	Hidden      []NodeRecord       `json:"hidden"`
	Outputs     []NodeRecord       `json:"outputs"`
	FeedForward []ConnectionRecord `json:"feed_forward"`
	Recurrent   []ConnectionRecord `json:"recurrent"`
}

// ScoreRecord preserves one scored signal through its three pipeline
// stages.
type ScoreRecord struct {
	Raw        float64 `json:"raw"`
	Shifted    float64 `json:"shifted"`
	Normalized float64 `json:"normalized"`
}

// IndividualRecord wraps a genome with its evaluation state. Behavior,
// fitness and novelty are optional: absent until an evaluator supplied
// them.
type IndividualRecord struct {
	Genome   GenomeRecord `json:"genome"`
	Age      int          `json:"age"`
	Behavior []float64    `json:"behavior,omitempty"`
	Fitness  *ScoreRecord `json:"fitness,omitempty"`
	Novelty  *ScoreRecord `json:"novelty,omitempty"`
}

// SplitCacheEntry is one id-generator cache line: the ids minted for
// splitting the connection (input, output).
type SplitCacheEntry struct {
	Input  uint64   `json:"input"`
	Output uint64   `json:"output"`
	IDs    []uint64 `json:"ids"`
}

// PopulationRecord is a full evolution checkpoint: individuals, the
// novelty archive and the id-generator state needed to resume mutation
// with globally unique ids.
type PopulationRecord struct {
	VersionedRecord
	ID          string             `json:"id"`
	Generation  int                `json:"generation"`
	Individuals []IndividualRecord `json:"individuals"`
	Archive     []IndividualRecord `json:"archive"`
	NextID      uint64             `json:"next_id"`
	SplitCache  []SplitCacheEntry  `json:"split_cache"`
}

// ScoreSummaryRecord aggregates one signal across a population.
type ScoreSummaryRecord struct {
	RawMinimum        float64 `json:"raw_minimum"`
	RawAverage        float64 `json:"raw_average"`
	RawMaximum        float64 `json:"raw_maximum"`
	ShiftedMinimum    float64 `json:"shifted_minimum"`
	ShiftedAverage    float64 `json:"shifted_average"`
	ShiftedMaximum    float64 `json:"shifted_maximum"`
	NormalizedMinimum float64 `json:"normalized_minimum"`
	NormalizedAverage float64 `json:"normalized_average"`
	NormalizedMaximum float64 `json:"normalized_maximum"`
}

// GenerationStatsRecord is one generation's aggregate statistics as kept
// in a run's history.
type GenerationStatsRecord struct {
	Generation               int                `json:"generation"`
	Fitness                  ScoreSummaryRecord `json:"fitness"`
	Novelty                  ScoreSummaryRecord `json:"novelty"`
	AgeMinimum               int                `json:"age_minimum"`
	AgeAverage               float64            `json:"age_average"`
	AgeMaximum               int                `json:"age_maximum"`
	ArchiveSize              int                `json:"archive_size"`
	EvaluationMilliseconds   int64              `json:"evaluation_ms"`
	ReproductionMilliseconds int64              `json:"reproduction_ms"`
}

// RunRecord describes one evolution run.
type RunRecord struct {
	VersionedRecord
	ID             string `json:"id"`
	CreatedAtUTC   string `json:"created_at_utc"`
	Seed           int64  `json:"seed"`
	PopulationSize int    `json:"population_size"`
	Generations    int    `json:"generations"`
	Solved         bool   `json:"solved"`
	PopulationID   string `json:"population_id"`
}
