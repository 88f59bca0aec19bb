package evo

import (
	"fmt"
	"math/rand"
	"sort"

	"noveltyneat/internal/genotype"
	"noveltyneat/internal/model"
)

// ToRecord converts the individual into its persistence record.
func (ind *Individual) ToRecord() model.IndividualRecord {
	record := model.IndividualRecord{
		Genome:   ind.Genome.ToRecord(),
		Age:      ind.Age,
		Behavior: ind.Behavior,
	}
	if ind.Fitness != nil {
		record.Fitness = &model.ScoreRecord{Raw: ind.Fitness.Raw, Shifted: ind.Fitness.Shifted, Normalized: ind.Fitness.Normalized}
	}
	if ind.Novelty != nil {
		record.Novelty = &model.ScoreRecord{Raw: ind.Novelty.Raw, Shifted: ind.Novelty.Shifted, Normalized: ind.Novelty.Normalized}
	}
	return record
}

// IndividualFromRecord rebuilds an individual from its record.
func IndividualFromRecord(record model.IndividualRecord) (*Individual, error) {
	genome, err := genotype.GenomeFromRecord(record.Genome)
	if err != nil {
		return nil, err
	}
	individual := &Individual{
		Genome:   genome,
		Age:      record.Age,
		Behavior: Behavior(record.Behavior).Clone(),
	}
	if record.Fitness != nil {
		individual.Fitness = &Score{Raw: record.Fitness.Raw, Shifted: record.Fitness.Shifted, Normalized: record.Fitness.Normalized}
	}
	if record.Novelty != nil {
		individual.Novelty = &Score{Raw: record.Novelty.Raw, Shifted: record.Novelty.Shifted, Normalized: record.Novelty.Normalized}
	}
	return individual, nil
}

// ToRecord snapshots the population as a resumable checkpoint, including
// the id-generator state. Split-cache entries are emitted in key order so
// checkpoints of identical state serialize identically.
func (p *Population) ToRecord(id string) model.PopulationRecord {
	record := model.PopulationRecord{
		ID:          id,
		Generation:  p.generation,
		Individuals: make([]model.IndividualRecord, 0, len(p.individuals)),
		Archive:     make([]model.IndividualRecord, 0, len(p.archive)),
		NextID:      uint64(p.ids.NextID()),
	}
	for _, individual := range p.individuals {
		record.Individuals = append(record.Individuals, individual.ToRecord())
	}
	for _, archived := range p.archive {
		record.Archive = append(record.Archive, archived.ToRecord())
	}

	cache := p.ids.SplitCache()
	keys := make([]genotype.ConnectionKey, 0, len(cache))
	for key := range cache {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Input != keys[j].Input {
			return keys[i].Input < keys[j].Input
		}
		return keys[i].Output < keys[j].Output
	})
	for _, key := range keys {
		entry := model.SplitCacheEntry{Input: uint64(key.Input), Output: uint64(key.Output)}
		for _, id := range cache[key] {
			entry.IDs = append(entry.IDs, uint64(id))
		}
		record.SplitCache = append(record.SplitCache, entry)
	}
	return record
}

// PopulationFromRecord resumes a population from a checkpoint. The random
// stream is re-seeded from the configured seed and the checkpoint
// generation, so a resumed run is deterministic but not a replay of the
// interrupted one.
func PopulationFromRecord(cfg Config, record model.PopulationRecord) (*Population, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(record.Individuals) == 0 {
		return nil, fmt.Errorf("checkpoint holds no individuals")
	}

	individuals := make([]*Individual, 0, len(record.Individuals))
	for i, individualRecord := range record.Individuals {
		individual, err := IndividualFromRecord(individualRecord)
		if err != nil {
			return nil, fmt.Errorf("individual %d: %w", i, err)
		}
		individuals = append(individuals, individual)
	}
	archive := make([]*Individual, 0, len(record.Archive))
	for i, archivedRecord := range record.Archive {
		archived, err := IndividualFromRecord(archivedRecord)
		if err != nil {
			return nil, fmt.Errorf("archive entry %d: %w", i, err)
		}
		archive = append(archive, archived)
	}

	cache := make(map[genotype.ConnectionKey][]genotype.Id, len(record.SplitCache))
	for _, entry := range record.SplitCache {
		key := genotype.ConnectionKey{Input: genotype.Id(entry.Input), Output: genotype.Id(entry.Output)}
		ids := make([]genotype.Id, 0, len(entry.IDs))
		for _, id := range entry.IDs {
			ids = append(ids, genotype.Id(id))
		}
		cache[key] = ids
	}

	return &Population{
		cfg:         cfg,
		individuals: individuals,
		archive:     archive,
		rng:         rand.New(rand.NewSource(cfg.Seed + int64(record.Generation))),
		ids:         genotype.RestoreIdGenerator(genotype.Id(record.NextID), cache),
		generation:  record.Generation,
	}, nil
}
