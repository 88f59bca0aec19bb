package evo

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"noveltyneat/internal/genotype"
)

// Config carries everything the population needs for one run.
type Config struct {
	Seed                    int64
	PopulationSize          int
	SurvivalRate            float64
	InputDimension          int
	OutputDimension         int
	NoveltyNearestNeighbors int
	OutputActivation        genotype.Activation
	Mutation                genotype.MutationConfig
}

func (cfg Config) validate() error {
	if cfg.PopulationSize <= 0 {
		return fmt.Errorf("population size must be > 0")
	}
	if cfg.SurvivalRate <= 0 || cfg.SurvivalRate > 1 {
		return fmt.Errorf("survival rate must be in (0, 1]")
	}
	if cfg.InputDimension <= 0 || cfg.OutputDimension <= 0 {
		return fmt.Errorf("input and output dimensions must be > 0")
	}
	if cfg.NoveltyNearestNeighbors <= 0 {
		return fmt.Errorf("novelty nearest neighbor count must be > 0")
	}
	if len(cfg.Mutation.HiddenActivations) == 0 {
		return fmt.Errorf("at least one hidden activation candidate is required")
	}
	return nil
}

// Population orchestrates generation transitions: scoring, survivor
// selection, reproduction and novelty-archive maintenance. The id
// generator is owned here and passed into every mutation, keeping node
// ids globally unique across all lineages of the run.
type Population struct {
	cfg         Config
	individuals []*Individual
	archive     []*Individual
	rng         *rand.Rand
	ids         *genotype.IdGenerator
	generation  int
}

// NewPopulation seeds population-size individuals, all cloned from one
// initial genome so input and output node ids are shared across the
// population, then initialized and mutated independently.
func NewPopulation(cfg Config) (*Population, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	ids := genotype.NewIdGenerator()
	rng := rand.New(rand.NewSource(cfg.Seed))
	initial := NewIndividual(genotype.NewGenome(ids, cfg.InputDimension, cfg.OutputDimension, cfg.OutputActivation))

	individuals := make([]*Individual, 0, cfg.PopulationSize)
	for i := 0; i < cfg.PopulationSize; i++ {
		individual := initial.Clone()
		individual.Genome.Init(rng)
		individual.Genome.Mutate(rng, ids, cfg.Mutation)
		individuals = append(individuals, individual)
	}

	return &Population{
		cfg:         cfg,
		individuals: individuals,
		rng:         rng,
		ids:         ids,
	}, nil
}

// Individuals exposes the current population in evaluation order.
func (p *Population) Individuals() []*Individual {
	return p.individuals
}

// Generation counts completed generation transitions.
func (p *Population) Generation() int {
	return p.generation
}

// ArchiveSize reports the current novelty-archive length; the archive
// only ever grows.
func (p *Population) ArchiveSize() int {
	return len(p.archive)
}

// NextGeneration runs one full transition given the evaluator progress
// for each individual, index-aligned with Individuals().
func (p *Population) NextGeneration(progress []Progress) (Statistics, error) {
	if len(progress) != len(p.individuals) {
		return Statistics{}, fmt.Errorf("progress count mismatch: got=%d want=%d", len(progress), len(p.individuals))
	}

	stats := Statistics{Generation: p.generation + 1}
	stats.Fitness = p.assignFitness(progress)
	p.assignBehavior(progress)
	stats.Novelty = p.calculateNovelty()

	for _, individual := range p.individuals {
		if math.IsNaN(individual.Score()) {
			return Statistics{}, fmt.Errorf("individual score is NaN; cannot order population")
		}
	}
	sort.SliceStable(p.individuals, func(i, j int) bool {
		return p.individuals[i].Score() > p.individuals[j].Score()
	})

	survivorCount := int(math.Ceil(float64(p.cfg.PopulationSize) * p.cfg.SurvivalRate))
	if survivorCount > len(p.individuals) {
		survivorCount = len(p.individuals)
	}
	p.individuals = p.individuals[:survivorCount]

	for _, survivor := range p.individuals {
		survivor.Age++
	}

	reproductionStart := time.Now()
	p.reproduce()
	stats.ReproductionDuration = time.Since(reproductionStart)

	p.generation++
	if err := p.gatherStatistics(&stats); err != nil {
		return Statistics{}, err
	}
	return stats, nil
}

// assignFitness normalizes the supplied raw fitness values against the
// population baseline and writes a score onto each reporting individual.
// No fitness anywhere means the step is skipped entirely and ranking
// falls back to novelty alone.
func (p *Population) assignFitness(progress []Progress) ScoreSummary {
	type rawFitness struct {
		index int
		value float64
	}
	fitnesses := make([]rawFitness, 0, len(progress))
	for index, report := range progress {
		if value, ok := report.RawFitness(); ok {
			fitnesses = append(fitnesses, rawFitness{index: index, value: value})
		}
	}
	if len(fitnesses) == 0 {
		return ScoreSummary{}
	}

	minimum, maximum := math.Inf(1), math.Inf(-1)
	sum := 0.0
	for _, fitness := range fitnesses {
		minimum = math.Min(minimum, fitness.value)
		maximum = math.Max(maximum, fitness.value)
		sum += fitness.value
	}
	baseline := minimum
	spread := maximum - baseline

	for _, fitness := range fitnesses {
		score := NewScore(fitness.value, baseline, spread)
		p.individuals[fitness.index].Fitness = &score
	}
	return summarize(minimum, sum/float64(len(fitnesses)), maximum, baseline, spread)
}

func (p *Population) assignBehavior(progress []Progress) {
	for index, report := range progress {
		if behavior := report.Behavior(); behavior != nil {
			p.individuals[index].Behavior = behavior.Clone()
		}
	}
}

// calculateNovelty scores every behavior-bearing individual against the
// union of current behaviors and the archive, then archives a clone of
// the most novel individual. Individuals without behavior keep no
// novelty score.
func (p *Population) calculateNovelty() ScoreSummary {
	indices := make([]int, 0, len(p.individuals))
	behaviors := make([]Behavior, 0, len(p.individuals)+len(p.archive))
	for index, individual := range p.individuals {
		if individual.Behavior != nil {
			indices = append(indices, index)
			behaviors = append(behaviors, individual.Behavior)
		}
	}
	if len(indices) == 0 {
		return ScoreSummary{}
	}
	for _, archived := range p.archive {
		behaviors = append(behaviors, archived.Behavior)
	}

	// the archive contributes neighbors, not scores: baseline and spread
	// come from the population's own novelty values
	novelties := rawNovelties(behaviors, p.cfg.NoveltyNearestNeighbors)[:len(indices)]

	minimum, maximum := math.Inf(1), math.Inf(-1)
	sum := 0.0
	for _, novelty := range novelties {
		minimum = math.Min(minimum, novelty)
		maximum = math.Max(maximum, novelty)
		sum += novelty
	}
	baseline := minimum
	spread := maximum - baseline

	mostNovel := 0
	for i, index := range indices {
		score := NewScore(novelties[i], baseline, spread)
		p.individuals[index].Novelty = &score
		if novelties[i] > novelties[mostNovel] {
			mostNovel = i
		}
	}
	p.archive = append(p.archive, p.individuals[indices[mostNovel]].Clone())

	return summarize(minimum, sum/float64(len(novelties)), maximum, baseline, spread)
}

// reproduce refills the population to its configured size. Each survivor
// is allotted offspring proportionally to its share of the total
// normalized score; largest-remainder rounding makes the allotment sum
// exact. Partners are drawn uniformly from all survivors, self-pairing
// allowed; every child is crossed over and then mutated.
func (p *Population) reproduce() {
	needed := p.cfg.PopulationSize - len(p.individuals)
	if needed <= 0 || len(p.individuals) == 0 {
		return
	}

	counts := p.offspringCounts(needed)

	offspring := make([]*Individual, 0, needed)
	for index, parent := range p.individuals {
		for i := 0; i < counts[index]; i++ {
			partner := p.individuals[p.rng.Intn(len(p.individuals))]
			child := parent.Crossover(partner, p.rng)
			child.Genome.Mutate(p.rng, p.ids, p.cfg.Mutation)
			offspring = append(offspring, child)
		}
	}
	p.individuals = append(p.individuals, offspring...)
}

// offspringCounts allocates the needed offspring across survivors in
// proportion to their score, shifted into [0, 1] against the survivor
// minimum. Fractional shares are floored and the remainder goes to the
// largest fractional parts, so the counts always sum to needed exactly.
func (p *Population) offspringCounts(needed int) []int {
	shifted := make([]float64, len(p.individuals))
	minimum := math.Inf(1)
	for _, survivor := range p.individuals {
		minimum = math.Min(minimum, survivor.Score())
	}
	total := 0.0
	for index, survivor := range p.individuals {
		shifted[index] = survivor.Score() - minimum
		total += shifted[index]
	}
	if total <= 0 {
		// degenerate spread: all survivors share equally
		for index := range shifted {
			shifted[index] = 1.0
		}
		total = float64(len(shifted))
	}

	type allocation struct {
		index     int
		remainder float64
	}
	counts := make([]int, len(p.individuals))
	allocations := make([]allocation, 0, len(p.individuals))
	assigned := 0
	for index := range p.individuals {
		share := shifted[index] / total * float64(needed)
		counts[index] = int(math.Floor(share))
		assigned += counts[index]
		allocations = append(allocations, allocation{index: index, remainder: share - math.Floor(share)})
	}
	sort.SliceStable(allocations, func(i, j int) bool {
		return allocations[i].remainder > allocations[j].remainder
	})
	for i := 0; i < needed-assigned; i++ {
		counts[allocations[i%len(allocations)].index]++
	}
	return counts
}

// gatherStatistics fills the age aggregates and top performer; an empty
// population here is an invariant breach.
func (p *Population) gatherStatistics(stats *Statistics) error {
	if len(p.individuals) == 0 {
		return fmt.Errorf("population is empty after reproduction")
	}

	top := p.individuals[0]
	ageMinimum, ageMaximum := p.individuals[0].Age, p.individuals[0].Age
	ageSum := 0
	for _, individual := range p.individuals {
		if betterFitness(individual, top) {
			top = individual
		}
		if individual.Age < ageMinimum {
			ageMinimum = individual.Age
		}
		if individual.Age > ageMaximum {
			ageMaximum = individual.Age
		}
		ageSum += individual.Age
	}

	stats.TopPerformer = top.Clone()
	stats.AgeMinimum = ageMinimum
	stats.AgeAverage = float64(ageSum) / float64(len(p.individuals))
	stats.AgeMaximum = ageMaximum
	stats.ArchiveSize = len(p.archive)
	return nil
}

// betterFitness ranks by normalized fitness, treating an absent score as
// negative infinity.
func betterFitness(a, b *Individual) bool {
	fitnessA, fitnessB := math.Inf(-1), math.Inf(-1)
	if a.Fitness != nil {
		fitnessA = a.Fitness.Normalized
	}
	if b.Fitness != nil {
		fitnessB = b.Fitness.Normalized
	}
	return fitnessA > fitnessB
}
