package evo

// Progress is what an evaluator learned about one individual: possibly a
// raw fitness, possibly a behavior vector, possibly a winning individual.
// The zero value reports nothing.
type Progress struct {
	fitness  *float64
	behavior Behavior
	solution *Individual
}

// EmptyProgress reports that the evaluation taught us nothing.
func EmptyProgress() Progress {
	return Progress{}
}

// NewProgress reports a raw fitness together with the observed behavior.
func NewProgress(fitness float64, behavior []float64) Progress {
	return Progress{fitness: &fitness, behavior: behavior}
}

// NoveltyProgress reports an observed behavior without a fitness value,
// for purely novelty-driven search.
func NoveltyProgress(behavior []float64) Progress {
	return Progress{behavior: behavior}
}

// Solved marks this progress as carrying a winning individual, keeping
// whatever fitness and behavior were already reported.
func (p Progress) Solved(winner *Individual) Progress {
	p.solution = winner
	return p
}

// RawFitness projects the fitness component.
func (p Progress) RawFitness() (float64, bool) {
	if p.fitness == nil {
		return 0, false
	}
	return *p.fitness, true
}

// Behavior projects the behavior component, nil when absent.
func (p Progress) Behavior() Behavior {
	return p.behavior
}

// Solution returns the winning individual, nil when the search goes on.
func (p Progress) Solution() *Individual {
	return p.solution
}
