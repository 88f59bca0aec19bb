package genotype

import (
	"fmt"
	"math/rand"
)

// Gene is anything stored in a Set: its Key is the structural identity
// used for membership and equality, any remaining fields are payload.
type Gene[K comparable] interface {
	Key() K
}

// Set is an insertion-ordered collection of genes unique by identity.
// Insertion order is stable across clones and crossover, which keeps
// seeded runs reproducible without relying on map iteration order.
type Set[K comparable, G Gene[K]] struct {
	order []K
	genes map[K]G
}

// NewSet builds a set from the given genes, panicking on duplicate
// identities since callers constructing sets literally vouch for
// uniqueness.
func NewSet[K comparable, G Gene[K]](genes ...G) Set[K, G] {
	var s Set[K, G]
	for _, gene := range genes {
		s.MustInsert(gene)
	}
	return s
}

func (s *Set[K, G]) Len() int {
	return len(s.order)
}

// Insert adds the gene if no gene with the same identity exists and
// reports whether it was added.
func (s *Set[K, G]) Insert(gene G) bool {
	if s.genes == nil {
		s.genes = make(map[K]G)
	}
	key := gene.Key()
	if _, exists := s.genes[key]; exists {
		return false
	}
	s.genes[key] = gene
	s.order = append(s.order, key)
	return true
}

// MustInsert adds the gene and panics on a duplicate identity. Used where
// the caller has already established absence; a duplicate there is a logic
// error that would corrupt selection if ignored.
func (s *Set[K, G]) MustInsert(gene G) {
	if !s.Insert(gene) {
		panic(fmt.Sprintf("duplicate gene identity %v", gene.Key()))
	}
}

// Replace upserts by identity, overwriting the payload of an existing gene
// while preserving its position.
func (s *Set[K, G]) Replace(gene G) {
	if s.Insert(gene) {
		return
	}
	s.genes[gene.Key()] = gene
}

// Contains tests membership by identity only, ignoring payload.
func (s *Set[K, G]) Contains(gene G) bool {
	_, exists := s.genes[gene.Key()]
	return exists
}

// Get looks a gene up by identity.
func (s *Set[K, G]) Get(key K) (G, bool) {
	gene, exists := s.genes[key]
	return gene, exists
}

// Random picks one gene uniformly, reporting false on an empty set.
func (s *Set[K, G]) Random(rng *rand.Rand) (G, bool) {
	if len(s.order) == 0 {
		var zero G
		return zero, false
	}
	return s.genes[s.order[rng.Intn(len(s.order))]], true
}

// Slice returns the genes in insertion order.
func (s *Set[K, G]) Slice() []G {
	out := make([]G, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.genes[key])
	}
	return out
}

// IterateWithRandomOffset returns all genes starting from a uniformly
// random rotation point, each gene exactly once.
func (s *Set[K, G]) IterateWithRandomOffset(rng *rand.Rand) []G {
	if len(s.order) == 0 {
		return nil
	}
	offset := rng.Intn(len(s.order))
	out := make([]G, 0, len(s.order))
	for i := range s.order {
		out = append(out, s.genes[s.order[(offset+i)%len(s.order)]])
	}
	return out
}

// CrossIn combines two parent sets, with the receiver as the fitter side.
// Identities present in both inherit either parent's allele with equal
// probability; identities only in the receiver are inherited as-is;
// identities only in other are dropped. This is the NEAT rule where
// disjoint and excess genes come from the fitter parent only.
func (s *Set[K, G]) CrossIn(other *Set[K, G], rng *rand.Rand) Set[K, G] {
	var child Set[K, G]
	for _, key := range s.order {
		allele := s.genes[key]
		if theirs, exists := other.Get(key); exists && rng.Intn(2) == 0 {
			allele = theirs
		}
		child.MustInsert(allele)
	}
	return child
}

// Clone copies the set. Genes are value types, so a shallow copy of the
// map suffices.
func (s *Set[K, G]) Clone() Set[K, G] {
	clone := Set[K, G]{
		order: append([]K(nil), s.order...),
		genes: make(map[K]G, len(s.genes)),
	}
	for key, gene := range s.genes {
		clone.genes[key] = gene
	}
	return clone
}
