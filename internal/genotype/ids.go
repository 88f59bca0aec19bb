package genotype

// Id identifies a node within a single run. Connection identity is the
// ordered pair of node ids, see ConnectionKey.
type Id uint64

// ConnectionKey is the structural identity of a connection: the endpoint
// pair, ignoring the weight payload.
type ConnectionKey struct {
	Input  Id
	Output Id
}

// IdGenerator issues run-unique node ids. Ids handed out for splitting a
// given connection are remembered per connection identity, so independently
// mutated lineages that split the same connection resolve to the same
// hidden-node id and their offspring recognize the split as one structural
// change during crossover.
type IdGenerator struct {
	next  Id
	cache map[ConnectionKey][]Id
}

func NewIdGenerator() *IdGenerator {
	return &IdGenerator{cache: make(map[ConnectionKey][]Id)}
}

// RestoreIdGenerator rebuilds generator state from a checkpoint.
func RestoreIdGenerator(next Id, cache map[ConnectionKey][]Id) *IdGenerator {
	g := NewIdGenerator()
	g.next = next
	for key, ids := range cache {
		g.cache[key] = append([]Id(nil), ids...)
	}
	return g
}

// Next returns a fresh, monotonically advancing id.
func (g *IdGenerator) Next() Id {
	id := g.next
	g.next++
	return id
}

// SplitID returns the id a new hidden node receives when the connection
// identified by key is split. Cached candidates for that connection are
// offered first; a candidate already taken in the calling genome (taken
// reports true) is skipped. When all cached candidates are taken a fresh id
// is minted and appended to the cache.
func (g *IdGenerator) SplitID(key ConnectionKey, taken func(Id) bool) Id {
	for _, id := range g.cache[key] {
		if !taken(id) {
			return id
		}
	}
	id := g.Next()
	g.cache[key] = append(g.cache[key], id)
	return id
}

// NextID exposes the counter for checkpointing.
func (g *IdGenerator) NextID() Id {
	return g.next
}

// SplitCache exposes a copy of the split cache for checkpointing.
func (g *IdGenerator) SplitCache() map[ConnectionKey][]Id {
	out := make(map[ConnectionKey][]Id, len(g.cache))
	for key, ids := range g.cache {
		out[key] = append([]Id(nil), ids...)
	}
	return out
}
