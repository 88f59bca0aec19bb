package genotype

// Connection is a connection gene between two nodes. Feed-forward and
// recurrent connections share this shape and are kept in separate genome
// sets.
type Connection struct {
	Input  Id     `json:"input"`
	Weight Weight `json:"weight"`
	Output Id     `json:"output"`
}

// Key implements Gene; connection identity is the endpoint pair, the
// weight is mutable payload.
func (c Connection) Key() ConnectionKey {
	return ConnectionKey{Input: c.Input, Output: c.Output}
}
