package genotype

// Node is a node gene. Its role (input, hidden, output) is determined by
// which genome set it lives in and never changes after creation.
type Node struct {
	ID         Id         `json:"id"`
	Activation Activation `json:"activation"`
}

// Key implements Gene; node identity is the id alone, the activation is
// mutable payload.
func (n Node) Key() Id {
	return n.ID
}
