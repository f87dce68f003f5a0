package mcts

// Naughty is essentially *Node: an index into the tree arena.
type Naughty int32

func (n Naughty) isValid() bool { return n >= 0 }

// Unvisited marks an action that is legal but has not been expanded into a child yet.
// Arena indices are never negative so it cannot collide with a real node.
const (
	Unvisited Naughty = -1
)
