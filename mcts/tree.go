package mcts

import (
	"github.com/mctsact/game"
	"github.com/pkg/errors"
)

// TreeView is the read-only view of a search tree that the selectors consume.
// Children returns one entry per action; an entry is either a valid index into the same
// tree or Unvisited.
type TreeView interface {
	ActionSpace() int
	Children(of Naughty) []Naughty
	Visits(n Naughty) int32
	Value(n Naughty) float32
	State(n Naughty) game.State
}

// Tree is a flat arena of nodes. The goal is to keep the statistics in contiguous slices
// without much pointer chasing.
//
// Tree is owned by whatever builds and backs up the search. The selectors in this package
// only ever read from it.
type Tree struct {
	actionSpace int

	children []Naughty // row major, actionSpace entries per node
	visits   []int32
	values   []float32 // from the perspective of the player to move at the node
	states   []game.State
}

// NewTree creates an empty arena for the given action space, preallocating room for capacity nodes.
func NewTree(actionSpace, capacity int) *Tree {
	if capacity < 0 {
		capacity = 0
	}
	return &Tree{
		actionSpace: actionSpace,
		children:    make([]Naughty, 0, capacity*actionSpace),
		visits:      make([]int32, 0, capacity),
		values:      make([]float32, 0, capacity),
		states:      make([]game.State, 0, capacity),
	}
}

// AddNode allocates a new node holding the state. All of its actions start out Unvisited.
func (t *Tree) AddNode(state game.State) (retVal Naughty, err error) {
	if state == nil {
		return Unvisited, errors.New("cannot add a node without a state")
	}
	if state.ActionSpace() != t.actionSpace {
		return Unvisited, errors.Wrapf(ErrMaskLength, "state has action space %d, tree has %d", state.ActionSpace(), t.actionSpace)
	}
	retVal = Naughty(len(t.visits))
	for i := 0; i < t.actionSpace; i++ {
		t.children = append(t.children, Unvisited)
	}
	t.visits = append(t.visits, 0)
	t.values = append(t.values, 0)
	t.states = append(t.states, state)
	return retVal, nil
}

// SetChild records that taking action from parent leads to child.
func (t *Tree) SetChild(parent Naughty, action int, child Naughty) error {
	if !t.contains(parent) {
		return errors.Errorf("parent %d is not in the tree", parent)
	}
	if action < 0 || action >= t.actionSpace {
		return errors.Errorf("action %d is outside the action space [0, %d)", action, t.actionSpace)
	}
	if child != Unvisited && !t.contains(child) {
		return errors.Errorf("child %d is not in the tree", child)
	}
	t.children[int(parent)*t.actionSpace+action] = child
	return nil
}

// SetStats overwrites the visit count and value estimate of a node.
func (t *Tree) SetStats(n Naughty, visits int32, value float32) error {
	if !t.contains(n) {
		return errors.Errorf("node %d is not in the tree", n)
	}
	if visits < 0 {
		return errors.Errorf("visits must be non-negative, got %d", visits)
	}
	t.visits[n] = visits
	t.values[n] = value
	return nil
}

// Len is the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.visits) }

func (t *Tree) ActionSpace() int { return t.actionSpace }

// Children returns the child row of a node. The returned slice aliases the arena and must not be modified.
func (t *Tree) Children(of Naughty) []Naughty {
	start := int(of) * t.actionSpace
	return t.children[start : start+t.actionSpace : start+t.actionSpace]
}

func (t *Tree) Visits(n Naughty) int32 { return t.visits[n] }

func (t *Tree) Value(n Naughty) float32 { return t.values[n] }

func (t *Tree) State(n Naughty) game.State { return t.states[n] }

func (t *Tree) contains(n Naughty) bool { return n.isValid() && int(n) < len(t.visits) }
