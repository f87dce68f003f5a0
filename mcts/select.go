package mcts

import (
	"github.com/chewxy/math32"
	"github.com/mctsact/game"
	"github.com/pkg/errors"
	"gorgonia.org/vecf32"
)

// SelectUCT selects the action to descend into during search.
// The upper bound formula is as such
//	U(s, a) = -V(child) + c * sqrt(ln(N(s) + 1) / (N(child) + eps))
//
// where
//	V(child) = value of the child, from the perspective of the player to move there (hence the negation)
//	N(s)     = visits to this node
//	N(child) = visits to the child
//
// Legal actions that have not been expanded yet score +Inf and illegal actions score -Inf, so every
// legal action is expanded once before the bound is compared at all. Ties go to the lowest action.
func SelectUCT(tree TreeView, node Naughty, conf Config) (int, error) {
	scores, mask, err := uctScores(tree, node, conf)
	if err != nil {
		return -1, err
	}
	return argmax(scores, mask), nil
}

// UCTScores returns the UCT score of every action at a node.
func UCTScores(tree TreeView, node Naughty, conf Config) ([]float32, error) {
	scores, _, err := uctScores(tree, node, conf)
	return scores, err
}

func uctScores(tree TreeView, node Naughty, conf Config) (retVal []float32, mask []bool, err error) {
	if mask, err = legalMask(tree, node); err != nil {
		return nil, nil, err
	}
	children := tree.Children(node)
	if len(children) != len(mask) {
		return nil, nil, errors.Wrapf(ErrMaskLength, "node %d has %d children for %d actions", node, len(children), len(mask))
	}

	lnN := math32.Log(float32(tree.Visits(node)) + 1)
	retVal = make([]float32, len(children))
	explore := make([]float32, len(children))
	for a, kid := range children {
		if !mask[a] || !kid.isValid() {
			continue // never read statistics through an unexpanded or illegal action
		}
		retVal[a] = -tree.Value(kid)
		explore[a] = ratio(lnN, float32(tree.Visits(kid))+conf.Eps)
	}

	vecf32.Sqrt(explore)
	if conf.ExplorationConstant != 0 { // 0 * +Inf is NaN
		vecf32.Scale(explore, conf.ExplorationConstant)
		vecf32.Add(retVal, explore)
	}

	// +Inf is reserved for unvisited actions, so a visited bound saturates below it
	for a, kid := range children {
		switch {
		case !mask[a]:
			retVal[a] = math32.Inf(-1)
		case !kid.isValid():
			retVal[a] = math32.Inf(1)
		case retVal[a] > math32.MaxFloat32:
			retVal[a] = math32.MaxFloat32
		}
	}
	return retVal, mask, nil
}

// SelectGreedy selects the most visited legal child. This is the recommendation rule once the
// search budget is spent. Unlike SelectUCT, unexpanded actions are never preferred: they are
// excluded. If no legal action has been expanded at all, the lowest legal action is returned.
func SelectGreedy(tree TreeView, node Naughty) (int, error) {
	mask, err := legalMask(tree, node)
	if err != nil {
		return -1, err
	}
	children := tree.Children(node)
	if len(children) != len(mask) {
		return -1, errors.Wrapf(ErrMaskLength, "node %d has %d children for %d actions", node, len(children), len(mask))
	}

	// visit counts are compared as integers; float32 loses ties above 2^24
	best := -1
	var bestVisits int32 = -1
	for a, kid := range children {
		if !mask[a] || !kid.isValid() {
			continue
		}
		if v := tree.Visits(kid); v > bestVisits {
			bestVisits = v
			best = a
		}
	}
	if best < 0 {
		return game.FirstLegal(mask), nil
	}
	return best, nil
}
