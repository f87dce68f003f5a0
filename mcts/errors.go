package mcts

import "github.com/pkg/errors"

var (
	// ErrNoLegalActions is returned when a selector is asked to act in a state without a single legal action.
	// Terminal states must not be passed to a selector.
	ErrNoLegalActions = errors.New("no legal actions")

	// ErrMaskLength is returned when a legality mask does not cover the action space.
	ErrMaskLength = errors.New("mask length does not match the action space")

	// ErrBatchShape is returned when the inputs of a batched call have different lengths.
	ErrBatchShape = errors.New("batch inputs have mismatched lengths")

	// ErrSnapshot is returned for malformed tree snapshots.
	ErrSnapshot = errors.New("invalid tree snapshot")
)

// legalMask fetches and checks the legality mask of a node.
func legalMask(tree TreeView, node Naughty) ([]bool, error) {
	state := tree.State(node)
	if state == nil {
		return nil, errors.Errorf("node %d has no state", node)
	}
	mask := state.LegalActionMask()
	if len(mask) != tree.ActionSpace() {
		return nil, errors.Wrapf(ErrMaskLength, "node %d: mask has %d entries, action space is %d", node, len(mask), tree.ActionSpace())
	}
	if !anyLegal(mask) {
		return nil, errors.Wrapf(ErrNoLegalActions, "node %d", node)
	}
	return mask, nil
}

func anyLegal(mask []bool) bool {
	for _, legal := range mask {
		if legal {
			return true
		}
	}
	return false
}
