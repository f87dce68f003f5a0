package mcts

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gorgonia.org/tensor"
)

// VisitPolicy builds the policy vector of a node out of the visit counts of its legal, expanded
// children. Unexpanded and illegal actions get zero probability. If nothing has been expanded yet
// the policy is uniform over the legal actions.
func VisitPolicy(tree TreeView, node Naughty) ([]float32, error) {
	mask, err := legalMask(tree, node)
	if err != nil {
		return nil, err
	}
	children := tree.Children(node)
	if len(children) != len(mask) {
		return nil, errors.Wrapf(ErrMaskLength, "node %d has %d children for %d actions", node, len(children), len(mask))
	}

	counts := make([]float64, len(mask))
	for a, kid := range children {
		if mask[a] && kid.isValid() {
			counts[a] = float64(tree.Visits(kid))
		}
	}
	if floats.Sum(counts) == 0 {
		for a, legal := range mask {
			if legal {
				counts[a] = 1
			}
		}
	}
	floats.Scale(1/floats.Sum(counts), counts)

	retVal := make([]float32, len(counts))
	for a, p := range counts {
		retVal[a] = float32(p)
	}
	return retVal, nil
}

// BatchVisitPolicies stacks the visit policies of a batch into a (batch, actions) tensor.
// All instances must share the same action space.
func BatchVisitPolicies(instances []Instance, opts ...BatchOption) (*tensor.Dense, error) {
	if len(instances) == 0 {
		return nil, errors.Wrap(ErrBatchShape, "empty batch")
	}
	actionSpace := instances[0].Tree.ActionSpace()
	for i, inst := range instances {
		if inst.Tree.ActionSpace() != actionSpace {
			return nil, errors.Wrapf(ErrBatchShape, "instance %d has action space %d, expected %d", i, inst.Tree.ActionSpace(), actionSpace)
		}
	}

	backing := make([]float32, len(instances)*actionSpace)
	_, err := run(len(instances), opts, func(i int) (int, error) {
		policy, err := VisitPolicy(instances[i].Tree, instances[i].Node)
		if err != nil {
			return -1, err
		}
		copy(backing[i*actionSpace:(i+1)*actionSpace], policy)
		return i, nil
	})
	if err != nil {
		return nil, err
	}
	return tensor.New(tensor.WithBacking(backing), tensor.WithShape(len(instances), actionSpace)), nil
}
