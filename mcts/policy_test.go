package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitPolicy(t *testing.T) {
	t.Run("normalised visits of legal children", func(t *testing.T) {
		policy, err := VisitPolicy(scenario(t), 0)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float32{0, 3.0 / 8, 0, 5.0 / 8}, policy, 1e-6)
	})

	t.Run("illegal children are ignored", func(t *testing.T) {
		tree := oneLevel(t, []bool{true, false}, 10, []*childStat{{visits: 1}, {visits: 9}})
		policy, err := VisitPolicy(tree, 0)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float32{1, 0}, policy, 1e-6)
	})

	t.Run("uniform when nothing is visited", func(t *testing.T) {
		tree := oneLevel(t, []bool{true, false, true, true}, 0, []*childStat{nil, nil, {visits: 0}, nil})
		policy, err := VisitPolicy(tree, 0)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float32{1.0 / 3, 0, 1.0 / 3, 1.0 / 3}, policy, 1e-6)
	})

	t.Run("terminal node", func(t *testing.T) {
		tree := oneLevel(t, []bool{false}, 0, []*childStat{nil})
		_, err := VisitPolicy(tree, 0)
		require.ErrorIs(t, err, ErrNoLegalActions)
	})
}

func TestBatchVisitPolicies(t *testing.T) {
	instances := randomInstances(t, 6, 4, 21)
	instances[0] = Instance{Tree: scenario(t)}

	policies, err := BatchVisitPolicies(instances, WithWorkers(3))
	require.NoError(t, err)
	require.Equal(t, []int{6, 4}, []int(policies.Shape()))

	for i, inst := range instances {
		want, err := VisitPolicy(inst.Tree, inst.Node)
		require.NoError(t, err)
		for a := range want {
			v, err := policies.At(i, a)
			require.NoError(t, err)
			require.Equal(t, want[a], v.(float32))
		}
	}

	t.Run("empty batch", func(t *testing.T) {
		_, err := BatchVisitPolicies(nil)
		require.ErrorIs(t, err, ErrBatchShape)
	})

	t.Run("different action spaces", func(t *testing.T) {
		_, err := BatchVisitPolicies([]Instance{{Tree: scenario(t)}, instances[1], {Tree: oneLevel(t, []bool{true}, 0, []*childStat{nil})}})
		require.ErrorIs(t, err, ErrBatchShape)
	})
}
