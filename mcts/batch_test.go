package mcts

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/mctsact/game"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// randomInstances builds n one level trees with random masks and statistics.
func randomInstances(t *testing.T, n, actions int, seed uint64) []Instance {
	r := rand.New(rand.NewSource(seed))
	retVal := make([]Instance, n)
	for i := range retVal {
		mask := make([]bool, actions)
		mask[r.Intn(actions)] = true
		for a := range mask {
			if r.Float64() < 0.6 {
				mask[a] = true
			}
		}
		kids := make([]*childStat, actions)
		for a := range kids {
			if r.Float64() < 0.7 {
				kids[a] = &childStat{visits: int32(r.Intn(20)), value: float32(r.Float64()*2 - 1)}
			}
		}
		retVal[i] = Instance{Tree: oneLevel(t, mask, int32(r.Intn(200)), kids), Node: 0}
	}
	return retVal
}

func TestBatchSelect(t *testing.T) {
	instances := randomInstances(t, 64, 7, 1337)
	conf := DefaultConfig()

	uct := make([]int, len(instances))
	greedy := make([]int, len(instances))
	for i, inst := range instances {
		var err error
		uct[i], err = SelectUCT(inst.Tree, inst.Node, conf)
		require.NoError(t, err)
		greedy[i], err = SelectGreedy(inst.Tree, inst.Node)
		require.NoError(t, err)
	}

	for _, workers := range []int{0, 1, 3, 64, 200} {
		got, err := BatchSelectUCT(instances, conf, WithWorkers(workers))
		require.NoError(t, err)
		require.Equal(t, uct, got, "uct with %d workers", workers)

		got, err = BatchSelectGreedy(instances, WithWorkers(workers))
		require.NoError(t, err)
		require.Equal(t, greedy, got, "greedy with %d workers", workers)
	}

	t.Run("order of the batch does not matter", func(t *testing.T) {
		perm := rand.New(rand.NewSource(8)).Perm(len(instances))
		shuffled := make([]Instance, len(instances))
		for i, j := range perm {
			shuffled[i] = instances[j]
		}
		got, err := BatchSelectUCT(shuffled, conf, WithWorkers(4))
		require.NoError(t, err)
		for i, j := range perm {
			require.Equal(t, uct[j], got[i])
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		got, err := BatchSelectGreedy(nil)
		require.NoError(t, err)
		require.Empty(t, got)
	})
}

func TestBatchSelectRandom(t *testing.T) {
	masks := make([][]bool, 32)
	for i := range masks {
		masks[i] = []bool{i%2 == 0, true, false, i%3 == 0, true}
	}

	want := make([]int, len(masks))
	for i, src := range SplitStreams(11, len(masks)) {
		var err error
		want[i], err = SelectRandom(src, masks[i])
		require.NoError(t, err)
	}

	for _, workers := range []int{1, 2, 16} {
		got, err := BatchSelectRandom(SplitStreams(11, len(masks)), masks, WithWorkers(workers))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	t.Run("mismatched lengths", func(t *testing.T) {
		_, err := BatchSelectRandom(SplitStreams(1, 2), masks)
		require.ErrorIs(t, err, ErrBatchShape)
	})
}

func TestBatchErrors(t *testing.T) {
	instances := randomInstances(t, 5, 3, 9)
	terminal := oneLevel(t, []bool{false, false, false}, 0, []*childStat{nil, nil, nil})
	instances[1] = Instance{Tree: terminal}
	instances[3] = Instance{Tree: terminal}

	got, err := BatchSelectUCT(instances, DefaultConfig(), WithWorkers(2))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNoLegalActions)
	require.Equal(t, -1, got[1])
	require.Equal(t, -1, got[3])
	for _, i := range []int{0, 2, 4} {
		mask := instances[i].Tree.State(0).LegalActionMask()
		require.True(t, mask[got[i]])
	}

	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)
	require.Contains(t, merr.Errors[0].Error(), "batch element 1")
	require.Contains(t, merr.Errors[1].Error(), "batch element 3")
}

func TestBatchMixedStates(t *testing.T) {
	g := game.NewTicTacToe()
	tree := NewTree(g.ActionSpace(), 1)
	root, err := tree.AddNode(g)
	require.NoError(t, err)

	snap := scenario(t)
	got, err := BatchSelectGreedy([]Instance{{tree, root}, {snap, 0}})
	require.NoError(t, err)
	require.Equal(t, []int{0, 3}, got)
}
