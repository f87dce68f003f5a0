package mcts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	dot, err := Dot(scenario(t), 0, DefaultConfig())
	require.NoError(t, err)

	require.Contains(t, dot, "digraph tree")
	require.Contains(t, dot, "n0")
	require.Contains(t, dot, "unvisited_0_0")
	require.NotContains(t, dot, "unvisited_0_2", "illegal actions are left out")
	require.Contains(t, dot, "N=3 V=0.200")
	require.Contains(t, dot, "N=5 V=-0.100")
	require.Contains(t, dot, "dashed")
	require.Contains(t, dot, "red")

	_, err = Dot(oneLevel(t, []bool{false}, 0, []*childStat{nil}), 0, DefaultConfig())
	require.ErrorIs(t, err, ErrNoLegalActions)
}
