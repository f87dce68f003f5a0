package mcts

import "golang.org/x/exp/rand"

// SplitStreams derives n independent random streams from a single seed, one per batch element.
// The same seed always yields the same streams in the same order.
func SplitStreams(seed uint64, n int) []rand.Source {
	retVal := make([]rand.Source, n)
	state := seed
	for i := range retVal {
		retVal[i] = rand.NewSource(splitmix64(&state))
	}
	return retVal
}

// splitmix64 advances state and returns the next well mixed 64 bit value.
func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
