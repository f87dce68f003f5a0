package mcts

import (
	"github.com/chewxy/math32"
	"github.com/mctsact/game"
)

// argmax returns the first index attaining the maximum score.
// An illegal action never wins: if every legal score is -Inf, the lowest legal action is returned.
func argmax(scores []float32, mask []bool) int {
	retVal := -1
	var max = math32.Inf(-1)
	for i := range scores {
		if mask[i] && scores[i] > max {
			max = scores[i]
			retVal = i
		}
	}
	if retVal < 0 {
		return game.FirstLegal(mask)
	}
	return retVal
}

// ratio divides, treating 0/0 as 0 and x/0 as +Inf so that no NaN leaks into a score.
func ratio(num, denom float32) float32 {
	if denom == 0 {
		if num == 0 {
			return 0
		}
		return math32.Inf(1)
	}
	return num / denom
}
