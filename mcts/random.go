package mcts

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SelectRandom ignores everything but the legality mask and picks a legal action uniformly at random.
//
// The draw is a categorical sample over log-probabilities using the Gumbel-max trick:
//	argmax_a(log p(a) + g(a)),	g(a) ~ Gumbel(0, 1)
//
// Illegal actions have p(a) = 0. log(0) is clamped to the most negative finite float32 so it stays
// comparable instead of turning the sum into -Inf or NaN. One Gumbel sample is drawn per action,
// so the amount of randomness consumed from src depends only on the size of the action space.
func SelectRandom(src rand.Source, mask []bool) (int, error) {
	if src == nil {
		return -1, errors.New("nil random source")
	}
	logits, err := uniformLogits(mask)
	if err != nil {
		return -1, err
	}
	noise := distuv.GumbelRight{Mu: 0, Beta: 1, Src: src}
	for a := range logits {
		logits[a] += float32(noise.Rand())
	}
	return argmax(logits, mask), nil
}

// uniformLogits normalises the mask into probabilities and returns their clamped logarithm.
func uniformLogits(mask []bool) ([]float32, error) {
	if !anyLegal(mask) {
		return nil, errors.WithStack(ErrNoLegalActions)
	}
	var sum float32
	probs := make([]float32, len(mask))
	for a, legal := range mask {
		if legal {
			probs[a] = 1
			sum++
		}
	}
	for a := range probs {
		probs[a] = math32.Max(math32.Log(probs[a]/sum), -math32.MaxFloat32)
	}
	return probs, nil
}
