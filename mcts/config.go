package mcts

import "github.com/chewxy/math32"

// Config holds the two tuning parameters of the UCT rule.
type Config struct {
	// ExplorationConstant trades exploitation against exploration. sqrt(2) is the textbook UCB1 value.
	ExplorationConstant float32 `json:"exploration_constant" yaml:"exploration_constant"`

	// Eps floors the child visit count in the denominator, so a child that has been
	// expanded but not backed up yet does not divide by zero. It must be positive.
	Eps float32 `json:"eps" yaml:"eps"`
}

func DefaultConfig() Config {
	return Config{
		ExplorationConstant: math32.Sqrt2,
		Eps:                 1e-8,
	}
}

func (c Config) IsValid() bool {
	return c.ExplorationConstant >= 0 && !math32.IsInf(c.ExplorationConstant, 0) && !math32.IsNaN(c.ExplorationConstant) &&
		c.Eps > 0 && !math32.IsInf(c.Eps, 0) && !math32.IsNaN(c.Eps)
}
