package mctsact

import (
	"strings"

	"github.com/mctsact/mcts"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Config for the action selection layer.
// It holds the UCT parameters as well as how batches are evaluated and logged.
type Config struct {
	Name     string      `json:"name" yaml:"name"`
	MCTSConf mcts.Config `json:"mcts_conf" yaml:"mcts_conf"`

	// Workers bounds the goroutines used for batched selection. 0 means one per CPU.
	Workers int `json:"workers" yaml:"workers"`

	// Seed is split into one random stream per batch element.
	Seed uint64 `json:"seed" yaml:"seed"`

	// Rollouts is the number of random playouts per child when the arena expands a position.
	Rollouts int `json:"rollouts" yaml:"rollouts"`

	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Mode is the selection rule an Agent acts with.
type Mode int

const (
	Random Mode = iota // uniform over legal actions, e.g. for rollouts and baselines
	UCT                // exploration during search
	Greedy             // final recommendation once the search is over
)

func (m Mode) String() string {
	switch m {
	case Random:
		return "random"
	case UCT:
		return "uct"
	case Greedy:
		return "greedy"
	}
	return "UNKNOWN MODE"
}

// ParseMode parses the name of a mode, as printed by String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random":
		return Random, nil
	case "uct":
		return UCT, nil
	case "greedy":
		return Greedy, nil
	}
	return Random, errors.Errorf("unknown mode %q", s)
}

// Report is the outcome of evaluating a batch with every selector.
// Elements that could not be evaluated hold -1.
type Report struct {
	UCT    []int
	Greedy []int
	Random []int

	// Agreement is the fraction of instances where UCT and Greedy pick the same action.
	Agreement float64

	// Failed counts the instances at least one selector could not act on.
	Failed int

	// Policies is the (batch, actions) visit policy tensor. It is nil if any instance failed
	// or if the instances do not share an action space.
	Policies *tensor.Dense
}

// Record is the tally of games an agent played in an Arena.
type Record struct {
	Wins, Loss, Draw int
}

// Played is the total number of games.
func (r Record) Played() int { return r.Wins + r.Loss + r.Draw }
