package mctsact

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/mctsact/mcts"
)

// An Agent picks actions from a tree with a fixed selection rule.
type Agent struct {
	Mode Mode
	conf mcts.Config

	// Statistics
	actions  int
	failures int
	sync.Mutex

	src    rand.Source // only used in Random mode; guarded by the mutex
	logger zerolog.Logger
}

// NewAgent creates an agent. src may be nil unless mode is Random.
func NewAgent(mode Mode, conf Config, src rand.Source, logger zerolog.Logger) (*Agent, error) {
	if !conf.MCTSConf.IsValid() {
		return nil, errors.Wrapf(ErrConfig, "mcts config %+v", conf.MCTSConf)
	}
	if mode == Random && src == nil {
		return nil, errors.New("a random agent needs a random source")
	}
	return &Agent{
		Mode:   mode,
		conf:   conf.MCTSConf,
		src:    src,
		logger: logger.With().Str("mode", mode.String()).Logger(),
	}, nil
}

// Act selects an action at node. It never modifies the tree.
func (a *Agent) Act(tree mcts.TreeView, node mcts.Naughty) (retVal int, err error) {
	switch a.Mode {
	case Random:
		state := tree.State(node)
		if state == nil {
			err = errors.Errorf("node %d has no state", node)
			break
		}
		a.Lock()
		retVal, err = mcts.SelectRandom(a.src, state.LegalActionMask())
		a.Unlock()
	case UCT:
		retVal, err = mcts.SelectUCT(tree, node, a.conf)
	case Greedy:
		retVal, err = mcts.SelectGreedy(tree, node)
	default:
		err = errors.Errorf("unknown mode %v", a.Mode)
	}

	a.Lock()
	defer a.Unlock()
	if err != nil {
		a.failures++
		a.logger.Warn().Err(err).Int32("node", int32(node)).Msg("cannot select an action")
		return -1, err
	}
	a.actions++
	a.logger.Debug().Int32("node", int32(node)).Int("action", retVal).Msg("selected")
	return retVal, nil
}

// Stats returns the number of successful and failed calls to Act.
func (a *Agent) Stats() (actions, failures int) {
	a.Lock()
	defer a.Unlock()
	return a.actions, a.failures
}
