package mctsact

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/mctsact/game"
	"github.com/mctsact/mcts"
)

// Arena is where the selectors are exercised. It evaluates batches of trees with every selector,
// and it plays games of tic-tac-toe between agents.
type Arena struct {
	conf   Config
	src    rand.Source // rollouts
	logger zerolog.Logger

	gameNumber int
}

// NewArena creates an arena. The rollout stream is derived from conf.Seed.
func NewArena(conf Config, logger zerolog.Logger) (*Arena, error) {
	if !conf.IsValid() {
		return nil, errors.Wrapf(ErrConfig, "%+v", conf)
	}
	return &Arena{
		conf:   conf,
		src:    rand.NewSource(conf.Seed),
		logger: logger.With().Str("arena", conf.Name).Logger(),
	}, nil
}

// GameNumber returns the number of games played so far.
func (a *Arena) GameNumber() int { return a.gameNumber }

func (a *Arena) batchOpts() []mcts.BatchOption {
	if a.conf.Workers > 0 {
		return []mcts.BatchOption{mcts.WithWorkers(a.conf.Workers)}
	}
	return nil
}

// Evaluate runs every selector over the batch. Each element gets its own random stream split
// from the configured seed, so the report only depends on the instances and the config.
//
// Elements that fail are reported as -1 and do not count towards the agreement. The returned
// error combines all of the failures.
func (a *Arena) Evaluate(instances []mcts.Instance) (Report, error) {
	if len(instances) == 0 {
		return Report{}, errors.Wrap(mcts.ErrBatchShape, "nothing to evaluate")
	}
	opts := a.batchOpts()

	var merr *multierror.Error
	var r Report
	var err error
	if r.UCT, err = mcts.BatchSelectUCT(instances, a.conf.MCTSConf, opts...); err != nil {
		merr = multierror.Append(merr, errors.WithMessage(err, "uct"))
	}
	if r.Greedy, err = mcts.BatchSelectGreedy(instances, opts...); err != nil {
		merr = multierror.Append(merr, errors.WithMessage(err, "greedy"))
	}

	masks := make([][]bool, len(instances))
	for i, inst := range instances {
		if state := inst.Tree.State(inst.Node); state != nil {
			masks[i] = state.LegalActionMask()
		}
	}
	srcs := mcts.SplitStreams(a.conf.Seed, len(instances))
	if r.Random, err = mcts.BatchSelectRandom(srcs, masks, opts...); err != nil {
		merr = multierror.Append(merr, errors.WithMessage(err, "random"))
	}

	if merr == nil && sameActionSpace(instances) {
		if r.Policies, err = mcts.BatchVisitPolicies(instances, opts...); err != nil {
			merr = multierror.Append(merr, errors.WithMessage(err, "policies"))
		}
	}

	var agree, counted int
	for i := range instances {
		if r.UCT[i] < 0 || r.Greedy[i] < 0 || r.Random[i] < 0 {
			r.Failed++
		}
		if r.UCT[i] < 0 || r.Greedy[i] < 0 {
			continue
		}
		counted++
		if r.UCT[i] == r.Greedy[i] {
			agree++
		}
	}
	if counted > 0 {
		r.Agreement = float64(agree) / float64(counted)
	}

	a.logger.Info().
		Int("batch", len(instances)).
		Int("failed", r.Failed).
		Float64("agreement", r.Agreement).
		Msg("evaluated batch")
	return r, merr.ErrorOrNil()
}

func sameActionSpace(instances []mcts.Instance) bool {
	for _, inst := range instances[1:] {
		if inst.Tree.ActionSpace() != instances[0].Tree.ActionSpace() {
			return false
		}
	}
	return true
}

// Expand builds a one ply tree for the position: the root and one child per legal action.
// Each child is scored by random playouts from the perspective of the player to move there.
func (a *Arena) Expand(g game.TicTacToe) (*mcts.Tree, mcts.Naughty, error) {
	mask := g.LegalActionMask()
	tree := mcts.NewTree(g.ActionSpace(), 1+game.CountLegal(mask))
	root, err := tree.AddNode(g)
	if err != nil {
		return nil, mcts.Unvisited, err
	}

	var rootVisits int32
	for action, legal := range mask {
		if !legal {
			continue
		}
		next, err := g.Apply(action)
		if err != nil {
			return nil, mcts.Unvisited, err
		}
		kid, err := tree.AddNode(next)
		if err != nil {
			return nil, mcts.Unvisited, err
		}
		if err = tree.SetChild(root, action, kid); err != nil {
			return nil, mcts.Unvisited, err
		}
		if a.conf.Rollouts == 0 {
			continue
		}

		var sum float32
		for i := 0; i < a.conf.Rollouts; i++ {
			v, err := a.rollout(next)
			if err != nil {
				return nil, mcts.Unvisited, err
			}
			sum += v
		}
		if err = tree.SetStats(kid, int32(a.conf.Rollouts), sum/float32(a.conf.Rollouts)); err != nil {
			return nil, mcts.Unvisited, err
		}
		rootVisits += int32(a.conf.Rollouts)
	}
	if err = tree.SetStats(root, rootVisits, 0); err != nil {
		return nil, mcts.Unvisited, err
	}
	return tree, root, nil
}

// rollout plays uniformly random moves until the game ends. The result is 1 if the player to
// move in g wins, -1 if they lose and 0 for a draw.
func (a *Arena) rollout(g game.TicTacToe) (float32, error) {
	player := g.Turn()
	for {
		ended, winner := g.Ended()
		if ended {
			switch winner {
			case game.None:
				return 0, nil
			case player:
				return 1, nil
			default:
				return -1, nil
			}
		}
		action, err := mcts.SelectRandom(a.src, g.LegalActionMask())
		if err != nil {
			return 0, err
		}
		if g, err = g.Apply(action); err != nil {
			return 0, err
		}
	}
}

// Play plays a game of tic-tac-toe with cross moving first. Before every move the position is
// expanded and the agent to move acts on the resulting tree. It returns the winner, or game.None
// for a draw.
func (a *Arena) Play(cross, nought *Agent) (game.Player, error) {
	g := game.NewTicTacToe()
	current := cross
	for {
		if ended, winner := g.Ended(); ended {
			a.gameNumber++
			a.logger.Debug().Int("game", a.gameNumber).Stringer("winner", winner).Msg("game over")
			return winner, nil
		}
		tree, root, err := a.Expand(g)
		if err != nil {
			return game.None, err
		}
		action, err := current.Act(tree, root)
		if err != nil {
			return game.None, errors.WithMessagef(err, "move %d", g.MoveNumber())
		}
		if g, err = g.Apply(action); err != nil {
			return game.None, err
		}
		if current == cross {
			current = nought
		} else {
			current = cross
		}
	}
}

// Tournament plays n games between two agents, alternating who moves first.
// The records are from the perspective of agentA and agentB respectively.
func (a *Arena) Tournament(agentA, agentB *Agent, n int) (recA, recB Record, err error) {
	for i := 0; i < n; i++ {
		first, second := agentA, agentB
		if i%2 == 1 {
			first, second = agentB, agentA
		}
		winner, err := a.Play(first, second)
		if err != nil {
			return recA, recB, errors.WithMessagef(err, "game %d", i)
		}

		var aWon bool
		switch {
		case winner == game.None:
			recA.Draw++
			recB.Draw++
			continue
		case winner == game.Cross:
			aWon = first == agentA
		default:
			aWon = second == agentA
		}
		if aWon {
			recA.Wins++
			recB.Loss++
		} else {
			recB.Wins++
			recA.Loss++
		}
	}
	a.logger.Info().
		Int("games", n).
		Str("a", agentA.Mode.String()).Int("a_wins", recA.Wins).
		Str("b", agentB.Mode.String()).Int("b_wins", recB.Wins).
		Int("draws", recA.Draw).
		Msg("tournament over")
	return recA, recB, nil
}
