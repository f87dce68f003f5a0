package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	mctsact "github.com/mctsact"
	"github.com/mctsact/mcts"
)

var (
	confFile = flag.String("config", "", "YAML config file; defaults are used when empty")
	snapFile = flag.String("snapshot", "", "YAML tree snapshot to select from")
	nodeIdx  = flag.Int("node", 0, "node of the snapshot to act from")
	modeName = flag.String("mode", "", "selector to run (random, uct, greedy); all of them when empty")
	dotFile  = flag.String("dot", "", "write the graphviz dump of the node to this file")
	games    = flag.Int("games", 0, "play this many games of tic-tac-toe, uct against random")
)

func main() {
	flag.Parse()

	conf := mctsact.DefaultConfig()
	if *confFile != "" {
		var err error
		if conf, err = mctsact.LoadConfig(*confFile); err != nil {
			fmt.Fprintf(os.Stderr, "error loading config: %+v\n", err)
			os.Exit(1)
		}
	}
	logger := mctsact.NewLogger(conf, os.Stderr)
	out := termenv.NewOutput(os.Stdout)

	if *snapFile != "" {
		if err := selectFromSnapshot(conf, logger, out); err != nil {
			logger.Fatal().Err(err).Msg("selection failed")
		}
	}
	if *games > 0 {
		if err := tournament(conf, logger, out); err != nil {
			logger.Fatal().Err(err).Msg("tournament failed")
		}
	}
	if *snapFile == "" && *games == 0 {
		flag.Usage()
		os.Exit(2)
	}
}

func selectFromSnapshot(conf mctsact.Config, logger zerolog.Logger, out *termenv.Output) error {
	f, err := os.Open(*snapFile)
	if err != nil {
		return err
	}
	tree, err := mcts.LoadSnapshot(f)
	f.Close()
	if err != nil {
		return err
	}
	if *nodeIdx < 0 || *nodeIdx >= tree.Len() {
		return fmt.Errorf("node %d is not in a tree of %d nodes", *nodeIdx, tree.Len())
	}
	node := mcts.Naughty(*nodeIdx)

	modes := []mctsact.Mode{mctsact.UCT, mctsact.Greedy, mctsact.Random}
	if *modeName != "" {
		mode, err := mctsact.ParseMode(*modeName)
		if err != nil {
			return err
		}
		modes = []mctsact.Mode{mode}
	}

	header := out.String(fmt.Sprintf("node %d  N=%d  V=%.3f", node, tree.Visits(node), tree.Value(node))).Bold()
	fmt.Fprintln(out, header)
	for _, mode := range modes {
		agent, err := mctsact.NewAgent(mode, conf, rand.NewSource(conf.Seed), logger)
		if err != nil {
			return err
		}
		action, err := agent.Act(tree, node)
		if err != nil {
			fmt.Fprintf(out, "%-8s %s\n", mode, out.String(err.Error()).Foreground(out.Color("1")))
			continue
		}
		fmt.Fprintf(out, "%-8s %s\n", mode, out.String(fmt.Sprintf("%d", action)).Foreground(out.Color("2")))
	}

	if scores, err := mcts.UCTScores(tree, node, conf.MCTSConf); err == nil {
		parts := make([]string, len(scores))
		for a, s := range scores {
			parts[a] = fmt.Sprintf("%d:%.3f", a, s)
		}
		fmt.Fprintln(out, out.String("uct scores").Faint(), strings.Join(parts, " "))
	}
	if policy, err := mcts.VisitPolicy(tree, node); err == nil {
		fmt.Fprintln(out, out.String("policy    ").Faint(), fmt.Sprintf("%.3f", policy))
	}

	if *dotFile == "" {
		return nil
	}
	dot, err := mcts.Dot(tree, node, conf.MCTSConf)
	if err != nil {
		return err
	}
	if err = os.WriteFile(*dotFile, []byte(dot), 0644); err != nil {
		return err
	}
	logger.Info().Str("file", *dotFile).Msg("wrote graphviz dump")
	return nil
}

func tournament(conf mctsact.Config, logger zerolog.Logger, out *termenv.Output) error {
	arena, err := mctsact.NewArena(conf, logger)
	if err != nil {
		return err
	}
	streams := mcts.SplitStreams(conf.Seed, 1)
	uct, err := mctsact.NewAgent(mctsact.UCT, conf, nil, logger)
	if err != nil {
		return err
	}
	random, err := mctsact.NewAgent(mctsact.Random, conf, streams[0], logger)
	if err != nil {
		return err
	}

	recUCT, recRandom, err := arena.Tournament(uct, random, *games)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s  wins %s  loss %d  draw %d\n", out.String("uct   ").Bold(),
		out.String(fmt.Sprintf("%d", recUCT.Wins)).Foreground(out.Color("2")), recUCT.Loss, recUCT.Draw)
	fmt.Fprintf(out, "%s  wins %s  loss %d  draw %d\n", out.String("random").Bold(),
		out.String(fmt.Sprintf("%d", recRandom.Wins)).Foreground(out.Color("2")), recRandom.Loss, recRandom.Draw)
	return nil
}
