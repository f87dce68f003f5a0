package mcts

import (
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Instance is one element of a batch: a tree and the node to act from.
type Instance struct {
	Tree TreeView
	Node Naughty
}

// BatchOption configures how a batch is evaluated. It never changes the results.
type BatchOption func(b *batch)

type batch struct {
	workers int
}

// WithWorkers bounds the number of goroutines evaluating a batch. Values < 1 mean runtime.NumCPU().
func WithWorkers(workers int) BatchOption {
	return func(b *batch) {
		if workers > 0 {
			b.workers = workers
		}
	}
}

// BatchSelectRandom applies SelectRandom to every (stream, mask) pair independently.
// Each element must come with its own stream; see SplitStreams.
func BatchSelectRandom(srcs []rand.Source, masks [][]bool, opts ...BatchOption) ([]int, error) {
	if len(srcs) != len(masks) {
		return nil, errors.Wrapf(ErrBatchShape, "%d streams for %d masks", len(srcs), len(masks))
	}
	return run(len(masks), opts, func(i int) (int, error) {
		return SelectRandom(srcs[i], masks[i])
	})
}

// BatchSelectUCT applies SelectUCT to every instance independently.
func BatchSelectUCT(instances []Instance, conf Config, opts ...BatchOption) ([]int, error) {
	return run(len(instances), opts, func(i int) (int, error) {
		return SelectUCT(instances[i].Tree, instances[i].Node, conf)
	})
}

// BatchSelectGreedy applies SelectGreedy to every instance independently.
func BatchSelectGreedy(instances []Instance, opts ...BatchOption) ([]int, error) {
	return run(len(instances), opts, func(i int) (int, error) {
		return SelectGreedy(instances[i].Tree, instances[i].Node)
	})
}

// run evaluates fn for every index of the batch on a bounded pool of goroutines.
// Each call writes only its own output slot, so the result does not depend on scheduling.
// Failed elements are set to -1 and their errors are collected, prefixed with the element index.
func run(n int, opts []BatchOption, fn func(i int) (int, error)) ([]int, error) {
	b := batch{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&b)
	}

	retVal := make([]int, n)
	errs := make([]error, n)

	var g errgroup.Group
	g.SetLimit(b.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			retVal[i], errs[i] = fn(i)
			return nil
		})
	}
	_ = g.Wait() // workers report through errs

	var merr *multierror.Error
	for i, err := range errs {
		if err != nil {
			retVal[i] = -1
			merr = multierror.Append(merr, errors.WithMessagef(err, "batch element %d", i))
		}
	}
	return retVal, merr.ErrorOrNil()
}
