package mcts

import (
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mctsact/game"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Snapshot is the on-disk form of a tree: one entry per node, in arena order.
type Snapshot struct {
	ActionSpace int            `yaml:"action_space"`
	Nodes       []SnapshotNode `yaml:"nodes"`
}

// SnapshotNode is a single node. Children lists one arena index per action, -1 when the action has not been expanded.
type SnapshotNode struct {
	Visits   int32     `yaml:"visits"`
	Value    float32   `yaml:"value"`
	Mask     []bool    `yaml:"mask"`
	Children []Naughty `yaml:"children"`
}

// LoadSnapshot decodes a YAML snapshot and builds the tree it describes.
func LoadSnapshot(r io.Reader) (*Tree, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, snapshotError(err, "decode")
	}
	return s.Tree()
}

// Tree builds the arena described by the snapshot. Every node caches a game.MaskState.
func (s Snapshot) Tree() (*Tree, error) {
	if s.ActionSpace <= 0 {
		return nil, errors.Wrapf(ErrSnapshot, "action space must be positive, got %d", s.ActionSpace)
	}
	t := NewTree(s.ActionSpace, len(s.Nodes))
	for i, n := range s.Nodes {
		if len(n.Mask) != s.ActionSpace {
			return nil, snapshotError(errors.Wrapf(ErrMaskLength, "mask has %d entries, action space is %d", len(n.Mask), s.ActionSpace), "node %d", i)
		}
		if _, err := t.AddNode(game.MaskState(n.Mask)); err != nil {
			return nil, snapshotError(err, "node %d", i)
		}
		if err := t.SetStats(Naughty(i), n.Visits, n.Value); err != nil {
			return nil, snapshotError(err, "node %d", i)
		}
	}
	// children may point forwards, so link them once every node exists
	for i, n := range s.Nodes {
		if n.Children == nil {
			continue
		}
		if len(n.Children) != s.ActionSpace {
			return nil, snapshotError(errors.Wrapf(ErrMaskLength, "%d children for %d actions", len(n.Children), s.ActionSpace), "node %d", i)
		}
		for a, kid := range n.Children {
			if kid < Unvisited {
				return nil, errors.Wrapf(ErrSnapshot, "node %d action %d: bad child index %d", i, a, kid)
			}
			if err := t.SetChild(Naughty(i), a, kid); err != nil {
				return nil, snapshotError(err, "node %d action %d", i, a)
			}
		}
	}
	return t, nil
}

// snapshotError reports cause as an ErrSnapshot while keeping it reachable through errors.Is and errors.As.
func snapshotError(cause error, format string, args ...interface{}) error {
	merr := multierror.Append(errors.Wrapf(ErrSnapshot, format, args...), cause)
	merr.ErrorFormat = func(errs []error) string {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return strings.Join(msgs, ": ")
	}
	return merr
}
