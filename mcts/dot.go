package mcts

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

// Dot renders a node and its children as a graphviz digraph. Each edge is labelled with its
// action and UCT score. Legal actions that are not expanded yet are drawn as dashed placeholders;
// illegal actions are left out.
func Dot(tree TreeView, node Naughty, conf Config) (string, error) {
	scores, mask, err := uctScores(tree, node, conf)
	if err != nil {
		return "", err
	}
	best := argmax(scores, mask)

	g := gographviz.NewEscape()
	if err = g.SetName("tree"); err != nil {
		return "", errors.WithStack(err)
	}
	if err = g.SetDir(true); err != nil {
		return "", errors.WithStack(err)
	}

	root := nodeName(node)
	if err = g.AddNode("tree", root, map[string]string{
		"label": fmt.Sprintf(`"%d\nN=%d V=%.3f"`, node, tree.Visits(node), tree.Value(node)),
		"shape": "box",
	}); err != nil {
		return "", errors.WithStack(err)
	}

	for a, kid := range tree.Children(node) {
		if !mask[a] {
			continue
		}
		name := nodeName(kid)
		nodeAttrs := map[string]string{}
		edgeAttrs := map[string]string{"label": fmt.Sprintf(`"a=%d\nuct=%.3f"`, a, scores[a])}
		if kid.isValid() {
			nodeAttrs["label"] = fmt.Sprintf(`"%d\nN=%d V=%.3f"`, kid, tree.Visits(kid), tree.Value(kid))
		} else {
			name = fmt.Sprintf("unvisited_%d_%d", node, a)
			nodeAttrs["label"] = `"?"`
			nodeAttrs["style"] = "dashed"
			edgeAttrs["style"] = "dashed"
		}
		if a == best {
			edgeAttrs["color"] = "red"
		}
		if err = g.AddNode("tree", name, nodeAttrs); err != nil {
			return "", errors.WithStack(err)
		}
		if err = g.AddEdge(root, name, true, edgeAttrs); err != nil {
			return "", errors.WithStack(err)
		}
	}
	return g.String(), nil
}

func nodeName(n Naughty) string { return fmt.Sprintf("n%d", n) }
