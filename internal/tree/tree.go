// Package tree materializes a link graph into connected nodes: each node holds
// pointers to its parent, children and related nodes, and knows the payload
// kind of its children so that containers can be looked through.
//
// Nodes live in an arena owned by the Tree. Materialization is an iterative
// worklist, so arbitrarily deep or cyclic feeds cannot exhaust the stack.
package tree

import (
	"greenbutton/internal/atom"
	"greenbutton/internal/espi"
	"greenbutton/internal/graph"

	"go.uber.org/zap"
)

// Node is a materialized entry. Nodes are shared: a node reachable through
// several links is the same pointer everywhere.
type Node struct {
	URI          string
	Title        string
	Contents     []atom.Content
	ContentKind  espi.Kind
	Placeholder  bool
	Parent       *Node
	Children     []*Node
	ChildrenKind espi.Kind
	Homogeneous  bool // false when children carry different payload kinds
	Related      []*Node
}

// Tree is the arena of materialized nodes and the roots they hang from
type Tree struct {
	nodes  []*Node
	index  map[string]int
	roots  []*Node
	logger *zap.Logger
}

// Option configures Build
type Option func(*Tree)

// WithLogger sets the logger used for build diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Build materializes every node reachable from the graph's roots through
// children and related links.
func Build(g *graph.Graph, opts ...Option) *Tree {
	t := &Tree{
		index:  make(map[string]int),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if g == nil {
		return t
	}

	rootURIs := g.RootNodes()

	// Create every reachable node before wiring any edge
	queue := append([]string(nil), rootURIs...)
	for len(queue) > 0 {
		uri := queue[0]
		queue = queue[1:]
		if _, seen := t.index[uri]; seen {
			continue
		}
		src, ok := g.Node(uri)
		if !ok {
			continue
		}

		t.index[uri] = len(t.nodes)
		t.nodes = append(t.nodes, &Node{
			URI:         src.URI,
			Title:       src.Title,
			Contents:    src.Contents,
			ContentKind: src.ContentKind,
			Placeholder: src.Placeholder,
			Homogeneous: true,
		})
		queue = append(queue, src.Children...)
		queue = append(queue, src.Related...)
	}

	for _, n := range t.nodes {
		src, _ := g.Node(n.URI)
		n.Children = t.resolve(src.Children)
		for _, child := range n.Children {
			child.Parent = n
		}

		n.ChildrenKind, n.Homogeneous = InferChildrenKind(n.Children)
		if !n.Homogeneous {
			t.logger.Warn("children carry mixed payload kinds",
				zap.String("uri", n.URI),
				zap.Stringer("inferred", n.ChildrenKind),
				zap.Int("children", len(n.Children)))
		}
	}

	for _, n := range t.nodes {
		src, _ := g.Node(n.URI)
		n.Related = t.resolve(src.Related)
	}

	t.roots = t.resolve(rootURIs)

	t.logger.Debug("entry tree built",
		zap.Int("nodes", len(t.nodes)),
		zap.Int("roots", len(t.roots)),
		zap.Int("unreachable", g.Len()-len(t.nodes)))

	return t
}

func (t *Tree) resolve(uris []string) []*Node {
	if len(uris) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(uris))
	for _, uri := range uris {
		if i, ok := t.index[uri]; ok {
			out = append(out, t.nodes[i])
		}
	}
	return out
}

// InferChildrenKind returns the payload kind of the first child's first
// content, and whether every child carries that same kind. An empty list is
// homogeneous with kind KindNone.
func InferChildrenKind(children []*Node) (espi.Kind, bool) {
	if len(children) == 0 {
		return espi.KindNone, true
	}

	kind := children[0].FirstContentKind()
	for _, c := range children[1:] {
		if c.FirstContentKind() != kind {
			return kind, false
		}
	}
	return kind, true
}

// Roots returns the nodes without a parent, in feed order
func (t *Tree) Roots() []*Node {
	return t.roots
}

// Lookup returns the materialized node for uri
func (t *Tree) Lookup(uri string) (*Node, bool) {
	i, ok := t.index[uri]
	if !ok {
		return nil, false
	}
	return t.nodes[i], true
}

// Len returns the number of materialized nodes
func (t *Tree) Len() int {
	return len(t.nodes)
}
