// Package graph resolves the links of an Atom feed into a table of nodes keyed
// by URI. Entries reference each other through self, up and related links; the
// graph keeps one node per distinct URI and adds empty placeholder nodes for
// URIs that are referenced but never defined.
package graph

import (
	"greenbutton/internal/atom"
	"greenbutton/internal/espi"

	"go.uber.org/zap"
)

// Node is one resolved entry, or a placeholder for a referenced URI
type Node struct {
	URI         string
	Parent      string // "" when the entry has no up link
	ContentKind espi.Kind
	Contents    []atom.Content
	Children    []string
	Related     []string
	Title       string
	Placeholder bool
}

// HasParent reports whether the node declared an up link
func (n *Node) HasParent() bool {
	return n.Parent != ""
}

// Graph is the URI-keyed node table. Iteration order is first insertion.
type Graph struct {
	nodes      map[string]*Node
	order      []string
	collisions int
	logger     *zap.Logger
}

// Option configures Build
type Option func(*Graph)

// WithLogger sets the logger used for build diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Build resolves every entry of feed into the node table
func Build(feed *atom.Feed, opts ...Option) *Graph {
	g := &Graph{
		nodes:  make(map[string]*Node),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if feed == nil {
		return g
	}

	for i := range feed.Entries {
		g.addEntry(&feed.Entries[i])
	}

	// Referenced but undefined URIs become placeholders. Only the nodes that
	// existed before this pass are scanned; placeholders reference nothing.
	defined := len(g.order)
	placeholders := 0
	for _, uri := range g.order[:defined] {
		node := g.nodes[uri]
		if node.HasParent() && g.ensure(node.Parent) {
			placeholders++
		}
		for _, rel := range node.Related {
			if g.ensure(rel) {
				placeholders++
			}
		}
	}

	for _, uri := range g.order {
		node := g.nodes[uri]
		if !node.HasParent() {
			continue
		}
		parent := g.nodes[node.Parent]
		parent.Children = append(parent.Children, node.URI)
	}

	g.logger.Debug("link graph built",
		zap.Int("entries", len(feed.Entries)),
		zap.Int("nodes", len(g.order)),
		zap.Int("placeholders", placeholders),
		zap.Int("collisions", g.collisions))

	return g
}

func (g *Graph) addEntry(entry *atom.Entry) {
	node := &Node{Title: entry.Title()}

	for _, link := range entry.Links {
		switch link.Rel {
		case atom.RelSelf:
			if link.Href != "" {
				node.URI = link.Href
			}
		case atom.RelUp:
			if link.Href != "" {
				node.Parent = link.Href
			}
		case atom.RelRelated:
			if link.Href != "" {
				node.Related = append(node.Related, link.Href)
			}
		}
	}

	node.Contents = entry.Contents
	if len(entry.Contents) > 0 {
		node.ContentKind = espi.KindOfElement(entry.Contents[0].First())
	}

	if _, exists := g.nodes[node.URI]; exists {
		g.collisions++
		g.logger.Warn("entry replaces an earlier entry with the same identity",
			zap.String("uri", node.URI),
			zap.String("title", node.Title))
	} else {
		g.order = append(g.order, node.URI)
	}
	g.nodes[node.URI] = node
}

// ensure adds a placeholder for uri when it is missing and reports whether it did
func (g *Graph) ensure(uri string) bool {
	if _, ok := g.nodes[uri]; ok {
		return false
	}
	g.nodes[uri] = &Node{URI: uri, Placeholder: true}
	g.order = append(g.order, uri)
	return true
}

// Node returns the node for uri
func (g *Graph) Node(uri string) (*Node, bool) {
	n, ok := g.nodes[uri]
	return n, ok
}

// Len returns the number of nodes, placeholders included
func (g *Graph) Len() int {
	return len(g.order)
}

// URIs returns every node URI in table order
func (g *Graph) URIs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// RootNodes returns the URIs of nodes without a parent, in table order
func (g *Graph) RootNodes() []string {
	var roots []string
	for _, uri := range g.order {
		if !g.nodes[uri].HasParent() {
			roots = append(roots, uri)
		}
	}
	return roots
}

// Collisions returns how many entries replaced an earlier entry with the same URI
func (g *Graph) Collisions() int {
	return g.collisions
}
