package tree

import "greenbutton/internal/espi"

// FirstContent returns the first element of the node's first content, or nil
func (n *Node) FirstContent() espi.Element {
	if len(n.Contents) == 0 {
		return nil
	}
	return n.Contents[0].First()
}

// FirstContentKind returns the kind of FirstContent, KindNone when there is none
func (n *Node) FirstContentKind() espi.Kind {
	return espi.KindOfElement(n.FirstContent())
}

// RelatedOfKind returns the related nodes that carry kind. When any related
// node is a container of kind, the children of those containers are returned
// instead of direct matches.
func (n *Node) RelatedOfKind(kind espi.Kind) []*Node {
	return ElementsOfKind(kind, n.Related)
}

// SafeContent returns the first content element of the first related node of
// kind, or nil when there is none.
func (n *Node) SafeContent(kind espi.Kind) espi.Element {
	related := n.RelatedOfKind(kind)
	if len(related) == 0 {
		return nil
	}
	return related[0].FirstContent()
}

// ElementsOfKind applies the container rule of RelatedOfKind to any node list
func ElementsOfKind(kind espi.Kind, nodes []*Node) []*Node {
	var out []*Node
	containers := false
	for _, n := range nodes {
		if n.ChildrenKind == kind && len(n.Children) > 0 {
			containers = true
			out = append(out, n.Children...)
		}
	}
	if containers {
		return out
	}

	for _, n := range nodes {
		if n.ContentKind == kind {
			out = append(out, n)
		}
	}
	return out
}
