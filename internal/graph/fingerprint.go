package graph

import (
	"encoding/binary"
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a hex blake2b-256 digest of the graph structure: node
// order, parents, children, related lists, content kinds, titles and
// placeholder flags. Two builds of the same feed have the same fingerprint.
func (g *Graph) Fingerprint() string {
	h, _ := blake2b.New256(nil) // only fails for keys longer than 64 bytes

	writeInt(h, len(g.order))
	for _, uri := range g.order {
		n := g.nodes[uri]
		writeString(h, n.URI)
		writeString(h, n.Parent)
		writeString(h, n.Title)
		writeInt(h, int(n.ContentKind))
		if n.Placeholder {
			writeInt(h, 1)
		} else {
			writeInt(h, 0)
		}
		writeStrings(h, n.Children)
		writeStrings(h, n.Related)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Length prefixes keep ("ab", "c") and ("a", "bc") apart
func writeString(h hash.Hash, s string) {
	writeInt(h, len(s))
	h.Write([]byte(s))
}

func writeStrings(h hash.Hash, ss []string) {
	writeInt(h, len(ss))
	for _, s := range ss {
		writeString(h, s)
	}
}

func writeInt(h hash.Hash, n int) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	h.Write(buf[:])
}
