package codec

import (
	"io"

	"greenbutton/internal/atom"
	"greenbutton/internal/loader"
)

// AtomCodec imports Green Button Atom XML
type AtomCodec struct{}

// NewAtomCodec creates a new Atom codec
func NewAtomCodec() *AtomCodec {
	return &AtomCodec{}
}

// Format returns the codec format identifier
func (c *AtomCodec) Format() string {
	return "atom"
}

// Parse imports a feed document
func (c *AtomCodec) Parse(r io.Reader) (*atom.Feed, error) {
	return loader.Read(r)
}
