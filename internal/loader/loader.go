// Package loader reads Green Button feed documents from disk or memory.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"greenbutton/internal/atom"
)

// ErrEmptyFeed is returned for a feed document without entries
var ErrEmptyFeed = errors.New("feed has no entries")

// LoadFile loads a feed from an XML file
func LoadFile(path string) (*atom.Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed: %w", err)
	}
	defer f.Close()

	feed, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return feed, nil
}

// Parse parses a feed from XML bytes
func Parse(data []byte) (*atom.Feed, error) {
	return Read(bytes.NewReader(data))
}

// Read parses a feed from r
func Read(r io.Reader) (*atom.Feed, error) {
	feed, err := atom.Decode(r)
	if err != nil {
		return nil, err
	}
	if len(feed.Entries) == 0 {
		return nil, ErrEmptyFeed
	}
	return feed, nil
}
