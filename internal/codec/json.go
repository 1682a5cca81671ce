package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"greenbutton/internal/feed"
)

// JSONCodec handles JSON export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Export exports the object feed to JSON
func (c *JSONCodec) Export(f *feed.ObjectFeed, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(buildReport(f)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
