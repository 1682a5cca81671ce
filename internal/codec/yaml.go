package codec

import (
	"fmt"
	"io"

	"greenbutton/internal/feed"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Export exports the object feed to YAML
func (c *YAMLCodec) Export(f *feed.ObjectFeed, w io.Writer) error {
	r := buildReport(f)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&r); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
