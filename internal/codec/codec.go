package codec

import (
	"fmt"
	"io"
	"sort"

	"greenbutton/internal/atom"
	"greenbutton/internal/feed"
)

// Importer interface for reading feed documents
type Importer interface {
	Parse(r io.Reader) (*atom.Feed, error)
	Format() string
}

// Exporter interface for writing built object feeds
type Exporter interface {
	Export(f *feed.ObjectFeed, w io.Writer) error
	Format() string
}

var exporters = map[string]func() Exporter{
	"text": func() Exporter { return NewTextCodec() },
	"json": func() Exporter { return NewJSONCodec() },
	"yaml": func() Exporter { return NewYAMLCodec() },
}

// ExporterFor returns the exporter registered for format
func ExporterFor(format string) (Exporter, error) {
	ctor, ok := exporters[format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format %q (want one of %v)", format, Formats())
	}
	return ctor(), nil
}

// Formats lists the registered export formats
func Formats() []string {
	out := make([]string, 0, len(exporters))
	for name := range exporters {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
