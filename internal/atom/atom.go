// Package atom decodes the Atom envelope of a Green Button feed: entries, their
// titles, typed links and content payloads. Payload elements inside <content>
// are handed to the espi registry.
package atom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"greenbutton/internal/espi"

	"golang.org/x/text/encoding/charmap"
)

// Namespace is the Atom syndication namespace
const Namespace = "http://www.w3.org/2005/Atom"

// Relation tags interpreted by the graph builder
const (
	RelSelf    = "self"
	RelUp      = "up"
	RelRelated = "related"
)

// ErrNotAFeed is returned when the document root is not an Atom feed
var ErrNotAFeed = errors.New("document is not an atom feed")

// Feed is an ordered list of entries
type Feed struct {
	ID      string  `xml:"id"`
	Title   string  `xml:"title"`
	Entries []Entry `xml:"entry"`
}

// Entry is one linked record of the feed
type Entry struct {
	ID       string    `xml:"id"`
	Titles   []Text    `xml:"title"`
	Links    []Link    `xml:"link"`
	Contents []Content `xml:"content"`
}

// Title concatenates every title fragment of the entry
func (e *Entry) Title() string {
	var b strings.Builder
	for _, t := range e.Titles {
		b.WriteString(t.Value)
	}
	return b.String()
}

// Text is an Atom text construct
type Text struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

// Link is a typed reference to another entry
type Link struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// Content is one content payload: an ordered list of schema elements
type Content struct {
	Type     string
	Elements []espi.Element
}

// First returns the first element of the payload, or nil
func (c *Content) First() espi.Element {
	if len(c.Elements) == 0 {
		return nil
	}
	return c.Elements[0]
}

// UnmarshalXML decodes every child element of <content> through the espi registry.
// Character data between elements is ignored.
func (c *Content) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "type" {
			c.Type = attr.Value
		}
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return fmt.Errorf("failed to read content: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el, err := espi.DecodeElement(d, t)
			if err != nil {
				return err
			}
			c.Elements = append(c.Elements, el)
		case xml.EndElement:
			return nil
		}
	}
}

// Decode reads an Atom feed document from r
func Decode(r io.Reader) (*Feed, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil, ErrNotAFeed
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse feed: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "feed" {
			return nil, fmt.Errorf("%w: root element <%s>", ErrNotAFeed, start.Name.Local)
		}

		var feed Feed
		if err := d.DecodeElement(&feed, &start); err != nil {
			return nil, fmt.Errorf("failed to parse feed: %w", err)
		}
		return &feed, nil
	}
}

// charsetReader handles the non UTF-8 encodings some providers declare
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return input, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	}
	return nil, fmt.Errorf("unsupported charset %q", charset)
}
