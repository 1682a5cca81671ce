package espi

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Seconds is a count of seconds. Some providers publish it as decimal text
// ("1719864000.0"), which is accepted and truncated.
type Seconds int64

func (s *Seconds) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text string
	if err := d.DecodeElement(&text, &start); err != nil {
		return err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		*s = 0
		return nil
	}

	v, err := decimal.NewFromString(text)
	if err != nil {
		return fmt.Errorf("invalid seconds value %q in <%s>: %w", text, start.Name.Local, err)
	}
	whole := v.BigInt()
	if !whole.IsInt64() {
		return fmt.Errorf("invalid seconds value %q in <%s>: out of range", text, start.Name.Local)
	}
	*s = Seconds(whole.Int64())
	return nil
}

// DecodeElement decodes the element opened by start into its registered payload
// type. Unregistered elements are skipped and returned as *Unknown.
func DecodeElement(d *xml.Decoder, start xml.StartElement) (Element, error) {
	entry, ok := registry[strings.ToLower(start.Name.Local)]
	if !ok {
		if err := d.Skip(); err != nil {
			return nil, fmt.Errorf("failed to skip <%s>: %w", start.Name.Local, err)
		}
		return &Unknown{Name: start.Name}, nil
	}

	el := entry.new()
	if err := d.DecodeElement(el, &start); err != nil {
		return nil, fmt.Errorf("failed to decode <%s>: %w", start.Name.Local, err)
	}
	return el, nil
}
