package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"greenbutton/internal/domain"
	"greenbutton/internal/feed"

	"github.com/shopspring/decimal"
)

// TextCodec writes the human readable listing of an object feed: one header
// per usage point and meter reading, then one line per reading with its start,
// duration, scaled value, cost and quality.
type TextCodec struct{}

// NewTextCodec creates a new text codec
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Format returns the codec format identifier
func (c *TextCodec) Format() string {
	return "text"
}

// Export writes the listing of f to w
func (c *TextCodec) Export(f *feed.ObjectFeed, w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, up := range f.UsagePoints {
		fmt.Fprintf(bw, "UsagePoint (%s) Service: %s (%d) ", up.Title, up.ServiceKind, up.Status)

		for _, mr := range up.MeterReadings {
			fmt.Fprintf(bw, "Meter Reading (%s) %s:\n", mr.Title, mr.UOMDescription())

			for _, r := range mr.Readings {
				if err := writeReading(bw, mr, r); err != nil {
					return err
				}
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write listing: %w", err)
	}
	return nil
}

func writeReading(w io.Writer, mr *domain.MeterReading, r *domain.IntervalReading) error {
	v, err := r.Value()
	if err != nil {
		return fmt.Errorf("meter reading %q: %w", mr.URI, err)
	}

	fmt.Fprintf(w, "    %s, %s: %.6g%s",
		r.Start().UTC().Format("2006-01-02 15:04:05+00:00"),
		formatDuration(r.Duration()),
		v,
		mr.UOMSymbolSegment())

	if cost, ok := r.CostAmount(); ok {
		fmt.Fprintf(w, "($%s)", formatAmount(cost))
	}
	if r.QualityOfReading != domain.QualityMissing {
		fmt.Fprintf(w, " [%s]", r.QualityOfReading)
	}
	_, err = io.WriteString(w, "\n\n")
	return err
}

// formatDuration renders d as "[N day[s], ]H:MM:SS"
func formatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	days := secs / 86400
	secs %= 86400
	clock := fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)

	switch {
	case days == 1:
		return "1 day, " + clock
	case days != 0:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
	return clock
}

// formatAmount always shows a fractional part, so 51 prints as "51.0"
func formatAmount(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
