package domain

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"greenbutton/internal/espi"

	"github.com/shopspring/decimal"
)

// ErrNotScalable is returned when a reading value is requested before the
// reading type and block multiplier are known
var ErrNotScalable = errors.New("cannot scale raw value")

// CostScale is the number of cost units per currency unit. Costs are reported
// in hundred-thousandths of the reading type's currency.
const CostScale = 100000

// DateTimeInterval is a start instant and a duration
type DateTimeInterval struct {
	Start    time.Time
	Duration time.Duration
}

// IntervalFrom converts a wire interval, nil stays nil
func IntervalFrom(src *espi.DateTimeInterval) *DateTimeInterval {
	if src == nil {
		return nil
	}
	return &DateTimeInterval{
		Start:    time.Unix(int64(src.Start), 0).UTC(),
		Duration: time.Duration(src.Duration) * time.Second,
	}
}

// IntervalReading is a single unscaled value measured by a meter
type IntervalReading struct {
	TimePeriod       *DateTimeInterval
	RawValue         int64
	ConsumptionTier  *int
	TOU              *int
	CPP              int // 0 when not applicable
	Cost             *int64
	QualityOfReading QualityOfReading
	ReadingType      *espi.ReadingType
	Parent           *IntervalBlock
}

// Start returns the start of the time period, or the Unix epoch when the
// reading has none
func (r *IntervalReading) Start() time.Time {
	if r.TimePeriod == nil {
		return time.Unix(0, 0).UTC()
	}
	return r.TimePeriod.Start
}

// Duration returns the length of the time period, 0 when the reading has none
func (r *IntervalReading) Duration() time.Duration {
	if r.TimePeriod == nil {
		return 0
	}
	return r.TimePeriod.Duration
}

// CostValue returns the cost in hundred-thousandths of the currency, NaN when
// the feed reported no cost
func (r *IntervalReading) CostValue() float64 {
	if r.Cost == nil {
		return math.NaN()
	}
	return float64(*r.Cost)
}

// CostAmount returns the cost in currency units
func (r *IntervalReading) CostAmount() (decimal.Decimal, bool) {
	if r.Cost == nil {
		return decimal.Zero, false
	}
	return decimal.New(*r.Cost, 0).Div(decimal.New(CostScale, 0)), true
}

// Scaled returns the exact scaled value against the parent block
func (r *IntervalReading) Scaled() (decimal.Decimal, error) {
	return Scale(r, r.Parent)
}

// Value returns the scaled value against the parent block
func (r *IntervalReading) Value() (float64, error) {
	d, err := Scale(r, r.Parent)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

// Scale returns raw value * 10^power for reading r in block b
func Scale(r *IntervalReading, b *IntervalBlock) (decimal.Decimal, error) {
	if r == nil {
		return decimal.Zero, fmt.Errorf("%w: no reading", ErrNotScalable)
	}
	if r.ReadingType == nil {
		return decimal.Zero, fmt.Errorf("%w: reading type not attached", ErrNotScalable)
	}
	if b == nil {
		return decimal.Zero, fmt.Errorf("%w: reading has no interval block", ErrNotScalable)
	}
	if b.PowerOfTen == nil {
		return decimal.Zero, fmt.Errorf("%w: multiplier of block %q not computed", ErrNotScalable, b.URI)
	}
	return decimal.New(r.RawValue, int32(*b.PowerOfTen)), nil
}

// CompareReadings orders readings by start, then duration, then raw value
func CompareReadings(a, b *IntervalReading) int {
	if c := a.Start().Compare(b.Start()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Duration(), b.Duration()); c != 0 {
		return c
	}
	return cmp.Compare(a.RawValue, b.RawValue)
}

// SortReadings sorts readings in place, keeping feed order between equal readings
func SortReadings(readings []*IntervalReading) {
	slices.SortStableFunc(readings, CompareReadings)
}

// IntervalBlock is a time sequence of readings sharing one reading type
type IntervalBlock struct {
	URI        string
	Interval   *DateTimeInterval
	Readings   []*IntervalReading
	PowerOfTen *int // nil until ComputeMultiplier
}

// ComputeMultiplier resolves the power of ten multiplier from rt. An absent
// code means no scaling.
func (b *IntervalBlock) ComputeMultiplier(rt *espi.ReadingType) error {
	if rt == nil {
		rt = &espi.ReadingType{}
	}
	code, err := MultiplierBridge.Decode(rt.PowerOfTenMultiplier)
	if err != nil {
		return fmt.Errorf("failed to resolve multiplier of block %q: %w", b.URI, err)
	}
	power := int(code)
	b.PowerOfTen = &power
	return nil
}

// Multiplier returns 10^PowerOfTen once it has been computed
func (b *IntervalBlock) Multiplier() (float64, bool) {
	if b.PowerOfTen == nil {
		return 0, false
	}
	return math.Pow10(*b.PowerOfTen), true
}
