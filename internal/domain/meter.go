package domain

import (
	"greenbutton/internal/enum"
	"greenbutton/internal/espi"
)

// MeterReading is the set of readings taken by one meter with one reading type
type MeterReading struct {
	Title          string
	URI            string
	ReadingType    *espi.ReadingType
	IntervalBlocks []*IntervalBlock
	Readings       []*IntervalReading // every block's readings, in block order

	unit unitMemo
}

type unitMemo struct {
	src   enum.Raw[espi.UnitSymbolKindValue]
	unit  UnitSymbol
	err   error
	valid bool
}

// Patch attaches the meter reading's reading type to every reading
func (m *MeterReading) Patch() {
	for _, r := range m.Readings {
		r.ReadingType = m.ReadingType
	}
}

// ComputeMultipliers resolves the multiplier of every interval block from the
// current reading type
func (m *MeterReading) ComputeMultipliers() error {
	for _, b := range m.IntervalBlocks {
		if err := b.ComputeMultiplier(m.ReadingType); err != nil {
			return err
		}
	}
	return nil
}

// Unit decodes the reading type's unit of measure. The result is cached until
// the reading type's unit code changes.
func (m *MeterReading) Unit() (UnitSymbol, error) {
	src := enum.Absent[espi.UnitSymbolKindValue]()
	if m.ReadingType != nil {
		src = m.ReadingType.UOM
	}
	if m.unit.valid && m.unit.src == src {
		return m.unit.unit, m.unit.err
	}

	unit, err := UnitBridge.Decode(src)
	m.unit = unitMemo{src: src, unit: unit, err: err, valid: true}
	return unit, err
}

// UOMDescription is the quantity part of the unit catalog entry, e.g. "Real energy"
func (m *MeterReading) UOMDescription() string {
	unit, err := m.Unit()
	if err != nil {
		return UnitMissing.Quantity()
	}
	return unit.Quantity()
}

// UOMSymbol is the symbol part of the unit catalog entry, e.g. "Wh"
func (m *MeterReading) UOMSymbol() string {
	unit, err := m.Unit()
	if err != nil {
		return UnitMissing.Symbol()
	}
	return unit.Symbol()
}

// UOMSymbolSegment is the untrimmed symbol segment, e.g. " Wh"
func (m *MeterReading) UOMSymbolSegment() string {
	unit, err := m.Unit()
	if err != nil {
		return UnitMissing.SymbolSegment()
	}
	return unit.SymbolSegment()
}

// UsagePoint is a logical point at which consumption is measured or estimated
type UsagePoint struct {
	Title                     string
	URI                       string
	ServiceKind               ServiceKind
	Status                    int // 0 off, 1 on, -1 unknown
	LocalTimeParameters       *espi.TimeConfiguration
	ElectricPowerUsageSummary *espi.ElectricPowerUsageSummary
	UsageSummary              *espi.UsageSummary
	MeterReadings             []*MeterReading
}

// ReadingCount returns the number of readings across every meter reading
func (u *UsagePoint) ReadingCount() int {
	n := 0
	for _, mr := range u.MeterReadings {
		n += len(mr.Readings)
	}
	return n
}
