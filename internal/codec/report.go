package codec

import (
	"time"

	"greenbutton/internal/domain"
	"greenbutton/internal/espi"
	"greenbutton/internal/feed"

	"github.com/shopspring/decimal"
)

// report is the serializable form of an object feed shared by the JSON and
// YAML codecs. Parent links are dropped; the nesting carries them.
type report struct {
	UsagePoints []usagePointReport `json:"usage_points" yaml:"usage_points"`
}

type usagePointReport struct {
	Title         string               `json:"title" yaml:"title"`
	URI           string               `json:"uri" yaml:"uri"`
	ServiceKind   string               `json:"service_kind" yaml:"service_kind"`
	Status        int                  `json:"status" yaml:"status"`
	LocalTime     *localTimeReport     `json:"local_time,omitempty" yaml:"local_time,omitempty"`
	Summary       *summaryReport       `json:"summary,omitempty" yaml:"summary,omitempty"`
	MeterReadings []meterReadingReport `json:"meter_readings" yaml:"meter_readings"`
}

type localTimeReport struct {
	TZOffset     int64  `json:"tz_offset" yaml:"tz_offset"`
	DSTOffset    int64  `json:"dst_offset" yaml:"dst_offset"`
	DSTStartRule string `json:"dst_start_rule,omitempty" yaml:"dst_start_rule,omitempty"`
	DSTEndRule   string `json:"dst_end_rule,omitempty" yaml:"dst_end_rule,omitempty"`
}

type summaryReport struct {
	BillingPeriodStart *time.Time       `json:"billing_period_start,omitempty" yaml:"billing_period_start,omitempty"`
	BillLastPeriod     *decimal.Decimal `json:"bill_last_period,omitempty" yaml:"bill_last_period,omitempty"`
	BillToDate         *decimal.Decimal `json:"bill_to_date,omitempty" yaml:"bill_to_date,omitempty"`
	Quality            string           `json:"quality" yaml:"quality"`
}

type meterReadingReport struct {
	Title      string          `json:"title" yaml:"title"`
	URI        string          `json:"uri" yaml:"uri"`
	Unit       string          `json:"unit" yaml:"unit"`
	UnitSymbol string          `json:"unit_symbol" yaml:"unit_symbol"`
	Blocks     []blockReport   `json:"interval_blocks" yaml:"interval_blocks"`
	Readings   []readingReport `json:"readings" yaml:"readings"`
}

type blockReport struct {
	URI        string     `json:"uri" yaml:"uri"`
	Start      *time.Time `json:"start,omitempty" yaml:"start,omitempty"`
	Duration   int64      `json:"duration_seconds" yaml:"duration_seconds"`
	PowerOfTen *int       `json:"power_of_ten,omitempty" yaml:"power_of_ten,omitempty"`
	Readings   int        `json:"readings" yaml:"readings"`
}

type readingReport struct {
	Start           time.Time        `json:"start" yaml:"start"`
	Duration        int64            `json:"duration_seconds" yaml:"duration_seconds"`
	RawValue        int64            `json:"raw_value" yaml:"raw_value"`
	Value           *decimal.Decimal `json:"value,omitempty" yaml:"value,omitempty"`
	Cost            *decimal.Decimal `json:"cost,omitempty" yaml:"cost,omitempty"`
	Quality         string           `json:"quality" yaml:"quality"`
	ConsumptionTier *int             `json:"consumption_tier,omitempty" yaml:"consumption_tier,omitempty"`
	TOU             *int             `json:"tou,omitempty" yaml:"tou,omitempty"`
	CPP             int              `json:"cpp" yaml:"cpp"`
}

func buildReport(f *feed.ObjectFeed) report {
	out := report{UsagePoints: make([]usagePointReport, 0, len(f.UsagePoints))}
	for _, up := range f.UsagePoints {
		upr := usagePointReport{
			Title:         up.Title,
			URI:           up.URI,
			ServiceKind:   up.ServiceKind.String(),
			Status:        up.Status,
			LocalTime:     localTime(up.LocalTimeParameters),
			Summary:       summary(up),
			MeterReadings: make([]meterReadingReport, 0, len(up.MeterReadings)),
		}
		for _, mr := range up.MeterReadings {
			upr.MeterReadings = append(upr.MeterReadings, meterReading(mr))
		}
		out.UsagePoints = append(out.UsagePoints, upr)
	}
	return out
}

func localTime(tc *espi.TimeConfiguration) *localTimeReport {
	if tc == nil {
		return nil
	}
	return &localTimeReport{
		TZOffset:     tc.TZOffset,
		DSTOffset:    tc.DSTOffset,
		DSTStartRule: tc.DSTStartRule,
		DSTEndRule:   tc.DSTEndRule,
	}
}

func summary(up *domain.UsagePoint) *summaryReport {
	var s *espi.Summary
	switch {
	case up.UsageSummary != nil:
		s = &up.UsageSummary.Summary
	case up.ElectricPowerUsageSummary != nil:
		s = &up.ElectricPowerUsageSummary.Summary
	default:
		return nil
	}

	out := &summaryReport{
		BillLastPeriod: money(s.BillLastPeriod),
		BillToDate:     money(s.BillToDate),
	}
	if q, err := domain.QualityBridge.Decode(s.QualityOfReading); err == nil {
		out.Quality = q.String()
	} else {
		out.Quality = s.QualityOfReading.String()
	}
	if period := domain.IntervalFrom(s.BillingPeriod); period != nil {
		out.BillingPeriodStart = &period.Start
	}
	return out
}

func meterReading(mr *domain.MeterReading) meterReadingReport {
	out := meterReadingReport{
		Title:      mr.Title,
		URI:        mr.URI,
		Unit:       mr.UOMDescription(),
		UnitSymbol: mr.UOMSymbol(),
		Blocks:     make([]blockReport, 0, len(mr.IntervalBlocks)),
		Readings:   make([]readingReport, 0, len(mr.Readings)),
	}

	for _, b := range mr.IntervalBlocks {
		br := blockReport{URI: b.URI, PowerOfTen: b.PowerOfTen, Readings: len(b.Readings)}
		if b.Interval != nil {
			start := b.Interval.Start
			br.Start = &start
			br.Duration = int64(b.Interval.Duration.Seconds())
		}
		out.Blocks = append(out.Blocks, br)
	}

	for _, r := range mr.Readings {
		rr := readingReport{
			Start:           r.Start(),
			Duration:        int64(r.Duration().Seconds()),
			RawValue:        r.RawValue,
			Quality:         r.QualityOfReading.String(),
			ConsumptionTier: r.ConsumptionTier,
			TOU:             r.TOU,
			CPP:             r.CPP,
		}
		if v, err := r.Scaled(); err == nil {
			rr.Value = &v
		}
		if c, ok := r.CostAmount(); ok {
			rr.Cost = &c
		}
		out.Readings = append(out.Readings, rr)
	}

	return out
}

func money(v *int64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.New(*v, 0).Div(decimal.New(domain.CostScale, 0))
	return &d
}
