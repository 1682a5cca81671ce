// Package feed turns a materialized entry tree into metering objects: usage
// points with their meter readings, interval blocks and scaled readings.
package feed

import (
	"fmt"

	"greenbutton/internal/domain"
	"greenbutton/internal/espi"
	"greenbutton/internal/tree"

	"go.uber.org/zap"
)

// ObjectFeed is the result of a build
type ObjectFeed struct {
	UsagePoints []*domain.UsagePoint
}

// ReadingCount returns the number of readings across every usage point
func (f *ObjectFeed) ReadingCount() int {
	n := 0
	for _, up := range f.UsagePoints {
		n += up.ReadingCount()
	}
	return n
}

type builder struct {
	policy ServicePolicy
	logger *zap.Logger
}

// Option configures Build
type Option func(*builder)

// WithPolicy sets the policy applied to usage points without a service kind
func WithPolicy(p ServicePolicy) Option {
	return func(b *builder) {
		if p != nil {
			b.policy = p
		}
	}
}

// WithLogger sets the logger used for build diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Build produces the object feed for every usage point of t. Any code that
// cannot be decoded fails the whole build.
func Build(t *tree.Tree, opts ...Option) (*ObjectFeed, error) {
	b := &builder{
		policy: AssumeGas{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	out := &ObjectFeed{}
	if t == nil {
		return out, nil
	}

	for _, node := range tree.ElementsOfKind(espi.KindUsagePoint, t.Roots()) {
		up, err := b.usagePoint(node)
		if err != nil {
			return nil, err
		}
		if up == nil {
			continue
		}
		out.UsagePoints = append(out.UsagePoints, up)
	}

	return out, nil
}

func (b *builder) usagePoint(node *tree.Node) (*domain.UsagePoint, error) {
	raw, ok := node.FirstContent().(*espi.UsagePoint)
	if !ok {
		b.logger.Warn("usage point entry has no usage point payload",
			zap.String("uri", node.URI),
			zap.Stringer("content", node.FirstContentKind()))
		return nil, nil
	}

	up := &domain.UsagePoint{
		Title:               node.Title,
		URI:                 node.URI,
		Status:              -1,
		LocalTimeParameters: timeConfiguration(node),
	}
	if raw.Status != nil {
		up.Status = *raw.Status
	}
	up.ElectricPowerUsageSummary, _ = node.SafeContent(espi.KindElectricPowerUsageSummary).(*espi.ElectricPowerUsageSummary)
	up.UsageSummary, _ = node.SafeContent(espi.KindUsageSummary).(*espi.UsageSummary)

	for _, mrNode := range node.RelatedOfKind(espi.KindMeterReading) {
		mr, err := b.meterReading(mrNode)
		if err != nil {
			return nil, fmt.Errorf("usage point %q: %w", node.URI, err)
		}
		up.MeterReadings = append(up.MeterReadings, mr)
	}

	kind := raw.ServiceKind()
	if kind.IsAbsent() {
		if err := b.policy.Resolve(up); err != nil {
			return nil, err
		}
		b.logger.Info("service kind missing, resolved by policy",
			zap.String("uri", up.URI),
			zap.Stringer("service", up.ServiceKind))
	} else {
		sk, err := domain.ServiceKindBridge.DecodeStrict(kind)
		if err != nil {
			return nil, fmt.Errorf("usage point %q: service kind: %w", node.URI, err)
		}
		up.ServiceKind = sk
	}

	for _, mr := range up.MeterReadings {
		if _, err := mr.Unit(); err != nil {
			return nil, fmt.Errorf("meter reading %q: unit of measure: %w", mr.URI, err)
		}
	}

	b.logger.Debug("usage point built",
		zap.String("uri", up.URI),
		zap.Stringer("service", up.ServiceKind),
		zap.Int("meter_readings", len(up.MeterReadings)),
		zap.Int("readings", up.ReadingCount()))

	return up, nil
}

func (b *builder) meterReading(node *tree.Node) (*domain.MeterReading, error) {
	rt, _ := node.SafeContent(espi.KindReadingType).(*espi.ReadingType)

	mr := &domain.MeterReading{
		Title:       node.Title,
		URI:         node.URI,
		ReadingType: rt.Clone(),
	}

	for _, ibNode := range node.RelatedOfKind(espi.KindIntervalBlock) {
		if len(ibNode.Contents) == 0 {
			continue
		}
		for _, el := range ibNode.Contents[0].Elements {
			raw, ok := el.(*espi.IntervalBlock)
			if !ok {
				continue
			}
			block := &domain.IntervalBlock{
				URI:      ibNode.URI,
				Interval: domain.IntervalFrom(raw.Interval),
			}
			if err := ProcessReadings(block, raw); err != nil {
				return nil, fmt.Errorf("meter reading %q: %w", node.URI, err)
			}
			mr.IntervalBlocks = append(mr.IntervalBlocks, block)
			mr.Readings = append(mr.Readings, block.Readings...)
		}
	}

	if err := mr.ComputeMultipliers(); err != nil {
		return nil, fmt.Errorf("meter reading %q: %w", node.URI, err)
	}
	mr.Patch()

	return mr, nil
}

// ProcessReadings converts the readings of raw into block. Only the tier, TOU,
// CPP, cost and time period are carried over; quality comes from the first
// quality annotation and is MISSING without one.
func ProcessReadings(block *domain.IntervalBlock, raw *espi.IntervalBlock) error {
	readings := make([]*domain.IntervalReading, 0, len(raw.IntervalReadings))
	for i := range raw.IntervalReadings {
		src := &raw.IntervalReadings[i]

		r := &domain.IntervalReading{
			TimePeriod:       domain.IntervalFrom(src.TimePeriod),
			ConsumptionTier:  copyPtr(src.ConsumptionTier),
			TOU:              copyPtr(src.TOU),
			Cost:             copyPtr(src.Cost),
			QualityOfReading: domain.QualityMissing,
			Parent:           block,
		}
		if src.CPP != nil {
			r.CPP = *src.CPP
		}
		if src.Value != nil {
			r.RawValue = *src.Value
		}
		if len(src.ReadingQuality) > 0 {
			q, err := domain.QualityBridge.Decode(src.ReadingQuality[0].Quality)
			if err != nil {
				return fmt.Errorf("reading %d of block %q: quality: %w", i, block.URI, err)
			}
			r.QualityOfReading = q
		}

		readings = append(readings, r)
	}
	block.Readings = readings
	return nil
}

// timeConfiguration accepts either element name used for the time zone rules
func timeConfiguration(node *tree.Node) *espi.TimeConfiguration {
	if ltp, ok := node.SafeContent(espi.KindLocalTimeParameters).(*espi.LocalTimeParameters); ok {
		return &ltp.TimeConfiguration
	}
	if tc, ok := node.SafeContent(espi.KindTimeConfiguration).(*espi.TimeConfiguration); ok {
		return tc
	}
	return nil
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
