package espi

import (
	"encoding/xml"

	"greenbutton/internal/enum"
)

// DateTimeInterval is a start instant and a duration, both in seconds
type DateTimeInterval struct {
	Duration Seconds `xml:"duration"`
	Start    Seconds `xml:"start"`
}

// ReadingQuality annotates an interval reading
type ReadingQuality struct {
	Quality enum.Raw[QualityOfReadingValue] `xml:"quality"`
}

// IntervalReading is a single value measured by a meter, unscaled
type IntervalReading struct {
	Cost            *int64            `xml:"cost"`
	ReadingQuality  []ReadingQuality  `xml:"ReadingQuality"`
	TimePeriod      *DateTimeInterval `xml:"timePeriod"`
	Value           *int64            `xml:"value"`
	ConsumptionTier *int              `xml:"consumptionTier"`
	TOU             *int              `xml:"tou"`
	CPP             *int              `xml:"cpp"`
}

// IntervalBlock is a time sequence of readings sharing one ReadingType
type IntervalBlock struct {
	Interval         *DateTimeInterval `xml:"interval"`
	IntervalReadings []IntervalReading `xml:"IntervalReading"`
}

func (*IntervalBlock) Kind() Kind { return KindIntervalBlock }

// MeterReading carries no attributes of its own; its data hangs off related entries
type MeterReading struct{}

func (*MeterReading) Kind() Kind { return KindMeterReading }

// ReadingType describes every reading of a MeterReading
type ReadingType struct {
	AccumulationBehaviour *int                              `xml:"accumulationBehaviour"`
	Commodity             *int                              `xml:"commodity"`
	ConsumptionTier       *int                              `xml:"consumptionTier"`
	Currency              *int                              `xml:"currency"`
	DataQualifier         *int                              `xml:"dataQualifier"`
	DefaultQuality        enum.Raw[QualityOfReadingValue]   `xml:"defaultQuality"`
	FlowDirection         *int                              `xml:"flowDirection"`
	IntervalLength        *int64                            `xml:"intervalLength"`
	MeasurementKind       *int                              `xml:"kind"`
	Phase                 *int                              `xml:"phase"`
	PowerOfTenMultiplier  enum.Raw[UnitMultiplierKindValue] `xml:"powerOfTenMultiplier"`
	TimeAttribute         *int                              `xml:"timeAttribute"`
	TOU                   *int                              `xml:"tou"`
	UOM                   enum.Raw[UnitSymbolKindValue]     `xml:"uom"`
	CPP                   *int                              `xml:"cpp"`
	MeasuringPeriod       *int                              `xml:"measuringPeriod"`
}

func (*ReadingType) Kind() Kind { return KindReadingType }

// Clone returns a copy that can be patched without touching the decoded feed
func (rt *ReadingType) Clone() *ReadingType {
	if rt == nil {
		return &ReadingType{}
	}
	c := *rt
	return &c
}

// ServiceCategory classifies the commodity delivered at a usage point
type ServiceCategory struct {
	Kind enum.Raw[ServiceKindValue] `xml:"kind"`
}

// UsagePoint is the point at which consumption is measured
type UsagePoint struct {
	RoleFlags       string           `xml:"roleFlags"`
	ServiceCategory *ServiceCategory `xml:"ServiceCategory"`
	Status          *int             `xml:"status"`
}

func (*UsagePoint) Kind() Kind { return KindUsagePoint }

// ServiceKind returns the raw service category code, absent when the category is missing
func (up *UsagePoint) ServiceKind() enum.Raw[ServiceKindValue] {
	if up == nil || up.ServiceCategory == nil {
		return enum.Absent[ServiceKindValue]()
	}
	return up.ServiceCategory.Kind
}

// TimeConfiguration holds the time zone and daylight saving rules of a usage point
type TimeConfiguration struct {
	DSTEndRule   string `xml:"dstEndRule"`
	DSTOffset    int64  `xml:"dstOffset"`
	DSTStartRule string `xml:"dstStartRule"`
	TZOffset     int64  `xml:"tzOffset"`
}

func (*TimeConfiguration) Kind() Kind { return KindTimeConfiguration }

// LocalTimeParameters is the element name most feeds use for a TimeConfiguration
type LocalTimeParameters struct {
	TimeConfiguration
}

func (*LocalTimeParameters) Kind() Kind { return KindLocalTimeParameters }

// SummaryMeasurement is a scaled quantity reported in a usage summary
type SummaryMeasurement struct {
	PowerOfTenMultiplier enum.Raw[UnitMultiplierKindValue] `xml:"powerOfTenMultiplier"`
	TimeStamp            *int64                            `xml:"timeStamp"`
	UOM                  enum.Raw[UnitSymbolKindValue]     `xml:"uom"`
	Value                *int64                            `xml:"value"`
	ReadingTypeRef       string                            `xml:"readingTypeRef"`
}

// Summary is the body shared by the legacy and current usage summaries
type Summary struct {
	BillingPeriod                          *DateTimeInterval               `xml:"billingPeriod"`
	BillLastPeriod                         *int64                          `xml:"billLastPeriod"`
	BillToDate                             *int64                          `xml:"billToDate"`
	CostAdditionalLastPeriod               *int64                          `xml:"costAdditionalLastPeriod"`
	Currency                               *int                            `xml:"currency"`
	OverallConsumptionLastPeriod           *SummaryMeasurement             `xml:"overallConsumptionLastPeriod"`
	CurrentBillingPeriodOverAllConsumption *SummaryMeasurement             `xml:"currentBillingPeriodOverAllConsumption"`
	CurrentDayNetConsumption               *SummaryMeasurement             `xml:"currentDayNetConsumption"`
	CurrentDayOverallConsumption           *SummaryMeasurement             `xml:"currentDayOverallConsumption"`
	PeakDemand                             *SummaryMeasurement             `xml:"peakDemand"`
	PreviousDayNetConsumption              *SummaryMeasurement             `xml:"previousDayNetConsumption"`
	PreviousDayOverallConsumption          *SummaryMeasurement             `xml:"previousDayOverallConsumption"`
	QualityOfReading                       enum.Raw[QualityOfReadingValue] `xml:"qualityOfReading"`
	RatchetDemand                          *SummaryMeasurement             `xml:"ratchetDemand"`
	RatchetDemandPeriod                    *DateTimeInterval               `xml:"ratchetDemandPeriod"`
	StatusTimeStamp                        *int64                          `xml:"statusTimeStamp"`
	Commodity                              *int                            `xml:"commodity"`
}

// ElectricPowerUsageSummary is the deprecated per-billing-period summary
type ElectricPowerUsageSummary struct {
	Summary
}

func (*ElectricPowerUsageSummary) Kind() Kind { return KindElectricPowerUsageSummary }

// UsageSummary replaces ElectricPowerUsageSummary in newer feeds
type UsageSummary struct {
	Summary
	TariffProfile string `xml:"tariffProfile"`
	ReadCycle     string `xml:"readCycle"`
}

func (*UsageSummary) Kind() Kind { return KindUsageSummary }

// ElectricPowerQualitySummary reports power quality over an interval
type ElectricPowerQualitySummary struct {
	FlickerPlt         *int64            `xml:"flickerPlt"`
	FlickerPst         *int64            `xml:"flickerPst"`
	HarmonicVoltage    *int64            `xml:"harmonicVoltage"`
	LongInterruptions  *int64            `xml:"longInterruptions"`
	MainsVoltage       *int64            `xml:"mainsVoltage"`
	PowerFrequency     *int64            `xml:"powerFrequency"`
	ShortInterruptions *int64            `xml:"shortInterruptions"`
	SummaryInterval    *DateTimeInterval `xml:"summaryInterval"`
}

func (*ElectricPowerQualitySummary) Kind() Kind { return KindElectricPowerQualitySummary }

// ApplicationInformation describes the third party application that requested the feed
type ApplicationInformation struct {
	DataCustodianID           string `xml:"dataCustodianId"`
	ThirdPartyApplicationName string `xml:"thirdPartyApplicationName"`
	ClientName                string `xml:"client_name"`
}

func (*ApplicationInformation) Kind() Kind { return KindApplicationInformation }

// Authorization records the grant under which the feed was published
type Authorization struct {
	AuthorizedPeriod *DateTimeInterval `xml:"authorizedPeriod"`
	PublishedPeriod  *DateTimeInterval `xml:"publishedPeriod"`
	Status           *int              `xml:"status"`
	Scope            string            `xml:"scope"`
	ResourceURI      string            `xml:"resourceURI"`
}

func (*Authorization) Kind() Kind { return KindAuthorization }

// Unknown is a payload element that is not in the registry
type Unknown struct {
	Name xml.Name
}

func (*Unknown) Kind() Kind { return KindUnknown }
