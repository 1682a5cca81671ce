package espi

import (
	"strconv"
	"strings"
)

// Kind identifies the schema type of a payload element
type Kind int

const (
	KindNone Kind = iota
	KindUnknown
	KindUsagePoint
	KindMeterReading
	KindReadingType
	KindIntervalBlock
	KindLocalTimeParameters
	KindTimeConfiguration
	KindElectricPowerUsageSummary
	KindElectricPowerQualitySummary
	KindUsageSummary
	KindApplicationInformation
	KindAuthorization
)

var kindNames = map[Kind]string{
	KindNone:                        "None",
	KindUnknown:                     "Unknown",
	KindUsagePoint:                  "UsagePoint",
	KindMeterReading:                "MeterReading",
	KindReadingType:                 "ReadingType",
	KindIntervalBlock:               "IntervalBlock",
	KindLocalTimeParameters:         "LocalTimeParameters",
	KindTimeConfiguration:           "TimeConfiguration",
	KindElectricPowerUsageSummary:   "ElectricPowerUsageSummary",
	KindElectricPowerQualitySummary: "ElectricPowerQualitySummary",
	KindUsageSummary:                "UsageSummary",
	KindApplicationInformation:      "ApplicationInformation",
	KindAuthorization:               "Authorization",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// KindOf returns the Kind registered for an XML local name.
// Matching ignores case so that feeds with non-canonical capitalisation still resolve.
func KindOf(localName string) Kind {
	if entry, ok := registry[strings.ToLower(localName)]; ok {
		return entry.kind
	}
	return KindUnknown
}

// Element is a decoded payload element
type Element interface {
	Kind() Kind
}

// KindOfElement returns the kind of el, or KindNone when el is nil
func KindOfElement(el Element) Kind {
	if el == nil {
		return KindNone
	}
	return el.Kind()
}

type registration struct {
	kind Kind
	new  func() Element
}

var registry = map[string]registration{}

func register(name string, kind Kind, ctor func() Element) {
	registry[strings.ToLower(name)] = registration{kind: kind, new: ctor}
}

func init() {
	register("UsagePoint", KindUsagePoint, func() Element { return &UsagePoint{} })
	register("MeterReading", KindMeterReading, func() Element { return &MeterReading{} })
	register("ReadingType", KindReadingType, func() Element { return &ReadingType{} })
	register("IntervalBlock", KindIntervalBlock, func() Element { return &IntervalBlock{} })
	register("LocalTimeParameters", KindLocalTimeParameters, func() Element { return &LocalTimeParameters{} })
	register("TimeConfiguration", KindTimeConfiguration, func() Element { return &TimeConfiguration{} })
	register("ElectricPowerUsageSummary", KindElectricPowerUsageSummary, func() Element { return &ElectricPowerUsageSummary{} })
	register("ElectricPowerQualitySummary", KindElectricPowerQualitySummary, func() Element { return &ElectricPowerQualitySummary{} })
	register("UsageSummary", KindUsageSummary, func() Element { return &UsageSummary{} })
	register("ApplicationInformation", KindApplicationInformation, func() Element { return &ApplicationInformation{} })
	register("Authorization", KindAuthorization, func() Element { return &Authorization{} })
}
