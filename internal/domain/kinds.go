package domain

import (
	"strconv"

	"greenbutton/internal/enum"
	"greenbutton/internal/espi"
)

// ServiceKind is the commodity delivered at a usage point
type ServiceKind int

const (
	ServiceElectricity ServiceKind = 0
	ServiceGas         ServiceKind = 1
	ServiceWater       ServiceKind = 2
	ServiceTime        ServiceKind = 3
	ServiceHeat        ServiceKind = 4
	ServiceRefuse      ServiceKind = 5
	ServiceSewerage    ServiceKind = 6
	ServiceRates       ServiceKind = 7
	ServiceTVLicense   ServiceKind = 8
	ServiceInternet    ServiceKind = 9
	ServiceMissing     ServiceKind = -1
)

var serviceKindNames = map[ServiceKind]string{
	ServiceElectricity: "ELECTRICITY",
	ServiceGas:         "GAS",
	ServiceWater:       "WATER",
	ServiceTime:        "TIME",
	ServiceHeat:        "HEAT",
	ServiceRefuse:      "REFUSE",
	ServiceSewerage:    "SEWERAGE",
	ServiceRates:       "RATES",
	ServiceTVLicense:   "TV_LICENSE",
	ServiceInternet:    "INTERNET",
	ServiceMissing:     "MISSING",
}

var serviceKindDescriptions = map[ServiceKind]string{
	ServiceElectricity: "Electricity service.",
	ServiceGas:         "Gas service.",
	ServiceWater:       "Water service.",
	ServiceTime:        "Time service.",
	ServiceHeat:        "Heat service.",
	ServiceRefuse:      "Refuse (waste) service.",
	ServiceSewerage:    "Sewerage service.",
	ServiceRates:       "Rates (e.g. tax, charge, toll, duty, tariff, etc.) service.",
	ServiceTVLicense:   "TV license service.",
	ServiceInternet:    "Internet service.",
	ServiceMissing:     "Missing service kind value.",
}

func (k ServiceKind) Valid() bool {
	_, ok := serviceKindNames[k]
	return ok
}

func (k ServiceKind) String() string {
	if name, ok := serviceKindNames[k]; ok {
		return name
	}
	return "ServiceKind(" + strconv.Itoa(int(k)) + ")"
}

func (k ServiceKind) Description() string {
	return serviceKindDescriptions[k]
}

// QualityOfReading describes how a reading value was obtained
type QualityOfReading int

const (
	QualityValidated         QualityOfReading = 0
	QualityHumanApproved     QualityOfReading = 7
	QualityMachineComputed   QualityOfReading = 8
	QualityInterpolated      QualityOfReading = 9
	QualityFailedChecks      QualityOfReading = 10
	QualityCalculated        QualityOfReading = 11
	QualityForecasted        QualityOfReading = 12
	QualityMixedQuality      QualityOfReading = 13
	QualityUnvalidated       QualityOfReading = 14
	QualityWeatherAdjusted   QualityOfReading = 15
	QualityOther             QualityOfReading = 16
	QualityApprovedEdited    QualityOfReading = 17
	QualityFailedButActual   QualityOfReading = 18
	QualityBillingAcceptable QualityOfReading = 19
	QualityMissing           QualityOfReading = -1
)

var qualityNames = map[QualityOfReading]string{
	QualityValidated:         "VALIDATED",
	QualityHumanApproved:     "HUMAN_APPROVED",
	QualityMachineComputed:   "MACHINE_COMPUTED",
	QualityInterpolated:      "INTERPOLATED",
	QualityFailedChecks:      "FAILED_CHECKS",
	QualityCalculated:        "CALCULATED",
	QualityForecasted:        "FORECASTED",
	QualityMixedQuality:      "MIXED_QUALITY",
	QualityUnvalidated:       "UNVALIDATED",
	QualityWeatherAdjusted:   "WEATHER_ADJUSTED",
	QualityOther:             "OTHER",
	QualityApprovedEdited:    "APPROVED_EDITED",
	QualityFailedButActual:   "FAILED_BUT_ACTUAL",
	QualityBillingAcceptable: "BILLING_ACCEPTABLE",
	QualityMissing:           "MISSING",
}

var qualityDescriptions = map[QualityOfReading]string{
	QualityValidated:         "data that has gone through all required validation checks and either passed them all or has been verified",
	QualityHumanApproved:     "Replaced or approved by a human",
	QualityMachineComputed:   "data value was replaced by a machine computed value based on analysis of historical data using the same type of measurement.",
	QualityInterpolated:      "data value was computed using linear interpolation based on the readings before and after it",
	QualityFailedChecks:      "data that has failed one or more checks",
	QualityCalculated:        "data that has been calculated (using logic or mathematical operations)",
	QualityForecasted:        "data that has been calculated as a projection or forecast of future readings",
	QualityMixedQuality:      "indicates that the quality of this reading has mixed characteristics",
	QualityUnvalidated:       "data that has not gone through the validation",
	QualityWeatherAdjusted:   "the values have been adjusted to account for weather",
	QualityOther:             "specifies that a characteristic applies other than those defined",
	QualityApprovedEdited:    "data that has been validated and possibly edited and/or estimated in accordance with approved procedures",
	QualityFailedButActual:   "data that failed at least one of the required validation checks but was determined to represent actual usage",
	QualityBillingAcceptable: "data that is valid and acceptable for billing purposes",
	QualityMissing:           "Missing quality of reading value.",
}

func (q QualityOfReading) Valid() bool {
	_, ok := qualityNames[q]
	return ok
}

func (q QualityOfReading) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return "QualityOfReading(" + strconv.Itoa(int(q)) + ")"
}

func (q QualityOfReading) Description() string {
	return qualityDescriptions[q]
}

// Bridges from wire codes to the domain enumerations
var (
	ServiceKindBridge = enum.NewBridge[espi.ServiceKindValue](ServiceMissing)
	QualityBridge     = enum.NewBridge[espi.QualityOfReadingValue](QualityMissing)
	MultiplierBridge  = enum.NewBridge[espi.UnitMultiplierKindValue](espi.UnitMultiplierNone)
)
