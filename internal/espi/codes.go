package espi

// ServiceKindValue is the wire code for ServiceCategory.kind
type ServiceKindValue int

const (
	ServiceKindElectricity ServiceKindValue = 0
	ServiceKindGas         ServiceKindValue = 1
	ServiceKindWater       ServiceKindValue = 2
	ServiceKindTime        ServiceKindValue = 3
	ServiceKindHeat        ServiceKindValue = 4
	ServiceKindRefuse      ServiceKindValue = 5
	ServiceKindSewerage    ServiceKindValue = 6
	ServiceKindRates       ServiceKindValue = 7
	ServiceKindTVLicense   ServiceKindValue = 8
	ServiceKindInternet    ServiceKindValue = 9
)

func (v ServiceKindValue) Valid() bool {
	return v >= ServiceKindElectricity && v <= ServiceKindInternet
}

// QualityOfReadingValue is the wire code for ReadingQuality.quality
type QualityOfReadingValue int

const (
	QualityValid            QualityOfReadingValue = 0
	QualityManuallyEdited   QualityOfReadingValue = 7
	QualityEstimatedHistory QualityOfReadingValue = 8
	QualityInterpolated     QualityOfReadingValue = 9
	QualityQuestionable     QualityOfReadingValue = 10
	QualityDerived          QualityOfReadingValue = 11
	QualityProjected        QualityOfReadingValue = 12
	QualityMixed            QualityOfReadingValue = 13
	QualityRaw              QualityOfReadingValue = 14
	QualityNormalized       QualityOfReadingValue = 15
	QualityOther            QualityOfReadingValue = 16
	QualityValidated        QualityOfReadingValue = 17
	QualityVerifiedAsActual QualityOfReadingValue = 18
	QualityRevenueQuality   QualityOfReadingValue = 19
)

func (v QualityOfReadingValue) Valid() bool {
	return v == QualityValid || (v >= QualityManuallyEdited && v <= QualityRevenueQuality)
}

// UnitMultiplierKindValue is the wire code for powerOfTenMultiplier; its value is the exponent
type UnitMultiplierKindValue int

const (
	UnitMultiplierPico  UnitMultiplierKindValue = -12
	UnitMultiplierNano  UnitMultiplierKindValue = -9
	UnitMultiplierMicro UnitMultiplierKindValue = -6
	UnitMultiplierMilli UnitMultiplierKindValue = -3
	UnitMultiplierCenti UnitMultiplierKindValue = -2
	UnitMultiplierDeci  UnitMultiplierKindValue = -1
	UnitMultiplierNone  UnitMultiplierKindValue = 0
	UnitMultiplierDeca  UnitMultiplierKindValue = 1
	UnitMultiplierHecto UnitMultiplierKindValue = 2
	UnitMultiplierKilo  UnitMultiplierKindValue = 3
	UnitMultiplierMega  UnitMultiplierKindValue = 6
	UnitMultiplierGiga  UnitMultiplierKindValue = 9
	UnitMultiplierTera  UnitMultiplierKindValue = 12
)

func (v UnitMultiplierKindValue) Valid() bool {
	switch v {
	case UnitMultiplierPico, UnitMultiplierNano, UnitMultiplierMicro, UnitMultiplierMilli,
		UnitMultiplierCenti, UnitMultiplierDeci, UnitMultiplierNone, UnitMultiplierDeca,
		UnitMultiplierHecto, UnitMultiplierKilo, UnitMultiplierMega, UnitMultiplierGiga,
		UnitMultiplierTera:
		return true
	}
	return false
}

// UnitSymbolKindValue is the wire code for a unit of measure
type UnitSymbolKindValue int

const (
	UnitSymbolNone  UnitSymbolKindValue = 0
	UnitSymbolW     UnitSymbolKindValue = 38
	UnitSymbolVA    UnitSymbolKindValue = 61
	UnitSymbolWh    UnitSymbolKindValue = 72
	UnitSymbolVArh  UnitSymbolKindValue = 73
	UnitSymbolFt3   UnitSymbolKindValue = 119
	UnitSymbolBTU   UnitSymbolKindValue = 132
	UnitSymbolM3    UnitSymbolKindValue = 42
	UnitSymbolTherm UnitSymbolKindValue = 169
)

// unitSymbolCodes lists every code the schema names
var unitSymbolCodes = map[UnitSymbolKindValue]struct{}{}

func init() {
	for _, code := range []int{
		61, 38, 63, 71, 72, 73, 29, 30, 5, 25, 28, 23, 27, 159, 160, 9, 10, 31, 32, 53,
		0, 33, 3, 39, 2, 41, 42, 69, 105, 70, 106, 152, 103, 68, 79, 113, 22, 132, 133, 8,
		76, 75, 114, 65, 111, 119, 120, 123, 78, 144, 21, 150, 77, 130, 131, 51, 165, 6, 158, 47,
		48, 134, 157, 138, 137, 143, 82, 156, 139, 35, 34, 49, 167, 126, 125, 45, 166, 127, 118, 7,
		147, 145, 146, 80, 148, 46, 43, 44, 102, 155, 140, 141, 142, 100, 161, 163, 162, 164, 101, 54,
		154, 4, 149, 11, 109, 24, 37, 169, 108, 128, 129, 67, 104, 117, 116, 74, 151, 66, 36, 107,
		115, 50, 81, 153, 168,
	} {
		unitSymbolCodes[UnitSymbolKindValue(code)] = struct{}{}
	}
}

func (v UnitSymbolKindValue) Valid() bool {
	_, ok := unitSymbolCodes[v]
	return ok
}
