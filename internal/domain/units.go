package domain

import (
	"strconv"
	"strings"

	"greenbutton/internal/enum"
	"greenbutton/internal/espi"
)

// UnitSymbol is a unit of measure code. Its catalog entry reads
// "<quantity>, <unit name>, <symbol>".
type UnitSymbol int

const (
	UnitMissing UnitSymbol = -1
	UnitNone    UnitSymbol = 0
	UnitM3      UnitSymbol = 42
	UnitWh      UnitSymbol = 72
	UnitVArh    UnitSymbol = 73
	UnitFt3     UnitSymbol = 119
	UnitBTU     UnitSymbol = 132
	UnitTherm   UnitSymbol = 169
)

type unitInfo struct {
	name        string
	description string
}

const missingUnitDescription = "Unknown unit value, Unknown, unknown"

var unitCatalog = map[UnitSymbol]unitInfo{
	61:  {"VA", "Apparent power, Volt Ampere (See also real power and reactive power.), VA"},
	38:  {"W", "Real power, Watt. By definition, one Watt equals one Joule per second. Electrical power may have real and reactive components. The real portion of electrical power (I²R) or VIcos?, is expressed in Watts. (See also apparent power and reactive power.), W"},
	63:  {"VAR", "Reactive power, Volt Ampere reactive. The \"reactive\" or \"imaginary\" component of electrical power (VISin?). (See also real power and apparent power)., VAr"},
	71:  {"VAH", "Apparent energy, Volt Ampere hours, VAh"},
	72:  {"WH", "Real energy, Watt hours, Wh"},
	73:  {"VARH", "Reactive energy, Volt Ampere reactive hours, VArh"},
	29:  {"V", "Electric potential, Volt (W/A), V"},
	30:  {"OHM", "Electric resistance, Ohm (V/A), O"},
	5:   {"A", "Current, ampere, A"},
	25:  {"FARAD", "Electric capacitance, Farad (C/V), °C"},
	28:  {"HENRY", "Electric inductance, Henry (Wb/A), H"},
	23:  {"DEG_C", "Relative temperature in degrees Celsius. In the SI unit system the symbol is ºC. Electric charge is measured in coulomb that has the unit symbol C. To distinguish degree Celsius from coulomb the symbol used in the UML is degC. Reason for not using ºC is the special character º is difficult to manage in software."},
	27:  {"S", "Time, seconds, s"},
	159: {"MIN", "Time, minute = s * 60, min"},
	160: {"H", "Time, hour = minute * 60, h"},
	9:   {"DEG", "Plane angle, degrees, deg"},
	10:  {"RAD", "Plane angle, Radian (m/m), rad"},
	31:  {"J", "Energy joule, (N·m = C·V = W·s), J"},
	32:  {"N", "Force newton, (kg m/s²), N"},
	53:  {"SIEMENS", "Electric conductance, Siemens (A / V = 1 / O), S"},
	0:   {"NONE", "N/A, None"},
	33:  {"HZ", "Frequency hertz, (1/s), Hz"},
	3:   {"G", "Mass in gram, g"},
	39:  {"PA", "Pressure, Pascal (N/m²)(Note: the absolute or relative measurement of pressure is implied with this entry. See below for more explicit forms.), Pa"},
	2:   {"M", "Length, meter, m"},
	41:  {"M2", "Area, square meter, m²"},
	42:  {"M3", "Volume, cubic meter, m³"},
	69:  {"A2", "Amps squared, amp squared, A2"},
	105: {"A2H", "ampere-squared, Ampere-squared hour, A²h"},
	70:  {"A2S", "Amps squared time, square amp second, A²s"},
	106: {"AH", "Ampere-hours, Ampere-hours, Ah"},
	152: {"A_PER_A", "Current, Ratio of Amperages, A/A"},
	103: {"A_PER_M", "A/m, magnetic field strength, Ampere per metre, A/m"},
	68:  {"AS", "Amp seconds, amp seconds, As"},
	79:  {"B_SPL", "Sound pressure level, Bel, acoustic, Combine with 'multiplier prefix \"d\" to form decibels of Sound Pressure Level db(SPL), B (SPL)"},
	113: {"BM", "Signal Strength, Bel-mW, normalized to 1mW. Note: to form \"dBm\" combine \"Bm\" with multiplier \"d\". Bm"},
	22:  {"BQ", "Radioactivity, Becquerel (1/s), Bq"},
	132: {"BTU", "Energy, British Thermal Units, BTU"},
	133: {"BTU_PER_H", "Power, BTU per hour, BTU/h"},
	8:   {"CD", "Luminous intensity, candela, cd"},
	76:  {"CHAR", "Number of characters, characters, char"},
	75:  {"HZ_PER_S", "Rate of change of frequency, hertz per second, Hz/s"},
	114: {"CODE", "Application Value, encoded value, code"},
	65:  {"COS_PHI", "Power factor, Dimensionless, cos?"},
	111: {"COUNT", "Amount of substance, counter value, count"},
	119: {"FT3", "Volume, cubic feet, ft³"},
	120: {"FT3_COMPENSATED", "Volume, cubic feet, ft³(compensated)"},
	123: {"FT3_COMPENSATED_PER_H", "Volumetric flow rate, compensated cubic feet per hour, ft³(compensated)/h"},
	78:  {"GM2", "Turbine inertia, gram·meter2 (Combine with multiplier prefix \"k\" to form kg·m2.), gm²"},
	144: {"G_PER_G", "Concentration, The ratio of the mass of a solute divided by the mass of the solution., g/g"},
	21:  {"GY", "Absorbed dose, Gray (J/kg), GY"},
	150: {"HZ_PER_HZ", "Frequency, Rate of frequency change, Hz/Hz"},
	77:  {"CHAR_PER_S", "Data rate, characters per second, char/s"},
	130: {"IMPERIAL_GAL", "Volume, imperial gallons, ImperialGal"},
	131: {"IMPERIAL_GAL_PER_H", "Volumetric flow rate, Imperial gallons per hour, ImperialGal/h"},
	51:  {"J_PER_K", "Heat capacity, Joule/Kelvin, J/K"},
	165: {"J_PER_KG", "Specific energy, Joules / kg, J/kg"},
	6:   {"K", "Temperature, Kelvin, K"},
	158: {"KAT", "Catalytic activity, katal = mol / s, kat"},
	47:  {"KG_M", "Moment of mass ,kilogram meter (kg·m), M"},
	48:  {"G_PER_M3", "Density, gram/cubic meter (combine with prefix multiplier \"k\" to form kg/ m³), g/m³"},
	134: {"L", "Volume, litre = dm3 = m3/1000., L"},
	157: {"L_COMPENSATED", "Volume, litre, with the value compensated for weather effects, L(compensated)"},
	138: {"L_COMPENSATED_PER_H", "Volumetric flow rate, litres (compensated) per hour, L(compensated)/h"},
	137: {"L_PER_H", "Volumetric flow rate, litres per hour, L/h"},
	143: {"L_PER_L", "Concentration, The ratio of the volume of a solute divided by the volume of the solution., L/L"},
	82:  {"L_PER_S", "Volumetric flow rate, Volumetric flow rate, L/s"},
	156: {"L_UNCOMPENSATED", "Volume, litre, with the value uncompensated for weather effects., L(uncompensated)"},
	139: {"L_UNCOMPENSATED_PER_H", "Volumetric flow rate, litres (uncompensated) per hour, L(uncompensated)/h"},
	35:  {"LM", "Luminous flux, lumen (cd sr), Lm"},
	34:  {"LX", "Illuminance lux, (lm/m²), L(uncompensated)/h"},
	49:  {"M2_PER_S", "Viscosity, meter squared / second, m²/s"},
	167: {"M3_COMPENSATED", "Volume, cubic meter, with the value compensated for weather effects., m3(compensated)"},
	126: {"M3_COMPENSATED_PER_H", "Volumetric flow rate, compensated cubic meters per hour, ³(compensated)/h"},
	125: {"M3_PER_H", "Volumetric flow rate, cubic meters per hour, m³/h"},
	45:  {"M3_PER_S", "m3PerSec, cubic meters per second, m³/s"},
	166: {"M3_UNCOMPENSATED", "m3uncompensated, cubic meter, with the value uncompensated for weather effects., m3(uncompensated)"},
	127: {"M3_UNCOMPENSATED_PER_H", "Volumetric flow rate, uncompensated cubic meters per hour, m³(uncompensated)/h"},
	118: {"ME_CODE", "EndDeviceEvent, value to be interpreted as a EndDeviceEventCode, meCode"},
	7:   {"MOL", "Amount of substance, mole, mol"},
	147: {"MOL_PER_KG", "Concentration, Molality, the amount of solute in moles and the amount of solvent in kilograms., mol/kg"},
	145: {"MOL_PER_M3", "Concentration, The amount of substance concentration, (c), the amount of solute in moles divided by the volume of solution in m³., mol/m³"},
	146: {"MOL_PER_MOL", "Concentration, Molar fraction (x), the ratio of the molar amount of a solute divided by the molar amount of the solution., mol/mol"},
	80:  {"CURRENCY", "Monetary unit, Generic money (Note: Specific monetary units are identified by the currency class)., ¤"},
	148: {"M_PER_M", "Length, Ratio of length, m/m"},
	46:  {"M_PER_M3", "Fuel efficiency, meters per cubic meter, m/m³"},
	43:  {"M_PER_S", "Velocity, meters per second, m/s"},
	44:  {"M_PER_S2", "Acceleration, meters per second squared, m/s²"},
	102: {"OHM_M", "Resistivity, ohm meter, Ω·m"},
	155: {"PA_A", "Pressure, Pascal absolute, PaA"},
	140: {"PA_G", "Pressure, Pascal gauge, PaG"},
	141: {"PSI_A", "Pressure, Pounds per square inch absolute, psiA"},
	142: {"PSI_G", "Pressure, Pounds per square inch gauge, psiG"},
	100: {"Q", "Quantity power, Q, Q"},
	161: {"Q45", "Quantity power, Q measured at 45°, Q45"},
	163: {"Q45H", "Quantity energy, Q measured at 45°, Q45h"},
	162: {"Q60", "Quantity power, Q measured at 60°, Q60"},
	164: {"Q60H", "Quantity energy, Qh measured at 60°, Q60h"},
	101: {"QH", "Quantity energy, Qh, Qh"},
	54:  {"RAD_PER_S", "Angular velocity, radians per second, rad/s"},
	154: {"REV", "Amount of rotation, Revolutions, rev"},
	4:   {"REV_PER_S", "Rotational speed, Revolutions per second, rev/s"},
	149: {"S_PER_S", "Time, Ratio of time (can be combined with a multiplier prefix to show rates such as a clock drift rate, e.g. \"µs/s\"), s/s"},
	11:  {"SR", "Solid angle, Steradian, sr"},
	109: {"STATUS", "State, \"1\" = \"true\", \"live\", \"on\", \"high\", \"set\"; \"0\" = \"false\", \"dead\", \"off\", \"low\", \"cleared\". Note: A Boolean value is preferred but other values may be supported, status"},
	24:  {"SV", "Dose equivalent, Sievert, Sv"},
	37:  {"T", "Magnetic flux density, Tesla, T"},
	169: {"THERM", "Energy, Therm, therm"},
	108: {"TIMESTAMP", "Timestamp, time and date per ISO 8601 format, timeStamp"},
	128: {"US_GAL", "Volume, US gallons, USGal"},
	129: {"US_GAL_PER_H", "Volumetric flow rate, US gallons per hour, USGal/h"},
	67:  {"V2", "Volts squared, Volt squared, V²"},
	104: {"V2H", "Volt-squared hour, Volt-squared-hours, V²h"},
	117: {"VAH_PER_REV", "Apparent energy metering constant, VAh per revolution, VAh/rev"},
	116: {"VARH_PER_REV", "Reactive energy metering constant, VArh per revolution, VArh/rev"},
	74:  {"V_PER_HZ", "Magnetic flux, Volts per Hertz, V/Hz"},
	151: {"V_PER_V", "Voltage, Ratio of voltages (e.g. mV/V), V/V"},
	66:  {"VS", "Volt seconds, Volt seconds, Vs"},
	36:  {"WB", "Magnetic flux, Weber, Wb"},
	107: {"WH_PER_M3", "Energy per volume, Watt-hours per cubic meter, Wh/m³"},
	115: {"WH_PER_REV", "Active energy metering constant, Wh per revolution, Wh/rev"},
	50:  {"W_PER_M_K", "Thermal conductivity, Watt per meter Kelvin, W/(m·K)"},
	81:  {"W_PER_S", "Ramp rate, Watts per second, W/s"},
	153: {"W_PER_VA", "Power Factor, PF, W/VA"},
	168: {"W_PER_W", "Signal Strength, Ratio of power, W/W"},
}

func (u UnitSymbol) Valid() bool {
	if u == UnitMissing {
		return true
	}
	_, ok := unitCatalog[u]
	return ok
}

func (u UnitSymbol) String() string {
	if u == UnitMissing {
		return "MISSING"
	}
	if info, ok := unitCatalog[u]; ok {
		return info.name
	}
	return "UnitSymbol(" + strconv.Itoa(int(u)) + ")"
}

// Description returns the full catalog text of the unit
func (u UnitSymbol) Description() string {
	if info, ok := unitCatalog[u]; ok {
		return info.description
	}
	return missingUnitDescription
}

// Quantity is the first comma separated segment of the description
func (u UnitSymbol) Quantity() string {
	d := u.Description()
	if i := strings.Index(d, ","); i >= 0 {
		return d[:i]
	}
	return d
}

// Symbol is the last comma separated segment of the description, trimmed
func (u UnitSymbol) Symbol() string {
	return strings.TrimSpace(u.SymbolSegment())
}

// SymbolSegment is the last comma separated segment as written in the
// catalog, keeping its leading space. A description without a comma is its
// own segment.
func (u UnitSymbol) SymbolSegment() string {
	d := u.Description()
	return d[strings.LastIndex(d, ",")+1:]
}

// UnitBridge decodes reading type units, absent codes become UnitMissing
var UnitBridge = enum.NewBridge[espi.UnitSymbolKindValue](UnitMissing)
