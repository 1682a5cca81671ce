// Package domain defines the metering objects produced from a Green Button feed.
//
// # Core Types
//
// UsagePoint is a logical point on a network at which consumption is measured
// or estimated. It owns its meter readings, time zone rules and usage summaries.
//
// MeterReading groups the interval blocks that share one ReadingType and
// flattens their readings in feed order.
//
// IntervalBlock is a time sequence of readings. It carries the power of ten
// multiplier resolved from the reading type.
//
// IntervalReading is one raw value with its time period, cost and quality.
//
// # Scaling
//
// Scale applies the multiplier of the parent block to a raw reading value using
// exact decimal arithmetic. A reading is scalable once its reading type has been
// attached and its block's multiplier has been computed.
//
// # Enumerations
//
// ServiceKind, QualityOfReading and UnitSymbol are the domain side of the wire
// codes defined in package espi. Each one carries a name and a description
// catalog and has a MISSING member used when the feed omits the code.
package domain
