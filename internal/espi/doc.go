// Package espi defines the subset of the NAESB ESPI payload schema that the
// object graph is built from.
//
// Every payload element carries an explicit Kind decided once, when the element
// is decoded. Comparisons of "what is inside this entry" are comparisons of
// Kind values, never of Go types.
//
// # Registry
//
// The registry maps XML local names (UsagePoint, MeterReading, IntervalBlock,
// ...) to a Kind and a constructor. Elements whose name is not registered decode
// to *Unknown so that a feed carrying newer or vendor-specific payloads still
// produces a usable graph.
//
// # Wire Codes
//
// Numeric codes that the schema restricts to an enumeration (service kind,
// quality of reading, unit of measure, power-of-ten multiplier) are decoded into
// enum.Raw values so that absent, unnamed and named codes stay distinguishable.
package espi
