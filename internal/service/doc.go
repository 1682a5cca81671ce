// Package service runs the feed pipeline for the command line.
//
// FeedService decodes an Atom document, links its entries into a graph,
// materializes the entry tree and builds the object feed. A parsed Result
// can then be written through any registered exporter or stored in the
// SQLite export sink.
//
// Every stage logs through the injected zap logger and the service publishes
// an Event on its EventBus when a feed is parsed, exported or saved.
package service
