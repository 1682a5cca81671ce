package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"greenbutton/internal/codec"
	"greenbutton/internal/feed"
	"greenbutton/internal/graph"
	"greenbutton/internal/repository"
	"greenbutton/internal/tree"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoRepository is returned by ExportSQLite when no repository is configured
var ErrNoRepository = errors.New("no export repository configured")

// Result is one parsed feed with the statistics of every pipeline stage
type Result struct {
	RunID        string
	Source       string
	Fingerprint  string
	Entries      int
	Nodes        int
	Placeholders int
	Collisions   int
	Feed         *feed.ObjectFeed
}

// FeedService provides the parse and export pipeline
type FeedService struct {
	repo     repository.Repository
	eventBus *EventBus
	policy   feed.ServicePolicy
	logger   *zap.Logger
}

// Option configures a FeedService
type Option func(*FeedService)

// WithRepository sets the sink used by ExportSQLite
func WithRepository(repo repository.Repository) Option {
	return func(s *FeedService) {
		s.repo = repo
	}
}

// WithEventBus sets the bus pipeline events are published on
func WithEventBus(eb *EventBus) Option {
	return func(s *FeedService) {
		if eb != nil {
			s.eventBus = eb
		}
	}
}

// WithPolicy sets the policy for usage points without a service kind
func WithPolicy(p feed.ServicePolicy) Option {
	return func(s *FeedService) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithLogger sets the logger passed down to every stage
func WithLogger(logger *zap.Logger) Option {
	return func(s *FeedService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFeedService creates a new feed service
func NewFeedService(opts ...Option) *FeedService {
	s := &FeedService{
		eventBus: NewEventBus(),
		policy:   feed.AssumeGas{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseFile opens path and parses it
func (s *FeedService) ParseFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed: %w", err)
	}
	defer f.Close()

	return s.Parse(ctx, path, f)
}

// Parse runs r through every pipeline stage. The context is checked between
// stages; a stage itself is not interruptible.
func (s *FeedService) Parse(ctx context.Context, source string, r io.Reader) (*Result, error) {
	res := &Result{RunID: uuid.NewString(), Source: source}
	logger := s.logger.With(zap.String("run_id", res.RunID), zap.String("source", source))

	doc, err := codec.NewAtomCodec().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", source, err)
	}
	res.Entries = len(doc.Entries)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := graph.Build(doc, graph.WithLogger(logger))
	res.Fingerprint = g.Fingerprint()
	res.Nodes = g.Len()
	res.Collisions = g.Collisions()
	for _, uri := range g.URIs() {
		if n, ok := g.Node(uri); ok && n.Placeholder {
			res.Placeholders++
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t := tree.Build(g, tree.WithLogger(logger))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Feed, err = feed.Build(t, feed.WithPolicy(s.policy), feed.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", source, err)
	}

	logger.Info("feed parsed",
		zap.Int("entries", res.Entries),
		zap.Int("nodes", res.Nodes),
		zap.Int("placeholders", res.Placeholders),
		zap.Int("collisions", res.Collisions),
		zap.Int("usage_points", len(res.Feed.UsagePoints)),
		zap.Int("readings", res.Feed.ReadingCount()),
		zap.String("fingerprint", res.Fingerprint))

	s.eventBus.Publish(Event{
		Type:  EventFeedParsed,
		RunID: res.RunID,
		Payload: map[string]string{
			"source":      source,
			"fingerprint": res.Fingerprint,
			"readings":    strconv.Itoa(res.Feed.ReadingCount()),
		},
	})

	return res, nil
}

// Export writes the object feed of res to w in format
func (s *FeedService) Export(ctx context.Context, res *Result, w io.Writer, format string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	exporter, err := codec.ExporterFor(format)
	if err != nil {
		return err
	}
	if err := exporter.Export(res.Feed, w); err != nil {
		return fmt.Errorf("failed to export %s as %s: %w", res.Source, format, err)
	}

	s.logger.Debug("feed exported", zap.String("run_id", res.RunID), zap.String("format", format))
	s.eventBus.Publish(Event{
		Type:    EventFeedExported,
		RunID:   res.RunID,
		Payload: map[string]string{"format": format},
	})
	return nil
}

// ExportSQLite stores res in the configured repository under its run id
func (s *FeedService) ExportSQLite(ctx context.Context, res *Result) (*repository.Run, error) {
	if s.repo == nil {
		return nil, ErrNoRepository
	}

	run := &repository.Run{
		ID:          res.RunID,
		Source:      res.Source,
		Fingerprint: res.Fingerprint,
	}
	if err := s.repo.SaveRun(ctx, run, res.Feed); err != nil {
		return nil, fmt.Errorf("failed to save run %s: %w", res.RunID, err)
	}

	s.logger.Info("run saved",
		zap.String("run_id", run.ID),
		zap.Int("usage_points", run.UsagePoints),
		zap.Int("readings", run.Readings))
	s.eventBus.Publish(Event{
		Type:    EventRunSaved,
		RunID:   run.ID,
		Payload: map[string]string{"readings": strconv.Itoa(run.Readings)},
	})
	return run, nil
}
