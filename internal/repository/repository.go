package repository

import (
	"context"
	"errors"
	"time"

	"greenbutton/internal/feed"

	"github.com/shopspring/decimal"
)

// ErrRunNotFound is returned when no export run has the requested id
var ErrRunNotFound = errors.New("export run not found")

// Run describes one export of an object feed
type Run struct {
	ID          string
	Source      string
	Fingerprint string
	UsagePoints int
	Readings    int
	CreatedAt   time.Time
}

// UsagePointRecord is a stored usage point
type UsagePointRecord struct {
	ID            int64
	URI           string
	Title         string
	ServiceKind   string
	Status        int
	TZOffset      *int64
	MeterReadings int
}

// ReadingRecord is a stored interval reading, flattened with its meter
// reading and block
type ReadingRecord struct {
	MeterReadingURI string
	BlockURI        string
	Seq             int
	Start           time.Time
	Duration        time.Duration
	RawValue        int64
	Value           *decimal.Decimal
	Unit            string
	Cost            *int64
	Quality         string
	ConsumptionTier *int
	TOU             *int
	CPP             int
}

// Repository defines the interface for persisting exported feeds
type Repository interface {
	// Write operations
	SaveRun(ctx context.Context, run *Run, f *feed.ObjectFeed) error
	DeleteRun(ctx context.Context, id string) error

	// Read operations
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context) ([]*Run, error)
	ListUsagePoints(ctx context.Context, runID string) ([]UsagePointRecord, error)
	ListReadings(ctx context.Context, runID string) ([]ReadingRecord, error)

	// Close releases resources
	Close() error
}
