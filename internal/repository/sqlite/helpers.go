package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"greenbutton/internal/repository"

	"github.com/shopspring/decimal"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// int64PtrToNull converts *int64 to sql.NullInt64
func int64PtrToNull(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// intPtrToNull converts *int to sql.NullInt64
func intPtrToNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// nullToInt64Ptr converts sql.NullInt64 to *int64
func nullToInt64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}

// nullToIntPtr converts sql.NullInt64 to *int
func nullToIntPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

// nullToDecimalPtr parses a stored decimal string, nil when NULL
func nullToDecimalPtr(ns sql.NullString) (*decimal.Decimal, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil, fmt.Errorf("invalid stored decimal %q: %w", ns.String, err)
	}
	return &d, nil
}

// ============================================================================
// Row Scanning Types
// ============================================================================

// timeLayout is fixed width so stored times sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// runColumns is the column list for run queries
const runColumns = `id, source, fingerprint, usage_points, readings, created_at`

// runRow holds scanned data from a run query
type runRow struct {
	id          string
	source      sql.NullString
	fingerprint string
	usagePoints int
	readings    int
	createdAt   string
}

func (r *runRow) scanArgs() []any {
	return []any{&r.id, &r.source, &r.fingerprint, &r.usagePoints, &r.readings, &r.createdAt}
}

func (r *runRow) toRun() (*repository.Run, error) {
	created, err := time.Parse(timeLayout, r.createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid creation time for run %s: %w", r.id, err)
	}
	return &repository.Run{
		ID:          r.id,
		Source:      nullToString(r.source),
		Fingerprint: r.fingerprint,
		UsagePoints: r.usagePoints,
		Readings:    r.readings,
		CreatedAt:   created,
	}, nil
}

// readingColumns is the column list for reading queries joined with their
// meter reading and block
const readingColumns = `mr.uri, b.uri, r.seq, r.start, r.duration, r.raw_value, r.value, mr.unit_symbol,
	r.cost, r.quality, r.consumption_tier, r.tou, r.cpp`

// readingRow holds scanned data from a reading query
type readingRow struct {
	meterReadingURI string
	blockURI        sql.NullString
	seq             int
	start           int64
	duration        int64
	rawValue        int64
	value           sql.NullString
	unit            string
	cost            sql.NullInt64
	quality         string
	tier            sql.NullInt64
	tou             sql.NullInt64
	cpp             int
}

func (r *readingRow) scanArgs() []any {
	return []any{
		&r.meterReadingURI, &r.blockURI, &r.seq, &r.start, &r.duration, &r.rawValue, &r.value, &r.unit,
		&r.cost, &r.quality, &r.tier, &r.tou, &r.cpp,
	}
}

func (r *readingRow) toRecord() (repository.ReadingRecord, error) {
	value, err := nullToDecimalPtr(r.value)
	if err != nil {
		return repository.ReadingRecord{}, err
	}
	return repository.ReadingRecord{
		MeterReadingURI: r.meterReadingURI,
		BlockURI:        nullToString(r.blockURI),
		Seq:             r.seq,
		Start:           time.Unix(r.start, 0).UTC(),
		Duration:        time.Duration(r.duration) * time.Second,
		RawValue:        r.rawValue,
		Value:           value,
		Unit:            r.unit,
		Cost:            nullToInt64Ptr(r.cost),
		Quality:         r.quality,
		ConsumptionTier: nullToIntPtr(r.tier),
		TOU:             nullToIntPtr(r.tou),
		CPP:             r.cpp,
	}, nil
}
