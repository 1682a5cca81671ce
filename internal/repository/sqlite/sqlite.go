package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"greenbutton/internal/domain"
	"greenbutton/internal/feed"
	"greenbutton/internal/repository"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.Repository = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// an in-memory database lives and dies with its connection
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func dsn(dbPath string) string {
	params := "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if dbPath != ":memory:" {
		params += "&_pragma=journal_mode(WAL)"
	}
	return dbPath + params
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source TEXT,
		fingerprint TEXT NOT NULL,
		usage_points INTEGER NOT NULL DEFAULT 0,
		readings INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS usage_points (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		uri TEXT NOT NULL,
		title TEXT NOT NULL,
		service_kind TEXT NOT NULL,
		status INTEGER NOT NULL,
		tz_offset INTEGER,
		dst_offset INTEGER,
		bill_last_period INTEGER,
		bill_to_date INTEGER
	);

	CREATE TABLE IF NOT EXISTS meter_readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		usage_point_id INTEGER NOT NULL REFERENCES usage_points(id) ON DELETE CASCADE,
		uri TEXT NOT NULL,
		title TEXT NOT NULL,
		unit TEXT NOT NULL,
		unit_symbol TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS interval_blocks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		meter_reading_id INTEGER NOT NULL REFERENCES meter_readings(id) ON DELETE CASCADE,
		uri TEXT NOT NULL,
		start INTEGER,
		duration INTEGER,
		power_of_ten INTEGER
	);

	CREATE TABLE IF NOT EXISTS readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		meter_reading_id INTEGER NOT NULL REFERENCES meter_readings(id) ON DELETE CASCADE,
		block_id INTEGER REFERENCES interval_blocks(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		start INTEGER NOT NULL,
		duration INTEGER NOT NULL,
		raw_value INTEGER NOT NULL,
		value TEXT,
		cost INTEGER,
		quality TEXT NOT NULL,
		consumption_tier INTEGER,
		tou INTEGER,
		cpp INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_usage_points_run ON usage_points(run_id);
	CREATE INDEX IF NOT EXISTS idx_meter_readings_up ON meter_readings(usage_point_id);
	CREATE INDEX IF NOT EXISTS idx_blocks_mr ON interval_blocks(meter_reading_id);
	CREATE INDEX IF NOT EXISTS idx_readings_mr ON readings(meter_reading_id, seq);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveRun stores f under run in a single transaction. An empty run id is
// replaced with a fresh UUID and a zero creation time with the current time.
func (r *Repository) SaveRun(ctx context.Context, run *repository.Run, f *feed.ObjectFeed) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.UsagePoints = len(f.UsagePoints)
	run.Readings = f.ReadingCount()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, fingerprint, usage_points, readings, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, stringToNull(run.Source), run.Fingerprint, run.UsagePoints, run.Readings,
		run.CreatedAt.UTC().Format(timeLayout)); err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	stmts, err := prepareExport(ctx, tx)
	if err != nil {
		return err
	}
	defer stmts.Close()

	for _, up := range f.UsagePoints {
		if err := stmts.usagePoint(ctx, run.ID, up); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// exportStmts holds the prepared inserts used by SaveRun
type exportStmts struct {
	up, mr, block, reading *sql.Stmt
}

func prepareExport(ctx context.Context, tx *sql.Tx) (*exportStmts, error) {
	s := &exportStmts{}
	var err error

	if s.up, err = tx.PrepareContext(ctx, `
		INSERT INTO usage_points (run_id, uri, title, service_kind, status, tz_offset, dst_offset, bill_last_period, bill_to_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`); err != nil {
		return nil, fmt.Errorf("failed to prepare usage point statement: %w", err)
	}
	if s.mr, err = tx.PrepareContext(ctx, `
		INSERT INTO meter_readings (usage_point_id, uri, title, unit, unit_symbol)
		VALUES (?, ?, ?, ?, ?)
	`); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to prepare meter reading statement: %w", err)
	}
	if s.block, err = tx.PrepareContext(ctx, `
		INSERT INTO interval_blocks (meter_reading_id, uri, start, duration, power_of_ten)
		VALUES (?, ?, ?, ?, ?)
	`); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to prepare interval block statement: %w", err)
	}
	if s.reading, err = tx.PrepareContext(ctx, `
		INSERT INTO readings (meter_reading_id, block_id, seq, start, duration, raw_value, value, cost, quality, consumption_tier, tou, cpp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to prepare reading statement: %w", err)
	}

	return s, nil
}

// Close releases every prepared statement
func (s *exportStmts) Close() {
	for _, stmt := range []*sql.Stmt{s.up, s.mr, s.block, s.reading} {
		if stmt != nil {
			stmt.Close()
		}
	}
}

func (s *exportStmts) usagePoint(ctx context.Context, runID string, up *domain.UsagePoint) error {
	var tz, dst sql.NullInt64
	if up.LocalTimeParameters != nil {
		tz = sql.NullInt64{Int64: up.LocalTimeParameters.TZOffset, Valid: true}
		dst = sql.NullInt64{Int64: up.LocalTimeParameters.DSTOffset, Valid: true}
	}

	var billLast, billToDate sql.NullInt64
	switch {
	case up.UsageSummary != nil:
		billLast = int64PtrToNull(up.UsageSummary.BillLastPeriod)
		billToDate = int64PtrToNull(up.UsageSummary.BillToDate)
	case up.ElectricPowerUsageSummary != nil:
		billLast = int64PtrToNull(up.ElectricPowerUsageSummary.BillLastPeriod)
		billToDate = int64PtrToNull(up.ElectricPowerUsageSummary.BillToDate)
	}

	res, err := s.up.ExecContext(ctx, runID, up.URI, up.Title, up.ServiceKind.String(), up.Status, tz, dst, billLast, billToDate)
	if err != nil {
		return fmt.Errorf("failed to insert usage point %q: %w", up.URI, err)
	}
	upID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read usage point id: %w", err)
	}

	for _, mr := range up.MeterReadings {
		if err := s.meterReading(ctx, upID, mr); err != nil {
			return err
		}
	}
	return nil
}

func (s *exportStmts) meterReading(ctx context.Context, upID int64, mr *domain.MeterReading) error {
	res, err := s.mr.ExecContext(ctx, upID, mr.URI, mr.Title, mr.UOMDescription(), mr.UOMSymbol())
	if err != nil {
		return fmt.Errorf("failed to insert meter reading %q: %w", mr.URI, err)
	}
	mrID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read meter reading id: %w", err)
	}

	blockIDs := make(map[*domain.IntervalBlock]int64, len(mr.IntervalBlocks))
	for _, b := range mr.IntervalBlocks {
		var start, duration sql.NullInt64
		if b.Interval != nil {
			start = sql.NullInt64{Int64: b.Interval.Start.Unix(), Valid: true}
			duration = sql.NullInt64{Int64: int64(b.Interval.Duration / time.Second), Valid: true}
		}
		res, err := s.block.ExecContext(ctx, mrID, b.URI, start, duration, intPtrToNull(b.PowerOfTen))
		if err != nil {
			return fmt.Errorf("failed to insert interval block %q: %w", b.URI, err)
		}
		if blockIDs[b], err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read interval block id: %w", err)
		}
	}

	for seq, rd := range mr.Readings {
		var value sql.NullString
		if v, err := rd.Scaled(); err == nil {
			value = sql.NullString{String: v.String(), Valid: true}
		}

		var blockID sql.NullInt64
		if id, ok := blockIDs[rd.Parent]; ok {
			blockID = sql.NullInt64{Int64: id, Valid: true}
		}

		if _, err := s.reading.ExecContext(ctx,
			mrID, blockID, seq,
			rd.Start().Unix(), int64(rd.Duration()/time.Second),
			rd.RawValue, value, int64PtrToNull(rd.Cost),
			rd.QualityOfReading.String(),
			intPtrToNull(rd.ConsumptionTier), intPtrToNull(rd.TOU), rd.CPP,
		); err != nil {
			return fmt.Errorf("failed to insert reading %d of %q: %w", seq, mr.URI, err)
		}
	}
	return nil
}

// GetRun retrieves a single export run
func (r *Repository) GetRun(ctx context.Context, id string) (*repository.Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	var rr runRow
	if err := row.Scan(rr.scanArgs()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	return rr.toRun()
}

// ListRuns returns every export run, newest first
func (r *Repository) ListRuns(ctx context.Context) ([]*repository.Run, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*repository.Run
	for rows.Next() {
		var rr runRow
		if err := rows.Scan(rr.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run, err := rr.toRun()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListUsagePoints returns the usage points of a run in export order
func (r *Repository) ListUsagePoints(ctx context.Context, runID string) ([]repository.UsagePointRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT up.id, up.uri, up.title, up.service_kind, up.status, up.tz_offset,
			(SELECT COUNT(*) FROM meter_readings mr WHERE mr.usage_point_id = up.id)
		FROM usage_points up
		WHERE up.run_id = ?
		ORDER BY up.id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage points: %w", err)
	}
	defer rows.Close()

	var out []repository.UsagePointRecord
	for rows.Next() {
		var rec repository.UsagePointRecord
		var tz sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.URI, &rec.Title, &rec.ServiceKind, &rec.Status, &tz, &rec.MeterReadings); err != nil {
			return nil, fmt.Errorf("failed to scan usage point: %w", err)
		}
		rec.TZOffset = nullToInt64Ptr(tz)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListReadings returns every reading of a run ordered by usage point, meter
// reading and position
func (r *Repository) ListReadings(ctx context.Context, runID string) ([]repository.ReadingRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+readingColumns+`
		FROM readings r
		JOIN meter_readings mr ON mr.id = r.meter_reading_id
		JOIN usage_points up ON up.id = mr.usage_point_id
		LEFT JOIN interval_blocks b ON b.id = r.block_id
		WHERE up.run_id = ?
		ORDER BY up.id, mr.id, r.seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	var out []repository.ReadingRecord
	for rows.Next() {
		var rr readingRow
		if err := rows.Scan(rr.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		rec, err := rr.toRecord()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and everything exported under it
func (r *Repository) DeleteRun(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n == 0 {
		return repository.ErrRunNotFound
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
