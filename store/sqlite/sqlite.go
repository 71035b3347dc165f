/*
Package sqlite provides a SQLite-backed implementation of the storage layer.

PURPOSE:
  Persists bookable resources together with the scheduling data the
  availability engine consumes: weekly opening hours, one-off schedule
  overrides (extra availability and blackouts), bookings, and the shared
  holiday calendar. In production, the same patterns apply to PostgreSQL -
  only minor SQL dialect differences.

KEY TABLES:
  resources:          Bookable entities (rooms, practitioners, machines)
  weekly_hours:       Per-resource recurring weekly opening hours
  schedule_overrides: One-off availability windows and blackouts
  bookings:           Confirmed reservations (become allocations)
  holidays:           Shared closure days applied across all resources

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/availability.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  schedule, err := store.LoadSchedule(ctx, resourceID)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - availability/schedule.go: the in-memory types this store hydrates
  - api/handlers.go: HTTP layer on top of this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/noyou75/GitlabsApp-Backend-sub001/availability"
)

// Store implements resource and schedule persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Bookable resources
	CREATE TABLE IF NOT EXISTS resources (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Recurring weekly opening hours, one row per wall-clock range
	CREATE TABLE IF NOT EXISTS weekly_hours (
		resource_id TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
		weekday INTEGER NOT NULL CHECK (weekday BETWEEN 0 AND 6),
		from_clock TEXT NOT NULL,
		to_clock TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_weekly_hours_resource
		ON weekly_hours(resource_id);

	-- One-off schedule overrides: extra availability or blackouts
	CREATE TABLE IF NOT EXISTS schedule_overrides (
		id TEXT PRIMARY KEY,
		resource_id TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
		kind TEXT NOT NULL CHECK (kind IN ('availability', 'blackout')),
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_overrides_resource
		ON schedule_overrides(resource_id, start_at);

	-- Confirmed reservations; each consumes one unit of capacity
	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		resource_id TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Hot path: bookings in a query window for one resource
	CREATE INDEX IF NOT EXISTS idx_bookings_resource_start
		ON bookings(resource_id, start_at);

	-- Shared closure days, removed from every resource's availability
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_unique
		ON holidays(name, start_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RESOURCES
// =============================================================================

// Resource is a bookable entity.
type Resource struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// SaveResource inserts or updates a resource.
func (s *Store) SaveResource(ctx context.Context, r Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO resources (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name
	`

	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.Name, time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetResource retrieves a resource by ID. Returns (nil, nil) when absent.
func (s *Store) GetResource(ctx context.Context, id string) (*Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r Resource
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM resources WHERE id = ?",
		id,
	).Scan(&r.ID, &r.Name, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &r, nil
}

// ListResources returns all resources.
func (s *Store) ListResources(ctx context.Context) ([]Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM resources ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []Resource
	for rows.Next() {
		var r Resource
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Name, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// DeleteResource removes a resource and its dependent rows.
func (s *Store) DeleteResource(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM resources WHERE id = ?", id)
	return err
}

// =============================================================================
// WEEKLY HOURS
// =============================================================================

// SetWeeklyHours replaces the recurring weekly hours for a resource.
func (s *Store) SetWeeklyHours(ctx context.Context, resourceID string, tt availability.WeeklyTimetable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if _, err := sqlTx.ExecContext(ctx,
		"DELETE FROM weekly_hours WHERE resource_id = ?", resourceID); err != nil {
		return err
	}

	for day, ranges := range tt {
		for _, r := range ranges {
			if _, err := sqlTx.ExecContext(ctx,
				"INSERT INTO weekly_hours (resource_id, weekday, from_clock, to_clock) VALUES (?, ?, ?, ?)",
				resourceID, int(day), r.From, r.To); err != nil {
				return err
			}
		}
	}

	return sqlTx.Commit()
}

// GetWeeklyHours returns the recurring weekly hours for a resource.
func (s *Store) GetWeeklyHours(ctx context.Context, resourceID string) (availability.WeeklyTimetable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT weekday, from_clock, to_clock FROM weekly_hours WHERE resource_id = ? ORDER BY weekday, from_clock",
		resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tt := availability.WeeklyTimetable{}
	for rows.Next() {
		var weekday int
		var from, to string
		if err := rows.Scan(&weekday, &from, &to); err != nil {
			return nil, err
		}
		day := time.Weekday(weekday)
		tt[day] = append(tt[day], availability.TimeOfDayRange{From: from, To: to})
	}
	return tt, rows.Err()
}

// =============================================================================
// SCHEDULE OVERRIDES
// =============================================================================

// Override kinds.
const (
	OverrideAvailability = "availability"
	OverrideBlackout     = "blackout"
)

// Override is a one-off change to a resource's schedule.
type Override struct {
	ID         string
	ResourceID string
	Kind       string // "availability" or "blackout"
	Start      time.Time
	End        time.Time
	CreatedAt  time.Time
}

// SaveOverride inserts a schedule override.
func (s *Store) SaveOverride(ctx context.Context, o Override) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.Kind != OverrideAvailability && o.Kind != OverrideBlackout {
		return fmt.Errorf("unknown override kind %q", o.Kind)
	}

	query := `
		INSERT INTO schedule_overrides (id, resource_id, kind, start_at, end_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		o.ID, o.ResourceID, o.Kind,
		o.Start.UTC().Format(time.RFC3339),
		o.End.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListOverrides returns all overrides for a resource ordered by start.
func (s *Store) ListOverrides(ctx context.Context, resourceID string) ([]Override, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, resource_id, kind, start_at, end_at, created_at
		 FROM schedule_overrides WHERE resource_id = ? ORDER BY start_at ASC`,
		resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []Override
	for rows.Next() {
		var o Override
		var startAt, endAt, createdAt string
		if err := rows.Scan(&o.ID, &o.ResourceID, &o.Kind, &startAt, &endAt, &createdAt); err != nil {
			return nil, err
		}
		o.Start, _ = time.Parse(time.RFC3339, startAt)
		o.End, _ = time.Parse(time.RFC3339, endAt)
		o.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

// DeleteOverride removes an override.
func (s *Store) DeleteOverride(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM schedule_overrides WHERE id = ?", id)
	return err
}

// =============================================================================
// BOOKINGS
// =============================================================================

// Booking is a confirmed reservation against a resource.
type Booking struct {
	ID         string
	ResourceID string
	Start      time.Time
	End        time.Time
	CreatedAt  time.Time
}

// SaveBooking inserts a booking.
func (s *Store) SaveBooking(ctx context.Context, b Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO bookings (id, resource_id, start_at, end_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		b.ID, b.ResourceID,
		b.Start.UTC().Format(time.RFC3339),
		b.End.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListBookings returns bookings for a resource overlapping [from, to).
func (s *Store) ListBookings(ctx context.Context, resourceID string, from, to time.Time) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, resource_id, start_at, end_at, created_at
		FROM bookings
		WHERE resource_id = ? AND start_at < ? AND end_at > ?
		ORDER BY start_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, resourceID,
		to.UTC().Format(time.RFC3339), from.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		var startAt, endAt, createdAt string
		if err := rows.Scan(&b.ID, &b.ResourceID, &startAt, &endAt, &createdAt); err != nil {
			return nil, err
		}
		b.Start, _ = time.Parse(time.RFC3339, startAt)
		b.End, _ = time.Parse(time.RFC3339, endAt)
		b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// DeleteBooking removes a booking.
func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
	return err
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// Holiday is a shared closure window applied across all resources.
type Holiday struct {
	ID        string
	Name      string
	Start     time.Time
	End       time.Time
	CreatedAt time.Time
}

// SaveHoliday inserts or updates a holiday.
func (s *Store) SaveHoliday(ctx context.Context, h Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, name, start_at, end_at, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name, start_at) DO UPDATE SET
			end_at = excluded.end_at
	`

	_, err := s.db.ExecContext(ctx, query,
		h.ID, h.Name,
		h.Start.UTC().Format(time.RFC3339),
		h.End.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListHolidays returns all holidays ordered by start.
func (s *Store) ListHolidays(ctx context.Context) ([]Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, start_at, end_at, created_at FROM holidays ORDER BY start_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []Holiday
	for rows.Next() {
		var h Holiday
		var startAt, endAt, createdAt string
		if err := rows.Scan(&h.ID, &h.Name, &startAt, &endAt, &createdAt); err != nil {
			return nil, err
		}
		h.Start, _ = time.Parse(time.RFC3339, startAt)
		h.End, _ = time.Parse(time.RFC3339, endAt)
		h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// DeleteHoliday removes a holiday.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	return err
}

// =============================================================================
// SCHEDULE ASSEMBLY
// =============================================================================

// LoadSchedule hydrates a resource's complete schedule: weekly hours plus
// availability and blackout overrides.
func (s *Store) LoadSchedule(ctx context.Context, resourceID string) (availability.Schedule, error) {
	tt, err := s.GetWeeklyHours(ctx, resourceID)
	if err != nil {
		return availability.Schedule{}, fmt.Errorf("failed to load weekly hours: %w", err)
	}

	overrides, err := s.ListOverrides(ctx, resourceID)
	if err != nil {
		return availability.Schedule{}, fmt.Errorf("failed to load overrides: %w", err)
	}

	schedule := availability.Schedule{Weekly: tt}
	for _, o := range overrides {
		iv := availability.NewInterval(o.Start, o.End)
		switch o.Kind {
		case OverrideAvailability:
			schedule.Availabilities = append(schedule.Availabilities, iv)
		case OverrideBlackout:
			schedule.Blackouts = append(schedule.Blackouts, iv)
		}
	}
	return schedule, nil
}

// LoadAllocations returns the bookings for a resource in a window as
// engine allocation intervals.
func (s *Store) LoadAllocations(ctx context.Context, resourceID string, from, to time.Time) ([]availability.Interval, error) {
	bookings, err := s.ListBookings(ctx, resourceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	var allocations []availability.Interval
	for _, b := range bookings {
		allocations = append(allocations, availability.NewInterval(b.Start, b.End))
	}
	return allocations, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo scenarios).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"bookings", "schedule_overrides", "weekly_hours", "holidays", "resources"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
