package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/mr1hm/go-sachet-alerts/internal/geo"
	"github.com/mr1hm/go-sachet-alerts/internal/models"
)

// Store keeps the latest snapshot in SQLite or PostgreSQL.
type Store struct {
	db *sqlx.DB
}

func NewStore(driver, dsn string) (*Store, error) {
	var driverName string
	switch driver {
	case "sqlite":
		driverName = "sqlite"
	case "postgres":
		driverName = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if driverName == "sqlite" {
		// :memory: databases are per connection
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func newStoreFromDB(db *sql.DB, driverName string) *Store {
	return &Store{db: sqlx.NewDb(db, driverName)}
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS disasters (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			source TEXT NOT NULL,
			type TEXT NOT NULL,
			severity TEXT NOT NULL,
			severity_rank INTEGER NOT NULL,
			status TEXT NOT NULL,
			location_name TEXT NOT NULL,
			state TEXT NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			geohash TEXT NOT NULL,
			description TEXT NOT NULL,
			reported_at TIMESTAMP NOT NULL,
			expires_at TIMESTAMP,
			affected_people INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_disasters_type ON disasters(type);
		CREATE INDEX IF NOT EXISTS idx_disasters_geohash ON disasters(geohash);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

type disasterRow struct {
	ID             string        `db:"id"`
	Seq            int           `db:"seq"`
	Source         string        `db:"source"`
	Type           string        `db:"type"`
	Severity       string        `db:"severity"`
	SeverityRank   int           `db:"severity_rank"`
	Status         string        `db:"status"`
	LocationName   string        `db:"location_name"`
	State          string        `db:"state"`
	Latitude       float64       `db:"latitude"`
	Longitude      float64       `db:"longitude"`
	Geohash        string        `db:"geohash"`
	Description    string        `db:"description"`
	ReportedAt     time.Time     `db:"reported_at"`
	ExpiresAt      sql.NullTime  `db:"expires_at"`
	AffectedPeople sql.NullInt64 `db:"affected_people"`
}

func toRow(i int, d models.Disaster) disasterRow {
	r := disasterRow{
		ID:           d.ID,
		Seq:          i,
		Source:       d.Source,
		Type:         string(d.Type),
		Severity:     string(d.Severity),
		SeverityRank: d.Severity.Rank(),
		Status:       string(d.Status),
		LocationName: d.Location.Name,
		State:        d.Location.State,
		Latitude:     d.Location.Lat,
		Longitude:    d.Location.Lng,
		Geohash:      geo.Hash(d.Location.Lat, d.Location.Lng),
		Description:  d.Description,
		ReportedAt:   d.ReportedAt.UTC(),
	}
	if d.Expires != nil {
		r.ExpiresAt = sql.NullTime{Time: d.Expires.UTC(), Valid: true}
	}
	if d.AffectedPeople != nil {
		r.AffectedPeople = sql.NullInt64{Int64: int64(*d.AffectedPeople), Valid: true}
	}
	return r
}

func (r disasterRow) toModel() models.Disaster {
	d := models.Disaster{
		ID:       r.ID,
		Source:   r.Source,
		Type:     models.DisasterType(r.Type),
		Severity: models.Severity(r.Severity),
		Status:   models.Status(r.Status),
		Location: models.Location{
			Name:  r.LocationName,
			State: r.State,
			Lat:   r.Latitude,
			Lng:   r.Longitude,
		},
		Description: r.Description,
		ReportedAt:  r.ReportedAt.UTC(),
	}
	if r.ExpiresAt.Valid {
		t := r.ExpiresAt.Time.UTC()
		d.Expires = &t
	}
	if r.AffectedPeople.Valid {
		n := int(r.AffectedPeople.Int64)
		d.AffectedPeople = &n
	}
	return d
}

const insertDisaster = `INSERT INTO disasters (
	id, seq, source, type, severity, severity_rank, status,
	location_name, state, latitude, longitude, geohash, description,
	reported_at, expires_at, affected_people
) VALUES (
	:id, :seq, :source, :type, :severity, :severity_rank, :status,
	:location_name, :state, :latitude, :longitude, :geohash, :description,
	:reported_at, :expires_at, :affected_people
)`

// ReplaceAll swaps the stored snapshot for batch in one transaction.
func (s *Store) ReplaceAll(ctx context.Context, batch []models.Disaster) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM disasters"); err != nil {
		return fmt.Errorf("error clearing snapshot: %w", err)
	}
	for i, d := range batch {
		if _, err := tx.NamedExecContext(ctx, insertDisaster, toRow(i, d)); err != nil {
			return fmt.Errorf("error inserting disaster %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing snapshot: %w", err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*models.Disaster, error) {
	var row disasterRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind("SELECT * FROM disasters WHERE id = ?"), id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching disaster: %w", err)
	}
	d := row.toModel()
	return &d, nil
}

func (s *Store) ListDisasters(ctx context.Context, opts Filter) ([]models.Disaster, error) {
	var (
		where []string
		args  []any
	)

	if opts.Type != nil {
		where = append(where, "type = ?")
		args = append(args, string(*opts.Type))
	}
	if opts.MinSeverity != nil {
		where = append(where, "severity_rank >= ?")
		args = append(args, opts.MinSeverity.Rank())
	}
	if opts.State != "" {
		where = append(where, "LOWER(state) = ?")
		args = append(args, strings.ToLower(opts.State))
	}
	if opts.GeohashPrefix != "" {
		where = append(where, "geohash LIKE ?")
		args = append(args, strings.ToLower(opts.GeohashPrefix)+"%")
	}

	if opts.Near != nil {
		lo, hi := opts.Near.LatitudeBounds()
		where = append(where, "latitude BETWEEN ? AND ?")
		args = append(args, lo, hi)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	query := "SELECT * FROM disasters"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq"
	// distance is checked in Go, so the limit can only be applied after it
	if opts.Near == nil {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []disasterRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("error listing disasters: %w", err)
	}

	disasters := make([]models.Disaster, 0, min(len(rows), limit))
	for _, r := range rows {
		if len(disasters) == limit {
			break
		}
		if opts.Near != nil && !opts.Near.Contains(r.Latitude, r.Longitude) {
			continue
		}
		disasters = append(disasters, r.toModel())
	}
	return disasters, nil
}

// Name and Deliver let the store receive batches like any other sink.
func (s *Store) Name() string {
	return "database"
}

func (s *Store) Deliver(ctx context.Context, batch []models.Disaster) error {
	return s.ReplaceAll(ctx, batch)
}
