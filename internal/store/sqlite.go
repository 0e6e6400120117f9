package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/leadscout/leadscout/internal/apperr"
	"github.com/leadscout/leadscout/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS searches (
	id         TEXT PRIMARY KEY,
	sector     TEXT NOT NULL,
	location   TEXT NOT NULL,
	lead_count INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS leads (
	id            TEXT PRIMARY KEY,
	search_id     TEXT NOT NULL REFERENCES searches(id),
	business_name TEXT NOT NULL,
	sector        TEXT NOT NULL,
	location      TEXT NOT NULL,
	score         INTEGER NOT NULL DEFAULT 0,
	data          TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_searches_sector_location ON searches(sector, location);
CREATE INDEX IF NOT EXISTS idx_leads_search_id ON leads(search_id);
CREATE INDEX IF NOT EXISTS idx_leads_sector_location ON leads(sector, location);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateSearch(ctx context.Context, sector, location string, leadCount int) (*model.SearchRun, error) {
	run := &model.SearchRun{
		ID:        uuid.New().String(),
		Sector:    sector,
		Location:  location,
		LeadCount: leadCount,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (id, sector, location, lead_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Sector, run.Location, run.LeadCount, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert search")
	}
	return run, nil
}

func (s *SQLiteStore) ListSearches(ctx context.Context, limit int) ([]model.SearchRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sector, location, lead_count, created_at FROM searches ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list searches")
	}
	defer rows.Close() //nolint:errcheck

	var runs []model.SearchRun
	for rows.Next() {
		var r model.SearchRun
		if err := rows.Scan(&r.ID, &r.Sector, &r.Location, &r.LeadCount, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan search")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate searches")
}

func (s *SQLiteStore) SaveLeads(ctx context.Context, searchID string, leads []model.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	for _, lead := range leads {
		data, err := json.Marshal(lead)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal lead %s", lead.ID)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO leads (id, search_id, business_name, sector, location, score, data, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				search_id = excluded.search_id,
				business_name = excluded.business_name,
				score = excluded.score,
				data = excluded.data`,
			lead.ID, searchID, lead.BusinessName, lead.BusinessType, lead.Location, lead.VerificationScore, string(data), now,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: upsert lead %s", lead.ID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit leads")
}

func (s *SQLiteStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM leads WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("lead %q not found", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get lead %s", id)
	}

	var lead model.Lead
	if err := json.Unmarshal([]byte(data), &lead); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal lead %s", id)
	}
	return &lead, nil
}

func (s *SQLiteStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT data FROM leads WHERE 1=1`
	var args []any

	if filter.Sector != "" {
		query += ` AND sector = ?`
		args = append(args, filter.Sector)
	}
	if filter.Location != "" {
		query += ` AND location = ?`
		args = append(args, filter.Location)
	}
	query += ` ORDER BY score DESC, created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close() //nolint:errcheck

	var leads []model.Lead
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lead")
		}
		var lead model.Lead
		if err := json.Unmarshal([]byte(data), &lead); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal lead")
		}
		leads = append(leads, lead)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: iterate leads")
}
