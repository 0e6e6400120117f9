package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/leadscout/leadscout/internal/apperr"
	"github.com/leadscout/leadscout/internal/model"
)

// Pool is the subset of pgxpool.Pool used by PostgresStore. It is satisfied
// by pgxmock in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool creates a PostgresStore around an existing pool,
// used by tests to inject pgxmock.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool, closeFn: func() {}}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS searches (
	id         TEXT PRIMARY KEY,
	sector     TEXT NOT NULL,
	location   TEXT NOT NULL,
	lead_count INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS leads (
	id            TEXT PRIMARY KEY,
	search_id     TEXT NOT NULL REFERENCES searches(id),
	business_name TEXT NOT NULL,
	sector        TEXT NOT NULL,
	location      TEXT NOT NULL,
	score         INTEGER NOT NULL DEFAULT 0,
	data          JSONB NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_searches_sector_location ON searches(sector, location);
CREATE INDEX IF NOT EXISTS idx_leads_search_id ON leads(search_id);
CREATE INDEX IF NOT EXISTS idx_leads_sector_location ON leads(sector, location);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.closeFn()
	return nil
}

func (s *PostgresStore) CreateSearch(ctx context.Context, sector, location string, leadCount int) (*model.SearchRun, error) {
	run := &model.SearchRun{
		ID:        uuid.New().String(),
		Sector:    sector,
		Location:  location,
		LeadCount: leadCount,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO searches (id, sector, location, lead_count, created_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.Sector, run.Location, run.LeadCount, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert search")
	}
	return run, nil
}

func (s *PostgresStore) ListSearches(ctx context.Context, limit int) ([]model.SearchRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, sector, location, lead_count, created_at FROM searches ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list searches")
	}
	defer rows.Close()

	var runs []model.SearchRun
	for rows.Next() {
		var r model.SearchRun
		if err := rows.Scan(&r.ID, &r.Sector, &r.Location, &r.LeadCount, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan search")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate searches")
}

func (s *PostgresStore) SaveLeads(ctx context.Context, searchID string, leads []model.Lead) error {
	now := time.Now().UTC()
	for _, lead := range leads {
		data, err := json.Marshal(lead)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal lead %s", lead.ID)
		}
		_, err = s.pool.Exec(ctx, `
			INSERT INTO leads (id, search_id, business_name, sector, location, score, data, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				search_id = EXCLUDED.search_id,
				business_name = EXCLUDED.business_name,
				score = EXCLUDED.score,
				data = EXCLUDED.data`,
			lead.ID, searchID, lead.BusinessName, lead.BusinessType, lead.Location, lead.VerificationScore, data, now,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: upsert lead %s", lead.ID)
		}
	}
	return nil
}

func (s *PostgresStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM leads WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("lead %q not found", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get lead %s", id)
	}

	var lead model.Lead
	if err := json.Unmarshal(data, &lead); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal lead %s", id)
	}
	return &lead, nil
}

func (s *PostgresStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT data FROM leads WHERE 1=1`
	var args []any

	if filter.Sector != "" {
		args = append(args, filter.Sector)
		query += ` AND sector = $` + strconv.Itoa(len(args))
	}
	if filter.Location != "" {
		args = append(args, filter.Location)
		query += ` AND location = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY score DESC, created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		var lead model.Lead
		if err := json.Unmarshal(data, &lead); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal lead")
		}
		leads = append(leads, lead)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: iterate leads")
}
