package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/model"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/niche"
)

// Run kinds recorded in history.
const (
	RunKindAnalyze = "analyze"
	RunKindSearch  = "search"
)

// Run is one recorded analysis or search, with its full result payload.
type Run struct {
	ID          uuid.UUID              `json:"id"`
	Kind        string                 `json:"kind"`
	Query       string                 `json:"query"`
	ResultCount int                    `json:"result_count"`
	Records     []model.MetricResponse `json:"records,omitempty"`
	Niches      []niche.NicheAggregate `json:"niches,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// RunSummary is the listing view of a run, without payloads.
type RunSummary struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// RunRepo persists analysis runs to Postgres.
type RunRepo struct {
	pool *pgxpool.Pool
}

func NewRunRepo(pool *pgxpool.Pool) *RunRepo {
	return &RunRepo{pool: pool}
}

// Init creates the runs table if it does not exist yet.
func (r *RunRepo) Init(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_runs (
			id           UUID PRIMARY KEY,
			kind         TEXT NOT NULL,
			query        TEXT NOT NULL,
			result_count INT NOT NULL,
			records      JSONB NOT NULL,
			niches       JSONB NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

// Insert records one completed run.
func (r *RunRepo) Insert(ctx context.Context, kind, query string, records []model.MetricResponse, niches []niche.NicheAggregate) error {
	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return err
	}
	nichesJSON, err := json.Marshal(niches)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO analysis_runs (id, kind, query, result_count, records, niches)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), kind, query, len(records), recordsJSON, nichesJSON)
	return err
}

// Latest returns the most recent run including payloads.
func (r *RunRepo) Latest(ctx context.Context) (*Run, error) {
	query := `
		SELECT id, kind, query, result_count, records, niches, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT 1`

	var run Run
	var recordsJSON, nichesJSON []byte
	err := r.pool.QueryRow(ctx, query).Scan(
		&run.ID, &run.Kind, &run.Query, &run.ResultCount,
		&recordsJSON, &nichesJSON, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(recordsJSON, &run.Records); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(nichesJSON, &run.Niches); err != nil {
		return nil, err
	}
	return &run, nil
}

// List returns the newest limit runs without payloads.
func (r *RunRepo) List(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, kind, query, result_count, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Kind, &r.Query, &r.ResultCount, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if runs == nil {
		runs = []RunSummary{}
	}
	return runs, rows.Err()
}

// Count returns the total number of recorded runs.
func (r *RunRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM analysis_runs`).Scan(&n)
	return n, err
}
