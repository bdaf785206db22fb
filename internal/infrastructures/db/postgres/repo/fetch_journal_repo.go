package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tojlon/Soccer-Score/internal/domain/models"
)

type FetchJournal struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*FetchJournal, error) {
	poolCfg, err := buildPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &FetchJournal{db: pool}, nil
}

func buildPoolConfig(dsn string) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx pool config: %w", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.StatementCacheCapacity = 0
	poolCfg.ConnConfig.DescriptionCacheCapacity = 0
	poolCfg.MaxConns = 4

	return poolCfg, nil
}

func (j *FetchJournal) Close() {
	j.db.Close()
}

// Record stores fetch metadata only; match rows never reach the database.
func (j *FetchJournal) Record(ctx context.Context, entry models.FetchEntry) error {
	const query = `
		INSERT INTO fetch_journal (
			competition_id,
			status_code,
			match_count,
			skipped_count,
			duration_ms,
			error,
			fetched_at
		)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	`

	_, err := j.db.Exec(ctx, query, recordArgs(entry)...)
	if err != nil {
		return fmt.Errorf("insert fetch journal entry: %w", err)
	}

	return nil
}

func recordArgs(entry models.FetchEntry) []any {
	fetchedAt := entry.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	return []any{
		int(entry.CompetitionID),
		entry.StatusCode,
		entry.MatchCount,
		entry.SkippedCount,
		entry.Duration.Milliseconds(),
		entry.Err,
		fetchedAt.UTC(),
	}
}
