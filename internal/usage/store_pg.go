package usage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGLedger implements Ledger on Postgres. The consume path is a single
// conditional upsert, so the test and the increment happen in one statement
// and concurrent requests serialize on the row.
type PGLedger struct {
	DB *sql.DB
}

// NewPGLedger constructs a Postgres-backed ledger.
func NewPGLedger(db *sql.DB) *PGLedger {
	return &PGLedger{DB: db}
}

const tryConsumeSQL = `
INSERT INTO usage_daily (user_id, usage_date, usage_count)
VALUES ($1, $2, 1)
ON CONFLICT (user_id, usage_date)
DO UPDATE SET usage_count = usage_daily.usage_count + 1
WHERE usage_daily.usage_count < $3
RETURNING usage_count`

func (l *PGLedger) TryConsume(ctx context.Context, userID, day string, limit int) (Consumption, error) {
	if limit <= 0 {
		return Consumption{Allowed: false, Remaining: 0}, nil
	}

	var count int
	err := l.DB.QueryRowContext(ctx, tryConsumeSQL, userID, day, limit).Scan(&count)
	if err == nil {
		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}
		return Consumption{Allowed: true, Remaining: remaining}, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		// Conditional update declined: the counter is at or over the limit.
		return Consumption{Allowed: false, Remaining: 0}, nil
	}
	return Consumption{}, fmt.Errorf("usage try consume user=%s day=%s: %w", userID, day, err)
}

func (l *PGLedger) UsedOn(ctx context.Context, userID, day string) (int, error) {
	var count int
	err := l.DB.QueryRowContext(ctx,
		`SELECT usage_count FROM usage_daily WHERE user_id = $1 AND usage_date = $2`,
		userID, day).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("usage read user=%s day=%s: %w", userID, day, err)
	}
	return count, nil
}

func (l *PGLedger) Reset(ctx context.Context, userID, day string) error {
	if _, err := l.DB.ExecContext(ctx,
		`DELETE FROM usage_daily WHERE user_id = $1 AND usage_date = $2`,
		userID, day); err != nil {
		return fmt.Errorf("usage reset user=%s day=%s: %w", userID, day, err)
	}
	return nil
}

var _ Ledger = (*PGLedger)(nil)
