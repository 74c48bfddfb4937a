package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo on Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	now := time.Now().UTC()
	tier := user.PlanTier
	if tier == "" {
		tier = "free"
	}
	_, err := r.DB.ExecContext(ctx, `
INSERT INTO users (id, email, full_name, picture_url, plan_tier, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (id) DO UPDATE SET
    email = EXCLUDED.email,
    full_name = EXCLUDED.full_name,
    picture_url = EXCLUDED.picture_url,
    plan_tier = CASE WHEN $7 THEN EXCLUDED.plan_tier ELSE users.plan_tier END,
    updated_at = EXCLUDED.updated_at`,
		user.ID, user.Email, user.FullName, user.PictureURL, tier, now, user.PlanTier != "")
	if err != nil {
		return fmt.Errorf("users upsert id=%s: %w", user.ID, err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	var u User
	row := r.DB.QueryRowContext(ctx, `
SELECT id, email, full_name, picture_url, plan_tier, created_at, updated_at
FROM users WHERE id = $1`, userID)
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PictureURL, &u.PlanTier, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("users get id=%s: %w", userID, err)
	}
	return u, nil
}

var _ Repo = (*PGRepo)(nil)
