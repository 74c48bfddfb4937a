package profiles

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

func (r *PGRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	row := r.DB.QueryRowContext(ctx, `
SELECT user_id, full_name, resume_text, resume_file_key, preferred_tone, target_role, location, updated_at
FROM profiles WHERE user_id = $1`, userID)
	err := row.Scan(&p.UserID, &p.FullName, &p.ResumeText, &p.ResumeFileKey,
		&p.PreferredTone, &p.TargetRole, &p.Location, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("profiles get user=%s: %w", userID, err)
	}
	return p, nil
}

func (r *PGRepo) Upsert(ctx context.Context, profile Profile) error {
	now := time.Now().UTC()
	_, err := r.DB.ExecContext(ctx, `
INSERT INTO profiles (user_id, full_name, resume_text, resume_file_key, preferred_tone, target_role, location, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id) DO UPDATE SET
    full_name = EXCLUDED.full_name,
    resume_text = EXCLUDED.resume_text,
    resume_file_key = EXCLUDED.resume_file_key,
    preferred_tone = EXCLUDED.preferred_tone,
    target_role = EXCLUDED.target_role,
    location = EXCLUDED.location,
    updated_at = EXCLUDED.updated_at`,
		profile.UserID, profile.FullName, profile.ResumeText, profile.ResumeFileKey,
		profile.PreferredTone, profile.TargetRole, profile.Location, now)
	if err != nil {
		return fmt.Errorf("profiles upsert user=%s: %w", profile.UserID, err)
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
