package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"career-backend/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

const profileColumns = `user_id, name, email, skills, experience, interests, ats_score,
  notify_weekly_summary, notify_job_alerts, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) Get(ctx context.Context, userID string) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return scanProfile(r.DB.QueryRowContext(ctx, query, userID))
}

// Update locks the row for the duration of fn so concurrent merge writes do not interleave.
func (r *PGRepo) Update(ctx context.Context, userID string, fn func(*Profile) error) (Profile, error) {
	var out Profile
	err := db.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1 FOR UPDATE`
		current, err := scanProfile(tx.QueryRowContext(ctx, query, userID))
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if errors.Is(err, ErrNotFound) {
			current = Profile{UserID: userID}
		}
		if err := fn(&current); err != nil {
			return err
		}

		const upsert = `
INSERT INTO profiles (user_id, name, email, skills, experience, interests, ats_score,
  notify_weekly_summary, notify_job_alerts, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  name = EXCLUDED.name,
  email = EXCLUDED.email,
  skills = EXCLUDED.skills,
  experience = EXCLUDED.experience,
  interests = EXCLUDED.interests,
  ats_score = EXCLUDED.ats_score,
  notify_weekly_summary = EXCLUDED.notify_weekly_summary,
  notify_job_alerts = EXCLUDED.notify_job_alerts,
  updated_at = now()
RETURNING ` + profileColumns
		out, err = scanProfile(tx.QueryRowContext(ctx, upsert,
			userID,
			current.Name,
			current.Email,
			current.Skills,
			current.Experience,
			current.Interests,
			nullableInt(current.ATSScore),
			current.Notifications.WeeklySummary,
			current.Notifications.JobAlerts,
		))
		if err != nil {
			return fmt.Errorf("upsert profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return Profile{}, err
	}
	return out, nil
}

func (r *PGRepo) Delete(ctx context.Context, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProfile(row rowScanner) (Profile, error) {
	var p Profile
	var ats sql.NullInt64
	err := row.Scan(
		&p.UserID,
		&p.Name,
		&p.Email,
		&p.Skills,
		&p.Experience,
		&p.Interests,
		&ats,
		&p.Notifications.WeeklySummary,
		&p.Notifications.JobAlerts,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	if ats.Valid {
		v := int(ats.Int64)
		p.ATSScore = &v
	}
	return p, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
