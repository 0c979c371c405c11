package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/logger"
	"worklens-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, user_id, headline, bio, location, years_experience, created_on, updated_on`

func scanProfile(row *sql.Row) (*domain.Profile, error) {
	p := &domain.Profile{}
	err := row.Scan(&p.ID, &p.UserID, &p.Headline, &p.Bio, &p.Location, &p.YearsExperience, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (user_id, headline, bio, location, years_experience, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, p.UserID, p.Headline, p.Bio, p.Location, p.YearsExperience, now, now).Scan(&p.ID)
}

func (r *profileRepository) GetByID(ctx context.Context, id int32) (*domain.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int32) (*domain.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE profiles SET headline=$1, bio=$2, location=$3, years_experience=$4, updated_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, p.Headline, p.Bio, p.Location, p.YearsExperience, time.Now(), p.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id int32, reason string) error {
	logger.Info("deleting profile", "profile_id", id, "reason", reason)
	return deleteProfileTx(ctx, r.db, id)
}

// deleteProfileTx is the cascade handler for profiles: a single-entity
// delete with no fan-out.
func deleteProfileTx(ctx context.Context, q dbtx, id int32) error {
	res, err := q.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
