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

type mentorRepository struct {
	db *sql.DB
}

func NewMentorRepository(db *sql.DB) repository.MentorRepository {
	return &mentorRepository{db: db}
}

const mentorColumns = `id, user_id, topics, max_mentees, current_mentees, created_on, updated_on`

func scanMentorProfile(row *sql.Row) (*domain.MentorProfile, error) {
	m := &domain.MentorProfile{}
	err := row.Scan(&m.ID, &m.UserID, &m.Topics, &m.MaxMentees, &m.CurrentMentees, &m.CreatedOn, &m.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *mentorRepository) CreateProfile(ctx context.Context, m *domain.MentorProfile) error {
	query := `INSERT INTO mentor_profiles (user_id, topics, max_mentees, current_mentees, created_on, updated_on)
	          VALUES ($1, $2, $3, 0, $4, $5) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, m.UserID, m.Topics, m.MaxMentees, now, now).Scan(&m.ID)
}

func (r *mentorRepository) GetProfileByID(ctx context.Context, id int32) (*domain.MentorProfile, error) {
	return scanMentorProfile(r.db.QueryRowContext(ctx, `SELECT `+mentorColumns+` FROM mentor_profiles WHERE id = $1`, id))
}

func (r *mentorRepository) GetProfileByUserID(ctx context.Context, userID int32) (*domain.MentorProfile, error) {
	return scanMentorProfile(r.db.QueryRowContext(ctx, `SELECT `+mentorColumns+` FROM mentor_profiles WHERE user_id = $1`, userID))
}

func (r *mentorRepository) UpdateProfile(ctx context.Context, m *domain.MentorProfile) error {
	query := `UPDATE mentor_profiles SET topics=$1, max_mentees=$2, updated_on=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, m.Topics, m.MaxMentees, time.Now(), m.ID)
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

func (r *mentorRepository) DeleteProfile(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM mentor_profiles WHERE id = $1`, id)
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

func (r *mentorRepository) ForceDeleteCascade(ctx context.Context, id int32, reason string) error {
	logger.Info("force deleting mentor profile", "mentor_profile_id", id, "reason", reason)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteMentorProfileTx(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// deleteMentorProfileTx removes every mentorship request addressed to the
// mentor, then the profile itself. It does not consult the mentee counter;
// only self-service deletion enforces that guard.
func deleteMentorProfileTx(ctx context.Context, q dbtx, id int32) error {
	var existing int32
	if err := q.QueryRowContext(ctx, `SELECT id FROM mentor_profiles WHERE id = $1`, id).Scan(&existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM mentorship_requests WHERE mentor_id = $1`, id); err != nil {
		return err
	}
	_, err := q.ExecContext(ctx, `DELETE FROM mentor_profiles WHERE id = $1`, id)
	return err
}

func (r *mentorRepository) CreateRequest(ctx context.Context, req *domain.MentorshipRequest) error {
	query := `INSERT INTO mentorship_requests (mentor_id, mentee_id, message, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	req.Status = domain.MentorshipRequestPending
	return r.db.QueryRowContext(ctx, query, req.MentorID, req.MenteeID, req.Message, req.Status, now, now).Scan(&req.ID)
}

func (r *mentorRepository) GetRequest(ctx context.Context, id int32) (*domain.MentorshipRequest, error) {
	req := &domain.MentorshipRequest{}
	query := `SELECT id, mentor_id, mentee_id, COALESCE(message, ''), status, created_on, updated_on FROM mentorship_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.MentorID, &req.MenteeID, &req.Message, &req.Status, &req.CreatedOn, &req.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *mentorRepository) ListRequestsByMentor(ctx context.Context, mentorID int32) ([]domain.MentorshipRequest, error) {
	query := `SELECT id, mentor_id, mentee_id, COALESCE(message, ''), status, created_on, updated_on
	          FROM mentorship_requests WHERE mentor_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.MentorshipRequest
	for rows.Next() {
		var req domain.MentorshipRequest
		if err := rows.Scan(&req.ID, &req.MentorID, &req.MenteeID, &req.Message, &req.Status, &req.CreatedOn, &req.UpdatedOn); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// AcceptRequest accepts a pending request and takes a mentee slot in the
// same transaction. The capacity check happens in the counter update so two
// concurrent accepts cannot overshoot max_mentees.
func (r *mentorRepository) AcceptRequest(ctx context.Context, requestID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var mentorID int32
	var status domain.MentorshipRequestStatus
	err = tx.QueryRowContext(ctx, `SELECT mentor_id, status FROM mentorship_requests WHERE id = $1 FOR UPDATE`, requestID).Scan(&mentorID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if status != domain.MentorshipRequestPending {
		return domain.ErrValidation
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE mentor_profiles SET current_mentees = current_mentees + 1, updated_on = $1
		 WHERE id = $2 AND current_mentees < max_mentees`, time.Now(), mentorID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrValidation
	}

	_, err = tx.ExecContext(ctx, `UPDATE mentorship_requests SET status=$1, updated_on=$2 WHERE id=$3`,
		domain.MentorshipRequestAccepted, time.Now(), requestID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *mentorRepository) DeclineRequest(ctx context.Context, requestID int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE mentorship_requests SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`,
		domain.MentorshipRequestDeclined, time.Now(), requestID, domain.MentorshipRequestPending)
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

func (r *mentorRepository) EndMentorship(ctx context.Context, requestID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var mentorID int32
	var status domain.MentorshipRequestStatus
	err = tx.QueryRowContext(ctx, `SELECT mentor_id, status FROM mentorship_requests WHERE id = $1 FOR UPDATE`, requestID).Scan(&mentorID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if status != domain.MentorshipRequestAccepted {
		return domain.ErrValidation
	}

	_, err = tx.ExecContext(ctx, `UPDATE mentorship_requests SET status=$1, updated_on=$2 WHERE id=$3`,
		domain.MentorshipRequestEnded, time.Now(), requestID)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE mentor_profiles SET current_mentees = GREATEST(current_mentees - 1, 0), updated_on = $1 WHERE id = $2`,
		time.Now(), mentorID)
	if err != nil {
		return err
	}
	return tx.Commit()
}
