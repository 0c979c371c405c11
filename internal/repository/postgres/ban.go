package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/logger"
	"worklens-backend/internal/repository"
)

type banEngine struct {
	db *sql.DB
}

func NewBanEngine(db *sql.DB) repository.BanEngine {
	return &banEngine{db: db}
}

func (e *banEngine) Ban(ctx context.Context, userID int32, reason string) error {
	logger.Info("banning user", "user_id", userID, "reason", reason)

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := banUserTx(ctx, tx, userID, reason); err != nil {
		return err
	}
	return tx.Commit()
}

// banUserTx runs the full ban cascade as one atomic sequence. Forum posts,
// comments, reviews, and replies authored by the user are deliberately left
// in place; they render under a banned-user placeholder.
func banUserTx(ctx context.Context, q dbtx, userID int32, reason string) error {
	var isBanned bool
	err := q.QueryRowContext(ctx, `SELECT is_banned FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&isBanned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if isBanned {
		return domain.ErrAlreadyBanned
	}

	// The flag goes first: later steps run with the user already banned.
	_, err = q.ExecContext(ctx, `UPDATE users SET is_banned = true, ban_reason = $1, updated_on = $2 WHERE id = $3`,
		reason, time.Now(), userID)
	if err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("ban cascade failed deleting profile: %w", err)
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM badges WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("ban cascade failed deleting badges: %w", err)
	}

	var mentorID int32
	err = q.QueryRowContext(ctx, `SELECT id FROM mentor_profiles WHERE user_id = $1`, userID).Scan(&mentorID)
	switch {
	case err == nil:
		// Force delete: the zero-mentee guard does not apply here.
		if _, err := q.ExecContext(ctx, `DELETE FROM mentorship_requests WHERE mentor_id = $1`, mentorID); err != nil {
			return fmt.Errorf("ban cascade failed deleting mentorship requests: %w", err)
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM mentor_profiles WHERE id = $1`, mentorID); err != nil {
			return fmt.Errorf("ban cascade failed deleting mentor profile: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		// Not a mentor.
	default:
		return err
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM job_applications WHERE seeker_id = $1`, userID); err != nil {
		return fmt.Errorf("ban cascade failed deleting job applications: %w", err)
	}

	// Every workplace the user OWNS is fully cascaded, each independently.
	// Workplaces where the user is only a MANAGER are untouched.
	ownedIDs, err := ownedWorkplaceIDs(ctx, q, userID)
	if err != nil {
		return err
	}
	for _, workplaceID := range ownedIDs {
		logger.Info("cascading owned workplace", "workplace_id", workplaceID, "reason", "Owner banned: "+reason)
		if err := deleteWorkplaceTx(ctx, q, workplaceID); err != nil {
			return fmt.Errorf("ban cascade failed on workplace %d: %w", workplaceID, err)
		}
	}
	return nil
}

// Unban reverses the flag pair only. The cascade's deletions are permanent
// and are not restored.
func (e *banEngine) Unban(ctx context.Context, userID int32) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var isBanned bool
	err = tx.QueryRowContext(ctx, `SELECT is_banned FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&isBanned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if !isBanned {
		return domain.ErrNotBanned
	}

	_, err = tx.ExecContext(ctx, `UPDATE users SET is_banned = false, ban_reason = NULL, updated_on = $1 WHERE id = $2`,
		time.Now(), userID)
	if err != nil {
		return err
	}
	return tx.Commit()
}
