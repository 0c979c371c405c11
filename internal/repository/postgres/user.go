package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, name, role, is_banned, COALESCE(ban_reason, ''), is_mentor_banned, COALESCE(mentor_ban_reason, ''), created_on, updated_on`

func scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.IsBanned, &u.BanReason, &u.IsMentorBanned, &u.MentorBanReason, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, name, role, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Name, u.Role, now, now).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, name=$2, role=$3, updated_on=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, u.Email, u.Name, u.Role, time.Now(), u.ID)
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

func (r *userRepository) ListAdmins(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, domain.UserRoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.IsBanned, &u.BanReason, &u.IsMentorBanned, &u.MentorBanReason, &u.CreatedOn, &u.UpdatedOn); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetMentorBan flips the mentor-specific flag pair only. It has no cascading
// side effects and is independent of the platform ban.
func (r *userRepository) SetMentorBan(ctx context.Context, userID int32, banned bool, reason string) error {
	query := `UPDATE users SET is_mentor_banned=$1, mentor_ban_reason=$2, updated_on=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, banned, reason, time.Now(), userID)
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

func (r *userRepository) AwardBadge(ctx context.Context, b *domain.Badge) error {
	query := `INSERT INTO badges (user_id, label, awarded_on) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, b.UserID, b.Label, time.Now()).Scan(&b.ID)
}

func (r *userRepository) ListBadges(ctx context.Context, userID int32) ([]domain.Badge, error) {
	query := `SELECT id, user_id, label, awarded_on FROM badges WHERE user_id = $1 ORDER BY awarded_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []domain.Badge
	for rows.Next() {
		var b domain.Badge
		if err := rows.Scan(&b.ID, &b.UserID, &b.Label, &b.AwardedOn); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}
