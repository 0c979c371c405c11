package postgres

import (
	"context"
	"database/sql"

	"worklens-backend/internal/repository"

	_ "github.com/lib/pq"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so cascade helpers and the
// registry can run standalone or inside an enclosing transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProfileRepository
	repository.WorkplaceRepository
	repository.ReviewRepository
	repository.JobRepository
	repository.MentorRepository
	repository.ForumRepository
	repository.ContentRegistry
	repository.BanEngine
	repository.ReportRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ProfileRepository:      NewProfileRepository(db),
		WorkplaceRepository:    NewWorkplaceRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		JobRepository:          NewJobRepository(db),
		MentorRepository:       NewMentorRepository(db),
		ForumRepository:        NewForumRepository(db),
		ContentRegistry:        NewContentRegistry(db),
		BanEngine:              NewBanEngine(db),
		ReportRepository:       NewReportRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
