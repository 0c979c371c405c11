package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/repository/postgres"
)

func TestReportRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReportRepository(db)
	ctx := context.Background()

	t.Run("New report starts pending", func(t *testing.T) {
		rep := &domain.Report{
			EntityKind: domain.EntityReview,
			EntityID:   9,
			ReporterID: 12,
			ReasonType: domain.ReportReasonSpam,
		}

		mock.ExpectQuery("INSERT INTO reports").
			WithArgs(rep.EntityKind, rep.EntityID, rep.ReporterID, rep.ReasonType, "", domain.ReportStatusPending, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))

		err := repo.Create(ctx, rep)
		assert.NoError(t, err)
		assert.Equal(t, int32(31), rep.ID)
		assert.Equal(t, domain.ReportStatusPending, rep.Status)
	})
}

func TestReportRepository_Resolve(t *testing.T) {
	ctx := context.Background()
	lockQuery := `SELECT entity_kind, entity_id, status FROM reports WHERE id = \$1 FOR UPDATE`
	updateQuery := `UPDATE reports SET status = \$1, admin_note = \$2, resolved_by = \$3, resolved_on = \$4 WHERE id = \$5`

	newRepo := func(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func(context.Context, int32, domain.ReportDecision, int32) error) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		return db, mock, postgres.NewReportRepository(db).Resolve
	}

	t.Run("Rejects a status outside the resolution set", func(t *testing.T) {
		db, _, resolve := newRepo(t)
		defer db.Close()

		err := resolve(ctx, 31, domain.ReportDecision{Status: domain.ReportStatusPending}, 1)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Missing report", func(t *testing.T) {
		db, mock, resolve := newRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(int32(31)).WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := resolve(ctx, 31, domain.ReportDecision{Status: domain.ReportStatusRejected}, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Already resolved report", func(t *testing.T) {
		db, mock, resolve := newRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(int32(31)).
			WillReturnRows(sqlmock.NewRows([]string{"entity_kind", "entity_id", "status"}).
				AddRow(domain.EntityReview, 9, domain.ReportStatusApproved))
		mock.ExpectRollback()

		err := resolve(ctx, 31, domain.ReportDecision{Status: domain.ReportStatusRejected}, 1)
		assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
	})

	t.Run("Reject touches only the report row", func(t *testing.T) {
		db, mock, resolve := newRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(int32(31)).
			WillReturnRows(sqlmock.NewRows([]string{"entity_kind", "entity_id", "status"}).
				AddRow(domain.EntityReview, 9, domain.ReportStatusPending))
		mock.ExpectExec(updateQuery).
			WithArgs(domain.ReportStatusRejected, "not actionable", int32(1), sqlmock.AnyArg(), int32(31)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := resolve(ctx, 31, domain.ReportDecision{Status: domain.ReportStatusRejected, AdminNote: "not actionable"}, 1)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Approve with deletion and ban runs the full workflow", func(t *testing.T) {
		db, mock, resolve := newRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(int32(31)).
			WillReturnRows(sqlmock.NewRows([]string{"entity_kind", "entity_id", "status"}).
				AddRow(domain.EntityReview, 9, domain.ReportStatusPending))

		// Creator is captured before the review is deleted.
		mock.ExpectQuery(`SELECT author_id FROM reviews WHERE id = \$1`).
			WithArgs(int32(9)).
			WillReturnRows(sqlmock.NewRows([]string{"author_id"}).AddRow(42))

		// Review cascade.
		mock.ExpectQuery(`SELECT workplace_id FROM reviews WHERE id = \$1`).
			WithArgs(int32(9)).
			WillReturnRows(sqlmock.NewRows([]string{"workplace_id"}).AddRow(3))
		mock.ExpectExec(`DELETE FROM review_replies WHERE review_id = \$1`).
			WithArgs(int32(9)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM review_policy_ratings WHERE review_id = \$1`).
			WithArgs(int32(9)).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM review_reactions WHERE review_id = \$1`).
			WithArgs(int32(9)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM reviews WHERE id = \$1`).
			WithArgs(int32(9)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE workplaces SET review_count = GREATEST\(review_count - 1, 0\) WHERE id = \$1`).
			WithArgs(int32(3)).WillReturnResult(sqlmock.NewResult(0, 1))

		// Ban cascade for the captured creator.
		mock.ExpectQuery(`SELECT is_banned FROM users WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(42)).
			WillReturnRows(sqlmock.NewRows([]string{"is_banned"}).AddRow(false))
		mock.ExpectExec(`UPDATE users SET is_banned = true`).
			WithArgs("spam content", sqlmock.AnyArg(), int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM profiles WHERE user_id = \$1`).
			WithArgs(int32(42)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM badges WHERE user_id = \$1`).
			WithArgs(int32(42)).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery(`SELECT id FROM mentor_profiles WHERE user_id = \$1`).
			WithArgs(int32(42)).WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(`DELETE FROM job_applications WHERE seeker_id = \$1`).
			WithArgs(int32(42)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT workplace_id FROM employer_workplaces WHERE user_id = \$1 AND role = \$2 ORDER BY workplace_id`).
			WithArgs(int32(42), domain.EmployerRoleOwner).
			WillReturnRows(sqlmock.NewRows([]string{"workplace_id"}))

		mock.ExpectExec(updateQuery).
			WithArgs(domain.ReportStatusApproved, "confirmed spam", int32(1), sqlmock.AnyArg(), int32(31)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		decision := domain.ReportDecision{
			Status:        domain.ReportStatusApproved,
			AdminNote:     "confirmed spam",
			DeleteContent: true,
			BanUser:       true,
			BanReason:     "spam content",
		}
		err := resolve(ctx, 31, decision, 1)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ban is skipped when the creator is gone", func(t *testing.T) {
		db, mock, resolve := newRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(int32(31)).
			WillReturnRows(sqlmock.NewRows([]string{"entity_kind", "entity_id", "status"}).
				AddRow(domain.EntityForumPost, 5, domain.ReportStatusPending))
		mock.ExpectQuery(`SELECT author_id FROM forum_posts WHERE id = \$1`).
			WithArgs(int32(5)).WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(updateQuery).
			WithArgs(domain.ReportStatusApproved, "", int32(1), sqlmock.AnyArg(), int32(31)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		decision := domain.ReportDecision{
			Status:  domain.ReportStatusApproved,
			BanUser: true,
		}
		err := resolve(ctx, 31, decision, 1)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
