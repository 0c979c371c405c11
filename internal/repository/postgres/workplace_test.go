package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/repository/postgres"
)

func TestWorkplaceRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewWorkplaceRepository(db)
	ctx := context.Background()

	t.Run("Links creator as owner", func(t *testing.T) {
		wp := &domain.Workplace{Name: "Acme", Industry: "Software", Website: "https://acme.example"}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO workplaces").
			WithArgs(wp.Name, wp.Industry, wp.Website, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectExec("INSERT INTO employer_workplaces").
			WithArgs(int32(7), int32(42), domain.EmployerRoleOwner, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Create(ctx, wp, 42)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), wp.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWorkplaceRepository_DeleteCascade(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewWorkplaceRepository(db)
	ctx := context.Background()
	workplaceID := int32(3)

	t.Run("Deletes dependents in dependency order", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM workplaces WHERE id = \$1`).
			WithArgs(workplaceID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(workplaceID))

		// The order below is the contract; sqlmock enforces it.
		steps := []string{
			`DELETE FROM job_applications WHERE job_post_id IN \(SELECT id FROM job_posts WHERE workplace_id = \$1\)`,
			`DELETE FROM job_posts WHERE workplace_id = \$1`,
			`DELETE FROM employer_requests WHERE workplace_id = \$1`,
			`DELETE FROM employer_workplaces WHERE workplace_id = \$1`,
			`DELETE FROM review_replies WHERE review_id IN \(SELECT id FROM reviews WHERE workplace_id = \$1\)`,
			`DELETE FROM review_policy_ratings WHERE review_id IN \(SELECT id FROM reviews WHERE workplace_id = \$1\)`,
			`DELETE FROM review_reactions WHERE review_id IN \(SELECT id FROM reviews WHERE workplace_id = \$1\)`,
			`DELETE FROM reviews WHERE workplace_id = \$1`,
			`DELETE FROM workplace_policies WHERE workplace_id = \$1`,
			`DELETE FROM workplaces WHERE id = \$1`,
		}
		for _, step := range steps {
			mock.ExpectExec(step).WithArgs(workplaceID).WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()

		err := repo.DeleteCascade(ctx, workplaceID, "owner banned")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing workplace", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM workplaces WHERE id = \$1`).
			WithArgs(workplaceID).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.DeleteCascade(ctx, workplaceID, "owner banned")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Failed step aborts the transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM workplaces WHERE id = \$1`).
			WithArgs(workplaceID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(workplaceID))
		mock.ExpectExec(`DELETE FROM job_applications`).
			WithArgs(workplaceID).
			WillReturnError(errors.New("deadlock"))
		mock.ExpectRollback()

		err := repo.DeleteCascade(ctx, workplaceID, "owner banned")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "job applications")
	})
}

func TestWorkplaceRepository_RatingSummary(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewWorkplaceRepository(db)
	ctx := context.Background()

	t.Run("Aggregates recomputed by query", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\), COALESCE\(ROUND\(AVG\(overall_rating\)::numeric, 1\), 0\) FROM reviews`).
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(4, 4.2))
		mock.ExpectQuery(`SELECT p.id, p.code, p.label, ROUND\(AVG\(rr.score\)::numeric, 1\)`).
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "code", "label", "avg"}).
				AddRow(1, "PAY_EQUITY", "Pay Equity", 4.5).
				AddRow(2, "REMOTE_WORK", "Remote Work", 3.9))

		summary, err := repo.RatingSummary(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, int32(4), summary.ReviewCount)
		assert.Equal(t, 4.2, summary.OverallAverage)
		assert.Len(t, summary.PolicyAverages, 2)
		assert.Equal(t, "Pay Equity", summary.PolicyAverages[0].Label)
	})
}
