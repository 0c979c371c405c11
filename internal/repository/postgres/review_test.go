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

func TestReviewRepository_CreateWithRatings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReviewRepository(db)
	ctx := context.Background()

	t.Run("Inserts ratings and bumps the workplace counter", func(t *testing.T) {
		review := &domain.Review{
			WorkplaceID:   3,
			AuthorID:      12,
			Title:         "Solid place",
			Body:          "Good pay, flexible hours.",
			OverallRating: 4.5,
		}
		ratings := []domain.ReviewPolicyRating{
			{PolicyID: 1, Score: 4},
			{PolicyID: 2, Score: 5},
		}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO reviews").
			WithArgs(review.WorkplaceID, review.AuthorID, review.Title, review.Body, review.OverallRating, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
		mock.ExpectExec("INSERT INTO review_policy_ratings").
			WithArgs(int32(9), int32(1), int32(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO review_policy_ratings").
			WithArgs(int32(9), int32(2), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE workplaces SET review_count = review_count \+ 1 WHERE id = \$1`).
			WithArgs(review.WorkplaceID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateWithRatings(ctx, review, ratings)
		assert.NoError(t, err)
		assert.Equal(t, int32(9), review.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReviewRepository_DeleteCascade(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReviewRepository(db)
	ctx := context.Background()
	reviewID := int32(9)

	t.Run("Removes dependents and decrements the counter with a floor", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT workplace_id FROM reviews WHERE id = \$1`).
			WithArgs(reviewID).
			WillReturnRows(sqlmock.NewRows([]string{"workplace_id"}).AddRow(3))
		mock.ExpectExec(`DELETE FROM review_replies WHERE review_id = \$1`).
			WithArgs(reviewID).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM review_policy_ratings WHERE review_id = \$1`).
			WithArgs(reviewID).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM review_reactions WHERE review_id = \$1`).
			WithArgs(reviewID).WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec(`DELETE FROM reviews WHERE id = \$1`).
			WithArgs(reviewID).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE workplaces SET review_count = GREATEST\(review_count - 1, 0\) WHERE id = \$1`).
			WithArgs(int32(3)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteCascade(ctx, reviewID, "deleted by author")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing review", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT workplace_id FROM reviews WHERE id = \$1`).
			WithArgs(reviewID).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.DeleteCascade(ctx, reviewID, "deleted by author")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReviewRepository_SetHelpful(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReviewRepository(db)
	ctx := context.Background()

	t.Run("Duplicate helpful mark is a no-op", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO review_reactions").
			WithArgs(int32(9), int32(12), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.SetHelpful(ctx, 9, 12, true)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
