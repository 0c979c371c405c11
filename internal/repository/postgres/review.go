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

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, workplace_id, author_id, title, body, overall_rating, helpful_count, created_on, updated_on`

func (r *reviewRepository) CreateWithRatings(ctx context.Context, review *domain.Review, ratings []domain.ReviewPolicyRating) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO reviews (workplace_id, author_id, title, body, overall_rating, helpful_count, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, 0, $6, $7) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, review.WorkplaceID, review.AuthorID, review.Title, review.Body, review.OverallRating, now, now).Scan(&review.ID); err != nil {
		return err
	}

	for _, rating := range ratings {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO review_policy_ratings (review_id, policy_id, score) VALUES ($1, $2, $3)`,
			review.ID, rating.PolicyID, rating.Score)
		if err != nil {
			return err
		}
	}

	// Eager counter: +1 on creation, -1 floored at zero on deletion.
	_, err = tx.ExecContext(ctx, `UPDATE workplaces SET review_count = review_count + 1 WHERE id = $1`, review.WorkplaceID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *reviewRepository) GetByID(ctx context.Context, id int32) (*domain.Review, error) {
	rev := &domain.Review{}
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rev.ID, &rev.WorkplaceID, &rev.AuthorID, &rev.Title, &rev.Body, &rev.OverallRating, &rev.HelpfulCount, &rev.CreatedOn, &rev.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rev, nil
}

func (r *reviewRepository) ListByWorkplace(ctx context.Context, workplaceID int32, page, pageSize int32) ([]domain.Review, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM reviews WHERE workplace_id = $1`, workplaceID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE workplace_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, workplaceID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.WorkplaceID, &rev.AuthorID, &rev.Title, &rev.Body, &rev.OverallRating, &rev.HelpfulCount, &rev.CreatedOn, &rev.UpdatedOn); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, count, rows.Err()
}

func (r *reviewRepository) GetRatings(ctx context.Context, reviewID int32) ([]domain.ReviewPolicyRating, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT review_id, policy_id, score FROM review_policy_ratings WHERE review_id = $1 ORDER BY policy_id`, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []domain.ReviewPolicyRating
	for rows.Next() {
		var rating domain.ReviewPolicyRating
		if err := rows.Scan(&rating.ReviewID, &rating.PolicyID, &rating.Score); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

// UpdateWithRatings upserts the submitted rating entries and recomputes the
// overall rating from the full current rating set, never from the request
// alone, so omitted entries stay in the average.
func (r *reviewRepository) UpdateWithRatings(ctx context.Context, review *domain.Review, upserts []domain.ReviewPolicyRating) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE reviews SET title=$1, body=$2, updated_on=$3 WHERE id=$4`,
		review.Title, review.Body, time.Now(), review.ID)
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

	for _, rating := range upserts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO review_policy_ratings (review_id, policy_id, score) VALUES ($1, $2, $3)
			 ON CONFLICT (review_id, policy_id) DO UPDATE SET score = EXCLUDED.score`,
			review.ID, rating.PolicyID, rating.Score)
		if err != nil {
			return err
		}
	}

	err = tx.QueryRowContext(ctx,
		`UPDATE reviews SET overall_rating = (
		     SELECT LEAST(5, GREATEST(1, ROUND(AVG(score)::numeric, 1)))
		     FROM review_policy_ratings WHERE review_id = $1
		 ) WHERE id = $1 RETURNING overall_rating`, review.ID).Scan(&review.OverallRating)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *reviewRepository) DeleteCascade(ctx context.Context, id int32, reason string) error {
	logger.Info("cascading review delete", "review_id", id, "reason", reason)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteReviewTx(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// deleteReviewTx removes a review with its reply, ratings, and reactions,
// then decrements the workplace review counter, floored at zero.
func deleteReviewTx(ctx context.Context, q dbtx, id int32) error {
	var workplaceID int32
	if err := q.QueryRowContext(ctx, `SELECT workplace_id FROM reviews WHERE id = $1`, id).Scan(&workplaceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM review_replies WHERE review_id = $1`, id); err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM review_policy_ratings WHERE review_id = $1`, id); err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM review_reactions WHERE review_id = $1`, id); err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id); err != nil {
		return err
	}
	_, err := q.ExecContext(ctx, `UPDATE workplaces SET review_count = GREATEST(review_count - 1, 0) WHERE id = $1`, workplaceID)
	return err
}

func (r *reviewRepository) CreateReply(ctx context.Context, reply *domain.ReviewReply) error {
	query := `INSERT INTO review_replies (review_id, author_id, body, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, reply.ReviewID, reply.AuthorID, reply.Body, time.Now()).Scan(&reply.ID)
}

func (r *reviewRepository) GetReplyByID(ctx context.Context, id int32) (*domain.ReviewReply, error) {
	return r.scanReply(r.db.QueryRowContext(ctx,
		`SELECT id, review_id, author_id, body, created_on FROM review_replies WHERE id = $1`, id))
}

func (r *reviewRepository) GetReplyByReviewID(ctx context.Context, reviewID int32) (*domain.ReviewReply, error) {
	return r.scanReply(r.db.QueryRowContext(ctx,
		`SELECT id, review_id, author_id, body, created_on FROM review_replies WHERE review_id = $1`, reviewID))
}

func (r *reviewRepository) scanReply(row *sql.Row) (*domain.ReviewReply, error) {
	reply := &domain.ReviewReply{}
	err := row.Scan(&reply.ID, &reply.ReviewID, &reply.AuthorID, &reply.Body, &reply.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reply, nil
}

func (r *reviewRepository) DeleteReply(ctx context.Context, id int32, reason string) error {
	logger.Info("deleting review reply", "reply_id", id, "reason", reason)
	return deleteReviewReplyTx(ctx, r.db, id)
}

// deleteReviewReplyTx deletes a reply by id with no further fan-out.
func deleteReviewReplyTx(ctx context.Context, q dbtx, id int32) error {
	res, err := q.ExecContext(ctx, `DELETE FROM review_replies WHERE id = $1`, id)
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

func (r *reviewRepository) SetHelpful(ctx context.Context, reviewID, userID int32, helpful bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if helpful {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO review_reactions (review_id, user_id, created_on) VALUES ($1, $2, $3)
			 ON CONFLICT (review_id, user_id) DO NOTHING`,
			reviewID, userID, time.Now())
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			// Already marked helpful; nothing to recount.
			return tx.Commit()
		}
	} else {
		res, err := tx.ExecContext(ctx, `DELETE FROM review_reactions WHERE review_id = $1 AND user_id = $2`, reviewID, userID)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return tx.Commit()
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE reviews SET helpful_count = (SELECT count(*) FROM review_reactions WHERE review_id = $1) WHERE id = $1`,
		reviewID)
	if err != nil {
		return err
	}
	return tx.Commit()
}
