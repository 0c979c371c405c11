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

type forumRepository struct {
	db *sql.DB
}

func NewForumRepository(db *sql.DB) repository.ForumRepository {
	return &forumRepository{db: db}
}

func (r *forumRepository) CreatePost(ctx context.Context, p *domain.ForumPost) error {
	query := `INSERT INTO forum_posts (author_id, title, body, created_on, updated_on) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, p.AuthorID, p.Title, p.Body, now, now).Scan(&p.ID)
}

func (r *forumRepository) GetPost(ctx context.Context, id int32) (*domain.ForumPost, error) {
	p := &domain.ForumPost{}
	query := `SELECT id, author_id, title, body, created_on, updated_on FROM forum_posts WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *forumRepository) UpdatePost(ctx context.Context, p *domain.ForumPost) error {
	res, err := r.db.ExecContext(ctx, `UPDATE forum_posts SET title=$1, body=$2, updated_on=$3 WHERE id=$4`,
		p.Title, p.Body, time.Now(), p.ID)
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

func (r *forumRepository) ListPosts(ctx context.Context, page, pageSize int32) ([]domain.ForumPost, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM forum_posts`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, author_id, title, body, created_on, updated_on FROM forum_posts ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []domain.ForumPost
	for rows.Next() {
		var p domain.ForumPost
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	return posts, count, rows.Err()
}

func (r *forumRepository) DeletePostCascade(ctx context.Context, id int32, reason string) error {
	logger.Info("cascading forum post delete", "forum_post_id", id, "reason", reason)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteForumPostTx(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// deleteForumPostTx removes the post's comments, then the post.
func deleteForumPostTx(ctx context.Context, q dbtx, id int32) error {
	var existing int32
	if err := q.QueryRowContext(ctx, `SELECT id FROM forum_posts WHERE id = $1`, id).Scan(&existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM forum_comments WHERE post_id = $1`, id); err != nil {
		return err
	}
	_, err := q.ExecContext(ctx, `DELETE FROM forum_posts WHERE id = $1`, id)
	return err
}

func (r *forumRepository) CreateComment(ctx context.Context, c *domain.ForumComment) error {
	query := `INSERT INTO forum_comments (post_id, author_id, body, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.PostID, c.AuthorID, c.Body, time.Now()).Scan(&c.ID)
}

func (r *forumRepository) GetComment(ctx context.Context, id int32) (*domain.ForumComment, error) {
	c := &domain.ForumComment{}
	query := `SELECT id, post_id, author_id, body, created_on FROM forum_comments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *forumRepository) ListCommentsByPost(ctx context.Context, postID int32) ([]domain.ForumComment, error) {
	query := `SELECT id, post_id, author_id, body, created_on FROM forum_comments WHERE post_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.ForumComment
	for rows.Next() {
		var c domain.ForumComment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.CreatedOn); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *forumRepository) DeleteComment(ctx context.Context, id int32, reason string) error {
	logger.Info("deleting forum comment", "forum_comment_id", id, "reason", reason)
	return deleteForumCommentTx(ctx, r.db, id)
}

// deleteForumCommentTx deletes a comment by id with no fan-out.
func deleteForumCommentTx(ctx context.Context, q dbtx, id int32) error {
	res, err := q.ExecContext(ctx, `DELETE FROM forum_comments WHERE id = $1`, id)
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
