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

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

const jobPostColumns = `id, workplace_id, employer_id, title, description, location, salary_min_cents, salary_max_cents, status, expires_on, created_on, updated_on`

func (r *jobRepository) CreatePost(ctx context.Context, p *domain.JobPost) error {
	query := `INSERT INTO job_posts (workplace_id, employer_id, title, description, location, salary_min_cents, salary_max_cents, status, expires_on, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	if p.Status == "" {
		p.Status = domain.JobPostStatusOpen
	}
	return r.db.QueryRowContext(ctx, query, p.WorkplaceID, p.EmployerID, p.Title, p.Description, p.Location, p.SalaryMinCents, p.SalaryMaxCents, p.Status, p.ExpiresOn, now, now).Scan(&p.ID)
}

func (r *jobRepository) GetPost(ctx context.Context, id int32) (*domain.JobPost, error) {
	p := &domain.JobPost{}
	query := `SELECT ` + jobPostColumns + ` FROM job_posts WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.WorkplaceID, &p.EmployerID, &p.Title, &p.Description, &p.Location, &p.SalaryMinCents, &p.SalaryMaxCents, &p.Status, &p.ExpiresOn, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *jobRepository) UpdatePost(ctx context.Context, p *domain.JobPost) error {
	query := `UPDATE job_posts SET title=$1, description=$2, location=$3, salary_min_cents=$4, salary_max_cents=$5, status=$6, expires_on=$7, updated_on=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, p.Title, p.Description, p.Location, p.SalaryMinCents, p.SalaryMaxCents, p.Status, p.ExpiresOn, time.Now(), p.ID)
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

func (r *jobRepository) ListPostsByWorkplace(ctx context.Context, workplaceID int32, page, pageSize int32) ([]domain.JobPost, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM job_posts WHERE workplace_id = $1`, workplaceID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + jobPostColumns + ` FROM job_posts WHERE workplace_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, workplaceID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	posts, err := scanJobPosts(rows)
	return posts, count, err
}

func (r *jobRepository) SearchPosts(ctx context.Context, query, location string, page, pageSize int32) ([]domain.JobPost, int32, error) {
	offset := (page - 1) * pageSize
	sqlQuery := `SELECT ` + jobPostColumns + ` FROM job_posts WHERE status = 'OPEN'`

	args := []interface{}{}
	argIdx := 1
	if query != "" {
		sqlQuery += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}
	if location != "" {
		sqlQuery += fmt.Sprintf(" AND location ILIKE $%d", argIdx)
		args = append(args, "%"+location+"%")
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + sqlQuery + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlQuery += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	posts, err := scanJobPosts(rows)
	return posts, count, err
}

func scanJobPosts(rows *sql.Rows) ([]domain.JobPost, error) {
	var posts []domain.JobPost
	for rows.Next() {
		var p domain.JobPost
		if err := rows.Scan(&p.ID, &p.WorkplaceID, &p.EmployerID, &p.Title, &p.Description, &p.Location, &p.SalaryMinCents, &p.SalaryMaxCents, &p.Status, &p.ExpiresOn, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *jobRepository) DeletePostCascade(ctx context.Context, id int32, reason string) error {
	logger.Info("cascading job post delete", "job_post_id", id, "reason", reason)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteJobPostTx(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// deleteJobPostTx removes a post and the applications referencing it, in
// that order.
func deleteJobPostTx(ctx context.Context, q dbtx, id int32) error {
	var existing int32
	if err := q.QueryRowContext(ctx, `SELECT id FROM job_posts WHERE id = $1`, id).Scan(&existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM job_applications WHERE job_post_id = $1`, id); err != nil {
		return err
	}
	_, err := q.ExecContext(ctx, `DELETE FROM job_posts WHERE id = $1`, id)
	return err
}

func (r *jobRepository) ExpirePosts(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE job_posts SET status = $1, updated_on = $2 WHERE status = $3 AND expires_on < $2`,
		domain.JobPostStatusExpired, now, domain.JobPostStatusOpen)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *jobRepository) CreateApplication(ctx context.Context, a *domain.JobApplication) error {
	query := `INSERT INTO job_applications (job_post_id, seeker_id, cover_note, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	if a.Status == "" {
		a.Status = domain.JobApplicationSubmitted
	}
	return r.db.QueryRowContext(ctx, query, a.JobPostID, a.SeekerID, a.CoverNote, a.Status, now, now).Scan(&a.ID)
}

func (r *jobRepository) GetApplication(ctx context.Context, id int32) (*domain.JobApplication, error) {
	a := &domain.JobApplication{}
	query := `SELECT id, job_post_id, seeker_id, COALESCE(cover_note, ''), status, created_on, updated_on FROM job_applications WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.JobPostID, &a.SeekerID, &a.CoverNote, &a.Status, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *jobRepository) HasApplication(ctx context.Context, postID, seekerID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM job_applications WHERE job_post_id = $1 AND seeker_id = $2 AND status <> 'WITHDRAWN')`
	err := r.db.QueryRowContext(ctx, query, postID, seekerID).Scan(&exists)
	return exists, err
}

func (r *jobRepository) ListApplicationsBySeeker(ctx context.Context, seekerID int32, page, pageSize int32) ([]domain.JobApplication, int32, error) {
	return r.listApplications(ctx, `seeker_id`, seekerID, page, pageSize)
}

func (r *jobRepository) ListApplicationsByPost(ctx context.Context, postID int32, page, pageSize int32) ([]domain.JobApplication, int32, error) {
	return r.listApplications(ctx, `job_post_id`, postID, page, pageSize)
}

func (r *jobRepository) listApplications(ctx context.Context, column string, id int32, page, pageSize int32) ([]domain.JobApplication, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM job_applications WHERE `+column+` = $1`, id).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, job_post_id, seeker_id, COALESCE(cover_note, ''), status, created_on, updated_on
	          FROM job_applications WHERE ` + column + ` = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, id, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []domain.JobApplication
	for rows.Next() {
		var a domain.JobApplication
		if err := rows.Scan(&a.ID, &a.JobPostID, &a.SeekerID, &a.CoverNote, &a.Status, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, 0, err
		}
		apps = append(apps, a)
	}
	return apps, count, rows.Err()
}

func (r *jobRepository) UpdateApplicationStatus(ctx context.Context, id int32, status domain.JobApplicationStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE job_applications SET status=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), id)
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

// deleteJobApplicationTx deletes an application by id with no fan-out.
func deleteJobApplicationTx(ctx context.Context, q dbtx, id int32) error {
	res, err := q.ExecContext(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
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
