package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/logger"
	"worklens-backend/internal/repository"
)

type workplaceRepository struct {
	db *sql.DB
}

func NewWorkplaceRepository(db *sql.DB) repository.WorkplaceRepository {
	return &workplaceRepository{db: db}
}

func (r *workplaceRepository) Create(ctx context.Context, wp *domain.Workplace, creatorID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO workplaces (name, industry, website, review_count, created_on, updated_on)
	          VALUES ($1, $2, $3, 0, $4, $5) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, wp.Name, wp.Industry, wp.Website, now, now).Scan(&wp.ID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO employer_workplaces (workplace_id, user_id, role, linked_on) VALUES ($1, $2, $3, $4)`,
		wp.ID, creatorID, domain.EmployerRoleOwner, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *workplaceRepository) GetByID(ctx context.Context, id int32) (*domain.Workplace, error) {
	wp := &domain.Workplace{}
	query := `SELECT id, name, industry, website, review_count, created_on, updated_on FROM workplaces WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&wp.ID, &wp.Name, &wp.Industry, &wp.Website, &wp.ReviewCount, &wp.CreatedOn, &wp.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return wp, nil
}

func (r *workplaceRepository) Search(ctx context.Context, name, industry string, page, pageSize int32) ([]domain.Workplace, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, name, industry, website, review_count, created_on, updated_on FROM workplaces WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+name+"%")
		argIdx++
	}
	if industry != "" {
		query += fmt.Sprintf(" AND industry = $%d", argIdx)
		args = append(args, industry)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var workplaces []domain.Workplace
	for rows.Next() {
		var wp domain.Workplace
		if err := rows.Scan(&wp.ID, &wp.Name, &wp.Industry, &wp.Website, &wp.ReviewCount, &wp.CreatedOn, &wp.UpdatedOn); err != nil {
			return nil, 0, err
		}
		workplaces = append(workplaces, wp)
	}
	return workplaces, count, rows.Err()
}

func (r *workplaceRepository) Update(ctx context.Context, wp *domain.Workplace) error {
	query := `UPDATE workplaces SET name=$1, industry=$2, website=$3, updated_on=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, wp.Name, wp.Industry, wp.Website, time.Now(), wp.ID)
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

func (r *workplaceRepository) ListPolicies(ctx context.Context) ([]domain.Policy, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, code, label FROM policies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPolicies(rows)
}

func (r *workplaceRepository) GetPoliciesByLabels(ctx context.Context, labels []string) ([]domain.Policy, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, code, label FROM policies WHERE label = ANY($1)`, pq.Array(labels))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPolicies(rows)
}

func scanPolicies(rows *sql.Rows) ([]domain.Policy, error) {
	var policies []domain.Policy
	for rows.Next() {
		var p domain.Policy
		if err := rows.Scan(&p.ID, &p.Code, &p.Label); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

func (r *workplaceRepository) DeclarePolicies(ctx context.Context, workplaceID int32, policyIDs []int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM workplace_policies WHERE workplace_id = $1`, workplaceID); err != nil {
		return err
	}
	for _, pid := range policyIDs {
		_, err := tx.ExecContext(ctx, `INSERT INTO workplace_policies (workplace_id, policy_id) VALUES ($1, $2)`, workplaceID, pid)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *workplaceRepository) GetDeclaredPolicyIDs(ctx context.Context, workplaceID int32) ([]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT policy_id FROM workplace_policies WHERE workplace_id = $1`, workplaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *workplaceRepository) AddEmployer(ctx context.Context, link *domain.EmployerWorkplace) error {
	query := `INSERT INTO employer_workplaces (workplace_id, user_id, role, linked_on) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, link.WorkplaceID, link.UserID, link.Role, time.Now())
	return err
}

func (r *workplaceRepository) ExistsWithRole(ctx context.Context, workplaceID, userID int32, role domain.EmployerRole) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM employer_workplaces WHERE workplace_id = $1 AND user_id = $2 AND role = $3)`
	err := r.db.QueryRowContext(ctx, query, workplaceID, userID, role).Scan(&exists)
	return exists, err
}

func (r *workplaceRepository) ListOwnedWorkplaceIDs(ctx context.Context, userID int32) ([]int32, error) {
	return ownedWorkplaceIDs(ctx, r.db, userID)
}

func ownedWorkplaceIDs(ctx context.Context, q dbtx, userID int32) ([]int32, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT workplace_id FROM employer_workplaces WHERE user_id = $1 AND role = $2 ORDER BY workplace_id`,
		userID, domain.EmployerRoleOwner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *workplaceRepository) CreateEmployerRequest(ctx context.Context, req *domain.EmployerRequest) error {
	query := `INSERT INTO employer_requests (workplace_id, user_id, note, status, created_on) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	req.Status = domain.EmployerRequestPending
	return r.db.QueryRowContext(ctx, query, req.WorkplaceID, req.UserID, req.Note, req.Status, time.Now()).Scan(&req.ID)
}

func (r *workplaceRepository) GetEmployerRequest(ctx context.Context, id int32) (*domain.EmployerRequest, error) {
	req := &domain.EmployerRequest{}
	query := `SELECT id, workplace_id, user_id, COALESCE(note, ''), status, created_on FROM employer_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.WorkplaceID, &req.UserID, &req.Note, &req.Status, &req.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *workplaceRepository) UpdateEmployerRequestStatus(ctx context.Context, id int32, status domain.EmployerRequestStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE employer_requests SET status=$1 WHERE id=$2`, status, id)
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

func (r *workplaceRepository) ListEmployerRequestsByWorkplace(ctx context.Context, workplaceID int32) ([]domain.EmployerRequest, error) {
	query := `SELECT id, workplace_id, user_id, COALESCE(note, ''), status, created_on FROM employer_requests WHERE workplace_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, workplaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.EmployerRequest
	for rows.Next() {
		var req domain.EmployerRequest
		if err := rows.Scan(&req.ID, &req.WorkplaceID, &req.UserID, &req.Note, &req.Status, &req.CreatedOn); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// RatingSummary recomputes display aggregates with direct queries so edits
// never drift from the stored truth.
func (r *workplaceRepository) RatingSummary(ctx context.Context, workplaceID int32) (*domain.RatingSummary, error) {
	summary := &domain.RatingSummary{WorkplaceID: workplaceID}

	query := `SELECT count(*), COALESCE(ROUND(AVG(overall_rating)::numeric, 1), 0) FROM reviews WHERE workplace_id = $1`
	if err := r.db.QueryRowContext(ctx, query, workplaceID).Scan(&summary.ReviewCount, &summary.OverallAverage); err != nil {
		return nil, err
	}

	policyQuery := `SELECT p.id, p.code, p.label, ROUND(AVG(rr.score)::numeric, 1)
	                FROM review_policy_ratings rr
	                JOIN reviews rev ON rev.id = rr.review_id
	                JOIN policies p ON p.id = rr.policy_id
	                WHERE rev.workplace_id = $1
	                GROUP BY p.id, p.code, p.label
	                ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, policyQuery, workplaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pa domain.PolicyAverage
		if err := rows.Scan(&pa.PolicyID, &pa.Code, &pa.Label, &pa.Average); err != nil {
			return nil, err
		}
		summary.PolicyAverages = append(summary.PolicyAverages, pa)
	}
	return summary, rows.Err()
}

func (r *workplaceRepository) DeleteCascade(ctx context.Context, id int32, reason string) error {
	logger.Info("cascading workplace delete", "workplace_id", id, "reason", reason)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteWorkplaceTx(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// deleteWorkplaceTx removes a workplace and every dependent row. The order
// is a contract: each layer references rows in the next, so reversing any
// step violates referential integrity.
func deleteWorkplaceTx(ctx context.Context, q dbtx, id int32) error {
	var existing int32
	if err := q.QueryRowContext(ctx, `SELECT id FROM workplaces WHERE id = $1`, id).Scan(&existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	steps := []struct {
		name  string
		query string
	}{
		{"job applications", `DELETE FROM job_applications WHERE job_post_id IN (SELECT id FROM job_posts WHERE workplace_id = $1)`},
		{"job posts", `DELETE FROM job_posts WHERE workplace_id = $1`},
		{"employer requests", `DELETE FROM employer_requests WHERE workplace_id = $1`},
		{"employer links", `DELETE FROM employer_workplaces WHERE workplace_id = $1`},
		{"review replies", `DELETE FROM review_replies WHERE review_id IN (SELECT id FROM reviews WHERE workplace_id = $1)`},
		{"review policy ratings", `DELETE FROM review_policy_ratings WHERE review_id IN (SELECT id FROM reviews WHERE workplace_id = $1)`},
		{"review reactions", `DELETE FROM review_reactions WHERE review_id IN (SELECT id FROM reviews WHERE workplace_id = $1)`},
		{"reviews", `DELETE FROM reviews WHERE workplace_id = $1`},
		{"workplace policies", `DELETE FROM workplace_policies WHERE workplace_id = $1`},
		{"workplace", `DELETE FROM workplaces WHERE id = $1`},
	}
	for _, step := range steps {
		if _, err := q.ExecContext(ctx, step.query, id); err != nil {
			return fmt.Errorf("workplace cascade failed deleting %s: %w", step.name, err)
		}
	}
	return nil
}
