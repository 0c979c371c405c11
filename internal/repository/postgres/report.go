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

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

const reportColumns = `id, entity_kind, entity_id, reporter_id, reason_type, COALESCE(description, ''), status, COALESCE(admin_note, ''), resolved_by, resolved_on, created_on`

func (r *reportRepository) Create(ctx context.Context, rep *domain.Report) error {
	query := `INSERT INTO reports (entity_kind, entity_id, reporter_id, reason_type, description, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	rep.Status = domain.ReportStatusPending
	rep.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, rep.EntityKind, rep.EntityID, rep.ReporterID, rep.ReasonType, rep.Description, rep.Status, rep.CreatedOn).Scan(&rep.ID)
}

func (r *reportRepository) GetByID(ctx context.Context, id int32) (*domain.Report, error) {
	rep := &domain.Report{}
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rep.ID, &rep.EntityKind, &rep.EntityID, &rep.ReporterID, &rep.ReasonType, &rep.Description, &rep.Status, &rep.AdminNote, &rep.ResolvedBy, &rep.ResolvedOn, &rep.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rep, nil
}

func (r *reportRepository) List(ctx context.Context, status domain.ReportStatus, page, pageSize int32) ([]domain.Report, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + reportColumns + ` FROM reports`

	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reports, err := scanReports(rows)
	return reports, count, err
}

func (r *reportRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE status = $1 AND created_on < $2 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, domain.ReportStatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

func scanReports(rows *sql.Rows) ([]domain.Report, error) {
	var reports []domain.Report
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ID, &rep.EntityKind, &rep.EntityID, &rep.ReporterID, &rep.ReasonType, &rep.Description, &rep.Status, &rep.AdminNote, &rep.ResolvedBy, &rep.ResolvedOn, &rep.CreatedOn); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// Resolve executes the whole resolution workflow inside one transaction:
// a row lock plus status check makes "resolve at most once" hold under
// concurrent admin actions, the creator is captured before any deletion so
// the ban target survives the content's removal, and a failure at any step
// leaves the report PENDING with no content deleted and no ban applied.
func (r *reportRepository) Resolve(ctx context.Context, reportID int32, decision domain.ReportDecision, adminID int32) error {
	if decision.Status != domain.ReportStatusApproved && decision.Status != domain.ReportStatusRejected {
		return fmt.Errorf("%w: resolution status must be APPROVED or REJECTED", domain.ErrValidation)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var kind domain.EntityKind
	var entityID int32
	var status domain.ReportStatus
	err = tx.QueryRowContext(ctx, `SELECT entity_kind, entity_id, status FROM reports WHERE id = $1 FOR UPDATE`, reportID).
		Scan(&kind, &entityID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if status != domain.ReportStatusPending {
		return domain.ErrAlreadyResolved
	}

	var creatorID int32
	var creatorFound bool
	if decision.BanUser {
		creatorID, creatorFound, err = resolveCreatorTx(ctx, tx, kind, entityID)
		if err != nil {
			return err
		}
		if !creatorFound {
			logger.Warn("report creator no longer resolvable, skipping ban", "report_id", reportID, "entity_kind", kind, "entity_id", entityID)
		}
	}

	if decision.DeleteContent {
		if err := deleteContentTx(ctx, tx, kind, entityID); err != nil {
			return err
		}
	}

	if decision.BanUser && creatorFound {
		if err := banUserTx(ctx, tx, creatorID, decision.EffectiveBanReason()); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE reports SET status = $1, admin_note = $2, resolved_by = $3, resolved_on = $4 WHERE id = $5`,
		decision.Status, decision.AdminNote, adminID, time.Now(), reportID)
	if err != nil {
		return err
	}
	return tx.Commit()
}
