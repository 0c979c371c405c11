package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/logger"
	"worklens-backend/internal/repository"
)

// entityHandler bundles the two per-kind operations the moderation flow
// needs: projecting the content's owning user and cascading deletion. Both
// run against a dbtx so they compose into larger transactions.
type entityHandler struct {
	creatorQuery string
	deleteTx     func(ctx context.Context, q dbtx, id int32) error
}

// entityHandlers is the strategy table over the closed entity kind set,
// built once at startup. Adding a kind means adding one entry and one
// cascade helper; the orchestrator never changes.
var entityHandlers = map[domain.EntityKind]entityHandler{
	domain.EntityWorkplace: {
		creatorQuery: `SELECT user_id FROM employer_workplaces WHERE workplace_id = $1 AND role = 'OWNER'`,
		deleteTx:     deleteWorkplaceTx,
	},
	domain.EntityReview: {
		creatorQuery: `SELECT author_id FROM reviews WHERE id = $1`,
		deleteTx:     deleteReviewTx,
	},
	domain.EntityReviewReply: {
		creatorQuery: `SELECT author_id FROM review_replies WHERE id = $1`,
		deleteTx:     deleteReviewReplyTx,
	},
	domain.EntityForumPost: {
		creatorQuery: `SELECT author_id FROM forum_posts WHERE id = $1`,
		deleteTx:     deleteForumPostTx,
	},
	domain.EntityForumComment: {
		creatorQuery: `SELECT author_id FROM forum_comments WHERE id = $1`,
		deleteTx:     deleteForumCommentTx,
	},
	domain.EntityJobPost: {
		creatorQuery: `SELECT employer_id FROM job_posts WHERE id = $1`,
		deleteTx:     deleteJobPostTx,
	},
	domain.EntityJobApplication: {
		creatorQuery: `SELECT seeker_id FROM job_applications WHERE id = $1`,
		deleteTx:     deleteJobApplicationTx,
	},
	domain.EntityProfile: {
		creatorQuery: `SELECT user_id FROM profiles WHERE id = $1`,
		deleteTx:     deleteProfileTx,
	},
	domain.EntityMentorProfile: {
		creatorQuery: `SELECT user_id FROM mentor_profiles WHERE id = $1`,
		deleteTx:     deleteMentorProfileTx,
	},
}

// resolveCreatorTx projects the owning user of (kind, id). The second
// return is false when the entity no longer exists; callers treat that as
// "absent", never as an error.
func resolveCreatorTx(ctx context.Context, q dbtx, kind domain.EntityKind, id int32) (int32, bool, error) {
	h, ok := entityHandlers[kind]
	if !ok {
		return 0, false, fmt.Errorf("%w: %s", domain.ErrUnsupportedEntityKind, kind)
	}
	var creatorID int32
	err := q.QueryRowContext(ctx, h.creatorQuery, id).Scan(&creatorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return creatorID, true, nil
}

// deleteContentTx dispatches to the cascade handler for kind. An unknown
// kind is an explicit failure, not a silent no-op: skipping deletion would
// leave reported content live.
func deleteContentTx(ctx context.Context, q dbtx, kind domain.EntityKind, id int32) error {
	h, ok := entityHandlers[kind]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedEntityKind, kind)
	}
	return h.deleteTx(ctx, q, id)
}

type contentRegistry struct {
	db *sql.DB
}

func NewContentRegistry(db *sql.DB) repository.ContentRegistry {
	return &contentRegistry{db: db}
}

func (r *contentRegistry) ResolveCreatorID(ctx context.Context, kind domain.EntityKind, id int32) (int32, bool, error) {
	return resolveCreatorTx(ctx, r.db, kind, id)
}

func (r *contentRegistry) DeleteContent(ctx context.Context, kind domain.EntityKind, id int32, reason string) error {
	logger.Info("deleting content", "entity_kind", kind, "entity_id", id, "reason", reason)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteContentTx(ctx, tx, kind, id); err != nil {
		return err
	}
	return tx.Commit()
}
