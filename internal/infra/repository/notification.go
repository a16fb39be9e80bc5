package repository

import (
	"context"
	"time"

	"bundlemart-api/internal/dispatch"
	"bundlemart-api/internal/infra"
	"bundlemart-api/internal/infra/db"

	"github.com/google/uuid"
)

const (
	jobStatusQueued     = "queued"
	jobStatusProcessing = "processing"
	jobStatusDelivered  = "delivered"
	jobStatusFailed     = "failed"
)

// NotificationRepository persists SMS jobs so a crash between enqueue and
// delivery never drops a customer message. It backs dispatch.JobStore.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(pool db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: pool}
}

func (r *NotificationRepository) Enqueue(ctx context.Context, tx db.DBTX, job dispatch.Job, runAt time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO notification_jobs (id, recipient, message, order_ref, status, attempts, run_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, now(), now())`,
		uuid.New(), job.Recipient, job.Message, job.OrderRef, jobStatusQueued, runAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}

// A processing claim this old belongs to a worker that crashed mid-drain;
// the job is handed out again rather than left stranded.
const staleClaimAfter = 5 * time.Minute

// DequeueBatch claims up to limit due jobs, including stale claims abandoned
// by a crashed worker. SKIP LOCKED lets several workers drain the same table
// without handing out the same job twice.
func (r *NotificationRepository) DequeueBatch(ctx context.Context, limit int) ([]dispatch.QueuedJob, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE notification_jobs SET status = $2, updated_at = now()
		WHERE id IN (
			SELECT id FROM notification_jobs
			WHERE (status = $3 OR (status = $2 AND updated_at < now() - $4::interval))
			  AND run_at <= now()
			ORDER BY run_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, recipient, message, order_ref, attempts`,
		limit, jobStatusProcessing, jobStatusQueued, staleClaimAfter,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to dequeue notification jobs", err)
	}
	defer rows.Close()

	var out []dispatch.QueuedJob
	for rows.Next() {
		var q dispatch.QueuedJob
		if err := rows.Scan(&q.ID, &q.Job.Recipient, &q.Job.Message, &q.Job.OrderRef, &q.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification job rows", err)
	}
	return out, nil
}

// Requeue returns a claimed job to the queue, e.g. when a shutdown cut the
// drain short before the job was ever attempted.
func (r *NotificationRepository) Requeue(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`,
		id, jobStatusQueued, jobStatusProcessing,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to requeue notification job", err)
	}
	return nil
}

func (r *NotificationRepository) MarkDelivered(ctx context.Context, id uuid.UUID, attempts int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs
		SET status = $2, attempts = $3, last_error = NULL, updated_at = now()
		WHERE id = $1`,
		id, jobStatusDelivered, attempts,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification delivered", err)
	}
	return nil
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs
		SET status = $2, attempts = $3, last_error = $4, updated_at = now()
		WHERE id = $1`,
		id, jobStatusFailed, attempts, lastError,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification failed", err)
	}
	return nil
}
