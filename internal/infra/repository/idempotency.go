package repository

import (
	"context"
	"errors"
	"time"

	"bundlemart-api/internal/infra"
	"bundlemart-api/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

// IdempotencyRecord is the stored outcome of a deduplicated request.
type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	RequestHash     string
	Status          string
	ResultReference *string
	ExpiresAt       time.Time
}

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(pool db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: pool}
}

// TryInsert claims the key. A duplicate-key error means another request with
// the same key already ran or is still running.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`,
		key, userID, endpoint, requestHash, IdempotencyStatusProcessing, expiresAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return infra.WrapRepoErr("idempotency key already claimed", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error) {
	var rec IdempotencyRecord
	err := r.db.QueryRow(ctx, `
		SELECT key, user_id, endpoint, request_hash, status, result_reference, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2`,
		key, userID,
	).Scan(&rec.Key, &rec.UserID, &rec.Endpoint, &rec.RequestHash, &rec.Status, &rec.ResultReference, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	return &rec, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultReference string) error {
	_, err := tx.Exec(ctx, `
		UPDATE idempotency_keys
		SET status = $3, result_reference = $4
		WHERE key = $1 AND user_id = $2`,
		key, userID, IdempotencyStatusCompleted, resultReference,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM idempotency_keys WHERE expires_at < now()`)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
