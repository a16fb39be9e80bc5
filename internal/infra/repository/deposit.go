package repository

import (
	"context"
	"errors"
	"time"

	"bundlemart-api/internal/domain/deposit"
	"bundlemart-api/internal/infra"
	"bundlemart-api/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DepositRepository struct {
	db db.DBTX
}

func NewDepositRepository(pool db.DBTX) *DepositRepository {
	return &DepositRepository{db: pool}
}

const depositColumns = `
	id, user_id, reference, external_ref, amount_pesewas, settled_amount_pesewas,
	phone_number, network, state, otp_attempts, status_check_count, failure_reason,
	created_at, updated_at`

func (r *DepositRepository) Create(ctx context.Context, tx db.DBTX, t *deposit.Transaction) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO deposits (
			id, user_id, reference, external_ref, amount_pesewas, settled_amount_pesewas,
			phone_number, network, state, otp_attempts, status_check_count, failure_reason,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		t.ID(), t.UserID(), nullIfEmpty(t.Reference()), t.ExternalRef(),
		t.Amount().Pesewas(), settledPesewas(t.SettledAmount()),
		t.PhoneNumber().String(), t.Network().String(), t.State().String(),
		t.OtpAttempts(), t.StatusCheckCount(), t.FailureReason(),
		t.CreatedAt(), t.UpdatedAt(),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return infra.WrapRepoErr("deposit already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create deposit", err)
	}
	return nil
}

// Update persists every field a state transition can touch.
func (r *DepositRepository) Update(ctx context.Context, tx db.DBTX, t *deposit.Transaction) error {
	tag, err := tx.Exec(ctx, `
		UPDATE deposits SET
			reference = $2,
			external_ref = $3,
			settled_amount_pesewas = $4,
			state = $5,
			otp_attempts = $6,
			status_check_count = $7,
			failure_reason = $8,
			updated_at = $9
		WHERE id = $1`,
		t.ID(), nullIfEmpty(t.Reference()), t.ExternalRef(),
		settledPesewas(t.SettledAmount()), t.State().String(),
		t.OtpAttempts(), t.StatusCheckCount(), t.FailureReason(), t.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update deposit", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("deposit not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *DepositRepository) FindByReference(ctx context.Context, reference string) (*deposit.Transaction, error) {
	row := r.db.QueryRow(ctx, `SELECT `+depositColumns+` FROM deposits WHERE reference = $1`, reference)
	return scanDeposit(row)
}

// FindByReferenceForUpdate locks the row for the rest of the transaction so
// concurrent status checks on the same deposit serialize.
func (r *DepositRepository) FindByReferenceForUpdate(ctx context.Context, tx db.DBTX, reference string) (*deposit.Transaction, error) {
	row := tx.QueryRow(ctx, `SELECT `+depositColumns+` FROM deposits WHERE reference = $1 FOR UPDATE`, reference)
	return scanDeposit(row)
}

func (r *DepositRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*deposit.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+depositColumns+`
		FROM deposits
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list deposits", err)
	}
	defer rows.Close()

	var out []*deposit.Transaction
	for rows.Next() {
		t, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read deposit rows", err)
	}
	return out, nil
}

func scanDeposit(row pgx.Row) (*deposit.Transaction, error) {
	var (
		rec            depositRow
		reference      *string
		settledPesewas *int64
	)
	err := row.Scan(
		&rec.ID, &rec.UserID, &reference, &rec.ExternalRef,
		&rec.AmountPesewas, &settledPesewas,
		&rec.PhoneNumber, &rec.Network, &rec.State,
		&rec.OtpAttempts, &rec.StatusCheckCount, &rec.FailureReason,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("deposit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan deposit", err)
	}

	var settled *deposit.Amount
	if settledPesewas != nil {
		a := deposit.AmountFromPesewas(*settledPesewas)
		settled = &a
	}
	ref := ""
	if reference != nil {
		ref = *reference
	}

	return deposit.ReconstructTransaction(
		rec.ID, rec.UserID,
		ref, rec.ExternalRef,
		deposit.AmountFromPesewas(rec.AmountPesewas), settled,
		deposit.ReconstructPhoneNumber(rec.PhoneNumber),
		deposit.Network(rec.Network), deposit.State(rec.State),
		rec.OtpAttempts, rec.StatusCheckCount, rec.FailureReason,
		rec.CreatedAt, rec.UpdatedAt,
	), nil
}

type depositRow struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	ExternalRef      *string
	AmountPesewas    int64
	PhoneNumber      string
	Network          string
	State            string
	OtpAttempts      int
	StatusCheckCount int
	FailureReason    *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func settledPesewas(a *deposit.Amount) *int64 {
	if a == nil {
		return nil
	}
	v := a.Pesewas()
	return &v
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
