package repository

import (
	"context"
	"errors"
	"time"

	"bundlemart-api/internal/domain/user"
	"bundlemart-api/internal/infra"
	"bundlemart-api/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(pool db.DBTX) *UserRepository {
	return &UserRepository{db: pool}
}

const userColumns = `id, phone_number, name, password_hash, role, is_active, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO users (id, phone_number, name, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID(), u.PhoneNumber(), u.Name(), u.PasswordHash(),
		u.Role().String(), u.IsActive(), u.CreatedAt(), u.UpdatedAt(),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return infra.WrapRepoErr("phone number already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByPhone(ctx context.Context, phoneNumber string) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone_number = $1`, phoneNumber)
	return scanUser(row)
}

// CreditWallet adds to the user's balance in one statement so concurrent
// completions never lose an increment.
func (r *UserRepository) CreditWallet(ctx context.Context, tx db.DBTX, userID uuid.UUID, pesewas int64) error {
	tag, err := tx.Exec(ctx, `
		UPDATE users SET wallet_pesewas = wallet_pesewas + $2, updated_at = now()
		WHERE id = $1`,
		userID, pesewas,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to credit wallet", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) WalletBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var pesewas int64
	err := r.db.QueryRow(ctx, `SELECT wallet_pesewas FROM users WHERE id = $1`, userID).Scan(&pesewas)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to read wallet balance", err)
	}
	return pesewas, nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id           uuid.UUID
		phoneNumber  string
		name         string
		passwordHash string
		role         string
		isActive     bool
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := row.Scan(&id, &phoneNumber, &name, &passwordHash, &role, &isActive, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan user", err)
	}

	return user.ReconstructUser(id, phoneNumber, name, passwordHash, user.Role(role), isActive, createdAt, updatedAt), nil
}
