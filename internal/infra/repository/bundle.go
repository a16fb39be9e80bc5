package repository

import (
	"context"
	"errors"
	"time"

	"bundlemart-api/internal/domain/bundle"
	"bundlemart-api/internal/domain/deposit"
	"bundlemart-api/internal/infra"
	"bundlemart-api/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BundleRepository struct {
	db db.DBTX
}

func NewBundleRepository(pool db.DBTX) *BundleRepository {
	return &BundleRepository{db: pool}
}

const bundleColumns = `id, name, network, data_mb, price_pesewas, in_stock, created_at, updated_at`

func (r *BundleRepository) Create(ctx context.Context, tx db.DBTX, b *bundle.Bundle) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO bundles (id, name, network, data_mb, price_pesewas, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID(), b.Name(), b.Network().String(), b.DataMB(),
		b.PricePesewas(), b.InStock(), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return infra.WrapRepoErr("bundle already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create bundle", err)
	}
	return nil
}

func (r *BundleRepository) FindByID(ctx context.Context, id uuid.UUID) (*bundle.Bundle, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bundleColumns+` FROM bundles WHERE id = $1`, id)
	return scanBundle(row)
}

// ListAvailable returns in-stock bundles, optionally narrowed to one network.
func (r *BundleRepository) ListAvailable(ctx context.Context, network *deposit.Network) ([]*bundle.Bundle, error) {
	query := `SELECT ` + bundleColumns + ` FROM bundles WHERE in_stock ORDER BY network, price_pesewas`
	args := []any{}
	if network != nil {
		query = `SELECT ` + bundleColumns + ` FROM bundles WHERE in_stock AND network = $1 ORDER BY price_pesewas`
		args = append(args, network.String())
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bundles", err)
	}
	defer rows.Close()

	var out []*bundle.Bundle
	for rows.Next() {
		b, err := scanBundle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read bundle rows", err)
	}
	return out, nil
}

func (r *BundleRepository) UpdateAvailability(ctx context.Context, tx db.DBTX, b *bundle.Bundle) error {
	tag, err := tx.Exec(ctx, `
		UPDATE bundles SET in_stock = $2, updated_at = $3 WHERE id = $1`,
		b.ID(), b.InStock(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update bundle availability", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("bundle not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanBundle(row pgx.Row) (*bundle.Bundle, error) {
	var (
		id           uuid.UUID
		name         string
		network      string
		dataMB       int32
		pricePesewas int64
		inStock      bool
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := row.Scan(&id, &name, &network, &dataMB, &pricePesewas, &inStock, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("bundle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan bundle", err)
	}

	return bundle.ReconstructBundle(id, name, deposit.Network(network), dataMB, pricePesewas, inStock, createdAt, updatedAt), nil
}
