package commands

import (
	"context"

	"bundlemart-api/internal/domain/bundle"
	"bundlemart-api/internal/infra"
	"bundlemart-api/internal/infra/db"
	"bundlemart-api/internal/pkg/clock"
	"bundlemart-api/internal/pkg/errs"
	"bundlemart-api/internal/usecase/queries"
	"bundlemart-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrBundleNotFound = errs.New("bundle not found")

type BundleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*bundle.Bundle, error)
	UpdateAvailability(ctx context.Context, tx db.DBTX, b *bundle.Bundle) error
}

type BundleCommands interface {
	SetAvailability(ctx context.Context, bundleID uuid.UUID, inStock bool) (*queries.BundleView, error)
}

type bundleUseCaseImpl struct {
	bundleRepo BundleRepository
	db         *pgxpool.Pool
	clock      clock.Clock
}

func NewBundleUseCase(bundleRepo BundleRepository, pool *pgxpool.Pool, clk clock.Clock) BundleCommands {
	return &bundleUseCaseImpl{
		bundleRepo: bundleRepo,
		db:         pool,
		clock:      clk,
	}
}

func (u *bundleUseCaseImpl) SetAvailability(ctx context.Context, bundleID uuid.UUID, inStock bool) (*queries.BundleView, error) {
	b, err := u.bundleRepo.FindByID(ctx, bundleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBundleNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	b.SetAvailability(inStock, u.clock.Now())

	_, err = shared.RunInTx(ctx, u.db, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, u.bundleRepo.UpdateAvailability(ctx, tx, b)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBundleNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	view := queries.NewBundleView(b)
	return &view, nil
}
