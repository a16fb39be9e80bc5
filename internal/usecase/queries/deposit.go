package queries

import (
	"context"
	"time"

	"bundlemart-api/internal/domain/deposit"
	"bundlemart-api/internal/infra"
	"bundlemart-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrDepositNotFound = errs.New("deposit not found")

// DepositView is the customer-facing projection of a deposit transaction.
type DepositView struct {
	Reference        string
	State            string
	AmountGHS        float64
	SettledAmountGHS *float64
	PhoneNumber      string
	Network          string
	FailureReason    *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type DepositReadRepository interface {
	FindByReference(ctx context.Context, reference string) (*deposit.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*deposit.Transaction, error)
}

type DepositQueries interface {
	GetByReference(ctx context.Context, userID uuid.UUID, reference string) (*DepositView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]DepositView, error)
}

type depositQueriesImpl struct {
	repo DepositReadRepository
}

func NewDepositQueries(repo DepositReadRepository) DepositQueries {
	return &depositQueriesImpl{repo: repo}
}

func (q *depositQueriesImpl) GetByReference(ctx context.Context, userID uuid.UUID, reference string) (*DepositView, error) {
	t, err := q.repo.FindByReference(ctx, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrDepositNotFound)
		}
		return nil, err
	}
	// A deposit belonging to someone else is indistinguishable from a missing one.
	if t.UserID() != userID {
		return nil, ErrDepositNotFound
	}

	view := NewDepositView(t)
	return &view, nil
}

func (q *depositQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]DepositView, error) {
	transactions, err := q.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	views := make([]DepositView, len(transactions))
	for i, t := range transactions {
		views[i] = NewDepositView(t)
	}
	return views, nil
}

func NewDepositView(t *deposit.Transaction) DepositView {
	var settled *float64
	if t.SettledAmount() != nil {
		v := t.SettledAmount().GHS()
		settled = &v
	}
	return DepositView{
		Reference:        t.Reference(),
		State:            t.State().String(),
		AmountGHS:        t.Amount().GHS(),
		SettledAmountGHS: settled,
		PhoneNumber:      t.PhoneNumber().String(),
		Network:          t.Network().String(),
		FailureReason:    t.FailureReason(),
		CreatedAt:        t.CreatedAt(),
		UpdatedAt:        t.UpdatedAt(),
	}
}
