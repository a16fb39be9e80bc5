package queries

import (
	"context"
	"time"

	"bundlemart-api/internal/domain/bundle"
	"bundlemart-api/internal/domain/deposit"
	"bundlemart-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidNetworkFilter = errs.New("unknown network filter")

type BundleView struct {
	ID        uuid.UUID
	Name      string
	Network   string
	DataMB    int32
	PriceGHS  float64
	InStock   bool
	UpdatedAt time.Time
}

type BundleReadRepository interface {
	ListAvailable(ctx context.Context, network *deposit.Network) ([]*bundle.Bundle, error)
}

type BundleQueries interface {
	ListAvailable(ctx context.Context, networkFilter *string) ([]BundleView, error)
}

type bundleQueriesImpl struct {
	repo BundleReadRepository
}

func NewBundleQueries(repo BundleReadRepository) BundleQueries {
	return &bundleQueriesImpl{repo: repo}
}

func (q *bundleQueriesImpl) ListAvailable(ctx context.Context, networkFilter *string) ([]BundleView, error) {
	var network *deposit.Network
	if networkFilter != nil {
		n := deposit.Network(*networkFilter)
		if !n.IsValid() {
			return nil, ErrInvalidNetworkFilter
		}
		network = &n
	}

	bundles, err := q.repo.ListAvailable(ctx, network)
	if err != nil {
		return nil, err
	}

	views := make([]BundleView, len(bundles))
	for i, b := range bundles {
		views[i] = NewBundleView(b)
	}
	return views, nil
}

func NewBundleView(b *bundle.Bundle) BundleView {
	return BundleView{
		ID:        b.ID(),
		Name:      b.Name(),
		Network:   b.Network().String(),
		DataMB:    b.DataMB(),
		PriceGHS:  float64(b.PricePesewas()) / 100.0,
		InStock:   b.InStock(),
		UpdatedAt: b.UpdatedAt(),
	}
}
