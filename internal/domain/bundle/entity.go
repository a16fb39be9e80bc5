package bundle

import (
	"strings"
	"time"

	"bundlemart-api/internal/domain/deposit"
	"bundlemart-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errs.New("bundle name cannot be empty")
	ErrInvalidNetwork  = errs.New("invalid bundle network")
	ErrInvalidDataSize = errs.New("data size must be positive")
	ErrInvalidPrice    = errs.New("price must be positive")
)

// Bundle is one sellable data package on a carrier network.
type Bundle struct {
	id           uuid.UUID
	name         string
	network      deposit.Network
	dataMB       int32
	pricePesewas int64
	inStock      bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewBundle(name string, network deposit.Network, dataMB int32, pricePesewas int64, now time.Time) (*Bundle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !network.IsValid() {
		return nil, ErrInvalidNetwork
	}
	if dataMB <= 0 {
		return nil, ErrInvalidDataSize
	}
	if pricePesewas <= 0 {
		return nil, ErrInvalidPrice
	}

	return &Bundle{
		id:           uuid.New(),
		name:         name,
		network:      network,
		dataMB:       dataMB,
		pricePesewas: pricePesewas,
		inStock:      true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructBundle(
	id uuid.UUID,
	name string,
	network deposit.Network,
	dataMB int32,
	pricePesewas int64,
	inStock bool,
	createdAt, updatedAt time.Time,
) *Bundle {
	return &Bundle{
		id:           id,
		name:         name,
		network:      network,
		dataMB:       dataMB,
		pricePesewas: pricePesewas,
		inStock:      inStock,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (b *Bundle) SetAvailability(inStock bool, now time.Time) {
	b.inStock = inStock
	b.updatedAt = now
}

func (b *Bundle) ID() uuid.UUID            { return b.id }
func (b *Bundle) Name() string             { return b.name }
func (b *Bundle) Network() deposit.Network { return b.network }
func (b *Bundle) DataMB() int32            { return b.dataMB }
func (b *Bundle) PricePesewas() int64      { return b.pricePesewas }
func (b *Bundle) InStock() bool            { return b.inStock }
func (b *Bundle) CreatedAt() time.Time     { return b.createdAt }
func (b *Bundle) UpdatedAt() time.Time     { return b.updatedAt }
