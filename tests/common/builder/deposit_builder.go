package builder

import (
	"time"

	"bundlemart-api/internal/domain/deposit"
	"bundlemart-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// DepositBuilder assembles deposit transactions for tests with sensible
// defaults and per-test overrides.
type DepositBuilder struct {
	userID    uuid.UUID
	amountGHS float64
	minGHS    float64
	phone     string
	network   deposit.Network
	now       time.Time
}

func NewDepositBuilder() *DepositBuilder {
	return &DepositBuilder{
		userID:    uuid.New(),
		amountGHS: 50,
		minGHS:    10,
		phone:     "0244123456",
		network:   deposit.NetworkMTN,
		now:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *DepositBuilder) WithUserID(id uuid.UUID) *DepositBuilder {
	b.userID = id
	return b
}

func (b *DepositBuilder) WithAmountGHS(ghs float64) *DepositBuilder {
	b.amountGHS = ghs
	return b
}

func (b *DepositBuilder) WithMinGHS(min float64) *DepositBuilder {
	b.minGHS = min
	return b
}

func (b *DepositBuilder) WithPhone(phone string) *DepositBuilder {
	b.phone = phone
	return b
}

func (b *DepositBuilder) WithNetwork(network deposit.Network) *DepositBuilder {
	b.network = network
	return b
}

func (b *DepositBuilder) WithTime(now time.Time) *DepositBuilder {
	b.now = now
	return b
}

func (b *DepositBuilder) Now() time.Time {
	return b.now
}

func (b *DepositBuilder) BuildDomain() (*deposit.Transaction, error) {
	amount, err := deposit.NewAmount(b.amountGHS, b.minGHS)
	if err != nil {
		return nil, err
	}
	phoneNumber, err := deposit.NewPhoneNumber(b.phone)
	if err != nil {
		return nil, err
	}
	return deposit.NewTransaction(b.userID, amount, phoneNumber, b.network, b.now)
}

// BuildView returns the read model of an initiated transaction.
func (b *DepositBuilder) BuildView(reference string, requiresOtp bool) (queries.DepositView, error) {
	t, err := b.BuildInitiated(reference, requiresOtp)
	if err != nil {
		return queries.DepositView{}, err
	}
	return queries.NewDepositView(t), nil
}

// BuildInitiated returns a transaction that already passed gateway initiation.
func (b *DepositBuilder) BuildInitiated(reference string, requiresOtp bool) (*deposit.Transaction, error) {
	t, err := b.BuildDomain()
	if err != nil {
		return nil, err
	}
	if err := t.AttachInitiation(reference, nil, requiresOtp, b.now); err != nil {
		return nil, err
	}
	return t, nil
}
