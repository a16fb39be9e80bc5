package deposit

import (
	"fmt"
	"math"

	"bundlemart-api/internal/pkg/errs"
	"bundlemart-api/internal/pkg/phone"
)

var (
	ErrAmountNotPositive  = errs.New("amount must be positive")
	ErrAmountBelowMinimum = errs.New("amount below the configured minimum")
	ErrInvalidPhoneNumber = errs.New("invalid phone number")
	ErrInvalidOtpCode     = errs.New("otp code must be exactly 6 digits")
)

// Amount is a GHS value held in pesewas to avoid float drift.
type Amount struct {
	pesewas int64
}

func NewAmount(ghs float64, minGHS float64) (Amount, error) {
	if ghs <= 0 {
		return Amount{}, ErrAmountNotPositive
	}
	if ghs < minGHS {
		return Amount{}, ErrAmountBelowMinimum
	}
	return Amount{pesewas: int64(math.Round(ghs * 100))}, nil
}

// NewSettledAmount wraps a gateway-reported settlement value, which is not
// subject to the submission minimum.
func NewSettledAmount(ghs float64) Amount {
	if ghs < 0 {
		ghs = 0
	}
	return Amount{pesewas: int64(math.Round(ghs * 100))}
}

func AmountFromPesewas(pesewas int64) Amount {
	return Amount{pesewas: pesewas}
}

func (a Amount) Pesewas() int64 {
	return a.pesewas
}

func (a Amount) GHS() float64 {
	return float64(a.pesewas) / 100.0
}

func (a Amount) String() string {
	return fmt.Sprintf("GHS %.2f", a.GHS())
}

// PhoneNumber is the payer's mobile-money number in normalized local form.
// It does not have to match the account holder's own number.
type PhoneNumber struct {
	value string
}

func NewPhoneNumber(raw string) (PhoneNumber, error) {
	normalized, err := phone.Normalize(raw)
	if err != nil {
		return PhoneNumber{}, errs.Mark(err, ErrInvalidPhoneNumber)
	}
	return PhoneNumber{value: normalized}, nil
}

// ReconstructPhoneNumber trusts a value that was normalized before persisting.
func ReconstructPhoneNumber(value string) PhoneNumber {
	return PhoneNumber{value: value}
}

func (p PhoneNumber) String() string {
	return p.value
}

type OtpCode struct {
	value string
}

func NewOtpCode(raw string) (OtpCode, error) {
	if len(raw) != 6 {
		return OtpCode{}, ErrInvalidOtpCode
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return OtpCode{}, ErrInvalidOtpCode
		}
	}
	return OtpCode{value: raw}, nil
}

func (c OtpCode) String() string {
	return c.value
}
