package deposit

import (
	"time"

	"bundlemart-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidNetwork    = errs.New("invalid network")
	ErrEmptyReference    = errs.New("gateway reference cannot be empty")
	ErrInvalidTransition = errs.New("invalid deposit state transition")
)

// Transaction drives one deposit attempt from submission to a terminal (or
// soft-terminal) outcome. The gateway reference is assigned once at
// initiation and never changes; a customer who wants to retry starts a new
// transaction instead.
type Transaction struct {
	id               uuid.UUID
	userID           uuid.UUID
	reference        string
	externalRef      *string
	amount           Amount
	settledAmount    *Amount
	phoneNumber      PhoneNumber
	network          Network
	state            State
	otpAttempts      int
	statusCheckCount int
	failureReason    *string
	createdAt        time.Time
	updatedAt        time.Time
}

func NewTransaction(userID uuid.UUID, amount Amount, phoneNumber PhoneNumber, network Network, now time.Time) (*Transaction, error) {
	if !network.IsValid() {
		return nil, ErrInvalidNetwork
	}

	return &Transaction{
		id:          uuid.New(),
		userID:      userID,
		amount:      amount,
		phoneNumber: phoneNumber,
		network:     network,
		state:       StateCreated,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTransaction(
	id, userID uuid.UUID,
	reference string,
	externalRef *string,
	amount Amount,
	settledAmount *Amount,
	phoneNumber PhoneNumber,
	network Network,
	state State,
	otpAttempts, statusCheckCount int,
	failureReason *string,
	createdAt, updatedAt time.Time,
) *Transaction {
	return &Transaction{
		id:               id,
		userID:           userID,
		reference:        reference,
		externalRef:      externalRef,
		amount:           amount,
		settledAmount:    settledAmount,
		phoneNumber:      phoneNumber,
		network:          network,
		state:            state,
		otpAttempts:      otpAttempts,
		statusCheckCount: statusCheckCount,
		failureReason:    failureReason,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// AttachInitiation records the gateway's initiate-deposit response. The
// transaction leaves Created exactly once: to OtpPending when the gateway
// demands a one-time passcode, otherwise straight to AwaitingApproval.
func (t *Transaction) AttachInitiation(reference string, externalRef *string, requiresOtp bool, now time.Time) error {
	if t.state != StateCreated {
		return ErrInvalidTransition
	}
	if reference == "" {
		return ErrEmptyReference
	}

	t.reference = reference
	t.externalRef = externalRef
	if requiresOtp {
		t.state = StateOtpPending
	} else {
		t.state = StateAwaitingApproval
	}
	t.updatedAt = now
	return nil
}

// ConfirmOtp moves the transaction past OTP verification.
func (t *Transaction) ConfirmOtp(now time.Time) error {
	if t.state != StateOtpPending {
		return ErrInvalidTransition
	}
	t.state = StateAwaitingApproval
	t.updatedAt = now
	return nil
}

// RecordOtpFailure counts one failed OTP submission. Once maxAttempts is
// reached verification is abandoned and the transaction fails; abandoned
// reports whether this call crossed that line.
func (t *Transaction) RecordOtpFailure(maxAttempts int, now time.Time) (abandoned bool, err error) {
	if t.state != StateOtpPending {
		return false, ErrInvalidTransition
	}

	t.otpAttempts++
	t.updatedAt = now
	if maxAttempts > 0 && t.otpAttempts >= maxAttempts {
		reason := "otp verification abandoned after too many attempts"
		t.failureReason = &reason
		t.state = StateFailed
		return true, nil
	}
	return false, nil
}

// Complete settles the deposit with the gateway-reported amount.
func (t *Transaction) Complete(settled Amount, now time.Time) error {
	if t.state != StateAwaitingApproval {
		return ErrInvalidTransition
	}
	t.settledAmount = &settled
	t.state = StateCompleted
	t.updatedAt = now
	return nil
}

// Fail terminates the transaction. Valid from any non-terminal state: a
// gateway rejection at initiation, a lost transaction during OTP, or a
// failed status check all land here.
func (t *Transaction) Fail(reason string, now time.Time) error {
	if t.state.IsTerminal() {
		return ErrInvalidTransition
	}
	t.failureReason = &reason
	t.state = StateFailed
	t.updatedAt = now
	return nil
}

// RecordPendingCheck counts one status check that came back non-terminal.
// The transaction stays in AwaitingApproval until the check budget runs out,
// at which point it parks in soft-terminal Pending; exhausted reports whether
// this call crossed that line.
func (t *Transaction) RecordPendingCheck(maxChecks int, now time.Time) (exhausted bool, err error) {
	if t.state != StateAwaitingApproval {
		return false, ErrInvalidTransition
	}

	t.statusCheckCount++
	t.updatedAt = now
	if maxChecks > 0 && t.statusCheckCount >= maxChecks {
		t.state = StatePending
		return true, nil
	}
	return false, nil
}

func (t *Transaction) ID() uuid.UUID            { return t.id }
func (t *Transaction) UserID() uuid.UUID        { return t.userID }
func (t *Transaction) Reference() string        { return t.reference }
func (t *Transaction) ExternalRef() *string     { return t.externalRef }
func (t *Transaction) Amount() Amount           { return t.amount }
func (t *Transaction) SettledAmount() *Amount   { return t.settledAmount }
func (t *Transaction) PhoneNumber() PhoneNumber { return t.phoneNumber }
func (t *Transaction) Network() Network         { return t.network }
func (t *Transaction) State() State             { return t.state }
func (t *Transaction) OtpAttempts() int         { return t.otpAttempts }
func (t *Transaction) StatusCheckCount() int    { return t.statusCheckCount }
func (t *Transaction) FailureReason() *string   { return t.failureReason }
func (t *Transaction) CreatedAt() time.Time     { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time     { return t.updatedAt }
