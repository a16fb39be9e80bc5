package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"bundlemart-api/internal/dispatch"
	"bundlemart-api/internal/domain/deposit"
	"bundlemart-api/internal/handler/dto/request"
	"bundlemart-api/internal/infra"
	"bundlemart-api/internal/infra/db"
	"bundlemart-api/internal/infra/gateway"
	"bundlemart-api/internal/infra/repository"
	"bundlemart-api/internal/pkg/clock"
	"bundlemart-api/internal/pkg/config"
	"bundlemart-api/internal/pkg/errs"
	"bundlemart-api/internal/usecase/queries"
	"bundlemart-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDomainValidation      = errs.New("domain validation error")
	ErrDepositNotFound       = errs.New("deposit not found")
	ErrInvalidDepositState   = errs.New("deposit is not in a state that allows this operation")
	ErrOtpRequired           = errs.New("otp verification is still pending")
	ErrOtpRejected           = errs.New("otp code was rejected")
	ErrOtpAbandoned          = errs.New("otp verification abandoned")
	ErrDepositRejected       = errs.New("deposit rejected by payment gateway")
	ErrGatewayUnavailable    = errs.New("payment gateway unavailable")
	ErrIdempotencyInProgress = errs.New("request with this idempotency key is still processing")
	ErrIdempotencyKeyReused  = errs.New("idempotency key reused with a different request")
	ErrDatabaseOperation     = errs.New("database operation failed")
)

type PaymentGateway interface {
	InitiateDeposit(ctx context.Context, p gateway.InitiateDepositParams) (*gateway.InitiateDepositResult, error)
	VerifyOtp(ctx context.Context, reference, otpCode, phoneNumber string) error
	CheckStatus(ctx context.Context, reference string) (*gateway.StatusResult, error)
}

type DepositRepository interface {
	Create(ctx context.Context, tx db.DBTX, t *deposit.Transaction) error
	Update(ctx context.Context, tx db.DBTX, t *deposit.Transaction) error
	FindByReference(ctx context.Context, reference string) (*deposit.Transaction, error)
	FindByReferenceForUpdate(ctx context.Context, tx db.DBTX, reference string) (*deposit.Transaction, error)
}

type WalletRepository interface {
	CreditWallet(ctx context.Context, tx db.DBTX, userID uuid.UUID, pesewas int64) error
}

type NotificationEnqueuer interface {
	Enqueue(ctx context.Context, tx db.DBTX, job dispatch.Job, runAt time.Time) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	Get(ctx context.Context, key, userID uuid.UUID) (*repository.IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultReference string) error
}

type SubmitDepositResult struct {
	Deposit     queries.DepositView
	RequiresOtp bool
	Message     string
	IsReplayed  bool
}

type DepositCommands interface {
	SubmitDeposit(ctx context.Context, req request.SubmitDepositRequest, userID uuid.UUID, idempotencyKey *uuid.UUID) (*SubmitDepositResult, error)
	SubmitOtp(ctx context.Context, reference string, req request.SubmitOtpRequest, userID uuid.UUID) (*queries.DepositView, error)
	CheckStatus(ctx context.Context, reference string, userID uuid.UUID) (*queries.DepositView, error)
}

type depositUseCaseImpl struct {
	depositRepo      DepositRepository
	walletRepo       WalletRepository
	notificationRepo NotificationEnqueuer
	idempotencyRepo  IdempotencyRepository
	paymentGateway   PaymentGateway
	db               *pgxpool.Pool
	clock            clock.Clock
	cfg              config.DepositConfig
}

func NewDepositUseCase(
	depositRepo DepositRepository,
	walletRepo WalletRepository,
	notificationRepo NotificationEnqueuer,
	idempotencyRepo IdempotencyRepository,
	paymentGateway PaymentGateway,
	pool *pgxpool.Pool,
	clk clock.Clock,
	cfg config.DepositConfig,
) DepositCommands {
	return &depositUseCaseImpl{
		depositRepo:      depositRepo,
		walletRepo:       walletRepo,
		notificationRepo: notificationRepo,
		idempotencyRepo:  idempotencyRepo,
		paymentGateway:   paymentGateway,
		db:               pool,
		clock:            clk,
		cfg:              cfg,
	}
}

func (d *depositUseCaseImpl) SubmitDeposit(
	ctx context.Context,
	req request.SubmitDepositRequest,
	userID uuid.UUID,
	idempotencyKey *uuid.UUID,
) (*SubmitDepositResult, error) {
	amount, err := deposit.NewAmount(req.AmountGHS, d.cfg.MinAmount)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	phoneNumber, err := deposit.NewPhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if idempotencyKey != nil {
		replayed, err := d.claimIdempotencyKey(ctx, *idempotencyKey, userID, req)
		if err != nil {
			return nil, err
		}
		if replayed != nil {
			return replayed, nil
		}
	}

	now := d.clock.Now()
	t, err := deposit.NewTransaction(userID, amount, phoneNumber, deposit.Network(req.Network), now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	initiation, gwErr := d.paymentGateway.InitiateDeposit(ctx, gateway.InitiateDepositParams{
		UserRef:     userID.String(),
		Amount:      amount.GHS(),
		PhoneNumber: phoneNumber.String(),
		Network:     t.Network().String(),
	})
	if gwErr != nil {
		return nil, d.recordInitiationFailure(ctx, t, gwErr)
	}

	if err := t.AttachInitiation(initiation.Reference, initiation.ExternalRef, initiation.RequiresOtp, d.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	_, err = shared.RunInTx(ctx, d.db, func(tx db.DBTX) (struct{}, error) {
		if err := d.depositRepo.Create(ctx, tx, t); err != nil {
			return struct{}{}, errs.Mark(err, ErrDatabaseOperation)
		}
		if idempotencyKey != nil {
			if err := d.idempotencyRepo.UpdateStatusCompleted(ctx, tx, *idempotencyKey, userID, t.Reference()); err != nil {
				return struct{}{}, errs.Mark(err, ErrDatabaseOperation)
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	return &SubmitDepositResult{
		Deposit:     queries.NewDepositView(t),
		RequiresOtp: initiation.RequiresOtp,
		Message:     initiation.Message,
	}, nil
}

// recordInitiationFailure keeps a rejected or unreachable initiation on file
// so the customer's history shows what happened, then surfaces the error.
func (d *depositUseCaseImpl) recordInitiationFailure(ctx context.Context, t *deposit.Transaction, gwErr error) error {
	reason := gateway.GatewayMessage(gwErr)
	if reason == "" {
		reason = "payment gateway unreachable"
	}
	if err := t.Fail(reason, d.clock.Now()); err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	_, txErr := shared.RunInTx(ctx, d.db, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, d.depositRepo.Create(ctx, tx, t)
	})
	if txErr != nil {
		return errs.Mark(txErr, ErrDatabaseOperation)
	}

	if gateway.IsKind(gwErr, gateway.KindNetwork) {
		return errs.Mark(gwErr, ErrGatewayUnavailable)
	}
	return errs.Mark(gwErr, ErrDepositRejected)
}

func (d *depositUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	key, userID uuid.UUID,
	req request.SubmitDepositRequest,
) (*SubmitDepositResult, error) {
	requestHash := calculateRequestHash(req)
	expiresAt := d.clock.Now().Add(24 * time.Hour)

	err := d.idempotencyRepo.TryInsert(ctx, d.db, key, userID, "POST /api/deposits", requestHash, expiresAt)
	if err == nil {
		return nil, nil
	}
	if !infra.IsKind(err, infra.KindDuplicateKey) {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	record, err := d.idempotencyRepo.Get(ctx, key, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	if record.RequestHash != requestHash {
		return nil, ErrIdempotencyKeyReused
	}
	if record.Status != repository.IdempotencyStatusCompleted || record.ResultReference == nil {
		return nil, ErrIdempotencyInProgress
	}

	t, err := d.depositRepo.FindByReference(ctx, *record.ResultReference)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return &SubmitDepositResult{
		Deposit:     queries.NewDepositView(t),
		RequiresOtp: t.State() == deposit.StateOtpPending,
		IsReplayed:  true,
	}, nil
}

func (d *depositUseCaseImpl) SubmitOtp(
	ctx context.Context,
	reference string,
	req request.SubmitOtpRequest,
	userID uuid.UUID,
) (*queries.DepositView, error) {
	code, err := deposit.NewOtpCode(req.OtpCode)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	t, err := d.loadOwnedDeposit(ctx, reference, userID)
	if err != nil {
		return nil, err
	}
	if t.State() != deposit.StateOtpPending {
		return nil, ErrInvalidDepositState
	}

	gwErr := d.paymentGateway.VerifyOtp(ctx, reference, code.String(), t.PhoneNumber().String())
	switch {
	case gwErr == nil:
		return d.applyLocked(ctx, reference, userID, func(tx db.DBTX, t *deposit.Transaction) error {
			return t.ConfirmOtp(d.clock.Now())
		})

	case gateway.IsKind(gwErr, gateway.KindRejected):
		view, err := d.applyLocked(ctx, reference, userID, func(tx db.DBTX, t *deposit.Transaction) error {
			abandoned, err := t.RecordOtpFailure(d.cfg.MaxOtpAttempts, d.clock.Now())
			if err != nil {
				return err
			}
			if abandoned {
				return d.enqueueSMS(ctx, tx, t, failureMessage(t))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if view.State == deposit.StateFailed.String() {
			return view, errs.Mark(gwErr, ErrOtpAbandoned)
		}
		return view, errs.Mark(gwErr, ErrOtpRejected)

	case gateway.IsKind(gwErr, gateway.KindNotFound):
		view, err := d.applyLocked(ctx, reference, userID, func(tx db.DBTX, t *deposit.Transaction) error {
			if err := t.Fail("transaction no longer exists at gateway", d.clock.Now()); err != nil {
				return err
			}
			return d.enqueueSMS(ctx, tx, t, failureMessage(t))
		})
		if err != nil {
			return nil, err
		}
		return view, errs.Mark(gwErr, ErrDepositRejected)

	default:
		return nil, errs.Mark(gwErr, ErrGatewayUnavailable)
	}
}

func (d *depositUseCaseImpl) CheckStatus(
	ctx context.Context,
	reference string,
	userID uuid.UUID,
) (*queries.DepositView, error) {
	t, err := d.loadOwnedDeposit(ctx, reference, userID)
	if err != nil {
		return nil, err
	}

	// Terminal outcomes replay as-is; checking a settled deposit twice is
	// harmless and returns the same answer.
	if t.State().IsTerminal() {
		view := queries.NewDepositView(t)
		return &view, nil
	}
	if t.State() == deposit.StateOtpPending {
		return nil, ErrOtpRequired
	}
	if t.State() != deposit.StateAwaitingApproval {
		return nil, ErrInvalidDepositState
	}

	status, gwErr := d.paymentGateway.CheckStatus(ctx, reference)
	switch {
	case gwErr == nil:
		return d.applyGatewayStatus(ctx, reference, userID, status)

	case gateway.IsKind(gwErr, gateway.KindNetwork):
		return nil, errs.Mark(gwErr, ErrGatewayUnavailable)

	default:
		// Rejected or lost at the gateway: the deposit can never settle.
		reason := gateway.GatewayMessage(gwErr)
		if reason == "" {
			reason = "gateway rejected the status check"
		}
		return d.applyLocked(ctx, reference, userID, func(tx db.DBTX, t *deposit.Transaction) error {
			if t.State().IsTerminal() {
				return nil
			}
			if err := t.Fail(reason, d.clock.Now()); err != nil {
				return err
			}
			return d.enqueueSMS(ctx, tx, t, failureMessage(t))
		})
	}
}

func (d *depositUseCaseImpl) applyGatewayStatus(
	ctx context.Context,
	reference string,
	userID uuid.UUID,
	status *gateway.StatusResult,
) (*queries.DepositView, error) {
	switch status.Status {
	case "completed", "success", "paid":
		return d.applyLocked(ctx, reference, userID, func(tx db.DBTX, t *deposit.Transaction) error {
			if t.State().IsTerminal() {
				return nil
			}
			settled := deposit.NewSettledAmount(status.Amount)
			if err := t.Complete(settled, d.clock.Now()); err != nil {
				return err
			}
			if err := d.walletRepo.CreditWallet(ctx, tx, t.UserID(), settled.Pesewas()); err != nil {
				return err
			}
			return d.enqueueSMS(ctx, tx, t, successMessage(settled))
		})

	case "failed", "rejected", "cancelled":
		return d.applyLocked(ctx, reference, userID, func(tx db.DBTX, t *deposit.Transaction) error {
			if t.State().IsTerminal() {
				return nil
			}
			if err := t.Fail("gateway reported "+status.Status, d.clock.Now()); err != nil {
				return err
			}
			return d.enqueueSMS(ctx, tx, t, failureMessage(t))
		})

	default:
		// Still processing on the gateway side. Count the check; once the
		// budget runs out the deposit parks in pending and the customer is
		// told to check back later.
		return d.applyLocked(ctx, reference, userID, func(tx db.DBTX, t *deposit.Transaction) error {
			if t.State().IsTerminal() {
				return nil
			}
			exhausted, err := t.RecordPendingCheck(d.cfg.MaxStatusChecks, d.clock.Now())
			if err != nil {
				return err
			}
			if exhausted {
				return d.enqueueSMS(ctx, tx, t, pendingMessage(t))
			}
			return nil
		})
	}
}

// applyLocked re-reads the deposit under a row lock, applies the mutation and
// persists it in one transaction. The reload means a concurrent check that
// settled the deposit first wins and this call degrades to a no-op.
func (d *depositUseCaseImpl) applyLocked(
	ctx context.Context,
	reference string,
	userID uuid.UUID,
	fn func(tx db.DBTX, t *deposit.Transaction) error,
) (*queries.DepositView, error) {
	t, err := shared.RunInTx(ctx, d.db, func(tx db.DBTX) (*deposit.Transaction, error) {
		t, err := d.depositRepo.FindByReferenceForUpdate(ctx, tx, reference)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrDepositNotFound
			}
			return nil, errs.Mark(err, ErrDatabaseOperation)
		}
		if t.UserID() != userID {
			return nil, ErrDepositNotFound
		}

		if err := fn(tx, t); err != nil {
			return nil, err
		}
		if err := d.depositRepo.Update(ctx, tx, t); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperation)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	view := queries.NewDepositView(t)
	return &view, nil
}

func (d *depositUseCaseImpl) loadOwnedDeposit(ctx context.Context, reference string, userID uuid.UUID) (*deposit.Transaction, error) {
	t, err := d.depositRepo.FindByReference(ctx, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDepositNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	if t.UserID() != userID {
		return nil, ErrDepositNotFound
	}
	return t, nil
}

func (d *depositUseCaseImpl) enqueueSMS(ctx context.Context, tx db.DBTX, t *deposit.Transaction, message string) error {
	job := dispatch.Job{
		Recipient: t.PhoneNumber().String(),
		Message:   message,
		OrderRef:  t.Reference(),
	}
	return d.notificationRepo.Enqueue(ctx, tx, job, d.clock.Now())
}

func successMessage(settled deposit.Amount) string {
	return fmt.Sprintf("Your deposit of %s was successful. Your wallet has been credited.", settled)
}

func failureMessage(t *deposit.Transaction) string {
	return fmt.Sprintf("Your deposit of %s could not be completed. Any amount debited will be refunded.", t.Amount())
}

func pendingMessage(t *deposit.Transaction) string {
	return fmt.Sprintf("Your deposit of %s is still processing. Please check back later.", t.Amount())
}

func calculateRequestHash(req request.SubmitDepositRequest) string {
	payload, _ := json.Marshal(req)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
