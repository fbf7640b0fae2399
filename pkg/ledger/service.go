package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cbailey/wallet-ledger/pkg/gateway"
	"github.com/cbailey/wallet-ledger/pkg/metrics"
	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/money"
	"github.com/cbailey/wallet-ledger/pkg/scheduler"
	"github.com/cbailey/wallet-ledger/pkg/storage"
	"github.com/google/uuid"
)

// FeePolicy decides how a top-up's provider fee affects the credited amount.
type FeePolicy string

const (
	// FeeAbsorb credits the full requested amount; the fee is metadata only.
	FeeAbsorb FeePolicy = "absorb"
	// FeeDeduct credits the requested amount net of the provider fee.
	FeeDeduct FeePolicy = "deduct"
)

// versionRetries bounds how often an operation is retried after losing an
// optimistic-lock race before the conflict is surfaced.
const versionRetries = 3

// statusCheckDelay is how long a pending gateway transaction waits before its
// first deferred status check.
const statusCheckDelay = 5 * time.Minute

// LedgerBackend is the slice of the data layer the service needs.
type LedgerBackend interface {
	storage.LedgerStore
	storage.JournalStore
}

// Service orchestrates balance reads, credits, debits, and transfers against
// the ledger store and transaction journal. All monetary operations are
// all-or-nothing; gateway calls never happen while a ledger write is in flight.
type Service struct {
	store     LedgerBackend
	gateways  *gateway.Registry
	scheduler scheduler.Scheduler
	metrics   *metrics.Collector
	feePolicy FeePolicy
}

// NewService creates a Service. scheduler and collector may be nil, in which
// case pending transactions are left to the sweep-based reconciliation and no
// metrics are recorded.
func NewService(store LedgerBackend, gateways *gateway.Registry, sched scheduler.Scheduler, collector *metrics.Collector, feePolicy FeePolicy) *Service {
	if feePolicy == "" {
		feePolicy = FeeAbsorb
	}
	return &Service{
		store:     store,
		gateways:  gateways,
		scheduler: sched,
		metrics:   collector,
		feePolicy: feePolicy,
	}
}

// GetUserBalance returns the (user, currency) balance. ok=false means the user
// has never held the currency; the balance is zero in that case.
func (s *Service) GetUserBalance(ctx context.Context, userID, currency string) (*models.Balance, bool, error) {
	if !money.ValidCurrency(currency) {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	return s.store.GetBalance(ctx, userID, currency)
}

// ListTransactions returns the user's journal entries, newest first.
func (s *Service) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.store.ListTransactionsByUserID(ctx, userID)
}

// GetTransaction returns one journal entry by ID.
func (s *Service) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	return s.store.GetTransaction(ctx, txID)
}

// TopUp funds a balance through an external gateway. gatewayRef, when set,
// marks a confirmation callback or client retry for an already-initiated
// funding flow; replays of the same gateway reference return the original
// transaction without a second credit.
func (s *Service) TopUp(ctx context.Context, userID string, amountMinor int64, currency, gatewayName, gatewayRef string) (tx *models.Transaction, err error) {
	defer s.observe("topup", time.Now(), &err)

	if err := validateAmount(amountMinor, currency); err != nil {
		return nil, err
	}

	gw, err := s.gateways.Resolve(gatewayName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrGatewayNotSupported, gatewayName)
	}

	// Short-circuit known replays before doing any gateway or ledger work. A
	// prior still pending is re-checked against the provider: a confirmation
	// callback has to be able to settle it promptly, not wait for the sweep.
	if gatewayRef != "" {
		prior, err := s.store.FindByIdempotencyKey(ctx, models.TOPUP, idemKey(gatewayName, gatewayRef))
		if err == nil {
			s.idempotencyHit(ctx, prior.Id)
			if prior.Status != models.PENDING {
				return prior, nil
			}
			return s.confirmPendingTopUp(ctx, gw, prior)
		}
		if !errors.Is(err, storage.ErrTransactionNotFound) {
			return nil, err
		}
	}

	// The gateway call happens before any balance row is touched, so provider
	// latency never blocks other transactions. The client reference is fixed
	// beforehand: if the call times out, it is the handle reconciliation uses
	// to query the provider's record.
	clientRef := gatewayRef
	if clientRef == "" {
		clientRef = uuid.New().String()
	}
	var receipt *gateway.Receipt
	if gatewayRef != "" {
		receipt, err = gw.ConfirmTopUp(ctx, gatewayRef)
	} else {
		receipt, err = gw.InitiateTopUp(ctx, gateway.Request{
			UserID:      userID,
			AmountMinor: amountMinor,
			Currency:    currency,
			Reference:   clientRef,
		})
	}
	if err != nil {
		s.gatewayError(gatewayName)
		if timedOut(ctx, err) {
			// Unknown provider outcome: the capture may have gone through.
			// Never terminal off a timeout; record pending and reconcile
			// against the provider's own record.
			tx = s.newTransaction(userID, models.TOPUP, amountMinor, currency, gatewayName, clientRef)
			tx.IdempotencyKey = idemKey(gatewayName, clientRef)
			if recErr := s.store.RecordPending(ctx, tx); recErr != nil {
				if errors.Is(recErr, storage.ErrDuplicateOperation) {
					return s.priorTransaction(ctx, models.TOPUP, tx.IdempotencyKey)
				}
				return nil, recErr
			}
			return tx, s.schedule(ctx, tx)
		}
		failed := s.newTransaction(userID, models.TOPUP, amountMinor, currency, gatewayName, gatewayRef)
		if recErr := s.store.RecordFailed(ctx, failed, err.Error()); recErr != nil {
			slog.Error("failed to record declined top-up", "user_id", userID, "error", recErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	tx = s.newTransaction(userID, models.TOPUP, amountMinor, currency, gatewayName, receipt.Reference)
	tx.FeeMinor = receipt.FeeMinor
	tx.IdempotencyKey = idemKey(gatewayName, receipt.Reference)
	if s.feePolicy == FeeDeduct {
		netMinor := amountMinor - receipt.FeeMinor
		if netMinor <= 0 {
			// The provider captured the funds already; the rejection must stay
			// auditable in the journal.
			if recErr := s.store.RecordFailed(ctx, tx, "amount does not cover the provider fee"); recErr != nil {
				slog.Error("failed to record fee-rejected top-up", "user_id", userID, "error", recErr)
			}
			return nil, fmt.Errorf("%w: amount does not cover the %s fee", ErrInvalidAmount, gatewayName)
		}
		tx.AmountMinor = netMinor
	}

	switch receipt.Status {
	case gateway.StatusFailed:
		s.gatewayError(gatewayName)
		if recErr := s.store.RecordFailed(ctx, tx, "provider declined funding"); recErr != nil {
			slog.Error("failed to record declined top-up", "user_id", userID, "error", recErr)
		}
		return nil, fmt.Errorf("%w: %s declined the funding", ErrGateway, gatewayName)

	case gateway.StatusPending:
		// No credit on an unconfirmed funding flow. The pending entry is
		// resolved by the confirmation worker or the reconciliation sweep.
		if err := s.store.RecordPending(ctx, tx); err != nil {
			if errors.Is(err, storage.ErrDuplicateOperation) {
				return s.priorTransaction(ctx, models.TOPUP, tx.IdempotencyKey)
			}
			return nil, err
		}
		return tx, s.schedule(ctx, tx)
	}

	tx.Status = models.COMPLETED
	if err := s.store.Credit(ctx, tx); err != nil {
		if errors.Is(err, storage.ErrDuplicateOperation) {
			// A concurrent retry won the race; return its result.
			return s.priorTransaction(ctx, models.TOPUP, tx.IdempotencyKey)
		}
		return nil, err
	}

	return tx, nil
}

// Withdraw pays out from a balance through an external gateway. The debit and
// the pending journal entry commit atomically before the payout call; a failed
// payout triggers a compensating credit, and a timed-out one leaves the entry
// pending for reconciliation. idempotencyKey, when set, guards client retries.
func (s *Service) Withdraw(ctx context.Context, userID string, amountMinor int64, currency, gatewayName, idempotencyKey string) (tx *models.Transaction, err error) {
	defer s.observe("withdraw", time.Now(), &err)

	if err := validateAmount(amountMinor, currency); err != nil {
		return nil, err
	}

	gw, err := s.gateways.Resolve(gatewayName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrGatewayNotSupported, gatewayName)
	}

	if idempotencyKey != "" {
		if prior, err := s.store.FindByIdempotencyKey(ctx, models.WITHDRAWAL, idempotencyKey); err == nil {
			s.idempotencyHit(ctx, prior.Id)
			return prior, nil
		} else if !errors.Is(err, storage.ErrTransactionNotFound) {
			return nil, err
		}
	}

	tx = s.newTransaction(userID, models.WITHDRAWAL, amountMinor, currency, gatewayName, "")
	tx.IdempotencyKey = idempotencyKey

	for attempt := 0; ; attempt++ {
		err = s.store.DebitPending(ctx, tx)
		if err == nil {
			break
		}
		if errors.Is(err, storage.ErrInsufficientFunds) {
			// The balance is untouched; the declined request stays auditable.
			if recErr := s.store.RecordFailed(ctx, tx, "insufficient funds"); recErr != nil {
				slog.Error("failed to record declined withdrawal", "user_id", userID, "error", recErr)
			}
			return nil, ErrInsufficientFunds
		}
		if errors.Is(err, storage.ErrDuplicateOperation) {
			return s.priorTransaction(ctx, models.WITHDRAWAL, idempotencyKey)
		}
		if !errors.Is(err, storage.ErrVersionConflict) || attempt >= versionRetries {
			return nil, err
		}
	}

	// The funds are reserved and the row lock released; only now talk to the
	// provider. tx.Id doubles as the client reference for later status queries.
	receipt, err := gw.InitiateWithdrawal(ctx, gateway.Request{
		UserID:      userID,
		AmountMinor: amountMinor,
		Currency:    currency,
		Reference:   tx.Id,
	})
	if err != nil {
		s.gatewayError(gatewayName)
		if timedOut(ctx, err) {
			// Unknown provider outcome: never decide completed or failed off a
			// timeout. Reconciliation re-checks against the provider.
			return tx, s.schedule(ctx, tx)
		}
		if compErr := s.store.CompensateFailed(ctx, tx, err.Error()); compErr != nil {
			slog.Error("failed to compensate failed payout", "transaction_id", tx.Id, "error", compErr)
			return nil, compErr
		}
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	tx.GatewayRef = receipt.Reference
	switch receipt.Status {
	case gateway.StatusFailed:
		s.gatewayError(gatewayName)
		if compErr := s.store.CompensateFailed(ctx, tx, "provider declined payout"); compErr != nil {
			slog.Error("failed to compensate declined payout", "transaction_id", tx.Id, "error", compErr)
			return nil, compErr
		}
		return nil, fmt.Errorf("%w: %s declined the payout", ErrGateway, gatewayName)

	case gateway.StatusPending:
		return tx, s.schedule(ctx, tx)
	}

	if err := s.store.CompleteTransaction(ctx, tx.Id); err != nil && !errors.Is(err, storage.ErrTransactionTerminal) {
		return nil, err
	}
	tx.Status = models.COMPLETED
	return tx, nil
}

// Transfer moves funds between two users as one atomic unit: debit, credit, and
// both journal legs commit together or not at all.
func (s *Service) Transfer(ctx context.Context, senderID, recipientID string, amountMinor int64, currency string) (transfer *models.Transfer, err error) {
	defer s.observe("transfer", time.Now(), &err)

	if err := validateAmount(amountMinor, currency); err != nil {
		return nil, err
	}
	if senderID == recipientID {
		return nil, ErrSameAccount
	}

	correlationID := uuid.New().String()
	out := s.newTransaction(senderID, models.TRANSFER_OUT, amountMinor, currency, "", "")
	out.Status = models.COMPLETED
	out.CorrelationId = correlationID
	out.CounterpartyId = recipientID
	in := s.newTransaction(recipientID, models.TRANSFER_IN, amountMinor, currency, "", "")
	in.Status = models.COMPLETED
	in.CorrelationId = correlationID
	in.CounterpartyId = senderID

	for attempt := 0; ; attempt++ {
		err = s.store.Transfer(ctx, out, in)
		if err == nil {
			break
		}
		if errors.Is(err, storage.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		if errors.Is(err, storage.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRecipientNotFound, recipientID)
		}
		if !errors.Is(err, storage.ErrVersionConflict) || attempt >= versionRetries {
			return nil, err
		}
	}

	return &models.Transfer{CorrelationId: correlationID, Out: *out, In: *in}, nil
}

// confirmPendingTopUp re-checks a pending funding flow against the provider
// and finalizes it when the provider has an answer. Flows the provider still
// reports pending, and flows it cannot be reached for, stay pending and are
// left to the reconciliation sweep.
func (s *Service) confirmPendingTopUp(ctx context.Context, gw gateway.Gateway, tx *models.Transaction) (*models.Transaction, error) {
	receipt, err := gw.ConfirmTopUp(ctx, tx.GatewayRef)
	if err != nil {
		slog.Error("failed to confirm pending top-up", "transaction_id", tx.Id, "error", err)
		return tx, nil
	}

	switch receipt.Status {
	case gateway.StatusSucceeded:
		if err := s.store.CompleteCredit(ctx, tx); err != nil {
			if errors.Is(err, storage.ErrTransactionTerminal) {
				return s.store.GetTransaction(ctx, tx.Id)
			}
			return nil, err
		}
		tx.Status = models.COMPLETED
	case gateway.StatusFailed:
		if err := s.store.FailTransaction(ctx, tx.Id, "provider declined funding"); err != nil {
			if errors.Is(err, storage.ErrTransactionTerminal) {
				return s.store.GetTransaction(ctx, tx.Id)
			}
			return nil, err
		}
		tx.Status = models.FAILED
	}
	return tx, nil
}

func (s *Service) priorTransaction(ctx context.Context, txType models.TransactionType, key string) (*models.Transaction, error) {
	prior, err := s.store.FindByIdempotencyKey(ctx, txType, key)
	if err != nil {
		return nil, err
	}
	s.idempotencyHit(ctx, prior.Id)
	return prior, nil
}

func (s *Service) newTransaction(userID string, txType models.TransactionType, amountMinor int64, currency, gatewayName, gatewayRef string) *models.Transaction {
	now := time.Now()
	return &models.Transaction{
		Id:          uuid.New().String(),
		UserId:      userID,
		Type:        txType,
		Status:      models.PENDING,
		AmountMinor: amountMinor,
		Currency:    currency,
		Gateway:     gatewayName,
		GatewayRef:  gatewayRef,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *Service) schedule(ctx context.Context, tx *models.Transaction) error {
	if s.scheduler == nil {
		return nil
	}
	if err := s.scheduler.ScheduleStatusCheck(ctx, tx, statusCheckDelay); err != nil {
		// The sweep-based reconciliation will still pick the entry up.
		slog.Error("failed to enqueue status check", "transaction_id", tx.Id, "error", err)
	}
	return nil
}

func (s *Service) observe(operation string, start time.Time, err *error) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, time.Since(start), *err)
	}
}

func (s *Service) gatewayError(name string) {
	if s.metrics != nil {
		s.metrics.GatewayError(name)
	}
}

func (s *Service) idempotencyHit(ctx context.Context, txID string) {
	slog.Log(ctx, slog.LevelInfo, "idempotency replay, returning prior transaction", "transaction_id", txID)
	if s.metrics != nil {
		s.metrics.IdempotencyHit()
	}
}

func idemKey(gatewayName, reference string) string {
	return gatewayName + "#" + reference
}

// timedOut reports whether a gateway call's outcome is unknown rather than
// decided. Neither COMPLETED nor FAILED may be committed off such an error.
func timedOut(ctx context.Context, err error) bool {
	return errors.Is(err, gateway.ErrTimeout) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded)
}

func validateAmount(amountMinor int64, currency string) error {
	if amountMinor <= 0 {
		return ErrInvalidAmount
	}
	if !money.ValidCurrency(currency) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	return nil
}
