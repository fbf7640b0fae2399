package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cbailey/wallet-ledger/pkg/gateway"
	gatewaymocks "github.com/cbailey/wallet-ledger/pkg/gateway/mocks"
	"github.com/cbailey/wallet-ledger/pkg/ledger"
	"github.com/cbailey/wallet-ledger/pkg/models"
	schedulermocks "github.com/cbailey/wallet-ledger/pkg/scheduler/mocks"
	"github.com/cbailey/wallet-ledger/pkg/storage"
	"github.com/cbailey/wallet-ledger/pkg/storage/mocks"
)

func newMockGateway(name string) *gatewaymocks.Gateway {
	gw := new(gatewaymocks.Gateway)
	gw.On("Name").Return(name)
	return gw
}

func TestTopUp(t *testing.T) {
	t.Run("Instant Capture Credits Balance", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		gw.On("InitiateTopUp", mock.Anything, mock.MatchedBy(func(req gateway.Request) bool {
			return req.UserID == "user-a" && req.AmountMinor == 4000 && req.Reference != ""
		})).Return(&gateway.Receipt{Reference: "pay_123", FeeMinor: 146, Status: gateway.StatusSucceeded}, nil)
		mockStore.On("Credit", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Status == models.COMPLETED && tx.AmountMinor == 4000 && tx.IdempotencyKey == "stripe#pay_123"
		})).Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		tx, err := svc.TopUp(context.Background(), "user-a", 4000, "USD", "stripe", "")

		require.NoError(t, err)
		assert.Equal(t, models.COMPLETED, tx.Status)
		assert.Equal(t, int64(4000), tx.AmountMinor)
		assert.Equal(t, int64(146), tx.FeeMinor)
		mockStore.AssertExpectations(t)
	})

	t.Run("Deduct Policy Credits Net Of Fee", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		gw.On("InitiateTopUp", mock.Anything, mock.Anything).Return(&gateway.Receipt{Reference: "pay_123", FeeMinor: 146, Status: gateway.StatusSucceeded}, nil)
		mockStore.On("Credit", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.AmountMinor == 3854 && tx.FeeMinor == 146
		})).Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeDeduct)
		tx, err := svc.TopUp(context.Background(), "user-a", 4000, "USD", "stripe", "")

		require.NoError(t, err)
		assert.Equal(t, int64(3854), tx.AmountMinor)
	})

	t.Run("Deduct Policy Rejects Amount Below Fee", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		gw.On("InitiateTopUp", mock.Anything, mock.Anything).Return(&gateway.Receipt{Reference: "pay_123", FeeMinor: 31, Status: gateway.StatusSucceeded}, nil)
		// The provider already captured the funds, so the rejection has to
		// land in the journal even though no balance is touched.
		mockStore.On("RecordFailed", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.TOPUP && tx.AmountMinor == 30 && tx.GatewayRef == "pay_123"
		}), "amount does not cover the provider fee").Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeDeduct)
		_, err := svc.TopUp(context.Background(), "user-a", 30, "USD", "stripe", "")

		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
		mockStore.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unknown Gateway", func(t *testing.T) {
		svc := ledger.NewService(new(mocks.Storage), gateway.NewRegistry(), nil, nil, ledger.FeeAbsorb)
		_, err := svc.TopUp(context.Background(), "user-a", 4000, "USD", "square", "")

		assert.ErrorIs(t, err, ledger.ErrGatewayNotSupported)
	})

	t.Run("Invalid Amount And Currency", func(t *testing.T) {
		svc := ledger.NewService(new(mocks.Storage), gateway.NewRegistry(), nil, nil, ledger.FeeAbsorb)

		_, err := svc.TopUp(context.Background(), "user-a", 0, "USD", "stripe", "")
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

		_, err = svc.TopUp(context.Background(), "user-a", -100, "USD", "stripe", "")
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

		_, err = svc.TopUp(context.Background(), "user-a", 100, "dollars", "stripe", "")
		assert.ErrorIs(t, err, ledger.ErrInvalidCurrency)
	})

	t.Run("Gateway Declines", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		gw.On("InitiateTopUp", mock.Anything, mock.Anything).Return(&gateway.Receipt{Reference: "pay_123", Status: gateway.StatusFailed}, nil)
		mockStore.On("RecordFailed", mock.Anything, mock.Anything, "provider declined funding").Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		_, err := svc.TopUp(context.Background(), "user-a", 4000, "USD", "stripe", "")

		assert.ErrorIs(t, err, ledger.ErrGateway)
		mockStore.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
		mockStore.AssertExpectations(t)
	})

	t.Run("Gateway Error Leaves Audit Entry", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		gw.On("InitiateTopUp", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
		mockStore.On("RecordFailed", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		_, err := svc.TopUp(context.Background(), "user-a", 4000, "USD", "stripe", "")

		assert.ErrorIs(t, err, ledger.ErrGateway)
		mockStore.AssertExpectations(t)
	})

	t.Run("Pending Receipt Defers Credit", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockScheduler := new(schedulermocks.Scheduler)
		gw := newMockGateway("stripe")
		gw.On("InitiateTopUp", mock.Anything, mock.Anything).Return(&gateway.Receipt{Reference: "pay_123", Status: gateway.StatusPending}, nil)
		mockStore.On("RecordPending", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.IdempotencyKey == "stripe#pay_123"
		})).Return(nil)
		mockScheduler.On("ScheduleStatusCheck", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), mockScheduler, nil, ledger.FeeAbsorb)
		tx, err := svc.TopUp(context.Background(), "user-a", 4000, "USD", "stripe", "")

		require.NoError(t, err)
		assert.Equal(t, models.PENDING, tx.Status)
		mockStore.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
		mockStore.AssertExpectations(t)
		mockScheduler.AssertExpectations(t)
	})

	t.Run("Timeout Leaves Pending For Reconciliation", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockScheduler := new(schedulermocks.Scheduler)
		gw := newMockGateway("stripe")
		timeoutErr := fmt.Errorf("%w: stripe: context deadline exceeded", gateway.ErrTimeout)
		gw.On("InitiateTopUp", mock.Anything, mock.Anything).Return(nil, timeoutErr)
		// The pending row carries the client reference so the sweep can ask
		// the provider what happened.
		mockStore.On("RecordPending", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.GatewayRef != "" && tx.IdempotencyKey == "stripe#"+tx.GatewayRef
		})).Return(nil)
		mockScheduler.On("ScheduleStatusCheck", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), mockScheduler, nil, ledger.FeeAbsorb)
		tx, err := svc.TopUp(context.Background(), "user-a", 4000, "USD", "stripe", "")

		require.NoError(t, err)
		assert.Equal(t, models.PENDING, tx.Status)
		mockStore.AssertNotCalled(t, "RecordFailed", mock.Anything, mock.Anything, mock.Anything)
		mockStore.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
		mockStore.AssertExpectations(t)
		mockScheduler.AssertExpectations(t)
	})

	t.Run("Known Gateway Ref Replays Prior Transaction", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		prior := &models.Transaction{Id: "tx-old", UserId: "user-a", Type: models.TOPUP, Status: models.COMPLETED}
		mockStore.On("FindByIdempotencyKey", mock.Anything, models.TOPUP, "stripe#pay_123").Return(prior, nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		tx, err := svc.TopUp(context.Background(), "user-a", 4000, "USD", "stripe", "pay_123")

		require.NoError(t, err)
		assert.Equal(t, prior, tx)
		gw.AssertNotCalled(t, "ConfirmTopUp", mock.Anything, mock.Anything)
		mockStore.AssertExpectations(t)
	})

	t.Run("Pending Prior Is Settled Through Confirmation", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		prior := &models.Transaction{Id: "tx-old", UserId: "user-a", Type: models.TOPUP, Status: models.PENDING, GatewayRef: "pay_123"}
		mockStore.On("FindByIdempotencyKey", mock.Anything, models.TOPUP, "stripe#pay_123").Return(prior, nil)
		gw.On("ConfirmTopUp", mock.Anything, "pay_123").Return(&gateway.Receipt{Reference: "pay_123", Status: gateway.StatusSucceeded}, nil)
		mockStore.On("CompleteCredit", mock.Anything, prior).Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		tx, err := svc.TopUp(context.Background(), "user-a", 4000, "USD", "stripe", "pay_123")

		require.NoError(t, err)
		assert.Equal(t, models.COMPLETED, tx.Status)
		gw.AssertNotCalled(t, "InitiateTopUp", mock.Anything, mock.Anything)
		mockStore.AssertExpectations(t)
	})

	t.Run("Pending Prior Fails On Provider Decline", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		prior := &models.Transaction{Id: "tx-old", UserId: "user-a", Type: models.TOPUP, Status: models.PENDING, GatewayRef: "pay_123"}
		mockStore.On("FindByIdempotencyKey", mock.Anything, models.TOPUP, "stripe#pay_123").Return(prior, nil)
		gw.On("ConfirmTopUp", mock.Anything, "pay_123").Return(&gateway.Receipt{Reference: "pay_123", Status: gateway.StatusFailed}, nil)
		mockStore.On("FailTransaction", mock.Anything, "tx-old", "provider declined funding").Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		tx, err := svc.TopUp(context.Background(), "user-a", 4000, "USD", "stripe", "pay_123")

		require.NoError(t, err)
		assert.Equal(t, models.FAILED, tx.Status)
		mockStore.AssertNotCalled(t, "CompleteCredit", mock.Anything, mock.Anything)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unreachable Provider Leaves Prior Pending", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		prior := &models.Transaction{Id: "tx-old", UserId: "user-a", Type: models.TOPUP, Status: models.PENDING, GatewayRef: "pay_123"}
		mockStore.On("FindByIdempotencyKey", mock.Anything, models.TOPUP, "stripe#pay_123").Return(prior, nil)
		gw.On("ConfirmTopUp", mock.Anything, "pay_123").Return(nil, errors.New("connection refused"))

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		tx, err := svc.TopUp(context.Background(), "user-a", 4000, "USD", "stripe", "pay_123")

		require.NoError(t, err)
		assert.Equal(t, models.PENDING, tx.Status)
		mockStore.AssertNotCalled(t, "CompleteCredit", mock.Anything, mock.Anything)
		mockStore.AssertNotCalled(t, "FailTransaction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Lost Credit Race Returns Prior Transaction", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		gw.On("InitiateTopUp", mock.Anything, mock.Anything).Return(&gateway.Receipt{Reference: "pay_123", Status: gateway.StatusSucceeded}, nil)
		prior := &models.Transaction{Id: "tx-old", UserId: "user-a", Type: models.TOPUP, Status: models.COMPLETED}
		mockStore.On("Credit", mock.Anything, mock.Anything).Return(storage.ErrDuplicateOperation)
		mockStore.On("FindByIdempotencyKey", mock.Anything, models.TOPUP, "stripe#pay_123").Return(prior, nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		tx, err := svc.TopUp(context.Background(), "user-a", 4000, "USD", "stripe", "")

		require.NoError(t, err)
		assert.Equal(t, prior, tx)
	})
}

func TestWithdraw(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		mockStore.On("DebitPending", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.WITHDRAWAL && tx.AmountMinor == 1000
		})).Return(nil)
		gw.On("InitiateWithdrawal", mock.Anything, mock.MatchedBy(func(req gateway.Request) bool {
			return req.Reference != "" // tx.Id travels as the client reference
		})).Return(&gateway.Receipt{Reference: "po_456", Status: gateway.StatusSucceeded}, nil)
		mockStore.On("CompleteTransaction", mock.Anything, mock.Anything).Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		tx, err := svc.Withdraw(context.Background(), "user-a", 1000, "USD", "stripe", "")

		require.NoError(t, err)
		assert.Equal(t, models.COMPLETED, tx.Status)
		assert.Equal(t, "po_456", tx.GatewayRef)
		mockStore.AssertExpectations(t)
	})

	t.Run("Insufficient Funds Stays Auditable", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		mockStore.On("DebitPending", mock.Anything, mock.Anything).Return(storage.ErrInsufficientFunds)
		mockStore.On("RecordFailed", mock.Anything, mock.Anything, "insufficient funds").Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		_, err := svc.Withdraw(context.Background(), "user-a", 1000, "USD", "stripe", "")

		assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
		gw.AssertNotCalled(t, "InitiateWithdrawal", mock.Anything, mock.Anything)
		mockStore.AssertExpectations(t)
	})

	t.Run("Payout Failure Compensates", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		mockStore.On("DebitPending", mock.Anything, mock.Anything).Return(nil)
		gw.On("InitiateWithdrawal", mock.Anything, mock.Anything).Return(&gateway.Receipt{Reference: "po_456", Status: gateway.StatusFailed}, nil)
		mockStore.On("CompensateFailed", mock.Anything, mock.Anything, "provider declined payout").Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		_, err := svc.Withdraw(context.Background(), "user-a", 1000, "USD", "stripe", "")

		assert.ErrorIs(t, err, ledger.ErrGateway)
		mockStore.AssertExpectations(t)
	})

	t.Run("Provider Error Compensates", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		mockStore.On("DebitPending", mock.Anything, mock.Anything).Return(nil)
		gw.On("InitiateWithdrawal", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
		mockStore.On("CompensateFailed", mock.Anything, mock.Anything, "connection refused").Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		_, err := svc.Withdraw(context.Background(), "user-a", 1000, "USD", "stripe", "")

		assert.ErrorIs(t, err, ledger.ErrGateway)
		mockStore.AssertExpectations(t)
	})

	t.Run("Timeout Leaves Pending For Reconciliation", func(t *testing.T) {
		timeoutErrs := []struct {
			name string
			err  error
		}{
			{"classified by the client", fmt.Errorf("%w: stripe: context deadline exceeded", gateway.ErrTimeout)},
			{"raw context deadline", context.DeadlineExceeded},
			{"wrapped context deadline", fmt.Errorf("calling stripe: %w", context.DeadlineExceeded)},
		}
		for _, tc := range timeoutErrs {
			timeoutErr := tc.err
			t.Run(tc.name, func(t *testing.T) {
				mockStore := new(mocks.Storage)
				mockScheduler := new(schedulermocks.Scheduler)
				gw := newMockGateway("stripe")
				mockStore.On("DebitPending", mock.Anything, mock.Anything).Return(nil)
				gw.On("InitiateWithdrawal", mock.Anything, mock.Anything).Return(nil, timeoutErr)
				mockScheduler.On("ScheduleStatusCheck", mock.Anything, mock.Anything, mock.Anything).Return(nil)

				svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), mockScheduler, nil, ledger.FeeAbsorb)
				tx, err := svc.Withdraw(context.Background(), "user-a", 1000, "USD", "stripe", "")

				// The outcome at the provider is unknown; nothing terminal happens.
				require.NoError(t, err)
				assert.Equal(t, models.PENDING, tx.Status)
				mockStore.AssertNotCalled(t, "CompensateFailed", mock.Anything, mock.Anything, mock.Anything)
				mockStore.AssertNotCalled(t, "CompleteTransaction", mock.Anything, mock.Anything)
				mockScheduler.AssertExpectations(t)
			})
		}
	})

	t.Run("Pending Payout Schedules Status Check", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockScheduler := new(schedulermocks.Scheduler)
		gw := newMockGateway("stripe")
		mockStore.On("DebitPending", mock.Anything, mock.Anything).Return(nil)
		gw.On("InitiateWithdrawal", mock.Anything, mock.Anything).Return(&gateway.Receipt{Reference: "po_456", Status: gateway.StatusPending}, nil)
		mockScheduler.On("ScheduleStatusCheck", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), mockScheduler, nil, ledger.FeeAbsorb)
		tx, err := svc.Withdraw(context.Background(), "user-a", 1000, "USD", "stripe", "")

		require.NoError(t, err)
		assert.Equal(t, models.PENDING, tx.Status)
		mockScheduler.AssertExpectations(t)
	})

	t.Run("Idempotency Key Replays Prior Transaction", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		prior := &models.Transaction{Id: "tx-old", UserId: "user-a", Type: models.WITHDRAWAL, Status: models.COMPLETED}
		mockStore.On("FindByIdempotencyKey", mock.Anything, models.WITHDRAWAL, "client-key-1").Return(prior, nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		tx, err := svc.Withdraw(context.Background(), "user-a", 1000, "USD", "stripe", "client-key-1")

		require.NoError(t, err)
		assert.Equal(t, prior, tx)
		mockStore.AssertNotCalled(t, "DebitPending", mock.Anything, mock.Anything)
	})

	t.Run("Retries Version Conflicts", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		gw := newMockGateway("stripe")
		mockStore.On("DebitPending", mock.Anything, mock.Anything).Twice().Return(storage.ErrVersionConflict)
		mockStore.On("DebitPending", mock.Anything, mock.Anything).Once().Return(nil)
		gw.On("InitiateWithdrawal", mock.Anything, mock.Anything).Return(&gateway.Receipt{Reference: "po_456", Status: gateway.StatusSucceeded}, nil)
		mockStore.On("CompleteTransaction", mock.Anything, mock.Anything).Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(gw), nil, nil, ledger.FeeAbsorb)
		tx, err := svc.Withdraw(context.Background(), "user-a", 1000, "USD", "stripe", "")

		require.NoError(t, err)
		assert.Equal(t, models.COMPLETED, tx.Status)
		mockStore.AssertExpectations(t)
	})
}

func TestTransfer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("Transfer", mock.Anything, mock.MatchedBy(func(out *models.Transaction) bool {
			return out.Type == models.TRANSFER_OUT && out.UserId == "sender" && out.CounterpartyId == "recipient" && out.Status == models.COMPLETED
		}), mock.MatchedBy(func(in *models.Transaction) bool {
			return in.Type == models.TRANSFER_IN && in.UserId == "recipient" && in.CounterpartyId == "sender"
		})).Return(nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(), nil, nil, ledger.FeeAbsorb)
		transfer, err := svc.Transfer(context.Background(), "sender", "recipient", 2500, "USD")

		require.NoError(t, err)
		assert.NotEmpty(t, transfer.CorrelationId)
		assert.Equal(t, transfer.CorrelationId, transfer.Out.CorrelationId)
		assert.Equal(t, transfer.CorrelationId, transfer.In.CorrelationId)
		mockStore.AssertExpectations(t)
	})

	t.Run("Same Account", func(t *testing.T) {
		svc := ledger.NewService(new(mocks.Storage), gateway.NewRegistry(), nil, nil, ledger.FeeAbsorb)
		_, err := svc.Transfer(context.Background(), "user-a", "user-a", 2500, "USD")

		assert.ErrorIs(t, err, ledger.ErrSameAccount)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrInsufficientFunds)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(), nil, nil, ledger.FeeAbsorb)
		_, err := svc.Transfer(context.Background(), "sender", "recipient", 2500, "USD")

		assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	})

	t.Run("Unknown Recipient", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrAccountNotFound)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(), nil, nil, ledger.FeeAbsorb)
		_, err := svc.Transfer(context.Background(), "sender", "ghost", 2500, "USD")

		assert.ErrorIs(t, err, ledger.ErrRecipientNotFound)
	})

	t.Run("Gives Up After Repeated Conflicts", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrVersionConflict)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(), nil, nil, ledger.FeeAbsorb)
		_, err := svc.Transfer(context.Background(), "sender", "recipient", 2500, "USD")

		assert.ErrorIs(t, err, storage.ErrVersionConflict)
	})
}

func TestGetUserBalance(t *testing.T) {
	t.Run("Valid Currency", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetBalance", mock.Anything, "user-a", "USD").Return(&models.Balance{UserId: "user-a", Currency: "USD", AmountMinor: 5000}, true, nil)

		svc := ledger.NewService(mockStore, gateway.NewRegistry(), nil, nil, ledger.FeeAbsorb)
		balance, ok, err := svc.GetUserBalance(context.Background(), "user-a", "USD")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(5000), balance.AmountMinor)
	})

	t.Run("Invalid Currency", func(t *testing.T) {
		svc := ledger.NewService(new(mocks.Storage), gateway.NewRegistry(), nil, nil, ledger.FeeAbsorb)
		_, _, err := svc.GetUserBalance(context.Background(), "user-a", "dollars")

		assert.ErrorIs(t, err, ledger.ErrInvalidCurrency)
	})
}
