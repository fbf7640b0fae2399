// Package mapping converts between internal domain models and API models.
package mapping

import (
	"github.com/cbailey/wallet-ledger/pkg/api"
	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/money"
)

// ToApiAccount converts a domain account to its API representation.
func ToApiAccount(account *models.Account) *api.Account {
	return &api.Account{
		UserId:    account.UserId,
		Name:      account.Name,
		CreatedAt: account.CreatedAt,
	}
}

// ToDomainNewAccount converts an account creation request to the domain model.
func ToDomainNewAccount(newAccount *api.NewAccount) *models.Account {
	return &models.Account{
		UserId: newAccount.UserId,
		Name:   newAccount.Name,
	}
}

// ToApiBalance converts a domain balance to its API representation, rendering
// minor units as a decimal string.
func ToApiBalance(balance *models.Balance) *api.Balance {
	return &api.Balance{
		UserId:   balance.UserId,
		Currency: balance.Currency,
		Balance:  money.FormatAmount(balance.AmountMinor, balance.Currency),
	}
}

// ToApiTransaction converts a domain journal entry to its API representation.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	out := &api.Transaction{
		Id:             tx.Id,
		UserId:         tx.UserId,
		Type:           string(tx.Type),
		Status:         string(tx.Status),
		Amount:         money.FormatAmount(tx.AmountMinor, tx.Currency),
		Currency:       tx.Currency,
		Gateway:        tx.Gateway,
		GatewayRef:     tx.GatewayRef,
		CorrelationId:  tx.CorrelationId,
		CounterpartyId: tx.CounterpartyId,
		FailureReason:  tx.FailureReason,
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
	if tx.FeeMinor != 0 {
		out.Fee = money.FormatAmount(tx.FeeMinor, tx.Currency)
	}
	return out
}

// ToApiTransfer converts a domain transfer to its API representation.
func ToApiTransfer(transfer *models.Transfer) *api.Transfer {
	return &api.Transfer{
		CorrelationId: transfer.CorrelationId,
		Out:           *ToApiTransaction(&transfer.Out),
		In:            *ToApiTransaction(&transfer.In),
	}
}

// ToApiSubscription converts a domain subscription to its API representation.
func ToApiSubscription(sub *models.Subscription) *api.Subscription {
	return &api.Subscription{
		Id:        sub.Id,
		UserId:    sub.UserId,
		Plan:      sub.Plan,
		Status:    string(sub.Status),
		Amount:    money.FormatAmount(sub.AmountMinor, sub.Currency),
		Currency:  sub.Currency,
		StartedAt: sub.StartedAt,
		ExpiresAt: sub.ExpiresAt,
	}
}
