package storage

import (
	"context"

	"github.com/cbailey/wallet-ledger/pkg/models"
)

// AccountStore defines the interface for managing wallet accounts.
type AccountStore interface {
	// CreateAccount registers a new account. Fails with ErrAccountExists if the
	// user already has one.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetAccount retrieves an account by user ID.
	GetAccount(ctx context.Context, userID string) (*models.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]models.Account, error)
}
