package wallets

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/cbailey/wallet-ledger/pkg/api"
	"github.com/cbailey/wallet-ledger/pkg/handlers"
	"github.com/cbailey/wallet-ledger/pkg/ledger"
	"github.com/cbailey/wallet-ledger/pkg/mapping"
	"github.com/cbailey/wallet-ledger/pkg/storage"
)

// WalletsHandler holds the dependencies for account- and balance-related
// handlers.
type WalletsHandler struct {
	Accounts storage.AccountStore
	Ledger   *ledger.Service
}

// NewWalletsHandler creates a new WalletsHandler.
func NewWalletsHandler(accounts storage.AccountStore, ledgerService *ledger.Service) *WalletsHandler {
	return &WalletsHandler{Accounts: accounts, Ledger: ledgerService}
}

// CreateAccount handles the logic for registering a new account.
func (h *WalletsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var newAccount api.NewAccount
	if err := json.NewDecoder(r.Body).Decode(&newAccount); err != nil {
		handlers.WriteJSON(w, http.StatusBadRequest, api.Error{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if newAccount.UserId == "" {
		handlers.WriteJSON(w, http.StatusBadRequest, api.Error{Error: "user_id is required"})
		return
	}

	domainAccount := mapping.ToDomainNewAccount(&newAccount)
	domainAccount.CreatedAt = time.Now()

	createdAccount, err := h.Accounts.CreateAccount(r.Context(), domainAccount)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, mapping.ToApiAccount(createdAccount))
}

// GetAccount handles the logic for retrieving an account.
func (h *WalletsHandler) GetAccount(w http.ResponseWriter, r *http.Request, userId string) {
	domainAccount, err := h.Accounts.GetAccount(r.Context(), userId)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, mapping.ToApiAccount(domainAccount))
}

// ListAccounts handles the logic for retrieving all accounts.
func (h *WalletsHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	domainAccounts, err := h.Accounts.ListAccounts(r.Context())
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	// Sort accounts by CreatedAt in descending order.
	sort.Slice(domainAccounts, func(i, j int) bool {
		return domainAccounts[i].CreatedAt.After(domainAccounts[j].CreatedAt)
	})

	apiAccounts := make([]*api.Account, len(domainAccounts))
	for i, account := range domainAccounts {
		apiAccounts[i] = mapping.ToApiAccount(&account)
	}

	handlers.WriteJSON(w, http.StatusOK, apiAccounts)
}

// GetBalance handles the logic for reading one (user, currency) balance.
// With ?strict=1 an account that has never held the currency gets a 404;
// the default is a zero balance.
func (h *WalletsHandler) GetBalance(w http.ResponseWriter, r *http.Request, userId string) {
	currency := r.URL.Query().Get("currency")

	balance, ok, err := h.Ledger.GetUserBalance(r.Context(), userId, currency)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	if !ok && r.URL.Query().Get("strict") == "1" {
		handlers.WriteJSON(w, http.StatusNotFound, api.Error{Error: fmt.Sprintf("no %s balance for user %s", currency, userId)})
		return
	}

	handlers.WriteJSON(w, http.StatusOK, mapping.ToApiBalance(balance))
}
