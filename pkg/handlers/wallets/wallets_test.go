package wallets_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cbailey/wallet-ledger/pkg/api"
	"github.com/cbailey/wallet-ledger/pkg/gateway"
	"github.com/cbailey/wallet-ledger/pkg/handlers/wallets"
	"github.com/cbailey/wallet-ledger/pkg/ledger"
	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/storage"
	"github.com/cbailey/wallet-ledger/pkg/storage/mocks"
)

func newHandler(mockStore *mocks.Storage) *wallets.WalletsHandler {
	svc := ledger.NewService(mockStore, gateway.NewRegistry(), nil, nil, ledger.FeeAbsorb)
	return wallets.NewWalletsHandler(mockStore, svc)
}

func TestCreateAccount(t *testing.T) {
	newAccount := api.NewAccount{UserId: "user-c", Name: "Carol"}
	created := &models.Account{UserId: "user-c", Name: "Carol", CreatedAt: time.Now()}

	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("CreateAccount", mock.Anything, mock.Anything).Return(created, nil)

		h := newHandler(mockStore)

		body, _ := json.Marshal(newAccount)
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreateAccount(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("CreateAccount", mock.Anything, mock.Anything).Return(nil, storage.ErrAccountExists)

		h := newHandler(mockStore)

		body, _ := json.Marshal(newAccount)
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreateAccount(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Missing User ID", func(t *testing.T) {
		h := newHandler(new(mocks.Storage))

		body, _ := json.Marshal(api.NewAccount{Name: "Nameless"})
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreateAccount(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetAccount(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetAccount", mock.Anything, "user-c").Return(&models.Account{UserId: "user-c"}, nil)

		h := newHandler(mockStore)

		req := httptest.NewRequest(http.MethodGet, "/accounts/user-c", nil)
		rr := httptest.NewRecorder()

		h.GetAccount(rr, req, "user-c")

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetAccount", mock.Anything, "ghost").Return(nil, storage.ErrAccountNotFound)

		h := newHandler(mockStore)

		req := httptest.NewRequest(http.MethodGet, "/accounts/ghost", nil)
		rr := httptest.NewRecorder()

		h.GetAccount(rr, req, "ghost")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListAccounts(t *testing.T) {
	mockStore := new(mocks.Storage)
	mockStore.On("ListAccounts", mock.Anything).Return([]models.Account{
		{UserId: "old", CreatedAt: time.Now().Add(-time.Hour)},
		{UserId: "new", CreatedAt: time.Now()},
	}, nil)

	h := newHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rr := httptest.NewRecorder()

	h.ListAccounts(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var accounts []api.Account
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &accounts))
	assert.Len(t, accounts, 2)
	assert.Equal(t, "new", accounts[0].UserId)
}

func TestGetBalance(t *testing.T) {
	t.Run("Existing Balance", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetBalance", mock.Anything, "user-c", "USD").Return(&models.Balance{UserId: "user-c", Currency: "USD", AmountMinor: 4000}, true, nil)

		h := newHandler(mockStore)

		req := httptest.NewRequest(http.MethodGet, "/accounts/user-c/balance?currency=USD", nil)
		rr := httptest.NewRecorder()

		h.GetBalance(rr, req, "user-c")

		assert.Equal(t, http.StatusOK, rr.Code)

		var balance api.Balance
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &balance))
		assert.Equal(t, "40.00", balance.Balance)
	})

	t.Run("Never Held Currency Defaults To Zero", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetBalance", mock.Anything, "user-c", "EUR").Return(&models.Balance{UserId: "user-c", Currency: "EUR"}, false, nil)

		h := newHandler(mockStore)

		req := httptest.NewRequest(http.MethodGet, "/accounts/user-c/balance?currency=EUR", nil)
		rr := httptest.NewRecorder()

		h.GetBalance(rr, req, "user-c")

		assert.Equal(t, http.StatusOK, rr.Code)

		var balance api.Balance
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &balance))
		assert.Equal(t, "0.00", balance.Balance)
	})

	t.Run("Strict Mode 404s", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetBalance", mock.Anything, "user-c", "EUR").Return(&models.Balance{UserId: "user-c", Currency: "EUR"}, false, nil)

		h := newHandler(mockStore)

		req := httptest.NewRequest(http.MethodGet, "/accounts/user-c/balance?currency=EUR&strict=1", nil)
		rr := httptest.NewRecorder()

		h.GetBalance(rr, req, "user-c")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Invalid Currency", func(t *testing.T) {
		h := newHandler(new(mocks.Storage))

		req := httptest.NewRequest(http.MethodGet, "/accounts/user-c/balance?currency=euros", nil)
		rr := httptest.NewRecorder()

		h.GetBalance(rr, req, "user-c")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
