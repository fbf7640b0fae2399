package subscriptions

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cbailey/wallet-ledger/pkg/api"
	"github.com/cbailey/wallet-ledger/pkg/handlers"
	"github.com/cbailey/wallet-ledger/pkg/mapping"
	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/money"
	"github.com/cbailey/wallet-ledger/pkg/subscriptions"
	"github.com/cbailey/wallet-ledger/pkg/websockets"
)

// SubscriptionsHandler holds the dependencies for subscription billing
// handlers.
type SubscriptionsHandler struct {
	Subscriptions *subscriptions.Service
	Publisher     websockets.Publisher
}

// NewSubscriptionsHandler creates a new SubscriptionsHandler.
func NewSubscriptionsHandler(service *subscriptions.Service, publisher websockets.Publisher) *SubscriptionsHandler {
	return &SubscriptionsHandler{Subscriptions: service, Publisher: publisher}
}

// CreateSubscription charges the user's balance and activates a subscription
// in a single unit of work.
func (h *SubscriptionsHandler) CreateSubscription(w http.ResponseWriter, r *http.Request, userId string) {
	var req api.NewSubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteJSON(w, http.StatusBadRequest, api.Error{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	amountMinor, err := money.ParseAmount(req.Amount, req.Currency)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	sub, err := h.Subscriptions.Create(r.Context(), userId, req.Plan, amountMinor, req.Currency, daysToDuration(req.DurationDays))
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	h.publish(r, sub)
	handlers.WriteJSON(w, http.StatusCreated, api.SubscriptionResponse{
		Success:      true,
		Subscription: *mapping.ToApiSubscription(sub),
	})
}

// GetSubscription returns the user's subscription, lazily expiring it first so
// the caller never sees an active subscription past its expiry.
func (h *SubscriptionsHandler) GetSubscription(w http.ResponseWriter, r *http.Request, userId string) {
	sub, err := h.Subscriptions.CheckAndUpdateStatus(r.Context(), userId)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, mapping.ToApiSubscription(sub))
}

// ExtendSubscription pushes out the expiry of an active subscription without
// charging again.
func (h *SubscriptionsHandler) ExtendSubscription(w http.ResponseWriter, r *http.Request, userId string, subscriptionId string) {
	var req api.ExtendSubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteJSON(w, http.StatusBadRequest, api.Error{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	sub, err := h.Subscriptions.Extend(r.Context(), userId, subscriptionId, daysToDuration(req.DurationDays))
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	h.publish(r, sub)
	handlers.WriteJSON(w, http.StatusOK, api.SubscriptionResponse{
		Success:      true,
		Subscription: *mapping.ToApiSubscription(sub),
	})
}

func (h *SubscriptionsHandler) publish(r *http.Request, sub *models.Subscription) {
	if h.Publisher == nil {
		return
	}
	msg := websockets.Message{
		Type: websockets.MessageTypeSubscriptionUpdate,
		Payload: websockets.SubscriptionUpdatePayload{
			UserID:         sub.UserId,
			SubscriptionID: sub.Id,
			Plan:           sub.Plan,
			Status:         string(sub.Status),
			ExpiresAt:      sub.ExpiresAt.Format(time.RFC3339),
		},
	}
	if err := h.Publisher.Publish(r.Context(), msg); err != nil {
		slog.Error("failed to publish subscription update", "subscription_id", sub.Id, "error", err)
	}
}

func daysToDuration(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
