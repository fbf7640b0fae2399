package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// restProvider implements Gateway against a provider's REST API. Both supported
// providers expose the same minimal payments surface, so they share the client
// and differ only in name, endpoint, credentials, and fee schedule.
type restProvider struct {
	name    string
	baseURL string
	apiKey  string
	fees    FeeSchedule
	client  *http.Client
}

func newRESTProvider(name, baseURL, apiKey string, fees FeeSchedule) *restProvider {
	return &restProvider{
		name:    name,
		baseURL: baseURL,
		apiKey:  apiKey,
		fees:    fees,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Make sure we conform to the interface
var _ Gateway = (*restProvider)(nil)

func (p *restProvider) Name() string {
	return p.name
}

type paymentRequest struct {
	UserID      string `json:"user_id"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Direction   string `json:"direction"`
	ClientRef   string `json:"client_reference"`
}

type paymentResponse struct {
	Reference   string `json:"reference"`
	Status      string `json:"status"`
	AmountMinor int64  `json:"amount_minor,omitempty"`
	Currency    string `json:"currency,omitempty"`
	FeeMinor    int64  `json:"fee_minor,omitempty"`
	Error       string `json:"error,omitempty"`
}

func (p *restProvider) InitiateTopUp(ctx context.Context, req Request) (*Receipt, error) {
	return p.initiate(ctx, req, "inbound")
}

func (p *restProvider) InitiateWithdrawal(ctx context.Context, req Request) (*Receipt, error) {
	return p.initiate(ctx, req, "outbound")
}

func (p *restProvider) initiate(ctx context.Context, req Request, direction string) (*Receipt, error) {
	resp, err := p.post(ctx, "/v1/payments", paymentRequest{
		UserID:      req.UserID,
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		Direction:   direction,
		ClientRef:   req.Reference,
	})
	if err != nil {
		return nil, err
	}

	return &Receipt{
		Reference: resp.Reference,
		FeeMinor:  p.fees.Apply(req.AmountMinor, req.Currency),
		Status:    normalizeStatus(resp.Status),
	}, nil
}

func (p *restProvider) ConfirmTopUp(ctx context.Context, reference string) (*Receipt, error) {
	resp, err := p.get(ctx, "/v1/payments/"+reference)
	if err != nil {
		return nil, err
	}

	// The confirm path must report the same fee the initiate path would have:
	// prefer the provider's own figure, fall back to the deterministic schedule.
	fee := resp.FeeMinor
	if fee == 0 && resp.AmountMinor > 0 {
		fee = p.fees.Apply(resp.AmountMinor, resp.Currency)
	}

	return &Receipt{
		Reference: resp.Reference,
		FeeMinor:  fee,
		Status:    normalizeStatus(resp.Status),
	}, nil
}

func (p *restProvider) CheckStatus(ctx context.Context, reference string) (Status, error) {
	resp, err := p.get(ctx, "/v1/payments/"+reference)
	if err != nil {
		return "", err
	}
	return normalizeStatus(resp.Status), nil
}

func (p *restProvider) post(ctx context.Context, path string, body any) (*paymentResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", p.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", p.name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return p.do(req)
}

func (p *restProvider) get(ctx context.Context, path string) (*paymentResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", p.name, err)
	}

	return p.do(req)
}

func (p *restProvider) do(req *http.Request) (*paymentResponse, error) {
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	httpResp, err := p.client.Do(req)
	if err != nil {
		return nil, p.wrapTransport(err)
	}
	defer httpResp.Body.Close()

	var resp paymentResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: %s returned malformed response: %w", ErrProvider, p.name, err)
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: %s: %s (HTTP %d)", ErrProvider, p.name, resp.Error, httpResp.StatusCode)
	}

	return &resp, nil
}

// wrapTransport classifies a transport error, preserving the error chain. A
// timeout means the provider may have processed the request; it must surface as
// ErrTimeout so callers leave the operation pending instead of failing it.
func (p *restProvider) wrapTransport(err error) error {
	var netErr net.Error
	if (errors.As(err, &netErr) && netErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w", ErrTimeout, p.name, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrProvider, p.name, err)
}

func normalizeStatus(s string) Status {
	switch s {
	case "succeeded", "completed", "captured":
		return StatusSucceeded
	case "failed", "declined", "canceled":
		return StatusFailed
	default:
		return StatusPending
	}
}
