// Package crm provides the HTTP client that mirrors order status changes to
// the third-party CRM. Authentication uses a short-lived bearer token held in
// an injected token cache; a rejected token is invalidated and the call is
// retried once with a fresh one.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"freight/internal/pkg/tokencache"
)

// Client pushes order statuses to the CRM over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *tokencache.TokenCache
}

// NewClient creates a CRM client against baseURL. The token cache is an
// injected dependency so tests and other integrations can supply their own.
func NewClient(baseURL string, tokens *tokencache.TokenCache) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
	}
}

type statusPayload struct {
	BookingRef string `json:"booking_ref"`
	Status     string `json:"status"`
}

// PushOrderStatus reports an order's current overall status to the CRM.
// A 401 invalidates the cached token and retries once.
func (c *Client) PushOrderStatus(ctx context.Context, bookingRef, status string) error {
	payload, err := json.Marshal(statusPayload{BookingRef: bookingRef, Status: status})
	if err != nil {
		return err
	}

	code, err := c.post(ctx, payload)
	if err != nil {
		return err
	}
	if code == http.StatusUnauthorized {
		c.tokens.Invalidate()
		code, err = c.post(ctx, payload)
		if err != nil {
			return err
		}
	}

	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		return fmt.Errorf("crm returned status %d for order %s", code, bookingRef)
	}
	return nil
}

func (c *Client) post(ctx context.Context, payload []byte) (int, error) {
	token, err := c.tokens.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("crm token: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/orders/status", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
