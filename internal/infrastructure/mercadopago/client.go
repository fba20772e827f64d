package mercadopago

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sorveteria-api/internal/config"
	"github.com/sorveteria-api/internal/domain"
)

// UpstreamError carries a non-success gateway response so the handler can
// relay the upstream status code and body.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("mercado pago returned %d: %s", e.StatusCode, e.Body)
}

// Client is a read-only Mercado Pago API client.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:     cfg.MPBaseURL,
		accessToken: cfg.MPAccessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// paymentResponse is the subset of GET /v1/payments/{id} this service consumes.
// The payment id is numeric in the gateway's JSON.
type paymentResponse struct {
	ID           json.Number `json:"id"`
	Status       string      `json:"status"`
	StatusDetail string      `json:"status_detail"`
}

// PaymentStatus looks up a payment and returns its normalized status.
// A single pass-through call: no retry, no caching.
func (c *Client) PaymentStatus(ctx context.Context, paymentID string) (*domain.PaymentStatus, error) {
	if c.accessToken == "" {
		return nil, fmt.Errorf("mercado pago access token: %w", domain.ErrNotConfigured)
	}

	url := fmt.Sprintf("%s/v1/payments/%s", c.baseURL, paymentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build payment request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment lookup: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var pr paymentResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("parse payment response: %w", err)
	}
	return &domain.PaymentStatus{
		PaymentID:    pr.ID.String(),
		Status:       pr.Status,
		StatusDetail: pr.StatusDetail,
	}, nil
}
