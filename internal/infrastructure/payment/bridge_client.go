// Package payment реализует HTTP-клиент платёжного моста.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

type BridgeClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewBridgeClient(baseURL, apiKey string, timeout time.Duration) *BridgeClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &BridgeClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type intentRequest struct {
	Amount int64 `json:"amount"`
}

type intentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type connectRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type connectResponse struct {
	URL       string `json:"url"`
	AccountID string `json:"accountId"`
}

type transferRequest struct {
	Amount      int64  `json:"amount"`
	Destination string `json:"destination"`
}

type transferResponse struct {
	Transfer string `json:"transfer"`
}

// ErrorResponse: тело ошибки моста.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *ErrorResponse) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("payment bridge: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("payment bridge: unexpected status %d", e.StatusCode)
}

func (c *BridgeClient) CreatePaymentIntent(ctx context.Context, amount valueobject.Money) (*gateway.PaymentIntent, error) {
	var resp intentResponse
	if err := c.post(ctx, "/payments/intent", intentRequest{Amount: amount.Cents()}, &resp); err != nil {
		return nil, err
	}
	if resp.ClientSecret == "" {
		return nil, fmt.Errorf("payment bridge: empty client secret")
	}
	return &gateway.PaymentIntent{ClientSecret: resp.ClientSecret}, nil
}

func (c *BridgeClient) CreateConnectAccount(ctx context.Context, userID uuid.UUID, email string) (*gateway.ConnectAccount, error) {
	var resp connectResponse
	if err := c.post(ctx, "/payments/connect", connectRequest{UserID: userID.String(), Email: email}, &resp); err != nil {
		return nil, err
	}
	if resp.AccountID == "" {
		return nil, fmt.Errorf("payment bridge: empty account id")
	}
	return &gateway.ConnectAccount{URL: resp.URL, AccountID: resp.AccountID}, nil
}

func (c *BridgeClient) CreateTransfer(ctx context.Context, amount valueobject.Money, destination string) (*gateway.Transfer, error) {
	var resp transferResponse
	body := transferRequest{Amount: amount.Cents(), Destination: destination}
	if err := c.post(ctx, "/payments/transfer", body, &resp); err != nil {
		return nil, err
	}
	return &gateway.Transfer{ID: resp.Transfer}, nil
}

func (c *BridgeClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("payment bridge: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("payment bridge: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payment bridge: request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("payment bridge: failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &ErrorResponse{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(respBody, apiErr)
		return apiErr
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("payment bridge: failed to decode response: %w", err)
	}
	return nil
}

var _ gateway.PaymentGateway = (*BridgeClient)(nil)
