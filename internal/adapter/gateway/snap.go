package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/kasirapp/kasir/internal/config"
	"github.com/kasirapp/kasir/internal/domain"
	"github.com/kasirapp/kasir/internal/interfaces"
)

// SnapClient requests payment session tokens from the external processor.
// Every failure maps to one of two kinds: ErrGatewayMisconfigured when
// credentials are absent, ErrGatewayUnavailable for anything remote.
type SnapClient struct {
	baseURL   string
	serverKey string
	client    *http.Client
}

func NewSnapClient(cfg config.GatewayConfig) *SnapClient {
	return &SnapClient{
		baseURL:   cfg.BaseURL,
		serverKey: cfg.ServerKey,
		client:    &http.Client{Timeout: cfg.Timeout()},
	}
}

type transactionPayload struct {
	TransactionDetails transactionDetails `json:"transaction_details"`
	// Back-references so gateway callbacks can be correlated with the
	// internal order.
	CustomField1 string `json:"custom_field1"`
	CustomField2 string `json:"custom_field2"`
}

type transactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type transactionResponse struct {
	Token         string   `json:"token"`
	ErrorMessages []string `json:"error_messages,omitempty"`
}

func (c *SnapClient) CreateTransactionToken(ctx context.Context, req interfaces.TransactionRequest) (string, error) {
	if c.baseURL == "" || c.serverKey == "" {
		return "", domain.ErrGatewayMisconfigured
	}

	payload := transactionPayload{
		TransactionDetails: transactionDetails{
			OrderID:     req.ExternalID,
			GrossAmount: req.GrossAmount,
		},
		CustomField1: req.OrderID,
		CustomField2: req.OrderCode,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal transaction payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/snap/v1/transactions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.SetBasicAuth(c.serverKey, "")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: gateway returned %d: %s",
			domain.ErrGatewayUnavailable, resp.StatusCode, string(respBody))
	}

	var parsed transactionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: failed to parse gateway response: %v", domain.ErrGatewayUnavailable, err)
	}
	if parsed.Token == "" {
		return "", fmt.Errorf("%w: gateway returned empty token", domain.ErrGatewayUnavailable)
	}

	return parsed.Token, nil
}
