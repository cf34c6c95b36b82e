package midtrans

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNotFound indicates the gateway has no record of the order, which happens
// when the customer never opened the checkout page.
var ErrNotFound = errors.New("transaction not found at gateway")

const (
	// SandboxBaseURL is the Core API base URL for the Midtrans sandbox.
	SandboxBaseURL = "https://api.sandbox.midtrans.com"
	// ProductionBaseURL is the Core API base URL for production.
	ProductionBaseURL = "https://api.midtrans.com"

	sandboxSnapURL    = "https://app.sandbox.midtrans.com/snap/v1/transactions"
	productionSnapURL = "https://app.midtrans.com/snap/v1/transactions"
)

// Client is a minimal HTTP client for the Midtrans Core and Snap APIs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	snapURL    string
	serverKey  string
	debug      bool
}

// NewClient constructs a Midtrans client with sane defaults.
func NewClient(serverKey string, isProduction bool) *Client {
	baseURL := SandboxBaseURL
	snapURL := sandboxSnapURL
	if isProduction {
		baseURL = ProductionBaseURL
		snapURL = productionSnapURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		snapURL:    snapURL,
		serverKey:  serverKey,
		debug:      os.Getenv("ENV") == "development",
	}
}

// VerifyNotification checks the signature of an inbound webhook payload
// against this client's server key.
func (c *Client) VerifyNotification(n *Notification) bool {
	return VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, n.SignatureKey, c.serverKey)
}

// TransactionStatus queries the current gateway view of an order.
func (c *Client) TransactionStatus(ctx context.Context, orderID string) (*StatusResponse, error) {
	url := fmt.Sprintf("%s/v2/%s/status", c.baseURL, orderID)
	var resp StatusResponse
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return nil, err
	}
	// Midtrans encapsulates errors in the JSON body with a 404 status code.
	if resp.StatusCode == "404" {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	return &resp, nil
}

// CreateSnapTransaction creates a hosted checkout session and returns the
// Snap token plus redirect URL.
func (c *Client) CreateSnapTransaction(ctx context.Context, req *SnapRequest) (*SnapResponse, error) {
	var resp SnapResponse
	if err := c.doRequest(ctx, http.MethodPost, c.snapURL, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.ErrorMessages) > 0 {
		return nil, fmt.Errorf("snap transaction rejected: %s", resp.ErrorMessages[0])
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("snap transaction returned no token")
	}
	return &resp, nil
}

// doRequest performs an HTTP call with Basic auth (server key as username,
// empty password) and decodes the JSON response into result.
func (c *Client) doRequest(ctx context.Context, method, url string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		if c.debug {
			log.Debug().Str("url", url).RawJSON("request", payload).Msg("[MIDTRANS] Outgoing request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	auth := base64.StdEncoding.EncodeToString([]byte(c.serverKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("url", url).
			Int("status_code", resp.StatusCode).
			RawJSON("response", respBody).
			Msg("[MIDTRANS] Incoming response")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("midtrans authentication failed (check server key)")
	}

	// Midtrans frequently returns 200 with the disposition encapsulated in
	// the JSON body; decode regardless of status code.
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
