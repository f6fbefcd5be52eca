// Package splitwise implements the ledger interface against the Splitwise
// REST API. Only the create_expense endpoint is used, and the expense is
// always split equally across the group.
//
// There is no maintained Splitwise SDK for Go, so this is a minimal
// hand-rolled client over net/http.
package splitwise

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chris/splitwise-sync/pkg/ledger"
)

const defaultBaseURL = "https://secure.splitwise.com/api/v3.0"

// Client talks to the Splitwise API with a bearer API key.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// New creates a Client. baseURL overrides the production endpoint when
// non-empty, which the tests use to point at a local server.
func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Make sure we conform to the interface
var _ ledger.Ledger = (*Client)(nil)

// createExpenseRequest mirrors the create_expense call. Splitwise expects
// cost as a decimal string.
type createExpenseRequest struct {
	Cost           string `json:"cost"`
	Description    string `json:"description"`
	Details        string `json:"details,omitempty"`
	Date           string `json:"date"`
	RepeatInterval string `json:"repeat_interval"`
	CurrencyCode   string `json:"currency_code"`
	CategoryID     int64  `json:"category_id"`
	GroupID        int64  `json:"group_id"`
	SplitEqually   bool   `json:"split_equally"`
}

// createExpenseResponse carries the API-level errors map, which Splitwise
// populates even on HTTP 200 responses.
type createExpenseResponse struct {
	Errors map[string]any `json:"errors"`
}

// CreateExpense records an equally-split expense in the configured group.
func (c *Client) CreateExpense(ctx context.Context, expense *ledger.Expense) error {
	payload := createExpenseRequest{
		Cost:           expense.Cost.String(),
		Description:    expense.Description,
		Details:        expense.Details,
		Date:           expense.Date.UTC().Format(time.RFC3339),
		RepeatInterval: "never",
		CurrencyCode:   expense.CurrencyCode,
		CategoryID:     0,
		GroupID:        expense.GroupID,
		SplitEqually:   true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal expense: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/create_expense", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build create_expense request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("create_expense request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("splitwise rejected expense: status %d: %s", resp.StatusCode, msg)
	}

	var parsed createExpenseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode create_expense response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return fmt.Errorf("splitwise rejected expense: %v", parsed.Errors)
	}

	return nil
}
