package pms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Client wraps the back-office finance API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a new client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ping checks if the remote back-office API is available.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/health", c.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pms: health check returned %d", resp.StatusCode)
	}
	return nil
}

type transactionsPage struct {
	Transactions []Transaction `json:"transactions"`
	HasMore      bool          `json:"hasMore"`
}

// SearchTransactions returns the full ordered transaction batch for the
// property between from and to (inclusive calendar dates), walking every
// page of the paginated endpoint.
func (c *Client) SearchTransactions(ctx context.Context, propertyID string, from, to time.Time) ([]Transaction, error) {
	var all []Transaction
	for page := 1; ; page++ {
		result, err := c.fetchPage(ctx, propertyID, from, to, page)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Transactions...)
		if !result.HasMore {
			return all, nil
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, propertyID string, from, to time.Time, page int) (transactionsPage, error) {
	endpoint := fmt.Sprintf("%s/finance/properties/%s/transactions", c.baseURL, url.PathEscape(propertyID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return transactionsPage{}, fmt.Errorf("pms: build request: %w", err)
	}
	q := req.URL.Query()
	q.Set("from", from.Format(dateLayout))
	q.Set("to", to.Format(dateLayout))
	q.Set("page", fmt.Sprintf("%d", page))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transactionsPage{}, fmt.Errorf("pms: search transactions: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return transactionsPage{}, fmt.Errorf("pms: search transactions page %d: status %d: %s", page, resp.StatusCode, body)
	}
	var result transactionsPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return transactionsPage{}, fmt.Errorf("pms: decode transactions page %d: %w", page, err)
	}
	return result, nil
}
