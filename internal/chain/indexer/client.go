// Package indexer provides the HTTP chain-history client used as the
// discovery engine's usage oracle backend.
package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nocturnelabs/adascout/internal/chain"
	"github.com/nocturnelabs/adascout/internal/discovery"
	scouterr "github.com/nocturnelabs/adascout/pkg/errors"
)

const (
	// defaultBaseURL is the public indexer endpoint.
	defaultBaseURL = "https://indexer.nocturne.dev"

	// defaultTimeout is the default HTTP request timeout.
	defaultTimeout = 30 * time.Second

	// maxResponseBodySize caps history responses; discovery only ever
	// asks for one transaction per page.
	maxResponseBodySize = 256 * 1024
)

// ClientOptions contains optional configuration for the indexer client.
type ClientOptions struct {
	// BaseURL overrides the default indexer URL.
	BaseURL string

	// APIKey is an optional key for higher rate limits.
	APIKey string

	// Throttle overrides the default request throttle.
	Throttle *chain.Throttle

	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
}

// Client queries an indexer for transaction history. It implements
// discovery.ChainHistoryProvider.
type Client struct {
	baseURL    string
	apiKey     string
	throttle   *chain.Throttle
	httpClient *http.Client
}

// NewClient creates a new indexer client.
func NewClient(opts *ClientOptions) *Client {
	c := &Client{
		baseURL:  defaultBaseURL,
		throttle: chain.DefaultThrottle(),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	if opts != nil {
		c.applyOptions(opts)
	}

	return c
}

// historyResponse is the wire shape of a transactions-by-addresses reply.
type historyResponse struct {
	TotalResultCount int `json:"total_result_count"`
	Transactions     []struct {
		ID string `json:"id"`
	} `json:"transactions"`
}

// TransactionsByAddresses implements discovery.ChainHistoryProvider.
// Transient failures (network errors, 429, 5xx) are marked retryable so a
// chain.WithRetry wrapper can act on them; everything else is fatal.
func (c *Client) TransactionsByAddresses(ctx context.Context, args discovery.TxsByAddressesArgs) (discovery.TxHistoryPage, error) {
	if err := c.throttle.Wait(ctx); err != nil {
		return discovery.TxHistoryPage{}, err
	}

	body, err := json.Marshal(args)
	if err != nil {
		return discovery.TxHistoryPage{}, fmt.Errorf("encoding history query: %w", err)
	}

	url := c.baseURL + "/v1/transactions/by-addresses"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return discovery.TxHistoryPage{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return discovery.TxHistoryPage{}, chain.WrapRetryable(
			fmt.Errorf("%w: %w", scouterr.ErrNetworkError, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain body to allow connection reuse
		_, _ = io.Copy(io.Discard, resp.Body)

		statusErr := scouterr.WithDetails(scouterr.ErrProviderFailure,
			map[string]string{"status": fmt.Sprintf("%d", resp.StatusCode)})

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return discovery.TxHistoryPage{}, fmt.Errorf("%w: %w", chain.ErrRateLimited, statusErr)
		case resp.StatusCode >= http.StatusInternalServerError:
			return discovery.TxHistoryPage{}, chain.WrapRetryable(statusErr)
		default:
			return discovery.TxHistoryPage{}, statusErr
		}
	}

	var decoded historyResponse
	limited := io.LimitReader(resp.Body, maxResponseBodySize)
	if err := json.NewDecoder(limited).Decode(&decoded); err != nil {
		return discovery.TxHistoryPage{}, fmt.Errorf("%w: decoding response: %w",
			scouterr.ErrProviderFailure, err)
	}

	page := discovery.TxHistoryPage{TotalResultCount: decoded.TotalResultCount}
	for _, tx := range decoded.Transactions {
		page.Transactions = append(page.Transactions, discovery.TxSummary{ID: tx.ID})
	}

	return page, nil
}

// applyOptions applies optional configuration.
func (c *Client) applyOptions(opts *ClientOptions) {
	if opts.BaseURL != "" {
		c.baseURL = opts.BaseURL
	}
	if opts.APIKey != "" {
		c.apiKey = opts.APIKey
	}
	if opts.Throttle != nil {
		c.throttle = opts.Throttle
	}
	if opts.HTTPClient != nil {
		c.httpClient = opts.HTTPClient
	}
}
