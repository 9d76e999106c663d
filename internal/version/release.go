package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"
)

// GitHub repository the published binaries come from.
const (
	releaseOwner = "nocturnelabs"
	releaseRepo  = "adascout"
)

const (
	defaultReleaseBaseURL = "https://api.github.com"
	defaultReleaseTimeout = 30 * time.Second
	maxErrorBodySize      = 1024      // 1KB limit for error response bodies
	maxReleaseBodySize    = 64 * 1024 // 64KB limit for success response bodies
)

// ErrReleaseAPIFailed indicates the release API returned a non-success status.
var ErrReleaseAPIFailed = errors.New("release API request failed")

// Release describes a published release.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
}

// ReleaseClient fetches release metadata from the GitHub API.
// Use NewReleaseClient to create a properly initialized client.
type ReleaseClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// ReleaseOption configures a ReleaseClient.
type ReleaseOption func(*ReleaseClient)

// WithBaseURL sets a custom base URL for the release API.
func WithBaseURL(url string) ReleaseOption {
	return func(c *ReleaseClient) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ReleaseOption {
	return func(c *ReleaseClient) {
		c.httpClient = client
	}
}

// NewReleaseClient creates a release client with the given options.
func NewReleaseClient(opts ...ReleaseOption) *ReleaseClient {
	c := &ReleaseClient{
		baseURL: defaultReleaseBaseURL,
		httpClient: &http.Client{
			Timeout: defaultReleaseTimeout,
		},
		userAgent: fmt.Sprintf("adascout/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// LatestRelease fetches the latest published release.
func (c *ReleaseClient) LatestRelease(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, releaseOwner, releaseRepo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Limit error body read to prevent memory exhaustion
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("%w: status %d: %s", ErrReleaseAPIFailed, resp.StatusCode, string(body))
	}

	var release Release
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReleaseBodySize)).Decode(&release); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &release, nil
}

// LatestVersion fetches the latest release tag using a default client.
func LatestVersion(ctx context.Context) (string, error) {
	release, err := NewReleaseClient().LatestRelease(ctx)
	if err != nil {
		return "", err
	}
	return release.TagName, nil
}
