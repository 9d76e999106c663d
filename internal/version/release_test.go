package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseClientLatestRelease(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/nocturnelabs/adascout/releases/latest", r.URL.Path)
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		assert.Contains(t, r.Header.Get("User-Agent"), "adascout/")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name": "v1.2.3", "name": "1.2.3", "draft": false, "prerelease": false}`))
	}))
	defer server.Close()

	client := NewReleaseClient(WithBaseURL(server.URL))
	release, err := client.LatestRelease(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", release.TagName)
	assert.False(t, release.Draft)
	assert.False(t, release.Prerelease)
}

func TestReleaseClientAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewReleaseClient(WithBaseURL(server.URL))
	release, err := client.LatestRelease(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrReleaseAPIFailed)
	assert.Nil(t, release)
	assert.Contains(t, err.Error(), "status 403")
}

func TestReleaseClientMalformedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewReleaseClient(WithBaseURL(server.URL))
	_, err := client.LatestRelease(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestReleaseClientContextCanceled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "v1.0.0"}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewReleaseClient(WithBaseURL(server.URL))
	_, err := client.LatestRelease(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewReleaseClientDefaults(t *testing.T) {
	t.Parallel()

	client := NewReleaseClient()
	assert.Equal(t, defaultReleaseBaseURL, client.baseURL)
	assert.Equal(t, defaultReleaseTimeout, client.httpClient.Timeout)

	custom := &http.Client{}
	withClient := NewReleaseClient(WithHTTPClient(custom))
	assert.Same(t, custom, withClient.httpClient)

	trimmed := NewReleaseClient(WithBaseURL("https://example.com/"))
	assert.Equal(t, "https://example.com", trimmed.baseURL)
}
