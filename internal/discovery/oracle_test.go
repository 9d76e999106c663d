package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scouterr "github.com/nocturnelabs/adascout/pkg/errors"
)

func TestAddressHasHistory(t *testing.T) {
	t.Parallel()

	provider := newMockProvider()
	provider.markUsed("addr_test1used")

	used, err := addressHasHistory(context.Background(), provider, "addr_test1used")
	require.NoError(t, err)
	assert.True(t, used)

	used, err = addressHasHistory(context.Background(), provider, "addr_test1fresh")
	require.NoError(t, err)
	assert.False(t, used)

	// Every probe is a single-address, limit-1, first-page query
	for _, q := range provider.queries {
		assert.Len(t, q.Addresses, 1)
		assert.Equal(t, Pagination{Limit: 1, StartAt: 0}, q.Pagination)
	}
}

func TestAddressHasHistoryPropagatesError(t *testing.T) {
	t.Parallel()

	provider := newMockProvider()
	provider.err = scouterr.ErrNetworkError

	used, err := addressHasHistory(context.Background(), provider, "addr_test1x")
	require.Error(t, err)
	assert.ErrorIs(t, err, scouterr.ErrNetworkError)
	assert.False(t, used)
}
