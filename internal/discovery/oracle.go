package discovery

import "context"

// addressHasHistory reports whether the address has ever appeared on
// chain. It issues a single limit-1 query: only the total count matters.
// Provider failures are propagated verbatim; no retries, no caching.
func addressHasHistory(ctx context.Context, provider ChainHistoryProvider, addr string) (bool, error) {
	page, err := provider.TransactionsByAddresses(ctx, TxsByAddressesArgs{
		Addresses:  []string{addr},
		Pagination: Pagination{Limit: 1, StartAt: 0},
	})
	if err != nil {
		return false, err
	}

	return page.TotalResultCount > 0, nil
}
