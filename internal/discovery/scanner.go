package discovery

import (
	"context"
	"fmt"
)

// PathFunc maps a scan position to the payment path and stake index to
// probe there. It encodes which dimension a pass varies and which it holds
// fixed: the stake-chain pass returns a fixed payment index with a moving
// stake index, the payment-chain pass the opposite.
type PathFunc func(index uint32, addrType AddressType) (DerivationPath, uint32)

// scanChain walks one index chain with gap-limit lookahead and returns the
// candidate addresses found to have history, in probe order.
//
// At every position both the external and the internal address are derived
// and checked, external first. A hit on either resets the gap counter; the
// scan stops once lookAhead+1 consecutive positions were empty on both
// branches. With lookAhead = 0 that means the very first empty position
// ends the scan.
//
// The first derivation or provider failure aborts the pass and propagates.
func scanChain(ctx context.Context, account Account, provider ChainHistoryProvider, lookAhead uint32, pathFor PathFunc) ([]GroupedAddress, error) {
	var found []GroupedAddress

	for index, gap := uint32(0), uint32(0); gap <= lookAhead; index++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		extPath, extStake := pathFor(index, External)
		intPath, intStake := pathFor(index, Internal)

		extAddr, err := account.DeriveAddress(ctx, extPath, extStake)
		if err != nil {
			return nil, fmt.Errorf("deriving external address at position %d: %w", index, err)
		}
		intAddr, err := account.DeriveAddress(ctx, intPath, intStake)
		if err != nil {
			return nil, fmt.Errorf("deriving internal address at position %d: %w", index, err)
		}

		extUsed, err := addressHasHistory(ctx, provider, extAddr.Address)
		if err != nil {
			return nil, fmt.Errorf("checking history at position %d: %w", index, err)
		}
		intUsed, err := addressHasHistory(ctx, provider, intAddr.Address)
		if err != nil {
			return nil, fmt.Errorf("checking history at position %d: %w", index, err)
		}

		if extUsed || intUsed {
			if extUsed {
				found = append(found, extAddr)
			}
			if intUsed {
				found = append(found, intAddr)
			}
			gap = 0
			continue
		}
		gap++
	}

	return found, nil
}
