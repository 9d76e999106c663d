package discovery

import (
	"context"
	"fmt"
	"sort"

	"github.com/nocturnelabs/adascout/internal/programmable"
	scouterr "github.com/nocturnelabs/adascout/pkg/errors"
)

// Default scanning parameters.
const (
	// DefaultLookAhead is the standard gap limit for the payment-chain
	// pass. Scanning stops after this many consecutive unused payment
	// indices plus one.
	DefaultLookAhead = 20

	// StakeChainLookAhead is the fixed lookahead for the stake-chain pass.
	// Multi-delegation wallets rarely reach past a handful of stake keys,
	// so this is deliberately decoupled from the caller-supplied payment
	// lookahead and not configurable.
	StakeChainLookAhead = 5
)

// ErrInvalidLookAhead indicates a negative lookahead count.
var ErrInvalidLookAhead = &scouterr.ScoutError{
	Code:     "INVALID_LOOKAHEAD",
	Message:  "lookahead count must not be negative",
	ExitCode: scouterr.ExitInput,
}

// ErrMissingStakeKeyPath indicates an address without a stake-key
// derivation path reached the final sort. Every address produced by an
// Account or by the programmable transform carries one; its absence means
// the account capability is broken, so discovery fails fast instead of
// silently defaulting the sort key.
var ErrMissingStakeKeyPath = &scouterr.ScoutError{
	Code:     "MISSING_STAKE_KEY_PATH",
	Message:  "discovered address has no stake-key derivation path",
	ExitCode: scouterr.ExitDerivation,
}

// Options configures a discovery run.
type Options struct {
	// LookAhead is the gap limit for the payment-chain pass.
	// Default: DefaultLookAhead (20). Zero is valid and stops the scan
	// at the first unused payment index.
	LookAhead int
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() *Options {
	return &Options{LookAhead: DefaultLookAhead}
}

// Validate checks that the options are valid.
func (o *Options) Validate() error {
	if o.LookAhead < 0 {
		return scouterr.WithDetails(ErrInvalidLookAhead,
			map[string]string{"value": fmt.Sprintf("%d", o.LookAhead)})
	}
	return nil
}

// Discover reconstructs the full address set of an account from chain
// history. It returns the discovered addresses plus one programmable-token
// variant per discovered address, deduplicated and sorted ascending by
// (index, stake-key index).
//
// The address at payment index 0, external branch, stake index 0 is always
// included without a usage check and is always the first entry; downstream
// wallet initialization depends on that position. Either the complete list
// is returned or the first failure aborts the whole run; there are no
// partial results.
func Discover(ctx context.Context, account Account, provider ChainHistoryProvider, opts *Options) ([]GroupedAddress, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// The canonical address is included unconditionally; its internal
	// sibling only when it has history.
	canonical, err := account.DeriveAddress(ctx, DerivationPath{Index: 0, Type: External}, 0)
	if err != nil {
		return nil, fmt.Errorf("deriving canonical address: %w", err)
	}

	internal0, err := account.DeriveAddress(ctx, DerivationPath{Index: 0, Type: Internal}, 0)
	if err != nil {
		return nil, fmt.Errorf("deriving change address: %w", err)
	}

	addrs := []GroupedAddress{canonical}

	used, err := addressHasHistory(ctx, provider, internal0.Address)
	if err != nil {
		return nil, fmt.Errorf("checking change address history: %w", err)
	}
	if used {
		addrs = append(addrs, internal0)
	}

	// Stake-chain pass: payment index pinned to 0, stake indices offset by
	// one since stake index 0 is covered above.
	stakeFound, err := scanChain(ctx, account, provider, StakeChainLookAhead,
		func(i uint32, t AddressType) (DerivationPath, uint32) {
			return DerivationPath{Index: 0, Type: t}, i + 1
		})
	if err != nil {
		return nil, fmt.Errorf("stake-chain scan: %w", err)
	}

	// Payment-chain pass: stake index pinned to 0, payment indices offset
	// by one.
	payFound, err := scanChain(ctx, account, provider, uint32(opts.LookAhead), //nolint:gosec // G115: Validate rejects negative lookahead
		func(i uint32, t AddressType) (DerivationPath, uint32) {
			return DerivationPath{Index: i + 1, Type: t}, 0
		})
	if err != nil {
		return nil, fmt.Errorf("payment-chain scan: %w", err)
	}

	addrs = append(addrs, stakeFound...)
	addrs = append(addrs, payFound...)
	merged := dedupeByAddress(addrs)

	withProgrammable, err := appendProgrammable(merged)
	if err != nil {
		return nil, err
	}

	if err := sortAddresses(withProgrammable); err != nil {
		return nil, err
	}

	return withProgrammable, nil
}

// dedupeByAddress removes duplicate encoded addresses, keeping the
// first-seen entry and its position.
func dedupeByAddress(addrs []GroupedAddress) []GroupedAddress {
	seen := make(map[string]struct{}, len(addrs))
	result := make([]GroupedAddress, 0, len(addrs))
	for _, a := range addrs {
		if _, ok := seen[a.Address]; ok {
			continue
		}
		seen[a.Address] = struct{}{}
		result = append(result, a)
	}
	return result
}

// appendProgrammable returns the input addresses followed by one
// programmable-token variant per input. Variants take indices strictly
// above every organic index: max index plus 1-based list position, so
// relative ordering is preserved and the ranges stay disjoint.
func appendProgrammable(addrs []GroupedAddress) ([]GroupedAddress, error) {
	var maxIndex uint32
	for _, a := range addrs {
		if a.Index > maxIndex {
			maxIndex = a.Index
		}
	}

	result := make([]GroupedAddress, 0, 2*len(addrs))
	result = append(result, addrs...)

	for pos, a := range addrs {
		encoded, err := programmable.FromAddress(a.Address, a.NetworkID)
		if err != nil {
			return nil, fmt.Errorf("deriving programmable address for %s: %w", a.Address, err)
		}

		prog := a
		prog.Address = encoded
		prog.Index = maxIndex + uint32(pos) + 1 //nolint:gosec // G115: pos is bounded by the discovered address count
		result = append(result, prog)
	}

	return result, nil
}

// sortAddresses orders entries ascending by (index, stake-key index).
// A missing stake-key path is an invariant violation, not a sortable state.
func sortAddresses(addrs []GroupedAddress) error {
	for _, a := range addrs {
		if a.StakeKeyDerivationPath == nil {
			return scouterr.WithDetails(ErrMissingStakeKeyPath,
				map[string]string{"address": a.Address})
		}
	}

	sort.SliceStable(addrs, func(i, j int) bool {
		if addrs[i].Index != addrs[j].Index {
			return addrs[i].Index < addrs[j].Index
		}
		return addrs[i].StakeKeyDerivationPath.Index < addrs[j].StakeKeyDerivationPath.Index
	})

	return nil
}
