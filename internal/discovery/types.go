// Package discovery recovers the on-chain address set of an HD account at
// restore time. Given an account capability and a chain-history provider it
// walks two independent derivation index spaces with gap-limit lookahead,
// keeps every address that has transaction history, and derives a
// programmable-token variant for each discovered address.
//
// The engine holds no state between runs: each call to Discover is
// independent and reentrant, and either returns a complete address set or
// fails with the first error it hits. Retry policy belongs to the caller,
// typically by wrapping the provider (see internal/chain.WithRetry).
package discovery

import (
	"context"

	"github.com/nocturnelabs/adascout/internal/address"
)

// AddressType distinguishes the external (receiving) branch from the
// internal (change) branch of the payment key tree.
type AddressType uint8

// Payment branch types.
const (
	External AddressType = 0
	Internal AddressType = 1
)

// String returns the branch name.
func (t AddressType) String() string {
	if t == Internal {
		return "internal"
	}
	return "external"
}

// DerivationPath identifies a payment-key branch position.
type DerivationPath struct {
	Index uint32      `json:"index"`
	Type  AddressType `json:"type"`
}

// StakeKeyDerivationPath records the stake-key index an address was
// derived with.
type StakeKeyDerivationPath struct {
	Index uint32 `json:"index"`
}

// GroupedAddress is a payment address grouped with its reward account and
// the derivation metadata both were produced from. Values are immutable
// once produced; they are created only by an Account implementation or by
// the programmable-address transform in Discover.
type GroupedAddress struct {
	Type                   AddressType             `json:"type"`
	Index                  uint32                  `json:"index"`
	AccountIndex           uint32                  `json:"account_index"`
	NetworkID              address.NetworkID       `json:"network_id"`
	Address                string                  `json:"address"`
	RewardAccount          string                  `json:"reward_account"`
	StakeKeyDerivationPath *StakeKeyDerivationPath `json:"stake_key_derivation_path,omitempty"`
}

// Account derives addresses for an HD account. Implementations own all key
// material; the discovery engine only ever sees encoded addresses.
// Derivation must be deterministic: equal inputs yield equal addresses.
type Account interface {
	// DeriveAddress derives the address at the given payment path and
	// stake index. May block on signing-device I/O.
	DeriveAddress(ctx context.Context, paymentPath DerivationPath, stakeIndex uint32) (GroupedAddress, error)
}

// Pagination bounds a chain-history query.
type Pagination struct {
	Limit   int `json:"limit"`
	StartAt int `json:"start_at"`
}

// TxsByAddressesArgs is the argument shape for history queries.
type TxsByAddressesArgs struct {
	Addresses  []string   `json:"addresses"`
	Pagination Pagination `json:"pagination"`
}

// TxSummary identifies one transaction in a history page.
type TxSummary struct {
	ID string `json:"id"`
}

// TxHistoryPage is one page of transaction history. Discovery only reads
// TotalResultCount; the transactions themselves are for other consumers.
type TxHistoryPage struct {
	TotalResultCount int         `json:"total_result_count"`
	Transactions     []TxSummary `json:"transactions,omitempty"`
}

// ChainHistoryProvider answers transaction-history queries. Discovery
// issues only single-address, limit-1 queries through it.
type ChainHistoryProvider interface {
	TransactionsByAddresses(ctx context.Context, args TxsByAddressesArgs) (TxHistoryPage, error)
}
