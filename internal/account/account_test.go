package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocturnelabs/adascout/internal/address"
	"github.com/nocturnelabs/adascout/internal/discovery"
)

// Compile-time check: Account satisfies the discovery capability.
var _ discovery.Account = (*Account)(nil)

// testSeed returns a deterministic 64-byte seed.
func testSeed(b byte) []byte {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = b
	}
	return seed
}

func TestNewAccount(t *testing.T) {
	t.Parallel()

	acct, err := New(testSeed(0x01), 0, address.Mainnet)
	require.NoError(t, err)

	assert.Equal(t, address.Mainnet, acct.NetworkID())
	assert.Equal(t, uint32(0), acct.AccountIndex())
	assert.NotEmpty(t, acct.Fingerprint())
}

func TestNewAccountRejectsBadSeed(t *testing.T) {
	t.Parallel()

	_, err := New([]byte{0x01}, 0, address.Mainnet)
	require.Error(t, err)
}

func TestDeriveAddressFields(t *testing.T) {
	t.Parallel()

	acct, err := New(testSeed(0x02), 3, address.Testnet)
	require.NoError(t, err)

	ga, err := acct.DeriveAddress(context.Background(),
		discovery.DerivationPath{Index: 7, Type: discovery.Internal}, 2)
	require.NoError(t, err)

	assert.Equal(t, discovery.Internal, ga.Type)
	assert.Equal(t, uint32(7), ga.Index)
	assert.Equal(t, uint32(3), ga.AccountIndex)
	assert.Equal(t, address.Testnet, ga.NetworkID)
	require.NotNil(t, ga.StakeKeyDerivationPath)
	assert.Equal(t, uint32(2), ga.StakeKeyDerivationPath.Index)

	// The payment address is a base address with key-hash credentials
	parsed, err := address.Parse(ga.Address)
	require.NoError(t, err)
	assert.Equal(t, address.BasePaymentKeyStakeKey, parsed.Kind)
	assert.Equal(t, address.Testnet, parsed.Network)
	assert.Equal(t, address.KeyHash, parsed.Payment.Type)
	assert.Equal(t, address.KeyHash, parsed.Stake.Type)

	// The reward account holds the same stake credential
	reward, err := address.Parse(ga.RewardAccount)
	require.NoError(t, err)
	assert.Equal(t, address.RewardKey, reward.Kind)
	assert.True(t, reward.Stake.Equal(*parsed.Stake))
}

func TestDeriveAddressDeterministic(t *testing.T) {
	t.Parallel()

	path := discovery.DerivationPath{Index: 4, Type: discovery.External}

	first, err := New(testSeed(0x03), 1, address.Mainnet)
	require.NoError(t, err)
	second, err := New(testSeed(0x03), 1, address.Mainnet)
	require.NoError(t, err)

	a, err := first.DeriveAddress(context.Background(), path, 1)
	require.NoError(t, err)
	b, err := second.DeriveAddress(context.Background(), path, 1)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

func TestDeriveAddressPositionsAreDistinct(t *testing.T) {
	t.Parallel()

	acct, err := New(testSeed(0x04), 0, address.Mainnet)
	require.NoError(t, err)

	base, err := acct.DeriveAddress(context.Background(),
		discovery.DerivationPath{Index: 0, Type: discovery.External}, 0)
	require.NoError(t, err)

	otherIndex, err := acct.DeriveAddress(context.Background(),
		discovery.DerivationPath{Index: 1, Type: discovery.External}, 0)
	require.NoError(t, err)
	assert.NotEqual(t, base.Address, otherIndex.Address)

	otherBranch, err := acct.DeriveAddress(context.Background(),
		discovery.DerivationPath{Index: 0, Type: discovery.Internal}, 0)
	require.NoError(t, err)
	assert.NotEqual(t, base.Address, otherBranch.Address)

	otherStake, err := acct.DeriveAddress(context.Background(),
		discovery.DerivationPath{Index: 0, Type: discovery.External}, 1)
	require.NoError(t, err)
	assert.NotEqual(t, base.Address, otherStake.Address)

	// Same payment credential, different stake: reward accounts differ too
	assert.NotEqual(t, base.RewardAccount, otherStake.RewardAccount)
}

func TestAccountsAreIsolated(t *testing.T) {
	t.Parallel()

	path := discovery.DerivationPath{Index: 0, Type: discovery.External}

	acct0, err := New(testSeed(0x05), 0, address.Mainnet)
	require.NoError(t, err)
	acct1, err := New(testSeed(0x05), 1, address.Mainnet)
	require.NoError(t, err)

	a, err := acct0.DeriveAddress(context.Background(), path, 0)
	require.NoError(t, err)
	b, err := acct1.DeriveAddress(context.Background(), path, 0)
	require.NoError(t, err)

	assert.NotEqual(t, a.Address, b.Address)
	assert.NotEqual(t, acct0.Fingerprint(), acct1.Fingerprint())
}

func TestFingerprintVariesByNetwork(t *testing.T) {
	t.Parallel()

	mainnet, err := New(testSeed(0x06), 0, address.Mainnet)
	require.NoError(t, err)
	testnet, err := New(testSeed(0x06), 0, address.Testnet)
	require.NoError(t, err)

	assert.NotEqual(t, mainnet.Fingerprint(), testnet.Fingerprint())
}

func TestDeriveAddressContextCanceled(t *testing.T) {
	t.Parallel()

	acct, err := New(testSeed(0x07), 0, address.Mainnet)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = acct.DeriveAddress(ctx, discovery.DerivationPath{Index: 0, Type: discovery.External}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
