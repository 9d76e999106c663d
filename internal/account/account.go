// Package account implements the software HD account capability used by
// discovery. It derives payment and stake key pairs from a seed along
// fixed role branches and assembles base addresses plus reward accounts.
// Key material never leaves this package; callers only see encoded
// addresses and credential hashes.
package account

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	bip32 "github.com/tyler-smith/go-bip32"
	"golang.org/x/crypto/blake2b"

	"github.com/nocturnelabs/adascout/internal/address"
	"github.com/nocturnelabs/adascout/internal/discovery"
	scouterr "github.com/nocturnelabs/adascout/pkg/errors"
)

// Derivation constants for the account key tree:
// m / purpose' / coinType' / account' / role / index.
const (
	purposeIndex  = 1852
	coinTypeIndex = 1815

	roleExternal uint32 = 0
	roleInternal uint32 = 1
	roleStake    uint32 = 2
)

// Account is a software HD account rooted at a seed. Safe for concurrent
// use after construction: derivation reads immutable branch keys only.
type Account struct {
	network      address.NetworkID
	accountIndex uint32

	external *bip32.Key
	internal *bip32.Key
	stake    *bip32.Key

	fingerprint string
}

// New derives the account-level branches for accountIndex from the seed.
// The seed is not retained.
func New(seed []byte, accountIndex uint32, network address.NetworkID) (*Account, error) {
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, scouterr.Wrap(err, "creating master key")
	}

	accountKey, err := deriveHardened(master, purposeIndex, coinTypeIndex, accountIndex)
	if err != nil {
		return nil, err
	}

	external, err := accountKey.NewChildKey(roleExternal)
	if err != nil {
		return nil, scouterr.Wrap(err, "deriving external branch")
	}
	internal, err := accountKey.NewChildKey(roleInternal)
	if err != nil {
		return nil, scouterr.Wrap(err, "deriving internal branch")
	}
	stake, err := accountKey.NewChildKey(roleStake)
	if err != nil {
		return nil, scouterr.Wrap(err, "deriving stake branch")
	}

	return &Account{
		network:      network,
		accountIndex: accountIndex,
		external:     external,
		internal:     internal,
		stake:        stake,
		fingerprint:  fingerprint(accountKey.PublicKey().Key, accountIndex, network),
	}, nil
}

// NetworkID returns the network the account derives addresses for.
func (a *Account) NetworkID() address.NetworkID {
	return a.network
}

// AccountIndex returns the hardened account index of this account.
func (a *Account) AccountIndex() uint32 {
	return a.accountIndex
}

// Fingerprint returns a stable public identifier for this account on its
// network, suitable as a cache key. It reveals no key material beyond the
// hash of the account public key.
func (a *Account) Fingerprint() string {
	return a.fingerprint
}

// DeriveAddress implements discovery.Account. It derives the payment key
// at the given branch position, the stake key at stakeIndex, and returns
// the base address grouping both with the matching reward account.
func (a *Account) DeriveAddress(ctx context.Context, paymentPath discovery.DerivationPath, stakeIndex uint32) (discovery.GroupedAddress, error) {
	if err := ctx.Err(); err != nil {
		return discovery.GroupedAddress{}, err
	}

	branch := a.external
	if paymentPath.Type == discovery.Internal {
		branch = a.internal
	}

	paymentKey, err := branch.NewChildKey(paymentPath.Index)
	if err != nil {
		return discovery.GroupedAddress{}, scouterr.Wrap(
			scouterr.WithDetails(scouterr.ErrDerivationFailed, map[string]string{
				"branch": paymentPath.Type.String(),
				"index":  fmt.Sprintf("%d", paymentPath.Index),
			}), "deriving payment key: %v", err)
	}

	stakeKey, err := a.stake.NewChildKey(stakeIndex)
	if err != nil {
		return discovery.GroupedAddress{}, scouterr.Wrap(
			scouterr.WithDetails(scouterr.ErrDerivationFailed, map[string]string{
				"branch": "stake",
				"index":  fmt.Sprintf("%d", stakeIndex),
			}), "deriving stake key: %v", err)
	}

	paymentCred := address.Credential{
		Hash: keyHash(paymentKey.PublicKey().Key),
		Type: address.KeyHash,
	}
	stakeCred := address.Credential{
		Hash: keyHash(stakeKey.PublicKey().Key),
		Type: address.KeyHash,
	}

	encoded, err := address.EncodeBase(a.network, paymentCred, stakeCred)
	if err != nil {
		return discovery.GroupedAddress{}, err
	}

	reward, err := address.EncodeReward(a.network, stakeCred)
	if err != nil {
		return discovery.GroupedAddress{}, err
	}

	return discovery.GroupedAddress{
		Type:                   paymentPath.Type,
		Index:                  paymentPath.Index,
		AccountIndex:           a.accountIndex,
		NetworkID:              a.network,
		Address:                encoded,
		RewardAccount:          reward,
		StakeKeyDerivationPath: &discovery.StakeKeyDerivationPath{Index: stakeIndex},
	}, nil
}

// deriveHardened walks m / purpose' / coinType' / account'.
func deriveHardened(master *bip32.Key, purpose, coinType, accountIndex uint32) (*bip32.Key, error) {
	purposeKey, err := master.NewChildKey(bip32.FirstHardenedChild + purpose)
	if err != nil {
		return nil, scouterr.Wrap(err, "deriving purpose key")
	}

	coinTypeKey, err := purposeKey.NewChildKey(bip32.FirstHardenedChild + coinType)
	if err != nil {
		return nil, scouterr.Wrap(err, "deriving coin type key")
	}

	accountKey, err := coinTypeKey.NewChildKey(bip32.FirstHardenedChild + accountIndex)
	if err != nil {
		return nil, scouterr.Wrap(err, "deriving account key")
	}

	return accountKey, nil
}

// keyHash computes the blake2b-224 credential hash of a public key.
func keyHash(pub []byte) []byte {
	h, err := blake2b.New(address.HashLen, nil)
	if err != nil {
		panic("account: blake2b init: " + err.Error())
	}
	h.Write(pub)
	return h.Sum(nil)
}

// fingerprint hashes the account public key with its index and network
// into a short hex identifier.
func fingerprint(accountPub []byte, accountIndex uint32, network address.NetworkID) string {
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], accountIndex)

	h, err := blake2b.New(16, nil)
	if err != nil {
		panic("account: blake2b init: " + err.Error())
	}
	h.Write(accountPub)
	h.Write(idx[:])
	h.Write([]byte{byte(network)})
	return hex.EncodeToString(h.Sum(nil))
}
