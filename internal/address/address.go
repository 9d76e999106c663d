// Package address implements parsing, encoding, and credential handling
// for Shelley-era payment and reward addresses.
//
// An address carries a header byte (kind in the high nibble, network in
// the low nibble) followed by one or two 28-byte credential hashes. The
// human-readable encoding is bech32 with network-specific prefixes.
package address

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/btcsuite/btcd/btcutil/bech32"

	scouterr "github.com/nocturnelabs/adascout/pkg/errors"
)

// HashLen is the length in bytes of a credential hash (blake2b-224).
const HashLen = 28

// NetworkID identifies the target network encoded in an address header.
type NetworkID uint8

// Known network identifiers.
const (
	Testnet NetworkID = 0
	Mainnet NetworkID = 1
)

// String returns the network name.
func (n NetworkID) String() string {
	if n == Mainnet {
		return "mainnet"
	}
	return "testnet"
}

// CredentialType distinguishes key-hash from script-hash credentials.
type CredentialType uint8

// Credential types.
const (
	KeyHash CredentialType = iota
	ScriptHashCredential
)

// String returns the credential type name.
func (t CredentialType) String() string {
	if t == ScriptHashCredential {
		return "script-hash"
	}
	return "key-hash"
}

// Credential is a payment or stake credential: a 28-byte hash plus its type.
type Credential struct {
	Hash []byte
	Type CredentialType
}

// Equal reports whether two credentials have the same type and hash.
func (c Credential) Equal(other Credential) bool {
	return c.Type == other.Type && bytes.Equal(c.Hash, other.Hash)
}

// Kind is the closed set of address kinds, as encoded in the header's
// high nibble. Byron is synthetic: bootstrap addresses are base58, not
// bech32, and carry no header nibble.
type Kind uint8

// Address kinds.
const (
	BasePaymentKeyStakeKey       Kind = 0x00
	BasePaymentScriptStakeKey    Kind = 0x01
	BasePaymentKeyStakeScript    Kind = 0x02
	BasePaymentScriptStakeScript Kind = 0x03
	PointerKey                   Kind = 0x04
	PointerScript                Kind = 0x05
	EnterpriseKey                Kind = 0x06
	EnterpriseScript             Kind = 0x07
	RewardKey                    Kind = 0x0E
	RewardScript                 Kind = 0x0F
	Byron                        Kind = 0x08
)

// String returns a short name for the address kind.
func (k Kind) String() string {
	switch k {
	case BasePaymentKeyStakeKey, BasePaymentScriptStakeKey,
		BasePaymentKeyStakeScript, BasePaymentScriptStakeScript:
		return "base"
	case PointerKey, PointerScript:
		return "pointer"
	case EnterpriseKey, EnterpriseScript:
		return "enterprise"
	case RewardKey, RewardScript:
		return "reward"
	case Byron:
		return "byron"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(k))
	}
}

// base58Regex matches the bootstrap (Byron) base58 alphabet.
var base58Regex = regexp.MustCompile("^[1-9A-HJ-NP-Za-km-z]{20,}$")

// Parsed is the decoded form of an address.
type Parsed struct {
	Kind    Kind
	Network NetworkID
	// Payment is the payment credential, nil for reward and Byron kinds.
	Payment *Credential
	// Stake is the stake credential, nil unless the address is base or reward.
	Stake *Credential
}

// Parse decodes a bech32 payment or reward address. Bootstrap addresses
// are recognized but not decoded: they carry no Shelley credentials.
//
//nolint:gocyclo // Exhaustive kind dispatch over the header nibble
func Parse(addr string) (*Parsed, error) {
	hrp, data5, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		// Not bech32 at all. Bootstrap addresses are base58.
		if base58Regex.MatchString(addr) {
			return &Parsed{Kind: Byron}, nil
		}
		return nil, scouterr.WithDetails(scouterr.ErrInvalidAddress,
			map[string]string{"address": addr})
	}

	switch hrp {
	case "addr", "addr_test", "stake", "stake_test":
	default:
		return nil, scouterr.WithDetails(scouterr.ErrInvalidAddress,
			map[string]string{"prefix": hrp})
	}

	payload, err := bech32.ConvertBits(data5, 5, 8, false)
	if err != nil || len(payload) == 0 {
		return nil, scouterr.WithDetails(scouterr.ErrInvalidAddress,
			map[string]string{"address": addr})
	}

	header := payload[0]
	kind := Kind(header >> 4)
	network := NetworkID(header & 0x0F)
	body := payload[1:]

	parsed := &Parsed{Kind: kind, Network: network}

	switch kind {
	case BasePaymentKeyStakeKey, BasePaymentScriptStakeKey,
		BasePaymentKeyStakeScript, BasePaymentScriptStakeScript:
		if len(body) != 2*HashLen {
			return nil, scouterr.WithDetails(scouterr.ErrInvalidAddress,
				map[string]string{"address": addr})
		}
		parsed.Payment = &Credential{
			Hash: append([]byte(nil), body[:HashLen]...),
			Type: paymentCredentialType(kind),
		}
		parsed.Stake = &Credential{
			Hash: append([]byte(nil), body[HashLen:]...),
			Type: stakeCredentialType(kind),
		}
	case EnterpriseKey, EnterpriseScript:
		if len(body) != HashLen {
			return nil, scouterr.WithDetails(scouterr.ErrInvalidAddress,
				map[string]string{"address": addr})
		}
		parsed.Payment = &Credential{
			Hash: append([]byte(nil), body...),
			Type: paymentCredentialType(kind),
		}
	case RewardKey, RewardScript:
		if len(body) != HashLen {
			return nil, scouterr.WithDetails(scouterr.ErrInvalidAddress,
				map[string]string{"address": addr})
		}
		stakeType := KeyHash
		if kind == RewardScript {
			stakeType = ScriptHashCredential
		}
		parsed.Stake = &Credential{
			Hash: append([]byte(nil), body...),
			Type: stakeType,
		}
	case PointerKey, PointerScript:
		// Pointer addresses embed a variable-length chain pointer after the
		// payment credential; the credential itself is still extractable,
		// but the kind is rejected by ExtractPaymentCredential.
		if len(body) < HashLen {
			return nil, scouterr.WithDetails(scouterr.ErrInvalidAddress,
				map[string]string{"address": addr})
		}
		parsed.Payment = &Credential{
			Hash: append([]byte(nil), body[:HashLen]...),
			Type: paymentCredentialType(kind),
		}
	default:
		return nil, scouterr.WithDetails(scouterr.ErrInvalidAddress,
			map[string]string{"kind": kind.String()})
	}

	return parsed, nil
}

// ExtractPaymentCredential returns the payment credential of a base or
// enterprise address. Every other kind fails with ErrUnsupportedAddressType:
// pointer, reward and bootstrap forms have no payment credential this tool
// can attribute funds to.
func ExtractPaymentCredential(addr string) (Credential, error) {
	parsed, err := Parse(addr)
	if err != nil {
		return Credential{}, err
	}

	switch parsed.Kind {
	case BasePaymentKeyStakeKey, BasePaymentScriptStakeKey,
		BasePaymentKeyStakeScript, BasePaymentScriptStakeScript,
		EnterpriseKey, EnterpriseScript:
		return *parsed.Payment, nil
	default:
		return Credential{}, scouterr.WithDetails(scouterr.ErrUnsupportedAddressType,
			map[string]string{"kind": parsed.Kind.String(), "address": addr})
	}
}

// EncodeBase encodes a base address holding both a payment and a stake
// credential for the given network.
func EncodeBase(network NetworkID, payment, stake Credential) (string, error) {
	if len(payment.Hash) != HashLen || len(stake.Hash) != HashLen {
		return "", scouterr.WithDetails(scouterr.ErrInvalidAddress,
			map[string]string{"reason": "credential hash must be 28 bytes"})
	}

	kind := BasePaymentKeyStakeKey
	if payment.Type == ScriptHashCredential {
		kind |= 0x01
	}
	if stake.Type == ScriptHashCredential {
		kind |= 0x02
	}

	payload := make([]byte, 0, 1+2*HashLen)
	payload = append(payload, byte(kind)<<4|byte(network)&0x0F)
	payload = append(payload, payment.Hash...)
	payload = append(payload, stake.Hash...)

	return encodeBech32(paymentHRP(network), payload)
}

// EncodeEnterprise encodes an enterprise address holding only a payment
// credential.
func EncodeEnterprise(network NetworkID, payment Credential) (string, error) {
	if len(payment.Hash) != HashLen {
		return "", scouterr.WithDetails(scouterr.ErrInvalidAddress,
			map[string]string{"reason": "credential hash must be 28 bytes"})
	}

	kind := EnterpriseKey
	if payment.Type == ScriptHashCredential {
		kind = EnterpriseScript
	}

	payload := make([]byte, 0, 1+HashLen)
	payload = append(payload, byte(kind)<<4|byte(network)&0x0F)
	payload = append(payload, payment.Hash...)

	return encodeBech32(paymentHRP(network), payload)
}

// EncodeReward encodes a reward (stake) address for the given network.
func EncodeReward(network NetworkID, stake Credential) (string, error) {
	if len(stake.Hash) != HashLen {
		return "", scouterr.WithDetails(scouterr.ErrInvalidAddress,
			map[string]string{"reason": "credential hash must be 28 bytes"})
	}

	kind := RewardKey
	if stake.Type == ScriptHashCredential {
		kind = RewardScript
	}

	payload := make([]byte, 0, 1+HashLen)
	payload = append(payload, byte(kind)<<4|byte(network)&0x0F)
	payload = append(payload, stake.Hash...)

	return encodeBech32(rewardHRP(network), payload)
}

// paymentHRP returns the bech32 prefix for payment addresses.
func paymentHRP(network NetworkID) string {
	if network == Mainnet {
		return "addr"
	}
	return "addr_test"
}

// rewardHRP returns the bech32 prefix for reward addresses.
func rewardHRP(network NetworkID) string {
	if network == Mainnet {
		return "stake"
	}
	return "stake_test"
}

// encodeBech32 converts the payload to 5-bit groups and encodes it.
func encodeBech32(hrp string, payload []byte) (string, error) {
	data5, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("converting address payload: %w", err)
	}

	encoded, err := bech32.Encode(hrp, data5)
	if err != nil {
		return "", fmt.Errorf("encoding address: %w", err)
	}

	return encoded, nil
}

// paymentCredentialType maps an address kind to its payment credential type.
func paymentCredentialType(kind Kind) CredentialType {
	switch kind {
	case BasePaymentScriptStakeKey, BasePaymentScriptStakeScript,
		EnterpriseScript, PointerScript:
		return ScriptHashCredential
	default:
		return KeyHash
	}
}

// stakeCredentialType maps a base address kind to its stake credential type.
func stakeCredentialType(kind Kind) CredentialType {
	switch kind {
	case BasePaymentKeyStakeScript, BasePaymentScriptStakeScript:
		return ScriptHashCredential
	default:
		return KeyHash
	}
}
