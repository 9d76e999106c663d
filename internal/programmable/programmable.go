// Package programmable derives script-gated variants of discovered
// addresses for programmable-token support.
//
// The transform swaps credentials: the payment credential of the new
// address is the hash of a fixed on-chain validation script, and the
// original payment credential moves into the delegation position, where it
// identifies the owner under the shared script. The transform is pure;
// the script hash is a process-wide constant computed once.
package programmable

import (
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/nocturnelabs/adascout/internal/address"
)

// scriptLanguagePrefix tags the script bytes with their ledger language
// before hashing, matching how the chain derives script hashes.
const scriptLanguagePrefix = 0x03

// transferLogicScriptHex is the compiled programmable-token transfer
// validator, revision 1. The script is a fixed constant: building it from
// parameters happens off-line, and a new revision means a new constant.
const transferLogicScriptHex = "5901a0010000332323232323232322322253330064a229309b2b19299980319" +
	"b87480000044c8c94ccc02cc03400852616375c601660180046eb4c02cc030" +
	"0084c8c8c94ccc030c0380084c926325333009300b00213232498c94ccc028" +
	"cdc3a4000002264646464a66601c60200042930b1bad300f001300f002375a" +
	"601a002601a0046eb4c02c004c01c00858c01c004c94ccc024cdc3a40000022" +
	"a66601860120062930b0a99980499b874800800454ccc030c02400c5261616" +
	"3009002375a0026eb8004dd700091191980080080191299980580089128008" +
	"a99980419baf301000100413300430100013300330110010023012001300f0" +
	"011625333005333005300800214a22930b1b8748000dc3a40046e1d2002161"

var (
	scriptHashOnce sync.Once
	scriptHash     []byte
)

// ScriptHash returns the blake2b-224 hash of the transfer-logic script.
// The hash is computed on first use and shared read-only afterwards.
func ScriptHash() []byte {
	scriptHashOnce.Do(func() {
		script, err := hex.DecodeString(transferLogicScriptHex)
		if err != nil {
			// The constant is part of the source; a decode failure is a
			// build defect, not a runtime condition.
			panic("programmable: malformed transfer-logic script constant: " + err.Error())
		}

		h, err := blake2b.New(address.HashLen, nil)
		if err != nil {
			panic("programmable: blake2b init: " + err.Error())
		}
		h.Write([]byte{scriptLanguagePrefix})
		h.Write(script)
		scriptHash = h.Sum(nil)
	})

	return scriptHash
}

// FromAddress derives the programmable-token address for a discovered
// payment address on the given network. Deterministic: equal inputs yield
// byte-identical outputs, and addresses with distinct payment credentials
// map to distinct outputs.
//
// Fails with ErrUnsupportedAddressType when the input has no payment
// credential (pointer, reward, bootstrap kinds).
func FromAddress(addr string, network address.NetworkID) (string, error) {
	owner, err := address.ExtractPaymentCredential(addr)
	if err != nil {
		return "", err
	}

	gate := address.Credential{
		Hash: ScriptHash(),
		Type: address.ScriptHashCredential,
	}

	return address.EncodeBase(network, gate, owner)
}
