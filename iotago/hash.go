package iotago

import (
	"encoding/hex"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"golang.org/x/crypto/blake2b"
)

// HashSize is the length in bytes of every protocol hash used by the ledger:
// output ids, transaction ids, chain ids and block ids all derive from it.
const HashSize = chainhash.HashSize

// Hash256 is a protocol hash digest. It reuses chainhash's fixed-size array
// type purely for its hex (de)serialization helpers; the digest itself is
// always computed with blake2b-256, not the chain-specific algorithm
// chainhash was written for.
type Hash256 = chainhash.Hash

// sumBlake2b256 runs the protocol hash function over data.
func sumBlake2b256(data ...[]byte) Hash256 {
	h, err := blake2b.New256(nil)
	if err != nil {
		// New256 only fails if a non-nil key longer than 64 bytes is
		// supplied; we never do that.
		panic(err)
	}
	for _, d := range data {
		h.Write(d)
	}

	var out Hash256
	copy(out[:], h.Sum(nil))
	return out
}

// HashFromString parses a hex-encoded protocol hash.
func HashFromString(s string) (Hash256, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash256{}, err
	}
	var h Hash256
	if err := h.SetBytes(b); err != nil {
		return Hash256{}, err
	}
	return h, nil
}
