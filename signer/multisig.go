package signer

import (
	"golang.org/x/crypto/blake2b"

	"github.com/decred/dcrd/dcrec/secp256k1/v3"
	"github.com/decred/dcrd/dcrec/secp256k1/v3/ecdsa"

	"decred.org/dcrwallet/v2/errors"
	"github.com/iotaledger/iota-sdk-go/iotago"
)

// SignatureShare is one weighted member's contribution toward satisfying a
// MultiAddress's threshold, standing in for the real protocol's Ed25519
// multi-signature scheme (that scheme is an external collaborator per spec
// Non-goals; this package only needs *a* concrete asymmetric-signature
// primitive to exercise the weighted-threshold bookkeeping, and secp256k1
// is the only one available in the dependency set).
type SignatureShare struct {
	Address   iotago.Address
	Weight    byte
	PubKey    *secp256k1.PublicKey
	Signature *ecdsa.Signature
}

// ShareSigner signs for a single weighted member of a MultiAddress.
type ShareSigner struct {
	Address iotago.Address
	Weight  byte
	priv    *secp256k1.PrivateKey
}

// NewShareSigner binds priv to addr/weight.
func NewShareSigner(addr iotago.Address, weight byte, priv *secp256k1.PrivateKey) *ShareSigner {
	return &ShareSigner{Address: addr, Weight: weight, priv: priv}
}

// Sign produces this member's SignatureShare over msg.
func (s *ShareSigner) Sign(msg []byte) *SignatureShare {
	digest := blake2b.Sum256(msg)
	sig := ecdsa.Sign(s.priv, digest[:])
	return &SignatureShare{
		Address:   s.Address,
		Weight:    s.Weight,
		PubKey:    s.priv.PubKey(),
		Signature: sig,
	}
}

// ThresholdCollector accumulates SignatureShares for one MultiAddress until
// the combined weight of signed members reaches its Threshold — the same
// arithmetic txbuilder's resolver runs internally (dispatchSigning's
// RequirementMulti case) to decide which members still need a signing
// requirement pushed, mirrored here on the signing side of the boundary.
type ThresholdCollector struct {
	addr   *iotago.MultiAddress
	shares map[string]*SignatureShare
}

// NewThresholdCollector starts an empty collector for addr.
func NewThresholdCollector(addr *iotago.MultiAddress) *ThresholdCollector {
	return &ThresholdCollector{addr: addr, shares: make(map[string]*SignatureShare)}
}

// Add records share, rejecting one from an address that isn't a member of
// the target MultiAddress.
func (c *ThresholdCollector) Add(share *SignatureShare) error {
	for _, w := range c.addr.Addresses {
		if iotago.AddressEqual(w.Address, share.Address) {
			c.shares[share.Address.Key()] = share
			return nil
		}
	}
	return errors.E(errors.Invalid, "address is not a member of this multi-address")
}

// Satisfied reports whether the accumulated shares' combined weight has
// reached the MultiAddress's threshold.
func (c *ThresholdCollector) Satisfied() bool {
	var weight uint16
	for _, w := range c.addr.Addresses {
		if _, ok := c.shares[w.Address.Key()]; ok {
			weight += uint16(w.Weight)
		}
	}
	return weight >= c.addr.Threshold
}

// Shares returns every collected share, in the MultiAddress's member order.
func (c *ThresholdCollector) Shares() []*SignatureShare {
	out := make([]*SignatureShare, 0, len(c.shares))
	for _, w := range c.addr.Addresses {
		if s, ok := c.shares[w.Address.Key()]; ok {
			out = append(out, s)
		}
	}
	return out
}
