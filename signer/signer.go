// Package signer is the key-derivation/signing collaborator the Transaction
// Builder hands its resolved requirements to. The builder itself never signs
// or derives keys (spec Non-goals); this package is the external surface a
// real wallet wires in, mirroring the way dcrlnd's lnwallet/dcrwallet package
// sits beside (not inside) the channel-funding engine.
package signer

import (
	"crypto/ed25519"
	"sync"

	"decred.org/dcrwallet/v2/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/iotaledger/iota-sdk-go/iotago"
)

// KeyDescriptor identifies one managed key by account/index, the same shape
// keychain.KeyDescriptor uses to address a derivation path without exposing
// the path itself to callers.
type KeyDescriptor struct {
	Account uint32
	Index   uint32
}

// Signer is what a prepared transaction's RequirementEd25519/RequirementMulti
// entries are ultimately resolved against. FetchInputInfo-style lookups are
// out of scope here: the builder already knows which inputs it selected, so
// this interface only needs to go from an address back to a usable key.
type Signer interface {
	// DeriveAddress returns the Ed25519 address controlled by desc.
	DeriveAddress(desc KeyDescriptor) (iotago.Ed25519Address, error)
	// SignFor signs msg with the private key controlling addr, returning
	// the public key alongside the signature so an unlock block can be
	// built without a second lookup. Returns an errors.NotExist-kinded
	// error if addr isn't managed by this signer.
	SignFor(addr iotago.Address, msg []byte) (ed25519.PublicKey, []byte, error)
}

// KeyRing is an in-memory Signer backed by a fixed set of Ed25519 keys,
// keyed by both KeyDescriptor and the address they control. It plays the
// role dcrwallet's base wallet plays for DcrWallet.SignOutputRaw, minus the
// on-disk keystore: callers add keys directly via AddKey.
type KeyRing struct {
	mu     sync.RWMutex
	byDesc map[KeyDescriptor]ed25519.PrivateKey
	byAddr map[string]ed25519.PrivateKey
}

// NewKeyRing returns an empty KeyRing.
func NewKeyRing() *KeyRing {
	return &KeyRing{
		byDesc: make(map[KeyDescriptor]ed25519.PrivateKey),
		byAddr: make(map[string]ed25519.PrivateKey),
	}
}

// AddKey registers priv under desc, deriving and indexing its address.
func (r *KeyRing) AddKey(desc KeyDescriptor, priv ed25519.PrivateKey) iotago.Ed25519Address {
	addr := addressFromPubKey(priv.Public().(ed25519.PublicKey))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byDesc[desc] = priv
	r.byAddr[addr.Key()] = priv
	return addr
}

// DeriveAddress implements Signer.
func (r *KeyRing) DeriveAddress(desc KeyDescriptor) (iotago.Ed25519Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	priv, ok := r.byDesc[desc]
	if !ok {
		return iotago.Ed25519Address{}, errors.E(errors.NotExist, "no key registered for descriptor")
	}
	return addressFromPubKey(priv.Public().(ed25519.PublicKey)), nil
}

// SignFor implements Signer.
func (r *KeyRing) SignFor(addr iotago.Address, msg []byte) (ed25519.PublicKey, []byte, error) {
	ed, ok := addr.(iotago.Ed25519Address)
	if !ok {
		return nil, nil, errors.E(errors.Invalid, "signer only supports Ed25519Address")
	}

	r.mu.RLock()
	priv, ok := r.byAddr[ed.Key()]
	r.mu.RUnlock()
	if !ok {
		return nil, nil, errors.E(errors.NotExist, "address not managed by this signer")
	}

	log.Tracef("signing %d-byte message for %x", len(msg), ed[:4])
	sig := ed25519.Sign(priv, msg)
	return priv.Public().(ed25519.PublicKey), sig, nil
}

// addressFromPubKey derives the Ed25519 address for pub the way the
// protocol does: blake2b-256 of the raw public key bytes.
func addressFromPubKey(pub ed25519.PublicKey) iotago.Ed25519Address {
	sum := blake2b.Sum256(pub)
	var addr iotago.Ed25519Address
	copy(addr[:], sum[:])
	return addr
}

var _ Signer = (*KeyRing)(nil)
