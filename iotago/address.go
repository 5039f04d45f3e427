package iotago

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/decred/dcrd/bech32"
)

// AddressKind discriminates the wire-level address variants.
type AddressKind byte

const (
	AddressEd25519 AddressKind = iota
	AddressAccount
	AddressNFT
	AddressImplicitAccountCreation
	AddressMulti
)

// Address is implemented by every address variant. Addresses are compared by
// their packed (kind, payload) form, never by bech32 string.
type Address interface {
	Kind() AddressKind
	// Key returns a value suitable for use as a map key; two addresses
	// that unlock the same output compare equal under this key.
	Key() string
	Bech32(hrp string) string
}

// Ed25519Address unlocks via a single Ed25519 signature.
type Ed25519Address [32]byte

func (a Ed25519Address) Kind() AddressKind { return AddressEd25519 }
func (a Ed25519Address) Key() string       { return packAddressKey(AddressEd25519, a[:]) }
func (a Ed25519Address) Bech32(hrp string) string {
	return encodeBech32(hrp, AddressEd25519, a[:])
}

// AccountAddress unlocks by proving control of the named account output
// (i.e. the account itself is an input unlockable by its own state
// controller, or is present and transitioned in the same transaction).
type AccountAddress AccountId

func (a AccountAddress) Kind() AddressKind { return AddressAccount }
func (a AccountAddress) Key() string       { return packAddressKey(AddressAccount, a[:]) }
func (a AccountAddress) Bech32(hrp string) string {
	return encodeBech32(hrp, AddressAccount, a[:])
}

// NFTAddress unlocks by proving control of the named NFT output.
type NFTAddress NftId

func (a NFTAddress) Kind() AddressKind { return AddressNFT }
func (a NFTAddress) Key() string       { return packAddressKey(AddressNFT, a[:]) }
func (a NFTAddress) Bech32(hrp string) string {
	return encodeBech32(hrp, AddressNFT, a[:])
}

// ImplicitAccountCreationAddress wraps an Ed25519 key; a Basic output it
// owns may only be spent by transitioning it into a full Account output
// (§4.6).
type ImplicitAccountCreationAddress [32]byte

func (a ImplicitAccountCreationAddress) Kind() AddressKind { return AddressImplicitAccountCreation }
func (a ImplicitAccountCreationAddress) Key() string {
	return packAddressKey(AddressImplicitAccountCreation, a[:])
}
func (a ImplicitAccountCreationAddress) Bech32(hrp string) string {
	return encodeBech32(hrp, AddressImplicitAccountCreation, a[:])
}

// WeightedAddress is one member of a MultiAddress.
type WeightedAddress struct {
	Address Address
	Weight  byte
}

// MultiAddress unlocks when the combined weight of individually-unlocked
// member addresses reaches Threshold.
type MultiAddress struct {
	Addresses []WeightedAddress
	Threshold uint16
}

func (a *MultiAddress) Kind() AddressKind { return AddressMulti }
func (a *MultiAddress) Key() string {
	var buf bytes.Buffer
	for _, w := range a.Addresses {
		buf.WriteString(w.Address.Key())
		buf.WriteByte(w.Weight)
	}
	return packAddressKey(AddressMulti, buf.Bytes())
}
func (a *MultiAddress) Bech32(hrp string) string {
	// Multi-addresses are never sent on the wire as bech32 in practice;
	// this exists purely so MultiAddress satisfies Address.
	return encodeBech32(hrp, AddressMulti, []byte(a.Key()))
}

func packAddressKey(kind AddressKind, payload []byte) string {
	return string(append([]byte{byte(kind)}, payload...))
}

func encodeBech32(hrp string, kind AddressKind, payload []byte) string {
	data := append([]byte{byte(kind)}, payload...)
	converted, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		// Only fails on malformed input, never on well-formed
		// addresses built by this package.
		panic(err)
	}
	encoded, err := bech32.Encode(hrp, converted)
	if err != nil {
		panic(err)
	}
	return encoded
}

// ParseBech32Address decodes a bech32-encoded address, verifying hrp.
func ParseBech32Address(hrp, s string) (Address, error) {
	gotHRP, data, err := bech32.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid bech32 address %q: %w", s, err)
	}
	if gotHRP != hrp {
		return nil, fmt.Errorf("address hrp %q does not match network hrp %q", gotHRP, hrp)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, err
	}
	if len(raw) < 1 {
		return nil, errors.New("empty address payload")
	}

	kind := AddressKind(raw[0])
	payload := raw[1:]
	switch kind {
	case AddressEd25519:
		if len(payload) != 32 {
			return nil, errors.New("malformed ed25519 address")
		}
		var a Ed25519Address
		copy(a[:], payload)
		return a, nil
	case AddressAccount:
		if len(payload) != 32 {
			return nil, errors.New("malformed account address")
		}
		var a AccountAddress
		copy(a[:], payload)
		return a, nil
	case AddressNFT:
		if len(payload) != 32 {
			return nil, errors.New("malformed nft address")
		}
		var a NFTAddress
		copy(a[:], payload)
		return a, nil
	case AddressImplicitAccountCreation:
		if len(payload) != 32 {
			return nil, errors.New("malformed implicit account creation address")
		}
		var a ImplicitAccountCreationAddress
		copy(a[:], payload)
		return a, nil
	default:
		return nil, fmt.Errorf("unsupported address kind %d", kind)
	}
}

// AddressEqual reports whether two addresses unlock the same output.
func AddressEqual(a, b Address) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Key() == b.Key()
}
