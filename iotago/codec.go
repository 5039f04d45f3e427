package iotago

import (
	"encoding/binary"

	"github.com/decred/dcrd/wire"
)

// This file implements the packing contract of §6.3: the byte layout the
// storage-score formula (C1, package params) must reproduce exactly. It
// does not implement a full block codec (out of scope, §1) — only the
// subset needed to count bytes deterministically per output.
//
// Layout, in order:
//   - 1 byte output-kind discriminant
//   - 8 bytes little-endian amount
//   - 8 bytes little-endian mana (omitted for Foundry, which carries none)
//   - kind-specific body
//   - unlock conditions: 1-byte count, then each as a kind byte plus its fields
//   - features: 1-byte count, then each as a kind byte plus its fields; only
//     Metadata and Tag payloads carry a var-int length prefix
//
// Multi-byte integers are little-endian throughout; counts are always a
// single byte (protocol bounds of 7 conditions / 4 features make this
// exact, §6.3).

// PackedSize returns the number of bytes Output would occupy on the wire
// under the §6.3 contract. This is the sole input to the storage-score
// formula (C1).
func PackedSize(o Output) int {
	n := 1 // kind discriminant
	n += 8 // amount
	if o.Kind() != OutputFoundry {
		n += 8 // mana
	}
	n += kindBodySize(o)
	n += 1 + conditionsSize(o.Conditions())
	n += 1 + featuresSize(o.Features())
	return n
}

func kindBodySize(o Output) int {
	switch v := o.(type) {
	case *BasicOutput:
		n := 0
		if v.NativeTok != nil {
			n += nativeTokenSize(*v.NativeTok)
		}
		return n
	case *AccountOutput:
		return HashSize + 4 // AccountID + FoundryCounter
	case *NftOutput:
		return HashSize
	case *FoundryOutput:
		return HashSize + 4 + tokenSchemeSize(v.Scheme) // account addr + serial + scheme
	case *DelegationOutput:
		return 8 + HashSize + HashSize + 4 + 4 // delegated amount, id, validator, epochs
	case *AnchorOutput:
		return HashSize + 4
	default:
		return 0
	}
}

func nativeTokenSize(t NativeToken) int {
	return HashSize + 32 // token id + u256 amount
}

func tokenSchemeSize(s TokenScheme) int {
	return 1 + 3*32 // kind byte + minted/melted/max as u256
}

func conditionsSize(set UnlockConditionSet) int {
	n := 0
	for _, c := range set {
		n += 1 // kind discriminant
		switch v := c.(type) {
		case AddressUnlockCondition:
			n += addressSize(v.Address)
		case StorageDepositReturnUnlockCondition:
			n += addressSize(v.ReturnAddress) + 8
		case TimelockUnlockCondition:
			n += 4
		case ExpirationUnlockCondition:
			n += addressSize(v.ReturnAddress) + 4
		case StateControllerAddressUnlockCondition:
			n += addressSize(v.Address)
		case GovernorAddressUnlockCondition:
			n += addressSize(v.Address)
		case ImmutableAccountAddressUnlockCondition:
			n += addressSize(v.Address)
		}
	}
	return n
}

func featuresSize(set FeatureSet) int {
	n := 0
	for _, f := range set {
		n += 1 // kind discriminant
		switch v := f.(type) {
		case SenderFeature:
			n += addressSize(v.Address)
		case IssuerFeature:
			n += addressSize(v.Address)
		case MetadataFeature:
			n += varBytesSize(metadataPayload(v))
		case TagFeature:
			n += varBytesSize(v.Tag)
		case BlockIssuerFeature:
			n += 4 + 1 + len(v.PublicKeyHashes)*32
		}
	}
	return n
}

func metadataPayload(f MetadataFeature) []byte {
	n := 0
	for k, v := range f.Entries {
		n += len(k) + len(v)
	}
	return make([]byte, n)
}

func addressSize(a Address) int {
	switch a.(type) {
	case Ed25519Address, AccountAddress, NFTAddress, ImplicitAccountCreationAddress:
		return 1 + 32
	case *MultiAddress:
		ma := a.(*MultiAddress)
		n := 1 + 2 // kind + threshold
		for _, w := range ma.Addresses {
			n += addressSize(w.Address) + 1
		}
		return n
	default:
		return 1 + 32
	}
}

// varBytesSize mirrors the length-prefix convention dcrd/wire uses for
// variable-length byte slices (a compact-size count followed by the raw
// bytes), reused here purely to compute byte counts consistently with the
// rest of the codec.
func varBytesSize(b []byte) int {
	return wire.VarIntSerializeSize(uint64(len(b))) + len(b)
}

// putUint64 writes v little-endian; kept as a named helper so call sites
// read like "pack this field" rather than a bare binary.LittleEndian call.
func putUint64(dst []byte, v uint64) {
	binary.LittleEndian.PutUint64(dst, v)
}
