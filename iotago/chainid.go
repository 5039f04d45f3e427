package iotago

// AccountId, NftId and FoundryId are the identity types of stateful
// (chain) outputs. They are compared and hashed as plain byte arrays; an
// all-zero value denotes "not yet minted" (§3).

type AccountId Hash256

func (id AccountId) IsZero() bool { return id == AccountId{} }
func (id AccountId) String() string {
	return Hash256(id).String()
}

// AccountIdFromOutputId derives a fresh AccountId from the OutputId of the
// Basic or Account input that is being minted into an account for the first
// time (§4.2, §4.6).
func AccountIdFromOutputId(id OutputId) AccountId {
	return AccountId(id.Hash())
}

type NftId Hash256

func (id NftId) IsZero() bool { return id == NftId{} }
func (id NftId) String() string {
	return Hash256(id).String()
}

// NftIdFromOutputId derives a fresh NftId from the minting input's OutputId.
func NftIdFromOutputId(id OutputId) NftId {
	return NftId(id.Hash())
}

// FoundryId is derived deterministically from its controlling account,
// serial number and token scheme — it is never "fresh-minted" the way
// AccountId/NftId are, since it has no all-zero placeholder state (§4.5,
// GLOSSARY "Foundry").
type FoundryId Hash256

func (id FoundryId) IsZero() bool { return id == FoundryId{} }
func (id FoundryId) String() string {
	return Hash256(id).String()
}

// FoundryIdFromParts computes FoundryId = hash(AccountId ‖ serial ‖ scheme).
func FoundryIdFromParts(account AccountId, serial uint32, scheme TokenScheme) FoundryId {
	var serialBytes [4]byte
	serialBytes[0] = byte(serial >> 24)
	serialBytes[1] = byte(serial >> 16)
	serialBytes[2] = byte(serial >> 8)
	serialBytes[3] = byte(serial)

	h := sumBlake2b256(account[:], serialBytes[:], scheme.packTokenSchemeType())
	return FoundryId(h)
}

// ChainIdKind discriminates which stateful variant a ChainId refers to.
type ChainIdKind byte

const (
	ChainIdAccount ChainIdKind = iota
	ChainIdNft
	ChainIdFoundry
)

// ChainId is a tagged union over the three chain-identity types.
type ChainId struct {
	Kind    ChainIdKind
	Account AccountId
	Nft     NftId
	Foundry FoundryId
}

func (c ChainId) IsZero() bool {
	switch c.Kind {
	case ChainIdAccount:
		return c.Account.IsZero()
	case ChainIdNft:
		return c.Nft.IsZero()
	case ChainIdFoundry:
		return c.Foundry.IsZero()
	}
	return true
}

// Key returns a value suitable for use as a map key.
func (c ChainId) Key() string {
	switch c.Kind {
	case ChainIdAccount:
		return "A" + string(c.Account[:])
	case ChainIdNft:
		return "N" + string(c.Nft[:])
	case ChainIdFoundry:
		return "F" + string(c.Foundry[:])
	}
	return ""
}

func ChainIdFromAccount(id AccountId) ChainId { return ChainId{Kind: ChainIdAccount, Account: id} }
func ChainIdFromNft(id NftId) ChainId         { return ChainId{Kind: ChainIdNft, Nft: id} }
func ChainIdFromFoundry(id FoundryId) ChainId { return ChainId{Kind: ChainIdFoundry, Foundry: id} }
