package txbuilder

import (
	"math/big"

	"github.com/iotaledger/iota-sdk-go/iotago"
)

// Burn is the declarative destruction set (C5, §3): the chains, native
// tokens and mana the caller wishes to destroy rather than re-emit.
type Burn struct {
	Accounts  map[iotago.AccountId]struct{}
	Nfts      map[iotago.NftId]struct{}
	Foundries map[iotago.FoundryId]struct{}
	// NativeTokens maps a token id to the quantity to melt/burn rather
	// than carry forward into an output.
	NativeTokens map[iotago.TokenId]*big.Int
	// Mana, when true, authorizes the resolver to let stored mana shrink
	// without allotting or re-emitting it.
	Mana bool
	// GeneratedMana, when true, authorizes potential (freshly generated)
	// mana to be dropped the same way.
	GeneratedMana bool
}

// NewBurn returns an empty Burn plan.
func NewBurn() *Burn {
	return &Burn{
		Accounts:     make(map[iotago.AccountId]struct{}),
		Nfts:         make(map[iotago.NftId]struct{}),
		Foundries:    make(map[iotago.FoundryId]struct{}),
		NativeTokens: make(map[iotago.TokenId]*big.Int),
	}
}

// Account marks account id for burning and returns the receiver for
// chaining, matching the fluent style of the builder methods that consume
// it (§6.1 with_burn(Burn)).
func (b *Burn) Account(id iotago.AccountId) *Burn {
	b.Accounts[id] = struct{}{}
	return b
}

func (b *Burn) Nft(id iotago.NftId) *Burn {
	b.Nfts[id] = struct{}{}
	return b
}

func (b *Burn) Foundry(id iotago.FoundryId) *Burn {
	b.Foundries[id] = struct{}{}
	return b
}

func (b *Burn) NativeToken(id iotago.TokenId, amount *big.Int) *Burn {
	b.NativeTokens[id] = amount
	return b
}

// ChainBurned reports whether id is scheduled for destruction, matching
// against whichever of Accounts/Nfts/Foundries corresponds to its Kind.
func (b *Burn) ChainBurned(id iotago.ChainId) bool {
	switch id.Kind {
	case iotago.ChainIdAccount:
		_, ok := b.Accounts[id.Account]
		return ok
	case iotago.ChainIdNft:
		_, ok := b.Nfts[id.Nft]
		return ok
	case iotago.ChainIdFoundry:
		_, ok := b.Foundries[id.Foundry]
		return ok
	default:
		return false
	}
}

// IsEmpty reports whether this plan burns nothing at all.
func (b *Burn) IsEmpty() bool {
	return len(b.Accounts) == 0 && len(b.Nfts) == 0 && len(b.Foundries) == 0 &&
		len(b.NativeTokens) == 0 && !b.Mana && !b.GeneratedMana
}
