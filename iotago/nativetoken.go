package iotago

import "math/big"

// TokenId identifies the native token minted by exactly one Foundry; it is
// the FoundryId of that foundry reinterpreted as a token identity.
type TokenId FoundryId

// NativeToken is a (TokenId, amount) pair. An output may carry at most one
// (§4.2 "at most one per output").
type NativeToken struct {
	Id     TokenId
	Amount *big.Int
}

// TokenScheme describes how a foundry's circulating supply is tracked. The
// simple scheme is the only one specified here; others would implement the
// same interface.
type TokenScheme interface {
	MintedTokens() *big.Int
	MeltedTokens() *big.Int
	MaximumSupply() *big.Int
	packTokenSchemeType() []byte
}

// SimpleTokenScheme is the sole token scheme variant: a monotonically
// increasing minted counter and melted counter, bounded by a maximum supply.
type SimpleTokenScheme struct {
	MintedCoins *big.Int
	MeltedCoins *big.Int
	MaxSupply   *big.Int
}

func (s SimpleTokenScheme) MintedTokens() *big.Int  { return s.MintedCoins }
func (s SimpleTokenScheme) MeltedTokens() *big.Int  { return s.MeltedCoins }
func (s SimpleTokenScheme) MaximumSupply() *big.Int { return s.MaxSupply }

// CirculatingSupply returns minted - melted, the quantity actually in
// circulation (§4.5: foundry transitions derive their native-token delta
// from the difference of this value between consecutive states).
func (s SimpleTokenScheme) CirculatingSupply() *big.Int {
	return new(big.Int).Sub(s.MintedCoins, s.MeltedCoins)
}

func (s SimpleTokenScheme) packTokenSchemeType() []byte {
	// Packed as: kind byte, then the three big-endian 32-byte big.Ints.
	// This layout only gives FoundryId derivation stable bytes; it is not
	// the little-endian wire layout of §6.3.
	out := make([]byte, 0, 1+3*32)
	out = append(out, 0)
	out = appendBigInt32(out, s.MintedCoins)
	out = appendBigInt32(out, s.MeltedCoins)
	out = appendBigInt32(out, s.MaxSupply)
	return out
}

func appendBigInt32(dst []byte, v *big.Int) []byte {
	var buf [32]byte
	if v != nil {
		b := v.Bytes()
		copy(buf[32-len(b):], b)
	}
	return append(dst, buf[:]...)
}
