package iotago

// OutputKind discriminates the six output variants named in §3. The byte
// value is also the wire-level discriminant prefix (§6.3).
type OutputKind byte

const (
	OutputBasic OutputKind = iota
	OutputAccount
	OutputFoundry
	OutputNft
	OutputDelegation
	OutputAnchor
)

// Output is implemented by every output variant.
type Output interface {
	Kind() OutputKind
	BaseAmount() uint64
	StoredMana() uint64
	Conditions() UnlockConditionSet
	Features() FeatureSet
	// Clone returns a deep-enough copy that mutating the copy's Amount/
	// Mana never affects the original (C6, C7 mutate copies in place).
	Clone() Output
}

// BasicOutput is the plain payment output.
type BasicOutput struct {
	Amount      uint64
	Mana        uint64
	UnlockConds UnlockConditionSet
	Feats       FeatureSet
	NativeTok   *NativeToken
}

func (o *BasicOutput) Kind() OutputKind               { return OutputBasic }
func (o *BasicOutput) BaseAmount() uint64              { return o.Amount }
func (o *BasicOutput) StoredMana() uint64              { return o.Mana }
func (o *BasicOutput) Conditions() UnlockConditionSet  { return o.UnlockConds }
func (o *BasicOutput) Features() FeatureSet            { return o.Feats }
func (o *BasicOutput) Clone() Output {
	c := *o
	return &c
}

// AccountOutput is a stateful output representing an on-ledger account.
type AccountOutput struct {
	Amount         uint64
	Mana           uint64
	AccountID      AccountId
	FoundryCounter uint32
	UnlockConds    UnlockConditionSet
	Feats          FeatureSet
	ImmutableFeats FeatureSet
}

func (o *AccountOutput) Kind() OutputKind              { return OutputAccount }
func (o *AccountOutput) BaseAmount() uint64             { return o.Amount }
func (o *AccountOutput) StoredMana() uint64             { return o.Mana }
func (o *AccountOutput) Conditions() UnlockConditionSet { return o.UnlockConds }
func (o *AccountOutput) Features() FeatureSet {
	return append(append(FeatureSet{}, o.Feats...), o.ImmutableFeats...)
}
func (o *AccountOutput) Clone() Output {
	c := *o
	return &c
}

// NftOutput is a stateful output representing a non-fungible token.
type NftOutput struct {
	Amount         uint64
	Mana           uint64
	NftID          NftId
	UnlockConds    UnlockConditionSet
	Feats          FeatureSet
	ImmutableFeats FeatureSet
}

func (o *NftOutput) Kind() OutputKind              { return OutputNft }
func (o *NftOutput) BaseAmount() uint64             { return o.Amount }
func (o *NftOutput) StoredMana() uint64             { return o.Mana }
func (o *NftOutput) Conditions() UnlockConditionSet { return o.UnlockConds }
func (o *NftOutput) Features() FeatureSet {
	return append(append(FeatureSet{}, o.Feats...), o.ImmutableFeats...)
}
func (o *NftOutput) Clone() Output {
	c := *o
	return &c
}

// FoundryOutput is a stateful output owned by exactly one account,
// controlling the supply of exactly one native token.
type FoundryOutput struct {
	Amount      uint64
	AccountAddr AccountAddress
	SerialNum   uint32
	Scheme      TokenScheme
	UnlockConds UnlockConditionSet
	Feats       FeatureSet
}

func (o *FoundryOutput) Kind() OutputKind              { return OutputFoundry }
func (o *FoundryOutput) BaseAmount() uint64             { return o.Amount }
func (o *FoundryOutput) StoredMana() uint64             { return 0 }
func (o *FoundryOutput) Conditions() UnlockConditionSet { return o.UnlockConds }
func (o *FoundryOutput) Features() FeatureSet           { return o.Feats }
func (o *FoundryOutput) Clone() Output {
	c := *o
	return &c
}

// Id computes this foundry's identity from its controlling account, serial
// number and token scheme (§4.5, GLOSSARY).
func (o *FoundryOutput) Id() FoundryId {
	return FoundryIdFromParts(AccountId(o.AccountAddr), o.SerialNum, o.Scheme)
}

// DelegationOutput locks amount in favor of a validator for a span of
// epochs. It has no features and is never transitioned by the builder
// beyond being consumed or re-emitted verbatim by the caller.
type DelegationOutput struct {
	Amount          uint64
	DelegatedAmount uint64
	DelegationID    Hash256
	ValidatorID     AccountId
	StartEpoch      uint32
	EndEpoch        uint32
	UnlockConds     UnlockConditionSet
}

func (o *DelegationOutput) Kind() OutputKind              { return OutputDelegation }
func (o *DelegationOutput) BaseAmount() uint64             { return o.Amount }
func (o *DelegationOutput) StoredMana() uint64             { return 0 }
func (o *DelegationOutput) Conditions() UnlockConditionSet { return o.UnlockConds }
func (o *DelegationOutput) Features() FeatureSet           { return nil }
func (o *DelegationOutput) Clone() Output {
	c := *o
	return &c
}

// AnchorOutput is a stateful output used by third-party protocols to anchor
// state. The builder assigns it no chain id, so a consumed Anchor input is
// not transitioned into a successor output, and the builder never
// fabricates one implicitly.
type AnchorOutput struct {
	Amount         uint64
	Mana           uint64
	AnchorID       Hash256
	StateIndex     uint32
	UnlockConds    UnlockConditionSet
	Feats          FeatureSet
	ImmutableFeats FeatureSet
}

func (o *AnchorOutput) Kind() OutputKind              { return OutputAnchor }
func (o *AnchorOutput) BaseAmount() uint64             { return o.Amount }
func (o *AnchorOutput) StoredMana() uint64             { return o.Mana }
func (o *AnchorOutput) Conditions() UnlockConditionSet { return o.UnlockConds }
func (o *AnchorOutput) Features() FeatureSet {
	return append(append(FeatureSet{}, o.Feats...), o.ImmutableFeats...)
}
func (o *AnchorOutput) Clone() Output {
	c := *o
	return &c
}
