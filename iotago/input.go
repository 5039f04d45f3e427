package iotago

// OutputMetadata carries node-reported facts about an output that the
// builder itself never derives (confirmation slot, spent status, ...). The
// builder only reads IncludedSlot, as the start of mana decay; IsSpent is
// opaque passthrough for the caller.
type OutputMetadata struct {
	IncludedSlot uint32
	IsSpent      bool
}

// KeyDerivationHint optionally tells an external signer which key to use
// for an input; the builder never interprets it (§1 Non-goals: no key
// derivation).
type KeyDerivationHint struct {
	CoinType  uint32
	Account   uint32
	Change    uint32
	AddressIdx uint32
}

// Input pairs an output with the identity and metadata needed to spend it.
// Inputs are immutable within a selection (§3). The address required to
// unlock it is computed by the Output Classifier (package txbuilder), not
// here, since that computation depends on protocol parameters.
type Input struct {
	Output         Output
	OutputId       OutputId
	OutputMetadata OutputMetadata
	KeyHint        *KeyDerivationHint
}
