package params

import "github.com/iotaledger/iota-sdk-go/iotago"

// StorageScore computes the storage score of an output: a linear function
// over its packed byte size plus fixed per-kind overheads for chain outputs
// that carry extra node-side bookkeeping (§4.1). The byte size is produced
// by iotago.PackedSize, which must match the sibling wire codec exactly
// (§6.3) — this function never counts bytes itself.
func StorageScore(o iotago.Output, p StorageScoreParameters) uint64 {
	score := p.OffsetOutputOverhead
	score += uint64(iotago.PackedSize(o)) * p.FactorData

	score += uint64(countKeys(o)) * p.FactorKey

	switch v := o.(type) {
	case *iotago.AccountOutput:
		if v.Features().BlockIssuer() != nil {
			score += p.FactorBlockIssuer
		}
	case *iotago.DelegationOutput:
		score += p.FactorDelegation
	}

	return score
}

// countKeys approximates the number of indexed lookup keys a node must
// maintain for this output (one per unlock-condition address, since each is
// a potential query key), mirroring the real protocol's "factor_key"
// accounting for per-address storage overhead.
func countKeys(o iotago.Output) int {
	n := 0
	for _, c := range o.Conditions() {
		switch c.(type) {
		case iotago.AddressUnlockCondition,
			iotago.StateControllerAddressUnlockCondition,
			iotago.GovernorAddressUnlockCondition,
			iotago.ImmutableAccountAddressUnlockCondition:
			n++
		}
	}
	return n
}

// MinimumAmount is the smallest base-coin amount o may carry: the smallest
// u64 such that o.Amount >= StorageScore(o) * StorageCost (§4.1 C1
// contract). Because the score itself doesn't depend on Amount, this is a
// direct multiplication rather than a search.
func MinimumAmount(o iotago.Output, p ProtocolParameters) uint64 {
	score := StorageScore(o, p.StorageScoreParameters)
	return score * p.StorageScoreParameters.StorageCost
}

// MeetsMinimumAmount reports whether o's current Amount already satisfies
// MinimumAmount, the check C10 performs on every output in the final
// transaction (§8 boundary: "amount = minimum_amount(o) - 1 rejected").
func MeetsMinimumAmount(o iotago.Output, p ProtocolParameters) bool {
	return o.BaseAmount() >= MinimumAmount(o, p)
}
