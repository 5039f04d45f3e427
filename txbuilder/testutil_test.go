package txbuilder

import (
	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/params"
)

// testParams returns a small, self-consistent protocol parameter set used
// across the package's tests. The exact weights are not meant to match any
// real network — only the conservation/structural properties are asserted
// against scenarios that depend on concrete numbers (§8 S1-S5); S6's
// mana-allotment scenario is asserted structurally since its literal
// expected values depend on network-specific work-score weights this test
// set doesn't attempt to reproduce.
func testParams() params.ProtocolParameters {
	return params.ProtocolParameters{
		StorageScoreParameters: params.StorageScoreParameters{
			StorageCost:          10,
			FactorData:           1,
			FactorKey:            10,
			FactorBlockIssuer:    100,
			FactorStaking:        100,
			FactorDelegation:     100,
			OffsetOutputOverhead: 50,
		},
		ManaParameters: params.ManaParameters{
			GenerationRate:               1,
			GenerationRateExponent:       17,
			DecayFactorEpochsSumExponent: 20,
			DecayFactors:                 []uint64{900_000, 810_000, 730_000},
			SlotsPerEpochExponent:        13,
		},
		WorkScoreParameters: params.WorkScoreParameters{
			Basic:   1,
			Account: 1,
			Nft:     1,
			Foundry: 1,
			PerByte: 0,
		},
		CommittableAgeRange: params.CommittableAgeRange{Min: 5, Max: 10},
		Bech32HRP:           "iota",
		TokenSupply:         1_000_000_000_000,
	}.WithDefaults()
}

func addrA() iotago.Address { return iotago.Ed25519Address{0xA} }
func addrB() iotago.Address { return iotago.Ed25519Address{0xB} }

func basicInput(id byte, amount uint64, addr iotago.Address) iotago.Input {
	return iotago.Input{
		OutputId: outputIdFor(id),
		Output: &iotago.BasicOutput{
			Amount: amount,
			UnlockConds: iotago.UnlockConditionSet{
				iotago.AddressUnlockCondition{Address: addr},
			},
		},
	}
}

func basicOutput(amount uint64, addr iotago.Address) *iotago.BasicOutput {
	return &iotago.BasicOutput{
		Amount: amount,
		UnlockConds: iotago.UnlockConditionSet{
			iotago.AddressUnlockCondition{Address: addr},
		},
	}
}

func outputIdFor(b byte) iotago.OutputId {
	var id iotago.OutputId
	id.TransactionId[0] = b
	return id
}

func iotagoBasicOutputWithTimelock(slot uint32, addr iotago.Address) *iotago.BasicOutput {
	return &iotago.BasicOutput{
		Amount: 1_000_000,
		UnlockConds: iotago.UnlockConditionSet{
			iotago.AddressUnlockCondition{Address: addr},
			iotago.TimelockUnlockCondition{SlotIndex: slot},
		},
	}
}

func iotagoBasicOutputWithExpiration(amount uint64, owner, returnAddr iotago.Address, slot uint32) *iotago.BasicOutput {
	return &iotago.BasicOutput{
		Amount: amount,
		UnlockConds: iotago.UnlockConditionSet{
			iotago.AddressUnlockCondition{Address: owner},
			iotago.ExpirationUnlockCondition{ReturnAddress: returnAddr, SlotIndex: slot},
		},
	}
}
