package params

import (
	"testing"

	"github.com/iotaledger/iota-sdk-go/iotago"
)

func testProtocolParameters() ProtocolParameters {
	return ProtocolParameters{
		StorageScoreParameters: StorageScoreParameters{
			StorageCost:          100,
			FactorData:           1,
			FactorKey:            10,
			FactorBlockIssuer:    100,
			FactorStaking:        100,
			FactorDelegation:     100,
			OffsetOutputOverhead: 50,
		},
		Bech32HRP:   "iota",
		TokenSupply: 1_000_000_000,
	}.WithDefaults()
}

func basicOutputFixture(amount uint64) *iotago.BasicOutput {
	return &iotago.BasicOutput{
		Amount: amount,
		UnlockConds: iotago.UnlockConditionSet{
			iotago.AddressUnlockCondition{Address: iotago.Ed25519Address{1}},
		},
	}
}

func TestStorageScore(t *testing.T) {
	p := testProtocolParameters()

	tests := []struct {
		name string
		out  iotago.Output
	}{
		{"basic", basicOutputFixture(1000)},
		{
			"account with block issuer",
			&iotago.AccountOutput{
				Amount: 1000,
				UnlockConds: iotago.UnlockConditionSet{
					iotago.StateControllerAddressUnlockCondition{Address: iotago.Ed25519Address{2}},
					iotago.GovernorAddressUnlockCondition{Address: iotago.Ed25519Address{2}},
				},
				Feats: iotago.FeatureSet{
					iotago.BlockIssuerFeature{PublicKeyHashes: [][32]byte{{3}}},
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score := StorageScore(tc.out, p.StorageScoreParameters)
			wantMin := p.StorageScoreParameters.OffsetOutputOverhead + uint64(iotago.PackedSize(tc.out))*p.StorageScoreParameters.FactorData
			if score < wantMin {
				t.Fatalf("score %d below the byte-size floor %d", score, wantMin)
			}
		})
	}
}

func TestStorageScoreBlockIssuerSurcharge(t *testing.T) {
	p := testProtocolParameters()

	plain := &iotago.AccountOutput{
		Amount: 1000,
		UnlockConds: iotago.UnlockConditionSet{
			iotago.StateControllerAddressUnlockCondition{Address: iotago.Ed25519Address{2}},
			iotago.GovernorAddressUnlockCondition{Address: iotago.Ed25519Address{2}},
		},
	}
	withIssuer := &iotago.AccountOutput{
		Amount:      1000,
		UnlockConds: plain.UnlockConds,
		Feats: iotago.FeatureSet{
			iotago.BlockIssuerFeature{PublicKeyHashes: [][32]byte{{9}}},
		},
	}

	plainScore := StorageScore(plain, p.StorageScoreParameters)
	issuerScore := StorageScore(withIssuer, p.StorageScoreParameters)

	if issuerScore <= plainScore {
		t.Fatalf("block issuer account should score higher: plain=%d issuer=%d", plainScore, issuerScore)
	}
	if diff := issuerScore - plainScore; diff < p.StorageScoreParameters.FactorBlockIssuer {
		t.Fatalf("block issuer surcharge too small: got %d, want at least %d",
			diff, p.StorageScoreParameters.FactorBlockIssuer)
	}
}

func TestMinimumAmount(t *testing.T) {
	p := testProtocolParameters()
	out := basicOutputFixture(0)

	min := MinimumAmount(out, p)
	if min == 0 {
		t.Fatal("minimum amount should never be zero given a non-zero storage cost")
	}

	out.Amount = min - 1
	if MeetsMinimumAmount(out, p) {
		t.Fatalf("amount %d should not meet minimum %d", out.Amount, min)
	}

	out.Amount = min
	if !MeetsMinimumAmount(out, p) {
		t.Fatalf("amount %d should meet minimum %d", out.Amount, min)
	}
}

func TestWithDefaults(t *testing.T) {
	var p ProtocolParameters
	p = p.WithDefaults()

	if p.MaxInputs != MaxInputsDefault {
		t.Errorf("MaxInputs = %d, want %d", p.MaxInputs, MaxInputsDefault)
	}
	if p.MaxOutputs != MaxOutputsDefault {
		t.Errorf("MaxOutputs = %d, want %d", p.MaxOutputs, MaxOutputsDefault)
	}

	p.MaxInputs = 5
	p.MaxOutputs = 7
	p = p.WithDefaults()
	if p.MaxInputs != 5 || p.MaxOutputs != 7 {
		t.Errorf("WithDefaults overwrote caller-supplied bounds: %+v", p)
	}
}
