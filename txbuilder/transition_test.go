package txbuilder

import (
	"testing"

	"github.com/iotaledger/iota-sdk-go/iotago"
)

func TestTransitionDefaultPreservesIdentity(t *testing.T) {
	s := newState(t, nil, nil)
	accId := iotago.AccountId{7}
	in := iotago.Input{
		OutputId: outputIdFor(1),
		Output: &iotago.AccountOutput{
			Amount:    1_000_000,
			AccountID: accId,
			UnlockConds: iotago.UnlockConditionSet{
				iotago.StateControllerAddressUnlockCondition{Address: addrA()},
				iotago.GovernorAddressUnlockCondition{Address: addrA()},
			},
			ImmutableFeats: iotago.FeatureSet{iotago.IssuerFeature{Address: addrB()}},
		},
	}
	cid := iotago.ChainIdFromAccount(accId)

	te := NewTransitionEngine(s)
	if err := te.Transition(in, cid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.AddedOutputs) != 1 {
		t.Fatalf("expected one added output, got %d", len(s.AddedOutputs))
	}
	out := s.AddedOutputs[0].(*iotago.AccountOutput)
	if out.AccountID != accId {
		t.Errorf("default transition must preserve chain identity")
	}
	if !iotago.ImmutableEqual(out.ImmutableFeats, in.Output.Features()) {
		t.Errorf("default transition must preserve immutable features verbatim")
	}
}

func TestTransitionBurnSetsDestroyCapability(t *testing.T) {
	s := newState(t, nil, nil)
	accId := iotago.AccountId{8}
	s.Burn.Account(accId)
	cid := iotago.ChainIdFromAccount(accId)
	in := iotago.Input{
		OutputId: outputIdFor(1),
		Output: &iotago.AccountOutput{
			Amount:    1_000_000,
			AccountID: accId,
			UnlockConds: iotago.UnlockConditionSet{
				iotago.StateControllerAddressUnlockCondition{Address: addrA()},
				iotago.GovernorAddressUnlockCondition{Address: addrA()},
			},
		},
	}

	te := NewTransitionEngine(s)
	if err := te.Transition(in, cid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.AddedOutputs) != 0 {
		t.Fatalf("a burned chain must not produce a successor output, got %d", len(s.AddedOutputs))
	}
	if !s.Capabilities.Has(CapabilityDestroyAccountOutputs) {
		t.Error("burning an account should set CapabilityDestroyAccountOutputs")
	}
}

func TestTransitionRejectsChangedImmutableFeatures(t *testing.T) {
	s := newState(t, nil, nil)
	accId := iotago.AccountId{9}
	cid := iotago.ChainIdFromAccount(accId)
	in := iotago.Input{
		OutputId: outputIdFor(1),
		Output: &iotago.AccountOutput{
			Amount:         1_000_000,
			AccountID:      accId,
			ImmutableFeats: iotago.FeatureSet{iotago.IssuerFeature{Address: addrA()}},
		},
	}
	tampered := &iotago.AccountOutput{
		Amount:         1_000_000,
		AccountID:      accId,
		ImmutableFeats: iotago.FeatureSet{iotago.IssuerFeature{Address: addrB()}},
	}
	s.ProvidedOutputs = []iotago.Output{tampered}
	s.Transitions.WithOutput(cid, tampered)

	te := NewTransitionEngine(s)
	err := te.Transition(in, cid)
	if err == nil {
		t.Fatal("expected an error when a provided transition changes immutable features")
	}
	if _, ok := err.(*ErrChainOutputImmutableFeaturesChanged); !ok {
		t.Errorf("got error %T, want *ErrChainOutputImmutableFeaturesChanged", err)
	}
}

func TestImplicitAccountTransition(t *testing.T) {
	s := newState(t, nil, nil)
	implicitAddr := iotago.ImplicitAccountCreationAddress{1, 2, 3}
	in := iotago.Input{
		OutputId: outputIdFor(5),
		Output: &iotago.BasicOutput{
			Amount: 1_000_000,
			Mana:   10,
			UnlockConds: iotago.UnlockConditionSet{
				iotago.AddressUnlockCondition{Address: implicitAddr},
			},
		},
	}

	te := NewTransitionEngine(s)
	out, err := te.ImplicitAccountTransition(in, [32]byte{9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.AccountID != iotago.AccountIdFromOutputId(in.OutputId) {
		t.Error("implicit account id must derive from the consumed output's OutputId")
	}
	if out.Features().BlockIssuer() == nil {
		t.Error("implicit account transition must set a BlockIssuer feature")
	}
	if out.Amount != in.Output.BaseAmount() || out.Mana != in.Output.StoredMana() {
		t.Error("implicit account transition must carry the basic output's amount and mana forward")
	}
}

func TestImplicitAccountTransitionRejectsNonImplicitInput(t *testing.T) {
	s := newState(t, nil, nil)
	in := iotago.Input{
		OutputId: outputIdFor(5),
		Output:   basicOutput(1_000_000, addrA()),
	}

	te := NewTransitionEngine(s)
	if _, err := te.ImplicitAccountTransition(in, [32]byte{9}); err == nil {
		t.Fatal("expected an error when the input isn't owned by an implicit account creation address")
	}
}
