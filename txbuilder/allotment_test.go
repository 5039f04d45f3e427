package txbuilder

import (
	"testing"

	"github.com/iotaledger/iota-sdk-go/iotago"
)

func TestAllotmentComputeFundsFromAccountMana(t *testing.T) {
	s := newState(t, nil, nil)
	accId := iotago.AccountId{4}
	accOut := &iotago.AccountOutput{
		Amount:    2_000_000,
		Mana:      1_000_000,
		AccountID: accId,
		UnlockConds: iotago.UnlockConditionSet{
			iotago.StateControllerAddressUnlockCondition{Address: addrA()},
			iotago.GovernorAddressUnlockCondition{Address: addrA()},
		},
	}
	s.AddedOutputs = []iotago.Output{accOut}

	e := NewAllotmentEngine(s)
	required, err := e.Compute(accId, ReferenceManaCost(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if required == 0 {
		t.Fatal("a non-zero work score and rmc should require a non-zero allotment")
	}
	if accOut.Mana != 1_000_000-required {
		t.Errorf("account mana after allotment = %d, want %d", accOut.Mana, 1_000_000-required)
	}
	if s.Allotments[accId] != required {
		t.Errorf("Allotments[accId] = %d, want %d", s.Allotments[accId], required)
	}
}

func TestAllotmentComputePullsAdditionalInputOnShortfall(t *testing.T) {
	extra := basicInput(9, 5_000_000, addrA())
	extra.Output.(*iotago.BasicOutput).Mana = 5_000
	s := newState(t, []iotago.Input{extra}, nil)
	accId := iotago.AccountId{4}
	accOut := &iotago.AccountOutput{
		Amount:    2_000_000,
		Mana:      0,
		AccountID: accId,
		UnlockConds: iotago.UnlockConditionSet{
			iotago.StateControllerAddressUnlockCondition{Address: addrA()},
			iotago.GovernorAddressUnlockCondition{Address: addrA()},
		},
	}
	s.AddedOutputs = []iotago.Output{accOut}
	s.Params.WorkScoreParameters.Account = 1000

	e := NewAllotmentEngine(s)
	if _, err := e.Compute(accId, ReferenceManaCost(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.SelectedInputs) != 1 {
		t.Fatalf("expected the allotment engine to pull the extra input for mana, got %d selected", len(s.SelectedInputs))
	}
}

func TestAllotmentComputeUnfulfillableWhenAccountMissing(t *testing.T) {
	s := newState(t, nil, nil)
	e := NewAllotmentEngine(s)
	_, err := e.Compute(iotago.AccountId{1}, ReferenceManaCost(2))
	if err == nil {
		t.Fatal("expected an error when the account output isn't present in the selection")
	}
}

func TestAllotmentComputeRespectsDisableAdditionalInputSelection(t *testing.T) {
	s := newState(t, []iotago.Input{basicInput(9, 5_000_000, addrA())}, nil)
	s.DisableAdditionalInputSelection = true
	accId := iotago.AccountId{4}
	accOut := &iotago.AccountOutput{
		Amount:    2_000_000,
		Mana:      0,
		AccountID: accId,
		UnlockConds: iotago.UnlockConditionSet{
			iotago.StateControllerAddressUnlockCondition{Address: addrA()},
			iotago.GovernorAddressUnlockCondition{Address: addrA()},
		},
	}
	s.AddedOutputs = []iotago.Output{accOut}
	s.Params.WorkScoreParameters.Account = 1000

	e := NewAllotmentEngine(s)
	_, err := e.Compute(accId, ReferenceManaCost(2))
	if err == nil {
		t.Fatal("expected an error when more input is needed but additional input selection is disabled")
	}
	if _, ok := err.(*ErrAdditionalInputsRequired); !ok {
		t.Errorf("got error %T, want *ErrAdditionalInputsRequired", err)
	}
}
