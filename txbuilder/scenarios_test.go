package txbuilder

import (
	"math/big"
	"testing"

	"github.com/iotaledger/iota-sdk-go/iotago"
)

// TestScenarioSimpleSendWithRemainder is §8 S1: a single Basic input funds a
// smaller Basic output, and the engine must emit a remainder carrying the
// rest back to the sender.
func TestScenarioSimpleSendWithRemainder(t *testing.T) {
	available := []iotago.Input{basicInput(1, 2_000_000, addrA())}
	provided := []iotago.Output{basicOutput(500_000, addrA())}

	b := New(available, provided, testParams()).WithRemainderAddress(addrA())
	tx, err := b.Finish()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tx.InputsData) != 1 {
		t.Errorf("got %d inputs, want 1", len(tx.InputsData))
	}
	if len(tx.Transaction.Outputs) != 2 {
		t.Fatalf("got %d outputs, want 2", len(tx.Transaction.Outputs))
	}
	if len(tx.Remainders) != 1 || tx.Remainders[0].Amount != 1_500_000 {
		t.Errorf("remainders = %+v, want a single 1_500_000 remainder", tx.Remainders)
	}
}

// TestScenarioSendWithSenderRequirement is §8 S2: the target output names a
// Sender feature, forcing the resolver to pull in an input owned by that
// sender even though the amount alone wouldn't require it.
func TestScenarioSendWithSenderRequirement(t *testing.T) {
	available := []iotago.Input{
		basicInput(1, 2_000_000, addrA()),
		basicInput(2, 2_000_000, addrA()),
		basicInput(3, 1_000_000, addrB()),
		basicInput(4, 2_000_000, addrA()),
		basicInput(5, 2_000_000, addrA()),
	}
	target := &iotago.BasicOutput{
		Amount: 2_000_000,
		UnlockConds: iotago.UnlockConditionSet{
			iotago.AddressUnlockCondition{Address: addrA()},
		},
		Feats: iotago.FeatureSet{iotago.SenderFeature{Address: addrB()}},
	}

	b := New(available, []iotago.Output{target}, testParams()).WithRemainderAddress(addrA())
	tx, err := b.Finish()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tx.InputsData) != 2 {
		t.Fatalf("got %d inputs, want 2", len(tx.InputsData))
	}
	var sawB bool
	for _, in := range tx.InputsData {
		if in.Output.BaseAmount() == 1_000_000 {
			sawB = true
		}
	}
	if !sawB {
		t.Error("expected the B-owned 1M input among the selected inputs")
	}
}

// TestScenarioCreateAccountFromBasic is §8 S3: minting an Account output
// with a zero placeholder id derives its final id from the consuming Basic
// input's OutputId.
func TestScenarioCreateAccountFromBasic(t *testing.T) {
	available := []iotago.Input{basicInput(1, 2_000_000, addrA())}
	target := &iotago.AccountOutput{
		Amount: 1_000_000,
		UnlockConds: iotago.UnlockConditionSet{
			iotago.StateControllerAddressUnlockCondition{Address: addrA()},
			iotago.GovernorAddressUnlockCondition{Address: addrA()},
		},
	}

	b := New(available, []iotago.Output{target}, testParams()).WithRemainderAddress(addrA())
	tx, err := b.Finish()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tx.Transaction.Outputs) != 2 {
		t.Fatalf("got %d outputs, want 2", len(tx.Transaction.Outputs))
	}

	var account *iotago.AccountOutput
	for _, o := range tx.Transaction.Outputs {
		if ao, ok := o.(*iotago.AccountOutput); ok {
			account = ao
		}
	}
	if account == nil {
		t.Fatal("expected an account output among the results")
	}
	want := iotago.AccountIdFromOutputId(available[0].OutputId)
	if account.AccountID != want {
		t.Errorf("account id = %v, want %v derived from the consumed input's OutputId", account.AccountID, want)
	}
}

// TestScenarioBurnAccount is §8 S4: burning the sole chain input in the
// selection must leave it unreplaced and set the destroy capability.
func TestScenarioBurnAccount(t *testing.T) {
	accId := iotago.AccountId{0xAA}
	available := []iotago.Input{{
		OutputId: outputIdFor(1),
		Output: &iotago.AccountOutput{
			Amount:    2_000_000,
			AccountID: accId,
			UnlockConds: iotago.UnlockConditionSet{
				iotago.StateControllerAddressUnlockCondition{Address: addrA()},
				iotago.GovernorAddressUnlockCondition{Address: addrA()},
			},
		},
	}}
	target := basicOutput(2_000_000, addrA())

	burn := NewBurn().Account(accId)
	b := New(available, []iotago.Output{target}, testParams()).
		WithBurn(burn).
		WithRemainderAddress(addrA())
	tx, err := b.Finish()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tx.InputsData) != 1 || len(tx.Transaction.Outputs) != 1 {
		t.Fatalf("got %d inputs / %d outputs, want exactly 1 each", len(tx.InputsData), len(tx.Transaction.Outputs))
	}
	if !tx.Transaction.Capabilities.Has(CapabilityDestroyAccountOutputs) {
		t.Error("expected CapabilityDestroyAccountOutputs to be set")
	}
}

// TestScenarioMintFoundryOnExistingAccount is §8 S5: minting a foundry
// pulls in its controlling account (transitioned, not reprovided) and the
// Basic input funding it, producing the provided foundry, the transitioned
// account, and a remainder. The transitioned account is first shrunk
// toward its storage-score minimum to help fund the foundry, so the Basic
// input pulled in for the rest leaves a remainder.
func TestScenarioMintFoundryOnExistingAccount(t *testing.T) {
	accId := iotago.AccountId{0xBB}
	accAddr := iotago.AccountAddress(accId)
	available := []iotago.Input{
		basicInput(1, 1_500_000, addrA()),
		{
			OutputId: outputIdFor(2),
			Output: &iotago.AccountOutput{
				Amount:    1_000_000,
				AccountID: accId,
				UnlockConds: iotago.UnlockConditionSet{
					iotago.StateControllerAddressUnlockCondition{Address: addrA()},
					iotago.GovernorAddressUnlockCondition{Address: addrA()},
				},
			},
		},
	}
	foundry := &iotago.FoundryOutput{
		Amount:      1_000_000,
		AccountAddr: accAddr,
		SerialNum:   1,
		Scheme: iotago.SimpleTokenScheme{
			MintedCoins: big.NewInt(0),
			MeltedCoins: big.NewInt(0),
			MaxSupply:   big.NewInt(10),
		},
		UnlockConds: iotago.UnlockConditionSet{
			iotago.ImmutableAccountAddressUnlockCondition{Address: accAddr},
		},
	}

	b := New(available, []iotago.Output{foundry}, testParams()).WithRemainderAddress(addrA())
	tx, err := b.Finish()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tx.InputsData) != 2 {
		t.Fatalf("got %d inputs, want 2", len(tx.InputsData))
	}
	if len(tx.Transaction.Outputs) != 3 {
		t.Fatalf("got %d outputs, want 3 (foundry, account, remainder)", len(tx.Transaction.Outputs))
	}

	var sawAccount, sawFoundry bool
	for _, o := range tx.Transaction.Outputs {
		switch v := o.(type) {
		case *iotago.AccountOutput:
			sawAccount = v.AccountID == accId
		case *iotago.FoundryOutput:
			sawFoundry = true
		}
	}
	if !sawAccount {
		t.Error("expected the transitioned controlling account among the outputs")
	}
	if !sawFoundry {
		t.Error("expected the provided foundry among the outputs")
	}
}

// TestScenarioTransitionedChainOutputShrinksToFundABasicOutput is §8 S6's
// other half: the sole candidate is a 2M Account, the target is a 1M Basic
// output, and nothing else is in scope to cover the gap. The resolver must
// pull the Account in via TakeForAmount, transition it at its full amount,
// then have the Remainder Engine shrink that transitioned Account back down
// (never below its storage-score minimum) to balance the transaction,
// rather than reporting a shortfall.
func TestScenarioTransitionedChainOutputShrinksToFundABasicOutput(t *testing.T) {
	accId := iotago.AccountId{0xDD}
	available := []iotago.Input{{
		OutputId: outputIdFor(1),
		Output: &iotago.AccountOutput{
			Amount:    2_000_000,
			AccountID: accId,
			UnlockConds: iotago.UnlockConditionSet{
				iotago.StateControllerAddressUnlockCondition{Address: addrA()},
				iotago.GovernorAddressUnlockCondition{Address: addrA()},
			},
		},
	}}
	target := basicOutput(1_000_000, addrA())

	b := New(available, []iotago.Output{target}, testParams()).WithRemainderAddress(addrA())
	tx, err := b.Finish()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tx.InputsData) != 1 {
		t.Fatalf("got %d inputs, want 1", len(tx.InputsData))
	}
	if len(tx.Transaction.Outputs) != 2 {
		t.Fatalf("got %d outputs, want 2 (shrunk account, basic)", len(tx.Transaction.Outputs))
	}
	if len(tx.Remainders) != 0 {
		t.Fatalf("expected no standalone remainder, got %+v", tx.Remainders)
	}

	var account *iotago.AccountOutput
	for _, o := range tx.Transaction.Outputs {
		if ao, ok := o.(*iotago.AccountOutput); ok {
			account = ao
		}
	}
	if account == nil {
		t.Fatal("expected the transitioned account among the outputs")
	}
	if account.Amount != 1_000_000 {
		t.Errorf("account amount = %d, want 1_000_000 (shrunk to cover the basic output)", account.Amount)
	}
}

// TestScenarioAutomaticManaAllotment is §8 S6, asserted structurally: the
// exact literal allotment in the spec example depends on network-specific
// work-score weights this test set does not reproduce, so this instead
// checks the conservation/shape properties any correct allotment must
// satisfy (mana moved from the account into the allotments map, exactly two
// outputs, and the resolver still converges).
func TestScenarioAutomaticManaAllotment(t *testing.T) {
	accId := iotago.AccountId{0xCC}
	available := []iotago.Input{{
		OutputId: outputIdFor(1),
		Output: &iotago.AccountOutput{
			Amount:    2_000_000,
			Mana:      1_000_000,
			AccountID: accId,
			UnlockConds: iotago.UnlockConditionSet{
				iotago.StateControllerAddressUnlockCondition{Address: addrA()},
				iotago.GovernorAddressUnlockCondition{Address: addrA()},
			},
		},
	}}
	target := &iotago.BasicOutput{
		Amount: 1_000_000,
		UnlockConds: iotago.UnlockConditionSet{
			iotago.AddressUnlockCondition{Address: addrA()},
		},
		Feats: iotago.FeatureSet{iotago.SenderFeature{Address: addrA()}},
	}

	b := New(available, []iotago.Output{target}, testParams()).
		WithMinManaAllotment(accId, ReferenceManaCost(2)).
		WithRemainderAddress(addrA())
	tx, err := b.Finish()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tx.Transaction.Outputs) != 2 {
		t.Fatalf("got %d outputs, want 2", len(tx.Transaction.Outputs))
	}
	if len(tx.Transaction.Allotments) != 1 || tx.Transaction.Allotments[0].AccountId != accId {
		t.Fatalf("expected exactly one allotment for %v, got %+v", accId, tx.Transaction.Allotments)
	}
	if tx.Transaction.Allotments[0].Mana == 0 {
		t.Error("expected a non-zero mana allotment")
	}
}
