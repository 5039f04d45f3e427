package txbuilder

import (
	"math/big"
	"testing"

	"github.com/iotaledger/iota-sdk-go/iotago"
)

func TestCandidateIndexTakeUnlockableBy(t *testing.T) {
	p := testParams()
	c := NewClassifier(p)
	inputs := []iotago.Input{
		basicInput(1, 2_000_000, addrA()),
		basicInput(2, 1_000_000, addrB()),
		basicInput(3, 2_000_000, addrA()),
	}
	idx := NewCandidateIndex(inputs, c)

	in, ok := idx.TakeUnlockableBy(addrB(), 0)
	if !ok {
		t.Fatal("expected to find an input unlockable by B")
	}
	if in.Output.BaseAmount() != 1_000_000 {
		t.Errorf("got amount %d, want 1_000_000", in.Output.BaseAmount())
	}
	if len(idx.Remaining()) != 2 {
		t.Errorf("TakeUnlockableBy should remove the match from the pool, %d remain", len(idx.Remaining()))
	}

	if _, ok := idx.TakeUnlockableBy(addrB(), 0); ok {
		t.Fatal("B's only input was already taken, should not be found again")
	}
}

func TestCandidateIndexTakeForAmountPrefersClosestCover(t *testing.T) {
	p := testParams()
	c := NewClassifier(p)
	inputs := []iotago.Input{
		basicInput(1, 5_000_000, addrA()),
		basicInput(2, 1_500_000, addrA()),
		basicInput(3, 900_000, addrA()),
	}
	idx := NewCandidateIndex(inputs, c)

	in, ok := idx.TakeForAmount(1_000_000)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if in.Output.BaseAmount() != 1_500_000 {
		t.Errorf("got amount %d, want the smallest candidate that still covers delta (1_500_000)", in.Output.BaseAmount())
	}
}

func TestCandidateIndexTakeForAmountFallsBackToLargestWhenNoneCovers(t *testing.T) {
	p := testParams()
	c := NewClassifier(p)
	inputs := []iotago.Input{
		basicInput(1, 100, addrA()),
		basicInput(2, 900, addrA()),
	}
	idx := NewCandidateIndex(inputs, c)

	in, ok := idx.TakeForAmount(10_000)
	if !ok {
		t.Fatal("expected a candidate even though none covers delta")
	}
	if in.Output.BaseAmount() != 900 {
		t.Errorf("got amount %d, want the largest available (900) when nothing covers delta", in.Output.BaseAmount())
	}
}

func TestCandidateIndexTakeForNativeToken(t *testing.T) {
	p := testParams()
	c := NewClassifier(p)
	tokenId := iotago.TokenId{1, 2, 3}
	inputs := []iotago.Input{
		{
			OutputId: outputIdFor(1),
			Output: &iotago.BasicOutput{
				Amount:      1000,
				UnlockConds: iotago.UnlockConditionSet{iotago.AddressUnlockCondition{Address: addrA()}},
				NativeTok:   &iotago.NativeToken{Id: tokenId, Amount: big.NewInt(500)},
			},
		},
		{
			OutputId: outputIdFor(2),
			Output: &iotago.BasicOutput{
				Amount:      1000,
				UnlockConds: iotago.UnlockConditionSet{iotago.AddressUnlockCondition{Address: addrA()}},
				NativeTok:   &iotago.NativeToken{Id: tokenId, Amount: big.NewInt(200)},
			},
		},
	}
	idx := NewCandidateIndex(inputs, c)

	in, ok := idx.TakeForNativeToken(tokenId, big.NewInt(200))
	if !ok {
		t.Fatal("expected a candidate")
	}
	nt, _ := NativeTokenOf(in.Output)
	if nt.Amount.Cmp(big.NewInt(200)) != 0 {
		t.Errorf("got amount %s, want the closest cover (200)", nt.Amount)
	}
}

func TestCandidateIndexCopiesInputSlice(t *testing.T) {
	p := testParams()
	c := NewClassifier(p)
	inputs := []iotago.Input{basicInput(1, 1000, addrA()), basicInput(2, 5000, addrA())}
	idx := NewCandidateIndex(inputs, c)

	idx.TakeForAmount(1000)
	if len(inputs) != 2 {
		t.Fatal("caller's input slice must never be mutated")
	}
	if inputs[0].OutputId != outputIdFor(1) || inputs[1].OutputId != outputIdFor(2) {
		t.Fatal("caller's input slice elements must never be shifted or replaced")
	}
}
