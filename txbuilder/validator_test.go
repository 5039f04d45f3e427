package txbuilder

import (
	"testing"

	"github.com/iotaledger/iota-sdk-go/iotago"
)

func TestValidatorRejectsTooFewInputs(t *testing.T) {
	s := newState(t, nil, []iotago.Output{basicOutput(1000, addrA())})
	v := NewValidator(s)
	err := v.Validate()
	if err == nil {
		t.Fatal("expected an error with zero selected inputs")
	}
	if _, ok := err.(*ErrInvalidInputCount); !ok {
		t.Errorf("got error %T, want *ErrInvalidInputCount", err)
	}
}

func TestValidatorRejectsTooFewOutputs(t *testing.T) {
	s := newState(t, nil, nil)
	s.SelectedInputs = []iotago.Input{basicInput(1, 1000, addrA())}
	v := NewValidator(s)
	err := v.Validate()
	if err == nil {
		t.Fatal("expected an error with zero outputs")
	}
	if _, ok := err.(*ErrInvalidOutputCount); !ok {
		t.Errorf("got error %T, want *ErrInvalidOutputCount", err)
	}
}

func TestValidatorAcceptsBalancedSelection(t *testing.T) {
	s := newState(t, nil, []iotago.Output{basicOutput(2_000_000, addrA())})
	s.SelectedInputs = []iotago.Input{basicInput(1, 2_000_000, addrA())}
	v := NewValidator(s)
	if err := v.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatorRejectsBelowMinimumAmount(t *testing.T) {
	s := newState(t, nil, []iotago.Output{basicOutput(1, addrA())})
	s.SelectedInputs = []iotago.Input{basicInput(1, 1, addrA())}
	v := NewValidator(s)
	err := v.Validate()
	if err == nil {
		t.Fatal("expected an error for an output below its storage-score minimum")
	}
	if _, ok := err.(*ErrInsufficientAmount); !ok {
		t.Errorf("got error %T, want *ErrInsufficientAmount", err)
	}
}

func TestValidatorDerivesBurnManaCapability(t *testing.T) {
	s := newState(t, nil, []iotago.Output{basicOutput(2_000_000, addrA())})
	s.SelectedInputs = []iotago.Input{{
		OutputId: outputIdFor(1),
		Output: &iotago.BasicOutput{
			Amount: 2_000_000,
			Mana:   500,
			UnlockConds: iotago.UnlockConditionSet{
				iotago.AddressUnlockCondition{Address: addrA()},
			},
		},
	}}

	v := NewValidator(s)
	if err := v.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Capabilities.Has(CapabilityBurnMana) {
		t.Error("leftover input mana with no remainder output should set CapabilityBurnMana")
	}
}
