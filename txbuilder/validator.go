package txbuilder

import (
	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/params"
)

// Validator implements C10: the final pass over a drained SelectionState
// that either confirms the selection is semantically valid or returns the
// precise violation (§4.10).
type Validator struct {
	state *SelectionState
}

func NewValidator(s *SelectionState) *Validator {
	return &Validator{state: s}
}

// Validate runs every check in §4.10, setting burn/destroy capability
// flags as a side effect where the selection earns them.
func (v *Validator) Validate() error {
	if err := v.checkCounts(); err != nil {
		return err
	}
	if err := v.checkNativeTokenConservation(); err != nil {
		return err
	}
	if err := v.checkImmutableFeatures(); err != nil {
		return err
	}
	if err := v.checkMinimumAmounts(); err != nil {
		return err
	}
	v.deriveCapabilities()
	return nil
}

func (v *Validator) checkCounts() error {
	s := v.state
	nInputs := len(s.SelectedInputs)
	if nInputs < 1 || nInputs > int(s.Params.MaxInputs) {
		return &ErrInvalidInputCount{N: nInputs}
	}
	nOutputs := len(s.ProvidedOutputs) + len(s.AddedOutputs)
	if nOutputs < 1 || nOutputs > int(s.Params.MaxOutputs) {
		return &ErrInvalidOutputCount{N: nOutputs}
	}
	for _, o := range append(append([]iotago.Output{}, s.ProvidedOutputs...), s.AddedOutputs...) {
		if n := len(o.Conditions()); n > iotago.MaxUnlockConditionsCount {
			return &ErrInvalidUnlockConditionCount{N: n}
		}
	}
	return nil
}

// checkNativeTokenConservation re-derives the per-token balance the
// Remainder Engine already enforced and asserts it nets to zero, since a
// bug between C7 and C10 should surface here rather than silently pass
// (§4.10, §8 property 1).
func (v *Validator) checkNativeTokenConservation() error {
	re := NewRemainderEngine(v.state)
	for id, residue := range re.balanceNativeTokens() {
		if residue.Sign() != 0 {
			return &ErrNativeTokenSumUnbalanced{TokenId: iotago.Hash256(id).String()}
		}
	}
	return nil
}

// checkImmutableFeatures re-verifies every transitioned chain output's
// immutable features against its consumed input, independent of the
// Transition Engine's own check (§3 invariant 6, §8 property 3).
func (v *Validator) checkImmutableFeatures() error {
	s := v.state
	for key, in := range s.chainInputs {
		idx, ok := s.chainOutputIdx[key]
		if !ok {
			continue // burned, not transitioned
		}
		var out iotago.Output
		if idx >= 0 {
			out = s.AddedOutputs[idx]
		} else {
			out = s.ProvidedOutputs[-1-idx]
		}
		if !iotago.ImmutableEqual(immutableFeaturesOf(in.Output), immutableFeaturesOf(out)) {
			return &ErrChainOutputImmutableFeaturesChanged{ChainId: key}
		}
	}
	return nil
}

// checkMinimumAmounts rejects any output whose amount sits below its own
// storage-score minimum (§8 boundary: "amount = minimum_amount(o) - 1
// rejected").
func (v *Validator) checkMinimumAmounts() error {
	s := v.state
	for _, o := range s.ProvidedOutputs {
		if !params.MeetsMinimumAmount(o, s.Params) {
			return &ErrInsufficientAmount{Found: o.BaseAmount(), Required: params.MinimumAmount(o, s.Params)}
		}
	}
	for _, o := range s.AddedOutputs {
		if !params.MeetsMinimumAmount(o, s.Params) {
			return &ErrInsufficientAmount{Found: o.BaseAmount(), Required: params.MinimumAmount(o, s.Params)}
		}
	}
	return nil
}

// deriveCapabilities sets BurnMana / BurnNativeTokens when those resources
// actually shrank; DestroyAccountOutputs/DestroyNftOutputs/
// DestroyFoundryOutputs are already set by the Transition Engine at the
// moment of destruction (§4.10, §8 property 6).
func (v *Validator) deriveCapabilities() {
	s := v.state
	re := NewRemainderEngine(s)

	in := re.effectiveInputMana()
	out := re.outputManaSum() + re.allotmentSum()
	if in > out {
		s.Capabilities.Set(CapabilityBurnMana)
	}

	for _, amt := range s.Burn.NativeTokens {
		if amt.Sign() > 0 {
			s.Capabilities.Set(CapabilityBurnNativeTokens)
			break
		}
	}
}
