package txbuilder

import (
	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/params"
)

// Classifier implements the Output Classifier (C2): pure functions of an
// output (and, for unlock resolution, the current slot context) that every
// later component relies on rather than re-deriving. It is a params-bound
// value rather than free functions because required-address resolution
// needs the protocol's committable age range (§4.2).
type Classifier struct {
	Params params.ProtocolParameters
}

// NewClassifier constructs a Classifier bound to p.
func NewClassifier(p params.ProtocolParameters) *Classifier {
	return &Classifier{Params: p}
}

// RequiredAddress returns the address that must provide an unlock for o at
// atSlot, given the output's unlock conditions (§4.2). Outputs with no
// Expiration condition always resolve to the plain owner address. Outputs
// with an Expiration condition resolve to the owner while the owner is
// conclusively still in control, to the return address once the return
// address is conclusively in control, and are rejected as ambiguous inside
// the narrow committable-age window where either party's block could land
// (SUPPLEMENTED FEATURES: expiration-aware unlock resolution order).
func (c *Classifier) RequiredAddress(o iotago.Output, atSlot uint32) (iotago.Address, error) {
	conds := o.Conditions()

	if tl := conds.Timelock(); tl != nil && atSlot < tl.SlotIndex {
		return nil, nil
	}

	exp := conds.Expiration()
	if exp == nil {
		return c.ownerAddress(o, conds)
	}

	minAge := c.Params.CommittableAgeRange.Min
	maxAge := c.Params.CommittableAgeRange.Max

	ownerCanUnlock := atSlot+maxAge < exp.SlotIndex
	returnCanUnlock := atSlot+minAge >= exp.SlotIndex

	switch {
	case ownerCanUnlock && !returnCanUnlock:
		return c.ownerAddress(o, conds)
	case returnCanUnlock && !ownerCanUnlock:
		return exp.ReturnAddress, nil
	case ownerCanUnlock && returnCanUnlock:
		// Both conclusively true only happens for degenerate/zero age
		// ranges; treat the owner as still in control, matching the
		// strict-inequality precedence the real protocol gives owners.
		return c.ownerAddress(o, conds)
	default:
		return nil, &ErrInvalidOutput{Reason: "output is in the ambiguous expiration window at the given slot"}
	}
}

func (c *Classifier) ownerAddress(o iotago.Output, conds iotago.UnlockConditionSet) (iotago.Address, error) {
	switch o.Kind() {
	case iotago.OutputAccount:
		if sc := conds.StateControllerAddress(); sc != nil {
			return sc.Address, nil
		}
		return nil, &ErrInvalidOutput{Reason: "account output missing state controller address"}
	case iotago.OutputFoundry:
		if ia := conds.ImmutableAccountAddress(); ia != nil {
			return ia.Address, nil
		}
		return nil, &ErrInvalidOutput{Reason: "foundry output missing immutable account address"}
	default:
		if a := conds.Address(); a != nil {
			return a.Address, nil
		}
		return nil, &ErrInvalidOutput{Reason: "output missing address unlock condition"}
	}
}

// GovernorAddress returns the governance-transition unlock address of an
// Account output, distinct from RequiredAddress which resolves the
// state-transition address (§4.2, §4.6 governance vs. state transitions).
func (c *Classifier) GovernorAddress(o *iotago.AccountOutput) (iotago.Address, error) {
	if g := o.Conditions().GovernorAddress(); g != nil {
		return g.Address, nil
	}
	return nil, &ErrInvalidOutput{Reason: "account output missing governor address"}
}

// ChainId returns the chain identity of a stateful output and whether it
// carries one at all (§3, §4.2). Basic and Delegation outputs never carry a
// ChainId.
func ChainId(o iotago.Output) (iotago.ChainId, bool) {
	switch v := o.(type) {
	case *iotago.AccountOutput:
		return iotago.ChainIdFromAccount(v.AccountID), true
	case *iotago.NftOutput:
		return iotago.ChainIdFromNft(v.NftID), true
	case *iotago.FoundryOutput:
		return iotago.ChainIdFromFoundry(v.Id()), true
	default:
		return iotago.ChainId{}, false
	}
}

// NativeTokenOf returns the single native token an output carries, if any
// (§4.2: "at most one native token per output").
func NativeTokenOf(o iotago.Output) (*iotago.NativeToken, bool) {
	if b, ok := o.(*iotago.BasicOutput); ok && b.NativeTok != nil {
		return b.NativeTok, true
	}
	return nil, false
}

// IsImplicitAccount reports whether o is a Basic output locked by an
// ImplicitAccountCreationAddress, and therefore only spendable via the
// implicit-account transition path of §4.6.
func IsImplicitAccount(o iotago.Output) bool {
	b, ok := o.(*iotago.BasicOutput)
	if !ok {
		return false
	}
	a := b.Conditions().Address()
	if a == nil {
		return false
	}
	_, ok = a.Address.(iotago.ImplicitAccountCreationAddress)
	return ok
}
