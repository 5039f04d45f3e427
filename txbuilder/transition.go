package txbuilder

import (
	"math/big"

	"github.com/iotaledger/iota-sdk-go/iotago"
)

// TransitionEngine implements C6: given a committed chain input, produce
// (or adopt) its successor output, preserving identity and immutable
// features unless the caller explicitly burns the chain (§4.5).
type TransitionEngine struct {
	state *SelectionState
}

func NewTransitionEngine(s *SelectionState) *TransitionEngine {
	return &TransitionEngine{state: s}
}

// Transition processes in, whose chain id is cid. It either adopts a
// caller-provided output for cid, fabricates a default transition, or
// records the destruction if cid is burned. Any newly-introduced
// requirements (e.g. a NativeToken delta from a foundry mint) are pushed
// onto state.Requirements.
func (e *TransitionEngine) Transition(in iotago.Input, cid iotago.ChainId) error {
	if e.state.Burn.ChainBurned(cid) {
		e.setDestroyCapability(cid)
		return nil
	}

	if provided, ok := e.state.Transitions.Outputs[cid.Key()]; ok {
		if err := e.adoptProvided(in, cid, provided); err != nil {
			return err
		}
		return nil
	}

	out, err := e.defaultTransition(in, cid)
	if err != nil {
		return err
	}
	e.state.AddedOutputs = append(e.state.AddedOutputs, out)
	e.state.addedOutputSource = append(e.state.addedOutputSource, in.OutputId)
	e.state.addedIsRemainder = append(e.state.addedIsRemainder, false)
	e.state.chainOutputIdx[cid.Key()] = len(e.state.AddedOutputs) - 1

	if fo, ok := in.Output.(*iotago.FoundryOutput); ok {
		e.pushFoundryDelta(fo, out.(*iotago.FoundryOutput))
	}
	if ao, ok := in.Output.(*iotago.AccountOutput); ok {
		if ao.Features().BlockIssuer() != nil {
			e.state.Requirements.Push(Requirement{Kind: RequirementContextInputs})
		}
	}
	return nil
}

func (e *TransitionEngine) setDestroyCapability(cid iotago.ChainId) {
	switch cid.Kind {
	case iotago.ChainIdAccount:
		e.state.Capabilities.Set(CapabilityDestroyAccountOutputs)
	case iotago.ChainIdNft:
		e.state.Capabilities.Set(CapabilityDestroyNftOutputs)
	case iotago.ChainIdFoundry:
		e.state.Capabilities.Set(CapabilityDestroyFoundryOutputs)
	}
}

// adoptProvided validates a caller-supplied transition output against the
// input it replaces and, if valid, records it as already present among
// ProvidedOutputs (it is not appended to AddedOutputs — it's already in
// ProvidedOutputs by construction of the builder).
func (e *TransitionEngine) adoptProvided(in iotago.Input, cid iotago.ChainId, provided iotago.Output) error {
	if !iotago.ImmutableEqual(immutableFeaturesOf(in.Output), immutableFeaturesOf(provided)) {
		return &ErrChainOutputImmutableFeaturesChanged{ChainId: cid.Key()}
	}
	for i, o := range e.state.ProvidedOutputs {
		if sameChain(o, cid) {
			e.state.chainOutputIdx[cid.Key()] = -1 - i // negative-offset marker into ProvidedOutputs
			break
		}
	}
	if fo, ok := in.Output.(*iotago.FoundryOutput); ok {
		if po, ok := provided.(*iotago.FoundryOutput); ok {
			e.pushFoundryDelta(fo, po)
		}
	}
	if ao, ok := in.Output.(*iotago.AccountOutput); ok {
		if pa, ok := provided.(*iotago.AccountOutput); ok {
			want := ao.FoundryCounter + e.state.PendingFoundryMints[ao.AccountID]
			if pa.FoundryCounter != want {
				return &ErrFoundryCounterMismatch{AccountId: ao.AccountID.String(), Got: pa.FoundryCounter, Want: want}
			}
		}
	}
	return nil
}

func sameChain(o iotago.Output, cid iotago.ChainId) bool {
	oid, ok := ChainId(o)
	return ok && oid.Key() == cid.Key()
}

func immutableFeaturesOf(o iotago.Output) iotago.FeatureSet {
	switch v := o.(type) {
	case *iotago.AccountOutput:
		return v.ImmutableFeats
	case *iotago.NftOutput:
		return v.ImmutableFeats
	case *iotago.AnchorOutput:
		return v.ImmutableFeats
	default:
		return nil
	}
}

// defaultTransition fabricates the successor output when the caller didn't
// provide one explicitly: same variant, identity preserved, immutable
// features copied verbatim, amount inherited (later adjustable by the
// Remainder Engine), mutable features inherited too (§4.5).
func (e *TransitionEngine) defaultTransition(in iotago.Input, cid iotago.ChainId) (iotago.Output, error) {
	switch v := in.Output.(type) {
	case *iotago.AccountOutput:
		c := *v
		c.FoundryCounter += e.state.PendingFoundryMints[v.AccountID]
		return &c, nil
	case *iotago.NftOutput:
		c := *v
		return &c, nil
	case *iotago.FoundryOutput:
		c := *v
		return &c, nil
	case *iotago.AnchorOutput:
		c := *v
		return &c, nil
	default:
		return nil, &ErrInvalidOutput{Reason: "input has a chain id but is not a recognized chain output kind"}
	}
}

// pushFoundryDelta introduces a NativeToken requirement for the delta
// between the new and old circulating supply, per §4.5's mint/melt
// derivation and the SUPPLEMENTED FEATURES foundry-continuity note.
func (e *TransitionEngine) pushFoundryDelta(oldFo, newFo *iotago.FoundryOutput) {
	oldScheme, ok1 := oldFo.Scheme.(iotago.SimpleTokenScheme)
	newScheme, ok2 := newFo.Scheme.(iotago.SimpleTokenScheme)
	if !ok1 || !ok2 {
		return
	}
	delta := new(big.Int).Sub(newScheme.CirculatingSupply(), oldScheme.CirculatingSupply())
	if delta.Sign() == 0 {
		return
	}
	e.state.Requirements.Push(Requirement{
		Kind:      RequirementNativeToken,
		TokenId:   iotago.TokenId(newFo.Id()),
		MinAmount: delta,
	})
}

// ImplicitAccountTransition promotes a Basic input owned by an
// ImplicitAccountCreationAddress into a full Account output with a
// BlockIssuer feature (§4.6). pubKeyHash must be exactly 32 bytes; the
// builder validates this length up front (SUPPLEMENTED FEATURES).
func (e *TransitionEngine) ImplicitAccountTransition(in iotago.Input, pubKeyHash [32]byte) (*iotago.AccountOutput, error) {
	basic, ok := in.Output.(*iotago.BasicOutput)
	if !ok || !IsImplicitAccount(in.Output) {
		return nil, &ErrInvalidOutput{Reason: "implicit account transition requires a basic output owned by an implicit account creation address"}
	}

	accountId := iotago.AccountIdFromOutputId(in.OutputId)
	a := basic.Conditions().Address().Address.(iotago.ImplicitAccountCreationAddress)

	out := &iotago.AccountOutput{
		Amount:    basic.Amount,
		Mana:      basic.Mana,
		AccountID: accountId,
		UnlockConds: iotago.UnlockConditionSet{
			iotago.StateControllerAddressUnlockCondition{Address: iotago.Ed25519Address(a)},
			iotago.GovernorAddressUnlockCondition{Address: iotago.Ed25519Address(a)},
		},
		Feats: iotago.FeatureSet{
			iotago.BlockIssuerFeature{PublicKeyHashes: [][32]byte{pubKeyHash}},
		},
	}
	e.state.AddedOutputs = append(e.state.AddedOutputs, out)
	e.state.addedOutputSource = append(e.state.addedOutputSource, in.OutputId)
	e.state.addedIsRemainder = append(e.state.addedIsRemainder, false)
	cid := iotago.ChainIdFromAccount(accountId)
	e.state.chainOutputIdx[cid.Key()] = len(e.state.AddedOutputs) - 1
	e.state.Requirements.Push(Requirement{Kind: RequirementContextInputs})
	return out, nil
}
