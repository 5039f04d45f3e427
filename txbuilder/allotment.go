package txbuilder

import (
	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/params"
)

// maxAllotmentIterations bounds the fixed-point loop of §4.8 step 2; the
// spec expects convergence in ≤3 rounds since only the allotment itself
// (not the unrelated outputs) changes the transaction's serialized size
// between iterations.
const maxAllotmentIterations = 8

// AllotmentEngine implements C8: sizes the mana allotment a designated
// account needs to pay for issuing this transaction's block, funding it
// from the account's own mana or (if permitted) freshly pulled input mana.
type AllotmentEngine struct {
	state *SelectionState
}

func NewAllotmentEngine(s *SelectionState) *AllotmentEngine {
	return &AllotmentEngine{state: s}
}

// ReferenceManaCost is the per-work-score-unit cost the caller supplies via
// with_min_mana_allotment's reference_block_issuance_parameters (§6.1);
// modeled here as a single scalar since that's the only reference
// parameter the allotment formula actually consumes.
type ReferenceManaCost uint64

// Compute runs the §4.8 fixed-point loop for accountId, funded against
// rmc, and returns the allotment amount. It mutates state.Allotments and
// the funding account output's mana in place on success.
func (e *AllotmentEngine) Compute(accountId iotago.AccountId, rmc ReferenceManaCost) (uint64, error) {
	var required uint64
	for i := 0; i < maxAllotmentIterations; i++ {
		workScore := e.estimateWorkScore()
		next := workScore * uint64(rmc)
		if next == required {
			break
		}
		required = next
	}

	accountIdx, accountOut := e.findAccountOutput(accountId)
	if accountOut == nil {
		return 0, &ErrUnfulfillableRequirement{Requirement: Requirement{Kind: RequirementAccount, ChainId: iotago.ChainIdFromAccount(accountId)}}
	}

	available := accountOut.Mana
	if available < required {
		shortfall := required - available
		if e.state.DisableAdditionalInputSelection {
			return 0, &ErrAdditionalInputsRequired{Requirement: Requirement{Kind: RequirementMana, ChainId: iotago.ChainIdFromAccount(accountId)}}
		}
		pulled, ok := e.state.Index.TakeForMana(shortfall, e.state.CommitmentSlot)
		if !ok {
			return 0, &ErrInsufficientMana{Found: available, Required: required}
		}
		e.state.commitInput(pulled)
		mv := params.DecayedMana(pulled.Output.StoredMana(), pulled.Output.BaseAmount(),
			pulled.OutputMetadata.IncludedSlot, e.state.CommitmentSlot, e.state.Params.ManaParameters)
		available += mv.EffectiveMana()
		if available < required {
			return 0, &ErrInsufficientMana{Found: available, Required: required}
		}
	}

	accountOut.Mana = available - required
	if accountIdx >= 0 {
		e.state.AddedOutputs[accountIdx] = accountOut
	} else {
		e.state.ProvidedOutputs[-1-accountIdx] = accountOut
	}
	e.state.Allotments[accountId] = required
	return required, nil
}

// estimateWorkScore sums per-kind work-score weights over every output
// currently in the selection plus a flat per-byte charge over their packed
// size, the proxy §4.8 step 2 calls "a function of the transaction's
// serialized size" (work-score parameters, §6.1).
func (e *AllotmentEngine) estimateWorkScore() uint64 {
	var total uint64
	wp := e.state.Params.WorkScoreParameters
	score := func(o iotago.Output) uint64 {
		var base uint64
		switch o.Kind() {
		case iotago.OutputBasic:
			base = wp.Basic
		case iotago.OutputAccount:
			base = wp.Account
		case iotago.OutputNft:
			base = wp.Nft
		case iotago.OutputFoundry:
			base = wp.Foundry
		case iotago.OutputDelegation:
			base = wp.Delegation
		case iotago.OutputAnchor:
			base = wp.Anchor
		}
		return base + uint64(iotago.PackedSize(o))*wp.PerByte
	}
	for _, o := range e.state.ProvidedOutputs {
		total += score(o)
	}
	for _, o := range e.state.AddedOutputs {
		total += score(o)
	}
	return total
}

func (e *AllotmentEngine) findAccountOutput(id iotago.AccountId) (int, *iotago.AccountOutput) {
	for i, o := range e.state.AddedOutputs {
		if ao, ok := o.(*iotago.AccountOutput); ok && ao.AccountID == id {
			return i, ao
		}
	}
	for i, o := range e.state.ProvidedOutputs {
		if ao, ok := o.(*iotago.AccountOutput); ok && ao.AccountID == id {
			return -1 - i, ao
		}
	}
	return 0, nil
}
