package txbuilder

import (
	"bytes"
	"sort"

	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/params"
)

// AccountAllotment is one (AccountId, mana) entry of a prepared
// transaction's allotments list (§6.2).
type AccountAllotment struct {
	AccountId iotago.AccountId
	Mana      uint64
}

// ContextInput is a placeholder for the commitment/BIC/reward context
// inputs a real block attaches; the core only tracks that one was needed
// (§1 Non-goals: block-layer codec is an external collaborator).
type ContextInput struct {
	Kind string
}

// Transaction is the essential content of §6.2's `transaction` field. The
// block-layer envelope (network id framing, payload packing) belongs to
// the out-of-scope codec; this struct holds what the resolver itself
// produces.
type Transaction struct {
	NetworkId     uint64
	CreationSlot  uint32
	ContextInputs []ContextInput
	Inputs        []iotago.OutputId
	Allotments    []AccountAllotment
	Capabilities  CapabilitySet
	Outputs       []iotago.Output
}

// PreparedTransaction is the resolver's result shape (§6.2).
type PreparedTransaction struct {
	InputsData  []iotago.Input
	Transaction Transaction
	Remainders  []Remainder
}

// assemble builds the final PreparedTransaction from a drained
// SelectionState, applying the §5 output-ordering rule: transitioned chain
// outputs sorted by their source input's OutputId, then caller-supplied
// outputs in original order, then remainders last.
func assemble(s *SelectionState, remainders []Remainder) *PreparedTransaction {
	type transitioned struct {
		source iotago.OutputId
		output iotago.Output
	}
	var ts []transitioned
	var rem []iotago.Output
	for i, o := range s.AddedOutputs {
		if s.addedIsRemainder[i] {
			rem = append(rem, o)
		} else {
			ts = append(ts, transitioned{source: s.addedOutputSource[i], output: o})
		}
	}
	sort.Slice(ts, func(i, j int) bool {
		a, b := ts[i].source.Bytes(), ts[j].source.Bytes()
		return bytes.Compare(a[:], b[:]) < 0
	})

	outputs := make([]iotago.Output, 0, len(ts)+len(s.ProvidedOutputs)+len(rem))
	for _, t := range ts {
		outputs = append(outputs, t.output)
	}
	outputs = append(outputs, s.ProvidedOutputs...)
	outputs = append(outputs, rem...)

	inputIds := make([]iotago.OutputId, len(s.SelectedInputs))
	for i, in := range s.SelectedInputs {
		inputIds[i] = in.OutputId
	}

	allotments := make([]AccountAllotment, 0, len(s.Allotments))
	for id, mana := range s.Allotments {
		allotments = append(allotments, AccountAllotment{AccountId: id, Mana: mana})
	}
	sort.Slice(allotments, func(i, j int) bool {
		a, b := allotments[i].AccountId, allotments[j].AccountId
		return bytes.Compare(a[:], b[:]) < 0
	})

	return &PreparedTransaction{
		InputsData: s.SelectedInputs,
		Transaction: Transaction{
			CreationSlot: s.CommitmentSlot,
			Inputs:       inputIds,
			Allotments:   allotments,
			Capabilities: s.Capabilities,
			Outputs:      outputs,
		},
		Remainders: remainders,
	}
}

// Builder is the fluent construction surface of §6.1. Every With* method
// mutates the in-progress selection state and returns the receiver; Finish
// runs the resolver exactly once.
type Builder struct {
	state *SelectionState
	rmc   ReferenceManaCost
	err   error
}

// New constructs a Builder over available inputs and the caller's desired
// outputs. available must be non-empty (§6.1); p is the protocol
// parameters configuration.
func New(available []iotago.Input, provided []iotago.Output, p params.ProtocolParameters) *Builder {
	b := &Builder{state: newSelectionState(available, provided, p.WithDefaults())}
	if len(available) == 0 {
		b.err = ErrNoOutputs
	}
	if p.StorageScoreParameters.StorageCost == 0 || p.Bech32HRP == "" {
		b.err = ErrInvalidProtocolParameters
	}
	return b
}

// WithBurn sets the burn plan (§6.1 with_burn). A chain id present in both
// burn and a provided output or with_transitions output entry is rejected
// immediately (SUPPLEMENTED FEATURES: burn-and-transition mutual exclusion).
func (b *Builder) WithBurn(burn *Burn) *Builder {
	if b.err != nil {
		return b
	}
	b.state.Burn = burn
	b.err = b.checkBurnTransitionExclusion()
	return b
}

func (b *Builder) checkBurnTransitionExclusion() error {
	for key := range b.state.Transitions.Outputs {
		if b.chainKeyBurned(key) {
			return &ErrBurnAndTransition{ChainId: key}
		}
	}
	for _, o := range b.state.ProvidedOutputs {
		if cid, ok := ChainId(o); ok && !cid.IsZero() && b.chainKeyBurned(cid.Key()) {
			return &ErrBurnAndTransition{ChainId: cid.Key()}
		}
	}
	return nil
}

func (b *Builder) chainKeyBurned(key string) bool {
	for id := range b.state.Burn.Accounts {
		if iotago.ChainIdFromAccount(id).Key() == key {
			return true
		}
	}
	for id := range b.state.Burn.Nfts {
		if iotago.ChainIdFromNft(id).Key() == key {
			return true
		}
	}
	for id := range b.state.Burn.Foundries {
		if iotago.ChainIdFromFoundry(id).Key() == key {
			return true
		}
	}
	return false
}

// WithRequiredInputs marks OutputIds that must appear in the final
// selection regardless of whether a requirement would otherwise pull them
// (§6.1 with_required_inputs).
func (b *Builder) WithRequiredInputs(ids []iotago.OutputId) *Builder {
	if b.err != nil {
		return b
	}
	for _, id := range ids {
		b.state.RequiredInputs[id] = struct{}{}
	}
	return b
}

// WithRemainderAddress overrides the default remainder destination (§6.1).
func (b *Builder) WithRemainderAddress(addr iotago.Address) *Builder {
	if b.err != nil {
		return b
	}
	if addr == nil {
		b.err = ErrInvalidRemainderAddress
		return b
	}
	b.state.RemainderAddress = addr
	return b
}

// WithMinManaAllotment enables automatic mana-allotment computation for
// accountId, funded against rmc (§6.1 with_min_mana_allotment).
func (b *Builder) WithMinManaAllotment(accountId iotago.AccountId, rmc ReferenceManaCost) *Builder {
	if b.err != nil {
		return b
	}
	id := accountId
	b.state.MinManaAllotmentAccount = &id
	b.rmc = rmc
	return b
}

// WithManaAllotments adds caller-specified allotments, additive with any
// value WithMinManaAllotment later computes (§6.1 with_mana_allotments).
func (b *Builder) WithManaAllotments(allotments map[iotago.AccountId]uint64) *Builder {
	if b.err != nil {
		return b
	}
	for id, mana := range allotments {
		b.state.Allotments[id] += mana
	}
	return b
}

// WithTransitions supplies explicit transition hints, including
// implicit-account promotions (§6.1 with_transitions, §4.6).
func (b *Builder) WithTransitions(t *Transitions) *Builder {
	if b.err != nil {
		return b
	}
	for id, hash := range t.ImplicitAccounts {
		if len(hash) != 32 {
			b.err = &ErrInvalidOutput{Reason: "implicit account public key hash must be 32 bytes"}
			return b
		}
		b.state.Transitions.ImplicitAccounts[id] = hash
	}
	for key, out := range t.Outputs {
		b.state.Transitions.Outputs[key] = out
	}
	if err := b.checkBurnTransitionExclusion(); err != nil {
		b.err = err
	}
	return b
}

// DisableAdditionalInputSelection forbids pulling inputs beyond those the
// caller explicitly required (§6.1).
func (b *Builder) DisableAdditionalInputSelection() *Builder {
	if b.err != nil {
		return b
	}
	b.state.DisableAdditionalInputSelection = true
	return b
}

// WithCommitmentSlot sets the slot at which mana decay and unlock-condition
// timing are evaluated (§3 `commitment_slot`).
func (b *Builder) WithCommitmentSlot(slot uint32) *Builder {
	if b.err != nil {
		return b
	}
	b.state.CommitmentSlot = slot
	return b
}

// Finish runs the resolver to completion (§6.1 finish()). A failing
// builder leaves the caller's input/output slices untouched, since New
// copies available into the candidate index and clones every provided
// output up front (§7).
func (b *Builder) Finish() (*PreparedTransaction, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.applyImplicitAccountTransitions(); err != nil {
		return nil, err
	}
	r := newResolver(b.state, b.rmc)
	return r.Run()
}

func (b *Builder) applyImplicitAccountTransitions() error {
	for outputId, hash := range b.state.Transitions.ImplicitAccounts {
		in, ok := b.state.Index.TakeRequired(outputId)
		if !ok {
			continue
		}
		b.state.commitInput(in)
		te := NewTransitionEngine(b.state)
		if _, err := te.ImplicitAccountTransition(in, hash); err != nil {
			return err
		}
	}
	return nil
}
