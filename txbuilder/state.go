package txbuilder

import (
	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/params"
)

// CapabilityFlag is a per-transaction bit declaring the right to perform a
// destructive action (§3, GLOSSARY "Capability flag").
type CapabilityFlag uint32

const (
	CapabilityDestroyAccountOutputs CapabilityFlag = 1 << iota
	CapabilityDestroyNftOutputs
	CapabilityDestroyFoundryOutputs
	CapabilityBurnMana
	CapabilityBurnNativeTokens
)

// CapabilitySet is the bitset of CapabilityFlag values active on a
// selection.
type CapabilitySet uint32

func (s *CapabilitySet) Set(f CapabilityFlag)     { *s |= CapabilitySet(f) }
func (s CapabilitySet) Has(f CapabilityFlag) bool { return s&CapabilitySet(f) != 0 }

// Transitions carries caller-supplied transition hints for with_transitions
// (§6.1): explicit replacement outputs for chain ids, plus implicit-account
// promotions.
type Transitions struct {
	// Outputs maps a chain id to the caller-provided transitioned output
	// for it, overriding the engine's default transition (§4.5).
	Outputs map[string]iotago.Output
	// ImplicitAccounts maps the OutputId of an implicit-account Basic
	// input to the public-key hash to seed its BlockIssuer feature with
	// (§4.6).
	ImplicitAccounts map[iotago.OutputId][32]byte
}

// NewTransitions returns an empty Transitions value.
func NewTransitions() *Transitions {
	return &Transitions{
		Outputs:          make(map[string]iotago.Output),
		ImplicitAccounts: make(map[iotago.OutputId][32]byte),
	}
}

// WithOutput registers an explicit transition output for id.
func (t *Transitions) WithOutput(id iotago.ChainId, o iotago.Output) *Transitions {
	t.Outputs[id.Key()] = o
	return t
}

// WithImplicitAccount registers outputId as a Basic-to-Account promotion
// seeded with pubKeyHash.
func (t *Transitions) WithImplicitAccount(outputId iotago.OutputId, pubKeyHash [32]byte) *Transitions {
	t.ImplicitAccounts[outputId] = pubKeyHash
	return t
}

// SelectionState is the sole mutable structure the resolver operates on
// (§3). It is owned exclusively by one Builder.Finish call and never
// outlives it.
type SelectionState struct {
	Index *CandidateIndex

	SelectedInputs  []iotago.Input
	ProvidedOutputs []iotago.Output
	AddedOutputs    []iotago.Output
	// addedOutputSource and addedIsRemainder run parallel to AddedOutputs:
	// for a transitioned/fresh chain output they record the consumed
	// input's OutputId; for a remainder output addedIsRemainder is true
	// and the source id is unused. Assembly (§5 output ordering) uses
	// these to sort transitions by source id and place remainders last.
	addedOutputSource []iotago.OutputId
	addedIsRemainder  []bool

	Requirements *RequirementSet

	Burn *Burn

	Allotments map[iotago.AccountId]uint64

	CommitmentSlot uint32
	ReferenceSlot  uint32

	Params params.ProtocolParameters

	RemainderAddress iotago.Address

	Capabilities CapabilitySet

	Transitions *Transitions

	RequiredInputs map[iotago.OutputId]struct{}

	DisableAdditionalInputSelection bool

	MinManaAllotmentAccount *iotago.AccountId

	// PendingFoundryMints counts, per owning account, how many Foundry
	// outputs in ProvidedOutputs are fresh mints (no predecessor input
	// exists for their FoundryId). The transition engine adds this count
	// onto the account's FoundryCounter when it transitions that account
	// (§4.5 foundry serial-number continuity).
	PendingFoundryMints map[iotago.AccountId]uint32

	classifier *Classifier

	// chainInputs maps a chain id to the input that was committed for it,
	// so the transition engine and validator can find the pre-image
	// without re-scanning SelectedInputs.
	chainInputs map[string]iotago.Input
	// chainOutputIdx maps a chain id to its index in AddedOutputs once the
	// transition engine has emitted its output, or to -1-i for an adopted
	// output at index i of ProvidedOutputs.
	chainOutputIdx map[string]int
}

func newSelectionState(available []iotago.Input, provided []iotago.Output, p params.ProtocolParameters) *SelectionState {
	c := NewClassifier(p)
	outputs := make([]iotago.Output, len(provided))
	for i, o := range provided {
		outputs[i] = o.Clone()
	}
	return &SelectionState{
		Index:           NewCandidateIndex(available, c),
		ProvidedOutputs: outputs,
		Requirements:    NewRequirementSet(),
		Burn:            NewBurn(),
		Allotments:      make(map[iotago.AccountId]uint64),
		Params:          p,
		Transitions:     NewTransitions(),
		RequiredInputs:      make(map[iotago.OutputId]struct{}),
		PendingFoundryMints: make(map[iotago.AccountId]uint32),
		classifier:          c,
		chainInputs:     make(map[string]iotago.Input),
		chainOutputIdx:  make(map[string]int),
	}
}

// totalInputAmount sums the base-coin amount of every selected input.
func (s *SelectionState) totalInputAmount() uint64 {
	var total uint64
	for _, in := range s.SelectedInputs {
		total += in.Output.BaseAmount()
	}
	return total
}

// totalOutputAmount sums the base-coin amount of every output produced so
// far (provided + added).
func (s *SelectionState) totalOutputAmount() uint64 {
	var total uint64
	for _, o := range s.ProvidedOutputs {
		total += o.BaseAmount()
	}
	for _, o := range s.AddedOutputs {
		total += o.BaseAmount()
	}
	return total
}

// commitInput moves in from the candidate index's pool bookkeeping into
// SelectedInputs, recording its chain id if it has one.
func (s *SelectionState) commitInput(in iotago.Input) {
	s.SelectedInputs = append(s.SelectedInputs, in)
	if cid, ok := ChainId(in.Output); ok {
		s.chainInputs[cid.Key()] = in
	}
}

// isSelected reports whether outputId is already among SelectedInputs.
func (s *SelectionState) isSelected(id iotago.OutputId) bool {
	for _, in := range s.SelectedInputs {
		if in.OutputId == id {
			return true
		}
	}
	return false
}
