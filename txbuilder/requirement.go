package txbuilder

import (
	"fmt"
	"math/big"

	"github.com/iotaledger/iota-sdk-go/iotago"
)

// RequirementKind discriminates the requirement variants of §3/§4.9. The
// numeric value does not set resolution order: RequirementSet orders
// requirements by requirementPriority, so Sender/Issuer/ownership demands
// are discharged before the amount/mana requirements that depend on their
// outcome.
type RequirementKind int

const (
	RequirementEd25519 RequirementKind = iota
	RequirementAccount
	RequirementNft
	RequirementFoundry
	RequirementSender
	RequirementIssuer
	RequirementContextInputs
	RequirementMulti
	RequirementNativeToken
	RequirementAmount
	RequirementMana
)

// Requirement is a tagged union over the demands the resolver loop (C9)
// discharges one at a time (§3, §4.9). Only one field group is meaningful
// per Kind; the type exists as a single value so RequirementSet can queue
// heterogeneous requirements together.
type Requirement struct {
	Kind RequirementKind

	// RequirementEd25519 / Account / Nft / Foundry / Multi: the address (or
	// chain id) that must be present among the inputs, able to provide an
	// unlock.
	Address iotago.Address
	ChainId iotago.ChainId

	// RequirementSender / Issuer: the address that must be represented by
	// some input able to unlock as that address (§4.9: consuming an input
	// whose owner equals the demanded address discharges it).
	// (Reuses Address above.)

	// RequirementNativeToken: the token id and minimum net amount that must
	// be covered by selected inputs.
	TokenId    iotago.TokenId
	MinAmount  *big.Int

	// RequirementAmount: no payload; amount is tracked in SelectionState
	// directly and this requirement only signals "still short".

	// RequirementMana: no payload beyond ChainId identifying which
	// account's allotment is underfunded; empty ChainId means the base
	// amount-weighted mana shortfall rather than a specific allotment.
}

func (r Requirement) String() string {
	switch r.Kind {
	case RequirementEd25519:
		return fmt.Sprintf("ed25519(%s)", r.Address.Key())
	case RequirementAccount, RequirementNft, RequirementFoundry:
		return fmt.Sprintf("chain(%s)", r.ChainId.Key())
	case RequirementSender:
		return fmt.Sprintf("sender(%s)", r.Address.Key())
	case RequirementIssuer:
		return fmt.Sprintf("issuer(%s)", r.Address.Key())
	case RequirementContextInputs:
		return "context-inputs"
	case RequirementMulti:
		return fmt.Sprintf("multi(%s)", r.Address.Key())
	case RequirementNativeToken:
		return fmt.Sprintf("native-token(%x, %s)", r.TokenId[:4], r.MinAmount)
	case RequirementAmount:
		return "amount"
	case RequirementMana:
		if r.ChainId.IsZero() {
			return "mana"
		}
		return fmt.Sprintf("mana(%s)", r.ChainId.Key())
	default:
		return "unknown-requirement"
	}
}

// requirementPriority orders requirements exactly as §4.3 lists its pop
// order: context inputs, then chain ownership (Account/Nft/Foundry), then
// Sender/Issuer, then native tokens, then mana, then amount, with
// Ed25519/Multi signing requirements checked last of all — they only
// confirm that the inputs already pulled in by every earlier step are
// jointly unlockable, so they must wait until nothing else can still add
// another input.
func requirementPriority(k RequirementKind) int {
	switch k {
	case RequirementContextInputs:
		return 0
	case RequirementAccount, RequirementNft, RequirementFoundry:
		return 1
	case RequirementSender, RequirementIssuer:
		return 2
	case RequirementNativeToken:
		return 3
	case RequirementMana:
		return 4
	case RequirementAmount:
		return 5
	case RequirementEd25519, RequirementMulti:
		return 6
	default:
		return 7
	}
}

// RequirementSet is the priority-ordered, deduplicated deque of §4.9's
// "requirement set": a FIFO within a priority band, but a requirement
// already queued (by its dedup key) is never queued twice.
type RequirementSet struct {
	items []Requirement
	seen  map[string]bool
}

// NewRequirementSet returns an empty set.
func NewRequirementSet() *RequirementSet {
	return &RequirementSet{seen: make(map[string]bool)}
}

// Push enqueues r unless an equivalent requirement is already queued. A
// requirement that has been popped can be pushed again (see Pop).
func (s *RequirementSet) Push(r Requirement) {
	key := requirementDedupKey(r)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.insertSorted(r)
}

func (s *RequirementSet) insertSorted(r Requirement) {
	p := requirementPriority(r.Kind)
	idx := len(s.items)
	for i, it := range s.items {
		if requirementPriority(it.Kind) > p {
			idx = i
			break
		}
	}
	s.items = append(s.items, Requirement{})
	copy(s.items[idx+1:], s.items[idx:])
	s.items[idx] = r
}

// Pop removes and returns the highest-priority requirement, or false if the
// set is empty. The popped requirement's dedup key is cleared so a
// dispatcher that re-pushes the same requirement (e.g. Amount after pulling
// one more input via C4.TakeForAmount) queues it again rather than having
// the push silently dropped as an already-seen duplicate (§4.9).
func (s *RequirementSet) Pop() (Requirement, bool) {
	if len(s.items) == 0 {
		return Requirement{}, false
	}
	r := s.items[0]
	s.items = s.items[1:]
	delete(s.seen, requirementDedupKey(r))
	return r, true
}

// Len reports how many requirements remain queued.
func (s *RequirementSet) Len() int { return len(s.items) }

func requirementDedupKey(r Requirement) string {
	switch r.Kind {
	case RequirementEd25519, RequirementMulti:
		return fmt.Sprintf("%d:%s", r.Kind, r.Address.Key())
	case RequirementAccount, RequirementNft, RequirementFoundry:
		return fmt.Sprintf("%d:%s", r.Kind, r.ChainId.Key())
	case RequirementSender, RequirementIssuer:
		return fmt.Sprintf("%d:%s", r.Kind, r.Address.Key())
	case RequirementNativeToken:
		return fmt.Sprintf("%d:%x", r.Kind, r.TokenId[:])
	case RequirementMana:
		return fmt.Sprintf("%d:%s", r.Kind, r.ChainId.Key())
	default:
		return fmt.Sprintf("%d", r.Kind)
	}
}
