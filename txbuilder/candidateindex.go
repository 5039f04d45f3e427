package txbuilder

import (
	"bytes"
	"math/big"
	"sort"

	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/params"
)

// CandidateIndex is the Candidate Index (C4): the pool of not-yet-selected
// inputs, indexed for the lookups the resolver loop needs. It never hands
// back an input twice — every take_* method removes its result from the
// pool (§4.4).
type CandidateIndex struct {
	classifier *Classifier
	params     params.ProtocolParameters
	inputs     []iotago.Input
}

// NewCandidateIndex builds an index over available (a copy of the slice is
// kept so mutating the caller's slice afterward has no effect, matching the
// Input Set's "caller's input list is not consumed" guarantee on failure,
// §7).
func NewCandidateIndex(available []iotago.Input, c *Classifier) *CandidateIndex {
	cp := make([]iotago.Input, len(available))
	copy(cp, available)
	return &CandidateIndex{classifier: c, params: c.Params, inputs: cp}
}

// Remaining returns the inputs still available, for diagnostics/minimality
// checks.
func (idx *CandidateIndex) Remaining() []iotago.Input {
	return idx.inputs
}

func (idx *CandidateIndex) removeAt(i int) iotago.Input {
	in := idx.inputs[i]
	idx.inputs = append(idx.inputs[:i], idx.inputs[i+1:]...)
	return in
}

// TakeChain removes and returns the input whose chain id matches id.
func (idx *CandidateIndex) TakeChain(id iotago.ChainId) (iotago.Input, bool) {
	for i, in := range idx.inputs {
		cid, ok := ChainId(in.Output)
		if !ok {
			continue
		}
		if cid.Key() == id.Key() {
			return idx.removeAt(i), true
		}
	}
	return iotago.Input{}, false
}

// HasChain reports whether an input with the given chain id is still in the
// pool, without removing it. Used to distinguish a fresh mint (no matching
// predecessor exists at all) from a genuine chain transition (§4.2, §4.5).
func (idx *CandidateIndex) HasChain(id iotago.ChainId) bool {
	for _, in := range idx.inputs {
		if cid, ok := ChainId(in.Output); ok && cid.Key() == id.Key() {
			return true
		}
	}
	return false
}

// TakeRequired removes and returns the input with the given OutputId,
// regardless of what it's unlockable by — used for with_required_inputs.
func (idx *CandidateIndex) TakeRequired(id iotago.OutputId) (iotago.Input, bool) {
	for i, in := range idx.inputs {
		if in.OutputId == id {
			return idx.removeAt(i), true
		}
	}
	return iotago.Input{}, false
}

// outputKindRank orders Basic before Nft before Account before Foundry,
// the tie-break order §4.4 specifies for take_unlockable_by and
// take_for_amount.
func outputKindRank(o iotago.Output) int {
	switch o.Kind() {
	case iotago.OutputBasic:
		return 0
	case iotago.OutputNft:
		return 1
	case iotago.OutputAccount:
		return 2
	case iotago.OutputFoundry:
		return 3
	default:
		return 4
	}
}

func nativeTokenCount(o iotago.Output) int {
	if _, ok := NativeTokenOf(o); ok {
		return 1
	}
	return 0
}

// TakeUnlockableBy returns the smallest-amount input unlockable by address
// at atSlot. Ties break: Basic over stateful, fewer native tokens, then
// smaller OutputId lexicographically (§4.4).
func (idx *CandidateIndex) TakeUnlockableBy(address iotago.Address, atSlot uint32) (iotago.Input, bool) {
	best := -1
	for i, in := range idx.inputs {
		req, err := idx.classifier.RequiredAddress(in.Output, atSlot)
		if err != nil || req == nil {
			continue
		}
		if !iotago.AddressEqual(req, address) {
			continue
		}
		if best == -1 || candidateLess(in, idx.inputs[best]) {
			best = i
		}
	}
	if best == -1 {
		return iotago.Input{}, false
	}
	return idx.removeAt(best), true
}

// candidateLess reports whether a ranks before b under the §4.4
// amount/kind/native-token-count/output-id tie-break chain.
func candidateLess(a, b iotago.Input) bool {
	if a.Output.BaseAmount() != b.Output.BaseAmount() {
		return a.Output.BaseAmount() < b.Output.BaseAmount()
	}
	if ra, rb := outputKindRank(a.Output), outputKindRank(b.Output); ra != rb {
		return ra < rb
	}
	if na, nb := nativeTokenCount(a.Output), nativeTokenCount(b.Output); na != nb {
		return na < nb
	}
	ab, bb := a.OutputId.Bytes(), b.OutputId.Bytes()
	return bytes.Compare(ab[:], bb[:]) < 0
}

// TakeForAmount greedily picks the input whose amount most closely matches
// delta without requiring more than one input; prefers Basic, then Nft,
// Account, Foundry (§4.4). Candidates at or above delta are preferred (to
// minimize remainder work) over the closest candidate below delta.
func (idx *CandidateIndex) TakeForAmount(delta uint64) (iotago.Input, bool) {
	best := -1
	for i, in := range idx.inputs {
		if best == -1 || amountCandidateLess(in, idx.inputs[best], delta) {
			best = i
		}
	}
	if best == -1 {
		return iotago.Input{}, false
	}
	return idx.removeAt(best), true
}

func amountCandidateLess(a, b iotago.Input, delta uint64) bool {
	aAmt, bAmt := a.Output.BaseAmount(), b.Output.BaseAmount()
	aOk, bOk := aAmt >= delta, bAmt >= delta
	if aOk != bOk {
		return aOk
	}
	if aOk {
		// Both cover delta: smaller is closer (less waste).
		if aAmt != bAmt {
			return aAmt < bAmt
		}
	} else {
		// Neither covers delta: larger is closer.
		if aAmt != bAmt {
			return aAmt > bAmt
		}
	}
	if ra, rb := outputKindRank(a.Output), outputKindRank(b.Output); ra != rb {
		return ra < rb
	}
	ab, bb := a.OutputId.Bytes(), b.OutputId.Bytes()
	return bytes.Compare(ab[:], bb[:]) < 0
}

// TakeForNativeToken picks the candidate whose token_id quantity most
// closely covers delta, same closest-match discipline as TakeForAmount but
// keyed on the token quantity (§4.4).
func (idx *CandidateIndex) TakeForNativeToken(tokenId iotago.TokenId, delta *big.Int) (iotago.Input, bool) {
	best := -1
	for i, in := range idx.inputs {
		nt, ok := NativeTokenOf(in.Output)
		if !ok || nt.Id != tokenId {
			continue
		}
		if best == -1 || nativeTokenCandidateLess(in, idx.inputs[best], delta) {
			best = i
		}
	}
	if best == -1 {
		return iotago.Input{}, false
	}
	return idx.removeAt(best), true
}

func nativeTokenCandidateLess(a, b iotago.Input, delta *big.Int) bool {
	aNt, _ := NativeTokenOf(a.Output)
	bNt, _ := NativeTokenOf(b.Output)
	aOk := aNt.Amount.Cmp(delta) >= 0
	bOk := bNt.Amount.Cmp(delta) >= 0
	if aOk != bOk {
		return aOk
	}
	cmp := aNt.Amount.Cmp(bNt.Amount)
	if aOk {
		if cmp != 0 {
			return cmp < 0
		}
	} else {
		if cmp != 0 {
			return cmp > 0
		}
	}
	ab, bb := a.OutputId.Bytes(), b.OutputId.Bytes()
	return bytes.Compare(ab[:], bb[:]) < 0
}

// TakeForMana picks the candidate whose post-decay effective mana at
// commitmentSlot most closely covers delta (§4.4).
func (idx *CandidateIndex) TakeForMana(delta uint64, commitmentSlot uint32) (iotago.Input, bool) {
	best := -1
	var bestMana uint64
	for i, in := range idx.inputs {
		mv := params.DecayedMana(in.Output.StoredMana(), in.Output.BaseAmount(),
			in.OutputMetadata.IncludedSlot, commitmentSlot, idx.params.ManaParameters)
		mana := mv.EffectiveMana()
		if best == -1 || manaCandidateLess(mana, bestMana, delta) {
			best = i
			bestMana = mana
		}
	}
	if best == -1 {
		return iotago.Input{}, false
	}
	return idx.removeAt(best), true
}

func manaCandidateLess(a, b, delta uint64) bool {
	aOk, bOk := a >= delta, b >= delta
	if aOk != bOk {
		return aOk
	}
	if aOk {
		return a < b
	}
	return a > b
}

// sortByOutputId is used by components that must present results in a
// deterministic order regardless of map/slice iteration order (§5).
func sortByOutputId(inputs []iotago.Input) {
	sort.Slice(inputs, func(i, j int) bool {
		ai, bi := inputs[i].OutputId.Bytes(), inputs[j].OutputId.Bytes()
		return bytes.Compare(ai[:], bi[:]) < 0
	})
}
