package txbuilder

import (
	"math/big"
	"sort"

	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/params"
)

// Remainder describes one leftover-value output the engine produced, kept
// alongside the PreparedTransaction result for caller inspection (§6.2).
type Remainder struct {
	Address      iotago.Address
	Amount       uint64
	NativeTokens []iotago.NativeToken
	Mana         uint64
}

// needMoreAmount is returned internally by the Remainder Engine when more
// input amount is needed: an amount shortfall that shrinking transitioned
// chain outputs can't cover, a residue too small to fund a standalone
// remainder that no existing chain output can absorb (§4.7 case 3), or
// leftover mana with no amount residue to carry it and no mana burn
// requested. The resolver's Amount dispatch
// unwraps it, pulls one more input via C4.TakeForAmount, and re-pushes the
// Amount requirement (§4.9).
type needMoreAmount struct {
	delta uint64
}

func (e *needMoreAmount) Error() string { return "remainder engine needs more input amount" }

// RemainderEngine implements C7: reconciles Σinputs against Σoutputs across
// amount, mana and every native token id, producing remainder outputs or
// signaling that more input is needed (§4.7).
type RemainderEngine struct {
	state *SelectionState
}

func NewRemainderEngine(s *SelectionState) *RemainderEngine {
	return &RemainderEngine{state: s}
}

// balanceAmount returns Σselected input amounts minus Σ(provided+added)
// output amounts, once reconcileSDR has already settled any storage
// deposit returns into their own dedicated outputs.
func (e *RemainderEngine) balanceAmount() int64 {
	in := int64(e.state.totalInputAmount())
	out := int64(e.state.totalOutputAmount())
	return in - out
}

// balanceNativeTokens returns, for every token id seen on either side, the
// signed residue (input side positive) after accounting for this state's
// burn plan.
func (e *RemainderEngine) balanceNativeTokens() map[iotago.TokenId]*big.Int {
	sums := make(map[iotago.TokenId]*big.Int)
	add := func(id iotago.TokenId, amt *big.Int, sign int) {
		cur, ok := sums[id]
		if !ok {
			cur = new(big.Int)
			sums[id] = cur
		}
		if sign > 0 {
			cur.Add(cur, amt)
		} else {
			cur.Sub(cur, amt)
		}
	}
	for _, in := range e.state.SelectedInputs {
		if nt, ok := NativeTokenOf(in.Output); ok {
			add(nt.Id, nt.Amount, 1)
		}
	}
	for _, o := range e.state.ProvidedOutputs {
		if nt, ok := NativeTokenOf(o); ok {
			add(nt.Id, nt.Amount, -1)
		}
	}
	for _, o := range e.state.AddedOutputs {
		if nt, ok := NativeTokenOf(o); ok {
			add(nt.Id, nt.Amount, -1)
		}
	}
	for id, amt := range e.state.Burn.NativeTokens {
		add(id, amt, -1)
	}
	return sums
}

// effectiveInputMana sums post-decay stored+potential mana across every
// selected input, evaluated at CommitmentSlot (§4.7).
func (e *RemainderEngine) effectiveInputMana() uint64 {
	var total uint64
	for _, in := range e.state.SelectedInputs {
		mv := params.DecayedMana(in.Output.StoredMana(), in.Output.BaseAmount(),
			in.OutputMetadata.IncludedSlot, e.state.CommitmentSlot, e.state.Params.ManaParameters)
		total += mv.EffectiveMana()
	}
	return total
}

func (e *RemainderEngine) outputManaSum() uint64 {
	var total uint64
	for _, o := range e.state.ProvidedOutputs {
		total += o.StoredMana()
	}
	for _, o := range e.state.AddedOutputs {
		total += o.StoredMana()
	}
	return total
}

func (e *RemainderEngine) allotmentSum() uint64 {
	var total uint64
	for _, v := range e.state.Allotments {
		total += v
	}
	return total
}

// Reconcile is the C7 entry point, invoked by the resolver once the
// requirement queue has otherwise drained. Returns needMoreAmount when the
// resolver should pull another input and retry (§4.7 case 3/4).
func (e *RemainderEngine) Reconcile() ([]Remainder, error) {
	sdrRemainders, err := e.reconcileSDR()
	if err != nil {
		return nil, err
	}

	excess := e.balanceAmount()
	if excess < 0 {
		if remaining := e.shrinkChainOutputs(uint64(-excess)); remaining > 0 {
			return nil, &needMoreAmount{delta: remaining}
		}
		excess = 0
	}

	tokenResidues := e.balanceNativeTokens()
	var positiveTokens []iotago.NativeToken
	for id, amt := range tokenResidues {
		if amt.Sign() > 0 {
			positiveTokens = append(positiveTokens, iotago.NativeToken{Id: id, Amount: amt})
		} else if amt.Sign() < 0 {
			return nil, &ErrInsufficientNativeTokenAmount{
				TokenId:  iotago.Hash256(id).String(),
				Found:    "0",
				Required: new(big.Int).Neg(amt).String(),
			}
		}
	}
	sortNativeTokens(positiveTokens)

	manaExcess := e.reconcileMana()

	if excess == 0 && len(positiveTokens) == 0 {
		if manaExcess > 0 {
			if !e.state.Burn.Mana && !e.state.Burn.GeneratedMana {
				return nil, &needMoreAmount{delta: 1}
			}
			e.state.Capabilities.Set(CapabilityBurnMana)
		}
		return sdrRemainders, nil
	}

	rs, err := e.emitRemainders(uint64(excess), positiveTokens, manaExcess)
	if err != nil {
		return nil, err
	}
	return append(sdrRemainders, rs...), nil
}

// reconcileSDR settles every Storage Deposit Return unlock condition on a
// selected input into its own dedicated output addressed to
// ReturnAddress, before the general amount residue is computed. An SDR
// amount already covered by an existing output to that address (provided
// or already added) needs no further output; an uncovered shortfall gets
// its own remainder. This keeps the returned amount out of the general
// sender-remainder pool entirely rather than mixing it into
// RemainderAddress's own leftover (SUPPLEMENTED FEATURES).
func (e *RemainderEngine) reconcileSDR() ([]Remainder, error) {
	required := make(map[string]uint64)
	addrOf := make(map[string]iotago.Address)
	for _, in := range e.state.SelectedInputs {
		sdr := in.Output.Conditions().StorageDepositReturn()
		if sdr == nil {
			continue
		}
		key := sdr.ReturnAddress.Key()
		required[key] += sdr.Amount
		addrOf[key] = sdr.ReturnAddress
	}
	if len(required) == 0 {
		return nil, nil
	}

	covered := make(map[string]uint64)
	cover := func(o iotago.Output) {
		ac := o.Conditions().Address()
		if ac == nil {
			return
		}
		key := ac.Address.Key()
		if _, ok := required[key]; ok {
			covered[key] += o.BaseAmount()
		}
	}
	for _, o := range e.state.ProvidedOutputs {
		cover(o)
	}
	for _, o := range e.state.AddedOutputs {
		cover(o)
	}

	keys := make([]string, 0, len(required))
	for k := range required {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Remainder
	for _, key := range keys {
		need := required[key]
		if covered[key] >= need {
			continue
		}
		rs, err := e.emitOneRemainder(addrOf[key], need-covered[key], nil, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	return out, nil
}

// reconcileMana returns the residual mana (input side minus output side
// minus allotments) that a remainder must still carry, or zero when the
// outputs and allotments already use up all input mana.
func (e *RemainderEngine) reconcileMana() uint64 {
	in := e.effectiveInputMana()
	out := e.outputManaSum() + e.allotmentSum()
	if out >= in {
		return 0
	}
	return in - out
}

// emitRemainders builds one or more Basic remainder outputs. A single
// remainder can carry at most one native token (protocol constraint,
// §4.2), so additional tokens spill into additional remainder outputs
// (§4.7 "emit multiple remainders").
func (e *RemainderEngine) emitRemainders(amount uint64, tokens []iotago.NativeToken, mana uint64) ([]Remainder, error) {
	if amount == 0 && len(tokens) == 0 {
		return nil, nil
	}

	addr := e.state.RemainderAddress
	if addr == nil {
		return nil, ErrInvalidRemainderAddress
	}

	if len(tokens) == 0 {
		return e.emitOneRemainder(addr, amount, nil, mana)
	}

	var out []Remainder
	perOutputAmount := amount / uint64(len(tokens))
	leftover := amount % uint64(len(tokens))
	for i, t := range tokens {
		amt := perOutputAmount
		if i == 0 {
			amt += leftover
		}
		m := uint64(0)
		if i == 0 {
			m = mana
		}
		rs, err := e.emitOneRemainder(addr, amt, []iotago.NativeToken{t}, m)
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	return out, nil
}

func (e *RemainderEngine) emitOneRemainder(addr iotago.Address, amount uint64, tokens []iotago.NativeToken, mana uint64) ([]Remainder, error) {
	var nt *iotago.NativeToken
	if len(tokens) == 1 {
		nt = &tokens[0]
	}

	out := &iotago.BasicOutput{
		Amount: amount,
		Mana:   mana,
		UnlockConds: iotago.UnlockConditionSet{
			iotago.AddressUnlockCondition{Address: addr},
		},
		NativeTok: nt,
	}

	min := params.MinimumAmount(out, e.state.Params)
	if amount < min {
		if e.tryAbsorbIntoChainOutput(amount) {
			return nil, nil
		}
		return nil, &needMoreAmount{delta: min - amount}
	}

	total := len(e.state.ProvidedOutputs) + len(e.state.AddedOutputs) + 1
	if total > int(e.state.Params.MaxOutputs) {
		return nil, &ErrInvalidOutputCount{N: total}
	}

	e.state.AddedOutputs = append(e.state.AddedOutputs, out)
	e.state.addedOutputSource = append(e.state.addedOutputSource, iotago.OutputId{})
	e.state.addedIsRemainder = append(e.state.addedIsRemainder, true)
	return []Remainder{{Address: addr, Amount: amount, NativeTokens: tokens, Mana: mana}}, nil
}

// shrinkChainOutputs lowers transitioned chain outputs' amounts, down to
// their storage-score minimum, to help cover an amount shortfall before
// the resolver is asked to pull another input (§4.5: a transitioned chain
// output's amount "may be adjusted downward... down to minimum_amount").
// Only outputs the transition engine produced (addedIsRemainder false) are
// eligible; a caller-adopted transition living in ProvidedOutputs is left
// untouched. Returns the portion of need that couldn't be found this way.
func (e *RemainderEngine) shrinkChainOutputs(need uint64) uint64 {
	reduce := func(amount uint64, min uint64) (newAmount, taken uint64) {
		if need == 0 || amount <= min {
			return amount, 0
		}
		taken = need
		if avail := amount - min; taken > avail {
			taken = avail
		}
		return amount - taken, taken
	}

	for i, o := range e.state.AddedOutputs {
		if e.state.addedIsRemainder[i] {
			continue
		}
		if ao, ok := o.(*iotago.AccountOutput); ok {
			newAmt, taken := reduce(ao.Amount, params.MinimumAmount(ao, e.state.Params))
			ao.Amount = newAmt
			need -= taken
		}
	}
	for i, o := range e.state.AddedOutputs {
		if e.state.addedIsRemainder[i] {
			continue
		}
		switch v := o.(type) {
		case *iotago.NftOutput:
			newAmt, taken := reduce(v.Amount, params.MinimumAmount(v, e.state.Params))
			v.Amount = newAmt
			need -= taken
		case *iotago.FoundryOutput:
			newAmt, taken := reduce(v.Amount, params.MinimumAmount(v, e.state.Params))
			v.Amount = newAmt
			need -= taken
		case *iotago.AnchorOutput:
			newAmt, taken := reduce(v.Amount, params.MinimumAmount(v, e.state.Params))
			v.Amount = newAmt
			need -= taken
		}
	}
	return need
}

// tryAbsorbIntoChainOutput attempts to raise an existing chain output's
// amount by need, preferring the account output (§4.7 case 3). Reports
// whether an absorber was found.
func (e *RemainderEngine) tryAbsorbIntoChainOutput(need uint64) bool {
	for i, o := range e.state.AddedOutputs {
		if ao, ok := o.(*iotago.AccountOutput); ok {
			ao.Amount += need
			e.state.AddedOutputs[i] = ao
			return true
		}
	}
	for i, o := range e.state.AddedOutputs {
		switch v := o.(type) {
		case *iotago.NftOutput:
			v.Amount += need
			e.state.AddedOutputs[i] = v
			return true
		case *iotago.FoundryOutput:
			v.Amount += need
			e.state.AddedOutputs[i] = v
			return true
		case *iotago.AnchorOutput:
			v.Amount += need
			e.state.AddedOutputs[i] = v
			return true
		}
	}
	return false
}

func sortNativeTokens(tokens []iotago.NativeToken) {
	for i := 1; i < len(tokens); i++ {
		for j := i; j > 0 && lessTokenId(tokens[j].Id, tokens[j-1].Id); j-- {
			tokens[j], tokens[j-1] = tokens[j-1], tokens[j]
		}
	}
}

func lessTokenId(a, b iotago.TokenId) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
