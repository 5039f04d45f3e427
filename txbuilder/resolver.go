package txbuilder

import (
	"math/big"

	"github.com/iotaledger/iota-sdk-go/iotago"
)

// MaxSelectionRounds bounds the resolver loop (§4.9 step 4); exceeding it
// signals a bug in the resolver itself, never a caller mistake.
const MaxSelectionRounds = 128

// Resolver implements C9, the core loop: it seeds a requirement set from
// the builder's configuration, drains it, and hands the drained state to
// the Semantic Validator (C10).
type Resolver struct {
	state       *SelectionState
	transition  *TransitionEngine
	remainder   *RemainderEngine
	rmc         ReferenceManaCost
	remainders  []Remainder
	pendingMint []int // indices into state.ProvidedOutputs awaiting a fresh chain id
	claimedMintSources []iotago.OutputId
}

func newResolver(s *SelectionState, rmc ReferenceManaCost) *Resolver {
	return &Resolver{
		state:      s,
		transition: NewTransitionEngine(s),
		remainder:  NewRemainderEngine(s),
		rmc:        rmc,
	}
}

// Run seeds requirements, drains the loop, runs C10, and returns the
// assembled PreparedTransaction.
func (r *Resolver) Run() (*PreparedTransaction, error) {
	if err := r.seed(); err != nil {
		return nil, err
	}

	rounds := 0
	for r.state.Requirements.Len() > 0 {
		rounds++
		if rounds > MaxSelectionRounds {
			log.Errorf("resolver exceeded %d rounds with %d requirements still pending",
				MaxSelectionRounds, r.state.Requirements.Len())
			return nil, ErrResolverDidNotConverge
		}

		req, _ := r.state.Requirements.Pop()
		log.Tracef("round %d: dispatching %s", rounds, req)
		if err := r.dispatch(req); err != nil {
			return nil, err
		}
		r.reconcileFreshMints()
	}

	validator := NewValidator(r.state)
	if err := validator.Validate(); err != nil {
		return nil, err
	}

	log.Debugf("resolved transaction with %d inputs, %d outputs in %d rounds",
		len(r.state.SelectedInputs), len(r.state.ProvidedOutputs)+len(r.state.AddedOutputs), rounds)

	return assemble(r.state, r.remainders), nil
}

// seed implements §4.9 initialization.
func (r *Resolver) seed() error {
	s := r.state

	for i, o := range s.ProvidedOutputs {
		if sf := o.Features().Sender(); sf != nil {
			s.Requirements.Push(Requirement{Kind: RequirementSender, Address: sf.Address})
		}
		if isf := o.Features().Issuer(); isf != nil {
			s.Requirements.Push(Requirement{Kind: RequirementIssuer, Address: isf.Address})
		}
		if cid, ok := ChainId(o); ok {
			switch {
			case cid.IsZero():
				r.pendingMint = append(r.pendingMint, i)
			case cid.Kind == iotago.ChainIdFoundry && !s.Index.HasChain(cid) && !s.Burn.ChainBurned(cid):
				// A FoundryId is never literally zero, so a fresh mint can't use
				// the zero-id convention Account/Nft use. Pull in the owning
				// account instead of demanding an unfulfillable Foundry input:
				// it's the account whose foundry_counter must advance.
				fo := o.(*iotago.FoundryOutput)
				owner := iotago.AccountId(fo.AccountAddr)
				s.PendingFoundryMints[owner]++
				s.Requirements.Push(chainRequirement(iotago.ChainIdFromAccount(owner)))
				if scheme, ok := fo.Scheme.(iotago.SimpleTokenScheme); ok && scheme.CirculatingSupply().Sign() > 0 {
					s.Requirements.Push(Requirement{
						Kind:      RequirementNativeToken,
						TokenId:   iotago.TokenId(fo.Id()),
						MinAmount: scheme.CirculatingSupply(),
					})
				}
			case !s.Burn.ChainBurned(cid):
				s.Requirements.Push(chainRequirement(cid))
			}
		}
		if nt, ok := NativeTokenOf(o); ok {
			s.Requirements.Push(Requirement{Kind: RequirementNativeToken, TokenId: nt.Id, MinAmount: nt.Amount})
		}
	}

	for id := range s.Burn.Accounts {
		s.Requirements.Push(chainRequirement(iotago.ChainIdFromAccount(id)))
	}
	for id := range s.Burn.Nfts {
		s.Requirements.Push(chainRequirement(iotago.ChainIdFromNft(id)))
	}
	for id := range s.Burn.Foundries {
		s.Requirements.Push(chainRequirement(iotago.ChainIdFromFoundry(id)))
	}

	for id := range s.RequiredInputs {
		in, ok := s.Index.TakeRequired(id)
		if !ok {
			continue // already selected via another path, or caller error surfaces at validation
		}
		s.commitInput(in)
		if cid, ok := ChainId(in.Output); ok && !s.Burn.ChainBurned(cid) {
			if err := r.transition.Transition(in, cid); err != nil {
				return err
			}
		}
	}

	s.Requirements.Push(Requirement{Kind: RequirementAmount})
	if s.MinManaAllotmentAccount != nil {
		s.Requirements.Push(Requirement{Kind: RequirementMana, ChainId: iotago.ChainIdFromAccount(*s.MinManaAllotmentAccount)})
	}

	return nil
}

func chainRequirement(cid iotago.ChainId) Requirement {
	switch cid.Kind {
	case iotago.ChainIdAccount:
		return Requirement{Kind: RequirementAccount, ChainId: cid}
	case iotago.ChainIdNft:
		return Requirement{Kind: RequirementNft, ChainId: cid}
	default:
		return Requirement{Kind: RequirementFoundry, ChainId: cid}
	}
}

func (r *Resolver) dispatch(req Requirement) error {
	switch req.Kind {
	case RequirementAccount, RequirementNft, RequirementFoundry:
		return r.dispatchChain(req)
	case RequirementSender, RequirementIssuer:
		return r.dispatchOwnership(req)
	case RequirementNativeToken:
		return r.dispatchNativeToken(req)
	case RequirementAmount:
		return r.dispatchAmount(req)
	case RequirementMana:
		return r.dispatchMana(req)
	case RequirementEd25519, RequirementMulti:
		return r.dispatchSigning(req)
	case RequirementContextInputs:
		s := r.state
		_ = s // context-input attachment is out of scope (§1 Non-goals: block-layer codec); the
		// requirement only exists so the resolver records that one was needed.
		return nil
	default:
		return nil
	}
}

func (r *Resolver) dispatchChain(req Requirement) error {
	s := r.state
	if s.Burn.ChainBurned(req.ChainId) {
		if _, ok := s.chainInputs[req.ChainId.Key()]; !ok {
			in, ok := s.Index.TakeChain(req.ChainId)
			if !ok {
				return &ErrUnfulfillableRequirement{Requirement: req}
			}
			s.commitInput(in)
		}
		r.transition.setDestroyCapability(req.ChainId)
		return nil
	}
	if _, ok := s.chainInputs[req.ChainId.Key()]; ok {
		return nil // already committed by a previous requirement
	}
	in, ok := s.Index.TakeChain(req.ChainId)
	if !ok {
		return &ErrUnfulfillableRequirement{Requirement: req}
	}
	s.commitInput(in)
	return r.transition.Transition(in, req.ChainId)
}

func (r *Resolver) dispatchOwnership(req Requirement) error {
	s := r.state
	if r.alreadyUnlockableBySelected(req.Address) {
		return r.pushSigningRequirement(req.Address)
	}
	in, ok := s.Index.TakeUnlockableBy(req.Address, s.CommitmentSlot)
	if !ok {
		return &ErrUnfulfillableRequirement{Requirement: req}
	}
	s.commitInput(in)
	if cid, ok := ChainId(in.Output); ok && !s.Burn.ChainBurned(cid) {
		if err := r.transition.Transition(in, cid); err != nil {
			return err
		}
	}
	return r.pushSigningRequirement(req.Address)
}

func (r *Resolver) pushSigningRequirement(addr iotago.Address) error {
	if _, ok := addr.(*iotago.MultiAddress); ok {
		r.state.Requirements.Push(Requirement{Kind: RequirementMulti, Address: addr})
	} else {
		r.state.Requirements.Push(Requirement{Kind: RequirementEd25519, Address: addr})
	}
	return nil
}

func (r *Resolver) alreadyUnlockableBySelected(addr iotago.Address) bool {
	for _, in := range r.state.SelectedInputs {
		req, err := r.state.classifier.RequiredAddress(in.Output, r.state.CommitmentSlot)
		if err == nil && req != nil && iotago.AddressEqual(req, addr) {
			return true
		}
	}
	return false
}

func (r *Resolver) dispatchNativeToken(req Requirement) error {
	s := r.state
	residues := r.remainder.balanceNativeTokens()
	residue, ok := residues[req.TokenId]
	if !ok || residue.Sign() >= 0 {
		return nil
	}
	delta := new(big.Int).Neg(residue)
	in, ok := s.Index.TakeForNativeToken(req.TokenId, delta)
	if !ok {
		if amt, ok := s.Burn.NativeTokens[req.TokenId]; ok && amt.Cmp(delta) >= 0 {
			return nil
		}
		return &ErrInsufficientNativeTokenAmount{
			TokenId:  iotago.Hash256(req.TokenId).String(),
			Found:    "0",
			Required: delta.String(),
		}
	}
	s.commitInput(in)
	if cid, ok := ChainId(in.Output); ok && !s.Burn.ChainBurned(cid) {
		if err := r.transition.Transition(in, cid); err != nil {
			return err
		}
	}
	s.Requirements.Push(req)
	return nil
}

func (r *Resolver) dispatchAmount(req Requirement) error {
	s := r.state
	remainders, err := r.remainder.Reconcile()
	if err == nil {
		r.remainders = remainders
		return nil
	}
	nm, ok := err.(*needMoreAmount)
	if !ok {
		return err
	}
	in, ok := s.Index.TakeForAmount(nm.delta)
	if !ok {
		return &ErrInsufficientAmount{Found: s.totalInputAmount(), Required: s.totalInputAmount() + nm.delta}
	}
	s.commitInput(in)
	if cid, ok := ChainId(in.Output); ok && !s.Burn.ChainBurned(cid) {
		if err := r.transition.Transition(in, cid); err != nil {
			return err
		}
	}
	s.Requirements.Push(Requirement{Kind: RequirementAmount})
	return nil
}

func (r *Resolver) dispatchMana(req Requirement) error {
	if r.state.MinManaAllotmentAccount == nil {
		return nil
	}
	allotment := NewAllotmentEngine(r.state)
	_, err := allotment.Compute(*r.state.MinManaAllotmentAccount, r.rmc)
	return err
}

func (r *Resolver) dispatchSigning(req Requirement) error {
	if req.Kind == RequirementMulti {
		ma, ok := req.Address.(*iotago.MultiAddress)
		if !ok {
			return &ErrUnfulfillableRequirement{Requirement: req}
		}
		var reached uint16
		for _, w := range ma.Addresses {
			if r.alreadyUnlockableBySelected(w.Address) {
				reached += uint16(w.Weight)
			}
		}
		if reached < ma.Threshold {
			for _, w := range ma.Addresses {
				if !r.alreadyUnlockableBySelected(w.Address) {
					r.state.Requirements.Push(Requirement{Kind: RequirementEd25519, Address: w.Address})
				}
			}
		}
		return nil
	}
	if !r.alreadyUnlockableBySelected(req.Address) {
		return &ErrUnfulfillableRequirement{Requirement: req}
	}
	return nil
}

// reconcileFreshMints pairs any provided output still carrying a zero
// chain id with the first not-yet-claimed Basic input among
// SelectedInputs, deriving its id via AccountId::from(OutputId) /
// NftId::from(OutputId) (§3 invariant 3b, S3).
func (r *Resolver) reconcileFreshMints() {
	if len(r.pendingMint) == 0 {
		return
	}
	s := r.state
	for len(r.pendingMint) > 0 {
		idx := r.pendingMint[0]
		source, ok := r.firstUnclaimedBasicInput()
		if !ok {
			return
		}
		r.claimedMintSources = append(r.claimedMintSources, source.OutputId)
		s.ProvidedOutputs[idx] = withFreshChainId(s.ProvidedOutputs[idx], source.OutputId)
		r.pendingMint = r.pendingMint[1:]
	}
}

func (r *Resolver) firstUnclaimedBasicInput() (iotago.Input, bool) {
	for _, in := range r.state.SelectedInputs {
		if in.Output.Kind() != iotago.OutputBasic {
			continue
		}
		if r.isClaimedMintSource(in.OutputId) {
			continue
		}
		return in, true
	}
	return iotago.Input{}, false
}

func (r *Resolver) isClaimedMintSource(id iotago.OutputId) bool {
	for _, c := range r.claimedMintSources {
		if c == id {
			return true
		}
	}
	return false
}

func withFreshChainId(o iotago.Output, sourceId iotago.OutputId) iotago.Output {
	switch v := o.(type) {
	case *iotago.AccountOutput:
		c := *v
		c.AccountID = iotago.AccountIdFromOutputId(sourceId)
		return &c
	case *iotago.NftOutput:
		c := *v
		c.NftID = iotago.NftIdFromOutputId(sourceId)
		return &c
	default:
		return o
	}
}
