package txbuilder

import "fmt"

// ErrNoOutputs mirrors lnwallet.ErrNoOutputs: New returns it when the
// available input list is empty, since there is nothing to select from.
var ErrNoOutputs = &simpleError{"no available inputs specified"}

// ErrResolverDidNotConverge is returned when the requirement loop exceeds
// MaxSelectionRounds (§4.9 step 4) — a bug, never a caller mistake.
var ErrResolverDidNotConverge = &simpleError{"resolver did not converge within MaxSelectionRounds"}

// ErrInvalidRemainderAddress is returned when with_remainder_address is
// called with a nil address, or when a remainder output is needed and no
// remainder address was set (§7 Configuration errors).
var ErrInvalidRemainderAddress = &simpleError{"invalid remainder address"}

// ErrInvalidProtocolParameters is returned when required protocol
// parameter fields are zero/missing (§7 Configuration errors).
var ErrInvalidProtocolParameters = &simpleError{"invalid protocol parameters"}

// ErrAdditionalInputsRequired is returned when disable_additional_input_
// selection forbids pulling an input the resolver needs (§4.8 step 3, §7).
type ErrAdditionalInputsRequired struct {
	Requirement Requirement
}

func (e *ErrAdditionalInputsRequired) Error() string {
	return fmt.Sprintf("additional inputs required to satisfy %s but additional "+
		"input selection is disabled", e.Requirement)
}

// ErrUnfulfillableRequirement is returned when no candidate input exists to
// satisfy a chain/sender/issuer/ownership demand (§7).
type ErrUnfulfillableRequirement struct {
	Requirement Requirement
}

func (e *ErrUnfulfillableRequirement) Error() string {
	return fmt.Sprintf("unfulfillable requirement: %s", e.Requirement)
}

// ErrInsufficientAmount signals the selected inputs can't cover the
// outputs plus fundable remainder (§4.7 case 5, §7).
type ErrInsufficientAmount struct {
	Found    uint64
	Required uint64
}

func (e *ErrInsufficientAmount) Error() string {
	return fmt.Sprintf("insufficient amount: found %d, required %d", e.Found, e.Required)
}

// ErrInsufficientNativeTokenAmount signals a token id's conservation
// equation can't be balanced by the available inputs (§4.9 NativeToken
// dispatch, §7).
type ErrInsufficientNativeTokenAmount struct {
	TokenId  string
	Found    string
	Required string
}

func (e *ErrInsufficientNativeTokenAmount) Error() string {
	return fmt.Sprintf("insufficient native token %s amount: found %s, required %s",
		e.TokenId, e.Found, e.Required)
}

// ErrInsufficientMana signals the account's mana plus any additionally
// pulled input mana still can't fund the required allotment (§4.8 step 3).
type ErrInsufficientMana struct {
	Found    uint64
	Required uint64
}

func (e *ErrInsufficientMana) Error() string {
	return fmt.Sprintf("insufficient mana: found %d, required %d", e.Found, e.Required)
}

// ErrInvalidInputCount and ErrInvalidOutputCount enforce the §3 invariant 5
// bounds.
type ErrInvalidInputCount struct{ N int }

func (e *ErrInvalidInputCount) Error() string {
	return fmt.Sprintf("invalid input count: %d", e.N)
}

type ErrInvalidOutputCount struct{ N int }

func (e *ErrInvalidOutputCount) Error() string {
	return fmt.Sprintf("invalid output count: %d", e.N)
}

// ErrInvalidUnlockConditionCount enforces the §6.3 wire-level cap of 7
// conditions per output.
type ErrInvalidUnlockConditionCount struct{ N int }

func (e *ErrInvalidUnlockConditionCount) Error() string {
	return fmt.Sprintf("invalid unlock condition count: %d", e.N)
}

// ErrBurnAndTransition signals a caller listed the same chain id in both
// the burn plan and a provided transition output (§7, SUPPLEMENTED
// FEATURES "burn-and-transition mutual exclusion").
type ErrBurnAndTransition struct {
	ChainId string
}

func (e *ErrBurnAndTransition) Error() string {
	return fmt.Sprintf("chain %s is both burned and given a transition output", e.ChainId)
}

// ErrChainOutputImmutableFeaturesChanged signals a caller-provided
// transition output's immutable features don't byte-match its input's
// (§4.5, §3 invariant 6).
type ErrChainOutputImmutableFeaturesChanged struct {
	ChainId string
}

func (e *ErrChainOutputImmutableFeaturesChanged) Error() string {
	return fmt.Sprintf("chain %s: immutable features changed across transition", e.ChainId)
}

// ErrFoundryCounterMismatch signals a caller-provided account transition
// didn't advance foundry_counter by exactly the number of fresh foundry
// mints this transaction introduces under that account.
type ErrFoundryCounterMismatch struct {
	AccountId string
	Got, Want uint32
}

func (e *ErrFoundryCounterMismatch) Error() string {
	return fmt.Sprintf("account %s: foundry_counter is %d, want %d", e.AccountId, e.Got, e.Want)
}

// ErrNativeTokenSumUnbalanced signals C10's final native-token conservation
// check failed for some token id (§4.10).
type ErrNativeTokenSumUnbalanced struct {
	TokenId string
}

func (e *ErrNativeTokenSumUnbalanced) Error() string {
	return fmt.Sprintf("native token %s sum unbalanced", e.TokenId)
}

// ErrInvalidOutput is surfaced on malformed outputs, e.g. an output missing
// the unlock condition its kind is owned through, or one in the ambiguous
// expiration window (§4.2).
type ErrInvalidOutput struct {
	Reason string
}

func (e *ErrInvalidOutput) Error() string {
	return fmt.Sprintf("invalid output: %s", e.Reason)
}

// simpleError is a sentinel-style error, matching lnwallet's pattern of
// plain errors.New values for conditions that carry no parameters.
type simpleError struct{ msg string }

func (e *simpleError) Error() string { return e.msg }
