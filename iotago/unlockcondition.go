package iotago

// UnlockConditionKind discriminates the unlock-condition variants. Ordering
// here is also unlock-condition sort order on the wire (§6.3).
type UnlockConditionKind byte

const (
	UnlockAddress UnlockConditionKind = iota
	UnlockStorageDepositReturn
	UnlockTimelock
	UnlockExpiration
	UnlockStateControllerAddress
	UnlockGovernorAddress
	UnlockImmutableAccountAddress
)

// MaxUnlockConditionsCount is the wire-level cap on conditions per output
// (§6.3: count packed as a u8, protocol max 7).
const MaxUnlockConditionsCount = 7

// UnlockCondition is implemented by every condition variant.
type UnlockCondition interface {
	Kind() UnlockConditionKind
}

// AddressUnlockCondition is the primary unlock address of a Basic or NFT
// output. Account outputs are unlocked through StateControllerAddress and
// Foundry outputs through ImmutableAccountAddress instead.
type AddressUnlockCondition struct {
	Address Address
}

func (AddressUnlockCondition) Kind() UnlockConditionKind { return UnlockAddress }

// StorageDepositReturnUnlockCondition requires `Amount` atoms of the
// output's value to be returned to ReturnAddress whenever the output is
// consumed.
type StorageDepositReturnUnlockCondition struct {
	ReturnAddress Address
	Amount        uint64
}

func (StorageDepositReturnUnlockCondition) Kind() UnlockConditionKind {
	return UnlockStorageDepositReturn
}

// TimelockUnlockCondition makes an output unspendable before SlotIndex.
type TimelockUnlockCondition struct {
	SlotIndex uint32
}

func (TimelockUnlockCondition) Kind() UnlockConditionKind { return UnlockTimelock }

// ExpirationUnlockCondition reroutes the unlock address to ReturnAddress
// once SlotIndex has passed.
type ExpirationUnlockCondition struct {
	ReturnAddress Address
	SlotIndex     uint32
}

func (ExpirationUnlockCondition) Kind() UnlockConditionKind { return UnlockExpiration }

// StateControllerAddressUnlockCondition is the address allowed to perform
// state transitions on an Account output.
type StateControllerAddressUnlockCondition struct {
	Address Address
}

func (StateControllerAddressUnlockCondition) Kind() UnlockConditionKind {
	return UnlockStateControllerAddress
}

// GovernorAddressUnlockCondition is the address allowed to perform
// governance transitions on an Account output.
type GovernorAddressUnlockCondition struct {
	Address Address
}

func (GovernorAddressUnlockCondition) Kind() UnlockConditionKind {
	return UnlockGovernorAddress
}

// ImmutableAccountAddressUnlockCondition ties a Foundry output permanently
// to its controlling account.
type ImmutableAccountAddressUnlockCondition struct {
	Address AccountAddress
}

func (ImmutableAccountAddressUnlockCondition) Kind() UnlockConditionKind {
	return UnlockImmutableAccountAddress
}

// UnlockConditionSet is the ordered-unique-by-kind set an output carries.
type UnlockConditionSet []UnlockCondition

// Get returns the condition of the given kind, if present.
func (s UnlockConditionSet) Get(kind UnlockConditionKind) UnlockCondition {
	for _, c := range s {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

func (s UnlockConditionSet) Address() *AddressUnlockCondition {
	if c, ok := s.Get(UnlockAddress).(AddressUnlockCondition); ok {
		return &c
	}
	return nil
}

func (s UnlockConditionSet) StorageDepositReturn() *StorageDepositReturnUnlockCondition {
	if c, ok := s.Get(UnlockStorageDepositReturn).(StorageDepositReturnUnlockCondition); ok {
		return &c
	}
	return nil
}

func (s UnlockConditionSet) Timelock() *TimelockUnlockCondition {
	if c, ok := s.Get(UnlockTimelock).(TimelockUnlockCondition); ok {
		return &c
	}
	return nil
}

func (s UnlockConditionSet) Expiration() *ExpirationUnlockCondition {
	if c, ok := s.Get(UnlockExpiration).(ExpirationUnlockCondition); ok {
		return &c
	}
	return nil
}

func (s UnlockConditionSet) StateControllerAddress() *StateControllerAddressUnlockCondition {
	if c, ok := s.Get(UnlockStateControllerAddress).(StateControllerAddressUnlockCondition); ok {
		return &c
	}
	return nil
}

func (s UnlockConditionSet) GovernorAddress() *GovernorAddressUnlockCondition {
	if c, ok := s.Get(UnlockGovernorAddress).(GovernorAddressUnlockCondition); ok {
		return &c
	}
	return nil
}

func (s UnlockConditionSet) ImmutableAccountAddress() *ImmutableAccountAddressUnlockCondition {
	if c, ok := s.Get(UnlockImmutableAccountAddress).(ImmutableAccountAddressUnlockCondition); ok {
		return &c
	}
	return nil
}
