package state

import (
	"github.com/eth2030/eth2030/core/types"
)

// StorageSlot holds the dual original/present value of a single storage
// cell. original is the value read from the database the first time the
// slot was loaded in the current transaction; present is the most recent
// value written by sstore. The gas layer uses the pair to compute
// EIP-2200/3529 refunds; that computation is out of scope here.
type StorageSlot struct {
	Original *types.U256
	Present  *types.U256
}

// NewStorageSlot builds a slot with both original and present set to v, as
// happens on a cold sload.
func NewStorageSlot(v *types.U256) StorageSlot {
	return StorageSlot{
		Original: new(types.U256).Set(v),
		Present:  new(types.U256).Set(v),
	}
}

// PresentValue exposes the slot's current value.
func (s StorageSlot) PresentValue() *types.U256 {
	return s.Present
}

// Account is the in-memory representation of one account's full state
// during a transaction: its identity (AccountInfo), its loaded storage
// slots, and the bookkeeping flags the journaled engine needs to decide
// what survives to finalize.
type Account struct {
	Info types.AccountInfo
	// Storage holds every slot loaded or written so far, keyed by the
	// raw storage key.
	Storage map[types.U256]StorageSlot
	// StorageCleared is set by create_account: every slot read afterwards
	// defaults to zero without consulting the database, since the account
	// was just (re)created with empty storage.
	StorageCleared bool
	// IsDestroyed is set by selfdestruct.
	IsDestroyed bool
	// IsTouched marks the account as the subject of a state-affecting
	// operation; untouched accounts are pruned at finalize.
	IsTouched bool
	// IsExistingPrecompile marks an address preloaded via
	// load_precompiles/load_precompiles_default.
	IsExistingPrecompile bool
}

// NewAccount returns a freshly warm-loaded account wrapping the given info.
func NewAccount(info types.AccountInfo) *Account {
	return &Account{
		Info:    info,
		Storage: make(map[types.U256]StorageSlot),
	}
}

// IsEmpty reports whether the wrapped AccountInfo is empty in the EIP-161
// sense.
func (a *Account) IsEmpty() bool {
	return a.Info.IsEmpty()
}
