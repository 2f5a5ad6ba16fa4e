package state

import (
	"github.com/eth2030/eth2030/core/types"
)

// journalEntry is a revertible state change: every mutating engine method
// pushes the entry that undoes it. revert replays the inverse described by
// the entry against the engine's live state.
type journalEntry interface {
	revert(js *JournaledState)
}

// ripemd160Address is the RIPEMD-160 precompile address. The revert path
// of accountTouchedEntry deliberately does not clear IsTouched for this
// address; see load_precompiles_default and the touch exemption below.
var ripemd160Address = types.BytesToAddress([]byte{3})

// accountLoadedEntry undoes a cold load: the address is removed from
// state entirely, restoring the pre-load warm set.
type accountLoadedEntry struct {
	addr types.Address
}

func (e accountLoadedEntry) revert(js *JournaledState) {
	delete(js.state, e.addr)
}

// accountTouchedEntry undoes touch(addr): IsTouched reverts to false,
// except for the address-3 historical exemption, which stays touched
// across a revert unconditionally.
type accountTouchedEntry struct {
	addr types.Address
}

func (e accountTouchedEntry) revert(js *JournaledState) {
	if e.addr == ripemd160Address {
		return
	}
	if acct, ok := js.state[e.addr]; ok {
		acct.IsTouched = false
	}
}

// accountDestroyedEntry undoes a selfdestruct: the destroyed flag and the
// victim's balance are restored, and any balance credited to the target
// is moved back.
type accountDestroyedEntry struct {
	addr         types.Address
	target       types.Address
	wasDestroyed bool
	hadBalance   *types.U256
	balanceMoved bool
}

func (e accountDestroyedEntry) revert(js *JournaledState) {
	acct, ok := js.state[e.addr]
	if !ok {
		return
	}
	acct.IsDestroyed = e.wasDestroyed
	if e.balanceMoved {
		if target, ok := js.state[e.target]; ok {
			target.Info.Balance = new(types.U256).Sub(target.Info.Balance, e.hadBalance)
		}
	}
	acct.Info.Balance = new(types.U256).Add(acct.Info.Balance, e.hadBalance)
}

// balanceTransferEntry undoes a successful transfer by moving the balance
// back from "to" to "from", using wrapping arithmetic since the forward
// operation is already known to have succeeded.
type balanceTransferEntry struct {
	from    types.Address
	to      types.Address
	balance *types.U256
}

func (e balanceTransferEntry) revert(js *JournaledState) {
	from := js.state[e.from]
	to := js.state[e.to]
	to.Info.Balance = new(types.U256).Sub(to.Info.Balance, e.balance)
	from.Info.Balance = new(types.U256).Add(from.Info.Balance, e.balance)
}

// nonceChangeEntry undoes inc_nonce by decrementing the nonce.
type nonceChangeEntry struct {
	addr types.Address
}

func (e nonceChangeEntry) revert(js *JournaledState) {
	if acct, ok := js.state[e.addr]; ok {
		acct.Info.Nonce--
	}
}

// storageChangeEntry undoes an sstore or the installation of a cold-loaded
// slot. hadValue is nil for a cold load (the slot did not exist before);
// reverting removes the slot entirely. Otherwise it restores present to
// hadValue.
type storageChangeEntry struct {
	addr     types.Address
	key      types.U256
	hadValue *types.U256
}

func (e storageChangeEntry) revert(js *JournaledState) {
	acct, ok := js.state[e.addr]
	if !ok {
		return
	}
	if e.hadValue == nil {
		delete(acct.Storage, e.key)
		return
	}
	slot := acct.Storage[e.key]
	slot.Present = new(types.U256).Set(e.hadValue)
	acct.Storage[e.key] = slot
}

// codeChangeEntry undoes set_code by restoring hadCode and its hash.
//
// hadCode is populated with the new code at the time set_code ran, not the
// code it replaced - a faithful-to-source quirk that makes set_code
// effectively non-revertible. Kept intentionally; see CodeChange in the
// journal entry algebra.
type codeChangeEntry struct {
	addr    types.Address
	hadCode *types.Bytecode
	hadHash types.Hash
}

func (e codeChangeEntry) revert(js *JournaledState) {
	if acct, ok := js.state[e.addr]; ok {
		acct.Info.Code = e.hadCode
		acct.Info.CodeHash = e.hadHash
	}
}
