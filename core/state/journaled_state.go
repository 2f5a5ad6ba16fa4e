// Package state implements the journaled account-state engine: the
// in-memory world-state touched during execution of a single transaction,
// together with the nested checkpoint/commit/revert machinery that backs
// the EVM's call-frame hierarchy.
package state

import (
	"math"

	"github.com/eth2030/eth2030/core/types"
	"github.com/eth2030/eth2030/log"
)

// State is the live account map: presence of an address implies it has
// been warm-loaded in the current transaction. Insertion order carries
// no meaning.
type State map[types.Address]*Account

// SelfDestructResult reports the outcome of a selfdestruct call.
type SelfDestructResult struct {
	HadValue            bool
	IsCold              bool
	Exists              bool
	PreviouslyDestroyed bool
}

// Checkpoint is an opaque token produced by Checkpoint and consumed by
// CheckpointCommit or CheckpointRevert. Callers must not inspect its
// fields.
type Checkpoint struct {
	logIndex     int
	journalIndex int
}

// JournaledState holds the live account state for one transaction, the
// logs emitted so far, and the nested stack of per-frame journals that
// makes every mutation reversible. There is exactly one owner at any
// time; the engine does no internal locking and is not safe for
// concurrent use.
type JournaledState struct {
	state State
	logs  []types.Log
	depth int
	// journal is a stack of per-frame journals. It always has at least
	// one element, the root frame created by New. Checkpoint pushes a
	// frame and increments depth; CheckpointCommit decrements depth but
	// leaves the committed frame in place, so len(journal)-1 equals depth
	// until a commit and may exceed it afterwards.
	journal [][]journalEntry

	metrics *StateMetrics
	logger  *log.Logger
}

// New returns an empty JournaledState with no preloaded accounts.
func New() *JournaledState {
	return &JournaledState{
		state:   make(State),
		journal: [][]journalEntry{{}},
		metrics: NewStateMetrics(),
		logger:  log.Default().Module("state"),
	}
}

func (js *JournaledState) journalPush(e journalEntry) {
	top := len(js.journal) - 1
	js.journal[top] = append(js.journal[top], e)
}

// Depth returns the current nesting depth (0 at the root frame).
func (js *JournaledState) Depth() int {
	return js.depth
}

// State returns the live account map. Callers must not mutate it other
// than through the JournaledState methods.
func (js *JournaledState) State() State {
	return js.state
}

// Logs returns the logs accumulated so far in insertion order.
func (js *JournaledState) Logs() []types.Log {
	return js.logs
}

// LoadPrecompiles preloads the given addresses as existing accounts,
// marking them IsExistingPrecompile so load_account_exist always reports
// them present and warm, regardless of their AccountInfo.
func (js *JournaledState) LoadPrecompiles(precompiles map[types.Address]types.AccountInfo) {
	for addr, info := range precompiles {
		acct := NewAccount(info)
		acct.IsExistingPrecompile = true
		js.state[addr] = acct
	}
}

// LoadPrecompilesDefault preloads the given addresses with a default
// (empty) AccountInfo. This is the common case: precompiles have no
// balance, nonce, or code of their own.
func (js *JournaledState) LoadPrecompilesDefault(addrs []types.Address) {
	m := make(map[types.Address]types.AccountInfo, len(addrs))
	for _, addr := range addrs {
		m[addr] = types.NewAccountInfo()
	}
	js.LoadPrecompiles(m)
}

// Touch records that addr has been the subject of a state-affecting
// operation. It is idempotent: once an account is touched, further calls
// are no-ops until a revert clears the flag. Precondition: addr is warm.
func (js *JournaledState) Touch(addr types.Address) {
	acct, ok := js.state[addr]
	if !ok {
		return
	}
	if acct.IsTouched {
		return
	}
	acct.IsTouched = true
	js.journalPush(accountTouchedEntry{addr: addr})
}

// LoadAccount warm-loads addr from db if it is not already present,
// journaling the load so it can be undone on revert. It reports whether
// the load was cold (a genuine DB fetch happened).
func (js *JournaledState) LoadAccount(addr types.Address, db Database) bool {
	if _, ok := js.state[addr]; ok {
		return false
	}
	info := db.Basic(addr)
	js.state[addr] = NewAccount(info)
	js.journalPush(accountLoadedEntry{addr: addr})
	js.metrics.RecordAccountRead()
	return true
}

// LoadCode warm-loads addr, then materializes its code if not already
// cached: empty bytecode when code_hash is KeccakEmpty, otherwise a fetch
// via CodeByHash. Materialization is a cache fill, not a state mutation,
// and is never journaled.
func (js *JournaledState) LoadCode(addr types.Address, db Database) (*Account, bool) {
	isCold := js.LoadAccount(addr, db)
	acct := js.state[addr]
	if acct.Info.Code == nil {
		if acct.Info.CodeHash == types.KeccakEmpty {
			acct.Info.Code = &types.EmptyBytecode
		} else {
			code := db.CodeByHash(acct.Info.CodeHash)
			acct.Info.Code = &code
			js.metrics.RecordCodeRead(len(code.Code))
		}
	}
	return acct, isCold
}

// LoadAccountExist warm-loads addr and reports whether it existed prior
// to this transaction. Precompiles are always reported warm (isCold =
// false) and existing, regardless of their AccountInfo.
func (js *JournaledState) LoadAccountExist(addr types.Address, db Database) (isCold bool, exists bool) {
	isCold = js.LoadAccount(addr, db)
	acct := js.state[addr]
	if acct.IsExistingPrecompile {
		return false, true
	}
	return isCold, !acct.IsEmpty()
}

// IncNonce increments addr's nonce and returns the new value. If the
// nonce is already math.MaxUint64, it returns (0, false) and emits no
// journal entry: the account is left untouched by an overflowing call.
// Precondition: addr is warm.
func (js *JournaledState) IncNonce(addr types.Address) (uint64, bool) {
	acct, ok := js.state[addr]
	if !ok {
		panic("state: IncNonce on a cold account")
	}
	if acct.Info.Nonce == math.MaxUint64 {
		return 0, false
	}
	js.Touch(addr)
	js.journalPush(nonceChangeEntry{addr: addr})
	acct.Info.Nonce++
	js.metrics.RecordAccountWrite()
	return acct.Info.Nonce, true
}

// SetCode replaces addr's code and code hash. Precondition: addr is warm.
//
// The journaled had_code is the new code, not the code it replaces -
// matching a faithful-to-source quirk (see codeChangeEntry) that makes
// SetCode effectively non-revertible. Implementers differential-testing
// against the original should keep this; it is flagged, not accidental.
func (js *JournaledState) SetCode(addr types.Address, code types.Bytecode) {
	acct, ok := js.state[addr]
	if !ok {
		panic("state: SetCode on a cold account")
	}
	js.Touch(addr)
	js.journalPush(codeChangeEntry{addr: addr, hadCode: &code, hadHash: code.Hash})
	acct.Info.Code = &code
	acct.Info.CodeHash = code.Hash
	js.metrics.RecordCodeWrite(len(code.Code))
}

// Transfer warm-loads from and to (in that order), touches both, and
// moves balance from from to to using checked arithmetic. A sender
// underflow (ErrOutOfFund) is returned before either balance changes,
// though both accounts are already loaded and touched; a recipient overflow
// (ErrOverflowPayment) is raised after the sender has already been
// debited, since mainnet balances cannot reach 2^256.
func (js *JournaledState) Transfer(from, to types.Address, balance *types.U256, db Database) (fromCold bool, toCold bool, err error) {
	fromCold = js.LoadAccount(from, db)
	toCold = js.LoadAccount(to, db)
	js.Touch(from)
	js.Touch(to)

	fromAcct := js.state[from]
	toAcct := js.state[to]

	newFromBal, ok := types.CheckedSub(fromAcct.Info.Balance, balance)
	if !ok {
		return fromCold, toCold, ErrOutOfFund
	}
	fromAcct.Info.Balance = newFromBal

	newToBal, ok := types.CheckedAdd(toAcct.Info.Balance, balance)
	if !ok {
		return fromCold, toCold, ErrOverflowPayment
	}
	toAcct.Info.Balance = newToBal

	js.journalPush(balanceTransferEntry{from: from, to: to, balance: new(types.U256).Set(balance)})
	return fromCold, toCold, nil
}

// CreateAccount warm-loads addr (materializing its code, to check for a
// collision) and, absent a collision, resets it to a freshly created
// account: empty storage, no code. It returns false without mutating
// anything if the address already holds non-empty code, a nonzero nonce,
// or names a precompile.
func (js *JournaledState) CreateAccount(addr types.Address, isPrecompile bool, db Database) bool {
	acct, _ := js.LoadCode(addr, db)
	if !acct.Info.Code.IsEmpty() || acct.Info.Nonce != 0 || isPrecompile {
		return false
	}

	acct.StorageCleared = true
	for key, slot := range acct.Storage {
		slot.Original = types.ZeroU256()
		slot.Present = types.ZeroU256()
		acct.Storage[key] = slot
	}
	acct.Info.CodeHash = types.KeccakEmpty
	acct.Info.Code = nil

	js.Touch(addr)
	js.metrics.RecordAccountWrite()
	return true
}

// SelfDestruct schedules addr for deletion, transferring its balance to
// target. If addr == target the balance is burned rather than
// transferred, per the Yellow Paper. Precondition: addr is warm.
//
// Exists/IsCold on the result come from LoadAccountExist rather than a
// raw LoadAccount + IsEmpty check, so a precompile target is correctly
// reported as existing regardless of its AccountInfo.
func (js *JournaledState) SelfDestruct(addr, target types.Address, db Database) SelfDestructResult {
	acct, ok := js.state[addr]
	if !ok {
		panic("state: SelfDestruct on a cold account")
	}
	isCold, exists := js.LoadAccountExist(target, db)

	balance := new(types.U256).Set(acct.Info.Balance)
	wasDestroyed := acct.IsDestroyed
	acct.Info.Balance = types.ZeroU256()
	acct.IsDestroyed = true

	balanceMoved := false
	if addr != target {
		js.Touch(target)
		targetAcct := js.state[target]
		targetAcct.Info.Balance = new(types.U256).Add(targetAcct.Info.Balance, balance)
		balanceMoved = true
	}

	js.journalPush(accountDestroyedEntry{
		addr:         addr,
		target:       target,
		wasDestroyed: wasDestroyed,
		hadBalance:   balance,
		balanceMoved: balanceMoved,
	})
	js.metrics.RecordSelfDestruct()

	return SelfDestructResult{
		HadValue:            !balance.IsZero(),
		IsCold:              isCold,
		Exists:              exists,
		PreviouslyDestroyed: wasDestroyed,
	}
}

// SLoad reads the storage value at (addr, key), warm-loading the slot
// from db on a miss. Precondition: addr is warm.
func (js *JournaledState) SLoad(addr types.Address, key *types.U256, db Database) (*types.U256, bool) {
	acct, ok := js.state[addr]
	if !ok {
		panic("state: SLoad on a cold account")
	}
	if slot, ok := acct.Storage[*key]; ok {
		return new(types.U256).Set(slot.Present), false
	}

	var value *types.U256
	if acct.StorageCleared {
		value = types.ZeroU256()
	} else {
		value = db.Storage(addr, key)
		js.metrics.RecordStorageRead(32)
	}
	js.journalPush(storageChangeEntry{addr: addr, key: *key, hadValue: nil})
	acct.Storage[*key] = NewStorageSlot(value)
	return new(types.U256).Set(value), true
}

// SStore writes newValue to (addr, key), first sloading to establish
// warmth. If the slot's present value already equals newValue this is a
// no-op beyond the implicit sload: no StorageChange entry is journaled,
// since the gas layer's refund tiers depend on that absence. Returns the
// slot's original value, its present value prior to this call, newValue,
// and whether the underlying sload was cold.
func (js *JournaledState) SStore(addr types.Address, key, newValue *types.U256, db Database) (original, present, newVal *types.U256, isCold bool) {
	present, isCold = js.SLoad(addr, key, db)
	acct := js.state[addr]
	slot := acct.Storage[*key]
	if present.Eq(newValue) {
		return new(types.U256).Set(slot.Original), present, newValue, isCold
	}

	js.journalPush(storageChangeEntry{addr: addr, key: *key, hadValue: new(types.U256).Set(present)})
	slot.Present = new(types.U256).Set(newValue)
	acct.Storage[*key] = slot
	js.metrics.RecordStorageWrite(32)

	return new(types.U256).Set(slot.Original), present, newValue, isCold
}

// Log appends entry to the accumulated log list. Logs are not journaled
// directly; CheckpointRevert truncates the log slice to the length
// captured at the matching Checkpoint.
func (js *JournaledState) Log(entry types.Log) {
	js.logs = append(js.logs, entry)
}

// Checkpoint snapshots the current log and journal lengths, pushes a
// fresh empty per-frame journal, and increments depth. The returned
// token is later passed to CheckpointCommit or CheckpointRevert.
func (js *JournaledState) Checkpoint() Checkpoint {
	cp := Checkpoint{logIndex: len(js.logs), journalIndex: len(js.journal)}
	js.journal = append(js.journal, []journalEntry{})
	js.depth++
	js.metrics.RecordSnapshot()
	return cp
}

// CheckpointCommit accepts the current frame's changes. Entries stay in
// place: if an outer frame later reverts, they unwind along with it.
func (js *JournaledState) CheckpointCommit() {
	js.depth--
}

// CheckpointRevert undoes every entry pushed since cp was taken, frame by
// frame from the top down, each frame's entries in reverse order, then
// truncates logs and the journal stack back to the checkpoint.
func (js *JournaledState) CheckpointRevert(cp Checkpoint) {
	js.depth--
	for i := len(js.journal) - 1; i >= cp.journalIndex; i-- {
		frame := js.journal[i]
		for j := len(frame) - 1; j >= 0; j-- {
			frame[j].revert(js)
		}
	}
	js.journal = js.journal[:cp.journalIndex]
	js.logs = js.logs[:cp.logIndex]
	js.metrics.RecordRevert()
}

// Finalize returns the touched-account diff and the accumulated logs,
// then resets the engine to a fresh empty state with a single root
// journal frame and depth 0. Untouched accounts are pruned here and only
// here; a reverted-then-reloaded account that was never touched is
// correctly absent from the diff.
func (js *JournaledState) Finalize() (State, []types.Log) {
	touched := make(State, len(js.state))
	for addr, acct := range js.state {
		if acct.IsTouched {
			touched[addr] = acct
		}
	}
	logs := js.logs

	js.state = make(State)
	js.logs = nil
	js.journal = [][]journalEntry{{}}
	js.depth = 0

	js.logger.Debug("finalized journaled state", "touched", len(touched), "logs", len(logs))
	return touched, logs
}
