package state

import (
	"github.com/eth2030/eth2030/core/types"
)

// Database is the read-only oracle the journaled engine consults on a
// cold load. It is the one polymorphism point in the engine and is
// modeled as an interface rather than a closure bundle so call sites stay
// readable. All three methods are assumed to succeed; failure modes (a
// missing backing store, a corrupt trie) are beyond this subsystem's
// scope and implementers are free to propagate or panic from within their
// own Database implementation.
type Database interface {
	// Basic returns the account's balance/nonce/code_hash. The Code field
	// of the returned AccountInfo is left nil; code is fetched lazily via
	// CodeByHash. Unknown addresses return a zeroed AccountInfo with
	// CodeHash == types.KeccakEmpty.
	Basic(addr types.Address) types.AccountInfo

	// CodeByHash returns the bytecode for a given code hash. Called only
	// when an account's code_hash is not types.KeccakEmpty.
	CodeByHash(hash types.Hash) types.Bytecode

	// Storage returns the value at the given storage key for addr. Unset
	// slots return the zero value.
	Storage(addr types.Address, key *types.U256) *types.U256
}

// MemoryDatabase is an in-memory Database used for tests and for seeding
// an engine with a known starting world-state. It never fails: unknown
// addresses and slots read back as their zero values.
type MemoryDatabase struct {
	accounts map[types.Address]types.AccountInfo
	code     map[types.Hash]types.Bytecode
	storage  map[types.Address]map[types.U256]*types.U256
}

// NewMemoryDatabase returns an empty MemoryDatabase.
func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{
		accounts: make(map[types.Address]types.AccountInfo),
		code:     make(map[types.Hash]types.Bytecode),
		storage:  make(map[types.Address]map[types.U256]*types.U256),
	}
}

// SetAccount seeds the database with the given account info.
func (m *MemoryDatabase) SetAccount(addr types.Address, info types.AccountInfo) {
	m.accounts[addr] = info
}

// SetCode seeds the database with bytecode under its own hash. It does not
// change any account's code_hash; that is seeded through SetAccount.
func (m *MemoryDatabase) SetCode(code types.Bytecode) {
	m.code[code.Hash] = code
}

// SetStorage seeds a single storage slot for addr.
func (m *MemoryDatabase) SetStorage(addr types.Address, key *types.U256, value *types.U256) {
	slots, ok := m.storage[addr]
	if !ok {
		slots = make(map[types.U256]*types.U256)
		m.storage[addr] = slots
	}
	slots[*key] = new(types.U256).Set(value)
}

// Basic implements Database.
func (m *MemoryDatabase) Basic(addr types.Address) types.AccountInfo {
	if info, ok := m.accounts[addr]; ok {
		info.Code = nil
		return info
	}
	info := types.NewAccountInfo()
	info.Code = nil
	return info
}

// CodeByHash implements Database.
func (m *MemoryDatabase) CodeByHash(hash types.Hash) types.Bytecode {
	if code, ok := m.code[hash]; ok {
		return code
	}
	return types.EmptyBytecode
}

// Storage implements Database.
func (m *MemoryDatabase) Storage(addr types.Address, key *types.U256) *types.U256 {
	if slots, ok := m.storage[addr]; ok {
		if v, ok := slots[*key]; ok {
			return new(types.U256).Set(v)
		}
	}
	return types.ZeroU256()
}

var _ Database = (*MemoryDatabase)(nil)
