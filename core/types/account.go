package types

// Bytecode is a contract's deployed code together with its Keccak-256 hash.
// The hash is carried alongside the bytes rather than recomputed on every
// access, since it is looked up (via Database.CodeByHash) far more often
// than the code itself is hashed.
type Bytecode struct {
	Code []byte
	Hash Hash
}

// IsEmpty reports whether this is the canonical empty bytecode.
func (b *Bytecode) IsEmpty() bool {
	return b == nil || b.Hash == KeccakEmpty
}

// EmptyBytecode is the zero-length contract code shared by every
// externally-owned account and every freshly created account prior to
// CREATE/CREATE2 installing init code.
var EmptyBytecode = Bytecode{Code: nil, Hash: KeccakEmpty}

// AccountInfo is the balance/nonce/code identity of an account, independent
// of its storage. It is what a Database oracle returns for a basic account
// lookup, and what the journaled engine caches and mutates in memory.
type AccountInfo struct {
	Balance  *U256
	Nonce    uint64
	CodeHash Hash
	Code     *Bytecode
}

// NewAccountInfo returns the AccountInfo of a brand new, empty account:
// zero balance, zero nonce, no code.
func NewAccountInfo() AccountInfo {
	return AccountInfo{
		Balance:  ZeroU256(),
		Nonce:    0,
		CodeHash: KeccakEmpty,
		Code:     &EmptyBytecode,
	}
}

// IsEmpty reports whether the account is "empty" in the EIP-161 sense: zero
// balance, zero nonce, and no code. Empty accounts are pruned at finalize
// unless something else keeps them touched.
func (a *AccountInfo) IsEmpty() bool {
	return a.Balance.IsZero() && a.Nonce == 0 && a.CodeHash == KeccakEmpty
}
