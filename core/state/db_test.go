package state

import (
	"testing"

	"github.com/eth2030/eth2030/core/types"
)

func TestMemoryDatabase_UnknownAccount(t *testing.T) {
	db := NewMemoryDatabase()
	info := db.Basic(testAddr(1))
	if !info.Balance.IsZero() || info.Nonce != 0 || info.CodeHash != types.KeccakEmpty {
		t.Fatalf("unknown account should be empty: %+v", info)
	}
}

func TestMemoryDatabase_SeededAccount(t *testing.T) {
	db := NewMemoryDatabase()
	addr := testAddr(1)
	db.SetAccount(addr, types.AccountInfo{Balance: u256(100), Nonce: 3, CodeHash: types.KeccakEmpty})

	info := db.Basic(addr)
	if info.Balance.Uint64() != 100 || info.Nonce != 3 {
		t.Fatalf("seeded account mismatch: %+v", info)
	}
	if info.Code != nil {
		t.Fatal("Basic must not populate Code")
	}
}

func TestMemoryDatabase_CodeByHash(t *testing.T) {
	db := NewMemoryDatabase()
	code := types.Bytecode{Code: []byte{0x60, 0x01}, Hash: types.HexToHash("0xc0de")}
	db.SetCode(code)

	got := db.CodeByHash(code.Hash)
	if string(got.Code) != string(code.Code) {
		t.Fatalf("CodeByHash mismatch: got %x want %x", got.Code, code.Code)
	}

	empty := db.CodeByHash(types.KeccakEmpty)
	if !empty.IsEmpty() {
		t.Fatal("unregistered hash should return empty bytecode")
	}
}

func TestMemoryDatabase_Storage(t *testing.T) {
	db := NewMemoryDatabase()
	addr := testAddr(1)
	key := u256(7)

	if v := db.Storage(addr, key); !v.IsZero() {
		t.Fatal("unseeded storage should read zero")
	}

	db.SetStorage(addr, key, u256(99))
	if v := db.Storage(addr, key); v.Uint64() != 99 {
		t.Fatalf("storage mismatch: got %d want 99", v.Uint64())
	}
}
