package state

import (
	"testing"

	"github.com/eth2030/eth2030/core/types"
)

func TestStorageSlot_New(t *testing.T) {
	v := u256(42)
	slot := NewStorageSlot(v)
	if slot.Original.Uint64() != 42 || slot.Present.Uint64() != 42 {
		t.Fatalf("NewStorageSlot should set both fields to v: got original=%d present=%d",
			slot.Original.Uint64(), slot.Present.Uint64())
	}
	if slot.PresentValue().Uint64() != 42 {
		t.Fatal("PresentValue should return present")
	}
}

func TestAccount_IsEmpty(t *testing.T) {
	acct := NewAccount(types.NewAccountInfo())
	if !acct.IsEmpty() {
		t.Fatal("a freshly created account should be empty")
	}

	acct.Info.Balance = u256(1)
	if acct.IsEmpty() {
		t.Fatal("an account with nonzero balance should not be empty")
	}
}

func TestAccountInfo_IsEmpty(t *testing.T) {
	info := types.NewAccountInfo()
	if !info.IsEmpty() {
		t.Fatal("new account info should be empty")
	}

	info.Nonce = 1
	if info.IsEmpty() {
		t.Fatal("a nonzero nonce should make the account non-empty")
	}
}

func TestBytecode_IsEmpty(t *testing.T) {
	if !types.EmptyBytecode.IsEmpty() {
		t.Fatal("EmptyBytecode should report empty")
	}
	code := types.Bytecode{Code: []byte{0x60, 0x00}, Hash: types.HexToHash("0xdead")}
	if code.IsEmpty() {
		t.Fatal("non-empty code should not report empty")
	}
}
