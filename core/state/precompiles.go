package state

import (
	"crypto/sha256"
	"crypto/sha512"

	"github.com/eth2030/eth2030/core/types"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is required by the precompile at address 3, not a choice.
)

// Well-known precompile addresses. The bytecode interpreter dispatches
// calls to these addresses to native functions rather than EVM bytecode;
// the journaled engine only needs to know that they exist and, in the
// case of RIPEMD160, that they are exempt from the revert-untouch rule.
var (
	SHA256Address    = types.BytesToAddress([]byte{2})
	RIPEMD160Address = ripemd160Address
	SHA512Address    = types.BytesToAddress([]byte{0x05, 0x39}) // 1337
)

// DefaultPrecompiles is the minimal set of precompile addresses a
// standard engine preloads via LoadPrecompilesDefault.
var DefaultPrecompiles = []types.Address{SHA256Address, RIPEMD160Address, SHA512Address}

// wordCost computes ceil(bytes/32), the number of 32-byte words a
// precompile's linear gas cost charges for.
func wordCost(bytes int) uint64 {
	return uint64((bytes + 31) / 32)
}

// SHA256GasCost is the gas cost of the SHA-256 precompile at address 2:
// 60 + 12*ceil(bytes/32).
func SHA256GasCost(inputLen int) uint64 {
	return 60 + 12*wordCost(inputLen)
}

// RIPEMD160GasCost is the gas cost of the RIPEMD-160 precompile at
// address 3: 600 + 120*ceil(bytes/32).
func RIPEMD160GasCost(inputLen int) uint64 {
	return 600 + 120*wordCost(inputLen)
}

// SHA512GasCost is the gas cost of the SHA-512 precompile at address
// 1337: 60 + 12*ceil(bytes/32). SHA-512 is not part of the canonical
// precompile set; callers registering it use the same
// LoadPrecompiles/LoadPrecompilesDefault interface as any other address.
func SHA512GasCost(inputLen int) uint64 {
	return 60 + 12*wordCost(inputLen)
}

// SHA256Run computes the SHA-256 precompile's output and gas cost.
func SHA256Run(input []byte) (output []byte, gas uint64) {
	sum := sha256.Sum256(input)
	return sum[:], SHA256GasCost(len(input))
}

// RIPEMD160Run computes the RIPEMD-160 precompile's output, left-padded
// to 32 bytes as mandated by the EVM calling convention, and its gas cost.
func RIPEMD160Run(input []byte) (output []byte, gas uint64) {
	h := ripemd160.New()
	h.Write(input)
	sum := h.Sum(nil)
	padded := make([]byte, 32)
	copy(padded[32-len(sum):], sum)
	return padded, RIPEMD160GasCost(len(input))
}

// SHA512Run computes the SHA-512 precompile's output and gas cost.
func SHA512Run(input []byte) (output []byte, gas uint64) {
	sum := sha512.Sum512(input)
	return sum[:], SHA512GasCost(len(input))
}
