package wallet

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

func validEVMAddress(addr string) bool {
	return common.IsHexAddress(addr)
}

// Solana addresses are base58-encoded 32-byte public keys, which encode to
// between 32 and 44 characters.
func validSolanaAddress(addr string) bool {
	if len(addr) < 32 || len(addr) > 44 {
		return false
	}
	for _, r := range addr {
		if !strings.ContainsRune(base58Alphabet, r) {
			return false
		}
	}
	return true
}
