// Package crypto provides hash functions used for address derivation.
package crypto

import (
	"golang.org/x/crypto/sha3"
)

const HashLength = 32

// Keccak256 returns legacy keccak256 hash of the joined data.
func Keccak256(data ...[]byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hasher.Write(d)
	}
	return hasher.Sum(nil)
}
