package contract

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/erdgo/abicodec/pkg/abi"
	"github.com/erdgo/abicodec/pkg/crypto"
)

const (
	addressPaddingLength = 8
	shardSelectorLength  = 2
	hashOffset           = 10
	hashLength           = 20
)

var vmTypeBytes, _ = hex.DecodeString(VMType)

// ComputeAddress returns the address of a contract deployed by owner with the nonce of the deploy transaction.
// The address is zero padding, the VM type, part of keccak256(owner | nonce) and the shard selector of owner.
func ComputeAddress(owner *abi.AddressValue, nonce uint64) (*abi.AddressValue, error) {
	if owner == nil {
		return nil, fmt.Errorf("%w: owner address is required", ErrInvalidData)
	}
	ownerBytes := owner.Bytes()
	nonceBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(nonceBytes, nonce)

	hash := crypto.Keccak256(ownerBytes, nonceBytes)

	address := make([]byte, addressPaddingLength, abi.AddressLength)
	address = append(address, vmTypeBytes...)
	address = append(address, hash[hashOffset:hashOffset+hashLength]...)
	address = append(address, ownerBytes[abi.AddressLength-shardSelectorLength:]...)
	return abi.NewAddress(address)
}
