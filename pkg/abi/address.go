package abi

import (
	"encoding/hex"

	"github.com/erdgo/abicodec/pkg/codec"
	"github.com/erdgo/abicodec/pkg/collection"
)

// AddressLength is the size of an address.
const AddressLength = 32

// AddressValue is a 32 bytes account or contract address.
type AddressValue struct {
	data [AddressLength]byte
}

// NewAddress returns address value. data must be 32 bytes.
func NewAddress(data []byte) (*AddressValue, error) {
	if len(data) != AddressLength {
		return nil, shapeError(addressType, "address must be %d bytes but received %d", AddressLength, len(data))
	}
	v := &AddressValue{}
	copy(v.data[:], data)
	return v, nil
}

// AddressFromBech32 returns address value from bech32 text representation.
func AddressFromBech32(s string) (*AddressValue, error) {
	_, data, err := codec.Bech32ToBytes(s)
	if err != nil {
		abiErr := shapeError(addressType, "invalid bech32 address %q", s)
		abiErr.Cause = err
		return nil, abiErr
	}
	return NewAddress(data)
}

// AddressFromHex returns address value from hex string.
func AddressFromHex(s string) (*AddressValue, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		abiErr := shapeError(addressType, "invalid hex address %q", s)
		abiErr.Cause = err
		return nil, abiErr
	}
	return NewAddress(data)
}

func (v *AddressValue) Type() *Type { return addressType }
func (v *AddressValue) isValue()    {}

// Bytes returns a copy of the address.
func (v *AddressValue) Bytes() []byte {
	return collection.Copy(v.data[:])
}

// Bech32 returns text representation with the human readable part hrp.
func (v *AddressValue) Bech32(hrp string) (string, error) {
	return codec.BytesToBech32(hrp, v.data[:])
}

// Hex returns hex representation.
func (v *AddressValue) Hex() string {
	return hex.EncodeToString(v.data[:])
}

func (v *AddressValue) String() string {
	return codec.Bech32(v.data[:]).String()
}

type addressCodec struct{}

func (addressCodec) cast(v Value) (*AddressValue, error) {
	address, ok := v.(*AddressValue)
	if !ok {
		return nil, shapeError(v.Type(), "expected address value but received %T", v)
	}
	return address, nil
}

func (c addressCodec) encodeTopLevel(w *codec.Writer, v Value) error {
	return c.encodeNested(w, v)
}

func (c addressCodec) encodeNested(w *codec.Writer, v Value) error {
	address, err := c.cast(v)
	if err != nil {
		return err
	}
	w.WriteRaw(address.data[:])
	return nil
}

func (addressCodec) decodeTopLevel(data []byte, t *Type) (Value, error) {
	if len(data) != AddressLength {
		return nil, formatError(t, codec.ErrInvalidData, "address must be %d bytes but received %d", AddressLength, len(data))
	}
	v := &AddressValue{}
	copy(v.data[:], data)
	return v, nil
}

func (addressCodec) decodeNested(r *codec.Reader, t *Type) (Value, error) {
	data, err := r.ReadRaw(AddressLength)
	if err != nil {
		return nil, formatError(t, err, "%d bytes remaining but address requires %d", r.Remaining(), AddressLength)
	}
	v := &AddressValue{}
	copy(v.data[:], data)
	return v, nil
}
