package abi

import (
	"encoding/hex"

	"golang.org/x/text/unicode/norm"

	"github.com/erdgo/abicodec/pkg/codec"
	"github.com/erdgo/abicodec/pkg/collection"
)

// BytesValue is a raw byte sequence.
type BytesValue struct {
	data []byte
}

// NewBytes returns bytes value holding a copy of data.
func NewBytes(data []byte) *BytesValue {
	return &BytesValue{data: collection.Copy(data)}
}

// BytesFromUTF8 returns bytes value of NFC normalized s.
func BytesFromUTF8(s string) *BytesValue {
	return &BytesValue{data: []byte(norm.NFC.String(s))}
}

// BytesFromHex returns bytes value of hex string s.
func BytesFromHex(s string) (*BytesValue, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		abiErr := shapeError(bytesType, "invalid hex string")
		abiErr.Cause = err
		return nil, abiErr
	}
	return &BytesValue{data: data}, nil
}

func (v *BytesValue) Type() *Type { return bytesType }
func (v *BytesValue) isValue()    {}

// Bytes returns a copy of the data.
func (v *BytesValue) Bytes() []byte {
	return collection.Copy(v.data)
}

func (v *BytesValue) String() string { return hex.EncodeToString(v.data) }

type bytesCodec struct{}

func (bytesCodec) cast(v Value) (*BytesValue, error) {
	data, ok := v.(*BytesValue)
	if !ok {
		return nil, shapeError(v.Type(), "expected bytes value but received %T", v)
	}
	return data, nil
}

func (c bytesCodec) encodeTopLevel(w *codec.Writer, v Value) error {
	data, err := c.cast(v)
	if err != nil {
		return err
	}
	w.WriteRaw(data.data)
	return nil
}

func (c bytesCodec) encodeNested(w *codec.Writer, v Value) error {
	data, err := c.cast(v)
	if err != nil {
		return err
	}
	if err := w.WriteBytes(data.data); err != nil {
		return shapeError(bytesType, "bytes of length %d cannot be length prefixed", len(data.data))
	}
	return nil
}

func (bytesCodec) decodeTopLevel(data []byte, t *Type) (Value, error) {
	return NewBytes(data), nil
}

func (bytesCodec) decodeNested(r *codec.Reader, t *Type) (Value, error) {
	data, err := r.ReadBytes()
	if err != nil {
		return nil, formatError(t, err, "failed to read bytes at offset %d", r.Offset())
	}
	return &BytesValue{data: data}, nil
}
