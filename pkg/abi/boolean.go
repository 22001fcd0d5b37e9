package abi

import (
	"strconv"

	"github.com/erdgo/abicodec/pkg/codec"
)

// BooleanValue is true or false.
type BooleanValue struct {
	value bool
}

// NewBoolean returns boolean value.
func NewBoolean(v bool) *BooleanValue {
	return &BooleanValue{value: v}
}

func (v *BooleanValue) Type() *Type    { return booleanType }
func (v *BooleanValue) isValue()       {}
func (v *BooleanValue) Value() bool    { return v.value }
func (v *BooleanValue) String() string { return strconv.FormatBool(v.value) }

type booleanCodec struct{}

func (booleanCodec) cast(v Value) (*BooleanValue, error) {
	boolean, ok := v.(*BooleanValue)
	if !ok {
		return nil, shapeError(v.Type(), "expected boolean value but received %T", v)
	}
	return boolean, nil
}

// encodeTopLevel writes nothing for false.
func (c booleanCodec) encodeTopLevel(w *codec.Writer, v Value) error {
	boolean, err := c.cast(v)
	if err != nil {
		return err
	}
	if boolean.value {
		w.WriteBool(true)
	}
	return nil
}

func (c booleanCodec) encodeNested(w *codec.Writer, v Value) error {
	boolean, err := c.cast(v)
	if err != nil {
		return err
	}
	w.WriteBool(boolean.value)
	return nil
}

// decodeTopLevel treats empty data as false.
// VM queries return an empty slot for false, which cannot be told apart from an absent value.
func (booleanCodec) decodeTopLevel(data []byte, t *Type) (Value, error) {
	switch {
	case len(data) == 0:
		return NewBoolean(false), nil
	case len(data) == 1 && data[0] == 0x01:
		return NewBoolean(true), nil
	default:
		return nil, formatError(t, codec.ErrInvalidData, "unexpected top level boolean %x", data)
	}
}

func (booleanCodec) decodeNested(r *codec.Reader, t *Type) (Value, error) {
	val, err := r.ReadBool()
	if err != nil {
		return nil, formatError(t, err, "failed to read boolean at offset %d", r.Offset())
	}
	return NewBoolean(val), nil
}
