package abi

import (
	"github.com/erdgo/abicodec/pkg/codec"
)

const (
	optionAbsent  = 0x00
	optionPresent = 0x01
)

// OptionValue is either absent or holds exactly one inner value.
type OptionValue struct {
	typ   *Type
	inner Value
}

// NewSome returns a present option holding inner.
func NewSome(inner Value) (*OptionValue, error) {
	if inner == nil {
		return nil, shapeError(nil, "option inner value must not be nil")
	}
	return &OptionValue{typ: Option(inner.Type()), inner: inner}, nil
}

// NewNone returns an absent option of the inner type.
func NewNone(inner *Type) *OptionValue {
	return &OptionValue{typ: Option(inner)}
}

// NewOptionValue returns option of type t. Nil inner is absent.
func NewOptionValue(t *Type, inner Value) (*OptionValue, error) {
	if t.Kind() != KindOption {
		return nil, shapeError(t, "expected option type")
	}
	if inner != nil && !inner.Type().Equal(t.inner) {
		return nil, shapeError(t, "inner value has type %s", inner.Type())
	}
	return &OptionValue{typ: t, inner: inner}, nil
}

func (v *OptionValue) Type() *Type { return v.typ }
func (v *OptionValue) isValue()    {}

// IsSet returns true if the inner value is present.
func (v *OptionValue) IsSet() bool { return v.inner != nil }

// Inner returns the inner value, or nil when absent.
func (v *OptionValue) Inner() Value { return v.inner }

func (v *OptionValue) String() string {
	if v.inner == nil {
		return "None"
	}
	return "Some(" + v.inner.String() + ")"
}

type optionCodec struct {
	parent *BinaryCodec
}

func (optionCodec) cast(v Value) (*OptionValue, error) {
	option, ok := v.(*OptionValue)
	if !ok {
		return nil, shapeError(v.Type(), "expected option value but received %T", v)
	}
	if option.inner != nil && !option.inner.Type().Equal(option.typ.inner) {
		return nil, shapeError(option.typ, "inner value has type %s", option.inner.Type())
	}
	return option, nil
}

// encodeTopLevel writes nothing for absent.
func (c optionCodec) encodeTopLevel(w *codec.Writer, v Value) error {
	option, err := c.cast(v)
	if err != nil {
		return err
	}
	if option.inner == nil {
		return nil
	}
	return c.encodePresent(w, option)
}

func (c optionCodec) encodeNested(w *codec.Writer, v Value) error {
	option, err := c.cast(v)
	if err != nil {
		return err
	}
	if option.inner == nil {
		return w.WriteByte(optionAbsent)
	}
	return c.encodePresent(w, option)
}

func (c optionCodec) encodePresent(w *codec.Writer, option *OptionValue) error {
	inner := codec.NewWriter()
	if err := c.parent.encodeNested(inner, option.inner); err != nil {
		return err
	}
	_ = w.WriteByte(optionPresent)
	w.WriteRaw(inner.Result())
	return nil
}

func (c optionCodec) decodeTopLevel(data []byte, t *Type) (Value, error) {
	if len(data) == 0 {
		return &OptionValue{typ: t}, nil
	}
	return c.parent.decodeAll(data, t)
}

func (c optionCodec) decodeNested(r *codec.Reader, t *Type) (Value, error) {
	marker, err := r.ReadByte()
	if err != nil {
		return nil, formatError(t, err, "missing option marker at offset %d", r.Offset())
	}
	switch marker {
	case optionAbsent:
		return &OptionValue{typ: t}, nil
	case optionPresent:
		inner, err := c.parent.decodeNested(r, t.inner)
		if err != nil {
			return nil, err
		}
		return &OptionValue{typ: t, inner: inner}, nil
	default:
		return nil, formatError(t, codec.ErrInvalidData, "invalid option marker %#02x at offset %d", marker, r.Offset()-1)
	}
}
