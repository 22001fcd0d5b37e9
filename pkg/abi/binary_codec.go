package abi

import (
	"github.com/erdgo/abicodec/pkg/codec"
	"github.com/erdgo/abicodec/pkg/log"
)

// MaxBufferSize is the maximum size of a buffer accepted by decode.
const MaxBufferSize = 4096

// kindCodec encodes and decodes values of a single kind.
type kindCodec interface {
	encodeTopLevel(w *codec.Writer, v Value) error
	encodeNested(w *codec.Writer, v Value) error
	decodeTopLevel(data []byte, t *Type) (Value, error)
	decodeNested(r *codec.Reader, t *Type) (Value, error)
}

// BinaryCodec routes encode and decode to the codec of the kind.
// BinaryCodec is immutable after construction and safe for concurrent use.
type BinaryCodec struct {
	codecs [kindCount]kindCodec
	logger log.Logger
}

// CodecOption configures BinaryCodec.
type CodecOption func(*BinaryCodec)

// WithLogger sets logger to report decode failures on debug level.
func WithLogger(logger log.Logger) CodecOption {
	return func(c *BinaryCodec) {
		c.logger = logger
	}
}

// NewBinaryCodec returns codec with all kinds registered.
func NewBinaryCodec(opts ...CodecOption) *BinaryCodec {
	c := &BinaryCodec{
		logger: log.DefaultLogger,
	}
	c.codecs = [kindCount]kindCodec{
		KindNumeric:         numericCodec{},
		KindBoolean:         booleanCodec{},
		KindBytes:           bytesCodec{},
		KindAddress:         addressCodec{},
		KindTokenIdentifier: tokenIdentifierCodec{},
		KindOption:          optionCodec{parent: c},
		KindMulti:           multiCodec{parent: c},
		KindStruct:          structCodec{parent: c},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EncodeTopLevel encodes a standalone value, e.g. an endpoint argument.
func (c *BinaryCodec) EncodeTopLevel(v Value) ([]byte, error) {
	w := codec.NewWriter()
	if err := c.encodeTopLevel(w, v); err != nil {
		return nil, err
	}
	return w.Result(), nil
}

// EncodeNested encodes a value embedded in a composite.
func (c *BinaryCodec) EncodeNested(v Value) ([]byte, error) {
	w := codec.NewWriter()
	if err := c.encodeNested(w, v); err != nil {
		return nil, err
	}
	return w.Result(), nil
}

// DecodeTopLevel decodes the whole data as a single value of type t.
func (c *BinaryCodec) DecodeTopLevel(data []byte, t *Type) (Value, error) {
	if err := checkBufferLength(data, t); err != nil {
		return nil, err
	}
	v, err := c.decodeTopLevel(data, t)
	if err != nil {
		c.logger.Debugf("Failed to decode top level %s from %x with %v", t, data, err)
		return nil, err
	}
	return v, nil
}

// DecodeNested decodes a value of type t from the beginning of data.
// It returns the value and the number of bytes consumed.
func (c *BinaryCodec) DecodeNested(data []byte, t *Type) (Value, int, error) {
	if err := checkBufferLength(data, t); err != nil {
		return nil, 0, err
	}
	r := codec.NewReader(data)
	v, err := c.decodeNested(r, t)
	if err != nil {
		c.logger.Debugf("Failed to decode nested %s from %x with %v", t, data, err)
		return nil, 0, err
	}
	return v, r.Offset(), nil
}

// DecodeTopLevelMulti decodes already delimited parts as a multi value of type t.
// Each part is decoded top level against the corresponding element type.
func (c *BinaryCodec) DecodeTopLevelMulti(parts [][]byte, t *Type) (*MultiValue, error) {
	if t.Kind() != KindMulti {
		return nil, shapeError(t, "expected multi type")
	}
	for _, part := range parts {
		if err := checkBufferLength(part, t); err != nil {
			return nil, err
		}
	}
	v, err := multiCodec{parent: c}.decodeParts(parts, t)
	if err != nil {
		c.logger.Debugf("Failed to decode %d parts as %s with %v", len(parts), t, err)
		return nil, err
	}
	return v, nil
}

func (c *BinaryCodec) lookup(t *Type) (kindCodec, error) {
	kind := t.Kind()
	if kind == 0 || kind >= kindCount || c.codecs[kind] == nil {
		return nil, newError(LookupFailure, nil, "no codec registered for kind %s", kind)
	}
	return c.codecs[kind], nil
}

func (c *BinaryCodec) valueCodec(v Value) (kindCodec, error) {
	if v == nil {
		return nil, shapeError(nil, "value must not be nil")
	}
	return c.lookup(v.Type())
}

func (c *BinaryCodec) encodeTopLevel(w *codec.Writer, v Value) error {
	kc, err := c.valueCodec(v)
	if err != nil {
		return err
	}
	return kc.encodeTopLevel(w, v)
}

func (c *BinaryCodec) encodeNested(w *codec.Writer, v Value) error {
	kc, err := c.valueCodec(v)
	if err != nil {
		return err
	}
	return kc.encodeNested(w, v)
}

func (c *BinaryCodec) decodeTopLevel(data []byte, t *Type) (Value, error) {
	kc, err := c.lookup(t)
	if err != nil {
		return nil, err
	}
	return kc.decodeTopLevel(data, t)
}

func (c *BinaryCodec) decodeNested(r *codec.Reader, t *Type) (Value, error) {
	kc, err := c.lookup(t)
	if err != nil {
		return nil, err
	}
	return kc.decodeNested(r, t)
}

func checkBufferLength(data []byte, t *Type) error {
	if len(data) > MaxBufferSize {
		err := newError(SizeLimitFailure, nil, "buffer of %d bytes exceeds %d bytes", len(data), MaxBufferSize)
		if t != nil {
			err.Type = t.String()
		}
		return err
	}
	return nil
}

// decodeAll decodes data with nested decoder and requires all bytes to be consumed.
func (c *BinaryCodec) decodeAll(data []byte, t *Type) (Value, error) {
	r := codec.NewReader(data)
	v, err := c.decodeNested(r, t)
	if err != nil {
		return nil, err
	}
	if r.HasUnreadBytes() {
		return nil, formatError(t, codec.ErrUnreadBytes, "%d bytes left after decoding", r.Remaining())
	}
	return v, nil
}
