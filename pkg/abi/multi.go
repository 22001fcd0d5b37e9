package abi

import (
	"strconv"
	"strings"

	"github.com/erdgo/abicodec/pkg/codec"
	"github.com/erdgo/abicodec/pkg/collection"
)

// MultiValue is an ordered sequence of independently encoded values,
// e.g. the arguments or the return slots of an endpoint.
type MultiValue struct {
	typ   *Type
	items []Value
}

// NewMulti returns multi value of type t.
// Items must match the element types index for index, or the repeated element type when t is variadic.
func NewMulti(t *Type, items ...Value) (*MultiValue, error) {
	if t.Kind() != KindMulti {
		return nil, shapeError(t, "expected multi type")
	}
	if err := checkMultiItems(t, items); err != nil {
		return nil, err
	}
	return &MultiValue{typ: t, items: collection.Copy(items)}, nil
}

// MultiOf returns fixed arity multi value of which type is derived from the items.
func MultiOf(items ...Value) (*MultiValue, error) {
	types := make([]*Type, len(items))
	for i, item := range items {
		if item == nil {
			return nil, withPath(shapeError(nil, "multi item must not be nil"), itemPath(i))
		}
		types[i] = item.Type()
	}
	return NewMulti(Multi(types...), items...)
}

func checkMultiItems(t *Type, items []Value) error {
	if !t.variadic && len(items) != len(t.elements) {
		return shapeError(t, "expected %d items but received %d", len(t.elements), len(items))
	}
	for i, item := range items {
		expected := t.elementAt(i)
		if item == nil {
			return withPath(shapeError(t, "multi item must not be nil"), itemPath(i))
		}
		if !item.Type().Equal(expected) {
			return withPath(shapeError(t, "item has type %s but expected %s", item.Type(), expected), itemPath(i))
		}
	}
	return nil
}

func (t *Type) elementAt(i int) *Type {
	if t.variadic {
		return t.elements[0]
	}
	return t.elements[i]
}

func (v *MultiValue) Type() *Type { return v.typ }
func (v *MultiValue) isValue()    {}

// Len returns number of items.
func (v *MultiValue) Len() int { return len(v.items) }

// At returns the item at index i, or nil if out of range.
func (v *MultiValue) At(i int) Value {
	if i < 0 || i >= len(v.items) {
		return nil
	}
	return v.items[i]
}

// Items returns copy of the items.
func (v *MultiValue) Items() []Value {
	return collection.Copy(v.items)
}

func (v *MultiValue) String() string {
	parts := make([]string, len(v.items))
	for i, item := range v.items {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func itemPath(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

type multiCodec struct {
	parent *BinaryCodec
}

func (multiCodec) cast(v Value) (*MultiValue, error) {
	multi, ok := v.(*MultiValue)
	if !ok {
		return nil, shapeError(v.Type(), "expected multi value but received %T", v)
	}
	if err := checkMultiItems(multi.typ, multi.items); err != nil {
		return nil, err
	}
	return multi, nil
}

// encodeTopLevel concatenates top level encoding of each item without separator.
func (c multiCodec) encodeTopLevel(w *codec.Writer, v Value) error {
	multi, err := c.cast(v)
	if err != nil {
		return err
	}
	items := codec.NewWriter()
	for i, item := range multi.items {
		if err := c.parent.encodeTopLevel(items, item); err != nil {
			return withPath(err, itemPath(i))
		}
	}
	w.WriteRaw(items.Result())
	return nil
}

// EncodeParts returns top level encoding of each item of a multi value separately.
func (c *BinaryCodec) EncodeParts(v *MultiValue) ([][]byte, error) {
	if _, err := (multiCodec{parent: c}).cast(v); err != nil {
		return nil, err
	}
	parts := make([][]byte, len(v.items))
	for i, item := range v.items {
		encoded, err := c.EncodeTopLevel(item)
		if err != nil {
			return nil, withPath(err, itemPath(i))
		}
		parts[i] = encoded
	}
	return parts, nil
}

func (multiCodec) encodeNested(w *codec.Writer, v Value) error {
	return newError(UnsupportedFailure, v.Type(), "multi value can only be encoded at top level")
}

// decodeTopLevel can only split data for at most one element.
// Multiple elements must be delimited by the caller and decoded with decodeParts.
func (c multiCodec) decodeTopLevel(data []byte, t *Type) (Value, error) {
	switch {
	case len(data) == 0 && (t.variadic || len(t.elements) == 0):
		return &MultiValue{typ: t, items: []Value{}}, nil
	case !t.variadic && len(t.elements) == 0:
		return nil, formatError(t, codec.ErrUnreadBytes, "expected no data but received %d bytes", len(data))
	case !t.variadic && len(t.elements) == 1:
		return c.decodeParts([][]byte{data}, t)
	default:
		return nil, newError(UnsupportedFailure, t, "multi value with more than one item requires delimited parts")
	}
}

func (multiCodec) decodeNested(r *codec.Reader, t *Type) (Value, error) {
	return nil, newError(UnsupportedFailure, t, "multi value can only be decoded at top level")
}

func (c multiCodec) decodeParts(parts [][]byte, t *Type) (*MultiValue, error) {
	if !t.variadic && len(parts) != len(t.elements) {
		return nil, formatError(t, nil, "expected %d parts but received %d", len(t.elements), len(parts))
	}
	items := make([]Value, len(parts))
	for i, part := range parts {
		item, err := c.parent.decodeTopLevel(part, t.elementAt(i))
		if err != nil {
			return nil, withPath(err, itemPath(i))
		}
		items[i] = item
	}
	return &MultiValue{typ: t, items: items}, nil
}
