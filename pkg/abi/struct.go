package abi

import (
	"strings"

	"github.com/erdgo/abicodec/pkg/codec"
	"github.com/erdgo/abicodec/pkg/collection"
)

// Field is a named value of a struct.
type Field struct {
	Name  string
	Value Value
}

// StructValue is an ordered sequence of named fields.
type StructValue struct {
	typ    *Type
	fields []Field
}

// NewStruct returns struct value of type t.
// Fields must match the field types of t in order and count.
func NewStruct(t *Type, fields ...Field) (*StructValue, error) {
	if t.Kind() != KindStruct {
		return nil, shapeError(t, "expected struct type")
	}
	if err := checkStructFields(t, fields); err != nil {
		return nil, err
	}
	return &StructValue{typ: t, fields: collection.Copy(fields)}, nil
}

func checkStructFields(t *Type, fields []Field) error {
	if len(fields) != len(t.fields) {
		return shapeError(t, "expected %d fields but received %d", len(t.fields), len(fields))
	}
	for i, field := range fields {
		expected := t.fields[i]
		if field.Name != expected.name {
			return shapeError(t, "field %d must be %q but received %q", i, expected.name, field.Name)
		}
		if field.Value == nil {
			return withPath(shapeError(t, "field value must not be nil"), field.Name)
		}
		if !field.Value.Type().Equal(expected.typ) {
			return withPath(shapeError(t, "field has type %s but expected %s", field.Value.Type(), expected.typ), field.Name)
		}
	}
	return nil
}

func (v *StructValue) Type() *Type { return v.typ }
func (v *StructValue) isValue()    {}

// Field returns value of the field with the name.
func (v *StructValue) Field(name string) (Value, bool) {
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Fields returns copy of the fields.
func (v *StructValue) Fields() []Field {
	return collection.Copy(v.fields)
}

func (v *StructValue) String() string {
	parts := make([]string, len(v.fields))
	for i, f := range v.fields {
		parts[i] = f.Name + ": " + f.Value.String()
	}
	return v.typ.name + "{" + strings.Join(parts, ", ") + "}"
}

type structCodec struct {
	parent *BinaryCodec
}

func (structCodec) cast(v Value) (*StructValue, error) {
	value, ok := v.(*StructValue)
	if !ok {
		return nil, shapeError(v.Type(), "expected struct value but received %T", v)
	}
	if err := checkStructFields(value.typ, value.fields); err != nil {
		return nil, err
	}
	return value, nil
}

// encodeTopLevel is the same as nested, since struct has no length marker.
func (c structCodec) encodeTopLevel(w *codec.Writer, v Value) error {
	return c.encodeNested(w, v)
}

func (c structCodec) encodeNested(w *codec.Writer, v Value) error {
	value, err := c.cast(v)
	if err != nil {
		return err
	}
	fields := codec.NewWriter()
	for _, f := range value.fields {
		if err := c.parent.encodeNested(fields, f.Value); err != nil {
			return withPath(err, f.Name)
		}
	}
	w.WriteRaw(fields.Result())
	return nil
}

func (c structCodec) decodeTopLevel(data []byte, t *Type) (Value, error) {
	return c.parent.decodeAll(data, t)
}

func (c structCodec) decodeNested(r *codec.Reader, t *Type) (Value, error) {
	fields := make([]Field, len(t.fields))
	for i, f := range t.fields {
		val, err := c.parent.decodeNested(r, f.typ)
		if err != nil {
			return nil, withPath(err, f.name)
		}
		fields[i] = Field{Name: f.name, Value: val}
	}
	return &StructValue{typ: t, fields: fields}, nil
}
