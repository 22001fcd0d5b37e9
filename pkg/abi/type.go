package abi

import (
	"strconv"
	"strings"

	"github.com/erdgo/abicodec/pkg/collection"
)

// Kind is the tag of a type descriptor.
type Kind uint8

const (
	KindNumeric Kind = iota + 1
	KindBoolean
	KindBytes
	KindAddress
	KindTokenIdentifier
	KindOption
	KindMulti
	KindStruct

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindBoolean:
		return "boolean"
	case KindBytes:
		return "bytes"
	case KindAddress:
		return "address"
	case KindTokenIdentifier:
		return "tokenIdentifier"
	case KindOption:
		return "option"
	case KindMulti:
		return "multi"
	case KindStruct:
		return "struct"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Type describes the shape of a value.
// Type is immutable once constructed, and safe to share.
type Type struct {
	kind     Kind
	name     string
	bits     int
	signed   bool
	inner    *Type
	elements []*Type
	variadic bool
	fields   []FieldType
}

// FieldType is a named field of a struct type.
type FieldType struct {
	name string
	typ  *Type
}

// NewFieldType returns a struct field descriptor.
func NewFieldType(name string, typ *Type) FieldType {
	return FieldType{name: name, typ: typ}
}

func (f FieldType) Name() string { return f.name }
func (f FieldType) Type() *Type  { return f.typ }

var (
	u8Type              = &Type{kind: KindNumeric, bits: 8}
	u16Type             = &Type{kind: KindNumeric, bits: 16}
	u32Type             = &Type{kind: KindNumeric, bits: 32}
	u64Type             = &Type{kind: KindNumeric, bits: 64}
	i8Type              = &Type{kind: KindNumeric, bits: 8, signed: true}
	i16Type             = &Type{kind: KindNumeric, bits: 16, signed: true}
	i32Type             = &Type{kind: KindNumeric, bits: 32, signed: true}
	i64Type             = &Type{kind: KindNumeric, bits: 64, signed: true}
	bigUintType         = &Type{kind: KindNumeric}
	bigIntType          = &Type{kind: KindNumeric, signed: true}
	booleanType         = &Type{kind: KindBoolean}
	bytesType           = &Type{kind: KindBytes}
	addressType         = &Type{kind: KindAddress}
	tokenIdentifierType = &Type{kind: KindTokenIdentifier}
)

// U8 to TokenIdentifier return the shared descriptors of the scalar types.
func U8() *Type              { return u8Type }
func U16() *Type             { return u16Type }
func U32() *Type             { return u32Type }
func U64() *Type             { return u64Type }
func I8() *Type              { return i8Type }
func I16() *Type             { return i16Type }
func I32() *Type             { return i32Type }
func I64() *Type             { return i64Type }
func BigUint() *Type         { return bigUintType }
func BigInt() *Type          { return bigIntType }
func Boolean() *Type         { return booleanType }
func Bytes() *Type           { return bytesType }
func Address() *Type         { return addressType }
func TokenIdentifier() *Type { return tokenIdentifierType }

// Option returns a type which is either absent or holds a value of inner.
func Option(inner *Type) *Type {
	return &Type{kind: KindOption, inner: inner}
}

// Multi returns a fixed arity multi type.
func Multi(elements ...*Type) *Type {
	return &Type{kind: KindMulti, elements: collection.Copy(elements)}
}

// Variadic returns a multi type where element is repeated any number of times.
func Variadic(element *Type) *Type {
	return &Type{kind: KindMulti, elements: []*Type{element}, variadic: true}
}

// Struct returns a struct type with ordered fields.
// Field lookup by name returns the first match.
func Struct(name string, fields ...FieldType) *Type {
	return &Type{kind: KindStruct, name: name, fields: collection.Copy(fields)}
}

// Kind returns the tag of the type. Nil type returns zero kind.
func (t *Type) Kind() Kind {
	if t == nil {
		return 0
	}
	return t.kind
}

// Name returns name of the struct type.
func (t *Type) Name() string { return t.name }

// Bits returns width of numeric type. 0 means arbitrary precision.
func (t *Type) Bits() int { return t.bits }

// Signed returns true for signed numeric type.
func (t *Type) Signed() bool { return t.signed }

// IsBig returns true for arbitrary precision numeric type.
func (t *Type) IsBig() bool { return t.kind == KindNumeric && t.bits == 0 }

// Size returns fixed nested size in bytes for numeric type, or 0.
func (t *Type) Size() int { return t.bits / 8 }

// Inner returns the inner type of option.
func (t *Type) Inner() *Type { return t.inner }

// IsVariadic returns true if multi type repeats a single element type.
func (t *Type) IsVariadic() bool { return t.variadic }

// Elements returns element types of multi type.
func (t *Type) Elements() []*Type {
	return collection.Copy(t.elements)
}

// Fields returns field types of struct type.
func (t *Type) Fields() []FieldType {
	return collection.Copy(t.fields)
}

// Field returns the field type with the name.
func (t *Type) Field(name string) (*Type, bool) {
	for _, f := range t.fields {
		if f.name == name {
			return f.typ, true
		}
	}
	return nil, false
}

// Equal returns true if both types are structurally the same.
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.kind != other.kind ||
		t.name != other.name ||
		t.bits != other.bits ||
		t.signed != other.signed ||
		t.variadic != other.variadic ||
		len(t.elements) != len(other.elements) ||
		len(t.fields) != len(other.fields) {
		return false
	}
	if (t.inner != nil || other.inner != nil) && !t.inner.Equal(other.inner) {
		return false
	}
	for i, e := range t.elements {
		if !e.Equal(other.elements[i]) {
			return false
		}
	}
	for i, f := range t.fields {
		if f.name != other.fields[i].name || !f.typ.Equal(other.fields[i].typ) {
			return false
		}
	}
	return true
}

// String returns the type expression, e.g. Option<u32> or multi<BigUint,bool>.
func (t *Type) String() string {
	var b strings.Builder
	t.write(&b, false)
	return b.String()
}

// Key returns a structural representation usable as map key.
// Two types have the same key if and only if they are equal.
func (t *Type) Key() string {
	var b strings.Builder
	t.write(&b, true)
	return b.String()
}

func (t *Type) write(b *strings.Builder, full bool) {
	if t == nil {
		b.WriteString("<nil>")
		return
	}
	switch t.kind {
	case KindNumeric:
		switch {
		case t.bits == 0 && t.signed:
			b.WriteString("BigInt")
		case t.bits == 0:
			b.WriteString("BigUint")
		case t.signed:
			b.WriteString("i" + strconv.Itoa(t.bits))
		default:
			b.WriteString("u" + strconv.Itoa(t.bits))
		}
	case KindBoolean:
		b.WriteString("bool")
	case KindBytes:
		b.WriteString("bytes")
	case KindAddress:
		b.WriteString("Address")
	case KindTokenIdentifier:
		b.WriteString("TokenIdentifier")
	case KindOption:
		b.WriteString("Option<")
		t.inner.write(b, full)
		b.WriteByte('>')
	case KindMulti:
		if t.variadic {
			b.WriteString("variadic<")
		} else {
			b.WriteString("multi<")
		}
		for i, e := range t.elements {
			if i > 0 {
				b.WriteByte(',')
			}
			e.write(b, full)
		}
		b.WriteByte('>')
	case KindStruct:
		b.WriteString(t.name)
		if !full && t.name != "" {
			return
		}
		b.WriteByte('{')
		for i, f := range t.fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(f.name))
			b.WriteByte(':')
			f.typ.write(b, full)
		}
		b.WriteByte('}')
	default:
		b.WriteString(t.kind.String())
	}
}
