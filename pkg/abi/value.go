package abi

import (
	"bytes"
)

// Value is a typed smart contract value.
// The set of implementations is closed to the variants of this package.
type Value interface {
	// Type returns the descriptor of the value.
	Type() *Type
	// String returns human readable representation.
	String() string

	isValue()
}

// Equal returns true if a and b have equal type and payload.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !a.Type().Equal(b.Type()) {
		return false
	}
	switch x := a.(type) {
	case *NumericValue:
		y, ok := b.(*NumericValue)
		return ok && x.value.Cmp(y.value) == 0
	case *BooleanValue:
		y, ok := b.(*BooleanValue)
		return ok && x.value == y.value
	case *BytesValue:
		y, ok := b.(*BytesValue)
		return ok && bytes.Equal(x.data, y.data)
	case *AddressValue:
		y, ok := b.(*AddressValue)
		return ok && x.data == y.data
	case *TokenIdentifierValue:
		y, ok := b.(*TokenIdentifierValue)
		return ok && x.identifier == y.identifier
	case *OptionValue:
		y, ok := b.(*OptionValue)
		return ok && Equal(x.inner, y.inner)
	case *MultiValue:
		y, ok := b.(*MultiValue)
		if !ok || len(x.items) != len(y.items) {
			return false
		}
		for i := range x.items {
			if !Equal(x.items[i], y.items[i]) {
				return false
			}
		}
		return true
	case *StructValue:
		y, ok := b.(*StructValue)
		if !ok || len(x.fields) != len(y.fields) {
			return false
		}
		for i := range x.fields {
			if x.fields[i].Name != y.fields[i].Name || !Equal(x.fields[i].Value, y.fields[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
