package definition

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/erdgo/abicodec/pkg/abi"
)

const (
	hexPrefix  = "0x"
	utf8Prefix = "str:"
)

// ErrInvalidLiteral is returned when a literal cannot be parsed as the requested type.
var ErrInvalidLiteral = errors.New("invalid literal")

// ParseValue parses literal as a value of type t.
//
// Numbers are decimal or 0x prefixed hex. Bytes are hex, or UTF-8 text when prefixed with "str:".
// Addresses are bech32 or 64 hex characters. Absent options are "", "None" or "null".
// Multi values are JSON arrays and struct values are JSON objects keyed by field name.
func ParseValue(t *abi.Type, literal string) (abi.Value, error) {
	switch t.Kind() {
	case abi.KindOption:
		if isNone(literal) {
			return abi.NewNone(t.Inner()), nil
		}
		inner, err := ParseValue(t.Inner(), literal)
		if err != nil {
			return nil, err
		}
		return abi.NewOptionValue(t, inner)
	case abi.KindMulti, abi.KindStruct:
		decoder := json.NewDecoder(strings.NewReader(literal))
		decoder.UseNumber()
		var node interface{}
		if err := decoder.Decode(&node); err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrInvalidLiteral, t, err)
		}
		if decoder.More() {
			return nil, fmt.Errorf("%w %s: trailing data", ErrInvalidLiteral, t)
		}
		return fromNode(t, node)
	default:
		return parseScalar(t, literal)
	}
}

// ParseArguments parses literals against the endpoint argument types.
// A trailing variadic type takes all remaining literals.
func ParseArguments(types []*abi.Type, literals []string) ([]abi.Value, error) {
	values := make([]abi.Value, 0, len(types))
	for i, t := range types {
		if t.IsVariadic() && i == len(types)-1 {
			elem := t.Elements()[0]
			items := []abi.Value{}
			for j := i; j < len(literals); j++ {
				item, err := ParseValue(elem, literals[j])
				if err != nil {
					return nil, fmt.Errorf("argument %d: %w", j, err)
				}
				items = append(items, item)
			}
			multi, err := abi.NewMulti(t, items...)
			if err != nil {
				return nil, err
			}
			return append(values, multi), nil
		}
		if i >= len(literals) {
			return nil, fmt.Errorf("%w: expected %d arguments but received %d", ErrInvalidLiteral, len(types), len(literals))
		}
		value, err := ParseValue(t, literals[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		values = append(values, value)
	}
	if len(literals) > len(types) {
		return nil, fmt.Errorf("%w: expected %d arguments but received %d", ErrInvalidLiteral, len(types), len(literals))
	}
	return values, nil
}

func isNone(literal string) bool {
	return literal == "" || literal == "None" || literal == "null"
}

func fromNode(t *abi.Type, node interface{}) (abi.Value, error) {
	switch t.Kind() {
	case abi.KindOption:
		if node == nil {
			return abi.NewNone(t.Inner()), nil
		}
		inner, err := fromNode(t.Inner(), node)
		if err != nil {
			return nil, err
		}
		return abi.NewOptionValue(t, inner)
	case abi.KindMulti:
		list, ok := node.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w %s: expected array", ErrInvalidLiteral, t)
		}
		items := make([]abi.Value, len(list))
		elements := t.Elements()
		if !t.IsVariadic() && len(list) != len(elements) {
			return nil, fmt.Errorf("%w %s: expected %d items but received %d", ErrInvalidLiteral, t, len(elements), len(list))
		}
		for i, item := range list {
			elem := elements[0]
			if !t.IsVariadic() {
				elem = elements[i]
			}
			value, err := fromNode(elem, item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = value
		}
		return abi.NewMulti(t, items...)
	case abi.KindStruct:
		object, ok := node.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w %s: expected object", ErrInvalidLiteral, t)
		}
		fieldTypes := t.Fields()
		if len(object) != len(fieldTypes) {
			return nil, fmt.Errorf("%w %s: expected %d fields but received %d", ErrInvalidLiteral, t, len(fieldTypes), len(object))
		}
		fields := make([]abi.Field, len(fieldTypes))
		for i, fieldType := range fieldTypes {
			item, exist := object[fieldType.Name()]
			if !exist {
				return nil, fmt.Errorf("%w %s: missing field %s", ErrInvalidLiteral, t, fieldType.Name())
			}
			value, err := fromNode(fieldType.Type(), item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fieldType.Name(), err)
			}
			fields[i] = abi.Field{Name: fieldType.Name(), Value: value}
		}
		return abi.NewStruct(t, fields...)
	}
	switch v := node.(type) {
	case string:
		return parseScalar(t, v)
	case json.Number:
		return parseScalar(t, v.String())
	case bool:
		return parseScalar(t, strconv.FormatBool(v))
	default:
		return nil, fmt.Errorf("%w %s: unexpected %T", ErrInvalidLiteral, t, node)
	}
}

func parseScalar(t *abi.Type, literal string) (abi.Value, error) {
	switch t.Kind() {
	case abi.KindNumeric:
		v, ok := parseInteger(literal)
		if !ok {
			return nil, fmt.Errorf("%w %s: %q is not an integer", ErrInvalidLiteral, t, literal)
		}
		return abi.NewNumericValue(t, v)
	case abi.KindBoolean:
		v, err := strconv.ParseBool(literal)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %q", ErrInvalidLiteral, t, literal)
		}
		return abi.NewBoolean(v), nil
	case abi.KindBytes:
		if strings.HasPrefix(literal, utf8Prefix) {
			return abi.BytesFromUTF8(strings.TrimPrefix(literal, utf8Prefix)), nil
		}
		return abi.BytesFromHex(strings.TrimPrefix(literal, hexPrefix))
	case abi.KindAddress:
		trimmed := strings.TrimPrefix(literal, hexPrefix)
		if len(trimmed) == hex.EncodedLen(abi.AddressLength) {
			if _, err := hex.DecodeString(trimmed); err == nil {
				return abi.AddressFromHex(trimmed)
			}
		}
		return abi.AddressFromBech32(literal)
	case abi.KindTokenIdentifier:
		return abi.NewTokenIdentifier(literal)
	default:
		return nil, fmt.Errorf("%w %s: not a scalar type", ErrInvalidLiteral, t)
	}
}

func parseInteger(literal string) (*big.Int, bool) {
	negative := strings.HasPrefix(literal, "-")
	digits := strings.TrimPrefix(literal, "-")
	base := 10
	if strings.HasPrefix(digits, hexPrefix) {
		digits = strings.TrimPrefix(digits, hexPrefix)
		base = 16
	}
	if digits == "" || strings.HasPrefix(digits, "+") || strings.HasPrefix(digits, "-") {
		return nil, false
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, false
	}
	if negative {
		v.Neg(v)
	}
	return v, true
}

// Native converts v into plain Go values suitable for JSON output.
// Numbers become decimal strings, bytes become hex and addresses become bech32.
// The result is accepted back by ParseValue.
func Native(v abi.Value) interface{} {
	switch value := v.(type) {
	case *abi.NumericValue:
		return value.String()
	case *abi.BooleanValue:
		return value.Value()
	case *abi.BytesValue:
		return value.String()
	case *abi.AddressValue:
		return value.String()
	case *abi.TokenIdentifierValue:
		return value.String()
	case *abi.OptionValue:
		if !value.IsSet() {
			return nil
		}
		return Native(value.Inner())
	case *abi.MultiValue:
		items := make([]interface{}, value.Len())
		for i, item := range value.Items() {
			items[i] = Native(item)
		}
		return items
	case *abi.StructValue:
		fields := map[string]interface{}{}
		for _, field := range value.Fields() {
			fields[field.Name] = Native(field.Value)
		}
		return fields
	default:
		return nil
	}
}
