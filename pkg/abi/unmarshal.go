package abi

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/fatih/structtag"
)

const tagName = "abi"

var reflectBigInt = reflect.TypeOf(big.Int{})

// Unmarshal stores the value v into out, which must be a non nil pointer.
//
// Struct values are mapped onto exported Go struct fields by the `abi:"name"` tag, or by the
// case insensitive field name when the tag is missing. Fields tagged with "-" are skipped.
// Absent options set the target to its zero value.
func Unmarshal(v Value, out interface{}) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("unmarshal target must be a non nil pointer")
	}
	if v == nil {
		return errors.New("unmarshal value must not be nil")
	}
	return assign(v, rv.Elem())
}

func assign(v Value, target reflect.Value) error {
	if target.Kind() == reflect.Interface && reflect.TypeOf(v).Implements(target.Type()) {
		target.Set(reflect.ValueOf(v))
		return nil
	}
	if option, ok := v.(*OptionValue); ok {
		if option.inner == nil {
			target.Set(reflect.Zero(target.Type()))
			return nil
		}
		return assign(option.inner, target)
	}
	if target.Kind() == reflect.Ptr {
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		return assign(v, target.Elem())
	}
	switch value := v.(type) {
	case *NumericValue:
		return assignNumeric(value, target)
	case *BooleanValue:
		if target.Kind() == reflect.Bool {
			target.SetBool(value.value)
			return nil
		}
	case *BytesValue:
		switch {
		case isByteSlice(target.Type()):
			target.SetBytes(value.Bytes())
			return nil
		case target.Kind() == reflect.String:
			target.SetString(string(value.data))
			return nil
		}
	case *AddressValue:
		switch {
		case isByteSlice(target.Type()):
			target.SetBytes(value.Bytes())
			return nil
		case target.Kind() == reflect.Array && target.Len() == AddressLength && target.Type().Elem().Kind() == reflect.Uint8:
			reflect.Copy(target, reflect.ValueOf(value.data[:]))
			return nil
		case target.Kind() == reflect.String:
			target.SetString(value.String())
			return nil
		}
	case *TokenIdentifierValue:
		if target.Kind() == reflect.String {
			target.SetString(value.identifier)
			return nil
		}
	case *MultiValue:
		return assignSequence(value, target)
	case *StructValue:
		if target.Kind() == reflect.Struct && target.Type() != reflectBigInt {
			return assignStruct(value, target)
		}
	}
	return mismatch(v, target)
}

func assignNumeric(v *NumericValue, target reflect.Value) error {
	switch target.Kind() {
	case reflect.Struct:
		if target.Type() == reflectBigInt && target.CanAddr() {
			target.Addr().Interface().(*big.Int).Set(v.value)
			return nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !v.value.IsInt64() || target.OverflowInt(v.value.Int64()) {
			return fmt.Errorf("value %s overflows %s", v.value, target.Type())
		}
		target.SetInt(v.value.Int64())
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !v.value.IsUint64() || target.OverflowUint(v.value.Uint64()) {
			return fmt.Errorf("value %s overflows %s", v.value, target.Type())
		}
		target.SetUint(v.value.Uint64())
		return nil
	case reflect.String:
		target.SetString(v.value.String())
		return nil
	}
	return mismatch(v, target)
}

func assignSequence(v *MultiValue, target reflect.Value) error {
	switch target.Kind() {
	case reflect.Slice:
		result := reflect.MakeSlice(target.Type(), len(v.items), len(v.items))
		for i, item := range v.items {
			if err := assign(item, result.Index(i)); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		target.Set(result)
		return nil
	case reflect.Array:
		if target.Len() != len(v.items) {
			return fmt.Errorf("cannot assign %d items to %s", len(v.items), target.Type())
		}
		for i, item := range v.items {
			if err := assign(item, target.Index(i)); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	}
	return mismatch(v, target)
}

func assignStruct(v *StructValue, target reflect.Value) error {
	targetType := target.Type()
	for i := 0; i < targetType.NumField(); i++ {
		field := targetType.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name, tagged := fieldName(field)
		if name == "-" {
			continue
		}
		value, exist := lookupField(v, name, tagged)
		if !exist {
			continue
		}
		if err := assign(value, target.Field(i)); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}

func fieldName(field reflect.StructField) (string, bool) {
	tags, err := structtag.Parse(string(field.Tag))
	if err != nil || tags == nil {
		return field.Name, false
	}
	tag, err := tags.Get(tagName)
	if err != nil || tag.Name == "" {
		return field.Name, false
	}
	return tag.Name, true
}

func lookupField(v *StructValue, name string, exact bool) (Value, bool) {
	if value, exist := v.Field(name); exist || exact {
		return value, exist
	}
	for _, f := range v.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return nil, false
}

func isByteSlice(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

func mismatch(v Value, target reflect.Value) error {
	return fmt.Errorf("cannot assign %s to %s", v.Type(), target.Type())
}
