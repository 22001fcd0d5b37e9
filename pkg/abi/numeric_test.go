package abi

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecodeHex(v string) []byte {
	decoded, err := hex.DecodeString(v)
	if err != nil {
		panic(err)
	}
	return decoded
}

func mustBigInt(v string) *big.Int {
	result, ok := new(big.Int).SetString(v, 10)
	if !ok {
		panic("invalid big int " + v)
	}
	return result
}

func mustNumeric(t *Type, v string) *NumericValue {
	result, err := NewNumericValue(t, mustBigInt(v))
	if err != nil {
		panic(err)
	}
	return result
}

func TestNumericEncoding(t *testing.T) {
	cases := []struct {
		typ      *Type
		value    string
		topLevel string
		nested   string
	}{
		{typ: U8(), value: "0", topLevel: "", nested: "00"},
		{typ: U8(), value: "255", topLevel: "ff", nested: "ff"},
		{typ: U16(), value: "256", topLevel: "0100", nested: "0100"},
		{typ: U32(), value: "0", topLevel: "", nested: "00000000"},
		{typ: U32(), value: "5", topLevel: "05", nested: "00000005"},
		{typ: U64(), value: "18446744073709551615", topLevel: "ffffffffffffffff", nested: "ffffffffffffffff"},
		{typ: I8(), value: "-1", topLevel: "ff", nested: "ff"},
		{typ: I8(), value: "127", topLevel: "7f", nested: "7f"},
		{typ: I8(), value: "-128", topLevel: "80", nested: "80"},
		{typ: I16(), value: "128", topLevel: "0080", nested: "0080"},
		{typ: I16(), value: "-129", topLevel: "ff7f", nested: "ff7f"},
		{typ: I32(), value: "-1", topLevel: "ff", nested: "ffffffff"},
		{typ: I32(), value: "255", topLevel: "00ff", nested: "000000ff"},
		{typ: I64(), value: "-256", topLevel: "ff00", nested: "ffffffffffffff00"},
		{typ: I64(), value: "-9223372036854775808", topLevel: "8000000000000000", nested: "8000000000000000"},
		{typ: BigUint(), value: "0", topLevel: "", nested: "00000000"},
		{typ: BigUint(), value: "256", topLevel: "0100", nested: "000000020100"},
		{typ: BigUint(), value: "18446744073709551616", topLevel: "010000000000000000", nested: "00000009010000000000000000"},
		{typ: BigInt(), value: "0", topLevel: "", nested: "00000000"},
		{typ: BigInt(), value: "-1", topLevel: "ff", nested: "00000001ff"},
		{typ: BigInt(), value: "128", topLevel: "0080", nested: "000000020080"},
		{typ: BigInt(), value: "-32769", topLevel: "ff7fff", nested: "00000003ff7fff"},
	}
	c := NewBinaryCodec()
	for _, testCase := range cases {
		value := mustNumeric(testCase.typ, testCase.value)
		name := testCase.typ.String() + " " + testCase.value

		topLevel, err := c.EncodeTopLevel(value)
		require.NoError(t, err, name)
		assert.Equal(t, testCase.topLevel, hex.EncodeToString(topLevel), name)

		nested, err := c.EncodeNested(value)
		require.NoError(t, err, name)
		assert.Equal(t, testCase.nested, hex.EncodeToString(nested), name)

		decoded, err := c.DecodeTopLevel(topLevel, testCase.typ)
		require.NoError(t, err, name)
		assert.True(t, Equal(value, decoded), name)

		decoded, consumed, err := c.DecodeNested(nested, testCase.typ)
		require.NoError(t, err, name)
		assert.True(t, Equal(value, decoded), name)
		assert.Equal(t, len(nested), consumed, name)
	}
}

func TestNumericDecodeTopLevel(t *testing.T) {
	cases := []struct {
		typ      *Type
		input    string
		expected string
		err      error
	}{
		{typ: U32(), input: "", expected: "0"},
		{typ: I8(), input: "", expected: "0"},
		{typ: BigUint(), input: "", expected: "0"},
		{typ: U16(), input: "0001", expected: "1"},
		{typ: BigUint(), input: "0001", expected: "1"},
		{typ: U32(), input: "80", expected: "128"},
		{typ: BigUint(), input: "ff", expected: "255"},
		{typ: I32(), input: "80", expected: "-128"},
		{typ: BigInt(), input: "00ff", expected: "255"},
		{typ: U8(), input: "0001", err: ErrInvalidFormat},
		{typ: U32(), input: "0000000001", err: ErrInvalidFormat},
	}
	c := NewBinaryCodec()
	for _, testCase := range cases {
		decoded, err := c.DecodeTopLevel(mustDecodeHex(testCase.input), testCase.typ)
		if testCase.err != nil {
			assert.ErrorIs(t, err, testCase.err)
			continue
		}
		require.NoError(t, err)
		numeric, ok := decoded.(*NumericValue)
		require.True(t, ok)
		assert.Equal(t, testCase.expected, numeric.String())
		assert.True(t, numeric.Type().Equal(testCase.typ))
	}
}

func TestNumericDecodeNestedTruncated(t *testing.T) {
	c := NewBinaryCodec()
	_, _, err := c.DecodeNested(mustDecodeHex("000000"), U32())
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = c.DecodeNested(mustDecodeHex("00000003ffff"), BigUint())
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = c.DecodeNested(mustDecodeHex("0000"), BigInt())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestNumericDecodeNestedConsumesFixedWidth(t *testing.T) {
	c := NewBinaryCodec()
	decoded, consumed, err := c.DecodeNested(mustDecodeHex("0102030405"), U16())
	require.NoError(t, err)
	assert.Equal(t, 2, consumed)
	assert.Equal(t, "258", decoded.String())
}

func TestNewNumericValue(t *testing.T) {
	cases := []struct {
		typ   *Type
		value string
		ok    bool
	}{
		{typ: U8(), value: "255", ok: true},
		{typ: U8(), value: "256", ok: false},
		{typ: U8(), value: "-1", ok: false},
		{typ: I8(), value: "127", ok: true},
		{typ: I8(), value: "128", ok: false},
		{typ: I8(), value: "-128", ok: true},
		{typ: I8(), value: "-129", ok: false},
		{typ: U64(), value: "18446744073709551616", ok: false},
		{typ: BigUint(), value: "-1", ok: false},
		{typ: BigUint(), value: "340282366920938463463374607431768211456", ok: true},
		{typ: BigInt(), value: "-340282366920938463463374607431768211456", ok: true},
		{typ: Boolean(), value: "1", ok: false},
	}
	for _, testCase := range cases {
		_, err := NewNumericValue(testCase.typ, mustBigInt(testCase.value))
		if testCase.ok {
			assert.NoError(t, err, testCase.value)
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidShape, testCase.value)
	}

	_, err := NewNumericValue(U8(), nil)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestNumericAccessors(t *testing.T) {
	value := NewU64(42)
	u, ok := value.Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(42), u)

	i, ok := NewI16(-3).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(-3), i)

	copied := value.Int()
	copied.SetInt64(7)
	assert.Equal(t, "42", value.String())

	large, err := NewBigUint(mustBigInt("18446744073709551616"))
	require.NoError(t, err)
	_, ok = large.Uint64()
	assert.False(t, ok)

	assert.Equal(t, "0", NewBigInt(nil).String())
	assert.True(t, NewI8(-1).Type().Equal(I8()))
	assert.True(t, NewU16(1).Type().Equal(U16()))
	assert.True(t, NewU32(1).Type().Equal(U32()))
	assert.True(t, NewI32(1).Type().Equal(I32()))
	assert.True(t, NewU8(1).Type().Equal(U8()))
}

func TestNumericEncodeOutOfRange(t *testing.T) {
	c := NewBinaryCodec()
	invalid := &NumericValue{typ: U8(), value: big.NewInt(300)}
	_, err := c.EncodeTopLevel(invalid)
	assert.ErrorIs(t, err, ErrInvalidShape)
	_, err = c.EncodeNested(invalid)
	assert.ErrorIs(t, err, ErrInvalidShape)
}
