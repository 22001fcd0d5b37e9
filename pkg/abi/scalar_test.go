package abi

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceHex    = "0139472eff6886771a982f3083da5d421f24c29181e63888228dc81ca60d69e1"
	aliceBech32 = "erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th"
)

func TestBooleanEncoding(t *testing.T) {
	c := NewBinaryCodec()

	cases := []struct {
		value    bool
		topLevel string
		nested   string
	}{
		{value: true, topLevel: "01", nested: "01"},
		{value: false, topLevel: "", nested: "00"},
	}
	for _, testCase := range cases {
		topLevel, err := c.EncodeTopLevel(NewBoolean(testCase.value))
		require.NoError(t, err)
		assert.Equal(t, testCase.topLevel, hex.EncodeToString(topLevel))

		nested, err := c.EncodeNested(NewBoolean(testCase.value))
		require.NoError(t, err)
		assert.Equal(t, testCase.nested, hex.EncodeToString(nested))

		decoded, err := c.DecodeTopLevel(topLevel, Boolean())
		require.NoError(t, err)
		assert.Equal(t, testCase.value, decoded.(*BooleanValue).Value())

		decoded, consumed, err := c.DecodeNested(nested, Boolean())
		require.NoError(t, err)
		assert.Equal(t, 1, consumed)
		assert.Equal(t, testCase.value, decoded.(*BooleanValue).Value())
	}
}

func TestBooleanDecodeInvalid(t *testing.T) {
	c := NewBinaryCodec()

	// nested false is not a valid top level encoding
	_, err := c.DecodeTopLevel([]byte{0x00}, Boolean())
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = c.DecodeTopLevel([]byte{0x01, 0x01}, Boolean())
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = c.DecodeNested([]byte{0x02}, Boolean())
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = c.DecodeNested([]byte{}, Boolean())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestBytesEncoding(t *testing.T) {
	c := NewBinaryCodec()

	cases := []struct {
		input    []byte
		topLevel string
		nested   string
	}{
		{input: []byte{}, topLevel: "", nested: "00000000"},
		{input: []byte("abc"), topLevel: "616263", nested: "00000003616263"},
		{input: []byte{0x00, 0xff}, topLevel: "00ff", nested: "0000000200ff"},
	}
	for _, testCase := range cases {
		value := NewBytes(testCase.input)

		topLevel, err := c.EncodeTopLevel(value)
		require.NoError(t, err)
		assert.Equal(t, testCase.topLevel, hex.EncodeToString(topLevel))

		nested, err := c.EncodeNested(value)
		require.NoError(t, err)
		assert.Equal(t, testCase.nested, hex.EncodeToString(nested))

		decoded, err := c.DecodeTopLevel(topLevel, Bytes())
		require.NoError(t, err)
		assert.True(t, Equal(value, decoded))

		decoded, consumed, err := c.DecodeNested(nested, Bytes())
		require.NoError(t, err)
		assert.Equal(t, len(nested), consumed)
		assert.True(t, Equal(value, decoded))
	}
}

func TestBytesDecodeNestedInvalid(t *testing.T) {
	c := NewBinaryCodec()

	_, _, err := c.DecodeNested(mustDecodeHex("000000"), Bytes())
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = c.DecodeNested(mustDecodeHex("0000000561"), Bytes())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestBytesConstructors(t *testing.T) {
	source := []byte{1, 2, 3}
	value := NewBytes(source)
	source[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, value.Bytes())

	returned := value.Bytes()
	returned[1] = 9
	assert.Equal(t, "010203", value.String())

	fromHex, err := BytesFromHex("cafe")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xca, 0xfe}, fromHex.Bytes())

	_, err = BytesFromHex("xyz")
	assert.ErrorIs(t, err, ErrInvalidShape)

	// decomposed e with acute accent is normalized to the composed form
	assert.Equal(t, []byte("\u00e9"), BytesFromUTF8("e\u0301").Bytes())
}

func TestAddressEncoding(t *testing.T) {
	c := NewBinaryCodec()
	address, err := AddressFromHex(aliceHex)
	require.NoError(t, err)

	topLevel, err := c.EncodeTopLevel(address)
	require.NoError(t, err)
	assert.Equal(t, aliceHex, hex.EncodeToString(topLevel))

	nested, err := c.EncodeNested(address)
	require.NoError(t, err)
	assert.Equal(t, topLevel, nested)

	decoded, err := c.DecodeTopLevel(topLevel, Address())
	require.NoError(t, err)
	assert.True(t, Equal(address, decoded))

	withTail := append(nested, 0x01)
	decoded, consumed, err := c.DecodeNested(withTail, Address())
	require.NoError(t, err)
	assert.Equal(t, AddressLength, consumed)
	assert.True(t, Equal(address, decoded))

	_, err = c.DecodeTopLevel(withTail, Address())
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = c.DecodeNested(topLevel[:31], Address())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestAddressConversion(t *testing.T) {
	address, err := AddressFromBech32(aliceBech32)
	require.NoError(t, err)
	assert.Equal(t, aliceHex, address.Hex())
	assert.Equal(t, aliceBech32, address.String())

	text, err := address.Bech32("erd")
	require.NoError(t, err)
	assert.Equal(t, aliceBech32, text)

	_, err = NewAddress(make([]byte, 20))
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = AddressFromBech32("erd1invalid")
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = AddressFromHex("0139")
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = AddressFromHex("zz")
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestTokenIdentifier(t *testing.T) {
	cases := []struct {
		input string
		valid bool
	}{
		{input: "USDC-abc123", valid: true},
		{input: "EGLD", valid: true},
		{input: "WEGLD-bd4d79", valid: true},
		{input: "AB", valid: false},
		{input: "ABCDEFGHIJK", valid: false},
		{input: "usdc-abc123", valid: false},
		{input: "USDC-ABC123", valid: false},
		{input: "USDC-abc12", valid: false},
		{input: "USDC_abc123", valid: false},
		{input: "", valid: false},
	}
	for _, testCase := range cases {
		_, err := NewTokenIdentifier(testCase.input)
		if testCase.valid {
			assert.NoError(t, err, testCase.input)
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidShape, testCase.input)
	}
}

func TestTokenIdentifierEncoding(t *testing.T) {
	c := NewBinaryCodec()
	token, err := NewTokenIdentifier("USDC-abc123")
	require.NoError(t, err)
	assert.Equal(t, "USDC", token.Ticker())

	topLevel, err := c.EncodeTopLevel(token)
	require.NoError(t, err)
	assert.Equal(t, []byte("USDC-abc123"), topLevel)

	nested, err := c.EncodeNested(token)
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0, 0, 0, 11}, []byte("USDC-abc123")...), nested)

	decoded, err := c.DecodeTopLevel(topLevel, TokenIdentifier())
	require.NoError(t, err)
	assert.True(t, Equal(token, decoded))

	decoded, consumed, err := c.DecodeNested(nested, TokenIdentifier())
	require.NoError(t, err)
	assert.Equal(t, 15, consumed)
	assert.True(t, Equal(token, decoded))

	_, err = c.DecodeTopLevel([]byte("not a token"), TokenIdentifier())
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = c.DecodeTopLevel([]byte{0xff, 0xfe, 0xfd}, TokenIdentifier())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
