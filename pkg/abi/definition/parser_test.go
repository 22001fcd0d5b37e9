package definition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erdgo/abicodec/pkg/abi"
)

func TestParseType(t *testing.T) {
	cases := []struct {
		input    string
		expected *abi.Type
	}{
		{input: "u8", expected: abi.U8()},
		{input: "u64", expected: abi.U64()},
		{input: "i16", expected: abi.I16()},
		{input: "usize", expected: abi.U32()},
		{input: "isize", expected: abi.I32()},
		{input: "BigUint", expected: abi.BigUint()},
		{input: "BigInt", expected: abi.BigInt()},
		{input: "bool", expected: abi.Boolean()},
		{input: "bytes", expected: abi.Bytes()},
		{input: "Address", expected: abi.Address()},
		{input: "TokenIdentifier", expected: abi.TokenIdentifier()},
		{input: "Option<u32>", expected: abi.Option(abi.U32())},
		{input: " Option < Option<bytes> > ", expected: abi.Option(abi.Option(abi.Bytes()))},
		{input: "multi<Address,bool>", expected: abi.Multi(abi.Address(), abi.Boolean())},
		{input: "multi<u8, BigUint, bytes>", expected: abi.Multi(abi.U8(), abi.BigUint(), abi.Bytes())},
		{input: "multi<>", expected: abi.Multi()},
		{input: "variadic<bytes>", expected: abi.Variadic(abi.Bytes())},
		{input: "variadic<multi<u64,Address>>", expected: abi.Variadic(abi.Multi(abi.U64(), abi.Address()))},
	}
	for _, testCase := range cases {
		result, err := ParseType(testCase.input)
		require.NoError(t, err, testCase.input)
		assert.True(t, testCase.expected.Equal(result), "%s parsed as %s", testCase.input, result)
	}
}

func TestParseTypeRoundTrip(t *testing.T) {
	for _, expr := range []string{"u32", "Option<BigInt>", "multi<u32,bool>", "variadic<Option<Address>>"} {
		result, err := ParseType(expr)
		require.NoError(t, err)
		assert.Equal(t, expr, result.String())
	}
}

func TestParseTypeErrors(t *testing.T) {
	cases := []struct {
		input string
		err   error
	}{
		{input: "", err: ErrInvalidExpression},
		{input: "Option<>", err: ErrInvalidExpression},
		{input: "Option<u8,u16>", err: ErrInvalidExpression},
		{input: "Option<u8", err: ErrInvalidExpression},
		{input: "multi", err: ErrInvalidExpression},
		{input: "variadic<>", err: ErrInvalidExpression},
		{input: "u32<u8>", err: ErrInvalidExpression},
		{input: "u32 u8", err: ErrInvalidExpression},
		{input: "multi<u8;u16>", err: ErrInvalidExpression},
		{input: "u128", err: ErrUnknownType},
		{input: "Payment", err: ErrUnknownType},
		{input: "Option<Payment>", err: ErrUnknownType},
	}
	for _, testCase := range cases {
		_, err := ParseType(testCase.input)
		assert.ErrorIs(t, err, testCase.err, testCase.input)
	}
}
