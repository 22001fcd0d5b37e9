package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erdgo/abicodec/pkg/abi"
)

const (
	aliceHex    = "0139472eff6886771a982f3083da5d421f24c29181e63888228dc81ca60d69e1"
	aliceBech32 = "erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th"
	adderBech32 = "erd1qqqqqqqqqqqqqpgqak8zt22wl2ph4tswtyc39namqx6ysa2sd8ss4xmlj3"
)

func TestNewQueryRequest(t *testing.T) {
	contract, err := abi.AddressFromBech32(adderBech32)
	require.NoError(t, err)
	caller, err := abi.AddressFromBech32(aliceBech32)
	require.NoError(t, err)

	req, err := NewQueryRequest(contract, "getPayment", caller, abi.NewU64(7), abi.BytesFromUTF8("a"))
	require.NoError(t, err)
	assert.Equal(t, adderBech32, req.ScAddress)
	assert.Equal(t, aliceBech32, req.Caller)
	assert.Equal(t, []string{"07", "61"}, req.Args)

	encoded, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"scAddress": "`+adderBech32+`",
		"funcName": "getPayment",
		"caller": "`+aliceBech32+`",
		"args": ["07", "61"]
	}`, string(encoded))

	req, err = NewQueryRequest(contract, "getSum", nil)
	require.NoError(t, err)
	assert.Empty(t, req.Caller)
	assert.Empty(t, req.Args)

	_, err = NewQueryRequest(nil, "getSum", nil)
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = NewQueryRequest(contract, "", nil)
	assert.ErrorIs(t, err, ErrEmptyFunction)
}

func TestQueryArguments(t *testing.T) {
	args, err := QueryArguments(abi.NewU32(0), abi.NewI8(-1), abi.NewBoolean(false))
	require.NoError(t, err)
	assert.Equal(t, []string{"", "ff", ""}, args)
}

func TestDecodeQueryResult(t *testing.T) {
	stats := abi.Multi(abi.U32(), abi.Boolean())
	cases := []struct {
		name       string
		returnData []string
		out        *abi.Type
		expected   string
	}{
		{name: "single slot", returnData: []string{"BQ=="}, out: abi.U32(), expected: "5"},
		{name: "no slot is zero", returnData: []string{}, out: abi.BigUint(), expected: "0"},
		{name: "no slot is absent", returnData: nil, out: abi.Option(abi.U32()), expected: "None"},
		{name: "empty boolean slot", returnData: []string{""}, out: abi.Boolean(), expected: "false"},
		{name: "true boolean slot", returnData: []string{"AQ=="}, out: abi.Boolean(), expected: "true"},
		{name: "present option slot", returnData: []string{"AQAAAAU="}, out: abi.Option(abi.U32()), expected: "Some(5)"},
		{name: "multi slots", returnData: []string{"BQ==", "AQ=="}, out: stats, expected: "[5, true]"},
		{name: "optional multi slots", returnData: []string{"BQ==", ""}, out: abi.Option(stats), expected: "Some([5, false])"},
		{name: "optional multi without slot", returnData: []string{}, out: abi.Option(stats), expected: "None"},
		{name: "variadic slots", returnData: []string{"BQ==", "Bg==", "Bw=="}, out: abi.Variadic(abi.U8()), expected: "[5, 6, 7]"},
		{name: "variadic without slot", returnData: []string{}, out: abi.Variadic(abi.U8()), expected: "[]"},
		{name: "single slot multi", returnData: []string{"BQ=="}, out: abi.Multi(abi.U32()), expected: "[5]"},
	}
	for _, testCase := range cases {
		value, err := DecodeQueryResult(testCase.returnData, testCase.out)
		require.NoError(t, err, testCase.name)
		assert.Equal(t, testCase.expected, value.String(), testCase.name)
		assert.True(t, testCase.out.Equal(value.Type()), testCase.name)
	}
}

func TestDecodeQueryResultErrors(t *testing.T) {
	_, err := DecodeQueryResult([]string{"BQ==", "Bg=="}, abi.U32())
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = DecodeQueryResult([]string{"%%%"}, abi.U32())
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = DecodeQueryResult([]string{"BQ==", "%%%"}, abi.Multi(abi.U8(), abi.U8()))
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = DecodeQueryResult([]string{"BQ=="}, abi.Multi(abi.U8(), abi.U8()))
	assert.ErrorIs(t, err, abi.ErrInvalidFormat)

	_, err = DecodeQueryResult([]string{"AAE="}, abi.U8())
	assert.ErrorIs(t, err, abi.ErrInvalidFormat)
}

func TestDecodeQueryResultArray(t *testing.T) {
	values, err := DecodeQueryResultArray([]string{"BQ==", "", "Bw=="}, abi.U32())
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, "5", values[0].String())
	assert.Equal(t, "0", values[1].String())
	assert.Equal(t, "7", values[2].String())

	values, err = DecodeQueryResultArray(nil, abi.U32())
	assert.NoError(t, err)
	assert.Nil(t, values)

	_, err = DecodeQueryResultArray([]string{"BQ==", "AAAAAAE="}, abi.U32())
	assert.ErrorIs(t, err, abi.ErrInvalidFormat)

	_, err = DecodeQueryResultArray([]string{"%%%"}, abi.U32())
	assert.ErrorIs(t, err, ErrInvalidData)
}
