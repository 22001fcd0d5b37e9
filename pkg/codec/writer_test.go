package codec

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteBool(t *testing.T) {
	cases := []struct {
		input  bool
		result string
	}{
		{
			input:  true,
			result: "01",
		},
		{
			input:  false,
			result: "00",
		},
	}
	for _, c := range cases {
		writer := NewWriter()
		writer.WriteBool(c.input)
		expected, err := hex.DecodeString(c.result)
		assert.Nil(t, err)
		assert.Equal(t, expected, writer.Result())
	}
}

func TestWriteUInts(t *testing.T) {
	writer := NewWriter()
	writer.WriteUInt16(0x0102)
	writer.WriteUInt32(5)
	writer.WriteUInt64(0xffffffffffffffff)
	assert.Equal(t, "0102"+"00000005"+"ffffffffffffffff", hex.EncodeToString(writer.Result()))
}

func TestWriteBytes(t *testing.T) {
	cases := []struct {
		input  []byte
		result string
	}{
		{
			input:  mustDecodeHex("e11a11364738225813f86ea85214400e5db08d6e"),
			result: "00000014e11a11364738225813f86ea85214400e5db08d6e",
		},
		{
			input:  []byte{},
			result: "00000000",
		},
	}
	for _, c := range cases {
		writer := NewWriter()
		err := writer.WriteBytes(c.input)
		assert.NoError(t, err)
		assert.Equal(t, c.result, hex.EncodeToString(writer.Result()))
	}
}

func TestWriteRaw(t *testing.T) {
	writer := NewWriter()
	writer.WriteRaw([]byte{1, 2})
	writer.WriteRaw(nil)
	_ = writer.WriteByte(3)
	assert.Equal(t, []byte{1, 2, 3}, writer.Result())
}
