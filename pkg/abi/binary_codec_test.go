package abi

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"github.com/erdgo/abicodec/pkg/log"
)

func flagType() *Type {
	return Struct("Flagged",
		NewFieldType("amount", U32()),
		NewFieldType("flag", Boolean()),
	)
}

func TestBinaryCodecStructScenario(t *testing.T) {
	c := NewBinaryCodec()
	value, err := NewStruct(flagType(),
		Field{Name: "amount", Value: NewU32(0)},
		Field{Name: "flag", Value: NewBoolean(true)},
	)
	require.NoError(t, err)

	encoded, err := c.EncodeNested(value)
	require.NoError(t, err)
	assert.Equal(t, "0000000001", hex.EncodeToString(encoded))

	decoded, consumed, err := c.DecodeNested(encoded, flagType())
	require.NoError(t, err)
	assert.Equal(t, 5, consumed)
	assert.True(t, Equal(value, decoded))
}

func TestBinaryCodecAllKindsRegistered(t *testing.T) {
	c := NewBinaryCodec()
	for kind := KindNumeric; kind < kindCount; kind++ {
		assert.NotNil(t, c.codecs[kind], kind.String())
	}
}

func TestBinaryCodecLookupFailure(t *testing.T) {
	c := NewBinaryCodec()

	_, err := c.DecodeTopLevel([]byte{}, &Type{})
	assert.ErrorIs(t, err, ErrNoCodec)

	_, _, err = c.DecodeNested([]byte{}, nil)
	assert.ErrorIs(t, err, ErrNoCodec)

	_, err = c.DecodeTopLevel([]byte{}, &Type{kind: kindCount})
	assert.ErrorIs(t, err, ErrNoCodec)

	_, err = c.EncodeTopLevel(nil)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = c.EncodeNested(&NumericValue{typ: &Type{}})
	assert.ErrorIs(t, err, ErrNoCodec)
}

func TestBinaryCodecBufferLimit(t *testing.T) {
	c := NewBinaryCodec()
	tooLarge := make([]byte, MaxBufferSize+1)
	limit := make([]byte, MaxBufferSize)

	_, err := c.DecodeTopLevel(tooLarge, Bytes())
	assert.ErrorIs(t, err, ErrBufferTooLarge)

	_, _, err = c.DecodeNested(tooLarge, Bytes())
	assert.ErrorIs(t, err, ErrBufferTooLarge)

	_, err = c.DecodeTopLevelMulti([][]byte{{0x01}, tooLarge}, Multi(U8(), Bytes()))
	assert.ErrorIs(t, err, ErrBufferTooLarge)

	decoded, err := c.DecodeTopLevel(limit, Bytes())
	require.NoError(t, err)
	assert.Len(t, decoded.(*BytesValue).Bytes(), MaxBufferSize)

	// encoding is not capped
	encoded, err := c.EncodeNested(NewBytes(tooLarge))
	require.NoError(t, err)
	assert.Len(t, encoded, MaxBufferSize+5)
}

func TestBinaryCodecErrorKinds(t *testing.T) {
	c := NewBinaryCodec()
	cases := []struct {
		name string
		run  func() error
		kind ErrorKind
	}{
		{
			name: "lookup",
			run: func() error {
				_, err := c.DecodeTopLevel(nil, &Type{})
				return err
			},
			kind: LookupFailure,
		},
		{
			name: "size",
			run: func() error {
				_, err := c.DecodeTopLevel(make([]byte, MaxBufferSize+1), U8())
				return err
			},
			kind: SizeLimitFailure,
		},
		{
			name: "shape",
			run: func() error {
				_, err := c.EncodeTopLevel(&NumericValue{typ: U8(), value: mustBigInt("-1")})
				return err
			},
			kind: ShapeFailure,
		},
		{
			name: "format",
			run: func() error {
				_, _, err := c.DecodeNested([]byte{0x00}, U16())
				return err
			},
			kind: FormatFailure,
		},
		{
			name: "unsupported",
			run: func() error {
				_, _, err := c.DecodeNested([]byte{}, Multi())
				return err
			},
			kind: UnsupportedFailure,
		},
	}
	for _, testCase := range cases {
		err := testCase.run()
		var abiErr *Error
		require.True(t, errors.As(err, &abiErr), testCase.name)
		assert.Equal(t, testCase.kind, abiErr.Kind, testCase.name)
		assert.Contains(t, err.Error(), "["+string(testCase.kind)+"]", testCase.name)
	}
}

func TestBinaryCodecLogsDecodeFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewBinaryCodec(WithLogger(log.NewFromZap(zap.New(core))))

	_, err := c.DecodeTopLevel([]byte{0x02}, Boolean())
	require.Error(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "Failed to decode top level bool")

	_, err = c.DecodeTopLevel([]byte{0x01}, Boolean())
	require.NoError(t, err)
	assert.Equal(t, 1, logs.Len())
}

func TestBinaryCodecConcurrentUse(t *testing.T) {
	c := NewBinaryCodec()
	eg := new(errgroup.Group)
	for i := 0; i < 32; i++ {
		i := i
		eg.Go(func() error {
			value, err := NewStruct(flagType(),
				Field{Name: "amount", Value: NewU32(uint32(i))},
				Field{Name: "flag", Value: NewBoolean(i%2 == 0)},
			)
			if err != nil {
				return err
			}
			encoded, err := c.EncodeTopLevel(value)
			if err != nil {
				return err
			}
			decoded, err := c.DecodeTopLevel(encoded, flagType())
			if err != nil {
				return err
			}
			if !Equal(value, decoded) {
				return fmt.Errorf("round trip mismatch for %d", i)
			}
			return nil
		})
	}
	assert.NoError(t, eg.Wait())
}
