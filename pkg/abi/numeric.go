package abi

import (
	"math/big"

	"github.com/erdgo/abicodec/pkg/codec"
)

// NumericValue is a signed or unsigned integer.
type NumericValue struct {
	typ   *Type
	value *big.Int
}

// NewNumericValue returns numeric value of type t.
// It fails if v does not fit the width of t or v is negative for unsigned type.
func NewNumericValue(t *Type, v *big.Int) (*NumericValue, error) {
	if t.Kind() != KindNumeric {
		return nil, shapeError(t, "expected numeric type")
	}
	if v == nil {
		return nil, shapeError(t, "numeric value must not be nil")
	}
	if !fits(t, v) {
		return nil, shapeError(t, "value %s is out of range", v)
	}
	return &NumericValue{typ: t, value: new(big.Int).Set(v)}, nil
}

// NewU8 to NewI64 return fixed width values, which always fit their type.
func NewU8(v uint8) *NumericValue   { return newFixed(u8Type, new(big.Int).SetUint64(uint64(v))) }
func NewU16(v uint16) *NumericValue { return newFixed(u16Type, new(big.Int).SetUint64(uint64(v))) }
func NewU32(v uint32) *NumericValue { return newFixed(u32Type, new(big.Int).SetUint64(uint64(v))) }
func NewU64(v uint64) *NumericValue { return newFixed(u64Type, new(big.Int).SetUint64(v)) }
func NewI8(v int8) *NumericValue    { return newFixed(i8Type, big.NewInt(int64(v))) }
func NewI16(v int16) *NumericValue  { return newFixed(i16Type, big.NewInt(int64(v))) }
func NewI32(v int32) *NumericValue  { return newFixed(i32Type, big.NewInt(int64(v))) }
func NewI64(v int64) *NumericValue  { return newFixed(i64Type, big.NewInt(v)) }

// NewBigUint returns arbitrary precision unsigned value. v must not be negative.
func NewBigUint(v *big.Int) (*NumericValue, error) {
	return NewNumericValue(bigUintType, v)
}

// NewBigInt returns arbitrary precision signed value. Nil is treated as zero.
func NewBigInt(v *big.Int) *NumericValue {
	if v == nil {
		return newFixed(bigIntType, new(big.Int))
	}
	return newFixed(bigIntType, new(big.Int).Set(v))
}

func newFixed(t *Type, v *big.Int) *NumericValue {
	return &NumericValue{typ: t, value: v}
}

func (v *NumericValue) Type() *Type { return v.typ }
func (v *NumericValue) isValue()    {}

// Int returns a copy of the value.
func (v *NumericValue) Int() *big.Int {
	return new(big.Int).Set(v.value)
}

// Uint64 returns the value and false if it does not fit uint64.
func (v *NumericValue) Uint64() (uint64, bool) {
	return v.value.Uint64(), v.value.IsUint64()
}

// Int64 returns the value and false if it does not fit int64.
func (v *NumericValue) Int64() (int64, bool) {
	return v.value.Int64(), v.value.IsInt64()
}

func (v *NumericValue) String() string {
	return v.value.String()
}

func fits(t *Type, v *big.Int) bool {
	if !t.signed {
		if v.Sign() < 0 {
			return false
		}
		return t.bits == 0 || v.BitLen() <= t.bits
	}
	if t.bits == 0 {
		return true
	}
	// -2^(bits-1) <= v <= 2^(bits-1)-1
	if v.Sign() >= 0 {
		return v.BitLen() < t.bits
	}
	return new(big.Int).Not(v).BitLen() < t.bits
}

// minimalBytes returns the shortest big-endian representation.
// Zero is empty, signed values are in two's complement.
func minimalBytes(v *big.Int, signed bool) []byte {
	if v.Sign() == 0 {
		return []byte{}
	}
	if !signed {
		return v.Bytes()
	}
	bitLen := v.BitLen()
	if v.Sign() < 0 {
		bitLen = new(big.Int).Not(v).BitLen()
	}
	return twosComplement(v, bitLen/8+1)
}

// twosComplement returns v in size bytes. v must fit the size.
func twosComplement(v *big.Int, size int) []byte {
	result := make([]byte, size)
	if v.Sign() >= 0 {
		return v.FillBytes(result)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(size*8))
	return mod.Add(mod, v).FillBytes(result)
}

func fromBytes(data []byte, signed bool) *big.Int {
	result := new(big.Int).SetBytes(data)
	if signed && len(data) > 0 && data[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(data)*8))
		result.Sub(result, mod)
	}
	return result
}

type numericCodec struct{}

func (numericCodec) cast(v Value) (*NumericValue, error) {
	numeric, ok := v.(*NumericValue)
	if !ok {
		return nil, shapeError(v.Type(), "expected numeric value but received %T", v)
	}
	if !fits(numeric.typ, numeric.value) {
		return nil, shapeError(numeric.typ, "value %s is out of range", numeric.value)
	}
	return numeric, nil
}

func (c numericCodec) encodeTopLevel(w *codec.Writer, v Value) error {
	numeric, err := c.cast(v)
	if err != nil {
		return err
	}
	w.WriteRaw(minimalBytes(numeric.value, numeric.typ.signed))
	return nil
}

func (c numericCodec) encodeNested(w *codec.Writer, v Value) error {
	numeric, err := c.cast(v)
	if err != nil {
		return err
	}
	if numeric.typ.IsBig() {
		if err := w.WriteBytes(minimalBytes(numeric.value, numeric.typ.signed)); err != nil {
			return shapeError(numeric.typ, "value is too large")
		}
		return nil
	}
	writeFixed(w, numeric)
	return nil
}

// writeFixed writes the value in the width of its type in two's complement.
func writeFixed(w *codec.Writer, v *NumericValue) {
	var bits uint64
	if v.value.Sign() < 0 {
		bits = uint64(v.value.Int64())
	} else {
		bits = v.value.Uint64()
	}
	switch v.typ.bits {
	case 8:
		_ = w.WriteByte(uint8(bits))
	case 16:
		w.WriteUInt16(uint16(bits))
	case 32:
		w.WriteUInt32(uint32(bits))
	default:
		w.WriteUInt64(bits)
	}
}

func readFixed(r *codec.Reader, t *Type) (*big.Int, error) {
	var (
		bits uint64
		err  error
	)
	switch t.bits {
	case 8:
		var b byte
		b, err = r.ReadByte()
		bits = uint64(b)
	case 16:
		var u uint16
		u, err = r.ReadUInt16()
		bits = uint64(u)
	case 32:
		var u uint32
		u, err = r.ReadUInt32()
		bits = uint64(u)
	default:
		bits, err = r.ReadUInt64()
	}
	if err != nil {
		return nil, err
	}
	if !t.signed {
		return new(big.Int).SetUint64(bits), nil
	}
	shift := 64 - t.bits
	return big.NewInt(int64(bits<<shift) >> shift), nil
}

func (numericCodec) decodeTopLevel(data []byte, t *Type) (Value, error) {
	if !t.IsBig() && len(data) > t.Size() {
		return nil, formatError(t, codec.ErrOutOfRange, "expected at most %d bytes but received %d", t.Size(), len(data))
	}
	return &NumericValue{typ: t, value: fromBytes(data, t.signed)}, nil
}

func (numericCodec) decodeNested(r *codec.Reader, t *Type) (Value, error) {
	if !t.IsBig() {
		value, err := readFixed(r, t)
		if err != nil {
			return nil, formatError(t, err, "buffer too short at offset %d", r.Offset())
		}
		return &NumericValue{typ: t, value: value}, nil
	}
	data, err := r.ReadBytes()
	if err != nil {
		return nil, formatError(t, err, "buffer too short at offset %d", r.Offset())
	}
	return &NumericValue{typ: t, value: fromBytes(data, t.signed)}, nil
}
