package codec

import (
	"encoding/binary"
	"unicode/utf8"
)

// Reader is responsible for reading big-endian data from a fixed buffer.
type Reader struct {
	index int
	end   int
	data  []byte
}

// NewReader returns reader with the data given.
func NewReader(data []byte) *Reader {
	return &Reader{
		data:  data,
		index: 0,
		end:   len(data),
	}
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.index >= r.end {
		return 0, ErrOutOfRange
	}
	val := r.data[r.index]
	r.index++
	return val, nil
}

// ReadBool reads a single byte and returns true for 0x01 and false for 0x00.
func (r *Reader) ReadBool() (bool, error) {
	val, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	switch val {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		r.index--
		return false, ErrInvalidData
	}
}

// ReadUInt16 reads uint16 with fixed size of 2.
func (r *Reader) ReadUInt16() (uint16, error) {
	b, err := r.ReadRaw(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadUInt32 reads uint32 with fixed size of 4.
func (r *Reader) ReadUInt32() (uint32, error) {
	b, err := r.ReadRaw(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadUInt64 reads uint64 with fixed size of 8.
func (r *Reader) ReadUInt64() (uint64, error) {
	b, err := r.ReadRaw(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// ReadRaw reads exactly size bytes. Returned slice is a copy.
func (r *Reader) ReadRaw(size int) ([]byte, error) {
	if size < 0 || size > r.end-r.index {
		return nil, ErrOutOfRange
	}
	result := make([]byte, size)
	copy(result, r.data[r.index:r.index+size])
	r.index += size
	return result, nil
}

// ReadBytes reads bytes prefixed with 4 bytes length.
func (r *Reader) ReadBytes() ([]byte, error) {
	start := r.index
	size, err := r.ReadUInt32()
	if err != nil {
		return nil, err
	}
	if int64(size) > int64(r.end-r.index) {
		r.index = start
		return nil, ErrOutOfRange
	}
	return r.ReadRaw(int(size))
}

// ReadString reads length prefixed string and checks it is valid utf8.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// Offset returns number of bytes already read.
func (r *Reader) Offset() int {
	return r.index
}

// Remaining returns number of bytes not read yet.
func (r *Reader) Remaining() int {
	return r.end - r.index
}

// HasUnreadBytes returns true if reader has not reached the end.
func (r *Reader) HasUnreadBytes() bool {
	return r.index < r.end
}
