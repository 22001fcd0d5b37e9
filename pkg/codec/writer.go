package codec

import (
	"encoding/binary"
)

// Writer is responsible for writing big-endian data into an owned buffer.
// A Writer must not be shared between concurrent encoders.
type Writer struct {
	result []byte
}

// NewWriter returns a new instances of a writer.
func NewWriter() *Writer {
	return &Writer{
		result: []byte{},
	}
}

// WriteByte writes a single byte to result.
func (w *Writer) WriteByte(data byte) error {
	w.result = append(w.result, data)
	return nil
}

// WriteBool writes a boolean as a single byte to result.
func (w *Writer) WriteBool(data bool) {
	if data {
		_ = w.WriteByte(0x01)
		return
	}
	_ = w.WriteByte(0x00)
}

// WriteUInt16 writes uint16 with fixed size of 2.
func (w *Writer) WriteUInt16(data uint16) {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, data)
	w.WriteRaw(b)
}

// WriteUInt32 writes uint32 with fixed size of 4.
func (w *Writer) WriteUInt32(data uint32) {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, data)
	w.WriteRaw(b)
}

// WriteUInt64 writes uint64 with fixed size of 8.
func (w *Writer) WriteUInt64(data uint64) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, data)
	w.WriteRaw(b)
}

// WriteRaw writes bytes to result without length prefix.
func (w *Writer) WriteRaw(data []byte) {
	w.result = append(w.result, data...)
}

// WriteBytes writes bytes to result prefixed with 4 bytes length.
func (w *Writer) WriteBytes(data []byte) error {
	if uint64(len(data)) > MaxLength {
		return ErrOutOfRange
	}
	w.WriteUInt32(uint32(len(data)))
	w.WriteRaw(data)
	return nil
}

// Result returns the written bytes.
func (w *Writer) Result() []byte {
	return w.result
}
