package codec

import "errors"

var (
	// ErrInvalidData represents general invalid data.
	ErrInvalidData = errors.New("invalid data")
	// ErrOutOfRange represents logic accessing data in out of range.
	ErrOutOfRange = errors.New("out of range")
	// ErrInvalidUTF8 represents string data which is not valid utf8.
	ErrInvalidUTF8 = errors.New("invalid utf8 string")
	// ErrInvalidChecksum represents bech32 string with wrong checksum.
	ErrInvalidChecksum = errors.New("invalid checksum")
	// ErrUnreadBytes represents extra bytes not read.
	ErrUnreadBytes = errors.New("unread bytes exist")
)
