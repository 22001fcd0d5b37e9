// Package abi implements the binary encoding of smart contract values.
//
// Each value has a top level encoding, used when the value is a standalone argument or return slot,
// and a nested encoding, used when the value is embedded in a struct or an option.
//
//	c := abi.NewBinaryCodec()
//	data, err := c.EncodeTopLevel(abi.NewU32(5)) // 05
//	v, n, err := c.DecodeNested(data, abi.U32()) // needs 4 bytes
//
// All multi bytes fixed width fields are big-endian. The wire format has no type information,
// and decoding relies on the caller providing the correct type.
package abi
