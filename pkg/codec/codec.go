// Package codec implements the low level big-endian buffer used by the smart contract ABI codec
// and the bech32 text representation of addresses defined in [BIP-0173].
//
// [BIP-0173]: https://github.com/bitcoin/bips/blob/master/bip-0173.mediawiki
package codec

// MaxLength is the maximum length which can be written in a 4 bytes length prefix.
const MaxLength = 1<<32 - 1
