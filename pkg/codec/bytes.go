package codec

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	bech32Charset   = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	bech32MaxLength = 90
	checksumLength  = 6
	// AddressHRP is the human readable part used for account and contract addresses.
	AddressHRP = "erd"
)

var (
	generator = [...]int{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
)

type Hex []byte

func HexArrayToBytesArray(val []Hex) [][]byte {
	converted := make([][]byte, len(val))
	for i, v := range val {
		converted[i] = v
	}
	return converted
}

func BytesArrayToHexArray(val [][]byte) []Hex {
	converted := make([]Hex, len(val))
	for i, v := range val {
		converted[i] = v
	}
	return converted
}

func (h *Hex) UnmarshalJSON(b []byte) error {
	str := ""
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	res, err := hex.DecodeString(str)
	if err != nil {
		return err
	}
	*h = res
	return nil
}

func (h Hex) String() string {
	return hex.EncodeToString(h)
}

func (h Hex) MarshalJSON() ([]byte, error) {
	str := hex.EncodeToString(h)
	return json.Marshal(str)
}

// Bech32 is an address which is represented with AddressHRP in json.
type Bech32 []byte

func (h *Bech32) UnmarshalJSON(b []byte) error {
	str := ""
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	hrp, res, err := Bech32ToBytes(str)
	if err != nil {
		return err
	}
	if hrp != AddressHRP {
		return fmt.Errorf("address must have prefix %s but received %s", AddressHRP, hrp)
	}
	*h = res
	return nil
}

func (h Bech32) MarshalJSON() ([]byte, error) {
	str, err := BytesToBech32(AddressHRP, h)
	if err != nil {
		return nil, err
	}
	return json.Marshal(str)
}

func (h Bech32) String() string {
	str, _ := BytesToBech32(AddressHRP, h)
	return str
}

// BytesToBech32 encodes val with the human readable part hrp.
func BytesToBech32(hrp string, val []byte) (string, error) {
	if len(hrp) == 0 {
		return "", fmt.Errorf("bech32 human readable part must not be empty")
	}
	if hrp != strings.ToLower(hrp) {
		return "", fmt.Errorf("bech32 human readable part must be lower case")
	}
	target := make([]int, len(val))
	for i, v := range val {
		target[i] = int(v)
	}
	uint5Arr, err := convertUIntArray(target, 8, 5, true)
	if err != nil {
		return "", err
	}
	checksum := createChecksum(hrp, uint5Arr)
	result := hrp + "1" + uint5ToBech32(append(uint5Arr, checksum...))
	if len(result) > bech32MaxLength {
		return "", fmt.Errorf("bech32 string must be at most %d but received %d", bech32MaxLength, len(result))
	}
	return result, nil
}

// Bech32ToBytes decodes bech32 string and returns human readable part and the data.
func Bech32ToBytes(val string) (string, []byte, error) {
	hrp, uint5Arr, err := decodeBech32(val)
	if err != nil {
		return "", nil, err
	}
	uint8Arr, err := convertUIntArray(uint5Arr[:len(uint5Arr)-checksumLength], 5, 8, false)
	if err != nil {
		return "", nil, err
	}
	result := make([]byte, len(uint8Arr))
	for i, v := range uint8Arr {
		result[i] = byte(v)
	}
	return hrp, result, nil
}

// ValidateBech32 checks the format and checksum of the val.
func ValidateBech32(val string) error {
	_, _, err := decodeBech32(val)
	return err
}

func decodeBech32(val string) (string, []int, error) {
	if len(val) > bech32MaxLength {
		return "", nil, fmt.Errorf("bech32 string must be at most %d but received %d", bech32MaxLength, len(val))
	}
	lower := strings.ToLower(val)
	if lower != val && strings.ToUpper(val) != val {
		return "", nil, fmt.Errorf("bech32 string must not have mixed case")
	}
	sep := strings.LastIndex(lower, "1")
	if sep < 1 || sep+checksumLength+1 > len(lower) {
		return "", nil, fmt.Errorf("bech32 string has invalid separator position %d", sep)
	}
	hrp := lower[:sep]
	for _, c := range hrp {
		if c < 33 || c > 126 {
			return "", nil, fmt.Errorf("bech32 human readable part includes invalid character %q", c)
		}
	}
	uint5Arr := []int{}
	for _, c := range lower[sep+1:] {
		index := strings.IndexRune(bech32Charset, c)
		if index < 0 {
			return "", nil, fmt.Errorf("bech32 string includes invalid character %s", string(c))
		}
		uint5Arr = append(uint5Arr, index)
	}
	if polymod(append(hrpExpand(hrp), uint5Arr...)) != 1 {
		return "", nil, ErrInvalidChecksum
	}
	return hrp, uint5Arr, nil
}

func convertUIntArray(
	uintArray []int,
	fromBits int,
	toBits int,
	pad bool,
) ([]int, error) {
	maxValue := (1 << toBits) - 1
	accumulator := 0
	bits := 0
	result := []int{}
	for p := 0; p < len(uintArray); p++ {
		value := uintArray[p]
		// check that the entry is a value between 0 and 2^frombits-1
		if value < 0 || value>>fromBits != 0 {
			return nil, ErrInvalidData
		}

		accumulator = ((accumulator << fromBits) | value) & ((1 << (fromBits + toBits - 1)) - 1)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			result = append(result, (accumulator>>bits)&maxValue)
		}
	}
	if pad {
		if bits > 0 {
			result = append(result, (accumulator<<(toBits-bits))&maxValue)
		}
		return result, nil
	}
	if bits >= fromBits || (accumulator<<(toBits-bits))&maxValue != 0 {
		return nil, ErrInvalidData
	}
	return result, nil
}

func hrpExpand(hrp string) []int {
	result := make([]int, 0, len(hrp)*2+1)
	for _, c := range hrp {
		result = append(result, int(c)>>5)
	}
	result = append(result, 0)
	for _, c := range hrp {
		result = append(result, int(c)&31)
	}
	return result
}

func createChecksum(hrp string, uint5Array []int) []int {
	values := append(hrpExpand(hrp), uint5Array...)
	values = append(values, make([]int, checksumLength)...)
	mod := polymod(values) ^ 1
	result := []int{}
	for p := 0; p < checksumLength; p++ {
		result = append(result, ((mod >> (5 * (5 - p))) & 31))
	}
	return result
}

// See for details: https://github.com/bitcoin/bips/blob/master/bip-0173.mediawiki#checksum
func polymod(uint5Array []int) int {
	chk := 1
	for _, value := range uint5Array {
		top := chk >> 25
		chk = ((chk & 0x1ffffff) << 5) ^ value
		for i := 0; i < 5; i += 1 {
			if (top>>i)&1 != 0 {
				chk ^= generator[i]
			}
		}
	}
	return chk
}

func uint5ToBech32(values []int) string {
	var result strings.Builder
	for _, v := range values {
		result.WriteByte(bech32Charset[v])
	}
	return result.String()
}
