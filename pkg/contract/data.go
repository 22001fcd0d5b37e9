// Package contract builds transaction data of contract calls and decodes query results.
package contract

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/erdgo/abicodec/pkg/abi"
)

const (
	// VMType is the virtual machine identifier of WASM contracts.
	VMType = "0500"
	// ESDTTransferFunction is the builtin function transferring fungible tokens.
	ESDTTransferFunction = "ESDTTransfer"

	argumentSeparator = "@"
)

var (
	// ErrEmptyFunction is returned when the function name is missing.
	ErrEmptyFunction = errors.New("function name must not be empty")
	// ErrEmptyCode is returned when the deploy code is missing.
	ErrEmptyCode = errors.New("contract code must not be empty")
	// ErrInvalidData is returned when the call data cannot be split into function and arguments.
	ErrInvalidData = errors.New("invalid call data")
)

var binaryCodec = abi.NewBinaryCodec()

// CodeMetadata holds the properties of deployed code.
type CodeMetadata struct {
	Upgradeable            bool
	Readable               bool
	Payable                bool
	PayableBySmartContract bool
}

// DefaultCodeMetadata is upgradeable code.
var DefaultCodeMetadata = CodeMetadata{Upgradeable: true}

// Bytes returns the two bytes representation.
func (m CodeMetadata) Bytes() []byte {
	result := []byte{0, 0}
	if m.Upgradeable {
		result[0] |= 0x01
	}
	if m.Readable {
		result[0] |= 0x04
	}
	if m.Payable {
		result[1] |= 0x02
	}
	if m.PayableBySmartContract {
		result[1] |= 0x04
	}
	return result
}

func (m CodeMetadata) String() string {
	return hex.EncodeToString(m.Bytes())
}

// EncodeArguments returns hex of the top level encoding of each argument.
func EncodeArguments(args ...abi.Value) ([]string, error) {
	result := make([]string, 0, len(args))
	for i, arg := range args {
		multi, ok := arg.(*abi.MultiValue)
		if !ok {
			encoded, err := binaryCodec.EncodeTopLevel(arg)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			result = append(result, hex.EncodeToString(encoded))
			continue
		}
		// each item of a multi value is a separate argument
		parts, err := binaryCodec.EncodeParts(multi)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		for _, part := range parts {
			result = append(result, hex.EncodeToString(part))
		}
	}
	return result, nil
}

// CallData returns the data of a contract call, function@arg@arg.
func CallData(function string, args ...abi.Value) (string, error) {
	if function == "" {
		return "", ErrEmptyFunction
	}
	return AppendArguments(function, args...)
}

// DeployData returns the data of a contract deployment, code@0500@metadata@arg.
func DeployData(code []byte, metadata CodeMetadata, args ...abi.Value) (string, error) {
	if len(code) == 0 {
		return "", ErrEmptyCode
	}
	data := strings.Join([]string{hex.EncodeToString(code), VMType, metadata.String()}, argumentSeparator)
	return AppendArguments(data, args...)
}

// UpgradeData returns the data of a contract upgrade, upgradeContract@code@metadata@arg.
func UpgradeData(code []byte, metadata CodeMetadata, args ...abi.Value) (string, error) {
	if len(code) == 0 {
		return "", ErrEmptyCode
	}
	data := strings.Join([]string{"upgradeContract", hex.EncodeToString(code), metadata.String()}, argumentSeparator)
	return AppendArguments(data, args...)
}

// ESDTTransferData returns the data transferring amount of token.
// When function is not empty, the transfer calls the function of the receiving contract with args.
func ESDTTransferData(token *abi.TokenIdentifierValue, amount *abi.NumericValue, function string, args ...abi.Value) (string, error) {
	if token == nil || amount == nil {
		return "", fmt.Errorf("%w: token and amount are required", ErrInvalidData)
	}
	transferArgs := []abi.Value{token, amount}
	if function != "" {
		transferArgs = append(transferArgs, abi.BytesFromUTF8(function))
		transferArgs = append(transferArgs, args...)
	} else if len(args) > 0 {
		return "", ErrEmptyFunction
	}
	return CallData(ESDTTransferFunction, transferArgs...)
}

// AppendArguments appends the encoded args to data.
func AppendArguments(data string, args ...abi.Value) (string, error) {
	encoded, err := EncodeArguments(args...)
	if err != nil {
		return "", err
	}
	if len(encoded) == 0 {
		return data, nil
	}
	return data + argumentSeparator + strings.Join(encoded, argumentSeparator), nil
}

// ParseCallData splits data into the function and raw arguments.
func ParseCallData(data string) (string, [][]byte, error) {
	parts := strings.Split(data, argumentSeparator)
	if parts[0] == "" {
		return "", nil, ErrEmptyFunction
	}
	args := make([][]byte, len(parts)-1)
	for i, part := range parts[1:] {
		decoded, err := hex.DecodeString(part)
		if err != nil {
			return "", nil, fmt.Errorf("%w: argument %d is not hex: %v", ErrInvalidData, i, err)
		}
		args[i] = decoded
	}
	return parts[0], args, nil
}

// DecodeCallArguments decodes raw arguments against the endpoint argument types.
// A multi type takes one argument per element and a trailing variadic type takes all remaining arguments.
func DecodeCallArguments(args [][]byte, types []*abi.Type) ([]abi.Value, error) {
	values := make([]abi.Value, 0, len(types))
	cursor := 0
	for i, t := range types {
		if t.Kind() == abi.KindMulti {
			n := len(t.Elements())
			if t.IsVariadic() && i == len(types)-1 {
				n = len(args) - cursor
			}
			if cursor+n > len(args) {
				return nil, fmt.Errorf("%w: argument %d requires %d parts but received %d", ErrInvalidData, i, n, len(args)-cursor)
			}
			multi, err := binaryCodec.DecodeTopLevelMulti(args[cursor:cursor+n], t)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			values = append(values, multi)
			cursor += n
			continue
		}
		if cursor >= len(args) {
			return nil, fmt.Errorf("%w: expected more than %d arguments", ErrInvalidData, len(args))
		}
		value, err := binaryCodec.DecodeTopLevel(args[cursor], t)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		values = append(values, value)
		cursor++
	}
	if cursor < len(args) {
		return nil, fmt.Errorf("%w: %d arguments left after decoding", ErrInvalidData, len(args)-cursor)
	}
	return values, nil
}

// EncodeData returns base64 of data as carried by transactions.
func EncodeData(data string) string {
	return base64.StdEncoding.EncodeToString([]byte(data))
}

// DecodeData returns the data from base64.
func DecodeData(encoded string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return string(decoded), nil
}
