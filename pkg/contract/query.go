package contract

import (
	"encoding/base64"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/erdgo/abicodec/pkg/abi"
)

// QueryRequest is the body of a read only contract query.
type QueryRequest struct {
	ScAddress string   `json:"scAddress"`
	FuncName  string   `json:"funcName"`
	Caller    string   `json:"caller,omitempty"`
	Value     string   `json:"value,omitempty"`
	Args      []string `json:"args"`
}

// QueryResponse holds the base64 encoded return slots of a query.
type QueryResponse struct {
	ReturnData    []string `json:"returnData"`
	ReturnCode    string   `json:"returnCode"`
	ReturnMessage string   `json:"returnMessage"`
}

// QueryArguments returns hex of the top level encoding of each argument.
func QueryArguments(args ...abi.Value) ([]string, error) {
	return EncodeArguments(args...)
}

// NewQueryRequest returns query of function of the contract. caller is optional.
func NewQueryRequest(contract *abi.AddressValue, function string, caller *abi.AddressValue, args ...abi.Value) (*QueryRequest, error) {
	if contract == nil {
		return nil, fmt.Errorf("%w: contract address is required", ErrInvalidData)
	}
	if function == "" {
		return nil, ErrEmptyFunction
	}
	encoded, err := QueryArguments(args...)
	if err != nil {
		return nil, err
	}
	req := &QueryRequest{
		ScAddress: contract.String(),
		FuncName:  function,
		Args:      encoded,
	}
	if caller != nil {
		req.Caller = caller.String()
	}
	return req, nil
}

// DecodeQueryResult decodes the return slots as a value of type out.
//
// No slot decodes an empty buffer, so an absent option, a zero number or false is returned.
// When out is a multi, or an option of multi, each slot is decoded as one item.
// An empty slot of a boolean is false.
func DecodeQueryResult(returnData []string, out *abi.Type) (abi.Value, error) {
	if len(returnData) == 0 {
		return binaryCodec.DecodeTopLevel([]byte{}, out)
	}
	target, optional := out, false
	if out.Kind() == abi.KindOption && out.Inner().Kind() == abi.KindMulti {
		target, optional = out.Inner(), true
	}
	if target.Kind() != abi.KindMulti {
		if len(returnData) > 1 {
			return nil, fmt.Errorf("%w: received %d return slots for %s", ErrInvalidData, len(returnData), out)
		}
		slot, err := decodeSlot(returnData[0])
		if err != nil {
			return nil, err
		}
		return binaryCodec.DecodeTopLevel(slot, out)
	}
	parts := make([][]byte, len(returnData))
	for i, encoded := range returnData {
		slot, err := decodeSlot(encoded)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		parts[i] = slot
	}
	multi, err := binaryCodec.DecodeTopLevelMulti(parts, target)
	if err != nil {
		return nil, err
	}
	if optional {
		return abi.NewOptionValue(out, multi)
	}
	return multi, nil
}

// DecodeQueryResultArray decodes every return slot as a value of type out.
// It returns nil when there is no slot.
func DecodeQueryResultArray(returnData []string, out *abi.Type) ([]abi.Value, error) {
	if len(returnData) == 0 {
		return nil, nil
	}
	result := make([]abi.Value, len(returnData))
	eg := new(errgroup.Group)
	for i, encoded := range returnData {
		i, encoded := i, encoded
		eg.Go(func() error {
			slot, err := decodeSlot(encoded)
			if err != nil {
				return fmt.Errorf("slot %d: %w", i, err)
			}
			value, err := binaryCodec.DecodeTopLevel(slot, out)
			if err != nil {
				return fmt.Errorf("slot %d: %w", i, err)
			}
			result[i] = value
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func decodeSlot(encoded string) ([]byte, error) {
	slot, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: return slot is not base64: %v", ErrInvalidData, err)
	}
	return slot, nil
}
