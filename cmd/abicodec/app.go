package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/erdgo/abicodec/pkg/abi"
	"github.com/erdgo/abicodec/pkg/abi/definition"
	"github.com/erdgo/abicodec/pkg/codec"
	"github.com/erdgo/abicodec/pkg/config"
	"github.com/erdgo/abicodec/pkg/contract"
	"github.com/erdgo/abicodec/pkg/log"
)

var errInvalidArguments = errors.New("invalid arguments")

type app struct {
	out        io.Writer
	logger     log.Logger
	config     *config.Config
	codec      *abi.BinaryCodec
	definition *definition.Definition
}

func newApp(out io.Writer, logger log.Logger) *cli.App {
	a := &app{
		out:    out,
		logger: logger,
	}
	typeFlag := &cli.StringFlag{
		Name:     "type",
		Aliases:  []string{"t"},
		Usage:    "Type expression of the value, e.g. Option<u32>",
		Required: true,
	}
	nestedFlag := &cli.BoolFlag{
		Name:  "nested",
		Usage: "Use nested encoding instead of top level encoding",
	}
	return &cli.App{
		Name:   "abicodec",
		Usage:  "Smart contract ABI codec",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error, fatal)",
			},
			&cli.BoolFlag{
				Name:  "development",
				Usage: "Use human readable logs",
			},
			&cli.StringFlag{
				Name:    "abi",
				Aliases: []string{"a"},
				Usage:   "Path to ABI definition in JSON or YAML",
			},
		},
		Before: a.setup,
		After: func(c *cli.Context) error {
			// stderr cannot always be synced
			_ = a.logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "Encode value literal into hex",
				ArgsUsage: "VALUE",
				Flags:     []cli.Flag{typeFlag, nestedFlag},
				Action:    a.encode,
			},
			{
				Name:      "decode",
				Usage:     "Decode hex into JSON value",
				ArgsUsage: "HEX",
				Flags:     []cli.Flag{typeFlag, nestedFlag},
				Action:    a.decode,
			},
			{
				Name:      "call-data",
				Usage:     "Build transaction data calling the endpoint",
				ArgsUsage: "FUNCTION [ARGS...]",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "input",
						Usage: "Type expression of each argument when ABI is not given",
					},
					&cli.BoolFlag{
						Name:  "base64",
						Usage: "Output base64 of the data",
					},
				},
				Action: a.callData,
			},
			{
				Name:      "parse-call-data",
				Usage:     "Parse transaction data into function and arguments",
				ArgsUsage: "DATA",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "base64",
						Usage: "Input is base64 of the data",
					},
				},
				Action: a.parseCallData,
			},
			{
				Name:      "query",
				Usage:     "Build query request calling the endpoint",
				ArgsUsage: "FUNCTION [ARGS...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "contract",
						Usage:    "Bech32 address of the contract",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "caller",
						Usage: "Bech32 address of the caller",
					},
					&cli.StringSliceFlag{
						Name:  "input",
						Usage: "Type expression of each argument when ABI is not given",
					},
				},
				Action: a.query,
			},
			{
				Name:      "query-decode",
				Usage:     "Decode base64 return data of query",
				ArgsUsage: "FUNCTION|- [SLOTS...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "Type expression of the output when ABI is not given",
					},
					&cli.BoolFlag{
						Name:  "array",
						Usage: "Decode each slot as the output type",
					},
				},
				Action: a.queryDecode,
			},
			{
				Name:      "address",
				Usage:     "Convert address between bech32 and hex",
				ArgsUsage: "ADDRESS",
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:  "compute-nonce",
						Usage: "Compute contract address deployed by the address with the nonce",
					},
				},
				Action: a.address,
			},
		},
	}
}

func (a *app) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	cfg.Merge(&config.Config{
		LogLevel:    c.String("log-level"),
		Development: c.Bool("development"),
		ABIPath:     c.String("abi"),
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.config = cfg
	if c.IsSet("config") || c.IsSet("log-level") || c.IsSet("development") {
		logger, err := log.NewLogger(cfg.LogLevel, cfg.Development)
		if err != nil {
			return err
		}
		a.logger = logger
	}
	a.codec = abi.NewBinaryCodec(abi.WithLogger(a.logger))
	if cfg.ABIPath != "" {
		def, err := definition.LoadFile(cfg.ABIPath)
		if err != nil {
			return err
		}
		a.logger.Debugf("Loaded ABI %s with %d endpoints", def.Name, len(def.Endpoints))
		a.definition = def
	}
	return nil
}

func (a *app) parseType(expr string) (*abi.Type, error) {
	if a.definition != nil {
		return a.definition.ParseType(expr)
	}
	return definition.ParseType(expr)
}

func (a *app) parseTypes(exprs []string) ([]*abi.Type, error) {
	types := make([]*abi.Type, len(exprs))
	for i, expr := range exprs {
		t, err := a.parseType(expr)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}

// inputTypes returns the endpoint inputs from ABI, or the types given by the input flag.
func (a *app) inputTypes(c *cli.Context, function string) ([]*abi.Type, error) {
	if a.definition != nil && !c.IsSet("input") {
		endpoint, err := a.definition.Endpoint(function)
		if err != nil {
			return nil, err
		}
		return endpoint.InputTypes(), nil
	}
	return a.parseTypes(c.StringSlice("input"))
}

func (a *app) print(v interface{}) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (a *app) println(s string) error {
	_, err := fmt.Fprintln(a.out, s)
	return err
}

func (a *app) encode(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: encode takes exactly one value", errInvalidArguments)
	}
	t, err := a.parseType(c.String("type"))
	if err != nil {
		return err
	}
	value, err := definition.ParseValue(t, c.Args().First())
	if err != nil {
		return err
	}
	var encoded []byte
	if c.Bool("nested") {
		encoded, err = a.codec.EncodeNested(value)
	} else {
		encoded, err = a.codec.EncodeTopLevel(value)
	}
	if err != nil {
		return err
	}
	return a.println(hex.EncodeToString(encoded))
}

func (a *app) decode(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: decode takes exactly one hex", errInvalidArguments)
	}
	t, err := a.parseType(c.String("type"))
	if err != nil {
		return err
	}
	data, err := hex.DecodeString(strings.TrimPrefix(c.Args().First(), "0x"))
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	if !c.Bool("nested") {
		value, err := a.codec.DecodeTopLevel(data, t)
		if err != nil {
			return err
		}
		return a.print(definition.Native(value))
	}
	value, consumed, err := a.codec.DecodeNested(data, t)
	if err != nil {
		return err
	}
	if consumed != len(data) {
		a.logger.Warningf("Decoded %d bytes out of %d", consumed, len(data))
	}
	return a.print(definition.Native(value))
}

func (a *app) callData(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("%w: function is required", errInvalidArguments)
	}
	function := c.Args().First()
	types, err := a.inputTypes(c, function)
	if err != nil {
		return err
	}
	args, err := definition.ParseArguments(types, c.Args().Tail())
	if err != nil {
		return err
	}
	data, err := contract.CallData(function, args...)
	if err != nil {
		return err
	}
	if c.Bool("base64") {
		data = contract.EncodeData(data)
	}
	return a.println(data)
}

type parsedCallData struct {
	Function string        `json:"function"`
	Args     []interface{} `json:"args"`
}

func (a *app) parseCallData(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: parse-call-data takes exactly one data", errInvalidArguments)
	}
	data := c.Args().First()
	if c.Bool("base64") {
		decoded, err := contract.DecodeData(data)
		if err != nil {
			return err
		}
		data = decoded
	}
	function, rawArgs, err := contract.ParseCallData(data)
	if err != nil {
		return err
	}
	result := &parsedCallData{
		Function: function,
		Args:     make([]interface{}, 0, len(rawArgs)),
	}
	if a.definition == nil {
		for _, arg := range codec.BytesArrayToHexArray(rawArgs) {
			result.Args = append(result.Args, arg.String())
		}
		return a.print(result)
	}
	endpoint, err := a.definition.Endpoint(function)
	if err != nil {
		return err
	}
	values, err := contract.DecodeCallArguments(rawArgs, endpoint.InputTypes())
	if err != nil {
		return err
	}
	for _, value := range values {
		result.Args = append(result.Args, definition.Native(value))
	}
	return a.print(result)
}

func (a *app) query(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("%w: function is required", errInvalidArguments)
	}
	function := c.Args().First()
	target, err := abi.AddressFromBech32(c.String("contract"))
	if err != nil {
		return err
	}
	var caller *abi.AddressValue
	if c.IsSet("caller") {
		caller, err = abi.AddressFromBech32(c.String("caller"))
		if err != nil {
			return err
		}
	}
	types, err := a.inputTypes(c, function)
	if err != nil {
		return err
	}
	args, err := definition.ParseArguments(types, c.Args().Tail())
	if err != nil {
		return err
	}
	req, err := contract.NewQueryRequest(target, function, caller, args...)
	if err != nil {
		return err
	}
	return a.print(req)
}

func (a *app) queryDecode(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("%w: function is required", errInvalidArguments)
	}
	var out *abi.Type
	if c.IsSet("output") {
		t, err := a.parseType(c.String("output"))
		if err != nil {
			return err
		}
		out = t
	} else {
		if a.definition == nil {
			return fmt.Errorf("%w: output or abi is required", errInvalidArguments)
		}
		endpoint, err := a.definition.Endpoint(c.Args().First())
		if err != nil {
			return err
		}
		out = endpoint.OutputType()
	}
	slots := c.Args().Tail()
	if !c.Bool("array") {
		value, err := contract.DecodeQueryResult(slots, out)
		if err != nil {
			return err
		}
		return a.print(definition.Native(value))
	}
	values, err := contract.DecodeQueryResultArray(slots, out)
	if err != nil {
		return err
	}
	result := make([]interface{}, len(values))
	for i, value := range values {
		result[i] = definition.Native(value)
	}
	return a.print(result)
}

func (a *app) address(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: address takes exactly one address", errInvalidArguments)
	}
	input := c.Args().First()
	var (
		value *abi.AddressValue
		err   error
	)
	if codec.ValidateBech32(input) == nil {
		value, err = abi.AddressFromBech32(input)
	} else {
		value, err = abi.AddressFromHex(strings.TrimPrefix(input, "0x"))
	}
	if err != nil {
		return err
	}
	if c.IsSet("compute-nonce") {
		computed, err := contract.ComputeAddress(value, c.Uint64("compute-nonce"))
		if err != nil {
			return err
		}
		value = computed
	}
	bech32, err := value.Bech32(a.config.HRP)
	if err != nil {
		return err
	}
	return a.print(map[string]string{
		"bech32": bech32,
		"hex":    value.Hex(),
	})
}
