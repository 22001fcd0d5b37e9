// Package definition loads smart contract ABI documents and resolves their type expressions.
package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/erdgo/abicodec/pkg/abi"
	"github.com/erdgo/abicodec/pkg/collection"
	collstrings "github.com/erdgo/abicodec/pkg/collection/strings"
)

const structKind = "struct"

var (
	// ErrUnknownEndpoint is returned when the endpoint is not defined.
	ErrUnknownEndpoint = errors.New("unknown endpoint")
	// ErrUnknownType is returned when a type expression refers to undefined custom type.
	ErrUnknownType = errors.New("unknown type")
	// ErrInvalidDefinition is returned when the document is malformed.
	ErrInvalidDefinition = errors.New("invalid ABI definition")
)

// FieldDefinition is a named type expression.
type FieldDefinition struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Type string `json:"type" yaml:"type"`
}

// TypeDefinition is a custom type declared by the contract.
type TypeDefinition struct {
	Type   string            `json:"type" yaml:"type"`
	Fields []FieldDefinition `json:"fields" yaml:"fields"`
}

// EndpointDefinition holds the signature of a contract endpoint.
type EndpointDefinition struct {
	Name    string            `json:"name" yaml:"name"`
	Inputs  []FieldDefinition `json:"inputs" yaml:"inputs"`
	Outputs []FieldDefinition `json:"outputs" yaml:"outputs"`

	inputTypes  []*abi.Type
	outputTypes []*abi.Type
}

// InputTypes returns the resolved argument types.
func (e *EndpointDefinition) InputTypes() []*abi.Type {
	return collection.Copy(e.inputTypes)
}

// OutputTypes returns the resolved return types.
func (e *EndpointDefinition) OutputTypes() []*abi.Type {
	return collection.Copy(e.outputTypes)
}

// OutputType returns the single return type, or a multi of all return types.
func (e *EndpointDefinition) OutputType() *abi.Type {
	if len(e.outputTypes) == 1 {
		return e.outputTypes[0]
	}
	return abi.Multi(e.outputTypes...)
}

// Definition is the ABI document of a contract.
type Definition struct {
	Name      string                     `json:"name" yaml:"name"`
	Endpoints []*EndpointDefinition      `json:"endpoints" yaml:"endpoints"`
	Types     map[string]*TypeDefinition `json:"types" yaml:"types"`

	resolver *resolver
}

// LoadJSON reads definition from JSON document.
func LoadJSON(data []byte) (*Definition, error) {
	def := &Definition{}
	if err := json.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := def.resolve(); err != nil {
		return nil, err
	}
	return def, nil
}

// LoadYAML reads definition from YAML document.
func LoadYAML(data []byte) (*Definition, error) {
	def := &Definition{}
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := def.resolve(); err != nil {
		return nil, err
	}
	return def, nil
}

// LoadFile reads definition from path. Files with .yaml or .yml extension are read as YAML, others as JSON.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return LoadJSON(data)
	}
}

func (d *Definition) resolve() error {
	d.resolver = newResolver(d.Types)
	for name := range d.Types {
		if _, err := d.resolver.resolveCustom(name); err != nil {
			return err
		}
	}
	names := make([]string, len(d.Endpoints))
	for i, endpoint := range d.Endpoints {
		if endpoint == nil || endpoint.Name == "" {
			return fmt.Errorf("%w: endpoint at index %d has no name", ErrInvalidDefinition, i)
		}
		names[i] = endpoint.Name
	}
	if name, exist := collstrings.FirstDuplicate(names); exist {
		return fmt.Errorf("%w: duplicate endpoint %s", ErrInvalidDefinition, name)
	}
	for _, endpoint := range d.Endpoints {
		inputs, err := d.resolver.parseFields(endpoint.Inputs)
		if err != nil {
			return fmt.Errorf("endpoint %s input: %w", endpoint.Name, err)
		}
		outputs, err := d.resolver.parseFields(endpoint.Outputs)
		if err != nil {
			return fmt.Errorf("endpoint %s output: %w", endpoint.Name, err)
		}
		for j, input := range inputs {
			if input.IsVariadic() && j != len(inputs)-1 {
				return fmt.Errorf("%w: variadic input of %s must be the last", ErrInvalidDefinition, endpoint.Name)
			}
		}
		endpoint.inputTypes = inputs
		endpoint.outputTypes = outputs
	}
	return nil
}

// Endpoint returns the endpoint with the name.
func (d *Definition) Endpoint(name string) (*EndpointDefinition, error) {
	for _, endpoint := range d.Endpoints {
		if endpoint.Name == name {
			return endpoint, nil
		}
	}
	return nil, fmt.Errorf("%w %s", ErrUnknownEndpoint, name)
}

// Type returns the resolved custom type with the name.
func (d *Definition) Type(name string) (*abi.Type, bool) {
	if d.resolver == nil {
		return nil, false
	}
	t, exist := d.resolver.resolved[name]
	return t, exist
}

// ParseType parses type expression which may refer to the custom types of the definition.
func (d *Definition) ParseType(expr string) (*abi.Type, error) {
	if d.resolver == nil {
		return ParseType(expr)
	}
	return d.resolver.parse(expr)
}
