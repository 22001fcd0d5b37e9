package definition

import (
	"errors"
	"fmt"

	"github.com/erdgo/abicodec/pkg/abi"
	collstrings "github.com/erdgo/abicodec/pkg/collection/strings"
)

// ErrInvalidExpression is returned when a type expression cannot be parsed.
var ErrInvalidExpression = errors.New("invalid type expression")

var primitives = map[string]func() *abi.Type{
	"u8":              abi.U8,
	"u16":             abi.U16,
	"u32":             abi.U32,
	"u64":             abi.U64,
	"usize":           abi.U32,
	"i8":              abi.I8,
	"i16":             abi.I16,
	"i32":             abi.I32,
	"i64":             abi.I64,
	"isize":           abi.I32,
	"BigUint":         abi.BigUint,
	"BigInt":          abi.BigInt,
	"bool":            abi.Boolean,
	"bytes":           abi.Bytes,
	"Address":         abi.Address,
	"TokenIdentifier": abi.TokenIdentifier,
}

// ParseType parses type expression without custom types,
// e.g. "u32", "Option<BigUint>", "multi<Address,bool>" or "variadic<bytes>".
func ParseType(expr string) (*abi.Type, error) {
	return newResolver(nil).parse(expr)
}

type resolver struct {
	defs     map[string]*TypeDefinition
	resolved map[string]*abi.Type
	visiting map[string]bool
}

func newResolver(defs map[string]*TypeDefinition) *resolver {
	return &resolver{
		defs:     defs,
		resolved: map[string]*abi.Type{},
		visiting: map[string]bool{},
	}
}

func (r *resolver) parse(expr string) (*abi.Type, error) {
	p := &parser{input: expr, resolver: r}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected %q", p.input[p.pos:])
	}
	return t, nil
}

func (r *resolver) parseFields(fields []FieldDefinition) ([]*abi.Type, error) {
	types := make([]*abi.Type, len(fields))
	for i, field := range fields {
		t, err := r.parse(field.Type)
		if err != nil {
			if field.Name != "" {
				return nil, fmt.Errorf("%s: %w", field.Name, err)
			}
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}

func (r *resolver) build(name string, args []*abi.Type, generic bool) (*abi.Type, error) {
	switch name {
	case "Option":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: Option takes 1 parameter but received %d", ErrInvalidExpression, len(args))
		}
		return abi.Option(args[0]), nil
	case "multi":
		if !generic {
			return nil, fmt.Errorf("%w: multi requires parameters", ErrInvalidExpression)
		}
		return abi.Multi(args...), nil
	case "variadic":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: variadic takes 1 parameter but received %d", ErrInvalidExpression, len(args))
		}
		return abi.Variadic(args[0]), nil
	}
	if generic {
		return nil, fmt.Errorf("%w: %s takes no parameters", ErrInvalidExpression, name)
	}
	if constructor, exist := primitives[name]; exist {
		return constructor(), nil
	}
	return r.resolveCustom(name)
}

func (r *resolver) resolveCustom(name string) (*abi.Type, error) {
	if t, exist := r.resolved[name]; exist {
		return t, nil
	}
	def, exist := r.defs[name]
	if !exist || def == nil {
		return nil, fmt.Errorf("%w %s", ErrUnknownType, name)
	}
	if _, exist := primitives[name]; exist {
		return nil, fmt.Errorf("%w: custom type %s shadows a builtin type", ErrInvalidDefinition, name)
	}
	if r.visiting[name] {
		return nil, fmt.Errorf("%w: type %s refers to itself", ErrInvalidDefinition, name)
	}
	if def.Type != structKind {
		return nil, fmt.Errorf("%w: type %s has unsupported kind %q", ErrInvalidDefinition, name, def.Type)
	}
	r.visiting[name] = true
	defer delete(r.visiting, name)

	names := make([]string, len(def.Fields))
	for i, field := range def.Fields {
		if field.Name == "" {
			return nil, fmt.Errorf("%w: field %d of %s has no name", ErrInvalidDefinition, i, name)
		}
		names[i] = field.Name
	}
	if duplicate, exist := collstrings.FirstDuplicate(names); exist {
		return nil, fmt.Errorf("%w: duplicate field %s of %s", ErrInvalidDefinition, duplicate, name)
	}
	fields := make([]abi.FieldType, len(def.Fields))
	for i, field := range def.Fields {
		t, err := r.parse(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s of %s: %w", field.Name, name, err)
		}
		fields[i] = abi.NewFieldType(field.Name, t)
	}
	t := abi.Struct(name, fields...)
	r.resolved[name] = t
	return t, nil
}

// parser is a recursive descent parser of
//
//	type := name [ "<" [ type { "," type } ] ">" ]
type parser struct {
	input    string
	pos      int
	resolver *resolver
}

func (p *parser) parseType() (*abi.Type, error) {
	name := p.identifier()
	if name == "" {
		return nil, p.errorf("expected type name")
	}
	if !p.consume('<') {
		return p.resolver.build(name, nil, false)
	}
	args := []*abi.Type{}
	if !p.consume('>') {
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.consume(',') {
				continue
			}
			if p.consume('>') {
				break
			}
			return nil, p.errorf("expected ',' or '>'")
		}
	}
	return p.resolver.build(name, args, true)
}

func (p *parser) identifier() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && isIdentifierChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) consume(c byte) bool {
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w %q at %d: %s", ErrInvalidExpression, p.input, p.pos, fmt.Sprintf(format, args...))
}

func isIdentifierChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
