package abi

import (
	"regexp"
	"unicode/utf8"

	"github.com/erdgo/abicodec/pkg/codec"
)

// ticker of 3 to 10 upper case alphanumerics, optionally followed by the random suffix.
var tokenIdentifierPattern = regexp.MustCompile(`^[A-Z0-9]{3,10}(-[0-9a-f]{6})?$`)

// TokenIdentifierValue is an identifier of a token, e.g. USDC-c76f1f.
type TokenIdentifierValue struct {
	identifier string
}

// NewTokenIdentifier returns token identifier value.
func NewTokenIdentifier(identifier string) (*TokenIdentifierValue, error) {
	if !tokenIdentifierPattern.MatchString(identifier) {
		return nil, shapeError(tokenIdentifierType, "invalid token identifier %q", identifier)
	}
	return &TokenIdentifierValue{identifier: identifier}, nil
}

func (v *TokenIdentifierValue) Type() *Type    { return tokenIdentifierType }
func (v *TokenIdentifierValue) isValue()       {}
func (v *TokenIdentifierValue) String() string { return v.identifier }

// Ticker returns the identifier without the random suffix.
func (v *TokenIdentifierValue) Ticker() string {
	for i := 0; i < len(v.identifier); i++ {
		if v.identifier[i] == '-' {
			return v.identifier[:i]
		}
	}
	return v.identifier
}

type tokenIdentifierCodec struct{}

func (tokenIdentifierCodec) cast(v Value) (*TokenIdentifierValue, error) {
	token, ok := v.(*TokenIdentifierValue)
	if !ok {
		return nil, shapeError(v.Type(), "expected token identifier value but received %T", v)
	}
	return token, nil
}

func (c tokenIdentifierCodec) encodeTopLevel(w *codec.Writer, v Value) error {
	token, err := c.cast(v)
	if err != nil {
		return err
	}
	w.WriteRaw([]byte(token.identifier))
	return nil
}

func (c tokenIdentifierCodec) encodeNested(w *codec.Writer, v Value) error {
	token, err := c.cast(v)
	if err != nil {
		return err
	}
	return w.WriteBytes([]byte(token.identifier))
}

func (c tokenIdentifierCodec) decodeTopLevel(data []byte, t *Type) (Value, error) {
	if !utf8.Valid(data) {
		return nil, formatError(t, codec.ErrInvalidUTF8, "token identifier %x is not utf8", data)
	}
	return c.validate(string(data), t)
}

func (c tokenIdentifierCodec) decodeNested(r *codec.Reader, t *Type) (Value, error) {
	identifier, err := r.ReadString()
	if err != nil {
		return nil, formatError(t, err, "failed to read token identifier at offset %d", r.Offset())
	}
	return c.validate(identifier, t)
}

func (tokenIdentifierCodec) validate(identifier string, t *Type) (Value, error) {
	if !tokenIdentifierPattern.MatchString(identifier) {
		return nil, formatError(t, codec.ErrInvalidData, "invalid token identifier %q", identifier)
	}
	return &TokenIdentifierValue{identifier: identifier}, nil
}
