package engine

import (
	"errors"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// String returns a JSON-ish name for the kind, used in invalid type issues.
func (k Kind) String() string {
	switch k {
	case KindBeginObject, KindEndObject, KindKey:
		return "object"
	case KindBeginArray, KindEndArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrTrailingData is returned when a scalar document is followed by more input.
var ErrTrailingData = errors.New("engine: trailing data after scalar value")

// ReadScalar reads the first token of src. Scalar tokens must be the whole
// document; containers are returned as-is for the caller to reject.
func ReadScalar(src TokenSource) (Token, error) {
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Token{}, io.ErrUnexpectedEOF
		}
		return Token{}, err
	}
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		return tok, nil
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return Token{}, err
		}
		return Token{}, ErrTrailingData
	}
	return tok, nil
}
