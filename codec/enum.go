// Package codec provides serialenum.Codec implementations that move enum
// values between their wire token and their domain variant.
package codec

import (
	"context"
	"encoding"

	"github.com/reoring/serialenum"
)

// Binding returns a Codec[string,E] backed by a runtime Binding. Decode trims
// the wire token like every deserializer adapter.
func Binding[E comparable](b *serialenum.Binding[E]) serialenum.Codec[string, E] {
	return &bindingCodec[E]{b: b}
}

type bindingCodec[E comparable] struct {
	b *serialenum.Binding[E]
}

func (c *bindingCodec[E]) Decode(ctx context.Context, a string) (E, error) {
	if err := ctx.Err(); err != nil {
		var zero E
		return zero, err
	}
	return serialenum.VisitScalar[E](c.b, a)
}

func (c *bindingCodec[E]) Encode(ctx context.Context, b E) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := c.b.MarshalText(b)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// Text returns a Codec[string,E] for generated enum types, which marshal
// through encoding.TextMarshaler and unmarshal through
// encoding.TextUnmarshaler on *E.
func Text[E encoding.TextMarshaler, PE interface {
	*E
	encoding.TextUnmarshaler
}]() serialenum.Codec[string, E] {
	return textCodec[E, PE]{}
}

type textCodec[E encoding.TextMarshaler, PE interface {
	*E
	encoding.TextUnmarshaler
}] struct{}

func (textCodec[E, PE]) Decode(ctx context.Context, a string) (E, error) {
	var out E
	if err := ctx.Err(); err != nil {
		return out, err
	}
	if err := PE(&out).UnmarshalText([]byte(a)); err != nil {
		var zero E
		return zero, err
	}
	return out, nil
}

func (textCodec[E, PE]) Encode(ctx context.Context, b E) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := b.MarshalText()
	if err != nil {
		return "", err
	}
	return string(text), nil
}
