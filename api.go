package serialenum

import (
	"context"

	js "github.com/reoring/serialenum/jsonschema"
)

// Visitor is the adapter object a bound enum hands to the deserializers. It
// names the enum, lists the canonical tokens in declaration order and parses
// one token. Generated code emits one visitor type per enum; *Binding
// implements it as well.
type Visitor[E any] interface {
	// Name is the enum's type name as used in messages.
	Name() string
	// Expecting describes the accepted wire value, e.g. "a ContentFormat string".
	Expecting() string
	// Tokens returns the canonical tokens in declaration order.
	Tokens() []string
	// VisitString parses s exactly (no trimming).
	VisitString(s string) (E, error)
}

// Diagnostics selects how much context an unknown value error carries.
type Diagnostics int

const (
	// DiagnosticsAllowList attaches every accepted token to the issue.
	DiagnosticsAllowList Diagnostics = iota
	// DiagnosticsMessage reports only the parser message.
	DiagnosticsMessage
)

// Diagnoser is optionally implemented by a Visitor to choose its
// Diagnostics. Visitors without it use DiagnosticsAllowList.
type Diagnoser interface {
	Diagnostics() Diagnostics
}

// Describer is optionally implemented by a Visitor that carries the enum's
// doc annotation.
type Describer interface {
	Description() string
}

func diagnosticsOf(v any) Diagnostics {
	if d, ok := v.(Diagnoser); ok {
		return d.Diagnostics()
	}
	return DiagnosticsAllowList
}

// Codec performs bidirectional transformation between the wire
// representation A and the domain representation B.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error) // A (wire) -> B (domain).
	Encode(ctx context.Context, b B) (A, error) // B (domain) -> A (wire).
}

// Decode is a thin wrapper around Codec.Decode for the forward direction.
func Decode[A, B any](ctx context.Context, c Codec[A, B], a A) (B, error) {
	return c.Decode(ctx, a)
}

// Encode is a convenience wrapper over Codec.Encode (output->input) direction.
func Encode[A, B any](ctx context.Context, c Codec[A, B], b B) (A, error) {
	return c.Encode(ctx, b)
}

// SafeParse parses s through the visitor, returning (zero, false) on failure.
// Like the parser itself it does not trim.
func SafeParse[E any](v Visitor[E], s string) (E, bool) {
	val, err := v.VisitString(s)
	if err != nil {
		var zero E
		return zero, false
	}
	return val, true
}

// Is reports whether s is exactly one of the visitor's canonical tokens.
func Is[E any](v Visitor[E], s string) bool {
	_, ok := SafeParse(v, s)
	return ok
}

// JSONSchema projects the enum behind v into a JSON Schema string enum.
func JSONSchema[E any](v Visitor[E]) *js.Schema {
	s := &js.Schema{Type: "string", Title: v.Name(), Enum: v.Tokens()}
	if d, ok := any(v).(Describer); ok {
		s.Description = d.Description()
	}
	return s
}
