package serialenum

import (
	"fmt"
	"go/token"

	"gopkg.in/yaml.v3"
)

// Pair binds one variant to its canonical token.
type Pair[E comparable] struct {
	Variant E
	Token   string
}

// Option configures Bind.
type Option func(*bindConfig)

type bindConfig struct {
	newErr func(string) error
	diag   Diagnostics
	doc    string
}

// WithErrorFunc sets the constructor used for parse failures. It receives the
// complete message. The default is NewParseError.
func WithErrorFunc(fn func(msg string) error) Option {
	return func(c *bindConfig) {
		if fn != nil {
			c.newErr = fn
		}
	}
}

// WithDiagnostics selects the unknown value diagnostics of the adapters.
func WithDiagnostics(d Diagnostics) Option {
	return func(c *bindConfig) { c.diag = d }
}

// WithDoc attaches the enum's doc annotation (surfaced in JSON Schema).
func WithDoc(doc string) Option {
	return func(c *bindConfig) { c.doc = doc }
}

// Binding is the runtime form of a bound enum: an ordered pair list for
// variant -> token and a hash map for token -> variant, both built once by
// Bind and never written afterwards. A Binding is safe for concurrent use.
type Binding[E comparable] struct {
	name      string
	pairs     []Pair[E]
	tokens    []string
	byToken   map[string]E
	byVariant map[E]string
	cfg       bindConfig
}

// Bind validates pairs and builds a Binding named name. Pairs must form a
// bijection: no variant twice, no token twice, no empty token.
func Bind[E comparable](name string, pairs []Pair[E], opts ...Option) (*Binding[E], error) {
	cfg := bindConfig{newErr: NewParseError}
	for _, o := range opts {
		o(&cfg)
	}
	var iss Issues
	root := Root()
	if !token.IsIdentifier(name) {
		iss = AppendIssues(iss, root.Field("name").Issue(CodeInvalidIdentifier, fmt.Sprintf("%q is not a valid enum name", name)))
	}
	if len(pairs) == 0 {
		iss = AppendIssues(iss, root.Field("pairs").Issue(CodeEmptyEnum, "enum "+name+" declares no variants"))
	}
	b := &Binding[E]{
		name:      name,
		pairs:     append([]Pair[E](nil), pairs...),
		tokens:    make([]string, 0, len(pairs)),
		byToken:   make(map[string]E, len(pairs)),
		byVariant: make(map[E]string, len(pairs)),
		cfg:       cfg,
	}
	for i, p := range pairs {
		at := root.Field("pairs").Index(i)
		if p.Token == "" {
			iss = AppendIssues(iss, at.Field("token").Issue(CodeMissingToken, fmt.Sprintf("variant %#v has an empty token", p.Variant)))
			continue
		}
		if _, dup := b.byVariant[p.Variant]; dup {
			iss = AppendIssues(iss, at.Field("variant").Issue(CodeDuplicateVariant, fmt.Sprintf("variant %#v is bound twice", p.Variant)))
			continue
		}
		if prev, dup := b.byToken[p.Token]; dup {
			iss = AppendIssues(iss, at.Field("token").Issue(CodeDuplicateToken,
				fmt.Sprintf("token %q of %#v is already bound to %#v", p.Token, p.Variant, prev), "token", p.Token))
			continue
		}
		b.byToken[p.Token] = p.Variant
		b.byVariant[p.Variant] = p.Token
		b.tokens = append(b.tokens, p.Token)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return b, nil
}

// MustBind is like Bind but panics on an invalid declaration. It is meant for
// package-level variables.
func MustBind[E comparable](name string, pairs []Pair[E], opts ...Option) *Binding[E] {
	b, err := Bind(name, pairs, opts...)
	if err != nil {
		panic("serialenum: " + err.Error())
	}
	return b
}

func (b *Binding[E]) Name() string                    { return b.name }
func (b *Binding[E]) Expecting() string               { return "a " + b.name + " string" }
func (b *Binding[E]) Diagnostics() Diagnostics        { return b.cfg.diag }
func (b *Binding[E]) Description() string             { return b.cfg.doc }
func (b *Binding[E]) VisitString(s string) (E, error) { return b.Parse(s) }

// Tokens returns the canonical tokens in declaration order.
func (b *Binding[E]) Tokens() []string { return append([]string(nil), b.tokens...) }

// Variants returns the bound variants in declaration order.
func (b *Binding[E]) Variants() []E {
	out := make([]E, len(b.pairs))
	for i, p := range b.pairs {
		out[i] = p.Variant
	}
	return out
}

// Token projects v to its canonical token. ok is false when v was not bound.
func (b *Binding[E]) Token(v E) (tok string, ok bool) {
	tok, ok = b.byVariant[v]
	return tok, ok
}

// String is the total projector for bound variants; unbound values render
// as Name(value).
func (b *Binding[E]) String(v E) string {
	if tok, ok := b.byVariant[v]; ok {
		return tok
	}
	return fmt.Sprintf("%s(%#v)", b.name, v)
}

// Parse returns the variant whose token is exactly s. Matching is
// case-sensitive and s is not trimmed. A constructor bound with WithErrorFunc
// that returns nil falls back to a *ParseError so a miss is never silent.
func (b *Binding[E]) Parse(s string) (E, error) {
	if v, ok := b.byToken[s]; ok {
		return v, nil
	}
	var zero E
	msg := UnknownVariantMessage(s, b.name)
	if err := b.cfg.newErr(msg); err != nil {
		return zero, err
	}
	return zero, NewParseError(msg)
}

// MarshalText returns the token of v.
func (b *Binding[E]) MarshalText(v E) ([]byte, error) {
	tok, ok := b.byVariant[v]
	if !ok {
		return nil, b.invalid(v)
	}
	return []byte(tok), nil
}

// MarshalJSON returns the token of v as a bare JSON string.
func (b *Binding[E]) MarshalJSON(v E) ([]byte, error) {
	tok, ok := b.byVariant[v]
	if !ok {
		return nil, b.invalid(v)
	}
	return MarshalJSONToken(tok)
}

// MarshalYAML returns the token of v for yaml.Marshaler implementations.
func (b *Binding[E]) MarshalYAML(v E) (any, error) {
	tok, ok := b.byVariant[v]
	if !ok {
		return nil, b.invalid(v)
	}
	return tok, nil
}

func (b *Binding[E]) UnmarshalText(text []byte, dst *E) error { return UnmarshalText[E](b, text, dst) }
func (b *Binding[E]) UnmarshalJSON(data []byte, dst *E) error { return UnmarshalJSON[E](b, data, dst) }
func (b *Binding[E]) UnmarshalYAML(node *yaml.Node, dst *E) error {
	return UnmarshalYAML[E](b, node, dst)
}

func (b *Binding[E]) invalid(v E) error {
	return Issues{IssueAt(Root(), CodeInvalidValue, fmt.Sprintf("%#v is not a bound %s variant", v, b.name),
		map[string]any{"enum": b.name, "value": v})}
}
