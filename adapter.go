package serialenum

import (
	"errors"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/serialenum/i18n"
	eng "github.com/reoring/serialenum/internal/engine"
)

// VisitScalar is the deserializer core shared by every adapter: it trims
// surrounding whitespace, delegates to the visitor's parser and reshapes a
// parser failure into an invalid_enum issue.
func VisitScalar[E any](v Visitor[E], s string) (E, error) {
	s = strings.TrimSpace(s)
	val, err := v.VisitString(s)
	if err != nil {
		var zero E
		return zero, UnknownValue(v.Name(), s, v.Tokens(), err, diagnosticsOf(v))
	}
	return val, nil
}

// UnmarshalText decodes a text scalar into dst. dst is left untouched on
// error.
func UnmarshalText[E any](v Visitor[E], text []byte, dst *E) error {
	val, err := VisitScalar(v, string(text))
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

// UnmarshalJSON decodes a JSON string into dst. JSON null is a no-op, any
// other non-string value is an invalid_type issue.
func UnmarshalJSON[E any](v Visitor[E], data []byte, dst *E) error {
	s, ok, err := DecodeJSONScalar(data, v.Expecting())
	if err != nil || !ok {
		return err
	}
	return UnmarshalText(v, []byte(s), dst)
}

// UnmarshalYAML decodes a YAML string scalar into dst. A null node is a no-op.
func UnmarshalYAML[E any](v Visitor[E], node *yaml.Node, dst *E) error {
	s, ok, err := DecodeYAMLScalar(node, v.Expecting())
	if err != nil || !ok {
		return err
	}
	return UnmarshalText(v, []byte(s), dst)
}

// MarshalJSONToken encodes a canonical token as a bare JSON string.
func MarshalJSONToken(token string) ([]byte, error) {
	return gojson.Marshal(token)
}

var errMalformedJSON = errors.New("serialenum: malformed JSON value")

// DecodeJSONScalar reads a single JSON string through the current JSON
// driver. ok is false for JSON null. Input that is not exactly one valid JSON
// value is a parse_error whichever driver is installed.
func DecodeJSONScalar(data []byte, expecting string) (s string, ok bool, err error) {
	tok, err := eng.ReadScalar(JSONBytes(data))
	if err == nil && !gojson.Valid(data) {
		// go-json's tokenizer skips stray ',' and ':' separators
		err = errMalformedJSON
	}
	if err != nil {
		iss := singleIssue(CodeParseError, i18n.T(CodeParseError, map[string]string{"detail": err.Error()}))
		if !errors.Is(err, eng.ErrTrailingData) && !errors.Is(err, errMalformedJSON) {
			iss[0].Cause = err
		}
		return "", false, iss
	}
	switch tok.Kind {
	case eng.KindString:
		return tok.String, true, nil
	case eng.KindNull:
		return "", false, nil
	default:
		return "", false, invalidType(expecting, tok.Kind.String(), tok.Offset)
	}
}

// DecodeYAMLScalar extracts a string scalar from a YAML node, following
// aliases. ok is false for null nodes.
func DecodeYAMLScalar(node *yaml.Node, expecting string) (s string, ok bool, err error) {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node == nil {
		return "", false, nil
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	got := yamlKindName(node)
	if node.Kind == yaml.ScalarNode {
		switch node.ShortTag() {
		case "!!str":
			return node.Value, true, nil
		case "!!null":
			return "", false, nil
		}
	}
	iss := invalidType(expecting, got, -1)
	iss[0].Params["line"] = node.Line
	iss[0].Params["column"] = node.Column
	return "", false, iss
}

func yamlKindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return strings.TrimPrefix(node.ShortTag(), "!!")
	default:
		return "unknown"
	}
}
