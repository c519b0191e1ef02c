// Package schema loads the declarative enum description consumed by the
// generator. YAML, JSON and JSONC (comments and trailing commas) are
// accepted; the file extension selects the decoder.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	eng "github.com/reoring/serialenum/internal/engine"
	gojsonsrc "github.com/reoring/serialenum/source/gojson"
)

// File is the root of a schema document.
type File struct {
	Package string `yaml:"package" json:"package"`
	Enums   []Enum `yaml:"enums" json:"enums"`
}

// Enum declares one enum, its token map and its error binding.
type Enum struct {
	Name       string    `yaml:"name" json:"name"`
	Doc        string    `yaml:"doc" json:"doc"`
	Visibility string    `yaml:"visibility" json:"visibility"`
	Visitor    string    `yaml:"visitor" json:"visitor"`
	Mode       string    `yaml:"mode" json:"mode"`
	Error      string    `yaml:"error" json:"error"`
	Variants   []Variant `yaml:"variants" json:"variants"`
	Tokens     TokenMap  `yaml:"tokens" json:"tokens"`
}

// Variant is a variant identifier with its optional doc and inline token.
type Variant struct {
	Name  string `yaml:"name" json:"name"`
	Doc   string `yaml:"doc" json:"doc"`
	Token string `yaml:"token" json:"token"`
}

// TokenEntry is one `Variant => "token"` line of a tokens block.
type TokenEntry struct {
	Variant string
	Token   string
}

// TokenMap is an ordered tokens block. Duplicate keys are kept so that
// validation can report them.
type TokenMap []TokenEntry

// UnmarshalYAML keeps the mapping order of the block.
func (m *TokenMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: tokens must be a mapping of variant to token", node.Line)
	}
	out := make(TokenMap, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: tokens entries must be scalars", k.Line)
		}
		out = append(out, TokenEntry{Variant: k.Value, Token: v.Value})
	}
	*m = out
	return nil
}

// UnmarshalJSON walks the object through the go-json token source so the
// member order survives.
func (m *TokenMap) UnmarshalJSON(data []byte) error {
	src := gojsonsrc.NewBytes(data)
	tok, err := src.NextToken()
	if err != nil {
		return err
	}
	if tok.Kind == eng.KindNull {
		*m = nil
		return nil
	}
	if tok.Kind != eng.KindBeginObject {
		return errors.New("tokens must be an object of variant to token")
	}
	var out TokenMap
	for {
		key, err := src.NextToken()
		if err != nil {
			return err
		}
		if key.Kind == eng.KindEndObject {
			break
		}
		val, err := src.NextToken()
		if err != nil {
			return err
		}
		if val.Kind != eng.KindString {
			return fmt.Errorf("token of %q must be a string, got %s", key.String, val.Kind)
		}
		out = append(out, TokenEntry{Variant: key.String, Token: val.String})
	}
	*m = out
	return nil
}

// Format identifies a schema encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatOf picks the decoder from a file name. Unknown extensions are YAML,
// which is a superset of JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// LoadFile reads and decodes the schema at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return f, nil
}

// Decode decodes a schema document in the given format.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatJSON:
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, err
		}
		dec := gojson.NewDecoder(bytes.NewReader(std))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("empty schema document")
			}
			return nil, err
		}
	}
	return &f, nil
}
