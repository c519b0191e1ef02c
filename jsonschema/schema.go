package jsonschema

// Draft is the JSON Schema dialect emitted by Document.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
// Only the keywords a string enum needs are modeled.
type Schema struct {
	// Core
	Type        string `json:"type,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Validation
	Enum []string `json:"enum,omitempty"`
}

// Document is a standalone schema file holding named definitions.
type Document struct {
	Schema string             `json:"$schema"`
	Defs   map[string]*Schema `json:"$defs"`
}

// NewDocument returns a Document with the given definitions.
func NewDocument(defs map[string]*Schema) *Document {
	if defs == nil {
		defs = map[string]*Schema{}
	}
	return &Document{Schema: Draft, Defs: defs}
}
