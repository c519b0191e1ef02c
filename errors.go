package serialenum

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType  = "invalid_type"
	CodeInvalidEnum  = "invalid_enum"
	CodeInvalidValue = "invalid_value"
	CodeParseError   = "parse_error"
	// Schema validation (generation time and Bind time)
	CodeInvalidIdentifier  = "invalid_identifier"
	CodeEmptyEnum          = "empty_enum"
	CodeDuplicateVariant   = "duplicate_variant"
	CodeDuplicateToken     = "duplicate_token"
	CodeMissingToken       = "missing_token"
	CodeUnknownVariant     = "unknown_variant"
	CodeVisibilityMismatch = "visibility_mismatch"
	CodeNameCollision      = "name_collision"
	CodeInvalidMode        = "invalid_mode"
	CodeInvalidErrorFunc   = "invalid_error_func"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /enums/0/variants/1/token).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints such as the accepted tokens.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"enum":"Color", "value":"pink"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_enum at /: `pdf` is not a known `ContentFormat` variant
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			b.WriteString(": ")
			b.WriteString(it.Message)
		}
		if it.Hint != "" {
			fmt.Fprintf(b, " (%s)", it.Hint)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the issue causes to errors.Is and errors.As.
func (iss Issues) Unwrap() []error {
	var errs []error
	for _, it := range iss {
		if it.Cause != nil {
			errs = append(errs, it.Cause)
		}
	}
	return errs
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ErrUnknownVariant is matched by every *ParseError.
var ErrUnknownVariant = errors.New("serialenum: unknown variant")

// ParseError is the default error produced when a token does not name any
// variant.
type ParseError struct {
	Msg string
}

// NewParseError is the default error constructor bound to generated parsers.
func NewParseError(msg string) error { return &ParseError{Msg: msg} }

func (e *ParseError) Error() string { return e.Msg }

// Is reports whether target is ErrUnknownVariant.
func (e *ParseError) Is(target error) bool { return target == ErrUnknownVariant }

// UnknownVariantMessage renders the parse failure message for input s.
func UnknownVariantMessage(s, enum string) string {
	return "`" + s + "` is not a known `" + enum + "` variant"
}
