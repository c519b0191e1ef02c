package serialenum

import (
	"sync"

	eng "github.com/reoring/serialenum/internal/engine"
	gojsonsrc "github.com/reoring/serialenum/source/gojson"
	jsonsrc "github.com/reoring/serialenum/source/json"
)

// TokenKind enumerates JSON token kinds. Custom JSONDriver implementations
// report their tokens with these kinds.
type TokenKind = eng.Kind

const (
	TokenBeginObject TokenKind = eng.KindBeginObject
	TokenEndObject   TokenKind = eng.KindEndObject
	TokenBeginArray  TokenKind = eng.KindBeginArray
	TokenEndArray    TokenKind = eng.KindEndArray
	TokenKey         TokenKind = eng.KindKey
	TokenString      TokenKind = eng.KindString
	TokenNumber      TokenKind = eng.KindNumber
	TokenBool        TokenKind = eng.KindBool
	TokenNull        TokenKind = eng.KindNull
)

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise).
type Token = eng.Token

// Source abstracts over polymorphic input sources.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The default
// implementation is based on github.com/goccy/go-json and may be swapped with
// SetJSONDriver.
type JSONDriver interface {
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = goJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json-backed driver.
func UseDefaultJSONDriver() { SetJSONDriver(goJSONDriver{}) }

// UseStdJSONDriver switches to the encoding/json-backed driver.
func UseStdJSONDriver() { SetJSONDriver(stdJSONDriver{}) }

// CurrentJSONDriver returns the driver used by JSONBytes.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type goJSONDriver struct{}

func (goJSONDriver) NewBytes(b []byte) Source { return gojsonsrc.NewBytes(b) }
func (goJSONDriver) Name() string             { return "go-json" }

type stdJSONDriver struct{}

func (stdJSONDriver) NewBytes(b []byte) Source { return jsonsrc.NewBytes(b) }
func (stdJSONDriver) Name() string             { return "encoding/json" }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return CurrentJSONDriver().NewBytes(b) }
