package jstnlab

import (
	"fmt"
	"strings"
	"sync"

	eng "github.com/reoring/jstnlab/internal/engine"
	gojsonsrc "github.com/reoring/jstnlab/source/gojson"
	jsonsrc "github.com/reoring/jstnlab/source/json"
)

// Source is a JSON token stream. Drivers outside this module implement it by
// returning Tokens of the exported kinds below.
type Source = eng.TokenSource

// Token is a single JSON token.
type Token = eng.Token

// TokenKind enumerates JSON token kinds.
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

// JSONDriver turns data document bytes into a Source via a pluggable SPI.
type JSONDriver interface {
	NewBytes(b []byte) Source
	Name() string
}

type goJSONDriver struct{}

func (goJSONDriver) NewBytes(b []byte) Source { return gojsonsrc.NewBytes(b) }
func (goJSONDriver) Name() string             { return "gojson" }

type stdJSONDriver struct{}

func (stdJSONDriver) NewBytes(b []byte) Source { return jsonsrc.NewBytes(b) }
func (stdJSONDriver) Name() string             { return "encoding/json" }

// GoJSONDriver is backed by goccy/go-json. It is the default.
func GoJSONDriver() JSONDriver { return goJSONDriver{} }

// StdJSONDriver is backed by encoding/json and reports byte offsets.
func StdJSONDriver() JSONDriver { return stdJSONDriver{} }

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = goJSONDriver{}
)

// SetJSONDriver replaces the process-wide default driver; nil values are
// ignored. Engines created with WithJSONDriver are unaffected.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// DefaultJSONDriver returns the process-wide default driver.
func DefaultJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// JSONDriverByName resolves "gojson" or "encoding/json" (alias "std").
func JSONDriverByName(name string) (JSONDriver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gojson", "go-json":
		return goJSONDriver{}, nil
	case "std", "encoding/json":
		return stdJSONDriver{}, nil
	}
	return nil, fmt.Errorf("jstnlab: unknown JSON driver %q", name)
}
