package engine

import (
	"encoding/json"
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

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string // Key and string tokens.
	Number string // Number literal as written.
	Bool   bool
	Offset int64 // -1 when unknown.
}

// TokenSource is the minimal interface a JSON driver provides.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrTrailingData reports content after the first complete value.
var ErrTrailingData = errors.New("unexpected data after top-level value")

// DecodeDocument decodes exactly one value from src. Numbers become
// json.Number so their literal text survives re-serialization. An empty
// source yields io.ErrUnexpectedEOF.
func DecodeDocument(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}
	v, err := decodeValue(src, tok)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	return v, nil
}

func nextInside(src TokenSource) (Token, error) {
	tok, err := src.NextToken()
	if err == io.EOF {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}

func decodeValue(src TokenSource, tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		m := make(map[string]any)
		for {
			key, err := nextInside(src)
			if err != nil {
				return nil, err
			}
			if key.Kind == KindEndObject {
				return m, nil
			}
			if key.Kind != KindKey {
				return nil, io.ErrUnexpectedEOF
			}
			vt, err := nextInside(src)
			if err != nil {
				return nil, err
			}
			v, err := decodeValue(src, vt)
			if err != nil {
				return nil, err
			}
			m[key.String] = v
		}
	case KindBeginArray:
		arr := []any{}
		for {
			et, err := nextInside(src)
			if err != nil {
				return nil, err
			}
			if et.Kind == KindEndArray {
				return arr, nil
			}
			v, err := decodeValue(src, et)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	}
	return nil, io.ErrUnexpectedEOF
}

// Framer turns the delimiter/scalar stream of a decoder's Token method into
// engine tokens, telling object keys apart from string values. Drivers embed
// one per source.
type Framer struct {
	stack []frame
}

type frame struct {
	object       bool
	expectingKey bool
}

// Delim converts an opening or closing delimiter.
func (f *Framer) Delim(d rune, offset int64) Token {
	switch d {
	case '{':
		f.stack = append(f.stack, frame{object: true, expectingKey: true})
		return Token{Kind: KindBeginObject, Offset: offset}
	case '[':
		f.stack = append(f.stack, frame{})
		return Token{Kind: KindBeginArray, Offset: offset}
	}
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.valueDone()
	if d == '}' {
		return Token{Kind: KindEndObject, Offset: offset}
	}
	return Token{Kind: KindEndArray, Offset: offset}
}

// String converts a string token, which is a key when an object awaits one.
func (f *Framer) String(s string, offset int64) Token {
	if n := len(f.stack); n > 0 && f.stack[n-1].expectingKey {
		f.stack[n-1].expectingKey = false
		return Token{Kind: KindKey, String: s, Offset: offset}
	}
	f.valueDone()
	return Token{Kind: KindString, String: s, Offset: offset}
}

// Scalar passes a number, bool or null token through.
func (f *Framer) Scalar(tok Token) Token {
	f.valueDone()
	return tok
}

// valueDone flips the enclosing object back to expecting a key.
func (f *Framer) valueDone() {
	if n := len(f.stack); n > 0 && f.stack[n-1].object {
		f.stack[n-1].expectingKey = true
	}
}
