// Package gojson is the goccy/go-json-backed token source for data
// documents.
package gojson

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/jstnlab/internal/engine"
)

type source struct {
	dec    *j.Decoder
	framer eng.Framer
	err    error // syntax error found up front
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
// go-json's tokenizer skips separators without checking their placement and
// its Valid accepts truncated literals and leading zeros, while rejecting
// numbers outside float64 range. The input is therefore checked against the
// RFC 8259 grammar with encoding/json first; a syntax error is reported by
// the first NextToken call.
func NewBytes(b []byte) eng.TokenSource {
	s := NewReader(bytes.NewReader(b)).(*source)
	if !json.Valid(b) {
		s.err = syntaxError(b)
	}
	return s
}

func syntaxError(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return errors.New("invalid JSON document")
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		return s.framer.Delim(rune(v), -1), nil
	case string:
		return s.framer.String(v, -1), nil
	case bool:
		return s.framer.Scalar(eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}), nil
	case j.Number:
		return s.framer.Scalar(eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: -1}), nil
	case float64:
		return s.framer.Scalar(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}), nil
	}
	return s.framer.Scalar(eng.Token{Kind: eng.KindNull, Offset: -1}), nil
}

// Location is unknown: go-json does not report decoder offsets.
func (s *source) Location() int64 { return -1 }
