// Package json is the encoding/json-backed token source for data documents.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/reoring/jstnlab/internal/engine"
)

type jsonSource struct {
	dec        *json.Decoder
	framer     eng.Framer
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		return s.framer.Delim(rune(v), s.lastOffset), nil
	case string:
		return s.framer.String(v, s.lastOffset), nil
	case bool:
		return s.framer.Scalar(eng.Token{Kind: eng.KindBool, Bool: v, Offset: s.lastOffset}), nil
	case json.Number:
		return s.framer.Scalar(eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: s.lastOffset}), nil
	case float64:
		return s.framer.Scalar(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: s.lastOffset}), nil
	}
	return s.framer.Scalar(eng.Token{Kind: eng.KindNull, Offset: s.lastOffset}), nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
